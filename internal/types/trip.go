// README: Trip request value object shared by the planner, synthesizers and HTTP layer.
package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrBadRequest marks caller input the planner refuses to work with.
var ErrBadRequest = errors.New("bad request")

// MaxTripDays caps the number of days one request may ask for.
const MaxTripDays = 30

const dateLayout = "2006-01-02"

type TravelDates struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// TripRequest is the caller's input. It is never mutated by the pipeline.
type TripRequest struct {
	Destination     string      `json:"destination"`
	StartLocation   string      `json:"startLocation,omitempty"`
	Days            int         `json:"days"`
	Budget          float64     `json:"budget"`
	Travelers       int         `json:"travelers"`
	TravelDates     TravelDates `json:"travelDates"`
	FoodPreferences []string    `json:"foodPreferences,omitempty"`
	Interests       []string    `json:"interests,omitempty"`
	SpecialInterest string      `json:"specialInterest,omitempty"`
}

var unsetSpecialInterest = map[string]struct{}{
	"":     {},
	"no":   {},
	"n/a":  {},
	"na":   {},
	"none": {},
	"nil":  {},
	"null": {},
}

// NormalizeSpecialInterest trims s and reports false for the "nothing" spellings.
func NormalizeSpecialInterest(s string) (string, bool) {
	v := strings.TrimSpace(s)
	if _, unset := unsetSpecialInterest[strings.ToLower(v)]; unset {
		return "", false
	}
	return v, true
}

// SpecialInterestValue returns the normalized special interest and whether it is set.
func (r TripRequest) SpecialInterestValue() (string, bool) {
	return NormalizeSpecialInterest(r.SpecialInterest)
}

// Validate checks the structural constraints of the request.
func (r TripRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("%w: destination is required", ErrBadRequest)
	}
	if r.Days <= 0 || r.Days > MaxTripDays {
		return fmt.Errorf("%w: days must be between 1 and %d", ErrBadRequest, MaxTripDays)
	}
	if r.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", ErrBadRequest)
	}
	if r.Travelers <= 0 {
		return fmt.Errorf("%w: travelers must be positive", ErrBadRequest)
	}

	var start, end time.Time
	var err error
	if r.TravelDates.StartDate != "" {
		if start, err = time.Parse(dateLayout, r.TravelDates.StartDate); err != nil {
			return fmt.Errorf("%w: travelDates.startDate must be YYYY-MM-DD", ErrBadRequest)
		}
	}
	if r.TravelDates.EndDate != "" {
		if end, err = time.Parse(dateLayout, r.TravelDates.EndDate); err != nil {
			return fmt.Errorf("%w: travelDates.endDate must be YYYY-MM-DD", ErrBadRequest)
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return fmt.Errorf("%w: travelDates.endDate is before startDate", ErrBadRequest)
	}
	return nil
}
