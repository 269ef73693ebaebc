package types

import (
	"errors"
	"testing"
)

func TestSpecialInterestValue(t *testing.T) {
	unset := []string{"", "no", "N/A", "None", "none ", "  NO\t", "n/a"}
	for _, in := range unset {
		if v, ok := (TripRequest{SpecialInterest: in}).SpecialInterestValue(); ok {
			t.Errorf("SpecialInterestValue(%q) = %q, true; want unset", in, v)
		}
	}

	v, ok := TripRequest{SpecialInterest: "  Impressionist art "}.SpecialInterestValue()
	if !ok || v != "Impressionist art" {
		t.Fatalf("got %q, %v", v, ok)
	}
	// "nonexistent" is a word, not the "none" marker.
	if _, ok := NormalizeSpecialInterest("nonexistent"); !ok {
		t.Fatal("nonexistent should be kept")
	}
}

func TestValidate(t *testing.T) {
	valid := TripRequest{Destination: "Paris", Days: 3, Budget: 30000, Travelers: 2}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	tests := []struct {
		name string
		mod  func(*TripRequest)
	}{
		{"no destination", func(r *TripRequest) { r.Destination = "  " }},
		{"zero days", func(r *TripRequest) { r.Days = 0 }},
		{"too many days", func(r *TripRequest) { r.Days = MaxTripDays + 1 }},
		{"negative budget", func(r *TripRequest) { r.Budget = -1 }},
		{"no travelers", func(r *TripRequest) { r.Travelers = 0 }},
		{"bad start date", func(r *TripRequest) { r.TravelDates.StartDate = "03/04/2026" }},
		{"end before start", func(r *TripRequest) {
			r.TravelDates = TravelDates{StartDate: "2026-05-10", EndDate: "2026-05-01"}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := valid
			tc.mod(&r)
			if err := r.Validate(); !errors.Is(err, ErrBadRequest) {
				t.Fatalf("expected ErrBadRequest, got %v", err)
			}
		})
	}

	zeroBudget := valid
	zeroBudget.Budget = 0
	if err := zeroBudget.Validate(); err != nil {
		t.Fatalf("zero budget should be allowed: %v", err)
	}
}
