// README: Hotel data model and collaborator interfaces for the accommodation synthesizer.
package accommodation

import (
	"context"

	"tripsmith/internal/maps"
	"tripsmith/internal/modules/budget"
)

// HotelsPerDay is the fixed bucket size of every day.
const HotelsPerDay = 3

type Hotel struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Rating         float64  `json:"rating"`
	EstimatedPrice float64  `json:"estimatedPrice"`
	Amenities      []string `json:"amenities"`
	Description    string   `json:"description"`
	Images         []string `json:"images"`
	Thumbnail      string   `json:"thumbnail"`
	IsTopRated     bool     `json:"isTopRated"`
	DayNumber      int      `json:"dayNumber"`
	HotelType      string   `json:"hotelType"`
	NearbyArea     string   `json:"nearbyArea"`
}

// Result maps day (1..N) to exactly HotelsPerDay hotels.
type Result struct {
	ByDay       map[int][]Hotel `json:"byDay"`
	Band        budget.Band     `json:"band"`
	AIGenerated bool            `json:"aiGenerated"`
}

// RandSource is injected so tests can fix image and amenity picks.
type RandSource interface {
	Intn(n int) int
	Float64() float64
}

// Enricher looks up real lodging data. Optional.
type Enricher interface {
	LookupLodging(ctx context.Context, name, destination string) (maps.Place, error)
}
