package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

// Journey is the driving estimate between a trip's start location and its destination.
type Journey struct {
	Origin         string        `json:"origin"`
	Destination    string        `json:"destination"`
	Duration       time.Duration `json:"duration"`
	DurationText   string        `json:"durationText"`
	DistanceText   string        `json:"distanceText"`
	DistanceMeters int           `json:"distanceMeters"`
}

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string, opts ...maps.ClientOption) (*RouteService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// GetTravelEstimate returns the driving journey from origin to destination.
func (s *RouteService) GetTravelEstimate(ctx context.Context, origin, destination string) (Journey, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Language:    "en",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return Journey{}, fmt.Errorf("maps api error: %w", err)
	}
	return journeyFromRoutes(origin, destination, routes)
}

func journeyFromRoutes(origin, destination string, routes []maps.Route) (Journey, error) {
	if len(routes) == 0 || len(routes[0].Legs) == 0 || routes[0].Legs[0] == nil {
		return Journey{}, fmt.Errorf("no route found")
	}

	// Waypoint-free requests have a single leg.
	leg := routes[0].Legs[0]
	return Journey{
		Origin:         origin,
		Destination:    destination,
		Duration:       leg.Duration,
		DurationText:   humanDuration(leg.Duration),
		DistanceText:   leg.Distance.HumanReadable,
		DistanceMeters: leg.Distance.Meters,
	}, nil
}

func humanDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%d min", m)
	case m == 0:
		return fmt.Sprintf("%d h", h)
	default:
		return fmt.Sprintf("%d h %d min", h, m)
	}
}
