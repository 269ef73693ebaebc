package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// ErrNoPlace is returned when a lookup yields no usable result.
var ErrNoPlace = errors.New("maps: no matching place")

// Place represents a simplified location result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	PlaceID          string
	UserRatingsTotal int
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string, opts ...maps.ClientOption) (*PlacesService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// LookupLodging text-searches for a hotel by name in destination and returns the best match.
func (s *PlacesService) LookupLodging(ctx context.Context, name, destination string) (Place, error) {
	query := strings.TrimSpace(name)
	if query == "" {
		return Place{}, ErrNoPlace
	}
	if destination != "" {
		query = fmt.Sprintf("%s, %s", query, destination)
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    query,
		Type:     maps.PlaceTypeLodging,
		Language: "en",
	})
	if err != nil {
		return Place{}, fmt.Errorf("places api error: %w", err)
	}
	return bestLodging(name, resp.Results)
}

// bestLodging prefers a result whose name contains the requested name, otherwise the first one.
func bestLodging(name string, results []maps.PlacesSearchResult) (Place, error) {
	if len(results) == 0 {
		return Place{}, ErrNoPlace
	}
	pick := results[0]
	for _, r := range results {
		if containsIgnoreCase(r.Name, name) || containsIgnoreCase(name, r.Name) {
			pick = r
			break
		}
	}
	if pick.FormattedAddress == "" {
		return Place{}, ErrNoPlace
	}
	return Place{
		Name:             pick.Name,
		Address:          pick.FormattedAddress,
		Rating:           pick.Rating,
		PlaceID:          pick.PlaceID,
		UserRatingsTotal: pick.UserRatingsTotal,
	}, nil
}

func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
