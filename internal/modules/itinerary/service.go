// README: Itinerary synthesizer: one model call for all days, template fallback on any failure.
package itinerary

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"tripsmith/internal/ai"
	"tripsmith/internal/extract"
	"tripsmith/internal/maps"
	"tripsmith/internal/metrics"
	"tripsmith/internal/types"
	"tripsmith/internal/weather"
)

type Synthesizer struct {
	completer ai.Completer
	ext       *extract.Extractor
	log       *zap.Logger
}

func NewSynthesizer(completer ai.Completer, ext *extract.Extractor, log *zap.Logger) *Synthesizer {
	if ext == nil {
		ext = extract.New(extract.Greedy)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Synthesizer{completer: completer, ext: ext, log: log}
}

// Generate always returns an itinerary with exactly trip.Days days. journey may be nil.
func (s *Synthesizer) Generate(ctx context.Context, trip types.TripRequest, snap weather.Snapshot, journey *maps.Journey) (out Itinerary) {
	pc := NewPromptContext(trip, snap, journey)

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("itinerary synthesis panicked, using fallback", zap.Any("panic", r))
			metrics.Synthesis.WithLabelValues("itinerary", "fallback").Inc()
			out = fallback(pc)
		}
	}()

	raw := s.completer.GetResponse(ctx, BuildPrompt(pc))

	it, err := s.parse(raw, pc)
	if err != nil {
		s.log.Warn("itinerary output unusable, using fallback",
			zap.String("destination", trip.Destination),
			zap.Int("days", trip.Days),
			zap.Error(err),
		)
		metrics.Synthesis.WithLabelValues("itinerary", "fallback").Inc()
		return fallback(pc)
	}

	metrics.Synthesis.WithLabelValues("itinerary", "ai").Inc()
	return it
}

func (s *Synthesizer) parse(raw string, pc PromptContext) (Itinerary, error) {
	doc := s.ext.JSON(raw, extract.Object)
	if doc == nil {
		return Itinerary{}, fmt.Errorf("no json object in model output")
	}
	if err := extract.ValidateSchema(doc, daySchema(pc.Trip.Days)); err != nil {
		return Itinerary{}, err
	}

	var ri rawItinerary
	if err := json.Unmarshal(doc, &ri); err != nil {
		return Itinerary{}, fmt.Errorf("decode itinerary: %w", err)
	}
	if len(ri.Days) != pc.Trip.Days {
		return Itinerary{}, fmt.Errorf("got %d days, want %d", len(ri.Days), pc.Trip.Days)
	}
	return normalize(ri, pc), nil
}
