// README: Accommodation synthesizer: one model call for every night's hotels, synthetic fallback.
package accommodation

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripsmith/internal/ai"
	"tripsmith/internal/extract"
	"tripsmith/internal/metrics"
	"tripsmith/internal/modules/budget"
	"tripsmith/internal/rng"
)

type rawHotel struct {
	Name           string             `json:"name"`
	Address        string             `json:"address"`
	Rating         *extract.Number    `json:"rating"`
	EstimatedPrice *extract.Number    `json:"estimatedPrice"`
	Price          *extract.Number    `json:"price"`
	Amenities      extract.StringList `json:"amenities"`
	Description    string             `json:"description"`
	HotelType      string             `json:"hotelType"`
	NearbyArea     string             `json:"nearbyArea"`
}

var listSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items":    map[string]any{"type": "object"},
}

type Synthesizer struct {
	completer ai.Completer
	ext       *extract.Extractor
	rnd       RandSource
	enricher  Enricher
	log       *zap.Logger
}

// NewSynthesizer wires the synthesizer. enricher may be nil; a nil rnd is seeded from the clock.
func NewSynthesizer(completer ai.Completer, ext *extract.Extractor, rnd RandSource, enricher Enricher, log *zap.Logger) *Synthesizer {
	if ext == nil {
		ext = extract.New(extract.Greedy)
	}
	if rnd == nil {
		rnd = rng.NewTimeSeeded()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Synthesizer{completer: completer, ext: ext, rnd: rnd, enricher: enricher, log: log}
}

// Generate returns exactly days buckets of 3 hotels each. It never fails.
func (s *Synthesizer) Generate(ctx context.Context, days int, total float64, destination string) (res Result) {
	if days < 1 {
		days = 1
	}
	band := budget.NightlyBand(total, days)

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("hotel synthesis panicked, using fallback", zap.Any("panic", r))
			metrics.Synthesis.WithLabelValues("hotels", "fallback").Inc()
			res = Result{ByDay: Fallback(days, band, destination, s.rnd), Band: band}
		}
	}()

	raw := s.completer.GetResponse(ctx, BuildPrompt(days, band, destination))
	list, err := s.parse(raw)
	if err != nil {
		s.log.Warn("hotel output unusable, using fallback",
			zap.String("destination", destination),
			zap.Int("days", days),
			zap.Error(err),
		)
		metrics.Synthesis.WithLabelValues("hotels", "fallback").Inc()
		return Result{ByDay: Fallback(days, band, destination, s.rnd), Band: band}
	}

	hotels, synthetic := fill(list, days, band, destination)
	if synthetic > 0 {
		s.log.Info("topped up hotel list with synthetic entries",
			zap.Int("returned", len(list)),
			zap.Int("synthetic", synthetic),
		)
	}

	byDay := make(map[int][]Hotel, days)
	for i, h := range hotels {
		day := i%days + 1
		h.DayNumber = day
		h = s.lookupAddress(ctx, h, destination)
		byDay[day] = append(byDay[day], enrich(h, band, destination, s.rnd))
	}

	metrics.Synthesis.WithLabelValues("hotels", "ai").Inc()
	return Result{ByDay: byDay, Band: band, AIGenerated: true}
}

func (s *Synthesizer) parse(raw string) ([]rawHotel, error) {
	doc := s.ext.JSON(raw, extract.Array)
	if doc == nil {
		return nil, fmt.Errorf("no json array in model output")
	}
	if err := extract.ValidateSchema(doc, listSchema); err != nil {
		return nil, err
	}
	var list []rawHotel
	if err := json.Unmarshal(doc, &list); err != nil {
		return nil, fmt.Errorf("decode hotels: %w", err)
	}
	return list, nil
}

// fill drops unnamed and duplicate entries, truncates to days*3 and tops up
// with synthetic hotels. It returns the hotels and how many were synthesized.
func fill(list []rawHotel, days int, band budget.Band, destination string) ([]Hotel, int) {
	want := days * HotelsPerDay
	seen := make(map[string]bool, want)
	out := make([]Hotel, 0, want)

	for _, r := range list {
		if len(out) == want {
			break
		}
		name := strings.TrimSpace(r.Name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true

		price := r.EstimatedPrice
		if price == nil {
			price = r.Price
		}
		h := Hotel{
			Name:           name,
			Address:        strings.TrimSpace(r.Address),
			Rating:         r.Rating.Or(0),
			EstimatedPrice: price.Or(0),
			Amenities:      nonEmpty(r.Amenities),
			Description:    strings.TrimSpace(r.Description),
			HotelType:      strings.TrimSpace(r.HotelType),
			NearbyArea:     strings.TrimSpace(r.NearbyArea),
		}
		out = append(out, h)
	}

	synthetic := 0
	for i := len(out); i < want; i++ {
		day, n := i%days+1, i/days+1
		h := syntheticHotel(day, n, band, destination)
		for k := 2; seen[strings.ToLower(h.Name)]; k++ {
			h.Name = fmt.Sprintf("%s (%d)", syntheticName(day, n, destination), k)
		}
		seen[strings.ToLower(h.Name)] = true
		out = append(out, h)
		synthetic++
	}
	return out, synthetic
}

func (s *Synthesizer) lookupAddress(ctx context.Context, h Hotel, destination string) Hotel {
	if s.enricher == nil || h.Address != "" {
		return h
	}
	place, err := s.enricher.LookupLodging(ctx, h.Name, destination)
	if err != nil {
		s.log.Debug("lodging lookup failed", zap.String("hotel", h.Name), zap.Error(err))
		return h
	}
	h.Address = place.Address
	if h.Rating == 0 && place.Rating > 0 {
		h.Rating = float64(place.Rating)
	}
	return h
}

// enrich fills every synthesized field and enforces value ranges.
func enrich(h Hotel, band budget.Band, destination string, rnd RandSource) Hotel {
	class := Classify(h.Name)

	h.ID = uuid.NewString()
	if h.Rating < 1 || h.Rating > 5 {
		h.Rating = 4.0 + rnd.Float64()
	}
	h.Rating = math.Min(5, math.Round(h.Rating*10)/10)

	if h.EstimatedPrice <= 0 {
		h.EstimatedPrice = band.Min + rnd.Float64()*(band.Max-band.Min)
	}
	h.EstimatedPrice = budget.Round2(budget.Clamp(h.EstimatedPrice))

	if len(h.Amenities) < MinAmenities {
		h.Amenities = pickAmenities(rnd)
	} else if len(h.Amenities) > MaxAmenities {
		h.Amenities = h.Amenities[:MaxAmenities]
	}

	h.Images = pickImages(class, rnd)
	h.Thumbnail = h.Images[0]
	h.IsTopRated = h.Rating >= 4.5

	if h.HotelType == "" {
		h.HotelType = defaultHotelType(class)
	}
	if h.NearbyArea == "" {
		h.NearbyArea = "City Center"
	}
	if h.Address == "" {
		h.Address = fmt.Sprintf("%s, %s", h.NearbyArea, destination)
	}
	if h.Description == "" {
		h.Description = fmt.Sprintf("A well-rated %s stay near %s in %s.", strings.ToLower(h.HotelType), h.NearbyArea, destination)
	}
	return h
}

func defaultHotelType(c Class) string {
	switch c {
	case ClassPalace:
		return "Heritage"
	case ClassResort:
		return "Resort"
	case ClassLuxury:
		return "Luxury"
	case ClassBudget:
		return "Budget"
	default:
		return "Hotel"
	}
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
