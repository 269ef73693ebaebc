package itinerary

import (
	"fmt"
	"strings"

	"tripsmith/internal/extract"
	"tripsmith/internal/modules/budget"
	"tripsmith/internal/types"
	"tripsmith/internal/weather"
)

// Shapes of the model's reply. Pointers, unset Bools and nil lists mark missing fields.
type rawActivity struct {
	Time                   string             `json:"time"`
	Name                   string             `json:"name"`
	Location               string             `json:"location"`
	Description            string             `json:"description"`
	Cost                   *extract.Number    `json:"cost"`
	Duration               string             `json:"duration"`
	Category               string             `json:"category"`
	Tips                   string             `json:"tips"`
	WeatherSuitable        extract.Bool       `json:"weatherSuitable"`
	MatchesInterests       extract.StringList `json:"matchesInterests"`
	MatchesFoodPrefs       extract.StringList `json:"matchesFoodPrefs"`
	MatchesSpecialInterest extract.Bool       `json:"matchesSpecialInterest"`
}

type rawDay struct {
	Title                 string             `json:"title"`
	Theme                 string             `json:"theme"`
	Activities            []rawActivity      `json:"activities"`
	TotalCost             *extract.Number    `json:"totalCost"`
	Highlights            extract.StringList `json:"highlights"`
	WeatherConsiderations string             `json:"weatherConsiderations"`
	PersonalizedNote      string             `json:"personalizedNote"`
}

type rawBreakdown struct {
	Accommodation *extract.Number `json:"accommodation"`
	Food          *extract.Number `json:"food"`
	Activities    *extract.Number `json:"activities"`
	Transport     *extract.Number `json:"transport"`
}

type rawItinerary struct {
	Summary                string             `json:"summary"`
	Days                   []rawDay           `json:"days"`
	TotalEstimatedCost     *extract.Number    `json:"totalEstimatedCost"`
	Insights               extract.StringList `json:"insights"`
	CulturalTips           extract.StringList `json:"culturalTips"`
	BudgetBreakdown        *rawBreakdown      `json:"budgetBreakdown"`
	PersonalizationSummary string             `json:"personalizationSummary"`
}

// daySchema is the structural contract checked before decoding.
func daySchema(days int) map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"days"},
		"properties": map[string]any{
			"days": map[string]any{
				"type":     "array",
				"minItems": days,
				"maxItems": days,
				"items": map[string]any{
					"type":     "object",
					"required": []any{"activities"},
					"properties": map[string]any{
						"activities": map[string]any{"type": "array", "minItems": 1},
					},
				},
			},
		},
	}
}

// normalize fills defaults for missing fields and enforces the value invariants.
func normalize(raw rawItinerary, pc PromptContext) Itinerary {
	trip := pc.Trip
	out := Itinerary{
		Summary:                strings.TrimSpace(raw.Summary),
		Insights:               nonEmpty(raw.Insights),
		CulturalTips:           nonEmpty(raw.CulturalTips),
		PersonalizationSummary: strings.TrimSpace(raw.PersonalizationSummary),
		AIGenerated:            true,
	}
	if out.Summary == "" {
		out.Summary = defaultSummary(trip)
	}
	if len(out.Insights) == 0 {
		out.Insights = defaultInsights(trip, pc.Weather)
	}
	if len(out.CulturalTips) == 0 {
		out.CulturalTips = defaultCulturalTips(trip)
	}
	if out.PersonalizationSummary == "" {
		out.PersonalizationSummary = defaultPersonalization(pc)
	}

	out.BudgetBreakdown = pc.Breakdown
	if b := raw.BudgetBreakdown; b != nil {
		out.BudgetBreakdown = budget.Breakdown{
			Accommodation: budget.Clamp(b.Accommodation.Or(pc.Breakdown.Accommodation)),
			Food:          budget.Clamp(b.Food.Or(pc.Breakdown.Food)),
			Activities:    budget.Clamp(b.Activities.Or(pc.Breakdown.Activities)),
			Transport:     budget.Clamp(b.Transport.Or(pc.Breakdown.Transport)),
		}
	}

	daysTotal := 0.0
	out.Days = make([]DayPlan, len(raw.Days))
	for i, rd := range raw.Days {
		out.Days[i] = normalizeDay(i+1, rd, pc)
		daysTotal += out.Days[i].TotalCost
	}

	total := raw.TotalEstimatedCost.Or(daysTotal + out.BudgetBreakdown.Accommodation)
	out.TotalEstimatedCost = budget.Clamp(total)
	return out
}

func normalizeDay(day int, rd rawDay, pc PromptContext) DayPlan {
	dest := pc.Trip.Destination
	dp := DayPlan{
		Day:                   day,
		Title:                 strings.TrimSpace(rd.Title),
		Theme:                 strings.TrimSpace(rd.Theme),
		TotalCost:             budget.Clamp(rd.TotalCost.Or(pc.DailySpend)),
		WeatherConsiderations: strings.TrimSpace(rd.WeatherConsiderations),
		PersonalizedNote:      strings.TrimSpace(rd.PersonalizedNote),
	}
	if dp.Title == "" {
		dp.Title = fmt.Sprintf("Day %d in %s", day, dest)
	}
	if dp.Theme == "" {
		dp.Theme = "Exploring " + dest
	}
	if dp.WeatherConsiderations == "" {
		dp.WeatherConsiderations = weatherNote(pc.Weather)
	}

	dp.Activities = make([]Activity, 0, len(rd.Activities))
	for k, ra := range rd.Activities {
		dp.Activities = append(dp.Activities, normalizeActivity(k, ra, pc))
	}

	dp.Highlights = nonEmpty(rd.Highlights)
	if len(dp.Highlights) == 0 {
		for _, a := range dp.Activities {
			dp.Highlights = append(dp.Highlights, a.Name)
		}
	}
	if len(dp.Highlights) > MaxHighlights {
		dp.Highlights = dp.Highlights[:MaxHighlights]
	}
	return dp
}

func normalizeActivity(k int, ra rawActivity, pc PromptContext) Activity {
	a := Activity{
		Time:                   strings.TrimSpace(ra.Time),
		Name:                   strings.TrimSpace(ra.Name),
		Location:               strings.TrimSpace(ra.Location),
		Description:            strings.TrimSpace(ra.Description),
		Cost:                   budget.Round2(budget.Clamp(ra.Cost.Or(0))),
		Duration:               strings.TrimSpace(ra.Duration),
		Category:               ParseCategory(ra.Category),
		Tips:                   strings.TrimSpace(ra.Tips),
		WeatherSuitable:        ra.WeatherSuitable.Or(true),
		MatchesInterests:       subset(ra.MatchesInterests, pc.Trip.Interests),
		MatchesFoodPrefs:       subset(ra.MatchesFoodPrefs, pc.Trip.FoodPreferences),
		MatchesSpecialInterest: ra.MatchesSpecialInterest.Or(false) && pc.HasSpecialInterest,
	}
	if a.Time == "" {
		a.Time = Slots[k%len(Slots)]
	}
	if a.Name == "" {
		a.Name = fmt.Sprintf("Explore %s", pc.Trip.Destination)
	}
	if a.Location == "" {
		a.Location = pc.Trip.Destination
	}
	if a.Duration == "" {
		a.Duration = "1-2 hours"
	}
	return a
}

// subset keeps the tags of got that appear in allowed, using allowed's spelling.
func subset(got, allowed []string) []string {
	out := []string{}
	if len(got) == 0 || len(allowed) == 0 {
		return out
	}
	canonical := make(map[string]string, len(allowed))
	for _, a := range allowed {
		canonical[strings.ToLower(strings.TrimSpace(a))] = a
	}
	seen := make(map[string]bool, len(got))
	for _, g := range got {
		key := strings.ToLower(strings.TrimSpace(g))
		if c, ok := canonical[key]; ok && !seen[key] {
			seen[key] = true
			out = append(out, c)
		}
	}
	return out
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

func defaultSummary(trip types.TripRequest) string {
	return fmt.Sprintf("A %d-day trip to %s for %d %s.", trip.Days, trip.Destination, trip.Travelers, plural(trip.Travelers, "traveler"))
}

func defaultInsights(trip types.TripRequest, w weather.Snapshot) []string {
	return []string{
		fmt.Sprintf("Book popular %s attractions in advance to skip the queues.", trip.Destination),
		fmt.Sprintf("Expect around %.0f°C and %s; pack accordingly.", w.TemperatureCelsius, w.Condition),
	}
}

func defaultCulturalTips(trip types.TripRequest) []string {
	return []string{
		fmt.Sprintf("Learn a few local greetings before arriving in %s.", trip.Destination),
		"Check local tipping customs and opening hours, which often differ on weekends.",
	}
}

func defaultPersonalization(pc PromptContext) string {
	var focus []string
	if pc.HasSpecialInterest {
		focus = append(focus, pc.SpecialInterest)
	}
	focus = append(focus, pc.Trip.Interests...)
	if len(focus) == 0 {
		return fmt.Sprintf("Balanced plan covering the highlights of %s.", pc.Trip.Destination)
	}
	return fmt.Sprintf("Plan tailored around %s.", strings.Join(focus, ", "))
}

func weatherNote(w weather.Snapshot) string {
	return fmt.Sprintf("Around %.0f°C with %s.", w.TemperatureCelsius, w.Condition)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
