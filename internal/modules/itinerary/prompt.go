// README: Itinerary prompt assembled from independent, ordered sections.
package itinerary

import (
	"fmt"
	"strings"

	"tripsmith/internal/maps"
	"tripsmith/internal/modules/budget"
	"tripsmith/internal/types"
	"tripsmith/internal/weather"
)

// PromptContext is everything the prompt may mention. Build it with NewPromptContext.
type PromptContext struct {
	Trip               types.TripRequest
	Weather            weather.Snapshot
	Journey            *maps.Journey
	SpecialInterest    string
	HasSpecialInterest bool
	Breakdown          budget.Breakdown
	DailySpend         float64
}

func NewPromptContext(trip types.TripRequest, snap weather.Snapshot, journey *maps.Journey) PromptContext {
	si, ok := trip.SpecialInterestValue()
	return PromptContext{
		Trip:               trip,
		Weather:            snap,
		Journey:            journey,
		SpecialInterest:    si,
		HasSpecialInterest: ok,
		Breakdown:          budget.Split(trip.Budget),
		DailySpend:         budget.DailySpend(trip.Budget, trip.Days),
	}
}

type section func(PromptContext) string

// sections are composed in this order; a section returning "" is omitted.
var sections = []section{
	headerSection,
	tripSection,
	journeySection,
	weatherSection,
	specialInterestSection,
	interestsSection,
	foodSection,
	requirementsSection,
	schemaSection,
}

// BuildPrompt renders the single prompt asking for every day of the trip at once.
func BuildPrompt(pc PromptContext) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if text := strings.TrimSpace(s(pc)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}

func headerSection(pc PromptContext) string {
	return fmt.Sprintf(
		"You are an expert local travel planner. Create a complete, realistic %d-day itinerary for %s. "+
			"Return ALL %d days in this single response.",
		pc.Trip.Days, pc.Trip.Destination, pc.Trip.Days)
}

func tripSection(pc PromptContext) string {
	var b strings.Builder
	b.WriteString("TRIP DETAILS:\n")
	fmt.Fprintf(&b, "- Destination: %s\n", pc.Trip.Destination)
	if pc.Trip.StartLocation != "" {
		fmt.Fprintf(&b, "- Travelling from: %s\n", pc.Trip.StartLocation)
	}
	fmt.Fprintf(&b, "- Duration: %d days\n", pc.Trip.Days)
	fmt.Fprintf(&b, "- Travelers: %d\n", pc.Trip.Travelers)
	fmt.Fprintf(&b, "- Total budget: %.0f (accommodation %.0f, food %.0f, activities %.0f, transport %.0f)\n",
		pc.Trip.Budget, pc.Breakdown.Accommodation, pc.Breakdown.Food, pc.Breakdown.Activities, pc.Breakdown.Transport)
	fmt.Fprintf(&b, "- Daily spend excluding lodging: about %.0f\n", pc.DailySpend)
	if pc.Trip.TravelDates.StartDate != "" {
		fmt.Fprintf(&b, "- Start date: %s", pc.Trip.TravelDates.StartDate)
		if pc.Trip.TravelDates.EndDate != "" {
			fmt.Fprintf(&b, " (ends %s)", pc.Trip.TravelDates.EndDate)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func journeySection(pc PromptContext) string {
	if pc.Journey == nil {
		return ""
	}
	return fmt.Sprintf(
		"ARRIVAL: The travelers come from %s, about %s (%s) by road. Keep the first morning light.",
		pc.Journey.Origin, pc.Journey.DistanceText, pc.Journey.DurationText)
}

func weatherSection(pc PromptContext) string {
	w := pc.Weather
	kind := "current"
	if w.Fallback {
		kind = "estimated"
	}
	return fmt.Sprintf(
		"WEATHER (%s): %.0f°C, %s, humidity %d%%, wind %.1f m/s. "+
			"Prefer indoor options when conditions are poor and set weatherSuitable accordingly.",
		kind, w.TemperatureCelsius, w.Condition, w.Humidity, w.WindSpeed)
}

func specialInterestSection(pc PromptContext) string {
	if !pc.HasSpecialInterest {
		return ""
	}
	return fmt.Sprintf(
		"PRIMARY THEME: %q. This special interest has the highest priority. "+
			"Every day must include at least one activity built around it, and those activities "+
			"must set \"matchesSpecialInterest\": true. Mention it in each day's personalizedNote.",
		pc.SpecialInterest)
}

func interestsSection(pc PromptContext) string {
	if len(pc.Trip.Interests) == 0 {
		return ""
	}
	return fmt.Sprintf(
		"INTERESTS: %s. Spread them across the days and list the ones each activity serves in \"matchesInterests\".",
		strings.Join(pc.Trip.Interests, ", "))
}

func foodSection(pc PromptContext) string {
	if len(pc.Trip.FoodPreferences) == 0 {
		return ""
	}
	return fmt.Sprintf(
		"FOOD PREFERENCES: %s. Every meal suggestion must respect them; list the ones a meal serves in \"matchesFoodPrefs\".",
		strings.Join(pc.Trip.FoodPreferences, ", "))
}

func requirementsSection(pc PromptContext) string {
	cats := make([]string, len(Categories))
	for i, c := range Categories {
		cats[i] = string(c)
	}
	return strings.Join([]string{
		"REQUIREMENTS:",
		fmt.Sprintf("- The \"days\" array must contain exactly %d entries, day 1 to day %d.", pc.Trip.Days, pc.Trip.Days),
		"- 5 to 6 activities per day in chronological order, with display times like \"9:00 AM\".",
		"- Use real, named places. Do not repeat an attraction or restaurant on different days.",
		"- All costs are non-negative numbers in the trip's currency, per group.",
		fmt.Sprintf("- category must be one of: %s.", strings.Join(cats, ", ")),
		fmt.Sprintf("- At most %d highlights per day.", MaxHighlights),
		"- Respond with JSON only. No markdown, no commentary.",
	}, "\n")
}

func schemaSection(pc PromptContext) string {
	special := ""
	if pc.HasSpecialInterest {
		special = `, "matchesSpecialInterest": true`
	}
	return fmt.Sprintf(`JSON FORMAT:
{
  "summary": "string",
  "days": [
    {
      "day": 1,
      "title": "string",
      "theme": "string",
      "activities": [
        {"time": "9:00 AM", "name": "string", "location": "string", "description": "string", "cost": 0, "duration": "2 hours", "category": "sightseeing", "tips": "string", "weatherSuitable": true, "matchesInterests": [], "matchesFoodPrefs": []%s}
      ],
      "totalCost": 0,
      "highlights": ["string"],
      "weatherConsiderations": "string",
      "personalizedNote": "string"
    }
  ],
  "totalEstimatedCost": 0,
  "insights": ["string"],
  "culturalTips": ["string"],
  "budgetBreakdown": {"accommodation": 0, "food": 0, "activities": 0, "transport": 0},
  "personalizationSummary": "string"
}`, special)
}
