// README: Deterministic template itinerary used whenever the model output is unusable.
package itinerary

import (
	"fmt"
	"strings"

	"tripsmith/internal/modules/budget"
	"tripsmith/internal/types"
	"tripsmith/internal/weather"
)

// Slots are the fixed start times of every template day.
var Slots = []string{"8:00 AM", "10:30 AM", "1:00 PM", "3:30 PM", "6:00 PM", "8:00 PM"}

// slotShare splits a day's non-lodging spend over the six slots.
var slotShare = []float64{0.10, 0.20, 0.15, 0.20, 0.10, 0.25}

var themes = []string{
	"Iconic Landmarks",
	"Neighbourhoods & Markets",
	"Art & History",
	"Hidden Gems",
	"Local Life",
}

// Fallback builds a complete itinerary without any model output. Same input, same output.
func Fallback(trip types.TripRequest, snap weather.Snapshot) Itinerary {
	return fallback(NewPromptContext(trip, snap, nil))
}

func fallback(pc PromptContext) Itinerary {
	trip := pc.Trip
	days := trip.Days
	if days < 1 {
		days = 1
	}

	out := Itinerary{
		Summary:                fmt.Sprintf("A %d-day template itinerary for %s covering its classic sights, food and culture.", days, trip.Destination),
		Insights:               defaultInsights(trip, pc.Weather),
		CulturalTips:           defaultCulturalTips(trip),
		BudgetBreakdown:        pc.Breakdown,
		PersonalizationSummary: defaultPersonalization(pc),
		AIGenerated:            false,
	}

	total := 0.0
	out.Days = make([]DayPlan, days)
	for i := range out.Days {
		out.Days[i] = fallbackDay(i+1, pc)
		total += out.Days[i].TotalCost
	}
	out.TotalEstimatedCost = budget.Round2(total + pc.Breakdown.Accommodation)
	return out
}

func fallbackDay(day int, pc PromptContext) DayPlan {
	dest := pc.Trip.Destination
	theme := themes[(day-1)%len(themes)]
	outdoorOK := outdoorFriendly(pc.Weather)

	interest := pick(pc.Trip.Interests, day)
	food := pick(pc.Trip.FoodPreferences, day)

	acts := []Activity{
		{
			Name:        "Breakfast at a neighbourhood café",
			Description: fmt.Sprintf("Start the day like a local with coffee and pastries near your %s hotel.", dest),
			Duration:    "1 hour",
			Category:    CategoryFood,
		},
		{
			Name:        fmt.Sprintf("Morning sightseeing in %s", dest),
			Description: fmt.Sprintf("Visit one of the best-known landmarks of %s before the crowds arrive.", dest),
			Duration:    "2.5 hours",
			Category:    CategorySightseeing,
		},
		{
			Name:        "Lunch at a local restaurant",
			Description: fmt.Sprintf("Try a regional speciality of %s.", dest),
			Duration:    "1.5 hours",
			Category:    CategoryFood,
		},
		{
			Name:        fmt.Sprintf("Cultural afternoon in %s", dest),
			Description: fmt.Sprintf("Explore a museum, gallery or historic quarter of %s.", dest),
			Duration:    "2.5 hours",
			Category:    CategoryCultural,
		},
		{
			Name:        "Evening stroll and shopping",
			Description: fmt.Sprintf("Walk through a lively district of %s and browse local shops.", dest),
			Duration:    "1.5 hours",
			Category:    CategoryShopping,
		},
		{
			Name:        "Dinner and local nightlife",
			Description: fmt.Sprintf("End the day with dinner at a well-reviewed %s restaurant.", dest),
			Duration:    "2 hours",
			Category:    CategoryFood,
		},
	}

	if interest != "" {
		acts[1].Name = fmt.Sprintf("%s in %s", interest, dest)
		acts[1].Description = fmt.Sprintf("A morning dedicated to %s, one of your interests, in %s.", interest, dest)
		acts[1].MatchesInterests = []string{interest}
	}
	if food != "" {
		acts[5].Description = fmt.Sprintf("Dinner at a %s-friendly restaurant in %s.", food, dest)
		acts[5].MatchesFoodPrefs = []string{food}
	}
	if pc.HasSpecialInterest {
		acts[3].Name = fmt.Sprintf("%s in %s", pc.SpecialInterest, dest)
		acts[3].Description = fmt.Sprintf("An afternoon built around your special interest: %s.", pc.SpecialInterest)
		acts[3].MatchesSpecialInterest = true
	}

	dayTotal := 0.0
	for k := range acts {
		acts[k].Time = Slots[k]
		acts[k].Location = dest
		acts[k].Cost = budget.Round2(pc.DailySpend * slotShare[k])
		acts[k].WeatherSuitable = outdoorOK || acts[k].Category != CategorySightseeing
		if acts[k].MatchesInterests == nil {
			acts[k].MatchesInterests = []string{}
		}
		if acts[k].MatchesFoodPrefs == nil {
			acts[k].MatchesFoodPrefs = []string{}
		}
		dayTotal += acts[k].Cost
	}

	dp := DayPlan{
		Day:                   day,
		Title:                 fmt.Sprintf("Day %d: %s of %s", day, theme, dest),
		Theme:                 theme,
		Activities:            acts,
		TotalCost:             budget.Round2(dayTotal),
		Highlights:            []string{acts[1].Name, acts[3].Name, acts[5].Name},
		WeatherConsiderations: weatherNote(pc.Weather),
	}
	if pc.HasSpecialInterest {
		dp.PersonalizedNote = fmt.Sprintf("Includes time for %s.", pc.SpecialInterest)
	}
	return dp
}

func pick(list []string, day int) string {
	if len(list) == 0 {
		return ""
	}
	return list[(day-1)%len(list)]
}

func outdoorFriendly(w weather.Snapshot) bool {
	if w.TemperatureCelsius < 5 || w.TemperatureCelsius > 33 {
		return false
	}
	cond := strings.ToLower(w.Condition)
	for _, bad := range []string{"rain", "snow", "storm", "thunder"} {
		if strings.Contains(cond, bad) {
			return false
		}
	}
	return true
}
