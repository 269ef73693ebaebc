// README: Itinerary data model (days, activities, categories).
package itinerary

import (
	"strings"

	"tripsmith/internal/modules/budget"
)

type Category string

const (
	CategorySightseeing Category = "sightseeing"
	CategoryFood        Category = "food"
	CategoryCultural    Category = "cultural"
	CategoryShopping    Category = "shopping"
	CategoryAdventure   Category = "adventure"
	CategoryRelaxation  Category = "relaxation"
	CategoryTransport   Category = "transport"
)

// Categories lists the recognized categories in prompt order.
var Categories = []Category{
	CategorySightseeing, CategoryFood, CategoryCultural, CategoryShopping,
	CategoryAdventure, CategoryRelaxation, CategoryTransport,
}

var categoryIcons = map[Category]string{
	CategorySightseeing: "🏛️",
	CategoryFood:        "🍽️",
	CategoryCultural:    "🎭",
	CategoryShopping:    "🛍️",
	CategoryAdventure:   "🧗",
	CategoryRelaxation:  "🌿",
	CategoryTransport:   "🚆",
}

const defaultIcon = "📍"

// ParseCategory maps free text onto a known category. Unknown values become sightseeing.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := categoryIcons[c]; ok {
		return c
	}
	return CategorySightseeing
}

// Valid reports whether c is one of the recognized categories.
func (c Category) Valid() bool {
	_, ok := categoryIcons[c]
	return ok
}

// Icon returns the display icon, with a generic pin for anything unrecognized.
func (c Category) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return defaultIcon
}

type Activity struct {
	Time                   string   `json:"time"`
	Name                   string   `json:"name"`
	Location               string   `json:"location"`
	Description            string   `json:"description"`
	Cost                   float64  `json:"cost"`
	Duration               string   `json:"duration"`
	Category               Category `json:"category"`
	Tips                   string   `json:"tips,omitempty"`
	WeatherSuitable        bool     `json:"weatherSuitable"`
	MatchesInterests       []string `json:"matchesInterests"`
	MatchesFoodPrefs       []string `json:"matchesFoodPrefs"`
	MatchesSpecialInterest bool     `json:"matchesSpecialInterest"`
}

type DayPlan struct {
	Day                   int        `json:"day"`
	Title                 string     `json:"title"`
	Theme                 string     `json:"theme"`
	Activities            []Activity `json:"activities"`
	TotalCost             float64    `json:"totalCost"`
	Highlights            []string   `json:"highlights"`
	WeatherConsiderations string     `json:"weatherConsiderations"`
	PersonalizedNote      string     `json:"personalizedNote,omitempty"`
}

// Itinerary is the synthesizer's output: the day plans plus trip-level commentary.
type Itinerary struct {
	Summary                string           `json:"summary"`
	Days                   []DayPlan        `json:"days"`
	TotalEstimatedCost     float64          `json:"totalEstimatedCost"`
	Insights               []string         `json:"insights"`
	CulturalTips           []string         `json:"culturalTips"`
	BudgetBreakdown        budget.Breakdown `json:"budgetBreakdown"`
	PersonalizationSummary string           `json:"personalizationSummary"`
	AIGenerated            bool             `json:"aiGenerated"`
}

// MaxHighlights caps DayPlan.Highlights.
const MaxHighlights = 3
