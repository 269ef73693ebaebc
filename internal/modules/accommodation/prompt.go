package accommodation

import (
	"fmt"
	"strings"

	"tripsmith/internal/modules/budget"
)

// BuildPrompt asks for every hotel of the trip in one response.
func BuildPrompt(days int, band budget.Band, destination string) string {
	total := days * HotelsPerDay

	var b strings.Builder
	fmt.Fprintf(&b, "You are a hotel booking expert for %s. ", destination)
	fmt.Fprintf(&b, "Recommend exactly %d different real hotels for a %d-day stay (%d per night).\n\n", total, days, HotelsPerDay)

	b.WriteString("PRICE RANGE:\n")
	fmt.Fprintf(&b, "- Target nightly price: %.0f\n", band.Target)
	fmt.Fprintf(&b, "- Every estimatedPrice must be between %.0f and %.0f per night.\n\n", band.Min, band.Max)

	b.WriteString("RULES:\n")
	fmt.Fprintf(&b, "- Return exactly %d hotels.\n", total)
	b.WriteString("- Every hotel name must be unique. Never repeat a hotel, not even on a different night.\n")
	fmt.Fprintf(&b, "- Use hotels that actually exist in %s, spread across different neighbourhoods.\n", destination)
	b.WriteString("- rating is between 4.0 and 5.0.\n")
	b.WriteString("- Respond with a JSON array only. No markdown, no commentary.\n\n")

	b.WriteString(`JSON FORMAT:
[
  {
    "name": "string",
    "address": "string",
    "rating": 4.5,
    "estimatedPrice": 0,
    "amenities": ["string"],
    "description": "string",
    "hotelType": "Luxury | Boutique | Business | Resort | Budget",
    "nearbyArea": "string"
  }
]`)
	return b.String()
}
