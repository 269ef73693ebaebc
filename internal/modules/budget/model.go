// README: Budget split and nightly price band used by both synthesizers.
package budget

// Default share of the total trip budget per category.
const (
	AccommodationShare = 0.40
	FoodShare          = 0.25
	ActivitiesShare    = 0.25
	TransportShare     = 0.10

	// BandTolerance is the +/- spread around the nightly target price.
	BandTolerance = 0.20
)

// Breakdown is the per-category allocation of a trip budget.
type Breakdown struct {
	Accommodation float64 `json:"accommodation"`
	Food          float64 `json:"food"`
	Activities    float64 `json:"activities"`
	Transport     float64 `json:"transport"`
}

// Band is the acceptable nightly hotel price range.
type Band struct {
	Target float64 `json:"target"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Contains reports whether price lies within the band, inclusive.
func (b Band) Contains(price float64) bool {
	return price >= b.Min && price <= b.Max
}
