// README: Budget math. Pure functions, no store.
package budget

import "math"

// Split applies the default 40/25/25/10 allocation to total.
func Split(total float64) Breakdown {
	total = Clamp(total)
	return Breakdown{
		Accommodation: Round2(total * AccommodationShare),
		Food:          Round2(total * FoodShare),
		Activities:    Round2(total * ActivitiesShare),
		Transport:     Round2(total * TransportShare),
	}
}

// NightlyBand returns the per-night hotel target (accommodation share / days)
// with a +/-20% tolerance. days <= 0 is treated as one day.
func NightlyBand(total float64, days int) Band {
	if days <= 0 {
		days = 1
	}
	target := Clamp(total) * AccommodationShare / float64(days)
	return Band{
		Target: Round2(target),
		Min:    Round2(target * (1 - BandTolerance)),
		Max:    Round2(target * (1 + BandTolerance)),
	}
}

// DailySpend is the non-lodging budget per day, used when a day has no cost.
func DailySpend(total float64, days int) float64 {
	if days <= 0 {
		days = 1
	}
	nonLodging := FoodShare + ActivitiesShare + TransportShare
	return Round2(Clamp(total) * nonLodging / float64(days))
}

// Clamp maps negative and NaN amounts to zero.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
