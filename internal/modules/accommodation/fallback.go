// README: Synthetic hotel set used when the model's hotel list is unusable.
package accommodation

import (
	"fmt"

	"tripsmith/internal/modules/budget"
)

// priceFactors price the n-th hotel of a day relative to the nightly target.
var priceFactors = [HotelsPerDay]float64{0.9, 1.0, 1.1}

var (
	fallbackTypes = [HotelsPerDay]string{"Luxury", "Boutique", "Business"}
	fallbackAreas = []string{"City Center", "Old Town", "Riverside", "Arts District", "Station Quarter"}
)

// syntheticName is unique per (day, n) within one destination.
func syntheticName(day, n int, destination string) string {
	return fmt.Sprintf("Premium Hotel %d-%d %s", day, n, destination)
}

// syntheticHotel is the unenriched n-th (1-based) hotel of day.
func syntheticHotel(day, n int, band budget.Band, destination string) Hotel {
	area := fallbackAreas[(day+n-2)%len(fallbackAreas)]
	hotelType := fallbackTypes[(n-1)%HotelsPerDay]
	return Hotel{
		Name:           syntheticName(day, n, destination),
		Address:        fmt.Sprintf("%s, %s", area, destination),
		EstimatedPrice: budget.Round2(band.Target * priceFactors[(n-1)%HotelsPerDay]),
		Description:    fmt.Sprintf("A comfortable %s hotel in the %s area of %s.", hotelType, area, destination),
		HotelType:      hotelType,
		NearbyArea:     area,
		DayNumber:      day,
	}
}

// Fallback builds days x 3 uniquely named hotels priced at 0.9, 1.0 and 1.1 of the nightly target.
func Fallback(days int, band budget.Band, destination string, rnd RandSource) map[int][]Hotel {
	if days < 1 {
		days = 1
	}
	out := make(map[int][]Hotel, days)
	for day := 1; day <= days; day++ {
		bucket := make([]Hotel, 0, HotelsPerDay)
		for n := 1; n <= HotelsPerDay; n++ {
			bucket = append(bucket, enrich(syntheticHotel(day, n, band, destination), band, destination, rnd))
		}
		out[day] = bucket
	}
	return out
}
