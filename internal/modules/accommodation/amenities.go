package accommodation

// AmenityPool is the fixed pool synthesized amenity lists are drawn from.
var AmenityPool = []string{
	"Free WiFi",
	"Swimming Pool",
	"Fitness Center",
	"Spa",
	"Restaurant",
	"Bar/Lounge",
	"Room Service",
	"Airport Shuttle",
	"Free Parking",
	"Air Conditioning",
	"24-Hour Front Desk",
	"Concierge",
	"Laundry Service",
	"Business Center",
	"Breakfast Included",
	"Pet Friendly",
}

const (
	MinAmenities = 6
	MaxAmenities = 11
)

// pickAmenities returns a random subset of 6-11 distinct amenities in pool order.
func pickAmenities(rnd RandSource) []string {
	n := MinAmenities + rnd.Intn(MaxAmenities-MinAmenities+1)
	chosen := make(map[int]bool, n)
	for _, i := range shuffled(len(AmenityPool), rnd)[:n] {
		chosen[i] = true
	}
	out := make([]string, 0, n)
	for i, a := range AmenityPool {
		if chosen[i] {
			out = append(out, a)
		}
	}
	return out
}
