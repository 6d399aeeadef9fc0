package app

import "time"

// Fixed fees in the hotel's currency unit.
const (
	cleaningFee      = 20.0
	breakfastPerHead = 15.0 // per guest, per night
)

// TotalCost computes a stay's price from the nightly rate. The cleaning
// fee applies unconditionally; breakfast adds a per-guest-per-night fee.
// nights must be >= 0, derived upstream from a validated date range.
func TotalCost(rate float64, nights, guests int, breakfast bool) float64 {
	total := rate*float64(nights) + cleaningFee
	if breakfast {
		total += breakfastPerHead * float64(guests) * float64(nights)
	}
	return total
}

func nightsBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
