package domain

import "time"

// Booking is immutable once created. Hotel and Room are snapshot
// references resolved at creation time, attached again on reads.
type Booking struct {
	ID        int64
	HotelID   int64
	RoomID    int64
	UserID    int64
	StartDate time.Time
	EndDate   time.Time // strictly after StartDate
	Nights    int       // whole days between start and end
	Guests    int
	Breakfast bool
	TotalCost float64

	Hotel *Hotel
	Room  *Room
}
