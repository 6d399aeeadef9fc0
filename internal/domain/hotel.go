package domain

type Hotel struct {
	ID         int64
	Name       string
	Location   string
	PictureURL string
	Rating     float64 // aggregate, accumulated over NumRatings samples
	NumRatings int
	Stars      int // 1..5
	Rooms      []Room
}

type Room struct {
	ID        int64
	HotelID   int64
	Type      string
	Price     float64 // nightly rate, non-negative
	MaxGuests int
	Pictures  []RoomPicture
}

type RoomPicture struct {
	ID     int64
	RoomID int64
	URL    string
}
