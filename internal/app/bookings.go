package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"hotelbooking/internal/domain"
)

// BookingService validates reservation requests against live inventory,
// prices them and persists the result. Bookings are never mutated or
// deleted after creation.
type BookingService struct {
	hotels   domain.HotelRepository
	bookings domain.BookingRepository
}

func NewBookingService(h domain.HotelRepository, b domain.BookingRepository) *BookingService {
	return &BookingService{hotels: h, bookings: b}
}

type BookingRequest struct {
	HotelID   int64
	RoomID    int64
	StartDate time.Time
	EndDate   time.Time
	Guests    int
	Breakfast bool
	UserID    int64
}

// Quote prices a stay without creating anything.
func (s *BookingService) Quote(ctx context.Context, roomID int64, start, end time.Time, guests int, breakfast bool) (float64, error) {
	room, err := s.hotels.GetRoom(ctx, roomID)
	if err != nil {
		if domain.IsNotFound(err) {
			return 0, domain.NotFound("invalid room id")
		}
		return 0, err
	}
	return TotalCost(room.Price, nightsBetween(start, end), guests, breakfast), nil
}

// Create validates the request, recomputes the total server-side and
// persists the booking. The total is always derived from the stored room
// rate; a caller-submitted price is never trusted. Overlapping bookings
// for the same room are accepted.
func (s *BookingService) Create(ctx context.Context, req BookingRequest) (domain.Booking, error) {
	if req.HotelID <= 0 || req.RoomID <= 0 {
		return domain.Booking{}, domain.Validation("invalid booking details")
	}
	if !req.StartDate.Before(req.EndDate) {
		return domain.Booking{}, domain.Validation("start date must be before end date")
	}

	hotel, err := s.hotels.GetHotel(ctx, req.HotelID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.Booking{}, domain.NotFound("no hotel found with the provided hotel id: %d", req.HotelID)
		}
		return domain.Booking{}, err
	}
	room, err := s.hotels.GetRoom(ctx, req.RoomID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.Booking{}, domain.NotFound("no room found with the provided room id: %d", req.RoomID)
		}
		return domain.Booking{}, err
	}

	nights := nightsBetween(req.StartDate, req.EndDate)
	b := domain.Booking{
		HotelID:   hotel.ID,
		RoomID:    room.ID,
		UserID:    req.UserID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Nights:    nights,
		Guests:    req.Guests,
		Breakfast: req.Breakfast,
		TotalCost: TotalCost(room.Price, nights, req.Guests, req.Breakfast),
	}
	if err := s.bookings.CreateBooking(ctx, &b); err != nil {
		return domain.Booking{}, err
	}
	b.Hotel = &hotel
	b.Room = &room

	log.Info().
		Int64("booking_id", b.ID).
		Int64("room_id", b.RoomID).
		Int64("user_id", b.UserID).
		Float64("total", b.TotalCost).
		Msg("booking created")
	return b, nil
}

func (s *BookingService) Get(ctx context.Context, id int64) (domain.Booking, error) {
	b, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.Booking{}, domain.NotFound("invalid booking id")
		}
		return domain.Booking{}, err
	}
	return b, nil
}

// ListForUser returns the caller's bookings with hotel/room context.
// Order is not part of the contract; an empty slice is a valid result.
func (s *BookingService) ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListUserBookings(ctx, userID)
}
