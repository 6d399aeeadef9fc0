package domain

import (
	"context"
	"time"
)

type HotelRepository interface {
	// Write path (seed/import time only)
	SeedHotel(ctx context.Context, h *Hotel) error

	// Read paths
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	ListHotels(ctx context.Context) ([]Hotel, error)
	GetRoom(ctx context.Context, id int64) (Room, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, b *Booking) error
	GetBooking(ctx context.Context, id int64) (Booking, error)
	ListUserBookings(ctx context.Context, userID int64) ([]Booking, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	UserTaken(ctx context.Context, email, username string) (bool, error)

	// MarkVerified flips the row to verified and clears the code. It
	// reports false when the row is already verified or no longer exists,
	// so callers racing the cleanup sweep can degrade gracefully.
	MarkVerified(ctx context.Context, id int64) (bool, error)

	// DeleteUnverifiedBefore removes unverified rows registered before
	// cutoff and returns how many were deleted.
	DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type Mailer interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}
