package app_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"hotelbooking/internal/app"
	"hotelbooking/internal/domain"
)

// ---- fakes ----

type fakeCatalogRepo struct {
	hotels map[int64]domain.Hotel
	rooms  map[int64]domain.Room
}

func (f *fakeCatalogRepo) SeedHotel(ctx context.Context, h *domain.Hotel) error { return nil }

func (f *fakeCatalogRepo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.NotFound("hotel not found")
	}
	return h, nil
}

func (f *fakeCatalogRepo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	var out []domain.Hotel
	for _, h := range f.hotels {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return domain.Room{}, domain.NotFound("room not found")
	}
	return r, nil
}

type fakeBookingRepo struct {
	nextID  int64
	rows    map[int64]domain.Booking
	creates int
}

func (f *fakeBookingRepo) CreateBooking(ctx context.Context, b *domain.Booking) error {
	if f.rows == nil {
		f.rows = map[int64]domain.Booking{}
	}
	f.nextID++
	b.ID = f.nextID
	f.rows[b.ID] = *b
	f.creates++
	return nil
}

func (f *fakeBookingRepo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	b, ok := f.rows[id]
	if !ok {
		return domain.Booking{}, domain.NotFound("booking not found")
	}
	return b, nil
}

func (f *fakeBookingRepo) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	out := []domain.Booking{}
	for _, b := range f.rows {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func newBookingFixture() (*app.BookingService, *fakeBookingRepo) {
	catalog := &fakeCatalogRepo{
		hotels: map[int64]domain.Hotel{1: {ID: 1, Name: "Grand Meridian", Stars: 5}},
		rooms:  map[int64]domain.Room{10: {ID: 10, HotelID: 1, Type: "Standard", Price: 100, MaxGuests: 2}},
	}
	bookings := &fakeBookingRepo{}
	return app.NewBookingService(catalog, bookings), bookings
}

func day(d int) time.Time { return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC) }

// ---- quote ----

func TestQuote(t *testing.T) {
	svc, _ := newBookingFixture()

	total, err := svc.Quote(context.Background(), 10, day(1), day(3), 2, true)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if total != 280 {
		t.Fatalf("total = %v, want 280", total)
	}
}

func TestQuote_UnknownRoom(t *testing.T) {
	svc, _ := newBookingFixture()

	_, err := svc.Quote(context.Background(), 999, day(1), day(3), 2, false)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("kind = %v, want not-found", domain.KindOf(err))
	}
	if err.Error() != "invalid room id" {
		t.Fatalf("msg = %q", err.Error())
	}
}

// ---- create ----

func TestCreateBooking_RejectsNonPositiveIDs(t *testing.T) {
	svc, repo := newBookingFixture()

	for _, req := range []app.BookingRequest{
		{HotelID: 0, RoomID: 10, StartDate: day(1), EndDate: day(3), Guests: 2, UserID: 7},
		{HotelID: 1, RoomID: 0, StartDate: day(1), EndDate: day(3), Guests: 2, UserID: 7},
	} {
		_, err := svc.Create(context.Background(), req)
		if domain.KindOf(err) != domain.KindValidation || err.Error() != "invalid booking details" {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if repo.creates != 0 {
		t.Fatalf("no row should be written, got %d", repo.creates)
	}
}

func TestCreateBooking_RejectsInvertedDates(t *testing.T) {
	svc, _ := newBookingFixture()

	for _, end := range []time.Time{day(1), day(0)} { // equal and inverted
		_, err := svc.Create(context.Background(), app.BookingRequest{
			HotelID: 1, RoomID: 10, StartDate: day(1), EndDate: end, Guests: 2, UserID: 7,
		})
		if domain.KindOf(err) != domain.KindValidation {
			t.Fatalf("kind = %v, want validation", domain.KindOf(err))
		}
		if err.Error() != "start date must be before end date" {
			t.Fatalf("msg = %q", err.Error())
		}
	}
}

func TestCreateBooking_UnknownReferences(t *testing.T) {
	svc, _ := newBookingFixture()

	_, err := svc.Create(context.Background(), app.BookingRequest{
		HotelID: 999, RoomID: 10, StartDate: day(1), EndDate: day(3), Guests: 2, UserID: 7,
	})
	if domain.KindOf(err) != domain.KindNotFound || !strings.Contains(err.Error(), "999") {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Create(context.Background(), app.BookingRequest{
		HotelID: 1, RoomID: 999, StartDate: day(1), EndDate: day(3), Guests: 2, UserID: 7,
	})
	if domain.KindOf(err) != domain.KindNotFound || !strings.Contains(err.Error(), "999") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Pins the cost trust boundary: the server derives the total from the
// stored room rate, never from the caller.
func TestCreateBooking_RecomputesTotal(t *testing.T) {
	svc, repo := newBookingFixture()

	b, err := svc.Create(context.Background(), app.BookingRequest{
		HotelID: 1, RoomID: 10, StartDate: day(1), EndDate: day(3), Guests: 2, Breakfast: true, UserID: 7,
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if b.TotalCost != 280 {
		t.Fatalf("total = %v, want 280", b.TotalCost)
	}
	if b.Nights != 2 {
		t.Fatalf("nights = %d, want 2", b.Nights)
	}
	if b.UserID != 7 {
		t.Fatalf("user = %d, want 7", b.UserID)
	}
	if b.Hotel == nil || b.Room == nil {
		t.Fatal("hotel/room context should be attached")
	}
	if stored := repo.rows[b.ID]; stored.TotalCost != 280 {
		t.Fatalf("persisted total = %v, want 280", stored.TotalCost)
	}
}

// ---- reads ----

func TestGetBooking(t *testing.T) {
	svc, _ := newBookingFixture()

	created, err := svc.Create(context.Background(), app.BookingRequest{
		HotelID: 1, RoomID: 10, StartDate: day(1), EndDate: day(2), Guests: 1, UserID: 7,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID || got.TotalCost != created.TotalCost {
		t.Fatalf("unexpected booking: %+v", got)
	}

	// repeated reads with no writes are identical
	again, err := svc.Get(context.Background(), created.ID)
	if err != nil || again != got {
		t.Fatalf("reads differ: %+v vs %+v", got, again)
	}

	_, err = svc.Get(context.Background(), 404)
	if domain.KindOf(err) != domain.KindNotFound || err.Error() != "invalid booking id" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListForUser(t *testing.T) {
	svc, _ := newBookingFixture()

	bs, err := svc.ListForUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(bs) != 0 {
		t.Fatalf("expected empty slice, got %d", len(bs))
	}

	if _, err := svc.Create(context.Background(), app.BookingRequest{
		HotelID: 1, RoomID: 10, StartDate: day(1), EndDate: day(2), Guests: 1, UserID: 7,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	bs, err = svc.ListForUser(context.Background(), 7)
	if err != nil || len(bs) != 1 {
		t.Fatalf("expected one booking, got %d (err %v)", len(bs), err)
	}
	other, err := svc.ListForUser(context.Background(), 8)
	if err != nil || len(other) != 0 {
		t.Fatalf("user 8 should have none, got %d", len(other))
	}
}
