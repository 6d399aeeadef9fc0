package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"

	"hotelbooking/internal/domain"
)

const mysqlDupEntry = 1062

// Repo implements the hotel, booking and user repositories on one MySQL
// handle. Every write operates via identifier lookup immediately before
// the statement; no row reference is held across calls.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- catalog ----

func (r *Repo) SeedHotel(ctx context.Context, h *domain.Hotel) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, insertHotelSQL,
		h.Name, h.Location, h.PictureURL, h.Rating, h.NumRatings, h.Stars)
	if err != nil {
		return err
	}
	if h.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	for i := range h.Rooms {
		room := &h.Rooms[i]
		room.HotelID = h.ID
		res, err := tx.ExecContext(ctx, insertRoomSQL,
			room.HotelID, room.Type, room.Price, room.MaxGuests)
		if err != nil {
			return err
		}
		if room.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		for j := range room.Pictures {
			pic := &room.Pictures[j]
			pic.RoomID = room.ID
			res, err := tx.ExecContext(ctx, insertRoomPictureSQL, pic.RoomID, pic.URL)
			if err != nil {
				return err
			}
			if pic.ID, err = res.LastInsertId(); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	var h domain.Hotel
	err := r.db.QueryRowContext(ctx, getHotelSQL, id).Scan(
		&h.ID, &h.Name, &h.Location, &h.PictureURL, &h.Rating, &h.NumRatings, &h.Stars)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Hotel{}, domain.NotFound("hotel not found")
		}
		return domain.Hotel{}, err
	}

	rooms, err := r.queryRooms(ctx, listRoomsByHotelSQL, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	pics, err := r.queryPictures(ctx, listPicturesByHotelSQL, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	attachPictures(rooms, pics)
	h.Rooms = rooms
	return h, nil
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hotels []domain.Hotel
	byID := map[int64]int{}
	for rows.Next() {
		var h domain.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Location, &h.PictureURL, &h.Rating, &h.NumRatings, &h.Stars); err != nil {
			return nil, err
		}
		byID[h.ID] = len(hotels)
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rooms, err := r.queryRooms(ctx, listAllRoomsSQL)
	if err != nil {
		return nil, err
	}
	pics, err := r.queryPictures(ctx, listAllPicturesSQL)
	if err != nil {
		return nil, err
	}
	attachPictures(rooms, pics)
	for _, room := range rooms {
		if i, ok := byID[room.HotelID]; ok {
			hotels[i].Rooms = append(hotels[i].Rooms, room)
		}
	}
	return hotels, nil
}

func (r *Repo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	var room domain.Room
	err := r.db.QueryRowContext(ctx, getRoomSQL, id).Scan(
		&room.ID, &room.HotelID, &room.Type, &room.Price, &room.MaxGuests)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Room{}, domain.NotFound("room not found")
		}
		return domain.Room{}, err
	}
	return room, nil
}

func (r *Repo) queryRooms(ctx context.Context, query string, args ...any) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.HotelID, &room.Type, &room.Price, &room.MaxGuests); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

func (r *Repo) queryPictures(ctx context.Context, query string, args ...any) ([]domain.RoomPicture, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RoomPicture
	for rows.Next() {
		var p domain.RoomPicture
		if err := rows.Scan(&p.ID, &p.RoomID, &p.URL); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func attachPictures(rooms []domain.Room, pics []domain.RoomPicture) {
	byRoom := map[int64]int{}
	for i := range rooms {
		byRoom[rooms[i].ID] = i
	}
	for _, p := range pics {
		if i, ok := byRoom[p.RoomID]; ok {
			rooms[i].Pictures = append(rooms[i].Pictures, p)
		}
	}
}

// ---- bookings ----

func (r *Repo) CreateBooking(ctx context.Context, b *domain.Booking) error {
	res, err := r.db.ExecContext(ctx, insertBookingSQL,
		b.HotelID, b.RoomID, b.UserID,
		b.StartDate, b.EndDate, b.Nights, b.Guests, b.Breakfast, b.TotalCost)
	if err != nil {
		return err
	}
	b.ID, err = res.LastInsertId()
	return err
}

func (r *Repo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, getBookingSQL, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Booking{}, domain.NotFound("booking not found")
		}
		return domain.Booking{}, err
	}
	return b, nil
}

func (r *Repo) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, listUserBookingsSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanBooking(row rowScanner) (domain.Booking, error) {
	var (
		b domain.Booking
		h domain.Hotel
		m domain.Room
	)
	err := row.Scan(
		&b.ID, &b.HotelID, &b.RoomID, &b.UserID,
		&b.StartDate, &b.EndDate, &b.Nights, &b.Guests, &b.Breakfast, &b.TotalCost,
		&h.Name, &h.Location, &h.PictureURL, &h.Rating, &h.NumRatings, &h.Stars,
		&m.Type, &m.Price, &m.MaxGuests,
	)
	if err != nil {
		return domain.Booking{}, err
	}
	h.ID = b.HotelID
	m.ID = b.RoomID
	m.HotelID = b.HotelID
	b.Hotel = &h
	b.Room = &m
	return b, nil
}

// ---- users ----

func (r *Repo) CreateUser(ctx context.Context, u *domain.User) error {
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Username, u.Email, u.PasswordHash, u.VerificationCode, u.Verified, u.RegisteredAt)
	if err != nil {
		// The uniqueness pre-check races concurrent registrations; the
		// unique index is the backstop.
		var me *mysqldrv.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDupEntry {
			return domain.Conflict("email or username already exists")
		}
		return err
	}
	u.ID, err = res.LastInsertId()
	return err
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getUser(ctx, getUserByEmailSQL, email)
}

func (r *Repo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getUser(ctx, getUserByUsernameSQL, username)
}

func (r *Repo) getUser(ctx context.Context, query, arg string) (domain.User, error) {
	var (
		u    domain.User
		code sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &code, &u.Verified, &u.RegisteredAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.User{}, domain.NotFound("user not found")
		}
		return domain.User{}, err
	}
	if code.Valid {
		c := code.String
		u.VerificationCode = &c
	}
	return u, nil
}

func (r *Repo) UserTaken(ctx context.Context, email, username string) (bool, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx, userTakenSQL, email, username).Scan(&taken)
	return taken, err
}

func (r *Repo) MarkVerified(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, markVerifiedSQL, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *Repo) DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteUnverifiedSQL, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
