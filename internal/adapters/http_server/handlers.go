package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"hotelbooking/internal/app"
	"hotelbooking/internal/domain"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

type Handlers struct {
	Catalog  *app.CatalogService
	Bookings *app.BookingService
	Users    *app.UserService
	Tokens   *app.TokenIssuer
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/hotels", h.listHotels)
		r.Get("/hotels/{id}", h.getHotel)
		r.Post("/bookings/quote", h.quote)
		r.Get("/bookings/{id}", h.getBooking)
		r.Post("/users/register", h.register)
		r.Post("/users/verify", h.verifyEmail)
		r.Post("/users/login", h.login)

		r.Group(func(pr chi.Router) {
			pr.Use(Auth(h.Tokens))
			pr.Post("/bookings", h.createBooking)
			pr.Get("/bookings", h.listMyBookings)
		})
	})
}

// ---- problem responses ----

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the domain failure taxonomy onto HTTP statuses.
// Unclassified errors are infrastructure failures and stay opaque.
func writeError(w http.ResponseWriter, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case domain.KindNotFound:
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case domain.KindConflict:
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	case domain.KindAuth:
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "unexpected error")
	}
}

func decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// ---- catalog ----

type roomResponse struct {
	ID        int64    `json:"id"`
	Type      string   `json:"type"`
	Price     float64  `json:"price"`
	MaxGuests int      `json:"max_guests"`
	Pictures  []string `json:"pictures"`
}

type hotelResponse struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	Location   string         `json:"location"`
	PictureURL string         `json:"picture_url"`
	Rating     float64        `json:"rating"`
	NumRatings int            `json:"num_ratings"`
	Stars      int            `json:"stars"`
	Rooms      []roomResponse `json:"rooms"`
}

func toHotelResponse(h domain.Hotel) hotelResponse {
	out := hotelResponse{
		ID: h.ID, Name: h.Name, Location: h.Location, PictureURL: h.PictureURL,
		Rating: h.Rating, NumRatings: h.NumRatings, Stars: h.Stars,
		Rooms: []roomResponse{},
	}
	for _, r := range h.Rooms {
		rr := roomResponse{ID: r.ID, Type: r.Type, Price: r.Price, MaxGuests: r.MaxGuests, Pictures: []string{}}
		for _, p := range r.Pictures {
			rr.Pictures = append(rr.Pictures, p.URL)
		}
		out.Rooms = append(out.Rooms, rr)
	}
	return out
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Catalog.ListHotels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]hotelResponse, 0, len(hotels))
	for _, ht := range hotels {
		out = append(out, toHotelResponse(ht))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	hotel, err := h.Catalog.GetHotel(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHotelResponse(hotel))
}

// ---- bookings ----

type quoteRequest struct {
	RoomID    int64  `json:"room_id"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Guests    int    `json:"guests" validate:"gte=1"`
	Breakfast bool   `json:"include_breakfast"`
}

func (h *Handlers) quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if !decodeValid(w, r, &req) {
		return
	}
	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)
	total, err := h.Bookings.Quote(r.Context(), req.RoomID, start, end, req.Guests, req.Breakfast)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"total_cost": total})
}

type createBookingRequest struct {
	HotelID   int64  `json:"hotel_id"`
	RoomID    int64  `json:"room_id"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Guests    int    `json:"guests" validate:"gte=1"`
	Breakfast bool   `json:"include_breakfast"`
	// Accepted for request-shape compatibility; the server always
	// recomputes the total from the stored room rate.
	TotalCost float64 `json:"total_cost"`
}

type bookingResponse struct {
	ID        int64   `json:"id"`
	HotelID   int64   `json:"hotel_id"`
	RoomID    int64   `json:"room_id"`
	HotelName string  `json:"hotel_name,omitempty"`
	RoomType  string  `json:"room_type,omitempty"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Nights    int     `json:"nights"`
	Guests    int     `json:"guests"`
	Breakfast bool    `json:"include_breakfast"`
	TotalCost float64 `json:"total_cost"`
}

func toBookingResponse(b domain.Booking) bookingResponse {
	out := bookingResponse{
		ID: b.ID, HotelID: b.HotelID, RoomID: b.RoomID,
		StartDate: b.StartDate.Format(dateLayout),
		EndDate:   b.EndDate.Format(dateLayout),
		Nights:    b.Nights, Guests: b.Guests, Breakfast: b.Breakfast,
		TotalCost: b.TotalCost,
	}
	if b.Hotel != nil {
		out.HotelName = b.Hotel.Name
	}
	if b.Room != nil {
		out.RoomType = b.Room.Type
	}
	return out
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "missing identity")
		return
	}
	var req createBookingRequest
	if !decodeValid(w, r, &req) {
		return
	}
	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)
	b, err := h.Bookings.Create(r.Context(), app.BookingRequest{
		HotelID:   req.HotelID,
		RoomID:    req.RoomID,
		StartDate: start,
		EndDate:   end,
		Guests:    req.Guests,
		Breakfast: req.Breakfast,
		UserID:    uid,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingResponse(b))
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	b, err := h.Bookings.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(b))
}

func (h *Handlers) listMyBookings(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "missing identity")
		return
	}
	bs, err := h.Bookings.ListForUser(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]bookingResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookingResponse(b))
	}
	writeJSON(w, http.StatusOK, out)
}

// ---- users ----

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeValid(w, r, &req) {
		return
	}
	if err := h.Users.Register(r.Context(), req.Email, req.Username, req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Registration successful. Please check your email for verification code.",
	})
}

type verifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"verification_code" validate:"required,len=6"`
}

func (h *Handlers) verifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !decodeValid(w, r, &req) {
		return
	}
	if err := h.Users.Verify(r.Context(), req.Email, req.Code); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Email verified successfully."})
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeValid(w, r, &req) {
		return
	}
	u, err := h.Users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := h.Tokens.Issue(u)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, Username: u.Username, Email: u.Email})
}
