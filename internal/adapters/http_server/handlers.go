// internal/adapters/http_server/handlers.go
package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog/log"

	"hotel_recommender/internal/app"
	"hotel_recommender/internal/domain"
)

const maxBody = 1 << 20

type Handlers struct {
	Q          *app.QueryService
	Admin      *app.AdminService
	Bookings   *app.BookingService
	AdminToken string

	// RecommendPerMinute caps POST /recommendations per client IP; 0 disables it.
	RecommendPerMinute int
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type message struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, message{Message: "Welcome to the Hotel Recommendation API!"})
	})
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/hotels", h.searchHotels)
	s.mux.Group(func(r chi.Router) {
		if h.RecommendPerMinute > 0 {
			r.Use(httprate.LimitByIP(h.RecommendPerMinute, time.Minute))
		}
		r.Post("/recommendations", h.recommend)
	})

	s.mux.Group(func(r chi.Router) {
		r.Use(RequireToken(h.AdminToken))
		r.Post("/admin/hotels", h.createHotel)
		r.Delete("/admin/hotels/{id}", h.deleteHotel)
		r.Put("/admin/hotels/{id}", h.updatePrice)
		r.Post("/bookings", h.createBooking)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeStoreError maps admin store failures onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "Database unavailable")
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
	default:
		log.Error().Err(err).Msg("admin store operation failed")
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	}
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("malformed JSON body: %w", err)
	}
	return nil
}

// ---- search ----

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	minPrice, err := floatParam(q.Get("min_price"), domain.DefaultMinPrice)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid min_price", "min_price must be a number")
		return
	}
	maxPrice, err := floatParam(q.Get("max_price"), domain.DefaultMaxPrice)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid max_price", "max_price must be a number")
		return
	}
	skip, err := intParam(q.Get("skip"), 0)
	if err != nil || skip < 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid skip", "skip must be a non-negative integer")
		return
	}
	limit, err := intParam(q.Get("limit"), 10)
	if err != nil || limit < 1 || limit > 100 {
		writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 100")
		return
	}

	c := domain.FilterCriteria{
		Location:  strings.TrimSpace(q.Get("location")),
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		Amenities: listParam(q["amenities"]),
	}
	writeJSON(w, http.StatusOK, h.Q.Search(r.Context(), c, skip, limit))
}

func floatParam(s string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}

func intParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

// listParam accepts both ?amenities=a&amenities=b and ?amenities=a,b.
func listParam(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, p := range strings.Split(v, ",") {
			if t := strings.TrimSpace(p); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

// ---- recommendations ----

type preferenceRequest struct {
	Location          string   `json:"location" validate:"max=200"`
	MinPrice          *float64 `json:"min_price"`
	MaxPrice          *float64 `json:"max_price"`
	RequiredAmenities []string `json:"required_amenities" validate:"max=50,dive,max=100"`
	TripDescription   string   `json:"trip_description" validate:"max=2000"`
}

// toDomain applies the price defaults. A whitespace-only trip description
// carries no intent, so it is trimmed to empty and does not trigger reranking.
func (p preferenceRequest) toDomain() domain.UserPreference {
	out := domain.UserPreference{
		Location:          strings.TrimSpace(p.Location),
		MinPrice:          domain.DefaultMinPrice,
		MaxPrice:          domain.DefaultMaxPrice,
		RequiredAmenities: p.RequiredAmenities,
		TripDescription:   strings.TrimSpace(p.TripDescription),
	}
	if p.MinPrice != nil {
		out.MinPrice = *p.MinPrice
	}
	if p.MaxPrice != nil {
		out.MaxPrice = *p.MaxPrice
	}
	return out
}

func (h *Handlers) recommend(w http.ResponseWriter, r *http.Request) {
	var req preferenceRequest
	if err := decodeBody(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	if msg := validateStruct(req); msg != "" {
		writeProblem(w, http.StatusBadRequest, "Invalid preference", msg)
		return
	}
	writeJSON(w, http.StatusOK, h.Q.Recommend(r.Context(), req.toDomain()))
}

// ---- admin ----

type hotelRequest struct {
	ID          int64    `json:"id" validate:"gte=0"`
	Name        string   `json:"name" validate:"required,max=255"`
	Location    string   `json:"location" validate:"required,max=255"`
	Price       float64  `json:"price" validate:"gte=0"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"`
	Amenities   []string `json:"amenities" validate:"dive,max=100"`
	Description string   `json:"description"`
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var req hotelRequest
	if err := decodeBody(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	if msg := validateStruct(req); msg != "" {
		writeProblem(w, http.StatusBadRequest, "Invalid hotel", msg)
		return
	}
	created, err := h.Admin.CreateHotel(r.Context(), domain.Hotel(req))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message{Message: "Hotel created successfully", Data: created})
}

func hotelID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return 0, false
	}
	return id, true
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := hotelID(w, r)
	if !ok {
		return
	}
	if err := h.Admin.DeleteHotel(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, message{Message: fmt.Sprintf("Hotel %d deleted", id)})
}

func (h *Handlers) updatePrice(w http.ResponseWriter, r *http.Request) {
	id, ok := hotelID(w, r)
	if !ok {
		return
	}
	price, err := decodePrice(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	if price < 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid price", "price must be greater than or equal to 0")
		return
	}
	if err := h.Admin.UpdatePrice(r.Context(), id, price); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, message{
		Message: fmt.Sprintf("Hotel %d price updated to %s", id, strconv.FormatFloat(price, 'f', -1, 64)),
	})
}

// decodePrice accepts a bare JSON number or {"price": n}.
func decodePrice(r *http.Request) (float64, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		return 0, err
	}
	raw = bytes.TrimSpace(raw)

	var bare float64
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}
	var obj struct {
		Price *float64 `json:"price"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil || obj.Price == nil {
		return 0, errors.New(`body must be a number or {"price": number}`)
	}
	return *obj.Price, nil
}

// ---- bookings ----

type bookingResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	User      string `json:"user"`
	BookingID string `json:"booking_id"`
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req domain.BookingRequest
	if err := decodeBody(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	if msg := validateStruct(req); msg != "" {
		writeProblem(w, http.StatusBadRequest, "Invalid booking", msg)
		return
	}
	b := h.Bookings.Book(r.Context(), req)
	writeJSON(w, http.StatusOK, bookingResponse{
		Status:    "confirmed",
		Message:   "Booking received! Confirmation email will be sent shortly.",
		User:      b.GuestName,
		BookingID: b.ID,
	})
}
