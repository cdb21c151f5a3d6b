package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayfinder/internal/adapters/observability"
	"stayfinder/internal/app"
	"stayfinder/internal/domain"
)

type Handlers struct {
	Search   *app.SearchService
	Pricing  *app.PricingService
	Bookings *app.BookingService
	Reviews  *app.ReviewService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/hotels", h.searchHotels)
	s.mux.Get("/v1/hotels/featured", h.featuredHotels)
	s.mux.Get("/v1/hotels/{id}", h.getHotel)
	s.mux.Get("/v1/hotels/{id}/rooms", h.availableRooms)
	s.mux.Get("/v1/hotels/{id}/reviews", h.listReviews)
	s.mux.Get("/v1/hotels/{id}/reviews/stats", h.reviewStats)
	s.mux.Get("/v1/destinations/suggest", h.suggestDestinations)

	s.mux.Post("/v1/quotes", h.quote)
	s.mux.Post("/v1/promos/validate", h.validatePromo)

	s.mux.Post("/v1/bookings", h.createBooking)
	s.mux.Get("/v1/bookings/{confirmation}", h.getBookingByConfirmation)
	s.mux.Post("/v1/bookings/{id}/cancel", h.cancelBooking)
	s.mux.Get("/v1/users/{id}/bookings", h.userBookings)

	s.mux.Post("/v1/reviews", h.createReview)
	s.mux.Post("/v1/reviews/{id}/helpful", h.markHelpful)
	s.mux.Delete("/v1/reviews/{id}", h.deleteReview)

	s.mux.Post("/v1/drafts", h.saveDraft)
	s.mux.Get("/v1/drafts/{token}", h.loadDraft)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeErr maps the domain error taxonomy onto problem responses.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "the requested resource does not exist")
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeProblem(w, http.StatusServiceUnavailable, "Store Unavailable", "the record store could not complete the operation")
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

// parseDate accepts YYYY-MM-DD or RFC3339.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

/********** hotels & search **********/

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := domain.SearchParams{
		Destination: q.Get("destination"),
		SortBy:      domain.SortKey(q.Get("sortBy")),
	}
	if minS, maxS := q.Get("minPrice"), q.Get("maxPrice"); minS != "" || maxS != "" {
		min, err1 := strconv.ParseFloat(minS, 64)
		max, err2 := strconv.ParseFloat(maxS, 64)
		if err1 != nil || err2 != nil || min > max {
			writeProblem(w, http.StatusBadRequest, "Invalid price range", "minPrice and maxPrice must be numbers with minPrice <= maxPrice")
			return
		}
		p.PriceRange = &domain.PriceRange{Min: min, Max: max}
	}
	if stars := q.Get("stars"); stars != "" {
		for _, part := range strings.Split(stars, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				writeProblem(w, http.StatusBadRequest, "Invalid stars", "stars must be a comma-separated list of integers")
				return
			}
			p.StarRatings = append(p.StarRatings, n)
		}
	}
	if am := q.Get("amenities"); am != "" {
		for _, part := range strings.Split(am, ",") {
			if t := strings.TrimSpace(part); t != "" {
				p.Amenities = append(p.Amenities, t)
			}
		}
	}

	hotels, err := h.Search.Search(r.Context(), p)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hotels)
}

func (h *Handlers) featuredHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Search.Featured(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hotels)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	hotel, err := h.Search.GetHotel(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeWithETag(w, r, hotel)
}

func (h *Handlers) suggestDestinations(w http.ResponseWriter, r *http.Request) {
	out, err := h.Search.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

/********** availability & pricing **********/

func stayParams(r *http.Request) (checkIn, checkOut time.Time, guests int, ok bool) {
	q := r.URL.Query()
	checkIn, ok1 := parseDate(q.Get("checkIn"))
	checkOut, ok2 := parseDate(q.Get("checkOut"))
	guests, err := strconv.Atoi(q.Get("guests"))
	if !ok1 || !ok2 || err != nil {
		return time.Time{}, time.Time{}, 0, false
	}
	return checkIn, checkOut, guests, true
}

func (h *Handlers) availableRooms(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	checkIn, checkOut, guests, ok := stayParams(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid stay", "checkIn, checkOut and guests are required")
		return
	}
	quotes, err := h.Pricing.AvailableRooms(r.Context(), id, checkIn, checkOut, guests)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

type quoteRequest struct {
	HotelID    int64  `json:"hotelId"`
	RoomID     *int64 `json:"roomId"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	GuestCount int    `json:"guestCount"`
	PromoCode  string `json:"promoCode"`
}

func (h *Handlers) quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "malformed JSON")
		return
	}
	checkIn, ok1 := parseDate(req.CheckIn)
	checkOut, ok2 := parseDate(req.CheckOut)
	if !ok1 || !ok2 {
		writeProblem(w, http.StatusBadRequest, "Invalid dates", "checkIn and checkOut must be dates")
		return
	}

	var q domain.Quote
	var err error
	if req.RoomID != nil {
		q, err = h.Pricing.QuoteRoom(r.Context(), *req.RoomID, checkIn, checkOut, req.GuestCount, req.PromoCode)
	} else {
		q, err = h.Pricing.QuoteHotel(r.Context(), req.HotelID, checkIn, checkOut, req.GuestCount, req.PromoCode)
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handlers) validatePromo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "malformed JSON")
		return
	}
	promo, err := app.ValidatePromoCode(req.Code)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, promo)
}

/********** bookings **********/

type bookingRequest struct {
	UserID          string `json:"userId"`
	HotelID         int64  `json:"hotelId"`
	RoomID          *int64 `json:"roomId"`
	CheckIn         string `json:"checkIn"`
	CheckOut        string `json:"checkOut"`
	GuestCount      int    `json:"guestCount"`
	GuestName       string `json:"guestName"`
	GuestEmail      string `json:"guestEmail"`
	GuestPhone      string `json:"guestPhone"`
	SpecialRequests string `json:"specialRequests"`
	PromoCode       string `json:"promoCode"`
	PaymentMethod   string `json:"paymentMethod"`
	PaymentStatus   string `json:"paymentStatus"`
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "malformed JSON")
		return
	}
	checkIn, ok1 := parseDate(req.CheckIn)
	checkOut, ok2 := parseDate(req.CheckOut)
	if !ok1 || !ok2 {
		writeProblem(w, http.StatusBadRequest, "Invalid dates", "checkIn and checkOut must be dates")
		return
	}

	booking, err := h.Bookings.Create(r.Context(), app.BookingInput{
		UserID:          req.UserID,
		HotelID:         req.HotelID,
		RoomID:          req.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		GuestCount:      req.GuestCount,
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		SpecialRequests: req.SpecialRequests,
		PromoCode:       req.PromoCode,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   domain.PaymentStatus(req.PaymentStatus),
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	observability.ObserveBooking(string(booking.PaymentStatus))
	writeJSON(w, http.StatusCreated, booking)
}

func (h *Handlers) getBookingByConfirmation(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "confirmation")
	booking, err := h.Bookings.GetByConfirmation(r.Context(), code)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "malformed JSON")
		return
	}
	booking, err := h.Bookings.Cancel(r.Context(), id, req.Reason)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *Handlers) userBookings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	bookings, err := h.Bookings.ListUserBookings(r.Context(), userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

/********** reviews **********/

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	reviews, err := h.Reviews.ListHotelReviews(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeWithETag(w, r, reviews)
}

func (h *Handlers) reviewStats(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	stats, err := h.Reviews.Stats(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var in app.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "malformed JSON")
		return
	}
	review, err := h.Reviews.Create(r.Context(), in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *Handlers) markHelpful(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	review, err := h.Reviews.MarkHelpful(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	if err := h.Reviews.Delete(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/********** booking drafts **********/

type draftRequest struct {
	HotelID    int64  `json:"hotelId"`
	RoomID     *int64 `json:"roomId"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	GuestCount int    `json:"guestCount"`
}

func (h *Handlers) saveDraft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "malformed JSON")
		return
	}
	checkIn, ok1 := parseDate(req.CheckIn)
	checkOut, ok2 := parseDate(req.CheckOut)
	if !ok1 || !ok2 {
		writeProblem(w, http.StatusBadRequest, "Invalid dates", "checkIn and checkOut must be dates")
		return
	}
	token, err := h.Bookings.SaveDraft(r.Context(), domain.Draft{
		HotelID:    req.HotelID,
		RoomID:     req.RoomID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestCount: req.GuestCount,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

func (h *Handlers) loadDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.Bookings.LoadDraft(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}
