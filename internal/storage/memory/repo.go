// Package memory is the in-memory Repository: the fallback backend
// when no record store is configured, and the test double for the
// application services. Entities are copied in and out so callers
// never alias the backing slices.
package memory

import (
	"context"
	"sort"
	"sync"

	"stayfinder/internal/domain"
)

type Repo struct {
	mu       sync.RWMutex
	hotels   map[int64]domain.Hotel
	rooms    map[int64]domain.Room
	bookings map[int64]domain.Booking
	reviews  map[int64]domain.Review

	nextBookingID int64
	nextReviewID  int64
}

func New() *Repo {
	return &Repo{
		hotels:        map[int64]domain.Hotel{},
		rooms:         map[int64]domain.Room{},
		bookings:      map[int64]domain.Booking{},
		reviews:       map[int64]domain.Review{},
		nextBookingID: 1,
		nextReviewID:  1,
	}
}

func (r *Repo) Close() error { return nil }

/********** hotels & rooms **********/

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Hotel, 0, len(r.hotels))
	for _, h := range r.hotels {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hotels[h.ID] = h
	return nil
}

func (r *Repo) ListRoomsByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Room
	for _, rm := range r.rooms {
		if rm.HotelID == hotelID {
			out = append(out, rm)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	return rm, nil
}

func (r *Repo) UpsertRoom(ctx context.Context, rm domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[rm.ID] = rm
	return nil
}

/********** bookings **********/

func (r *Repo) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = r.nextBookingID
	r.nextBookingID++
	r.bookings[b.ID] = b
	return b, nil
}

func (r *Repo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, nil
}

func (r *Repo) GetBookingByConfirmation(ctx context.Context, code string) (domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.bookings {
		if b.ConfirmationNumber == code {
			return b, nil
		}
	}
	return domain.Booking{}, domain.ErrNotFound
}

func (r *Repo) ListUserBookings(ctx context.Context, userID string, limit int) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Repo) UpdateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	r.bookings[b.ID] = b
	return b, nil
}

/********** reviews **********/

func (r *Repo) CreateReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv.ID = r.nextReviewID
	r.nextReviewID++
	r.reviews[rv.ID] = rv
	return rv, nil
}

func (r *Repo) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rv, ok := r.reviews[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	return rv, nil
}

func (r *Repo) ListHotelReviews(ctx context.Context, hotelID int64) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Review
	for _, rv := range r.reviews {
		if rv.HotelID == hotelID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Repo) ListUserReviews(ctx context.Context, userID string) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Review
	for _, rv := range r.reviews {
		if rv.UserID == userID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Repo) UpdateReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[rv.ID]; !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	r.reviews[rv.ID] = rv
	return rv, nil
}

func (r *Repo) DeleteReview(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}
