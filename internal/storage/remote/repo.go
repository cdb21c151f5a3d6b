// Package remote implements domain.Repository on top of the record
// store's generic table API. Each method is a thin fetch/write plus
// a normalize or encode pass; no business logic lives here.
package remote

import (
	"context"
	"errors"
	"fmt"

	"stayfinder/internal/adapters/recordstore"
	"stayfinder/internal/domain"
)

type Repo struct {
	c *recordstore.Client
}

func New(c *recordstore.Client) *Repo { return &Repo{c: c} }

func (r *Repo) Close() error { return nil }

// wrapErr translates transport errors into the domain taxonomy.
func wrapErr(op string, err error) error {
	if errors.Is(err, recordstore.ErrNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}

func eq(field string, v any) recordstore.Condition {
	return recordstore.Condition{Field: field, Operator: "EqualTo", Values: []any{v}}
}

// firstData validates a single-record batch result and returns the
// written record as echoed back by the store.
func firstData(results []recordstore.WriteResult) (recordstore.Record, error) {
	if err := recordstore.FirstFailure(results); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if len(results) == 0 || results[0].Data == nil {
		return nil, fmt.Errorf("%w: empty write result", domain.ErrStoreUnavailable)
	}
	return results[0].Data, nil
}

/********** hotels & rooms **********/

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	recs, err := r.c.Fetch(ctx, recordstore.TableHotels, recordstore.Query{
		OrderBy: []recordstore.OrderBy{{Field: "Id", Direction: "ASC"}},
	})
	if err != nil {
		return nil, wrapErr("list hotels", err)
	}
	out := make([]domain.Hotel, 0, len(recs))
	for _, rec := range recs {
		out = append(out, normalizeHotel(rec))
	}
	return out, nil
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	rec, err := r.c.GetByID(ctx, recordstore.TableHotels, id)
	if err != nil {
		return domain.Hotel{}, wrapErr("get hotel", err)
	}
	return normalizeHotel(rec), nil
}

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	results, err := r.c.Update(ctx, recordstore.TableHotels, []recordstore.Record{encodeHotel(h)})
	if err != nil {
		return wrapErr("upsert hotel", err)
	}
	return recordstore.FirstFailure(results)
}

func (r *Repo) ListRoomsByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	recs, err := r.c.Fetch(ctx, recordstore.TableRooms, recordstore.Query{
		Where:   []recordstore.Condition{eq("hotelId", hotelID)},
		OrderBy: []recordstore.OrderBy{{Field: "Id", Direction: "ASC"}},
	})
	if err != nil {
		return nil, wrapErr("list rooms", err)
	}
	out := make([]domain.Room, 0, len(recs))
	for _, rec := range recs {
		out = append(out, normalizeRoom(rec))
	}
	return out, nil
}

func (r *Repo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	rec, err := r.c.GetByID(ctx, recordstore.TableRooms, id)
	if err != nil {
		return domain.Room{}, wrapErr("get room", err)
	}
	return normalizeRoom(rec), nil
}

func (r *Repo) UpsertRoom(ctx context.Context, rm domain.Room) error {
	results, err := r.c.Update(ctx, recordstore.TableRooms, []recordstore.Record{encodeRoom(rm)})
	if err != nil {
		return wrapErr("upsert room", err)
	}
	return recordstore.FirstFailure(results)
}

/********** bookings **********/

func (r *Repo) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	results, err := r.c.Create(ctx, recordstore.TableBookings, []recordstore.Record{encodeBooking(b)})
	if err != nil {
		return domain.Booking{}, wrapErr("create booking", err)
	}
	rec, err := firstData(results)
	if err != nil {
		return domain.Booking{}, err
	}
	return normalizeBooking(rec), nil
}

func (r *Repo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	rec, err := r.c.GetByID(ctx, recordstore.TableBookings, id)
	if err != nil {
		return domain.Booking{}, wrapErr("get booking", err)
	}
	return normalizeBooking(rec), nil
}

func (r *Repo) GetBookingByConfirmation(ctx context.Context, code string) (domain.Booking, error) {
	recs, err := r.c.Fetch(ctx, recordstore.TableBookings, recordstore.Query{
		Where: []recordstore.Condition{eq("confirmationNumber", code)},
		Limit: 1,
	})
	if err != nil {
		return domain.Booking{}, wrapErr("booking by confirmation", err)
	}
	if len(recs) == 0 {
		return domain.Booking{}, domain.ErrNotFound
	}
	return normalizeBooking(recs[0]), nil
}

func (r *Repo) ListUserBookings(ctx context.Context, userID string, limit int) ([]domain.Booking, error) {
	recs, err := r.c.Fetch(ctx, recordstore.TableBookings, recordstore.Query{
		Where:   []recordstore.Condition{eq("userId", userID)},
		OrderBy: []recordstore.OrderBy{{Field: "createdAt", Direction: "DESC"}},
		Limit:   limit,
	})
	if err != nil {
		return nil, wrapErr("list user bookings", err)
	}
	out := make([]domain.Booking, 0, len(recs))
	for _, rec := range recs {
		out = append(out, normalizeBooking(rec))
	}
	return out, nil
}

func (r *Repo) UpdateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	results, err := r.c.Update(ctx, recordstore.TableBookings, []recordstore.Record{encodeBooking(b)})
	if err != nil {
		return domain.Booking{}, wrapErr("update booking", err)
	}
	rec, err := firstData(results)
	if err != nil {
		return domain.Booking{}, err
	}
	return normalizeBooking(rec), nil
}

/********** reviews **********/

func (r *Repo) CreateReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	results, err := r.c.Create(ctx, recordstore.TableReviews, []recordstore.Record{encodeReview(rv)})
	if err != nil {
		return domain.Review{}, wrapErr("create review", err)
	}
	rec, err := firstData(results)
	if err != nil {
		return domain.Review{}, err
	}
	return normalizeReview(rec), nil
}

func (r *Repo) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	rec, err := r.c.GetByID(ctx, recordstore.TableReviews, id)
	if err != nil {
		return domain.Review{}, wrapErr("get review", err)
	}
	return normalizeReview(rec), nil
}

func (r *Repo) ListHotelReviews(ctx context.Context, hotelID int64) ([]domain.Review, error) {
	recs, err := r.c.Fetch(ctx, recordstore.TableReviews, recordstore.Query{
		Where:   []recordstore.Condition{eq("hotelId", hotelID)},
		OrderBy: []recordstore.OrderBy{{Field: "createdAt", Direction: "DESC"}},
	})
	if err != nil {
		return nil, wrapErr("list hotel reviews", err)
	}
	out := make([]domain.Review, 0, len(recs))
	for _, rec := range recs {
		out = append(out, normalizeReview(rec))
	}
	return out, nil
}

func (r *Repo) ListUserReviews(ctx context.Context, userID string) ([]domain.Review, error) {
	recs, err := r.c.Fetch(ctx, recordstore.TableReviews, recordstore.Query{
		Where:   []recordstore.Condition{eq("userId", userID)},
		OrderBy: []recordstore.OrderBy{{Field: "createdAt", Direction: "DESC"}},
	})
	if err != nil {
		return nil, wrapErr("list user reviews", err)
	}
	out := make([]domain.Review, 0, len(recs))
	for _, rec := range recs {
		out = append(out, normalizeReview(rec))
	}
	return out, nil
}

func (r *Repo) UpdateReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	results, err := r.c.Update(ctx, recordstore.TableReviews, []recordstore.Record{encodeReview(rv)})
	if err != nil {
		return domain.Review{}, wrapErr("update review", err)
	}
	rec, err := firstData(results)
	if err != nil {
		return domain.Review{}, err
	}
	return normalizeReview(rec), nil
}

func (r *Repo) DeleteReview(ctx context.Context, id int64) error {
	results, err := r.c.Delete(ctx, recordstore.TableReviews, []int64{id})
	if err != nil {
		return wrapErr("delete review", err)
	}
	if err := recordstore.FirstFailure(results); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
