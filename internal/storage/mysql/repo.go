// Package mysql is the persistent Repository backend. Photos,
// amenities and policies are stored as JSON text columns; everything
// else maps one column per field.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"stayfinder/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Close() error { return r.db.Close() }

func wrapDB(op string, err error) error {
	if err == sql.ErrNoRows {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}

func jsonCol(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func decodeList(raw []byte) []string {
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func decodePolicy(raw []byte) domain.Policy {
	p := domain.Policy{CheckIn: "3:00 PM", CheckOut: "11:00 AM", Cancellation: "Free cancellation"}
	var got domain.Policy
	if err := json.Unmarshal(raw, &got); err == nil && got != (domain.Policy{}) {
		return got
	}
	return p
}

/********** hotels **********/

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	_, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID, h.Name, h.StarRating, h.Description, h.Address, h.City, h.Country,
		h.Lat, h.Lon, jsonCol(h.Photos), jsonCol(h.Amenities), jsonCol(h.Policies),
		h.ContactEmail, h.ContactPhone, h.DistanceFromCenter, h.AverageRating, h.ReviewCount,
	)
	if err != nil {
		return wrapDB("upsert hotel", err)
	}
	return nil
}

func scanHotel(row interface{ Scan(...any) error }) (domain.Hotel, error) {
	var h domain.Hotel
	var photos, amenities, policies []byte
	err := row.Scan(
		&h.ID, &h.Name, &h.StarRating, &h.Description, &h.Address, &h.City, &h.Country,
		&h.Lat, &h.Lon, &photos, &amenities, &policies,
		&h.ContactEmail, &h.ContactPhone, &h.DistanceFromCenter, &h.AverageRating, &h.ReviewCount,
	)
	if err != nil {
		return domain.Hotel{}, err
	}
	h.Photos = decodeList(photos)
	h.Amenities = decodeList(amenities)
	h.Policies = decodePolicy(policies)
	return h, nil
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+selectHotelCols+`FROM hotels WHERE id = ?`, id)
	h, err := scanHotel(row)
	if err != nil {
		return domain.Hotel{}, wrapDB("get hotel", err)
	}
	return h, nil
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT`+selectHotelCols+`FROM hotels ORDER BY id`)
	if err != nil {
		return nil, wrapDB("list hotels", err)
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, wrapDB("list hotels", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDB("list hotels", err)
	}
	return out, nil
}

/********** rooms **********/

func (r *Repo) UpsertRoom(ctx context.Context, rm domain.Room) error {
	_, err := r.db.ExecContext(ctx, upsertRoomSQL,
		rm.ID, rm.HotelID, rm.Name, rm.Type, rm.Capacity, rm.BedConfig,
		jsonCol(rm.Photos), jsonCol(rm.Amenities), rm.PricePerNight, rm.Available, rm.MaxOccupancy,
	)
	if err != nil {
		return wrapDB("upsert room", err)
	}
	return nil
}

func scanRoom(row interface{ Scan(...any) error }) (domain.Room, error) {
	var rm domain.Room
	var photos, amenities []byte
	err := row.Scan(
		&rm.ID, &rm.HotelID, &rm.Name, &rm.Type, &rm.Capacity, &rm.BedConfig,
		&photos, &amenities, &rm.PricePerNight, &rm.Available, &rm.MaxOccupancy,
	)
	if err != nil {
		return domain.Room{}, err
	}
	rm.Photos = decodeList(photos)
	rm.Amenities = decodeList(amenities)
	if rm.MaxOccupancy == 0 {
		rm.MaxOccupancy = rm.Capacity
	}
	return rm, nil
}

func (r *Repo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+selectRoomCols+`FROM rooms WHERE id = ?`, id)
	rm, err := scanRoom(row)
	if err != nil {
		return domain.Room{}, wrapDB("get room", err)
	}
	return rm, nil
}

func (r *Repo) ListRoomsByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT`+selectRoomCols+`FROM rooms WHERE hotel_id = ? ORDER BY id`, hotelID)
	if err != nil {
		return nil, wrapDB("list rooms", err)
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, wrapDB("list rooms", err)
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDB("list rooms", err)
	}
	return out, nil
}

/********** bookings **********/

func nullI64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func (r *Repo) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	res, err := r.db.ExecContext(ctx, insertBookingSQL,
		b.ConfirmationNumber, b.UserID, b.HotelID, nullI64(b.RoomID),
		b.CheckIn, b.CheckOut, b.GuestCount, b.GuestName, b.GuestEmail, b.GuestPhone,
		b.SpecialRequests, b.PromoCode, b.Subtotal, b.Taxes, b.Discount, b.Total,
		b.PaymentMethod, string(b.PaymentStatus), string(b.Status),
		b.CancellationReason, b.CancelledAt, b.CreatedAt,
	)
	if err != nil {
		return domain.Booking{}, wrapDB("create booking", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Booking{}, wrapDB("create booking", err)
	}
	b.ID = id
	return b, nil
}

func scanBooking(row interface{ Scan(...any) error }) (domain.Booking, error) {
	var b domain.Booking
	var roomID sql.NullInt64
	var cancelledAt sql.NullTime
	err := row.Scan(
		&b.ID, &b.ConfirmationNumber, &b.UserID, &b.HotelID, &roomID,
		&b.CheckIn, &b.CheckOut, &b.GuestCount, &b.GuestName, &b.GuestEmail, &b.GuestPhone,
		&b.SpecialRequests, &b.PromoCode, &b.Subtotal, &b.Taxes, &b.Discount, &b.Total,
		&b.PaymentMethod, &b.PaymentStatus, &b.Status, &b.CancellationReason,
		&cancelledAt, &b.CreatedAt,
	)
	if err != nil {
		return domain.Booking{}, err
	}
	if roomID.Valid {
		v := roomID.Int64
		b.RoomID = &v
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		b.CancelledAt = &t
	}
	return b, nil
}

func (r *Repo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+selectBookingCols+`FROM bookings WHERE id = ?`, id)
	b, err := scanBooking(row)
	if err != nil {
		return domain.Booking{}, wrapDB("get booking", err)
	}
	return b, nil
}

func (r *Repo) GetBookingByConfirmation(ctx context.Context, code string) (domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+selectBookingCols+`FROM bookings WHERE confirmation_number = ?`, code)
	b, err := scanBooking(row)
	if err != nil {
		return domain.Booking{}, wrapDB("booking by confirmation", err)
	}
	return b, nil
}

func (r *Repo) ListUserBookings(ctx context.Context, userID string, limit int) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT`+selectBookingCols+`FROM bookings WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, wrapDB("list user bookings", err)
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, wrapDB("list user bookings", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDB("list user bookings", err)
	}
	return out, nil
}

func (r *Repo) UpdateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	res, err := r.db.ExecContext(ctx, updateBookingSQL,
		b.GuestCount, b.GuestName, b.GuestEmail, b.GuestPhone, b.SpecialRequests,
		string(b.PaymentStatus), string(b.Status), b.CancellationReason, b.CancelledAt,
		b.ID,
	)
	if err != nil {
		return domain.Booking{}, wrapDB("update booking", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, getErr := r.GetBooking(ctx, b.ID); getErr != nil {
			return domain.Booking{}, getErr
		}
	}
	return b, nil
}

/********** reviews **********/

func (r *Repo) CreateReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	res, err := r.db.ExecContext(ctx, insertReviewSQL,
		rv.HotelID, nullI64(rv.BookingID), rv.UserID,
		rv.CleanlinessRating, rv.ComfortRating, rv.LocationRating, rv.ValueRating, rv.OverallRating,
		rv.Text, rv.TravelerType, jsonCol(rv.Photos), rv.HelpfulVotes, rv.CreatedAt,
	)
	if err != nil {
		return domain.Review{}, wrapDB("create review", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Review{}, wrapDB("create review", err)
	}
	rv.ID = id
	return rv, nil
}

func scanReview(row interface{ Scan(...any) error }) (domain.Review, error) {
	var rv domain.Review
	var bookingID sql.NullInt64
	var photos []byte
	err := row.Scan(
		&rv.ID, &rv.HotelID, &bookingID, &rv.UserID,
		&rv.CleanlinessRating, &rv.ComfortRating, &rv.LocationRating, &rv.ValueRating, &rv.OverallRating,
		&rv.Text, &rv.TravelerType, &photos, &rv.HelpfulVotes, &rv.CreatedAt,
	)
	if err != nil {
		return domain.Review{}, err
	}
	if bookingID.Valid {
		v := bookingID.Int64
		rv.BookingID = &v
	}
	rv.Photos = decodeList(photos)
	return rv, nil
}

func (r *Repo) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+selectReviewCols+`FROM reviews WHERE id = ?`, id)
	rv, err := scanReview(row)
	if err != nil {
		return domain.Review{}, wrapDB("get review", err)
	}
	return rv, nil
}

func (r *Repo) listReviews(ctx context.Context, query string, arg any) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, wrapDB("list reviews", err)
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, wrapDB("list reviews", err)
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDB("list reviews", err)
	}
	return out, nil
}

func (r *Repo) ListHotelReviews(ctx context.Context, hotelID int64) ([]domain.Review, error) {
	return r.listReviews(ctx,
		`SELECT`+selectReviewCols+`FROM reviews WHERE hotel_id = ? ORDER BY created_at DESC, id DESC`, hotelID)
}

func (r *Repo) ListUserReviews(ctx context.Context, userID string) ([]domain.Review, error) {
	return r.listReviews(ctx,
		`SELECT`+selectReviewCols+`FROM reviews WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
}

func (r *Repo) UpdateReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	res, err := r.db.ExecContext(ctx, updateReviewSQL,
		rv.Text, rv.TravelerType, jsonCol(rv.Photos), rv.HelpfulVotes, rv.ID,
	)
	if err != nil {
		return domain.Review{}, wrapDB("update review", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, getErr := r.GetReview(ctx, rv.ID); getErr != nil {
			return domain.Review{}, getErr
		}
	}
	return rv, nil
}

func (r *Repo) DeleteReview(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return wrapDB("delete review", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
