package domain

import "context"

// Repository is the storage port shared by every backend (remote
// record store, MySQL, in-memory fallback). Implementations return
// ErrNotFound for missing ids and ErrStoreUnavailable for transport
// or backend failures.
type Repository interface {
	// Hotels & rooms
	ListHotels(ctx context.Context) ([]Hotel, error)
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	UpsertHotel(ctx context.Context, h Hotel) error
	ListRoomsByHotel(ctx context.Context, hotelID int64) ([]Room, error)
	GetRoom(ctx context.Context, id int64) (Room, error)
	UpsertRoom(ctx context.Context, r Room) error

	// Bookings
	CreateBooking(ctx context.Context, b Booking) (Booking, error)
	GetBooking(ctx context.Context, id int64) (Booking, error)
	GetBookingByConfirmation(ctx context.Context, code string) (Booking, error)
	ListUserBookings(ctx context.Context, userID string, limit int) ([]Booking, error)
	UpdateBooking(ctx context.Context, b Booking) (Booking, error)

	// Reviews
	CreateReview(ctx context.Context, r Review) (Review, error)
	GetReview(ctx context.Context, id int64) (Review, error)
	ListHotelReviews(ctx context.Context, hotelID int64) ([]Review, error)
	ListUserReviews(ctx context.Context, userID string) ([]Review, error)
	UpdateReview(ctx context.Context, r Review) (Review, error)
	DeleteReview(ctx context.Context, id int64) error

	// Close releases backend resources. Safe to call once.
	Close() error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// DraftStore keeps in-progress booking drafts between the hotel-detail
// and checkout flows, keyed by an opaque resume token.
type DraftStore interface {
	SaveDraft(ctx context.Context, token string, d Draft, ttlSec int) error
	LoadDraft(ctx context.Context, token string) (Draft, bool, error)
}

// PriceRange is inclusive on both ends.
type PriceRange struct {
	Min float64
	Max float64
}

type SortKey string

const (
	SortRating   SortKey = "rating"
	SortPrice    SortKey = "price"
	SortDistance SortKey = "distance"
)

// SearchParams are the hotel-list filters. Zero values mean "no
// constraint": empty destination, nil price range, empty sets.
type SearchParams struct {
	Destination string
	PriceRange  *PriceRange
	StarRatings []int
	Amenities   []string
	SortBy      SortKey
}

type Suggestion struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Type  string `json:"type"`
}
