package remote

import (
	"testing"
	"time"

	"stayfinder/internal/domain"
)

func bookingFixture(roomID int64, created time.Time) domain.Booking {
	return domain.Booking{
		ConfirmationNumber: "SF-2026-123456",
		UserID:             "u-1",
		HotelID:            1,
		RoomID:             &roomID,
		CheckIn:            time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:           time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC),
		GuestCount:         2,
		GuestName:          "Ana Martins",
		GuestEmail:         "ana@example.com",
		GuestPhone:         "+33 1 23 45 67 89",
		Subtotal:           300,
		Taxes:              36,
		Total:              336,
		PaymentMethod:      "card",
		PaymentStatus:      domain.PaymentPaid,
		Status:             domain.BookingConfirmed,
		CreatedAt:          created,
	}
}

func TestNormalizeHotel_CanonicalFields(t *testing.T) {
	h := normalizeHotel(map[string]any{
		"Id":                 float64(7),
		"name":               "Grand Palais",
		"starRating":         float64(5),
		"city":               "Paris",
		"country":            "France",
		"photos":             `["a.jpg","b.jpg"]`,
		"amenities":          []any{"wifi", "pool"},
		"policies":           `{"checkIn":"2:00 PM","checkOut":"12:00 PM","cancellation":"48h notice"}`,
		"contactEmail":       "front@palais.example",
		"distanceFromCenter": 1.2,
		"averageRating":      4.8,
		"reviewCount":        float64(120),
	})
	if h.ID != 7 || h.Name != "Grand Palais" || h.StarRating != 5 {
		t.Fatalf("unexpected hotel: %+v", h)
	}
	if len(h.Photos) != 2 || h.Photos[0] != "a.jpg" {
		t.Fatalf("photos not decoded: %+v", h.Photos)
	}
	if len(h.Amenities) != 2 || h.Amenities[1] != "pool" {
		t.Fatalf("amenities not decoded: %+v", h.Amenities)
	}
	if h.Policies.CheckIn != "2:00 PM" || h.Policies.Cancellation != "48h notice" {
		t.Fatalf("policies not decoded: %+v", h.Policies)
	}
}

func TestNormalizeHotel_AliasedAndStringColumns(t *testing.T) {
	// Suffixed columns and ids stored as strings both resolve.
	h := normalizeHotel(map[string]any{
		"hotel_id":      "42",
		"name_c":        "Harborview",
		"star_rating_c": "3",
		"address": map[string]any{
			"city":    "New York",
			"country": "USA",
		},
	})
	if h.ID != 42 || h.Name != "Harborview" || h.StarRating != 3 {
		t.Fatalf("aliases not resolved: %+v", h)
	}
	if h.City != "New York" || h.Country != "USA" {
		t.Fatalf("nested address not resolved: %+v", h)
	}
}

func TestNormalizeHotel_Defaults(t *testing.T) {
	h := normalizeHotel(map[string]any{
		"Id":       float64(1),
		"name":     "Bare Minimum Inn",
		"photos":   "{not json",
		"policies": "also not json",
	})
	if h.Photos == nil || len(h.Photos) != 0 {
		t.Fatalf("garbled photos must become empty list: %+v", h.Photos)
	}
	if h.Policies != defaultPolicy {
		t.Fatalf("garbled policies must fall back to default: %+v", h.Policies)
	}
	if h.Amenities == nil {
		t.Fatalf("absent amenities must be empty, not nil")
	}
}

func TestNormalizeHotel_PartialPolicy(t *testing.T) {
	h := normalizeHotel(map[string]any{
		"Id":       float64(1),
		"policies": `{"checkIn":"1:00 PM"}`,
	})
	if h.Policies.CheckIn != "1:00 PM" {
		t.Fatalf("explicit check-in dropped: %+v", h.Policies)
	}
	if h.Policies.CheckOut != defaultPolicy.CheckOut || h.Policies.Cancellation != defaultPolicy.Cancellation {
		t.Fatalf("missing policy fields must default: %+v", h.Policies)
	}
}

func TestNormalizeRoom_OccupancyFallback(t *testing.T) {
	r := normalizeRoom(map[string]any{
		"Id":            float64(10),
		"hotel_id_c":    float64(1),
		"name":          "Standard",
		"capacity":      float64(2),
		"pricePerNight": "100.50",
		"available":     "true",
	})
	if r.MaxOccupancy != 2 {
		t.Fatalf("max occupancy must fall back to capacity: %+v", r)
	}
	if r.PricePerNight != 100.50 {
		t.Fatalf("string price not parsed: %+v", r)
	}
	if !r.Available {
		t.Fatalf("string bool not parsed: %+v", r)
	}

	r = normalizeRoom(map[string]any{
		"Id":           float64(11),
		"capacity":     float64(2),
		"maxOccupancy": float64(4),
	})
	if r.MaxOccupancy != 4 {
		t.Fatalf("explicit max occupancy overridden: %+v", r)
	}
}

func TestNormalizeBooking_RoundTrip(t *testing.T) {
	roomID := int64(10)
	when := time.Date(2026, 6, 10, 12, 30, 0, 0, time.UTC)
	in := encodeBooking(bookingFixture(roomID, when))
	in["Id"] = float64(55)

	b := normalizeBooking(in)
	if b.ID != 55 || b.ConfirmationNumber != "SF-2026-123456" {
		t.Fatalf("identity fields lost: %+v", b)
	}
	if b.RoomID == nil || *b.RoomID != roomID {
		t.Fatalf("room reference lost: %+v", b.RoomID)
	}
	if !b.CheckIn.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("check-in mangled: %v", b.CheckIn)
	}
	if b.Subtotal != 300 || b.Taxes != 36 || b.Total != 336 {
		t.Fatalf("money fields mangled: %+v", b)
	}
	if string(b.Status) != "confirmed" || string(b.PaymentStatus) != "paid" {
		t.Fatalf("status fields mangled: %+v", b)
	}
	if b.CancelledAt != nil {
		t.Fatalf("absent cancelled-at must stay nil: %v", b.CancelledAt)
	}
	if !b.CreatedAt.Equal(when) {
		t.Fatalf("created-at mangled: %v", b.CreatedAt)
	}
}

func TestNormalizeBooking_QuickBookingKeepsNilRoom(t *testing.T) {
	b := normalizeBooking(map[string]any{
		"Id":                 float64(1),
		"confirmationNumber": "SF-2026-000001",
		"bookingStatus":      "confirmed",
	})
	if b.RoomID != nil {
		t.Fatalf("absent room id must stay nil, got %v", *b.RoomID)
	}
}

func TestNormalizeReview(t *testing.T) {
	rv := normalizeReview(map[string]any{
		"Id":                float64(3),
		"hotel_id_c":        float64(1),
		"userId":            "u-1",
		"cleanlinessRating": float64(5),
		"comfortRating":     float64(4),
		"locationRating":    float64(5),
		"valueRating":       float64(4),
		"overallRating":     float64(5),
		"reviewText":        "Great stay",
		"photos":            `[]`,
		"helpful_votes_c":   float64(2),
		"created_at_c":      "2026-05-01",
	})
	if rv.ID != 3 || rv.OverallRating != 5 || rv.Text != "Great stay" {
		t.Fatalf("unexpected review: %+v", rv)
	}
	if rv.BookingID != nil {
		t.Fatalf("absent booking reference must stay nil")
	}
	if rv.HelpfulVotes != 2 {
		t.Fatalf("aliased votes column not resolved: %+v", rv)
	}
	if rv.CreatedAt.IsZero() {
		t.Fatalf("date-only timestamp not parsed")
	}
}
