package domain

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type Booking struct {
	ID                 int64         `json:"id"`
	ConfirmationNumber string        `json:"confirmationNumber"`
	UserID             string        `json:"userId"`
	HotelID            int64         `json:"hotelId"`
	RoomID             *int64        `json:"roomId"` // nil = quick booking without a specific room
	CheckIn            time.Time     `json:"checkIn"`
	CheckOut           time.Time     `json:"checkOut"`
	GuestCount         int           `json:"guestCount"`
	GuestName          string        `json:"guestName"`
	GuestEmail         string        `json:"guestEmail"`
	GuestPhone         string        `json:"guestPhone"`
	SpecialRequests    string        `json:"specialRequests,omitempty"`
	PromoCode          string        `json:"promoCode,omitempty"`
	Subtotal           float64       `json:"subtotal"`
	Taxes              float64       `json:"taxes"`
	Discount           float64       `json:"discount"`
	Total              float64       `json:"total"`
	PaymentMethod      string        `json:"paymentMethod"`
	PaymentStatus      PaymentStatus `json:"paymentStatus"`
	Status             BookingStatus `json:"status"`
	CancellationReason string        `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time    `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
}

// Draft is the in-progress booking captured between the hotel-detail
// and checkout flows, addressed by an opaque resume token.
type Draft struct {
	HotelID    int64     `json:"hotelId"`
	RoomID     *int64    `json:"roomId"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	GuestCount int       `json:"guestCount"`
}

// Quote is the priced result of an availability check.
type Quote struct {
	Available     bool    `json:"available"`
	Room          *Room   `json:"room,omitempty"`
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"pricePerNight"`
	Subtotal      float64 `json:"subtotal"`
	Taxes         float64 `json:"taxes"`
	Discount      float64 `json:"discount"`
	Total         float64 `json:"total"`
}
