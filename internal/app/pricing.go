package app

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"stayfinder/internal/domain"
)

// TaxRate is the canonical rate applied to every subtotal, including
// quick-booking quotes. (The storefront briefly shipped a second 0.15
// rate in the quick-booking modal; 0.12 is the resolved rate.)
const TaxRate = 0.12

type Promo struct {
	Code        string  `json:"code"`
	Rate        float64 `json:"rate"`
	Description string  `json:"description"`
}

// promoCodes is the single consolidated table. An unknown code is a
// validation error, never a silent zero discount.
var promoCodes = map[string]Promo{
	"SPRING20":  {Code: "SPRING20", Rate: 0.20, Description: "20% off spring promotion"},
	"SAVE15":    {Code: "SAVE15", Rate: 0.15, Description: "Save 15% on your booking"},
	"SAVE10":    {Code: "SAVE10", Rate: 0.10, Description: "Save 10% on your booking"},
	"WELCOME10": {Code: "WELCOME10", Rate: 0.10, Description: "Welcome discount 10%"},
}

// ValidatePromoCode resolves a code case-insensitively.
func ValidatePromoCode(code string) (Promo, error) {
	p, ok := promoCodes[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Promo{}, fmt.Errorf("%w: invalid promo code", domain.ErrValidation)
	}
	return p, nil
}

// Nights is ceil of the stay length in days. Check-out at or before
// check-in is a validation failure, not a zero-night stay.
func Nights(checkIn, checkOut time.Time) (int, error) {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0, fmt.Errorf("%w: check-out must be after check-in", domain.ErrValidation)
	}
	return int(math.Ceil(d.Hours() / 24)), nil
}

// PricingService computes availability and price quotes for a stay.
type PricingService struct {
	repo domain.Repository
}

func NewPricingService(r domain.Repository) *PricingService {
	return &PricingService{repo: r}
}

// price fills the money fields of a quote for a confirmed-available
// stay. Total is never negative: the discount is a fraction of the
// subtotal and taxes are non-negative.
func price(nights int, perNight, discountRate float64) domain.Quote {
	subtotal := perNight * float64(nights)
	taxes := subtotal * TaxRate
	discount := subtotal * discountRate
	return domain.Quote{
		Available:     true,
		Nights:        nights,
		PricePerNight: perNight,
		Subtotal:      subtotal,
		Taxes:         taxes,
		Discount:      discount,
		Total:         subtotal + taxes - discount,
	}
}

func resolveDiscount(promoCode string) (float64, error) {
	if strings.TrimSpace(promoCode) == "" {
		return 0, nil
	}
	p, err := ValidatePromoCode(promoCode)
	if err != nil {
		return 0, err
	}
	return p.Rate, nil
}

// QuoteRoom checks one room for the stay and prices it. A room is
// bookable only when its availability flag is set and the party fits
// its max occupancy; otherwise the quote comes back unavailable with
// no confirmed price.
func (s *PricingService) QuoteRoom(ctx context.Context, roomID int64, checkIn, checkOut time.Time, guests int, promoCode string) (domain.Quote, error) {
	if guests < 1 {
		return domain.Quote{}, fmt.Errorf("%w: guest count must be at least 1", domain.ErrValidation)
	}
	nights, err := Nights(checkIn, checkOut)
	if err != nil {
		return domain.Quote{}, err
	}
	discountRate, err := resolveDiscount(promoCode)
	if err != nil {
		return domain.Quote{}, err
	}

	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return domain.Quote{}, err
	}
	if !room.Available || guests > room.MaxOccupancy {
		return domain.Quote{Available: false, Room: &room, Nights: nights}, nil
	}

	q := price(nights, room.PricePerNight, discountRate)
	q.Room = &room
	return q, nil
}

// QuoteHotel prices a quick booking with no room selected, using the
// hotel's estimated nightly price (star rating x 100).
func (s *PricingService) QuoteHotel(ctx context.Context, hotelID int64, checkIn, checkOut time.Time, guests int, promoCode string) (domain.Quote, error) {
	if guests < 1 {
		return domain.Quote{}, fmt.Errorf("%w: guest count must be at least 1", domain.ErrValidation)
	}
	nights, err := Nights(checkIn, checkOut)
	if err != nil {
		return domain.Quote{}, err
	}
	discountRate, err := resolveDiscount(promoCode)
	if err != nil {
		return domain.Quote{}, err
	}

	hotel, err := s.repo.GetHotel(ctx, hotelID)
	if err != nil {
		return domain.Quote{}, err
	}
	return price(nights, hotel.EstimatedPrice(), discountRate), nil
}

// AvailableRooms quotes every bookable room of a hotel for the stay.
func (s *PricingService) AvailableRooms(ctx context.Context, hotelID int64, checkIn, checkOut time.Time, guests int) ([]domain.Quote, error) {
	if guests < 1 {
		return nil, fmt.Errorf("%w: guest count must be at least 1", domain.ErrValidation)
	}
	nights, err := Nights(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	rooms, err := s.repo.ListRoomsByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	out := []domain.Quote{}
	for _, room := range rooms {
		if !room.Available || guests > room.MaxOccupancy {
			continue
		}
		room := room
		q := price(nights, room.PricePerNight, 0)
		q.Room = &room
		out = append(out, q)
	}
	return out, nil
}
