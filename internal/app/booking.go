package app

import (
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"stayfinder/internal/domain"
)

// maxUserBookings caps retrieval-by-user; callers must not assume
// completeness beyond this bound.
const maxUserBookings = 100

const draftTTLSec = 24 * 60 * 60

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// BookingInput is everything checkout submits. RoomID nil means a
// quick booking without a specific room.
type BookingInput struct {
	UserID          string               `json:"userId"`
	HotelID         int64                `json:"hotelId"`
	RoomID          *int64               `json:"roomId"`
	CheckIn         time.Time            `json:"checkIn"`
	CheckOut        time.Time            `json:"checkOut"`
	GuestCount      int                  `json:"guestCount"`
	GuestName       string               `json:"guestName"`
	GuestEmail      string               `json:"guestEmail"`
	GuestPhone      string               `json:"guestPhone"`
	SpecialRequests string               `json:"specialRequests"`
	PromoCode       string               `json:"promoCode"`
	PaymentMethod   string               `json:"paymentMethod"`
	PaymentStatus   domain.PaymentStatus `json:"paymentStatus"`
}

// BookingService owns the booking lifecycle: creation with a unique
// confirmation number, lookup, cancellation, and the lazy
// confirmed-to-completed transition once the check-out date passes.
type BookingService struct {
	repo    domain.Repository
	pricing *PricingService
	drafts  domain.DraftStore
}

func NewBookingService(r domain.Repository, p *PricingService, d domain.DraftStore) *BookingService {
	return &BookingService{repo: r, pricing: p, drafts: d}
}

func (s *BookingService) validate(in BookingInput) error {
	if strings.TrimSpace(in.GuestName) == "" {
		return fmt.Errorf("%w: guest name is required", domain.ErrValidation)
	}
	if !emailRe.MatchString(strings.TrimSpace(in.GuestEmail)) {
		return fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}
	if strings.TrimSpace(in.GuestPhone) == "" {
		return fmt.Errorf("%w: phone number is required", domain.ErrValidation)
	}
	if in.GuestCount < 1 {
		return fmt.Errorf("%w: guest count must be at least 1", domain.ErrValidation)
	}
	if _, err := Nights(in.CheckIn, in.CheckOut); err != nil {
		return err
	}
	switch in.PaymentStatus {
	case "", domain.PaymentPaid, domain.PaymentPending:
	default:
		return fmt.Errorf("%w: unknown payment status %q", domain.ErrValidation, in.PaymentStatus)
	}
	return nil
}

// Create validates the input, reprices the stay server-side, assigns a
// unique confirmation number and persists the booking as confirmed.
func (s *BookingService) Create(ctx context.Context, in BookingInput) (domain.Booking, error) {
	if err := s.validate(in); err != nil {
		return domain.Booking{}, err
	}

	var q domain.Quote
	var err error
	if in.RoomID != nil {
		q, err = s.pricing.QuoteRoom(ctx, *in.RoomID, in.CheckIn, in.CheckOut, in.GuestCount, in.PromoCode)
		if err != nil {
			return domain.Booking{}, err
		}
		if !q.Available {
			return domain.Booking{}, fmt.Errorf("%w: room is not available for this stay", domain.ErrValidation)
		}
	} else {
		q, err = s.pricing.QuoteHotel(ctx, in.HotelID, in.CheckIn, in.CheckOut, in.GuestCount, in.PromoCode)
		if err != nil {
			return domain.Booking{}, err
		}
	}

	code, err := s.confirmationNumber(ctx)
	if err != nil {
		return domain.Booking{}, err
	}

	payStatus := in.PaymentStatus
	if payStatus == "" {
		payStatus = domain.PaymentPaid
	}

	b := domain.Booking{
		ConfirmationNumber: code,
		UserID:             in.UserID,
		HotelID:            in.HotelID,
		RoomID:             in.RoomID,
		CheckIn:            in.CheckIn,
		CheckOut:           in.CheckOut,
		GuestCount:         in.GuestCount,
		GuestName:          strings.TrimSpace(in.GuestName),
		GuestEmail:         strings.TrimSpace(in.GuestEmail),
		GuestPhone:         strings.TrimSpace(in.GuestPhone),
		SpecialRequests:    in.SpecialRequests,
		PromoCode:          strings.ToUpper(strings.TrimSpace(in.PromoCode)),
		Subtotal:           q.Subtotal,
		Taxes:              q.Taxes,
		Discount:           q.Discount,
		Total:              q.Total,
		PaymentMethod:      in.PaymentMethod,
		PaymentStatus:      payStatus,
		Status:             domain.BookingConfirmed,
		CreatedAt:          time.Now().UTC(),
	}
	return s.repo.CreateBooking(ctx, b)
}

// confirmationNumber builds SF-<year>-<6 digits> and re-checks the
// store so repeated calls never hand out the same number.
func (s *BookingService) confirmationNumber(ctx context.Context) (string, error) {
	year := time.Now().UTC().Year()
	for attempt := 0; attempt < 8; attempt++ {
		n, err := crand.Int(crand.Reader, big.NewInt(1_000_000))
		if err != nil {
			return "", err
		}
		code := fmt.Sprintf("SF-%d-%06d", year, n.Int64())
		_, err = s.repo.GetBookingByConfirmation(ctx, code)
		if errors.Is(err, domain.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
		// collision, draw again
	}
	return "", fmt.Errorf("could not allocate a unique confirmation number")
}

func (s *BookingService) Get(ctx context.Context, id int64) (domain.Booking, error) {
	b, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	return s.completeIfElapsed(ctx, b), nil
}

func (s *BookingService) GetByConfirmation(ctx context.Context, code string) (domain.Booking, error) {
	b, err := s.repo.GetBookingByConfirmation(ctx, code)
	if err != nil {
		return domain.Booking{}, err
	}
	return s.completeIfElapsed(ctx, b), nil
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	bs, err := s.repo.ListUserBookings(ctx, userID, maxUserBookings)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			log.Warn().Err(err).Msg("booking list degraded to empty result")
			return []domain.Booking{}, nil
		}
		return nil, err
	}
	for i, b := range bs {
		bs[i] = s.completeIfElapsed(ctx, b)
	}
	return bs, nil
}

// completeIfElapsed applies the time-based confirmed-to-completed
// transition lazily on read. A failed persist keeps the stored status;
// the transition is retried on the next read.
func (s *BookingService) completeIfElapsed(ctx context.Context, b domain.Booking) domain.Booking {
	if b.Status != domain.BookingConfirmed || time.Now().UTC().Before(b.CheckOut) {
		return b
	}
	b.Status = domain.BookingCompleted
	updated, err := s.repo.UpdateBooking(ctx, b)
	if err != nil {
		log.Warn().Err(err).Int64("booking", b.ID).Msg("could not persist completed status")
		return b
	}
	return updated
}

// Cancel is one-way and user-initiated. Cancelling an already
// cancelled booking is a no-op returning the stored record.
func (s *BookingService) Cancel(ctx context.Context, id int64, reason string) (domain.Booking, error) {
	b, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if b.Status == domain.BookingCancelled {
		return b, nil
	}
	now := time.Now().UTC()
	b.Status = domain.BookingCancelled
	b.CancellationReason = reason
	b.CancelledAt = &now
	return s.repo.UpdateBooking(ctx, b)
}

/********** booking drafts (resume tokens) **********/

// SaveDraft stores an in-progress booking and returns the resume token
// checkout uses to pick it up.
func (s *BookingService) SaveDraft(ctx context.Context, d domain.Draft) (string, error) {
	if d.HotelID == 0 {
		return "", fmt.Errorf("%w: draft needs a hotel", domain.ErrValidation)
	}
	var raw [16]byte
	if _, err := crand.Read(raw[:]); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw[:])
	if err := s.drafts.SaveDraft(ctx, token, d, draftTTLSec); err != nil {
		return "", err
	}
	return token, nil
}

func (s *BookingService) LoadDraft(ctx context.Context, token string) (domain.Draft, error) {
	d, ok, err := s.drafts.LoadDraft(ctx, token)
	if err != nil {
		return domain.Draft{}, err
	}
	if !ok {
		return domain.Draft{}, domain.ErrNotFound
	}
	return d, nil
}
