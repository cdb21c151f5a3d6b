package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"stayfinder/internal/domain"
)

type ReviewInput struct {
	HotelID           int64    `json:"hotelId"`
	BookingID         *int64   `json:"bookingId"`
	UserID            string   `json:"userId"`
	CleanlinessRating int      `json:"cleanlinessRating"`
	ComfortRating     int      `json:"comfortRating"`
	LocationRating    int      `json:"locationRating"`
	ValueRating       int      `json:"valueRating"`
	OverallRating     int      `json:"overallRating"`
	Text              string   `json:"text"`
	TravelerType      string   `json:"travelerType"`
	Photos            []string `json:"photos"`
}

// ReviewService creates guest reviews and aggregates per-hotel stats.
type ReviewService struct {
	repo     domain.Repository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewReviewService(r domain.Repository, c domain.Cache, ttl time.Duration) *ReviewService {
	return &ReviewService{repo: r, cache: c, cacheTTL: ttl}
}

// Create rejects any of the five rating fields outside [1,5], defaults
// photos to empty, stamps creation time and zeroes the vote counter.
func (s *ReviewService) Create(ctx context.Context, in ReviewInput) (domain.Review, error) {
	ratings := map[string]int{
		"cleanlinessRating": in.CleanlinessRating,
		"comfortRating":     in.ComfortRating,
		"locationRating":    in.LocationRating,
		"valueRating":       in.ValueRating,
		"overallRating":     in.OverallRating,
	}
	for _, field := range []string{"cleanlinessRating", "comfortRating", "locationRating", "valueRating", "overallRating"} {
		if v := ratings[field]; v < 1 || v > 5 {
			return domain.Review{}, fmt.Errorf("%w: invalid %s: must be between 1 and 5", domain.ErrValidation, field)
		}
	}
	photos := in.Photos
	if photos == nil {
		photos = []string{}
	}

	rv := domain.Review{
		HotelID:           in.HotelID,
		BookingID:         in.BookingID,
		UserID:            in.UserID,
		CleanlinessRating: in.CleanlinessRating,
		ComfortRating:     in.ComfortRating,
		LocationRating:    in.LocationRating,
		ValueRating:       in.ValueRating,
		OverallRating:     in.OverallRating,
		Text:              in.Text,
		TravelerType:      in.TravelerType,
		Photos:            photos,
		HelpfulVotes:      0,
		CreatedAt:         time.Now().UTC(),
	}
	created, err := s.repo.CreateReview(ctx, rv)
	if err != nil {
		return domain.Review{}, err
	}
	s.invalidateStats(ctx, in.HotelID)
	return created, nil
}

// Stats aggregates a hotel's reviews. Zero reviews yields the zeroed
// structure; nothing ever divides by the review count first.
func (s *ReviewService) Stats(ctx context.Context, hotelID int64) (domain.ReviewStats, error) {
	key := statsKey(hotelID)
	var cached domain.ReviewStats
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	reviews, err := s.repo.ListHotelReviews(ctx, hotelID)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			log.Warn().Err(err).Msg("review stats degraded to zeroed result")
			return zeroStats(), nil
		}
		return domain.ReviewStats{}, err
	}

	stats := computeStats(reviews)
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, stats, int(s.cacheTTL.Seconds()))
	}
	return stats, nil
}

func zeroStats() domain.ReviewStats {
	return domain.ReviewStats{
		RatingBreakdown: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
}

func computeStats(reviews []domain.Review) domain.ReviewStats {
	stats := zeroStats()
	n := len(reviews)
	if n == 0 {
		return stats
	}

	var overall, clean, comfort, location, value int
	for _, r := range reviews {
		overall += r.OverallRating
		clean += r.CleanlinessRating
		comfort += r.ComfortRating
		location += r.LocationRating
		value += r.ValueRating
		if r.OverallRating >= 1 && r.OverallRating <= 5 {
			stats.RatingBreakdown[r.OverallRating]++
		}
	}

	fn := float64(n)
	stats.TotalReviews = n
	stats.AverageRating = math.Round(float64(overall)/fn*10) / 10
	stats.CategoryAvg = domain.CategoryAverages{
		Cleanliness: float64(clean) / fn,
		Comfort:     float64(comfort) / fn,
		Location:    float64(location) / fn,
		Value:       float64(value) / fn,
	}
	return stats
}

func statsKey(hotelID int64) string { return fmt.Sprintf("reviewstats:%d", hotelID) }

func (s *ReviewService) invalidateStats(ctx context.Context, hotelID int64) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, statsKey(hotelID))
	}
}

func (s *ReviewService) ListHotelReviews(ctx context.Context, hotelID int64) ([]domain.Review, error) {
	reviews, err := s.repo.ListHotelReviews(ctx, hotelID)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			log.Warn().Err(err).Msg("review list degraded to empty result")
			return []domain.Review{}, nil
		}
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewService) ListUserReviews(ctx context.Context, userID string) ([]domain.Review, error) {
	reviews, err := s.repo.ListUserReviews(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			log.Warn().Err(err).Msg("review list degraded to empty result")
			return []domain.Review{}, nil
		}
		return nil, err
	}
	return reviews, nil
}

// MarkHelpful bumps the helpful-vote counter, the only mutable field
// of a published review.
func (s *ReviewService) MarkHelpful(ctx context.Context, id int64) (domain.Review, error) {
	rv, err := s.repo.GetReview(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	rv.HelpfulVotes++
	return s.repo.UpdateReview(ctx, rv)
}

// Delete removes a review and drops the hotel's cached stats.
func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	rv, err := s.repo.GetReview(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteReview(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx, rv.HotelID)
	return nil
}
