package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"stayfinder/internal/domain"
)

// SearchService serves the hotel-list surface: destination search with
// filters, suggestions, featured hotels, and single-hotel reads. All
// filtering is a single pass over the catalog; the repo hands back the
// full list and constraints are applied here.
type SearchService struct {
	repo     domain.Repository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewSearchService(r domain.Repository, c domain.Cache, ttl time.Duration) *SearchService {
	return &SearchService{repo: r, cache: c, cacheTTL: ttl}
}

// Search returns hotels satisfying every active filter, ordered by the
// sort key. Unrecognized sort keys fall back to rating-descending.
// A store failure degrades to an empty result with a warning.
func (s *SearchService) Search(ctx context.Context, p domain.SearchParams) ([]domain.Hotel, error) {
	key := searchKey(p)
	var cached []domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	hotels, err := s.repo.ListHotels(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			log.Warn().Err(err).Msg("search degraded to empty result")
			return []domain.Hotel{}, nil
		}
		return nil, err
	}

	out := filterHotels(hotels, p)
	sortHotels(out, p.SortBy)

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

func filterHotels(hotels []domain.Hotel, p domain.SearchParams) []domain.Hotel {
	out := make([]domain.Hotel, 0, len(hotels))
	dest := strings.ToLower(strings.TrimSpace(p.Destination))
	for _, h := range hotels {
		if dest != "" && !matchesDestination(h, dest) {
			continue
		}
		if p.PriceRange != nil {
			if est := h.EstimatedPrice(); est < p.PriceRange.Min || est > p.PriceRange.Max {
				continue
			}
		}
		if len(p.StarRatings) > 0 && !containsInt(p.StarRatings, h.StarRating) {
			continue
		}
		if !hasAllAmenities(h.Amenities, p.Amenities) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// matchesDestination is a case-insensitive substring match against
// city, country, or name.
func matchesDestination(h domain.Hotel, dest string) bool {
	return strings.Contains(strings.ToLower(h.City), dest) ||
		strings.Contains(strings.ToLower(h.Country), dest) ||
		strings.Contains(strings.ToLower(h.Name), dest)
}

// hasAllAmenities requires every wanted amenity to be present (subset,
// not intersection). An empty want list passes everything.
func hasAllAmenities(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, a := range have {
			if a == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// sortHotels orders in place. Stable, so ties keep their prior
// relative order and repeat searches stay deterministic.
func sortHotels(hs []domain.Hotel, key domain.SortKey) {
	switch key {
	case domain.SortPrice:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].EstimatedPrice() < hs[j].EstimatedPrice() })
	case domain.SortDistance:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].DistanceFromCenter < hs[j].DistanceFromCenter })
	default:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].AverageRating > hs[j].AverageRating })
	}
}

func searchKey(p domain.SearchParams) string {
	b, _ := json.Marshal(struct {
		D  string
		PR *domain.PriceRange
		ST []int
		AM []string
		SO domain.SortKey
	}{p.Destination, p.PriceRange, p.StarRatings, p.Amenities, p.SortBy})
	sum := sha1.Sum(b)
	return "search:" + hex.EncodeToString(sum[:])
}

// Suggest returns up to five deduplicated "City, Country" entries whose
// city or country contains the query. Queries under two characters
// return empty without touching the store.
func (s *SearchService) Suggest(ctx context.Context, query string) ([]domain.Suggestion, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < 2 {
		return []domain.Suggestion{}, nil
	}

	key := "suggest:" + q
	var cached []domain.Suggestion
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	hotels, err := s.repo.ListHotels(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			log.Warn().Err(err).Msg("suggestions degraded to empty result")
			return []domain.Suggestion{}, nil
		}
		return nil, err
	}

	seen := map[string]struct{}{}
	out := []domain.Suggestion{}
	for _, h := range hotels {
		if !strings.Contains(strings.ToLower(h.City), q) &&
			!strings.Contains(strings.ToLower(h.Country), q) {
			continue
		}
		label := fmt.Sprintf("%s, %s", h.City, h.Country)
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, domain.Suggestion{Value: label, Label: label, Type: "city"})
		if len(out) == 5 {
			break
		}
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

// Featured returns the top three hotels by average rating.
func (s *SearchService) Featured(ctx context.Context) ([]domain.Hotel, error) {
	hotels, err := s.repo.ListHotels(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			log.Warn().Err(err).Msg("featured degraded to empty result")
			return []domain.Hotel{}, nil
		}
		return nil, err
	}
	sortHotels(hotels, domain.SortRating)
	if len(hotels) > 3 {
		hotels = hotels[:3]
	}
	return hotels, nil
}

func (s *SearchService) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	key := fmt.Sprintf("hotel:%d", id)
	var h domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}
