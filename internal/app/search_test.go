package app_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"stayfinder/internal/app"
	"stayfinder/internal/domain"
	"stayfinder/internal/storage/memory"
)

// ---- fakes ----

// fakeCache round-trips values through JSON, same as the Redis cache.
type fakeCache struct {
	store map[string][]byte
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = raw
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

// downRepo fails every read the way a dead backend would.
type downRepo struct {
	domain.Repository
}

func (downRepo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return nil, fmt.Errorf("%w: connection refused", domain.ErrStoreUnavailable)
}

func (downRepo) ListHotelReviews(ctx context.Context, hotelID int64) ([]domain.Review, error) {
	return nil, fmt.Errorf("%w: connection refused", domain.ErrStoreUnavailable)
}

func (downRepo) ListUserBookings(ctx context.Context, userID string, limit int) ([]domain.Booking, error) {
	return nil, fmt.Errorf("%w: connection refused", domain.ErrStoreUnavailable)
}

func seededRepo(t *testing.T) *memory.Repo {
	t.Helper()
	repo := memory.New()
	hotels := []domain.Hotel{
		{ID: 1, Name: "Grand Palais", City: "Paris", Country: "France", StarRating: 5,
			Amenities: []string{"wifi", "pool", "spa"}, DistanceFromCenter: 1.2, AverageRating: 4.8},
		{ID: 2, Name: "Sakura Garden", City: "Tokyo", Country: "Japan", StarRating: 4,
			Amenities: []string{"wifi", "gym"}, DistanceFromCenter: 3.5, AverageRating: 4.5},
		{ID: 3, Name: "Harborview", City: "New York", Country: "USA", StarRating: 3,
			Amenities: []string{"wifi"}, DistanceFromCenter: 0.8, AverageRating: 4.1},
		{ID: 4, Name: "Paris Budget Inn", City: "Paris", Country: "France", StarRating: 2,
			Amenities: []string{"wifi"}, DistanceFromCenter: 5.0, AverageRating: 3.6},
	}
	for _, h := range hotels {
		if err := repo.UpsertHotel(context.Background(), h); err != nil {
			t.Fatalf("seed hotel %d: %v", h.ID, err)
		}
	}
	return repo
}

// ---- tests ----

func TestSearch_DestinationSubstring(t *testing.T) {
	svc := app.NewSearchService(seededRepo(t), nil, time.Minute)

	out, err := svc.Search(context.Background(), domain.SearchParams{Destination: "par"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected the two Paris hotels, got %d: %+v", len(out), out)
	}
	for _, h := range out {
		if h.City != "Paris" {
			t.Fatalf("unexpected hotel in result: %+v", h)
		}
	}

	// Country and name also match.
	out, err = svc.Search(context.Background(), domain.SearchParams{Destination: "JAPAN"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("expected Sakura Garden via country, got %+v", out)
	}
	out, _ = svc.Search(context.Background(), domain.SearchParams{Destination: "harbor"})
	if len(out) != 1 || out[0].ID != 3 {
		t.Fatalf("expected Harborview via name, got %+v", out)
	}
}

func TestSearch_AmenitySubset(t *testing.T) {
	svc := app.NewSearchService(seededRepo(t), nil, time.Minute)

	out, err := svc.Search(context.Background(), domain.SearchParams{Amenities: []string{"wifi", "pool"}})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	// Only the hotel carrying every requested amenity survives.
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("expected only hotel 1, got %+v", out)
	}
}

func TestSearch_PriceRangeUsesEstimatedPrice(t *testing.T) {
	svc := app.NewSearchService(seededRepo(t), nil, time.Minute)

	// Estimated nightly price is stars x 100; [300,400] keeps 3- and 4-star.
	out, err := svc.Search(context.Background(), domain.SearchParams{
		PriceRange: &domain.PriceRange{Min: 300, Max: 400},
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 hotels in range, got %+v", out)
	}
	for _, h := range out {
		if h.StarRating != 3 && h.StarRating != 4 {
			t.Fatalf("hotel outside price range: %+v", h)
		}
	}
}

func TestSearch_StarFilter(t *testing.T) {
	svc := app.NewSearchService(seededRepo(t), nil, time.Minute)

	out, err := svc.Search(context.Background(), domain.SearchParams{StarRatings: []int{5, 2}})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 hotels, got %+v", out)
	}
}

func TestSearch_SortOrders(t *testing.T) {
	svc := app.NewSearchService(seededRepo(t), nil, time.Minute)
	ctx := context.Background()

	// Default is rating descending.
	out, err := svc.Search(ctx, domain.SearchParams{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	for i := 1; i < len(out); i++ {
		if out[i-1].AverageRating < out[i].AverageRating {
			t.Fatalf("not rating-descending at %d: %+v", i, out)
		}
	}

	out, _ = svc.Search(ctx, domain.SearchParams{SortBy: domain.SortPrice})
	for i := 1; i < len(out); i++ {
		if out[i-1].EstimatedPrice() > out[i].EstimatedPrice() {
			t.Fatalf("not price-ascending at %d: %+v", i, out)
		}
	}

	out, _ = svc.Search(ctx, domain.SearchParams{SortBy: domain.SortDistance})
	for i := 1; i < len(out); i++ {
		if out[i-1].DistanceFromCenter > out[i].DistanceFromCenter {
			t.Fatalf("not distance-ascending at %d: %+v", i, out)
		}
	}
}

func TestSearch_Deterministic(t *testing.T) {
	svc := app.NewSearchService(seededRepo(t), nil, time.Minute)
	p := domain.SearchParams{Destination: "a", SortBy: domain.SortPrice}

	first, err := svc.Search(context.Background(), p)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := svc.Search(context.Background(), p)
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("result size changed between runs")
		}
		for j := range again {
			if again[j].ID != first[j].ID {
				t.Fatalf("order changed between identical searches: run %d pos %d", i, j)
			}
		}
	}
}

func TestSearch_DegradesWhenStoreDown(t *testing.T) {
	svc := app.NewSearchService(downRepo{}, nil, time.Minute)

	out, err := svc.Search(context.Background(), domain.SearchParams{Destination: "paris"})
	if err != nil {
		t.Fatalf("expected degraded empty result, got err: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %+v", out)
	}
}

func TestSearch_CacheHit(t *testing.T) {
	repo := seededRepo(t)
	cache := &fakeCache{}
	svc := app.NewSearchService(repo, cache, time.Minute)
	p := domain.SearchParams{Destination: "paris"}

	first, err := svc.Search(context.Background(), p)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	// New hotel in the repo must not show up while the key is cached.
	if err := repo.UpsertHotel(context.Background(), domain.Hotel{
		ID: 99, Name: "Late Paris Arrival", City: "Paris", Country: "France", StarRating: 3,
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	again, err := svc.Search(context.Background(), p)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(again) != len(first) {
		t.Fatalf("expected cached result of %d hotels, got %d", len(first), len(again))
	}
}

func TestSuggest(t *testing.T) {
	svc := app.NewSearchService(seededRepo(t), nil, time.Minute)
	ctx := context.Background()

	// Under two characters never touches the store.
	out, err := svc.Suggest(ctx, "p")
	if err != nil || len(out) != 0 {
		t.Fatalf("expected empty for short query, got %+v err %v", out, err)
	}

	// Two Paris hotels collapse to one suggestion.
	out, err = svc.Suggest(ctx, "pa")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 || out[0].Label != "Paris, France" {
		t.Fatalf("expected deduplicated Paris suggestion, got %+v", out)
	}
}

func TestSuggest_CapsAtFive(t *testing.T) {
	repo := memory.New()
	for i := int64(1); i <= 8; i++ {
		if err := repo.UpsertHotel(context.Background(), domain.Hotel{
			ID: i, Name: fmt.Sprintf("Hotel %d", i),
			City: fmt.Sprintf("Porto %d", i), Country: "Portugal",
		}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	svc := app.NewSearchService(repo, nil, time.Minute)

	out, err := svc.Suggest(context.Background(), "porto")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("expected 5 suggestions, got %d", len(out))
	}
}

func TestFeatured_TopThreeByRating(t *testing.T) {
	svc := app.NewSearchService(seededRepo(t), nil, time.Minute)

	out, err := svc.Featured(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 featured hotels, got %d", len(out))
	}
	if out[0].ID != 1 || out[1].ID != 2 || out[2].ID != 3 {
		t.Fatalf("unexpected featured order: %+v", out)
	}
}

func TestGetHotel_CacheMissThenHit(t *testing.T) {
	repo := seededRepo(t)
	cache := &fakeCache{}
	svc := app.NewSearchService(repo, cache, time.Minute)

	h, err := svc.GetHotel(context.Background(), 1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.Name != "Grand Palais" {
		t.Fatalf("unexpected hotel: %+v", h)
	}

	// Mutate the repo to prove the second read is served from cache.
	h.Name = "SHOULD NOT SEE THIS"
	if err := repo.UpsertHotel(context.Background(), h); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	h2, err := svc.GetHotel(context.Background(), 1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h2.Name != "Grand Palais" {
		t.Fatalf("expected cached hotel, got %+v", h2)
	}
}
