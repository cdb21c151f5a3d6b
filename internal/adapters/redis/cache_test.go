package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "stayfinder/internal/adapters/redis"
	"stayfinder/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return redisad.New(mr.Addr(), "", 0), mr
}

func TestCache_RoundTrip(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()

	h := domain.Hotel{ID: 1, Name: "Grand Palais", StarRating: 5}
	if err := cache.Set(ctx, "hotel:1", h, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got domain.Hotel
	ok, err := cache.Get(ctx, "hotel:1", &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Name != "Grand Palais" || got.StarRating != 5 {
		t.Fatalf("unexpected value: %+v", got)
	}

	if err := cache.Del(ctx, "hotel:1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, err = cache.Get(ctx, "hotel:1", &got)
	if err != nil || ok {
		t.Fatalf("expected miss after delete: ok=%v err=%v", ok, err)
	}
}

func TestCache_Expiry(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "k", "v", 30); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(31 * time.Second)

	var s string
	ok, err := cache.Get(ctx, "k", &s)
	if err != nil || ok {
		t.Fatalf("expected expired key to miss: ok=%v err=%v", ok, err)
	}
}

func TestDrafts(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	roomID := int64(10)
	d := domain.Draft{
		HotelID:    1,
		RoomID:     &roomID,
		CheckIn:    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC),
		GuestCount: 2,
	}
	if err := cache.SaveDraft(ctx, "tok123", d, 3600); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := cache.LoadDraft(ctx, "tok123")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if got.HotelID != 1 || got.RoomID == nil || *got.RoomID != 10 {
		t.Fatalf("draft mangled: %+v", got)
	}

	if _, ok, _ := cache.LoadDraft(ctx, "unknown"); ok {
		t.Fatalf("unknown token must miss")
	}

	// Tokens expire with their TTL.
	mr.FastForward(3601 * time.Second)
	if _, ok, _ := cache.LoadDraft(ctx, "tok123"); ok {
		t.Fatalf("expired draft must miss")
	}
}
