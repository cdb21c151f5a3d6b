package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpserver "stayfinder/internal/adapters/http_server"
	"stayfinder/internal/app"
	"stayfinder/internal/domain"
	"stayfinder/internal/storage/memory"
)

type memDrafts struct {
	store map[string]domain.Draft
}

func (d *memDrafts) SaveDraft(ctx context.Context, token string, dr domain.Draft, ttlSec int) error {
	if d.store == nil {
		d.store = map[string]domain.Draft{}
	}
	d.store[token] = dr
	return nil
}

func (d *memDrafts) LoadDraft(ctx context.Context, token string) (domain.Draft, bool, error) {
	dr, ok := d.store[token]
	return dr, ok, nil
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := memory.NewWithSampleData()
	pricing := app.NewPricingService(repo)
	h := &httpserver.Handlers{
		Search:   app.NewSearchService(repo, nil, time.Minute),
		Pricing:  pricing,
		Bookings: app.NewBookingService(repo, pricing, &memDrafts{}),
		Reviews:  app.NewReviewService(repo, nil, time.Minute),
	}
	srv := httpserver.New()
	srv.MountHandlers(h)
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, dst any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func postJSON(t *testing.T, url, body string, dst any) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func TestSearchEndpoint(t *testing.T) {
	ts := testServer(t)

	var hotels []domain.Hotel
	resp := getJSON(t, ts.URL+"/v1/hotels?destination=paris", &hotels)
	if resp.StatusCode != 200 {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if len(hotels) == 0 {
		t.Fatalf("expected Paris hotels in sample data")
	}
	for _, h := range hotels {
		if !strings.EqualFold(h.City, "Paris") {
			t.Fatalf("unexpected hotel: %+v", h)
		}
	}

	resp = getJSON(t, ts.URL+"/v1/hotels?minPrice=abc&maxPrice=100", nil)
	if resp.StatusCode != 400 {
		t.Fatalf("bad price range must be 400, got %d", resp.StatusCode)
	}
}

func TestGetHotel_ETag(t *testing.T) {
	ts := testServer(t)

	resp := getJSON(t, ts.URL+"/v1/hotels/1", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("status %d", resp.StatusCode)
	}
	etag := resp.Header.Get("ETag")
	if !strings.HasPrefix(etag, `W/"`) {
		t.Fatalf("missing weak ETag, got %q", etag)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/hotels/1", nil)
	req.Header.Set("If-None-Match", etag)
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional GET: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", resp2.StatusCode)
	}
}

func TestGetHotel_NotFoundProblem(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/v1/hotels/9999")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 404 {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content type %q", ct)
	}
	var p struct {
		Title  string `json:"title"`
		Status int    `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	if p.Status != 404 || p.Title == "" {
		t.Fatalf("unexpected problem: %+v", p)
	}
}

func TestQuoteEndpoint(t *testing.T) {
	ts := testServer(t)

	var q domain.Quote
	resp := postJSON(t, ts.URL+"/v1/quotes",
		`{"roomId":1,"checkIn":"2026-06-01","checkOut":"2026-06-04","guestCount":2,"promoCode":"SAVE15"}`, &q)
	if resp.StatusCode != 200 {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if !q.Available || q.Nights != 3 || q.Discount == 0 {
		t.Fatalf("unexpected quote: %+v", q)
	}
}

func TestPromoEndpoint(t *testing.T) {
	ts := testServer(t)

	resp := postJSON(t, ts.URL+"/v1/promos/validate", `{"code":"WELCOME10"}`, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("status %d", resp.StatusCode)
	}
	resp = postJSON(t, ts.URL+"/v1/promos/validate", `{"code":"NOPE"}`, nil)
	if resp.StatusCode != 422 {
		t.Fatalf("unknown promo must be 422, got %d", resp.StatusCode)
	}
}

func TestBookingFlow(t *testing.T) {
	ts := testServer(t)

	var booking domain.Booking
	resp := postJSON(t, ts.URL+"/v1/bookings", `{
		"userId":"u-1","hotelId":1,"roomId":1,
		"checkIn":"2030-06-01","checkOut":"2030-06-04","guestCount":2,
		"guestName":"Ana Martins","guestEmail":"ana@example.com","guestPhone":"+33 1 23 45",
		"paymentMethod":"card"
	}`, &booking)
	if resp.StatusCode != 201 {
		t.Fatalf("create status %d", resp.StatusCode)
	}
	if booking.ConfirmationNumber == "" || booking.Status != domain.BookingConfirmed {
		t.Fatalf("unexpected booking: %+v", booking)
	}

	var fetched domain.Booking
	resp = getJSON(t, ts.URL+"/v1/bookings/"+booking.ConfirmationNumber, &fetched)
	if resp.StatusCode != 200 || fetched.ID != booking.ID {
		t.Fatalf("lookup failed: %d %+v", resp.StatusCode, fetched)
	}

	var bookings []domain.Booking
	resp = getJSON(t, ts.URL+"/v1/users/u-1/bookings", &bookings)
	if resp.StatusCode != 200 || len(bookings) != 1 {
		t.Fatalf("user bookings: %d %+v", resp.StatusCode, bookings)
	}

	// Validation failures come back as 422 problems.
	resp = postJSON(t, ts.URL+"/v1/bookings", `{
		"userId":"u-1","hotelId":1,
		"checkIn":"2030-06-04","checkOut":"2030-06-01","guestCount":2,
		"guestName":"Ana","guestEmail":"ana@example.com","guestPhone":"1"
	}`, nil)
	if resp.StatusCode != 422 {
		t.Fatalf("reversed stay must be 422, got %d", resp.StatusCode)
	}
}

func TestDraftEndpoints(t *testing.T) {
	ts := testServer(t)

	var out struct {
		Token string `json:"token"`
	}
	resp := postJSON(t, ts.URL+"/v1/drafts",
		`{"hotelId":1,"roomId":1,"checkIn":"2026-06-01","checkOut":"2026-06-04","guestCount":2}`, &out)
	if resp.StatusCode != 201 || out.Token == "" {
		t.Fatalf("save draft: %d %+v", resp.StatusCode, out)
	}

	var d domain.Draft
	resp = getJSON(t, ts.URL+"/v1/drafts/"+out.Token, &d)
	if resp.StatusCode != 200 || d.HotelID != 1 {
		t.Fatalf("load draft: %d %+v", resp.StatusCode, d)
	}

	resp = getJSON(t, ts.URL+"/v1/drafts/nope", nil)
	if resp.StatusCode != 404 {
		t.Fatalf("unknown draft must be 404, got %d", resp.StatusCode)
	}
}

func TestReviewEndpoints(t *testing.T) {
	ts := testServer(t)

	var stats domain.ReviewStats
	resp := getJSON(t, ts.URL+"/v1/hotels/1/reviews/stats", &stats)
	if resp.StatusCode != 200 {
		t.Fatalf("stats status %d", resp.StatusCode)
	}
	if stats.TotalReviews == 0 {
		t.Fatalf("sample data should carry reviews for hotel 1")
	}

	resp = postJSON(t, ts.URL+"/v1/reviews", `{
		"hotelId":1,"userId":"u-9","cleanlinessRating":5,"comfortRating":4,
		"locationRating":5,"valueRating":4,"overallRating":9
	}`, nil)
	if resp.StatusCode != 422 {
		t.Fatalf("out-of-range rating must be 422, got %d", resp.StatusCode)
	}
}
