// Package recordstore is the HTTP client for the remote record-storage
// API: generic fetch/create/update/delete over the four storefront
// tables. Transport concerns (rate limiting, retries on 429/5xx with
// Retry-After, JSON decode) live here; field naming and entity mapping
// live in internal/storage/remote.
package recordstore

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"stayfinder/internal/adapters/observability"
)

const (
	TableHotels   = "hotel_c"
	TableRooms    = "room_c"
	TableBookings = "booking_c"
	TableReviews  = "review_c"
)

type Record = map[string]any

// Condition is one predicate. Operator is "EqualTo" or "Contains".
type Condition struct {
	Field    string `json:"fieldName"`
	Operator string `json:"operator"`
	Values   []any  `json:"values"`
}

// Group combines conditions with AND or OR; groups may nest.
type Group struct {
	Operator   string      `json:"operator"` // AND|OR
	Conditions []Condition `json:"conditions,omitempty"`
	SubGroups  []Group     `json:"subGroups,omitempty"`
}

type OrderBy struct {
	Field     string `json:"fieldName"`
	Direction string `json:"direction"` // ASC|DESC
}

type Query struct {
	Fields  []string    `json:"fields,omitempty"`
	Where   []Condition `json:"where,omitempty"`
	Groups  []Group     `json:"whereGroups,omitempty"`
	OrderBy []OrderBy   `json:"orderBy,omitempty"`
	Limit   int         `json:"limit,omitempty"`
	Offset  int         `json:"offset,omitempty"`
}

// WriteResult is the per-record outcome of a batch write.
type WriteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    Record `json:"data,omitempty"`
}

// FirstFailure scans batch results and returns an error carrying the
// first failure message, or nil when every record succeeded. Partial
// batch failure is an overall failure for the calling manager.
func FirstFailure(results []WriteResult) error {
	for _, r := range results {
		if !r.Success {
			msg := r.Message
			if msg == "" {
				msg = "record rejected"
			}
			return fmt.Errorf("record store: %s", msg)
		}
	}
	return nil
}

var (
	ErrNotFound     = errors.New("recordstore: not found")
	ErrUnauthorized = errors.New("recordstore: unauthorized")
)

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("record store base URL is required")
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (c *Client) Fetch(ctx context.Context, table string, q Query) ([]Record, error) {
	var out struct {
		Success bool     `json:"success"`
		Message string   `json:"message"`
		Data    []Record `json:"data"`
	}
	url := fmt.Sprintf("%s/tables/%s/query", c.base, table)
	if err := c.do(ctx, http.MethodPost, url, q, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("record store: %s", orMsg(out.Message, "fetch failed"))
	}
	return out.Data, nil
}

func (c *Client) GetByID(ctx context.Context, table string, id int64) (Record, error) {
	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    Record `json:"data"`
	}
	url := fmt.Sprintf("%s/tables/%s/records/%d", c.base, table, id)
	if err := c.do(ctx, http.MethodGet, url, nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("record store: %s", orMsg(out.Message, "get failed"))
	}
	return out.Data, nil
}

func (c *Client) Create(ctx context.Context, table string, recs []Record) ([]WriteResult, error) {
	return c.write(ctx, http.MethodPost, table, recs)
}

func (c *Client) Update(ctx context.Context, table string, recs []Record) ([]WriteResult, error) {
	return c.write(ctx, http.MethodPatch, table, recs)
}

func (c *Client) Delete(ctx context.Context, table string, ids []int64) ([]WriteResult, error) {
	var out struct {
		Success bool          `json:"success"`
		Message string        `json:"message"`
		Results []WriteResult `json:"results"`
	}
	url := fmt.Sprintf("%s/tables/%s/records", c.base, table)
	body := map[string]any{"recordIds": ids}
	if err := c.do(ctx, http.MethodDelete, url, body, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("record store: %s", orMsg(out.Message, "delete failed"))
	}
	return out.Results, nil
}

func (c *Client) write(ctx context.Context, method, table string, recs []Record) ([]WriteResult, error) {
	var out struct {
		Success bool          `json:"success"`
		Message string        `json:"message"`
		Results []WriteResult `json:"results"`
	}
	url := fmt.Sprintf("%s/tables/%s/records", c.base, table)
	body := map[string]any{"records": recs}
	if err := c.do(ctx, method, url, body, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("record store: %s", orMsg(out.Message, "write failed"))
	}
	return out.Results, nil
}

func orMsg(msg, def string) string {
	if msg != "" {
		return msg
	}
	return def
}

// do performs one API call with client-side rate limiting and bounded
// retries. Retries apply to 429 and transient 5xx, honoring Retry-After.
func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		payload = b
	}

	endpoint := method + " " + pathOf(url)
	var lastErr error
	for i := 0; i < 4; i++ {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, body)
		if err != nil {
			return err
		}
		if c.key != "" {
			req.Header.Set("X-API-Key", c.key)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			observability.ObserveExternal("recordstore", endpoint, 0, time.Since(start))
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("recordstore", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusUnauthorized, http.StatusForbidden:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

func pathOf(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		rest := url[i+3:]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			return rest[j:]
		}
	}
	return url
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). 0 if absent.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles per attempt (200ms, 400ms, 800ms...) with up to +50%
// jitter from crypto/rand so concurrent callers don't sync up.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
