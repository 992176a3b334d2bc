// internal/puzzle/client.go
//
// Client for the puzzle provider's public JSON endpoint.
// Responsibilities:
//   - Validate the requested date (YYYY-MM-DD) before any network work.
//   - Serve repeated dates from the payload cache.
//   - Collapse concurrent fetches of the same date into one upstream request.
//   - Throttle upstream requests with a token bucket.
//   - Relay the upstream payload verbatim; callers that need the answer use Solution().
//
// Notes:
//   - Failures are never retried here; the caller may retry.
//   - Cache failures are logged and ignored; the upstream stays the source of truth.

package puzzle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/robalobadob/wordle-buddy/internal/metrics"
	"github.com/robalobadob/wordle-buddy/internal/store"
	"github.com/robalobadob/wordle-buddy/internal/words"
)

// DefaultBaseURL is the provider endpoint; the date and ".json" are appended.
const DefaultBaseURL = "https://www.nytimes.com/svc/wordle/v2"

// maxPayload bounds how much of an upstream response is read.
const maxPayload = 1 << 20

var (
	// ErrInvalidDate is returned for dates that are not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidSolution is returned when the payload has no usable 5-letter solution.
	ErrInvalidSolution = errors.New("invalid solution")
)

// UpstreamError wraps any network, status or decoding failure from the provider.
type UpstreamError struct {
	Date   string
	Status int // HTTP status, 0 when no response was received
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch puzzle %s: upstream status %d", e.Date, e.Status)
	}
	return fmt.Sprintf("fetch puzzle %s: %v", e.Date, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond float64 // <= 0 disables throttling
	HTTPClient    *http.Client
	Cache         store.Store
}

// Client fetches puzzle payloads by date.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	cache   store.Store
	flight  singleflight.Group
}

// NewClient builds a Client from opts.
func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	cache := opts.Cache
	if cache == nil {
		cache = store.NewMemoryStore()
	}
	return &Client{
		baseURL: base,
		http:    hc,
		limiter: rate.NewLimiter(limit, 1),
		cache:   cache,
	}
}

// Fetch returns the raw upstream payload for date.
func (c *Client) Fetch(ctx context.Context, date string) (json.RawMessage, error) {
	if !ValidDate(date) {
		metrics.UpstreamFetches.WithLabelValues("invalid_date").Inc()
		return nil, ErrInvalidDate
	}

	if payload, err := c.cache.Get(ctx, date); err == nil {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return payload, nil
	} else if errors.Is(err, store.ErrNotFound) {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	} else {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		log.Warn().Err(err).Str("date", date).Msg("puzzle cache read")
	}

	// The shared fetch outlives any single caller; each caller still honors its own ctx.
	ch := c.flight.DoChan(date, func() (any, error) {
		return c.fetch(context.WithoutCancel(ctx), date)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(json.RawMessage), nil
	}
}

func (c *Client) fetch(ctx context.Context, date string) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &UpstreamError{Date: date, Err: err}
	}

	start := time.Now()
	payload, err := c.get(ctx, date)
	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamFetches.WithLabelValues("error").Inc()
		log.Warn().Err(err).Str("date", date).Msg("upstream fetch failed")
		return nil, err
	}
	metrics.UpstreamFetches.WithLabelValues("ok").Inc()

	if err := c.cache.Put(ctx, date, payload); err != nil {
		log.Warn().Err(err).Str("date", date).Msg("puzzle cache write")
	}
	return payload, nil
}

func (c *Client) get(ctx context.Context, date string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+date+".json", nil)
	if err != nil {
		return nil, &UpstreamError{Date: date, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{Date: date, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPayload))
		return nil, &UpstreamError{Date: date, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, &UpstreamError{Date: date, Err: err}
	}
	if !json.Valid(body) {
		return nil, &UpstreamError{Date: date, Err: errors.New("upstream returned invalid JSON")}
	}
	return json.RawMessage(body), nil
}

// Solution fetches date and returns its lowercase 5-letter solution.
func (c *Client) Solution(ctx context.Context, date string) (string, error) {
	payload, err := c.Fetch(ctx, date)
	if err != nil {
		return "", err
	}
	return ParseSolution(payload)
}

// ParseSolution extracts and normalizes the "solution" field of a payload.
func ParseSolution(payload json.RawMessage) (string, error) {
	var body struct {
		Solution string `json:"solution"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSolution, err)
	}
	s := strings.ToLower(strings.TrimSpace(body.Solution))
	if !words.IsWord(s) {
		return "", ErrInvalidSolution
	}
	return s, nil
}
