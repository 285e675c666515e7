// Package tmdb is a client for The Movie Database v3 API.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL    = "https://api.themoviedb.org/3"
	DefaultImageBase  = "https://image.tmdb.org/t/p"
	DefaultRPS        = 20
	DefaultRetries    = 2
	DefaultTimeout    = 10 * time.Second
	DefaultRevalidate = time.Hour
	DefaultCacheSize  = 256
)

// ErrNoAPIKey is returned by every call when no API key is configured.
var ErrNoAPIKey = errors.New("tmdb: no API key configured")

// APIError is a non-2xx response.
type APIError struct {
	Endpoint string
	Status   int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tmdb: %s: %d %s", e.Endpoint, e.Status, http.StatusText(e.Status))
}

// NotFound reports whether the resource does not exist.
func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// Options configures a Client. Zero values use the defaults.
type Options struct {
	APIKey     string
	BaseURL    string
	RPS        int
	Retries    int
	Timeout    time.Duration
	Revalidate time.Duration
	CacheSize  int
	HTTPClient *http.Client
	// RetryDelay is the base backoff between attempts.
	RetryDelay time.Duration
}

// Client talks to TMDB. Responses are cached for the revalidation period and
// requests are rate limited.
type Client struct {
	http       *http.Client
	key        string
	base       string
	limiter    *rate.Limiter
	retries    int
	retryDelay time.Duration
	cache      *expirable.LRU[string, []byte]
}

// New creates a Client.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.RPS <= 0 {
		opts.RPS = DefaultRPS
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Revalidate <= 0 {
		opts.Revalidate = DefaultRevalidate
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 250 * time.Millisecond
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		http:       hc,
		key:        strings.TrimSpace(opts.APIKey),
		base:       strings.TrimRight(opts.BaseURL, "/"),
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(opts.RPS)), 1),
		retries:    opts.Retries,
		retryDelay: opts.RetryDelay,
		cache:      expirable.NewLRU[string, []byte](opts.CacheSize, nil, opts.Revalidate),
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.key != ""
}

// get fetches endpoint into target. Cached bodies are reused until they
// expire. When retry is set, transport errors, 429 and 5xx are retried.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, retryable bool, target any) error {
	if c.key == "" {
		return ErrNoAPIKey
	}
	if params == nil {
		params = url.Values{}
	}
	cacheKey := endpoint + "?" + params.Encode()
	if body, ok := c.cache.Get(cacheKey); ok {
		return decode(endpoint, body, target)
	}

	params.Set("api_key", c.key)
	u := c.base + endpoint + "?" + params.Encode()

	fetch := func() ([]byte, error) {
		return c.fetch(ctx, endpoint, u)
	}

	var body []byte
	var err error
	if retryable && c.retries > 0 {
		body, err = retry.DoWithData(fetch,
			retry.Context(ctx),
			retry.Attempts(uint(c.retries+1)),
			retry.Delay(c.retryDelay),
			retry.DelayType(retry.BackOffDelay),
			retry.LastErrorOnly(true),
			retry.RetryIf(shouldRetry),
			retry.OnRetry(func(n uint, err error) {
				slog.Debug("tmdb.retry", "endpoint", endpoint, "attempt", n+1, "err", err)
			}),
		)
	} else {
		body, err = fetch()
	}
	if err != nil {
		return err
	}
	c.cache.Add(cacheKey, body)
	return decode(endpoint, body, target)
}

func (c *Client) fetch(ctx context.Context, endpoint, u string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("tmdb: %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &APIError{Endpoint: endpoint, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tmdb: %s: read body: %w", endpoint, err)
	}
	return body, nil
}

func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusTooManyRequests || apiErr.Status >= 500
	}
	return true
}

func decode(endpoint string, body []byte, target any) error {
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("tmdb: %s: decode: %w", endpoint, err)
	}
	return nil
}
