// Package fetch issues paginated GET requests against the collection endpoint.
//
// The client performs exactly one request per call: no retries, no backoff and
// no client-side timeout. An empty JSON array is the end-of-data signal and is
// returned as an empty slice with a nil error.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/rshade/pagefeed/internal/item"
	"github.com/rshade/pagefeed/internal/logging"
	"github.com/rshade/pagefeed/internal/pagination"
)

// DefaultBaseURL is the collection endpoint used when none is configured.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com/posts"

// Query parameter names. The endpoint calls the page size "limit".
const (
	paramPage  = "page"
	paramLimit = "limit"
)

// ErrInvalidBaseURL is returned by New for unusable endpoints.
var ErrInvalidBaseURL = errors.New("invalid base URL")

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %s", e.URL, e.Status)
}

// PageFetcher is implemented by anything that can return one page of items.
type PageFetcher interface {
	FetchPage(ctx context.Context, page, pageSize int) ([]item.Item, error)
}

// Client fetches pages from a fixed collection endpoint.
type Client struct {
	base      *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less disables it.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for per-request debug records.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.ComponentLogger(l, "fetch")
	}
}

// New creates a Client for baseURL. The http.Client has no timeout; callers
// bound requests through the context passed to FetchPage.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q must be an absolute http(s) URL", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		base:    u,
		http:    &http.Client{},
		limiter: rate.NewLimiter(rate.Inf, 0),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// PageURL returns the request URL for the given page. Query parameters already
// present on the base URL are kept.
func (c *Client) PageURL(page, pageSize int) string {
	u := *c.base
	q := u.Query()
	q.Set(paramPage, strconv.Itoa(page))
	q.Set(paramLimit, strconv.Itoa(pageSize))
	u.RawQuery = q.Encode()
	return u.String()
}

// FetchPage performs a single GET for page and decodes the JSON array body.
func (c *Client) FetchPage(ctx context.Context, page, pageSize int) ([]item.Item, error) {
	params := pagination.Params{Page: page, PageSize: pageSize}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	target := c.PageURL(page, pageSize)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug().Ctx(ctx).
			Str(logging.TraceIDField, logging.TraceIDFromContext(ctx)).
			Int("page", page).
			Err(err).
			Msg("page request failed")
		return nil, fmt.Errorf("fetching page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, URL: target}
	}

	var items []item.Item
	if err = json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding page %d: %w", page, err)
	}
	if items == nil {
		items = []item.Item{}
	}

	ev := c.logger.Debug().Ctx(ctx).
		Str(logging.TraceIDField, logging.TraceIDFromContext(ctx)).
		Stringer("params", params).
		Int("status", resp.StatusCode).
		Int("items", len(items)).
		Dur("duration", time.Since(start))
	if len(items) > 0 {
		ev = ev.Strs("extra_fields", items[0].ExtraKeys())
	}
	ev.Msg("page fetched")

	return items, nil
}
