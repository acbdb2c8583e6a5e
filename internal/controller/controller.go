// Package controller owns the incremental-load, filter and sort state behind
// the item view.
//
// A Controller keeps the master item list, the page cursor, the loading and
// exhaustion flags, the filter text and the sort direction. At most one fetch
// is in flight at a time; suppressed load requests are dropped, not queued.
//
// The load transition is split into BeginLoad and CompleteLoad so event loops
// can run the fetch asynchronously. LoadItems runs both halves synchronously.
package controller

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/rshade/pagefeed/internal/fetch"
	"github.com/rshade/pagefeed/internal/item"
	"github.com/rshade/pagefeed/internal/logging"
	"github.com/rshade/pagefeed/internal/pagination"
)

// DefaultScrollThreshold is the distance to the bottom at or under which a
// scroll event triggers a load. Units match the caller's scroll metrics.
const DefaultScrollThreshold = 50

// Controller is the view state machine. It is safe for concurrent use; the
// mutex is never held across a fetch.
type Controller struct {
	mu sync.Mutex

	fetcher fetch.PageFetcher
	logger  zerolog.Logger

	page         int
	pageSize     int
	hasMoreItems bool
	isLoading    bool
	lastErr      error

	items         []item.Item
	filteredItems []item.Item
	filterValue   string
	direction     pagination.SortDirection
	sorted        bool

	scrollThreshold int
	resetOnLoad     bool
	fetchCount      int
}

// Option configures a Controller.
type Option func(*Controller)

// WithScrollThreshold overrides DefaultScrollThreshold. Negative values are ignored.
func WithScrollThreshold(threshold int) Option {
	return func(c *Controller) {
		if threshold >= 0 {
			c.scrollThreshold = threshold
		}
	}
}

// WithResetOnLoad makes every successful page load discard the active filter
// and sort, showing the full list in received order.
func WithResetOnLoad(reset bool) Option {
	return func(c *Controller) {
		c.resetOnLoad = reset
	}
}

// WithLogger sets the logger for state transitions.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logging.ComponentLogger(l, "controller")
	}
}

// New creates a Controller positioned at page 1. pageSize must be valid per
// pagination.ValidatePageSize.
func New(fetcher fetch.PageFetcher, pageSize int, opts ...Option) (*Controller, error) {
	if err := pagination.ValidatePageSize(pageSize); err != nil {
		return nil, err
	}

	c := &Controller{
		fetcher:         fetcher,
		logger:          zerolog.Nop(),
		page:            pagination.DefaultPage,
		pageSize:        pageSize,
		hasMoreItems:    true,
		items:           []item.Item{},
		filteredItems:   []item.Item{},
		direction:       pagination.Ascending,
		scrollThreshold: DefaultScrollThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BeginLoad moves idle (or failed) to loading and returns the page to fetch.
// It returns false when a fetch is already in flight or the list is exhausted.
func (c *Controller) BeginLoad() (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isLoading || !c.hasMoreItems {
		return Request{}, false
	}

	c.isLoading = true
	c.lastErr = nil
	c.fetchCount++
	return Request{Page: c.page, PageSize: c.pageSize}, true
}

// CompleteLoad applies the result of the fetch started by BeginLoad.
func (c *Controller) CompleteLoad(req Request, items []item.Item, err error) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.isLoading = false

	if err != nil {
		c.lastErr = err
		c.logger.Warn().Err(err).Int("page", req.Page).Msg("page load failed")
		return OutcomeFailed
	}

	if len(items) == 0 {
		c.hasMoreItems = false
		c.logger.Debug().Int("page", req.Page).Int("items", len(c.items)).Msg("no more items")
		return OutcomeExhausted
	}

	c.items = append(c.items, items...)
	if c.resetOnLoad {
		c.filterValue = ""
		c.sorted = false
		c.direction = pagination.Ascending
	}
	c.recomputeLocked()
	c.page = req.Page + 1

	c.logger.Debug().
		Int("page", req.Page).
		Int("received", len(items)).
		Int("total", len(c.items)).
		Msg("page loaded")
	return OutcomeLoaded
}

// Fetch runs the fetch for a request returned by BeginLoad. It reads no
// controller state; hand the result to CompleteLoad.
func (c *Controller) Fetch(ctx context.Context, req Request) ([]item.Item, error) {
	return c.fetcher.FetchPage(ctx, req.Page, req.PageSize)
}

// LoadItems fetches the next page and applies it. It is a no-op returning
// OutcomeSkipped while loading or once exhausted. The returned error is the
// fetch error for OutcomeFailed and nil otherwise.
func (c *Controller) LoadItems(ctx context.Context) (Outcome, error) {
	req, ok := c.BeginLoad()
	if !ok {
		return OutcomeSkipped, nil
	}

	items, err := c.Fetch(ctx, req)
	outcome := c.CompleteLoad(req, items, err)
	if outcome == OutcomeFailed {
		return outcome, err
	}
	return outcome, nil
}

// NearBottom reports whether the scroll position is within the threshold of
// the bottom: scrollHeight - (scrollTop + clientHeight) <= threshold.
func (c *Controller) NearBottom(m ScrollMetrics) bool {
	c.mu.Lock()
	threshold := c.scrollThreshold
	c.mu.Unlock()
	return m.DistanceToBottom() <= threshold
}

// OnScroll loads the next page when the scroll position is near the bottom.
// There is no debounce; the loading guard makes repeated calls safe.
func (c *Controller) OnScroll(ctx context.Context, m ScrollMetrics) (Outcome, error) {
	if !c.NearBottom(m) {
		return OutcomeSkipped, nil
	}
	return c.LoadItems(ctx)
}

// ApplyFilter recomputes the displayed list as the items whose title contains
// value, compared case-insensitively. An active sort is re-applied.
func (c *Controller) ApplyFilter(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filterValue = value
	c.recomputeLocked()
}

// ToggleSort flips the sort direction and re-sorts the displayed list by ID.
// The first toggle from the received order applies ascending.
func (c *Controller) ToggleSort() pagination.SortDirection {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sorted {
		c.direction = c.direction.Toggle()
	} else {
		c.sorted = true
	}
	pagination.SortInPlace(c.filteredItems, pagination.FieldID, c.direction)
	return c.direction
}

// recomputeLocked rebuilds filteredItems from items. Must be called with mu held.
func (c *Controller) recomputeLocked() {
	needle := c.filterValue
	filtered := lo.Filter(c.items, func(it item.Item, _ int) bool {
		return it.MatchesTitle(needle)
	})
	if c.sorted {
		pagination.SortInPlace(filtered, pagination.FieldID, c.direction)
	}
	c.filteredItems = filtered
}

// Items returns a copy of the master list in received order.
func (c *Controller) Items() []item.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneItems(c.items)
}

// FilteredItems returns a copy of the displayed list.
func (c *Controller) FilteredItems() []item.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneItems(c.filteredItems)
}

// Page returns the next page that will be requested.
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// PageSize returns the fixed page size.
func (c *Controller) PageSize() int {
	return c.pageSize
}

// HasMoreItems reports whether further pages may exist.
func (c *Controller) HasMoreItems() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMoreItems
}

// IsLoading reports whether a fetch is in flight.
func (c *Controller) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isLoading
}

// Err returns the error from the most recent failed load, cleared when the
// next load begins.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// FilterValue returns the active filter text.
func (c *Controller) FilterValue() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filterValue
}

// SortDirection returns the current sort direction.
func (c *Controller) SortDirection() pagination.SortDirection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.direction
}

// Sorted reports whether a sort has been applied to the displayed list.
func (c *Controller) Sorted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sorted
}

// FetchCount returns how many fetches have been started.
func (c *Controller) FetchCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchCount
}

// State returns the current load state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	switch {
	case c.isLoading:
		return StateLoading
	case !c.hasMoreItems:
		return StateExhausted
	case c.lastErr != nil:
		return StateFailed
	default:
		return StateIdle
	}
}

// Snapshot returns a consistent copy of the whole view state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		State:         c.stateLocked(),
		Page:          c.page,
		PageSize:      c.pageSize,
		HasMoreItems:  c.hasMoreItems,
		IsLoading:     c.isLoading,
		Err:           c.lastErr,
		FilterValue:   c.filterValue,
		SortDirection: c.direction,
		Sorted:        c.sorted,
		Items:         cloneItems(c.items),
		FilteredItems: cloneItems(c.filteredItems),
	}
}

// Meta summarizes progress for output.
func (c *Controller) Meta() pagination.PageMeta {
	c.mu.Lock()
	defer c.mu.Unlock()
	return pagination.NewPageMeta(c.page, c.pageSize, len(c.items), len(c.filteredItems), c.hasMoreItems)
}

func cloneItems(items []item.Item) []item.Item {
	out := make([]item.Item, len(items))
	copy(out, items)
	return out
}
