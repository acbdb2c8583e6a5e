package controller

import (
	"github.com/rshade/pagefeed/internal/item"
	"github.com/rshade/pagefeed/internal/pagination"
)

// State is the load state of a Controller.
type State int

const (
	// StateIdle means more pages may exist and nothing is in flight.
	StateIdle State = iota
	// StateLoading means a fetch is in flight.
	StateLoading
	// StateExhausted means a fetch returned no items. It is terminal.
	StateExhausted
	// StateFailed means the last fetch failed. The next load retries the same page.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one load attempt.
type Outcome int

const (
	// OutcomeSkipped means no fetch was issued.
	OutcomeSkipped Outcome = iota
	// OutcomeLoaded means a non-empty page was appended.
	OutcomeLoaded
	// OutcomeExhausted means the fetched page was empty.
	OutcomeExhausted
	// OutcomeFailed means the fetch returned an error.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeLoaded:
		return "loaded"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Request is the page handed out by BeginLoad.
type Request struct {
	Page     int
	PageSize int
}

// ScrollMetrics describes a scroll container position.
type ScrollMetrics struct {
	ScrollTop    int
	ScrollHeight int
	ClientHeight int
}

// DistanceToBottom is scrollHeight - (scrollTop + clientHeight).
func (m ScrollMetrics) DistanceToBottom() int {
	return m.ScrollHeight - (m.ScrollTop + m.ClientHeight)
}

// Snapshot is a point-in-time copy of the controller state.
type Snapshot struct {
	State         State
	Page          int
	PageSize      int
	HasMoreItems  bool
	IsLoading     bool
	Err           error
	FilterValue   string
	SortDirection pagination.SortDirection
	Sorted        bool
	Items         []item.Item
	FilteredItems []item.Item
}
