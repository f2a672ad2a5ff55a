// Package liststate is the view-model of the student list: what page is
// shown, what the backend last returned, and whether a fetch is running.
//
// State changes go through Reduce, a pure function over events, so every
// transition can be tested without a backend. Controller drives Reduce
// from the fetcher's results.
package liststate

import (
	"github.com/aanand-mishra/student-manager/internal/types"
)

// Status is the fetch status of the list.
type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Errored
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Errored:
		return "errored"
	}
	return "unknown"
}

// Mode selects how a fetched result becomes the visible list.
type Mode int

const (
	// ClientFilter is for backends without paging: the whole result is
	// filtered locally by the search term, and the page count is derived
	// from the unfiltered size. The result is not sliced to the current
	// page.
	ClientFilter Mode = iota

	// ServerPaged trusts the backend's items and page count. The search
	// term is kept but never applied.
	ServerPaged
)

// State is a snapshot of the list.
type State[T types.Record] struct {
	Status Status
	Mode   Mode

	// Items is the visible list. It is empty, never nil, after a failure.
	Items      []T
	TotalPages int
	// Message is the failure text while Status is Errored.
	Message string

	Page     int
	PageSize int
	Search   string

	// RefreshTrigger counts refresh requests. Bumping it is the only way
	// to reload after a mutation.
	RefreshTrigger int

	// Generation identifies the latest fetch. Results carrying an older
	// generation are dropped.
	Generation uint64
}

// Initial returns the state before the first fetch.
func Initial[T types.Record](mode Mode, pageSize int) State[T] {
	if pageSize < 1 {
		pageSize = 10
	}
	return State[T]{
		Status:   Idle,
		Mode:     mode,
		Items:    []T{},
		PageSize: pageSize,
	}
}

// PaginationVisible reports whether a page control should be shown.
func (s State[T]) PaginationVisible() bool {
	return s.TotalPages > 1
}
