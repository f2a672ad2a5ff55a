package liststate

import (
	"github.com/aanand-mishra/student-manager/internal/types"
)

// Event is an input to Reduce.
type Event interface {
	event()
}

// FetchStarted opens a new fetch generation and enters Loading.
type FetchStarted struct{}

// FetchSucceeded carries the result of the fetch with the given
// generation.
type FetchSucceeded[T types.Record] struct {
	Generation uint64
	Result     types.Page[T]
}

// FetchFailed carries the failure text of the fetch with the given
// generation.
type FetchFailed struct {
	Generation uint64
	Message    string
}

type PageChanged struct{ Page int }

type PageSizeChanged struct{ Size int }

type SearchChanged struct{ Term string }

type RefreshRequested struct{}

func (FetchStarted) event()      {}
func (FetchSucceeded[T]) event() {}
func (FetchFailed) event()       {}
func (PageChanged) event()       {}
func (PageSizeChanged) event()   {}
func (SearchChanged) event()     {}
func (RefreshRequested) event()  {}

// Reduce returns the state that follows s after e. It does not modify s.
func Reduce[T types.Record](s State[T], e Event) State[T] {
	switch e := e.(type) {
	case FetchStarted:
		s.Generation++
		s.Status = Loading
		s.Message = ""

	case FetchSucceeded[T]:
		if e.Generation != s.Generation {
			return s
		}
		s.Status = Loaded
		s.Message = ""
		if s.Mode == ServerPaged {
			s.Items = nonNil(e.Result.Items)
			s.TotalPages = e.Result.TotalPages
			break
		}
		s.Items = filter(e.Result.Items, s.Search)
		s.TotalPages = pageCount(len(e.Result.Items), s.PageSize)

	case FetchFailed:
		if e.Generation != s.Generation {
			return s
		}
		s.Status = Errored
		s.Message = e.Message
		s.Items = []T{}

	case PageChanged:
		if e.Page >= 0 {
			s.Page = e.Page
		}

	case PageSizeChanged:
		if e.Size > 0 {
			s.PageSize = e.Size
		}

	case SearchChanged:
		s.Search = e.Term

	case RefreshRequested:
		s.RefreshTrigger++
	}
	return s
}

func filter[T types.Record](items []T, term string) []T {
	if term == "" {
		return nonNil(items)
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.Matches(term) {
			out = append(out, item)
		}
	}
	return out
}

// pageCount is ceil(n / size).
func pageCount(n, size int) int {
	if size < 1 {
		return 0
	}
	return (n + size - 1) / size
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
