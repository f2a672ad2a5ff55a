package liststate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aanand-mishra/student-manager/internal/fetcher"
	"github.com/aanand-mishra/student-manager/internal/types"
)

// ConfirmDeleteMessage is the question asked before a delete.
const ConfirmDeleteMessage = "Are you sure you want to delete this student?"

var (
	ErrInvalidPage     = errors.New("liststate: page must not be negative")
	ErrInvalidPageSize = errors.New("liststate: page size must be positive")
)

// Dialogs are the blocking prompts a delete needs.
type Dialogs interface {
	// Confirm asks a yes/no question and reports the answer.
	Confirm(message string) bool
	// Alert shows message and returns once it was acknowledged.
	Alert(message string)
}

// Controller owns a list State and reloads it whenever the page, the
// page size or the refresh counter changes. Every method returns the
// state it produced.
//
// Controller is safe for concurrent use. Fetches may overlap; only the
// most recently started one can update the list.
type Controller[T types.Record] struct {
	api fetcher.API[T]
	log *slog.Logger

	mu    sync.Mutex
	state State[T]
}

// NewController creates a Controller in the Idle state. A nil log uses
// slog.Default().
func NewController[T types.Record](api fetcher.API[T], mode Mode, pageSize int, log *slog.Logger) *Controller[T] {
	if log == nil {
		log = slog.Default()
	}
	return &Controller[T]{
		api:   api,
		log:   log,
		state: Initial[T](mode, pageSize),
	}
}

// State returns the current snapshot.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mount performs the first load.
func (c *Controller[T]) Mount(ctx context.Context) (State[T], error) {
	return c.load(ctx)
}

// Refresh bumps the refresh counter and reloads.
func (c *Controller[T]) Refresh(ctx context.Context) (State[T], error) {
	c.dispatch(RefreshRequested{})
	return c.load(ctx)
}

// SetPage moves to page and reloads. Asking for the current page is a
// no-op.
func (c *Controller[T]) SetPage(ctx context.Context, page int) (State[T], error) {
	if page < 0 {
		return c.State(), fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	if c.State().Page == page {
		return c.State(), nil
	}
	c.dispatch(PageChanged{Page: page})
	return c.load(ctx)
}

// SetPageSize changes the page size and reloads. The current page is
// kept.
func (c *Controller[T]) SetPageSize(ctx context.Context, size int) (State[T], error) {
	if size < 1 {
		return c.State(), fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}
	if c.State().PageSize == size {
		return c.State(), nil
	}
	c.dispatch(PageSizeChanged{Size: size})
	return c.load(ctx)
}

// SetSearch is the per-keystroke search input. In ClientFilter mode it
// stores the term and forces a refresh; the term then filters the next
// result. In ServerPaged mode it only stores the term.
func (c *Controller[T]) SetSearch(ctx context.Context, term string) (State[T], error) {
	st := c.dispatch(SearchChanged{Term: term})
	if st.Mode != ClientFilter {
		return st, nil
	}
	return c.Refresh(ctx)
}

// SubmitSearch is the submit-style search input. It stores the term and
// never fetches.
func (c *Controller[T]) SubmitSearch(term string) State[T] {
	return c.dispatch(SearchChanged{Term: term})
}

// Delete asks for confirmation, deletes id and refreshes. A declined
// confirmation sends nothing. A failed delete is reported through
// d.Alert and leaves the list untouched.
func (c *Controller[T]) Delete(ctx context.Context, id int64, d Dialogs) (State[T], error) {
	if !d.Confirm(ConfirmDeleteMessage) {
		return c.State(), nil
	}

	if err := c.api.Delete(ctx, id); err != nil {
		c.log.Error("error deleting student",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		d.Alert(fetcher.Message(err))
		return c.State(), err
	}

	c.log.Info("student deleted", slog.Int64("id", id))
	return c.Refresh(ctx)
}

func (c *Controller[T]) dispatch(e Event) State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, e)
	return c.state
}

// load starts a new generation, calls List outside the lock and applies
// the outcome. A superseded result leaves the state alone.
func (c *Controller[T]) load(ctx context.Context) (State[T], error) {
	c.mu.Lock()
	c.state = Reduce(c.state, FetchStarted{})
	gen, page, size := c.state.Generation, c.state.Page, c.state.PageSize
	c.mu.Unlock()

	c.log.Debug("fetching students",
		slog.Uint64("generation", gen),
		slog.Int("page", page),
		slog.Int("size", size))

	result, err := c.api.List(ctx, page, size)
	if err != nil {
		c.log.Error("error fetching students",
			slog.Uint64("generation", gen),
			slog.String("error", err.Error()))
		return c.dispatch(FetchFailed{Generation: gen, Message: fetcher.Message(err)}), err
	}
	return c.dispatch(FetchSucceeded[T]{Generation: gen, Result: result}), nil
}
