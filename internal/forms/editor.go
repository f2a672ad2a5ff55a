package forms

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aanand-mishra/student-manager/internal/fetcher"
	"github.com/aanand-mishra/student-manager/internal/types"
)

// ErrNotEditing is returned when the editor has no open record.
var ErrNotEditing = errors.New("forms: no record is being edited")

// Editor is the single edit slot of the list. Opening a record replaces
// whatever was open. Submitting sends the whole record; inputs are not
// validated.
type Editor[T types.Record] struct {
	schema    Schema[T]
	update    func(context.Context, T) error
	onSuccess func(context.Context)

	mu      sync.Mutex
	open    bool
	id      int64
	values  Values
	loading bool
	err     string
}

// NewEditor creates a closed editor. update sends the record; onSuccess
// runs after a successful update and may be nil.
func NewEditor[T types.Record](schema Schema[T], update func(context.Context, T) error, onSuccess func(context.Context)) *Editor[T] {
	return &Editor[T]{schema: schema, update: update, onSuccess: onSuccess}
}

// Open starts editing record.
func (e *Editor[T]) Open(record T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open = true
	e.id = record.Key()
	e.values = e.schema.Encode(record)
	e.err = ""
	e.loading = false
}

// Editing returns the id of the open record.
func (e *Editor[T]) Editing() (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id, e.open
}

// Fields returns the inputs of the form in display order.
func (e *Editor[T]) Fields() []Field { return e.schema.Fields }

// Change sets one input of the open record.
func (e *Editor[T]) Change(field, value string) error {
	if !e.schema.has(field) {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return ErrNotEditing
	}
	e.values[field] = value
	return nil
}

// Values returns a copy of the current inputs, nil when closed.
func (e *Editor[T]) Values() Values {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return nil
	}
	return e.values.clone()
}

// Error is the inline error text, empty when there is none.
func (e *Editor[T]) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Loading reports whether a submit is in flight.
func (e *Editor[T]) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// Submit sends the open record. On success the editor closes and
// onSuccess runs; on failure it stays open with an inline error so the
// user can retry.
func (e *Editor[T]) Submit(ctx context.Context) error {
	e.mu.Lock()
	if !e.open {
		e.mu.Unlock()
		return ErrNotEditing
	}
	record := e.schema.Decode(e.id, e.values)
	e.err = ""
	e.loading = true
	e.mu.Unlock()

	err := e.update(ctx, record)

	e.mu.Lock()
	e.loading = false
	if err != nil {
		e.err = fetcher.Message(err)
		e.mu.Unlock()
		return err
	}
	e.close()
	e.mu.Unlock()

	if e.onSuccess != nil {
		e.onSuccess(ctx)
	}
	return nil
}

// Cancel closes the editor without sending anything.
func (e *Editor[T]) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.close()
}

func (e *Editor[T]) close() {
	e.open = false
	e.id = 0
	e.values = nil
	e.err = ""
}
