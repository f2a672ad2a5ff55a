package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aanand-mishra/student-manager/internal/fetcher"
	"github.com/aanand-mishra/student-manager/internal/types"
	"github.com/go-playground/validator/v10"
)

// RequiredMessage is shown when a create form is submitted with a blank
// field.
const RequiredMessage = "All fields are required"

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("forms: validation failed")

	// ErrUnknownField is returned by Change for a name the schema lacks.
	ErrUnknownField = errors.New("forms: unknown field")
)

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing %s", RequiredMessage, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// CreateForm is the "add student" form. It has its own loading and error
// state, separate from the list.
type CreateForm[T types.Record] struct {
	schema    Schema[T]
	create    func(context.Context, T) error
	onSuccess func(context.Context)
	validate  *validator.Validate

	mu      sync.Mutex
	values  Values
	loading bool
	err     string
}

// NewCreateForm creates an empty form. create sends the record;
// onSuccess runs after a successful create and may be nil.
func NewCreateForm[T types.Record](schema Schema[T], create func(context.Context, T) error, onSuccess func(context.Context)) *CreateForm[T] {
	return &CreateForm[T]{
		schema:    schema,
		create:    create,
		onSuccess: onSuccess,
		validate:  validator.New(),
		values:    schema.Empty(),
	}
}

// Fields returns the inputs of the form in display order.
func (f *CreateForm[T]) Fields() []Field { return f.schema.Fields }

// Change sets one input.
func (f *CreateForm[T]) Change(field, value string) error {
	if !f.schema.has(field) {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[field] = value
	return nil
}

// Values returns a copy of the current inputs.
func (f *CreateForm[T]) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values.clone()
}

// Error is the inline error text, empty when there is none.
func (f *CreateForm[T]) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Loading reports whether a submit is in flight.
func (f *CreateForm[T]) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Submit validates the inputs and sends exactly one create request. A
// blank field fails with a *ValidationError before any request is made.
// On success the inputs are cleared and onSuccess runs.
func (f *CreateForm[T]) Submit(ctx context.Context) error {
	f.mu.Lock()
	f.err = ""
	record := f.schema.Decode(0, f.values)
	f.mu.Unlock()

	if err := f.validate.Struct(record); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("forms: validate: %w", err)
		}
		vErr := &ValidationError{}
		for _, fe := range fieldErrs {
			vErr.Fields = append(vErr.Fields, fe.Field())
		}
		f.setError(RequiredMessage)
		return vErr
	}

	f.mu.Lock()
	f.loading = true
	f.mu.Unlock()

	err := f.create(ctx, record)

	f.mu.Lock()
	f.loading = false
	if err != nil {
		f.err = fetcher.Message(err)
		f.mu.Unlock()
		return err
	}
	f.values = f.schema.Empty()
	f.mu.Unlock()

	if f.onSuccess != nil {
		f.onSuccess(ctx)
	}
	return nil
}

// Reset clears inputs and error.
func (f *CreateForm[T]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = f.schema.Empty()
	f.err = ""
}

func (f *CreateForm[T]) setError(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = msg
}
