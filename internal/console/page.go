// Package console is the terminal front-end: the page that composes the
// list, the create form and the editor, plus an interactive shell that
// drives it from line input.
package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aanand-mishra/student-manager/internal/fetcher"
	"github.com/aanand-mishra/student-manager/internal/forms"
	"github.com/aanand-mishra/student-manager/internal/liststate"
	"github.com/aanand-mishra/student-manager/internal/types"
	"github.com/aanand-mishra/student-manager/internal/view"
)

const (
	Title         = "Student Management"
	addLabel      = "+ Add Student"
	cancelLabel   = "Cancel"
	formHeading   = "Add New Student"
	editorHeading = "Edit Student"
)

// Page is the home screen. The create form is hidden until toggled; a
// successful create hides it again and refreshes the list.
type Page[T types.Record] struct {
	List   *liststate.Controller[T]
	Create *forms.CreateForm[T]
	Editor *forms.Editor[T]

	table view.Table

	mu       sync.Mutex
	showForm bool
}

// NewPage wires a page to api.
func NewPage[T types.Record](api fetcher.API[T], schema forms.Schema[T], mode liststate.Mode, pageSize int, baseURL string, log *slog.Logger) *Page[T] {
	p := &Page[T]{
		List: liststate.NewController[T](api, mode, pageSize, log),
	}

	headers := make([]string, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		headers = append(headers, f.Label)
	}
	p.table = view.Table{Headers: headers, BaseURL: fetcher.ResolveBaseURL(baseURL)}

	p.Create = forms.NewCreateForm(schema, api.Create, p.studentAdded)
	p.Editor = forms.NewEditor(schema, api.Update, p.refresh)
	return p
}

// ShowForm reports whether the create form is visible.
func (p *Page[T]) ShowForm() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.showForm
}

// ToggleForm shows or hides the create form. Hiding discards its inputs.
func (p *Page[T]) ToggleForm() bool {
	p.mu.Lock()
	p.showForm = !p.showForm
	shown := p.showForm
	p.mu.Unlock()

	if !shown {
		p.Create.Reset()
	}
	return shown
}

// Pagination returns the page control for the current list state.
func (p *Page[T]) Pagination(ctx context.Context) view.Pagination {
	st := p.List.State()
	return view.Pagination{
		CurrentPage: st.Page,
		TotalPages:  st.TotalPages,
		OnPageChange: func(page int) {
			_, _ = p.List.SetPage(ctx, page)
		},
	}
}

// Render writes the whole page.
func (p *Page[T]) Render(w io.Writer) error {
	toggle := addLabel
	if p.ShowForm() {
		toggle = cancelLabel
	}
	if _, err := fmt.Fprintf(w, "%s  [%s]\n\n", Title, toggle); err != nil {
		return err
	}

	if p.ShowForm() {
		if err := renderForm(w, formHeading, p.Create.Fields(), p.Create.Values(), p.Create.Error()); err != nil {
			return err
		}
	}

	if err := view.Render(w, p.table, p.List.State()); err != nil {
		return err
	}

	if _, open := p.Editor.Editing(); open {
		return renderForm(w, editorHeading, p.Editor.Fields(), p.Editor.Values(), p.Editor.Error())
	}
	return nil
}

func (p *Page[T]) studentAdded(ctx context.Context) {
	p.mu.Lock()
	p.showForm = false
	p.mu.Unlock()
	p.refresh(ctx)
}

// refresh reloads the list. A failed reload shows up in the list state.
func (p *Page[T]) refresh(ctx context.Context) {
	_, _ = p.List.Refresh(ctx)
}

func renderForm(w io.Writer, heading string, fields []forms.Field, values forms.Values, errText string) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", heading); err != nil {
		return err
	}
	for _, f := range fields {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", f.Label, values[f.Name]); err != nil {
			return err
		}
	}
	if errText != "" {
		if _, err := fmt.Fprintf(w, "  ! %s\n", errText); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
