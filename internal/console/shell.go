package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aanand-mishra/student-manager/internal/liststate"
	"github.com/aanand-mishra/student-manager/internal/types"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("console: quit")

const helpText = `Commands:
  list | refresh      reload the list
  next | prev         move one page
  page <n>            go to page n
  size <n>            show n students per page
  search [term]       filter by name (empty term clears)
  add                 open the create form and fill it in
  edit <id>           edit a student
  delete <id>         delete a student
  cancel              close the create form or the editor
  help                show this text
  quit                leave
`

// Shell runs line commands against a Page.
type Shell[T types.Record] struct {
	page   *Page[T]
	prompt *Prompter
	out    io.Writer
}

// NewShell creates a shell over page. Prompts and answers share prompt.
func NewShell[T types.Record](page *Page[T], prompt *Prompter, out io.Writer) *Shell[T] {
	return &Shell[T]{page: page, prompt: prompt, out: out}
}

// Run loads the list, then executes input lines until quit or end of
// input, rendering the page after each command.
func (s *Shell[T]) Run(ctx context.Context) error {
	_, _ = s.page.List.Mount(ctx)
	if err := s.page.Render(s.out); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprint(s.out, "> ")
		line, ok := s.prompt.ReadLine()
		if !ok {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		err := s.Exec(ctx, line)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if err := s.page.Render(s.out); err != nil {
			return err
		}
	}
}

// Exec runs one command line. Request failures are already part of the
// rendered state; Exec only returns usage errors and ErrQuit.
func (s *Shell[T]) Exec(ctx context.Context, line string) error {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "list", "refresh":
		_, _ = s.page.List.Refresh(ctx)

	case "next":
		if !s.page.Pagination(ctx).Next() {
			return errors.New("already on the last page")
		}

	case "prev":
		if !s.page.Pagination(ctx).Previous() {
			return errors.New("already on the first page")
		}

	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("page: want a number, got %q", arg)
		}
		if !s.page.Pagination(ctx).GoTo(n - 1) {
			return fmt.Errorf("page %d is not available", n)
		}

	case "size":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("size: want a number, got %q", arg)
		}
		if _, err := s.page.List.SetPageSize(ctx, n); errors.Is(err, liststate.ErrInvalidPageSize) {
			return err
		}

	case "search":
		if s.page.List.State().Mode == liststate.ClientFilter {
			_, _ = s.page.List.SetSearch(ctx, arg)
		} else {
			s.page.List.SubmitSearch(arg)
		}

	case "add":
		return s.add(ctx)

	case "edit":
		return s.edit(ctx, arg)

	case "delete":
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("delete: want an id, got %q", arg)
		}
		_, _ = s.page.List.Delete(ctx, id, s.prompt)

	case "cancel":
		if s.page.ShowForm() {
			s.page.ToggleForm()
		}
		s.page.Editor.Cancel()

	case "help":
		fmt.Fprint(s.out, helpText)

	case "quit", "exit":
		return ErrQuit

	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

// add shows the create form, asks for every field and submits. The form
// stays open with its inputs after a failure.
func (s *Shell[T]) add(ctx context.Context) error {
	if !s.page.ShowForm() {
		s.page.ToggleForm()
	}

	values := s.page.Create.Values()
	for _, f := range s.page.Create.Fields() {
		answer, ok := s.prompt.Ask(f.Label, values[f.Name])
		if !ok {
			return io.ErrUnexpectedEOF
		}
		if err := s.page.Create.Change(f.Name, answer); err != nil {
			return err
		}
	}

	// The form keeps its own error text.
	_ = s.page.Create.Submit(ctx)
	return nil
}

// edit opens id from the visible list, or continues with the record that
// is already open when id is empty.
func (s *Shell[T]) edit(ctx context.Context, arg string) error {
	if arg != "" {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("edit: want an id, got %q", arg)
		}
		record, ok := s.find(id)
		if !ok {
			return fmt.Errorf("edit: no student %d on this page", id)
		}
		s.page.Editor.Open(record)
	} else if _, open := s.page.Editor.Editing(); !open {
		return errors.New("edit: want an id")
	}

	values := s.page.Editor.Values()
	for _, f := range s.page.Editor.Fields() {
		answer, ok := s.prompt.Ask(f.Label, values[f.Name])
		if !ok {
			return io.ErrUnexpectedEOF
		}
		if err := s.page.Editor.Change(f.Name, answer); err != nil {
			return err
		}
	}

	_ = s.page.Editor.Submit(ctx)
	return nil
}

func (s *Shell[T]) find(id int64) (T, bool) {
	for _, item := range s.page.List.State().Items {
		if item.Key() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
