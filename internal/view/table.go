// Package view renders the student list for a terminal.
package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/aanand-mishra/student-manager/internal/liststate"
	"github.com/aanand-mishra/student-manager/internal/types"
)

// Texts shown in place of the table.
const (
	LoadingText    = "Loading students..."
	ErrorHeading   = "Error Loading Students"
	EmptyText      = "No students found. Add one to get started!"
	actionsCell    = "Edit  Delete"
	backendHintFmt = "Make sure the backend API is running at %s"
)

// Table renders a list state. Headers are the record's column titles, in
// the order Record.Cells returns them.
type Table struct {
	Headers []string
	// BaseURL is named in the hint under a load error.
	BaseURL string
}

// Render writes the view of st: a loading line, an error block, or the
// table followed by the page control. Before the first fetch it shows the
// loading line too.
func Render[T types.Record](w io.Writer, t Table, st liststate.State[T]) error {
	switch st.Status {
	case liststate.Idle, liststate.Loading:
		_, err := fmt.Fprintln(w, LoadingText)
		return err
	case liststate.Errored:
		_, err := fmt.Fprintf(w, "%s\n%s\n"+backendHintFmt+"\n", ErrorHeading, st.Message, t.BaseURL)
		return err
	}

	if err := renderRows(w, t.Headers, st.Items); err != nil {
		return err
	}
	return Pagination{CurrentPage: st.Page, TotalPages: st.TotalPages}.Render(w)
}

func renderRows[T types.Record](w io.Writer, headers []string, items []T) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	head := append([]string{"ID"}, headers...)
	head = append(head, "Actions")
	fmt.Fprintln(tw, strings.Join(head, "\t"))

	if len(items) == 0 {
		fmt.Fprintln(tw, EmptyText)
	}
	for _, item := range items {
		row := append([]string{strconv.FormatInt(item.Key(), 10)}, item.Cells()...)
		row = append(row, actionsCell)
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
