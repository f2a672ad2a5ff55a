package view

import (
	"fmt"
	"io"
	"strings"
)

// Pagination is the page control under the table. Pages are 0-based;
// they are shown 1-based.
type Pagination struct {
	CurrentPage  int
	TotalPages   int
	OnPageChange func(page int)
}

// Visible reports whether the control renders at all.
func (p Pagination) Visible() bool {
	return p.TotalPages > 1
}

// Previous requests the page before the current one.
func (p Pagination) Previous() bool { return p.GoTo(p.CurrentPage - 1) }

// Next requests the page after the current one.
func (p Pagination) Next() bool { return p.GoTo(p.CurrentPage + 1) }

// GoTo requests page. It emits exactly one OnPageChange when page is a
// different page within range and the control is visible, and nothing
// otherwise. The return value reports whether the event was emitted.
func (p Pagination) GoTo(page int) bool {
	if !p.Visible() || page < 0 || page >= p.TotalPages || page == p.CurrentPage {
		return false
	}
	if p.OnPageChange != nil {
		p.OnPageChange(page)
	}
	return true
}

// Render writes a line such as "« Prev  1 [2] 3  Next »  (page 2 of 3)".
// It writes nothing when the control is not visible.
func (p Pagination) Render(w io.Writer) error {
	if !p.Visible() {
		return nil
	}

	var b strings.Builder
	if p.CurrentPage > 0 {
		b.WriteString("« Prev  ")
	}
	for i := 0; i < p.TotalPages; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i == p.CurrentPage {
			fmt.Fprintf(&b, "[%d]", i+1)
		} else {
			fmt.Fprintf(&b, "%d", i+1)
		}
	}
	if p.CurrentPage < p.TotalPages-1 {
		b.WriteString("  Next »")
	}
	fmt.Fprintf(&b, "  (page %d of %d)\n", p.CurrentPage+1, p.TotalPages)

	_, err := io.WriteString(w, b.String())
	return err
}
