package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter reads answers from a line-oriented input. It implements the
// confirm and alert dialogs of the list.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter reads lines from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// ReadLine returns the next input line without its newline. ok is false
// at end of input.
func (p *Prompter) ReadLine() (line string, ok bool) {
	if !p.in.Scan() {
		return "", false
	}
	return strings.TrimRight(p.in.Text(), "\r"), true
}

// Ask prints label and the current value, and returns the answer. An
// empty answer keeps current; a single "-" clears it.
func (p *Prompter) Ask(label, current string) (string, bool) {
	if current != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	answer, ok := p.ReadLine()
	if !ok {
		return current, false
	}
	switch strings.TrimSpace(answer) {
	case "":
		return current, true
	case "-":
		return "", true
	}
	return answer, true
}

// Confirm asks a yes/no question. Anything but "y" or "yes" is no,
// including end of input.
func (p *Prompter) Confirm(message string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", message)
	answer, ok := p.ReadLine()
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// Alert prints message on its own line.
func (p *Prompter) Alert(message string) {
	fmt.Fprintf(p.out, "! %s\n", message)
}
