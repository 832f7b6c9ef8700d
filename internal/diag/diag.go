// Package diag implements the compiler's diagnostic model: a bounded
// error bag that short-circuits compilation once full, warnings that
// never halt it, and a "crumb" rendering (Error (Ennnn): <title> plus
// a location snippet with a caret underline) spec.md §6 specifies.
//
// Terminal-capability detection for whether to emit ANSI color in the
// rendered crumb follows golang.org/x/term, the teacher's own
// terminal-I/O dependency (see SPEC_FULL.md's ambient-stack section).
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Baleg00/tau/internal/source"
)

// Severity distinguishes errors (which poison a node's type and can
// fill the bag) from warnings (which never halt compilation).
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Code is a stable diagnostic identifier, rendered as "Ennnn".
type Code int

// Diagnostic is one reported problem.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Title    string
	Loc      source.Location
	Notes    []string
}

// DefaultCapacity is the error bag's default size: once this many
// errors have been recorded, the bag is Full and callers should stop
// accumulating more (spec.md §6's "bounded error bag, ~15 capacity").
const DefaultCapacity = 15

// Bag accumulates diagnostics and exposes whether it has reached
// capacity, so passes can fail fast instead of cascading forever.
type Bag struct {
	capacity int
	errors   []Diagnostic
	warnings []Diagnostic
}

// NewBag returns a Bag with the given error capacity. A capacity <= 0
// uses DefaultCapacity.
func NewBag(capacity int) *Bag {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bag{capacity: capacity}
}

// Report adds d to the bag. Errors beyond capacity are dropped (the
// bag is already Full by then, and callers are expected to have
// stopped calling Report on errors once Full returns true).
func (b *Bag) Report(d Diagnostic) {
	if d.Severity == SeverityWarning {
		b.warnings = append(b.warnings, d)
		return
	}
	if len(b.errors) >= b.capacity {
		return
	}
	b.errors = append(b.errors, d)
}

// Full reports whether the error bag has reached capacity; passes
// should short-circuit remaining work once this is true.
func (b *Bag) Full() bool {
	return len(b.errors) >= b.capacity
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	return len(b.errors) > 0
}

// Errors returns every recorded error, in report order.
func (b *Bag) Errors() []Diagnostic { return b.errors }

// Warnings returns every recorded warning, in report order.
func (b *Bag) Warnings() []Diagnostic { return b.warnings }

// Render writes every diagnostic in b to w in crumb format, resolving
// locations through reg. Color is used only when out looks like a
// terminal.
func (b *Bag) Render(w io.Writer, out *os.File, reg *source.Registry) {
	color := out != nil && term.IsTerminal(int(out.Fd()))
	for _, d := range b.errors {
		writeCrumb(w, d, reg, color)
	}
	for _, d := range b.warnings {
		writeCrumb(w, d, reg, color)
	}
}

func writeCrumb(w io.Writer, d Diagnostic, reg *source.Registry, color bool) {
	kind := "Error"
	codeLetter := "E"
	if d.Severity == SeverityWarning {
		kind = "Warning"
		codeLetter = "W"
	}
	head := fmt.Sprintf("%s (%s%04d): %s", kind, codeLetter, d.Code, d.Title)
	if color {
		if d.Severity == SeverityError {
			head = "\x1b[1;31m" + head + "\x1b[0m"
		} else {
			head = "\x1b[1;33m" + head + "\x1b[0m"
		}
	}
	fmt.Fprintln(w, head)

	if reg != nil {
		resolved := reg.Resolve(d.Loc)
		f := reg.File(d.Loc.FileID)
		fmt.Fprintf(w, "  --> %s:%d:%d\n", resolved.Path, resolved.Line, resolved.Col)
		if f != nil {
			line := f.LineText(resolved.Line)
			fmt.Fprintf(w, "   | %s\n", line)
			caretLen := d.Loc.Length
			if caretLen < 1 {
				caretLen = 1
			}
			underline := strings.Repeat(" ", resolved.Col-1) + strings.Repeat("^", caretLen)
			fmt.Fprintf(w, "   | %s\n", underline)
		}
	}
	for _, n := range d.Notes {
		fmt.Fprintf(w, "   = note: %s\n", n)
	}
	fmt.Fprintln(w)
}
