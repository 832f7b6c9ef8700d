// Package source implements the compiler's source registry: it loads
// input files, strips a UTF-8 byte-order mark if present, validates
// encoding, and hands out stable locations that every later stage
// (lexer, parser, diagnostics) can resolve back to file/line/column.
package source

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// File is a single registered translation unit's source text.
type File struct {
	ID   int
	Path string
	Text string

	// lineOffsets[i] is the byte offset of the start of line i+1 (1-based lines).
	lineOffsets []int
}

// Registry owns every File loaded during a compilation and assigns
// each one a stable ID used by Location.
type Registry struct {
	files []*File
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Load reads path, strips a BOM if present, validates the result as
// UTF-8, and registers it. The returned *File is valid for the
// lifetime of the Registry.
func (r *Registry) Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	text, err := stripBOM(raw)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", path, err)
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("source: %s: not valid UTF-8", path)
	}
	f := &File{
		ID:   len(r.files),
		Path: path,
		Text: text,
	}
	f.indexLines()
	r.files = append(r.files, f)
	return f, nil
}

// LoadString registers in-memory text under a synthetic path; used by
// tests and by tools that feed the compiler text that didn't come
// from disk.
func (r *Registry) LoadString(path, text string) *File {
	f := &File{
		ID:   len(r.files),
		Path: path,
		Text: text,
	}
	f.indexLines()
	r.files = append(r.files, f)
	return f
}

// File returns the file registered under id, or nil if id is out of range.
func (r *Registry) File(id int) *File {
	if id < 0 || id >= len(r.files) {
		return nil
	}
	return r.files[id]
}

func stripBOM(raw []byte) (string, error) {
	bomAware := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, err := bomAware.Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func (f *File) indexLines() {
	f.lineOffsets = append(f.lineOffsets[:0], 0)
	for i, b := range []byte(f.Text) {
		if b == '\n' {
			f.lineOffsets = append(f.lineOffsets, i+1)
		}
	}
}

// LineCol converts a byte offset into the file into a 1-based
// (line, column) pair.
func (f *File) LineCol(offset int) (line, col int) {
	// binary search over lineOffsets for the last offset <= given offset
	lo, hi := 0, len(f.lineOffsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if f.lineOffsets[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	line = lo + 1
	col = offset - f.lineOffsets[lo] + 1
	return line, col
}

// LineText returns the text of the given 1-based line, without its
// trailing newline.
func (f *File) LineText(line int) string {
	if line < 1 || line > len(f.lineOffsets) {
		return ""
	}
	start := f.lineOffsets[line-1]
	end := len(f.Text)
	if line < len(f.lineOffsets) {
		end = f.lineOffsets[line] - 1
	}
	if end < start {
		end = start
	}
	for end > start && (f.Text[end-1] == '\n' || f.Text[end-1] == '\r') {
		end--
	}
	return f.Text[start:end]
}

// Location identifies a span of source text within a registered File.
type Location struct {
	FileID int
	Offset int
	Length int
}

// Resolved is a human-readable rendering of a Location.
type Resolved struct {
	Path string
	Line int
	Col  int
}

// Resolve looks up the file named by loc and converts its offset into
// line/column form.
func (r *Registry) Resolve(loc Location) Resolved {
	f := r.File(loc.FileID)
	if f == nil {
		return Resolved{Path: "<unknown>"}
	}
	line, col := f.LineCol(loc.Offset)
	return Resolved{Path: f.Path, Line: line, Col: col}
}
