package buffer

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Errors returned by buffer operations.
var (
	// ErrRangeOutOfBounds indicates an offset or range outside the buffer.
	ErrRangeOutOfBounds = errors.New("range out of bounds")

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = errors.New("invalid range")
)

// LineEnding specifies the line ending style used when writing text out.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
)

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	if le == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}

// Listener is notified after every successful mutation of the buffer.
// Offsets are in the coordinates of the buffer before the change.
type Listener interface {
	OnRangeInserted(start Offset, length int)
	OnRangeDeleted(start, end Offset)
}

// Buffer holds the raw character sequence and the current selection.
//
// Text is stored as runes so that every offset addresses one character.
// Internally the buffer always uses "\n"; the line ending is applied on
// output by WriteTo.
//
// Buffer is not safe for concurrent use; it is owned by a single
// control loop.
type Buffer struct {
	text       []rune
	selection  Range
	lineEnding LineEnding
	listeners  []Listener
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{lineEnding: LineEndingLF}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.text = []rune(normalizeLineEndings(s))
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
// The line ending style is detected from the content.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(data)
	opts = append([]Option{WithLineEnding(DetectLineEnding(text))}, opts...)
	return NewBufferFromString(text, opts...), nil
}

// normalizeLineEndings converts CRLF and CR to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// AddListener registers l to be notified of every insert and delete.
func (b *Buffer) AddListener(l Listener) {
	b.listeners = append(b.listeners, l)
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	return string(b.text)
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	return len(b.text)
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return len(b.text) == 0
}

// CheckRange verifies that r is a valid range inside the buffer.
// An empty range at Len() is valid (the end-of-text insertion point).
func (b *Buffer) CheckRange(r Range) error {
	if !r.IsValid() {
		return fmt.Errorf("%w: %s", ErrRangeInvalid, r)
	}
	if r.Start < 0 || r.End > len(b.text) {
		return fmt.Errorf("%w: %s in buffer of length %d", ErrRangeOutOfBounds, r, len(b.text))
	}
	return nil
}

// TextRange returns text in the given character range.
func (b *Buffer) TextRange(start, end Offset) (string, error) {
	if err := b.CheckRange(Range{Start: start, End: end}); err != nil {
		return "", err
	}
	return string(b.text[start:end]), nil
}

// Lines returns the range of every line, excluding the terminating newline.
// An empty buffer has one empty line.
func (b *Buffer) Lines() []Range {
	lines := make([]Range, 0, 16)
	start := 0
	for i, r := range b.text {
		if r == '\n' {
			lines = append(lines, Range{Start: start, End: i})
			start = i + 1
		}
	}
	return append(lines, Range{Start: start, End: len(b.text)})
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	n := 1
	for _, r := range b.text {
		if r == '\n' {
			n++
		}
	}
	return n
}

// OffsetToPoint converts an offset to line/column.
// Offsets past the end clamp to the end of the buffer.
func (b *Buffer) OffsetToPoint(offset Offset) Point {
	offset = max(0, min(offset, len(b.text)))
	var p Point
	for _, r := range b.text[:offset] {
		if r == '\n' {
			p.Line++
			p.Column = 0
			continue
		}
		p.Column++
	}
	return p
}

// PointToOffset converts line/column to an offset.
// Columns past the end of the line clamp to the line end.
func (b *Buffer) PointToOffset(p Point) Offset {
	lines := b.Lines()
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(lines) {
		return len(b.text)
	}
	line := lines[p.Line]
	return line.Start + max(0, min(p.Column, line.Len()))
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end offset of the inserted text.
func (b *Buffer) Insert(offset Offset, text string) (Offset, error) {
	if offset < 0 || offset > len(b.text) {
		return 0, fmt.Errorf("%w: insert at %d in buffer of length %d", ErrRangeOutOfBounds, offset, len(b.text))
	}
	runes := []rune(normalizeLineEndings(text))
	if len(runes) == 0 {
		return offset, nil
	}

	next := make([]rune, 0, len(b.text)+len(runes))
	next = append(next, b.text[:offset]...)
	next = append(next, runes...)
	next = append(next, b.text[offset:]...)
	b.text = next

	b.selection = shiftForInsert(b.selection, offset, len(runes))
	for _, l := range b.listeners {
		l.OnRangeInserted(offset, len(runes))
	}
	return offset + len(runes), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end Offset) error {
	r := Range{Start: start, End: end}
	if err := b.CheckRange(r); err != nil {
		return err
	}
	if r.IsEmpty() {
		return nil
	}

	b.text = append(b.text[:start:start], b.text[end:]...)

	b.selection = shiftForDelete(b.selection, start, end)
	for _, l := range b.listeners {
		l.OnRangeDeleted(start, end)
	}
	return nil
}

// Replace replaces text in the given range with new text.
// Listeners see a delete followed by an insert.
func (b *Buffer) Replace(start, end Offset, text string) (Offset, error) {
	if err := b.Delete(start, end); err != nil {
		return 0, err
	}
	return b.Insert(start, text)
}

// Selection

// Selection returns the current selection.
func (b *Buffer) Selection() Range {
	return b.selection
}

// SetSelection sets the current selection. The range is ordered first.
func (b *Buffer) SetSelection(r Range) error {
	r = NewRange(r.Start, r.End)
	if err := b.CheckRange(r); err != nil {
		return err
	}
	b.selection = r
	return nil
}

// LineEnding returns the buffer's output line ending style.
func (b *Buffer) LineEnding() LineEnding {
	return b.lineEnding
}

// SetLineEnding sets the buffer's output line ending style.
// This does not change the stored text.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.lineEnding = le
}

// WriteTo writes the buffer content using the buffer's line ending.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	text := string(b.text)
	if b.lineEnding != LineEndingLF {
		text = strings.ReplaceAll(text, "\n", b.lineEnding.Sequence())
	}
	n, err := io.WriteString(w, text)
	return int64(n), err
}

// shiftForInsert moves r to account for length characters inserted at offset.
func shiftForInsert(r Range, offset Offset, length int) Range {
	if r.Start >= offset {
		r.Start += length
	}
	if r.End >= offset {
		r.End += length
	}
	return r
}

// shiftForDelete moves r to account for [start, end) being removed.
func shiftForDelete(r Range, start, end Offset) Range {
	return Range{Start: MapDeleted(r.Start, start, end), End: MapDeleted(r.End, start, end)}
}

// MapDeleted maps an offset from before the deletion of [start, end) to
// the equivalent offset after it. Offsets inside the deleted span collapse
// to start.
func MapDeleted(offset, start, end Offset) Offset {
	switch {
	case offset <= start:
		return offset
	case offset < end:
		return start
	default:
		return offset - (end - start)
	}
}
