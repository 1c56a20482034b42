// Package document ties a text buffer to the style engine and provides the
// editing features the host shell exposes: search highlighting, word
// statistics, a naive spell check, text-art tables and plain-text files.
package document

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/wordpad/internal/engine/buffer"
	"github.com/dshills/wordpad/internal/engine/format"
	"github.com/dshills/wordpad/internal/engine/history"
	"github.com/dshills/wordpad/internal/engine/tags"
)

// Errors returned by document operations.
var (
	// ErrNoPath indicates Save was called on a document that was never saved or loaded.
	ErrNoPath = errors.New("document has no file path")

	// ErrInvalidTable indicates a table with no rows or columns.
	ErrInvalidTable = errors.New("invalid table size")
)

// Highlight tag names kept in the document's mark table.
const (
	TagFound      = "found"
	TagReplaced   = "replaced"
	TagMisspelled = "misspelled"
)

// Document is an open text with its formatting and highlights.
//
// Every edit goes through the buffer, which notifies the style engine and
// the document, so tags and highlights stay anchored to the text. Text
// edits made through the document are recorded for undo; formatting is not.
type Document struct {
	buf     *buffer.Buffer
	format  *format.Engine
	marks   *tags.Table
	history *history.History

	path     string
	modified bool
}

// New creates an empty document using defaults as the initial font.
func New(defaults format.Defaults, opts ...format.Option) (*Document, error) {
	return newDocument(buffer.NewBuffer(), defaults, opts...)
}

// Open creates a document from the file at path.
func Open(path string, defaults format.Defaults, opts ...format.Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf, err := buffer.NewBufferFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	d, err := newDocument(buf, defaults, opts...)
	if err != nil {
		return nil, err
	}
	d.path = path
	return d, nil
}

func newDocument(buf *buffer.Buffer, defaults format.Defaults, opts ...format.Option) (*Document, error) {
	eng, err := format.New(buf, defaults, opts...)
	if err != nil {
		return nil, err
	}
	d := &Document{
		buf:     buf,
		format:  eng,
		marks:   tags.NewTable(),
		history: history.NewHistory(history.DefaultMaxEntries),
	}
	buf.AddListener(eng)
	buf.AddListener(d)
	return d, nil
}

// Buffer returns the document's text buffer.
func (d *Document) Buffer() *buffer.Buffer {
	return d.buf
}

// Format returns the document's style engine.
func (d *Document) Format() *format.Engine {
	return d.format
}

// Marks returns the highlight table (search results, spelling).
// Callers must treat it as read-only.
func (d *Document) Marks() *tags.Table {
	return d.marks
}

// Path returns the file the document was loaded from or saved to.
func (d *Document) Path() string {
	return d.path
}

// SetPath sets the file Save writes to, for a new file not yet on disk.
func (d *Document) SetPath(path string) {
	d.path = path
}

// Modified returns true if the text changed since the last load or save.
func (d *Document) Modified() bool {
	return d.modified
}

// Text returns the document text.
func (d *Document) Text() string {
	return d.buf.Text()
}

// Insert inserts text at offset and returns the offset after it.
func (d *Document) Insert(offset buffer.Offset, text string) (buffer.Offset, error) {
	return d.execute(history.NewInsertCommand(offset, text))
}

// Delete removes [start, end).
func (d *Document) Delete(start, end buffer.Offset) error {
	_, err := d.execute(history.NewDeleteCommand(buffer.Range{Start: start, End: end}))
	return err
}

// Replace replaces [start, end) with text and returns the offset after
// the new text.
func (d *Document) Replace(start, end buffer.Offset, text string) (buffer.Offset, error) {
	return d.execute(history.NewEditCommand(buffer.Range{Start: start, End: end}, text))
}

// execute runs cmd through the undo history.
func (d *Document) execute(cmd *history.EditCommand) (buffer.Offset, error) {
	if err := d.history.Execute(cmd, d.buf); err != nil {
		return 0, err
	}
	return cmd.End(), nil
}

// Undo reverts the last text edit and restores the selection it had.
// Returns history.ErrNothingToUndo when there is none.
func (d *Document) Undo() error {
	return d.history.Undo(d.buf)
}

// Redo reapplies the last undone edit.
// Returns history.ErrNothingToRedo when there is none.
func (d *Document) Redo() error {
	return d.history.Redo(d.buf)
}

// History returns the document's undo history.
func (d *Document) History() *history.History {
	return d.history
}

// OnRangeInserted implements buffer.Listener.
func (d *Document) OnRangeInserted(start buffer.Offset, length int) {
	d.marks.ShiftInsert(start, length)
	d.modified = true
}

// OnRangeDeleted implements buffer.Listener.
func (d *Document) OnRangeDeleted(start, end buffer.Offset) {
	d.marks.ShiftDelete(start, end)
	d.modified = true
}

// InsertTable appends a text-art table with a header row of "Column"
// cells, a rule, and rows empty rows. Header cells are one column narrower
// than the rule and body cells.
func (d *Document) InsertTable(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %d rows, %d columns", ErrInvalidTable, rows, cols)
	}
	var sb strings.Builder
	line := func(cell string) {
		sb.WriteString("|")
		for range cols {
			sb.WriteString(cell)
			sb.WriteString("|")
		}
		sb.WriteString("\n")
	}
	line(" Column ")
	line("---------")
	for range rows {
		line("         ")
	}
	_, err := d.Insert(d.buf.Len(), sb.String())
	return err
}
