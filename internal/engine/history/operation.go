package history

import (
	"time"
	"unicode/utf8"

	"github.com/dshills/wordpad/internal/engine/buffer"
)

// Operation represents a single undoable edit.
type Operation struct {
	Range   buffer.Range // Range that was modified, in the text before the edit
	OldText string       // Text that was replaced (for undo)
	NewText string       // Text that was inserted (for redo)

	SelectionBefore buffer.Range
	SelectionAfter  buffer.Range

	Timestamp time.Time
}

// NewOperation creates a new operation.
func NewOperation(r buffer.Range, oldText, newText string) *Operation {
	return &Operation{
		Range:     r,
		OldText:   oldText,
		NewText:   newText,
		Timestamp: time.Now(),
	}
}

// IsInsert returns true if this operation is a pure insertion.
func (op *Operation) IsInsert() bool {
	return op.Range.IsEmpty() && op.NewText != ""
}

// IsDelete returns true if this operation is a pure deletion.
func (op *Operation) IsDelete() bool {
	return !op.Range.IsEmpty() && op.NewText == ""
}

// IsNoop returns true if this operation makes no changes.
func (op *Operation) IsNoop() bool {
	return op.OldText == op.NewText
}

// Delta returns the change in document length in characters.
func (op *Operation) Delta() int {
	return utf8.RuneCountInString(op.NewText) - op.Range.Len()
}

// NewRange returns the range of the text after the operation.
func (op *Operation) NewRange() buffer.Range {
	return buffer.Range{Start: op.Range.Start, End: op.Range.End + op.Delta()}
}

// Invert returns an operation that undoes this one.
func (op *Operation) Invert() *Operation {
	return &Operation{
		Range:           op.NewRange(),
		OldText:         op.NewText,
		NewText:         op.OldText,
		SelectionBefore: op.SelectionAfter,
		SelectionAfter:  op.SelectionBefore,
		Timestamp:       time.Now(),
	}
}

// apply performs the operation on buf and restores SelectionAfter.
func (op *Operation) apply(buf *buffer.Buffer) error {
	if _, err := buf.Replace(op.Range.Start, op.Range.End, op.NewText); err != nil {
		return err
	}
	return buf.SetSelection(op.SelectionAfter)
}

// OperationInfo provides read-only info about an undo entry.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}
