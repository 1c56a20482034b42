package history

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dshills/wordpad/internal/engine/buffer"
)

// Command represents an edit that can be executed and undone.
type Command interface {
	// Execute performs the command. Executing again after Undo redoes it.
	Execute(buf *buffer.Buffer) error

	// Undo reverses the command.
	Undo(buf *buffer.Buffer) error

	// Description returns a human-readable description of the command.
	Description() string
}

// EditCommand replaces a range with text. Insertions and deletions are
// edits with an empty range or empty text.
type EditCommand struct {
	Range buffer.Range
	Text  string

	op *Operation
}

// NewEditCommand creates a command replacing r with text.
func NewEditCommand(r buffer.Range, text string) *EditCommand {
	return &EditCommand{Range: r, Text: text}
}

// NewInsertCommand creates a command inserting text at offset.
func NewInsertCommand(offset buffer.Offset, text string) *EditCommand {
	return NewEditCommand(buffer.PointRange(offset), text)
}

// NewDeleteCommand creates a command deleting r.
func NewDeleteCommand(r buffer.Range) *EditCommand {
	return NewEditCommand(r, "")
}

// Execute applies the edit. The first run records the replaced text and
// the selections; later runs replay the recording.
func (c *EditCommand) Execute(buf *buffer.Buffer) error {
	if c.op != nil {
		return c.op.apply(buf)
	}

	r := c.Range
	old, err := buf.TextRange(r.Start, r.End)
	if err != nil {
		return err
	}
	before := buf.Selection()
	end, err := buf.Replace(r.Start, r.End, c.Text)
	if err != nil {
		return fmt.Errorf("edit %s: %w", r, err)
	}
	// Line endings are normalized on insert; record what the buffer holds.
	inserted, err := buf.TextRange(r.Start, end)
	if err != nil {
		return err
	}

	c.op = NewOperation(r, old, inserted)
	c.op.SelectionBefore = before
	c.op.SelectionAfter = buf.Selection()
	return nil
}

// Undo restores the replaced text and the selection before the edit.
func (c *EditCommand) Undo(buf *buffer.Buffer) error {
	if c.op == nil {
		return nil
	}
	if err := c.op.Invert().apply(buf); err != nil {
		return fmt.Errorf("undo edit: %w", err)
	}
	return nil
}

// End returns the offset after the inserted text. Valid after Execute.
func (c *EditCommand) End() buffer.Offset {
	if c.op == nil {
		return c.Range.Start
	}
	return c.op.NewRange().End
}

// IsNoop reports whether the executed edit changed nothing.
func (c *EditCommand) IsNoop() bool {
	return c.op == nil || c.op.IsNoop()
}

// Description returns a human-readable description.
func (c *EditCommand) Description() string {
	text := c.Text
	deletes := c.Text == ""
	if c.op != nil {
		text = c.op.NewText
		deletes = c.op.IsDelete()
	}
	switch {
	case deletes:
		return fmt.Sprintf("Delete %d characters", c.Range.Len())
	case text == "\n":
		return "Insert newline"
	case text == "\t":
		return "Insert tab"
	case !c.Range.IsEmpty():
		return fmt.Sprintf("Replace %d characters", c.Range.Len())
	case utf8.RuneCountInString(text) <= 20:
		return fmt.Sprintf("Insert %q", text)
	default:
		return fmt.Sprintf("Insert %d characters", utf8.RuneCountInString(text))
	}
}

// merge absorbs next into c when next continues typing at the end of c:
// both are insertions, next starts where c ended, neither contains a line
// break and next came within window.
func (c *EditCommand) merge(next *EditCommand, window time.Duration) bool {
	a, b := c.op, next.op
	if a == nil || b == nil || !a.IsInsert() || !b.IsInsert() {
		return false
	}
	if b.Range.Start != a.NewRange().End || b.Timestamp.Sub(a.Timestamp) > window {
		return false
	}
	if strings.Contains(a.NewText, "\n") || strings.Contains(b.NewText, "\n") {
		return false
	}
	a.NewText += b.NewText
	a.SelectionAfter = b.SelectionAfter
	a.Timestamp = b.Timestamp
	c.Text = a.NewText
	return true
}

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a new compound command.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{Name: name, Commands: commands}
}

// Execute runs all commands in order.
func (c *CompoundCommand) Execute(buf *buffer.Buffer) error {
	for _, cmd := range c.Commands {
		if err := cmd.Execute(buf); err != nil {
			return err
		}
	}
	return nil
}

// Undo reverses all commands in reverse order.
func (c *CompoundCommand) Undo(buf *buffer.Buffer) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(buf); err != nil {
			return err
		}
	}
	return nil
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%d edits", len(c.Commands))
}
