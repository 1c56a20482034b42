package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/wordpad/internal/engine/buffer"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

const (
	// DefaultMaxEntries is the undo depth used when none is given.
	DefaultMaxEntries = 1000

	// DefaultMergeWindow is how close together typed insertions must be
	// to merge into one undo entry.
	DefaultMergeWindow = time.Second
)

// undoEntry wraps a command with metadata.
type undoEntry struct {
	command   Command
	timestamp time.Time
}

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	// Grouping state
	grouping  bool
	groupName string
	groupCmds []Command

	maxEntries  int
	mergeWindow time.Duration
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries:  maxEntries,
		mergeWindow: DefaultMergeWindow,
	}
}

// Execute runs a command and adds it to the undo stack. Edits that change
// nothing are not recorded.
func (h *History) Execute(cmd Command, buf *buffer.Buffer) error {
	if err := cmd.Execute(buf); err != nil {
		return err
	}
	if n, ok := cmd.(interface{ IsNoop() bool }); ok && n.IsNoop() {
		return nil
	}
	h.Push(cmd)
	return nil
}

// Push adds an executed command to the undo stack and clears the redo
// stack.
func (h *History) Push(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		h.groupCmds = append(h.groupCmds, cmd)
		return
	}
	h.pushLocked(cmd)
}

func (h *History) pushLocked(cmd Command) {
	h.redoStack = nil

	if h.mergeWindow > 0 && len(h.undoStack) > 0 {
		top, ok1 := h.undoStack[len(h.undoStack)-1].command.(*EditCommand)
		next, ok2 := cmd.(*EditCommand)
		if ok1 && ok2 && top.merge(next, h.mergeWindow) {
			return
		}
	}

	h.undoStack = append(h.undoStack, &undoEntry{
		command:   cmd,
		timestamp: time.Now(),
	})

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo undoes the last command.
func (h *History) Undo(buf *buffer.Buffer) error {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToUndo
	}
	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	if err := entry.command.Undo(buf); err != nil {
		h.mu.Lock()
		h.undoStack = append(h.undoStack, entry)
		h.mu.Unlock()
		return err
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, entry)
	h.mu.Unlock()
	return nil
}

// Redo redoes the last undone command.
func (h *History) Redo(buf *buffer.Buffer) error {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToRedo
	}
	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	if err := entry.command.Execute(buf); err != nil {
		h.mu.Lock()
		h.redoStack = append(h.redoStack, entry)
		h.mu.Unlock()
		return err
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, entry)
	h.mu.Unlock()
	return nil
}

// BeginGroup starts a command group. Commands pushed while grouping are
// combined into a single undo unit. Nested calls are ignored.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return
	}
	h.grouping = true
	h.groupName = name
	h.groupCmds = nil
}

// EndGroup finishes a command group.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return
	}
	h.grouping = false
	if len(h.groupCmds) > 0 {
		h.pushLocked(NewCompoundCommand(h.groupName, h.groupCmds...))
	}
	h.groupCmds = nil
}

// CancelGroup ends a group without adding it to the history.
// Edits already executed stay in the buffer.
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.grouping = false
	h.groupCmds = nil
}

// Transaction runs fn inside a group. If fn fails the group is cancelled.
func (h *History) Transaction(name string, fn func() error) error {
	h.BeginGroup(name)
	if err := fn(); err != nil {
		h.CancelGroup()
		return err
	}
	h.EndGroup()
	return nil
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.groupCmds = nil
}

// PeekUndo returns info about the next undo operation without removing it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return peek(h.undoStack)
}

// PeekRedo returns info about the next redo operation without removing it.
func (h *History) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return peek(h.redoStack)
}

func peek(stack []*undoEntry) (OperationInfo, bool) {
	if len(stack) == 0 {
		return OperationInfo{}, false
	}
	entry := stack[len(stack)-1]
	return OperationInfo{
		Description: entry.command.Description(),
		Timestamp:   entry.timestamp,
	}, true
}
