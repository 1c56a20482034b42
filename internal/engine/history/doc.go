// Package history provides undo/redo of text edits on a buffer.
//
// Edits are recorded as commands that can be executed, undone and redone.
// Only text is restored: formatting tags follow the text through the
// buffer's listeners as they do for any other edit, so undoing a deletion
// brings the characters back without the tags they carried.
//
// # Operations
//
// An Operation is a single replacement of a range with new text, plus the
// buffer selection before and after it.
//
// # History Stack
//
//	h := NewHistory(1000) // Max 1000 undo entries
//
//	h.Execute(NewInsertCommand(0, "hello"), buf)
//	h.Undo(buf)
//	h.Redo(buf)
//
// Consecutive single-line insertions typed at the end of the previous one
// merge into one undo entry.
//
// # Command Grouping
//
// Several edits can undo as one unit:
//
//	h.Transaction("Replace all", func() error {
//	    // ... multiple edits ...
//	})
package history
