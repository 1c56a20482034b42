// Package buffer provides the text buffer that the style engine and the
// host shell share.
//
// The buffer package provides:
//
//   - Character (rune) offsets: every Offset addresses exactly one character
//   - Half-open Range values with overlap/intersection helpers
//   - A single selection range, kept in place across edits
//   - Listeners notified after every insert and delete
//   - Line ending normalization on input and restoration on output
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	buf.Insert(7, "Beautiful ")  // "Hello, Beautiful World!"
//	buf.Delete(0, 7)             // "Beautiful World!"
//
// Listeners:
//
// Anything that keeps positions into the text (style overlays, search
// highlights) registers a Listener. The buffer calls OnRangeInserted and
// OnRangeDeleted after each mutation with offsets in pre-change
// coordinates, so positions never drift from the text.
package buffer
