// Package tags implements named overlays over character ranges.
//
// A Table maps tag names to a rendering Spec and a set of half-open
// ranges. It plays the part of a GUI toolkit's text-tagging primitive:
// callers add and remove a name over a range, ask which names cover an
// offset, and forward buffer edits so the ranges stay anchored to the
// text.
//
// The table knows nothing about what a name means. Rules such as "two
// foreground colors never overlap" belong to the caller, which enforces
// them by removing before applying.
package tags
