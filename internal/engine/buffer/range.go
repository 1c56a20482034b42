package buffer

import "fmt"

// Offset is a character (rune) position in the buffer.
type Offset = int

// Range represents a character range in the buffer.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start Offset // Inclusive start position
	End   Offset // Exclusive end position
}

// NewRange creates a new Range from start and end offsets.
// The offsets are ordered so that Start <= End.
func NewRange(start, end Offset) Range {
	if end < start {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// PointRange returns the empty range at offset.
func PointRange(offset Offset) Range {
	return Range{Start: offset, End: offset}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the number of characters covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if the range is valid (Start <= End).
func (r Range) IsValid() bool {
	return r.Start <= r.End
}

// Contains returns true if the given offset is within the range.
// An empty range contains nothing.
func (r Range) Contains(offset Offset) bool {
	return offset >= r.Start && offset < r.End
}

// Overlaps returns true if this range shares at least one character with another range.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Touches returns true if the ranges overlap or abut.
func (r Range) Touches(other Range) bool {
	return r.Start <= other.End && other.Start <= r.End
}

// Intersect returns the intersection of two ranges, or an empty range if they don't overlap.
func (r Range) Intersect(other Range) Range {
	start := max(r.Start, other.Start)
	end := min(r.End, other.End)
	if start >= end {
		return Range{Start: start, End: start}
	}
	return Range{Start: start, End: end}
}

// Union returns the smallest range that contains both ranges.
func (r Range) Union(other Range) Range {
	return Range{Start: min(r.Start, other.Start), End: max(r.End, other.End)}
}

// Point represents a line and column position.
// Both Line and Column are 0-indexed; Column counts characters.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}
