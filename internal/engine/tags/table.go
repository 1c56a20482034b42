package tags

import (
	"slices"
	"sort"

	"github.com/dshills/wordpad/internal/engine/buffer"
)

// Font is a resolved font descriptor.
type Font struct {
	Family    string
	Size      int
	Bold      bool
	Italic    bool
	Underline bool
}

// Spec is the rendering configuration bound to a tag name.
// Zero fields mean "not set by this tag".
type Spec struct {
	Font       Font
	Foreground string // "#rrggbb"
	Background string // "#rrggbb"
}

// tag is one named overlay: its spec and its ranges.
// ranges is sorted by Start and coalesced: non-empty ranges never touch,
// and an empty range is kept only when it touches no other range.
type tag struct {
	spec   Spec
	ranges []buffer.Range
}

// Table holds named overlays over character ranges.
//
// Tags are ordered by creation; later tags have higher priority and are
// listed last by Names and NamesAt. A tag disappears from the table once
// its last range is removed.
type Table struct {
	tags  map[string]*tag
	order []string
}

// NewTable creates an empty tag table.
func NewTable() *Table {
	return &Table{tags: make(map[string]*tag)}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		tags:  make(map[string]*tag, len(t.tags)),
		order: slices.Clone(t.order),
	}
	for name, tg := range t.tags {
		c.tags[name] = &tag{spec: tg.spec, ranges: slices.Clone(tg.ranges)}
	}
	return c
}

// Apply adds the tag name over r, configuring it with spec.
// Overlapping and abutting ranges of the same name are merged.
// An empty r records an inert marker unless it touches an existing range.
func (t *Table) Apply(name string, r buffer.Range, spec Spec) {
	tg, ok := t.tags[name]
	if !ok {
		tg = &tag{}
		t.tags[name] = tg
		t.order = append(t.order, name)
	}
	tg.spec = spec
	tg.ranges = insertRange(tg.ranges, r)
}

// Remove removes the tag name from r. Ranges partially covered by r are
// split; the parts outside r keep the tag. Empty markers strictly inside r
// or at r.Start are dropped.
func (t *Table) Remove(name string, r buffer.Range) {
	tg, ok := t.tags[name]
	if !ok || r.IsEmpty() {
		return
	}
	tg.ranges = subtractRange(tg.ranges, r)
	t.prune(name)
}

// RemoveAll removes every range of the tag name.
func (t *Table) RemoveAll(name string) {
	if _, ok := t.tags[name]; !ok {
		return
	}
	t.tags[name].ranges = nil
	t.prune(name)
}

// Has returns true if the tag exists in the table.
func (t *Table) Has(name string) bool {
	_, ok := t.tags[name]
	return ok
}

// Spec returns the spec of the tag name.
func (t *Table) Spec(name string) (Spec, bool) {
	tg, ok := t.tags[name]
	if !ok {
		return Spec{}, false
	}
	return tg.spec, true
}

// Ranges returns a copy of the ranges of the tag name.
func (t *Table) Ranges(name string) []buffer.Range {
	tg, ok := t.tags[name]
	if !ok {
		return nil
	}
	return slices.Clone(tg.ranges)
}

// Names returns every tag name in priority order.
func (t *Table) Names() []string {
	return slices.Clone(t.order)
}

// NamesAt returns the names of tags covering offset, in priority order.
func (t *Table) NamesAt(offset buffer.Offset) []string {
	var names []string
	for _, name := range t.order {
		if covers(t.tags[name].ranges, offset) {
			names = append(names, name)
		}
	}
	return names
}

// HasAt returns true if the tag name covers offset.
func (t *Table) HasAt(name string, offset buffer.Offset) bool {
	tg, ok := t.tags[name]
	return ok && covers(tg.ranges, offset)
}

// Segment is a maximal sub-range over which the set of covering tags is
// constant.
type Segment struct {
	Range buffer.Range
	Names []string
}

// Segments splits r at every tag boundary inside it and returns the
// resulting pieces in order. An empty r yields no segments.
func (t *Table) Segments(r buffer.Range) []Segment {
	if r.IsEmpty() {
		return nil
	}
	cuts := []buffer.Offset{r.Start, r.End}
	for _, tg := range t.tags {
		for _, rg := range tg.ranges {
			if rg.Start > r.Start && rg.Start < r.End {
				cuts = append(cuts, rg.Start)
			}
			if rg.End > r.Start && rg.End < r.End {
				cuts = append(cuts, rg.End)
			}
		}
	}
	sort.Ints(cuts)
	cuts = slices.Compact(cuts)

	segments := make([]Segment, 0, len(cuts)-1)
	for i := 0; i+1 < len(cuts); i++ {
		segments = append(segments, Segment{
			Range: buffer.Range{Start: cuts[i], End: cuts[i+1]},
			Names: t.NamesAt(cuts[i]),
		})
	}
	return segments
}

// ShiftInsert moves every boundary at or after start right by length.
// A range ending exactly at start is not extended; a range strictly
// containing start grows.
func (t *Table) ShiftInsert(start buffer.Offset, length int) {
	if length <= 0 {
		return
	}
	for _, tg := range t.tags {
		for i, rg := range tg.ranges {
			if rg.Start >= start {
				rg.Start += length
			}
			if rg.End > start || (rg.End == start && rg.IsEmpty()) {
				rg.End += length
			}
			tg.ranges[i] = rg
		}
	}
}

// ShiftDelete accounts for the removal of [start, end). Ranges after end
// shift left, intersecting ranges are clipped to what survives, and ranges
// inside the deletion are dropped. Empty markers inside the deletion
// collapse to start.
func (t *Table) ShiftDelete(start, end buffer.Offset) {
	if end <= start {
		return
	}
	for _, name := range slices.Clone(t.order) {
		tg := t.tags[name]
		var next []buffer.Range
		for _, rg := range tg.ranges {
			wasEmpty := rg.IsEmpty()
			rg = buffer.Range{
				Start: buffer.MapDeleted(rg.Start, start, end),
				End:   buffer.MapDeleted(rg.End, start, end),
			}
			if rg.IsEmpty() && !wasEmpty {
				continue
			}
			next = insertRange(next, rg)
		}
		tg.ranges = next
		t.prune(name)
	}
}

// prune drops the tag name if it has no ranges left.
func (t *Table) prune(name string) {
	if len(t.tags[name].ranges) > 0 {
		return
	}
	delete(t.tags, name)
	t.order = slices.DeleteFunc(t.order, func(n string) bool { return n == name })
}

// covers reports whether any range in the sorted list contains offset.
func covers(ranges []buffer.Range, offset buffer.Offset) bool {
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i].End > offset })
	return i < len(ranges) && ranges[i].Contains(offset)
}

// insertRange adds r to the sorted, coalesced list and returns the result.
func insertRange(ranges []buffer.Range, r buffer.Range) []buffer.Range {
	if r.IsEmpty() {
		for _, rg := range ranges {
			if rg.Touches(r) {
				return ranges
			}
		}
		i := sort.Search(len(ranges), func(i int) bool { return ranges[i].Start > r.Start })
		return slices.Insert(ranges, i, r)
	}

	out := make([]buffer.Range, 0, len(ranges)+1)
	merged := r
	for _, rg := range ranges {
		if rg.Touches(merged) {
			merged = merged.Union(rg)
			continue
		}
		out = append(out, rg)
	}
	i := sort.Search(len(out), func(i int) bool { return out[i].Start > merged.Start })
	return slices.Insert(out, i, merged)
}

// subtractRange removes r from every range in the list.
func subtractRange(ranges []buffer.Range, r buffer.Range) []buffer.Range {
	out := make([]buffer.Range, 0, len(ranges)+1)
	for _, rg := range ranges {
		if rg.IsEmpty() {
			if rg.Start < r.Start || rg.Start >= r.End {
				out = append(out, rg)
			}
			continue
		}
		if !rg.Overlaps(r) {
			out = append(out, rg)
			continue
		}
		if rg.Start < r.Start {
			out = append(out, buffer.Range{Start: rg.Start, End: r.Start})
		}
		if rg.End > r.End {
			out = append(out, buffer.Range{Start: r.End, End: rg.End})
		}
	}
	return out
}
