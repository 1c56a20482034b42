package format

import (
	"fmt"

	"github.com/dshills/wordpad/internal/engine/buffer"
	"github.com/dshills/wordpad/internal/engine/tags"
)

// TextSource is the part of the text buffer the engine consults to
// validate ranges.
type TextSource interface {
	Len() int
	CheckRange(r buffer.Range) error
}

// Engine applies and queries formatting tags over a text buffer.
//
// Engine is not safe for concurrent use.
type Engine struct {
	text     TextSource
	table    *tags.Table
	defaults Defaults

	catalog          *FontCatalog
	minSize, maxSize int
	onDefaults       func(Defaults)
}

// New creates an engine over text with the given default style.
// The default family must be in the font catalog and the size in range.
func New(text TextSource, defaults Defaults, opts ...Option) (*Engine, error) {
	e := &Engine{
		text:    text,
		table:   tags.NewTable(),
		catalog: DefaultFontCatalog(),
		minSize: MinFontSize,
		maxSize: MaxFontSize,
	}
	for _, opt := range opts {
		opt(e)
	}

	family, err := e.normalize(FontFamily(defaults.Family))
	if err != nil {
		return nil, fmt.Errorf("default font: %w", err)
	}
	size, err := e.normalize(FontSize(defaults.Size))
	if err != nil {
		return nil, fmt.Errorf("default font: %w", err)
	}
	e.defaults = Defaults{Family: family.Value, Size: size.Size}
	return e, nil
}

// Defaults returns the current default style.
func (e *Engine) Defaults() Defaults {
	return e.defaults
}

// Catalog returns the font catalog used for validation.
func (e *Engine) Catalog() *FontCatalog {
	return e.catalog
}

// Tags returns the live tag table. Callers must treat it as read-only.
func (e *Engine) Tags() *tags.Table {
	return e.table
}

// Apply dispatches attr to ToggleBoolean, SetValueAttribute or
// SetColorAttribute according to its kind.
func (e *Engine) Apply(attr Attribute, sel buffer.Range) error {
	switch {
	case attr.Kind.IsBoolean():
		return e.ToggleBoolean(attr.Kind, sel)
	case attr.Kind.IsFontValue():
		return e.SetValueAttribute(attr, sel)
	case attr.Kind.IsColor():
		return e.SetColorAttribute(attr, sel)
	default:
		return fmt.Errorf("%w: unknown attribute %s", ErrInvalidValue, attr)
	}
}

// ToggleBoolean toggles Bold, Italic or Underline over sel.
//
// The state at sel.Start decides for the whole selection: if the first
// character carries the attribute it is removed from all of sel, otherwise
// it is added to all of sel. A selection with mixed formatting therefore
// ends up uniform. The resolved font is recomputed over sel afterwards.
func (e *Engine) ToggleBoolean(kind Kind, sel buffer.Range) error {
	if !kind.IsBoolean() {
		return fmt.Errorf("%w: %s is not a boolean attribute", ErrInvalidValue, kind)
	}
	if sel.IsEmpty() {
		return fmt.Errorf("%w: cannot toggle %s", ErrEmptySelection, kind)
	}
	if err := e.text.CheckRange(sel); err != nil {
		return err
	}

	attr := Attribute{Kind: kind}
	name := attr.tagName()

	next := e.table.Clone()
	if next.HasAt(name, sel.Start) {
		next.Remove(name, sel)
	} else {
		next.Apply(name, sel, attr.spec())
	}
	e.resolveFonts(next, sel)
	e.table = next
	return nil
}

// SetValueAttribute sets FontFamily or FontSize.
//
// With a non-empty sel, every tag of the same kind is removed from sel
// (parts outside sel keep their value) and the new value is applied over
// all of sel. With an empty sel only the default style changes; the buffer
// is untouched apart from re-resolving fonts against the new default.
func (e *Engine) SetValueAttribute(attr Attribute, sel buffer.Range) error {
	if !attr.Kind.IsFontValue() {
		return fmt.Errorf("%w: %s is not a font value", ErrInvalidValue, attr.Kind)
	}
	attr, err := e.normalize(attr)
	if err != nil {
		return err
	}
	if err := e.text.CheckRange(sel); err != nil {
		return err
	}

	if sel.IsEmpty() {
		d := e.defaults
		if attr.Kind == KindFontFamily {
			d.Family = attr.Value
		} else {
			d.Size = attr.Size
		}
		e.setDefaults(d)
		return nil
	}

	next := e.table.Clone()
	supersede(next, attr.Kind, sel)
	next.Apply(attr.tagName(), sel, attr.spec())
	e.resolveFonts(next, sel)
	e.table = next
	return nil
}

// SetColorAttribute sets Foreground or Background.
//
// Same-kind colors are superseded over sel exactly as in
// SetValueAttribute. An empty sel records a zero-width tag at the
// insertion point, which colors nothing.
func (e *Engine) SetColorAttribute(attr Attribute, sel buffer.Range) error {
	if !attr.Kind.IsColor() {
		return fmt.Errorf("%w: %s is not a color", ErrInvalidValue, attr.Kind)
	}
	hex, err := ParseColor(attr.Value)
	if err != nil {
		return err
	}
	attr.Value = hex
	if err := e.text.CheckRange(sel); err != nil {
		return err
	}

	next := e.table.Clone()
	supersede(next, attr.Kind, sel)
	next.Apply(attr.tagName(), sel, attr.spec())
	e.table = next
	return nil
}

// QueryEffectiveStyle returns the style in effect at offset.
// Font values not set by a tag come from the defaults.
func (e *Engine) QueryEffectiveStyle(offset buffer.Offset) EffectiveStyle {
	return resolve(e.table, e.table.NamesAt(offset), e.defaults)
}

// Runs splits r into maximal runs of constant style.
func (e *Engine) Runs(r buffer.Range) []Run {
	segments := e.table.Segments(r)
	runs := make([]Run, 0, len(segments))
	for _, seg := range segments {
		style := resolve(e.table, seg.Names, e.defaults)
		run := Run{Range: seg.Range, Style: style, Font: style.Font()}
		for _, name := range seg.Names {
			if kind, _ := kindOfTag(name); kind == kindFont {
				spec, _ := e.table.Spec(name)
				run.Font = spec.Font
			}
		}
		runs = append(runs, run)
	}
	return runs
}

// OnRangeInserted shifts tags for length characters inserted at start.
// A tag ending exactly at start does not grow to cover the new text.
func (e *Engine) OnRangeInserted(start buffer.Offset, length int) {
	e.table.ShiftInsert(start, length)
}

// OnRangeDeleted shifts and clips tags for the deletion of [start, end).
func (e *Engine) OnRangeDeleted(start, end buffer.Offset) {
	e.table.ShiftDelete(start, end)
}

// normalize validates a font value and returns it in canonical form.
func (e *Engine) normalize(attr Attribute) (Attribute, error) {
	switch attr.Kind {
	case KindFontFamily:
		family, ok := e.catalog.Lookup(attr.Value)
		if !ok {
			return attr, fmt.Errorf("%w: unknown font family %q", ErrInvalidValue, attr.Value)
		}
		attr.Value = family
	case KindFontSize:
		if attr.Size < e.minSize || attr.Size > e.maxSize {
			return attr, fmt.Errorf("%w: font size %d outside [%d, %d]", ErrInvalidValue, attr.Size, e.minSize, e.maxSize)
		}
	}
	return attr, nil
}

// setDefaults commits new defaults, re-resolves every font tag against
// them and notifies the observer.
func (e *Engine) setDefaults(d Defaults) {
	if d == e.defaults {
		return
	}
	e.defaults = d
	next := e.table.Clone()
	e.resolveFonts(next, buffer.Range{Start: 0, End: e.text.Len()})
	e.table = next
	if e.onDefaults != nil {
		e.onDefaults(d)
	}
}

// resolveFonts replaces the font tags over r with freshly resolved ones.
// Runs with no font-related tag get no font tag and follow the defaults.
func (e *Engine) resolveFonts(t *tags.Table, r buffer.Range) {
	if r.IsEmpty() {
		return
	}
	supersede(t, kindFont, r)
	for _, seg := range t.Segments(r) {
		if !setsFont(seg.Names) {
			continue
		}
		font := resolve(t, seg.Names, e.defaults).Font()
		t.Apply(fontTagName(font), seg.Range, tags.Spec{Font: font})
	}
}

// supersede removes every tag of kind from r.
func supersede(t *tags.Table, kind Kind, r buffer.Range) {
	if r.IsEmpty() {
		return
	}
	for _, name := range t.Names() {
		if k, ok := kindOfTag(name); ok && k == kind {
			t.Remove(name, r)
		}
	}
}
