// Package style combines styles from the layers that paint a line of text:
// the theme, character formatting, find and spell-check highlights, and
// the selection.
package style

import (
	"github.com/dshills/wordpad/internal/renderer/core"
)

// Layer represents a style layer with priority.
type Layer uint8

const (
	// LayerBase is the theme's text style.
	LayerBase Layer = iota

	// LayerFormat is character formatting: bold, italic, colors.
	LayerFormat

	// LayerMark is find, replace and spell-check highlighting.
	LayerMark

	// LayerSelection is the selection highlight (highest priority).
	LayerSelection

	// LayerCount is the number of layers.
	LayerCount
)

// String returns the string representation of the layer.
func (l Layer) String() string {
	switch l {
	case LayerBase:
		return "base"
	case LayerFormat:
		return "format"
	case LayerMark:
		return "mark"
	case LayerSelection:
		return "selection"
	default:
		return "unknown"
	}
}

// Span represents a styled column range at a specific layer.
type Span struct {
	// StartCol is the starting column (inclusive).
	StartCol int

	// EndCol is the ending column (exclusive).
	EndCol int

	// Style is the style to apply.
	Style core.Style

	// Layer is the priority layer.
	Layer Layer

	// Merge indicates how to merge with lower layers.
	Merge MergeMode
}

// Contains returns true if the column is within the span.
func (s Span) Contains(col int) bool {
	return col >= s.StartCol && col < s.EndCol
}

// MergeMode determines how styles are merged.
type MergeMode uint8

const (
	// MergeOverlay overlays non-default colors and adds attributes.
	MergeOverlay MergeMode = iota

	// MergeReplace replaces all lower layer styles.
	MergeReplace

	// MergeAttributes only adds attributes, preserves colors.
	MergeAttributes

	// MergeBackground only changes background color.
	MergeBackground
)

// Resolver resolves styles by combining multiple layers.
type Resolver struct {
	// baseStyle is the default style when no layers apply.
	baseStyle core.Style
}

// NewResolver creates a new style resolver.
func NewResolver() *Resolver {
	return &Resolver{baseStyle: core.DefaultStyle()}
}

// SetBaseStyle sets the base style.
func (r *Resolver) SetBaseStyle(style core.Style) {
	r.baseStyle = style
}

// BaseStyle returns the base style.
func (r *Resolver) BaseStyle() core.Style {
	return r.baseStyle
}

// Resolve combines styles from the spans covering col. Lower layers are
// applied first; within a layer, spans apply in the order given.
func (r *Resolver) Resolve(col int, spans []Span) core.Style {
	result := r.baseStyle

	for layer := LayerBase; layer < LayerCount; layer++ {
		for _, span := range spans {
			if span.Layer != layer || !span.Contains(col) {
				continue
			}
			result = mergeStyle(result, span.Style, span.Merge)
		}
	}

	return result
}

// mergeStyle merges an overlay style onto a base style.
func mergeStyle(base, overlay core.Style, mode MergeMode) core.Style {
	switch mode {
	case MergeReplace:
		return overlay

	case MergeAttributes:
		result := base
		result.Attributes |= overlay.Attributes
		return result

	case MergeBackground:
		result := base
		if !overlay.Background.IsDefault() {
			result.Background = overlay.Background
		}
		return result

	default:
		return base.Merge(overlay)
	}
}

// SpanBuilder helps build spans for a line.
type SpanBuilder struct {
	spans []Span
}

// NewSpanBuilder creates a new span builder.
func NewSpanBuilder() *SpanBuilder {
	return &SpanBuilder{
		spans: make([]Span, 0, 8),
	}
}

// Add adds an overlay span. Empty spans are ignored.
func (b *SpanBuilder) Add(startCol, endCol int, style core.Style, layer Layer) *SpanBuilder {
	return b.AddWithMerge(startCol, endCol, style, layer, MergeOverlay)
}

// AddWithMerge adds a span with a specific merge mode.
func (b *SpanBuilder) AddWithMerge(startCol, endCol int, style core.Style, layer Layer, merge MergeMode) *SpanBuilder {
	if endCol <= startCol {
		return b
	}
	b.spans = append(b.spans, Span{
		StartCol: startCol,
		EndCol:   endCol,
		Style:    style,
		Layer:    layer,
		Merge:    merge,
	})
	return b
}

// AddFormat adds a character formatting span.
func (b *SpanBuilder) AddFormat(startCol, endCol int, style core.Style) *SpanBuilder {
	return b.Add(startCol, endCol, style, LayerFormat)
}

// AddMark adds a find or spell-check highlight span.
func (b *SpanBuilder) AddMark(startCol, endCol int, style core.Style) *SpanBuilder {
	return b.Add(startCol, endCol, style, LayerMark)
}

// AddSelection adds a selection span. Only the background changes so
// formatting stays visible under the selection.
func (b *SpanBuilder) AddSelection(startCol, endCol int, style core.Style) *SpanBuilder {
	return b.AddWithMerge(startCol, endCol, style, LayerSelection, MergeBackground)
}

// Build returns the built spans.
func (b *SpanBuilder) Build() []Span {
	return b.spans
}
