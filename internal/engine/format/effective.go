package format

import (
	"github.com/dshills/wordpad/internal/engine/buffer"
	"github.com/dshills/wordpad/internal/engine/tags"
)

// Defaults is the style used where no tag sets a font value: text typed
// after a font change with nothing selected, and any untagged text.
type Defaults struct {
	Family string
	Size   int
}

// DefaultDefaults returns Arial 12, the editor's startup font.
func DefaultDefaults() Defaults {
	return Defaults{Family: "Arial", Size: 12}
}

// EffectiveStyle is the resolved set of attributes at one offset.
type EffectiveStyle struct {
	Bold      bool
	Italic    bool
	Underline bool

	Family string
	Size   int

	// Foreground and Background are "#rrggbb", or empty when no tag sets them.
	Foreground string
	Background string
}

// Has returns true if the attribute kind is set by a tag rather than
// inherited from the defaults. Font family and size always report true
// because they always resolve to a value.
func (s EffectiveStyle) Has(kind Kind) bool {
	switch kind {
	case KindBold:
		return s.Bold
	case KindItalic:
		return s.Italic
	case KindUnderline:
		return s.Underline
	case KindFontFamily, KindFontSize:
		return true
	case KindForeground:
		return s.Foreground != ""
	case KindBackground:
		return s.Background != ""
	default:
		return false
	}
}

// Font returns the font descriptor implied by the style.
func (s EffectiveStyle) Font() tags.Font {
	return tags.Font{
		Family:    s.Family,
		Size:      s.Size,
		Bold:      s.Bold,
		Italic:    s.Italic,
		Underline: s.Underline,
	}
}

// Run is a maximal range of text with one effective style.
type Run struct {
	Range buffer.Range
	Style EffectiveStyle

	// Font is the resolved font recorded for the run, or the style's font
	// when the run has no font tag.
	Font tags.Font
}

// resolve merges the specs of the named tags over the defaults.
// Font tags are skipped; they are derived from the others.
func resolve(t *tags.Table, names []string, d Defaults) EffectiveStyle {
	style := EffectiveStyle{Family: d.Family, Size: d.Size}
	for _, name := range names {
		kind, ok := kindOfTag(name)
		if !ok {
			continue
		}
		spec, _ := t.Spec(name)
		switch kind {
		case KindBold:
			style.Bold = true
		case KindItalic:
			style.Italic = true
		case KindUnderline:
			style.Underline = true
		case KindFontFamily:
			style.Family = spec.Font.Family
		case KindFontSize:
			style.Size = spec.Font.Size
		case KindForeground:
			style.Foreground = spec.Foreground
		case KindBackground:
			style.Background = spec.Background
		}
	}
	return style
}

// setsFont reports whether any of the named tags contributes to the font.
func setsFont(names []string) bool {
	for _, name := range names {
		kind, ok := kindOfTag(name)
		if ok && (kind.IsBoolean() || kind.IsFontValue()) {
			return true
		}
	}
	return false
}
