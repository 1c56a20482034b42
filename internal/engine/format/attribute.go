package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/wordpad/internal/engine/tags"
)

// Kind is the category of a style property.
type Kind uint8

const (
	// KindBold is bold weight.
	KindBold Kind = iota

	// KindItalic is italic slant.
	KindItalic

	// KindUnderline is underlining.
	KindUnderline

	// KindFontFamily is the font family name.
	KindFontFamily

	// KindFontSize is the font size in points.
	KindFontSize

	// KindForeground is the text color.
	KindForeground

	// KindBackground is the highlight color behind the text.
	KindBackground

	// kindFont is the derived, fully resolved font descriptor.
	kindFont
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindBold:
		return "bold"
	case KindItalic:
		return "italic"
	case KindUnderline:
		return "underline"
	case KindFontFamily:
		return "font-family"
	case KindFontSize:
		return "font-size"
	case KindForeground:
		return "foreground"
	case KindBackground:
		return "background"
	case kindFont:
		return "font"
	default:
		return "unknown"
	}
}

// IsBoolean returns true for Bold, Italic and Underline.
func (k Kind) IsBoolean() bool {
	return k == KindBold || k == KindItalic || k == KindUnderline
}

// IsFontValue returns true for FontFamily and FontSize.
func (k Kind) IsFontValue() bool {
	return k == KindFontFamily || k == KindFontSize
}

// IsColor returns true for Foreground and Background.
func (k Kind) IsColor() bool {
	return k == KindForeground || k == KindBackground
}

// Attribute is a style property with its value.
type Attribute struct {
	Kind Kind

	// Value is the family name or color for value kinds.
	Value string

	// Size is the font size for KindFontSize.
	Size int
}

// Boolean attributes.
var (
	Bold      = Attribute{Kind: KindBold}
	Italic    = Attribute{Kind: KindItalic}
	Underline = Attribute{Kind: KindUnderline}
)

// FontFamily returns a font family attribute.
func FontFamily(name string) Attribute {
	return Attribute{Kind: KindFontFamily, Value: name}
}

// FontSize returns a font size attribute.
func FontSize(size int) Attribute {
	return Attribute{Kind: KindFontSize, Size: size}
}

// Foreground returns a text color attribute.
func Foreground(color string) Attribute {
	return Attribute{Kind: KindForeground, Value: color}
}

// Background returns a highlight color attribute.
func Background(color string) Attribute {
	return Attribute{Kind: KindBackground, Value: color}
}

// String returns a human-readable representation of the attribute.
func (a Attribute) String() string {
	switch {
	case a.Kind.IsBoolean():
		return a.Kind.String()
	case a.Kind == KindFontSize:
		return fmt.Sprintf("%s(%d)", a.Kind, a.Size)
	default:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Value)
	}
}

// tagName returns the tag name for a validated attribute.
func (a Attribute) tagName() string {
	switch a.Kind {
	case KindBold, KindItalic, KindUnderline:
		return a.Kind.String()
	case KindFontFamily:
		return "family:" + a.Value
	case KindFontSize:
		return "size:" + strconv.Itoa(a.Size)
	case KindForeground:
		return "fg:" + a.Value
	case KindBackground:
		return "bg:" + a.Value
	default:
		return ""
	}
}

// spec returns the rendering spec bound to the attribute's tag.
func (a Attribute) spec() tags.Spec {
	switch a.Kind {
	case KindBold:
		return tags.Spec{Font: tags.Font{Bold: true}}
	case KindItalic:
		return tags.Spec{Font: tags.Font{Italic: true}}
	case KindUnderline:
		return tags.Spec{Font: tags.Font{Underline: true}}
	case KindFontFamily:
		return tags.Spec{Font: tags.Font{Family: a.Value}}
	case KindFontSize:
		return tags.Spec{Font: tags.Font{Size: a.Size}}
	case KindForeground:
		return tags.Spec{Foreground: a.Value}
	case KindBackground:
		return tags.Spec{Background: a.Value}
	default:
		return tags.Spec{}
	}
}

// fontTagName returns the tag name of a resolved font descriptor.
func fontTagName(f tags.Font) string {
	var flags []string
	if f.Bold {
		flags = append(flags, "bold")
	}
	if f.Italic {
		flags = append(flags, "italic")
	}
	if f.Underline {
		flags = append(flags, "underline")
	}
	return fmt.Sprintf("font:%s:%d:%s", f.Family, f.Size, strings.Join(flags, "+"))
}

// kindOfTag returns the attribute kind a tag name belongs to.
func kindOfTag(name string) (Kind, bool) {
	switch name {
	case "bold":
		return KindBold, true
	case "italic":
		return KindItalic, true
	case "underline":
		return KindUnderline, true
	}
	prefix, _, ok := strings.Cut(name, ":")
	if !ok {
		return 0, false
	}
	switch prefix {
	case "family":
		return KindFontFamily, true
	case "size":
		return KindFontSize, true
	case "fg":
		return KindForeground, true
	case "bg":
		return KindBackground, true
	case "font":
		return kindFont, true
	default:
		return 0, false
	}
}
