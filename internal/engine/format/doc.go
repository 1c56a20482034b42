// Package format implements the style tag engine: character formatting
// represented as named tags over ranges of a text buffer.
//
// # Attributes
//
// There are seven attribute kinds. Bold, Italic and Underline are boolean:
// a range either carries the tag or it doesn't. FontFamily, FontSize,
// Foreground and Background carry a value, and each range has at most one
// value per kind. Applying a value removes every other value of the same
// kind from the target range first, splitting partially covered tags so
// the remainder keeps its old value. Tags of different kinds never
// interact.
//
// # Tag names
//
//	bold, italic, underline
//	family:<Name>        size:<n>
//	fg:#rrggbb           bg:#rrggbb
//	font:<Name>:<n>:<flags>
//
// The font tags are derived. After every toggle or font change the engine
// recomputes, per run, the complete font descriptor (family, size, weight,
// slant, underline) and records it as a font tag, because renderers draw
// those properties jointly.
//
// # Edits
//
// The engine implements buffer.Listener. Register it on the buffer so
// every insert and delete moves the tags with the text:
//
//	buf := buffer.NewBufferFromString("Hello, World")
//	eng, _ := format.New(buf, format.DefaultDefaults())
//	buf.AddListener(eng)
//	eng.ToggleBoolean(format.KindBold, buffer.Range{Start: 0, End: 5})
//
// Every public operation either completes or leaves the tags untouched.
package format
