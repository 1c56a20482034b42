// Package renderer draws a document on a terminal backend.
//
// A View paints the visible lines of a document with their character
// formatting, find and spell-check highlights and the selection, then a
// status line. Styles are combined by the style package's layered
// resolver; cells go to a backend.Backend.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	term.Init()
//	v := renderer.NewView(term, renderer.ThemeFor(config.ThemeLight))
//	v.Render(doc, caret, "")
package renderer
