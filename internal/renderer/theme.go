package renderer

import (
	"github.com/dshills/wordpad/internal/config"
	"github.com/dshills/wordpad/internal/renderer/core"
)

// Theme holds the colors a view paints with.
type Theme struct {
	Name config.Theme

	// Text is the style of unformatted text and empty space.
	Text core.Style

	// Selection is the background of selected text.
	Selection core.Color

	// Status is the style of the status line.
	Status core.Style
}

var selectionTint = core.MustColor("#3399ff")

// ThemeFor returns the theme for a settings theme name. Unknown names get
// the light theme.
func ThemeFor(name config.Theme) Theme {
	fg, bg := core.MustColor("#000000"), core.MustColor("#ffffff")
	if name == config.ThemeDark {
		fg, bg = core.MustColor("#ffffff"), core.MustColor("#1e1e1e")
	} else {
		name = config.ThemeLight
	}
	return Theme{
		Name:      name,
		Text:      core.Style{Foreground: fg, Background: bg},
		Selection: bg.Blend(selectionTint, 0.5),
		Status:    core.Style{Foreground: bg, Background: fg.Blend(bg, 0.25)},
	}
}
