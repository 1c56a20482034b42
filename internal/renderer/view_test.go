package renderer

import (
	"strings"
	"testing"

	"github.com/dshills/wordpad/internal/config"
	"github.com/dshills/wordpad/internal/document"
	"github.com/dshills/wordpad/internal/engine/buffer"
	"github.com/dshills/wordpad/internal/engine/format"
	"github.com/dshills/wordpad/internal/renderer/backend"
	"github.com/dshills/wordpad/internal/renderer/core"
)

// cursorBackend records where the view places the cursor.
type cursorBackend struct {
	*backend.NullBackend
	x, y    int
	visible bool
}

func (b *cursorBackend) ShowCursor(x, y int) {
	b.x, b.y, b.visible = x, y, true
}

func (b *cursorBackend) HideCursor() {
	b.visible = false
}

// rowText returns the text of row y with trailing spaces removed.
func rowText(b backend.Backend, y int) string {
	width, _ := b.Size()
	var sb strings.Builder
	for x := range width {
		sb.WriteRune(b.GetCell(x, y).Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}

func newTestView(t *testing.T, width, height int, text string) (*View, *cursorBackend, *document.Document) {
	t.Helper()
	b := &cursorBackend{NullBackend: backend.NewNullBackend(width, height)}
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	doc, err := document.New(format.DefaultDefaults())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := doc.Insert(0, text); err != nil {
		t.Fatal(err)
	}
	return NewView(b, ThemeFor(config.ThemeLight)), b, doc
}

func TestThemeFor(t *testing.T) {
	tests := []struct {
		name   config.Theme
		want   config.Theme
		fg, bg string
	}{
		{config.ThemeLight, config.ThemeLight, "#000000", "#ffffff"},
		{config.ThemeDark, config.ThemeDark, "#ffffff", "#1e1e1e"},
		{config.Theme("sepia"), config.ThemeLight, "#000000", "#ffffff"},
	}
	for _, tt := range tests {
		th := ThemeFor(tt.name)
		if th.Name != tt.want || th.Text.Foreground.ToHex() != tt.fg || th.Text.Background.ToHex() != tt.bg {
			t.Errorf("ThemeFor(%q) = %s %v on %v, want %s %s on %s",
				tt.name, th.Name, th.Text.Foreground, th.Text.Background, tt.want, tt.fg, tt.bg)
		}
		if th.Selection.Equals(th.Text.Background) {
			t.Errorf("ThemeFor(%q) selection indistinguishable from background", tt.name)
		}
	}
}

func TestRenderText(t *testing.T) {
	v, b, doc := newTestView(t, 20, 4, "hello\n\tworld")
	v.Render(doc, 0, "")

	if got := rowText(b, 0); got != "hello" {
		t.Errorf("rowText(b, 0) = %q, want hello", got)
	}
	if got := rowText(b, 1); got != "    world" {
		t.Errorf("rowText(b, 1) = %q, want tab expanded", got)
	}
	if b.x != 0 || b.y != 0 || !b.visible {
		t.Errorf("cursor = (%d, %d, %v), want (0, 0, true)", b.x, b.y, b.visible)
	}
	if cell := b.GetCell(0, 0); !cell.Style.Equals(ThemeFor(config.ThemeLight).Text) {
		t.Errorf("plain text style = %+v", cell.Style)
	}
}

func TestRenderFormatting(t *testing.T) {
	v, b, doc := newTestView(t, 20, 3, "bold red")
	if err := doc.Format().ToggleBoolean(format.KindBold, buffer.Range{Start: 0, End: 4}); err != nil {
		t.Fatal(err)
	}
	if err := doc.Format().SetColorAttribute(format.Foreground("#ff0000"), buffer.Range{Start: 5, End: 8}); err != nil {
		t.Fatal(err)
	}
	v.Render(doc, 0, "")

	if !b.GetCell(0, 0).Style.Attributes.Has(core.AttrBold) {
		t.Error("bold text not rendered bold")
	}
	if b.GetCell(4, 0).Style.Attributes.Has(core.AttrBold) {
		t.Error("space after bold rendered bold")
	}
	if got := b.GetCell(5, 0).Style.Foreground; !got.Equals(core.ColorRed) {
		t.Errorf("red text foreground = %v", got)
	}
}

func TestRenderHighlightsAndSelection(t *testing.T) {
	v, b, doc := newTestView(t, 20, 3, "find me here")
	doc.Find("me")
	if err := doc.Buffer().SetSelection(buffer.Range{Start: 8, End: 12}); err != nil {
		t.Fatal(err)
	}
	v.Render(doc, 12, "")

	if got := b.GetCell(5, 0).Style.Background; !got.Equals(core.ColorYellow) {
		t.Errorf("found background = %v, want yellow", got)
	}
	if got := b.GetCell(9, 0).Style.Background; !got.Equals(v.Theme().Selection) {
		t.Errorf("selection background = %v, want %v", got, v.Theme().Selection)
	}
	if got := b.GetCell(0, 0).Style.Background; !got.Equals(v.Theme().Text.Background) {
		t.Errorf("unselected background = %v", got)
	}
	if b.x != 12 {
		t.Errorf("cursor x = %d, want 12 at end of line", b.x)
	}
}

func TestRenderStatusLine(t *testing.T) {
	v, b, doc := newTestView(t, 60, 3, "ab\ncd")
	v.Render(doc, 4, "saved")

	status := rowText(b, 2)
	for _, want := range []string{"[untitled] *", "Arial 12", "Ln 2, Col 2", "saved"} {
		if !strings.Contains(status, want) {
			t.Errorf("status %q missing %q", status, want)
		}
	}
	if cell := b.GetCell(0, 2); !cell.Style.Equals(v.Theme().Status) {
		t.Errorf("status style = %+v", cell.Style)
	}
}

func TestRenderScrollsToCaret(t *testing.T) {
	text := strings.Repeat("line\n", 9) + "last"
	v, b, doc := newTestView(t, 10, 4, text)

	v.Render(doc, doc.Buffer().Len(), "")
	if v.TopLine() != 7 {
		t.Errorf("TopLine() = %d, want 7", v.TopLine())
	}
	if got := rowText(b, 2); got != "last" {
		t.Errorf("rowText(b, 2) = %q, want last", got)
	}

	v.Render(doc, 0, "")
	if v.TopLine() != 0 {
		t.Errorf("TopLine() after moving to start = %d, want 0", v.TopLine())
	}
}

func TestRenderClipsWideLines(t *testing.T) {
	v, b, doc := newTestView(t, 5, 2, "abcdefgh")
	v.Render(doc, 8, "")

	if got := rowText(b, 0); got != "abcde" {
		t.Errorf("rowText(b, 0) = %q, want clipped", got)
	}
	if b.visible {
		t.Error("cursor past the right edge should be hidden")
	}
}

func TestSetTheme(t *testing.T) {
	v, b, doc := newTestView(t, 10, 2, "x")
	v.SetTheme(ThemeFor(config.ThemeDark))
	v.Render(doc, 0, "")

	if got := b.GetCell(0, 0).Style.Background.ToHex(); got != "#1e1e1e" {
		t.Errorf("dark background = %s", got)
	}
}
