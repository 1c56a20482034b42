package renderer

import (
	"fmt"
	"path/filepath"

	"github.com/dshills/wordpad/internal/document"
	"github.com/dshills/wordpad/internal/engine/buffer"
	"github.com/dshills/wordpad/internal/engine/format"
	"github.com/dshills/wordpad/internal/engine/tags"
	"github.com/dshills/wordpad/internal/renderer/backend"
	"github.com/dshills/wordpad/internal/renderer/core"
	"github.com/dshills/wordpad/internal/renderer/style"
)

// DefaultTabWidth is the number of columns between tab stops.
const DefaultTabWidth = 4

// View renders one document into a backend. The last row of the backend
// is the status line; the rest shows text.
type View struct {
	backend  backend.Backend
	resolver *style.Resolver
	theme    Theme
	tabWidth int

	// top is the first visible line.
	top int
}

// NewView creates a view drawing to b with the given theme.
func NewView(b backend.Backend, theme Theme) *View {
	v := &View{
		backend:  b,
		resolver: style.NewResolver(),
		tabWidth: DefaultTabWidth,
	}
	v.SetTheme(theme)
	return v
}

// SetTheme changes the colors used on the next render.
func (v *View) SetTheme(theme Theme) {
	v.theme = theme
	v.resolver.SetBaseStyle(theme.Text)
}

// Theme returns the current theme.
func (v *View) Theme() Theme {
	return v.theme
}

// TopLine returns the first visible line.
func (v *View) TopLine() int {
	return v.top
}

// TextHeight returns the number of rows available for text.
func (v *View) TextHeight() int {
	_, h := v.backend.Size()
	return max(h-1, 0)
}

// Render paints the document with the caret at offset caret and message
// in the status line, then shows the result.
func (v *View) Render(doc *document.Document, caret buffer.Offset, message string) {
	width, height := v.backend.Size()
	if width <= 0 || height <= 0 {
		return
	}
	buf := doc.Buffer()
	lines := buf.Lines()
	caretPoint := buf.OffsetToPoint(caret)
	v.scrollTo(caretPoint.Line, len(lines))

	v.backend.Fill(core.RectFromSize(0, 0, height, width), core.NewStyledCell(' ', v.resolver.BaseStyle()))

	text := []rune(buf.Text())
	sel := buf.Selection()
	caretX, caretY := -1, -1
	for row := 0; row < v.TextHeight() && v.top+row < len(lines); row++ {
		lineNo := v.top + row
		caretCol := -1
		if lineNo == caretPoint.Line {
			caretCol = caretPoint.Column
		}
		if x := v.paintLine(doc, text, lines[lineNo], sel, row, width, caretCol); x >= 0 {
			caretX, caretY = x, row
		}
	}

	v.paintStatus(doc, caret, caretPoint, message, width, height-1)

	if caretX >= 0 && caretX < width {
		v.backend.ShowCursor(caretX, caretY)
	} else {
		v.backend.HideCursor()
	}
	v.backend.Show()
}

// scrollTo adjusts top so line is visible.
func (v *View) scrollTo(line, lineCount int) {
	rows := v.TextHeight()
	if rows == 0 {
		return
	}
	if line < v.top {
		v.top = line
	}
	if line >= v.top+rows {
		v.top = line - rows + 1
	}
	v.top = max(0, min(v.top, lineCount-1))
}

// paintLine draws one line. When caretCol is not negative it returns the
// screen column of that rune column, otherwise -1.
func (v *View) paintLine(doc *document.Document, text []rune, line, sel buffer.Range, row, width, caretCol int) int {
	spans := v.lineSpans(doc, line, sel)

	col := 0
	caretX := -1
	for i := 0; i < line.Len(); i++ {
		if i == caretCol {
			caretX = col
		}
		r := text[line.Start+i]
		st := v.resolver.Resolve(i, spans)

		if r == '\t' {
			next := (col/v.tabWidth + 1) * v.tabWidth
			for ; col < next; col++ {
				v.backend.SetCell(col, row, core.NewStyledCell(' ', st))
			}
			continue
		}
		cell := core.NewStyledCell(r, st)
		if cell.Width == 0 {
			// Control characters show as a placeholder.
			cell = core.Cell{Rune: '?', Width: 1, Style: st}
		}
		if col+cell.Width > width {
			break
		}
		v.backend.SetCell(col, row, cell)
		col += cell.Width
	}
	if caretCol >= 0 && caretX < 0 {
		caretX = col
	}
	return caretX
}

// lineSpans builds the style spans for a line in rune columns relative to
// the line start.
func (v *View) lineSpans(doc *document.Document, line, sel buffer.Range) []style.Span {
	b := style.NewSpanBuilder()
	rel := func(r buffer.Range) (int, int) {
		return r.Start - line.Start, r.End - line.Start
	}

	for _, run := range doc.Format().Runs(line) {
		if st, ok := formatStyle(run.Style); ok {
			start, end := rel(run.Range)
			b.AddFormat(start, end, st)
		}
	}

	marks := doc.Marks()
	for _, seg := range marks.Segments(line) {
		for _, name := range seg.Names {
			spec, _ := marks.Spec(name)
			start, end := rel(seg.Range)
			b.AddMark(start, end, specStyle(spec))
		}
	}

	if r := sel.Intersect(line); !r.IsEmpty() {
		start, end := rel(r)
		b.AddSelection(start, end, core.DefaultStyle().WithBackground(v.theme.Selection))
	}
	return b.Build()
}

// formatStyle converts an effective style into a terminal style.
// Font family and size have no terminal rendering and are ignored.
func formatStyle(es format.EffectiveStyle) (core.Style, bool) {
	var attrs core.Attribute
	if es.Bold {
		attrs = attrs.With(core.AttrBold)
	}
	if es.Italic {
		attrs = attrs.With(core.AttrItalic)
	}
	if es.Underline {
		attrs = attrs.With(core.AttrUnderline)
	}
	st := core.DefaultStyle().WithAttributes(attrs)
	if c, err := core.ColorFromHex(es.Foreground); es.Foreground != "" && err == nil {
		st = st.WithForeground(c)
	}
	if c, err := core.ColorFromHex(es.Background); es.Background != "" && err == nil {
		st = st.WithBackground(c)
	}
	return st, !st.Equals(core.DefaultStyle())
}

// specStyle converts a highlight tag spec into a terminal style.
func specStyle(spec tags.Spec) core.Style {
	st, _ := formatStyle(format.EffectiveStyle{
		Bold:       spec.Font.Bold,
		Italic:     spec.Font.Italic,
		Underline:  spec.Font.Underline,
		Foreground: spec.Foreground,
		Background: spec.Background,
	})
	return st
}

// paintStatus draws the status line on row y.
func (v *View) paintStatus(doc *document.Document, caret buffer.Offset, p buffer.Point, message string, width, y int) {
	v.backend.Fill(core.RectFromSize(y, 0, 1, width), core.NewStyledCell(' ', v.theme.Status))

	name := "[untitled]"
	if doc.Path() != "" {
		name = filepath.Base(doc.Path())
	}
	if doc.Modified() {
		name += " *"
	}

	at := caret
	if at > 0 {
		at--
	}
	es := doc.Format().QueryEffectiveStyle(at)
	line := fmt.Sprintf(" %s | %s %d | Ln %d, Col %d", name, es.Family, es.Size, p.Line+1, p.Column+1)
	if message != "" {
		line += " | " + message
	}

	col := 0
	for _, r := range line {
		cell := core.NewStyledCell(r, v.theme.Status)
		if cell.Width == 0 {
			continue
		}
		if col+cell.Width > width {
			break
		}
		v.backend.SetCell(col, y, cell)
		col += cell.Width
	}
}
