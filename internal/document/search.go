package document

import (
	"slices"
	"strings"

	"github.com/dshills/wordpad/internal/engine/buffer"
	"github.com/dshills/wordpad/internal/engine/tags"
)

var (
	foundSpec    = tags.Spec{Foreground: "#ff0000", Background: "#ffff00"}
	replacedSpec = tags.Spec{Foreground: "#008000", Background: "#ffff00"}
)

// Find highlights every case-insensitive occurrence of query and returns
// the matches. Previous find and replace highlights are cleared first.
// An empty query only clears.
func (d *Document) Find(query string) []buffer.Range {
	d.ClearFound()
	matches := findAll([]rune(d.buf.Text()), []rune(query))
	for _, m := range matches {
		d.marks.Apply(TagFound, m, foundSpec)
	}
	return matches
}

// ReplaceAll replaces every case-insensitive occurrence of query with
// replacement and highlights the replacements. Both strings must be
// non-empty; otherwise only the highlights are cleared. Returns the number
// of replacements.
func (d *Document) ReplaceAll(query, replacement string) (int, error) {
	d.ClearFound()
	if query == "" || replacement == "" {
		return 0, nil
	}

	matches := findAll([]rune(d.buf.Text()), []rune(query))
	err := d.history.Transaction("Replace all", func() error {
		// Back to front so earlier offsets stay valid.
		for _, m := range slices.Backward(matches) {
			end, err := d.Replace(m.Start, m.End, replacement)
			if err != nil {
				return err
			}
			d.marks.Apply(TagReplaced, buffer.Range{Start: m.Start, End: end}, replacedSpec)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

// ClearFound removes find and replace highlights.
func (d *Document) ClearFound() {
	d.marks.RemoveAll(TagFound)
	d.marks.RemoveAll(TagReplaced)
}

// findAll returns the non-overlapping case-insensitive matches of query in text.
func findAll(text, query []rune) []buffer.Range {
	if len(query) == 0 {
		return nil
	}
	q := string(query)
	var matches []buffer.Range
	for i := 0; i+len(query) <= len(text); i++ {
		if strings.EqualFold(string(text[i:i+len(query)]), q) {
			matches = append(matches, buffer.Range{Start: i, End: i + len(query)})
			i += len(query) - 1
		}
	}
	return matches
}
