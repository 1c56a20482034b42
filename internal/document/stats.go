package document

import (
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/dshills/wordpad/internal/engine/buffer"
	"github.com/dshills/wordpad/internal/engine/tags"
)

var misspelledSpec = tags.Spec{Font: tags.Font{Underline: true}, Foreground: "#ff0000"}

// Stats holds document counts.
type Stats struct {
	Words      int
	Characters int
	Lines      int
}

// Stats counts words (Unicode word boundaries, ignoring punctuation and
// spaces), user-perceived characters and lines.
func (d *Document) Stats() Stats {
	text := d.buf.Text()
	s := Stats{
		Characters: uniseg.GraphemeClusterCount(text),
		Lines:      d.buf.LineCount(),
	}
	state := -1
	var word string
	for len(text) > 0 {
		word, text, state = uniseg.FirstWordInString(text, state)
		if isWord(word) {
			s.Words++
		}
	}
	return s
}

// isWord reports whether a word segment contains a letter or digit.
func isWord(segment string) bool {
	for _, r := range segment {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// Misspelling is a token flagged by SpellCheck.
type Misspelling struct {
	Word  string
	Range buffer.Range
}

// SpellCheck flags every whitespace-separated token that is not made
// entirely of letters, and marks it with the misspelled tag. This is a
// character-class check, not a dictionary lookup.
func (d *Document) SpellCheck() []Misspelling {
	d.marks.RemoveAll(TagMisspelled)

	text := []rune(d.buf.Text())
	var found []Misspelling
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		token := text[start:end]
		if !allLetters(token) {
			r := buffer.Range{Start: start, End: end}
			found = append(found, Misspelling{Word: string(token), Range: r})
			d.marks.Apply(TagMisspelled, r, misspelledSpec)
		}
		start = -1
	}
	for i, r := range text {
		if unicode.IsSpace(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(text))
	return found
}

func allLetters(token []rune) bool {
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(token) > 0
}
