package app

import (
	"github.com/dshills/wordpad/internal/renderer/backend"
)

// prompt is a one-line input shown in the status line. While a prompt is
// open it receives every key.
type prompt struct {
	label    string
	input    []rune
	onSubmit func(value string) error
}

func newPrompt(label, initial string, onSubmit func(string) error) *prompt {
	return &prompt{label: label, input: []rune(initial), onSubmit: onSubmit}
}

// String returns the prompt as displayed.
func (p *prompt) String() string {
	return p.label + ": " + string(p.input)
}

// promptResult is what a key did to the prompt.
type promptResult int

const (
	promptEditing promptResult = iota
	promptSubmitted
	promptCancelled
)

// handleKey edits the input and reports whether the prompt is finished.
func (p *prompt) handleKey(ev backend.Event) promptResult {
	switch ev.Key {
	case backend.KeyEnter:
		return promptSubmitted
	case backend.KeyEscape, backend.KeyCtrlG:
		return promptCancelled
	case backend.KeyBackspace:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
	case backend.KeyRune:
		p.input = append(p.input, ev.Rune)
	}
	return promptEditing
}
