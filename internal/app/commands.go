package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/wordpad/internal/config"
	"github.com/dshills/wordpad/internal/document"
	"github.com/dshills/wordpad/internal/engine/buffer"
	"github.com/dshills/wordpad/internal/engine/format"
	"github.com/dshills/wordpad/internal/engine/history"
	"github.com/dshills/wordpad/internal/renderer"
	"github.com/dshills/wordpad/internal/renderer/backend"
)

// handleKey routes a key to the open prompt, a bound action or the
// editing keys, in that order.
func (app *Application) handleKey(ev backend.Event) error {
	if app.prompt != nil {
		return app.handlePromptKey(ev)
	}

	action, ok := app.keymap.Lookup(ev)
	if !ok || action != app.armed {
		app.armed = ""
	}
	if ok {
		app.message = ""
		return app.runAction(action)
	}
	return app.handleEditKey(ev)
}

func (app *Application) handlePromptKey(ev backend.Event) error {
	p := app.prompt
	switch p.handleKey(ev) {
	case promptSubmitted:
		app.prompt = nil
		app.message = ""
		return p.onSubmit(string(p.input))
	case promptCancelled:
		app.prompt = nil
		app.message = "cancelled"
	}
	return nil
}

// openPrompt starts reading a line of input in the status line.
func (app *Application) openPrompt(label, initial string, onSubmit func(string) error) {
	app.prompt = newPrompt(label, initial, onSubmit)
}

// runAction executes a bound action.
func (app *Application) runAction(action Action) error {
	app.logger.Debug("action %s", action)
	switch action {
	case ActionBold:
		return app.toggle(format.KindBold)
	case ActionItalic:
		return app.toggle(format.KindItalic)
	case ActionUnderline:
		return app.toggle(format.KindUnderline)
	case ActionFontFamily:
		app.promptFontFamily()
	case ActionFontSize:
		app.promptFontSize()
	case ActionForeground:
		app.promptColor("Text color", format.Foreground)
	case ActionBackground:
		app.promptColor("Highlight color", format.Background)
	case ActionFind:
		app.promptFind()
	case ActionReplace:
		app.promptReplace()
	case ActionCut:
		return app.cut()
	case ActionCopy:
		app.copySelection()
	case ActionPaste:
		return app.paste()
	case ActionSelectAll:
		app.anchor = 0
		app.setCaret(app.doc.Buffer().Len(), true)
	case ActionUndo:
		return app.undo("undo", app.doc.History().PeekUndo, app.doc.Undo, history.ErrNothingToUndo)
	case ActionRedo:
		return app.undo("redo", app.doc.History().PeekRedo, app.doc.Redo, history.ErrNothingToRedo)
	case ActionInsertTable:
		app.promptInsertTable()
	case ActionSpellCheck:
		n := len(app.doc.SpellCheck())
		app.statusf("%d possible misspellings", n)
	case ActionStats:
		s := app.doc.Stats()
		app.statusf("%d words, %d characters, %d lines", s.Words, s.Characters, s.Lines)
	case ActionClearHighlights:
		app.doc.ClearFound()
		app.doc.Marks().RemoveAll(document.TagMisspelled)
	case ActionToggleTheme:
		return app.toggleTheme()
	case ActionNew:
		return app.newFile()
	case ActionOpen:
		app.promptOpen()
	case ActionSave:
		return app.save()
	case ActionSaveAs:
		app.promptSaveAs()
	case ActionQuit:
		return app.quit()
	default:
		return fmt.Errorf("%w: unknown action %q", ErrBadInput, action)
	}
	return nil
}

// handleEditKey inserts text and moves the caret. Shift extends the
// selection.
func (app *Application) handleEditKey(ev backend.Event) error {
	buf := app.doc.Buffer()
	extend := ev.Mod.Has(backend.ModShift)

	switch ev.Key {
	case backend.KeyRune:
		return app.insertText(string(ev.Rune))
	case backend.KeyEnter:
		return app.insertText("\n")
	case backend.KeyTab:
		return app.insertText("\t")
	case backend.KeyBackspace:
		return app.deleteBackward()
	case backend.KeyDelete:
		return app.deleteForward()
	case backend.KeyLeft:
		app.setCaret(app.caret-1, extend)
	case backend.KeyRight:
		app.setCaret(app.caret+1, extend)
	case backend.KeyUp:
		app.moveLines(-1, extend)
	case backend.KeyDown:
		app.moveLines(1, extend)
	case backend.KeyPageUp:
		app.moveLines(-max(app.view.TextHeight()-1, 1), extend)
	case backend.KeyPageDown:
		app.moveLines(max(app.view.TextHeight()-1, 1), extend)
	case backend.KeyHome:
		p := buf.OffsetToPoint(app.caret)
		app.setCaret(buf.PointToOffset(buffer.Point{Line: p.Line}), extend)
	case backend.KeyEnd:
		p := buf.OffsetToPoint(app.caret)
		app.setCaret(buf.Lines()[p.Line].End, extend)
	}
	return nil
}

// moveLines moves the caret n lines, keeping its column where the target
// line is long enough.
func (app *Application) moveLines(n int, extend bool) {
	buf := app.doc.Buffer()
	p := buf.OffsetToPoint(app.caret)
	p.Line = max(0, min(p.Line+n, buf.LineCount()-1))
	app.setCaret(buf.PointToOffset(p), extend)
}

// insertText replaces the selection with text.
func (app *Application) insertText(text string) error {
	sel := app.selection()
	end, err := app.doc.Replace(sel.Start, sel.End, text)
	if err != nil {
		return NewOperationError("insert", "", err)
	}
	app.setCaret(end, false)
	return nil
}

func (app *Application) deleteBackward() error {
	sel := app.selection()
	if sel.IsEmpty() {
		if sel.Start == 0 {
			return nil
		}
		sel.Start--
	}
	return app.deleteRange(sel)
}

func (app *Application) deleteForward() error {
	sel := app.selection()
	if sel.IsEmpty() {
		if sel.End >= app.doc.Buffer().Len() {
			return nil
		}
		sel.End++
	}
	return app.deleteRange(sel)
}

func (app *Application) deleteRange(r buffer.Range) error {
	if err := app.doc.Delete(r.Start, r.End); err != nil {
		return NewOperationError("delete", r.String(), err)
	}
	app.setCaret(r.Start, false)
	return nil
}

// undo runs an undo or redo step, takes the selection it restored and
// names the step in the status line.
func (app *Application) undo(verb string, peek func() (history.OperationInfo, bool), step func() error, empty error) error {
	info, ok := peek()
	if !ok {
		app.message = empty.Error()
		return nil
	}
	if err := step(); err != nil {
		if errors.Is(err, empty) {
			app.message = err.Error()
			return nil
		}
		return err
	}
	sel := app.doc.Buffer().Selection()
	app.anchor = sel.Start
	app.setCaret(sel.End, true)
	app.statusf("%s %s", verb, info.Description)
	return nil
}

// copySelection puts the selected text on the clipboard. It reports
// whether there was anything to copy.
func (app *Application) copySelection() bool {
	sel := app.selection()
	if sel.IsEmpty() {
		app.statusf("select text to copy")
		return false
	}
	text, err := app.doc.Buffer().TextRange(sel.Start, sel.End)
	if err != nil {
		app.logger.Error("copy %s: %v", sel, err)
		return false
	}
	app.clipboard = text
	app.backend.SetClipboard([]byte(text))
	app.statusf("copied %d characters", sel.Len())
	return true
}

func (app *Application) cut() error {
	sel := app.selection()
	if !app.copySelection() {
		return nil
	}
	if err := app.deleteRange(sel); err != nil {
		return err
	}
	app.statusf("cut %d characters", sel.Len())
	return nil
}

// paste replaces the selection with the clipboard text. Pasted text
// takes no formatting.
func (app *Application) paste() error {
	if app.clipboard == "" {
		app.statusf("clipboard is empty")
		return nil
	}
	return app.insertText(app.clipboard)
}

// toggle flips a boolean attribute over the selection.
func (app *Application) toggle(kind format.Kind) error {
	err := app.doc.Format().ToggleBoolean(kind, app.selection())
	if errors.Is(err, format.ErrEmptySelection) {
		app.statusf("select text to apply %s", kind)
		return nil
	}
	return err
}

// caretStyle returns the style of the character before the caret, which
// is what typing would continue.
func (app *Application) caretStyle() format.EffectiveStyle {
	return app.doc.Format().QueryEffectiveStyle(max(app.caret-1, 0))
}

func (app *Application) promptFontFamily() {
	sel := app.selection()
	app.openPrompt("Font", app.caretStyle().Family, func(v string) error {
		if err := app.doc.Format().SetValueAttribute(format.FontFamily(strings.TrimSpace(v)), sel); err != nil {
			return err
		}
		if sel.IsEmpty() {
			app.statusf("default font %s", app.doc.Format().Defaults().Family)
		}
		return nil
	})
}

func (app *Application) promptFontSize() {
	sel := app.selection()
	app.openPrompt("Size", strconv.Itoa(app.caretStyle().Size), func(v string) error {
		size, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: size %q", ErrBadInput, v)
		}
		if err := app.doc.Format().SetValueAttribute(format.FontSize(size), sel); err != nil {
			return err
		}
		if sel.IsEmpty() {
			app.statusf("default size %d", size)
		}
		return nil
	})
}

// promptColor colors the selection. With nothing selected the color is
// recorded at the caret and styles no text.
func (app *Application) promptColor(label string, attr func(string) format.Attribute) {
	sel := app.selection()
	app.openPrompt(label, "", func(v string) error {
		return app.doc.Format().SetColorAttribute(attr(v), sel)
	})
}

func (app *Application) promptFind() {
	app.openPrompt("Find", "", func(q string) error {
		matches := app.doc.Find(q)
		if q == "" {
			return nil
		}
		app.statusf("%d matches", len(matches))
		if len(matches) > 0 {
			app.setCaret(matches[0].Start, false)
		}
		return nil
	})
}

func (app *Application) promptReplace() {
	app.openPrompt("Replace", "", func(q string) error {
		app.openPrompt("With", "", func(r string) error {
			n, err := app.doc.ReplaceAll(q, r)
			if err != nil {
				return NewOperationError("replace", q, err)
			}
			app.setCaret(app.caret, false)
			app.statusf("%d replaced", n)
			return nil
		})
		return nil
	})
}

func (app *Application) promptInsertTable() {
	app.openPrompt("Table rows x columns", "3x3", func(v string) error {
		rows, cols, err := parseTableSize(v)
		if err != nil {
			return err
		}
		if err := app.doc.InsertTable(rows, cols); err != nil {
			return err
		}
		app.setCaret(app.doc.Buffer().Len(), false)
		return nil
	})
}

// parseTableSize parses "ROWSxCOLS".
func parseTableSize(s string) (rows, cols int, err error) {
	r, c, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if ok {
		rows, err = strconv.Atoi(strings.TrimSpace(r))
	}
	if ok && err == nil {
		cols, err = strconv.Atoi(strings.TrimSpace(c))
	}
	if !ok || err != nil {
		return 0, 0, fmt.Errorf("%w: table size %q", ErrBadInput, s)
	}
	return rows, cols, nil
}

// toggleTheme switches between light and dark and persists the choice.
func (app *Application) toggleTheme() error {
	next := app.view.Theme().Name.Toggle()
	app.view.SetTheme(renderer.ThemeFor(next))
	if app.settings.Path() == "" {
		return nil
	}
	err := app.settings.Update(func(s *config.Settings) { s.Theme = next })
	if err != nil {
		return NewComponentError("settings", "save theme", err)
	}
	return nil
}

func (app *Application) promptOpen() {
	if app.doc.Modified() {
		app.statusf("unsaved changes, save first")
		return
	}
	app.openPrompt("Open", "", func(path string) error {
		path = strings.TrimSpace(path)
		if path == "" {
			return nil
		}
		doc, err := document.Open(path, app.doc.Format().Defaults(), app.newDocumentOptions()...)
		if err != nil {
			return err
		}
		app.replaceDocument(doc)
		app.logger.Info("opened %s", path)
		app.statusf("opened %s", path)
		return nil
	})
}

func (app *Application) save() error {
	if app.doc.Path() == "" {
		app.promptSaveAs()
		return nil
	}
	if err := app.doc.Save(); err != nil {
		return err
	}
	app.logger.Info("saved %s", app.doc.Path())
	app.statusf("saved")
	return nil
}

func (app *Application) promptSaveAs() {
	app.openPrompt("Save as", app.doc.Path(), func(path string) error {
		path = strings.TrimSpace(path)
		if path == "" {
			return nil
		}
		if path != app.doc.Path() && fileExists(path) {
			app.logger.Warn("overwriting %s", path)
		}
		if err := app.doc.SaveAs(path); err != nil {
			return err
		}
		app.logger.Info("saved %s", path)
		app.statusf("saved %s", path)
		return nil
	})
}

// confirmDiscard reports whether action may throw away unsaved changes.
// The first press with a modified document only arms it.
func (app *Application) confirmDiscard(action Action, what string) bool {
	if !app.doc.Modified() || app.armed == action {
		app.armed = ""
		return true
	}
	app.armed = action
	app.message = ErrUnsavedChanges.Error() + ", press again to " + what
	return false
}

// newFile replaces the document with an empty, untitled one that keeps
// the current defaults.
func (app *Application) newFile() error {
	if !app.confirmDiscard(ActionNew, "start a new file") {
		return nil
	}
	doc, err := document.New(app.doc.Format().Defaults(), app.newDocumentOptions()...)
	if err != nil {
		return NewOperationError("new", "", err)
	}
	app.replaceDocument(doc)
	app.logger.Info("new file")
	app.statusf("new file")
	return nil
}

// quit exits, asking for a second press when there are unsaved changes.
func (app *Application) quit() error {
	if !app.confirmDiscard(ActionQuit, "quit") {
		return nil
	}
	return ErrQuit
}
