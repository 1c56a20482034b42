package app

import (
	"github.com/dshills/wordpad/internal/renderer/backend"
)

// Action names an editor command bound to a key.
type Action string

// Editor actions.
const (
	ActionBold            Action = "format.bold"
	ActionItalic          Action = "format.italic"
	ActionUnderline       Action = "format.underline"
	ActionFontFamily      Action = "format.fontFamily"
	ActionFontSize        Action = "format.fontSize"
	ActionForeground      Action = "format.foreground"
	ActionBackground      Action = "format.background"
	ActionFind            Action = "edit.find"
	ActionReplace         Action = "edit.replace"
	ActionSelectAll       Action = "edit.selectAll"
	ActionInsertTable     Action = "edit.insertTable"
	ActionSpellCheck      Action = "tools.spellCheck"
	ActionStats           Action = "tools.stats"
	ActionToggleTheme     Action = "view.toggleTheme"
	ActionNew             Action = "file.new"
	ActionOpen            Action = "file.open"
	ActionSave            Action = "file.save"
	ActionSaveAs          Action = "file.saveAs"
	ActionQuit            Action = "app.quit"
	ActionClearHighlights Action = "edit.clearHighlights"
	ActionCut             Action = "edit.cut"
	ActionCopy            Action = "edit.copy"
	ActionPaste           Action = "edit.paste"
	ActionUndo            Action = "edit.undo"
	ActionRedo            Action = "edit.redo"
)

// Keymap maps keys to actions. Modifiers are not part of the lookup:
// Ctrl combinations arrive as their own keys.
type Keymap struct {
	bindings map[backend.Key]Action
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{bindings: make(map[backend.Key]Action)}
}

// DefaultKeymap returns the standard bindings.
func DefaultKeymap() *Keymap {
	km := NewKeymap()
	km.Bind(backend.KeyCtrlB, ActionBold)
	km.Bind(backend.KeyCtrlT, ActionItalic)
	km.Bind(backend.KeyCtrlU, ActionUnderline)
	km.Bind(backend.KeyCtrlF, ActionFind)
	km.Bind(backend.KeyCtrlR, ActionReplace)
	km.Bind(backend.KeyCtrlA, ActionSelectAll)
	km.Bind(backend.KeyCtrlZ, ActionUndo)
	km.Bind(backend.KeyCtrlY, ActionRedo)
	km.Bind(backend.KeyCtrlX, ActionCut)
	km.Bind(backend.KeyCtrlC, ActionCopy)
	km.Bind(backend.KeyCtrlV, ActionPaste)
	km.Bind(backend.KeyCtrlN, ActionNew)
	km.Bind(backend.KeyCtrlO, ActionOpen)
	km.Bind(backend.KeyCtrlS, ActionSave)
	km.Bind(backend.KeyCtrlQ, ActionQuit)
	km.Bind(backend.KeyEscape, ActionClearHighlights)
	km.Bind(backend.KeyF2, ActionFontFamily)
	km.Bind(backend.KeyF3, ActionFontSize)
	km.Bind(backend.KeyF4, ActionForeground)
	km.Bind(backend.KeyF5, ActionBackground)
	km.Bind(backend.KeyF6, ActionInsertTable)
	km.Bind(backend.KeyF7, ActionSpellCheck)
	km.Bind(backend.KeyF8, ActionStats)
	km.Bind(backend.KeyF9, ActionToggleTheme)
	km.Bind(backend.KeyF12, ActionSaveAs)
	return km
}

// Bind binds key to action, replacing any previous binding.
func (km *Keymap) Bind(key backend.Key, action Action) {
	km.bindings[key] = action
}

// Unbind removes the binding for key.
func (km *Keymap) Unbind(key backend.Key) {
	delete(km.bindings, key)
}

// Lookup returns the action bound to the event's key.
func (km *Keymap) Lookup(ev backend.Event) (Action, bool) {
	if ev.Type != backend.EventKey {
		return "", false
	}
	action, ok := km.bindings[ev.Key]
	return action, ok
}
