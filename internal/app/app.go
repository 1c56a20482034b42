// Package app provides the main application structure and coordination
// for the wordpad editor. It wires the document, its style engine, the
// persisted settings and the terminal view together and runs the event
// loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/dshills/wordpad/internal/config"
	"github.com/dshills/wordpad/internal/config/watcher"
	"github.com/dshills/wordpad/internal/document"
	"github.com/dshills/wordpad/internal/engine/buffer"
	"github.com/dshills/wordpad/internal/engine/format"
	"github.com/dshills/wordpad/internal/renderer"
	"github.com/dshills/wordpad/internal/renderer/backend"
)

// Application is the central coordinator for the editor.
type Application struct {
	opts   Options
	logger *Logger

	backend  backend.Backend
	view     *renderer.View
	keymap   *Keymap
	settings *config.Store
	doc      *document.Document

	// anchor and caret are the ends of the selection; caret moves.
	anchor buffer.Offset
	caret  buffer.Offset

	message string
	prompt  *prompt
	// armed is the action waiting for a second press to discard changes.
	armed Action
	// clipboard holds the last cut or copied text.
	clipboard string
	// reloading is set while settings read from disk are applied, so the
	// defaults observer does not write them back.
	reloading bool

	reloads  chan struct{}
	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
}

// Options configures the application.
type Options struct {
	// SettingsPath is the settings file. Empty disables persistence.
	SettingsPath string

	// WatchSettings reloads the settings when the file changes on disk.
	WatchSettings bool

	// Files are files to open on startup. Only the first is used.
	Files []string

	// Logger receives application logs. Nil discards them.
	Logger *Logger

	// Keymap overrides the default key bindings.
	Keymap *Keymap
}

// New creates an application drawing to b.
//
// A settings file that fails to parse is reported in the log and the
// status line; the editor starts with defaults for the bad values.
func New(b backend.Backend, opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		logger:  opts.Logger,
		backend: b,
		keymap:  opts.Keymap,
		reloads: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	if app.logger == nil {
		app.logger = NewNullLogger()
	}
	if app.keymap == nil {
		app.keymap = DefaultKeymap()
	}

	if err := app.loadSettings(); err != nil {
		return nil, err
	}
	if err := app.openInitialDocument(); err != nil {
		return nil, err
	}
	app.view = renderer.NewView(b, renderer.ThemeFor(app.settings.Settings().Theme))
	return app, nil
}

func (app *Application) loadSettings() error {
	log := app.logger.WithComponent("settings")
	if app.opts.SettingsPath == "" {
		app.settings = config.NewStore("")
		return nil
	}

	store, err := config.Load(app.opts.SettingsPath)
	var perr *config.ParseError
	switch {
	case errors.As(err, &perr):
		log.Warn("using defaults: %v", err)
		app.message = "settings: " + perr.Message
	case err != nil:
		return NewComponentError("settings", "load", err)
	}
	app.settings = store
	log.Debug("loaded %s: %+v", store.Path(), store.Settings())
	return nil
}

// newDocumentOptions returns the engine options shared by every document
// the application opens.
func (app *Application) newDocumentOptions() []format.Option {
	return []format.Option{format.WithDefaultsObserver(app.onDefaultsChanged)}
}

// defaults returns the document defaults from the settings, falling back
// to the built-in ones when the settings name an unsupported font.
func (app *Application) defaults() format.Defaults {
	s := app.settings.Settings()
	d := format.Defaults{Family: s.FontFamily, Size: s.FontSize}
	if _, ok := format.DefaultFontCatalog().Lookup(d.Family); !ok || d.Size < format.MinFontSize || d.Size > format.MaxFontSize {
		app.logger.WithComponent("settings").Warn("unsupported font %s %d, using defaults", d.Family, d.Size)
		return format.DefaultDefaults()
	}
	return d
}

func (app *Application) openInitialDocument() error {
	defaults := app.defaults()
	if len(app.opts.Files) == 0 {
		doc, err := document.New(defaults, app.newDocumentOptions()...)
		if err != nil {
			return err
		}
		app.doc = doc
		return nil
	}

	path := app.opts.Files[0]
	doc, err := document.Open(path, defaults, app.newDocumentOptions()...)
	if errors.Is(err, fs.ErrNotExist) {
		doc, err = document.New(defaults, app.newDocumentOptions()...)
		if err == nil {
			doc.SetPath(path)
			app.message = "new file"
		}
	}
	if err != nil {
		return NewOperationError("open", path, err)
	}
	app.doc = doc
	app.logger.Info("opened %s", path)
	return nil
}

// onDefaultsChanged persists the document defaults after an empty
// selection font change.
func (app *Application) onDefaultsChanged(d format.Defaults) {
	if app.reloading || app.settings.Path() == "" {
		return
	}
	err := app.settings.Update(func(s *config.Settings) {
		s.FontFamily = d.Family
		s.FontSize = d.Size
	})
	if err != nil {
		app.logger.WithComponent("settings").Error("save defaults: %v", err)
		app.message = "could not save settings"
	}
}

// Document returns the open document.
func (app *Application) Document() *document.Document {
	return app.doc
}

// Settings returns the settings store.
func (app *Application) Settings() *config.Store {
	return app.settings
}

// Message returns the current status line message.
func (app *Application) Message() string {
	return app.message
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Shutdown asks a running event loop to exit.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() { close(app.done) })
}

// Run initializes the backend and processes events until the user quits,
// ctx is cancelled or Shutdown is called.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return NewComponentError("backend", "init", err)
	}
	defer app.backend.Shutdown()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if w := app.startWatcher(ctx); w != nil {
		defer w.Stop()
	}

	events := make(chan backend.Event)
	go app.pumpEvents(ctx, events)
	// Unblocks the pump's PollEvent on exit.
	defer app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})

	app.logger.Info("started")
	for {
		app.render()

		select {
		case <-ctx.Done():
			return nil
		case <-app.done:
			return nil
		case <-app.reloads:
			app.reloadSettings()
		case ev := <-events:
			err := app.dispatch(ev)
			if errors.Is(err, ErrQuit) {
				app.logger.Info("quit")
				return nil
			}
			if err != nil {
				app.logger.Error("%v", err)
				app.message = err.Error()
			}
		}
	}
}

func (app *Application) pumpEvents(ctx context.Context, events chan<- backend.Event) {
	for {
		ev := app.backend.PollEvent()
		if ev.Type == backend.EventInterrupt && ctx.Err() != nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (app *Application) startWatcher(ctx context.Context) *watcher.Watcher {
	if !app.opts.WatchSettings || app.settings.Path() == "" {
		return nil
	}
	log := app.logger.WithComponent("watcher")
	w, err := watcher.New(app.settings.Path(), watcher.WithErrorHandler(func(err error) {
		log.Warn("%v", err)
	}))
	if err != nil {
		log.Warn("disabled: %v", err)
		return nil
	}
	w.OnChange(func(ev watcher.Event) {
		log.Debug("%s %s", ev.Op, ev.Path)
		select {
		case app.reloads <- struct{}{}:
		default:
		}
	})
	if err := w.Start(ctx); err != nil {
		log.Warn("disabled: %v", err)
		return nil
	}
	return w
}

// reloadSettings applies settings changed on disk: the theme and the
// document defaults. A file that no longer parses changes nothing and is
// left as the user wrote it.
func (app *Application) reloadSettings() {
	log := app.logger.WithComponent("settings")
	s, err := app.settings.Reload()
	if err != nil {
		log.Warn("reload: %v", err)
		var perr *config.ParseError
		if errors.As(err, &perr) {
			app.message = "settings: " + perr.Message
		} else {
			app.message = "could not read settings"
		}
		return
	}
	app.view.SetTheme(renderer.ThemeFor(s.Theme))

	app.reloading = true
	defer func() { app.reloading = false }()

	d := app.doc.Format().Defaults()
	empty := buffer.PointRange(app.caret)
	if s.FontFamily != d.Family {
		if err := app.doc.Format().SetValueAttribute(format.FontFamily(s.FontFamily), empty); err != nil {
			log.Warn("reload font family: %v", err)
		}
	}
	if s.FontSize != d.Size {
		if err := app.doc.Format().SetValueAttribute(format.FontSize(s.FontSize), empty); err != nil {
			log.Warn("reload font size: %v", err)
		}
	}
}

// dispatch handles one event, converting a panic in a handler into an
// error so one bad command does not lose the document.
func (app *Application) dispatch(ev backend.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()

	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev)
	default:
		return nil
	}
}

func (app *Application) render() {
	message := app.message
	if app.prompt != nil {
		message = app.prompt.String()
	}
	app.view.Render(app.doc, app.caret, message)
}

// selection returns the ordered selection range.
func (app *Application) selection() buffer.Range {
	return buffer.NewRange(app.anchor, app.caret)
}

// setCaret moves the caret, clamped to the text, and collapses or extends
// the selection.
func (app *Application) setCaret(offset buffer.Offset, extend bool) {
	app.caret = max(0, min(offset, app.doc.Buffer().Len()))
	if !extend {
		app.anchor = app.caret
	}
	app.anchor = max(0, min(app.anchor, app.doc.Buffer().Len()))
	if err := app.doc.Buffer().SetSelection(app.selection()); err != nil {
		app.logger.Error("selection: %v", err)
	}
}

// replaceDocument swaps in a freshly loaded document.
func (app *Application) replaceDocument(doc *document.Document) {
	app.doc = doc
	app.anchor, app.caret = 0, 0
	app.armed = ""
}

// statusf sets the status line message.
func (app *Application) statusf(format string, args ...any) {
	app.message = fmt.Sprintf(format, args...)
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
