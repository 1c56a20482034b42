// Package config provides the persisted editor settings.
//
// Settings live in a small JSON file:
//
//	{"font_family": "Arial", "font_size": 12, "theme": "light"}
//
// The file is read at startup and rewritten after every change. Keys the
// editor does not know about are preserved on write. A missing file means
// defaults; a malformed file also yields defaults at load, together with a
// *ParseError the caller may log. Reloading a malformed file keeps the
// settings already held.
//
// # Basic Usage
//
//	store, err := config.Load(path)
//	if err != nil {
//	    log.Warn("settings: %v", err) // store still holds usable defaults
//	}
//	s := store.Settings()
//	err = store.Update(func(s *config.Settings) { s.Theme = s.Theme.Toggle() })
//
// Sub-packages:
//
//   - watcher: notifies when the settings file is changed by another program
package config
