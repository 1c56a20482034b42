package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Setting keys in the settings file.
const (
	KeyFontFamily = "font_family"
	KeyFontSize   = "font_size"
	KeyTheme      = "theme"
)

// DefaultFileName is the settings file name used when no path is given.
const DefaultFileName = "wordpad_settings.json"

// Theme is the editor color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Valid returns true for the known themes.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Settings are the persisted editor preferences.
type Settings struct {
	FontFamily string
	FontSize   int
	Theme      Theme
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		FontFamily: "Arial",
		FontSize:   12,
		Theme:      ThemeLight,
	}
}

// Validate checks every field and returns the first problem.
func (s Settings) Validate() error {
	if s.FontFamily == "" {
		return &ValidationError{Key: KeyFontFamily, Message: "must not be empty", Value: s.FontFamily}
	}
	if s.FontSize <= 0 {
		return &ValidationError{Key: KeyFontSize, Message: "must be positive", Value: s.FontSize}
	}
	if !s.Theme.Valid() {
		return &ValidationError{Key: KeyTheme, Message: `must be "light" or "dark"`, Value: s.Theme}
	}
	return nil
}

// Parse reads settings from JSON. Missing keys take their default value.
// Keys with the wrong type or an invalid value also take the default, and
// the first such problem is returned alongside the usable settings.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if !gjson.ValidBytes(data) {
		return s, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return s, errors.New("top level must be an object")
	}

	var problem error
	note := func(err error) {
		if problem == nil {
			problem = err
		}
	}

	if v := root.Get(KeyFontFamily); v.Exists() {
		if v.Type == gjson.String && v.String() != "" {
			s.FontFamily = v.String()
		} else {
			note(&ValidationError{Key: KeyFontFamily, Message: "must be a non-empty string", Value: v.Raw})
		}
	}
	if v := root.Get(KeyFontSize); v.Exists() {
		if v.Type == gjson.Number && v.Num == float64(v.Int()) && v.Int() > 0 {
			s.FontSize = int(v.Int())
		} else {
			note(&ValidationError{Key: KeyFontSize, Message: "must be a positive integer", Value: v.Raw})
		}
	}
	if v := root.Get(KeyTheme); v.Exists() {
		if theme := Theme(v.String()); v.Type == gjson.String && theme.Valid() {
			s.Theme = theme
		} else {
			note(&ValidationError{Key: KeyTheme, Message: `must be "light" or "dark"`, Value: v.Raw})
		}
	}
	return s, problem
}

// Store holds the settings and the file they persist to.
type Store struct {
	path     string
	raw      []byte
	settings Settings
}

// NewStore creates a store with default settings backed by path.
// Nothing is read or written until Reload or Update.
func NewStore(path string) *Store {
	return &Store{path: path, raw: []byte("{}"), settings: Default()}
}

// Load reads the settings file at path.
//
// A missing file is not an error. A malformed or invalid file returns a
// store holding defaults together with a *ParseError.
func Load(path string) (*Store, error) {
	s := NewStore(path)
	_, err := s.Reload()
	return s, err
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.path
}

// Settings returns the current settings.
func (s *Store) Settings() Settings {
	return s.settings
}

// Reload re-reads the settings file.
//
// If the file fails to parse, the settings stay as they were and a
// *ParseError is returned. When the file is still a JSON object its
// contents become the base for the next Update, so other keys survive the
// rewrite; otherwise the previous contents are used.
func (s *Store) Reload() (Settings, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.raw = []byte("{}")
		s.settings = Default()
		return s.settings, nil
	}
	if err != nil {
		return s.settings, fmt.Errorf("read settings: %w", err)
	}

	if gjson.ValidBytes(data) && gjson.ParseBytes(data).IsObject() {
		s.raw = data
	}
	settings, perr := Parse(data)
	if perr != nil {
		return s.settings, &ParseError{Path: s.path, Message: perr.Error(), Err: perr}
	}
	s.settings = settings
	return s.settings, nil
}

// Update applies fn to a copy of the settings, validates the result and
// writes it to disk. Unknown keys already in the file are kept. On error
// the store is unchanged.
func (s *Store) Update(fn func(*Settings)) error {
	next := s.settings
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	if s.path == "" {
		return ErrNoPath
	}

	raw := s.raw
	var err error
	if raw, err = sjson.SetBytes(raw, KeyFontFamily, next.FontFamily); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if raw, err = sjson.SetBytes(raw, KeyFontSize, next.FontSize); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if raw, err = sjson.SetBytes(raw, KeyTheme, string(next.Theme)); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	raw = pretty.Pretty(raw)

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write settings: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	s.raw = raw
	s.settings = next
	return nil
}
