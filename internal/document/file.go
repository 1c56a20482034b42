package document

import (
	"fmt"
	"os"

	"github.com/dshills/wordpad/internal/engine/buffer"
)

// Load replaces the document text with the file at path.
// Formatting and highlights are dropped with the old text; the plain-text
// format carries none.
func (d *Document) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	text := string(data)
	if _, err := d.buf.Replace(0, d.buf.Len(), text); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	d.buf.SetLineEnding(buffer.DetectLineEnding(text))
	if err := d.buf.SetSelection(buffer.PointRange(0)); err != nil {
		return err
	}
	d.history.Clear()
	d.path = path
	d.modified = false
	return nil
}

// Save writes the document to its path.
func (d *Document) Save() error {
	if d.path == "" {
		return ErrNoPath
	}
	return d.SaveAs(d.path)
}

// SaveAs writes the document to path and makes path the document's file.
func (d *Document) SaveAs(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if _, err := d.buf.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	d.path = path
	d.modified = false
	return nil
}
