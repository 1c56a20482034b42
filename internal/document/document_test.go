package document

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/dshills/wordpad/internal/engine/buffer"
	"github.com/dshills/wordpad/internal/engine/format"
	"github.com/dshills/wordpad/internal/engine/history"
)

func rng(start, end int) buffer.Range {
	return buffer.Range{Start: start, End: end}
}

func newTestDocument(t *testing.T, text string) *Document {
	t.Helper()
	d, err := New(format.DefaultDefaults())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := d.Insert(0, text); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	return d
}

func TestDocumentEditsMoveFormatting(t *testing.T) {
	d := newTestDocument(t, "0123456789")
	if err := d.Format().ToggleBoolean(format.KindBold, rng(2, 8)); err != nil {
		t.Fatal(err)
	}

	if err := d.Delete(3, 6); err != nil {
		t.Fatal(err)
	}
	if got := d.Format().Tags().Ranges("bold"); !slices.Equal(got, []buffer.Range{rng(2, 5)}) {
		t.Errorf("bold after delete = %v, want [[2:5)]", got)
	}

	if _, err := d.Insert(3, "abcd"); err != nil {
		t.Fatal(err)
	}
	if got := d.Format().Tags().Ranges("bold"); !slices.Equal(got, []buffer.Range{rng(2, 9)}) {
		t.Errorf("bold after insert = %v, want [[2:9)]", got)
	}
}

func TestDocumentModified(t *testing.T) {
	d, err := New(format.DefaultDefaults())
	if err != nil {
		t.Fatal(err)
	}
	if d.Modified() {
		t.Error("new document should not be modified")
	}
	if _, err := d.Insert(0, "x"); err != nil {
		t.Fatal(err)
	}
	if !d.Modified() {
		t.Error("document should be modified after insert")
	}
}

func TestFind(t *testing.T) {
	d := newTestDocument(t, "Go go GO gopher")

	matches := d.Find("go")
	want := []buffer.Range{rng(0, 2), rng(3, 5), rng(6, 8), rng(9, 11)}
	if !slices.Equal(matches, want) {
		t.Errorf("Find() = %v, want %v", matches, want)
	}
	if !d.Marks().HasAt(TagFound, 4) || d.Marks().HasAt(TagFound, 2) {
		t.Error("found highlight not applied to matches only")
	}
	spec, _ := d.Marks().Spec(TagFound)
	if spec.Foreground != "#ff0000" || spec.Background != "#ffff00" {
		t.Errorf("found spec = %+v, want red on yellow", spec)
	}

	if got := d.Find(""); got != nil {
		t.Errorf("Find(\"\") = %v, want nil", got)
	}
	if d.Marks().Has(TagFound) {
		t.Error("empty query should clear highlights")
	}
}

func TestFindNonOverlapping(t *testing.T) {
	d := newTestDocument(t, "aaaa")
	if got := d.Find("aa"); !slices.Equal(got, []buffer.Range{rng(0, 2), rng(2, 4)}) {
		t.Errorf("Find(aa) = %v", got)
	}
}

func TestFindHighlightFollowsEdits(t *testing.T) {
	d := newTestDocument(t, "say hello")
	d.Find("hello")

	if _, err := d.Insert(0, ">> "); err != nil {
		t.Fatal(err)
	}
	if got := d.Marks().Ranges(TagFound); !slices.Equal(got, []buffer.Range{rng(7, 12)}) {
		t.Errorf("found ranges = %v, want [[7:12)]", got)
	}
}

func TestReplaceAll(t *testing.T) {
	d := newTestDocument(t, "cat Cat dog CAT")

	n, err := d.ReplaceAll("cat", "bird")
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("ReplaceAll() = %d, want 3", n)
	}
	if d.Text() != "bird bird dog bird" {
		t.Errorf("Text() = %q", d.Text())
	}
	want := []buffer.Range{rng(0, 4), rng(5, 9), rng(14, 18)}
	if got := d.Marks().Ranges(TagReplaced); !slices.Equal(got, want) {
		t.Errorf("replaced ranges = %v, want %v", got, want)
	}
}

func TestReplaceAllRequiresBothStrings(t *testing.T) {
	d := newTestDocument(t, "cat")

	for _, tt := range [][2]string{{"", "x"}, {"cat", ""}} {
		n, err := d.ReplaceAll(tt[0], tt[1])
		if err != nil || n != 0 {
			t.Errorf("ReplaceAll(%q, %q) = %d, %v", tt[0], tt[1], n, err)
		}
	}
	if d.Text() != "cat" {
		t.Errorf("Text() = %q, want unchanged", d.Text())
	}
}

func TestStats(t *testing.T) {
	tests := []struct {
		text string
		want Stats
	}{
		{"", Stats{Words: 0, Characters: 0, Lines: 1}},
		{"hello, world", Stats{Words: 2, Characters: 12, Lines: 1}},
		{"one\ntwo three\n", Stats{Words: 3, Characters: 14, Lines: 3}},
		{"don't stop 42", Stats{Words: 3, Characters: 13, Lines: 1}},
		{"été", Stats{Words: 1, Characters: 3, Lines: 1}},
	}
	for _, tt := range tests {
		d := newTestDocument(t, tt.text)
		if got := d.Stats(); got != tt.want {
			t.Errorf("Stats(%q) = %+v, want %+v", tt.text, got, tt.want)
		}
	}
}

func TestSpellCheck(t *testing.T) {
	d := newTestDocument(t, "hello wor1d, fine\tok? naïve")

	got := d.SpellCheck()
	want := []Misspelling{
		{Word: "wor1d,", Range: rng(6, 12)},
		{Word: "ok?", Range: rng(18, 21)},
	}
	if !slices.Equal(got, want) {
		t.Errorf("SpellCheck() = %+v, want %+v", got, want)
	}
	if got := d.Marks().Ranges(TagMisspelled); !slices.Equal(got, []buffer.Range{rng(6, 12), rng(18, 21)}) {
		t.Errorf("misspelled ranges = %v", got)
	}

	if _, err := d.Replace(6, 12, "world"); err != nil {
		t.Fatal(err)
	}
	if got := d.SpellCheck(); len(got) != 1 || got[0].Word != "ok?" {
		t.Errorf("SpellCheck() after fix = %+v", got)
	}
}

func TestInsertTable(t *testing.T) {
	d := newTestDocument(t, "x\n")

	if err := d.InsertTable(1, 2); err != nil {
		t.Fatal(err)
	}
	want := "x\n" +
		"| Column | Column |\n" +
		"|---------|---------|\n" +
		"|         |         |\n"
	if d.Text() != want {
		t.Errorf("Text() = %q, want %q", d.Text(), want)
	}

	for _, size := range [][2]int{{0, 1}, {1, 0}, {-1, 3}} {
		if err := d.InsertTable(size[0], size[1]); !errors.Is(err, ErrInvalidTable) {
			t.Errorf("InsertTable(%d, %d) error = %v, want ErrInvalidTable", size[0], size[1], err)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")

	d := newTestDocument(t, "first line\nsecond")
	if err := d.Save(); !errors.Is(err, ErrNoPath) {
		t.Errorf("Save() without path error = %v, want ErrNoPath", err)
	}
	if err := d.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	if d.Modified() || d.Path() != path {
		t.Errorf("after SaveAs Modified() = %v, Path() = %q", d.Modified(), d.Path())
	}

	if err := os.WriteFile(path, []byte("crlf\r\ntext\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := d.Format().ToggleBoolean(format.KindBold, rng(0, 5)); err != nil {
		t.Fatal(err)
	}
	if err := d.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d.Text() != "crlf\ntext\n" {
		t.Errorf("Text() = %q", d.Text())
	}
	if len(d.Format().Tags().Names()) != 0 {
		t.Errorf("formatting survived load: %v", d.Format().Tags().Names())
	}
	if d.Modified() {
		t.Error("document should not be modified after load")
	}

	if err := d.Save(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "crlf\r\ntext\r\n" {
		t.Errorf("saved %q, want CRLF preserved", data)
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Open(path, format.DefaultDefaults())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if d.Text() != "abc" || d.Path() != path || d.Modified() {
		t.Errorf("Open() = %q, %q, %v", d.Text(), d.Path(), d.Modified())
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.txt"), format.DefaultDefaults()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestSetPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	d := newTestDocument(t, "fresh")
	d.SetPath(path)

	if err := d.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "fresh" {
		t.Errorf("saved %q, want fresh", data)
	}
}

func TestUndoRedo(t *testing.T) {
	d := newTestDocument(t, "hello")

	if _, err := d.Insert(5, " world"); err != nil {
		t.Fatal(err)
	}
	if err := d.Delete(0, 1); err != nil {
		t.Fatal(err)
	}

	if err := d.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if d.Text() != "hello world" {
		t.Errorf("after first undo: got %q", d.Text())
	}
	if err := d.Undo(); err != nil {
		t.Fatal(err)
	}
	if d.Text() != "hello" {
		t.Errorf("after second undo: got %q", d.Text())
	}
	if err := d.Redo(); err != nil {
		t.Fatalf("Redo() error = %v", err)
	}
	if d.Text() != "hello world" {
		t.Errorf("after redo: got %q", d.Text())
	}
}

func TestUndoRestoresTextNotFormatting(t *testing.T) {
	d := newTestDocument(t, "0123456789")
	if err := d.Format().ToggleBoolean(format.KindBold, rng(2, 8)); err != nil {
		t.Fatal(err)
	}
	if err := d.Delete(0, 10); err != nil {
		t.Fatal(err)
	}

	if err := d.Undo(); err != nil {
		t.Fatal(err)
	}
	if d.Text() != "0123456789" {
		t.Errorf("Text() = %q", d.Text())
	}
	if d.Format().Tags().Has("bold") {
		t.Error("undo restored formatting removed with the text")
	}
}

func TestReplaceAllUndoesAsOneStep(t *testing.T) {
	d := newTestDocument(t, "cat Cat cat")
	if _, err := d.ReplaceAll("cat", "dog"); err != nil {
		t.Fatal(err)
	}
	if err := d.Undo(); err != nil {
		t.Fatal(err)
	}
	if d.Text() != "cat Cat cat" {
		t.Errorf("Text() after undo = %q, want original", d.Text())
	}
}

func TestLoadClearsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}
	d := newTestDocument(t, "typed")
	if err := d.Load(path); err != nil {
		t.Fatal(err)
	}
	if err := d.Undo(); !errors.Is(err, history.ErrNothingToUndo) {
		t.Errorf("Undo() after Load error = %v, want ErrNothingToUndo", err)
	}
}
