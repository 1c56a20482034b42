package format

import (
	"errors"
	"slices"
	"testing"

	"github.com/dshills/wordpad/internal/engine/buffer"
	"github.com/dshills/wordpad/internal/engine/tags"
)

func rng(start, end int) buffer.Range {
	return buffer.Range{Start: start, End: end}
}

func newTestEngine(t *testing.T, text string, opts ...Option) (*Engine, *buffer.Buffer) {
	t.Helper()
	buf := buffer.NewBufferFromString(text)
	e, err := New(buf, DefaultDefaults(), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	buf.AddListener(e)
	return e, buf
}

func TestNewRejectsInvalidDefaults(t *testing.T) {
	buf := buffer.NewBuffer()

	if _, err := New(buf, Defaults{Family: "Comic Papyrus", Size: 12}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("New(unknown family) error = %v, want ErrInvalidValue", err)
	}
	if _, err := New(buf, Defaults{Family: "Arial", Size: 200}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("New(size 200) error = %v, want ErrInvalidValue", err)
	}

	e, err := New(buf, Defaults{Family: "times new roman", Size: 12})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if e.Defaults().Family != "Times New Roman" {
		t.Errorf("Defaults().Family = %q, want canonical spelling", e.Defaults().Family)
	}
}

func TestToggleBooleanTwiceRestores(t *testing.T) {
	for _, kind := range []Kind{KindBold, KindItalic, KindUnderline} {
		t.Run(kind.String(), func(t *testing.T) {
			e, _ := newTestEngine(t, "The quick brown fox")
			if err := e.ToggleBoolean(kind, rng(0, 3)); err != nil {
				t.Fatal(err)
			}
			before := e.Tags().Ranges(kind.String())

			sel := rng(4, 9)
			if err := e.ToggleBoolean(kind, sel); err != nil {
				t.Fatal(err)
			}
			if !e.QueryEffectiveStyle(6).Has(kind) {
				t.Errorf("%s not set after first toggle", kind)
			}
			if err := e.ToggleBoolean(kind, sel); err != nil {
				t.Fatal(err)
			}

			if got := e.Tags().Ranges(kind.String()); !slices.Equal(got, before) {
				t.Errorf("ranges after double toggle = %v, want %v", got, before)
			}
		})
	}
}

func TestToggleBooleanMixedSelectionBecomesUniform(t *testing.T) {
	e, _ := newTestEngine(t, "0123456789")
	if err := e.ToggleBoolean(KindBold, rng(5, 10)); err != nil {
		t.Fatal(err)
	}

	// First character is not bold, so the whole selection becomes bold.
	if err := e.ToggleBoolean(KindBold, rng(0, 10)); err != nil {
		t.Fatal(err)
	}
	for off := 0; off < 10; off++ {
		if !e.QueryEffectiveStyle(off).Bold {
			t.Errorf("offset %d not bold after mixed toggle", off)
		}
	}
	if got := e.Tags().Ranges("bold"); !slices.Equal(got, []buffer.Range{rng(0, 10)}) {
		t.Errorf("bold ranges = %v, want [[0:10)]", got)
	}
}

func TestToggleBooleanRepresentativeIsFirstCharacter(t *testing.T) {
	e, _ := newTestEngine(t, "0123456789")
	if err := e.ToggleBoolean(KindItalic, rng(0, 5)); err != nil {
		t.Fatal(err)
	}

	// First character is italic, so italic is removed from the whole range.
	if err := e.ToggleBoolean(KindItalic, rng(2, 8)); err != nil {
		t.Fatal(err)
	}
	if got := e.Tags().Ranges("italic"); !slices.Equal(got, []buffer.Range{rng(0, 2)}) {
		t.Errorf("italic ranges = %v, want [[0:2)]", got)
	}
}

func TestToggleBooleanErrors(t *testing.T) {
	e, _ := newTestEngine(t, "hello")

	if err := e.ToggleBoolean(KindBold, rng(2, 2)); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("empty selection error = %v, want ErrEmptySelection", err)
	}
	if err := e.ToggleBoolean(KindBold, rng(3, 9)); !errors.Is(err, ErrRangeOutOfBounds) {
		t.Errorf("out of bounds error = %v, want ErrRangeOutOfBounds", err)
	}
	if err := e.ToggleBoolean(KindForeground, rng(0, 2)); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("non-boolean kind error = %v, want ErrInvalidValue", err)
	}
	if names := e.Tags().Names(); len(names) != 0 {
		t.Errorf("failed operations left tags %v", names)
	}
}

func TestToggleKeepsOtherAttributes(t *testing.T) {
	e, _ := newTestEngine(t, "0123456789")
	if err := e.SetColorAttribute(Foreground("#00ff00"), rng(0, 10)); err != nil {
		t.Fatal(err)
	}
	if err := e.SetValueAttribute(FontSize(20), rng(0, 10)); err != nil {
		t.Fatal(err)
	}
	if err := e.ToggleBoolean(KindBold, rng(2, 6)); err != nil {
		t.Fatal(err)
	}
	if err := e.ToggleBoolean(KindBold, rng(2, 6)); err != nil {
		t.Fatal(err)
	}

	got := e.QueryEffectiveStyle(4)
	if got.Bold || got.Foreground != "#00ff00" || got.Size != 20 {
		t.Errorf("QueryEffectiveStyle(4) = %+v, want non-bold green size 20", got)
	}
}

func TestSetValueAttributeSplitAndSupersede(t *testing.T) {
	e, _ := newTestEngine(t, "0123456789")

	if err := e.SetValueAttribute(FontSize(14), rng(2, 8)); err != nil {
		t.Fatal(err)
	}
	if err := e.SetValueAttribute(FontSize(18), rng(4, 6)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		offset int
		want   int
	}{
		{1, 12},
		{3, 14},
		{5, 18},
		{7, 14},
		{8, 12},
	}
	for _, tt := range tests {
		if got := e.QueryEffectiveStyle(tt.offset).Size; got != tt.want {
			t.Errorf("QueryEffectiveStyle(%d).Size = %d, want %d", tt.offset, got, tt.want)
		}
	}

	if got := e.Tags().Ranges("size:14"); !slices.Equal(got, []buffer.Range{rng(2, 4), rng(6, 8)}) {
		t.Errorf("size:14 ranges = %v", got)
	}
}

func TestSameKindNeverOverlaps(t *testing.T) {
	e, _ := newTestEngine(t, "abcdefghijklmnop")
	ops := []struct {
		attr Attribute
		sel  buffer.Range
	}{
		{FontFamily("Arial"), rng(0, 10)},
		{FontFamily("Georgia"), rng(5, 12)},
		{FontFamily("Verdana"), rng(3, 7)},
		{Foreground("red"), rng(0, 16)},
		{Foreground("blue"), rng(8, 9)},
		{Background("#ff0"), rng(2, 4)},
		{Background("#0f0"), rng(3, 14)},
	}
	for _, op := range ops {
		if err := e.Apply(op.attr, op.sel); err != nil {
			t.Fatalf("Apply(%s, %v) error = %v", op.attr, op.sel, err)
		}
	}

	for off := 0; off < 16; off++ {
		count := map[Kind]int{}
		for _, name := range e.Tags().NamesAt(off) {
			kind, _ := kindOfTag(name)
			count[kind]++
		}
		for kind, n := range count {
			if n > 1 {
				t.Errorf("offset %d has %d tags of kind %s", off, n, kind)
			}
		}
	}

	if got := e.QueryEffectiveStyle(4).Family; got != "Verdana" {
		t.Errorf("family at 4 = %q, want Verdana", got)
	}
	if got := e.QueryEffectiveStyle(10).Family; got != "Georgia" {
		t.Errorf("family at 10 = %q, want Georgia", got)
	}
	if got := e.QueryEffectiveStyle(8).Foreground; got != "#0000ff" {
		t.Errorf("foreground at 8 = %q, want #0000ff", got)
	}
	if got := e.QueryEffectiveStyle(2).Background; got != "#ffff00" {
		t.Errorf("background at 2 = %q, want #ffff00", got)
	}
}

func TestSetValueAttributeEmptySelectionUpdatesDefaults(t *testing.T) {
	var observed []Defaults
	e, buf := newTestEngine(t, "hello world", WithDefaultsObserver(func(d Defaults) {
		observed = append(observed, d)
	}))
	if err := e.ToggleBoolean(KindBold, rng(0, 5)); err != nil {
		t.Fatal(err)
	}
	before := buf.Text()

	if err := e.SetValueAttribute(FontSize(16), rng(3, 3)); err != nil {
		t.Fatal(err)
	}
	if err := e.SetValueAttribute(FontFamily("georgia"), rng(3, 3)); err != nil {
		t.Fatal(err)
	}

	want := Defaults{Family: "Georgia", Size: 16}
	if e.Defaults() != want {
		t.Errorf("Defaults() = %+v, want %+v", e.Defaults(), want)
	}
	if len(observed) != 2 || observed[1] != want {
		t.Errorf("observer saw %+v", observed)
	}
	if buf.Text() != before {
		t.Error("empty-selection font change modified the text")
	}
	for _, name := range e.Tags().Names() {
		if kind, _ := kindOfTag(name); kind == KindFontSize || kind == KindFontFamily {
			t.Errorf("empty-selection font change created tag %q", name)
		}
	}

	// Bold text re-resolves its font against the new defaults.
	runs := e.Runs(rng(0, 5))
	if len(runs) != 1 || runs[0].Font != (tags.Font{Family: "Georgia", Size: 16, Bold: true}) {
		t.Errorf("Runs() = %+v", runs)
	}
}

func TestSetValueAttributeErrors(t *testing.T) {
	e, _ := newTestEngine(t, "hello")
	if err := e.SetValueAttribute(FontSize(14), rng(0, 5)); err != nil {
		t.Fatal(err)
	}
	before := e.Tags().Names()

	tests := []struct {
		name string
		attr Attribute
		sel  buffer.Range
		want error
	}{
		{"size too small", FontSize(7), rng(0, 2), ErrInvalidValue},
		{"size too large", FontSize(73), rng(0, 2), ErrInvalidValue},
		{"unknown family", FontFamily("Wingdings 9"), rng(0, 2), ErrInvalidValue},
		{"wrong kind", Foreground("red"), rng(0, 2), ErrInvalidValue},
		{"out of bounds", FontSize(10), rng(0, 6), ErrRangeOutOfBounds},
		{"insertion point out of bounds", FontSize(10), rng(9, 9), ErrRangeOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := e.SetValueAttribute(tt.attr, tt.sel); !errors.Is(err, tt.want) {
				t.Errorf("SetValueAttribute() error = %v, want %v", err, tt.want)
			}
		})
	}

	if got := e.Tags().Names(); !slices.Equal(got, before) {
		t.Errorf("failed operations changed tags: %v, want %v", got, before)
	}
	if e.Defaults() != DefaultDefaults() {
		t.Errorf("failed operations changed defaults: %+v", e.Defaults())
	}
}

func TestSetColorAttributeCoexist(t *testing.T) {
	e, _ := newTestEngine(t, "hello world")

	if err := e.SetColorAttribute(Foreground("red"), rng(0, 5)); err != nil {
		t.Fatal(err)
	}
	if err := e.SetColorAttribute(Background("yellow"), rng(0, 5)); err != nil {
		t.Fatal(err)
	}

	got := e.QueryEffectiveStyle(2)
	if got.Foreground != "#ff0000" || got.Background != "#ffff00" {
		t.Errorf("QueryEffectiveStyle(2) = %+v, want red on yellow", got)
	}
}

func TestSetColorAttributeEmptySelectionIsInert(t *testing.T) {
	e, _ := newTestEngine(t, "hello")

	if err := e.SetColorAttribute(Foreground("#123456"), rng(2, 2)); err != nil {
		t.Fatalf("SetColorAttribute(empty) error = %v", err)
	}
	if !e.Tags().Has("fg:#123456") {
		t.Error("zero-width tag not recorded")
	}
	for off := 0; off <= 5; off++ {
		if got := e.QueryEffectiveStyle(off).Foreground; got != "" {
			t.Errorf("offset %d foreground = %q, want none", off, got)
		}
	}
}

func TestSetColorAttributeErrors(t *testing.T) {
	e, _ := newTestEngine(t, "hello")

	for _, c := range []string{"", "#12", "#1234567", "#gggggg", "notacolor"} {
		if err := e.SetColorAttribute(Foreground(c), rng(0, 2)); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("SetColorAttribute(%q) error = %v, want ErrInvalidColor", c, err)
		}
	}
	if err := e.SetColorAttribute(FontSize(12), rng(0, 2)); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("wrong kind error = %v, want ErrInvalidValue", err)
	}
	if err := e.SetColorAttribute(Background("red"), rng(4, 8)); !errors.Is(err, ErrRangeOutOfBounds) {
		t.Errorf("out of bounds error = %v, want ErrRangeOutOfBounds", err)
	}
	if names := e.Tags().Names(); len(names) != 0 {
		t.Errorf("failed operations left tags %v", names)
	}
}

func TestOnRangeDeletedClipsAndShifts(t *testing.T) {
	e, buf := newTestEngine(t, "0123456789")
	if err := e.ToggleBoolean(KindBold, rng(2, 8)); err != nil {
		t.Fatal(err)
	}

	if err := buf.Delete(3, 6); err != nil {
		t.Fatal(err)
	}

	if got := e.Tags().Ranges("bold"); !slices.Equal(got, []buffer.Range{rng(2, 5)}) {
		t.Errorf("bold ranges = %v, want [[2:5)]", got)
	}
	for off := 0; off < buf.Len(); off++ {
		want := off >= 2 && off < 5
		if got := e.QueryEffectiveStyle(off).Bold; got != want {
			t.Errorf("offset %d bold = %v, want %v", off, got, want)
		}
	}
}

func TestOnRangeDeletedDropsContainedTags(t *testing.T) {
	e, buf := newTestEngine(t, "0123456789")
	if err := e.SetColorAttribute(Foreground("red"), rng(4, 6)); err != nil {
		t.Fatal(err)
	}
	if err := e.ToggleBoolean(KindUnderline, rng(7, 9)); err != nil {
		t.Fatal(err)
	}

	if err := buf.Delete(3, 7); err != nil {
		t.Fatal(err)
	}

	if e.Tags().Has("fg:#ff0000") {
		t.Error("tag inside deleted range should be dropped")
	}
	if got := e.Tags().Ranges("underline"); !slices.Equal(got, []buffer.Range{rng(3, 5)}) {
		t.Errorf("underline ranges = %v, want [[3:5)]", got)
	}
}

func TestOnRangeInsertedInteriorGrows(t *testing.T) {
	e, buf := newTestEngine(t, "0123456789")
	if err := e.ToggleBoolean(KindBold, rng(2, 8)); err != nil {
		t.Fatal(err)
	}

	if _, err := buf.Insert(5, "abcd"); err != nil {
		t.Fatal(err)
	}

	if got := e.Tags().Ranges("bold"); !slices.Equal(got, []buffer.Range{rng(2, 12)}) {
		t.Errorf("bold ranges = %v, want [[2:12)]", got)
	}
}

func TestOnRangeInsertedAtEndDoesNotInherit(t *testing.T) {
	e, buf := newTestEngine(t, "0123456789")
	if err := e.ToggleBoolean(KindBold, rng(2, 5)); err != nil {
		t.Fatal(err)
	}

	if _, err := buf.Insert(5, "xy"); err != nil {
		t.Fatal(err)
	}

	if got := e.Tags().Ranges("bold"); !slices.Equal(got, []buffer.Range{rng(2, 5)}) {
		t.Errorf("bold ranges = %v, want [[2:5)]", got)
	}
	if e.QueryEffectiveStyle(5).Bold {
		t.Error("text typed after a bold run should not be bold")
	}
}

func TestResolvedFontTags(t *testing.T) {
	e, _ := newTestEngine(t, "0123456789")
	if err := e.SetValueAttribute(FontFamily("Courier New"), rng(0, 6)); err != nil {
		t.Fatal(err)
	}
	if err := e.ToggleBoolean(KindBold, rng(3, 9)); err != nil {
		t.Fatal(err)
	}
	if err := e.ToggleBoolean(KindItalic, rng(4, 5)); err != nil {
		t.Fatal(err)
	}

	runs := e.Runs(rng(0, 10))
	want := []struct {
		r    buffer.Range
		font tags.Font
	}{
		{rng(0, 3), tags.Font{Family: "Courier New", Size: 12}},
		{rng(3, 4), tags.Font{Family: "Courier New", Size: 12, Bold: true}},
		{rng(4, 5), tags.Font{Family: "Courier New", Size: 12, Bold: true, Italic: true}},
		{rng(5, 6), tags.Font{Family: "Courier New", Size: 12, Bold: true}},
		{rng(6, 9), tags.Font{Family: "Arial", Size: 12, Bold: true}},
		{rng(9, 10), tags.Font{Family: "Arial", Size: 12}},
	}
	if len(runs) != len(want) {
		t.Fatalf("Runs() = %+v, want %d runs", runs, len(want))
	}
	for i, w := range want {
		if runs[i].Range != w.r || runs[i].Font != w.font {
			t.Errorf("run %d = %v %+v, want %v %+v", i, runs[i].Range, runs[i].Font, w.r, w.font)
		}
	}

	// Untagged text carries no font tag.
	for _, name := range e.Tags().NamesAt(9) {
		if kind, _ := kindOfTag(name); kind == kindFont {
			t.Errorf("untagged offset 9 has font tag %q", name)
		}
	}
	// Each offset carries at most one font tag.
	for off := 0; off < 9; off++ {
		n := 0
		for _, name := range e.Tags().NamesAt(off) {
			if kind, _ := kindOfTag(name); kind == kindFont {
				n++
			}
		}
		if n != 1 {
			t.Errorf("offset %d has %d font tags, want 1", off, n)
		}
	}
}

func TestToggleOffRemovesFontTag(t *testing.T) {
	e, _ := newTestEngine(t, "0123456789")
	if err := e.ToggleBoolean(KindBold, rng(0, 4)); err != nil {
		t.Fatal(err)
	}
	if err := e.ToggleBoolean(KindBold, rng(0, 4)); err != nil {
		t.Fatal(err)
	}
	if names := e.Tags().Names(); len(names) != 0 {
		t.Errorf("tags after toggling off = %v, want none", names)
	}
}

func TestApplyDispatch(t *testing.T) {
	e, _ := newTestEngine(t, "hello")

	if err := e.Apply(Underline, rng(0, 5)); err != nil {
		t.Fatal(err)
	}
	if err := e.Apply(FontSize(30), rng(0, 2)); err != nil {
		t.Fatal(err)
	}
	if err := e.Apply(Background("navy"), rng(1, 3)); err != nil {
		t.Fatal(err)
	}
	if err := e.Apply(Attribute{Kind: kindFont}, rng(0, 1)); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Apply(font) error = %v, want ErrInvalidValue", err)
	}

	got := e.QueryEffectiveStyle(1)
	want := EffectiveStyle{Underline: true, Family: "Arial", Size: 30, Background: "#000080"}
	if got != want {
		t.Errorf("QueryEffectiveStyle(1) = %+v, want %+v", got, want)
	}
}

func TestWithSizeRange(t *testing.T) {
	e, _ := newTestEngine(t, "hello", WithSizeRange(10, 20))

	if err := e.SetValueAttribute(FontSize(21), rng(0, 1)); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("size 21 error = %v, want ErrInvalidValue", err)
	}
	if err := e.SetValueAttribute(FontSize(20), rng(0, 1)); err != nil {
		t.Errorf("size 20 error = %v", err)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindBold, "bold"},
		{KindItalic, "italic"},
		{KindUnderline, "underline"},
		{KindFontFamily, "font-family"},
		{KindFontSize, "font-size"},
		{KindForeground, "foreground"},
		{KindBackground, "background"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}
