package format

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Supported font sizes, in points.
const (
	MinFontSize = 8
	MaxFontSize = 72
)

// defaultFamilies are the families offered when no catalog is configured.
var defaultFamilies = []string{
	"Arial",
	"Courier New",
	"Georgia",
	"Helvetica",
	"Liberation Mono",
	"Liberation Sans",
	"Liberation Serif",
	"Tahoma",
	"Times New Roman",
	"Trebuchet MS",
	"Verdana",
}

// FontCatalog is the set of font families the engine accepts.
// Lookups ignore case and surrounding whitespace.
type FontCatalog struct {
	byKey    map[string]string
	families []string
	fold     cases.Caser
}

// NewFontCatalog creates a catalog of the given families.
// Blank names and case-insensitive duplicates are ignored; the first
// spelling wins.
func NewFontCatalog(families ...string) *FontCatalog {
	c := &FontCatalog{
		byKey: make(map[string]string, len(families)),
		fold:  cases.Fold(),
	}
	for _, name := range families {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := c.key(name)
		if _, dup := c.byKey[key]; dup {
			continue
		}
		c.byKey[key] = name
		c.families = append(c.families, name)
	}
	slices.Sort(c.families)
	return c
}

// DefaultFontCatalog returns a catalog of common desktop families.
func DefaultFontCatalog() *FontCatalog {
	return NewFontCatalog(defaultFamilies...)
}

// Lookup returns the canonical spelling of name.
func (c *FontCatalog) Lookup(name string) (string, bool) {
	canonical, ok := c.byKey[c.key(strings.TrimSpace(name))]
	return canonical, ok
}

// Families returns the catalog's families in sorted order.
func (c *FontCatalog) Families() []string {
	return slices.Clone(c.families)
}

func (c *FontCatalog) key(name string) string {
	return c.fold.String(name)
}
