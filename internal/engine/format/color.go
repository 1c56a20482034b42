package format

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor validates a color and returns it as lowercase "#rrggbb".
// It accepts "#rgb", "#rrggbb" and CSS/SVG color names such as "red".
func ParseColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		if len(s) != 4 && len(s) != 7 {
			return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		c, err := colorful.Hex(strings.ToLower(s))
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return c.Hex(), nil
	}
	if rgba, ok := colornames.Map[strings.ToLower(s)]; ok {
		return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
}
