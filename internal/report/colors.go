package report

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color renders text with a foreground color
type Color interface {
	Sprint(text string) string
}

type attrColor struct {
	c *color.Color
}

func (a attrColor) Sprint(text string) string {
	return a.c.Sprint(text)
}

// rgbColor writes the 24 bit escape directly since attribute colors only
// cover the basic palette
type rgbColor struct {
	r, g, b uint8
}

func (c rgbColor) Sprint(text string) string {
	if color.NoColor {
		return text
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", c.r, c.g, c.b, text)
}

var rgbRegex = regexp.MustCompile(`^#([a-fA-F0-9]{2})([a-fA-F0-9]{2})([a-fA-F0-9]{2})$`)

var (
	colorCache = make(map[string]Color, 8)
	colorMutex sync.RWMutex
)

var predefinedColors = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
	"default": color.Reset,
}

// ParseColor accepts a color name or a #rrggbb value
func ParseColor(name string) (Color, error) {
	colorMutex.RLock()
	if cached, exists := colorCache[name]; exists {
		colorMutex.RUnlock()
		return cached, nil
	}
	colorMutex.RUnlock()

	var result Color

	if m := rgbRegex.FindStringSubmatch(name); m != nil {
		r, _ := strconv.ParseUint(m[1], 16, 8)
		g, _ := strconv.ParseUint(m[2], 16, 8)
		b, _ := strconv.ParseUint(m[3], 16, 8)
		result = rgbColor{r: uint8(r), g: uint8(g), b: uint8(b)}
	} else {
		attr, exists := predefinedColors[strings.ToLower(name)]
		if !exists {
			return nil, fmt.Errorf("unknown color: %q", name)
		}
		result = attrColor{c: color.New(attr)}
	}

	colorMutex.Lock()
	colorCache[name] = result
	colorMutex.Unlock()

	return result, nil
}

// Styles maps diff tags to colors. Unchanged entries are never styled.
type Styles struct {
	Added   Color
	Removed Color
	Marker  Color
}

// DefaultStyles returns green additions, red removals and yellow markers
func DefaultStyles() Styles {
	return Styles{
		Added:   attrColor{c: color.New(color.FgGreen)},
		Removed: attrColor{c: color.New(color.FgRed)},
		Marker:  attrColor{c: color.New(color.FgYellow)},
	}
}

// NewStyles parses the three configured colors
func NewStyles(added, removed, marker string) (Styles, error) {
	var (
		s   Styles
		err error
	)
	if s.Added, err = ParseColor(added); err != nil {
		return Styles{}, fmt.Errorf("added: %w", err)
	}
	if s.Removed, err = ParseColor(removed); err != nil {
		return Styles{}, fmt.Errorf("removed: %w", err)
	}
	if s.Marker, err = ParseColor(marker); err != nil {
		return Styles{}, fmt.Errorf("marker: %w", err)
	}
	return s, nil
}

// ColorMode decides whether the console output is styled
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a color mode, "" meaning auto
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

// Enabled reports whether output written to f gets styled.
// Auto styles terminals only and honors NO_COLOR.
func (m ColorMode) Enabled(f *os.File) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return f != nil && term.IsTerminal(int(f.Fd()))
	}
}

// Apply sets the process wide color switch for output written to f
func (m ColorMode) Apply(f *os.File) {
	color.NoColor = !m.Enabled(f)
}
