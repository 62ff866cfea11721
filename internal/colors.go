package internal

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// MinPaletteSize is the smallest number of group colors a palette accepts
const MinPaletteSize = 6

// DefaultGroupColors is the palette used when no configuration overrides it
var DefaultGroupColors = []string{"red", "green", "yellow", "blue", "magenta", "cyan"}

// DefaultInsertionColor paints expanded replacement text
const DefaultInsertionColor = "white"

var namedColors = map[string]color.Attribute{
	"black":     color.FgBlack,
	"red":       color.FgRed,
	"green":     color.FgGreen,
	"yellow":    color.FgYellow,
	"blue":      color.FgBlue,
	"magenta":   color.FgMagenta,
	"purple":    color.FgMagenta,
	"cyan":      color.FgCyan,
	"white":     color.FgWhite,
	"hiblack":   color.FgHiBlack,
	"hired":     color.FgHiRed,
	"higreen":   color.FgHiGreen,
	"hiyellow":  color.FgHiYellow,
	"hiblue":    color.FgHiBlue,
	"himagenta": color.FgHiMagenta,
	"hicyan":    color.FgHiCyan,
	"hiwhite":   color.FgHiWhite,
}

// LookupColor resolves a color name to its foreground attribute
func LookupColor(name string) (color.Attribute, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "")
	attr, ok := namedColors[key]
	if !ok {
		return 0, fmt.Errorf("unknown color: %q", name)
	}
	return attr, nil
}

// Palette holds the decorations used by the renderer. Colors are enabled or
// disabled per instance, so building a palette never touches color.NoColor.
type Palette struct {
	groups    []*color.Color
	insertion *color.Color
}

// NewPalette builds a palette from color names. Group colors are drawn bold
// and crossed out, the insertion color bold and underlined.
func NewPalette(groupColors []string, insertion string, enabled bool) (*Palette, error) {
	if len(groupColors) < MinPaletteSize {
		return nil, fmt.Errorf("palette needs at least %d colors, got %d", MinPaletteSize, len(groupColors))
	}

	p := &Palette{groups: make([]*color.Color, 0, len(groupColors))}
	for _, name := range groupColors {
		attr, err := LookupColor(name)
		if err != nil {
			return nil, err
		}
		p.groups = append(p.groups, newStyle(enabled, attr, color.Bold, color.CrossedOut))
	}

	attr, err := LookupColor(insertion)
	if err != nil {
		return nil, err
	}
	p.insertion = newStyle(enabled, attr, color.Bold, color.Underline)

	return p, nil
}

// DefaultPalette returns the built-in six color palette
func DefaultPalette(enabled bool) *Palette {
	p, err := NewPalette(DefaultGroupColors, DefaultInsertionColor, enabled)
	if err != nil {
		panic(err)
	}
	return p
}

func newStyle(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Size returns the number of group colors
func (p *Palette) Size() int {
	return len(p.groups)
}

// Group returns the decoration for a capture group. Indices beyond the
// palette size wrap around.
func (p *Palette) Group(group int) *color.Color {
	return p.groups[group%len(p.groups)]
}

// Insertion returns the decoration for expanded replacement text
func (p *Palette) Insertion() *color.Color {
	return p.insertion
}
