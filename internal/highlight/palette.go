package highlight

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/rexy/internal/ui/styles"
)

// FullMatchSlot is the palette slot for match text outside any group.
const FullMatchSlot = 0

// Palette is the ordered list of match colors. Group n is drawn with
// slot n % Size(); slot 0 is also used for text outside any group.
type Palette struct {
	colors []lipgloss.TerminalColor
}

// NewPalette creates a palette from colors. An empty list yields the
// default palette.
func NewPalette(colors ...lipgloss.TerminalColor) Palette {
	if len(colors) == 0 {
		return DefaultPalette()
	}
	return Palette{colors: colors}
}

// DefaultPalette returns the themed eight-color palette. Its colors are
// read from styles at render time, so theme changes apply immediately.
func DefaultPalette() Palette {
	return Palette{}
}

// ParsePalette builds a palette from hex colors, as found in config.
func ParsePalette(hex []string) (Palette, error) {
	if len(hex) == 0 {
		return DefaultPalette(), nil
	}
	colors := make([]lipgloss.TerminalColor, len(hex))
	var errs []error
	for i, h := range hex {
		if !styles.IsValidHexColor(h) {
			errs = append(errs, fmt.Errorf("palette[%d] must be a hex color, got %q", i, h))
			continue
		}
		colors[i] = lipgloss.Color(h)
	}
	if err := errors.Join(errs...); err != nil {
		return Palette{}, err
	}
	return Palette{colors: colors}, nil
}

// Size returns the number of slots.
func (p Palette) Size() int {
	if len(p.colors) == 0 {
		return styles.MatchSlots
	}
	return len(p.colors)
}

// Slot returns the slot for a group number. Group 0 (no group) maps to
// FullMatchSlot.
func (p Palette) Slot(group int) int {
	if group <= 0 {
		return FullMatchSlot
	}
	return group % p.Size()
}

// Color returns the color for slot.
func (p Palette) Color(slot int) lipgloss.TerminalColor {
	if len(p.colors) == 0 {
		return styles.MatchSlotColors[slot%styles.MatchSlots]
	}
	return p.colors[slot%len(p.colors)]
}
