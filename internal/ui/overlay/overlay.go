// Package overlay composites popup content (tooltips, help, logs, toasts)
// over a rendered background without clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the center of the viewport.
	Center Position = iota
	// Top places the overlay at the top center of the viewport.
	Top
	// Bottom places the overlay at the bottom center of the viewport.
	Bottom
	// Anchor places the overlay just below the cell (AnchorX, AnchorY),
	// flipping above it when there is no room below.
	Anchor
)

// Config controls overlay rendering behavior.
type Config struct {
	Width    int
	Height   int
	Position Position
	// PadY is the gap from the edge for Top and Bottom.
	PadY int

	// AnchorX and AnchorY locate the anchor cell for Anchor.
	AnchorX int
	AnchorY int
}

// Place renders fg on top of bg. Both may contain ANSI styling; the
// background keeps its styling on either side of the foreground.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	startX, startY := position(cfg, lipgloss.Width(fg), len(fgLines))

	for i, fgLine := range fgLines {
		y := startY + i
		if y >= len(bgLines) {
			break
		}
		bgLines[y] = splice(bgLines[y], fgLine, startX)
	}
	return strings.Join(bgLines, "\n")
}

// splice writes fgLine over bgLine starting at column x.
func splice(bgLine, fgLine string, x int) string {
	left := ansi.Truncate(bgLine, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	var right string
	end := x + ansi.StringWidth(fgLine)
	if end < ansi.StringWidth(bgLine) {
		right = ansi.TruncateLeft(bgLine, end, "")
	}
	return left + fgLine + right
}

// position returns the top-left cell of the foreground.
func position(cfg Config, fgWidth, fgHeight int) (x, y int) {
	x = (cfg.Width - fgWidth) / 2
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - fgHeight - cfg.PadY
	case Anchor:
		x = cfg.AnchorX
		y = cfg.AnchorY + 1
		if y+fgHeight > cfg.Height && cfg.AnchorY-fgHeight >= 0 {
			y = cfg.AnchorY - fgHeight
		}
		if x+fgWidth > cfg.Width {
			x = cfg.Width - fgWidth
		}
	default:
		y = (cfg.Height - fgHeight) / 2
	}
	return max(x, 0), max(y, 0)
}
