package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bg(width, height int) string {
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat("A", width)
	}
	return strings.Join(lines, "\n")
}

func TestPlace_Center(t *testing.T) {
	result := Place(Config{Width: 5, Height: 3, Position: Center}, "XX\nXX", bg(5, 3))

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "AXXAA", lines[0])
	assert.Equal(t, "AXXAA", lines[1])
	assert.Equal(t, "AAAAA", lines[2])
}

func TestPlace_LargeForegroundClampsToOrigin(t *testing.T) {
	result := Place(Config{Width: 3, Height: 3, Position: Center}, "XXXXX\nXXXXX", bg(3, 3))

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "XXXXX", lines[0])
}

func TestPlace_TopAndBottom(t *testing.T) {
	top := strings.Split(Place(Config{Width: 5, Height: 5, Position: Top, PadY: 1}, "XX", bg(5, 5)), "\n")
	assert.Equal(t, "AAAAA", top[0])
	assert.Contains(t, top[1], "XX")

	bottom := strings.Split(Place(Config{Width: 5, Height: 5, Position: Bottom, PadY: 1}, "XX", bg(5, 5)), "\n")
	assert.Contains(t, bottom[3], "XX")
	assert.Equal(t, "AAAAA", bottom[4])
}

func TestPlace_AnchorBelow(t *testing.T) {
	result := Place(Config{Width: 10, Height: 5, Position: Anchor, AnchorX: 2, AnchorY: 1}, "TT", bg(10, 5))

	lines := strings.Split(result, "\n")
	assert.Equal(t, "AATTAAAAAA", lines[2])
	assert.Equal(t, "AAAAAAAAAA", lines[1])
}

func TestPlace_AnchorFlipsAboveAtBottomEdge(t *testing.T) {
	result := Place(Config{Width: 10, Height: 5, Position: Anchor, AnchorX: 0, AnchorY: 4}, "T1\nT2", bg(10, 5))

	lines := strings.Split(result, "\n")
	assert.True(t, strings.HasPrefix(lines[2], "T1"))
	assert.True(t, strings.HasPrefix(lines[3], "T2"))
	assert.Equal(t, "AAAAAAAAAA", lines[4])
}

func TestPlace_AnchorShiftsLeftAtRightEdge(t *testing.T) {
	result := Place(Config{Width: 10, Height: 5, Position: Anchor, AnchorX: 9, AnchorY: 0}, "TTTT", bg(10, 5))

	lines := strings.Split(result, "\n")
	assert.Equal(t, "AAAAAATTTT", lines[1])
}

func TestPlace_PadsShortBackground(t *testing.T) {
	result := Place(Config{Width: 6, Height: 3, Position: Center}, "XX", "AB")

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "  XX  ", lines[1])
}

func TestPlace_PreservesStyledBackground(t *testing.T) {
	styled := "\x1b[31mRRRRRR\x1b[0m"
	result := Place(Config{Width: 6, Height: 1, Position: Center}, "XX", styled)

	assert.Equal(t, "RRXXRR", ansi.Strip(result))
}
