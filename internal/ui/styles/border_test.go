package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func plainLines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestPane_Render(t *testing.T) {
	out := Pane{Title: "Subject", Status: "2 matches", Width: 30, Height: 5}.Render("hello\nworld")
	lines := plainLines(out)

	require.Len(t, lines, 5)
	require.Equal(t, "╭─ Subject ────── 2 matches ─╮", lines[0])
	require.Equal(t, "│hello                       │", lines[1])
	require.Equal(t, "│world                       │", lines[2])
	require.Equal(t, "╰────────────────────────────╯", lines[4])
	for _, line := range lines {
		require.Equal(t, 30, lipgloss.Width(line))
	}
}

func TestPane_DropsStatusWhenNarrow(t *testing.T) {
	lines := plainLines(Pane{Title: "Pattern", Status: "invalid pattern", Width: 20, Height: 3}.Render(""))
	require.Equal(t, "╭─ Pattern ────────╮", lines[0])
}

func TestPane_ClipsContent(t *testing.T) {
	lines := plainLines(Pane{Title: "T", Width: 8, Height: 3}.Render("abcdefghij\nsecond"))
	require.Len(t, lines, 3)
	require.Equal(t, "│abcdef│", lines[1])
}

func TestPane_NoTitle(t *testing.T) {
	lines := plainLines(Pane{Width: 6, Height: 3}.Render("x"))
	require.Equal(t, "╭────╮", lines[0])
}
