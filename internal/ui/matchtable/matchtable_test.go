package matchtable

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rexy/internal/highlight"
	"github.com/zjrosen/rexy/internal/regex"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func dateMatches() []regex.MatchRecord {
	return []regex.MatchRecord{
		{Index: 0, Start: 0, End: 7, Text: "2024-01", Groups: []regex.GroupRecord{
			{Number: 1, Name: "year", Start: 0, End: 4, Text: "2024"},
			{Number: 2, Name: "month", Start: 5, End: 7, Text: "01"},
		}},
		{Index: 1, Start: 8, End: 15, Text: "2025-12", Groups: []regex.GroupRecord{
			{Number: 1, Name: "year", Start: 8, End: 12, Text: "2025"},
			{Number: 2, Name: "month", Start: 13, End: 15, Text: "12"},
		}},
		{Index: 2, Start: 16, End: 16, Text: ""},
	}
}

func newTable(height int) Model {
	m := New(highlight.DefaultPalette())
	m.SetSize(60, height)
	m.SetMatches(dateMatches())
	m.Focus()
	return m
}

func plainView(m Model) string {
	return ansi.Strip(zone.Scan(m.View()))
}

func press(m Model, k string) (Model, tea.Cmd) {
	switch k {
	case "enter":
		return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	case "down":
		return m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func TestView_ListsMatchesAndGroups(t *testing.T) {
	view := plainView(newTable(20))

	assert.Contains(t, view, "Range")
	assert.Contains(t, view, "[0,7)")
	assert.Contains(t, view, "$1 year")
	assert.Contains(t, view, "$2 month")
	assert.Contains(t, view, "2025-12")
	assert.Contains(t, view, "(empty)", "zero-width matches are listed")
}

func TestView_Empty(t *testing.T) {
	m := New(highlight.DefaultPalette())
	m.SetSize(40, 5)

	assert.Contains(t, plainView(m), "No matches")
	assert.Equal(t, -1, m.SelectedIndex())
	_, ok := m.Selected()
	assert.False(t, ok)
}

func TestView_TruncatesToWidth(t *testing.T) {
	m := New(highlight.DefaultPalette())
	m.SetSize(40, 5)
	m.SetMatches([]regex.MatchRecord{{Start: 0, End: 80, Text: strings.Repeat("x", 80)}})

	for _, line := range strings.Split(plainView(m), "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 40)
	}
}

func TestView_ControlCharactersVisible(t *testing.T) {
	m := New(highlight.DefaultPalette())
	m.SetSize(60, 5)
	m.SetMatches([]regex.MatchRecord{{Start: 0, End: 3, Text: "a\nb"}})

	assert.Contains(t, plainView(m), `a\nb`)
}

func TestNavigation(t *testing.T) {
	m := newTable(20)
	require.Equal(t, 0, m.SelectedIndex())

	m, cmd := press(m, "j")
	assert.Equal(t, 1, m.SelectedIndex())
	require.NotNil(t, cmd)
	assert.Equal(t, SelectMsg{Index: 1}, cmd())

	m, _ = press(m, "G")
	assert.Equal(t, 2, m.SelectedIndex())

	m, cmd = press(m, "j")
	assert.Equal(t, 2, m.SelectedIndex(), "selection stops at the last match")
	assert.Nil(t, cmd)

	m, _ = press(m, "g")
	assert.Equal(t, 0, m.SelectedIndex())
}

func TestNavigation_IgnoredWhenBlurred(t *testing.T) {
	m := newTable(20)
	m.Blur()

	m, _ = press(m, "j")
	assert.Equal(t, 0, m.SelectedIndex())
}

func TestTooltip(t *testing.T) {
	m := newTable(20)
	m, _ = press(m, "down")

	_, cmd := press(m, "enter")
	require.NotNil(t, cmd)
	msg, ok := cmd().(TooltipMsg)
	require.True(t, ok)
	assert.Equal(t, 1, msg.Index)
	assert.Equal(t, 4, msg.Line, "header plus three rows of the first match")
}

func TestScroll_KeepsSelectionVisible(t *testing.T) {
	m := newTable(4)

	m, _ = press(m, "j")
	assert.Contains(t, plainView(m), "2025-12")
	assert.Greater(t, m.SelectedLine(), 0)

	m, _ = press(m, "G")
	assert.Contains(t, plainView(m), "(empty)")
	assert.Greater(t, m.SelectedLine(), 0)

	m, _ = press(m, "g")
	assert.Equal(t, 1, m.SelectedLine())
}

func TestSetMatches_ClampsSelection(t *testing.T) {
	m := newTable(20)
	m.Select(2)

	m.SetMatches(dateMatches()[:1])
	assert.Equal(t, 0, m.SelectedIndex())

	m.SetMatches(nil)
	assert.Equal(t, -1, m.SelectedIndex())
}

func TestMouseWheel(t *testing.T) {
	m := newTable(3)
	m, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, 3, m.offset)

	m, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, 5, m.offset, "wheel stops at the last row")

	m, _ = m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, 2, m.offset)
}
