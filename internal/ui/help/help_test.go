package help

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp_New(t *testing.T) {
	m := New("dark")

	assert.NotEmpty(t, m.keys.Up.Keys())
	assert.NotEmpty(t, m.keys.Down.Keys())
	assert.NotEmpty(t, m.keys.Close.Keys())
}

func TestHelp_SetSize(t *testing.T) {
	m := New("dark").SetSize(120, 40)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)

	m2 := m.SetSize(80, 24)
	assert.Equal(t, 80, m2.width)
	assert.Equal(t, 120, m.width, "SetSize must not mutate the receiver")
}

func TestHelp_View_ContainsKeybindings(t *testing.T) {
	m := New("notty").SetSize(100, 200)
	view := ansi.Strip(m.View())

	assert.Contains(t, view, "Regex Cheat Sheet")
	assert.Contains(t, view, "Keybindings")
	assert.Contains(t, view, "ctrl+r")
	assert.Contains(t, view, "toggle replace")
}

func TestHelp_View_ContainsCheatSheet(t *testing.T) {
	m := New("notty").SetSize(100, 200)
	view := ansi.Strip(m.View())

	assert.Contains(t, view, "Character classes")
	assert.Contains(t, view, "lookahead")
	assert.Contains(t, view, "Replacement")
}

func TestHelp_CloseKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyF1},
	} {
		_, cmd := New("dark").SetSize(80, 24).Update(msg)
		require.NotNil(t, cmd, "key %q should close", msg.String())
		assert.IsType(t, CloseMsg{}, cmd())
	}
}

func TestHelp_Scroll(t *testing.T) {
	m := New("notty").SetSize(80, 20)
	require.Equal(t, 0, m.viewport.YOffset)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 1, m.viewport.YOffset)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, 0, m.viewport.YOffset)
}

func TestHelp_Overlay(t *testing.T) {
	m := New("notty").SetSize(100, 30)
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 100)+"\n", 30), "\n")

	lines := strings.Split(m.Overlay(bg), "\n")
	require.Len(t, lines, 30)
	assert.Contains(t, ansi.Strip(strings.Join(lines, "\n")), "Regex Cheat Sheet")
}

func TestCheatSheet_Embedded(t *testing.T) {
	assert.Contains(t, CheatSheet(), "(?<name>abc)")
}
