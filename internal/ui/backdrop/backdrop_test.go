package backdrop

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/rexy/internal/highlight"
	"github.com/zjrosen/rexy/internal/regex"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	// Force ANSI color output in tests (lipgloss disables colors when no TTY)
	lipgloss.SetColorProfile(termenv.ANSI256)
	os.Exit(m.Run())
}

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = strings.Repeat(string(rune('a'+i%26)), 3)
	}
	return strings.Join(lines, "\n")
}

func newEditor(text string, width, height int) Model {
	m := New(highlight.NewRenderer(highlight.DefaultPalette()))
	m.SetSize(width, height)
	m.SetValue(text)
	m.Focus()
	return m
}

func requireSynced(t require.TestingT, m Model) {
	require.Equal(t, m.Surface().YOffset(), m.Backdrop().YOffset(), "surface and backdrop offsets diverged")
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func wheel(b tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{Button: b, Action: tea.MouseActionPress}
}

func TestSync_CaretScroll(t *testing.T) {
	m := newEditor(numberedLines(20), 10, 5)

	for range 12 {
		m, _ = m.Update(keyMsg(tea.KeyDown))
		requireSynced(t, m)
	}
	require.Equal(t, 8, m.Surface().YOffset())

	for range 12 {
		m, _ = m.Update(keyMsg(tea.KeyUp))
		requireSynced(t, m)
	}
	require.Equal(t, 0, m.Backdrop().YOffset())
}

func TestSync_MouseWheel(t *testing.T) {
	m := newEditor(numberedLines(20), 10, 5)

	m, _ = m.Update(wheel(tea.MouseButtonWheelDown))
	requireSynced(t, m)
	require.Equal(t, wheelLines, m.Backdrop().YOffset())

	for range 10 {
		m, _ = m.Update(wheel(tea.MouseButtonWheelDown))
	}
	requireSynced(t, m)
	require.Equal(t, 15, m.Surface().YOffset(), "wheel stops at the last page")

	m, _ = m.Update(wheel(tea.MouseButtonWheelUp))
	requireSynced(t, m)
	require.Equal(t, 12, m.Surface().YOffset())
}

func TestSync_PageKeysDoNotMoveCaret(t *testing.T) {
	m := newEditor(numberedLines(20), 10, 5)
	caret := m.Caret()

	m, _ = m.Update(keyMsg(tea.KeyPgDown))
	requireSynced(t, m)
	require.Equal(t, 5, m.Surface().YOffset())
	require.Equal(t, caret, m.Caret())

	m, _ = m.Update(keyMsg(tea.KeyPgUp))
	requireSynced(t, m)
	require.Equal(t, 0, m.Surface().YOffset())
}

func TestSync_DeletingLinesClampsBoth(t *testing.T) {
	m := newEditor(numberedLines(10), 10, 3)
	m, _ = m.Update(keyMsg(tea.KeyCtrlEnd))
	requireSynced(t, m)
	require.Equal(t, 7, m.Backdrop().YOffset())

	for range 12 {
		m, _ = m.Update(keyMsg(tea.KeyBackspace))
		requireSynced(t, m)
	}
	require.Less(t, m.Surface().YOffset(), 7)
}

func TestSync_SetValueAndResize(t *testing.T) {
	m := newEditor(numberedLines(30), 10, 5)
	m, _ = m.Update(keyMsg(tea.KeyCtrlEnd))
	requireSynced(t, m)

	m.SetSize(10, 20)
	requireSynced(t, m)
	require.Equal(t, 10, m.Surface().YOffset())

	m.SetValue("one line")
	requireSynced(t, m)
	require.Equal(t, 0, m.Backdrop().YOffset())
}

func TestSync_RandomEvents(t *testing.T) {
	events := []tea.Msg{
		keyMsg(tea.KeyUp), keyMsg(tea.KeyDown), keyMsg(tea.KeyLeft), keyMsg(tea.KeyRight),
		keyMsg(tea.KeyEnter), keyMsg(tea.KeyBackspace), keyMsg(tea.KeyDelete),
		keyMsg(tea.KeyPgUp), keyMsg(tea.KeyPgDown), keyMsg(tea.KeyCtrlHome), keyMsg(tea.KeyCtrlEnd),
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x\ny\nz")},
		wheel(tea.MouseButtonWheelUp), wheel(tea.MouseButtonWheelDown),
	}

	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.IntRange(1, 40).Draw(t, "lines")
		height := rapid.IntRange(1, 12).Draw(t, "height")
		m := newEditor(numberedLines(lines), 12, height)

		for _, ev := range rapid.SliceOfN(rapid.SampledFrom(events), 1, 60).Draw(t, "events") {
			m, _ = m.Update(ev)
			if m.Surface().YOffset() != m.Backdrop().YOffset() {
				t.Fatalf("after %T: surface %d, backdrop %d", ev, m.Surface().YOffset(), m.Backdrop().YOffset())
			}
		}
	})
}

func TestUpdate_IgnoresKeysWhenBlurred(t *testing.T) {
	m := newEditor("abc", 10, 3)
	m.Blur()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.Equal(t, "abc", m.Value())
}

func TestHighlights_RenderInView(t *testing.T) {
	subject := "abc\ndef"
	m := newEditor(subject, 10, 3)
	m.SetHighlights(highlight.NewRenderer(highlight.DefaultPalette()).Render(subject, []regex.MatchRecord{
		{Index: 0, Start: 4, End: 5, Text: "d"},
	}))

	view := zone.Scan(m.View())
	require.Contains(t, view, "\x1b[", "expected highlight styling")
	lines := strings.Split(ansi.Strip(view), "\n")
	require.True(t, strings.HasPrefix(lines[0], "abc"))
	require.True(t, strings.HasPrefix(lines[1], "def"))
}

func TestHighlights_DroppedOnEdit(t *testing.T) {
	subject := "abc"
	m := newEditor(subject, 10, 1)
	m.SetHighlights(highlight.NewRenderer(highlight.DefaultPalette()).Render(subject, []regex.MatchRecord{
		{Index: 0, Start: 0, End: 1, Text: "a"},
	}))
	require.NotEmpty(t, m.Highlights())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})
	require.Equal(t, "!abc", m.Value())
	require.Empty(t, m.Highlights())
}

func TestHighlights_StaleTextRendersPlain(t *testing.T) {
	m := newEditor("new text", 10, 1)
	m.Blur()
	m.SetHighlights(highlight.NewRenderer(highlight.DefaultPalette()).Render("old", []regex.MatchRecord{
		{Index: 0, Start: 0, End: 3, Text: "old"},
	}))

	view := ansi.Strip(zone.Scan(m.View()))
	require.True(t, strings.HasPrefix(view, "new text"))
}

func TestView_CaretComposited(t *testing.T) {
	m := newEditor("abc", 10, 1)
	m, _ = m.Update(keyMsg(tea.KeyHome))

	view := zone.Scan(m.View())
	require.Contains(t, view, cursorOn+"a"+cursorOff)
	require.True(t, strings.HasPrefix(ansi.Strip(view), "abc"))
}

func TestView_BlurredHasNoCaret(t *testing.T) {
	m := newEditor("abc", 10, 1)
	m.Blur()
	require.NotContains(t, m.View(), cursorOn)
}

func TestUpdate_LeftClickOutsideZonesIsIgnored(t *testing.T) {
	m := newEditor("abc", 10, 1)
	m, cmd := m.Update(tea.MouseMsg{X: 500, Y: 500, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	require.Nil(t, cmd)
	require.Equal(t, "abc", m.Value())
}
