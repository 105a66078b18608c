package backdrop

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func typeKeys(s Surface, msgs ...tea.KeyMsg) Surface {
	for _, msg := range msgs {
		s, _ = s.Update(msg)
	}
	return s
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func TestSurface_InsertAndNewline(t *testing.T) {
	s := NewSurface()
	s.SetSize(20, 5)

	s = typeKeys(s, runes("ab"), tea.KeyMsg{Type: tea.KeyEnter}, runes("cd"))

	require.Equal(t, "ab\ncd", s.Value())
	require.Equal(t, 5, s.Caret())
	row, col := s.CaretPos()
	require.Equal(t, 1, row)
	require.Equal(t, 2, col)
}

func TestSurface_PasteWithNewlines(t *testing.T) {
	s := NewSurface()
	s.SetSize(20, 5)
	s.SetValue("[]")
	s.SetCaret(1)

	s = typeKeys(s, runes("x\ny"))

	require.Equal(t, "[x\ny]", s.Value())
	require.Equal(t, 4, s.Caret())
}

func TestSurface_BackspaceJoinsLines(t *testing.T) {
	s := NewSurface()
	s.SetSize(20, 5)
	s.SetValue("ab\ncd")
	s.SetCaret(3)

	s = typeKeys(s, tea.KeyMsg{Type: tea.KeyBackspace})

	require.Equal(t, "abcd", s.Value())
	require.Equal(t, 2, s.Caret())
}

func TestSurface_DeleteJoinsLines(t *testing.T) {
	s := NewSurface()
	s.SetSize(20, 5)
	s.SetValue("ab\ncd")
	s.SetCaret(2)

	s = typeKeys(s, tea.KeyMsg{Type: tea.KeyDelete})

	require.Equal(t, "abcd", s.Value())
	require.Equal(t, 2, s.Caret())
}

func TestSurface_GraphemeMovement(t *testing.T) {
	// "e" + combining acute accent is one grapheme of two runes.
	s := NewSurface()
	s.SetSize(20, 5)
	s.SetValue("xe\u0301y")
	s.SetCaret(0)

	s = typeKeys(s, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 3, s.Caret(), "right should skip the whole cluster")

	s = typeKeys(s, tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, 1, s.Caret())

	s.SetCaret(3)
	s = typeKeys(s, tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, "xy", s.Value(), "backspace removes the whole cluster")
}

func TestSurface_WideRunesColumns(t *testing.T) {
	s := NewSurface()
	s.SetSize(20, 5)
	s.SetValue("日本語\nabcdef")
	s.SetCaret(2)

	x, y := s.CaretCell()
	require.Equal(t, 4, x)
	require.Equal(t, 0, y)

	s = typeKeys(s, tea.KeyMsg{Type: tea.KeyDown})
	row, col := s.CaretPos()
	require.Equal(t, 1, row)
	require.Equal(t, 4, col, "down keeps the display column")
}

func TestSurface_VerticalMovementSnapsToGrapheme(t *testing.T) {
	s := NewSurface()
	s.SetSize(20, 5)
	s.SetValue("abc\n日本")
	s.SetCaret(1)

	s = typeKeys(s, tea.KeyMsg{Type: tea.KeyDown})
	_, col := s.CaretPos()
	require.Equal(t, 0, col, "column 1 falls inside the first wide rune")
}

func TestSurface_LeftRightCrossLines(t *testing.T) {
	s := NewSurface()
	s.SetSize(20, 5)
	s.SetValue("ab\ncd")
	s.SetCaret(3)

	s = typeKeys(s, tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, 2, s.Caret())
	s = typeKeys(s, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 3, s.Caret())
}

func TestSurface_SetCaretClamps(t *testing.T) {
	s := NewSurface()
	s.SetValue("ab\ncd")

	s.SetCaret(-4)
	require.Equal(t, 0, s.Caret())
	s.SetCaret(99)
	require.Equal(t, 5, s.Caret())
}

func TestSurface_ScrollFollowsCaret(t *testing.T) {
	s := NewSurface()
	s.SetSize(10, 3)
	s.SetValue("0\n1\n2\n3\n4\n5")
	s.SetCaret(0)

	for range 4 {
		s = typeKeys(s, tea.KeyMsg{Type: tea.KeyDown})
	}
	require.Equal(t, 2, s.YOffset())

	s = typeKeys(s, tea.KeyMsg{Type: tea.KeyCtrlHome})
	require.Equal(t, 0, s.YOffset())
}

func TestSurface_SetYOffsetClamps(t *testing.T) {
	s := NewSurface()
	s.SetSize(10, 3)
	s.SetValue("0\n1\n2\n3\n4")

	s.SetYOffset(100)
	require.Equal(t, 2, s.YOffset())
	s.SetYOffset(-1)
	require.Equal(t, 0, s.YOffset())

	s.SetYOffset(2)
	s.SetValue("short")
	require.Equal(t, 0, s.YOffset(), "shrinking the text clamps the offset")
}

func TestSurface_MoveTo(t *testing.T) {
	s := NewSurface()
	s.SetSize(10, 2)
	s.SetValue("aa\nbb\ncc\ndd")
	s.SetYOffset(2)

	s.MoveTo(1, 1)
	require.Equal(t, 10, s.Caret(), "row 1 of the window is line 3")
	require.Equal(t, 2, s.YOffset())
}

func TestSurface_TabWidth(t *testing.T) {
	s := NewSurface()
	s.SetSize(20, 2)
	s.SetValue("\tx")
	s.SetCaret(1)

	x, _ := s.CaretCell()
	require.Equal(t, tabWidth, x)
}
