// Package patterninput provides a text input with regex syntax highlighting
// and wrapping.
package patterninput

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/rexy/internal/highlight"
	"github.com/zjrosen/rexy/internal/ui/styles"
)

// Model is a single-line pattern input. The cursor is a rune offset.
type Model struct {
	value       []rune
	cursor      int
	focused     bool
	width       int
	placeholder string

	placeholderStyle lipgloss.Style
}

// New creates an empty pattern input.
func New() Model {
	return Model{
		width:            40,
		placeholderStyle: lipgloss.NewStyle().Foreground(styles.TextPlaceholderColor),
	}
}

// Value returns the current pattern.
func (m Model) Value() string {
	return string(m.value)
}

// SetValue replaces the pattern and clamps the cursor.
func (m *Model) SetValue(v string) {
	m.value = []rune(stripNewlines(v))
	m.cursor = min(m.cursor, len(m.value))
}

// Cursor returns the cursor position in runes.
func (m Model) Cursor() int {
	return m.cursor
}

// SetCursor moves the cursor, clamped to the value.
func (m *Model) SetCursor(pos int) {
	m.cursor = max(0, min(pos, len(m.value)))
}

// CursorEnd moves the cursor past the last rune.
func (m *Model) CursorEnd() {
	m.cursor = len(m.value)
}

func (m Model) Focused() bool { return m.focused }
func (m *Model) Focus()       { m.focused = true }
func (m *Model) Blur()        { m.focused = false }

// SetWidth sets the display width.
func (m *Model) SetWidth(w int) {
	m.width = max(w, 1)
}

// Width returns the display width.
func (m Model) Width() int {
	return m.width
}

// Height returns the number of display lines the wrapped pattern needs.
func (m Model) Height() int {
	return strings.Count(m.View(), "\n") + 1
}

// SetPlaceholder sets the text shown while the input is empty and blurred.
func (m *Model) SetPlaceholder(p string) {
	m.placeholder = p
}

// TokenHint describes the pattern token under the cursor, or the one just
// before it when the cursor sits at a token's end.
func (m Model) TokenHint() string {
	spans := highlight.HighlightPattern(string(m.value))
	if s, ok := spans.At(m.cursor); ok && s.Tooltip != "" {
		return s.Tooltip
	}
	if s, ok := spans.At(m.cursor - 1); ok {
		return s.Tooltip
	}
	return ""
}

// Update handles editing keys. Pasted newlines are dropped.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyLeft:
		if keyMsg.Alt {
			m.cursor = prevWordStart(m.value, m.cursor)
		} else if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyRight:
		if keyMsg.Alt {
			m.cursor = nextWordEnd(m.value, m.cursor)
		} else if m.cursor < len(m.value) {
			m.cursor++
		}
	case tea.KeyCtrlF:
		m.cursor = nextWordEnd(m.value, m.cursor)
	case tea.KeyCtrlB:
		m.cursor = prevWordStart(m.value, m.cursor)
	case tea.KeyHome, tea.KeyCtrlA:
		m.cursor = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		m.cursor = len(m.value)
	case tea.KeyBackspace:
		if m.cursor > 0 {
			m.value = append(m.value[:m.cursor-1:m.cursor-1], m.value[m.cursor:]...)
			m.cursor--
		}
	case tea.KeyDelete:
		if m.cursor < len(m.value) {
			m.value = append(m.value[:m.cursor:m.cursor], m.value[m.cursor+1:]...)
		}
	case tea.KeyCtrlW:
		start := prevWordStart(m.value, m.cursor)
		m.value = append(m.value[:start:start], m.value[m.cursor:]...)
		m.cursor = start
	case tea.KeyCtrlK:
		m.value = m.value[:m.cursor:m.cursor]
	case tea.KeyCtrlU:
		m.value = append([]rune(nil), m.value[m.cursor:]...)
		m.cursor = 0
	case tea.KeyRunes:
		if keyMsg.Alt && len(keyMsg.Runes) == 1 {
			switch keyMsg.Runes[0] {
			case 'f':
				m.cursor = nextWordEnd(m.value, m.cursor)
				return m, nil
			case 'b':
				m.cursor = prevWordStart(m.value, m.cursor)
				return m, nil
			}
		}
		m.insert([]rune(stripNewlines(string(keyMsg.Runes))))
	case tea.KeySpace:
		m.insert([]rune{' '})
	}
	return m, nil
}

func (m *Model) insert(rs []rune) {
	if len(rs) == 0 {
		return
	}
	tail := append([]rune(nil), m.value[m.cursor:]...)
	m.value = append(append(m.value[:m.cursor:m.cursor], rs...), tail...)
	m.cursor += len(rs)
}

// Reverse video toggles only, so the cursor keeps the token color.
const (
	cursorOn  = "\x1b[7m"
	cursorOff = "\x1b[27m"
)

// View renders the highlighted pattern, wrapped to the input width.
func (m Model) View() string {
	if len(m.value) == 0 {
		if m.focused {
			return cursorOn + " " + cursorOff
		}
		if m.placeholder != "" {
			return m.placeholderStyle.Render(m.placeholder)
		}
		return ""
	}

	spans := highlight.HighlightPattern(string(m.value))
	if m.focused {
		spans = splitAtCursor(spans, m.cursor)
	}

	var b strings.Builder
	for _, s := range spans {
		style := highlight.TokenStyle(s.Token)
		if m.focused && s.Start == m.cursor && s.End == m.cursor+1 {
			b.WriteString(cursorOn + style.Render(s.Text) + cursorOff)
			continue
		}
		b.WriteString(style.Render(s.Text))
	}
	if m.focused && m.cursor >= len(m.value) {
		b.WriteString(cursorOn + " " + cursorOff)
	}

	out := b.String()
	if ansi.StringWidth(out) <= m.width {
		return out
	}
	return ansi.Wrap(out, m.width, "")
}

// splitAtCursor isolates the rune under the cursor in its own span so it can
// be drawn in reverse video without losing its token style.
func splitAtCursor(spans highlight.MarkedText, cursor int) highlight.MarkedText {
	out := make(highlight.MarkedText, 0, len(spans)+2)
	for _, s := range spans {
		if cursor < s.Start || cursor >= s.End {
			out = append(out, s)
			continue
		}
		runes := []rune(s.Text)
		at := cursor - s.Start
		for _, part := range []struct{ from, to int }{
			{0, at}, {at, at + 1}, {at + 1, len(runes)},
		} {
			if part.from == part.to {
				continue
			}
			piece := s
			piece.Text = string(runes[part.from:part.to])
			piece.Start = s.Start + part.from
			piece.End = s.Start + part.to
			out = append(out, piece)
		}
	}
	return out
}

func stripNewlines(s string) string {
	return strings.NewReplacer("\r\n", "", "\n", "", "\r", "").Replace(s)
}

// nextWordEnd returns the position after the next word from pos.
func nextWordEnd(rs []rune, pos int) int {
	n := len(rs)
	for pos < n && !isWordRune(rs[pos]) {
		pos++
	}
	for pos < n && isWordRune(rs[pos]) {
		pos++
	}
	return pos
}

// prevWordStart returns the start of the previous word from pos.
func prevWordStart(rs []rune, pos int) int {
	for pos > 0 && !isWordRune(rs[pos-1]) {
		pos--
	}
	for pos > 0 && isWordRune(rs[pos-1]) {
		pos--
	}
	return pos
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
