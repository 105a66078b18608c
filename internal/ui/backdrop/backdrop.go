// Package backdrop implements the subject editor as two stacked layers: an
// editable Surface whose text is drawn blank, and a read-only Backdrop that
// renders the same text with match highlights. The backdrop follows the
// surface's scroll offset on every update and is never scrolled on its own.
package backdrop

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/rexy/internal/highlight"
	"github.com/zjrosen/rexy/internal/keys"
)

// Reverse video toggles only, so the caret keeps the highlight colors.
const (
	cursorOn  = "\x1b[7m"
	cursorOff = "\x1b[27m"
)

// wheelLines is how far one mouse wheel notch scrolls.
const wheelLines = 3

// MatchClickedMsg is sent when a highlighted span is clicked.
type MatchClickedMsg struct {
	Index int
	// X and Y are the click's screen coordinates.
	X, Y int
}

// Backdrop is the colorized layer: a viewport over rendered MarkedText.
type Backdrop struct {
	viewport viewport.Model
	renderer *highlight.Renderer
}

// YOffset returns the backdrop's first visible line.
func (b Backdrop) YOffset() int {
	return b.viewport.YOffset
}

// View renders the visible window.
func (b Backdrop) View() string {
	return b.viewport.View()
}

// Model couples the surface and the backdrop.
type Model struct {
	surface  Surface
	backdrop Backdrop
	marked   highlight.MarkedText
	focused  bool
	zoneID   string
	width    int
	height   int
}

// New creates an empty editor that colors matches with renderer.
func New(renderer *highlight.Renderer) Model {
	m := Model{
		surface:  NewSurface(),
		backdrop: Backdrop{viewport: viewport.New(1, 1), renderer: renderer},
		zoneID:   zone.NewPrefix(),
	}
	m.refresh()
	return m
}

// Surface returns the editable layer.
func (m Model) Surface() Surface { return m.surface }

// Backdrop returns the colorized layer.
func (m Model) Backdrop() Backdrop { return m.backdrop }

// Value returns the subject text.
func (m Model) Value() string {
	return m.surface.Value()
}

// SetValue replaces the subject text. Highlights are dropped until the next
// SetHighlights for the new text.
func (m *Model) SetValue(v string) {
	m.surface.SetValue(v)
	m.refresh()
}

// SetHighlights installs the rendered matches for the current text.
func (m *Model) SetHighlights(mt highlight.MarkedText) {
	m.marked = mt
	m.refresh()
}

// Highlights returns the installed MarkedText.
func (m Model) Highlights() highlight.MarkedText {
	return m.marked
}

// SetSize sets the editor area.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, 1)
	m.height = max(height, 1)
	m.surface.SetSize(m.width, m.height)
	m.backdrop.viewport.Width = m.width
	m.backdrop.viewport.Height = m.height
	m.refresh()
}

func (m Model) Focused() bool { return m.focused }
func (m *Model) Focus()       { m.focused = true }
func (m *Model) Blur()        { m.focused = false }

// Caret returns the caret rune offset.
func (m Model) Caret() int {
	return m.surface.Caret()
}

// Update routes input to the surface and mirrors its scroll offset onto the
// backdrop before returning.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	before := m.surface.Value()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Subject.PageUp):
			m.surface.ScrollBy(-m.height)
		case key.Matches(msg, keys.Subject.PageDown):
			m.surface.ScrollBy(m.height)
		default:
			m.surface, cmd = m.surface.Update(msg)
		}

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)
	}

	if m.surface.Value() != before {
		m.marked = nil
		m.refresh()
	}
	m.sync()
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.surface.ScrollBy(-wheelLines)
		return nil
	case tea.MouseButtonWheelDown:
		m.surface.ScrollBy(wheelLines)
		return nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
	default:
		return nil
	}

	for _, s := range m.marked.Highlights() {
		if z := zone.Get(m.spanZone(s)); z != nil && z.InBounds(msg) {
			index, x, y := s.MatchIndex, msg.X, msg.Y
			return func() tea.Msg { return MatchClickedMsg{Index: index, X: x, Y: y} }
		}
	}
	if z := zone.Get(m.zoneID); z != nil && z.InBounds(msg) {
		x, y := z.Pos(msg)
		m.surface.MoveTo(x, y)
	}
	return nil
}

// sync copies the surface scroll offset onto the backdrop.
func (m *Model) sync() {
	m.backdrop.viewport.SetYOffset(m.surface.YOffset())
}

// refresh re-renders the backdrop content. Stale highlights whose text no
// longer matches the buffer render as plain text so both layers always hold
// the same lines.
func (m *Model) refresh() {
	text := m.surface.Value()
	content := text
	if m.backdrop.renderer != nil && len(m.marked) > 0 && m.marked.Text() == text {
		content = m.backdrop.renderer.RenderANSI(m.marked, m.markSpan)
	}
	m.backdrop.viewport.SetContent(content)
	m.sync()
}

func (m Model) spanZone(s highlight.Span) string {
	return fmt.Sprintf("%smatch-%d-%d", m.zoneID, s.MatchIndex, s.Start)
}

// markSpan wraps single-line highlight spans in a mouse zone. Spans that
// cross a newline are left unmarked because the viewport slices by line.
func (m Model) markSpan(s highlight.Span, rendered string) string {
	if strings.Contains(s.Text, "\n") {
		return rendered
	}
	return zone.Mark(m.spanZone(s), rendered)
}

// View draws the backdrop with the surface's caret composited on top.
func (m Model) View() string {
	view := m.backdrop.View()
	if m.focused {
		view = m.overlayCaret(view)
	}
	return zone.Mark(m.zoneID, view)
}

func (m Model) overlayCaret(view string) string {
	lines := strings.Split(view, "\n")
	x, y := m.surface.CaretCell()
	if y < 0 || y >= len(lines) {
		return view
	}
	x = min(x, m.width-1)
	w := m.surface.caretWidth()

	line := lines[y]
	cell := ansi.Strip(ansi.Cut(line, x, x+w))
	if strings.TrimSpace(cell) == "" {
		cell = strings.Repeat(" ", w)
	}
	lines[y] = ansi.Cut(line, 0, x) + cursorOn + cell + cursorOff + ansi.Cut(line, x+w, m.width)
	return strings.Join(lines, "\n")
}
