// Package matchtable lists every match and its capture groups as selectable
// rows. Each match occupies one row followed by one indented row per
// participating group.
package matchtable

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/rexy/internal/highlight"
	"github.com/zjrosen/rexy/internal/keys"
	"github.com/zjrosen/rexy/internal/regex"
	"github.com/zjrosen/rexy/internal/ui/styles"
)

const (
	indexWidth = 4
	rangeWidth = 12
	groupWidth = 14
	wheelRows  = 3
)

// TooltipMsg asks the host to show the tooltip for match Index.
type TooltipMsg struct {
	Index int
	// Line is the selected row's line within View.
	Line int
}

// SelectMsg is sent when the selection moves.
type SelectMsg struct {
	Index int
}

type row struct {
	match int
	group int // 0 for the match row
}

// Model is the match table state. Selection is by match, not by row.
type Model struct {
	matches  []regex.MatchRecord
	palette  highlight.Palette
	selected int
	offset   int
	focused  bool
	width    int
	height   int
	zoneID   string
}

// New creates an empty table that colors group swatches with palette.
func New(palette highlight.Palette) Model {
	return Model{palette: palette, zoneID: zone.NewPrefix()}
}

// SetMatches replaces the listed matches, keeping the selection in range.
func (m *Model) SetMatches(matches []regex.MatchRecord) {
	m.matches = matches
	m.selected = max(0, min(m.selected, len(matches)-1))
	m.clampOffset()
}

// SetPalette changes the swatch colors.
func (m *Model) SetPalette(p highlight.Palette) {
	m.palette = p
}

// SetSize sets the table area including the header line.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, 1)
	m.height = max(height, 2)
	m.clampOffset()
}

func (m Model) Focused() bool { return m.focused }
func (m *Model) Focus()       { m.focused = true }
func (m *Model) Blur()        { m.focused = false }

// Len returns the number of matches.
func (m Model) Len() int {
	return len(m.matches)
}

// SelectedIndex returns the selected match index, -1 when empty.
func (m Model) SelectedIndex() int {
	if len(m.matches) == 0 {
		return -1
	}
	return m.selected
}

// Selected returns the selected match.
func (m Model) Selected() (regex.MatchRecord, bool) {
	if len(m.matches) == 0 {
		return regex.MatchRecord{}, false
	}
	return m.matches[m.selected], true
}

// Select moves the selection to match i, clamped, and scrolls it into view.
func (m *Model) Select(i int) {
	if len(m.matches) == 0 {
		return
	}
	m.selected = max(0, min(i, len(m.matches)-1))
	m.clampOffset()
}

// SelectedLine returns the line of the selected match row within View, or
// -1 when it is scrolled out of sight.
func (m Model) SelectedLine() int {
	for i, r := range m.rows() {
		if r.match == m.selected && r.group == 0 {
			line := i - m.offset + 1
			if line < 1 || line >= m.height {
				return -1
			}
			return line
		}
	}
	return -1
}

// Update handles navigation keys while focused and mouse events always.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused || len(m.matches) == 0 {
			return m, nil
		}
		prev := m.selected
		switch {
		case key.Matches(msg, keys.MatchTable.Up):
			m.Select(m.selected - 1)
		case key.Matches(msg, keys.MatchTable.Down):
			m.Select(m.selected + 1)
		case key.Matches(msg, keys.MatchTable.Top):
			m.Select(0)
		case key.Matches(msg, keys.MatchTable.Bottom):
			m.Select(len(m.matches) - 1)
		case key.Matches(msg, keys.MatchTable.Tooltip):
			return m, m.tooltipCmd()
		}
		if m.selected != prev {
			index := m.selected
			return m, func() tea.Msg { return SelectMsg{Index: index} }
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.offset = max(0, m.offset-wheelRows)
		case tea.MouseButtonWheelDown:
			m.offset = max(0, min(m.offset+wheelRows, len(m.rows())-m.bodyHeight()))
		case tea.MouseButtonLeft:
			if msg.Action != tea.MouseActionPress {
				return m, nil
			}
			for _, r := range m.rows() {
				if z := zone.Get(m.rowZone(r)); z != nil && z.InBounds(msg) {
					m.Select(r.match)
					return m, m.tooltipCmd()
				}
			}
		}
	}
	return m, nil
}

func (m Model) tooltipCmd() tea.Cmd {
	if len(m.matches) == 0 {
		return nil
	}
	index, line := m.selected, m.SelectedLine()
	return func() tea.Msg { return TooltipMsg{Index: index, Line: line} }
}

func (m Model) bodyHeight() int {
	return max(m.height-1, 1)
}

// clampOffset keeps the selected match row inside the visible body.
func (m *Model) clampOffset() {
	rows := m.rows()
	first := 0
	for i, r := range rows {
		if r.match == m.selected && r.group == 0 {
			first = i
			break
		}
	}
	body := m.bodyHeight()
	if first < m.offset {
		m.offset = first
	} else if first >= m.offset+body {
		m.offset = first - body + 1
	}
	m.offset = max(0, min(m.offset, len(rows)-body))
}

func (m Model) rowZone(r row) string {
	return fmt.Sprintf("%srow-%d-%d", m.zoneID, r.match, r.group)
}

// rows lays out one line per match and per participating group.
func (m Model) rows() []row {
	out := make([]row, 0, len(m.matches))
	for i, mr := range m.matches {
		out = append(out, row{match: i})
		for _, g := range mr.Groups {
			out = append(out, row{match: i, group: g.Number})
		}
	}
	return out
}

// View renders the header and the visible rows.
func (m Model) View() string {
	header := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(
		ansi.Truncate(fmt.Sprintf("  %-*s%-*s%-*s%s", indexWidth, "#", rangeWidth, "Range", groupWidth, "Group", "Text"), m.width, ""))

	if len(m.matches) == 0 {
		empty := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).Render("  No matches")
		return header + "\n" + empty
	}

	rows := m.rows()
	end := min(m.offset+m.bodyHeight(), len(rows))
	lines := []string{header}
	for _, r := range rows[m.offset:end] {
		lines = append(lines, m.renderRow(r))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(r row) string {
	mr := m.matches[r.match]
	selected := r.match == m.selected

	prefix := "  "
	if selected && r.group == 0 {
		prefix = styles.SelectionIndicatorStyle.Render(">") + " "
	}

	var index, span, label, text string
	var slot int
	if r.group == 0 {
		index = fmt.Sprintf("%d", mr.Index+1)
		span = styles.FormatRange(mr.Start, mr.End)
		label = "$&"
		text = mr.Text
		slot = m.palette.Slot(0)
	} else {
		g := groupByNumber(mr.Groups, r.group)
		span = styles.FormatRange(g.Start, g.End)
		label = fmt.Sprintf("$%d", g.Number)
		if g.Name != "" {
			label += " " + g.Name
		}
		text = g.Text
		slot = m.palette.Slot(g.Number)
	}

	label = styles.TruncateString(label, groupWidth-2)
	swatch := m.palette.SlotStyle(slot).Render(" ")
	labelCell := swatch + " " + label + strings.Repeat(" ", groupWidth-2-lipgloss.Width(label))

	if text == "" {
		text = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).Render("(empty)")
	} else {
		textWidth := max(m.width-2-indexWidth-rangeWidth-groupWidth, 1)
		text = styles.TruncateString(styles.VisibleText(text), textWidth)
	}

	line := fmt.Sprintf("%s%-*s%-*s%s%s", prefix, indexWidth, index, rangeWidth, span, labelCell, text)
	line = ansi.Truncate(line, m.width, "")
	if selected {
		line = lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(r.group == 0).Render(line)
	} else {
		line = lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).Render(line)
	}
	return zone.Mark(m.rowZone(r), line)
}

func groupByNumber(groups []regex.GroupRecord, n int) regex.GroupRecord {
	for _, g := range groups {
		if g.Number == n {
			return g
		}
	}
	return regex.GroupRecord{Number: n}
}
