package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/rexy/internal/highlight"
	"github.com/zjrosen/rexy/internal/keys"
	"github.com/zjrosen/rexy/internal/regex"
	"github.com/zjrosen/rexy/internal/ui/overlay"
	"github.com/zjrosen/rexy/internal/ui/styles"
)

const (
	flagsPaneWidth     = 12
	replacePaneHeight  = 7
	tablePaneHeight    = 10
	minSubjectHeight   = 3
	tooltipMaxWidth    = 48
	defaultSubjectName = "Test String"
)

// layout records where each pane sits on screen, for mouse routing and
// tooltip anchoring.
type layout struct {
	patternWidth  int
	patternHeight int
	errorLines    []string

	subjectTop    int
	subjectHeight int

	replaceTop    int
	replaceHeight int

	tableTop    int
	tableHeight int
}

// relayout recomputes pane geometry and resizes the components.
func (m *Model) relayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	var l layout

	l.patternWidth = max(m.width-flagsPaneWidth, 10)
	m.pattern.SetWidth(l.patternWidth - 2)
	m.flags.Width = flagsPaneWidth - 4
	l.patternHeight = m.pattern.Height() + 2

	if err := m.snapshot.PatternError(); err != nil {
		wrapped := wordwrap.String(err.Error(), max(m.width-2, 10))
		l.errorLines = strings.Split(wrapped, "\n")
	}

	fixed := l.patternHeight + len(l.errorLines)
	if m.showReplace {
		l.replaceHeight = replacePaneHeight
		fixed += l.replaceHeight
	}
	if m.showTable {
		l.tableHeight = tablePaneHeight
		fixed += l.tableHeight
	}
	if m.showStatus {
		fixed++
	}

	l.subjectTop = l.patternHeight + len(l.errorLines)
	l.subjectHeight = max(m.height-fixed, minSubjectHeight)
	l.replaceTop = l.subjectTop + l.subjectHeight
	l.tableTop = l.replaceTop + l.replaceHeight

	m.subject.SetSize(m.width-2, l.subjectHeight-2)
	m.replacement.Width = m.width - 4 - lipgloss.Width(m.replacement.Prompt)
	m.table.SetSize(m.width-2, l.tableHeight-2)

	m.layout = l
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	sections := []string{m.renderPatternRow()}
	for _, line := range m.layout.errorLines {
		sections = append(sections, " "+styles.ErrorStyle.Render(line))
	}
	sections = append(sections, m.renderSubject())
	if m.showReplace {
		sections = append(sections, m.renderReplacement())
	}
	if m.showTable {
		sections = append(sections, m.renderTable())
	}
	if m.showStatus {
		sections = append(sections, m.renderStatusBar())
	}
	view := strings.Join(sections, "\n")

	if m.tooltip != nil {
		if box := m.renderTooltip(); box != "" {
			view = overlay.Place(overlay.Config{
				Width:    m.width,
				Height:   m.height,
				Position: overlay.Anchor,
				AnchorX:  m.tooltip.x,
				AnchorY:  m.tooltip.y,
			}, box, view)
		}
	}
	if m.prompt != nil {
		view = overlay.Place(overlay.Config{
			Width:    m.width,
			Height:   m.height,
			Position: overlay.Center,
		}, m.prompt.View(), view)
	}
	if m.showPalette {
		view = m.palette.Overlay(view)
	}
	if m.showHelp {
		view = m.help.Overlay(view)
	}
	view = m.toaster.Overlay(view, m.width, m.height)
	if m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}

	return zone.Scan(view)
}

func (m Model) renderPatternRow() string {
	status := ""
	var statusColor lipgloss.TerminalColor
	if err := m.snapshot.PatternError(); err != nil {
		status = "invalid"
		if err.Kind == regex.CatastrophicTimeout {
			status = "too slow"
			statusColor = styles.StatusWarningColor
		} else {
			statusColor = styles.StatusErrorColor
		}
	} else if groups := len(m.snapshot.Groups); groups > 0 {
		status = styles.Pluralize(groups, "group", "groups")
	}

	pattern := styles.Pane{
		Title:       "Pattern",
		Status:      status,
		StatusColor: statusColor,
		Width:       m.layout.patternWidth,
		Height:      m.layout.patternHeight,
		Focused:     m.focus == focusPattern,
	}.Render(m.pattern.View())

	flags := styles.Pane{
		Title:   "Flags",
		Width:   m.width - m.layout.patternWidth,
		Height:  m.layout.patternHeight,
		Focused: m.focus == focusFlags,
	}.Render(m.flags.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, pattern, flags)
}

func (m Model) renderSubject() string {
	title := defaultSubjectName
	if m.subjectPath != "" {
		title = filepath.Base(m.subjectPath)
	}

	status := ""
	var statusColor lipgloss.TerminalColor
	if m.snapshot.Input.Pattern != "" && m.snapshot.Err == nil {
		status = styles.Pluralize(len(m.snapshot.Matches), "match", "matches")
		statusColor = styles.StatusSuccessColor
		if len(m.snapshot.Matches) == 0 {
			statusColor = styles.TextMutedColor
		}
	}

	return styles.Pane{
		Title:       title,
		Status:      status,
		StatusColor: statusColor,
		Width:       m.width,
		Height:      m.layout.subjectHeight,
		Focused:     m.focus == focusSubject,
	}.Render(m.subject.View())
}

func (m Model) renderReplacement() string {
	lines := []string{m.replacement.View()}
	switch {
	case m.snapshot.HasReplaced:
		diff := highlight.RenderDiffANSI(highlight.DiffWords(m.snapshot.Input.Subject, m.snapshot.Replaced))
		lines = append(lines, styles.HintStyle.Render(strings.Repeat("─", max(m.width-2, 1))), diff)
	case m.snapshot.Err != nil:
		lines = append(lines, "", styles.HintStyle.Render("fix the pattern to preview the result"))
	}

	return styles.Pane{
		Title:   "Replace",
		Width:   m.width,
		Height:  m.layout.replaceHeight,
		Focused: m.focus == focusReplacement,
	}.Render(strings.Join(lines, "\n"))
}

func (m Model) renderTable() string {
	status := ""
	if n := m.table.Len(); n > 0 {
		status = fmt.Sprintf("%d/%d", m.table.SelectedIndex()+1, n)
	}
	return styles.Pane{
		Title:   "Matches",
		Status:  status,
		Width:   m.width,
		Height:  m.layout.tableHeight,
		Focused: m.focus == focusTable,
	}.Render(m.table.View())
}

func (m Model) renderStatusBar() string {
	var parts []string
	if m.snapshot.Input.Pattern != "" {
		parts = append(parts, styles.Pluralize(len(m.snapshot.Matches), "match", "matches"))
		parts = append(parts, formatElapsed(m.snapshot.Elapsed))
		if m.snapshot.CacheHit {
			parts = append(parts, "cached")
		}
	}
	if m.snapshot.Flags.String() != "" {
		parts = append(parts, "/"+m.snapshot.Flags.String())
	}

	var help []string
	for _, b := range keys.App.ShortHelp() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}

	hint := strings.Join(help, "  ")
	if m.focus == focusPattern {
		if desc := m.pattern.TokenHint(); desc != "" {
			hint = desc
		}
	}

	left := strings.Join(parts, " · ")
	right := styles.HintStyle.Render(hint)
	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return styles.StatusBarStyle.Render(styles.TruncateString(left, max(m.width-2, 1)))
	}
	return styles.StatusBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderTooltip() string {
	if m.tooltip.index < 0 || m.tooltip.index >= len(m.snapshot.Matches) {
		return ""
	}
	text := highlight.Tooltip(m.snapshot.Matches[m.tooltip.index])
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Foreground(styles.TextPrimaryColor).
		Padding(0, 1).
		Render(wordwrap.String(text, tooltipMaxWidth))
}

func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
	}
	return d.Round(time.Millisecond).String()
}
