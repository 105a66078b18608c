// Package styles contains Lip Gloss style definitions.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// Pane describes a bordered panel: ╭─ Title ──── status ─╮
type Pane struct {
	Title   string
	Status  string // right-aligned in the top border, may be empty
	Width   int
	Height  int
	Focused bool

	// StatusColor colors the status text. Nil uses TextSecondaryColor.
	StatusColor lipgloss.TerminalColor
}

// Render draws content inside the pane. Content lines are clipped or
// padded to the inner width and height.
func (p Pane) Render(content string) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if p.Focused {
		borderColor = BorderHighlightFocusColor
	}
	var statusColor lipgloss.TerminalColor = TextSecondaryColor
	if p.StatusColor != nil {
		statusColor = p.StatusColor
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(OverlayTitleColor).Bold(p.Focused)
	statusStyle := lipgloss.NewStyle().Foreground(statusColor)

	innerWidth := max(p.Width-2, 1)
	contentHeight := max(p.Height-2, 1)

	top := buildTopBorder(p.Title, p.Status, innerWidth, borderStyle, titleStyle, statusStyle)
	bottom := borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight)

	constrained := lipgloss.NewStyle().
		MaxWidth(innerWidth).
		MaxHeight(contentHeight).
		Render(content)
	contentLines := strings.Split(constrained, "\n")

	var b strings.Builder
	b.WriteString(top)
	for i := range contentHeight {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		b.WriteString("\n")
		b.WriteString(borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical))
	}
	b.WriteString("\n")
	b.WriteString(bottom)
	return b.String()
}

// buildTopBorder creates the top border with the title on the left and the
// status on the right. The status is dropped first when space runs out,
// then the title is truncated.
func buildTopBorder(title, status string, innerWidth int, borderStyle, titleStyle, statusStyle lipgloss.Style) string {
	plain := func() string {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}
	// "─ " + title + " " needs at least 4 cells.
	if title == "" || innerWidth < 4 {
		return plain()
	}

	displayTitle := TruncateString(title, innerWidth-4)
	used := 3 + lipgloss.Width(displayTitle)

	// " status ─" on the right.
	statusWidth := lipgloss.Width(status)
	showStatus := status != "" && used+statusWidth+3 <= innerWidth
	if showStatus {
		used += statusWidth + 3
	}

	var b strings.Builder
	b.WriteString(borderStyle.Render(borderTopLeft + borderHorizontal + " "))
	b.WriteString(titleStyle.Render(displayTitle))
	b.WriteString(borderStyle.Render(" " + strings.Repeat(borderHorizontal, max(innerWidth-used, 0))))
	if showStatus {
		b.WriteString(borderStyle.Render(" "))
		b.WriteString(statusStyle.Render(status))
		b.WriteString(borderStyle.Render(" " + borderHorizontal))
	}
	b.WriteString(borderStyle.Render(borderTopRight))
	return b.String()
}
