// Package help contains the regex cheat sheet overlay.
package help

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/rexy/internal/keys"
	"github.com/zjrosen/rexy/internal/log"
	"github.com/zjrosen/rexy/internal/ui/markdown"
	"github.com/zjrosen/rexy/internal/ui/overlay"
	"github.com/zjrosen/rexy/internal/ui/styles"
)

//go:embed cheatsheet.md
var cheatSheet string

// CheatSheet returns the raw markdown of the regex reference.
func CheatSheet() string {
	return cheatSheet
}

const (
	boxMaxWidth = 90
	boxMinWidth = 40
	// chromeHeight covers the title, dividers, footer and border.
	chromeHeight = 6
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			PaddingLeft(2)

	dividerStyle = lipgloss.NewStyle().
			Foreground(styles.OverlayBorderColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor)

	keyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Width(11)

	descStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			PaddingLeft(2)
)

// CloseMsg is sent when the cheat sheet is dismissed.
type CloseMsg struct{}

// Model holds the cheat sheet state.
type Model struct {
	keys     keys.HelpKeyMap
	style    string
	width    int
	height   int
	viewport viewport.Model
}

// New creates a cheat sheet rendered with the given glamour style.
func New(style string) Model {
	return Model{keys: keys.Help, style: style}
}

// SetSize updates dimensions and re-renders the content for the new width.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height

	contentWidth := m.boxWidth() - 4
	vpHeight := max(height-chromeHeight-2, 3)
	yOffset := m.viewport.YOffset
	m.viewport = viewport.New(contentWidth, vpHeight)
	m.viewport.SetContent(m.renderBody(contentWidth))
	m.viewport.SetYOffset(yOffset)
	return m
}

// Update scrolls the sheet and emits CloseMsg on the close keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Close):
			return m, func() tea.Msg { return CloseMsg{} }
		case key.Matches(msg, m.keys.Up):
			m.viewport.ScrollUp(1)
		case key.Matches(msg, m.keys.Down):
			m.viewport.ScrollDown(1)
		case msg.String() == "pgup":
			m.viewport.PageUp()
		case msg.String() == "pgdown":
			m.viewport.PageDown()
		}
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the help box.
func (m Model) View() string {
	boxWidth := m.boxWidth()
	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Regex Cheat Sheet"))
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.keys.Up.Help().Key + "/" + m.keys.Down.Help().Key + " scroll  " +
		m.keys.Close.Help().Key + " close"))

	return boxStyle.Width(boxWidth).Render(b.String())
}

// Overlay renders the help box centered on top of background.
func (m Model) Overlay(background string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), background)
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m Model) renderBody(width int) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Keybindings"))
	b.WriteString("\n")
	for _, group := range keys.App.FullHelp() {
		for _, binding := range group {
			b.WriteString(renderBinding(binding))
		}
	}
	b.WriteString("\n")

	rendered, err := markdown.Render(cheatSheet, width, m.style)
	if err != nil {
		log.ErrorErr(log.CatUI, "cheat sheet render failed", err)
		b.WriteString(cheatSheet)
		return b.String()
	}
	b.WriteString(strings.TrimRight(rendered, "\n"))
	return b.String()
}

func renderBinding(b key.Binding) string {
	h := b.Help()
	return keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n"
}
