// Package colorpicker provides the palette editor: a list of match color
// slots and a grid of preset colors to assign to them.
package colorpicker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/rexy/internal/ui/overlay"
	"github.com/zjrosen/rexy/internal/ui/styles"
)

// PresetColor represents a named color option.
type PresetColor struct {
	Name string
	Hex  string // e.g., "#FF8787"
}

// BrightPresets are saturated colors that read well behind dark text.
var BrightPresets = []PresetColor{
	{Name: "Red", Hex: "#FF8787"},
	{Name: "Green", Hex: "#73F59F"},
	{Name: "Blue", Hex: "#54A0FF"},
	{Name: "Purple", Hex: "#7D56F4"},
	{Name: "Yellow", Hex: "#FECA57"},
	{Name: "Orange", Hex: "#FF9F43"},
	{Name: "Teal", Hex: "#89DCEB"},
	{Name: "Pink", Hex: "#CBA6F7"},
}

// PastelPresets are softer variants.
var PastelPresets = []PresetColor{
	{Name: "Lime", Hex: "#A3E635"},
	{Name: "Cyan", Hex: "#22D3EE"},
	{Name: "Magenta", Hex: "#E879F9"},
	{Name: "Indigo", Hex: "#818CF8"},
	{Name: "Rose", Hex: "#FB7185"},
	{Name: "Amber", Hex: "#FBBF24"},
	{Name: "Emerald", Hex: "#34D399"},
	{Name: "Sky", Hex: "#38BDF8"},
}

// ClassicPresets are the named web colors.
var ClassicPresets = []PresetColor{
	{Name: "Tomato", Hex: "#FF6347"},
	{Name: "Gold", Hex: "#FFD700"},
	{Name: "Khaki", Hex: "#F0E68C"},
	{Name: "Aqua", Hex: "#00FFFF"},
	{Name: "Plum", Hex: "#DDA0DD"},
	{Name: "Salmon", Hex: "#FA8072"},
	{Name: "Mint", Hex: "#98FF98"},
	{Name: "Silver", Hex: "#C0C0C0"},
}

type mode int

const (
	modeSlots mode = iota
	modeGrid
	modeCustom
)

// maxSlots bounds the palette so the editor fits on screen.
const maxSlots = 16

// Model holds the palette editor state.
type Model struct {
	// slots holds one hex color per palette slot. themed is true while the
	// slots mirror the theme, which saves as an empty palette.
	slots  []string
	themed bool
	slot   int

	columns [][]PresetColor
	column  int
	row     int

	mode      mode
	custom    textinput.Model
	customErr bool

	width  int
	height int
}

// ChangedMsg is sent whenever a slot changes. A nil Palette means the
// theme colors.
type ChangedMsg struct {
	Palette []string
}

// SaveMsg asks the app to persist Palette. A nil Palette removes the
// configured palette.
type SaveMsg struct {
	Palette []string
}

// CloseMsg is sent when the editor is closed without saving.
type CloseMsg struct{}

// New creates an editor for palette. An empty palette starts from the
// theme's match colors.
func New(palette []string) Model {
	ti := textinput.New()
	ti.Placeholder = "#RRGGBB"
	ti.CharLimit = 7
	ti.Width = 10
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)

	m := Model{
		columns: [][]PresetColor{BrightPresets, PastelPresets, ClassicPresets},
		custom:  ti,
	}
	if len(palette) == 0 {
		m.slots = ThemeSlots()
		m.themed = true
	} else {
		m.slots = append([]string(nil), palette...)
	}
	return m
}

// ThemeSlots returns the active theme's match colors.
func ThemeSlots() []string {
	out := make([]string, styles.MatchSlots)
	for i, c := range styles.MatchSlotColors {
		out[i] = c.Dark
	}
	return out
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Palette returns the edited palette, nil while it follows the theme.
func (m Model) Palette() []string {
	if m.themed {
		return nil
	}
	return append([]string(nil), m.slots...)
}

// Slots returns the colors currently shown, theme colors included.
func (m Model) Slots() []string {
	return append([]string(nil), m.slots...)
}

// Slot returns the selected slot index.
func (m Model) Slot() int {
	return m.slot
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode == modeCustom {
			var cmd tea.Cmd
			m.custom, cmd = m.custom.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	switch m.mode {
	case modeGrid:
		return m.updateGrid(keyMsg)
	case modeCustom:
		return m.updateCustom(keyMsg)
	}
	return m.updateSlots(keyMsg)
}

func (m Model) updateSlots(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.slot < len(m.slots)-1 {
			m.slot++
		}
	case "k", "up":
		if m.slot > 0 {
			m.slot--
		}
	case "enter", "l", "right":
		m.mode = modeGrid
		m.selectPreset(m.slots[m.slot])
	case "c":
		return m.openCustom()
	case "a":
		if len(m.slots) < maxSlots {
			theme := ThemeSlots()
			m.slots = append(m.slots[:len(m.slots):len(m.slots)], theme[len(m.slots)%len(theme)])
			m.slot = len(m.slots) - 1
			return m.changed()
		}
	case "x":
		if len(m.slots) > 1 {
			m.slots = append(m.slots[:m.slot:m.slot], m.slots[m.slot+1:]...)
			m.slot = min(m.slot, len(m.slots)-1)
			return m.changed()
		}
	case "r":
		m.slots = ThemeSlots()
		m.slot = min(m.slot, len(m.slots)-1)
		m.themed = true
		return m, changedCmd(nil)
	case "s", "ctrl+s":
		palette := m.Palette()
		return m, func() tea.Msg { return SaveMsg{Palette: palette} }
	case "esc", "q":
		return m, func() tea.Msg { return CloseMsg{} }
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (Model, tea.Cmd) {
	column := m.columns[m.column]
	switch msg.String() {
	case "j", "down":
		if m.row < len(column)-1 {
			m.row++
		}
	case "k", "up":
		if m.row > 0 {
			m.row--
		}
	case "h", "left":
		if m.column > 0 {
			m.column--
			m.row = min(m.row, len(m.columns[m.column])-1)
		}
	case "l", "right":
		if m.column < len(m.columns)-1 {
			m.column++
			m.row = min(m.row, len(m.columns[m.column])-1)
		}
	case "enter":
		m.mode = modeSlots
		return m.assign(column[m.row].Hex)
	case "c":
		return m.openCustom()
	case "esc":
		m.mode = modeSlots
	}
	return m, nil
}

func (m Model) updateCustom(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		hex := strings.TrimSpace(m.custom.Value())
		if !styles.IsValidHexColor(hex) {
			m.customErr = true
			return m, nil
		}
		m.mode = modeSlots
		m.custom.Blur()
		return m.assign(strings.ToUpper(hex))
	case "esc":
		m.mode = modeSlots
		m.customErr = false
		m.custom.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.custom, cmd = m.custom.Update(msg)
	if m.customErr && styles.IsValidHexColor(m.custom.Value()) {
		m.customErr = false
	}
	return m, cmd
}

func (m Model) openCustom() (Model, tea.Cmd) {
	m.mode = modeCustom
	m.customErr = false
	m.custom.SetValue(m.slots[m.slot])
	m.custom.CursorEnd()
	return m, m.custom.Focus()
}

func (m Model) assign(hex string) (Model, tea.Cmd) {
	slots := append([]string(nil), m.slots...)
	slots[m.slot] = hex
	m.slots = slots
	return m.changed()
}

func (m Model) changed() (Model, tea.Cmd) {
	m.themed = false
	return m, changedCmd(m.Palette())
}

func changedCmd(palette []string) tea.Cmd {
	return func() tea.Msg { return ChangedMsg{Palette: palette} }
}

// selectPreset moves the grid cursor to hex, or to the first preset when
// hex is not one of them.
func (m *Model) selectPreset(hex string) {
	for col, presets := range m.columns {
		for row, preset := range presets {
			if strings.EqualFold(preset.Hex, hex) {
				m.column = col
				m.row = row
				return
			}
		}
	}
	m.column = 0
	m.row = 0
}

func slotLabel(i int) string {
	if i == 0 {
		return "match / group 0"
	}
	return fmt.Sprintf("group %d", i)
}

// View renders the editor box.
func (m Model) View() string {
	const width = 52
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)
	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", width))
	hint := lipgloss.NewStyle().PaddingLeft(1).Foreground(styles.TextMutedColor)

	title := "Palette"
	if m.themed {
		title += " (theme)"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")

	for i, hex := range m.slots {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ")
		prefix := " "
		if i == m.slot {
			prefix = styles.SelectionIndicatorStyle.Render(">")
		}
		b.WriteString(fmt.Sprintf("%s%s %-16s %s\n", prefix, swatch, slotLabel(i), hex))
	}
	b.WriteString(divider)
	b.WriteString("\n")

	switch m.mode {
	case modeGrid:
		b.WriteString(m.gridView())
		b.WriteString(hint.Render("enter assign  h/l column  c custom  esc back"))
	case modeCustom:
		line := " Hex " + m.custom.View()
		if styles.IsValidHexColor(m.custom.Value()) {
			line += "  " + lipgloss.NewStyle().Background(lipgloss.Color(m.custom.Value())).Render("    ")
		}
		b.WriteString(line)
		b.WriteString("\n")
		if m.customErr {
			b.WriteString(lipgloss.NewStyle().PaddingLeft(1).Foreground(styles.StatusErrorColor).Render("Invalid hex format"))
			b.WriteString("\n")
		}
		b.WriteString(hint.Render("enter assign  esc back"))
	default:
		b.WriteString(hint.Render("enter pick  c custom  a add  x remove"))
		b.WriteString("\n")
		b.WriteString(hint.Render("r theme colors  s save  esc close"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width).
		Render(b.String())
}

func (m Model) gridView() string {
	const columnWidth = 16
	rows := 0
	for _, col := range m.columns {
		rows = max(rows, len(col))
	}

	var views []string
	for colIdx, presets := range m.columns {
		var col strings.Builder
		for rowIdx := 0; rowIdx < rows; rowIdx++ {
			if rowIdx >= len(presets) {
				col.WriteString(strings.Repeat(" ", columnWidth))
				col.WriteString("\n")
				continue
			}
			preset := presets[rowIdx]
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(preset.Hex)).Render("  ")
			prefix := " "
			if colIdx == m.column && rowIdx == m.row {
				prefix = styles.SelectionIndicatorStyle.Render(">")
			}
			col.WriteString(lipgloss.NewStyle().Width(columnWidth).Render(prefix + swatch + " " + preset.Name))
			col.WriteString("\n")
		}
		views = append(views, col.String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

// Overlay renders the editor centered on background.
func (m Model) Overlay(background string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), background)
}
