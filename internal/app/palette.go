package app

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/rexy/internal/config"
	"github.com/zjrosen/rexy/internal/highlight"
	"github.com/zjrosen/rexy/internal/log"
	"github.com/zjrosen/rexy/internal/pubsub"
	"github.com/zjrosen/rexy/internal/ui/colorpicker"
	"github.com/zjrosen/rexy/internal/ui/toaster"
)

// paletteSavedMsg reports the result of writing highlight.palette.
type paletteSavedMsg struct {
	palette []string
	err     error
}

func (m *Model) openPalette() {
	m.showPalette = true
	m.palette = colorpicker.New(m.cfg.Highlight.Palette).SetSize(m.width, m.height)
}

// applyPalette recolors the subject and the match table with hex. Slots are
// reassigned by evaluating again, since group n maps to slot n % size.
func (m Model) applyPalette(hex []string) (tea.Model, tea.Cmd) {
	p, err := highlight.ParsePalette(hex)
	if err != nil {
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(err.Error(), toaster.StyleError)
		return m, cmd
	}
	m.renderer.SetPalette(p)
	m.table.SetPalette(p)
	m.applySnapshot(m.session.Reevaluate(pubsub.UpdatedEvent))
	return m, nil
}

func (m Model) savePaletteCmd(palette []string) tea.Cmd {
	path := m.configPath
	return func() tea.Msg {
		if path == "" {
			return paletteSavedMsg{palette: palette, err: errors.New("no config file")}
		}
		return paletteSavedMsg{palette: palette, err: config.SavePalette(path, palette)}
	}
}

func (m Model) handlePaletteSaved(msg paletteSavedMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg.err != nil {
		log.ErrorErr(log.CatConfig, "failed to save palette", msg.err)
		m.toaster, cmd = m.toaster.Show("Could not save palette: "+msg.err.Error(), toaster.StyleError)
		return m, cmd
	}
	m.cfg.Highlight.Palette = msg.palette
	text := "Palette reset to theme colors"
	if len(msg.palette) > 0 {
		text = fmt.Sprintf("Palette saved (%d colors)", len(msg.palette))
	}
	m.toaster, cmd = m.toaster.Show(text, toaster.StyleSuccess)
	return m, cmd
}
