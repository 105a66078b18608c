package app

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/rexy/internal/config"
	"github.com/zjrosen/rexy/internal/keys"
	"github.com/zjrosen/rexy/internal/library"
	"github.com/zjrosen/rexy/internal/log"
	"github.com/zjrosen/rexy/internal/ui/styles"
	"github.com/zjrosen/rexy/internal/ui/toaster"
)

const promptWidth = 44

// savePrompt asks for the library name of the current pattern.
type savePrompt struct {
	name textinput.Model
	// overwrite is set after a save hit an existing name; the next enter
	// replaces it.
	overwrite bool
	err       string
}

// savedMsg carries the result of a library save.
type savedMsg struct {
	name string
	err  error
}

// flagsSavedMsg carries the result of persisting the default flags.
type flagsSavedMsg struct {
	flags string
	err   error
}

func newSavePrompt() *savePrompt {
	ti := textinput.New()
	ti.Prompt = "Name: "
	ti.Placeholder = "e.g. iso-date"
	ti.CharLimit = 64
	ti.Width = promptWidth - 10
	ti.Focus()
	return &savePrompt{name: ti}
}

func (m Model) openPrompt() (tea.Model, tea.Cmd) {
	if m.library == nil {
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Pattern library is not available", toaster.StyleWarn)
		return m, cmd
	}
	m.prompt = newSavePrompt()
	return m, textinput.Blink
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.App.Escape):
		m.prompt = nil
		return m, nil
	case msg.Type == tea.KeyEnter:
		name := strings.TrimSpace(m.prompt.name.Value())
		if name == "" {
			m.prompt.err = "name is required"
			return m, nil
		}
		return m, m.saveCmd(name, m.prompt.overwrite)
	}

	var cmd tea.Cmd
	before := m.prompt.name.Value()
	m.prompt.name, cmd = m.prompt.name.Update(msg)
	if m.prompt.name.Value() != before {
		m.prompt.overwrite = false
		m.prompt.err = ""
	}
	return m, cmd
}

// saveCmd stores the current input in the library.
func (m Model) saveCmd(name string, overwrite bool) tea.Cmd {
	svc := m.library
	in := m.currentInput()
	return func() tea.Msg {
		_, err := svc.Save(context.Background(), library.SaveRequest{
			Name:        name,
			Pattern:     in.Pattern,
			Flags:       in.Flags,
			Subject:     in.Subject,
			Replacement: in.Replacement,
			Overwrite:   overwrite,
		})
		return savedMsg{name: name, err: err}
	}
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		var dup *library.DuplicateNameError
		if errors.As(msg.err, &dup) && m.prompt != nil {
			m.prompt.overwrite = true
			m.prompt.err = "\"" + msg.name + "\" exists, enter again to overwrite"
			return m, nil
		}
		log.ErrorErr(log.CatDB, "failed to save pattern", msg.err, "name", msg.name)
		if m.prompt != nil {
			m.prompt.err = msg.err.Error()
			return m, nil
		}
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Save failed: "+msg.err.Error(), toaster.StyleError)
		return m, cmd
	}

	m.prompt = nil
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show("Saved "+msg.name, toaster.StyleSuccess)
	return m, cmd
}

func (m Model) saveFlagsCmd() tea.Cmd {
	path := m.configPath
	flags := m.flags.Value()
	return func() tea.Msg {
		if path == "" {
			return flagsSavedMsg{flags: flags, err: errors.New("no config file")}
		}
		return flagsSavedMsg{flags: flags, err: config.SaveDefaultFlags(path, flags)}
	}
}

func (m Model) handleFlagsSaved(msg flagsSavedMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg.err != nil {
		log.ErrorErr(log.CatConfig, "failed to save default flags", msg.err)
		m.toaster, cmd = m.toaster.Show("Could not save flags: "+msg.err.Error(), toaster.StyleError)
		return m, cmd
	}
	m.cfg.Regex.DefaultFlags = msg.flags
	label := msg.flags
	if label == "" {
		label = "(none)"
	}
	m.toaster, cmd = m.toaster.Show("Default flags set to "+label, toaster.StyleSuccess)
	return m, cmd
}

func (p *savePrompt) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor)

	lines := []string{titleStyle.Render("Save to library"), "", p.name.View()}
	if p.err != "" {
		lines = append(lines, "", styles.ErrorStyle.Render(p.err))
	}
	hint := "enter save • esc cancel"
	if p.overwrite {
		hint = "enter overwrite • esc cancel"
	}
	lines = append(lines, "", styles.HintStyle.Render(hint))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Padding(0, 1).
		Width(promptWidth).
		Render(strings.Join(lines, "\n"))
}
