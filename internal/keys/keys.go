// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// AppKeyMap defines the global keybindings of the tester screen.
type AppKeyMap struct {
	// Focus
	NextPane key.Binding
	PrevPane key.Binding

	// Panels
	ToggleReplace key.Binding
	ToggleTable   key.Binding
	ToggleStatus  key.Binding

	// Actions
	Save        key.Binding
	SaveFlags   key.Binding
	EditPalette key.Binding

	// Overlays
	Help key.Binding
	Logs key.Binding

	// General
	Escape key.Binding
	Quit   key.Binding
}

// MatchTableKeyMap defines keybindings active while the match table has focus.
type MatchTableKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Tooltip key.Binding
}

// SubjectKeyMap defines scrolling keys of the subject editor that do not
// move the caret.
type SubjectKeyMap struct {
	PageUp   key.Binding
	PageDown key.Binding
}

// HelpKeyMap defines keybindings inside the cheat sheet overlay.
type HelpKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Close key.Binding
}

// App holds the global keybindings.
var App = AppKeyMap{
	NextPane: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next pane"),
	),
	PrevPane: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous pane"),
	),
	ToggleReplace: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "toggle replace"),
	),
	ToggleTable: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "toggle match table"),
	),
	ToggleStatus: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "toggle status bar"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save to library"),
	),
	SaveFlags: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "make flags the default"),
	),
	EditPalette: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("f2", "edit palette"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "regex cheat sheet"),
	),
	Logs: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "debug logs"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+q"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// MatchTable holds the match table keybindings.
var MatchTable = MatchTableKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "previous match"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next match"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first match"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last match"),
	),
	Tooltip: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "match details"),
	),
}

// Subject holds the subject editor scroll keys.
var Subject = SubjectKeyMap{
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
}

// Help holds the cheat sheet keybindings.
var Help = HelpKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "scroll down"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "f1"),
		key.WithHelp("esc", "close"),
	),
}

// ShortHelp returns keybindings for the status bar.
func (k AppKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.ToggleReplace, k.Help, k.Quit}
}

// FullHelp returns keybindings grouped for the help overlay.
func (k AppKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPane, k.PrevPane},
		{k.ToggleReplace, k.ToggleTable, k.ToggleStatus},
		{k.Save, k.SaveFlags, k.EditPalette},
		{k.Help, k.Logs, k.Escape, k.Quit},
	}
}

// ShortHelp returns the match table bindings.
func (k MatchTableKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Tooltip}
}

// FullHelp returns the match table bindings in one group.
func (k MatchTableKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Top, k.Bottom, k.Tooltip}}
}
