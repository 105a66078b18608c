// Package app contains the root application model.
package app

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/rexy/internal/config"
	"github.com/zjrosen/rexy/internal/highlight"
	"github.com/zjrosen/rexy/internal/keys"
	"github.com/zjrosen/rexy/internal/library"
	"github.com/zjrosen/rexy/internal/log"
	"github.com/zjrosen/rexy/internal/pubsub"
	"github.com/zjrosen/rexy/internal/tester"
	"github.com/zjrosen/rexy/internal/ui/backdrop"
	"github.com/zjrosen/rexy/internal/ui/colorpicker"
	"github.com/zjrosen/rexy/internal/ui/help"
	"github.com/zjrosen/rexy/internal/ui/logoverlay"
	"github.com/zjrosen/rexy/internal/ui/matchtable"
	"github.com/zjrosen/rexy/internal/ui/patterninput"
	"github.com/zjrosen/rexy/internal/ui/toaster"
	"github.com/zjrosen/rexy/internal/watcher"
)

// focus identifies the pane receiving key input.
type focus int

const (
	focusPattern focus = iota
	focusFlags
	focusSubject
	focusReplacement
	focusTable
)

// Options configures a new application model.
type Options struct {
	Config     config.Config
	ConfigPath string
	Evaluator  *tester.Evaluator
	// Library stores saved patterns. Nil disables saving.
	Library *library.Service
	Input   tester.Input

	// SubjectPath is the file the subject was loaded from, if any. With
	// Watch set the subject reloads when the file changes.
	SubjectPath string
	Watch       bool

	// DebugMode enables the log overlay (ctrl+x).
	DebugMode bool
}

// evaluateMsg fires after the typing debounce. Only the latest seq counts.
type evaluateMsg struct {
	seq int
}

// tooltip is an open match tooltip anchored at a screen cell.
type tooltip struct {
	index int
	x, y  int
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string
	session    *tester.Session
	snapshot   tester.Snapshot
	renderer   *highlight.Renderer
	library    *library.Service

	// Panes
	pattern     patterninput.Model
	flags       textinput.Model
	subject     backdrop.Model
	replacement textinput.Model
	table       matchtable.Model
	focus       focus

	showReplace bool
	showTable   bool
	showStatus  bool

	// Overlays
	tooltip  *tooltip
	prompt   *savePrompt
	help     help.Model
	showHelp bool
	toaster  toaster.Model

	palette     colorpicker.Model
	showPalette bool

	debugMode    bool
	logOverlay   logoverlay.Model
	logListenCmd tea.Cmd

	evalSeq int
	layout  layout

	// Subject file watcher (pubsub-based)
	subjectPath     string
	watcherHandle   *watcher.Watcher
	watcherCtx      context.Context
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.Reload]

	width  int
	height int
}

// New creates the application model and evaluates the initial input.
func New(opts Options) Model {
	cfg := opts.Config
	evaluator := opts.Evaluator
	if evaluator == nil {
		evaluator = tester.NewEvaluator()
	}

	var (
		watcherHandle   *watcher.Watcher
		watcherCtx      context.Context
		watcherCancel   context.CancelFunc
		watcherListener *pubsub.ContinuousListener[watcher.Reload]
	)
	if opts.Watch && opts.SubjectPath != "" {
		w, err := watcher.New(watcher.Config{Path: opts.SubjectPath, DebounceDur: cfg.Watch.Debounce})
		if err == nil {
			if err := w.Start(); err == nil {
				watcherHandle = w
				watcherCtx, watcherCancel = context.WithCancel(context.Background())
				watcherListener = pubsub.NewContinuousListener(watcherCtx, w.Broker())
			} else {
				log.Warn(log.CatWatcher, "failed to start watcher", "error", err)
				_ = w.Stop()
			}
		} else {
			log.Warn(log.CatWatcher, "failed to create watcher", "error", err)
		}
	}

	pattern := patterninput.New()
	pattern.SetPlaceholder("type a pattern")
	pattern.SetValue(opts.Input.Pattern)
	pattern.CursorEnd()

	flags := newTextInput("", "gimsuy")
	flags.CharLimit = 16
	flags.SetValue(opts.Input.Flags)

	replacement := newTextInput("→ ", "replacement, e.g. [$1]")
	showReplace := opts.Input.Replacement != nil
	if showReplace {
		replacement.SetValue(*opts.Input.Replacement)
	}

	subject := backdrop.New(evaluator.Renderer())
	subject.SetValue(opts.Input.Subject)

	overlay := logoverlay.New()
	var logListenCmd tea.Cmd
	if opts.DebugMode {
		logListenCmd = overlay.StartListening()
	}

	m := Model{
		cfg:             cfg,
		configPath:      opts.ConfigPath,
		session:         tester.NewSession(evaluator, opts.Input),
		renderer:        evaluator.Renderer(),
		library:         opts.Library,
		pattern:         pattern,
		flags:           flags,
		subject:         subject,
		replacement:     replacement,
		table:           matchtable.New(evaluator.Renderer().Palette()),
		showReplace:     showReplace,
		showTable:       cfg.UI.ShowMatchTable,
		showStatus:      cfg.UI.ShowStatusBar,
		help:            help.New(cfg.UI.MarkdownStyle),
		toaster:         toaster.New(),
		palette:         colorpicker.New(cfg.Highlight.Palette),
		debugMode:       opts.DebugMode,
		logOverlay:      overlay,
		logListenCmd:    logListenCmd,
		subjectPath:     opts.SubjectPath,
		watcherHandle:   watcherHandle,
		watcherCtx:      watcherCtx,
		watcherCancel:   watcherCancel,
		watcherListener: watcherListener,
	}
	m.setFocus(focusPattern)
	m.applySnapshot(m.session.Snapshot())
	return m
}

func newTextInput(prompt, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Init implements tea.Model. It starts the watcher and log listeners.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	if m.logListenCmd != nil {
		cmds = append(cmds, m.logListenCmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logOverlay.SetSize(msg.Width, msg.Height)
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.palette = m.palette.SetSize(msg.Width, msg.Height)
		m.relayout()
		return m, nil

	case log.LogEvent:
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd

	case logoverlay.CloseMsg:
		m.logOverlay.Hide()
		return m, nil

	case help.CloseMsg:
		m.showHelp = false
		return m, nil

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case evaluateMsg:
		if msg.seq == m.evalSeq {
			m.evaluate()
		}
		return m, nil

	case savedMsg:
		return m.handleSaved(msg)

	case flagsSavedMsg:
		return m.handleFlagsSaved(msg)

	case colorpicker.ChangedMsg:
		return m.applyPalette(msg.Palette)

	case colorpicker.SaveMsg:
		m.showPalette = false
		return m, m.savePaletteCmd(msg.Palette)

	case colorpicker.CloseMsg:
		m.showPalette = false
		return m.applyPalette(m.cfg.Highlight.Palette)

	case paletteSavedMsg:
		return m.handlePaletteSaved(msg)

	case pubsub.Event[watcher.Reload]:
		return m.handleReload(msg.Payload)

	case backdrop.MatchClickedMsg:
		m.table.Select(msg.Index)
		m.tooltip = &tooltip{index: msg.Index, x: msg.X, y: msg.Y}
		return m, nil

	case matchtable.TooltipMsg:
		if msg.Line < 0 {
			return m, nil
		}
		m.tooltip = &tooltip{index: msg.Index, x: 2, y: m.layout.tableTop + 1 + msg.Line}
		return m, nil

	case matchtable.SelectMsg:
		if m.tooltip != nil {
			m.tooltip = nil
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.debugMode && key.Matches(msg, keys.App.Logs) {
		m.logOverlay.Toggle()
		return m, nil
	}
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}
	if key.Matches(msg, keys.App.Quit) {
		return m, tea.Quit
	}
	if m.showHelp {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}
	if m.showPalette {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}
	if m.prompt != nil {
		return m.updatePrompt(msg)
	}
	if m.tooltip != nil {
		m.tooltip = nil
		if key.Matches(msg, keys.App.Escape) {
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, keys.App.Help):
		m.showHelp = true
		m.help = m.help.SetSize(m.width, m.height)
		return m, nil
	case key.Matches(msg, keys.App.NextPane):
		m.cycleFocus(1)
		return m, nil
	case key.Matches(msg, keys.App.PrevPane):
		m.cycleFocus(-1)
		return m, nil
	case key.Matches(msg, keys.App.ToggleReplace):
		m.showReplace = !m.showReplace
		if m.showReplace {
			m.setFocus(focusReplacement)
		} else if m.focus == focusReplacement {
			m.setFocus(focusSubject)
		}
		m.relayout()
		return m, m.scheduleEvaluate()
	case key.Matches(msg, keys.App.ToggleTable):
		m.showTable = !m.showTable
		if !m.showTable && m.focus == focusTable {
			m.setFocus(focusSubject)
		}
		m.relayout()
		return m, nil
	case key.Matches(msg, keys.App.ToggleStatus):
		m.showStatus = !m.showStatus
		m.relayout()
		return m, nil
	case key.Matches(msg, keys.App.Save):
		return m.openPrompt()
	case key.Matches(msg, keys.App.SaveFlags):
		return m, m.saveFlagsCmd()
	case key.Matches(msg, keys.App.EditPalette):
		m.openPalette()
		return m, nil
	}

	return m.updateFocused(msg)
}

// updateFocused routes a key to the focused pane and schedules an
// evaluation when the input changed.
func (m Model) updateFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	before := m.currentInput()

	switch m.focus {
	case focusPattern:
		m.pattern, cmd = m.pattern.Update(msg)
		m.relayout()
	case focusFlags:
		m.flags, cmd = m.flags.Update(msg)
	case focusSubject:
		m.subject, cmd = m.subject.Update(msg)
	case focusReplacement:
		m.replacement, cmd = m.replacement.Update(msg)
	case focusTable:
		m.table, cmd = m.table.Update(msg)
	}

	if inputChanged(before, m.currentInput()) {
		return m, tea.Batch(cmd, m.scheduleEvaluate())
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}
	if m.showHelp {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}
	if m.prompt != nil || m.showPalette {
		return m, nil
	}

	press := msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress
	if press {
		m.tooltip = nil
	}

	inTable := m.showTable && msg.Y >= m.layout.tableTop && msg.Y < m.layout.tableTop+m.layout.tableHeight
	inSubject := msg.Y >= m.layout.subjectTop && msg.Y < m.layout.subjectTop+m.layout.subjectHeight

	var cmd tea.Cmd
	switch {
	case inTable:
		if press {
			m.setFocus(focusTable)
		}
		m.table, cmd = m.table.Update(msg)
	case inSubject:
		if press {
			m.setFocus(focusSubject)
		}
		m.subject, cmd = m.subject.Update(msg)
	case press && msg.Y < m.layout.patternHeight:
		if msg.X >= m.layout.patternWidth {
			m.setFocus(focusFlags)
		} else {
			m.setFocus(focusPattern)
		}
	}
	return m, cmd
}

func (m Model) handleReload(r watcher.Reload) (tea.Model, tea.Cmd) {
	var listen tea.Cmd
	if m.watcherListener != nil {
		listen = m.watcherListener.Listen()
	}
	if r.Err != nil {
		log.Warn(log.CatWatcher, "subject reload failed", "path", r.Path, "error", r.Err)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Reload failed: "+r.Err.Error(), toaster.StyleError)
		return m, tea.Batch(cmd, listen)
	}
	if r.Content == m.subject.Value() {
		return m, listen
	}

	m.subject.SetValue(r.Content)
	m.evaluate()
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show("Reloaded "+filepath.Base(r.Path), toaster.StyleInfo)
	return m, tea.Batch(cmd, listen)
}

// visibleFoci lists the panes that can take focus, in tab order.
func (m Model) visibleFoci() []focus {
	out := []focus{focusPattern, focusFlags, focusSubject}
	if m.showReplace {
		out = append(out, focusReplacement)
	}
	if m.showTable {
		out = append(out, focusTable)
	}
	return out
}

func (m *Model) cycleFocus(delta int) {
	foci := m.visibleFoci()
	idx := 0
	for i, f := range foci {
		if f == m.focus {
			idx = i
		}
	}
	m.setFocus(foci[(idx+delta+len(foci))%len(foci)])
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.pattern.Blur()
	m.flags.Blur()
	m.subject.Blur()
	m.replacement.Blur()
	m.table.Blur()

	switch f {
	case focusPattern:
		m.pattern.Focus()
	case focusFlags:
		m.flags.Focus()
	case focusSubject:
		m.subject.Focus()
	case focusReplacement:
		m.replacement.Focus()
	case focusTable:
		m.table.Focus()
	}
}

// currentInput collects the pane values into an evaluation input.
func (m Model) currentInput() tester.Input {
	in := tester.Input{
		Pattern: m.pattern.Value(),
		Flags:   m.flags.Value(),
		Subject: m.subject.Value(),
	}
	if m.showReplace {
		r := m.replacement.Value()
		in.Replacement = &r
	}
	return in
}

func inputChanged(a, b tester.Input) bool {
	if a.Pattern != b.Pattern || a.Flags != b.Flags || a.Subject != b.Subject {
		return true
	}
	if (a.Replacement == nil) != (b.Replacement == nil) {
		return true
	}
	return a.Replacement != nil && *a.Replacement != *b.Replacement
}

// scheduleEvaluate evaluates after the typing debounce, or immediately when
// no debounce is configured.
func (m *Model) scheduleEvaluate() tea.Cmd {
	m.evalSeq++
	d := m.cfg.UI.Debounce
	if d <= 0 {
		m.evaluate()
		return nil
	}
	seq := m.evalSeq
	return tea.Tick(d, func(time.Time) tea.Msg { return evaluateMsg{seq: seq} })
}

func (m *Model) evaluate() {
	m.applySnapshot(m.session.Load(m.currentInput()))
}

func (m *Model) applySnapshot(snap tester.Snapshot) {
	m.snapshot = snap
	m.subject.SetHighlights(snap.Subject)
	m.table.SetMatches(snap.Matches)
	if m.tooltip != nil && m.tooltip.index >= len(snap.Matches) {
		m.tooltip = nil
	}
	m.relayout()
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.logOverlay.StopListening()
	m.session.Close()

	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return nil
}
