package patterninput

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"pgregory.net/rapid"
)

func init() {
	// Force ANSI color output in tests (lipgloss disables colors when no TTY)
	lipgloss.SetColorProfile(termenv.ANSI256)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func focused(value string) Model {
	m := New()
	m.Focus()
	m.SetValue(value)
	m.CursorEnd()
	return m
}

func TestNew_DefaultValues(t *testing.T) {
	m := New()

	if m.Value() != "" {
		t.Errorf("expected empty value, got %q", m.Value())
	}
	if m.Cursor() != 0 {
		t.Errorf("expected cursor at 0, got %d", m.Cursor())
	}
	if m.Focused() {
		t.Error("expected not focused by default")
	}
	if m.Width() != 40 {
		t.Errorf("expected width 40, got %d", m.Width())
	}
}

func TestSetValue_ClampsCursor(t *testing.T) {
	m := New()
	m.SetValue("hello")
	m.SetCursor(5)
	m.SetValue("hi")

	if m.Cursor() != 2 {
		t.Errorf("expected cursor clamped to 2, got %d", m.Cursor())
	}
}

func TestSetValue_DropsNewlines(t *testing.T) {
	m := New()
	m.SetValue("a\nb\r\nc")

	if m.Value() != "abc" {
		t.Errorf("expected newlines removed, got %q", m.Value())
	}
}

func TestSetCursor_ClampsToRange(t *testing.T) {
	m := New()
	m.SetValue("test")

	m.SetCursor(-5)
	if m.Cursor() != 0 {
		t.Errorf("expected 0 for negative, got %d", m.Cursor())
	}
	m.SetCursor(100)
	if m.Cursor() != 4 {
		t.Errorf("expected 4 (length), got %d", m.Cursor())
	}
}

func TestUpdate_IgnoredWhenBlurred(t *testing.T) {
	m := New()
	m, _ = m.Update(runes("x"))
	if m.Value() != "" {
		t.Errorf("blurred input should not accept keys, got %q", m.Value())
	}
}

func TestUpdate_InsertAndCursor(t *testing.T) {
	m := focused("")
	m, _ = m.Update(runes(`\d`))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m, _ = m.Update(runes("+"))

	if m.Value() != `\d +` {
		t.Errorf("unexpected value %q", m.Value())
	}
	if m.Cursor() != 4 {
		t.Errorf("expected cursor 4, got %d", m.Cursor())
	}
}

func TestUpdate_MultibyteRunes(t *testing.T) {
	m := focused("日本")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(runes("語"))

	if m.Value() != "日語本" {
		t.Errorf("expected rune-level insert, got %q", m.Value())
	}
	if m.Cursor() != 2 {
		t.Errorf("expected cursor 2, got %d", m.Cursor())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.Value() != "日本" {
		t.Errorf("expected rune-level delete, got %q", m.Value())
	}
}

func TestUpdate_Delete(t *testing.T) {
	m := focused("abc")
	m.SetCursor(1)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDelete})

	if m.Value() != "ac" || m.Cursor() != 1 {
		t.Errorf("got %q cursor %d", m.Value(), m.Cursor())
	}
}

func TestUpdate_KillKeys(t *testing.T) {
	m := focused("foo bar")
	m.SetCursor(3)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	if m.Value() != "foo" {
		t.Errorf("ctrl+k: got %q", m.Value())
	}

	m = focused("foo bar")
	m.SetCursor(4)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	if m.Value() != "bar" || m.Cursor() != 0 {
		t.Errorf("ctrl+u: got %q cursor %d", m.Value(), m.Cursor())
	}

	m = focused("foo bar")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	if m.Value() != "foo " {
		t.Errorf("ctrl+w: got %q", m.Value())
	}
}

func TestUpdate_WordNavigation(t *testing.T) {
	m := focused(`(\w+)@(\w+)`)
	m.SetCursor(0)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	if m.Cursor() != 3 {
		t.Errorf("expected cursor after first word at 3, got %d", m.Cursor())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f"), Alt: true})
	if m.Cursor() != 9 {
		t.Errorf("expected cursor 9, got %d", m.Cursor())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	if m.Cursor() != 8 {
		t.Errorf("expected cursor 8, got %d", m.Cursor())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	if m.Cursor() != 0 {
		t.Errorf("expected home at 0, got %d", m.Cursor())
	}
}

func TestView_Placeholder(t *testing.T) {
	m := New()
	m.SetPlaceholder("type a pattern")

	if !strings.Contains(ansi.Strip(m.View()), "type a pattern") {
		t.Errorf("expected placeholder, got %q", m.View())
	}
}

func TestView_PreservesText(t *testing.T) {
	m := focused(`^(?<y>\d{4})-[a-z]+$`)

	got := ansi.Strip(m.View())
	if got != `^(?<y>\d{4})-[a-z]+$ ` {
		t.Errorf("stripped view should be the pattern plus the end cursor, got %q", got)
	}
}

func TestView_CursorMidToken(t *testing.T) {
	m := focused(`a\d`)
	m.SetCursor(2)

	view := m.View()
	if !strings.Contains(view, cursorOn) {
		t.Fatal("expected cursor escape in view")
	}
	if ansi.Strip(view) != `a\d` {
		t.Errorf("cursor inside a token must not change the text, got %q", ansi.Strip(view))
	}
}

func TestView_Colored(t *testing.T) {
	m := New()
	m.SetValue(`\d+`)

	if !strings.Contains(m.View(), "\x1b[") {
		t.Error("expected syntax colors in view")
	}
}

func TestView_Wraps(t *testing.T) {
	m := New()
	m.SetWidth(10)
	m.SetValue(strings.Repeat("a", 25))

	if m.Height() != 3 {
		t.Errorf("expected 3 lines, got %d", m.Height())
	}
	for _, line := range strings.Split(m.View(), "\n") {
		if ansi.StringWidth(line) > 10 {
			t.Errorf("line exceeds width: %q", line)
		}
	}
}

func TestUpdate_EditingKeepsCursorInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := focused(rapid.StringMatching(`[a-z\\()\[\]+*日]{0,12}`).Draw(t, "initial"))
		m.SetWidth(200)
		keys := []tea.KeyMsg{
			{Type: tea.KeyLeft}, {Type: tea.KeyRight}, {Type: tea.KeyBackspace},
			{Type: tea.KeyDelete}, {Type: tea.KeyHome}, {Type: tea.KeyEnd},
			{Type: tea.KeyCtrlW}, {Type: tea.KeyCtrlF}, {Type: tea.KeyCtrlB},
			runes("x"), runes("語"),
		}
		steps := rapid.SliceOfN(rapid.SampledFrom(keys), 0, 30).Draw(t, "keys")
		for _, k := range steps {
			m, _ = m.Update(k)
			n := len([]rune(m.Value()))
			if m.Cursor() < 0 || m.Cursor() > n {
				t.Fatalf("cursor %d out of range for %q", m.Cursor(), m.Value())
			}
		}
		if got := ansi.Strip(m.View()); strings.TrimSuffix(got, " ") != m.Value() {
			t.Fatalf("view %q does not match value %q", got, m.Value())
		}
	})
}

func TestTokenHint(t *testing.T) {
	tests := []struct {
		value  string
		cursor int
		want   string
	}{
		{`a\d+`, 1, "escape: digit"},
		{`a\d+`, 2, "escape: digit"},
		{`a\d+`, 4, "quantifier: one or more"},
		{`ab`, 1, ""},
		{`(?<y>a)b`, 8, ""},
		{`(?<y>a)b`, 7, `named group "y"`},
		{``, 0, ""},
	}
	for _, tt := range tests {
		m := focused(tt.value)
		m.SetCursor(tt.cursor)
		if got := m.TokenHint(); got != tt.want {
			t.Errorf("TokenHint(%q at %d) = %q, want %q", tt.value, tt.cursor, got, tt.want)
		}
	}
}
