package highlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/rexy/internal/regex"
	"github.com/zjrosen/rexy/internal/ui/styles"
)

// Token styles for pattern syntax coloring.
// Uses centralized color constants from the styles package.
var (
	// EscapeStyle for \d, \., \\ ...
	EscapeStyle lipgloss.Style
	// CharClassStyle for [a-z] and friends
	CharClassStyle lipgloss.Style
	// GroupStyle for (...) groups
	GroupStyle lipgloss.Style
	// QuantifierStyle for * + ? {m,n}
	QuantifierStyle lipgloss.Style
	// OperatorStyle for ^ $ |
	OperatorStyle lipgloss.Style
	// DefaultStyle for literal runs
	DefaultStyle lipgloss.Style

	// DiffInsertStyle and DiffDeleteStyle color the replacement preview.
	DiffInsertStyle lipgloss.Style
	DiffDeleteStyle lipgloss.Style
)

func init() {
	RebuildStyles()
	styles.RegisterStyleRebuilder(RebuildStyles)
}

// RebuildStyles recreates the token styles from the current theme colors.
func RebuildStyles() {
	EscapeStyle = lipgloss.NewStyle().Foreground(styles.RegexEscapeColor)
	CharClassStyle = lipgloss.NewStyle().Foreground(styles.RegexCharClassColor)
	GroupStyle = lipgloss.NewStyle().Foreground(styles.RegexGroupColor).Bold(true)
	QuantifierStyle = lipgloss.NewStyle().Foreground(styles.RegexQuantifierColor)
	OperatorStyle = lipgloss.NewStyle().Foreground(styles.RegexOperatorColor).Bold(true)
	DefaultStyle = lipgloss.NewStyle()

	DiffInsertStyle = lipgloss.NewStyle().Foreground(styles.DiffInsertColor).Underline(true)
	DiffDeleteStyle = lipgloss.NewStyle().Foreground(styles.DiffDeleteColor).Strikethrough(true)
}

// TokenStyle returns the style for a pattern token kind.
func TokenStyle(kind regex.TokenKind) lipgloss.Style {
	switch kind {
	case regex.TokenEscape:
		return EscapeStyle
	case regex.TokenCharClass:
		return CharClassStyle
	case regex.TokenGroup:
		return GroupStyle
	case regex.TokenQuantifier:
		return QuantifierStyle
	case regex.TokenOperator:
		return OperatorStyle
	default:
		return DefaultStyle
	}
}

// SlotStyle returns the style for a highlighted subject span in slot.
func (p Palette) SlotStyle(slot int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(styles.MatchTextColor).
		Background(p.Color(slot))
}

// RenderPatternANSI renders pattern spans with syntax colors.
func RenderPatternANSI(mt MarkedText) string {
	var b strings.Builder
	for _, s := range mt {
		b.WriteString(renderStyled(TokenStyle(s.Token), s.Text))
	}
	return b.String()
}

// Decorator wraps the rendered form of a span, for example to mark it as a
// mouse zone. It receives the span and its styled text.
type Decorator func(s Span, rendered string) string

// RenderANSI renders subject spans: plain spans unstyled, highlight spans
// over their slot color. decorate may be nil.
func (r *Renderer) RenderANSI(mt MarkedText, decorate Decorator) string {
	palette := r.Palette()
	var b strings.Builder
	for _, s := range mt {
		var rendered string
		if s.Kind == HighlightSpan {
			rendered = renderStyled(palette.SlotStyle(s.Slot), s.Text)
		} else {
			rendered = s.Text
		}
		if decorate != nil && s.Kind == HighlightSpan {
			rendered = decorate(s, rendered)
		}
		b.WriteString(rendered)
	}
	return b.String()
}

// renderStyled styles text line by line so newlines inside a span are not
// padded into a block and the text keeps its exact layout.
func renderStyled(style lipgloss.Style, text string) string {
	if text == "" {
		return ""
	}
	style = style.TabWidth(lipgloss.NoTabConversion)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
