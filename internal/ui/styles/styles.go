// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#4C4F69", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#6C6F85", Dark: "#BBBBBB"} // Offsets, counts
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#8C8FA1", Dark: "#777777"} // Input placeholders

	// Semantic color names - Border
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#696969"} // Unfocused borders
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"} // Focused pane

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#73F59F"} // Match counts
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#FECA57"} // Timeouts
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#FF8787"} // Invalid patterns

	// Selection indicator color (used for ">" prefix in lists)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#4C4F69", Dark: "#FFFFFF"}

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#4C4F69", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#8C8C8C"}

	// Pattern syntax highlighting colors (Catppuccin)
	RegexEscapeColor     = lipgloss.AdaptiveColor{Light: "#FE640B", Dark: "#FAB387"} // peach
	RegexCharClassColor  = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"} // teal
	RegexGroupColor      = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // blue
	RegexQuantifierColor = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"} // mauve
	RegexOperatorColor   = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#F38BA8"} // red

	// Match highlight colors. Slot 0 is the full match, slots 1-7 cycle
	// through capture groups.
	MatchTextColor  = lipgloss.AdaptiveColor{Light: "#1E1E2E", Dark: "#1E1E2E"}
	MatchSlotColors = [MatchSlots]lipgloss.AdaptiveColor{
		{Light: "#7287FD", Dark: "#B4BEFE"}, // lavender
		{Light: "#DF8E1D", Dark: "#F9E2AF"}, // yellow
		{Light: "#40A02B", Dark: "#A6E3A1"}, // green
		{Light: "#EA76CB", Dark: "#F5C2E7"}, // pink
		{Light: "#04A5E5", Dark: "#89DCEB"}, // sky
		{Light: "#FE640B", Dark: "#FAB387"}, // peach
		{Light: "#DD7878", Dark: "#F2CDCD"}, // flamingo
		{Light: "#179299", Dark: "#94E2D5"}, // teal
	}

	// Replacement diff colors
	DiffInsertColor = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#A6E3A1"}
	DiffDeleteColor = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#F38BA8"}

	// Selection indicator style (used for ">" prefix in the match table)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true)

	// Hint text
	HintStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
)
