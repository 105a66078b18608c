// Package styles contains Lip Gloss style definitions.
package styles

import "fmt"

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextSecondary   ColorToken = "text.secondary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextPlaceholder ColorToken = "text.placeholder"

	// Borders
	TokenBorderDefault   ColorToken = "border.default"
	TokenBorderHighlight ColorToken = "border.highlight"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Selection
	TokenSelectionIndicator ColorToken = "selection.indicator"

	// Overlays
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"

	// Pattern syntax highlighting
	TokenRegexEscape     ColorToken = "regex.escape"
	TokenRegexCharClass  ColorToken = "regex.charclass"
	TokenRegexGroup      ColorToken = "regex.group"
	TokenRegexQuantifier ColorToken = "regex.quantifier"
	TokenRegexOperator   ColorToken = "regex.operator"

	// Match highlighting. Highlighted text is drawn in match.text over the
	// slot's background color.
	TokenMatchText ColorToken = "match.text"

	// Replacement diff
	TokenDiffInsert ColorToken = "diff.insert"
	TokenDiffDelete ColorToken = "diff.delete"
)

// MatchSlots is the number of built-in match palette colors.
const MatchSlots = 8

// MatchSlotToken returns the token for palette slot i: "match.slot.0" for
// the full match, "match.slot.1" through "match.slot.7" for groups.
func MatchSlotToken(i int) ColorToken {
	return ColorToken(fmt.Sprintf("match.slot.%d", i))
}

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	tokens := []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenTextPlaceholder,

		TokenBorderDefault,
		TokenBorderHighlight,

		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		TokenSelectionIndicator,

		TokenOverlayTitle,
		TokenOverlayBorder,

		TokenRegexEscape,
		TokenRegexCharClass,
		TokenRegexGroup,
		TokenRegexQuantifier,
		TokenRegexOperator,

		TokenMatchText,

		TokenDiffInsert,
		TokenDiffDelete,
	}
	for i := range MatchSlots {
		tokens = append(tokens, MatchSlotToken(i))
	}
	return tokens
}
