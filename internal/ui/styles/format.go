// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	// Need to truncate - leave room for ellipsis
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	var result strings.Builder
	for _, r := range s {
		if lipgloss.Width(result.String()+string(r)) > maxWidth-3 {
			break
		}
		result.WriteRune(r)
	}

	return result.String() + "..."
}

// FormatRange renders a half-open character range as "[start,end)".
func FormatRange(start, end int) string {
	return fmt.Sprintf("[%d,%d)", start, end)
}

// VisibleText makes control characters in matched text visible so a match
// containing a newline or tab stays on one table row.
func VisibleText(s string) string {
	return strings.NewReplacer("\n", `\n`, "\t", `\t`, "\r", `\r`).Replace(s)
}

// Pluralize returns "1 match" or "3 matches" style counts.
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
