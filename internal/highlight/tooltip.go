package highlight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zjrosen/rexy/internal/regex"
)

// Tooltip summarizes a match for display on hover or selection:
//
//	Match 1 at 0
//	  $1 year = "2024"
//	  $2 month = "01"
//
// Matches are numbered from 1. Groups that did not participate are not listed.
func Tooltip(m regex.MatchRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Match %d at %d", m.Index+1, m.Start)

	groups := make([]regex.GroupRecord, len(m.Groups))
	copy(groups, m.Groups)
	sort.Slice(groups, func(i, j int) bool { return groups[i].Number < groups[j].Number })

	for _, g := range groups {
		fmt.Fprintf(&b, "\n  $%d", g.Number)
		if g.Name != "" {
			b.WriteString(" " + g.Name)
		}
		fmt.Fprintf(&b, " = %q", g.Text)
	}
	return b.String()
}
