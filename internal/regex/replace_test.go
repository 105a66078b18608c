package regex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplace(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		flags       string
		subject     string
		replacement string
		want        string
	}{
		{"swap groups", `(\d+)-(\d+)`, "g", "12-34 56-78", "$2-$1", "34-12 78-56"},
		{"first only", `\d`, "", "a1b2", "#", "a#b2"},
		{"whole match", `\d+`, "g", "a1b22", "<$&>", "a<1>b<22>"},
		{"dollar escape", "x", "", "x", "$$", "$"},
		{"prefix and suffix", "b", "", "abc", "[$`|$']", "a[a|c]c"},
		{"named groups", `(?<y>\d{4})-(?<m>\d{2})`, "", "2024-01", "$<m>/$<y>", "01/2024"},
		{"undeclared group is literal", "(a)", "", "a", "$3", "$3"},
		{"two digit falls back to one", "(a)", "", "a", "$10", "a0"},
		{"named syntax without names is literal", "(a)", "", "a", "$<x>", "$<x>"},
		{"zero width matches", "", "g", "ab", "-", "-a-b-"},
		{"trailing dollar", "a", "", "a", "x$", "x$"},
		{"capture inside lookahead", "a(?=(b))", "", "ab", "[$1]", "[b]b"},
		{"named capture inside lookahead", "a(?=(?<n>b))", "g", "abab", "$<n>", "bbbb"},
		{"non participating group is empty", "(x)?a", "", "a", "[$1]", "[]"},
	}

	r := newTestResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Replace(tt.pattern, ParseFlags(tt.flags), tt.subject, tt.replacement)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestReplace_InvalidPattern(t *testing.T) {
	got, err := newTestResolver().Replace("(", ParseFlags("g"), "abc", "x")
	require.True(t, IsInvalidSyntax(err))
	require.Empty(t, got)
}

func TestResolve_LookaheadCaptureKeptForReplacement(t *testing.T) {
	matches, err := newTestResolver().Resolve("a(?=(b))", ParseFlags(""), "ab")
	require.NoError(t, err)
	require.Len(t, matches, 1)

	require.Empty(t, matches[0].Groups, "the capture lies outside the match span")
	require.Equal(t, map[int]string{1: "b"}, matches[0].Captures)
}

func TestApplyReplacement_PlacedGroupsOnly(t *testing.T) {
	matches := []MatchRecord{{
		Start: 0, End: 3, Text: "a-b",
		Groups: []GroupRecord{{Number: 1, Start: 0, End: 1, Text: "a"}},
	}}

	got := ApplyReplacement("a-b!", matches, []GroupInfo{{Number: 1}}, "<$1>")
	require.Equal(t, "<a>!", got)
}
