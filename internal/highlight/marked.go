// Package highlight turns match records and pattern tokens into MarkedText:
// an ordered run of plain and highlighted spans that tiles the source text.
package highlight

import (
	"strings"

	"github.com/zjrosen/rexy/internal/regex"
)

// SpanKind distinguishes unstyled text from highlighted text.
type SpanKind int

const (
	PlainSpan SpanKind = iota
	HighlightSpan
)

func (k SpanKind) String() string {
	if k == HighlightSpan {
		return "highlight"
	}
	return "plain"
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k SpanKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Span is one piece of MarkedText. Start and End are rune offsets into the
// rendered text.
type Span struct {
	Kind  SpanKind `json:"kind" yaml:"kind"`
	Text  string   `json:"text" yaml:"text"`
	Start int      `json:"start" yaml:"start"`
	End   int      `json:"end" yaml:"end"`

	// MatchIndex is the match ordinal for subject spans, -1 otherwise.
	MatchIndex int `json:"match_index" yaml:"match_index"`
	// Group is the capture group number, 0 when the span is not a group.
	Group     int    `json:"group,omitempty" yaml:"group,omitempty"`
	GroupName string `json:"group_name,omitempty" yaml:"group_name,omitempty"`
	// Slot is the palette slot used to color the span.
	Slot    int    `json:"slot" yaml:"slot"`
	Tooltip string `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`

	// Token is set on pattern spans.
	Token regex.TokenKind `json:"token" yaml:"token"`
}

// MarkedText is an ordered sequence of spans.
type MarkedText []Span

// Text concatenates the span texts.
func (mt MarkedText) Text() string {
	var b strings.Builder
	for _, s := range mt {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Highlights returns only the highlighted spans.
func (mt MarkedText) Highlights() MarkedText {
	var out MarkedText
	for _, s := range mt {
		if s.Kind == HighlightSpan {
			out = append(out, s)
		}
	}
	return out
}

// At returns the span covering rune offset pos. Zero-width spans never
// cover an offset.
func (mt MarkedText) At(pos int) (Span, bool) {
	for _, s := range mt {
		if pos >= s.Start && pos < s.End {
			return s, true
		}
	}
	return Span{}, false
}

func plain(runes []rune, start, end int) Span {
	return Span{
		Kind:       PlainSpan,
		Text:       string(runes[start:end]),
		Start:      start,
		End:        end,
		MatchIndex: -1,
	}
}
