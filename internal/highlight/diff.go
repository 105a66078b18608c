package highlight

import (
	"strings"
	"time"
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffTimeout bounds the replacement preview diff.
const DiffTimeout = 50 * time.Millisecond

// firstWordRune is the first rune used to encode words for diffing. The
// supplementary private use planes give room for about 130k distinct words.
const (
	firstWordRune = 0xF0000
	lastWordRune  = 0x10FFFD
)

// DiffOp tells whether a diff segment is kept, inserted or deleted.
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffInsert
	DiffDelete
)

func (op DiffOp) String() string {
	switch op {
	case DiffInsert:
		return "insert"
	case DiffDelete:
		return "delete"
	default:
		return "equal"
	}
}

// MarshalText renders the op by name in JSON and YAML output.
func (op DiffOp) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// DiffSegment is a run of text with its diff status.
type DiffSegment struct {
	Op   DiffOp `json:"op" yaml:"op"`
	Text string `json:"text" yaml:"text"`
}

// splitWords splits text into words, single whitespace runes and single
// punctuation or symbol runes.
// Example: "foo.bar baz()" → ["foo", ".", "bar", " ", "baz", "(", ")"]
func splitWords(text string) []string {
	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	for _, r := range text {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			flush()
			words = append(words, string(r))
			continue
		}
		current.WriteRune(r)
	}
	flush()
	return words
}

// DiffWords computes a word-level diff from before to after. Words are
// mapped to single runes, diffed with diffmatchpatch, and mapped back, the
// same way diffmatchpatch diffs lines.
func DiffWords(before, after string) []DiffSegment {
	if before == after {
		if before == "" {
			return nil
		}
		return []DiffSegment{{Op: DiffEqual, Text: before}}
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = DiffTimeout

	vocab := map[string]rune{}
	var words []string
	encode := func(text string) ([]rune, bool) {
		split := splitWords(text)
		out := make([]rune, len(split))
		for i, w := range split {
			r, ok := vocab[w]
			if !ok {
				if firstWordRune+len(words) > lastWordRune {
					return nil, false
				}
				r = rune(firstWordRune + len(words))
				vocab[w] = r
				words = append(words, w)
			}
			out[i] = r
		}
		return out, true
	}

	a, okA := encode(before)
	b, okB := encode(after)
	var diffs []diffmatchpatch.Diff
	if okA && okB {
		diffs = dmp.DiffMainRunes(a, b, false)
		diffs = dmp.DiffCleanupSemantic(diffs)
		for i := range diffs {
			var text strings.Builder
			for _, r := range diffs[i].Text {
				text.WriteString(words[r-firstWordRune])
			}
			diffs[i].Text = text.String()
		}
	} else {
		// Too many distinct words to encode; fall back to a character diff.
		diffs = dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))
	}

	segments := make([]DiffSegment, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
		}
		segments = append(segments, DiffSegment{Op: op, Text: d.Text})
	}
	return segments
}

// RenderDiffANSI renders a diff with insertions underlined and deletions
// struck through.
func RenderDiffANSI(segments []DiffSegment) string {
	var b strings.Builder
	for _, s := range segments {
		switch s.Op {
		case DiffInsert:
			b.WriteString(renderStyled(DiffInsertStyle, s.Text))
		case DiffDelete:
			b.WriteString(renderStyled(DiffDeleteStyle, s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
