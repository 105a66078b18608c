package highlight

import (
	"fmt"
	"strings"

	"github.com/zjrosen/rexy/internal/regex"
)

// HighlightPattern renders a pattern's syntax tokens as MarkedText. Literal
// runs become plain spans and every classified token becomes a highlight
// span carrying its token kind and a short description.
func HighlightPattern(pattern string) MarkedText {
	tokens := regex.Tokenize(pattern)
	out := make(MarkedText, 0, len(tokens))
	for _, tok := range tokens {
		kind := HighlightSpan
		if tok.Kind == regex.TokenLiteral {
			kind = PlainSpan
		}
		out = append(out, Span{
			Kind:       kind,
			Text:       tok.Text,
			Start:      tok.Start,
			End:        tok.End,
			MatchIndex: -1,
			Token:      tok.Kind,
			Tooltip:    describeToken(tok),
		})
	}
	return out
}

var escapeNames = map[byte]string{
	'd': "digit",
	'D': "non-digit",
	'w': "word character",
	'W': "non-word character",
	's': "whitespace",
	'S': "non-whitespace",
	'b': "word boundary",
	'B': "non-word boundary",
	'n': "newline",
	'r': "carriage return",
	't': "tab",
	'f': "form feed",
	'v': "vertical tab",
	'0': "null character",
	'k': "named backreference",
	'p': "unicode property",
	'P': "negated unicode property",
	'u': "unicode code point",
	'x': "hex code point",
	'c': "control character",
}

func describeToken(tok regex.Token) string {
	text := tok.Text
	switch tok.Kind {
	case regex.TokenEscape:
		c := text[1]
		if name, ok := escapeNames[c]; ok {
			return "escape: " + name
		}
		if c >= '1' && c <= '9' {
			return "backreference to group " + string(c)
		}
		return "escape: literal " + text[1:]
	case regex.TokenCharClass:
		if strings.HasPrefix(text, "[^") {
			return "negated character class"
		}
		return "character class"
	case regex.TokenGroup:
		return describeGroup(text)
	case regex.TokenQuantifier:
		return describeQuantifier(text)
	case regex.TokenOperator:
		switch text {
		case "^":
			return "anchor: start"
		case "$":
			return "anchor: end"
		default:
			return "alternation"
		}
	}
	return ""
}

func describeGroup(text string) string {
	switch {
	case strings.HasPrefix(text, "(?:"):
		return "non-capturing group"
	case strings.HasPrefix(text, "(?="):
		return "lookahead"
	case strings.HasPrefix(text, "(?!"):
		return "negative lookahead"
	case strings.HasPrefix(text, "(?<="):
		return "lookbehind"
	case strings.HasPrefix(text, "(?<!"):
		return "negative lookbehind"
	case strings.HasPrefix(text, "(?<"), strings.HasPrefix(text, "(?P<"), strings.HasPrefix(text, "(?'"):
		start := strings.IndexAny(text, "<'") + 1
		end := strings.IndexAny(text[start:], ">'")
		if end < 0 {
			return "named group"
		}
		return fmt.Sprintf("named group %q", text[start:start+end])
	case strings.HasPrefix(text, "(?"):
		return "inline options"
	default:
		return "capturing group"
	}
}

func describeQuantifier(text string) string {
	prefix := "quantifier: "
	if len(text) > 1 && strings.HasSuffix(text, "?") {
		prefix = "lazy quantifier: "
		text = text[:len(text)-1]
	}
	switch text {
	case "*":
		return prefix + "zero or more"
	case "+":
		return prefix + "one or more"
	case "?":
		return prefix + "optional"
	}
	bounds := strings.Trim(text, "{}")
	lo, hi, ranged := strings.Cut(bounds, ",")
	switch {
	case !ranged:
		return prefix + "exactly " + lo
	case hi == "":
		return prefix + lo + " or more"
	default:
		return prefix + "between " + lo + " and " + hi
	}
}
