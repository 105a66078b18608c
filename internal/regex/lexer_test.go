package regex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type kt struct {
	kind TokenKind
	text string
}

func kinds(tokens []Token) []kt {
	out := make([]kt, len(tokens))
	for i, tok := range tokens {
		out[i] = kt{tok.Kind, tok.Text}
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []kt
	}{
		{
			name:    "escapes and quantifiers",
			pattern: `\d+-\w*`,
			want: []kt{
				{TokenEscape, `\d`},
				{TokenQuantifier, "+"},
				{TokenLiteral, "-"},
				{TokenEscape, `\w`},
				{TokenQuantifier, "*"},
			},
		},
		{
			name:    "escaped bracket stays inside class",
			pattern: `[a\]b]c`,
			want: []kt{
				{TokenCharClass, `[a\]b]`},
				{TokenLiteral, "c"},
			},
		},
		{
			name:    "escaped paren stays inside group",
			pattern: `(a\)b)x`,
			want: []kt{
				{TokenGroup, `(a\)b)`},
				{TokenLiteral, "x"},
			},
		},
		{
			name:    "group ends at first unescaped paren",
			pattern: `(a(b)c)`,
			want: []kt{
				{TokenGroup, "(a(b)"},
				{TokenLiteral, "c)"},
			},
		},
		{
			name:    "lazy bounded quantifier",
			pattern: "a{2,3}?b",
			want: []kt{
				{TokenLiteral, "a"},
				{TokenQuantifier, "{2,3}?"},
				{TokenLiteral, "b"},
			},
		},
		{
			name:    "open bound forms",
			pattern: "x{3}y{1,}",
			want: []kt{
				{TokenLiteral, "x"},
				{TokenQuantifier, "{3}"},
				{TokenLiteral, "y"},
				{TokenQuantifier, "{1,}"},
			},
		},
		{
			name:    "invalid bound is literal",
			pattern: "a{x}",
			want:    []kt{{TokenLiteral, "a{x}"}},
		},
		{
			name:    "operators",
			pattern: "^foo|bar$",
			want: []kt{
				{TokenOperator, "^"},
				{TokenLiteral, "foo"},
				{TokenOperator, "|"},
				{TokenLiteral, "bar"},
				{TokenOperator, "$"},
			},
		},
		{
			name:    "trailing backslash is literal",
			pattern: `abc\`,
			want:    []kt{{TokenLiteral, `abc\`}},
		},
		{
			name:    "unterminated class is literal",
			pattern: "[abc",
			want:    []kt{{TokenLiteral, "[abc"}},
		},
		{
			name:    "unterminated group is literal up to next token",
			pattern: "(ab+",
			want: []kt{
				{TokenLiteral, "(ab"},
				{TokenQuantifier, "+"},
			},
		},
		{
			name:    "double question mark is one lazy quantifier",
			pattern: "a??",
			want: []kt{
				{TokenLiteral, "a"},
				{TokenQuantifier, "??"},
			},
		},
		{
			name:    "escaped backslash inside group",
			pattern: `(\\)`,
			want:    []kt{{TokenGroup, `(\\)`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, kinds(Tokenize(tt.pattern)))
		})
	}
}

func TestTokenize_Empty(t *testing.T) {
	require.Empty(t, Tokenize(""))
}

func TestTokenize_RuneOffsets(t *testing.T) {
	tokens := Tokenize(`é\d`)
	require.Len(t, tokens, 2)
	require.Equal(t, Token{Kind: TokenLiteral, Text: "é", Start: 0, End: 1}, tokens[0])
	require.Equal(t, Token{Kind: TokenEscape, Text: `\d`, Start: 1, End: 3}, tokens[1])
}

func TestTokenKind_String(t *testing.T) {
	require.Equal(t, "charclass", TokenCharClass.String())
	require.Equal(t, "unknown", TokenKind(99).String())

	text, err := TokenQuantifier.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "quantifier", string(text))
}

func TestTokenize_RoundTrip(t *testing.T) {
	alphabet := []rune(`ab1\[](){},*+?^$|-é`)
	rapid.Check(t, func(t *rapid.T) {
		pattern := rapid.StringOf(rapid.RuneFrom(alphabet)).Draw(t, "pattern")
		tokens := Tokenize(pattern)

		var joined strings.Builder
		next := 0
		for i, tok := range tokens {
			if tok.Start != next {
				t.Fatalf("token %d starts at %d, want %d", i, tok.Start, next)
			}
			if tok.End <= tok.Start {
				t.Fatalf("token %d is empty", i)
			}
			if i > 0 && tok.Kind == TokenLiteral && tokens[i-1].Kind == TokenLiteral {
				t.Fatalf("adjacent literal tokens at %d", i)
			}
			joined.WriteString(tok.Text)
			next = tok.End
		}
		if joined.String() != pattern {
			t.Fatalf("round trip %q != %q", joined.String(), pattern)
		}
		if next != len([]rune(pattern)) {
			t.Fatalf("tokens end at %d, pattern has %d runes", next, len([]rune(pattern)))
		}
	})
}
