// Package regex implements the regular-expression core of rexy: a syntax
// tokenizer for pattern coloring, a pluggable pattern engine, and the match
// resolver that maps matches and capture groups onto subject text.
package regex

// TokenKind classifies a slice of pattern source for syntax coloring.
type TokenKind int

const (
	TokenLiteral    TokenKind = iota
	TokenEscape               // \d, \., \\ ...
	TokenCharClass            // [a-z], [^\]]
	TokenGroup                // (...) up to the first unescaped )
	TokenQuantifier           // * + ? {m,n}, optionally lazy
	TokenOperator             // ^ $ |
)

// String returns the lowercase name of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenLiteral:
		return "literal"
	case TokenEscape:
		return "escape"
	case TokenCharClass:
		return "charclass"
	case TokenGroup:
		return "group"
	case TokenQuantifier:
		return "quantifier"
	case TokenOperator:
		return "operator"
	default:
		return "unknown"
	}
}

// Token is a classified slice of a pattern. Start and End are rune offsets
// into the pattern, End exclusive.
type Token struct {
	Kind  TokenKind `json:"kind"`
	Text  string    `json:"text"`
	Start int       `json:"start"`
	End   int       `json:"end"`
}

// MarshalText lets TokenKind print by name in JSON and YAML output.
func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
