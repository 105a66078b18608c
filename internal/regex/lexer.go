package regex

// Lexer scans a pattern into syntax tokens. It never fails: anything that
// does not form a complete construct is emitted as part of a literal run.
type Lexer struct {
	input []rune
	pos   int
}

// NewLexer creates a new lexer for the pattern.
func NewLexer(pattern string) *Lexer {
	return &Lexer{input: []rune(pattern)}
}

// More reports whether input remains.
func (l *Lexer) More() bool {
	return l.pos < len(l.input)
}

// NextToken returns the next token. Call only while More is true.
func (l *Lexer) NextToken() Token {
	start := l.pos
	if kind, end, ok := l.classify(start); ok {
		l.pos = end
		return l.token(kind, start, end)
	}

	// Literal run: extend until a classified token begins.
	end := start + 1
	for end < len(l.input) {
		if _, _, ok := l.classify(end); ok {
			break
		}
		end++
	}
	l.pos = end
	return l.token(TokenLiteral, start, end)
}

func (l *Lexer) token(kind TokenKind, start, end int) Token {
	return Token{
		Kind:  kind,
		Text:  string(l.input[start:end]),
		Start: start,
		End:   end,
	}
}

// classify reports the token starting at pos, if any, in priority order.
func (l *Lexer) classify(pos int) (TokenKind, int, bool) {
	switch l.input[pos] {
	case '\\':
		if pos+1 < len(l.input) {
			return TokenEscape, pos + 2, true
		}
		return TokenLiteral, 0, false
	case '[':
		if end, ok := l.scanClosing(pos, ']'); ok {
			return TokenCharClass, end, true
		}
	case '(':
		if end, ok := l.scanClosing(pos, ')'); ok {
			return TokenGroup, end, true
		}
	case '*', '+', '?':
		return TokenQuantifier, l.lazy(pos + 1), true
	case '{':
		if end, ok := l.scanBound(pos); ok {
			return TokenQuantifier, l.lazy(end), true
		}
	case '^', '$', '|':
		return TokenOperator, pos + 1, true
	}
	return TokenLiteral, 0, false
}

// scanClosing finds the first unescaped closer after the opener at pos and
// returns the offset just past it.
func (l *Lexer) scanClosing(pos int, closer rune) (int, bool) {
	for i := pos + 1; i < len(l.input); i++ {
		switch l.input[i] {
		case '\\':
			i++
		case closer:
			return i + 1, true
		}
	}
	return 0, false
}

// scanBound matches {m}, {m,} or {m,n} starting at pos.
func (l *Lexer) scanBound(pos int) (int, bool) {
	i := pos + 1
	digits := l.digits(i)
	if digits == 0 {
		return 0, false
	}
	i += digits
	if i < len(l.input) && l.input[i] == ',' {
		i++
		i += l.digits(i)
	}
	if i < len(l.input) && l.input[i] == '}' {
		return i + 1, true
	}
	return 0, false
}

func (l *Lexer) digits(i int) int {
	n := 0
	for i+n < len(l.input) && isDigit(l.input[i+n]) {
		n++
	}
	return n
}

// lazy consumes a trailing '?' that makes the preceding quantifier lazy.
func (l *Lexer) lazy(end int) int {
	if end < len(l.input) && l.input[end] == '?' {
		return end + 1
	}
	return end
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Tokenize splits pattern into tokens that partition it exactly: joining the
// token texts in order reproduces the pattern.
func Tokenize(pattern string) []Token {
	lexer := NewLexer(pattern)
	var tokens []Token
	for lexer.More() {
		tokens = append(tokens, lexer.NextToken())
	}
	return tokens
}
