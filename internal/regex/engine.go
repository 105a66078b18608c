package regex

import "fmt"

// Dialect selects the syntax accepted by the regexp2-backed engine.
type Dialect string

const (
	DialectECMAScript Dialect = "ecmascript"
	DialectDotNet     Dialect = "dotnet"
	DialectRE2        Dialect = "re2"
)

// ParseDialect validates a dialect name. The empty string selects ECMAScript.
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case "", DialectECMAScript:
		return DialectECMAScript, nil
	case DialectDotNet, DialectRE2:
		return Dialect(s), nil
	default:
		return "", fmt.Errorf("dialect must be ecmascript, dotnet or re2, got %q", s)
	}
}

// Engine compiles pattern source into an executable pattern.
type Engine interface {
	// Compile returns a *PatternError of kind InvalidSyntax when the engine
	// rejects the pattern.
	Compile(source string, flags Flags) (Compiled, error)
}

// Compiled is a pattern ready to execute against subject text.
type Compiled interface {
	// Execute finds the first match starting at or after rune offset from.
	// It returns (nil, nil) when there is no match, and a *PatternError of
	// kind CatastrophicTimeout when the engine gives up.
	Execute(subject []rune, from int) (*RawMatch, error)

	// Groups lists the capturing groups in group-number order.
	Groups() []GroupInfo

	// Source returns the pattern text the value was compiled from.
	Source() string
}

// GroupInfo describes a capturing group declared in a pattern.
type GroupInfo struct {
	Number int    `json:"number"`
	Name   string `json:"name,omitempty"`
}

// RawMatch is what an engine reports for one match, in rune offsets.
type RawMatch struct {
	Start    int
	End      int
	Captures []RawCapture
}

// RawCapture is the engine's report for one capturing group. Only the text
// is authoritative; Hint is the engine's own position for the capture, or
// -1 when it has none.
type RawCapture struct {
	Number  int
	Name    string
	Text    string
	Matched bool
	Hint    int
}
