package regex

import (
	"errors"
	"fmt"
)

// ErrorKind distinguishes why a pattern could not be evaluated.
type ErrorKind int

const (
	// InvalidSyntax means the engine rejected the pattern or its flags.
	InvalidSyntax ErrorKind = iota
	// CatastrophicTimeout means evaluation did not finish within its budget.
	CatastrophicTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidSyntax:
		return "invalid_syntax"
	case CatastrophicTimeout:
		return "catastrophic_timeout"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// PatternError is returned when a pattern cannot be compiled or evaluated.
// It is a normal result for interactive use, not a fault.
type PatternError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Pattern string    `json:"pattern,omitempty"`
}

func (e *PatternError) Error() string {
	switch e.Kind {
	case CatastrophicTimeout:
		return fmt.Sprintf("pattern too expensive: %s", e.Message)
	default:
		return fmt.Sprintf("invalid pattern: %s", e.Message)
	}
}

// AsPatternError unwraps err to a *PatternError.
func AsPatternError(err error) (*PatternError, bool) {
	var pe *PatternError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsInvalidSyntax reports whether err is an InvalidSyntax pattern error.
func IsInvalidSyntax(err error) bool {
	pe, ok := AsPatternError(err)
	return ok && pe.Kind == InvalidSyntax
}

// IsTimeout reports whether err is a CatastrophicTimeout pattern error.
func IsTimeout(err error) bool {
	pe, ok := AsPatternError(err)
	return ok && pe.Kind == CatastrophicTimeout
}

func syntaxError(pattern string, err error) *PatternError {
	return &PatternError{Kind: InvalidSyntax, Message: err.Error(), Pattern: pattern}
}

func timeoutError(pattern, detail string) *PatternError {
	return &PatternError{Kind: CatastrophicTimeout, Message: detail, Pattern: pattern}
}
