package regex

import (
	"sort"
	"strconv"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/zjrosen/rexy/internal/log"
)

// Regexp2Engine compiles patterns with github.com/dlclark/regexp2, a
// backtracking engine that supports lookaround, backreferences and the
// ECMAScript dialect.
type Regexp2Engine struct {
	dialect Dialect
	// timeout bounds a single Execute call. Zero leaves regexp2's default.
	timeout time.Duration
}

// NewRegexp2Engine creates an engine for the dialect. A non-positive
// timeout disables the per-call engine timeout.
func NewRegexp2Engine(dialect Dialect, timeout time.Duration) *Regexp2Engine {
	if dialect == "" {
		dialect = DialectECMAScript
	}
	return &Regexp2Engine{dialect: dialect, timeout: timeout}
}

// Dialect returns the engine's dialect.
func (e *Regexp2Engine) Dialect() Dialect {
	return e.dialect
}

// Options maps dialect and flags onto regexp2 options.
func (e *Regexp2Engine) Options(flags Flags) regexp2.RegexOptions {
	var opts regexp2.RegexOptions
	switch e.dialect {
	case DialectECMAScript:
		opts |= regexp2.ECMAScript
	case DialectRE2:
		opts |= regexp2.RE2
	}
	if flags.IgnoreCase {
		opts |= regexp2.IgnoreCase
	}
	if flags.Multiline {
		opts |= regexp2.Multiline
	}
	if flags.DotAll {
		opts |= regexp2.Singleline
	}
	if flags.Unicode {
		opts |= regexp2.Unicode
	}
	return opts
}

// Compile implements Engine.
func (e *Regexp2Engine) Compile(source string, flags Flags) (Compiled, error) {
	re, err := regexp2.Compile(source, e.Options(flags))
	if err != nil {
		log.Debug(log.CatEngine, "compile rejected", "dialect", e.dialect, "error", err)
		return nil, syntaxError(source, err)
	}
	if e.timeout > 0 {
		re.MatchTimeout = e.timeout
	}

	numbers := re.GetGroupNumbers()
	sort.Ints(numbers)
	groups := make([]GroupInfo, 0, len(numbers))
	for _, n := range numbers {
		if n == 0 {
			continue
		}
		info := GroupInfo{Number: n}
		// Unnamed groups report their number as their name.
		if name := re.GroupNameFromNumber(n); name != strconv.Itoa(n) {
			info.Name = name
		}
		groups = append(groups, info)
	}

	return &regexp2Pattern{re: re, source: source, groups: groups, timeout: e.timeout}, nil
}

type regexp2Pattern struct {
	re      *regexp2.Regexp
	source  string
	groups  []GroupInfo
	timeout time.Duration
}

func (p *regexp2Pattern) Source() string {
	return p.source
}

func (p *regexp2Pattern) Groups() []GroupInfo {
	return p.groups
}

func (p *regexp2Pattern) Execute(subject []rune, from int) (*RawMatch, error) {
	m, err := p.re.FindRunesMatchStartingAt(subject, from)
	if err != nil {
		// regexp2 only fails a match when MatchTimeout elapses.
		return nil, timeoutError(p.source, "engine gave up after "+p.timeout.String())
	}
	if m == nil {
		return nil, nil
	}

	raw := &RawMatch{
		Start:    m.Index,
		End:      m.Index + m.Length,
		Captures: make([]RawCapture, 0, len(p.groups)),
	}
	for _, info := range p.groups {
		c := RawCapture{Number: info.Number, Name: info.Name, Hint: -1}
		if g := m.GroupByNumber(info.Number); g != nil && len(g.Captures) > 0 {
			c.Matched = true
			c.Text = g.String()
			c.Hint = g.Index
		}
		raw.Captures = append(raw.Captures, c)
	}
	return raw, nil
}
