package regex

import (
	"fmt"
	"slices"
	"time"

	"github.com/zjrosen/rexy/internal/log"
)

// DefaultBudget bounds one complete evaluation of a pattern over a subject.
const DefaultBudget = 250 * time.Millisecond

// MatchRecord is one match of a pattern in a subject. Offsets are rune
// offsets into the subject, End exclusive.
type MatchRecord struct {
	Index  int           `json:"index" yaml:"index"`
	Start  int           `json:"start" yaml:"start"`
	End    int           `json:"end" yaml:"end"`
	Text   string        `json:"text" yaml:"text"`
	Groups []GroupRecord `json:"groups,omitempty" yaml:"groups,omitempty"`

	// Captures holds the text of every participating group by number,
	// including captures that lie outside the match such as those inside a
	// lookaround. Replacement reads from it; Groups is only for placement.
	Captures map[int]string `json:"-" yaml:"-"`
}

// GroupRecord places one participating capture group inside its match.
type GroupRecord struct {
	Number int    `json:"number" yaml:"number"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Start  int    `json:"start" yaml:"start"`
	End    int    `json:"end" yaml:"end"`
	Text   string `json:"text" yaml:"text"`
}

// Empty reports whether the match has zero width.
func (m MatchRecord) Empty() bool {
	return m.Start == m.End
}

// Resolver runs patterns over subjects and produces match records.
// A Resolver holds no per-evaluation state and is safe for concurrent use.
type Resolver struct {
	engine Engine
	budget time.Duration
	now    func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBudget sets the wall-clock budget for one evaluation. Zero or less
// disables the budget.
func WithBudget(d time.Duration) Option {
	return func(r *Resolver) { r.budget = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// NewResolver creates a resolver over engine.
func NewResolver(engine Engine, opts ...Option) *Resolver {
	r := &Resolver{
		engine: engine,
		budget: DefaultBudget,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Engine returns the engine the resolver compiles with.
func (r *Resolver) Engine() Engine {
	return r.engine
}

// Compile compiles source with the resolver's engine.
func (r *Resolver) Compile(source string, flags Flags) (Compiled, error) {
	return r.engine.Compile(source, flags)
}

// Resolve compiles source and resolves it against subject. Either the full
// match list or a *PatternError is returned, never both.
func (r *Resolver) Resolve(source string, flags Flags, subject string) ([]MatchRecord, error) {
	compiled, err := r.Compile(source, flags)
	if err != nil {
		return nil, err
	}
	return r.ResolveCompiled(compiled, flags, subject)
}

// ResolveCompiled resolves an already compiled pattern against subject.
func (r *Resolver) ResolveCompiled(compiled Compiled, flags Flags, subject string) ([]MatchRecord, error) {
	runes := []rune(subject)
	started := r.now()

	var matches []MatchRecord
	cursor := 0
	for cursor <= len(runes) {
		if r.budget > 0 && r.now().Sub(started) > r.budget {
			log.Warn(log.CatRegex, "evaluation budget exceeded",
				"pattern", compiled.Source(), "matches", len(matches))
			return nil, timeoutError(compiled.Source(),
				fmt.Sprintf("no result within %s", r.budget))
		}

		raw, err := compiled.Execute(runes, cursor)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			break
		}
		start, end := clampSpan(raw.Start, raw.End, len(runes))
		if start < cursor {
			// The engine reported text already consumed; stop rather than loop.
			break
		}
		if flags.Sticky && start != cursor {
			break
		}

		matches = append(matches, MatchRecord{
			Index:    len(matches),
			Start:    start,
			End:      end,
			Text:     string(runes[start:end]),
			Groups:   placeGroups(runes, start, end, raw.Captures),
			Captures: captureTexts(raw.Captures),
		})

		if !flags.Global {
			break
		}
		// Zero-width matches advance by one so the scan always terminates.
		cursor = max(end, start+1)
	}

	log.Debug(log.CatRegex, "resolved",
		"pattern", compiled.Source(), "flags", flags.String(), "matches", len(matches),
		"elapsed", r.now().Sub(started))
	return matches, nil
}

func clampSpan(start, end, n int) (int, int) {
	start = min(max(start, 0), n)
	end = min(max(end, start), n)
	return start, end
}

func captureTexts(captures []RawCapture) map[int]string {
	if len(captures) == 0 {
		return nil
	}
	texts := make(map[int]string, len(captures))
	for _, c := range captures {
		if c.Matched {
			texts[c.Number] = c.Text
		}
	}
	return texts
}

// placeGroups locates each participating capture inside [start, end).
// Groups are placed in group-number order; each search begins at the end of
// the previously placed group so repeated substrings map to successive
// occurrences. When the text is not found there, the engine's own position
// is used if it lies in the match, then the first occurrence anywhere in
// the match. A capture that cannot be placed inside the match is omitted.
func placeGroups(subject []rune, start, end int, captures []RawCapture) []GroupRecord {
	var groups []GroupRecord
	cursor := start
	for _, c := range captures {
		if !c.Matched {
			continue
		}
		text := []rune(c.Text)
		pos := indexRunes(subject, text, cursor, end)
		if pos < 0 && c.Hint >= start && c.Hint+len(text) <= end &&
			slices.Equal(subject[c.Hint:c.Hint+len(text)], text) {
			pos = c.Hint
		}
		if pos < 0 {
			pos = indexRunes(subject, text, start, end)
		}
		if pos < 0 {
			log.Debug(log.CatRegex, "capture outside match omitted", "group", c.Number)
			continue
		}

		groups = append(groups, GroupRecord{
			Number: c.Number,
			Name:   c.Name,
			Start:  pos,
			End:    pos + len(text),
			Text:   c.Text,
		})
		cursor = max(cursor, pos+len(text))
	}
	return groups
}

// indexRunes returns the first offset i in [from, limit-len(needle)] where
// needle occurs in haystack, or -1.
func indexRunes(haystack, needle []rune, from, limit int) int {
	for i := from; i+len(needle) <= limit; i++ {
		if slices.Equal(haystack[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}
