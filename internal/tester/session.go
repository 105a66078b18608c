package tester

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/zjrosen/rexy/internal/highlight"
	"github.com/zjrosen/rexy/internal/log"
	"github.com/zjrosen/rexy/internal/pubsub"
	"github.com/zjrosen/rexy/internal/regex"
)

// Session is the live state of one tester: the current pattern, flags,
// subject and replacement, plus the last evaluation. Every setter
// re-evaluates synchronously and publishes the new snapshot.
type Session struct {
	id        string
	evaluator *Evaluator
	broker    *pubsub.Broker[Snapshot]

	mu         sync.RWMutex
	input      Input
	last       Snapshot
	generation uint64
}

// NewSession creates a session over initial and evaluates it once,
// so getters are valid immediately.
func NewSession(evaluator *Evaluator, initial Input) *Session {
	s := &Session{
		id:        uuid.New().String(),
		evaluator: evaluator,
		broker:    pubsub.NewBroker[Snapshot](),
		input:     initial,
	}
	s.evaluate(context.Background(), pubsub.CreatedEvent)
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// SetPattern replaces the pattern source and re-evaluates.
func (s *Session) SetPattern(source string) Snapshot {
	return s.update(func(in *Input) bool {
		if in.Pattern == source {
			return false
		}
		in.Pattern = source
		return true
	})
}

// SetFlags replaces the flag string and re-evaluates.
func (s *Session) SetFlags(flags string) Snapshot {
	return s.update(func(in *Input) bool {
		if in.Flags == flags {
			return false
		}
		in.Flags = flags
		return true
	})
}

// SetSubject replaces the subject text and re-evaluates.
func (s *Session) SetSubject(text string) Snapshot {
	return s.update(func(in *Input) bool {
		if in.Subject == text {
			return false
		}
		in.Subject = text
		return true
	})
}

// SetReplacement sets the replacement template. nil turns replacement off.
func (s *Session) SetReplacement(template *string) Snapshot {
	return s.update(func(in *Input) bool {
		if equalOptional(in.Replacement, template) {
			return false
		}
		if template == nil {
			in.Replacement = nil
		} else {
			t := *template
			in.Replacement = &t
		}
		return true
	})
}

// Load replaces the whole input at once, e.g. from a saved pattern.
func (s *Session) Load(in Input) Snapshot {
	return s.update(func(cur *Input) bool {
		*cur = in
		return true
	})
}

// Reevaluate evaluates the current input again, e.g. after the subject file
// was reloaded or the palette changed.
func (s *Session) Reevaluate(eventType pubsub.EventType) Snapshot {
	return s.evaluate(context.Background(), eventType)
}

func (s *Session) update(mutate func(*Input) bool) Snapshot {
	s.mu.Lock()
	changed := mutate(&s.input)
	s.mu.Unlock()

	if !changed {
		return s.Snapshot()
	}
	return s.evaluate(context.Background(), pubsub.UpdatedEvent)
}

func (s *Session) evaluate(ctx context.Context, eventType pubsub.EventType) Snapshot {
	s.mu.Lock()
	in := s.input
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	snap := s.evaluator.Evaluate(ctx, in)
	snap.Generation = gen

	s.mu.Lock()
	// A concurrent setter may have produced a newer snapshot already.
	if gen > s.last.Generation {
		s.last = snap
	}
	s.mu.Unlock()

	log.Debug(log.CatSession, "evaluated",
		"session", s.id, "trigger", string(eventType), "generation", gen, "matches", len(snap.Matches), "elapsed", snap.Elapsed)
	s.broker.Publish(eventType, snap)
	return snap
}

// Input returns the current input.
func (s *Session) Input() Input {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.input
}

// Snapshot returns the last evaluation.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// HighlightedPattern returns the syntax-colored pattern markup.
func (s *Session) HighlightedPattern() highlight.MarkedText {
	return s.Snapshot().Pattern
}

// HighlightedSubject returns the match-colored subject markup.
func (s *Session) HighlightedSubject() highlight.MarkedText {
	return s.Snapshot().Subject
}

// MatchSummary returns the matches of the last evaluation.
func (s *Session) MatchSummary() []regex.MatchRecord {
	return s.Snapshot().Matches
}

// Err returns the pattern error of the last evaluation, or nil.
func (s *Session) Err() error {
	return s.Snapshot().Err
}

// Replaced returns the substituted subject and whether replacement is on
// and succeeded.
func (s *Session) Replaced() (string, bool) {
	snap := s.Snapshot()
	return snap.Replaced, snap.HasReplaced
}

// Subscribe delivers every subsequent snapshot until ctx is done.
func (s *Session) Subscribe(ctx context.Context) <-chan pubsub.Event[Snapshot] {
	return s.broker.Subscribe(ctx)
}

// Close releases subscribers.
func (s *Session) Close() {
	s.broker.Close()
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
