package tester

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rexy/internal/pubsub"
	"github.com/zjrosen/rexy/internal/regex"
)

func TestSession_Setters(t *testing.T) {
	s := NewSession(NewEvaluator(), Input{Subject: "2024-01 2025-12"})
	defer s.Close()

	require.NotEmpty(t, s.ID())
	require.Empty(t, s.MatchSummary())
	require.NoError(t, s.Err())

	s.SetPattern(`(\d{4})-(\d{2})`)
	require.Len(t, s.MatchSummary(), 1)

	s.SetFlags("g")
	require.Len(t, s.MatchSummary(), 2)
	require.Equal(t, `(\d{4})-(\d{2})`, s.HighlightedPattern().Text())
	require.Equal(t, "2024-01 2025-12", s.HighlightedSubject().Text())

	s.SetSubject("1999-09")
	require.Len(t, s.MatchSummary(), 1)
	require.Equal(t, "1999-09", s.MatchSummary()[0].Text)
}

func TestSession_ErrorClearsOnNextSuccess(t *testing.T) {
	s := NewSession(NewEvaluator(), Input{Pattern: "a", Subject: "abc"})
	defer s.Close()

	s.SetPattern("a(b")
	require.True(t, regex.IsInvalidSyntax(s.Err()))
	require.Empty(t, s.MatchSummary())
	require.Len(t, s.HighlightedSubject(), 1)

	s.SetPattern("a(b)")
	require.NoError(t, s.Err())
	require.Len(t, s.MatchSummary(), 1)
}

func TestSession_Replacement(t *testing.T) {
	s := NewSession(NewEvaluator(), Input{Pattern: "o", Flags: "g", Subject: "foo"})
	defer s.Close()

	_, ok := s.Replaced()
	require.False(t, ok)

	s.SetReplacement(ptr("0"))
	got, ok := s.Replaced()
	require.True(t, ok)
	require.Equal(t, "f00", got)

	s.SetReplacement(nil)
	_, ok = s.Replaced()
	require.False(t, ok)
	require.Nil(t, s.Input().Replacement)
}

func TestSession_UnchangedInputSkipsEvaluation(t *testing.T) {
	s := NewSession(NewEvaluator(), Input{Pattern: "a", Subject: "a"})
	defer s.Close()

	gen := s.Snapshot().Generation
	require.Equal(t, gen, s.SetPattern("a").Generation)
	require.Equal(t, gen, s.SetSubject("a").Generation)
	require.Equal(t, gen+1, s.SetFlags("g").Generation)
}

func TestSession_Load(t *testing.T) {
	s := NewSession(NewEvaluator(), Input{})
	defer s.Close()

	snap := s.Load(Input{Pattern: "b+", Flags: "g", Subject: "abba", Replacement: ptr("-")})
	require.Equal(t, "a-a", snap.Replaced)
	require.Equal(t, "b+", s.Input().Pattern)
}

func TestSession_Subscribe(t *testing.T) {
	s := NewSession(NewEvaluator(), Input{Subject: "xyz"})
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := s.Subscribe(ctx)

	s.SetPattern("y")
	s.Reevaluate(pubsub.ReloadedEvent)

	for _, want := range []pubsub.EventType{pubsub.UpdatedEvent, pubsub.ReloadedEvent} {
		select {
		case evt := <-events:
			require.Equal(t, want, evt.Type)
			require.Len(t, evt.Payload.Matches, 1)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestSession_GenerationIncreases(t *testing.T) {
	s := NewSession(NewEvaluator(), Input{Subject: "abc"})
	defer s.Close()

	a := s.SetPattern("a")
	b := s.SetPattern("b")
	require.Greater(t, b.Generation, a.Generation)
	require.Equal(t, b.Generation, s.Snapshot().Generation)
}
