package tester

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/rexy/internal/highlight"
	"github.com/zjrosen/rexy/internal/regex"
	"github.com/zjrosen/rexy/internal/tracing"
)

// countingEngine counts compilations of the wrapped engine.
type countingEngine struct {
	regex.Engine
	compiles atomic.Int32
}

func (c *countingEngine) Compile(source string, flags regex.Flags) (regex.Compiled, error) {
	c.compiles.Add(1)
	return c.Engine.Compile(source, flags)
}

func newCountingEngine() *countingEngine {
	return &countingEngine{Engine: regex.NewRegexp2Engine(regex.DialectECMAScript, time.Second)}
}

func ptr(s string) *string { return &s }

func TestEvaluate_Scenarios(t *testing.T) {
	e := NewEvaluator(WithBudget(0))

	t.Run("global groups", func(t *testing.T) {
		snap := e.Evaluate(context.Background(), Input{Pattern: `(\d+)-(\d+)`, Flags: "g", Subject: "12-34 56-78"})
		require.NoError(t, snap.Err)
		require.Len(t, snap.Matches, 2)
		require.Equal(t, "12-34 56-78", snap.Subject.Text())
		require.Equal(t, `(\d+)-(\d+)`, snap.Pattern.Text())
		require.Len(t, snap.Groups, 2)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		snap := e.Evaluate(context.Background(), Input{Pattern: "a(b", Subject: "ab"})
		require.True(t, regex.IsInvalidSyntax(snap.Err))
		require.Empty(t, snap.Matches)
		require.Equal(t, highlight.MarkedText{{Kind: highlight.PlainSpan, Text: "ab", Start: 0, End: 2, MatchIndex: -1}}, snap.Subject)
		require.NotNil(t, snap.PatternError())
		require.Equal(t, "a(b", snap.Pattern.Text(), "pattern is still colored")
	})

	t.Run("named groups", func(t *testing.T) {
		snap := e.Evaluate(context.Background(), Input{Pattern: `(?<year>\d{4})-(?<month>\d{2})`, Subject: "2024-01"})
		require.NoError(t, snap.Err)
		require.Len(t, snap.Matches, 1)
		require.Contains(t, snap.Subject[0].Tooltip, `year = "2024"`)
		require.Contains(t, snap.Subject[0].Tooltip, `month = "01"`)
	})
}

func TestEvaluate_EmptyPatternMatchesNothing(t *testing.T) {
	engine := newCountingEngine()
	snap := NewEvaluator(WithEngine(engine)).Evaluate(context.Background(), Input{Subject: "abc"})

	require.NoError(t, snap.Err)
	require.Empty(t, snap.Matches)
	require.Len(t, snap.Subject, 1)
	require.Zero(t, engine.compiles.Load())
}

func TestEvaluate_Replacement(t *testing.T) {
	e := NewEvaluator()

	snap := e.Evaluate(context.Background(), Input{
		Pattern: `(\w+)@(\w+)`, Flags: "g", Subject: "a@b c@d", Replacement: ptr("$2@$1"),
	})
	require.True(t, snap.HasReplaced)
	require.Equal(t, "b@a d@c", snap.Replaced)

	snap = e.Evaluate(context.Background(), Input{Pattern: `(\w+`, Subject: "x", Replacement: ptr("$1")})
	require.False(t, snap.HasReplaced)
	require.Empty(t, snap.Replaced)

	snap = e.Evaluate(context.Background(), Input{Pattern: `x`, Subject: "x"})
	require.False(t, snap.HasReplaced)
}

func TestEvaluate_CompileCache(t *testing.T) {
	engine := newCountingEngine()
	e := NewEvaluator(WithEngine(engine))
	ctx := context.Background()

	first := e.Evaluate(ctx, Input{Pattern: "a+", Flags: "g", Subject: "aa"})
	require.False(t, first.CacheHit)

	second := e.Evaluate(ctx, Input{Pattern: "a+", Flags: "gy", Subject: "aaa"})
	require.True(t, second.CacheHit, "g and y do not change compilation")
	require.Equal(t, int32(1), engine.compiles.Load())

	third := e.Evaluate(ctx, Input{Pattern: "a+", Flags: "gi", Subject: "A"})
	require.False(t, third.CacheHit)
	require.Len(t, third.Matches, 1)
	require.Equal(t, int32(2), engine.compiles.Load())

	// Invalid patterns are never cached.
	e.Evaluate(ctx, Input{Pattern: "(", Subject: ""})
	e.Evaluate(ctx, Input{Pattern: "(", Subject: ""})
	require.Equal(t, int32(4), engine.compiles.Load())
}

func TestEvaluate_Timeout(t *testing.T) {
	e := NewEvaluator(WithEngine(regex.NewRegexp2Engine(regex.DialectECMAScript, 20*time.Millisecond)))
	subject := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa!"

	snap := e.Evaluate(context.Background(), Input{Pattern: `(a+)+$`, Subject: subject})
	require.True(t, regex.IsTimeout(snap.Err))
	require.Empty(t, snap.Matches)
	require.Equal(t, subject, snap.Subject.Text())
}

func TestEvaluate_Elapsed(t *testing.T) {
	now := time.Unix(100, 0)
	clock := func() time.Time {
		now = now.Add(time.Millisecond)
		return now
	}
	snap := NewEvaluator(WithClock(clock), WithBudget(0)).Evaluate(context.Background(), Input{Pattern: "x", Subject: "x"})
	require.Positive(t, snap.Elapsed)
}

func TestEvaluate_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")
	e := NewEvaluator(WithTracer(tracer))

	e.Evaluate(context.Background(), Input{Pattern: "b", Flags: "g", Subject: "abc", Replacement: ptr("x")})

	var names []string
	for _, s := range recorder.Ended() {
		names = append(names, s.Name())
	}
	require.ElementsMatch(t, []string{
		tracing.SpanCompile, tracing.SpanResolve, tracing.SpanRender, tracing.SpanReplace, tracing.SpanEvaluate,
	}, names)

	recorder = tracetest.NewSpanRecorder()
	tracer = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")
	NewEvaluator(WithTracer(tracer)).Evaluate(context.Background(), Input{Pattern: "(", Subject: "abc"})

	var root sdktrace.ReadOnlySpan
	for _, s := range recorder.Ended() {
		if s.Name() == tracing.SpanEvaluate {
			root = s
		}
	}
	require.NotNil(t, root)
	var events []string
	for _, evt := range root.Events() {
		events = append(events, evt.Name)
	}
	require.Contains(t, events, tracing.EventPatternRejected)
}
