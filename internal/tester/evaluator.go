// Package tester ties the pattern tokenizer, match resolver and highlight
// renderer together into one evaluation step, and hosts the mutable session
// state the terminal UI edits.
package tester

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/rexy/internal/cachemanager"
	"github.com/zjrosen/rexy/internal/highlight"
	"github.com/zjrosen/rexy/internal/log"
	"github.com/zjrosen/rexy/internal/regex"
	"github.com/zjrosen/rexy/internal/tracing"
)

const (
	// DefaultCacheTTL is how long an unused compiled pattern stays cached.
	DefaultCacheTTL = 10 * time.Minute

	defaultCacheCleanup = time.Minute
)

// Input is everything one evaluation depends on.
type Input struct {
	Pattern     string  `json:"pattern" yaml:"pattern"`
	Flags       string  `json:"flags" yaml:"flags"`
	Subject     string  `json:"subject" yaml:"subject"`
	Replacement *string `json:"replacement,omitempty" yaml:"replacement,omitempty"`
}

// Snapshot is the immutable result of one evaluation.
type Snapshot struct {
	Generation uint64
	Input      Input
	Flags      regex.Flags
	Groups     []regex.GroupInfo
	Matches    []regex.MatchRecord

	// Err is a *regex.PatternError, or nil.
	Err error

	Pattern highlight.MarkedText
	Subject highlight.MarkedText

	// Replaced holds the substituted subject when Input.Replacement is set
	// and the pattern is valid.
	Replaced    string
	HasReplaced bool

	CacheHit bool
	Elapsed  time.Duration
}

// PatternError returns Err as a *regex.PatternError, or nil.
func (s Snapshot) PatternError() *regex.PatternError {
	if pe, ok := regex.AsPatternError(s.Err); ok {
		return pe
	}
	return nil
}

// CacheKey identifies a compiled pattern: the compile-relevant flags plus the
// source.
type CacheKey string

type compileRequest struct {
	source string
	flags  regex.Flags
	loaded *bool
}

// Evaluator runs one evaluation cycle: tokenize, compile (cached), resolve,
// render and optionally replace. It holds no per-input state and is safe for
// concurrent use.
type Evaluator struct {
	engine   regex.Engine
	budget   time.Duration
	palette  highlight.Palette
	cache    cachemanager.CacheManager[CacheKey, regex.Compiled]
	cacheTTL time.Duration
	tracer   trace.Tracer
	now      func() time.Time

	resolver *regex.Resolver
	renderer *highlight.Renderer
	compiler *cachemanager.ReadThroughCache[CacheKey, regex.Compiled, compileRequest]
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithEngine sets the pattern engine. Defaults to regexp2 in ECMAScript mode.
func WithEngine(engine regex.Engine) EvaluatorOption {
	return func(e *Evaluator) { e.engine = engine }
}

// WithBudget sets the whole-evaluation time budget.
func WithBudget(d time.Duration) EvaluatorOption {
	return func(e *Evaluator) { e.budget = d }
}

// WithPalette sets the capture-group palette.
func WithPalette(p highlight.Palette) EvaluatorOption {
	return func(e *Evaluator) { e.palette = p }
}

// WithCache replaces the compiled-pattern cache.
func WithCache(cache cachemanager.CacheManager[CacheKey, regex.Compiled], ttl time.Duration) EvaluatorOption {
	return func(e *Evaluator) {
		e.cache = cache
		e.cacheTTL = ttl
	}
}

// WithTracer records evaluation spans on tracer.
func WithTracer(tracer trace.Tracer) EvaluatorOption {
	return func(e *Evaluator) { e.tracer = tracer }
}

// WithClock replaces time.Now for elapsed-time and budget measurement.
func WithClock(now func() time.Time) EvaluatorOption {
	return func(e *Evaluator) { e.now = now }
}

// NewEvaluator creates an evaluator.
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		budget:   regex.DefaultBudget,
		palette:  highlight.DefaultPalette(),
		cacheTTL: DefaultCacheTTL,
		tracer:   noop.NewTracerProvider().Tracer("noop"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.engine == nil {
		e.engine = regex.NewRegexp2Engine(regex.DialectECMAScript, e.budget)
	}
	if e.cache == nil {
		e.cache = cachemanager.NewInMemoryCacheManager[CacheKey, regex.Compiled]("compiled-patterns", e.cacheTTL, defaultCacheCleanup)
	}

	e.resolver = regex.NewResolver(e.engine, regex.WithBudget(e.budget), regex.WithClock(e.now))
	e.renderer = highlight.NewRenderer(e.palette)
	e.compiler = cachemanager.NewReadThroughCache(e.cache, e.compile, false)
	return e
}

// Renderer returns the renderer used for subjects.
func (e *Evaluator) Renderer() *highlight.Renderer {
	return e.renderer
}

// Resolver returns the resolver used for matching.
func (e *Evaluator) Resolver() *regex.Resolver {
	return e.resolver
}

func (e *Evaluator) compile(_ context.Context, req compileRequest) (regex.Compiled, error) {
	*req.loaded = true
	return e.engine.Compile(req.source, req.flags)
}

func cacheKey(source string, flags regex.Flags) CacheKey {
	return CacheKey(flags.Key() + "/" + source)
}

// Evaluate runs one evaluation of in. Pattern errors are reported in
// Snapshot.Err; an empty pattern matches nothing.
func (e *Evaluator) Evaluate(ctx context.Context, in Input) Snapshot {
	started := e.now()
	flags := regex.ParseFlags(in.Flags)

	attrs := []attribute.KeyValue{
		attribute.Int(tracing.AttrPatternLength, len([]rune(in.Pattern))),
		attribute.String(tracing.AttrFlags, flags.String()),
		attribute.Int(tracing.AttrSubjectLength, len([]rune(in.Subject))),
	}
	if d, ok := e.engine.(interface{ Dialect() regex.Dialect }); ok {
		attrs = append(attrs, attribute.String(tracing.AttrDialect, string(d.Dialect())))
	}

	snap, _ := tracing.Run(ctx, e.tracer, tracing.SpanEvaluate, attrs, func(ctx context.Context) (Snapshot, error) {
		snap := e.evaluate(ctx, in, flags)
		span := trace.SpanFromContext(ctx)
		span.SetAttributes(
			attribute.Int(tracing.AttrMatchCount, len(snap.Matches)),
			attribute.Bool(tracing.AttrCacheHit, snap.CacheHit),
		)
		if pe := snap.PatternError(); pe != nil {
			event := tracing.EventPatternRejected
			if pe.Kind == regex.CatastrophicTimeout {
				event = tracing.EventBudgetExceeded
			}
			span.AddEvent(event, trace.WithAttributes(
				attribute.String(tracing.AttrErrorKind, pe.Kind.String()),
				attribute.String(tracing.AttrErrorMessage, pe.Message),
			))
		}
		return snap, snap.Err
	})

	snap.Elapsed = e.now().Sub(started)
	return snap
}

func (e *Evaluator) evaluate(ctx context.Context, in Input, flags regex.Flags) Snapshot {
	snap := Snapshot{
		Input:   in,
		Flags:   flags,
		Pattern: highlight.HighlightPattern(in.Pattern),
	}
	if in.Pattern == "" {
		snap.Subject = e.renderer.Render(in.Subject, nil)
		return snap
	}

	req := compileRequest{source: in.Pattern, flags: flags, loaded: new(bool)}
	compiled, err := tracing.Run(ctx, e.tracer, tracing.SpanCompile, nil, func(ctx context.Context) (regex.Compiled, error) {
		return e.compiler.GetWithRefresh(ctx, cacheKey(in.Pattern, flags), req, e.cacheTTL)
	})
	snap.CacheHit = !*req.loaded
	if err != nil {
		return e.failed(snap, err)
	}
	snap.Groups = compiled.Groups()

	matches, err := tracing.Run(ctx, e.tracer, tracing.SpanResolve, nil, func(context.Context) ([]regex.MatchRecord, error) {
		return e.resolver.ResolveCompiled(compiled, flags, in.Subject)
	})
	if err != nil {
		return e.failed(snap, err)
	}
	snap.Matches = matches

	snap.Subject, _ = tracing.Run(ctx, e.tracer, tracing.SpanRender, nil, func(context.Context) (highlight.MarkedText, error) {
		return e.renderer.Render(in.Subject, matches), nil
	})

	if in.Replacement != nil {
		snap.Replaced, _ = tracing.Run(ctx, e.tracer, tracing.SpanReplace, nil, func(context.Context) (string, error) {
			return regex.ApplyReplacement(in.Subject, matches, snap.Groups, *in.Replacement), nil
		})
		snap.HasReplaced = true
	}
	return snap
}

func (e *Evaluator) failed(snap Snapshot, err error) Snapshot {
	var pe *regex.PatternError
	if !errors.As(err, &pe) {
		// Engines only fail with pattern errors; anything else is reported
		// as a syntax problem so the UI still has a message to show.
		pe = &regex.PatternError{Kind: regex.InvalidSyntax, Message: err.Error(), Pattern: snap.Input.Pattern}
	}
	log.Debug(log.CatSession, "pattern rejected", "kind", pe.Kind.String(), "message", pe.Message)

	snap.Err = pe
	snap.Groups = nil
	snap.Matches = nil
	snap.Subject = e.renderer.Render(snap.Input.Subject, nil)
	return snap
}
