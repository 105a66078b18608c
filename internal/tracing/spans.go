package tracing

// Span attribute keys.
const (
	// Evaluation attributes
	AttrPatternLength = "pattern.length"
	AttrFlags         = "pattern.flags"
	AttrDialect       = "pattern.dialect"
	AttrSubjectLength = "subject.length"
	AttrMatchCount    = "match.count"
	AttrCacheHit      = "compile.cache_hit"

	// RPC attributes
	AttrRPCMethod = "rpc.method"
	AttrRPCID     = "rpc.id"

	// Error attributes
	AttrErrorKind    = "error.kind"
	AttrErrorMessage = "error.message"
)

// Span names.
const (
	SpanEvaluate = "session.evaluate"
	SpanCompile  = "pattern.compile"
	SpanResolve  = "pattern.resolve"
	SpanRender   = "highlight.render"
	SpanReplace  = "pattern.replace"

	SpanPrefixRPC = "rpc."
)

// Event names.
const (
	EventPatternRejected = "pattern.rejected"
	EventBudgetExceeded  = "pattern.budget_exceeded"
)
