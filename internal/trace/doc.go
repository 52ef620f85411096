// Package trace provides structured tracing for the tokstream driver and CLI.
//
// Enable it from the command line:
//
//	tokstream tokenize --trace=- --trace-level=detail main.tok
//
// Tracers:
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write of text or NDJSON lines
//
// Levels gate events by scope: phase shows driver and per-file spans, detail
// adds the load/lex/filter/stream phases, debug shows everything. Error events
// pass at every level except off.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "lex", trace.ParentID(ctx))
//	defer span.End("")
package trace
