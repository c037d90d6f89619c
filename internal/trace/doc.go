// Package trace records what the analyzer spends its time on.
//
// The incremental database opens a span for every query it recomputes and
// emits a point event for every memo hit; the driver wraps workspace
// loading and per-file diagnosis in spans of its own. A Tracer travels in
// the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "query:infer", 0)
//	defer span.End("")
//
// Levels filter by scope: phase keeps driver and query spans, detail adds
// per-file spans, debug adds memo hits.
package trace
