// Package trace records what the analysis driver is doing.
//
// Tracing is off by default. The CLI enables it with
//
//	macroessentials diag --trace=- --trace-level=detail Sources/
//
// Events form spans: a driver span per command, one span per file, pass
// spans for parsing and the member walk and, at debug level, one span per
// type declaration.
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory for a dump on failure
//   - fanout: stream and ring together (ModeBoth)
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only the ring dump after a failed run
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file spans
//   - LevelDebug: everything including per-type spans
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopeFile, path)
//	defer span.End("")
package trace
