/*
Package tracing provides lightweight span tracing for script category calls.

A span covers one operation, such as a single call into a script module. Spans
started from a context that already carries a span become its children and
share its trace ID, so one CLI command produces one trace. Completed spans are
reported through zap: successful ones at debug level, failed ones at warn.

# Usage

	tracer := tracing.New("launcher", logger)

	span, ctx := tracer.StartSpan(ctx, "script.get_entries")
	span.SetTag("module", "games")
	entries, err := c.Entries(ctx)
	span.Finish(err)

A nil *Tracer starts nil spans, and all Span methods accept a nil receiver.
*/
package tracing
