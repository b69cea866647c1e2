/*
Package tracing correlates transport calls in logs.

Every call opens a span with its own ULID-based span id. An upload stores
its trace id in the context with WithTrace, so the probe and every chunk
request of that upload log the same trace_id:

	ctx = tracing.WithTrace(ctx, tracing.TraceID(id.NewUploadTrace()))
	span, ctx := tracing.StartSpan(ctx, "POST /storage/buckets/b/files")
	elapsed := span.Finish(status, err)
	logger.Debug("Call completed", span.Fields()...)

Trace context stays in-process; nothing is added to outgoing headers.
*/
package tracing
