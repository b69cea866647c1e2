package tracing

import (
	"context"
	"time"

	"github.com/GriffinCanCode/appwrite-go/internal/shared/id"
	"go.uber.org/zap"
)

// TraceID groups the calls of one logical operation, such as all chunk
// requests of an upload
type TraceID string

// SpanID identifies a single call
type SpanID string

// Span represents a single transport call
type Span struct {
	TraceID    TraceID
	SpanID     SpanID
	ParentID   SpanID
	Name       string
	StartTime  time.Time
	Duration   time.Duration
	StatusCode int
	Error      error
}

// Context keys for trace propagation
type contextKey string

const (
	traceIDKey contextKey = "trace_id"
	spanIDKey  contextKey = "span_id"
)

// WithTrace returns a context carrying traceID. Spans started from it join
// that trace instead of opening their own.
func WithTrace(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// StartSpan opens a span. The span joins the context's trace, or starts a
// new trace named after itself.
func StartSpan(ctx context.Context, name string) (*Span, context.Context) {
	spanID := SpanID(id.NewCallTrace())

	traceID := GetTraceID(ctx)
	if traceID == "" {
		traceID = TraceID(spanID)
	}

	span := &Span{
		TraceID:   traceID,
		SpanID:    spanID,
		ParentID:  GetSpanID(ctx),
		Name:      name,
		StartTime: time.Now(),
	}

	newCtx := context.WithValue(ctx, traceIDKey, traceID)
	newCtx = context.WithValue(newCtx, spanIDKey, spanID)
	return span, newCtx
}

// Finish records the span's duration and outcome
func (s *Span) Finish(status int, err error) time.Duration {
	s.Duration = time.Since(s.StartTime)
	s.StatusCode = status
	s.Error = err
	return s.Duration
}

// Fields returns the span as log fields
func (s *Span) Fields() []zap.Field {
	fields := []zap.Field{
		zap.String("trace_id", string(s.TraceID)),
		zap.String("span_id", string(s.SpanID)),
	}
	if s.ParentID != "" {
		fields = append(fields, zap.String("parent_id", string(s.ParentID)))
	}
	return fields
}

// GetTraceID retrieves the trace ID from context
func GetTraceID(ctx context.Context) TraceID {
	if traceID, ok := ctx.Value(traceIDKey).(TraceID); ok {
		return traceID
	}
	return ""
}

// GetSpanID retrieves the span ID from context
func GetSpanID(ctx context.Context) SpanID {
	if spanID, ok := ctx.Value(spanIDKey).(SpanID); ok {
		return spanID
	}
	return ""
}
