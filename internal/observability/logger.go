// Package observability provides structured logging for the shapematch
// tooling: an slog handler that injects OpenTelemetry trace context and
// service metadata into every record.
package observability

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

const (
	attrTraceID = "trace_id"
	attrSpanID  = "span_id"
	attrService = "service"
	attrEnv     = "env"
)

// Config controls logger construction.
type Config struct {
	// ServiceName identifies the emitting binary in every record.
	ServiceName string

	// Environment names the deployment environment, omitted when empty.
	Environment string

	// Level is the textual minimum level: debug, info, warn, error.
	Level string

	// JSON selects the JSON handler over the text handler.
	JSON bool
}

// TracingHandler is an [slog.Handler] that injects OpenTelemetry trace context
// (trace_id, span_id) and service metadata into every log record.
// Service attributes are pre-attached at construction so they remain at the
// top level even when groups are used.
type TracingHandler struct {
	inner slog.Handler
}

// NewTracingHandler wraps an [slog.Handler], injecting trace context and
// service metadata.
func NewTracingHandler(inner slog.Handler, service, env string) *TracingHandler {
	attrs := []slog.Attr{
		slog.String(attrService, service),
	}

	if env != "" {
		attrs = append(attrs, slog.String(attrEnv, env))
	}

	return &TracingHandler{
		inner: inner.WithAttrs(attrs),
	}
}

// Enabled delegates to the inner handler.
func (th *TracingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return th.inner.Enabled(ctx, level)
}

// Handle adds trace context attributes from the span context, then delegates.
func (th *TracingHandler) Handle(ctx context.Context, record slog.Record) error {
	sc := trace.SpanContextFromContext(ctx)
	if sc.IsValid() {
		record.AddAttrs(
			slog.String(attrTraceID, sc.TraceID().String()),
			slog.String(attrSpanID, sc.SpanID().String()),
		)
	}

	err := th.inner.Handle(ctx, record)
	if err != nil {
		return fmt.Errorf("tracing handler: %w", err)
	}

	return nil
}

// WithAttrs returns a new TracingHandler with additional attributes on the inner handler.
func (th *TracingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TracingHandler{
		inner: th.inner.WithAttrs(attrs),
	}
}

// WithGroup returns a new TracingHandler with a group prefix on the inner handler.
func (th *TracingHandler) WithGroup(name string) slog.Handler {
	return &TracingHandler{
		inner: th.inner.WithGroup(name),
	}
}

// NewLogger builds the process logger on stderr per cfg.
func NewLogger(cfg Config) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var inner slog.Handler
	if cfg.JSON {
		inner = slog.NewJSONHandler(os.Stderr, handlerOpts)
	} else {
		inner = slog.NewTextHandler(os.Stderr, handlerOpts)
	}

	return slog.New(NewTracingHandler(inner, cfg.ServiceName, cfg.Environment))
}

// ParseLevel maps a level name onto an [slog.Level], defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
