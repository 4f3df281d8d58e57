package logger

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// reservedKeys are the envelope keys the logger itself owns. A
// caller-supplied field with one of these names is dropped and reported
// under "field_collision" instead of shadowing the envelope.
var reservedKeys = map[string]struct{}{
	"timestamp":   {},
	"level":       {},
	"service":     {},
	"logger":      {},
	"message":     {},
	"environment": {},
	"exception":   {},
}

// tracebackUnavailable replaces the exception traceback when formatting the
// stack itself fails; a broken diagnostic must not turn into a second error.
const tracebackUnavailable = "traceback unavailable"

// exceptionInfo is the envelope representation of an error: the Go type of
// the error value, its message, and the stack at the emission site.
type exceptionInfo struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Traceback string `json:"traceback"`
}

// parseLevel maps a configured level name onto the zap level backing it.
// Matching is case-insensitive; an empty value defaults to info. Anything
// else is a configuration error.
func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case Trace:
		return traceLevel, nil
	case Debug:
		return zapcore.DebugLevel, nil
	case Info, "":
		return zapcore.InfoLevel, nil
	case Warning, "warning":
		return zapcore.WarnLevel, nil
	case Error:
		return zapcore.ErrorLevel, nil
	case Fatal:
		return zapcore.FatalLevel, nil
	default:
		return zapcore.InvalidLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}

// extractTracingFields extracts tracing information from the given context
// and returns it as Zap fields. If tracing is disabled or the context holds
// no valid recording span, it returns an empty slice.
func (l *LoggerClient) extractTracingFields(ctx context.Context) []zap.Field {
	if !l.tracingEnabled || ctx == nil {
		return nil
	}

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return nil
	}

	spanContext := span.SpanContext()
	if !spanContext.IsValid() {
		return nil
	}

	return []zap.Field{
		zap.String("trace_id", spanContext.TraceID().String()),
		zap.String("span_id", spanContext.SpanID().String()),
	}
}

// convertToZapFields converts an error and additional field maps into Zap's
// structured logging fields, enforcing the envelope contract:
//
//   - a non-nil error becomes the "exception" object with the error's type,
//     message and a formatted stack trace;
//   - caller fields whose keys collide with reserved envelope keys are
//     dropped, and the dropped key names are reported (sorted) under the
//     self-diagnostic "field_collision" field.
//
// If multiple field maps contain the same non-reserved key, the later maps
// override the earlier ones.
func (l *LoggerClient) convertToZapFields(err error, fields ...map[string]interface{}) []zap.Field {
	var zapFields []zap.Field
	if err != nil {
		zapFields = append(zapFields, zap.Any("exception", newExceptionInfo(err)))
	}

	var collisions []string
	for _, fieldMap := range fields {
		for key, value := range fieldMap {
			if _, reserved := reservedKeys[key]; reserved {
				collisions = append(collisions, key)
				continue
			}
			zapFields = append(zapFields, zap.Any(key, value))
		}
	}
	if len(collisions) > 0 {
		sort.Strings(collisions)
		zapFields = append(zapFields, zap.Strings("field_collision", collisions))
	}
	return zapFields
}

// newExceptionInfo builds the envelope's exception object for err.
func newExceptionInfo(err error) exceptionInfo {
	return exceptionInfo{
		Type:      fmt.Sprintf("%T", err),
		Message:   err.Error(),
		Traceback: formatTraceback(),
	}
}

// formatTraceback captures the current stack. A failure while formatting
// yields the fixed diagnostic string instead of propagating.
func formatTraceback() (tb string) {
	defer func() {
		if recover() != nil {
			tb = tracebackUnavailable
		}
	}()
	return string(debug.Stack())
}

// Trace logs a trace-level message, below debug. Use Trace for very
// fine-grained diagnostics that would be too noisy even at debug level.
//
// Parameters:
//   - msg: The log message
//   - err: An error to include in the log entry, or nil if no error
//   - fields: Variable number of map[string]interface{} containing additional structured data
func (l *LoggerClient) Trace(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Log(traceLevel, msg, l.convertToZapFields(err, fields...)...)
}

// Debug logs a debug-level message, useful for development and troubleshooting.
//
// Parameters:
//   - msg: The log message
//   - err: An error to include in the log entry, or nil if no error
//   - fields: Variable number of map[string]interface{} containing additional structured data
//
// Example:
//
//	logger.Debug("processing request", nil, map[string]interface{}{
//	    "request_id":   "abc-123",
//	    "payload_size": 1024,
//	})
func (l *LoggerClient) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, l.convertToZapFields(err, fields...)...)
}

// Info logs an informational message, along with an optional error and
// structured fields. Use Info for general application progress and
// successful operations.
//
// Parameters:
//   - msg: The log message
//   - err: An error to include in the log entry, or nil if no error
//   - fields: Variable number of map[string]interface{} containing additional structured data
//
// Example:
//
//	logger.Info("request completed", nil, map[string]interface{}{
//	    "method": "POST",
//	    "route":  "/v1/split",
//	})
func (l *LoggerClient) Info(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, l.convertToZapFields(err, fields...)...)
}

// Warn logs a warning message, indicating potential issues that aren't
// necessarily errors.
//
// Parameters:
//   - msg: The log message
//   - err: An error to include in the log entry, or nil if no error
//   - fields: Variable number of map[string]interface{} containing additional structured data
func (l *LoggerClient) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, l.convertToZapFields(err, fields...)...)
}

// Error logs an error message, including details of the error and additional
// context fields. The error is rendered into the envelope's "exception"
// object with its type, message and stack trace.
//
// Parameters:
//   - msg: The log message
//   - err: An error to include in the log entry, or nil if no error
//   - fields: Variable number of map[string]interface{} containing additional structured data
func (l *LoggerClient) Error(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, l.convertToZapFields(err, fields...)...)
}

// Fatal logs a critical error message and terminates the application.
// Use Fatal only for errors that make it impossible for the application to
// continue running. This method calls os.Exit(1) after logging the message.
//
// Note: This function does not return as it terminates the application.
func (l *LoggerClient) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Fatal(msg, l.convertToZapFields(err, fields...)...)
}

// TraceWithContext logs a trace-level message with trace context.
// When tracing is enabled and ctx carries a recording span, trace_id and
// span_id are attached to the entry.
func (l *LoggerClient) TraceWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	zapFields := l.convertToZapFields(err, fields...)
	zapFields = append(zapFields, l.extractTracingFields(ctx)...)
	l.Zap.Log(traceLevel, msg, zapFields...)
}

// DebugWithContext logs a debug-level message with trace context.
// When tracing is enabled and ctx carries a recording span, trace_id and
// span_id are attached to the entry.
func (l *LoggerClient) DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	zapFields := l.convertToZapFields(err, fields...)
	zapFields = append(zapFields, l.extractTracingFields(ctx)...)
	l.Zap.Debug(msg, zapFields...)
}

// InfoWithContext logs an informational message with trace context.
// When tracing is enabled and ctx carries a recording span, trace_id and
// span_id are attached to the entry.
func (l *LoggerClient) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	zapFields := l.convertToZapFields(err, fields...)
	zapFields = append(zapFields, l.extractTracingFields(ctx)...)
	l.Zap.Info(msg, zapFields...)
}

// WarnWithContext logs a warning message with trace context.
// When tracing is enabled and ctx carries a recording span, trace_id and
// span_id are attached to the entry.
func (l *LoggerClient) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	zapFields := l.convertToZapFields(err, fields...)
	zapFields = append(zapFields, l.extractTracingFields(ctx)...)
	l.Zap.Warn(msg, zapFields...)
}

// ErrorWithContext logs an error message with trace context.
// When tracing is enabled and ctx carries a recording span, trace_id and
// span_id are attached to the entry.
func (l *LoggerClient) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	zapFields := l.convertToZapFields(err, fields...)
	zapFields = append(zapFields, l.extractTracingFields(ctx)...)
	l.Zap.Error(msg, zapFields...)
}

// FatalWithContext logs a critical error message with trace context and
// terminates the application.
//
// Note: This function does not return as it terminates the application.
func (l *LoggerClient) FatalWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	zapFields := l.convertToZapFields(err, fields...)
	zapFields = append(zapFields, l.extractTracingFields(ctx)...)
	l.Zap.Fatal(msg, zapFields...)
}

// Named returns a logger annotated with the given subsystem name. The name
// is written into every envelope under the reserved "logger" key; nested
// calls join names with a period, following zap's naming. The child shares
// the parent's sinks and must not be closed independently.
func (l *LoggerClient) Named(name string) Logger {
	return &LoggerClient{
		Zap:            l.Zap.Named(name),
		tracingEnabled: l.tracingEnabled,
	}
}
