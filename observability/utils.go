package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/apisvc-dev/obs-shared/metrics"
)

// NoOpObserver is a no-op implementation of Observer. Use it as a
// placeholder in tests or as a default when an Observer dependency is
// required but nothing should happen.
type NoOpObserver struct{}

// ObserveRequest does nothing (no-op).
func (n *NoOpObserver) ObserveRequest(RequestContext) {}

// NewNoOpObserver creates a new NoOpObserver.
func NewNoOpObserver() Observer {
	return &NoOpObserver{}
}

// CollectorObserver records observed requests into an APICollector. It
// exists for request-shaped work that does not go through Instrument,
// such as outbound calls or queue consumers; handlers wrapped with
// Instrument are already recorded and must not be observed again through
// this type.
type CollectorObserver struct {
	Collector *metrics.APICollector
}

func (o CollectorObserver) ObserveRequest(rc RequestContext) {
	_ = o.Collector.RecordRequest(rc.Method, rc.Route, rc.Status, rc.Duration.Seconds())
	if rc.Err != nil {
		_ = o.Collector.RecordError(requestErrKind(rc.Err))
	}
}

// responseRecorder captures the status written by the wrapped handler for
// the completion log entry.
type responseRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (r *responseRecorder) WriteHeader(status int) {
	if !r.wrote {
		r.status = status
		r.wrote = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.wrote = true
	return r.ResponseWriter.Write(b)
}

// logRequests is the logging half of Instrument: a start entry at debug,
// a completion entry at info (error for 5xx or panic) with the request
// id, status and duration, and the observer fan-out. Panics pass through
// unchanged after being logged.
func (p *Provider) logRequests(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()

		p.httpLog.DebugWithContext(r.Context(), "request started", nil, map[string]interface{}{
			"request_id": requestID,
			"method":     r.Method,
			"route":      route,
		})

		rw := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			duration := time.Since(start)
			status := rw.status

			var reqErr error
			panicked := recover()
			if panicked != nil {
				if !rw.wrote {
					status = http.StatusInternalServerError
				}
				reqErr = fmt.Errorf("panic: %v", panicked)
			} else if ctxErr := r.Context().Err(); ctxErr != nil {
				reqErr = ctxErr
			}

			fields := map[string]interface{}{
				"request_id":  requestID,
				"method":      r.Method,
				"route":       route,
				"status":      status,
				"duration_ms": float64(duration.Microseconds()) / 1000.0,
			}
			if panicked != nil || status >= http.StatusInternalServerError {
				p.httpLog.ErrorWithContext(r.Context(), "request failed", reqErr, fields)
			} else {
				p.httpLog.InfoWithContext(r.Context(), "request completed", reqErr, fields)
			}

			rc := RequestContext{
				Method:   r.Method,
				Route:    route,
				Status:   status,
				Duration: duration,
				Err:      reqErr,
			}
			for _, o := range p.observers {
				o.ObserveRequest(rc)
			}

			if panicked != nil {
				panic(panicked)
			}
		}()

		next.ServeHTTP(rw, r)
	})
}

// requestErrKind classifies a request error for bounded reporting: a
// cancelled context, a deadline, or anything else by type.
func requestErrKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return fmt.Sprintf("%T", err)
	}
}
