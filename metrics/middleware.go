package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// statusRecorder captures the status code written by the wrapped handler
// so the middleware can label the request counter with it.
type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wrote {
		r.status = status
		r.wrote = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	// An implicit 200 from the first body write counts as written.
	r.wrote = true
	return r.ResponseWriter.Write(p)
}

// Handler wraps an HTTP handler with the full request lifecycle
// instrumentation: the in-flight gauge is raised for the duration of the
// call, and on completion the request counter and latency histogram are
// updated exactly once, whether the handler returned normally, panicked,
// or had its context cancelled.
//
// route must be the route template the handler is mounted at (e.g.
// "/v1/users/{id}"), never the raw request path, so that label
// cardinality stays bounded.
//
// Failure classification:
//   - a panic is counted in api_errors_total with the panic value's type
//     name, recorded as status 500 when the handler had not yet written
//     a response, and re-raised unchanged so the server's own recovery
//     still runs;
//   - a cancelled or timed-out request context is counted as
//     "cancelled" or "timeout";
//   - an error status written by the handler itself is recorded in the
//     request counter only, since the handler already handled it.
func (c *APICollector) Handler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		c.EnterRequest()
		start := time.Now()

		defer func() {
			duration := time.Since(start).Seconds()
			status := rec.status

			p := recover()
			if p != nil {
				if !rec.wrote {
					status = http.StatusInternalServerError
				}
				// The type name is bounded; the panic value itself is not.
				_ = c.RecordError(fmt.Sprintf("%T", p))
			} else if err := r.Context().Err(); err != nil {
				kind := "cancelled"
				if errors.Is(err, context.DeadlineExceeded) {
					kind = "timeout"
				}
				_ = c.RecordError(kind)
			}

			if err := c.RecordRequest(r.Method, route, status, duration); err != nil {
				// The request still happened; account for it in the
				// error series rather than dropping it silently.
				_ = c.RecordError("label_validation")
			}
			c.ExitRequest()

			if p != nil {
				panic(p)
			}
		}()

		next.ServeHTTP(rec, r)
	})
}
