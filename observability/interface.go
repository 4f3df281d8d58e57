package observability

import "time"

// RequestContext describes one completed instrumented request: what was
// called, how it ended and how long it took. Route is the route template
// the handler is mounted at, never the raw request path.
type RequestContext struct {
	Method   string
	Route    string
	Status   int
	Duration time.Duration

	// Err is non-nil when the request ended abnormally: a recovered
	// panic or a cancelled/timed-out request context. A handler-written
	// error status alone does not set it.
	Err error
}

// Observer receives a notification for every request completed by an
// instrumented handler, after counters and logs have been recorded.
// Implementations must be safe for concurrent use and must return
// quickly; they run on the request goroutine.
//
// Inject fakes implementing this interface to test instrumented code
// without a real metrics registry or log sink.
type Observer interface {
	ObserveRequest(RequestContext)
}
