package metrics

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/prometheus/common/expfmt"
)

// maxLabelValueLength caps the length of caller-supplied label values.
// Anything longer is almost certainly a raw payload rather than a
// bounded identifier like a method or route template.
const maxLabelValueLength = 100

// APICollector maintains the standard request-level metric series every
// HTTP service exposes: request counts, error counts, latency
// distribution, in-flight gauge, and build info. All series live in the
// application registry of the underlying Metrics instance and carry the
// service label automatically.
//
// The series are:
//
//	api_requests_total{method, endpoint, status}   counter
//	api_errors_total{error_type}                   counter
//	api_request_duration_seconds{method, endpoint} histogram
//	api_active_requests                            gauge
//	api_build_info{version, commit}                gauge (constant 1)
//
// Label values must be bounded: methods, route templates, status codes,
// error type names. Callers must never pass raw paths or user-supplied
// values as labels; RecordRequest and RecordError reject the obvious
// cases with ErrInvalidLabelValue.
type APICollector struct {
	requests  Counter
	errors    Counter
	latency   Histogram
	active    Gauge
	buildInfo Gauge

	registry *Metrics
}

// NewAPICollector creates the request-level series and registers them to
// the application registry of m.
func NewAPICollector(m *Metrics) *APICollector {
	return &APICollector{
		requests: m.CreateCounter(
			"api_requests_total",
			"Total number of API requests",
			[]string{"method", "endpoint", "status"},
		),
		errors: m.CreateCounter(
			"api_errors_total",
			"Total number of API errors",
			[]string{"error_type"},
		),
		latency: m.CreateHistogram(
			"api_request_duration_seconds",
			"Request duration in seconds",
			[]string{"method", "endpoint"},
			DefaultLatencyBuckets,
		),
		active: m.CreateGauge(
			"api_active_requests",
			"Number of active requests",
			nil,
		),
		buildInfo: m.CreateGauge(
			"api_build_info",
			"API build information",
			[]string{"version", "commit"},
		),
		registry: m,
	}
}

// RecordRequest increments the request counter for the given
// method/endpoint/status combination and adds one latency observation.
// The endpoint must be a route template, not a raw request path; raw
// paths with query strings are rejected to protect series cardinality.
func (c *APICollector) RecordRequest(method, endpoint string, status int, seconds float64) error {
	if err := validateLabelValue(method); err != nil {
		return fmt.Errorf("method: %w", err)
	}
	if err := validateLabelValue(endpoint); err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}
	c.requests.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, endpoint).Observe(seconds)
	return nil
}

// RecordError increments the error counter for the given error type.
// The error type should be a bounded classification (a Go type name,
// "cancelled", "timeout"), never a full error message.
func (c *APICollector) RecordError(errorType string) error {
	if err := validateLabelValue(errorType); err != nil {
		return fmt.Errorf("error_type: %w", err)
	}
	c.errors.WithLabelValues(errorType).Inc()
	return nil
}

// EnterRequest increments the in-flight request gauge. Every call must
// be paired with exactly one ExitRequest, typically via defer.
func (c *APICollector) EnterRequest() {
	c.active.Inc()
}

// ExitRequest decrements the in-flight request gauge.
func (c *APICollector) ExitRequest() {
	c.active.Dec()
}

// SetBuildInfo publishes the service's version and commit as a constant
// api_build_info{version, commit} = 1 series.
func (c *APICollector) SetBuildInfo(version, commit string) {
	c.buildInfo.WithLabelValues(version, commit).Set(1)
}

// Export renders the current state of every application series in the
// Prometheus text exposition format, the same representation the
// application metrics endpoint serves.
func (c *APICollector) Export() (string, error) {
	families, err := c.registry.ApplicationRegistry.Gather()
	if err != nil {
		return "", fmt.Errorf("gather metrics: %w", err)
	}
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return "", fmt.Errorf("encode metric family %q: %w", family.GetName(), err)
		}
	}
	return buf.String(), nil
}

// validateLabelValue rejects label values that would blow up series
// cardinality or are plainly malformed.
func validateLabelValue(v string) error {
	if v == "" {
		return fmt.Errorf("%w: empty value", ErrInvalidLabelValue)
	}
	if len(v) > maxLabelValueLength {
		return fmt.Errorf("%w: value exceeds %d characters", ErrInvalidLabelValue, maxLabelValueLength)
	}
	// Query-string characters mean the caller passed a raw URL instead
	// of a route template.
	if strings.ContainsAny(v, "?&=") {
		return fmt.Errorf("%w: %q looks like a raw path, use a route template", ErrInvalidLabelValue, v)
	}
	return nil
}
