package metrics

// MetricsCollector provides an interface for creating and registering
// application metrics. It abstracts metric operations with support for
// counters, histograms, gauges, and summaries without exposing any
// Prometheus-specific types, allowing alternative implementations or
// testing mocks.
//
// This interface is implemented by the concrete *Metrics type. All metrics
// created through it are registered to the application registry and exposed
// on the application metrics endpoint (default: :9091), automatically
// labeled with the owning service's name.
type MetricsCollector interface {
	// CreateCounter creates a new counter metric and registers it to the
	// application metrics registry. Counters are cumulative metrics that
	// only increase over time (e.g. total requests).
	//
	// Example:
	//   counter := m.CreateCounter("jobs_total", "Total jobs processed", []string{"kind"})
	//   counter.WithLabelValues("import").Inc()
	CreateCounter(name, help string, labels []string) Counter

	// CreateHistogram creates a new histogram metric and registers it to
	// the application metrics registry. Histograms track distributions of
	// values (e.g. request durations) across the configured buckets.
	CreateHistogram(name, help string, labels []string, buckets []float64) Histogram

	// CreateGauge creates a new gauge metric and registers it to the
	// application metrics registry. Gauges represent values that can go up
	// and down (e.g. in-flight requests, queue depth).
	CreateGauge(name, help string, labels []string) Gauge

	// CreateSummary creates a new summary metric and registers it to the
	// application metrics registry. Objectives define the tracked quantile
	// ranks (e.g. 0.5 for the median, 0.99 for the 99th percentile).
	CreateSummary(name, help string, labels []string, objectives map[float64]float64) Summary
}

// Counter represents a cumulative metric that only increases.
type Counter interface {
	// WithLabelValues returns the Counter for the given label values. The
	// number of values must match the labels defined at creation.
	WithLabelValues(lvs ...string) Counter

	// Inc increments the counter by 1.
	Inc()

	// Add adds the given value to the counter. The value must be >= 0.
	Add(val float64)
}

// Gauge represents a metric that can arbitrarily go up and down.
type Gauge interface {
	// WithLabelValues returns the Gauge for the given label values. The
	// number of values must match the labels defined at creation.
	WithLabelValues(lvs ...string) Gauge

	// Set sets the gauge to an arbitrary value.
	Set(val float64)

	// Inc increments the gauge by 1.
	Inc()

	// Dec decrements the gauge by 1.
	Dec()

	// Add adds the given value to the gauge.
	Add(val float64)

	// Sub subtracts the given value from the gauge.
	Sub(val float64)
}

// Histogram tracks the distribution of observations across fixed buckets.
type Histogram interface {
	// WithLabelValues returns the Observer for the given label values. The
	// number of values must match the labels defined at creation.
	WithLabelValues(lvs ...string) Observer

	// Observe adds a single observation to the histogram.
	Observe(val float64)
}

// Summary calculates streaming quantiles of observed values on the client side.
type Summary interface {
	// WithLabelValues returns the Observer for the given label values. The
	// number of values must match the labels defined at creation.
	WithLabelValues(lvs ...string) Observer

	// Observe adds a single observation to the summary.
	Observe(val float64)
}

// Observer is the common interface for metrics that observe values
// (Histogram and Summary).
type Observer interface {
	// Observe adds a single observation to the metric.
	Observe(val float64)
}
