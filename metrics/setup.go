package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates two separate Prometheus registries and HTTP servers:
// 1. System metrics (Go runtime, process, build info) - exposed on SystemServer
// 2. Application metrics (user-defined custom metrics) - exposed on ApplicationServer
//
// This separation allows different scrape configurations and access controls
// for system-level vs application-level observability.
type Metrics struct {
	// SystemServer defines the HTTP server for the /metrics endpoint exposing
	// Go runtime, process, and build info metrics.
	// Endpoint: SystemMetricsAddress (default: :9090)
	SystemServer *http.Server

	// ApplicationServer defines the HTTP server for the /metrics endpoint exposing
	// user-defined application metrics.
	// Endpoint: ApplicationMetricsAddress (default: :9091)
	ApplicationServer *http.Server

	// SystemRegistry is the Prometheus registry for system-level metrics
	// (Go runtime, process collectors, build info).
	SystemRegistry *prometheus.Registry

	// ApplicationRegistry is the Prometheus registry for user-defined metrics.
	// All metrics created via CreateCounter, CreateGauge, CreateHistogram, CreateSummary
	// are registered here.
	ApplicationRegistry *prometheus.Registry

	// wrappedApplicationRegisterer is the service-label-wrapped registerer used internally
	// for registering application metrics with automatic service label.
	wrappedApplicationRegisterer prometheus.Registerer
}

// NewMetrics initializes and returns a new instance of the Metrics struct.
// It sets up two separate Prometheus registries and HTTP servers:
//
// 1. System Metrics Endpoint (default: :9090):
//   - Go runtime metrics (goroutines, GC stats, heap usage)
//   - Process metrics (CPU time, memory, file descriptors)
//   - Build info metrics
//
// 2. Application Metrics Endpoint (default: :9091):
//   - User-defined metrics created via CreateCounter, CreateGauge, etc.
//   - No default metrics - fully controlled by the application
//
// Both registries automatically wrap all metrics with a constant `service` label
// for easier aggregation and filtering in multi-service environments.
//
// Example:
//
//	cfg := metrics.Config{
//	    ServiceName: "user-service",
//	}
//	m := metrics.NewMetrics(cfg)
//	go m.SystemServer.ListenAndServe()
//	go m.ApplicationServer.ListenAndServe()
//
// Access metrics at:
//   - System metrics: http://localhost:9090/metrics
//   - Application metrics: http://localhost:9091/metrics
func NewMetrics(cfg Config) *Metrics {
	m := &Metrics{}

	systemAddr := DefaultSystemMetricsAddress
	if cfg.SystemMetricsAddress != nil {
		systemAddr = *cfg.SystemMetricsAddress
	}

	// An empty address explicitly disables the endpoint.
	if systemAddr != "" {
		systemRegistry := prometheus.NewRegistry()

		wrappedSystemRegistry := prometheus.WrapRegistererWith(
			prometheus.Labels{"service": cfg.ServiceName},
			systemRegistry,
		)

		wrappedSystemRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)

		m.SystemRegistry = systemRegistry
		m.SystemServer = &http.Server{
			Addr:    systemAddr,
			Handler: promhttp.HandlerFor(systemRegistry, promhttp.HandlerOpts{}),
		}
	}

	// The application registry always exists so metrics can be created and
	// exported even when the scrape endpoint is disabled; only the server
	// is address-gated.
	m.ApplicationRegistry = prometheus.NewRegistry()
	m.wrappedApplicationRegisterer = prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		m.ApplicationRegistry,
	)

	appAddr := DefaultApplicationMetricsAddress
	if cfg.ApplicationMetricsAddress != nil {
		appAddr = *cfg.ApplicationMetricsAddress
	}

	if appAddr != "" {
		m.ApplicationServer = &http.Server{
			Addr:    appAddr,
			Handler: promhttp.HandlerFor(m.ApplicationRegistry, promhttp.HandlerOpts{}),
		}
	}

	return m
}
