// Package metrics provides Prometheus-based monitoring and metrics collection
// functionality for Go HTTP services.
//
// The metrics package is designed to provide a standardized observability
// approach with dual HTTP endpoints for system-level and application-level
// metrics, a ready-made request-level collector with lifecycle middleware,
// and integration with the Fx dependency injection framework.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Defines the contract for metric creation
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - APICollector struct: The standard request-level series plus HTTP middleware
//   - NewMetrics / NewAPICollector constructors: Return concrete types
//   - FX module: Provides all of the above for dependency injection
//
// # Dual Endpoint Design
//
// The package provides two separate Prometheus endpoints:
//
// 1. System Metrics Endpoint (default: :9090)
//   - Go runtime metrics (goroutines, memory, GC stats)
//   - Process metrics (CPU, file descriptors, memory)
//   - Build info metrics
//   - Automatically registered, no user action required
//
// 2. Application Metrics Endpoint (default: :9091)
//   - The request-level series maintained by APICollector
//   - User-defined custom metrics
//   - No default runtime metrics - clean slate for application observability
//
// This separation allows different scrape configurations (e.g. system
// metrics every 15s, app metrics every 5s), different access controls,
// and cleaner cardinality management.
//
// Both registries wrap every metric with a constant `service` label taken
// from Config.ServiceName, so fleets of services can share dashboards.
//
// # Request-Level Series
//
// APICollector owns the series every HTTP service exposes:
//
//	api_requests_total{service, method, endpoint, status}   counter
//	api_errors_total{service, error_type}                   counter
//	api_request_duration_seconds{service, method, endpoint} histogram
//	api_active_requests{service}                            gauge
//	api_build_info{service, version, commit}                gauge
//
// The histogram uses DefaultLatencyBuckets ({0.1, 0.5, 1.0, 2.0, 5.0}
// seconds). Handlers are instrumented by wrapping them with
// (*APICollector).Handler, which raises the in-flight gauge for the
// duration of the call and records count and latency exactly once on
// completion, including when the handler panics or the request context
// is cancelled.
//
//	c := metrics.NewAPICollector(m)
//	mux := http.NewServeMux()
//	mux.Handle("/v1/users", c.Handler("/v1/users", usersHandler))
//
// The route passed to Handler must be the route template the handler is
// mounted at, never the raw request path: labels key long-lived series,
// so unbounded values (raw paths, user IDs, query strings) would grow
// the registry without bound. RecordRequest and RecordError reject the
// obvious offenders with ErrInvalidLabelValue.
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create metrics directly:
//
//	cfg := metrics.Config{
//		ServiceName: "user-service",
//	}
//	m := metrics.NewMetrics(cfg)
//
//	go m.SystemServer.ListenAndServe()
//	go m.ApplicationServer.ListenAndServe()
//
//	requestCounter := m.CreateCounter(
//		"jobs_processed_total",
//		"Total background jobs processed",
//		[]string{"kind", "status"},
//	)
//	requestCounter.WithLabelValues("import", "ok").Inc()
//
// Access metrics at:
//   - System: http://localhost:9090/metrics
//   - Application: http://localhost:9091/metrics
//
// # FX Module Integration
//
// For production applications using Uber's fx, use the FXModule:
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{
//				ServiceName: "user-service",
//			}
//		}),
//		fx.Invoke(func(c *metrics.APICollector) {
//			c.SetBuildInfo("1.4.2", "9f8c1d0")
//		}),
//	)
//	app.Run()
//
// # Configuration
//
// The metrics servers can be configured via environment variables:
//
//	METRICS_SYSTEM_ADDRESS=:9090          # System metrics endpoint address
//	METRICS_APPLICATION_ADDRESS=:9091     # Application metrics endpoint address
//	METRICS_SERVICE_NAME=user-service     # Adds service label to all metrics
//
// Set an address to the empty string to disable that endpoint:
//
//	cfg := metrics.Config{
//		SystemMetricsAddress:      metrics.Ptr(""), // Disable system metrics
//		ApplicationMetricsAddress: nil,             // Use default :9091
//		ServiceName:               "user-service",
//	}
//
// # Performance Considerations
//
// 1. Label Cardinality:
//   - Keep label values bounded (avoid user IDs, request IDs, timestamps)
//   - High cardinality causes memory growth that never reverses
//   - Good: []string{"method", "status"} with ~10 combinations
//   - Bad: []string{"user_id"} with millions of users
//
// 2. Histogram vs Summary:
//   - Histograms: server-side quantile calculation, aggregatable across instances
//   - Summaries: client-side quantile calculation, NOT aggregatable
//   - Prefer histograms unless you need precise quantiles per instance
//
// # Thread Safety
//
// All methods on Metrics, APICollector and the metric types are safe for
// concurrent use by multiple goroutines. No additional synchronization is
// needed.
//
// # Testing
//
// For unit tests, disable the servers and assert on the registry:
//
//	func TestHandler(t *testing.T) {
//		m := metrics.NewMetrics(metrics.Config{
//			SystemMetricsAddress:      metrics.Ptr(""),
//			ApplicationMetricsAddress: metrics.Ptr(":0"),
//			ServiceName:               "test",
//		})
//		c := metrics.NewAPICollector(m)
//
//		// drive requests through c.Handler, then verify with
//		// prometheus/testutil against m.ApplicationRegistry
//	}
package metrics
