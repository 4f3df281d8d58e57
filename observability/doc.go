// Package observability composes the logger and metrics packages into the
// single surface a service embeds: one environment-driven Config, one
// Provider holding the constructed components, and one Instrument call
// per route.
//
// # Architecture
//
// The logger and the metrics collector never call each other. This
// package is the only place they meet: Instrument layers the metrics
// lifecycle middleware around a logging middleware, so a failure or
// change in one never affects the other.
//
//	request → metrics wrapper → logging wrapper → handler
//
// Per request, the wrappers produce:
//   - api_requests_total, api_request_duration_seconds observations and
//     the api_active_requests gauge window (metrics package);
//   - a "request started" debug entry and a "request completed" info
//     entry (error for 5xx or panic) carrying a generated request id,
//     method, route, status and duration (logger package, child logger
//     "http");
//   - an ObserveRequest notification to every Observer registered with
//     WithObserver.
//
// Panics are logged and counted, then re-raised unchanged so the
// server's own recovery still runs.
//
// # Usage
//
//	cfg, err := observability.LoadConfig()
//	if err != nil {
//	    // fatal: the environment is malformed
//	}
//	p, err := observability.NewProvider(cfg)
//	if err != nil {
//	    // fatal: logger configuration error
//	}
//	p.Start(ctx)
//	defer p.Close(ctx)
//
//	mux := http.NewServeMux()
//	mux.Handle("/v1/users", p.Instrument("/v1/users", usersHandler))
//
// Or with Fx:
//
//	app := fx.New(
//	    observability.FXModule,
//	    fx.Invoke(registerRoutes),
//	)
//	app.Run()
//
// # Configuration
//
// Config is read from the environment (a .env file is applied first when
// present):
//
//	SERVICE_NAME=text-splitter
//	ENVIRONMENT=production            # default "development"
//	LOG_LEVEL=info                    # default "info"
//	LOG_FILE_PATH=/var/log/apis       # enables the rotating file sink
//	ELASTICSEARCH_HOST=http://logs:9200   # enables the remote sink
//	ELASTICSEARCH_INDEX_PREFIX=api-logs   # default "api-logs"
//	METRICS_SYSTEM_ADDRESS=:9090          # "" disables
//	METRICS_APPLICATION_ADDRESS=:9091     # "" disables
//
// # Testing instrumented code
//
// Code that only needs to know a request happened should depend on the
// Observer interface and receive a NoOpObserver or a recording fake in
// tests, keeping real registries and sinks out of unit tests entirely.
package observability
