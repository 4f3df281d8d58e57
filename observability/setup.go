package observability

import (
	"context"
	"net/http"

	"github.com/apisvc-dev/obs-shared/logger"
	"github.com/apisvc-dev/obs-shared/metrics"
)

// Provider bundles the observability components a service constructs once
// per process: the structured logger, the metrics servers and the
// request-level collector. Handlers are wired in through Instrument; the
// logger and the collector stay independent of each other, composed only
// here.
type Provider struct {
	// Logger is the root structured logger, stamped with the service name
	// and environment.
	Logger *logger.LoggerClient

	// Metrics owns the two Prometheus registries and their HTTP servers.
	Metrics *metrics.Metrics

	// Collector maintains the request-level series and provides the
	// metrics half of Instrument.
	Collector *metrics.APICollector

	// httpLog is the child logger request lifecycle entries are written
	// through ("logger": "http" in the envelope).
	httpLog logger.Logger

	observers []Observer
}

// Option customizes a Provider at construction.
type Option func(*Provider)

// WithObserver registers an additional Observer that is notified of every
// request completed by an instrumented handler.
func WithObserver(o Observer) Option {
	return func(p *Provider) {
		p.observers = append(p.observers, o)
	}
}

// NewProvider builds the full observability stack from the environment
// config: a logger with the configured sinks and tracing enabled, the
// dual metrics registries, and the request-level collector. Construction
// fails only on logger configuration errors (unrecognized level,
// unwritable log directory); the metrics servers are created but not
// started until Start is called.
func NewProvider(cfg Config, opts ...Option) (*Provider, error) {
	log, err := logger.NewLoggerClient(logger.Config{
		Level:                    cfg.LogLevel,
		ServiceName:              cfg.ServiceName,
		Environment:              cfg.Environment,
		FilePath:                 cfg.LogFilePath,
		ElasticsearchHost:        cfg.ElasticsearchHost,
		ElasticsearchIndexPrefix: cfg.ElasticsearchIndexPrefix,
		EnableTracing:            true,
	})
	if err != nil {
		return nil, err
	}

	m := metrics.NewMetrics(metrics.Config{
		SystemMetricsAddress:      cfg.MetricsSystemAddress,
		ApplicationMetricsAddress: cfg.MetricsApplicationAddress,
		ServiceName:               cfg.ServiceName,
	})

	p := &Provider{
		Logger:    log,
		Metrics:   m,
		Collector: metrics.NewAPICollector(m),
		httpLog:   log.Named("http"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Instrument wraps an HTTP handler with the full request lifecycle:
// metrics (count, latency, in-flight gauge, error classification) and
// structured request logs (request id, method, route, status, duration).
// Observers registered via WithObserver are notified after both.
//
// route must be the route template the handler is mounted at:
//
//	mux.Handle("/v1/users", p.Instrument("/v1/users", usersHandler))
func (p *Provider) Instrument(route string, next http.Handler) http.Handler {
	return p.Collector.Handler(route, p.logRequests(route, next))
}

// Start launches the metrics HTTP servers in background goroutines. The
// logger needs no start step; it accepts entries from construction on.
func (p *Provider) Start(ctx context.Context) error {
	if p.Metrics.SystemServer != nil {
		go func() {
			p.Logger.Info("starting system metrics server", nil, map[string]interface{}{
				"address": p.Metrics.SystemServer.Addr,
			})
			if err := p.Metrics.SystemServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				p.Logger.Error("system metrics server failed", err, nil)
			}
		}()
	}
	if p.Metrics.ApplicationServer != nil {
		go func() {
			p.Logger.Info("starting application metrics server", nil, map[string]interface{}{
				"address": p.Metrics.ApplicationServer.Addr,
			})
			if err := p.Metrics.ApplicationServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				p.Logger.Error("application metrics server failed", err, nil)
			}
		}()
	}
	return nil
}

// Close shuts the metrics servers down gracefully, then flushes and closes
// the logger sinks. The logger goes last so shutdown of the other
// components can still be logged.
func (p *Provider) Close(ctx context.Context) error {
	var err error
	if p.Metrics.SystemServer != nil {
		if serr := p.Metrics.SystemServer.Shutdown(ctx); serr != nil {
			p.Logger.Error("error shutting down system metrics server", serr, nil)
			err = serr
		}
	}
	if p.Metrics.ApplicationServer != nil {
		if serr := p.Metrics.ApplicationServer.Shutdown(ctx); serr != nil {
			p.Logger.Error("error shutting down application metrics server", serr, nil)
			if err == nil {
				err = serr
			}
		}
	}
	if cerr := p.Logger.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
