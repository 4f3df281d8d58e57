package observability

import (
	"context"

	"go.uber.org/fx"

	"github.com/apisvc-dev/obs-shared/logger"
	"github.com/apisvc-dev/obs-shared/metrics"
)

// FXModule defines the all-in-one Fx module for services embedding the
// observability layer. It loads Config from the environment, builds the
// Provider, re-exports its components for injection, and manages the
// metrics servers and logger flush through the Fx lifecycle.
//
// Services that want finer control (custom Config, observers, separate
// logger/metrics wiring) should use logger.FXModule and metrics.FXModule
// directly instead.
//
// Usage:
//
//	app := fx.New(
//	    observability.FXModule,
//	    fx.Invoke(func(p *observability.Provider) {
//	        mux := http.NewServeMux()
//	        mux.Handle("/v1/users", p.Instrument("/v1/users", usersHandler))
//	    }),
//	)
//	app.Run()
var FXModule = fx.Module("observability",
	fx.Provide(
		LoadConfig,
		func(cfg Config) (*Provider, error) { return NewProvider(cfg) },
		// Re-export the bundled components so downstream constructors can
		// depend on them directly.
		func(p *Provider) *logger.LoggerClient { return p.Logger },
		fx.Annotate(
			func(p *Provider) logger.Logger { return p.Logger },
			fx.As(new(logger.Logger)),
		),
		func(p *Provider) *metrics.Metrics { return p.Metrics },
		func(p *Provider) *metrics.APICollector { return p.Collector },
	),
	fx.Invoke(RegisterProviderLifecycle),
)

// RegisterProviderLifecycle binds the Provider to the Fx lifecycle:
// metrics servers start on OnStart, and OnStop shuts them down and closes
// the logger sinks.
//
// This function is automatically invoked by the FXModule and does not
// need to be called directly in application code.
func RegisterProviderLifecycle(lc fx.Lifecycle, p *Provider) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return p.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return p.Close(ctx)
		},
	})
}
