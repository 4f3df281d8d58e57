package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule defines the Fx module for the logger package.
// This module integrates the logger into an Fx-based application by providing
// the logger factory and registering its lifecycle hooks.
//
// The module provides:
// 1. *LoggerClient (concrete type) for direct use
// 2. Logger interface for dependency injection
// 3. Lifecycle management for sink flushing and teardown
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    // other modules...
//	)
//
// Dependencies required by this module:
// - A logger.Config instance must be available in the dependency injection container
//
// NewLoggerClient returns an error for structurally invalid configuration
// (unrecognized level, uncreatable log directory); Fx surfaces that error at
// startup, so a misconfigured service fails fast instead of running blind.
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient, // Provides *LoggerClient
		// Also provide the Logger interface
		fx.Annotate(
			func(l *LoggerClient) Logger { return l },
			fx.As(new(Logger)),
		),
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle handles teardown of the logger's sinks.
//
// The lifecycle hook:
//   - OnStop: Calls Close() on the logger, which flushes buffered entries to
//     every sink, closes the rotating log file and drains the Elasticsearch
//     queue (bounded by its flush timeout) before the application terminates.
//
// This ensures that no buffered entries are lost on a clean shutdown; a sink
// that cannot be flushed in time is abandoned, since log delivery is
// best-effort by contract.
//
// Note: This function is automatically invoked by the FXModule and does not need
// to be called directly in application code.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *LoggerClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
