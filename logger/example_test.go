package logger_test

import (
	"context"
	"errors"

	"github.com/apisvc-dev/obs-shared/logger"
)

func ExampleNewLoggerClient() {
	log, err := logger.NewLoggerClient(logger.Config{
		Level:       logger.Info,
		ServiceName: "example-service",
		Environment: "development",
	})
	if err != nil {
		panic(err)
	}
	defer log.Close()

	log.Info("application started", nil, nil)
}

func ExampleLoggerClient_Error() {
	log, err := logger.NewLoggerClient(logger.Config{
		Level:       logger.Info,
		ServiceName: "example-service",
	})
	if err != nil {
		panic(err)
	}
	defer log.Close()

	connErr := errors.New("connection refused")
	log.Error("database connection failed", connErr, map[string]interface{}{
		"host":        "localhost:5432",
		"retry_count": 3,
	})
}

func ExampleLoggerClient_Named() {
	log, err := logger.NewLoggerClient(logger.Config{
		Level:       logger.Debug,
		ServiceName: "example-service",
	})
	if err != nil {
		panic(err)
	}
	defer log.Close()

	// Entries from the child carry "logger": "http" in the envelope.
	httpLog := log.Named("http")
	httpLog.Debug("request received", nil, map[string]interface{}{
		"method": "GET",
		"route":  "/v1/split",
	})
}

func ExampleLoggerClient_InfoWithContext() {
	log, err := logger.NewLoggerClient(logger.Config{
		Level:         logger.Info,
		ServiceName:   "example-service",
		EnableTracing: true,
	})
	if err != nil {
		panic(err)
	}
	defer log.Close()

	ctx := context.Background()

	// When an active OpenTelemetry span is present in ctx,
	// trace_id and span_id are automatically attached to the log entry.
	log.InfoWithContext(ctx, "handling request", nil, map[string]interface{}{
		"request_id": "abc-123",
	})
}

func Example_sinkConfiguration() {
	// File and Elasticsearch sinks attach only when configured; the
	// console sink is implicit unless disabled.
	log, err := logger.NewLoggerClient(logger.Config{
		Level:             logger.Info,
		ServiceName:       "example-service",
		Environment:       "production",
		FilePath:          "/var/log/apis",
		ElasticsearchHost: "http://logs:9200",
	})
	if err != nil {
		panic(err)
	}
	defer log.Close()

	log.Info("fanned out to console, file and elasticsearch", nil, nil)
}
