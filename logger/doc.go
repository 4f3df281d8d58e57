// Package logger provides structured logging with durable multi-sink
// fan-out for the API services.
//
// The logger package is designed to give every service one standardized way
// to emit JSON log events and have them delivered, best-effort, to each
// configured destination: the console stream, a size-capped rotating file,
// and a dated Elasticsearch index. It integrates with the fx dependency
// injection framework for easy incorporation into applications.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Logger interface: Defines the contract for logging operations
//   - LoggerClient struct: Concrete implementation of the Logger interface
//   - NewLoggerClient constructor: Returns *LoggerClient (concrete type)
//   - FXModule: Provides both *LoggerClient and Logger interface for dependency injection
//
// # The envelope
//
// Every event is rendered once into a fixed JSON envelope and the same
// rendering is written to every sink:
//
//	{
//	  "timestamp":   "2025-03-14T09:26:53.589Z",
//	  "level":       "INFO",
//	  "service":     "text-splitter",
//	  "logger":      "http",
//	  "message":     "request completed",
//	  "environment": "production",
//	  ...caller-supplied fields...,
//	  "exception":   {"type": "...", "message": "...", "traceback": "..."}
//	}
//
// The envelope keys above are reserved. A caller-supplied field with a
// reserved name never shadows the envelope: the field is dropped and its
// name reported under the self-diagnostic "field_collision" field.
//
// # Sinks and failure semantics
//
// Sinks are configured once at construction and owned exclusively by the
// logger. Construction fails fast only on structural configuration errors;
// after that, logging can never crash or block the instrumented service:
//
//   - Console: writes to stdout; if stdout is gone the process has bigger
//     problems.
//   - Rotating file: appends to <FilePath>/<service>.log, capped at
//     FileMaxBytes (default 10 MiB) with FileBackups backups (default 5),
//     rotated with the .1..N shift-rename scheme. Writes are serialized per
//     file so concurrent emits never corrupt a line.
//   - Elasticsearch: each rendered document is queued and pushed by one
//     background worker to "<prefix>-<YYYY.MM.DD>" (UTC). The single FIFO
//     worker preserves per-logger ordering without blocking emitters.
//     Failed or overflowing pushes are reported to stderr and dropped.
//
// Per-sink failures are isolated: a full disk or unreachable index never
// prevents delivery to the remaining sinks, and never reaches the caller.
//
// # Usage
//
//	log, err := logger.NewLoggerClient(logger.Config{
//	    Level:             logger.Info,
//	    ServiceName:       "docx2text",
//	    Environment:       "production",
//	    FilePath:          "/var/log/apis",
//	    ElasticsearchHost: "http://logs:9200",
//	})
//	if err != nil {
//	    // configuration error, fatal to startup
//	}
//	defer log.Close()
//
//	log.Info("conversion finished", nil, map[string]interface{}{
//	    "pages": 12,
//	})
package logger
