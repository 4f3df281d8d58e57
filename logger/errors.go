package logger

import "errors"

// Configuration errors reported by NewLoggerClient. These are the only
// errors the logger ever returns to callers: once constructed, sink
// failures are absorbed and reported to the fallback channel instead.
var (
	// ErrInvalidLevel is returned when Config.Level is not a recognized
	// level name.
	ErrInvalidLevel = errors.New("invalid log level")

	// ErrLogDirectory is returned when the directory for the rotating file
	// sink does not exist and cannot be created, or the log file cannot be
	// opened.
	ErrLogDirectory = errors.New("log directory unavailable")

	// errQueueFull is reported through zap's internal error output when the
	// remote sink's queue is saturated and a document is dropped.
	errQueueFull = errors.New("elasticsearch queue full, document dropped")

	// errSinkClosed is reported when an emit races logger shutdown and the
	// remote sink has already stopped accepting documents.
	errSinkClosed = errors.New("elasticsearch sink closed")
)
