package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// traceLevel is the custom zap level backing the "trace" threshold. Zap has
// no trace level of its own; one slot below debug keeps the usual ordering.
const traceLevel = zapcore.Level(zapcore.DebugLevel - 1)

// LoggerClient is a wrapper around Uber's Zap logger that fans every entry
// out to the configured sinks: the console stream, a size-capped rotating
// file and a dated Elasticsearch index. Each entry is rendered once into the
// JSON envelope and delivered to every sink independently; a failing sink is
// reported through zap's internal error output and never affects the others
// or the caller.
//
// LoggerClient implements the Logger interface.
type LoggerClient struct {
	// Zap is the underlying zap.Logger instance. It is exposed to allow
	// direct access to Zap-specific functionality when needed, but most
	// logging should go through the wrapper methods.
	Zap *zap.Logger

	// tracingEnabled indicates whether the *WithContext methods extract
	// trace/span IDs from the context.
	tracingEnabled bool

	// closers owns the sink resources (file handle, remote sink worker).
	// Only the logger returned by NewLoggerClient owns them; loggers derived
	// via Named share them without ownership.
	closers []io.Closer
}

// NewLoggerClient initializes and returns a new logger based on configuration.
//
// The sink list is built in order: console (unless disabled), rotating file
// (when Config.FilePath is set), Elasticsearch (when Config.ElasticsearchHost
// is set). All sinks share one envelope layout:
//
//	{"timestamp": ..., "level": ..., "service": ..., "logger": ...,
//	 "message": ..., "environment": ..., <caller fields>, "exception": ...}
//
// Construction fails fast only on structurally invalid input: an
// unrecognized level name, or a log directory that cannot be created. The
// Elasticsearch endpoint is deliberately not probed here; an unreachable
// log store must not keep a service from starting, so reachability
// surfaces only at first write, on the fallback channel.
//
// Example:
//
//	log, err := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "text-splitter",
//	    Environment: "production",
//	    FilePath:    "/var/log/apis",
//	})
//	if err != nil {
//	    // configuration error, fatal to startup
//	}
//	defer log.Close()
func NewLoggerClient(cfg Config) (*LoggerClient, error) {
	logLevel, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	level := zap.NewAtomicLevelAt(logLevel)
	encoderCfg := newEncoderConfig()

	var (
		cores   []zapcore.Core
		closers []io.Closer
	)

	if !cfg.DisableConsole {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.Lock(os.Stdout),
			level,
		))
	}

	if cfg.FilePath != "" {
		maxBytes := cfg.FileMaxBytes
		if maxBytes == 0 {
			maxBytes = DefaultFileMaxBytes
		}
		backups := cfg.FileBackups
		if backups == 0 {
			backups = DefaultFileBackups
		}
		w, err := newRotatingWriter(
			filepath.Join(cfg.FilePath, cfg.ServiceName+".log"),
			maxBytes,
			backups,
		)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			w,
			level,
		))
		closers = append(closers, w)
	}

	if cfg.ElasticsearchHost != "" {
		prefix := cfg.ElasticsearchIndexPrefix
		if prefix == "" {
			prefix = DefaultElasticIndexPrefix
		}
		sink := newElasticSink(cfg.ElasticsearchHost, prefix)
		cores = append(cores, newElasticCore(
			zapcore.NewJSONEncoder(encoderCfg),
			sink,
			level,
		))
		closers = append(closers, sink)
	}

	zapLogger := zap.New(
		zapcore.NewTee(cores...),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
		zap.Fields(
			zap.String("service", cfg.ServiceName),
			zap.String("environment", cfg.Environment),
		),
	)

	return &LoggerClient{
		Zap:            zapLogger,
		tracingEnabled: cfg.EnableTracing,
		closers:        closers,
	}, nil
}

// newEncoderConfig returns the envelope layout shared by every sink.
// The key names are the reserved envelope keys; caller-supplied fields that
// collide with them are dropped at emission time (see convertToZapFields).
func newEncoderConfig() zapcore.EncoderConfig {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.LevelKey = "level"
	encoderCfg.NameKey = "logger"
	encoderCfg.MessageKey = "message"
	// Caller and zap's own stacktrace are not part of the envelope.
	encoderCfg.CallerKey = zapcore.OmitKey
	encoderCfg.StacktraceKey = zapcore.OmitKey
	encoderCfg.EncodeTime = rfc3339UTCTimeEncoder
	encoderCfg.EncodeLevel = capitalLevelEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder
	return encoderCfg
}

// rfc3339UTCTimeEncoder renders timestamps as RFC3339 in UTC regardless of
// the process time zone, so dated index names and envelope timestamps agree.
func rfc3339UTCTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(time.RFC3339Nano))
}

// capitalLevelEncoder is zap's capital level encoder extended with the
// custom trace level.
func capitalLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == traceLevel {
		enc.AppendString("TRACE")
		return
	}
	zapcore.CapitalLevelEncoder(l, enc)
}

// Close flushes buffered entries and releases the sink resources: the log
// file is closed and the Elasticsearch worker drains its queue, bounded by
// its flush timeout. Only the root logger returned by NewLoggerClient should
// be closed, once, at process shutdown.
func (l *LoggerClient) Close() error {
	err := l.Sync()
	for _, c := range l.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Sync flushes buffered entries to every sink, best-effort.
func (l *LoggerClient) Sync() error {
	return l.Zap.Sync()
}
