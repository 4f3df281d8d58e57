package logger

// Log level constants that define the available logging levels.
// These string constants are used in configuration to set the desired log level.
const (
	// Trace is the most verbose logging level, below debug. It is intended for
	// very fine-grained diagnostics such as per-iteration or per-byte progress.
	Trace = "trace"

	// Debug shows all messages at debug level and above, intended for
	// development and troubleshooting.
	Debug = "debug"

	// Info is the standard logging level for general operational information.
	Info = "info"

	// Warning shows only warning and error messages. "warn" is accepted as
	// an alias when parsing configuration.
	Warning = "warn"

	// Error shows only error and fatal messages.
	Error = "error"

	// Fatal shows only fatal messages. Logging at this level terminates the
	// process after the entry has been flushed.
	Fatal = "fatal"
)

// Default settings for the rotating file sink. These match the limits the
// services were originally deployed with: a 10 MiB cap and five backups.
const (
	DefaultFileMaxBytes    = 10 * 1024 * 1024
	DefaultFileBackups     = 5
	DefaultElasticIndexPrefix = "api-logs"
)

// Config defines the configuration structure for the logger.
// It controls the level threshold, the identity fields stamped on every
// envelope, and which sinks are attached.
//
// The console sink is always attached unless DisableConsole is set. The file
// and Elasticsearch sinks are attached only when their respective settings
// are non-empty.
type Config struct {
	// Level determines the minimum log level that will be emitted.
	// Valid values are "trace", "debug", "info", "warn" (or "warning"),
	// "error" and "fatal", case-insensitive. An unrecognized value is a
	// construction error: the logger refuses to start rather than guess.
	//
	// Typically populated from the LOG_LEVEL environment variable.
	Level string

	// ServiceName is the name of the service emitting log entries. It is
	// written once into every envelope under the reserved "service" key and
	// also names the rotating log file ("<ServiceName>.log").
	ServiceName string

	// Environment tags every envelope under the reserved "environment" key,
	// e.g. "development" or "production".
	//
	// Typically populated from the ENVIRONMENT environment variable.
	Environment string

	// DisableConsole suppresses the implicit stdout sink. The console sink
	// is otherwise always attached, even when file or remote sinks are
	// configured.
	DisableConsole bool

	// FilePath enables the rotating file sink when non-empty. It names a
	// directory, created at construction if absent; the log file inside it
	// is "<ServiceName>.log". A directory that cannot be created is a
	// construction error.
	//
	// Typically populated from the LOG_FILE_PATH environment variable.
	FilePath string

	// FileMaxBytes caps the size of the current log file. When a write would
	// push the file past the cap, the file is rotated first. Zero means
	// DefaultFileMaxBytes.
	FileMaxBytes int64

	// FileBackups is the number of rotated backups kept ("<file>.1" through
	// "<file>.N", oldest discarded). Zero means DefaultFileBackups; a
	// negative value keeps no backups.
	FileBackups int

	// ElasticsearchHost enables the remote index sink when non-empty. It is
	// the base URL of the Elasticsearch endpoint, e.g. "http://logs:9200".
	// Reachability is not verified at construction, only at first write:
	// a logger must be able to start while its log store is down.
	//
	// Typically populated from the ELASTICSEARCH_HOST environment variable.
	ElasticsearchHost string

	// ElasticsearchIndexPrefix is the prefix of the dated index every
	// document is pushed to ("<prefix>-<YYYY.MM.DD>", UTC date of the
	// event). Empty means DefaultElasticIndexPrefix.
	ElasticsearchIndexPrefix string

	// EnableTracing controls whether trace context is extracted from
	// contexts passed to the *WithContext methods. When enabled and a
	// recording span is present, "trace_id" and "span_id" fields are added
	// to the entry.
	EnableTracing bool
}
