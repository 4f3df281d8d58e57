package observability

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the environment surface shared by every service embedding the
// observability layer. One struct covers both the logger and the metrics
// servers; NewProvider maps it onto the per-package configs.
type Config struct {
	// ServiceName identifies the owning process in every log envelope and
	// as the service label on every metric series.
	ServiceName string `env:"SERVICE_NAME"`

	// Environment tags every log envelope, e.g. "development" or
	// "production".
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// LogLevel is the minimum level emitted: "trace", "debug", "info",
	// "warn", "error" or "fatal".
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFilePath enables the rotating file sink when set. It names a
	// directory; the file inside it is "<ServiceName>.log".
	LogFilePath string `env:"LOG_FILE_PATH"`

	// ElasticsearchHost enables the remote index sink when set, e.g.
	// "http://logs:9200".
	ElasticsearchHost string `env:"ELASTICSEARCH_HOST"`

	// ElasticsearchIndexPrefix is the prefix of the dated index documents
	// are pushed to ("<prefix>-<YYYY.MM.DD>").
	ElasticsearchIndexPrefix string `env:"ELASTICSEARCH_INDEX_PREFIX" envDefault:"api-logs"`

	// MetricsSystemAddress is the system metrics endpoint address. Unset
	// means the package default (":9090"); an explicit empty string
	// disables the endpoint.
	MetricsSystemAddress *string `env:"METRICS_SYSTEM_ADDRESS"`

	// MetricsApplicationAddress is the application metrics endpoint
	// address. Unset means the package default (":9091"); an explicit
	// empty string disables the endpoint.
	MetricsApplicationAddress *string `env:"METRICS_APPLICATION_ADDRESS"`
}

// LoadConfig reads the configuration from the process environment. A .env
// file in the working directory is applied first when present; variables
// already set in the environment win over the file.
func LoadConfig() (Config, error) {
	// Best-effort: services run without a .env file in production.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
