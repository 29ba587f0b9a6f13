package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"hermes/pkg/errors"
)

type Config struct {
	App           AppConfig
	GLM           GLMConfig
	RateLimit     RateLimitConfig
	Metrics       MetricsConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"hermes"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Version  string `envconfig:"APP_VERSION" default:"1.0.0"`
}

type GLMConfig struct {
	// APIKey may be empty; the server starts in degraded mode and every
	// tool call fails individually until a key is provided.
	APIKey       string        `envconfig:"GLM_API_KEY"`
	BaseURL      string        `envconfig:"GLM_BASE_URL" default:"https://open.bigmodel.cn/api/paas/v4"`
	Timeout      time.Duration `envconfig:"GLM_TIMEOUT" default:"30s"`
	ReqPerMinute int           `envconfig:"GLM_REQ_PER_MINUTE" default:"60"`
}

type RateLimitConfig struct {
	MaxRequests int           `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"30"`
	Window      time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

type MetricsConfig struct {
	// Addr enables the Prometheus exposition listener when non-empty,
	// e.g. ":9090". Disabled by default for stdio deployments.
	Addr string `envconfig:"METRICS_ADDR"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
