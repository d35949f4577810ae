package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
)

// Config holds all client configuration
type Config struct {
	// API
	APIBaseURL string `env:"DRIFTBOARD_API_URL,required"` // e.g. "https://api.driftboard.dev"
	APIToken   string `env:"DRIFTBOARD_API_TOKEN,required"`

	// HTTP
	HTTPTimeoutSeconds int `env:"DRIFTBOARD_HTTP_TIMEOUT_SECONDS" envDefault:"30"`

	// Logging
	LogLevel  string `env:"DRIFTBOARD_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"DRIFTBOARD_LOG_FORMAT" envDefault:"console"` // "console" or "json"

	// OpenTelemetry
	OTELEnabled          bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELExporterEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	OTELServiceName      string  `env:"OTEL_SERVICE_NAME" envDefault:"driftboard-client"`
	OTELSamplingRatio    float64 `env:"OTEL_SAMPLING_RATIO" envDefault:"0.1"`

	// Default navigation scope (overridable per command)
	DefaultWorkspaceSlug string `env:"DRIFTBOARD_WORKSPACE"`
	DefaultProjectID     string `env:"DRIFTBOARD_PROJECT"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate performs custom validation on the configuration
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("DRIFTBOARD_API_URL is required")
	}

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("DRIFTBOARD_API_URL must be an absolute URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("DRIFTBOARD_API_URL scheme must be http or https")
	}

	if c.APIToken == "" {
		return fmt.Errorf("DRIFTBOARD_API_TOKEN is required")
	}

	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("DRIFTBOARD_HTTP_TIMEOUT_SECONDS must be positive")
	}

	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("DRIFTBOARD_LOG_FORMAT must be \"console\" or \"json\"")
	}

	if c.OTELSamplingRatio < 0 || c.OTELSamplingRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLING_RATIO must be between 0 and 1")
	}

	return nil
}
