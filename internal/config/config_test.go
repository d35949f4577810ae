package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		APIBaseURL:         "https://api.driftboard.dev",
		APIToken:           "token-123",
		HTTPTimeoutSeconds: 30,
		LogLevel:           "info",
		LogFormat:          "console",
		OTELSamplingRatio:  0.1,
	}
}

func TestConfig_Validate_Valid(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_MissingBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.APIBaseURL = ""
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_RelativeBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.APIBaseURL = "api.driftboard.dev/v1"
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_BadScheme(t *testing.T) {
	cfg := validConfig()
	cfg.APIBaseURL = "ftp://api.driftboard.dev"
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_MissingToken(t *testing.T) {
	cfg := validConfig()
	cfg.APIToken = ""
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_NonPositiveTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.HTTPTimeoutSeconds = 0
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_BadLogFormat(t *testing.T) {
	cfg := validConfig()
	cfg.LogFormat = "xml"
	assert.Error(t, cfg.Validate())
}

func TestConfig_Validate_SamplingRatioOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.OTELSamplingRatio = 1.5
	assert.Error(t, cfg.Validate())

	cfg.OTELSamplingRatio = -0.1
	assert.Error(t, cfg.Validate())
}
