package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "SHUTDOWN_TIMEOUT_SECONDS", "OLLAMA_HOST", "DOWNSTREAM_PROBE_SCHEDULE",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ALLOW_ORIGINS",
		"SERVICE_NAME", "APP_ENV", "LOG_LEVEL", "APP_VERSION",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "http://rust-api:8080", cfg.Downstream.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Downstream.Timeout)
	assert.Equal(t, "@every 30s", cfg.Downstream.ProbeSchedule)
	assert.True(t, cfg.ProbeEnabled())
	assert.Equal(t, 0.0, cfg.RateLimit.RPS)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, "chat-gateway", cfg.App.ServiceName)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.App.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("OLLAMA_HOST", "http://localhost:8081/")
	t.Setenv("DOWNSTREAM_PROBE_SCHEDULE", "off")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "http://localhost:8081", cfg.Downstream.BaseURL)
	assert.False(t, cfg.ProbeEnabled())
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("OLLAMA_HOST", "rust-api:8080")

	_, err := Load()
	assert.ErrorContains(t, err, "OLLAMA_HOST")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:     ServerConfig{Port: "8080"},
			Downstream: DownstreamConfig{BaseURL: "http://rust-api:8080"},
			RateLimit:  RateLimitConfig{Burst: 10},
		}
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Server.Port = ""
	assert.ErrorContains(t, cfg.Validate(), "PORT")

	cfg = valid()
	cfg.Downstream.BaseURL = "ftp://rust-api"
	assert.ErrorContains(t, cfg.Validate(), "OLLAMA_HOST")

	cfg = valid()
	cfg.RateLimit.RPS = -1
	assert.ErrorContains(t, cfg.Validate(), "RATE_LIMIT_RPS")

	cfg = valid()
	cfg.RateLimit.RPS = 1
	cfg.RateLimit.Burst = 0
	assert.ErrorContains(t, cfg.Validate(), "RATE_LIMIT_BURST")
}
