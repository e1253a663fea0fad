package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()

	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 3, cfg.HTTP.MaxRetries)
	assert.Equal(t, 5, cfg.RetryQueue.MaxRetries)
	assert.Equal(t, "127.0.0.1:7878", cfg.Push.ListenAddr)
	assert.NotEmpty(t, cfg.RetryQueue.BackoffSchedule)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GROCLIST_HTTP_TIMEOUT", "10s")
	t.Setenv("GROCLIST_HTTP_MAX_RETRIES", "1")
	t.Setenv("GROCLIST_PUSH_LISTEN_ADDR", "127.0.0.1:9999")

	cfg := DefaultRuntimeConfig()
	cfg.ReloadFromEnv()

	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 1, cfg.HTTP.MaxRetries)
	assert.Equal(t, "127.0.0.1:9999", cfg.Push.ListenAddr)
}

func TestInvalidEnvIgnored(t *testing.T) {
	t.Setenv("GROCLIST_HTTP_TIMEOUT", "not-a-duration")
	t.Setenv("GROCLIST_HTTP_MAX_RETRIES", "-3")

	cfg := DefaultRuntimeConfig()
	cfg.ReloadFromEnv()

	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 3, cfg.HTTP.MaxRetries)
}

func TestReset(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.HTTP.MaxRetries = 99
	cfg.Reset()
	assert.Equal(t, 3, cfg.HTTP.MaxRetries)
}
