package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_TTL", "")
	t.Setenv("STORAGE_DRIVER", "")

	cfg := Load()
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, time.Hour, cfg.ResetTokenTTL)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, MailTransportHTTP, cfg.MailTransport)
	assert.Equal(t, "http://localhost:3001/sendmail", cfg.MailServiceURL)
	assert.False(t, cfg.ResetHideUnknownEmail)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("RESET_HIDE_UNKNOWN_EMAIL", "true")
	t.Setenv("PASSWORD_MIN_LENGTH", "10")

	cfg := Load()
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.True(t, cfg.ResetHideUnknownEmail)
	assert.Equal(t, 10, cfg.PasswordMinLength)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")
	t.Setenv("RATE_LIMIT_ENABLED", "maybe")
	t.Setenv("REDIS_DB", "x")

	cfg := Load()
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"unknown driver", func(c *Config) { c.StorageDriver = "mongo" }, "unknown STORAGE_DRIVER"},
		{"unknown transport", func(c *Config) { c.MailTransport = "smtp" }, "unknown MAIL_TRANSPORT"},
		{"empty secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET is required"},
		{"dev secret in production", func(c *Config) { c.Env = "production" }, "must be set in production"},
		{"zero ttl", func(c *Config) { c.JWTTTL = 0 }, "JWT_TTL must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			cfg.JWTSecret = "devjwtsecret"
			cfg.Env = "development"
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test "}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}
