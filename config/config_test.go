package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "API_PREFIX", "JWT_SECRET", "OTEL_EXPORTER_OTLP_ENDPOINT", "RABBITMQ_URL", "DB_MAX_CONNS"} {
		t.Setenv(k, "")
	}
	c := Load()
	require.NoError(t, c.Validate())

	assert.Equal(t, "3000", c.Port)
	assert.Equal(t, "/v1/core", c.APIPrefix)
	assert.Equal(t, int32(20), c.DBMaxConns)
	assert.Equal(t, 30*time.Second, c.DBMaxConnIdle)
	assert.Equal(t, 2*time.Second, c.DBConnectTimeout)
	assert.Equal(t, 7*24*time.Hour, c.JWTTTL)
	assert.True(t, c.UsingDefaultJWTSecret())
	assert.False(t, c.TracingEnabled())
	assert.False(t, c.EventsEnabled())
	assert.Equal(t, []string{"https://mikeodnis.dev", "https://www.mikeodnis.dev"}, c.CORSOrigins())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://otel:4318")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.dev , ,https://b.dev")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	c := Load()
	require.NoError(t, c.Validate())
	assert.Equal(t, "8080", c.Port)
	assert.False(t, c.UsingDefaultJWTSecret())
	assert.Equal(t, 15*time.Minute, c.JWTTTL)
	assert.Equal(t, "debug", c.LogLevel)
	assert.True(t, c.TracingEnabled())
	assert.False(t, c.DBAutoMigrate)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, c.CORSOrigins())
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "many")
	t.Setenv("READINESS_TIMEOUT", "soon")
	t.Setenv("CORS_ALLOW_LOCALHOST", "maybe")

	c := Load()
	assert.Equal(t, int32(20), c.DBMaxConns)
	assert.Equal(t, 3*time.Second, c.ReadinessTimeout)
	assert.True(t, c.CORSAllowLocalhost)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"non numeric port":   func(c *Config) { c.Port = "http" },
		"prefix without /":   func(c *Config) { c.APIPrefix = "v1/core" },
		"min above max":      func(c *Config) { c.DBMinConns = c.DBMaxConns + 1 },
		"unknown log level":  func(c *Config) { c.LogLevel = "verbose" },
		"bad otel endpoint":  func(c *Config) { c.OtelEndpoint = "not a url" },
		"zero readiness":     func(c *Config) { c.ReadinessTimeout = 0 },
		"empty database url": func(c *Config) { c.DatabaseURL = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Load()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
