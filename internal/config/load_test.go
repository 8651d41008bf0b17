package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable the loader reads. Viper treats empty values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
	}
}

// TestLoadDefaults verifies the defaults used when nothing is configured.
func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, DefaultMongoURI, cfg.Database.URI)
	assert.Equal(t, DefaultJWTSecret, cfg.Auth.JWTSecret)
	assert.True(t, cfg.Auth.UsesDefaultSecret())
	assert.Equal(t, 24, cfg.Auth.TokenLifetimeHours)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

// TestLoadFromEnv verifies that the Load function correctly reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("STAGE", "prod")
	t.Setenv("MONGO_URI", "mongodb://db.internal:27017/tasks")
	t.Setenv("JWT_SECRET", "a-real-secret-from-the-environment")
	t.Setenv("JWT_EXPIRATION_HOURS", "12")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "prod", cfg.Server.Environment)
	assert.Equal(t, "mongodb://db.internal:27017/tasks", cfg.Database.URI)
	assert.False(t, cfg.Auth.UsesDefaultSecret())
	assert.Equal(t, 12, cfg.Auth.TokenLifetimeHours)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "port out of range", env: map[string]string{"PORT": "70000"}},
		{name: "unknown log level", env: map[string]string{"LOG_LEVEL": "verbose"}},
		{name: "non-positive token lifetime", env: map[string]string{"JWT_EXPIRATION_HOURS": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestParseOrigins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want []string
	}{
		{raw: "", want: []string{"*"}},
		{raw: "*", want: []string{"*"}},
		{raw: " , ,", want: []string{"*"}},
		{raw: "http://localhost:3000", want: []string{"http://localhost:3000"}},
		{raw: "http://a.test,http://b.test ", want: []string{"http://a.test", "http://b.test"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseOrigins(tt.raw), "raw=%q", tt.raw)
	}
}
