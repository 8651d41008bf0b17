package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultPort               = 3001
	DefaultLogLevel           = "info"
	DefaultEnvironment        = "development"
	DefaultMongoURI           = "mongodb://localhost:27017/task-management"
	DefaultDatabaseName       = "task-management"
	DefaultJWTSecret          = "your-secret-key-for-development"
	DefaultTokenLifetimeHours = 24
	DefaultAllowedOrigins     = "*"
)

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"server.port":                      "PORT",
	"server.log_level":                 "LOG_LEVEL",
	"server.environment":               "STAGE",
	"database.uri":                     "MONGO_URI",
	"database.name":                    "MONGO_DB_NAME",
	"database.connect_timeout_seconds": "MONGO_CONNECT_TIMEOUT_SECONDS",
	"auth.jwt_secret":                  "JWT_SECRET",
	"auth.token_lifetime_hours":        "JWT_EXPIRATION_HOURS",
	"cors.allowed_origins":             "ALLOWED_ORIGINS",
}

// Load configuration from environment variables and an optional .env file.
// Real environment variables take precedence over values from .env.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.environment", DefaultEnvironment)
	v.SetDefault("database.uri", DefaultMongoURI)
	v.SetDefault("database.name", "")
	v.SetDefault("database.connect_timeout_seconds", 10)
	v.SetDefault("auth.jwt_secret", DefaultJWTSecret)
	v.SetDefault("auth.token_lifetime_hours", DefaultTokenLifetimeHours)
	v.SetDefault("cors.allowed_origins", DefaultAllowedOrigins)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Server.LogLevel = strings.ToLower(cfg.Server.LogLevel)
	cfg.CORS.AllowedOrigins = ParseOrigins(v.GetString("cors.allowed_origins"))

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// ParseOrigins splits a comma-separated origin list. An empty list or a bare
// wildcard yields []string{"*"}.
func ParseOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		return []string{"*"}
	}

	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
