// Package config loads and validates application configuration.
// Values come from an optional config file and are overridden by
// environment variables of the same name in upper case.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values for the API server and the seed command.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `mapstructure:"port"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `mapstructure:"database_url"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is json or text.
	LogFormat string `mapstructure:"log_format"`

	// CORSOrigins lists allowed cross-origin request origins.
	// CORS_ORIGINS takes a comma-separated list.
	CORSOrigins []string `mapstructure:"-"`

	// MaxBodyBytes caps request body size.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`

	// SlugMaxLength is the longest slug generated for artists and songs.
	SlugMaxLength int `mapstructure:"slug_max_length"`

	// RedisURL selects the Redis cache backend. Empty means in-process cache.
	RedisURL string `mapstructure:"redis_url"`

	// CacheWarmSchedule is the cron expression for refreshing cached listings.
	CacheWarmSchedule string `mapstructure:"cache_warm_schedule"`

	// ResendAPIKey enables email delivery. Empty means contact messages are only logged.
	ResendAPIKey string `mapstructure:"resend_api_key"`

	// ContactFrom is the sender address of contact-form emails.
	ContactFrom string `mapstructure:"contact_from"`

	// ContactTo lists recipients of contact-form emails.
	// CONTACT_TO takes a comma-separated list.
	ContactTo []string `mapstructure:"-"`

	// Moderators lists the usernames allowed to publish, edit and delete songs
	// and to manage artists. MODERATORS takes a comma-separated list.
	Moderators []string `mapstructure:"-"`

	// ShutdownTimeout bounds graceful shutdown of the HTTP server and scheduler.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// maxSlugColumn is the width of the slug columns in the database.
const maxSlugColumn = 255

// Load reads configuration from configPath, if non-empty, and from the
// environment. It returns an error naming every invalid or missing setting.
func Load(configPath string) (Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("database_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("cors_origins", "http://localhost:5173")
	v.SetDefault("max_body_bytes", 1<<20)
	v.SetDefault("slug_max_length", 50)
	v.SetDefault("redis_url", "")
	v.SetDefault("cache_warm_schedule", "0 4 * * *")
	v.SetDefault("resend_api_key", "")
	v.SetDefault("contact_from", "guitarchords <noreply@localhost>")
	v.SetDefault("contact_to", "admin@localhost")
	v.SetDefault("moderators", "")
	v.SetDefault("shutdown_timeout", "15s")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", configPath, err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.CORSOrigins = splitCSV(v.GetString("cors_origins"))
	cfg.ContactTo = splitCSV(v.GetString("contact_to"))
	cfg.Moderators = splitCSV(v.GetString("moderators"))

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	if c.SlugMaxLength < 3 || c.SlugMaxLength > maxSlugColumn {
		errs = append(errs, fmt.Errorf("SLUG_MAX_LENGTH must be between 3 and %d", maxSlugColumn))
	}
	if len(c.ContactTo) == 0 {
		errs = append(errs, errors.New("CONTACT_TO must name at least one address"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, err
	}
	return l, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
