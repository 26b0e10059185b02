// Package config loads the server configuration: defaults, then an optional
// YAML file, then environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           string   `yaml:"port" validate:"required,numeric"`
	AIServiceURL   string   `yaml:"ai_service_url" validate:"required,url"`
	Language       string   `yaml:"language"`
	Storage        string   `yaml:"storage" validate:"oneof=memory sqlite postgres"`
	DatabaseURL    string   `yaml:"database_url" validate:"required_if=Storage postgres"`
	SQLitePath     string   `yaml:"sqlite_path" validate:"required_if=Storage sqlite"`
	ChromePath     string   `yaml:"chrome_path"`
	LogLevel       string   `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat      string   `yaml:"log_format" validate:"oneof=text json"`
	RandomTheme    bool     `yaml:"random_theme"`
	MaxUploadMB    int      `yaml:"max_upload_mb" validate:"gt=0,lte=100"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func Default() *Config {
	return &Config{
		Port:         "3000",
		AIServiceURL: "http://ai-service:8000",
		Storage:      "memory",
		SQLitePath:   "portfolios.db",
		LogLevel:     "info",
		LogFormat:    "text",
		RandomTheme:  true,
		MaxUploadMB:  10,
	}
}

// Load builds the configuration. path may be empty, in which case
// CONFIG_FILE is consulted.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	str := map[string]*string{
		"PORT":           &c.Port,
		"AI_SERVICE_URL": &c.AIServiceURL,
		"AI_LANGUAGE":    &c.Language,
		"STORAGE":        &c.Storage,
		"DATABASE_URL":   &c.DatabaseURL,
		"SQLITE_PATH":    &c.SQLitePath,
		"CHROME_PATH":    &c.ChromePath,
		"LOG_LEVEL":      &c.LogLevel,
		"LOG_FORMAT":     &c.LogFormat,
	}
	for env, dst := range str {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("RANDOM_THEME"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RANDOM_THEME: %w", err)
		}
		c.RandomTheme = b
	}
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_MB: %w", err)
		}
		c.MaxUploadMB = n
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = strings.Split(v, ",")
	}
	return nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// MaxUploadBytes is the request body limit for resume uploads.
func (c *Config) MaxUploadBytes() int { return c.MaxUploadMB * 1024 * 1024 }

// Logger builds the process logger from LogLevel and LogFormat.
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
