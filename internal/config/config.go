// Package config handles application configuration. Values come from
// defaults, an optional YAML file, and environment variables, in increasing
// order of precedence. It provides a centralized Config struct used across
// the application.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultDBPassword = "changeme"

// Config holds all application configuration values.
type Config struct {
	// Server settings
	Host     string
	Port     string
	Env      string // "development", "production", "testing"
	LogLevel string // "debug", "info", "warn", "error"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache and notification queue)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	ValkeyDB       int

	// S3-compatible archive for inquiries
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string

	// Message screening
	ModerationProvider string // "openai", "mistral", or empty to disable
	OpenAIKey          string
	OpenAIBaseURL      string
	MistralKey         string
	MistralBaseURL     string

	// Site behaviour
	SiteURL           string
	MarkdownRenderer  string
	ContactRateLimit  int // submissions per client per ContactRateWindow
	ContactRateWindow time.Duration
	FormTTL           time.Duration
	CacheTTL          time.Duration
	ClientHashKey     string // keys the blake2b hash of client addresses
}

// defaults mirror a local docker-compose setup.
var defaults = map[string]any{
	"APP_HOST":  "0.0.0.0",
	"APP_PORT":  "8080",
	"APP_ENV":   "development",
	"LOG_LEVEL": "",

	"POSTGRES_HOST":     "localhost",
	"POSTGRES_PORT":     "5432",
	"POSTGRES_USER":     "mediastudio",
	"POSTGRES_PASSWORD": defaultDBPassword,
	"POSTGRES_DB":       "mediastudio",

	"VALKEY_HOST":     "localhost",
	"VALKEY_PORT":     "6379",
	"VALKEY_PASSWORD": "",
	"VALKEY_DB":       0,

	"S3_ENDPOINT":   "",
	"S3_REGION":     "fsn1",
	"S3_ACCESS_KEY": "",
	"S3_SECRET_KEY": "",
	"S3_BUCKET":     "mediastudio-inquiries",

	"MODERATION_PROVIDER": "",
	"OPENAI_API_KEY":      "",
	"OPENAI_BASE_URL":     "https://api.openai.com/v1",
	"MISTRAL_API_KEY":     "",
	"MISTRAL_BASE_URL":    "https://api.mistral.ai",

	"SITE_URL":            "http://localhost:8080",
	"MARKDOWN_RENDERER":   "legacy",
	"CONTACT_RATE_LIMIT":  5,
	"CONTACT_RATE_WINDOW": "1m",
	"CONTACT_FORM_TTL":    "30m",
	"CACHE_TTL":           "5m",
	"CLIENT_HASH_KEY":     "",
}

// Load resolves the configuration. file is an optional YAML config file
// whose keys are the environment variable names (case-insensitive). Returns
// an error if critical values are missing in production mode.
func Load(file string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		Host:     v.GetString("APP_HOST"),
		Port:     v.GetString("APP_PORT"),
		Env:      v.GetString("APP_ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),

		DBHost:     v.GetString("POSTGRES_HOST"),
		DBPort:     v.GetString("POSTGRES_PORT"),
		DBUser:     v.GetString("POSTGRES_USER"),
		DBPassword: v.GetString("POSTGRES_PASSWORD"),
		DBName:     v.GetString("POSTGRES_DB"),

		ValkeyHost:     v.GetString("VALKEY_HOST"),
		ValkeyPort:     v.GetString("VALKEY_PORT"),
		ValkeyPassword: v.GetString("VALKEY_PASSWORD"),
		ValkeyDB:       v.GetInt("VALKEY_DB"),

		S3Endpoint:  v.GetString("S3_ENDPOINT"),
		S3Region:    v.GetString("S3_REGION"),
		S3AccessKey: v.GetString("S3_ACCESS_KEY"),
		S3SecretKey: v.GetString("S3_SECRET_KEY"),
		S3Bucket:    v.GetString("S3_BUCKET"),

		ModerationProvider: strings.ToLower(v.GetString("MODERATION_PROVIDER")),
		OpenAIKey:          v.GetString("OPENAI_API_KEY"),
		OpenAIBaseURL:      v.GetString("OPENAI_BASE_URL"),
		MistralKey:         v.GetString("MISTRAL_API_KEY"),
		MistralBaseURL:     v.GetString("MISTRAL_BASE_URL"),

		SiteURL:           strings.TrimRight(v.GetString("SITE_URL"), "/"),
		MarkdownRenderer:  v.GetString("MARKDOWN_RENDERER"),
		ContactRateLimit:  v.GetInt("CONTACT_RATE_LIMIT"),
		ContactRateWindow: v.GetDuration("CONTACT_RATE_WINDOW"),
		FormTTL:           v.GetDuration("CONTACT_FORM_TTL"),
		CacheTTL:          v.GetDuration("CACHE_TTL"),
		ClientHashKey:     v.GetString("CLIENT_HASH_KEY"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	if c.Env == "production" && c.DBPassword == defaultDBPassword {
		errs = append(errs, errors.New("POSTGRES_PASSWORD must be set in production"))
	}
	if c.ContactRateLimit <= 0 {
		errs = append(errs, fmt.Errorf("CONTACT_RATE_LIMIT must be positive, got %d", c.ContactRateLimit))
	}
	if c.ContactRateWindow <= 0 {
		errs = append(errs, errors.New("CONTACT_RATE_WINDOW must be a positive duration"))
	}
	if c.FormTTL <= 0 {
		errs = append(errs, errors.New("CONTACT_FORM_TTL must be a positive duration"))
	}
	if len(c.ClientHashKey) > 64 {
		errs = append(errs, errors.New("CLIENT_HASH_KEY must be at most 64 bytes"))
	}
	switch c.ModerationProvider {
	case "":
	case "openai":
		if c.OpenAIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for openai moderation"))
		}
	case "mistral":
		if c.MistralKey == "" {
			errs = append(errs, errors.New("MISTRAL_API_KEY is required for mistral moderation"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MODERATION_PROVIDER %q", c.ModerationProvider))
	}

	return errors.Join(errs...)
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ArchiveEnabled reports whether S3 credentials are configured.
func (c *Config) ArchiveEnabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != ""
}

// ModerationKey returns the API key and base URL of the configured
// moderation provider.
func (c *Config) ModerationKey() (key, baseURL string) {
	switch c.ModerationProvider {
	case "openai":
		return c.OpenAIKey, c.OpenAIBaseURL
	case "mistral":
		return c.MistralKey, c.MistralBaseURL
	}
	return "", ""
}
