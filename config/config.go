package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Server settings
	ServerPort      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	Env             string

	// Logging
	LogDir   string
	LogLevel string

	Database     DatabaseConfig
	Orchestrator OrchestratorConfig
	Auth         AuthConfig
	CORS         CORSConfig
	RateLimit    RateLimitConfig
	Archive      ArchiveConfig
}

type DatabaseConfig struct {
	Path           string
	MaxConnections int
}

type OrchestratorConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type AuthConfig struct {
	// Tokens maps a bearer token to the opaque user id it authenticates.
	Tokens map[string]string
}

type CORSConfig struct {
	Enabled        bool
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	BurstSize         int
}

type ArchiveConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		ServerPort:      GetEnv("SERVER_PORT", "8080"),
		ReadTimeout:     getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvAsDuration("WRITE_TIMEOUT", 150*time.Second),
		IdleTimeout:     getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		Env:             GetEnv("ENV", "development"),

		LogDir:   GetEnv("LOG_DIR", "./logs"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),

		Database: DatabaseConfig{
			Path:           GetEnv("DB_PATH", "./data/yt-filter.db"),
			MaxConnections: getEnvAsInt("DB_MAX_CONNECTIONS", 10),
		},

		Orchestrator: OrchestratorConfig{
			BaseURL: strings.TrimRight(GetEnv("ORCHESTRATOR_URL", "http://localhost:8000"), "/"),
			APIKey:  GetEnv("ORCHESTRATOR_API_KEY", ""),
			Timeout: getEnvAsDuration("ORCHESTRATOR_TIMEOUT", 120*time.Second),
		},

		Auth: AuthConfig{
			Tokens: parseTokens(GetEnv("API_TOKENS", "")),
		},

		CORS: CORSConfig{
			Enabled:        getEnvAsBool("CORS_ENABLED", true),
			AllowedOrigins: getEnvAsStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"}),
			AllowedHeaders: getEnvAsStringSlice("CORS_ALLOWED_HEADERS", []string{"Authorization", "Content-Type"}),
			MaxAge:         getEnvAsInt("CORS_MAX_AGE", 86400),
		},

		RateLimit: RateLimitConfig{
			Enabled:           getEnvAsBool("RATE_LIMIT_ENABLED", true),
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_RPM", 60),
			BurstSize:         getEnvAsInt("RATE_LIMIT_BURST", 10),
		},

		Archive: ArchiveConfig{
			Enabled:   getEnvAsBool("ARCHIVE_ENABLED", false),
			Endpoint:  GetEnv("ARCHIVE_ENDPOINT", ""),
			Region:    GetEnv("ARCHIVE_REGION", "us-east-1"),
			Bucket:    GetEnv("ARCHIVE_BUCKET", ""),
			AccessKey: GetEnv("ARCHIVE_ACCESS_KEY", ""),
			SecretKey: GetEnv("ARCHIVE_SECRET_KEY", ""),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid duration, using default")
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid integer, using default")
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
		logrus.WithFields(logrus.Fields{
			"key":          key,
			"value":        value,
			"defaultValue": defaultValue,
		}).Warn("Invalid boolean, using default")
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		if value = strings.TrimSpace(value); value != "" {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return parts
		}
	}
	return defaultValue
}

// parseTokens reads "token:user,token2:user2". Malformed pairs are skipped.
func parseTokens(raw string) map[string]string {
	tokens := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		token, user, ok := strings.Cut(pair, ":")
		token, user = strings.TrimSpace(token), strings.TrimSpace(user)
		if !ok || token == "" || user == "" {
			logrus.WithField("key", "API_TOKENS").Warn("Skipping malformed token pair")
			continue
		}
		tokens[token] = user
	}
	return tokens
}

func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return errors.New("server port is required")
	}
	if cfg.Database.Path == "" {
		return errors.New("database path is required")
	}
	if cfg.ReadTimeout <= 0 {
		return errors.New("read timeout must be greater than 0")
	}
	if cfg.WriteTimeout <= 0 {
		return errors.New("write timeout must be greater than 0")
	}
	if cfg.IdleTimeout <= 0 {
		return errors.New("idle timeout must be greater than 0")
	}
	if cfg.Orchestrator.Timeout <= 0 {
		return errors.New("orchestrator timeout must be greater than 0")
	}
	// The handler must outlive the orchestrator call to write its response.
	if cfg.WriteTimeout <= cfg.Orchestrator.Timeout {
		return errors.Errorf("write timeout (%s) must exceed orchestrator timeout (%s)",
			cfg.WriteTimeout, cfg.Orchestrator.Timeout)
	}
	u, err := url.Parse(cfg.Orchestrator.BaseURL)
	if err != nil {
		return errors.Wrap(err, "invalid orchestrator URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("orchestrator URL must use http or https")
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.RequestsPerMinute <= 0 {
		return errors.New("rate limit must be greater than 0 when enabled")
	}
	if cfg.Archive.Enabled && cfg.Archive.Bucket == "" {
		return errors.New("archive bucket is required when the archive is enabled")
	}
	return nil
}
