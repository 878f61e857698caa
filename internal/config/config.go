// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	NATS      NATSConfig
	Auth      AuthConfig
	LLM       LLMConfig
	YouTube   YouTubeConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Tracing   TracingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	// Backend is "firestore" or "memory".
	Backend   string
	ProjectID string
}

// NATSConfig holds event publishing configuration. An empty URL disables
// event publishing entirely.
type NATSConfig struct {
	URL      string
	CAFile   string
	CertFile string
	KeyFile  string
	Token    string
}

// AuthConfig holds JWT authentication configuration.
type AuthConfig struct {
	JWTSecret string
}

// LLMConfig holds response-generation provider configuration.
type LLMConfig struct {
	// Provider is "openai", "anthropic", or "mock".
	Provider         string
	OpenAIAPIKey     string
	AnthropicAPIKey  string
	Model            string
	MaxTokens        int
	RequestTimeout   time.Duration
	HistoryWindow    int
	MaxContentLength int
}

// YouTubeConfig holds video search configuration. An empty API key makes
// search serve the fixed fallback list.
type YouTubeConfig struct {
	APIKey string
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerMinute int
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string
}

// TracingConfig holds OpenTelemetry configuration. An empty endpoint
// disables tracing.
type TracingConfig struct {
	Endpoint    string
	ServiceName string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getEnvDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "*")},
		},
		Store: StoreConfig{
			Backend:   getEnv("STORE_BACKEND", "firestore"),
			ProjectID: getEnv("FIRESTORE_PROJECT_ID", ""),
		},
		NATS: NATSConfig{
			URL:      getEnv("NATS_URL", ""),
			CAFile:   getEnv("NATS_CA_FILE", ""),
			CertFile: getEnv("NATS_CERT_FILE", ""),
			KeyFile:  getEnv("NATS_KEY_FILE", ""),
			Token:    getEnv("NATS_TOKEN", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		LLM: LLMConfig{
			Provider:         getEnv("LLM_PROVIDER", "openai"),
			OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
			AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
			Model:            getEnv("LLM_MODEL", ""),
			MaxTokens:        getEnvInt("LLM_MAX_TOKENS", 1024),
			RequestTimeout:   getEnvDuration("LLM_REQUEST_TIMEOUT", 60*time.Second),
			HistoryWindow:    getEnvInt("LLM_HISTORY_WINDOW", 20),
			MaxContentLength: getEnvInt("MAX_CONTENT_LENGTH", 8000),
		},
		YouTube: YouTubeConfig{
			APIKey: getEnv("YOUTUBE_API_KEY", ""),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Tracing: TracingConfig{
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "wellness-platform"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case "firestore":
		if c.Store.ProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required when STORE_BACKEND is firestore")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	switch c.LLM.Provider {
	case "openai":
		if c.LLM.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER is openai")
		}
	case "anthropic":
		if c.LLM.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when LLM_PROVIDER is anthropic")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
