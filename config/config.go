package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Uber      ProviderConfig
	Lyft      ProviderConfig
	LLM       LLMConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProviderConfig holds one ride provider's API configuration
type ProviderConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Retries       int           `mapstructure:"retries"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	Fallback      bool          `mapstructure:"fallback"` // serve sample data when the API is unreachable
}

// LLMConfig holds language model configuration
type LLMConfig struct {
	Provider         string        `mapstructure:"provider"` // "none", "openai" or "gemini"
	APIKey           string        `mapstructure:"api_key"`
	Model            string        `mapstructure:"model"`
	BaseURL          string        `mapstructure:"base_url"`
	Temperature      float64       `mapstructure:"temperature"`
	MaxTokens        int           `mapstructure:"max_tokens"`
	SummaryMaxTokens int           `mapstructure:"summary_max_tokens"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// SessionConfig holds dashboard session store configuration
type SessionConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/cabfare/")

	// Environment variable settings
	v.SetEnvPrefix("CABFARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Provider defaults
	v.SetDefault("uber.base_url", "https://api.uber.com/v1.2")
	v.SetDefault("lyft.base_url", "https://api.lyft.com/v1")
	for _, provider := range []string{"uber", "lyft"} {
		v.SetDefault(provider+".api_key", "")
		v.SetDefault(provider+".timeout", "10s")
		v.SetDefault(provider+".retries", 2)
		v.SetDefault(provider+".rate_per_second", 5)
		v.SetDefault(provider+".fallback", true)
	}

	// LLM defaults
	v.SetDefault("llm.provider", "none")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 800)
	v.SetDefault("llm.summary_max_tokens", 200)
	v.SetDefault("llm.timeout", "30s")

	// Session defaults
	v.SetDefault("session.type", "memory")
	v.SetDefault("session.redis_url", "")
	v.SetDefault("session.ttl", "30m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)

	// Log defaults
	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Session.Type != "memory" && config.Session.Type != "redis" {
		return fmt.Errorf("session type must be 'memory' or 'redis', got: %s", config.Session.Type)
	}

	if config.Session.Type == "redis" && config.Session.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when session type is 'redis'")
	}

	switch config.LLM.Provider {
	case "none":
	case "openai", "gemini":
		if config.LLM.APIKey == "" {
			return fmt.Errorf("LLM API key is required for provider %s (set CABFARE_LLM_API_KEY)", config.LLM.Provider)
		}
	default:
		return fmt.Errorf("llm provider must be 'none', 'openai' or 'gemini', got: %s", config.LLM.Provider)
	}

	if config.Uber.Timeout <= 0 || config.Lyft.Timeout <= 0 {
		return fmt.Errorf("provider timeouts must be positive")
	}

	if config.Session.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}

	return nil
}
