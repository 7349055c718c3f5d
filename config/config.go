// Package config loads process configuration from the environment and an
// optional config file. A missing API credential is a fatal configuration
// error reported before the loop ever runs.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the recommender needs at startup.
type Config struct {
	APIKey         string `mapstructure:"api_key"`
	Provider       string `mapstructure:"provider"` // "openai" or "anthropic"
	Model          string `mapstructure:"model"`
	MaxHops        int    `mapstructure:"max_hops"`
	MaxRetries     int    `mapstructure:"max_retries"`
	RetryBackoffMS int    `mapstructure:"retry_backoff_ms"`
	LogLevel       string `mapstructure:"log_level"`
	LogFormat      string `mapstructure:"log_format"`
}

// Load reads configuration with precedence: config file (when path is
// non-empty) over environment over defaults. The API key is taken from
// OPENAI_API_KEY or ANTHROPIC_API_KEY depending on provider when not set
// explicitly.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("provider", "openai")
	v.SetDefault("model", "")
	v.SetDefault("max_hops", 8)
	v.SetDefault("max_retries", 2)
	v.SetDefault("retry_backoff_ms", 500)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.APIKey == "" {
		env := viper.New()
		env.AutomaticEnv()
		switch cfg.Provider {
		case "anthropic":
			cfg.APIKey = env.GetString("ANTHROPIC_API_KEY")
		default:
			cfg.APIKey = env.GetString("OPENAI_API_KEY")
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the invariants a running process depends on.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("api_key is required: set OPENAI_API_KEY (or ANTHROPIC_API_KEY for provider=anthropic)")
	}
	switch c.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.MaxHops <= 0 {
		return fmt.Errorf("max_hops must be positive, got %d", c.MaxHops)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative, got %d", c.MaxRetries)
	}
	return nil
}
