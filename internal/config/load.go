package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads.
const EnvPrefix = "PROMPTNEST"

// Default values applied before the config file and environment are read.
const (
	DefaultPort                   = 5000
	DefaultLogLevel               = "info"
	DefaultGenerateRPS            = 1.0
	DefaultGenerateBurst          = 5
	DefaultShutdownTimeoutSeconds = 15
	DefaultBaseURL                = "https://openrouter.ai/api/v1"
	DefaultModelName              = "anthropic/claude-3.5-sonnet"
	DefaultMaxTokens              = 2000
	DefaultSingleMaxTokens        = 1000
	DefaultTemperature            = 0.7
	DefaultSiteURL                = "http://localhost:5000"
	DefaultAppTitle               = "PromptNest"
	DefaultTimeoutSeconds         = 60
)

// hostEnv lists unprefixed variables that common hosting platforms set,
// accepted as a fallback for the matching key.
var hostEnv = map[string]string{
	"server.port":            "PORT",
	"database.url":           "DATABASE_URL",
	"llm.openrouter_api_key": "OPENROUTER_API_KEY",
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from the file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.generate_rps", DefaultGenerateRPS)
	v.SetDefault("server.generate_burst", DefaultGenerateBurst)
	v.SetDefault("server.shutdown_timeout_seconds", DefaultShutdownTimeoutSeconds)

	v.SetDefault("database.url", "")

	v.SetDefault("llm.openrouter_api_key", "")
	v.SetDefault("llm.base_url", DefaultBaseURL)
	v.SetDefault("llm.model_name", DefaultModelName)
	v.SetDefault("llm.max_tokens", DefaultMaxTokens)
	v.SetDefault("llm.single_max_tokens", DefaultSingleMaxTokens)
	v.SetDefault("llm.temperature", DefaultTemperature)
	v.SetDefault("llm.site_url", DefaultSiteURL)
	v.SetDefault("llm.app_title", DefaultAppTitle)
	v.SetDefault("llm.timeout_seconds", DefaultTimeoutSeconds)
}

// bindEnv binds every key explicitly so Unmarshal sees environment values
// for keys that only have defaults. Viper's BindEnv checks the listed
// variables in order, so the prefixed name wins over the host fallback.
func bindEnv(v *viper.Viper) error {
	for _, key := range v.AllKeys() {
		names := []string{key, envName(key)}
		if fallback, ok := hostEnv[key]; ok {
			names = append(names, fallback)
		}
		if err := v.BindEnv(names...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
