package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// GenerateRPS is the sustained rate of generation requests the whole
	// process accepts per second. Zero disables the limit.
	GenerateRPS   float64 `mapstructure:"generate_rps" validate:"gte=0"`
	GenerateBurst int     `mapstructure:"generate_burst" validate:"gte=0"`

	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// LLMConfig contains the settings of the OpenRouter chat-completion provider.
type LLMConfig struct {
	// OpenRouterAPIKey is optional here. A missing key only disables generation.
	OpenRouterAPIKey string  `mapstructure:"openrouter_api_key"`
	BaseURL          string  `mapstructure:"base_url" validate:"required,url"`
	ModelName        string  `mapstructure:"model_name" validate:"required"`
	MaxTokens        int     `mapstructure:"max_tokens" validate:"gt=0"`
	SingleMaxTokens  int     `mapstructure:"single_max_tokens" validate:"gt=0"`
	Temperature      float32 `mapstructure:"temperature" validate:"gt=0,lte=2"`
	SiteURL          string  `mapstructure:"site_url" validate:"omitempty,url"`
	AppTitle         string  `mapstructure:"app_title"`
	TimeoutSeconds   int     `mapstructure:"timeout_seconds" validate:"gt=0"`
}
