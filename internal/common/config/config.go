package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	GenAI   GenAIConfig   `mapstructure:"genai"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Reports ReportsConfig `mapstructure:"reports"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// IsDevelopment reports whether the process runs in a development environment.
// Beta-key authentication is skipped in development.
func (a AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

type ServerConfig struct {
	Host            string   `mapstructure:"host"`
	Port            int      `mapstructure:"port"`
	ReadTimeout     int      `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int      `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // milliseconds
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	BetaKey         string   `mapstructure:"beta_key"`

	RateLimits RateLimitConfig `mapstructure:"rate_limits"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RateLimitConfig holds per-route requests-per-minute budgets.
type RateLimitConfig struct {
	Positions int `mapstructure:"positions"`
	Simple    int `mapstructure:"simple"`
	Detailed  int `mapstructure:"detailed"`
}

// GenAIConfig holds settings for the external text-generation API.
type GenAIConfig struct {
	BaseURL         string  `mapstructure:"base_url"`
	APIKey          string  `mapstructure:"api_key"`
	Model           string  `mapstructure:"model"`
	Timeout         int     `mapstructure:"timeout"` // milliseconds
	MaxOutputTokens int     `mapstructure:"max_output_tokens"`
	Temperature     float64 `mapstructure:"temperature"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	CacheTTL int    `mapstructure:"cache_ttl"` // seconds
}

// ReportsConfig holds report rendering budgets and the balance weighting policy.
type ReportsConfig struct {
	ShortTargetChars    int     `mapstructure:"short_target_chars"`
	DetailedTargetChars int     `mapstructure:"detailed_target_chars"`
	LengthTolerance     float64 `mapstructure:"length_tolerance"` // fraction, e.g. 0.2
	WeightPolicy        string  `mapstructure:"weight_policy"`    // "equal" or "significance"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
