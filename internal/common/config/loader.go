package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like SERVER_BETA_KEY or GENAI_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	if cfg.App.Environment == "" {
		cfg.App.Environment = env
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or the project root.
func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string config values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "astro-diagnosis-api"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "1.0.0-beta"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8107
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 120000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Server.RateLimits.Positions == 0 {
		cfg.Server.RateLimits.Positions = 5
	}
	if cfg.Server.RateLimits.Simple == 0 {
		cfg.Server.RateLimits.Simple = 3
	}
	if cfg.Server.RateLimits.Detailed == 0 {
		cfg.Server.RateLimits.Detailed = 1
	}
	if cfg.GenAI.Model == "" {
		cfg.GenAI.Model = "gemini-1.5-flash"
	}
	if cfg.GenAI.Timeout == 0 {
		cfg.GenAI.Timeout = 30000
	}
	if cfg.GenAI.MaxOutputTokens == 0 {
		cfg.GenAI.MaxOutputTokens = 8192
	}
	if cfg.GenAI.Temperature == 0 {
		cfg.GenAI.Temperature = 0.7
	}
	if cfg.Redis.CacheTTL == 0 {
		cfg.Redis.CacheTTL = 3600
	}
	if cfg.Reports.ShortTargetChars == 0 {
		cfg.Reports.ShortTargetChars = 1000
	}
	if cfg.Reports.DetailedTargetChars == 0 {
		cfg.Reports.DetailedTargetChars = 12000
	}
	if cfg.Reports.LengthTolerance == 0 {
		cfg.Reports.LengthTolerance = 0.2
	}
	if cfg.Reports.WeightPolicy == "" {
		cfg.Reports.WeightPolicy = "equal"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	if !cfg.App.IsDevelopment() && cfg.Server.BetaKey == "" {
		return fmt.Errorf("server.beta_key is required outside development")
	}
	if !cfg.App.IsDevelopment() && cfg.GenAI.APIKey == "" {
		return fmt.Errorf("genai.api_key is required outside development")
	}
	if cfg.Reports.LengthTolerance < 0 || cfg.Reports.LengthTolerance >= 1 {
		return fmt.Errorf("reports.length_tolerance must be in [0,1): %f", cfg.Reports.LengthTolerance)
	}
	switch cfg.Reports.WeightPolicy {
	case "equal", "significance":
	default:
		return fmt.Errorf("reports.weight_policy must be equal or significance: %q", cfg.Reports.WeightPolicy)
	}
	if cfg.Redis.Enabled && cfg.Redis.Address == "" {
		return fmt.Errorf("redis.address is required when redis is enabled")
	}
	return nil
}
