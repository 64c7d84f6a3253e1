// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads the layered configuration: base config.yaml, then a
// config.<environment>.yaml overlay, then environment variables.
func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // overlay is optional

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}
	for _, p := range possiblePaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "community-assist"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	if cfg.Catalog.SnapshotCacheTTL == 0 {
		cfg.Catalog.SnapshotCacheTTL = 300
	}
	if cfg.Catalog.SearchIndex == "" {
		cfg.Catalog.SearchIndex = "programs"
	}

	m := &cfg.Matcher
	if m.Weights.Sum() == 0 {
		m.Weights = CategoryWeights{
			Income:      0.30,
			Household:   0.20,
			Need:        0.25,
			Situational: 0.15,
			Geographic:  0.10,
		}
	}
	if m.NearMissTolerance == 0 {
		m.NearMissTolerance = 1.10
	}
	if m.NearMissSatisfaction == 0 {
		m.NearMissSatisfaction = 0.5
	}
	if m.NeutralSatisfaction == 0 {
		m.NeutralSatisfaction = 0.5
	}
	if m.MinScore == 0 {
		m.MinScore = 0.1
	}
	if m.DefaultState == "" {
		m.DefaultState = "FL"
	}
	if m.FPLYear == 0 {
		m.FPLYear = 2024
	}
}

func validateConfig(cfg *Config) error {
	sum := cfg.Matcher.Weights.Sum()
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("matcher weights must sum to 1.0, got %.3f", sum)
	}
	if cfg.Matcher.NearMissTolerance < 1.0 {
		return fmt.Errorf("near_miss_tolerance must be >= 1.0, got %.2f", cfg.Matcher.NearMissTolerance)
	}
	if cfg.Matcher.NeutralSatisfaction < 0 || cfg.Matcher.NeutralSatisfaction > 1 {
		return fmt.Errorf("neutral_satisfaction must be in [0,1], got %.2f", cfg.Matcher.NeutralSatisfaction)
	}
	if len(cfg.Matcher.DefaultState) != 2 {
		return fmt.Errorf("default_state must be a two-letter state code, got %q", cfg.Matcher.DefaultState)
	}
	return nil
}
