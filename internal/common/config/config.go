// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Matcher  MatcherConfig  `mapstructure:"matcher"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
}

// CatalogConfig controls snapshot loading, caching and search.
type CatalogConfig struct {
	SnapshotCacheTTL int    `mapstructure:"snapshot_cache_ttl"` // seconds
	SearchIndex      string `mapstructure:"search_index"`
}

// CategoryWeights are the fixed scoring weights. They must sum to 1.0.
type CategoryWeights struct {
	Income      float64 `mapstructure:"income"`
	Household   float64 `mapstructure:"household"`
	Need        float64 `mapstructure:"need"`
	Situational float64 `mapstructure:"situational"`
	Geographic  float64 `mapstructure:"geographic"`
}

// Sum returns the total of all weights.
func (w CategoryWeights) Sum() float64 {
	return w.Income + w.Household + w.Need + w.Situational + w.Geographic
}

// MatcherConfig carries the matching policy constants. The near-miss band
// and the neutral satisfaction for missing data are tunable here rather
// than hard-coded: product has not confirmed them as fixed policy.
type MatcherConfig struct {
	Weights              CategoryWeights `mapstructure:"weights"`
	NearMissTolerance    float64         `mapstructure:"near_miss_tolerance"`    // ceiling multiplier, e.g. 1.10
	NearMissSatisfaction float64         `mapstructure:"near_miss_satisfaction"` // credit inside the band
	NeutralSatisfaction  float64         `mapstructure:"neutral_satisfaction"`   // credit for unknowns
	MinScore             float64         `mapstructure:"min_score"`              // results threshold
	DefaultState         string          `mapstructure:"default_state"`          // FPL table fallback
	FPLYear              int             `mapstructure:"fpl_year"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
