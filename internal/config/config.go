// Package config provides configuration management for the NoGG Truth engine.
package config

import (
	"net"
	"net/url"
	"strconv"

	"github.com/yourusername/nogg-truth/internal/scoring"
)

// Store backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Engine    EngineConfig    `mapstructure:"engine" validate:"required"`
	History   HistoryConfig   `mapstructure:"history" validate:"required"`
	Store     StoreConfig     `mapstructure:"store" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	API       APIConfig       `mapstructure:"api"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Health    HealthConfig    `mapstructure:"health"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Secrets   SecretsConfig   `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// EngineConfig holds the scoring policy: pillar weights, data quality steps and
// classification thresholds.
type EngineConfig struct {
	Weights      WeightsConfig       `mapstructure:"weights"`
	QualitySteps []QualityStepConfig `mapstructure:"quality_steps" validate:"required,min=1,dive"`
	ExcludeBelow float64             `mapstructure:"exclude_below"`
	AcceptAt     float64             `mapstructure:"accept_at" validate:"gt=0"`
	MaxBatchSize int                 `mapstructure:"max_batch_size" validate:"required,gt=0"`
}

// WeightsConfig represents the pillar design weights
type WeightsConfig struct {
	TeamFail   float64 `mapstructure:"team_fail" validate:"gte=0,lte=1"`
	UnderGoals float64 `mapstructure:"under_goals" validate:"gte=0,lte=1"`
	CleanSheet float64 `mapstructure:"clean_sheet" validate:"gte=0,lte=1"`
	RawMarket  float64 `mapstructure:"raw_market" validate:"gte=0,lte=1"`
	Handicap   float64 `mapstructure:"handicap" validate:"gte=0,lte=1"`
}

// QualityStepConfig maps a minimum count of valid odds fields to a quality score
type QualityStepConfig struct {
	MinFields int     `mapstructure:"min_fields" validate:"gte=1,lte=8"`
	Score     float64 `mapstructure:"score" validate:"gte=0,lte=1"`
}

// HistoryConfig represents pattern confirmation policy
type HistoryConfig struct {
	MinSamples int     `mapstructure:"min_samples" validate:"required,gte=1"`
	MinWinRate float64 `mapstructure:"min_win_rate" validate:"gte=0,lte=1"`
	Boost      float64 `mapstructure:"boost" validate:"gte=0"`
}

// StoreConfig selects the pattern store backend
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"required,backend"`
	Key     string `mapstructure:"key" validate:"required"`
	FileDir string `mapstructure:"file_dir"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	Table          string `mapstructure:"table"`
}

// RedisConfig represents Redis connection configuration
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db" validate:"gte=0"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// APIConfig represents the HTTP API configuration
type APIConfig struct {
	Port           int      `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RateLimitRPS   float64  `mapstructure:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst" validate:"gte=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// HealthConfig represents the health check server configuration
type HealthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    string `mapstructure:"port"`
}

// SchedulerConfig represents background job schedules
type SchedulerConfig struct {
	StatsRefresh string `mapstructure:"stats_refresh"`
}

// SecretsConfig represents the AWS Secrets Manager overlay
type SecretsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Region     string `mapstructure:"region"`
	SecretName string `mapstructure:"secret_name"`
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string with the credentials escaped
func (c *Config) GetDatabaseDSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port)),
		Path:     "/" + c.Database.Name,
		RawQuery: url.Values{"sslmode": {c.Database.SSLMode}}.Encode(),
	}
	return dsn.String()
}

// ScoringConfig maps the engine and history sections onto the scoring policy.
func (c *Config) ScoringConfig() scoring.Config {
	steps := make([]scoring.QualityStep, len(c.Engine.QualitySteps))
	for i, s := range c.Engine.QualitySteps {
		steps[i] = scoring.QualityStep{MinFields: s.MinFields, Score: s.Score}
	}

	return scoring.Config{
		Weights: scoring.Weights{
			TeamFail:   c.Engine.Weights.TeamFail,
			UnderGoals: c.Engine.Weights.UnderGoals,
			CleanSheet: c.Engine.Weights.CleanSheet,
			RawMarket:  c.Engine.Weights.RawMarket,
			Handicap:   c.Engine.Weights.Handicap,
		},
		QualitySteps: steps,
		ExcludeBelow: c.Engine.ExcludeBelow,
		AcceptAt:     c.Engine.AcceptAt,
		History: scoring.HistoryPolicy{
			MinSamples: c.History.MinSamples,
			MinWinRate: c.History.MinWinRate,
		},
		HistoryBoost: c.History.Boost,
	}
}
