package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/yourusername/nogg-truth/internal/scoring"
)

const (
	envPrefix         = "NOGG_TRUTH"
	defaultConfigPath = "config/config.yaml"
)

// Load reads the configuration file at configPath over the defaults and
// environment variables. The file must exist.
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	setDefaults(v)
	if err := readExpanded(v, data); err != nil {
		return nil, err
	}

	return unmarshal(v)
}

// LoadWithDefaults is Load for the default path: a missing config file is not
// an error and defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := readExpanded(v, data); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// readExpanded expands ${VAR} placeholders before handing the YAML to viper.
func readExpanded(v *viper.Viper, data []byte) error {
	expanded := os.ExpandEnv(string(data))
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := scoring.DefaultConfig()

	v.SetDefault("app.name", "nogg-truth")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("engine.weights.team_fail", d.Weights.TeamFail)
	v.SetDefault("engine.weights.under_goals", d.Weights.UnderGoals)
	v.SetDefault("engine.weights.clean_sheet", d.Weights.CleanSheet)
	v.SetDefault("engine.weights.raw_market", d.Weights.RawMarket)
	v.SetDefault("engine.weights.handicap", d.Weights.Handicap)
	steps := make([]map[string]interface{}, len(d.QualitySteps))
	for i, s := range d.QualitySteps {
		steps[i] = map[string]interface{}{"min_fields": s.MinFields, "score": s.Score}
	}
	v.SetDefault("engine.quality_steps", steps)
	v.SetDefault("engine.exclude_below", d.ExcludeBelow)
	v.SetDefault("engine.accept_at", d.AcceptAt)
	v.SetDefault("engine.max_batch_size", 10)

	v.SetDefault("history.min_samples", d.History.MinSamples)
	v.SetDefault("history.min_win_rate", d.History.MinWinRate)
	v.SetDefault("history.boost", d.HistoryBoost)

	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.key", "nogg_truth_data")
	v.SetDefault("store.file_dir", "data")

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 4)
	v.SetDefault("database.table", "kv_entries")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.key_prefix", "nogg:")

	v.SetDefault("api.port", 8090)
	v.SetDefault("api.allowed_origins", []string{"*"})
	v.SetDefault("api.rate_limit_rps", 20)
	v.SetDefault("api.rate_limit_burst", 40)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("health.enabled", true)
	v.SetDefault("health.port", "8091")

	v.SetDefault("scheduler.stats_refresh", "@every 1m")
}
