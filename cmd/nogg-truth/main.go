// Package main provides the nogg-truth command line: batch decisions, outcome
// feedback and the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/nogg-truth/internal/config"
	"github.com/yourusername/nogg-truth/internal/engine"
	"github.com/yourusername/nogg-truth/internal/logger"
	"github.com/yourusername/nogg-truth/internal/store"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	logLevel   string
	appLog     *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(decideCmd, lookupCmd, outcomeCmd, clearCmd, statsCmd, serveCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "nogg-truth",
	Short: "Score, rank and learn from NoGG match odds",
	Long: `nogg-truth converts bookmaker odds into an edge signal, classifies matches
into accept/warn/exclude tiers, ranks a batch and learns from win/loss feedback
recorded against each odds pattern.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		if err := loadConfig(cmd.Context(), cmd.Flag("config").Changed); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		level := cfg.App.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		appLog = logger.NewLogger(level, cfg.App.Environment)
		if cmd != serveCmd {
			// keep stdout for command output
			appLog.SetOutput(os.Stderr)
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// loadConfig reads the configuration. An explicitly passed --config file must
// exist; the default path may be absent.
func loadConfig(ctx context.Context, explicit bool) error {
	var err error
	if explicit {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.LoadWithDefaults(configFile)
	}
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := config.ApplySecrets(ctx, cfg); err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	return config.Validate(cfg)
}

// openEngine connects the configured store and builds the engine around it.
// A store that cannot be opened leaves the engine scoring without history.
// The returned close function releases the backend.
func openEngine(ctx context.Context) (*engine.Engine, *store.PatternStore, func(), error) {
	backend := store.OpenOrUnavailable(ctx, cfg, appLog)

	scoringCfg := cfg.ScoringConfig()
	history := store.NewPatternStore(backend, cfg.Store.Key, scoringCfg.History)

	eng, err := engine.New(scoringCfg, cfg.Engine.MaxBatchSize, history, appLog)
	if err != nil {
		backend.Close()
		return nil, nil, nil, err
	}

	closeFn := func() {
		if err := backend.Close(); err != nil {
			appLog.WithError(err).Error("Failed to close pattern store")
		}
	}
	return eng, history, closeFn, nil
}
