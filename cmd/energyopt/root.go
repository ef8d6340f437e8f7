package main

import (
	"fmt"
	"log/slog"

	"github.com/jgoulah/energyopt/internal/config"
	"github.com/jgoulah/energyopt/internal/logging"
	"github.com/jgoulah/energyopt/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "energyopt",
	Short: "Summarize weekly electricity usage and suggest savings",
	Long: `energyopt averages daily kWh samples, reports weekly totals and
prints recommendations from a configurable threshold rule table.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// saveConfig saves the configuration file
func saveConfig(cfg *config.Config) error {
	return config.Save(getConfigPath(), cfg)
}

// newLogger builds the diagnostics logger, which writes to stderr
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	logger, err := logging.New(cmd.ErrOrStderr(), logLevel)
	if err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}
	return logger, nil
}

// buildOptions turns the config and CLI overrides into pipeline options.
// Samples given on the command line replace those from the config.
func buildOptions(cfg *config.Config, sampleFlags []string, strict bool, logger *slog.Logger) (pipeline.Options, error) {
	opts := pipeline.Options{
		Rules:  cfg.GetRules(),
		Rate:   cfg.GetRate(),
		Strict: strict || cfg.Strict,
		Logger: logger,
	}

	var err error
	if len(sampleFlags) > 0 {
		opts.Samples, err = parseSampleFlags(sampleFlags)
	} else {
		opts.Samples, err = cfg.GetSamples()
	}
	if err != nil {
		if opts.Strict {
			return opts, fmt.Errorf("reading samples: %w", err)
		}
		logger.Warn("ignoring unreadable samples", "error", err)
	}

	return opts, nil
}
