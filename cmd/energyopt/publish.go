package main

import (
	"fmt"

	"github.com/jgoulah/energyopt/internal/pipeline"
	"github.com/jgoulah/energyopt/internal/publisher"
	"github.com/spf13/cobra"
)

var (
	publishSamples []string
	publishStrict  bool
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the report to MQTT",
	Long: `Generates the report like 'energyopt report' and then publishes the weekly
summary and per-day averages to the MQTT broker from the config file.`,
	Args: cobra.NoArgs,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringArrayVar(&publishSamples, "sample", nil, "Sample as Day=kWh (repeatable, replaces config samples)")
	publishCmd.Flags().BoolVar(&publishStrict, "strict", false, "Fail on invalid samples or formatting errors instead of logging them")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	// Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if MQTT is configured
	if !cfg.MQTT.Enabled {
		return fmt.Errorf("MQTT is not enabled in config")
	}

	opts, err := buildOptions(cfg, publishSamples, publishStrict, logger)
	if err != nil {
		return err
	}

	res, err := pipeline.Run(opts, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("generating report: %w", err)
	}

	pub, err := publisher.New(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	runID, err := pub.Publish(res.Averages, res.Recommendations)
	if err != nil {
		return fmt.Errorf("publishing report: %w", err)
	}

	logger.Info("report published", "run_id", runID, "broker", cfg.MQTT.Broker,
		"topic_prefix", cfg.MQTT.GetTopicPrefix(), "days", len(res.Averages))
	return nil
}
