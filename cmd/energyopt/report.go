package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jgoulah/energyopt/internal/pipeline"
	"github.com/jgoulah/energyopt/pkg/models"
	"github.com/spf13/cobra"
)

var (
	reportSamples []string
	reportStrict  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print weekly usage and recommendations",
	Long: `Averages the configured samples per day, prints the weekly total and each
day's mean, followed by the recommendations from the rule table.

Samples come from the config file, from repeated --sample flags, or default to
a built-in example week.`,
	Example: `  energyopt report
  energyopt report --sample Monday=34 --sample Monday=30 --sample Sunday=28`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringArrayVar(&reportSamples, "sample", nil, "Sample as Day=kWh (repeatable, replaces config samples)")
	reportCmd.Flags().BoolVar(&reportStrict, "strict", false, "Fail on invalid samples or formatting errors instead of logging them")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	// Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	opts, err := buildOptions(cfg, reportSamples, reportStrict, logger)
	if err != nil {
		return err
	}

	if _, err := pipeline.Run(opts, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("generating report: %w", err)
	}
	return nil
}

// parseSampleFlags parses "Day=kWh" values. Unparseable entries are dropped
// and returned in the joined error.
func parseSampleFlags(values []string) ([]models.Sample, error) {
	samples := make([]models.Sample, 0, len(values))
	var errs []error
	for _, v := range values {
		day, kwh, ok := strings.Cut(v, "=")
		if !ok {
			errs = append(errs, &models.Error{Kind: models.KindInvalidSample, Err: fmt.Errorf("sample %q is not in Day=kWh form", v)})
			continue
		}
		s, err := models.ParseSample(day, kwh)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		samples = append(samples, s)
	}
	return samples, errors.Join(errs...)
}
