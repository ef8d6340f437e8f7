package main

import (
	"fmt"

	"github.com/jgoulah/energyopt/internal/advisor"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the recommendation rules",
	Long:  `Displays the rule table used to generate recommendations, in evaluation order.`,
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	adv, err := advisor.New(cfg.GetRules())
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "----------------------------------------")
	fmt.Fprintf(out, "%-10s  %10s  %s\n", "Day", "Above kWh", "Message")
	fmt.Fprintln(out, "----------------------------------------")
	for _, r := range adv.Rules() {
		fmt.Fprintf(out, "%-10s  %10.2f  %s\n", r.Day, r.Threshold, r.Message)
	}
	fmt.Fprintln(out, "----------------------------------------")
	fmt.Fprintf(out, "Fallback: %s\n", advisor.Fallback)
	return nil
}
