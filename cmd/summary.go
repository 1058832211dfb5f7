package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"visa-engine/internal/engine"
	"visa-engine/internal/policy"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Count policy updates by risk level",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("policies")

		updates := policy.DefaultUpdates()
		if path != "" {
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read policies: %w", err)
			}
			updates, err = policy.ParseUpdates(raw)
			if err != nil {
				return err
			}
		}

		s := engine.SummarizePolicies(updates)
		fmt.Fprintf(cmd.OutOrStdout(), "High risk: %d\nMedium risk: %d\nLow risk: %d\n", s.High, s.Medium, s.Low)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().String("policies", "", "Policy updates JSON file (default: built-in updates)")
}
