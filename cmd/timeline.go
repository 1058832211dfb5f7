package cmd

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"visa-engine/internal/engine"
	"visa-engine/internal/logging"
	"visa-engine/internal/model"
	"visa-engine/internal/policy"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Compute the timeline and checklist for a profile file",
	RunE: func(cmd *cobra.Command, args []string) error {
		profilePath, _ := cmd.Flags().GetString("profile")
		policiesPath, _ := cmd.Flags().GetString("policies")
		outPath, _ := cmd.Flags().GetString("out")

		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(profilePath)
		if err != nil {
			return fmt.Errorf("read profile: %w", err)
		}
		var profile model.StudentProfile
		if err := json.Unmarshal(raw, &profile); err != nil {
			return fmt.Errorf("parse profile: %w", err)
		}
		profile = profile.Normalize()

		updates, err := loadUpdates(cmd.Context(), policiesPath, &profile)
		if err != nil {
			return err
		}

		result, err := engine.New(loc).Run(profile, updates)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(result, "", "    ")
		if err != nil {
			return err
		}
		if outPath == "" {
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		logging.Log.WithField("file", outPath).Info("export written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(timelineCmd)
	timelineCmd.Flags().StringP("profile", "p", "", "Student profile JSON file")
	timelineCmd.Flags().String("policies", "", "Policy updates JSON file (default: built-in updates)")
	timelineCmd.Flags().StringP("out", "o", "", "Write the result to this file instead of stdout")
	_ = timelineCmd.MarkFlagRequired("profile")
}

// loadUpdates reads policy updates from path. An unreadable policy file is reported
// and the run continues without updates.
func loadUpdates(ctx context.Context, path string, profile *model.StudentProfile) ([]model.PolicyUpdate, error) {
	if path == "" {
		if ctx == nil {
			ctx = context.Background()
		}
		return policy.Defaults{}.Updates(ctx, profile)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policies: %w", err)
	}
	updates, err := policy.ParseUpdates(raw)
	if err != nil {
		logging.Log.WithError(err).Warn("ignoring policy updates")
		return []model.PolicyUpdate{}, nil
	}
	return updates, nil
}
