// Package policy supplies the policy-update records merged into the checklist.
package policy

import (
	"context"

	"visa-engine/internal/model"
)

// Provider returns an ordered sequence of policy updates relevant to a profile.
type Provider interface {
	Updates(ctx context.Context, profile *model.StudentProfile) ([]model.PolicyUpdate, error)
}

// Defaults serves the built-in updates.
type Defaults struct{}

func (Defaults) Updates(_ context.Context, _ *model.StudentProfile) ([]model.PolicyUpdate, error) {
	return DefaultUpdates(), nil
}

func DefaultUpdates() []model.PolicyUpdate {
	return []model.PolicyUpdate{
		{
			Update:       "CPT requires 1 academic year of full-time enrollment.",
			Source:       "USCIS Policy 2024",
			RiskLevel:    model.RiskMedium,
			ActionNeeded: "Check CPT eligibility window",
		},
		{
			Update:       "DSO must be notified within 10 days of job loss.",
			Source:       "DHS 2025",
			RiskLevel:    model.RiskHigh,
			ActionNeeded: "Add job-loss notification step during OPT",
		},
	}
}
