package engine

import (
	"strings"

	"visa-engine/internal/model"
)

// SummarizePolicies counts updates per risk tier. Risk levels are matched
// case-insensitively; anything other than high, medium or low is skipped.
func SummarizePolicies(updates []model.PolicyUpdate) model.PolicySummary {
	var s model.PolicySummary
	for _, u := range updates {
		switch strings.ToLower(u.RiskLevel) {
		case model.RiskHigh:
			s.High++
		case model.RiskMedium:
			s.Medium++
		case model.RiskLow:
			s.Low++
		}
	}
	return s
}
