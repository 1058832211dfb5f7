package model

const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

// PolicyUpdate is one rule change reported by the policy provider.
type PolicyUpdate struct {
	Update       string `json:"update"`
	Source       string `json:"source"`
	RiskLevel    string `json:"risk_level"`
	ActionNeeded string `json:"action_needed"`
}

type PolicySummary struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}
