package model

type Timeline struct {
	Today               string `json:"today"`
	MonthsSinceArrival  int    `json:"months_since_arrival"`
	CPTEligibilityDate  string `json:"cpt_eligibility_date"`
	OPTEligibilityStart string `json:"opt_eligibility_start"`
	OPTEligibilityEnd   string `json:"opt_eligibility_end"`
}

type EngineResult struct {
	UserProfile       StudentProfile `json:"user_profile"`
	Timeline          Timeline       `json:"timeline"`
	Checklist         *Checklist     `json:"checklist"`
	Agent1UpdatesUsed []PolicyUpdate `json:"agent1_updates_used"`
}
