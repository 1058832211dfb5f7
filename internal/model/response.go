package model

type CalculationResponse struct {
	CalculationMetadata CalculationMetadata  `json:"calculation_metadata"`
	Messages            []CalculationMessage `json:"messages"`
	Result              *EngineResult        `json:"result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type ChatResponse struct {
	History ConversationLog `json:"history"`
	Reply   string          `json:"reply"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
