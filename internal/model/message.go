package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

const (
	CodeInvalidDate         = "INVALID_DATE"
	CodeCalculationFailed   = "CALCULATION_FAILED"
	CodeInvalidPolicyInput  = "INVALID_POLICY_INPUT"
	CodePolicyProviderError = "POLICY_PROVIDER_ERROR"
)
