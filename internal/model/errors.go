package model

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrMissingBody  = errors.New("request body is empty")
	ErrPolicyFeed   = errors.New("policy feed unavailable")
)

// FormatError reports a date that is not a strict YYYY-MM-DD calendar date.
type FormatError struct {
	Field string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %q does not match format YYYY-MM-DD", e.Field, e.Value)
}

// PolicyInputError reports policy-update input that could not be read as a list of
// update records.
type PolicyInputError struct {
	Reason string
}

func (e *PolicyInputError) Error() string {
	return "invalid policy updates: " + e.Reason
}
