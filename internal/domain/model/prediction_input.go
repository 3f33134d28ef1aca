package model

import "fmt"

// PredictionInput holds the six model features for one risk prediction.
// Instances are built once per request and never mutated afterwards.
type PredictionInput struct {
	IPRegion      string `json:"ip_region"`
	DeviceType    string `json:"device_type"`
	UserRole      string `json:"user_role"`
	Action        string `json:"action"`
	Hour          int    `json:"hour"`
	SessionPeriod int    `json:"sessionPeriod"`
}

// ValidationError describes a malformed prediction request. It is surfaced to
// callers as a client error, distinct from scoring failures.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks that all string features are present and the hour is a
// valid hour of day. Inputs failing validation must never reach the scoring
// engine.
func (in PredictionInput) Validate() error {
	if in.IPRegion == "" {
		return &ValidationError{Field: "ip_region", Reason: "must not be empty"}
	}
	if in.DeviceType == "" {
		return &ValidationError{Field: "device_type", Reason: "must not be empty"}
	}
	if in.UserRole == "" {
		return &ValidationError{Field: "user_role", Reason: "must not be empty"}
	}
	if in.Action == "" {
		return &ValidationError{Field: "action", Reason: "must not be empty"}
	}
	if in.Hour < 0 || in.Hour > 23 {
		return &ValidationError{Field: "hour", Reason: "must be between 0 and 23"}
	}
	return nil
}
