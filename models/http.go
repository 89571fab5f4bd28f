package models

import "time"

// StatusResponse is the body of GET /status and GET /api/jobs/{id}/status.
// The "result" field name is part of the public contract and must not change.
type StatusResponse struct {
	Result JobStatus `json:"result"`
}

// CreateJobRequest is the body of POST /api/jobs/.
//
// All fields are optional: the server fills defaults from its configuration
// and clamps the requested duration into the configured window.
type CreateJobRequest struct {
	// Duration is the requested simulated processing time, e.g. "15s".
	Duration Duration `json:"duration,omitempty"`

	// ErrorRate overrides the server's default failure probability.
	// Values outside [0, 1] are rejected.
	ErrorRate *float64 `json:"error_rate,omitempty"`

	SourceLanguage string `json:"source_language,omitempty"`
	TargetLanguage string `json:"target_language,omitempty"`
}

// ErrorResponse is the JSON error envelope returned by the API.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// TokenRequest is the body of POST /api/auth/token.
type TokenRequest struct {
	APIKey string `json:"api_key"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}
