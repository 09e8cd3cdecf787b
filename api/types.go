// Package api - Request and response types
package api

import (
	"encoding/json"
	"time"

	"eventcost/core/output"
)

// EstimateRequest is the body of POST /estimate
type EstimateRequest struct {
	// Events is the monthly volume in millions, as a JSON number or numeric string
	Events json.Number `json:"events"`

	// IncludeReference adds the price table to the response
	IncludeReference bool `json:"include_reference,omitempty"`
}

// EstimateResponse is returned by /estimate
type EstimateResponse struct {
	RequestID  string                `json:"request_id"`
	Timestamp  time.Time             `json:"timestamp"`
	Estimate   output.EstimateView   `json:"estimate"`
	Reference  []output.ReferenceRow `json:"reference,omitempty"`
	DurationMs int64                 `json:"duration_ms"`
}

// TiersResponse is returned by GET /tiers
type TiersResponse struct {
	Schedule string                `json:"schedule"`
	Currency string                `json:"currency"`
	Tiers    []output.ReferenceRow `json:"tiers"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	RequestID string      `json:"request_id,omitempty"`
	Error     ErrorDetail `json:"error"`
}

// ErrorDetail describes a failure
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
