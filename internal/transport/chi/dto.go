package chi

import (
	"time"

	"github.com/kailas-cloud/leadscout/internal/domain/lead"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeRateLimited      ErrorCode = "rate_limited"
	ErrorCodeQuotaExceeded    ErrorCode = "quota_exceeded"
	ErrorCodeProviderError    ErrorCode = "provider_error"
	ErrorCodeNotImplemented   ErrorCode = "not_implemented"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchRequest is the body of POST /v1/search.
type SearchRequest struct {
	Query       string   `json:"query"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	TargetCount *int     `json:"target_count,omitempty"`
	City        *string  `json:"city,omitempty"`
	State       *string  `json:"state,omitempty"`
	RadiusKm    *float64 `json:"radius_km,omitempty"`
}

// SearchStreamParams are the query parameters of GET /v1/search/stream.
type SearchStreamParams struct {
	Query       string
	Latitude    *float64
	Longitude   *float64
	TargetCount *int
	City        *string
	State       *string
	RadiusKm    *float64
}

// Lead is a business contact. Absent channels serialize as null.
type Lead struct {
	Name      string  `json:"name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Instagram *string `json:"instagram"`
	Facebook  *string `json:"facebook"`
	LinkedIn  *string `json:"linkedin"`
}

// SearchResponse is the body of a completed search.
type SearchResponse struct {
	Results []Lead `json:"results"`
	Count   int    `json:"count"`
}

// ProgressEvent is the payload of a "progress" stream event.
type ProgressEvent struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// UsageMetrics is the consumption part of a usage report.
type UsageMetrics struct {
	Requests int `json:"requests"`
	Tokens   int `json:"tokens"`
}

// BudgetStatus is the limit part of a usage report. A zero limit means unlimited.
type BudgetStatus struct {
	TokensLimit     int        `json:"tokens_limit"`
	TokensRemaining int        `json:"tokens_remaining"`
	IsExhausted     bool       `json:"is_exhausted"`
	ResetsAt        *time.Time `json:"resets_at,omitempty"`
}

// UsageResponse is the body of GET /v1/usage.
type UsageResponse struct {
	Period        string       `json:"period"`
	Provider      string       `json:"provider"`
	PeriodStartAt *time.Time   `json:"period_start_at,omitempty"`
	PeriodEndAt   *time.Time   `json:"period_end_at,omitempty"`
	Usage         UsageMetrics `json:"usage"`
	Budget        BudgetStatus `json:"budget"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func leadToDTO(r lead.Record) Lead {
	return Lead{
		Name:      r.Name(),
		Phone:     optional(r.Phone()),
		Email:     optional(r.Email()),
		Instagram: optional(r.Instagram()),
		Facebook:  optional(r.Facebook()),
		LinkedIn:  optional(r.LinkedIn()),
	}
}

// NewSearchResponse converts merged records into the wire shape shared by the API and the CLI.
func NewSearchResponse(records []lead.Record) SearchResponse {
	items := make([]Lead, len(records))
	for i, r := range records {
		items[i] = leadToDTO(r)
	}
	return SearchResponse{Results: items, Count: len(items)}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
