package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest signals a malformed search request (blank query, bad coordinates).
	ErrInvalidRequest = errors.New("invalid request")
	// ErrGenerationFailed signals a text-generation provider failure.
	ErrGenerationFailed = errors.New("generation provider error")
	// ErrRateLimited signals a rate limit hit on the generation provider.
	ErrRateLimited = errors.New("rate limited")
	// ErrQuotaExceeded signals an exhausted generation token budget.
	ErrQuotaExceeded = errors.New("generation quota exceeded")
	// ErrNoJSONArray signals a generated response without a bracketed JSON array.
	ErrNoJSONArray = errors.New("no json array in response")
	// ErrMalformedPayload signals a JSON array that could not be decoded into records.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrNotImplemented signals an unimplemented feature.
	ErrNotImplemented = errors.New("not implemented")
)

// ProviderError wraps ErrGenerationFailed with the upstream HTTP status.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s API error %d: %s", ErrGenerationFailed.Error(), e.Provider, e.StatusCode, e.Message)
}

func (e *ProviderError) Unwrap() error { return ErrGenerationFailed }

// NewProviderError creates a provider error. Status 429 is reported as ErrRateLimited as well.
func NewProviderError(provider string, status int, message string) error {
	pe := &ProviderError{Provider: provider, StatusCode: status, Message: message}
	if status == 429 {
		return fmt.Errorf("%w: %w", ErrRateLimited, pe)
	}
	return pe
}
