package leadscout

import "github.com/kailas-cloud/leadscout/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check. Only ErrInvalidRequest is returned by Search;
// the others surface from custom generators and health checks.
var (
	ErrInvalidRequest   = domain.ErrInvalidRequest
	ErrGenerationFailed = domain.ErrGenerationFailed
	ErrRateLimited      = domain.ErrRateLimited
	ErrQuotaExceeded    = domain.ErrQuotaExceeded
	ErrNoJSONArray      = domain.ErrNoJSONArray
	ErrMalformedPayload = domain.ErrMalformedPayload
)
