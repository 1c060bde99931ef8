package health

import "context"

// CachePinger checks response cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// GeneratorChecker checks generation provider availability.
type GeneratorChecker interface {
	HealthCheck(ctx context.Context) error
}
