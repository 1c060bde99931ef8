package search

import (
	"context"

	"github.com/kailas-cloud/leadscout/internal/domain/generation"
)

// Generator produces free-form text for a prompt, optionally grounded by tools.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (generation.Response, error)
}

// ProgressFunc receives a coarse completion estimate once per settled batch.
// completed may exceed total and is not guaranteed to grow monotonically.
type ProgressFunc func(completed, total int)
