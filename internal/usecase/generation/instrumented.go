package generation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domgen "github.com/kailas-cloud/leadscout/internal/domain/generation"
	"github.com/kailas-cloud/leadscout/internal/metrics"
)

// BudgetChecker is the local interface for budget enforcement.
type BudgetChecker interface {
	Check(ctx context.Context) error
	Record(tokens int64)
	RemainingDaily() int64
	RemainingMonthly() int64
}

// InstrumentedGenerator wraps a Generator with budget enforcement and logging.
// Transport metrics (requests, duration, tokens) are recorded by the backends.
// This layer owns budget tracking and budget-related metrics only.
type InstrumentedGenerator struct {
	inner    domgen.Generator
	provider string
	budget   BudgetChecker
	logger   *zap.Logger
}

// NewInstrumentedGenerator wraps a generator with budget and observability. budget may be nil.
func NewInstrumentedGenerator(
	inner domgen.Generator, provider string, budget BudgetChecker, logger *zap.Logger,
) *InstrumentedGenerator {
	return &InstrumentedGenerator{
		inner:    inner,
		provider: provider,
		budget:   budget,
		logger:   logger,
	}
}

// Generate checks the budget, delegates to the inner generator and records usage.
// Cached responses are not charged.
func (g *InstrumentedGenerator) Generate(
	ctx context.Context, req domgen.Request,
) (domgen.Response, error) {
	if g.budget != nil {
		if err := g.budget.Check(ctx); err != nil {
			g.logger.Error("Budget exceeded",
				zap.String("provider", g.provider),
				zap.String("model", req.Model),
				zap.Error(err),
			)
			return domgen.Response{}, fmt.Errorf("budget check: %w", err)
		}
	}

	start := time.Now()
	resp, err := g.inner.Generate(ctx, req)
	duration := time.Since(start)

	if err != nil {
		g.logger.Error("Generation request failed",
			zap.String("provider", g.provider),
			zap.String("model", req.Model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domgen.Response{}, fmt.Errorf("generate: %w", err)
	}

	if g.budget != nil && !resp.Cached {
		g.budget.Record(int64(resp.TotalTokens))
		remaining := metrics.GenerationBudgetTokensRemaining
		remaining.WithLabelValues(g.provider, "daily").Set(float64(g.budget.RemainingDaily()))
		remaining.WithLabelValues(g.provider, "monthly").Set(float64(g.budget.RemainingMonthly()))
	}

	g.logger.Debug("Generation request completed",
		zap.String("provider", g.provider),
		zap.String("model", req.Model),
		zap.Duration("duration", duration),
		zap.Bool("cached", resp.Cached),
		zap.Int("response_chars", len(resp.Text)),
		zap.Int("prompt_tokens", resp.PromptTokens),
		zap.Int("total_tokens", resp.TotalTokens),
	)

	return resp, nil
}
