package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/leadscout/internal/domain"
	"github.com/kailas-cloud/leadscout/internal/domain/batch"
	"github.com/kailas-cloud/leadscout/internal/domain/generation"
	"github.com/kailas-cloud/leadscout/internal/domain/lead"
	"github.com/kailas-cloud/leadscout/internal/domain/search/request"
	"github.com/kailas-cloud/leadscout/internal/domain/search/strategy"
	"github.com/kailas-cloud/leadscout/internal/logger"
	"github.com/kailas-cloud/leadscout/internal/metrics"
)

// DefaultBatchTimeout bounds a single generator call.
const DefaultBatchTimeout = 90 * time.Second

// Fetcher executes one batch against the generator. It never returns an error:
// every failure is logged and folded into a failed outcome.
type Fetcher struct {
	gen         Generator
	model       string
	timeout     time.Duration
	proximityKm float64
}

// NewFetcher creates a fetcher with the default model, timeout and proximity radius.
func NewFetcher(gen Generator) *Fetcher {
	cfg := domain.DefaultSearchConfig()
	return &Fetcher{
		gen:         gen,
		model:       cfg.Model,
		timeout:     DefaultBatchTimeout,
		proximityKm: cfg.DefaultProximityKm,
	}
}

// Fetch runs one batch and reports how it settled.
func (f *Fetcher) Fetch(ctx context.Context, req *request.Request, b strategy.Batch) batch.Outcome {
	log := logger.FromContext(ctx).With(
		zap.Int("batch", b.Index),
		zap.String("strategy", b.Strategy.ID),
	)

	records, err := f.fetch(ctx, req, b)
	if err != nil {
		reason := failureReason(err)
		log.Warn("batch failed", zap.String("reason", reason), zap.Error(err))
		metrics.ObserveBatch(b.Strategy.ID, string(batch.StatusFailed), reason)
		return batch.NewFailed(b.Index, b.Strategy.ID, err)
	}

	log.Debug("batch settled", zap.Int("records", len(records)))
	metrics.ObserveBatch(b.Strategy.ID, string(batch.StatusOK), "")
	return batch.NewOK(b.Index, b.Strategy.ID, records)
}

func (f *Fetcher) fetch(ctx context.Context, req *request.Request, b strategy.Batch) ([]lead.Record, error) {
	prompt, bias, err := renderPrompt(req, b, f.proximityKm)
	if err != nil {
		return nil, err
	}

	genReq := generation.Request{
		Model:  f.model,
		Prompt: prompt,
		Tools:  generation.DefaultTools(),
	}
	if bias != nil {
		genReq.GeoBias = &generation.GeoPoint{Latitude: bias.Latitude, Longitude: bias.Longitude}
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	resp, err := f.gen.Generate(ctx, genReq)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	records, err := parseRecords(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return records, nil
}

// failureReason maps a batch error to a low-cardinality metrics label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, domain.ErrNoJSONArray):
		return "no_json_array"
	case errors.Is(err, domain.ErrMalformedPayload):
		return "malformed_payload"
	case errors.Is(err, domain.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	default:
		return "generation_failed"
	}
}
