package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/leadscout/internal/domain"
	"github.com/kailas-cloud/leadscout/internal/domain/batch"
	"github.com/kailas-cloud/leadscout/internal/domain/lead"
	"github.com/kailas-cloud/leadscout/internal/domain/search/request"
	"github.com/kailas-cloud/leadscout/internal/domain/search/strategy"
	"github.com/kailas-cloud/leadscout/internal/logger"
	"github.com/kailas-cloud/leadscout/internal/metrics"
)

// Service fans one search out into concurrent batches and merges what they return.
type Service struct {
	fetcher    *Fetcher
	batchSize  int
	maxBatches int
	catalog    []strategy.Strategy
	logger     *zap.Logger
}

// New creates a search service.
func New(gen Generator) *Service {
	cfg := domain.DefaultSearchConfig()
	return &Service{
		fetcher:    NewFetcher(gen),
		batchSize:  cfg.BatchSize,
		maxBatches: cfg.MaxBatches,
		catalog:    strategy.DefaultCatalog(),
		logger:     zap.NewNop(),
	}
}

// WithBatchSize sets how many records each batch asks for.
func (s *Service) WithBatchSize(n int) *Service {
	if n > 0 {
		s.batchSize = n
	}
	return s
}

// WithMaxBatches caps the fan-out. The strategy catalog length is always an upper bound.
func (s *Service) WithMaxBatches(n int) *Service {
	if n > 0 {
		s.maxBatches = n
	}
	return s
}

// WithModel sets the model every batch requests.
func (s *Service) WithModel(model string) *Service {
	if model != "" {
		s.fetcher.model = model
	}
	return s
}

// WithStrategies replaces the strategy catalog.
func (s *Service) WithStrategies(catalog []strategy.Strategy) *Service {
	if len(catalog) > 0 {
		s.catalog = catalog
	}
	return s
}

// WithBatchTimeout bounds each generator call. Zero disables the per-batch timeout.
func (s *Service) WithBatchTimeout(d time.Duration) *Service {
	if d >= 0 {
		s.fetcher.timeout = d
	}
	return s
}

// WithProximityKm sets the radius described when neither a place nor a radius is given.
func (s *Service) WithProximityKm(km float64) *Service {
	if km > 0 {
		s.fetcher.proximityKm = km
	}
	return s
}

// WithLogger sets the logger.
func (s *Service) WithLogger(l *zap.Logger) *Service {
	if l != nil {
		s.logger = l
	}
	return s
}

// Search runs every planned batch concurrently and waits for all of them to settle.
// Batch failures never fail the search: if every batch fails the result is empty.
// onProgress may be nil.
func (s *Service) Search(
	ctx context.Context, req *request.Request, onProgress ProgressFunc,
) ([]lead.Record, error) {
	if req == nil || strings.TrimSpace(req.Query()) == "" {
		return nil, fmt.Errorf("query is required: %w", domain.ErrInvalidRequest)
	}

	start := time.Now()
	searchID := uuid.NewString()
	ctx, log := logger.WithFields(ctx, s.logger, zap.String("search_id", searchID))

	batches := strategy.Plan(req.TargetCount(), s.batchSize, s.maxBatches, s.catalog)
	outcomes := make(chan batch.Outcome, len(batches))

	var g errgroup.Group
	for _, b := range batches {
		g.Go(func() error {
			outcomes <- s.fetcher.Fetch(ctx, req, b)
			return nil
		})
	}

	var (
		collected []lead.Record
		failures  int
	)
	for range batches {
		o := <-outcomes
		if onProgress != nil {
			onProgress((o.Index()+1)*batches[o.Index()].Size, req.TargetCount())
		}
		if !o.OK() {
			failures++
			continue
		}
		collected = append(collected, o.Records()...)
	}
	_ = g.Wait()

	results := Deduplicate(collected)

	elapsed := time.Since(start)
	metrics.SearchDuration.Observe(elapsed.Seconds())
	metrics.SearchRecords.Observe(float64(len(results)))

	log.Info("search completed",
		zap.String("scope", string(req.Scope())),
		zap.Int("target", req.TargetCount()),
		zap.Int("batches", len(batches)),
		zap.Int("failed_batches", failures),
		zap.Int("raw_records", len(collected)),
		zap.Int("records", len(results)),
		zap.Duration("duration", elapsed),
	)

	return results, nil
}
