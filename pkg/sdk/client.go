package leadscout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/leadscout/internal/db"
	dbRedis "github.com/kailas-cloud/leadscout/internal/db/redis"
	"github.com/kailas-cloud/leadscout/internal/domain"
	"github.com/kailas-cloud/leadscout/internal/domain/generation"
	"github.com/kailas-cloud/leadscout/internal/domain/lead"
	"github.com/kailas-cloud/leadscout/internal/domain/search/request"
	budgetrepo "github.com/kailas-cloud/leadscout/internal/repository/budget"
	"github.com/kailas-cloud/leadscout/internal/repository/gencache"
	"github.com/kailas-cloud/leadscout/internal/transport/gemini"
	"github.com/kailas-cloud/leadscout/internal/transport/openai"
	generationuc "github.com/kailas-cloud/leadscout/internal/usecase/generation"
	healthuc "github.com/kailas-cloud/leadscout/internal/usecase/health"
	searchuc "github.com/kailas-cloud/leadscout/internal/usecase/search"
	usageuc "github.com/kailas-cloud/leadscout/internal/usecase/usage"
)

const (
	providerGemini = "gemini"
	providerOpenAI = "openai"
	providerCustom = "custom"
)

const defaultReadinessTimeout = 10 * time.Second

// searchUseCase is the internal interface for the fan-out search.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request, onProgress searchuc.ProgressFunc) ([]lead.Record, error)
}

// Client is the leadscout SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store // nil without WithRedisCache
	searchSvc searchUseCase
	healthSvc healthUseCase
	usageSvc  usageUseCase
	obs       *observer
}

// New creates a Client. Exactly one of WithGemini, WithOpenAI or WithGenerator is required.
// The provided context is used for the initial cache readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	applyDefaults(cfg)

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	backend, err := createBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if len(cfg.cacheAddrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.cacheAddrs, Password: cfg.cachePassword})
		if err != nil {
			return nil, fmt.Errorf("leadscout: create cache store: %w", err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("leadscout: cache not ready: %w", err)
		}
		store = s
	}

	return wireClient(ctx, backend, store, cfg, obs), nil
}

func applyDefaults(cfg *clientConfig) {
	def := domain.DefaultSearchConfig()
	if cfg.model == "" {
		cfg.model = def.Model
	}
	if cfg.cacheTTL <= 0 {
		cfg.cacheTTL = gencache.DefaultTTL
	}
}

func createBackend(ctx context.Context, cfg *clientConfig) (generation.Generator, error) {
	log := zap.NewNop()
	switch cfg.provider {
	case providerGemini:
		g, err := gemini.NewGenerator(ctx, &gemini.Config{
			APIKey:  cfg.apiKey,
			Model:   cfg.model,
			Timeout: cfg.timeout,
			Logger:  log,
		})
		if err != nil {
			return nil, fmt.Errorf("leadscout: gemini backend: %w", err)
		}
		return g, nil
	case providerOpenAI:
		if cfg.apiKey == "" {
			return nil, errors.New("leadscout: openai api key required")
		}
		return openai.NewGenerator(&openai.Config{
			APIKey:   cfg.apiKey,
			BaseURL:  cfg.baseURL,
			Model:    cfg.model,
			Provider: providerOpenAI,
			Timeout:  cfg.timeout,
			Logger:   log,
		}), nil
	case providerCustom:
		if cfg.generator == nil {
			return nil, errors.New("leadscout: generator must not be nil")
		}
		return &generatorAdapter{inner: cfg.generator}, nil
	default:
		return nil, errors.New("leadscout: generator required (use WithGemini, WithOpenAI or WithGenerator)")
	}
}

// wireClient assembles backend -> cache -> instrumented and the services on top.
func wireClient(ctx context.Context, backend generation.Generator, store db.Store, cfg *clientConfig, obs *observer) *Client {
	log := zap.NewNop()

	gen := backend
	if store != nil {
		gen = gencache.New(backend, store, cfg.cacheTTL, nil, log)
	}

	var (
		checker      generationuc.BudgetChecker
		budgetReader usageuc.BudgetReader
	)
	if cfg.dailyTokenLimit > 0 || cfg.monthlyTokenLimit > 0 {
		action := generationuc.BudgetActionWarn
		if cfg.rejectOverBudget {
			action = generationuc.BudgetActionReject
		}
		tracker := generationuc.NewBudgetTracker(cfg.provider, cfg.dailyTokenLimit, cfg.monthlyTokenLimit, action, log)
		if store != nil {
			tracker.WithStore(ctx, budgetrepo.New(store, budgetrepo.DefaultDailyTTL, budgetrepo.DefaultMonthlyTTL))
		}
		checker, budgetReader = tracker, tracker
	}
	gen = generationuc.NewInstrumentedGenerator(gen, cfg.provider, checker, log)

	searchSvc := searchuc.New(gen).WithModel(cfg.model).WithLogger(log)
	if cfg.batchSize > 0 {
		searchSvc = searchSvc.WithBatchSize(cfg.batchSize)
	}
	if cfg.maxBatches > 0 {
		searchSvc = searchSvc.WithMaxBatches(cfg.maxBatches)
	}
	if cfg.batchTimeout > 0 {
		searchSvc = searchSvc.WithBatchTimeout(cfg.batchTimeout)
	}
	if cfg.proximityKm > 0 {
		searchSvc = searchSvc.WithProximityKm(cfg.proximityKm)
	}

	var pinger healthuc.CachePinger
	if store != nil {
		pinger = store
	}
	var hc healthuc.GeneratorChecker
	if h, ok := backend.(generation.HealthChecker); ok {
		hc = h
	}

	return &Client{
		store:     store,
		searchSvc: searchSvc,
		healthSvc: healthuc.New(pinger, hc),
		usageSvc:  usageuc.New(cfg.provider, budgetReader),
		obs:       obs,
	}
}

// Close releases the cache connection, if any.
func (c *Client) Close() error {
	if c.store != nil {
		c.store.Close()
	}
	return nil
}

// Ping checks cache connectivity. Without a cache it always succeeds.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("leadscout: ping: %w", err)
	}
	return nil
}
