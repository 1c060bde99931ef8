package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/leadscout/internal/config"
	"github.com/kailas-cloud/leadscout/internal/db"
	dbRedis "github.com/kailas-cloud/leadscout/internal/db/redis"
	"github.com/kailas-cloud/leadscout/internal/domain/generation"
	"github.com/kailas-cloud/leadscout/internal/metrics"
	budgetrepo "github.com/kailas-cloud/leadscout/internal/repository/budget"
	"github.com/kailas-cloud/leadscout/internal/repository/gencache"
	"github.com/kailas-cloud/leadscout/internal/transport/gemini"
	"github.com/kailas-cloud/leadscout/internal/transport/openai"
	generationuc "github.com/kailas-cloud/leadscout/internal/usecase/generation"
	healthuc "github.com/kailas-cloud/leadscout/internal/usecase/health"
	searchuc "github.com/kailas-cloud/leadscout/internal/usecase/search"
	usageuc "github.com/kailas-cloud/leadscout/internal/usecase/usage"
)

// newBackend builds the provider client. Replaced in tests.
var newBackend = func(
	ctx context.Context, cfg config.GeneratorConfig, logger *zap.Logger,
) (generation.Generator, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.NewGenerator(&openai.Config{
			APIKey:   cfg.APIKey,
			BaseURL:  cfg.BaseURL,
			Model:    cfg.Model,
			Provider: cfg.Provider,
			Timeout:  cfg.Timeout(),
			Logger:   logger,
		}), nil
	default:
		g, err := gemini.NewGenerator(ctx, &gemini.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout(),
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini backend: %w", err)
		}
		return g, nil
	}
}

// app is the composition root shared by serve and search.
type app struct {
	store  db.Store // nil when the cache is disabled
	search *searchuc.Service
	usage  *usageuc.Service
	health *healthuc.Service
}

func buildApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	metrics.RegisterGenerationMetrics()
	metrics.RegisterSearchMetrics()

	a := &app{}

	if cfg.Cache.Enabled() {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", cfg.Cache.Driver, err)
		}
		timeout := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, timeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("%s not ready: %w", cfg.Cache.Driver, err)
		}
		a.store = store
		logger.Info("Connected to cache", zap.String("driver", cfg.Cache.Driver), zap.Strings("addrs", cfg.Cache.Addrs))
	}

	backend, err := newBackend(ctx, cfg.Generator, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Single BudgetTracker shared by the generator chain and the usage service.
	var budget *generationuc.BudgetTracker
	if b := cfg.Generator.Budget; b.Enabled() {
		action := generationuc.BudgetActionWarn
		if b.Action == string(generationuc.BudgetActionReject) {
			action = generationuc.BudgetActionReject
		}
		budget = generationuc.NewBudgetTracker(
			cfg.Generator.Provider, b.DailyTokenLimit, b.MonthlyTokenLimit, action, logger,
		)
		if a.store != nil {
			budget.WithStore(ctx, budgetrepo.New(a.store, budgetrepo.DefaultDailyTTL, budgetrepo.DefaultMonthlyTTL))
		}
	}

	gen := buildGenerator(backend, cfg, a.store, budget, logger)

	a.search = searchuc.New(gen).
		WithBatchSize(cfg.Search.BatchSize).
		WithMaxBatches(cfg.Search.MaxBatches).
		WithModel(cfg.Generator.Model).
		WithBatchTimeout(cfg.Search.BatchTimeout()).
		WithProximityKm(cfg.Search.DefaultProximityKm).
		WithLogger(logger)

	// Typed nil pointers must not leak into interface values.
	var budgetReader usageuc.BudgetReader
	if budget != nil {
		budgetReader = budget
	}
	a.usage = usageuc.New(cfg.Generator.Provider, budgetReader)

	var pinger healthuc.CachePinger
	if a.store != nil {
		pinger = a.store
	}
	var checker healthuc.GeneratorChecker
	if hc, ok := backend.(generation.HealthChecker); ok {
		checker = hc
	}
	a.health = healthuc.New(pinger, checker)

	logger.Info("Generator ready",
		zap.String("provider", cfg.Generator.Provider),
		zap.String("model", cfg.Generator.Model),
		zap.Bool("cache", a.store != nil),
		zap.Bool("budget", budget != nil),
	)
	return a, nil
}

// buildGenerator assembles the decorator chain: backend -> cache -> instrumented.
func buildGenerator(
	backend generation.Generator,
	cfg config.Config,
	store db.Store,
	budget *generationuc.BudgetTracker,
	logger *zap.Logger,
) generation.Generator {
	gen := backend
	if store != nil {
		gen = gencache.New(backend, store, cfg.Cache.TTL(), metrics.GenerationCacheTotal, logger)
	}

	var checker generationuc.BudgetChecker
	if budget != nil {
		checker = budget
	}
	return generationuc.NewInstrumentedGenerator(gen, cfg.Generator.Provider, checker, logger)
}

// Close releases the store connection.
func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
}
