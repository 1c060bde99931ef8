package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the cache is down but searches still work.
	Degraded Status = "degraded"
	// Unhealthy indicates the generation provider is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names used as report keys.
const (
	ComponentCache     = "cache"
	ComponentGenerator = "generator"
)

// DefaultCheckTimeout bounds every individual probe.
const DefaultCheckTimeout = 5 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	cache     CachePinger
	generator GeneratorChecker
	timeout   time.Duration
}

// New creates a Service. Both dependencies can be nil (cache disabled, generator unchecked).
func New(cache CachePinger, generator GeneratorChecker) *Service {
	return &Service{cache: cache, generator: generator, timeout: DefaultCheckTimeout}
}

// Check probes all components concurrently.
func (s *Service) Check(ctx context.Context) Report {
	var (
		mu     sync.Mutex
		checks = make(map[string]CheckResult)
	)
	set := func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			checks[name] = CheckError
			return
		}
		checks[name] = CheckOK
	}

	var g errgroup.Group
	if s.cache != nil {
		g.Go(func() error {
			set(ComponentCache, s.probe(ctx, s.cache.Ping))
			return nil
		})
	}
	if s.generator != nil {
		g.Go(func() error {
			set(ComponentGenerator, s.probe(ctx, s.generator.HealthCheck))
			return nil
		})
	}
	_ = g.Wait()

	status := Healthy
	if checks[ComponentCache] == CheckError {
		status = Degraded
	}
	if checks[ComponentGenerator] == CheckError {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}

func (s *Service) probe(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return fn(ctx)
}
