// Package gencache caches generator responses in a key-value store.
package gencache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/leadscout/internal/db"
	"github.com/kailas-cloud/leadscout/internal/domain"
	"github.com/kailas-cloud/leadscout/internal/domain/generation"
)

var cacheKeyPrefix = domain.KeyPrefix + "gen_cache:"

// DefaultTTL is how long a cached response stays valid.
const DefaultTTL = 6 * time.Hour

// store is the consumer interface for the generation cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// CachedGenerator caches generator responses keyed by the full request.
type CachedGenerator struct {
	inner      generation.Generator
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator. ttl <= 0 stores entries without expiry.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner generation.Generator,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedGenerator {
	return &CachedGenerator{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Generate returns a cached response or calls the inner generator.
// Cache hits are flagged Cached so the budget layer does not charge them.
// Store failures never fail the call.
func (c *CachedGenerator) Generate(ctx context.Context, req generation.Request) (generation.Response, error) {
	key := cacheKey(req)

	if resp, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		resp.Cached = true
		return resp, nil
	}

	c.incCache("miss")

	resp, err := c.inner.Generate(ctx, req)
	if err != nil {
		return generation.Response{}, fmt.Errorf("generate: %w", err)
	}

	if cacheable(resp) {
		c.putToCache(ctx, key, resp)
	}
	return resp, nil
}

func (c *CachedGenerator) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheable rejects responses that can never parse; retrying them may succeed.
func cacheable(resp generation.Response) bool {
	return strings.Contains(resp.Text, "[") && strings.Contains(resp.Text, "]")
}

// cacheKey hashes every request field that can change the answer.
func cacheKey(req generation.Request) string {
	tools := make([]string, len(req.Tools))
	for i, t := range req.Tools {
		tools[i] = string(t)
	}
	sort.Strings(tools)

	geo := "-"
	if req.GeoBias != nil {
		geo = fmt.Sprintf("%.6f,%.6f", req.GeoBias.Latitude, req.GeoBias.Longitude)
	}

	h := sha256.New()
	for _, part := range []string{req.Model, strings.Join(tools, ","), geo, req.Prompt} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedGenerator) getFromCache(ctx context.Context, key string) (generation.Response, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached response", zap.String("key", key), zap.Error(err))
		}
		return generation.Response{}, false
	}
	if len(data) == 0 {
		return generation.Response{}, false
	}

	var resp generation.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		c.logger.Warn("Dropping unreadable cached response", zap.String("key", key), zap.Error(err))
		if err := c.store.Del(ctx, key); err != nil {
			c.logger.Warn("Failed to delete cached response", zap.String("key", key), zap.Error(err))
		}
		return generation.Response{}, false
	}

	return resp, true
}

func (c *CachedGenerator) putToCache(ctx context.Context, key string, resp generation.Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Warn("Failed to encode response for cache", zap.String("key", key), zap.Error(err))
		return
	}

	if c.ttl > 0 {
		err = c.store.SetWithTTL(ctx, key, data, c.ttl)
	} else {
		err = c.store.Set(ctx, key, data)
	}
	if err != nil {
		c.logger.Warn("Failed to cache response", zap.String("key", key), zap.Error(err))
	}
}
