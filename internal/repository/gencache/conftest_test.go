package gencache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/leadscout/internal/db"
	"github.com/kailas-cloud/leadscout/internal/domain/generation"
)

type mockGenerator struct {
	resp  generation.Response
	err   error
	calls int
}

func (m *mockGenerator) Generate(_ context.Context, _ generation.Request) (generation.Response, error) {
	m.calls++
	return m.resp, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	delFn func(ctx context.Context, key string) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte) error {
	return m.SetWithTTL(ctx, key, value, 0)
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockKVStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func newTestCachedGenerator(t *testing.T, inner *mockGenerator) (*CachedGenerator, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	return New(inner, ms, DefaultTTL, nil, zap.NewNop()), ms
}

func testRequest() generation.Request {
	return generation.Request{
		Model:   "gemini-2.5-flash",
		Prompt:  "Find 30 bakeries",
		Tools:   generation.DefaultTools(),
		GeoBias: &generation.GeoPoint{Latitude: -23.55, Longitude: -46.63},
	}
}
