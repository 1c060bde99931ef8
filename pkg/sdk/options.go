package leadscout

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	provider  string // "gemini", "openai" or "custom"
	apiKey    string
	baseURL   string
	generator Generator
	model     string
	timeout   time.Duration

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration

	dailyTokenLimit   int64
	monthlyTokenLimit int64
	rejectOverBudget  bool

	batchSize    int
	maxBatches   int
	batchTimeout time.Duration
	proximityKm  float64

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithGemini uses the Gemini API with maps and web search grounding.
func WithGemini(apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.provider = providerGemini
		c.apiKey = apiKey
	})
}

// WithOpenAI uses an OpenAI-compatible chat completions endpoint.
// baseURL may be empty for the public API. Grounding tools are unavailable on this backend.
func WithOpenAI(apiKey, baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.provider = providerOpenAI
		c.apiKey = apiKey
		c.baseURL = baseURL
	})
}

// WithGenerator plugs in a custom generation backend.
func WithGenerator(g Generator) Option {
	return optionFunc(func(c *clientConfig) {
		c.provider = providerCustom
		c.generator = g
	})
}

// WithModel overrides the model name. Default: gemini-2.5-flash.
func WithModel(model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.model = model
	})
}

// WithTimeout bounds every provider HTTP call. Default: no transport timeout
// (each batch is still bounded by the batch timeout).
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithRedisCache caches generator responses in Redis or Valkey.
// A ttl <= 0 uses the default of 6h.
func WithRedisCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
		c.cacheTTL = ttl
	})
}

// WithBudget enforces daily and monthly token limits (0 = unlimited).
// With reject=false an exceeded budget is only logged.
func WithBudget(daily, monthly int64, reject bool) Option {
	return optionFunc(func(c *clientConfig) {
		c.dailyTokenLimit = daily
		c.monthlyTokenLimit = monthly
		c.rejectOverBudget = reject
	})
}

// WithBatchSize sets how many leads each batch asks for. Default: 30.
func WithBatchSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.batchSize = n
	})
}

// WithMaxBatches caps concurrent batches per search. Default and maximum: 8.
func WithMaxBatches(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxBatches = n
	})
}

// WithBatchTimeout bounds a single batch. Default: 90s.
func WithBatchTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.batchTimeout = d
	})
}

// WithProximityKm sets the radius hinted when only coordinates are given. Default: 10.
func WithProximityKm(km float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.proximityKm = km
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
