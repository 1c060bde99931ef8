// Package gemini implements the Generator port on the Gemini API with maps and web search grounding.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kailas-cloud/leadscout/internal/domain"
	"github.com/kailas-cloud/leadscout/internal/domain/generation"
	"github.com/kailas-cloud/leadscout/internal/metrics"
)

const provider = "gemini"

// Config holds the Gemini provider settings.
type Config struct {
	APIKey  string
	BaseURL string // empty = public endpoint
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Generator calls Models.GenerateContent with grounding tools.
type Generator struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGenerator creates a Gemini generator.
func NewGenerator(ctx context.Context, cfg *Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPOptions.Timeout = genai.Ptr(cfg.Timeout)
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{client: client, model: cfg.Model, logger: logger}, nil
}

// Generate implements generation.Generator with transport-level metrics.
func (g *Generator) Generate(ctx context.Context, req generation.Request) (generation.Response, error) {
	model := req.Model
	if model == "" {
		model = g.model
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), contentConfig(req))
	duration := time.Since(start)

	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(provider, model, "error").Inc()
		metrics.GenerationErrorsTotal.WithLabelValues(provider, model, "api_error").Inc()
		return generation.Response{}, parseAPIError(ctx, err)
	}

	text := resp.Text()
	if text == "" {
		metrics.GenerationRequestsTotal.WithLabelValues(provider, model, "error").Inc()
		metrics.GenerationErrorsTotal.WithLabelValues(provider, model, "empty_response").Inc()
		return generation.Response{}, fmt.Errorf("empty gemini response: %w", domain.ErrGenerationFailed)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(provider, model, "success").Inc()
	metrics.GenerationRequestDuration.WithLabelValues(provider, model).Observe(duration.Seconds())

	out := generation.Response{Text: text}
	if u := resp.UsageMetadata; u != nil {
		out.PromptTokens = int(u.PromptTokenCount)
		out.TotalTokens = int(u.TotalTokenCount)
		metrics.GenerationTokensTotal.WithLabelValues(provider, model, "prompt").Add(float64(out.PromptTokens))
		metrics.GenerationTokensTotal.WithLabelValues(provider, model, "total").Add(float64(out.TotalTokens))
	}
	return out, nil
}

// HealthCheck verifies API availability by listing a single model.
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.Models.List(ctx, &genai.ListModelsConfig{PageSize: 1}); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// contentConfig maps requested tools and geo-bias onto the SDK config.
func contentConfig(req generation.Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}

	for _, t := range req.Tools {
		switch t {
		case generation.ToolMapsLookup:
			cfg.Tools = append(cfg.Tools, &genai.Tool{GoogleMaps: &genai.GoogleMaps{}})
		case generation.ToolWebSearch:
			cfg.Tools = append(cfg.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
		}
	}

	if req.GeoBias != nil {
		cfg.ToolConfig = &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{
					Latitude:  genai.Ptr(req.GeoBias.Latitude),
					Longitude: genai.Ptr(req.GeoBias.Longitude),
				},
			},
		}
	}
	return cfg
}

// parseAPIError maps SDK errors onto domain errors (ErrRateLimited for 429, ErrGenerationFailed otherwise).
func parseAPIError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("gemini request: %w", ctxErr)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return domain.NewProviderError(provider, apiErr.Code, apiErr.Message)
	}

	return fmt.Errorf("gemini request failed: %v: %w", err, domain.ErrGenerationFailed)
}
