package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/leadscout/internal/domain"
	"github.com/kailas-cloud/leadscout/internal/domain/generation"
	"github.com/kailas-cloud/leadscout/internal/metrics"
)

const systemPrompt = "You are a business research assistant. " +
	"Answer only with the JSON the user asks for."

// Generator is a text generator using the OpenAI-compatible chat completions API.
// Grounding tools are not available on this backend; geo-bias is passed as a prompt hint.
type Generator struct {
	client   *openai.Client
	model    string
	user     string
	provider string
	logger   *zap.Logger
}

// Config holds the chat provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	User     string
	Provider string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// NewGenerator creates an OpenAI-compatible generator.
func NewGenerator(cfg *Config) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	provider := cfg.Provider
	if provider == "" {
		provider = "openai"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		user:     cfg.User,
		provider: provider,
		logger:   logger,
	}
}

// Generate implements generation.Generator with transport-level metrics.
func (g *Generator) Generate(ctx context.Context, req generation.Request) (generation.Response, error) {
	model := req.Model
	if model == "" {
		model = g.model
	}
	if len(req.Tools) > 0 {
		g.logger.Debug("Grounding tools ignored by chat backend",
			zap.String("provider", g.provider), zap.Int("tools", len(req.Tools)))
	}

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: withGeoHint(req)},
		},
		User: g.user,
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	duration := time.Since(start)

	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(g.provider, model, "error").Inc()
		metrics.GenerationErrorsTotal.WithLabelValues(g.provider, model, "api_error").Inc()
		return generation.Response{}, g.parseAPIError(ctx, err)
	}

	if len(resp.Choices) == 0 {
		metrics.GenerationRequestsTotal.WithLabelValues(g.provider, model, "error").Inc()
		metrics.GenerationErrorsTotal.WithLabelValues(g.provider, model, "empty_response").Inc()
		return generation.Response{}, fmt.Errorf("empty chat response: %w", domain.ErrGenerationFailed)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(g.provider, model, "success").Inc()
	metrics.GenerationRequestDuration.WithLabelValues(g.provider, model).Observe(duration.Seconds())

	promptTokens := resp.Usage.PromptTokens
	totalTokens := resp.Usage.TotalTokens
	if totalTokens > 0 {
		metrics.GenerationTokensTotal.WithLabelValues(g.provider, model, "prompt").Add(float64(promptTokens))
		metrics.GenerationTokensTotal.WithLabelValues(g.provider, model, "total").Add(float64(totalTokens))
	}

	return generation.Response{
		Text:         resp.Choices[0].Message.Content,
		PromptTokens: promptTokens,
		TotalTokens:  totalTokens,
	}, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func withGeoHint(req generation.Request) string {
	if req.GeoBias == nil {
		return req.Prompt
	}
	return fmt.Sprintf("%s\nThe searcher is at latitude %.6f, longitude %.6f.",
		req.Prompt, req.GeoBias.Latitude, req.GeoBias.Longitude)
}

// parseAPIError maps SDK errors onto domain errors (ErrRateLimited for 429, ErrGenerationFailed otherwise).
func (g *Generator) parseAPIError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("chat request: %w", ctxErr)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := extractDetail(reqErr.Body)
		if msg == "" {
			msg = string(reqErr.Body)
		}
		return domain.NewProviderError(g.provider, reqErr.HTTPStatusCode, msg)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return domain.NewProviderError(g.provider, apiErr.HTTPStatusCode, apiErr.Message)
	}

	return fmt.Errorf("chat request failed: %v: %w", err, domain.ErrGenerationFailed)
}

// extractDetail extracts the "detail" field from a JSON error body (Nebius-style gateways).
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
