package leadscout

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/leadscout/internal/domain/generation"
)

// Generator produces free-form text for a prompt. Implementations must be safe
// for concurrent use: one search calls Generate from several goroutines.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
}

// generatorAdapter wraps a public Generator to satisfy the internal port.
type generatorAdapter struct {
	inner Generator
}

func (a *generatorAdapter) Generate(ctx context.Context, req generation.Request) (generation.Response, error) {
	pub := GenerateRequest{Model: req.Model, Prompt: req.Prompt}
	for _, t := range req.Tools {
		pub.Tools = append(pub.Tools, Tool(t))
	}
	if req.GeoBias != nil {
		pub.GeoBias = &GeoPoint{Latitude: req.GeoBias.Latitude, Longitude: req.GeoBias.Longitude}
	}

	r, err := a.inner.Generate(ctx, pub)
	if err != nil {
		return generation.Response{}, fmt.Errorf("generate: %w", err)
	}
	return generation.Response{
		Text:         r.Text,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}
