package domain

import (
	"errors"
	"testing"
)

func TestProviderError_UnwrapsToGenerationFailed(t *testing.T) {
	err := NewProviderError("gemini", 500, "backend exploded")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if errors.Is(err, ErrRateLimited) {
		t.Fatal("500 must not be reported as rate limited")
	}

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatal("expected *ProviderError")
	}
	if pe.StatusCode != 500 || pe.Provider != "gemini" {
		t.Errorf("unexpected provider error: %+v", pe)
	}
}

func TestProviderError_429IsRateLimited(t *testing.T) {
	err := NewProviderError("openai", 429, "slow down")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed in chain, got %v", err)
	}
}

func TestDefaultSearchConfig(t *testing.T) {
	cfg := DefaultSearchConfig()
	if cfg.BatchSize != 30 {
		t.Errorf("BatchSize = %d, want 30", cfg.BatchSize)
	}
	if cfg.MaxBatches != 8 {
		t.Errorf("MaxBatches = %d, want 8", cfg.MaxBatches)
	}
	if cfg.DefaultProximityKm != 10 {
		t.Errorf("DefaultProximityKm = %v, want 10", cfg.DefaultProximityKm)
	}
}
