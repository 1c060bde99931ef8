package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/leadscout/internal/domain"
	"github.com/kailas-cloud/leadscout/internal/domain/generation"
	"github.com/kailas-cloud/leadscout/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterGenerationMetrics()
	os.Exit(m.Run())
}

type capturedRequest struct {
	Path string
	Key  string
	Body map[string]any
}

func newTestServer(t *testing.T, status int, body string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			captured.Path = r.URL.Path
			captured.Key = r.Header.Get("x-goog-api-key")
			_ = json.NewDecoder(r.Body).Decode(&captured.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func newTestGenerator(t *testing.T, url string) *Generator {
	t.Helper()
	g, err := NewGenerator(context.Background(), &Config{
		APIKey:  "test-key",
		BaseURL: url,
		Model:   "gemini-2.5-flash",
		Logger:  zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g
}

const okBody = `{
  "candidates": [{"content": {"role": "model", "parts": [{"text": "[{\"nome\":\"Padaria Sol\"}]"}]}}],
  "usageMetadata": {"promptTokenCount": 110, "candidatesTokenCount": 40, "totalTokenCount": 150}
}`

func TestGenerator_Generate(t *testing.T) {
	var got capturedRequest
	server := newTestServer(t, http.StatusOK, okBody, &got)
	defer server.Close()

	resp, err := newTestGenerator(t, server.URL).Generate(context.Background(), generation.Request{
		Prompt:  "Find bakeries",
		Tools:   generation.DefaultTools(),
		GeoBias: &generation.GeoPoint{Latitude: -23.5505, Longitude: -46.6333},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if resp.Text != `[{"nome":"Padaria Sol"}]` {
		t.Errorf("unexpected text: %q", resp.Text)
	}
	if resp.PromptTokens != 110 || resp.TotalTokens != 150 {
		t.Errorf("unexpected usage: %d/%d", resp.PromptTokens, resp.TotalTokens)
	}
	if !strings.HasSuffix(got.Path, "/models/gemini-2.5-flash:generateContent") {
		t.Errorf("unexpected path: %s", got.Path)
	}
	if got.Key != "test-key" {
		t.Errorf("unexpected api key header: %q", got.Key)
	}

	tools, _ := got.Body["tools"].([]any)
	if len(tools) != 2 {
		t.Fatalf("expected 2 tools, got %v", got.Body["tools"])
	}
	toolConfig, _ := got.Body["toolConfig"].(map[string]any)
	retrieval, _ := toolConfig["retrievalConfig"].(map[string]any)
	latLng, _ := retrieval["latLng"].(map[string]any)
	if latLng["latitude"] != -23.5505 {
		t.Errorf("expected geo bias latitude, got %v", toolConfig)
	}
}

func TestGenerator_NoGeoBias(t *testing.T) {
	var got capturedRequest
	server := newTestServer(t, http.StatusOK, okBody, &got)
	defer server.Close()

	_, err := newTestGenerator(t, server.URL).Generate(context.Background(), generation.Request{
		Model:  "gemini-2.5-pro",
		Prompt: "Find bakeries in Curitiba, PR",
		Tools:  []generation.Tool{generation.ToolWebSearch},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(got.Path, "gemini-2.5-pro") {
		t.Errorf("expected request model in path, got %s", got.Path)
	}
	if _, ok := got.Body["toolConfig"]; ok {
		t.Error("expected no toolConfig without geo bias")
	}
}

func TestGenerator_RateLimited(t *testing.T) {
	body := `{"error": {"code": 429, "message": "Resource exhausted", "status": "RESOURCE_EXHAUSTED"}}`
	server := newTestServer(t, http.StatusTooManyRequests, body, nil)
	defer server.Close()

	_, err := newTestGenerator(t, server.URL).Generate(context.Background(), generation.Request{Prompt: "x"})
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}

func TestGenerator_ServerError(t *testing.T) {
	body := `{"error": {"code": 500, "message": "internal", "status": "INTERNAL"}}`
	server := newTestServer(t, http.StatusInternalServerError, body, nil)
	defer server.Close()

	_, err := newTestGenerator(t, server.URL).Generate(context.Background(), generation.Request{Prompt: "x"})
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if errors.Is(err, domain.ErrRateLimited) {
		t.Error("500 must not be reported as rate limited")
	}
}

func TestGenerator_EmptyCandidates(t *testing.T) {
	server := newTestServer(t, http.StatusOK, `{"candidates": []}`, nil)
	defer server.Close()

	_, err := newTestGenerator(t, server.URL).Generate(context.Background(), generation.Request{Prompt: "x"})
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Errorf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestNewGenerator_RequiresKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), &Config{}); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestContentConfig_UnknownToolIgnored(t *testing.T) {
	cfg := contentConfig(generation.Request{Tools: []generation.Tool{"telepathy", generation.ToolMapsLookup}})
	if len(cfg.Tools) != 1 || cfg.Tools[0].GoogleMaps == nil {
		t.Errorf("expected only the maps tool, got %+v", cfg.Tools)
	}
}
