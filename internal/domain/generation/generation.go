package generation

import "context"

// Tool is a grounding capability the provider may use while answering.
type Tool string

// Supported grounding tools.
const (
	ToolMapsLookup Tool = "maps_lookup"
	ToolWebSearch  Tool = "web_search"
)

// DefaultTools returns the tool set every search batch requests.
func DefaultTools() []Tool {
	return []Tool{ToolMapsLookup, ToolWebSearch}
}

// GeoPoint biases grounded results toward a coordinate.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Request is a single text-generation call.
type Request struct {
	Model   string    `json:"model"`
	Prompt  string    `json:"prompt"`
	Tools   []Tool    `json:"tools,omitempty"`
	GeoBias *GeoPoint `json:"geo_bias,omitempty"`
}

// HasTool reports whether the request asks for the given tool.
func (r Request) HasTool(t Tool) bool {
	for _, rt := range r.Tools {
		if rt == t {
			return true
		}
	}
	return false
}

// Response carries the free-form text and token usage through the decorator chain.
type Response struct {
	Text         string `json:"text"`
	PromptTokens int    `json:"prompt_tokens"`
	TotalTokens  int    `json:"total_tokens"`
	Cached       bool   `json:"-"`
}

// Generator is the external text-generation capability.
type Generator interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// HealthChecker verifies generation provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req Request) (Response, error)

// Generate calls f(ctx, req).
func (f GeneratorFunc) Generate(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}
