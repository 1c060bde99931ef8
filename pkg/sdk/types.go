package leadscout

// SearchParams describes one search.
// City and State are used only together; RadiusKm applies when they are absent.
type SearchParams struct {
	Query       string
	Latitude    float64
	Longitude   float64
	TargetCount int     // 0 = 50
	City        string  // optional
	State       string  // optional, two-letter code
	RadiusKm    float64 // optional, 0 = unbounded
}

// Lead is a deduplicated business contact. Empty strings mean the channel was not found.
type Lead struct {
	Name      string
	Phone     string
	Email     string
	Instagram string
	Facebook  string
	LinkedIn  string
}

// Tool is a grounding capability a generator may use.
type Tool string

// Grounding tools requested by every batch.
const (
	ToolMapsLookup Tool = "maps_lookup"
	ToolWebSearch  Tool = "web_search"
)

// GeoPoint biases grounded results toward a coordinate.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// GenerateRequest is one prompt sent to a Generator.
type GenerateRequest struct {
	Model   string
	Prompt  string
	Tools   []Tool
	GeoBias *GeoPoint // nil when the prompt names a place instead
}

// GenerateResponse carries the generated text and token usage.
type GenerateResponse struct {
	Text         string
	PromptTokens int
	TotalTokens  int
}
