package domain

// KeyPrefix namespaces every key leadscout writes to the shared store.
const KeyPrefix = "leadscout:"

// SearchConfig holds the fan-out settings of the search orchestrator.
type SearchConfig struct {
	Model              string
	BatchSize          int
	MaxBatches         int
	DefaultProximityKm float64
}

// DefaultSearchConfig returns the settings tuned for gemini-2.5-flash with maps grounding.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Model:              "gemini-2.5-flash",
		BatchSize:          30,
		MaxBatches:         8,
		DefaultProximityKm: 10,
	}
}
