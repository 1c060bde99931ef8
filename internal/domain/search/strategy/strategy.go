// Package strategy splits one logical search into diversified batches.
package strategy

// DefaultBatchSize is the number of records each batch asks the provider for.
const DefaultBatchSize = 30

// Strategy biases a batch toward a distinct slice of the result space.
type Strategy struct {
	ID   string
	Hint string
}

// Batch is one planned sub-query.
type Batch struct {
	Index    int
	Strategy Strategy
	Size     int
}

// DefaultCatalog returns the rotating strategy list. Alphabetical slices force the
// maps tool to surface different places per request; the last two reach past the
// usual top results.
func DefaultCatalog() []Strategy {
	return []Strategy{
		{ID: "names-a-d", Hint: "whose names start with the letters A, B, C or D"},
		{ID: "names-e-h", Hint: "whose names start with the letters E, F, G or H"},
		{ID: "names-i-l", Hint: "whose names start with the letters I, J, K or L"},
		{ID: "names-m-q", Hint: "whose names start with the letters M, N, O, P or Q"},
		{ID: "names-r-v", Hint: "whose names start with the letters R, S, T, U or V"},
		{ID: "names-w-z", Hint: "whose names start with the letters W, X, Y, Z or a digit"},
		{ID: "hidden-gems", Hint: "that are new or have few reviews"},
		{ID: "periphery", Hint: "that are located in peripheral neighbourhoods"},
	}
}

// BatchCount returns ceil(targetCount/batchSize) clamped to [1, maxBatches].
// A non-positive targetCount yields a single batch.
func BatchCount(targetCount, batchSize, maxBatches int) int {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if maxBatches <= 0 {
		maxBatches = 1
	}
	if targetCount <= 0 {
		return 1
	}

	// (t-1)/b+1 is ceil(t/b) without the overflow of t+b-1.
	n := (targetCount-1)/batchSize + 1
	if n > maxBatches {
		n = maxBatches
	}
	return n
}

// Plan assigns a strategy to every batch. maxBatches defaults to (and never exceeds)
// the catalog length, which bounds the external fan-out regardless of targetCount.
func Plan(targetCount, batchSize, maxBatches int, catalog []Strategy) []Batch {
	if len(catalog) == 0 {
		catalog = DefaultCatalog()
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if maxBatches <= 0 || maxBatches > len(catalog) {
		maxBatches = len(catalog)
	}

	n := BatchCount(targetCount, batchSize, maxBatches)
	batches := make([]Batch, n)
	for i := range batches {
		batches[i] = Batch{
			Index:    i,
			Strategy: catalog[i%len(catalog)],
			Size:     batchSize,
		}
	}
	return batches
}
