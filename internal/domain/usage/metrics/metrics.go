package metrics

// Metrics holds generation usage for a time period.
type Metrics struct {
	requests int
	tokens   int
}

// New creates a Metrics snapshot.
func New(requests, tokens int) Metrics {
	return Metrics{requests: requests, tokens: tokens}
}

// Requests returns the number of charged generation calls.
func (m Metrics) Requests() int { return m.requests }

// Tokens returns the total tokens consumed.
func (m Metrics) Tokens() int { return m.tokens }
