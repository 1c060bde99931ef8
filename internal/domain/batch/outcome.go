package batch

import "github.com/kailas-cloud/leadscout/internal/domain/lead"

// Status is the settlement state of a single batch.
type Status string

// Batch status values.
const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Outcome is the settled result of one concurrently dispatched batch.
// A failed outcome never carries records.
type Outcome struct {
	index    int
	strategy string
	status   Status
	records  []lead.Record
	err      error
}

// NewOK creates a successful outcome. An empty record list is still a success.
func NewOK(index int, strategy string, records []lead.Record) Outcome {
	return Outcome{index: index, strategy: strategy, status: StatusOK, records: records}
}

// NewFailed creates a failed outcome.
func NewFailed(index int, strategy string, err error) Outcome {
	return Outcome{index: index, strategy: strategy, status: StatusFailed, err: err}
}

// Index returns the submission index of the batch.
func (o Outcome) Index() int { return o.index }

// Strategy returns the ID of the strategy the batch ran with.
func (o Outcome) Strategy() string { return o.strategy }

// Status returns the settlement state.
func (o Outcome) Status() Status { return o.status }

// OK reports whether the batch succeeded.
func (o Outcome) OK() bool { return o.status == StatusOK }

// Records returns the parsed records (nil for failed outcomes).
func (o Outcome) Records() []lead.Record { return o.records }

// Err returns the failure cause, if any.
func (o Outcome) Err() error { return o.err }
