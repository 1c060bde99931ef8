package leadscout

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/leadscout/internal/domain/lead"
	"github.com/kailas-cloud/leadscout/internal/domain/search/request"
)

// SearchOption configures a single Search call.
type SearchOption func(*searchOptions)

type searchOptions struct {
	onProgress func(completed, total int)
}

// WithProgress reports progress after every settled batch.
// completed is an estimate and may exceed total on the last batch.
// fn is called from the goroutine running Search, never concurrently.
func WithProgress(fn func(completed, total int)) SearchOption {
	return func(o *searchOptions) {
		o.onProgress = fn
	}
}

// Search fans the query out across concurrent prompts and returns deduplicated leads.
// Failed batches are dropped; if all fail the result is empty with a nil error.
// Only an invalid request yields an error (ErrInvalidRequest).
func (c *Client) Search(ctx context.Context, p SearchParams, opts ...SearchOption) (leads []Lead, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err, "query", p.Query, "leads", len(leads)) }()

	var o searchOptions
	for _, fn := range opts {
		fn(&o)
	}

	req, err := request.New(p.Query,
		request.Location{Latitude: p.Latitude, Longitude: p.Longitude},
		request.Filters{
			TargetCount: p.TargetCount,
			City:        p.City,
			State:       p.State,
			RadiusKm:    p.RadiusKm,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("leadscout: %w", err)
	}

	records, err := c.searchSvc.Search(ctx, &req, o.onProgress)
	if err != nil {
		return nil, fmt.Errorf("leadscout: search: %w", err)
	}

	leads = make([]Lead, len(records))
	for i, r := range records {
		leads[i] = leadFromRecord(r)
	}
	c.obs.observeLeads(len(leads))
	return leads, nil
}

func leadFromRecord(r lead.Record) Lead {
	return Lead{
		Name:      r.Name(),
		Phone:     r.Phone(),
		Email:     r.Email(),
		Instagram: r.Instagram(),
		Facebook:  r.Facebook(),
		LinkedIn:  r.LinkedIn(),
	}
}
