package leadscout

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/leadscout/internal/domain/usage"
)

// UsagePeriod is the aggregation granularity for usage reports.
type UsagePeriod string

// UsagePeriod constants.
const (
	PeriodDay   UsagePeriod = "day"
	PeriodMonth UsagePeriod = "month"
	PeriodTotal UsagePeriod = "total"
)

// UsageReport contains generation usage for a period.
// Counters cover this process only and start at zero unless a cache store restored them.
type UsageReport struct {
	Period      UsagePeriod
	Provider    string
	PeriodStart time.Time // zero for PeriodTotal
	PeriodEnd   time.Time
	Metrics     UsageMetrics
	Budget      BudgetStatus
}

// UsageMetrics tracks generation resource consumption.
type UsageMetrics struct {
	Requests int
	Tokens   int
}

// BudgetStatus tracks token quota state. TokensRemaining is -1 without a limit.
type BudgetStatus struct {
	TokensLimit     int
	TokensRemaining int
	IsExhausted     bool
	ResetsAt        time.Time
}

// Usage returns a usage report for the given period.
func (c *Client) Usage(ctx context.Context, period UsagePeriod) UsageReport {
	start := time.Now()
	defer func() { c.obs.observe("usage", start, nil) }()

	report := c.usageSvc.GetReport(ctx, domusage.ParsePeriod(string(period)))
	m := report.Metrics()
	b := report.Budget()

	out := UsageReport{
		Period:   UsagePeriod(report.Period()),
		Provider: report.Provider(),
		Metrics: UsageMetrics{
			Requests: m.Requests(),
			Tokens:   m.Tokens(),
		},
		Budget: BudgetStatus{
			TokensLimit:     b.TokensLimit(),
			TokensRemaining: b.TokensRemaining(),
			IsExhausted:     b.IsExhausted(),
		},
	}
	if report.PeriodStart() > 0 {
		out.PeriodStart = time.UnixMilli(report.PeriodStart()).UTC()
		out.PeriodEnd = time.UnixMilli(report.PeriodEnd()).UTC()
	}
	if b.ResetsAt() > 0 {
		out.Budget.ResetsAt = time.UnixMilli(b.ResetsAt()).UTC()
	}
	return out
}

// usageUseCase is the internal interface for usage reports.
type usageUseCase interface {
	GetReport(ctx context.Context, period domusage.Period) domusage.Report
}
