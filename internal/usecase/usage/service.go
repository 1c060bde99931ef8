package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/leadscout/internal/domain/usage"
	"github.com/kailas-cloud/leadscout/internal/domain/usage/budget"
	"github.com/kailas-cloud/leadscout/internal/domain/usage/metrics"
)

// Service handles usage reporting.
type Service struct {
	provider string
	br       BudgetReader
	now      func() time.Time
}

// New creates a Service. br can be nil (no budget configured).
func New(provider string, br BudgetReader) *Service {
	return &Service{provider: provider, br: br, now: time.Now}
}

// GetReport builds a usage report for the given period.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	now := s.now().UTC()
	var start, end int64
	var limit, used, requests int64
	remaining := int64(-1)

	switch period {
	case domusage.PeriodDay:
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		start = dayStart.UnixMilli()
		end = dayStart.Add(24 * time.Hour).UnixMilli()
		if s.br != nil {
			limit, used, requests = s.br.DailyLimit(), s.br.DailyUsed(), s.br.DailyRequests()
			remaining = s.br.RemainingDaily()
		}
	case domusage.PeriodMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = monthStart.UnixMilli()
		end = monthStart.AddDate(0, 1, 0).UnixMilli()
		if s.br != nil {
			limit, used, requests = s.br.MonthlyLimit(), s.br.MonthlyUsed(), s.br.MonthlyRequests()
			remaining = s.br.RemainingMonthly()
		}
	default:
		// total has no boundaries; the monthly counters are the widest window kept
		if s.br != nil {
			limit, used, requests = s.br.MonthlyLimit(), s.br.MonthlyUsed(), s.br.MonthlyRequests()
			remaining = s.br.RemainingMonthly()
		}
	}

	exhausted := limit > 0 && remaining <= 0

	b := budget.New(int(limit), int(remaining), exhausted, end)
	m := metrics.New(int(requests), int(used))

	return domusage.NewReport(period, start, end, s.provider, m, b)
}
