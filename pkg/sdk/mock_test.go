package leadscout

import (
	"context"
	"sync"

	"github.com/kailas-cloud/leadscout/internal/domain/lead"
	"github.com/kailas-cloud/leadscout/internal/domain/search/request"
	domusage "github.com/kailas-cloud/leadscout/internal/domain/usage"
	healthuc "github.com/kailas-cloud/leadscout/internal/usecase/health"
	searchuc "github.com/kailas-cloud/leadscout/internal/usecase/search"
)

// --- Generator mock ---

type mockGenerator struct {
	mu    sync.Mutex
	calls []GenerateRequest
	fn    func(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
}

func (m *mockGenerator) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()
	return m.fn(ctx, req)
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	fn func(ctx context.Context, req *request.Request, onProgress searchuc.ProgressFunc) ([]lead.Record, error)
}

func (m *mockSearchUC) Search(
	ctx context.Context, req *request.Request, onProgress searchuc.ProgressFunc,
) ([]lead.Record, error) {
	return m.fn(ctx, req, onProgress)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}

// --- usageUseCase mock ---

type mockUsageUC struct {
	fn func(ctx context.Context, period domusage.Period) domusage.Report
}

func (m *mockUsageUC) GetReport(ctx context.Context, period domusage.Period) domusage.Report {
	return m.fn(ctx, period)
}
