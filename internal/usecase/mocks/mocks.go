package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/domain"
)

// MockRegisterSource is a mock implementation of RegisterSource.
type MockRegisterSource struct {
	GetSessionFunc         func(ctx context.Context, registerID string) (*domain.RegisterSession, error)
	GetClosingSnapshotFunc func(ctx context.Context, registerID string) (*domain.ClosingSnapshot, error)
}

func (m *MockRegisterSource) GetSession(ctx context.Context, registerID string) (*domain.RegisterSession, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, registerID)
	}
	return nil, domain.ErrRegisterNotFound
}

func (m *MockRegisterSource) GetClosingSnapshot(ctx context.Context, registerID string) (*domain.ClosingSnapshot, error) {
	if m.GetClosingSnapshotFunc != nil {
		return m.GetClosingSnapshotFunc(ctx, registerID)
	}
	return nil, nil
}

// MockMovementSource is a mock implementation of MovementSource.
type MockMovementSource struct {
	GetMovementFunc func(ctx context.Context, registerID string) (*domain.MovementCounters, error)
}

func (m *MockMovementSource) GetMovement(ctx context.Context, registerID string) (*domain.MovementCounters, error) {
	if m.GetMovementFunc != nil {
		return m.GetMovementFunc(ctx, registerID)
	}
	return &domain.MovementCounters{}, nil
}

// MockPaymentSource is a mock implementation of PaymentSource.
type MockPaymentSource struct {
	GetHeadOfficePaymentsFunc func(ctx context.Context, registerID string) ([]domain.PaymentRecord, error)
	GetRegisterPaymentsFunc   func(ctx context.Context, registerID string) ([]domain.PaymentRecord, error)
}

func (m *MockPaymentSource) GetHeadOfficePayments(ctx context.Context, registerID string) ([]domain.PaymentRecord, error) {
	if m.GetHeadOfficePaymentsFunc != nil {
		return m.GetHeadOfficePaymentsFunc(ctx, registerID)
	}
	return nil, nil
}

func (m *MockPaymentSource) GetRegisterPayments(ctx context.Context, registerID string) ([]domain.PaymentRecord, error) {
	if m.GetRegisterPaymentsFunc != nil {
		return m.GetRegisterPaymentsFunc(ctx, registerID)
	}
	return nil, nil
}

// MockWithdrawalSource is a mock implementation of WithdrawalSource.
type MockWithdrawalSource struct {
	GetWithdrawalsFunc func(ctx context.Context, registerID string) ([]domain.WithdrawalRecord, error)
}

func (m *MockWithdrawalSource) GetWithdrawals(ctx context.Context, registerID string) ([]domain.WithdrawalRecord, error) {
	if m.GetWithdrawalsFunc != nil {
		return m.GetWithdrawalsFunc(ctx, registerID)
	}
	return nil, nil
}

// MockBankOperationSource is a mock implementation of BankOperationSource.
type MockBankOperationSource struct {
	GetBankOperationsFunc func(ctx context.Context, registerID string) ([]domain.BankOperationRecord, error)
}

func (m *MockBankOperationSource) GetBankOperations(ctx context.Context, registerID string) ([]domain.BankOperationRecord, error) {
	if m.GetBankOperationsFunc != nil {
		return m.GetBankOperationsFunc(ctx, registerID)
	}
	return nil, nil
}

// MockReportRepository is a mock implementation of ReportRepository backed
// by an in-memory map.
type MockReportRepository struct {
	mu   sync.RWMutex
	runs map[string]*domain.ReconciliationRun

	CreateRunFunc func(ctx context.Context, run *domain.ReconciliationRun) error
	GetRunFunc    func(ctx context.Context, id string) (*domain.ReconciliationRun, error)
	ListRunsFunc  func(ctx context.Context, limit int) ([]*domain.ReconciliationRun, error)
}

func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{runs: make(map[string]*domain.ReconciliationRun)}
}

func (m *MockReportRepository) CreateRun(ctx context.Context, run *domain.ReconciliationRun) error {
	if m.CreateRunFunc != nil {
		return m.CreateRunFunc(ctx, run)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = run
	return nil
}

func (m *MockReportRepository) GetRun(ctx context.Context, id string) (*domain.ReconciliationRun, error) {
	if m.GetRunFunc != nil {
		return m.GetRunFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if run, ok := m.runs[id]; ok {
		return run, nil
	}
	return nil, domain.ErrRunNotFound
}

func (m *MockReportRepository) ListRuns(ctx context.Context, limit int) ([]*domain.ReconciliationRun, error) {
	if m.ListRunsFunc != nil {
		return m.ListRunsFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	runs := make([]*domain.ReconciliationRun, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run)
	}
	return runs, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return "test-id"
}

// MockRateCache is an in-memory RateCache.
type MockRateCache struct {
	mu    sync.RWMutex
	rates map[string]domain.ExchangeRate

	GetFunc func(ctx context.Context, date time.Time) (*domain.ExchangeRate, error)
	SetFunc func(ctx context.Context, date time.Time, rate domain.ExchangeRate, ttl time.Duration) error
}

func NewMockRateCache() *MockRateCache {
	return &MockRateCache{rates: make(map[string]domain.ExchangeRate)}
}

func (m *MockRateCache) Get(ctx context.Context, date time.Time) (*domain.ExchangeRate, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, date)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if rate, ok := m.rates[date.Format("2006-01-02")]; ok {
		return &rate, nil
	}
	return nil, nil
}

func (m *MockRateCache) Set(ctx context.Context, date time.Time, rate domain.ExchangeRate, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, date, rate, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates[date.Format("2006-01-02")] = rate
	return nil
}
