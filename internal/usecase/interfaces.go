package usecase

import (
	"context"
	"time"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/domain"
)

// RegisterSource provides register session data from the core system.
type RegisterSource interface {
	GetSession(ctx context.Context, registerID string) (*domain.RegisterSession, error)
	// GetClosingSnapshot returns (nil, nil) when no snapshot was recorded;
	// the caller falls back to the session detail's own closing fields.
	GetClosingSnapshot(ctx context.Context, registerID string) (*domain.ClosingSnapshot, error)
}

// MovementSource provides the per-operator movement counters for a session.
type MovementSource interface {
	GetMovement(ctx context.Context, registerID string) (*domain.MovementCounters, error)
}

// PaymentSource provides the two disjoint payment ledgers for a session.
type PaymentSource interface {
	GetHeadOfficePayments(ctx context.Context, registerID string) ([]domain.PaymentRecord, error)
	GetRegisterPayments(ctx context.Context, registerID string) ([]domain.PaymentRecord, error)
}

// WithdrawalSource provides the withdrawals logged for a session.
type WithdrawalSource interface {
	GetWithdrawals(ctx context.Context, registerID string) ([]domain.WithdrawalRecord, error)
}

// BankOperationSource provides the bank operations logged for a session.
type BankOperationSource interface {
	GetBankOperations(ctx context.Context, registerID string) ([]domain.BankOperationRecord, error)
}

// RateSource provides exchange rates from the core system.
type RateSource interface {
	// GetRateByDate returns (nil, nil) when no rate exists for the date.
	GetRateByDate(ctx context.Context, date time.Time) (*domain.ExchangeRate, error)
	ListRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// RateCache caches resolved rates outside the engine. Implementations must
// treat misses as (nil, nil), not errors.
type RateCache interface {
	Get(ctx context.Context, date time.Time) (*domain.ExchangeRate, error)
	Set(ctx context.Context, date time.Time, rate domain.ExchangeRate, ttl time.Duration) error
}

// ReportRepository persists batch reconciliation runs.
type ReportRepository interface {
	CreateRun(ctx context.Context, run *domain.ReconciliationRun) error
	GetRun(ctx context.Context, id string) (*domain.ReconciliationRun, error)
	ListRuns(ctx context.Context, limit int) ([]*domain.ReconciliationRun, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
