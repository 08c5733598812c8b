package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/domain"
	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/usecase/mocks"
)

func pyg(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// reconFixture bundles the source mocks behind a ReconciliationUseCase so
// each test only overrides the inputs it cares about.
type reconFixture struct {
	registers   *mocks.MockRegisterSource
	movements   *mocks.MockMovementSource
	payments    *mocks.MockPaymentSource
	withdrawals *mocks.MockWithdrawalSource
	bankOps     *mocks.MockBankOperationSource
	uc          *ReconciliationUseCase
}

func newReconFixture(t *testing.T, rateSource RateSource) *reconFixture {
	t.Helper()

	f := &reconFixture{
		registers:   &mocks.MockRegisterSource{},
		movements:   &mocks.MockMovementSource{},
		payments:    &mocks.MockPaymentSource{},
		withdrawals: &mocks.MockWithdrawalSource{},
		bankOps:     &mocks.MockBankOperationSource{},
	}
	resolver := NewRateResolver(rateSource, nil, false, zerolog.Nop())
	f.uc = NewReconciliationUseCase(
		f.registers, f.movements, f.payments, f.withdrawals, f.bankOps,
		resolver, nil, zerolog.Nop(),
	)
	return f
}

func fixedRateSource(t *testing.T) RateSource {
	t.Helper()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockRateSource(ctrl)
	rate := domain.ExchangeRate{
		Date: day(2024, 3, 1),
		USD:  pyg(7_300),
		BRL:  pyg(1_400),
	}
	source.EXPECT().GetRateByDate(gomock.Any(), gomock.Any()).Return(&rate, nil).AnyTimes()
	return source
}

func closedSession(opening, closing int64) *domain.RegisterSession {
	closedAt := day(2024, 3, 1).Add(20 * time.Hour)
	closingBalance := domain.CurrencyAmount{PYG: pyg(closing)}
	return &domain.RegisterSession{
		ID:                     "caja-1",
		Number:                 3,
		BranchID:               "sucursal-1",
		OpenedAt:               day(2024, 3, 1).Add(8 * time.Hour),
		ClosedAt:               &closedAt,
		OpeningBalance:         domain.CurrencyAmount{PYG: pyg(opening)},
		ClosingBalance:         &closingBalance,
		OpeningServiceBalances: []domain.ServiceBalance{},
		ClosingServiceBalances: []domain.ServiceBalance{},
	}
}

func TestCalculate_TopUpSessionWithRegisterPayment(t *testing.T) {
	// Opening 500,000 Gs, closing 450,000 Gs, 80,000 Gs of Minicarga top-ups
	// sold and a 100,000 Gs register payment to the Minicarga provider.
	f := newReconFixture(t, fixedRateSource(t))

	f.registers.GetSessionFunc = func(ctx context.Context, id string) (*domain.RegisterSession, error) {
		return closedSession(500_000, 450_000), nil
	}
	f.movements.GetMovementFunc = func(ctx context.Context, id string) (*domain.MovementCounters, error) {
		return &domain.MovementCounters{
			Tigo: &domain.OperatorCounters{TopUps: pyg(80_000)},
		}, nil
	}
	f.payments.GetRegisterPaymentsFunc = func(ctx context.Context, id string) ([]domain.PaymentRecord, error) {
		return []domain.PaymentRecord{
			{Service: "Minicarga", Amount: pyg(100_000), Currency: domain.CurrencyPYG},
		}, nil
	}

	result, err := f.uc.Calculate(context.Background(), "caja-1")
	require.NoError(t, err)

	// Per service: -(0 - 80,000 + 100,000*1.05 - 0) = -25,000.
	minicarga := serviceRow(t, result, domain.ServiceMinicarga)
	assert.True(t, minicarga.Discrepancy.Equal(pyg(-25_000)),
		"Minicarga discrepancy = %s, want -25000", minicarga.Discrepancy)

	// Total: -(500,000 + 80,000 - 100,000 - 450,000) = -30,000. The payment
	// commission affects the service row only, never the cash total.
	assert.True(t, result.TotalDiscrepancy.Equal(pyg(-30_000)),
		"total = %s, want -30000", result.TotalDiscrepancy)
	assert.False(t, result.RateDegraded)
	assert.Equal(t, "caja-1", result.RegisterID)
	assert.Equal(t, 3, result.RegisterNumber)
	assert.Len(t, result.Services, len(domain.TrackedServices))
}

func TestCalculate_ZeroActivitySession(t *testing.T) {
	// With no movements or payments the total collapses to closing minus
	// opening.
	f := newReconFixture(t, fixedRateSource(t))

	f.registers.GetSessionFunc = func(ctx context.Context, id string) (*domain.RegisterSession, error) {
		return closedSession(500_000, 480_000), nil
	}

	result, err := f.uc.Calculate(context.Background(), "caja-1")
	require.NoError(t, err)

	assert.True(t, result.TotalDiscrepancy.Equal(pyg(-20_000)),
		"total = %s, want -20000", result.TotalDiscrepancy)
	for _, svc := range result.Services {
		assert.True(t, svc.Discrepancy.IsZero(),
			"%v discrepancy = %s, want 0", svc.Service, svc.Discrepancy)
	}
}

func TestCalculate_ForeignCurrencyNormalization(t *testing.T) {
	// Opening holds 100 USD and 50 BRL alongside guaraníes; the total is
	// computed entirely in guaraníes at USD=7300, BRL=1400.
	f := newReconFixture(t, fixedRateSource(t))

	f.registers.GetSessionFunc = func(ctx context.Context, id string) (*domain.RegisterSession, error) {
		session := closedSession(1_000_000, 1_000_000)
		session.OpeningBalance.USD = pyg(100)
		session.OpeningBalance.BRL = pyg(50)
		return session, nil
	}

	result, err := f.uc.Calculate(context.Background(), "caja-1")
	require.NoError(t, err)

	// -(1,000,000 + 730,000 + 70,000 - 1,000,000) = -800,000
	assert.True(t, result.TotalDiscrepancy.Equal(pyg(-800_000)),
		"total = %s, want -800000", result.TotalDiscrepancy)
}

func TestCalculate_PrefersClosingSnapshot(t *testing.T) {
	f := newReconFixture(t, fixedRateSource(t))

	f.registers.GetSessionFunc = func(ctx context.Context, id string) (*domain.RegisterSession, error) {
		// Stale closing data on the session detail.
		return closedSession(500_000, 999_999), nil
	}
	f.registers.GetClosingSnapshotFunc = func(ctx context.Context, id string) (*domain.ClosingSnapshot, error) {
		return &domain.ClosingSnapshot{
			RegisterID: id,
			DeclaredAt: day(2024, 3, 2),
			Balance:    domain.CurrencyAmount{PYG: pyg(450_000)},
		}, nil
	}

	result, err := f.uc.Calculate(context.Background(), "caja-1")
	require.NoError(t, err)

	// -(500,000 - 450,000) = -50,000 against the snapshot balance.
	assert.True(t, result.TotalDiscrepancy.Equal(pyg(-50_000)),
		"total = %s, want -50000", result.TotalDiscrepancy)
}

func TestCalculate_MissingClosingData(t *testing.T) {
	f := newReconFixture(t, fixedRateSource(t))

	f.registers.GetSessionFunc = func(ctx context.Context, id string) (*domain.RegisterSession, error) {
		session := closedSession(500_000, 0)
		session.ClosingBalance = nil
		session.ClosingServiceBalances = nil
		return session, nil
	}

	_, err := f.uc.Calculate(context.Background(), "caja-1")
	require.ErrorIs(t, err, domain.ErrMissingClosingData)
}

func TestCalculate_TransportFailureIsFailFast(t *testing.T) {
	f := newReconFixture(t, fixedRateSource(t))

	f.registers.GetSessionFunc = func(ctx context.Context, id string) (*domain.RegisterSession, error) {
		return closedSession(500_000, 450_000), nil
	}
	f.withdrawals.GetWithdrawalsFunc = func(ctx context.Context, id string) ([]domain.WithdrawalRecord, error) {
		return nil, fmt.Errorf("GET /api/retiros: %w", domain.ErrTransportFailure)
	}

	_, err := f.uc.Calculate(context.Background(), "caja-1")
	require.ErrorIs(t, err, domain.ErrTransportFailure)
}

func TestCalculate_DegradedRateDropsForeignTerms(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockRateSource(ctrl)
	source.EXPECT().GetRateByDate(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("dial tcp: connection refused")).AnyTimes()

	f := newReconFixture(t, source)

	f.registers.GetSessionFunc = func(ctx context.Context, id string) (*domain.RegisterSession, error) {
		session := closedSession(500_000, 450_000)
		session.OpeningBalance.USD = pyg(100)
		return session, nil
	}

	result, err := f.uc.Calculate(context.Background(), "caja-1")
	require.NoError(t, err)

	assert.True(t, result.RateDegraded)
	// The 100 USD contributes nothing under the zero fallback rate.
	assert.True(t, result.TotalDiscrepancy.Equal(pyg(-50_000)),
		"total = %s, want -50000", result.TotalDiscrepancy)
}

func TestCalculate_PendingHeadOfficePayments(t *testing.T) {
	f := newReconFixture(t, fixedRateSource(t))

	f.registers.GetSessionFunc = func(ctx context.Context, id string) (*domain.RegisterSession, error) {
		return closedSession(500_000, 500_000), nil
	}
	f.payments.GetHeadOfficePaymentsFunc = func(ctx context.Context, id string) ([]domain.PaymentRecord, error) {
		return []domain.PaymentRecord{
			{Service: "AquiPago", Amount: pyg(60_000), Currency: domain.CurrencyPYG, Status: "PENDIENTE"},
			{Service: "Wepa", Amount: pyg(40_000), Currency: domain.CurrencyPYG, Status: "CONFIRMADO"},
		}, nil
	}

	result, err := f.uc.Calculate(context.Background(), "caja-1")
	require.NoError(t, err)

	// Only the pending 60,000 counts as cash still in the drawer.
	assert.True(t, result.TotalDiscrepancy.Equal(pyg(-60_000)),
		"total = %s, want -60000", result.TotalDiscrepancy)
}

func serviceRow(t *testing.T, result *domain.DiscrepancyResult, kind domain.ServiceKind) domain.ServiceDiscrepancy {
	t.Helper()
	for _, svc := range result.Services {
		if svc.Service == kind {
			return svc
		}
	}
	t.Fatalf("result has no row for %v", kind)
	return domain.ServiceDiscrepancy{}
}
