package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/domain"
	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/infrastructure/metrics"
)

// ReconciliationUseCase computes the cash discrepancy for a closed register
// session. Each Calculate call is an independent single-shot computation
// over freshly fetched inputs; no state is shared between calls.
type ReconciliationUseCase struct {
	registers   RegisterSource
	movements   MovementSource
	payments    PaymentSource
	withdrawals WithdrawalSource
	bankOps     BankOperationSource
	rates       *RateResolver
	metrics     *metrics.Metrics // optional
	logger      zerolog.Logger
}

// NewReconciliationUseCase creates a new ReconciliationUseCase. m may be nil.
func NewReconciliationUseCase(
	registers RegisterSource,
	movements MovementSource,
	payments PaymentSource,
	withdrawals WithdrawalSource,
	bankOps BankOperationSource,
	rates *RateResolver,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		registers:   registers,
		movements:   movements,
		payments:    payments,
		withdrawals: withdrawals,
		bankOps:     bankOps,
		rates:       rates,
		metrics:     m,
		logger:      logger,
	}
}

// calculationInputs holds the snapshot the calculator works on.
type calculationInputs struct {
	session            *domain.RegisterSession
	snapshot           *domain.ClosingSnapshot
	counters           *domain.MovementCounters
	headOfficePayments []domain.PaymentRecord
	registerPayments   []domain.PaymentRecord
	withdrawals        []domain.WithdrawalRecord
	bankOps            []domain.BankOperationRecord
}

// Calculate computes the discrepancy for one closed register session.
// The seven data fetches run concurrently and any failure aborts the
// calculation (fail-fast). The rate fetch is independent and may degrade
// instead of failing.
func (uc *ReconciliationUseCase) Calculate(ctx context.Context, registerID string) (*domain.DiscrepancyResult, error) {
	start := time.Now()

	inputs, err := uc.fetchInputs(ctx, registerID)
	if err != nil {
		uc.countError(err)
		return nil, err
	}

	closingBalance, closingServices, err := resolveClosing(inputs.session, inputs.snapshot)
	if err != nil {
		uc.countError(err)
		return nil, err
	}

	rate, degraded, err := uc.rates.Resolve(ctx, inputs.session.OpenedAt)
	if err != nil {
		uc.countError(err)
		return nil, err
	}

	result := uc.compute(inputs, closingBalance, closingServices, rate)
	result.RateDegraded = degraded

	if uc.metrics != nil {
		uc.metrics.CalculationsTotal.Inc()
		uc.metrics.CalculationDuration.Observe(time.Since(start).Seconds())
		if degraded {
			uc.metrics.DegradedRateCalculations.Inc()
		}
	}

	uc.logger.Debug().
		Str("register_id", registerID).
		Str("total", result.TotalDiscrepancy.String()).
		Bool("rate_degraded", degraded).
		Msg("discrepancy calculated")

	return result, nil
}

// fetchInputs issues all input fetches in parallel and waits for the full
// set. There is no partial-result mode.
func (uc *ReconciliationUseCase) fetchInputs(ctx context.Context, registerID string) (*calculationInputs, error) {
	inputs := &calculationInputs{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		session, err := uc.registers.GetSession(ctx, registerID)
		if err != nil {
			return fmt.Errorf("session detail: %w", err)
		}
		inputs.session = session
		return nil
	})
	g.Go(func() error {
		snapshot, err := uc.registers.GetClosingSnapshot(ctx, registerID)
		if err != nil {
			return fmt.Errorf("closing snapshot: %w", err)
		}
		inputs.snapshot = snapshot
		return nil
	})
	g.Go(func() error {
		counters, err := uc.movements.GetMovement(ctx, registerID)
		if err != nil {
			return fmt.Errorf("movement counters: %w", err)
		}
		inputs.counters = counters
		return nil
	})
	g.Go(func() error {
		payments, err := uc.payments.GetHeadOfficePayments(ctx, registerID)
		if err != nil {
			return fmt.Errorf("head-office payments: %w", err)
		}
		inputs.headOfficePayments = payments
		return nil
	})
	g.Go(func() error {
		payments, err := uc.payments.GetRegisterPayments(ctx, registerID)
		if err != nil {
			return fmt.Errorf("register payments: %w", err)
		}
		inputs.registerPayments = payments
		return nil
	})
	g.Go(func() error {
		withdrawals, err := uc.withdrawals.GetWithdrawals(ctx, registerID)
		if err != nil {
			return fmt.Errorf("withdrawals: %w", err)
		}
		inputs.withdrawals = withdrawals
		return nil
	})
	g.Go(func() error {
		bankOps, err := uc.bankOps.GetBankOperations(ctx, registerID)
		if err != nil {
			return fmt.Errorf("bank operations: %w", err)
		}
		inputs.bankOps = bankOps
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return inputs, nil
}

// resolveClosing picks the closing balance and per-service balances,
// preferring the closing snapshot and falling back to the session detail.
// Missing data after both sources is the calculator's only fatal input
// precondition.
func resolveClosing(session *domain.RegisterSession, snapshot *domain.ClosingSnapshot) (domain.CurrencyAmount, []domain.ServiceBalance, error) {
	if snapshot != nil {
		return snapshot.Balance, snapshot.ServiceBalances, nil
	}
	if session.ClosingBalance != nil && session.ClosingServiceBalances != nil {
		return *session.ClosingBalance, session.ClosingServiceBalances, nil
	}
	return domain.CurrencyAmount{}, nil, fmt.Errorf("register %s: %w", session.ID, domain.ErrMissingClosingData)
}

// compute applies the discrepancy formulas over fully fetched inputs.
func (uc *ReconciliationUseCase) compute(
	inputs *calculationInputs,
	closingBalance domain.CurrencyAmount,
	closingServices []domain.ServiceBalance,
	rate domain.ExchangeRate,
) *domain.DiscrepancyResult {
	session := inputs.session
	counters := inputs.counters

	services := make([]domain.ServiceDiscrepancy, 0, len(domain.TrackedServices))
	movementSum := decimal.Zero

	for _, kind := range domain.TrackedServices {
		movement := counters.MovementFor(kind)
		movementSum = movementSum.Add(movement)

		match := domain.MatchPayments(kind, inputs.registerPayments, inputs.headOfficePayments)
		services = append(services, domain.ComputeServiceDiscrepancy(
			kind,
			domain.BalanceFor(kind, session.OpeningServiceBalances),
			movement,
			match.Commissioned,
			domain.BalanceFor(kind, closingServices),
		))
	}

	total := session.OpeningBalance.TotalLocal(rate).
		Add(movementSum).
		Add(operatorNet(counters.AquiPago, rate, domain.CurrencyPYG)).
		Add(operatorNet(counters.WepaGuaranies, rate, domain.CurrencyPYG)).
		Add(operatorNet(counters.WepaDolares, rate, domain.CurrencyUSD)).
		Add(pendingCashTotal(inputs.headOfficePayments, rate)).
		Sub(withdrawalsTotal(inputs.withdrawals, rate)).
		Sub(paymentsTotal(inputs.registerPayments, rate)).
		Sub(bankOperationsTotal(inputs.bankOps, rate)).
		Sub(closingBalance.TotalLocal(rate)).
		Neg()

	return &domain.DiscrepancyResult{
		RegisterID:       session.ID,
		RegisterNumber:   session.Number,
		TotalDiscrepancy: total,
		Services:         services,
		Rate:             rate,
		CalculatedAt:     time.Now().UTC(),
	}
}

// operatorNet is payments minus withdrawals for a collection operator,
// normalized to guaraníes.
func operatorNet(op *domain.OperatorCounters, rate domain.ExchangeRate, currency domain.Currency) decimal.Decimal {
	if op == nil {
		return decimal.Zero
	}
	return rate.ToLocal(op.Payments, currency).Sub(rate.ToLocal(op.Withdrawals, currency))
}

// pendingCashTotal sums head-office payments still pending, per currency,
// converted to guaraníes. Settled payments are already in the closing
// balance and must not be double counted.
func pendingCashTotal(payments []domain.PaymentRecord, rate domain.ExchangeRate) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.IsPending() {
			total = total.Add(rate.ToLocal(p.Amount, p.Currency))
		}
	}
	return total
}

func paymentsTotal(payments []domain.PaymentRecord, rate domain.ExchangeRate) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(rate.ToLocal(p.Amount, p.Currency))
	}
	return total
}

func withdrawalsTotal(withdrawals []domain.WithdrawalRecord, rate domain.ExchangeRate) decimal.Decimal {
	total := decimal.Zero
	for _, w := range withdrawals {
		total = total.Add(w.Amount.TotalLocal(rate))
	}
	return total
}

func bankOperationsTotal(ops []domain.BankOperationRecord, rate domain.ExchangeRate) decimal.Decimal {
	total := decimal.Zero
	for _, op := range ops {
		total = total.Add(rate.ToLocal(op.Amount, op.Currency))
	}
	return total
}

// countError records a failed calculation by error class.
func (uc *ReconciliationUseCase) countError(err error) {
	if uc.metrics != nil {
		uc.metrics.CalculationErrors.WithLabelValues(domain.ClassifyError(err)).Inc()
	}
}
