package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceDiscrepancy is the breakdown row for one tracked service.
// A positive discrepancy means the register closed with more recorded value
// than its ledger implies (an overage).
type ServiceDiscrepancy struct {
	Service         ServiceKind
	InitialBalance  decimal.Decimal
	Movement        decimal.Decimal
	MatchedPayments decimal.Decimal
	FinalBalance    decimal.Decimal
	Discrepancy     decimal.Decimal
}

// ComputeServiceDiscrepancy applies the per-service formula:
//
//	discrepancy = -(initial - movement + payments - final)
//
// The negation keeps the sign convention consistent with the total: positive
// means overage.
func ComputeServiceDiscrepancy(kind ServiceKind, initial, movement, payments, final decimal.Decimal) ServiceDiscrepancy {
	return ServiceDiscrepancy{
		Service:         kind,
		InitialBalance:  initial,
		Movement:        movement,
		MatchedPayments: payments,
		FinalBalance:    final,
		Discrepancy:     initial.Sub(movement).Add(payments).Sub(final).Neg(),
	}
}

// DiscrepancyResult is the calculator's output for one closed session:
// the normalized total in guaraníes, the fixed-order breakdown, and the
// rate actually used.
type DiscrepancyResult struct {
	RegisterID       string
	RegisterNumber   int
	TotalDiscrepancy decimal.Decimal
	Services         []ServiceDiscrepancy
	Rate             ExchangeRate
	// RateDegraded marks results computed with a zero fallback rate after a
	// rate-source failure: foreign-currency terms contributed nothing.
	RateDegraded bool
	CalculatedAt time.Time
}

// Outcome status values for batch runs.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Error classes recorded for failed sessions in a batch run.
const (
	ErrorClassMissingClosing = "missing_closing_data"
	ErrorClassRates          = "rates_unavailable"
	ErrorClassTransport      = "transport_failure"
	ErrorClassInternal       = "internal"
)

// SessionOutcome records one session's result inside a batch run. Failures
// are isolated per session; a failed session never aborts the run.
type SessionOutcome struct {
	RegisterID       string
	Status           string
	ErrorClass       string
	ErrorMessage     string
	TotalDiscrepancy decimal.Decimal
	RateDegraded     bool
	FinishedAt       time.Time
}

// ReconciliationRun is a persisted batch execution.
type ReconciliationRun struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int
	Succeeded  int
	Failed     int
	Outcomes   []SessionOutcome
}
