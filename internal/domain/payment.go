package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StatusPending marks a head-office payment still awaiting confirmation.
// Settled payments are presumed already reflected in the closing balance
// and are excluded from reconciliation.
const StatusPending = "PENDIENTE"

// PaymentRecord is a logged service payment. Register-scoped payments carry
// no status and always count; head-office payments carry a status and count
// only while pending.
type PaymentRecord struct {
	ID         string
	RegisterID string
	Operator   string
	Service    string
	Amount     decimal.Decimal
	Currency   Currency
	Status     string
	CreatedAt  time.Time
}

// IsPending reports whether a head-office payment still awaits confirmation.
func (p PaymentRecord) IsPending() bool {
	return strings.EqualFold(strings.TrimSpace(p.Status), StatusPending)
}

// WithdrawalRecord is an amount physically removed from the register during
// the session, split per currency.
type WithdrawalRecord struct {
	ID         string
	RegisterID string
	Amount     CurrencyAmount
	CreatedAt  time.Time
}

// BankOperationRecord is an amount moved to or from a bank account during
// the session.
type BankOperationRecord struct {
	ID         string
	RegisterID string
	Type       string
	Amount     decimal.Decimal
	Currency   Currency
	CreatedAt  time.Time
}

// PaymentMatch is the per-service sum of matched payments.
type PaymentMatch struct {
	// Total is the raw matched sum.
	Total decimal.Decimal
	// Commissioned is the amount entering the discrepancy formula: the raw
	// sum times the service's commission factor.
	Commissioned decimal.Decimal
}

// MatchPayments classifies and sums the payments attributable to one
// service. Register payments count unconditionally; head-office payments
// count only while pending. The commission factor for direct top-up
// services is applied to the matched sum. Pure function: identical input
// yields identical output.
func MatchPayments(kind ServiceKind, registerPayments, headOfficePayments []PaymentRecord) PaymentMatch {
	total := decimal.Zero
	for _, p := range registerPayments {
		if kind.MatchesPayment(p.Service) {
			total = total.Add(p.Amount)
		}
	}
	for _, p := range headOfficePayments {
		if p.IsPending() && kind.MatchesPayment(p.Service) {
			total = total.Add(p.Amount)
		}
	}
	return PaymentMatch{
		Total:        total,
		Commissioned: total.Mul(kind.CommissionFactor()),
	}
}
