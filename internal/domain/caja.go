package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyAmount is a per-currency triple as declared at register open or
// close.
type CurrencyAmount struct {
	PYG decimal.Decimal
	USD decimal.Decimal
	BRL decimal.Decimal
}

// TotalLocal converts the triple to a single guaraní amount using the
// given rate.
func (a CurrencyAmount) TotalLocal(rate ExchangeRate) decimal.Decimal {
	return a.PYG.
		Add(rate.ToLocal(a.USD, CurrencyUSD)).
		Add(rate.ToLocal(a.BRL, CurrencyBRL))
}

// ServiceBalance is a named service paired with a guaraní amount, declared
// at register open or close.
type ServiceBalance struct {
	Service string
	Amount  decimal.Decimal
}

// BalanceFor returns the summed balance for one service kind. Balances
// whose names do not parse to the kind are skipped; an absent service
// yields zero.
func BalanceFor(kind ServiceKind, balances []ServiceBalance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		if ParseServiceKind(b.Service) == kind {
			total = total.Add(b.Amount)
		}
	}
	return total
}

// RegisterSession is one open-to-close working period of a cash register
// ("caja"). Sessions are immutable after close; the reconciliation engine
// only reads closed ones.
type RegisterSession struct {
	ID             string
	Number         int
	BranchID       string
	OpenedAt       time.Time
	ClosedAt       *time.Time
	OpeningBalance CurrencyAmount
	// Closing fields are nil while the session is open. The closing
	// snapshot endpoint is the preferred source; these are the fallback.
	ClosingBalance         *CurrencyAmount
	OpeningServiceBalances []ServiceBalance
	ClosingServiceBalances []ServiceBalance
}

// ClosingSnapshot is the closure declaration recorded when a cashier closes
// a register, fetched separately from the session detail.
type ClosingSnapshot struct {
	RegisterID      string
	DeclaredAt      time.Time
	Balance         CurrencyAmount
	ServiceBalances []ServiceBalance
}
