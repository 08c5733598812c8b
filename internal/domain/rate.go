package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency identifies one of the three currencies handled at the registers.
type Currency string

const (
	CurrencyPYG Currency = "PYG"
	CurrencyUSD Currency = "USD"
	CurrencyBRL Currency = "BRL"
)

// ExchangeRate is a date-stamped pair of conversion rates, each expressed
// as units of guaraníes per one foreign unit. A zero rate means the rate
// was unavailable; conversions with it contribute zero.
type ExchangeRate struct {
	Date time.Time
	USD  decimal.Decimal
	BRL  decimal.Decimal
}

// IsZero reports whether both rates are unset.
func (r ExchangeRate) IsZero() bool {
	return r.USD.IsZero() && r.BRL.IsZero()
}

// ToLocal converts an amount in the given currency to guaraníes.
// PYG amounts pass through unchanged. No rounding is applied; rounding
// is deferred to presentation.
func (r ExchangeRate) ToLocal(amount decimal.Decimal, currency Currency) decimal.Decimal {
	switch currency {
	case CurrencyUSD:
		return amount.Mul(r.USD)
	case CurrencyBRL:
		return amount.Mul(r.BRL)
	default:
		return amount
	}
}
