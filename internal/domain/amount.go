package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmountOrZero coerces a raw value into a decimal amount. Absent,
// non-numeric or malformed values yield zero and ok=false; it never fails.
// Callers log anomalous inputs at debug level — a single bad field must not
// abort a reconciliation.
func ParseAmountOrZero(raw any) (amount decimal.Decimal, ok bool) {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return v, true
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}
