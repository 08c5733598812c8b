package gateway

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/domain"
)

// FlexAmount decodes a numeric field that upstream sometimes serves as a
// number, sometimes as a string, and occasionally as garbage. Malformed or
// absent values coerce to zero instead of failing the whole response; the
// client logs each coercion at debug level.
type FlexAmount struct {
	value   decimal.Decimal
	coerced bool
}

// Decimal returns the decoded amount.
func (f FlexAmount) Decimal() decimal.Decimal {
	return f.value
}

// Coerced reports whether the raw value was malformed and replaced by zero.
func (f FlexAmount) Coerced() bool {
	return f.coerced
}

// UnmarshalJSON never returns an error: any undecodable value becomes zero.
func (f *FlexAmount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = FlexAmount{value: decimal.Zero, coerced: true}
		return nil
	}

	if s[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			*f = FlexAmount{value: decimal.Zero, coerced: true}
			return nil
		}
		s = inner
	}

	d, ok := domain.ParseAmountOrZero(s)
	*f = FlexAmount{value: d, coerced: !ok}
	return nil
}

// MarshalJSON round-trips the decoded value.
func (f FlexAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.value)
}
