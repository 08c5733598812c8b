package gateway

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		want        decimal.Decimal
		wantCoerced bool
	}{
		{"number", `123.45`, decimal.NewFromFloat(123.45), false},
		{"integer", `500000`, decimal.NewFromInt(500_000), false},
		{"numeric string", `"450000"`, decimal.NewFromInt(450_000), false},
		{"padded numeric string", `"  7300 "`, decimal.NewFromInt(7_300), false},
		{"null", `null`, decimal.Zero, true},
		{"empty string", `""`, decimal.Zero, true},
		{"garbage string", `"N/A"`, decimal.Zero, true},
		{"boolean", `true`, decimal.Zero, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexAmount
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			assert.True(t, f.Decimal().Equal(tt.want),
				"Decimal() = %s, want %s", f.Decimal(), tt.want)
			assert.Equal(t, tt.wantCoerced, f.Coerced())
		})
	}
}

func TestFlexAmount_AbsentFieldIsZero(t *testing.T) {
	var payload struct {
		Monto FlexAmount `json:"monto"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))
	assert.True(t, payload.Monto.Decimal().IsZero())
	assert.False(t, payload.Monto.Coerced(), "an absent field is zero, not an anomaly")
}

func TestFlexAmount_MarshalJSON(t *testing.T) {
	var f FlexAmount
	require.NoError(t, json.Unmarshal([]byte(`"12.5"`), &f))

	out, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, `"12.5"`, string(out))
}
