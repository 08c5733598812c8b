package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmountOrZero(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		want   decimal.Decimal
		wantOK bool
	}{
		{"float", 1234.5, decimal.NewFromFloat(1234.5), true},
		{"int", 100, d(100), true},
		{"int64", int64(200), d(200), true},
		{"decimal", d(300), d(300), true},
		{"numeric string", "450000", d(450_000), true},
		{"padded string", "  12.5 ", decimal.NewFromFloat(12.5), true},
		{"empty string", "", decimal.Zero, false},
		{"garbage string", "no-es-numero", decimal.Zero, false},
		{"nil", nil, decimal.Zero, false},
		{"bool", true, decimal.Zero, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmountOrZero(tt.raw)
			if !got.Equal(tt.want) {
				t.Errorf("ParseAmountOrZero(%v) = %s, want %s", tt.raw, got, tt.want)
			}
			if ok != tt.wantOK {
				t.Errorf("ParseAmountOrZero(%v) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
		})
	}
}

func TestComputeServiceDiscrepancy_SignConvention(t *testing.T) {
	// initial=100, movement=20, payments=30, final=90
	// discrepancy = -(100 - 20 + 30 - 90) = -20
	disc := ComputeServiceDiscrepancy(ServiceMinicarga, d(100), d(20), d(30), d(90))

	if !disc.Discrepancy.Equal(d(-20)) {
		t.Errorf("discrepancy = %s, want -20", disc.Discrepancy)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrMissingClosingData, ErrorClassMissingClosing},
		{ErrRatesUnavailable, ErrorClassRates},
		{ErrTransportFailure, ErrorClassTransport},
		{ErrRegisterNotFound, ErrorClassInternal},
	}

	for _, tt := range tests {
		if got := ClassifyError(tt.err); got != tt.want {
			t.Errorf("ClassifyError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
