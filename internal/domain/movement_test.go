package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestMovementCounters_MovementFor_Wallets(t *testing.T) {
	counters := MovementCounters{
		Tigo: &OperatorCounters{
			TransfersSent: d(100_000),
			WalletTopUps:  d(50_000),
			Withdrawals:   d(30_000),
		},
		Personal: &OperatorCounters{
			TransfersSent: d(10_000),
			WalletTopUps:  d(5_000),
			Withdrawals:   d(20_000),
		},
	}

	if got := counters.MovementFor(ServiceTigoMoney); !got.Equal(d(120_000)) {
		t.Errorf("Tigo Money movement = %s, want 120000", got)
	}
	// Net movement may be negative when withdrawals dominate.
	if got := counters.MovementFor(ServiceBilleteraPersonal); !got.Equal(d(-5_000)) {
		t.Errorf("Billetera Personal movement = %s, want -5000", got)
	}
	// No Claro counter block recorded.
	if got := counters.MovementFor(ServiceBilleteraClaro); !got.IsZero() {
		t.Errorf("Billetera Claro movement = %s, want 0", got)
	}
}

func TestMovementCounters_MovementFor_TopUps(t *testing.T) {
	counters := MovementCounters{
		Tigo:     &OperatorCounters{TopUps: d(80_000)},
		Personal: &OperatorCounters{TopUps: d(70_000)},
		Claro:    &OperatorCounters{TopUps: d(60_000)},
	}

	tests := []struct {
		kind ServiceKind
		want decimal.Decimal
	}{
		{ServiceMinicarga, d(80_000)},
		{ServiceMaxicarga, d(70_000)},
		{ServiceRecargaClaro, d(60_000)},
	}

	for _, tt := range tests {
		if got := counters.MovementFor(tt.kind); !got.Equal(tt.want) {
			t.Errorf("%v movement = %s, want %s", tt.kind, got, tt.want)
		}
	}
}

func TestMovementCounters_MovementFor_Unknown(t *testing.T) {
	counters := MovementCounters{
		Tigo: &OperatorCounters{TopUps: d(80_000)},
	}

	if got := counters.MovementFor(ServiceUnknown); !got.IsZero() {
		t.Errorf("unknown service movement = %s, want 0", got)
	}
	if got := counters.MovementFor(ParseServiceKind("UnknownService")); !got.IsZero() {
		t.Errorf("unmapped service movement = %s, want 0", got)
	}
}

func TestMovementCounters_MovementFor_EmptyCounters(t *testing.T) {
	var counters MovementCounters

	for _, kind := range TrackedServices {
		if got := counters.MovementFor(kind); !got.IsZero() {
			t.Errorf("%v movement on empty counters = %s, want 0", kind, got)
		}
	}
}
