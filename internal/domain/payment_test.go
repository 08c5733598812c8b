package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMatchPayments_RegisterAndPending(t *testing.T) {
	register := []PaymentRecord{
		{Service: "Minicarga", Amount: d(100_000), Currency: CurrencyPYG},
		{Service: "Maxicarga", Amount: d(40_000), Currency: CurrencyPYG},
	}
	headOffice := []PaymentRecord{
		{Service: "Mini Carga", Amount: d(50_000), Currency: CurrencyPYG, Status: "PENDIENTE"},
		{Service: "Minicarga", Amount: d(30_000), Currency: CurrencyPYG, Status: "CONFIRMADO"},
		{Service: "minicarga", Amount: d(20_000), Currency: CurrencyPYG, Status: "pendiente"},
	}

	match := MatchPayments(ServiceMinicarga, register, headOffice)

	// Register payment counts unconditionally; head-office only while
	// pending (case-insensitive).
	want := d(170_000)
	if !match.Total.Equal(want) {
		t.Errorf("Total = %s, want %s", match.Total, want)
	}

	wantCommissioned := want.Mul(decimal.NewFromFloat(1.05))
	if !match.Commissioned.Equal(wantCommissioned) {
		t.Errorf("Commissioned = %s, want %s", match.Commissioned, wantCommissioned)
	}
}

func TestMatchPayments_WalletNoCommission(t *testing.T) {
	register := []PaymentRecord{
		{Service: "Billetera Tigo", Amount: d(200_000), Currency: CurrencyPYG},
		{Service: "Tigo Money", Amount: d(100_000), Currency: CurrencyPYG},
	}

	match := MatchPayments(ServiceTigoMoney, register, nil)

	if !match.Total.Equal(d(300_000)) {
		t.Errorf("Total = %s, want 300000", match.Total)
	}
	if !match.Commissioned.Equal(match.Total) {
		t.Errorf("wallet payments must carry no commission: Commissioned = %s, Total = %s",
			match.Commissioned, match.Total)
	}
}

func TestMatchPayments_Idempotent(t *testing.T) {
	register := []PaymentRecord{
		{Service: "Recarga Claro", Amount: d(10_000), Currency: CurrencyPYG},
	}
	headOffice := []PaymentRecord{
		{Service: "recarga claro", Amount: d(5_000), Currency: CurrencyPYG, Status: "PENDIENTE"},
	}

	first := MatchPayments(ServiceRecargaClaro, register, headOffice)
	second := MatchPayments(ServiceRecargaClaro, register, headOffice)

	if !first.Total.Equal(second.Total) || !first.Commissioned.Equal(second.Commissioned) {
		t.Errorf("MatchPayments is not idempotent: first %+v, second %+v", first, second)
	}
}

func TestMatchPayments_NoMatches(t *testing.T) {
	register := []PaymentRecord{
		{Service: "AquiPago", Amount: d(99_000), Currency: CurrencyPYG},
	}

	match := MatchPayments(ServiceBilleteraClaro, register, nil)

	if !match.Total.IsZero() || !match.Commissioned.IsZero() {
		t.Errorf("expected zero match, got %+v", match)
	}
}

func TestPaymentRecord_IsPending(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"PENDIENTE", true},
		{"pendiente", true},
		{" Pendiente ", true},
		{"CONFIRMADO", false},
		{"", false},
	}

	for _, tt := range tests {
		p := PaymentRecord{Status: tt.status}
		if got := p.IsPending(); got != tt.want {
			t.Errorf("IsPending(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
