package domain

import "github.com/shopspring/decimal"

// OperatorCounters holds the raw movement totals recorded for one operator
// during a register session.
type OperatorCounters struct {
	// TransfersSent is the total of outgoing wallet transfers (giros).
	TransfersSent decimal.Decimal
	// Withdrawals is the total withdrawn from the operator's wallet.
	Withdrawals decimal.Decimal
	// WalletTopUps is the total loaded into customer wallets.
	WalletTopUps decimal.Decimal
	// TopUps is the total of direct airtime top-ups sold.
	TopUps decimal.Decimal
	// Payments is the total of generic payments collected (AquiPago, Wepa).
	Payments decimal.Decimal
}

// MovementCounters groups the per-operator counters for one session.
// A nil operator block means no movement was recorded for it.
type MovementCounters struct {
	Tigo          *OperatorCounters
	Personal      *OperatorCounters
	Claro         *OperatorCounters
	AquiPago      *OperatorCounters
	WepaGuaranies *OperatorCounters
	WepaDolares   *OperatorCounters
}

// MovementFor derives the net movement attributable to one service.
// Wallet services net transfers sent plus wallet top-ups minus withdrawals;
// direct top-up services read the operator's top-up counter. Unknown
// services yield zero — movement is an additive term and unexpected names
// must degrade gracefully, never fail.
func (c MovementCounters) MovementFor(kind ServiceKind) decimal.Decimal {
	switch kind {
	case ServiceMinicarga:
		return topUps(c.Tigo)
	case ServiceMaxicarga:
		return topUps(c.Personal)
	case ServiceRecargaClaro:
		return topUps(c.Claro)
	case ServiceTigoMoney:
		return walletMovement(c.Tigo)
	case ServiceBilleteraPersonal:
		return walletMovement(c.Personal)
	case ServiceBilleteraClaro:
		return walletMovement(c.Claro)
	default:
		return decimal.Zero
	}
}

func topUps(op *OperatorCounters) decimal.Decimal {
	if op == nil {
		return decimal.Zero
	}
	return op.TopUps
}

func walletMovement(op *OperatorCounters) decimal.Decimal {
	if op == nil {
		return decimal.Zero
	}
	return op.TransfersSent.Add(op.WalletTopUps).Sub(op.Withdrawals)
}
