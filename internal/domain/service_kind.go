package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ServiceKind identifies one of the services tracked in the per-service
// discrepancy breakdown. Display names in upstream data vary in casing and
// spacing; ParseServiceKind normalizes once at the boundary so internal
// logic never re-parses strings.
type ServiceKind int

const (
	ServiceUnknown ServiceKind = iota
	ServiceMinicarga
	ServiceTigoMoney
	ServiceMaxicarga
	ServiceBilleteraPersonal
	ServiceRecargaClaro
	ServiceBilleteraClaro
)

// TrackedServices is the fixed set of services appearing in the breakdown,
// in display order. Services outside this set contribute nothing.
var TrackedServices = []ServiceKind{
	ServiceMinicarga,
	ServiceTigoMoney,
	ServiceMaxicarga,
	ServiceBilleteraPersonal,
	ServiceRecargaClaro,
	ServiceBilleteraClaro,
}

// topUpCommission is the 5% cash-handling commission applied to matched
// payments of the direct top-up services. Wallet transfers are internal and
// carry no commission.
var topUpCommission = decimal.NewFromFloat(1.05)

func (k ServiceKind) String() string {
	switch k {
	case ServiceMinicarga:
		return "Minicarga"
	case ServiceTigoMoney:
		return "Tigo Money"
	case ServiceMaxicarga:
		return "Maxicarga"
	case ServiceBilleteraPersonal:
		return "Billetera Personal"
	case ServiceRecargaClaro:
		return "Recarga Claro"
	case ServiceBilleteraClaro:
		return "Billetera Claro"
	default:
		return "Desconocido"
	}
}

// IsTopUp reports whether the service is a direct top-up sale
// (commissioned pass-through) rather than a wallet transfer.
func (k ServiceKind) IsTopUp() bool {
	switch k {
	case ServiceMinicarga, ServiceMaxicarga, ServiceRecargaClaro:
		return true
	default:
		return false
	}
}

// CommissionFactor returns the multiplier applied to matched payments.
func (k ServiceKind) CommissionFactor() decimal.Decimal {
	if k.IsTopUp() {
		return topUpCommission
	}
	return decimal.NewFromInt(1)
}

// ParseServiceKind maps a display name to its ServiceKind. Matching is
// case-insensitive and tolerates spacing variants ("Mini Carga",
// "MINICARGA"). Names outside the tracked set map to ServiceUnknown.
func ParseServiceKind(name string) ServiceKind {
	n := normalizeName(name)
	switch {
	case strings.Contains(n, "minicarga"):
		return ServiceMinicarga
	case strings.Contains(n, "maxicarga"):
		return ServiceMaxicarga
	case strings.Contains(n, "tigomoney"):
		return ServiceTigoMoney
	case strings.Contains(n, "billetera") && strings.Contains(n, "personal"):
		return ServiceBilleteraPersonal
	case strings.Contains(n, "billetera") && strings.Contains(n, "claro"):
		return ServiceBilleteraClaro
	case strings.Contains(n, "recarga") && strings.Contains(n, "claro"):
		return ServiceRecargaClaro
	default:
		return ServiceUnknown
	}
}

// MatchesPayment reports whether a payment record's service name belongs to
// this service. Payment descriptions are free-form ("Pago mini carga",
// "BILLETERA TIGO"), so matching is by case-insensitive substring terms.
func (k ServiceKind) MatchesPayment(name string) bool {
	n := normalizeName(name)
	switch k {
	case ServiceMinicarga:
		return strings.Contains(n, "minicarga")
	case ServiceMaxicarga:
		return strings.Contains(n, "maxicarga")
	case ServiceRecargaClaro:
		return strings.Contains(n, "recargaclaro") ||
			(strings.Contains(n, "recarga") && strings.Contains(n, "claro"))
	case ServiceTigoMoney:
		return strings.Contains(n, "tigomoney") ||
			(strings.Contains(n, "billetera") && strings.Contains(n, "tigo"))
	case ServiceBilleteraPersonal:
		return strings.Contains(n, "billetera") && strings.Contains(n, "personal")
	case ServiceBilleteraClaro:
		return strings.Contains(n, "billetera") && strings.Contains(n, "claro")
	default:
		return false
	}
}

// normalizeName lowercases and strips spaces so "Mini Carga" and
// "minicarga" compare equal.
func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")
}
