package gateway

import (
	"strings"
	"time"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/domain"
)

// Wire types mirror the core system's JSON. Amounts use FlexAmount because
// upstream mixes numbers, numeric strings and nulls in the same fields.

type wireCurrencyAmount struct {
	PYG FlexAmount `json:"PYG"`
	USD FlexAmount `json:"USD"`
	BRL FlexAmount `json:"BRL"`
}

type wireServiceBalance struct {
	Servicio string     `json:"servicio"`
	Monto    FlexAmount `json:"monto"`
}

type wireSession struct {
	ID                  string               `json:"id"`
	Numero              int                  `json:"numero"`
	SucursalID          string               `json:"sucursalId"`
	FechaApertura       time.Time            `json:"fechaApertura"`
	FechaCierre         *time.Time           `json:"fechaCierre"`
	SaldoApertura       wireCurrencyAmount   `json:"saldoApertura"`
	SaldoCierre         *wireCurrencyAmount  `json:"saldoCierre"`
	ServiciosApertura   []wireServiceBalance `json:"saldosServiciosApertura"`
	ServiciosCierre     []wireServiceBalance `json:"saldosServiciosCierre"`
}

type wireClosingSnapshot struct {
	CajaID           string               `json:"cajaId"`
	FechaDeclaracion time.Time            `json:"fechaDeclaracion"`
	Saldo            wireCurrencyAmount   `json:"saldo"`
	SaldosServicios  []wireServiceBalance `json:"saldosServicios"`
}

type wireOperatorCounters struct {
	GirosEnviados   FlexAmount `json:"girosEnviados"`
	Retiros         FlexAmount `json:"retiros"`
	CargaBilleteras FlexAmount `json:"cargaBilleteras"`
	Recargas        FlexAmount `json:"recargas"`
	Pagos           FlexAmount `json:"pagos"`
}

type wireMovement struct {
	Tigo          *wireOperatorCounters `json:"tigo"`
	Personal      *wireOperatorCounters `json:"personal"`
	Claro         *wireOperatorCounters `json:"claro"`
	AquiPago      *wireOperatorCounters `json:"aquiPago"`
	WepaGuaranies *wireOperatorCounters `json:"wepaGuaranies"`
	WepaDolares   *wireOperatorCounters `json:"wepaDolares"`
}

type wirePayment struct {
	ID            string     `json:"id"`
	CajaID        string     `json:"cajaId"`
	Operadora     string     `json:"operadora"`
	Servicio      string     `json:"servicio"`
	Monto         FlexAmount `json:"monto"`
	Moneda        string     `json:"moneda"`
	Estado        string     `json:"estado"`
	FechaCreacion time.Time  `json:"fechaCreacion"`
}

type wireWithdrawal struct {
	ID       string     `json:"id"`
	CajaID   string     `json:"cajaId"`
	MontoPYG FlexAmount `json:"montoPYG"`
	MontoUSD FlexAmount `json:"montoUSD"`
	MontoBRL FlexAmount `json:"montoBRL"`
	Fecha    time.Time  `json:"fecha"`
}

type wireBankOperation struct {
	ID     string     `json:"id"`
	CajaID string     `json:"cajaId"`
	Tipo   string     `json:"tipo"`
	Monto  FlexAmount `json:"monto"`
	Moneda string     `json:"moneda"`
	Fecha  time.Time  `json:"fecha"`
}

type wireRate struct {
	Fecha time.Time  `json:"fecha"`
	Dolar FlexAmount `json:"dolar"`
	Real  FlexAmount `json:"real"`
}

func (c *Client) mapCurrencyAmount(w wireCurrencyAmount, field string) domain.CurrencyAmount {
	return domain.CurrencyAmount{
		PYG: c.amount(w.PYG, field+".PYG"),
		USD: c.amount(w.USD, field+".USD"),
		BRL: c.amount(w.BRL, field+".BRL"),
	}
}

func (c *Client) mapServiceBalances(ws []wireServiceBalance, field string) []domain.ServiceBalance {
	if ws == nil {
		return nil
	}
	balances := make([]domain.ServiceBalance, 0, len(ws))
	for _, w := range ws {
		balances = append(balances, domain.ServiceBalance{
			Service: w.Servicio,
			Amount:  c.amount(w.Monto, field+".monto"),
		})
	}
	return balances
}

func (c *Client) mapSession(w *wireSession) *domain.RegisterSession {
	session := &domain.RegisterSession{
		ID:                     w.ID,
		Number:                 w.Numero,
		BranchID:               w.SucursalID,
		OpenedAt:               w.FechaApertura,
		ClosedAt:               w.FechaCierre,
		OpeningBalance:         c.mapCurrencyAmount(w.SaldoApertura, "saldoApertura"),
		OpeningServiceBalances: c.mapServiceBalances(w.ServiciosApertura, "saldosServiciosApertura"),
		ClosingServiceBalances: c.mapServiceBalances(w.ServiciosCierre, "saldosServiciosCierre"),
	}
	if w.SaldoCierre != nil {
		closing := c.mapCurrencyAmount(*w.SaldoCierre, "saldoCierre")
		session.ClosingBalance = &closing
	}
	return session
}

func (c *Client) mapSnapshot(w *wireClosingSnapshot) *domain.ClosingSnapshot {
	return &domain.ClosingSnapshot{
		RegisterID:      w.CajaID,
		DeclaredAt:      w.FechaDeclaracion,
		Balance:         c.mapCurrencyAmount(w.Saldo, "saldo"),
		ServiceBalances: c.mapServiceBalances(w.SaldosServicios, "saldosServicios"),
	}
}

func (c *Client) mapOperator(w *wireOperatorCounters, field string) *domain.OperatorCounters {
	if w == nil {
		return nil
	}
	return &domain.OperatorCounters{
		TransfersSent: c.amount(w.GirosEnviados, field+".girosEnviados"),
		Withdrawals:   c.amount(w.Retiros, field+".retiros"),
		WalletTopUps:  c.amount(w.CargaBilleteras, field+".cargaBilleteras"),
		TopUps:        c.amount(w.Recargas, field+".recargas"),
		Payments:      c.amount(w.Pagos, field+".pagos"),
	}
}

func (c *Client) mapMovement(w *wireMovement) *domain.MovementCounters {
	return &domain.MovementCounters{
		Tigo:          c.mapOperator(w.Tigo, "tigo"),
		Personal:      c.mapOperator(w.Personal, "personal"),
		Claro:         c.mapOperator(w.Claro, "claro"),
		AquiPago:      c.mapOperator(w.AquiPago, "aquiPago"),
		WepaGuaranies: c.mapOperator(w.WepaGuaranies, "wepaGuaranies"),
		WepaDolares:   c.mapOperator(w.WepaDolares, "wepaDolares"),
	}
}

func (c *Client) mapPayments(ws []wirePayment) []domain.PaymentRecord {
	payments := make([]domain.PaymentRecord, 0, len(ws))
	for _, w := range ws {
		payments = append(payments, domain.PaymentRecord{
			ID:         w.ID,
			RegisterID: w.CajaID,
			Operator:   w.Operadora,
			Service:    w.Servicio,
			Amount:     c.amount(w.Monto, "pago.monto"),
			Currency:   mapCurrency(w.Moneda),
			Status:     w.Estado,
			CreatedAt:  w.FechaCreacion,
		})
	}
	return payments
}

func (c *Client) mapWithdrawals(ws []wireWithdrawal) []domain.WithdrawalRecord {
	withdrawals := make([]domain.WithdrawalRecord, 0, len(ws))
	for _, w := range ws {
		withdrawals = append(withdrawals, domain.WithdrawalRecord{
			ID:         w.ID,
			RegisterID: w.CajaID,
			Amount: domain.CurrencyAmount{
				PYG: c.amount(w.MontoPYG, "retiro.montoPYG"),
				USD: c.amount(w.MontoUSD, "retiro.montoUSD"),
				BRL: c.amount(w.MontoBRL, "retiro.montoBRL"),
			},
			CreatedAt: w.Fecha,
		})
	}
	return withdrawals
}

func (c *Client) mapBankOperations(ws []wireBankOperation) []domain.BankOperationRecord {
	ops := make([]domain.BankOperationRecord, 0, len(ws))
	for _, w := range ws {
		ops = append(ops, domain.BankOperationRecord{
			ID:         w.ID,
			RegisterID: w.CajaID,
			Type:       w.Tipo,
			Amount:     c.amount(w.Monto, "operacionBancaria.monto"),
			Currency:   mapCurrency(w.Moneda),
			CreatedAt:  w.Fecha,
		})
	}
	return ops
}

func (c *Client) mapRate(w wireRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		Date: w.Fecha,
		USD:  c.amount(w.Dolar, "cotizacion.dolar"),
		BRL:  c.amount(w.Real, "cotizacion.real"),
	}
}

// mapCurrency normalizes upstream currency labels ("GS", "Gs", "PYG",
// "USD", "BRL"). Unknown labels fall back to guaraníes, matching the
// pass-through behavior of the normalizer.
func mapCurrency(raw string) domain.Currency {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "USD":
		return domain.CurrencyUSD
	case "BRL":
		return domain.CurrencyBRL
	default:
		return domain.CurrencyPYG
	}
}
