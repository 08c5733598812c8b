package dto

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/domain"
)

// ErrEmptyBatch rejects batch requests without register IDs.
var ErrEmptyBatch = errors.New("register_ids must not be empty")

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ServiceDiscrepancyResponse is one breakdown row.
type ServiceDiscrepancyResponse struct {
	Service         string          `json:"service"`
	InitialBalance  decimal.Decimal `json:"initial_balance"`
	Movement        decimal.Decimal `json:"movement"`
	MatchedPayments decimal.Decimal `json:"matched_payments"`
	FinalBalance    decimal.Decimal `json:"final_balance"`
	Discrepancy     decimal.Decimal `json:"discrepancy"`
}

// RateResponse is the exchange rate actually used.
type RateResponse struct {
	Date time.Time       `json:"date"`
	USD  decimal.Decimal `json:"usd"`
	BRL  decimal.Decimal `json:"brl"`
}

// DiscrepancyResponse is the calculator's output for one session.
type DiscrepancyResponse struct {
	RegisterID       string                       `json:"register_id"`
	RegisterNumber   int                          `json:"register_number"`
	TotalDiscrepancy decimal.Decimal              `json:"total_discrepancy"`
	Services         []ServiceDiscrepancyResponse `json:"services"`
	Rate             RateResponse                 `json:"rate"`
	RateDegraded     bool                         `json:"rate_degraded"`
	CalculatedAt     time.Time                    `json:"calculated_at"`
}

// DiscrepancyFromDomain converts a domain result to a response.
func DiscrepancyFromDomain(r *domain.DiscrepancyResult) *DiscrepancyResponse {
	services := make([]ServiceDiscrepancyResponse, len(r.Services))
	for i, s := range r.Services {
		services[i] = ServiceDiscrepancyResponse{
			Service:         s.Service.String(),
			InitialBalance:  s.InitialBalance,
			Movement:        s.Movement,
			MatchedPayments: s.MatchedPayments,
			FinalBalance:    s.FinalBalance,
			Discrepancy:     s.Discrepancy,
		}
	}

	return &DiscrepancyResponse{
		RegisterID:       r.RegisterID,
		RegisterNumber:   r.RegisterNumber,
		TotalDiscrepancy: r.TotalDiscrepancy,
		Services:         services,
		Rate:             RateResponse{Date: r.Rate.Date, USD: r.Rate.USD, BRL: r.Rate.BRL},
		RateDegraded:     r.RateDegraded,
		CalculatedAt:     r.CalculatedAt,
	}
}

// SessionOutcomeResponse is one session's result inside a run.
type SessionOutcomeResponse struct {
	RegisterID       string          `json:"register_id"`
	Status           string          `json:"status"`
	ErrorClass       string          `json:"error_class,omitempty"`
	ErrorMessage     string          `json:"error_message,omitempty"`
	TotalDiscrepancy decimal.Decimal `json:"total_discrepancy"`
	RateDegraded     bool            `json:"rate_degraded"`
	FinishedAt       time.Time       `json:"finished_at"`
}

// RunResponse is a batch reconciliation run.
type RunResponse struct {
	ID         string                   `json:"id"`
	StartedAt  time.Time                `json:"started_at"`
	FinishedAt time.Time                `json:"finished_at"`
	Total      int                      `json:"total"`
	Succeeded  int                      `json:"succeeded"`
	Failed     int                      `json:"failed"`
	Outcomes   []SessionOutcomeResponse `json:"outcomes,omitempty"`
}

// RunFromDomain converts a domain run to a response.
func RunFromDomain(run *domain.ReconciliationRun) *RunResponse {
	outcomes := make([]SessionOutcomeResponse, len(run.Outcomes))
	for i, o := range run.Outcomes {
		outcomes[i] = SessionOutcomeResponse{
			RegisterID:       o.RegisterID,
			Status:           o.Status,
			ErrorClass:       o.ErrorClass,
			ErrorMessage:     o.ErrorMessage,
			TotalDiscrepancy: o.TotalDiscrepancy,
			RateDegraded:     o.RateDegraded,
			FinishedAt:       o.FinishedAt,
		}
	}

	return &RunResponse{
		ID:         run.ID,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		Total:      run.Total,
		Succeeded:  run.Succeeded,
		Failed:     run.Failed,
		Outcomes:   outcomes,
	}
}

// RunsFromDomain converts run headers to responses.
func RunsFromDomain(runs []*domain.ReconciliationRun) []*RunResponse {
	result := make([]*RunResponse, len(runs))
	for i, run := range runs {
		result[i] = RunFromDomain(run)
	}
	return result
}
