package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/adapter/http/dto"
	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/domain"
)

// ReconciliationService defines the behavior needed by ReconciliationHandler.
type ReconciliationService interface {
	Calculate(ctx context.Context, registerID string) (*domain.DiscrepancyResult, error)
}

// BatchService defines the batch behavior needed by ReconciliationHandler.
type BatchService interface {
	Run(ctx context.Context, registerIDs []string) (*domain.ReconciliationRun, error)
}

// RunReader reads persisted batch runs.
type RunReader interface {
	GetRun(ctx context.Context, id string) (*domain.ReconciliationRun, error)
	ListRuns(ctx context.Context, limit int) ([]*domain.ReconciliationRun, error)
}

// ReconciliationHandler handles discrepancy calculation requests.
type ReconciliationHandler struct {
	reconUC ReconciliationService
	batchUC BatchService
	runs    RunReader
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconUC ReconciliationService, batchUC BatchService, runs RunReader) *ReconciliationHandler {
	return &ReconciliationHandler{
		reconUC: reconUC,
		batchUC: batchUC,
		runs:    runs,
	}
}

// GetDiscrepancy computes the discrepancy for one closed register session.
func (h *ReconciliationHandler) GetDiscrepancy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing register ID", "")
		return
	}

	result, err := h.reconUC.Calculate(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to calculate discrepancy", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DiscrepancyFromDomain(result))
}

// RunBatch reconciles many sessions and returns the run report.
func (h *ReconciliationHandler) RunBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	run, err := h.batchUC.Run(r.Context(), req.RegisterIDs)
	if err != nil {
		// The run itself completed; only persistence failed. Still return
		// the computed outcomes alongside the error status.
		if run != nil {
			writeJSON(w, http.StatusOK, dto.RunFromDomain(run))
			return
		}
		writeError(w, http.StatusInternalServerError, "batch reconciliation failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RunFromDomain(run))
}

// GetRun retrieves one persisted run with outcomes.
func (h *ReconciliationHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing run ID", "")
		return
	}

	run, err := h.runs.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get run", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RunFromDomain(run))
}

// ListRuns lists recent run headers.
func (h *ReconciliationHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)

	runs, err := h.runs.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list runs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RunsFromDomain(runs))
}
