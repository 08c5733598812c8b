package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/domain"
	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/infrastructure/metrics"
)

// BatchUseCase reconciles many sessions in lots, pausing between lots so
// the backend is not overwhelmed. Per-session failures are isolated: each
// is recorded as an error outcome and the run continues.
type BatchUseCase struct {
	recon   *ReconciliationUseCase
	reports ReportRepository
	idGen   IDGenerator
	lotSize int
	pause   time.Duration
	metrics *metrics.Metrics // optional
	logger  zerolog.Logger
}

// NewBatchUseCase creates a new BatchUseCase. m may be nil.
func NewBatchUseCase(
	recon *ReconciliationUseCase,
	reports ReportRepository,
	idGen IDGenerator,
	lotSize int,
	pause time.Duration,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *BatchUseCase {
	if lotSize <= 0 {
		lotSize = 5
	}
	return &BatchUseCase{
		recon:   recon,
		reports: reports,
		idGen:   idGen,
		lotSize: lotSize,
		pause:   pause,
		metrics: m,
		logger:  logger,
	}
}

// Run reconciles the given register sessions and persists the run report.
// Cancellation is cooperative between lots: a canceled context stops new
// lots from being issued, but in-flight calculations finish.
func (uc *BatchUseCase) Run(ctx context.Context, registerIDs []string) (*domain.ReconciliationRun, error) {
	run := &domain.ReconciliationRun{
		ID:        uc.idGen.Generate(),
		StartedAt: time.Now().UTC(),
		Total:     len(registerIDs),
		Outcomes:  make([]domain.SessionOutcome, 0, len(registerIDs)),
	}

	if uc.metrics != nil {
		uc.metrics.BatchRunsTotal.Inc()
	}

	for start := 0; start < len(registerIDs); start += uc.lotSize {
		if start > 0 && uc.pause > 0 {
			select {
			case <-ctx.Done():
				uc.logger.Warn().Str("run_id", run.ID).Msg("batch canceled between lots")
				return uc.finish(ctx, run)
			case <-time.After(uc.pause):
			}
		}

		end := start + uc.lotSize
		if end > len(registerIDs) {
			end = len(registerIDs)
		}
		run.Outcomes = append(run.Outcomes, uc.processLot(ctx, registerIDs[start:end])...)
	}

	return uc.finish(ctx, run)
}

// processLot reconciles one lot concurrently. Results keep the lot's input
// order.
func (uc *BatchUseCase) processLot(ctx context.Context, registerIDs []string) []domain.SessionOutcome {
	outcomes := make([]domain.SessionOutcome, len(registerIDs))
	var wg sync.WaitGroup

	for i, id := range registerIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			outcomes[i] = uc.reconcileOne(ctx, id)
		}(i, id)
	}
	wg.Wait()

	return outcomes
}

func (uc *BatchUseCase) reconcileOne(ctx context.Context, registerID string) domain.SessionOutcome {
	result, err := uc.recon.Calculate(ctx, registerID)

	if uc.metrics != nil {
		uc.metrics.BatchSessionsProcessed.Inc()
	}

	if err != nil {
		uc.logger.Warn().Err(err).Str("register_id", registerID).Msg("session reconciliation failed")
		return domain.SessionOutcome{
			RegisterID:   registerID,
			Status:       domain.OutcomeError,
			ErrorClass:   domain.ClassifyError(err),
			ErrorMessage: err.Error(),
			FinishedAt:   time.Now().UTC(),
		}
	}

	return domain.SessionOutcome{
		RegisterID:       registerID,
		Status:           domain.OutcomeOK,
		TotalDiscrepancy: result.TotalDiscrepancy,
		RateDegraded:     result.RateDegraded,
		FinishedAt:       time.Now().UTC(),
	}
}

func (uc *BatchUseCase) finish(ctx context.Context, run *domain.ReconciliationRun) (*domain.ReconciliationRun, error) {
	run.FinishedAt = time.Now().UTC()
	for _, outcome := range run.Outcomes {
		if outcome.Status == domain.OutcomeOK {
			run.Succeeded++
		} else {
			run.Failed++
		}
	}

	if err := uc.reports.CreateRun(ctx, run); err != nil {
		// The computed outcomes are still useful to the caller; persistence
		// failure is reported but does not discard the run.
		uc.logger.Error().Err(err).Str("run_id", run.ID).Msg("failed to persist reconciliation run")
		return run, err
	}

	uc.logger.Info().
		Str("run_id", run.ID).
		Int("total", run.Total).
		Int("succeeded", run.Succeeded).
		Int("failed", run.Failed).
		Msg("reconciliation run finished")

	return run, nil
}
