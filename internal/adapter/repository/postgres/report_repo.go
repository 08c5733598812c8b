package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/domain"
)

// ReportRepository persists batch reconciliation runs and their per-session
// outcomes.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// CreateRun inserts the run header and its outcomes in one transaction.
func (r *ReportRepository) CreateRun(ctx context.Context, run *domain.ReconciliationRun) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO reconciliation_runs (id, started_at, finished_at, total, succeeded, failed)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, run.ID, run.StartedAt, run.FinishedAt, run.Total, run.Succeeded, run.Failed)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, outcome := range run.Outcomes {
		_, err = tx.Exec(ctx, `
			INSERT INTO reconciliation_outcomes (
				run_id, register_id, status, error_class, error_message,
				total_discrepancy, rate_degraded, finished_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			run.ID,
			outcome.RegisterID,
			outcome.Status,
			outcome.ErrorClass,
			outcome.ErrorMessage,
			outcome.TotalDiscrepancy,
			outcome.RateDegraded,
			outcome.FinishedAt,
		)
		if err != nil {
			return fmt.Errorf("insert outcome for %s: %w", outcome.RegisterID, err)
		}
	}

	return tx.Commit(ctx)
}

// GetRun retrieves one run with its outcomes.
func (r *ReportRepository) GetRun(ctx context.Context, id string) (*domain.ReconciliationRun, error) {
	run := &domain.ReconciliationRun{}

	err := r.pool.QueryRow(ctx, `
		SELECT id, started_at, finished_at, total, succeeded, failed
		FROM reconciliation_runs
		WHERE id = $1
	`, id).Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.Total, &run.Succeeded, &run.Failed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("select run: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT register_id, status, error_class, error_message,
		       total_discrepancy, rate_degraded, finished_at
		FROM reconciliation_outcomes
		WHERE run_id = $1
		ORDER BY register_id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("select outcomes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var outcome domain.SessionOutcome
		err := rows.Scan(
			&outcome.RegisterID,
			&outcome.Status,
			&outcome.ErrorClass,
			&outcome.ErrorMessage,
			&outcome.TotalDiscrepancy,
			&outcome.RateDegraded,
			&outcome.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		run.Outcomes = append(run.Outcomes, outcome)
	}

	return run, rows.Err()
}

// ListRuns retrieves the most recent run headers, without outcomes.
func (r *ReportRepository) ListRuns(ctx context.Context, limit int) ([]*domain.ReconciliationRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, started_at, finished_at, total, succeeded, failed
		FROM reconciliation_runs
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*domain.ReconciliationRun, 0, limit)
	for rows.Next() {
		run := &domain.ReconciliationRun{}
		err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.Total, &run.Succeeded, &run.Failed)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
