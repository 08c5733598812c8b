package postgres

import (
	"context"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/domain"
)

// NullReportRepository is a no-op implementation used when no database is
// configured: batch runs still execute, their reports are just not kept.
type NullReportRepository struct{}

// NewNullReportRepository creates a new NullReportRepository.
func NewNullReportRepository() *NullReportRepository {
	return &NullReportRepository{}
}

func (r *NullReportRepository) CreateRun(ctx context.Context, run *domain.ReconciliationRun) error {
	return nil
}

func (r *NullReportRepository) GetRun(ctx context.Context, id string) (*domain.ReconciliationRun, error) {
	return nil, domain.ErrRunNotFound
}

func (r *NullReportRepository) ListRuns(ctx context.Context, limit int) ([]*domain.ReconciliationRun, error) {
	return nil, nil
}
