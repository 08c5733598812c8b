package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/domain"
	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/usecase/mocks"
)

// newBatchFixture wires a batch over sources where any register ID starting
// with "bad" has no closing data.
func newBatchFixture(t *testing.T, reports *mocks.MockReportRepository, pause time.Duration) *BatchUseCase {
	t.Helper()

	f := newReconFixture(t, fixedRateSource(t))
	f.registers.GetSessionFunc = func(ctx context.Context, id string) (*domain.RegisterSession, error) {
		session := closedSession(500_000, 480_000)
		session.ID = id
		if len(id) >= 3 && id[:3] == "bad" {
			session.ClosingBalance = nil
			session.ClosingServiceBalances = nil
		}
		return session, nil
	}

	idGen := &mocks.MockIDGenerator{GenerateFunc: func() string { return "run-1" }}
	return NewBatchUseCase(f.uc, reports, idGen, 5, pause, nil, zerolog.Nop())
}

func TestBatchRun_IsolatesSessionFailures(t *testing.T) {
	reports := mocks.NewMockReportRepository()
	batch := newBatchFixture(t, reports, 0)

	ids := []string{"caja-1", "caja-2", "bad-3", "caja-4", "caja-5", "caja-6", "caja-7"}

	run, err := batch.Run(context.Background(), ids)
	require.NoError(t, err)

	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, 7, run.Total)
	assert.Equal(t, 6, run.Succeeded)
	assert.Equal(t, 1, run.Failed)
	require.Len(t, run.Outcomes, 7)

	// Outcomes keep the input order across lot boundaries.
	for i, id := range ids {
		assert.Equal(t, id, run.Outcomes[i].RegisterID)
	}

	failed := run.Outcomes[2]
	assert.Equal(t, domain.OutcomeError, failed.Status)
	assert.Equal(t, domain.ErrorClassMissingClosing, failed.ErrorClass)
	assert.NotEmpty(t, failed.ErrorMessage)

	ok := run.Outcomes[0]
	assert.Equal(t, domain.OutcomeOK, ok.Status)
	assert.True(t, ok.TotalDiscrepancy.Equal(pyg(-20_000)))

	// The run is persisted and retrievable.
	stored, err := reports.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.Succeeded, stored.Succeeded)
}

func TestBatchRun_PersistenceFailureKeepsOutcomes(t *testing.T) {
	reports := mocks.NewMockReportRepository()
	persistErr := errors.New("connection reset")
	reports.CreateRunFunc = func(ctx context.Context, run *domain.ReconciliationRun) error {
		return persistErr
	}
	batch := newBatchFixture(t, reports, 0)

	run, err := batch.Run(context.Background(), []string{"caja-1", "caja-2"})
	require.ErrorIs(t, err, persistErr)
	require.NotNil(t, run, "computed outcomes survive a persistence failure")
	assert.Equal(t, 2, run.Succeeded)
	assert.Len(t, run.Outcomes, 2)
}

func TestBatchRun_CancellationStopsNewLots(t *testing.T) {
	reports := mocks.NewMockReportRepository()
	batch := newBatchFixture(t, reports, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ids := make([]string, 8)
	for i := range ids {
		ids[i] = fmt.Sprintf("caja-%d", i+1)
	}

	// The first lot always runs; the canceled context stops the second.
	run, err := batch.Run(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, 8, run.Total)
	assert.Len(t, run.Outcomes, 5)
	assert.Equal(t, 5, run.Succeeded)
}

func TestNewBatchUseCase_DefaultLotSize(t *testing.T) {
	batch := NewBatchUseCase(nil, nil, nil, 0, 0, nil, zerolog.Nop())
	assert.Equal(t, 5, batch.lotSize)
}
