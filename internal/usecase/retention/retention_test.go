package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dermaline/studio-scheduler/internal/audit"
	"github.com/dermaline/studio-scheduler/internal/cache"
	domain "github.com/dermaline/studio-scheduler/internal/domain/retention"
	"github.com/dermaline/studio-scheduler/internal/httperr"
	"github.com/dermaline/studio-scheduler/internal/models"
)

type fakeRepo struct {
	appointments []models.Appointment
	sales        []models.Transaction
	states       map[string]*models.FollowUpState
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{states: make(map[string]*models.FollowUpState)}
}

func (f *fakeRepo) ListAppointments(context.Context) ([]models.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeRepo) ListStandaloneSales(context.Context) ([]models.Transaction, error) {
	return f.sales, nil
}

func (f *fakeRepo) ListFollowUpStates(context.Context) ([]models.FollowUpState, error) {
	var out []models.FollowUpState
	for _, st := range f.states {
		out = append(out, *st)
	}
	return out, nil
}

func (f *fakeRepo) GetFollowUpState(_ context.Context, sourceID string) (*models.FollowUpState, error) {
	st, ok := f.states[sourceID]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (f *fakeRepo) SaveFollowUpState(_ context.Context, st *models.FollowUpState) error {
	cp := *st
	f.states[st.SourceID] = &cp
	return nil
}

func nopAudit() *audit.Dispatcher {
	return audit.NewDispatcher(nil, zap.NewNop())
}

func nopCache() *cache.ReportCache {
	return cache.NewReportCache(nil, zap.NewNop())
}

func completedAppt(id uint, doc string, start time.Time) models.Appointment {
	return models.Appointment{
		ID:             id,
		ClientDocument: doc,
		ServiceType:    "Cejas",
		Procedure:      "Microblading",
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		Status:         "completed",
		Source:         models.SourceManual,
	}
}

// ======================================================
// BUILD REPORT
// ======================================================

func TestBuildReportCombinesSourcesAndStates(t *testing.T) {
	repo := newFakeRepo()

	old := time.Now().AddDate(0, 0, -60)
	repo.appointments = []models.Appointment{
		completedAppt(1, "111", old),
		completedAppt(2, "222", old),
	}
	repo.sales = []models.Transaction{
		{ID: "tx-1", ClientDocument: "333", ServiceType: "Laser", OccurredAt: old, Kind: models.TransactionKindClosing},
	}
	repo.states["apt:1"] = &models.FollowUpState{
		SourceID: "apt:1",
		Status:   models.FollowUpContacted,
		Notes:    "llamada sin respuesta",
	}

	uc := NewBuildReport(repo, nopCache(), "UTC")
	report, err := uc.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Items, 3)
	assert.Equal(t, 3, report.Metrics.EligibleBase)

	byID := map[string]domain.Item{}
	for _, it := range report.Items {
		byID[it.Event.ID] = it
	}
	assert.Equal(t, models.FollowUpContacted, byID["apt:1"].Status)
	assert.Equal(t, "llamada sin respuesta", byID["apt:1"].Notes)
	assert.Equal(t, models.FollowUpPending, byID["apt:2"].Status)
	assert.Equal(t, domain.SourceSale, byID["tx-1"].Event.Source)
}

// ======================================================
// UPDATE STATE
// ======================================================

func TestUpdateStateLazyCreate(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateState(repo, nopAudit(), nopCache(), "UTC")

	st, err := uc.Execute(context.Background(), UpdateStateInput{
		SourceID:     "apt:5",
		Status:       models.FollowUpContacted,
		Notes:        "respondió por WhatsApp",
		TouchContact: true,
		ActorID:      1,
		ActorName:    "recepcion",
	})
	require.NoError(t, err)

	assert.Equal(t, models.FollowUpContacted, st.Status)
	assert.NotNil(t, st.LastContactAt)
	require.Contains(t, repo.states, "apt:5")

	// La segunda actualización reusa el registro.
	st2, err := uc.Execute(context.Background(), UpdateStateInput{
		SourceID:  "apt:5",
		Status:    models.FollowUpLost,
		ActorID:   1,
		ActorName: "recepcion",
	})
	require.NoError(t, err)
	assert.Equal(t, models.FollowUpLost, st2.Status)
	assert.Len(t, repo.states, 1)
}

// brokenReadRepo simula una base caída en la lectura del estado.
type brokenReadRepo struct {
	*fakeRepo
}

func (b *brokenReadRepo) GetFollowUpState(context.Context, string) (*models.FollowUpState, error) {
	return nil, errors.New("conexión perdida")
}

func TestUpdateStatePropagatesReadFailure(t *testing.T) {
	inner := newFakeRepo()
	inner.states["apt:9"] = &models.FollowUpState{
		SourceID: "apt:9",
		Status:   models.FollowUpContacted,
		Notes:    "ya la llamamos",
		Archived: true,
	}
	uc := NewUpdateState(&brokenReadRepo{inner}, nopAudit(), nopCache(), "UTC")

	_, err := uc.Execute(context.Background(), UpdateStateInput{
		SourceID: "apt:9",
		Status:   models.FollowUpLost,
	})
	require.Error(t, err)

	// El registro existente queda intacto: un error de lectura no puede
	// tratarse como primer contacto y pisar las notas.
	st := inner.states["apt:9"]
	assert.Equal(t, models.FollowUpContacted, st.Status)
	assert.Equal(t, "ya la llamamos", st.Notes)
	assert.True(t, st.Archived)
}

func TestArchivePropagatesReadFailure(t *testing.T) {
	inner := newFakeRepo()
	inner.states["apt:9"] = &models.FollowUpState{
		SourceID: "apt:9",
		Status:   models.FollowUpScheduled,
	}
	uc := NewArchiveState(&brokenReadRepo{inner}, nopAudit(), nopCache())

	_, err := uc.Execute(context.Background(), "apt:9", true, 2, "gerencia", true)
	require.Error(t, err)
	assert.False(t, inner.states["apt:9"].Archived)
	assert.Equal(t, models.FollowUpScheduled, inner.states["apt:9"].Status)
}

func TestUpdateStateKeepsArchivedFlag(t *testing.T) {
	repo := newFakeRepo()
	repo.states["apt:3"] = &models.FollowUpState{
		SourceID: "apt:3",
		Status:   models.FollowUpLost,
		Archived: true,
	}
	uc := NewUpdateState(repo, nopAudit(), nopCache(), "UTC")

	st, err := uc.Execute(context.Background(), UpdateStateInput{
		SourceID: "apt:3",
		Status:   models.FollowUpContacted,
	})
	require.NoError(t, err)
	assert.True(t, st.Archived)
}

func TestUpdateStateRejectsUnknownStatus(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateState(repo, nopAudit(), nopCache(), "UTC")

	_, err := uc.Execute(context.Background(), UpdateStateInput{
		SourceID: "apt:5",
		Status:   "QUIZAS",
	})
	require.Error(t, err)
	assert.Equal(t, "invalid_followup_status", httperr.BusinessCode(err))
	assert.Empty(t, repo.states)
}

func TestUpdateStateExplicitContactTimestampWins(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateState(repo, nopAudit(), nopCache(), "UTC")

	when := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	st, err := uc.Execute(context.Background(), UpdateStateInput{
		SourceID:      "apt:7",
		Status:        models.FollowUpContacted,
		LastContactAt: &when,
		TouchContact:  true,
	})
	require.NoError(t, err)
	require.NotNil(t, st.LastContactAt)
	assert.Equal(t, when, *st.LastContactAt)
}

// ======================================================
// ARCHIVE
// ======================================================

func TestArchiveRequiresPrivilege(t *testing.T) {
	repo := newFakeRepo()
	uc := NewArchiveState(repo, nopAudit(), nopCache())

	_, err := uc.Execute(context.Background(), "apt:1", true, 1, "recepcion", false)
	require.Error(t, err)
	assert.Equal(t, "privileged_required", httperr.BusinessCode(err))
	assert.Empty(t, repo.states)
}

func TestArchiveTogglesWithoutTouchingStatus(t *testing.T) {
	repo := newFakeRepo()
	repo.states["apt:1"] = &models.FollowUpState{
		SourceID: "apt:1",
		Status:   models.FollowUpLost,
	}
	uc := NewArchiveState(repo, nopAudit(), nopCache())

	st, err := uc.Execute(context.Background(), "apt:1", true, 2, "gerencia", true)
	require.NoError(t, err)
	assert.True(t, st.Archived)
	assert.Equal(t, models.FollowUpLost, st.Status)

	st, err = uc.Execute(context.Background(), "apt:1", false, 2, "gerencia", true)
	require.NoError(t, err)
	assert.False(t, st.Archived)
}
