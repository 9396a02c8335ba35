package retention

import (
	"context"

	"github.com/dermaline/studio-scheduler/internal/cache"
	domain "github.com/dermaline/studio-scheduler/internal/domain/retention"
	"github.com/dermaline/studio-scheduler/internal/models"
	"github.com/dermaline/studio-scheduler/internal/timezone"
)

// ======================================================
// BUILD REPORT
// ======================================================

type BuildReport struct {
	repo    domain.Repository
	reports *cache.ReportCache
	tz      string
}

func NewBuildReport(
	repo domain.Repository,
	reports *cache.ReportCache,
	tz string,
) *BuildReport {
	return &BuildReport{
		repo:    repo,
		reports: reports,
		tz:      tz,
	}
}

// Execute assembles the retention report from a fresh snapshot, going
// through the short-TTL cache first. A cache failure degrades to a plain
// recompute.
func (uc *BuildReport) Execute(ctx context.Context) (*domain.Report, error) {

	if cached, ok := uc.reports.Get(ctx); ok {
		return cached, nil
	}

	snap, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	report := domain.BuildReport(snap)
	uc.reports.Set(ctx, &report)

	return &report, nil
}

func (uc *BuildReport) snapshot(ctx context.Context) (domain.Snapshot, error) {
	appointments, err := uc.repo.ListAppointments(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}

	sales, err := uc.repo.ListStandaloneSales(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}

	stateRows, err := uc.repo.ListFollowUpStates(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}

	states := make(map[string]models.FollowUpState, len(stateRows))
	for _, st := range stateRows {
		states[st.SourceID] = st
	}

	return domain.Snapshot{
		Appointments: appointments,
		Sales:        sales,
		States:       states,
		Now:          timezone.NowIn(uc.tz),
	}, nil
}
