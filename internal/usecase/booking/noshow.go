package booking

import (
	"context"

	"github.com/dermaline/studio-scheduler/internal/audit"
	"github.com/dermaline/studio-scheduler/internal/cache"
	domain "github.com/dermaline/studio-scheduler/internal/domain/booking"
	"github.com/dermaline/studio-scheduler/internal/models"
	"github.com/dermaline/studio-scheduler/internal/timezone"
)

type MarkNoShow struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	reports *cache.ReportCache
	tz      string
}

func NewMarkNoShow(
	repo domain.Repository,
	audit *audit.Dispatcher,
	reports *cache.ReportCache,
	tz string,
) *MarkNoShow {
	return &MarkNoShow{
		repo:    repo,
		audit:   audit,
		reports: reports,
		tz:      tz,
	}
}

// Execute marks a scheduled appointment as a no-show. No payment side
// effects; calling it again on a no-show is a no-op.
func (uc *MarkNoShow) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
	actorName string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, errNotFound
	}

	already := domain.Status(ap.Status) == domain.StatusNoShow

	now := timezone.NowIn(uc.tz)
	if err := domain.MarkNoShow(ap, now); err != nil {
		return nil, err
	}

	if already {
		return ap, nil
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.reports.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Actor:    actorName,
		Action:   "appointment_noshow",
		Entity:   "appointment",
		EntityID: codeOrID(ap),
	})

	return ap, nil
}
