package booking

import (
	"context"

	"github.com/dermaline/studio-scheduler/internal/audit"
	"github.com/dermaline/studio-scheduler/internal/cache"
	domain "github.com/dermaline/studio-scheduler/internal/domain/booking"
	"github.com/dermaline/studio-scheduler/internal/models"
	"github.com/dermaline/studio-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	reports *cache.ReportCache
	tz      string
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	reports *cache.ReportCache,
	tz string,
) *CancelAppointment {
	return &CancelAppointment{
		repo:    repo,
		audit:   audit,
		reports: reports,
		tz:      tz,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
	actorName string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, errNotFound
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.reports.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Actor:    actorName,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: codeOrID(ap),
	})

	return ap, nil
}
