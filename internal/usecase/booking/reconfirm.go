package booking

import (
	"context"

	"github.com/dermaline/studio-scheduler/internal/audit"
	domain "github.com/dermaline/studio-scheduler/internal/domain/booking"
	"github.com/dermaline/studio-scheduler/internal/models"
)

type SetReconfirmation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetReconfirmation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SetReconfirmation {
	return &SetReconfirmation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *SetReconfirmation) Execute(
	ctx context.Context,
	appointmentID uint,
	value string,
	actorID uint,
	actorName string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, errNotFound
	}

	if err := domain.SetReconfirmation(ap, domain.Reconfirmation(value)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Actor:    actorName,
		Action:   "appointment_reconfirmation",
		Entity:   "appointment",
		EntityID: codeOrID(ap),
		Metadata: map[string]any{"value": value},
	})

	return ap, nil
}
