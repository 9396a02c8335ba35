package booking

import (
	"context"

	"github.com/dermaline/studio-scheduler/internal/audit"
	"github.com/dermaline/studio-scheduler/internal/cache"
	domain "github.com/dermaline/studio-scheduler/internal/domain/booking"
)

type Actor struct {
	ID         uint
	Name       string
	Privileged bool
}

type DeleteAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	reports *cache.ReportCache
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	reports *cache.ReportCache,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:    repo,
		audit:   audit,
		reports: reports,
	}
}

// Execute deletes an appointment. With linked transactions present a
// standard actor is refused outright; a privileged actor first gets the
// transactions unlinked so financial history survives the deletion.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actor Actor,
) error {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return errNotFound
	}

	linked, err := uc.repo.CountTransactionsForAppointment(ctx, ap.ID)
	if err != nil {
		return err
	}

	if linked > 0 {
		if !actor.Privileged {
			return errHasTransactions
		}
		if err := uc.repo.UnlinkTransactionsForAppointment(ctx, ap.ID); err != nil {
			return err
		}
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.reports.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Actor:    actor.Name,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: codeOrID(ap),
		Metadata: map[string]any{"unlinked_transactions": linked},
	})

	return nil
}
