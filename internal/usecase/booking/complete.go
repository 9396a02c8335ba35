package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dermaline/studio-scheduler/internal/audit"
	"github.com/dermaline/studio-scheduler/internal/cache"
	domain "github.com/dermaline/studio-scheduler/internal/domain/booking"
	"github.com/dermaline/studio-scheduler/internal/models"
	"github.com/dermaline/studio-scheduler/internal/timezone"
)

// Fixed reference code tagging the add-on payment so cream revenue can be
// reported apart from service revenue.
const CreamRefCode = "CREMA"

// ======================================================
// INPUT
// ======================================================

type CompleteAppointmentInput struct {
	AppointmentID uint

	ActualDurationMin int

	// Optional closing payment. When Remaining or Cream is present a
	// single cierre transaction is posted; the two amounts stay separate
	// payment entries on it.
	RemainingAmount *float64
	RemainingMethod string
	CreamAmount     *float64
	CreamMethod     string

	ActorID   uint
	ActorName string
}

// ======================================================
// USE CASE
// ======================================================

type CompleteAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	reports *cache.ReportCache
	tz      string
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	reports *cache.ReportCache,
	tz string,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:    repo,
		audit:   audit,
		reports: reports,
		tz:      tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	in CompleteAppointmentInput,
) (*models.Appointment, error) {

	if in.RemainingAmount != nil && *in.RemainingAmount < 0 {
		return nil, errInvalidAmount
	}
	if in.CreamAmount != nil && *in.CreamAmount < 0 {
		return nil, errInvalidAmount
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, errNotFound
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Complete(ap, now, in.ActualDurationMin); err != nil {
		return nil, err
	}

	var tx *models.Transaction
	if in.RemainingAmount != nil || in.CreamAmount != nil {
		tx = &models.Transaction{
			ID:             uuid.NewString(),
			OccurredAt:     now,
			ClientDocument: ap.ClientDocument,
			ClientName:     ap.Client.Name,
			ClientPhone:    ap.Client.Phone,
			ServiceType:    ap.ServiceType,
			Procedure:      ap.Procedure,
			Kind:           models.TransactionKindClosing,
			AppointmentID:  &ap.ID,
			Source:         models.SourceManual,
			Comment:        fmt.Sprintf("Cierre reserva %s", codeOrID(ap)),
			Cream:          in.CreamAmount != nil,
		}

		if in.RemainingAmount != nil {
			tx.Payments = append(tx.Payments, models.Payment{
				ID:     uuid.NewString(),
				Method: in.RemainingMethod,
				Amount: *in.RemainingAmount,
			})
		}
		if in.CreamAmount != nil {
			tx.Payments = append(tx.Payments, models.Payment{
				ID:      uuid.NewString(),
				Method:  in.CreamMethod,
				RefCode: CreamRefCode,
				Amount:  *in.CreamAmount,
			})
		}

	}

	// cierre y cambio de estado comprometidos juntos
	if err := uc.repo.SaveAppointmentWithTransaction(ctx, ap, tx); err != nil {
		return nil, err
	}

	uc.reports.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Actor:    in.ActorName,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: codeOrID(ap),
		Metadata: map[string]any{"actual_duration_min": in.ActualDurationMin},
	})

	return ap, nil
}
