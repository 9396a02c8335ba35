package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dermaline/studio-scheduler/internal/audit"
	domain "github.com/dermaline/studio-scheduler/internal/domain/booking"
	"github.com/dermaline/studio-scheduler/internal/models"
	"github.com/dermaline/studio-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type RegisterDepositInput struct {
	AppointmentID uint

	Amount  float64
	Method  string
	RefCode string

	ActorID   uint
	ActorName string
}

// ======================================================
// USE CASE
// ======================================================

type RegisterDeposit struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewRegisterDeposit(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *RegisterDeposit {
	return &RegisterDeposit{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute registers the deposit of a scheduled appointment. The first
// registration spawns exactly one adelanto transaction; any later call
// only rewrites the deposit snapshot on the appointment, so repeated
// edits can never duplicate the posting.
func (uc *RegisterDeposit) Execute(
	ctx context.Context,
	in RegisterDepositInput,
) (*models.Appointment, error) {

	if in.Amount < 0 {
		return nil, errInvalidAmount
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, errNotFound
	}

	if domain.Status(ap.Status) != domain.StatusScheduled {
		return nil, errInvalidState
	}

	var tx *models.Transaction
	if ap.DepositTransactionID == nil {
		now := timezone.NowIn(uc.tz)

		tx = &models.Transaction{
			ID:             uuid.NewString(),
			OccurredAt:     now,
			ClientDocument: ap.ClientDocument,
			ClientName:     ap.Client.Name,
			ClientPhone:    ap.Client.Phone,
			ServiceType:    ap.ServiceType,
			Procedure:      ap.Procedure,
			Kind:           models.TransactionKindDeposit,
			AppointmentID:  &ap.ID,
			Source:         models.SourceManual,
			Comment:        fmt.Sprintf("Adelanto reserva %s", codeOrID(ap)),
			Payments: []models.Payment{
				{
					ID:      uuid.NewString(),
					Method:  in.Method,
					RefCode: in.RefCode,
					Amount:  in.Amount,
				},
			},
		}

		ap.DepositTransactionID = &tx.ID
	}

	ap.DepositAmount = &in.Amount
	ap.DepositMethod = in.Method
	ap.DepositRef = in.RefCode

	// Posting and link land together or not at all; a failed write leaves
	// no orphan adelanto for a retry to duplicate.
	if err := uc.repo.SaveAppointmentWithTransaction(ctx, ap, tx); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Actor:    in.ActorName,
		Action:   "deposit_registered",
		Entity:   "appointment",
		EntityID: codeOrID(ap),
		Metadata: map[string]any{"amount": in.Amount},
	})

	return ap, nil
}
