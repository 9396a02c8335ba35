package booking

import (
	"context"
	"time"

	"github.com/dermaline/studio-scheduler/internal/audit"
	"github.com/dermaline/studio-scheduler/internal/cache"
	domain "github.com/dermaline/studio-scheduler/internal/domain/booking"
	"github.com/dermaline/studio-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type EditAppointmentInput struct {
	AppointmentID uint

	Specialist  string
	ServiceType string
	Procedure   string

	Start time.Time
	End   time.Time

	Comment string

	// Optional deposit snapshot updates. These only touch the fields on
	// the appointment; the adelanto transaction, if one exists, is never
	// re-posted here.
	DepositAmount *float64
	DepositMethod *string
	DepositRef    *string

	AllowOverlap bool

	ActorID   uint
	ActorName string
}

// ======================================================
// USE CASE
// ======================================================

type EditAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	reports *cache.ReportCache
}

func NewEditAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	reports *cache.ReportCache,
) *EditAppointment {
	return &EditAppointment{
		repo:    repo,
		audit:   audit,
		reports: reports,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute rewrites the editable fields of an appointment. ID, booking
// code, creation instant, status and actual duration always survive the
// edit unchanged.
func (uc *EditAppointment) Execute(
	ctx context.Context,
	in EditAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, errNotFound
	}

	if err := domain.ValidateInterval(in.Start, in.End); err != nil {
		return nil, err
	}

	candidate := domain.Candidate{
		Specialist: in.Specialist,
		Start:      in.Start,
		End:        in.End,
	}

	if err := checkSoftGates(
		ctx, uc.repo, candidate, ap.ID, in.AllowOverlap,
		uc.audit, &in.ActorID, in.ActorName,
	); err != nil {
		return nil, err
	}

	ap.Specialist = in.Specialist
	ap.ServiceType = in.ServiceType
	ap.Procedure = in.Procedure
	ap.StartTime = in.Start
	ap.EndTime = in.End
	ap.Comment = in.Comment

	if in.DepositAmount != nil {
		if *in.DepositAmount < 0 {
			return nil, errInvalidAmount
		}
		ap.DepositAmount = in.DepositAmount
	}
	if in.DepositMethod != nil {
		ap.DepositMethod = *in.DepositMethod
	}
	if in.DepositRef != nil {
		ap.DepositRef = *in.DepositRef
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.reports.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Actor:    in.ActorName,
		Action:   "appointment_edited",
		Entity:   "appointment",
		EntityID: codeOrID(ap),
	})

	return ap, nil
}
