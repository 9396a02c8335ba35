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

type CreateAppointmentInput struct {
	Specialist string

	ClientDocument string
	ClientName     string
	ClientPhone    string
	ClientSource   string

	ServiceType string
	Procedure   string

	Start time.Time
	End   time.Time

	Comment string

	// Explicit acknowledgement of a reported conflict or lunch overlap.
	AllowOverlap bool

	ActorID   uint
	ActorName string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	reports *cache.ReportCache
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	reports *cache.ReportCache,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		audit:   audit,
		reports: reports,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if err := domain.ValidateInterval(in.Start, in.End); err != nil {
		return nil, err
	}

	candidate := domain.Candidate{
		Specialist: in.Specialist,
		Start:      in.Start,
		End:        in.End,
	}

	if err := checkSoftGates(
		ctx, uc.repo, candidate, 0, in.AllowOverlap,
		uc.audit, &in.ActorID, in.ActorName,
	); err != nil {
		return nil, err
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.ClientDocument,
		in.ClientName,
		in.ClientPhone,
		in.ClientSource,
	)
	if err != nil {
		return nil, err
	}

	// Code prefix comes from the appointment's own start date, not the
	// creation date. Read-then-write without a counter: concurrent
	// creations in the same month can race to the same sequence.
	codes, err := uc.repo.ListBookingCodes(ctx, domain.CodePrefix(in.Start))
	if err != nil {
		return nil, err
	}
	code := domain.NextCode(in.Start, codes)

	ap := &models.Appointment{
		BookingCode:    &code,
		Specialist:     in.Specialist,
		ClientDocument: client.Document,
		ServiceType:    in.ServiceType,
		Procedure:      in.Procedure,
		StartTime:      in.Start,
		EndTime:        in.End,
		Status:         string(domain.InitialStatus()),
		Source:         models.SourceManual,
		Comment:        in.Comment,
		CreatedBy:      in.ActorName,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Una cita nueva puede ser el retorno que cierra un seguimiento.
	uc.reports.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Actor:    in.ActorName,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: code,
	})

	return ap, nil
}
