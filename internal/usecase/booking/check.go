package booking

import (
	"context"

	"github.com/dermaline/studio-scheduler/internal/audit"
	domain "github.com/dermaline/studio-scheduler/internal/domain/booking"
	"github.com/dermaline/studio-scheduler/internal/domain/schedule"
	"github.com/dermaline/studio-scheduler/internal/models"
)

// ======================================================
// CHECK SLOT (two-phase: pure check, then create with
// explicit override)
// ======================================================

type SlotCheck struct {
	OutsideHours bool                `json:"outside_hours"`
	LunchOverlap bool                `json:"lunch_overlap"`
	Conflict     *models.Appointment `json:"conflict,omitempty"`
}

func (s SlotCheck) Clear() bool {
	return !s.OutsideHours && !s.LunchOverlap && s.Conflict == nil
}

type CheckSlot struct {
	repo domain.Repository
}

func NewCheckSlot(repo domain.Repository) *CheckSlot {
	return &CheckSlot{repo: repo}
}

func (uc *CheckSlot) Execute(
	ctx context.Context,
	candidate domain.Candidate,
	excludeID uint,
) (*SlotCheck, error) {

	if err := domain.ValidateInterval(candidate.Start, candidate.End); err != nil {
		return nil, err
	}

	out := &SlotCheck{}

	rows, err := uc.repo.GetWeek(ctx)
	if err != nil {
		return nil, err
	}
	week := schedule.NewWeek(rows)

	if !week.Covers(candidate.Start, candidate.End) {
		out.OutsideHours = true
	}
	if week.SpanTouchesLunch(candidate.Start, candidate.End) {
		out.LunchOverlap = true
	}

	existing, err := uc.repo.ListAppointmentsForSpecialist(
		ctx,
		candidate.Specialist,
		candidate.Start,
		candidate.End,
	)
	if err != nil {
		return nil, err
	}

	out.Conflict = domain.FindConflict(candidate, existing, excludeID)

	return out, nil
}

// shared by create and edit
func checkSoftGates(
	ctx context.Context,
	repo domain.Repository,
	candidate domain.Candidate,
	excludeID uint,
	allowOverlap bool,
	auditDisp *audit.Dispatcher,
	actorID *uint,
	actor string,
) error {

	check, err := NewCheckSlot(repo).Execute(ctx, candidate, excludeID)
	if err != nil {
		return err
	}

	if check.OutsideHours {
		return errOutsideHours
	}

	if check.Conflict != nil && !allowOverlap {
		auditDisp.Dispatch(audit.Event{
			UserID: actorID,
			Actor:  actor,
			Action: "appointment_conflict",
			Entity: "appointment",
			Metadata: map[string]any{
				"specialist":  candidate.Specialist,
				"start":       candidate.Start,
				"end":         candidate.End,
				"conflict_id": check.Conflict.ID,
			},
		})
		return errTimeConflict
	}

	if check.LunchOverlap && !allowOverlap {
		return errLunchOverlap
	}

	return nil
}
