package retention

import (
	"time"

	"github.com/dermaline/studio-scheduler/internal/domain/booking"
	"github.com/dermaline/studio-scheduler/internal/models"
)

const (
	// Standard follow-up window: contact the client this many days after
	// the qualifying event.
	FollowUpWindowDays = 40

	// Returns are only counted strictly after this grace period; a visit
	// the same day or the next is part of the original service.
	ReturnGraceDays = 1

	// Long-horizon win-back list, purely age based.
	ReactivationDays = 330
)

// Eligible decides whether an event enters the follow-up pipeline: a
// first-time eyebrow service (procedure other than Retoque) or any laser
// service. Bulk-imported records never qualify.
func Eligible(ev Event) bool {
	if ev.Imported {
		return false
	}
	if IsLaserService(ev.ServiceType) {
		return true
	}
	if IsEyebrowService(ev.ServiceType) {
		return !IsTouchUp(ev.Procedure)
	}
	return false
}

func TargetDate(ev Event) time.Time {
	return ev.Date.AddDate(0, 0, FollowUpWindowDays)
}

// returnAccepts applies the service matching rules: a laser event is
// satisfied by a laser or eyebrow return, an eyebrow event only by an
// eyebrow return.
func returnAccepts(ev Event, serviceType string) bool {
	if IsLaserService(ev.ServiceType) {
		return IsLaserService(serviceType) || IsEyebrowService(serviceType)
	}
	return IsEyebrowService(serviceType)
}

// FindReturn scans all appointments for the earliest one of the same
// client starting strictly after the grace period. Any status counts: a
// scheduled future visit already answers the follow-up question.
func FindReturn(ev Event, appointments []models.Appointment) *models.Appointment {
	cutoff := ev.Date.AddDate(0, 0, ReturnGraceDays)

	var found *models.Appointment
	for i := range appointments {
		ap := &appointments[i]

		if ap.ClientDocument != ev.ClientDocument {
			continue
		}
		if ev.Source == SourceAppointment && AppointmentEventID(ap.ID) == ev.ID {
			continue
		}
		if !ap.StartTime.After(cutoff) {
			continue
		}
		if !returnAccepts(ev, ap.ServiceType) {
			continue
		}

		if found == nil || ap.StartTime.Before(found.StartTime) {
			found = ap
		}
	}
	return found
}

// ResolveStatus applies the resolution order: a detected return wins over
// anything manual, then the manually tracked status, then PENDIENTE.
func ResolveStatus(returned bool, manual *models.FollowUpState) string {
	if returned {
		return models.FollowUpScheduled
	}
	if manual != nil && manual.Status != "" {
		return manual.Status
	}
	return models.FollowUpPending
}

// qualifiesAsConversion: any completed appointment after the evaluation
// that is not itself an evaluation.
func qualifiesAsConversion(ap models.Appointment, after time.Time) bool {
	if booking.Status(ap.Status) != booking.StatusCompleted {
		return false
	}
	if !ap.StartTime.After(after) {
		return false
	}
	return !IsEvaluation(ap.ServiceType, ap.Procedure)
}
