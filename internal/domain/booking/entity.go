package booking

import (
	"time"

	"github.com/dermaline/studio-scheduler/internal/httperr"
	"github.com/dermaline/studio-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ValidateInterval rejects malformed candidate slots before anything else
// touches them.
func ValidateInterval(start, end time.Time) error {
	if !end.After(start) {
		return httperr.ErrBusiness("end_not_after_start")
	}
	return nil
}

func Complete(ap *models.Appointment, now time.Time, actualMin int) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}
	if actualMin <= 0 {
		return httperr.ErrBusiness("invalid_actual_duration")
	}

	ap.Status = string(StatusCompleted)
	ap.ActualDurationMin = &actualMin
	ap.CompletedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// MarkNoShow is idempotent: marking an appointment that is already a
// no-show changes nothing.
func MarkNoShow(ap *models.Appointment, now time.Time) error {
	if Status(ap.Status) == StatusNoShow {
		return nil
	}
	if err := CanMarkNoShow(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	ap.NoShowAt = &now
	return nil
}

// SetReconfirmation flips the reconfirmation flag; it is not a strict
// transition and can change back and forth while the appointment stays
// scheduled.
func SetReconfirmation(ap *models.Appointment, value Reconfirmation) error {
	if err := CanSetReconfirmation(Status(ap.Status)); err != nil {
		return err
	}
	if !ValidReconfirmation(value) {
		return httperr.ErrBusiness("invalid_reconfirmation")
	}

	ap.Reconfirmation = string(value)
	return nil
}
