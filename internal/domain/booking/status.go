package booking

import "github.com/dermaline/studio-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "noshow"
)

// Reconfirmation sub-state, meaningful only while scheduled.
type Reconfirmation string

const (
	ReconfirmationUnset     Reconfirmation = ""
	ReconfirmationConfirmed Reconfirmation = "confirmed"
	ReconfirmationRejected  Reconfirmation = "rejected"
)

// ===============================
// Validations
// ===============================

func IsTerminal(current Status) bool {
	switch current {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanMarkNoShow permits the transition from scheduled; marking an
// appointment that is already a no-show is an idempotent no-op handled by
// the caller.
func CanMarkNoShow(current Status) error {
	if current != StatusScheduled && current != StatusNoShow {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanSetReconfirmation(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func ValidReconfirmation(v Reconfirmation) bool {
	switch v {
	case ReconfirmationUnset, ReconfirmationConfirmed, ReconfirmationRejected:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusScheduled
}
