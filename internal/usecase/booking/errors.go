package booking

import "github.com/dermaline/studio-scheduler/internal/httperr"

var (
	errTimeConflict    = httperr.ErrBusiness("time_conflict")
	errLunchOverlap    = httperr.ErrBusiness("lunch_overlap")
	errOutsideHours    = httperr.ErrBusiness("outside_business_hours")
	errNotFound        = httperr.ErrBusiness("appointment_not_found")
	errHasTransactions = httperr.ErrBusiness("appointment_has_transactions")
	errInvalidAmount   = httperr.ErrBusiness("invalid_amount")
	errInvalidState    = httperr.ErrBusiness("invalid_state")
)
