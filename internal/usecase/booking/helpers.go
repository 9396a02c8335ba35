package booking

import (
	"strconv"

	"github.com/dermaline/studio-scheduler/internal/models"
)

func codeOrID(ap *models.Appointment) string {
	if ap.BookingCode != nil {
		return *ap.BookingCode
	}
	return strconv.FormatUint(uint64(ap.ID), 10)
}
