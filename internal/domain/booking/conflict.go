package booking

import (
	"time"

	"github.com/dermaline/studio-scheduler/internal/models"
)

type Candidate struct {
	Specialist string
	Start      time.Time
	End        time.Time
}

// FindConflict returns the first existing appointment for the same
// specialist whose [start, end) interval intersects the candidate's under
// the strict half-open test. Cancelled and no-show appointments are still
// conflict sources: the slot was claimed at creation time regardless of
// how it turned out. excludeID skips the appointment being edited (0 for
// none). Touching boundaries do not conflict.
func FindConflict(
	candidate Candidate,
	existing []models.Appointment,
	excludeID uint,
) *models.Appointment {

	for i := range existing {
		ap := &existing[i]

		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if ap.Specialist != candidate.Specialist {
			continue
		}

		if candidate.Start.Before(ap.EndTime) && candidate.End.After(ap.StartTime) {
			return ap
		}
	}

	return nil
}
