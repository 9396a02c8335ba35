package retention

import (
	"fmt"
	"strings"
	"time"

	"github.com/dermaline/studio-scheduler/internal/models"
)

// Service-category matching. Service types are free text entered by
// staff, so matching is tolerant of case and of the accented spelling
// ("Depilación Láser" vs "Depilacion Laser").
const (
	ProcedureTouchUp = "Retoque"
)

type EventSource string

const (
	SourceAppointment EventSource = "appointment"
	SourceSale        EventSource = "sale"
)

// Event is the union the retention engine classifies: one completed
// appointment or one standalone sale, stripped to what eligibility and
// return detection need.
type Event struct {
	ID             string
	Source         EventSource
	ClientDocument string
	ClientName     string
	ServiceType    string
	Procedure      string
	Date           time.Time
	Imported       bool
}

func AppointmentEventID(appointmentID uint) string {
	return fmt.Sprintf("apt:%d", appointmentID)
}

// EventFromAppointment adapts a completed appointment. It is the caller's
// job to pass only completed ones.
func EventFromAppointment(ap models.Appointment) Event {
	return Event{
		ID:             AppointmentEventID(ap.ID),
		Source:         SourceAppointment,
		ClientDocument: ap.ClientDocument,
		ClientName:     ap.Client.Name,
		ServiceType:    ap.ServiceType,
		Procedure:      ap.Procedure,
		Date:           ap.StartTime,
		Imported:       ap.Source == models.SourceImported,
	}
}

// EventFromSale adapts a standalone sale (no appointment link, not a
// deposit).
func EventFromSale(tx models.Transaction) Event {
	return Event{
		ID:             tx.ID,
		Source:         SourceSale,
		ClientDocument: tx.ClientDocument,
		ClientName:     tx.ClientName,
		ServiceType:    tx.ServiceType,
		Procedure:      tx.Procedure,
		Date:           tx.OccurredAt,
		Imported:       tx.Source == models.SourceImported,
	}
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	replacer := strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
	)
	return replacer.Replace(s)
}

func IsEyebrowService(serviceType string) bool {
	return strings.Contains(normalize(serviceType), "ceja")
}

func IsLaserService(serviceType string) bool {
	return strings.Contains(normalize(serviceType), "laser")
}

func IsEvaluation(serviceType, procedure string) bool {
	return strings.Contains(normalize(serviceType), "evaluacion") ||
		strings.Contains(normalize(procedure), "evaluacion")
}

func IsTouchUp(procedure string) bool {
	return normalize(procedure) == normalize(ProcedureTouchUp)
}
