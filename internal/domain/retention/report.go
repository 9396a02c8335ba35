package retention

import (
	"sort"
	"time"

	"github.com/dermaline/studio-scheduler/internal/domain/booking"
	"github.com/dermaline/studio-scheduler/internal/models"
)

// Snapshot is the in-memory data the engine derives everything from.
// Derivation never mutates it and is recomputed on every read.
type Snapshot struct {
	Appointments []models.Appointment
	Sales        []models.Transaction
	States       map[string]models.FollowUpState
	Now          time.Time
}

type Item struct {
	Event Event `json:"event"`

	TargetDate    time.Time  `json:"target_date"`
	Status        string     `json:"status"`
	Returned      bool       `json:"returned"`
	ReturnID      *uint      `json:"return_id,omitempty"`
	Archived      bool       `json:"archived"`
	Notes         string     `json:"notes"`
	LastContactAt *time.Time `json:"last_contact_at,omitempty"`
}

type Metrics struct {
	EligibleBase  int     `json:"eligible_base"`
	ReturnedCount int     `json:"returned_count"`
	PendingCount  int     `json:"pending_count"`
	ReturnRate    float64 `json:"return_rate"`

	EvaluationCount int     `json:"evaluation_count"`
	ConvertedCount  int     `json:"converted_count"`
	ConversionRate  float64 `json:"conversion_rate"`
}

type Report struct {
	Items       []Item    `json:"items"`
	Metrics     Metrics   `json:"metrics"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Events produces the classified union: completed appointments plus
// standalone non-deposit sales, eligible ones only.
func Events(s Snapshot) []Event {
	var out []Event

	for _, ap := range s.Appointments {
		if booking.Status(ap.Status) != booking.StatusCompleted {
			continue
		}
		ev := EventFromAppointment(ap)
		if Eligible(ev) {
			out = append(out, ev)
		}
	}

	for _, tx := range s.Sales {
		if tx.AppointmentID != nil || tx.Kind == models.TransactionKindDeposit {
			continue
		}
		ev := EventFromSale(tx)
		if Eligible(ev) {
			out = append(out, ev)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// BuildItems classifies every eligible event: target date, return
// detection, status resolution, manual annotations.
func BuildItems(s Snapshot) []Item {
	events := Events(s)

	items := make([]Item, 0, len(events))
	for _, ev := range events {
		item := Item{
			Event:      ev,
			TargetDate: TargetDate(ev),
		}

		if ret := FindReturn(ev, s.Appointments); ret != nil {
			item.Returned = true
			id := ret.ID
			item.ReturnID = &id
		}

		var manual *models.FollowUpState
		if st, ok := s.States[ev.ID]; ok {
			manual = &st
			item.Archived = st.Archived
			item.Notes = st.Notes
			item.LastContactAt = st.LastContactAt
		}

		item.Status = ResolveStatus(item.Returned, manual)
		items = append(items, item)
	}

	return items
}

// ComputeMetrics scores the eligible base (events at least 40 days old)
// and the evaluation conversion funnel.
func ComputeMetrics(s Snapshot, items []Item) Metrics {
	m := Metrics{}

	for _, it := range items {
		age := s.Now.Sub(it.Event.Date)
		if age < time.Duration(FollowUpWindowDays)*24*time.Hour {
			continue
		}
		m.EligibleBase++
		if it.Returned {
			m.ReturnedCount++
		} else {
			m.PendingCount++
		}
	}

	if m.EligibleBase > 0 {
		m.ReturnRate = float64(m.ReturnedCount) / float64(m.EligibleBase)
	}

	m.EvaluationCount, m.ConvertedCount = conversionFunnel(s.Appointments)
	if m.EvaluationCount > 0 {
		m.ConversionRate = float64(m.ConvertedCount) / float64(m.EvaluationCount)
	}

	return m
}

// conversionFunnel counts clients with a completed evaluation appointment
// and the subset that later completed any other service.
func conversionFunnel(appointments []models.Appointment) (evaluations, converted int) {
	firstEval := make(map[string]time.Time)

	for _, ap := range appointments {
		if booking.Status(ap.Status) != booking.StatusCompleted {
			continue
		}
		if !IsEvaluation(ap.ServiceType, ap.Procedure) {
			continue
		}
		if prev, ok := firstEval[ap.ClientDocument]; !ok || ap.StartTime.Before(prev) {
			firstEval[ap.ClientDocument] = ap.StartTime
		}
	}

	for doc, evalAt := range firstEval {
		evaluations++
		for _, ap := range appointments {
			if ap.ClientDocument != doc {
				continue
			}
			if qualifiesAsConversion(ap, evalAt) {
				converted++
				break
			}
		}
	}
	return evaluations, converted
}

// Pending returns the active board: unarchived items, oldest target first.
func Pending(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Archived {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TargetDate.Before(out[j].TargetDate)
	})
	return out
}

// Archive returns archived items only, retrievable via the dedicated view.
func Archive(items []Item) []Item {
	out := make([]Item, 0)
	for _, it := range items {
		if it.Archived {
			out = append(out, it)
		}
	}
	return out
}

// Reactivation selects events older than 330 days for the win-back list.
// It bypasses the return logic entirely; only age and the archive flag
// matter.
func Reactivation(s Snapshot, items []Item) []Item {
	horizon := time.Duration(ReactivationDays) * 24 * time.Hour

	out := make([]Item, 0)
	for _, it := range items {
		if it.Archived {
			continue
		}
		if s.Now.Sub(it.Event.Date) > horizon {
			out = append(out, it)
		}
	}
	return out
}

// BuildReport is the single entry point the read path uses.
func BuildReport(s Snapshot) Report {
	items := BuildItems(s)
	return Report{
		Items:       items,
		Metrics:     ComputeMetrics(s, items),
		GeneratedAt: s.Now,
	}
}
