package retention

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dermaline/studio-scheduler/internal/models"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 10, 0, 0, 0, time.UTC)
}

func completedAppt(id uint, doc, serviceType, procedure string, start time.Time) models.Appointment {
	return models.Appointment{
		ID:             id,
		ClientDocument: doc,
		ServiceType:    serviceType,
		Procedure:      procedure,
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		Status:         "completed",
		Source:         models.SourceManual,
	}
}

// ===============================
// Elegibilidad
// ===============================

func TestEligible(t *testing.T) {
	base := day(2025, 1, 10)

	tests := []struct {
		name string
		ev   Event
		want bool
	}{
		{"eyebrow first service", Event{ServiceType: "Cejas", Procedure: "Microblading", Date: base}, true},
		{"eyebrow touch-up excluded", Event{ServiceType: "Cejas", Procedure: "Retoque", Date: base}, false},
		{"touch-up case insensitive", Event{ServiceType: "Cejas", Procedure: "retoque", Date: base}, false},
		{"laser always eligible", Event{ServiceType: "Depilación Láser", Procedure: "Axilas", Date: base}, true},
		{"laser touch-up still eligible", Event{ServiceType: "Laser", Procedure: "Retoque", Date: base}, true},
		{"unrelated service", Event{ServiceType: "Pestañas", Procedure: "Lifting", Date: base}, false},
		{"imported never qualifies", Event{ServiceType: "Cejas", Procedure: "Microblading", Date: base, Imported: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Eligible(tt.ev))
		})
	}
}

func TestServiceMatchingToleratesAccents(t *testing.T) {
	assert.True(t, IsLaserService("Depilación Láser"))
	assert.True(t, IsLaserService("depilacion laser"))
	assert.True(t, IsEyebrowService("Diseño de Cejas"))
	assert.True(t, IsEvaluation("Evaluación", ""))
	assert.True(t, IsEvaluation("", "evaluacion inicial"))
}

func TestTargetDate(t *testing.T) {
	ev := Event{Date: day(2025, 1, 10)}
	assert.Equal(t, day(2025, 2, 19), TargetDate(ev))
}

// ===============================
// Detección de retorno
// ===============================

func TestFindReturnGracePeriod(t *testing.T) {
	ev := Event{
		ID:             AppointmentEventID(1),
		Source:         SourceAppointment,
		ClientDocument: "12345678",
		ServiceType:    "Cejas",
		Date:           day(2025, 1, 10),
	}

	// Mismo día y día siguiente caen dentro de la gracia.
	sameDay := completedAppt(2, "12345678", "Cejas", "Retoque", day(2025, 1, 10))
	nextDay := completedAppt(3, "12345678", "Cejas", "Retoque", day(2025, 1, 11))
	assert.Nil(t, FindReturn(ev, []models.Appointment{sameDay, nextDay}))

	// Estrictamente después de la gracia sí cuenta.
	later := completedAppt(4, "12345678", "Cejas", "Retoque", day(2025, 2, 24))
	got := FindReturn(ev, []models.Appointment{sameDay, nextDay, later})
	require.NotNil(t, got)
	assert.Equal(t, uint(4), got.ID)
}

func TestFindReturnServiceRules(t *testing.T) {
	laserEv := Event{ID: "apt:1", Source: SourceAppointment, ClientDocument: "111", ServiceType: "Laser", Date: day(2025, 1, 10)}
	eyebrowEv := Event{ID: "apt:2", Source: SourceAppointment, ClientDocument: "222", ServiceType: "Cejas", Date: day(2025, 1, 10)}

	laserReturn := completedAppt(10, "111", "Laser", "", day(2025, 2, 1))
	eyebrowReturn := completedAppt(11, "111", "Cejas", "", day(2025, 2, 1))
	otherReturn := completedAppt(12, "111", "Pestañas", "", day(2025, 2, 1))

	// Evento láser acepta retorno láser o de cejas.
	assert.NotNil(t, FindReturn(laserEv, []models.Appointment{laserReturn}))
	assert.NotNil(t, FindReturn(laserEv, []models.Appointment{eyebrowReturn}))
	assert.Nil(t, FindReturn(laserEv, []models.Appointment{otherReturn}))

	// Evento de cejas solo acepta retorno de cejas.
	eyebrowOwn := completedAppt(13, "222", "Cejas", "", day(2025, 2, 1))
	laserOther := completedAppt(14, "222", "Laser", "", day(2025, 2, 1))
	assert.NotNil(t, FindReturn(eyebrowEv, []models.Appointment{eyebrowOwn}))
	assert.Nil(t, FindReturn(eyebrowEv, []models.Appointment{laserOther}))
}

func TestFindReturnAnyStatusAndEarliest(t *testing.T) {
	ev := Event{ID: "apt:1", Source: SourceAppointment, ClientDocument: "111", ServiceType: "Cejas", Date: day(2025, 1, 10)}

	scheduled := completedAppt(20, "111", "Cejas", "", day(2025, 3, 5))
	scheduled.Status = "scheduled"
	earlier := completedAppt(21, "111", "Cejas", "", day(2025, 2, 20))
	earlier.Status = "cancelled"

	got := FindReturn(ev, []models.Appointment{scheduled, earlier})
	require.NotNil(t, got)
	assert.Equal(t, uint(21), got.ID)
}

func TestFindReturnIgnoresOriginAppointment(t *testing.T) {
	origin := completedAppt(30, "111", "Cejas", "Microblading", day(2025, 1, 10))
	ev := EventFromAppointment(origin)

	// El propio evento nunca es su retorno, aunque otro campo cambie.
	assert.Nil(t, FindReturn(ev, []models.Appointment{origin}))
}

// ===============================
// Resolución de estado
// ===============================

func TestResolveStatus(t *testing.T) {
	assert.Equal(t, models.FollowUpPending, ResolveStatus(false, nil))
	assert.Equal(t, models.FollowUpContacted, ResolveStatus(false, &models.FollowUpState{Status: models.FollowUpContacted}))
	assert.Equal(t, models.FollowUpLost, ResolveStatus(false, &models.FollowUpState{Status: models.FollowUpLost}))

	// Retorno detectado manda sobre cualquier estado manual.
	assert.Equal(t, models.FollowUpScheduled, ResolveStatus(true, &models.FollowUpState{Status: models.FollowUpLost}))
	assert.Equal(t, models.FollowUpScheduled, ResolveStatus(true, nil))
}

// ===============================
// Reporte y métricas
// ===============================

func TestComputeMetricsReturnRate(t *testing.T) {
	now := day(2025, 6, 1)
	old := day(2025, 1, 1)

	var appointments []models.Appointment
	for i := uint(1); i <= 10; i++ {
		doc := "doc-" + string(rune('a'+i-1))
		appointments = append(appointments, completedAppt(i, doc, "Cejas", "Microblading", old))
	}
	// Tres clientas regresan fuera de la gracia.
	appointments = append(appointments,
		completedAppt(101, "doc-a", "Cejas", "Retoque", day(2025, 2, 15)),
		completedAppt(102, "doc-b", "Cejas", "Retoque", day(2025, 2, 20)),
		completedAppt(103, "doc-c", "Cejas", "Retoque", day(2025, 3, 1)),
	)

	s := Snapshot{Appointments: appointments, Now: now}
	report := BuildReport(s)

	assert.Equal(t, 10, report.Metrics.EligibleBase)
	assert.Equal(t, 3, report.Metrics.ReturnedCount)
	assert.Equal(t, 7, report.Metrics.PendingCount)
	assert.InDelta(t, 0.30, report.Metrics.ReturnRate, 0.0001)
}

func TestComputeMetricsYoungEventsExcludedFromBase(t *testing.T) {
	now := day(2025, 6, 1)

	appointments := []models.Appointment{
		completedAppt(1, "111", "Cejas", "Microblading", day(2025, 5, 20)),
	}
	s := Snapshot{Appointments: appointments, Now: now}
	report := BuildReport(s)

	// El evento aparece en el tablero pero aún no puntúa.
	require.Len(t, report.Items, 1)
	assert.Equal(t, 0, report.Metrics.EligibleBase)
}

func TestConversionFunnel(t *testing.T) {
	now := day(2025, 6, 1)

	appointments := []models.Appointment{
		completedAppt(1, "111", "Evaluación", "", day(2025, 1, 10)),
		completedAppt(2, "111", "Laser", "Sesión 1", day(2025, 1, 25)),
		completedAppt(3, "222", "Evaluación", "", day(2025, 2, 1)),
		// Una segunda evaluación no convierte.
		completedAppt(4, "222", "Evaluación", "", day(2025, 3, 1)),
	}
	s := Snapshot{Appointments: appointments, Now: now}
	m := ComputeMetrics(s, BuildItems(s))

	assert.Equal(t, 2, m.EvaluationCount)
	assert.Equal(t, 1, m.ConvertedCount)
	assert.InDelta(t, 0.5, m.ConversionRate, 0.0001)
}

func TestReactivation(t *testing.T) {
	now := day(2025, 12, 31)

	appointments := []models.Appointment{
		completedAppt(1, "111", "Cejas", "Microblading", day(2025, 1, 1)),  // >330 días
		completedAppt(2, "222", "Cejas", "Microblading", day(2025, 10, 1)), // recientes
	}
	s := Snapshot{Appointments: appointments, Now: now}
	items := BuildItems(s)

	got := Reactivation(s, items)
	require.Len(t, got, 1)
	assert.Equal(t, "111", got[0].Event.ClientDocument)
}

func TestArchivedItemsLeaveActiveViews(t *testing.T) {
	now := day(2025, 12, 31)
	origin := completedAppt(1, "111", "Cejas", "Microblading", day(2025, 1, 1))

	s := Snapshot{
		Appointments: []models.Appointment{origin},
		States: map[string]models.FollowUpState{
			AppointmentEventID(1): {SourceID: AppointmentEventID(1), Archived: true, Notes: "no insistir"},
		},
		Now: now,
	}
	items := BuildItems(s)

	assert.Empty(t, Pending(items))
	assert.Empty(t, Reactivation(s, items))

	archived := Archive(items)
	require.Len(t, archived, 1)
	assert.Equal(t, "no insistir", archived[0].Notes)
}

func TestEventsUnionSkipsDepositsAndLinkedSales(t *testing.T) {
	now := day(2025, 6, 1)
	aptID := uint(9)

	sales := []models.Transaction{
		{ID: "tx-1", ClientDocument: "111", ServiceType: "Cejas", OccurredAt: day(2025, 1, 5), Kind: models.TransactionKindClosing},
		{ID: "tx-2", ClientDocument: "222", ServiceType: "Cejas", OccurredAt: day(2025, 1, 6), Kind: models.TransactionKindDeposit},
		{ID: "tx-3", ClientDocument: "333", ServiceType: "Cejas", OccurredAt: day(2025, 1, 7), AppointmentID: &aptID},
	}
	s := Snapshot{Sales: sales, Now: now}

	events := Events(s)
	require.Len(t, events, 1)
	assert.Equal(t, "tx-1", events[0].ID)
	assert.Equal(t, SourceSale, events[0].Source)
}

func TestPendingSortedByTargetDate(t *testing.T) {
	now := day(2025, 6, 1)

	appointments := []models.Appointment{
		completedAppt(1, "111", "Cejas", "Microblading", day(2025, 3, 1)),
		completedAppt(2, "222", "Cejas", "Microblading", day(2025, 1, 1)),
	}
	s := Snapshot{Appointments: appointments, Now: now}
	pending := Pending(BuildItems(s))

	require.Len(t, pending, 2)
	assert.Equal(t, "222", pending[0].Event.ClientDocument)
	assert.Equal(t, "111", pending[1].Event.ClientDocument)
}
