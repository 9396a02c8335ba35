package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dermaline/studio-scheduler/internal/httperr"
	"github.com/dermaline/studio-scheduler/internal/models"
)

func TestValidateInterval(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateInterval(start, start.Add(time.Hour)))
	assert.Error(t, ValidateInterval(start, start))
	assert.Error(t, ValidateInterval(start, start.Add(-time.Hour)))
}

func TestComplete(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Complete(ap, now, 45))

	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.ActualDurationMin)
	assert.Equal(t, 45, *ap.ActualDurationMin)
	require.NotNil(t, ap.CompletedAt)
	assert.Equal(t, now, *ap.CompletedAt)
}

func TestCompleteRequiresPositiveDuration(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	for _, minutes := range []int{0, -10} {
		ap := &models.Appointment{Status: string(StatusScheduled)}
		err := Complete(ap, now, minutes)
		require.Error(t, err)
		assert.Equal(t, "invalid_actual_duration", httperr.BusinessCode(err))
		assert.Equal(t, string(StatusScheduled), ap.Status)
	}
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	for _, status := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		t.Run(string(status), func(t *testing.T) {
			assert.True(t, IsTerminal(status))

			ap := &models.Appointment{Status: string(status)}
			assert.Error(t, Complete(ap, now, 30))
			assert.Error(t, Cancel(ap, now))
			assert.Error(t, SetReconfirmation(ap, ReconfirmationConfirmed))

			if status != StatusNoShow {
				assert.Error(t, MarkNoShow(ap, now))
			}
		})
	}
}

func TestMarkNoShowIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, MarkNoShow(ap, now))
	require.NotNil(t, ap.NoShowAt)
	first := *ap.NoShowAt

	// La segunda marcación no toca nada.
	later := now.Add(time.Hour)
	require.NoError(t, MarkNoShow(ap, later))
	assert.Equal(t, first, *ap.NoShowAt)
	assert.Equal(t, string(StatusNoShow), ap.Status)
}

func TestCancel(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)
}

func TestSetReconfirmation(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusScheduled)}

	require.NoError(t, SetReconfirmation(ap, ReconfirmationConfirmed))
	assert.Equal(t, string(ReconfirmationConfirmed), ap.Reconfirmation)

	// El flag puede ir y volver mientras siga agendada.
	require.NoError(t, SetReconfirmation(ap, ReconfirmationRejected))
	assert.Equal(t, string(ReconfirmationRejected), ap.Reconfirmation)

	require.NoError(t, SetReconfirmation(ap, ReconfirmationUnset))
	assert.Equal(t, "", ap.Reconfirmation)

	assert.Error(t, SetReconfirmation(ap, Reconfirmation("maybe")))
}
