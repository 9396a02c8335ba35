package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dermaline/studio-scheduler/internal/models"
)

func slot(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return ts
}

func existingAt(t *testing.T, id uint, specialist, start, end, status string) models.Appointment {
	t.Helper()
	return models.Appointment{
		ID:         id,
		Specialist: specialist,
		StartTime:  slot(t, start),
		EndTime:    slot(t, end),
		Status:     status,
	}
}

func TestFindConflictOverlap(t *testing.T) {
	existing := []models.Appointment{
		existingAt(t, 1, "Karla", "2025-06-02 10:00", "2025-06-02 11:00", "scheduled"),
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"identical interval", "2025-06-02 10:00", "2025-06-02 11:00", true},
		{"starts inside", "2025-06-02 10:30", "2025-06-02 11:30", true},
		{"ends inside", "2025-06-02 09:30", "2025-06-02 10:30", true},
		{"fully contains", "2025-06-02 09:00", "2025-06-02 12:00", true},
		{"touches end boundary", "2025-06-02 11:00", "2025-06-02 12:00", false},
		{"touches start boundary", "2025-06-02 09:00", "2025-06-02 10:00", false},
		{"disjoint", "2025-06-02 14:00", "2025-06-02 15:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Candidate{Specialist: "Karla", Start: slot(t, tt.start), End: slot(t, tt.end)}
			got := FindConflict(c, existing, 0)
			if tt.want {
				assert.NotNil(t, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestFindConflictDifferentSpecialist(t *testing.T) {
	existing := []models.Appointment{
		existingAt(t, 1, "Karla", "2025-06-02 10:00", "2025-06-02 11:00", "scheduled"),
	}

	c := Candidate{Specialist: "Rosa", Start: slot(t, "2025-06-02 10:00"), End: slot(t, "2025-06-02 11:00")}
	assert.Nil(t, FindConflict(c, existing, 0))
}

func TestFindConflictCancelledStillBlocks(t *testing.T) {
	existing := []models.Appointment{
		existingAt(t, 1, "Karla", "2025-06-02 10:00", "2025-06-02 11:00", "cancelled"),
		existingAt(t, 2, "Karla", "2025-06-02 15:00", "2025-06-02 16:00", "noshow"),
	}

	c := Candidate{Specialist: "Karla", Start: slot(t, "2025-06-02 10:30"), End: slot(t, "2025-06-02 11:30")}
	require.NotNil(t, FindConflict(c, existing, 0))

	c = Candidate{Specialist: "Karla", Start: slot(t, "2025-06-02 15:30"), End: slot(t, "2025-06-02 16:30")}
	require.NotNil(t, FindConflict(c, existing, 0))
}

func TestFindConflictExcludesSelf(t *testing.T) {
	existing := []models.Appointment{
		existingAt(t, 7, "Karla", "2025-06-02 10:00", "2025-06-02 11:00", "scheduled"),
	}

	c := Candidate{Specialist: "Karla", Start: slot(t, "2025-06-02 10:15"), End: slot(t, "2025-06-02 11:15")}
	assert.NotNil(t, FindConflict(c, existing, 0))
	assert.Nil(t, FindConflict(c, existing, 7))
}

func TestFindConflictReturnsFirstMatch(t *testing.T) {
	existing := []models.Appointment{
		existingAt(t, 1, "Karla", "2025-06-02 09:00", "2025-06-02 10:30", "scheduled"),
		existingAt(t, 2, "Karla", "2025-06-02 10:00", "2025-06-02 11:00", "scheduled"),
	}

	c := Candidate{Specialist: "Karla", Start: slot(t, "2025-06-02 10:00"), End: slot(t, "2025-06-02 11:00")}
	got := FindConflict(c, existing, 0)
	require.NotNil(t, got)
	assert.Equal(t, uint(1), got.ID)
}
