package schedule

import (
	"time"

	"github.com/dermaline/studio-scheduler/internal/httperr"
	"github.com/dermaline/studio-scheduler/internal/models"
)

// Fallback viewport when no day is open.
const (
	DefaultStartHour = 9
	DefaultEndHour   = 18
)

type Hours struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Week is a pure lookup over the configured weekly schedule.
// Weekdays are ISO (1=Monday .. 7=Sunday).
type Week struct {
	days map[int]models.WeeklySchedule
}

func NewWeek(rows []models.WeeklySchedule) Week {
	days := make(map[int]models.WeeklySchedule, len(rows))
	for _, r := range rows {
		days[r.Weekday] = r
	}
	return Week{days: days}
}

// ISOWeekday maps time.Weekday (Sunday=0) to ISO numbering.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func (w Week) IsOpen(weekday int) bool {
	d, ok := w.days[weekday]
	return ok && d.Open
}

func (w Week) HoursFor(weekday int) Hours {
	d, ok := w.days[weekday]
	if !ok || !d.Open {
		return Hours{}
	}
	return Hours{Start: d.StartHour, End: d.EndHour}
}

// IsWithinLunch reports whether a whole hour falls inside the lunch
// blackout of the given weekday.
func (w Week) IsWithinLunch(weekday int, hour int) bool {
	d, ok := w.days[weekday]
	if !ok || !d.Open || !d.Lunch {
		return false
	}
	return hour >= d.LunchStart && hour < d.LunchEnd
}

// SpanTouchesLunch reports whether any hour covered by [start, end)
// falls inside the lunch blackout of the start's weekday.
func (w Week) SpanTouchesLunch(start, end time.Time) bool {
	weekday := ISOWeekday(start)

	lastHour := end.Hour()
	if end.Minute() == 0 && end.Second() == 0 {
		lastHour--
	}

	for h := start.Hour(); h <= lastHour; h++ {
		if w.IsWithinLunch(weekday, h) {
			return true
		}
	}
	return false
}

// Covers reports whether [start, end) fits inside the open hours of the
// start's weekday.
func (w Week) Covers(start, end time.Time) bool {
	weekday := ISOWeekday(start)
	d, ok := w.days[weekday]
	if !ok || !d.Open {
		return false
	}

	if start.Hour() < d.StartHour {
		return false
	}

	endHour := end.Hour()
	if end.Minute() > 0 || end.Second() > 0 {
		endHour++
	}
	return endHour <= d.EndHour
}

// GlobalBounds sizes the calendar viewport: min start over open days,
// max end over open days, 09-18 when nothing is open.
func (w Week) GlobalBounds() Hours {
	bounds := Hours{}
	found := false

	for _, d := range w.days {
		if !d.Open {
			continue
		}
		if !found {
			bounds = Hours{Start: d.StartHour, End: d.EndHour}
			found = true
			continue
		}
		if d.StartHour < bounds.Start {
			bounds.Start = d.StartHour
		}
		if d.EndHour > bounds.End {
			bounds.End = d.EndHour
		}
	}

	if !found {
		return Hours{Start: DefaultStartHour, End: DefaultEndHour}
	}
	return bounds
}

// ValidateDay checks the invariants of one configured weekday.
func ValidateDay(d models.WeeklySchedule) error {
	if d.Weekday < 1 || d.Weekday > 7 {
		return httperr.ErrBusiness("invalid_weekday")
	}
	if !d.Open {
		return nil
	}
	if d.StartHour < 0 || d.EndHour > 24 || d.StartHour >= d.EndHour {
		return httperr.ErrBusiness("invalid_hours")
	}
	if d.Lunch {
		if d.LunchStart < d.StartHour || d.LunchStart >= d.LunchEnd || d.LunchEnd > d.EndHour {
			return httperr.ErrBusiness("invalid_lunch")
		}
	}
	return nil
}
