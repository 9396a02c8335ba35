package handlers

import (
	"time"

	"github.com/dermaline/studio-scheduler/internal/timezone"
)

// All request dates and times are interpreted in the studio's timezone.

func parseDate(tz string, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(tz),
	)
}

func parseDateTime(tz string, dateStr string, timeStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		timezone.Location(tz),
	)
}
