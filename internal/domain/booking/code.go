package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Booking codes are MMYY-NNN, where MMYY comes from the appointment's own
// start date and NNN is a 3-digit sequence within that month.

func CodePrefix(start time.Time) string {
	return fmt.Sprintf("%02d%02d-", int(start.Month()), start.Year()%100)
}

// NextCode derives the next sequential code for the month of start.
// Malformed suffixes among existing codes are ignored. The read-compute
// step is pure; assigning the result without a server-side counter can
// race under concurrent creation in the same month.
func NextCode(start time.Time, existing []string) string {
	prefix := CodePrefix(start)

	max := 0
	for _, code := range existing {
		if !strings.HasPrefix(code, prefix) {
			continue
		}
		n, err := strconv.Atoi(code[len(prefix):])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s%03d", prefix, max+1)
}
