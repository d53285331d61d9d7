// Package ages holds the date arithmetic for children's ages and
// inscription end dates.
package ages

import (
	"fmt"
	"time"
)

// WholeMonths is the completed calendar months between birth and now,
// clamped to zero. The month in progress doesn't count until the
// day-of-month anniversary has passed.
func WholeMonths(birth, now time.Time) int {
	months := (now.Year()-birth.Year())*12 + int(now.Month()) - int(birth.Month())
	if now.Day() < birth.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// Label renders an age the way the client list shows it: whole years from
// 12 months up, months below that, pluralized in Italian.
func Label(birth, now time.Time) string {
	months := WholeMonths(birth, now)
	if months >= 12 {
		years := months / 12
		if years == 1 {
			return "1 anno"
		}
		return fmt.Sprintf("%d anni", years)
	}
	if months == 1 {
		return "1 mese"
	}
	return fmt.Sprintf("%d mesi", months)
}

// InscriptionEnd advances a start date by whole calendar months, keeping
// the day-of-month when the target month has enough days.
func InscriptionEnd(start time.Time, months int) time.Time {
	return start.AddDate(0, months, 0)
}
