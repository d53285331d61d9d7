// Package scheduling derives a workshop series' repetition count, end date
// and short code. Everything here is pure: same inputs, same outputs, and
// nothing is persisted; callers save the derived fields themselves.
package scheduling

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bottegalab/gestionale/internal/models"
)

var ErrNegativeDuration = errors.New("la durata in mesi deve essere positiva")

// Weekly repetitions per fixed-cadence workshop type.
var fixedRepetitions = map[models.WorkshopType]int{
	models.TypeOpenDay: 1,
	models.TypeEvento:  1,
	models.TypeUnMese:  4,
	models.TypeDueMesi: 8,
	models.TypeTreMesi: 12,
}

// Series is the derived shape of a workshop run.
type Series struct {
	Repetitions int
	EndDate     time.Time
}

// Repetitions returns the number of weekly sessions for a workshop type.
// Manual-duration types (Scolastico, Campus) assume a weekly cadence over
// durationInMonths; zero means the duration isn't set yet, negative is a
// caller error.
func Repetitions(t models.WorkshopType, durationInMonths int) (int, error) {
	if n, ok := fixedRepetitions[t]; ok {
		return n, nil
	}
	if t.ManualDuration() {
		if durationInMonths < 0 {
			return 0, ErrNegativeDuration
		}
		return durationInMonths * 4, nil
	}
	return 0, nil
}

// ComputeSeries derives the series for a workshop. A zero start date yields
// an incomplete series (zero end date) rather than an error: the caller
// treats it as "not scheduled yet".
func ComputeSeries(t models.WorkshopType, startDate time.Time, durationInMonths int) (Series, error) {
	reps, err := Repetitions(t, durationInMonths)
	if err != nil {
		return Series{}, err
	}
	if startDate.IsZero() {
		return Series{Repetitions: reps}, nil
	}
	return Series{Repetitions: reps, EndDate: EndDate(startDate, reps)}, nil
}

// EndDate is the date of the last weekly occurrence: start + (reps-1) weeks.
// With zero repetitions the series collapses onto its start date.
func EndDate(start time.Time, repetitions int) time.Time {
	if repetitions <= 0 {
		return start
	}
	return start.AddDate(0, 0, (repetitions-1)*7)
}

// ShortName condenses a location name to its first 4 consonants, uppercased.
// Only ASCII letters count; vowels, accents, spaces and punctuation are
// stripped before truncation.
func ShortName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if r < 'A' || r > 'Z' {
			continue
		}
		switch r {
		case 'A', 'E', 'I', 'O', 'U':
			continue
		}
		b.WriteRune(r)
		if b.Len() == 4 {
			break
		}
	}
	return b.String()
}

// Code builds the short machine-readable workshop code:
// {4 consonants of location}-{3 letters of weekday}-{HH:mm}.
func Code(locationName, dayOfWeek, startTime string) string {
	day := []rune(strings.ToUpper(dayOfWeek))
	if len(day) > 3 {
		day = day[:3]
	}
	return fmt.Sprintf("%s-%s-%s", ShortName(locationName), string(day), startTime)
}

// EndTime derives the end of a session as start + 1 hour, wrapping at
// midnight. An unparsable start is returned as-is.
func EndTime(startTime string) string {
	t, err := time.Parse("15:04", startTime)
	if err != nil {
		return startTime
	}
	return t.Add(time.Hour).Format("15:04")
}
