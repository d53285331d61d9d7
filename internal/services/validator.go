// Package services holds the business operations that sit between the
// HTTP handlers and the store: registration validation, cascade deletes,
// campaign rendering and renewal reminders.
package services

import (
	"fmt"

	"github.com/bottegalab/gestionale/internal/models"
)

// RegistrationProblem is one reason a proposed registration is inadmissible.
type RegistrationProblem struct {
	WorkshopID string `json:"workshopId"`
	Code       string `json:"code"` // "duplicate" | "capacity"
	Message    string `json:"message"`
}

// ValidateNewRegistrations checks whether a child can be registered into
// each target workshop, against a snapshot of the existing registrations.
// The batch itself counts too: a workshop listed twice is a duplicate, and
// an admitted target takes up a slot for the targets after it.
// Every problem is collected and returned, not just the first, so the
// operator sees everything wrong in one pass. An empty result means all
// targets are admissible.
//
// The check is only as fresh as the snapshot: two near-simultaneous
// registrations can both pass and jointly exceed capacity. Accepted for a
// single-operator tool.
func ValidateNewRegistrations(childID string, targets []models.Workshop, locations map[string]models.Location, existing []models.Registration) []RegistrationProblem {
	countByWorkshop := make(map[string]int)
	registered := make(map[string]bool) // workshopID → child already in
	for _, r := range existing {
		countByWorkshop[r.WorkshopID]++
		if r.ChildID == childID {
			registered[r.WorkshopID] = true
		}
	}

	var problems []RegistrationProblem
	inBatch := make(map[string]bool) // workshopID already seen in this batch
	for _, w := range targets {
		if registered[w.ID] || inBatch[w.ID] {
			problems = append(problems, RegistrationProblem{
				WorkshopID: w.ID,
				Code:       "duplicate",
				Message:    fmt.Sprintf("il bambino è già iscritto al laboratorio %q", w.Name),
			})
			continue
		}
		inBatch[w.ID] = true
		loc, ok := locations[w.LocationID]
		if !ok {
			problems = append(problems, RegistrationProblem{
				WorkshopID: w.ID,
				Code:       "capacity",
				Message:    fmt.Sprintf("il laboratorio %q non ha un luogo assegnato", w.Name),
			})
			continue
		}
		if countByWorkshop[w.ID] >= loc.Capacity {
			problems = append(problems, RegistrationProblem{
				WorkshopID: w.ID,
				Code:       "capacity",
				Message:    fmt.Sprintf("capienza massima raggiunta per il laboratorio %q (%d posti)", w.Name, loc.Capacity),
			})
			continue
		}
		// An admitted target occupies a slot for the rest of the batch.
		countByWorkshop[w.ID]++
	}
	return problems
}
