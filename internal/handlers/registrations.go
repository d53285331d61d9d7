package handlers

import (
	"net/http"
	"time"

	"github.com/bottegalab/gestionale/internal/db"
	"github.com/bottegalab/gestionale/internal/models"
	"github.com/bottegalab/gestionale/internal/services"
	"github.com/bottegalab/gestionale/internal/store"
)

func RegistrationsList(w http.ResponseWriter, r *http.Request) {
	listAll[models.Registration](w)
}

// registrationRequest enrolls one child into one or more workshops at once.
type registrationRequest struct {
	ChildID     string   `json:"childId" validate:"required"`
	WorkshopIDs []string `json:"workshopIds" validate:"required,min=1"`
}

// RegistrationCreate validates the whole batch against a snapshot of the
// current registrations (duplicates and capacity, all problems reported
// together) and only then writes. Nothing is persisted when any target
// fails: the operator fixes the form and retries.
func RegistrationCreate(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "indicare il bambino e almeno un laboratorio")
		return
	}

	g := db.Conn()
	if _, err := store.Get[models.Child](g, req.ChildID); err != nil {
		writeError(w, http.StatusBadRequest, "il bambino indicato non esiste")
		return
	}

	targets := make([]models.Workshop, 0, len(req.WorkshopIDs))
	for _, id := range req.WorkshopIDs {
		ws, err := store.Get[models.Workshop](g, id)
		if err != nil {
			writeError(w, http.StatusBadRequest, "il laboratorio indicato non esiste")
			return
		}
		targets = append(targets, ws)
	}

	locs, err := store.List[models.Location](g)
	if err != nil {
		storeError(w, "list locations", err)
		return
	}
	locByID := make(map[string]models.Location, len(locs))
	for _, l := range locs {
		locByID[l.ID] = l
	}

	existing, err := store.List[models.Registration](g)
	if err != nil {
		storeError(w, "list registrations", err)
		return
	}

	if problems := services.ValidateNewRegistrations(req.ChildID, targets, locByID, existing); len(problems) > 0 {
		msgs := make([]string, 0, len(problems))
		for _, p := range problems {
			msgs = append(msgs, p.Message)
		}
		writeError(w, http.StatusUnprocessableEntity, "iscrizione non consentita", msgs...)
		return
	}

	now := time.Now()
	created := make([]models.Registration, 0, len(targets))
	for _, ws := range targets {
		reg := models.Registration{ChildID: req.ChildID, WorkshopID: ws.ID, RegistrationDate: now}
		if err := store.Add(g, &reg); err != nil {
			storeError(w, "add registration", err)
			return
		}
		created = append(created, reg)
	}
	writeJSON(w, http.StatusCreated, created)
}

func RegistrationDelete(w http.ResponseWriter, r *http.Request) {
	removeRecord[models.Registration](w, r)
}
