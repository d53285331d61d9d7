package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bottegalab/gestionale/internal/db"
	"github.com/bottegalab/gestionale/internal/models"
	"github.com/bottegalab/gestionale/internal/scheduling"
	"github.com/bottegalab/gestionale/internal/services"
	"github.com/bottegalab/gestionale/internal/store"
)

// --- Suppliers ---

func SuppliersList(w http.ResponseWriter, r *http.Request) {
	listAll[models.Supplier](w)
}

func checkSupplier(s models.Supplier) []string {
	var problems []string
	if s.Name == "" {
		problems = append(problems, "il nome è obbligatorio")
	}
	if s.Email != "" && !isValidEmail(s.Email) {
		problems = append(problems, "l'email non è valida")
	}
	return problems
}

func SupplierCreate(w http.ResponseWriter, r *http.Request) {
	var s models.Supplier
	if !readJSON(w, r, &s) {
		return
	}
	if problems := checkSupplier(s); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	s.ID = ""
	createRecord(w, &s)
}

func SupplierUpdate(w http.ResponseWriter, r *http.Request) {
	existing, id, ok := loadForUpdate[models.Supplier](w, r)
	if !ok {
		return
	}
	var s models.Supplier
	if !readJSON(w, r, &s) {
		return
	}
	if problems := checkSupplier(s); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	s.ID = id
	s.CreatedAt = existing.CreatedAt
	saveRecord(w, &s)
}

func SupplierDelete(w http.ResponseWriter, r *http.Request) {
	err := services.DeleteSupplier(db.Conn(), chi.URLParam(r, "id"))
	if errors.Is(err, services.ErrSupplierHasLocations) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		storeError(w, "delete supplier", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Locations ---

func LocationsList(w http.ResponseWriter, r *http.Request) {
	listAll[models.Location](w)
}

func checkLocation(l models.Location) []string {
	var problems []string
	if l.Name == "" {
		problems = append(problems, "il nome è obbligatorio")
	}
	if l.Capacity <= 0 {
		problems = append(problems, "la capienza deve essere positiva")
	}
	if l.SupplierID != "" {
		if _, err := store.Get[models.Supplier](db.Conn(), l.SupplierID); err != nil {
			problems = append(problems, "il fornitore indicato non esiste")
		}
	}
	return problems
}

func LocationCreate(w http.ResponseWriter, r *http.Request) {
	var l models.Location
	if !readJSON(w, r, &l) {
		return
	}
	if problems := checkLocation(l); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	if l.ShortName == "" {
		l.ShortName = scheduling.ShortName(l.Name)
	}
	l.ID = ""
	createRecord(w, &l)
}

func LocationUpdate(w http.ResponseWriter, r *http.Request) {
	existing, id, ok := loadForUpdate[models.Location](w, r)
	if !ok {
		return
	}
	var l models.Location
	if !readJSON(w, r, &l) {
		return
	}
	if problems := checkLocation(l); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	if l.ShortName == "" {
		l.ShortName = scheduling.ShortName(l.Name)
	}
	l.ID = id
	l.CreatedAt = existing.CreatedAt
	saveRecord(w, &l)
}

func LocationDelete(w http.ResponseWriter, r *http.Request) {
	err := services.DeleteLocation(db.Conn(), chi.URLParam(r, "id"))
	if errors.Is(err, services.ErrLocationHasWorkshops) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		storeError(w, "delete location", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
