package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bottegalab/gestionale/internal/ages"
	"github.com/bottegalab/gestionale/internal/db"
	"github.com/bottegalab/gestionale/internal/models"
	"github.com/bottegalab/gestionale/internal/services"
	"github.com/bottegalab/gestionale/internal/store"
)

// checkParent enforces the tagged-union invariant: the individual field set
// or the company field set, selected by clientType, never a mix of halves.
func checkParent(p models.Parent) []string {
	var problems []string
	switch p.ClientType {
	case models.ClientIndividual:
		if p.Individual.Name == "" || p.Individual.Surname == "" {
			problems = append(problems, "nome e cognome sono obbligatori per una persona fisica")
		}
		if p.Company != (models.CompanyDetails{}) {
			problems = append(problems, "i dati aziendali non sono ammessi per una persona fisica")
		}
	case models.ClientCompany:
		if p.Company.CompanyName == "" {
			problems = append(problems, "la ragione sociale è obbligatoria per una persona giuridica")
		}
		if p.Individual != (models.IndividualDetails{}) {
			problems = append(problems, "i dati anagrafici non sono ammessi per una persona giuridica")
		}
	default:
		problems = append(problems, "tipo cliente non valido")
	}
	switch p.Status {
	case models.StatusAttivo, models.StatusSospeso, models.StatusCessato, models.StatusProspect:
	default:
		problems = append(problems, "stato cliente non valido")
	}
	if !isValidEmail(p.Contact.Email) {
		problems = append(problems, "email non valida")
	}
	return problems
}

func ParentsList(w http.ResponseWriter, r *http.Request) {
	listAll[models.Parent](w)
}

func ParentCreate(w http.ResponseWriter, r *http.Request) {
	var p models.Parent
	if !readJSON(w, r, &p) {
		return
	}
	if problems := checkParent(p); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	p.ID = ""
	createRecord(w, &p)
}

func ParentUpdate(w http.ResponseWriter, r *http.Request) {
	existing, id, ok := loadForUpdate[models.Parent](w, r)
	if !ok {
		return
	}
	var p models.Parent
	if !readJSON(w, r, &p) {
		return
	}
	if problems := checkParent(p); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	p.ID = id
	p.CreatedAt = existing.CreatedAt
	saveRecord(w, &p)
}

// ParentDelete removes the parent and its whole subtree (children and
// their registrations) in one transaction. The response echoes the plan so
// the client can show what went with it.
func ParentDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	plan, err := services.PlanParentDelete(db.Conn(), id)
	if err != nil {
		storeError(w, "plan parent delete", err)
		return
	}
	if err := services.ExecuteParentDelete(db.Conn(), plan); err != nil {
		storeError(w, "parent delete", err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// childView decorates a child with its display age ("6 anni", "11 mesi").
type childView struct {
	models.Child
	AgeLabel string `json:"ageLabel"`
}

func ChildrenList(w http.ResponseWriter, r *http.Request) {
	children, err := store.List[models.Child](db.Conn())
	if err != nil {
		storeError(w, "list children", err)
		return
	}
	now := time.Now()
	views := make([]childView, 0, len(children))
	for _, c := range children {
		views = append(views, childView{Child: c, AgeLabel: ages.Label(c.BirthDate, now)})
	}
	writeJSON(w, http.StatusOK, views)
}

func checkChild(c models.Child) []string {
	var problems []string
	if c.Name == "" {
		problems = append(problems, "il nome è obbligatorio")
	}
	if c.ParentID == "" {
		problems = append(problems, "il genitore è obbligatorio")
	} else if _, err := store.Get[models.Parent](db.Conn(), c.ParentID); err != nil {
		problems = append(problems, "il genitore indicato non esiste")
	}
	if c.BirthDate.IsZero() {
		problems = append(problems, "la data di nascita è obbligatoria")
	}
	return problems
}

func ChildCreate(w http.ResponseWriter, r *http.Request) {
	var c models.Child
	if !readJSON(w, r, &c) {
		return
	}
	if problems := checkChild(c); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	c.ID = ""
	createRecord(w, &c)
}

func ChildUpdate(w http.ResponseWriter, r *http.Request) {
	existing, id, ok := loadForUpdate[models.Child](w, r)
	if !ok {
		return
	}
	var c models.Child
	if !readJSON(w, r, &c) {
		return
	}
	if problems := checkChild(c); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	c.ID = id
	c.CreatedAt = existing.CreatedAt
	saveRecord(w, &c)
}

func ChildDelete(w http.ResponseWriter, r *http.Request) {
	if err := services.DeleteChild(db.Conn(), chi.URLParam(r, "id")); err != nil {
		storeError(w, "child delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
