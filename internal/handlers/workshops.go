package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/bottegalab/gestionale/internal/db"
	"github.com/bottegalab/gestionale/internal/models"
	"github.com/bottegalab/gestionale/internal/scheduling"
	"github.com/bottegalab/gestionale/internal/services"
	"github.com/bottegalab/gestionale/internal/store"
)

func WorkshopsList(w http.ResponseWriter, r *http.Request) {
	listAll[models.Workshop](w)
}

// deriveWorkshop fills the computed fields: series end date, short code and
// session end time. The derived values are persisted with the record, never
// recomputed on read, matching how the rest of the app treats them.
func deriveWorkshop(ws *models.Workshop) []string {
	var problems []string

	loc, err := store.Get[models.Location](db.Conn(), ws.LocationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			problems = append(problems, "il luogo indicato non esiste")
		} else {
			problems = append(problems, "errore nel caricamento del luogo")
		}
		return problems
	}

	if ws.Type.ManualDuration() && ws.DurationInMonths <= 0 {
		problems = append(problems, "la durata in mesi deve essere positiva per i tipi Scolastico e Campus")
		return problems
	}
	series, err := scheduling.ComputeSeries(ws.Type, ws.StartDate, ws.DurationInMonths)
	if err != nil {
		problems = append(problems, err.Error())
		return problems
	}
	ws.EndDate = series.EndDate
	ws.Code = scheduling.Code(loc.Name, ws.DayOfWeek, ws.StartTime)
	if ws.EndTime == "" {
		ws.EndTime = scheduling.EndTime(ws.StartTime)
	}
	return nil
}

func checkWorkshop(ws models.Workshop) []string {
	var problems []string
	if ws.Name == "" {
		problems = append(problems, "il nome è obbligatorio")
	}
	switch ws.Type {
	case models.TypeOpenDay, models.TypeEvento, models.TypeUnMese, models.TypeDueMesi, models.TypeTreMesi, models.TypeScolastico, models.TypeCampus:
	default:
		problems = append(problems, "tipo laboratorio non valido")
	}
	if !ws.EndDate.IsZero() && ws.EndDate.Before(ws.StartDate) {
		problems = append(problems, "la data di fine precede la data di inizio")
	}
	if ws.Price.IsNegative() {
		problems = append(problems, "il prezzo non può essere negativo")
	}
	return problems
}

func WorkshopCreate(w http.ResponseWriter, r *http.Request) {
	var ws models.Workshop
	if !readJSON(w, r, &ws) {
		return
	}
	if problems := checkWorkshop(ws); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	if problems := deriveWorkshop(&ws); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	ws.ID = ""
	createRecord(w, &ws)
}

func WorkshopUpdate(w http.ResponseWriter, r *http.Request) {
	existing, id, ok := loadForUpdate[models.Workshop](w, r)
	if !ok {
		return
	}
	var ws models.Workshop
	if !readJSON(w, r, &ws) {
		return
	}
	if problems := checkWorkshop(ws); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	if problems := deriveWorkshop(&ws); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	ws.ID = id
	ws.CreatedAt = existing.CreatedAt
	saveRecord(w, &ws)
}

func WorkshopDelete(w http.ResponseWriter, r *http.Request) {
	if err := services.DeleteWorkshop(db.Conn(), chi.URLParam(r, "id")); err != nil {
		storeError(w, "workshop delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// QR serves a PNG QR code of the public registration link for a workshop,
// looked up by its short code, for posters and flyers.
func QR(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		http.NotFound(w, r)
		return
	}
	var ws models.Workshop
	if err := db.Conn().Where("code = ?", code).First(&ws).Error; err != nil {
		http.NotFound(w, r)
		return
	}

	url := "http://" + r.Host + "/iscrizione?laboratorio=" + ws.ID
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "failed to generate qr", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
