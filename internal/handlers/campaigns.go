package handlers

import (
	"net/http"

	"github.com/bottegalab/gestionale/internal/db"
	"github.com/bottegalab/gestionale/internal/mail"
	"github.com/bottegalab/gestionale/internal/models"
	"github.com/bottegalab/gestionale/internal/services"
	"github.com/bottegalab/gestionale/internal/store"
)

// --- Campaigns ---

func CampaignsList(w http.ResponseWriter, r *http.Request) {
	listAll[models.Campaign](w)
}

func checkCampaign(c models.Campaign) []string {
	var problems []string
	if c.Name == "" {
		problems = append(problems, "il nome è obbligatorio")
	}
	switch c.Type {
	case models.CampaignSollecito, models.CampaignSviluppo:
	default:
		problems = append(problems, "tipo di campagna non valido")
	}
	if c.Subject == "" {
		problems = append(problems, "l'oggetto è obbligatorio")
	}
	if c.Body == "" {
		problems = append(problems, "il testo è obbligatorio")
	}
	return problems
}

func CampaignCreate(w http.ResponseWriter, r *http.Request) {
	var c models.Campaign
	if !readJSON(w, r, &c) {
		return
	}
	if problems := checkCampaign(c); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	c.ID = ""
	createRecord(w, &c)
}

func CampaignUpdate(w http.ResponseWriter, r *http.Request) {
	existing, id, ok := loadForUpdate[models.Campaign](w, r)
	if !ok {
		return
	}
	var c models.Campaign
	if !readJSON(w, r, &c) {
		return
	}
	if problems := checkCampaign(c); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	c.ID = id
	c.CreatedAt = existing.CreatedAt
	saveRecord(w, &c)
}

func CampaignDelete(w http.ResponseWriter, r *http.Request) {
	removeRecord[models.Campaign](w, r)
}

type campaignSendResult struct {
	Sent  int    `json:"sent"`
	Error string `json:"error,omitempty"`
}

// CampaignSend delivers a campaign to its audience. Per-recipient failures
// do not abort the run; the response reports what went through.
func CampaignSend(mailer mail.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, _, ok := loadForUpdate[models.Campaign](w, r)
		if !ok {
			return
		}
		parents, err := store.List[models.Parent](db.Conn())
		if err != nil {
			storeError(w, "list parents", err)
			return
		}
		sent, sendErr := services.SendCampaign(mailer, c, parents)
		res := campaignSendResult{Sent: sent}
		if sendErr != nil {
			res.Error = sendErr.Error()
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// --- Reminder settings ---

func ReminderSettingsList(w http.ResponseWriter, r *http.Request) {
	listAll[models.ReminderSetting](w)
}

func checkReminderSetting(s models.ReminderSetting) []string {
	var problems []string
	if s.Name == "" {
		problems = append(problems, "il nome è obbligatorio")
	}
	if s.PreWarningDays <= 0 {
		problems = append(problems, "i giorni di preavviso devono essere positivi")
	}
	if s.Cadence <= 0 {
		problems = append(problems, "la cadenza deve essere positiva")
	}
	return problems
}

func ReminderSettingCreate(w http.ResponseWriter, r *http.Request) {
	var s models.ReminderSetting
	if !readJSON(w, r, &s) {
		return
	}
	if problems := checkReminderSetting(s); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	s.ID = ""
	createRecord(w, &s)
}

func ReminderSettingUpdate(w http.ResponseWriter, r *http.Request) {
	existing, id, ok := loadForUpdate[models.ReminderSetting](w, r)
	if !ok {
		return
	}
	var s models.ReminderSetting
	if !readJSON(w, r, &s) {
		return
	}
	if problems := checkReminderSetting(s); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "dati non validi", problems...)
		return
	}
	s.ID = id
	s.CreatedAt = existing.CreatedAt
	saveRecord(w, &s)
}

func ReminderSettingDelete(w http.ResponseWriter, r *http.Request) {
	removeRecord[models.ReminderSetting](w, r)
}
