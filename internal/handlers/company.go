package handlers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/bottegalab/gestionale/internal/db"
	"github.com/bottegalab/gestionale/internal/models"
)

// The company profile is a singleton row with a fixed id; GET returns an
// empty profile until the operator fills it in.
const companyProfileID = "main"

func CompanyProfileGet(w http.ResponseWriter, r *http.Request) {
	var profile models.CompanyProfile
	err := db.Conn().First(&profile, "id = ?", companyProfileID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		storeError(w, "get company profile", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func CompanyProfileUpdate(w http.ResponseWriter, r *http.Request) {
	var profile models.CompanyProfile
	if !readJSON(w, r, &profile) {
		return
	}
	if !isValidEmail(profile.Email) {
		writeError(w, http.StatusBadRequest, "dati non validi", "email non valida")
		return
	}
	profile.ID = companyProfileID
	if err := db.Conn().Save(&profile).Error; err != nil {
		storeError(w, "save company profile", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
