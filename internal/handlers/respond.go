package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/bottegalab/gestionale/internal/config"
)

var validate = validator.New()

// apiError is the error envelope every endpoint returns: a general message
// plus optional per-field or per-item details.
type apiError struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		config.Logger().WithError(err).Error("encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string, details ...string) {
	writeJSON(w, status, apiError{Error: msg, Details: details})
}

// readJSON decodes the request body, rejecting unknown fields so typos in
// the client payload surface instead of silently dropping data.
func readJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		writeError(w, http.StatusBadRequest, "corpo della richiesta non valido: "+err.Error())
		return false
	}
	return true
}

// storeError logs the underlying failure and hides it behind a generic
// message: storage errors are never a user mistake.
func storeError(w http.ResponseWriter, op string, err error) {
	config.Logger().WithError(err).WithField("op", op).Error("store operation failed")
	writeError(w, http.StatusInternalServerError, "errore di salvataggio, riprova")
}

// isValidEmail wraps the validator singleton for optional email fields.
func isValidEmail(s string) bool {
	if s == "" {
		return true
	}
	return validate.Var(s, "email") == nil
}
