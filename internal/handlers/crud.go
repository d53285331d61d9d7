package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/bottegalab/gestionale/internal/db"
	"github.com/bottegalab/gestionale/internal/store"
)

// The CRUD surface is the same for every collection: list all, add, patch,
// remove. These helpers keep the per-entity handlers down to their actual
// business rules (validation, derived fields, cascades).

func listAll[T any](w http.ResponseWriter) {
	items, err := store.List[T](db.Conn())
	if err != nil {
		storeError(w, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// createRecord persists an already-validated record and echoes it back
// with its assigned id.
func createRecord[T any](w http.ResponseWriter, rec *T) {
	if err := store.Add(db.Conn(), rec); err != nil {
		storeError(w, "add", err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// loadForUpdate fetches the record a PUT targets; a miss is a 404, not a
// storage failure.
func loadForUpdate[T any](w http.ResponseWriter, r *http.Request) (T, string, bool) {
	id := chi.URLParam(r, "id")
	rec, err := store.Get[T](db.Conn(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "elemento non trovato")
		} else {
			storeError(w, "get", err)
		}
		var zero T
		return zero, id, false
	}
	return rec, id, true
}

func saveRecord[T any](w http.ResponseWriter, rec *T) {
	if err := store.Save(db.Conn(), rec); err != nil {
		storeError(w, "save", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func removeRecord[T any](w http.ResponseWriter, r *http.Request) {
	if err := store.Remove[T](db.Conn(), chi.URLParam(r, "id")); err != nil {
		storeError(w, "remove", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
