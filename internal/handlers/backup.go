package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/bottegalab/gestionale/internal/backup"
	"github.com/bottegalab/gestionale/internal/config"
	"github.com/bottegalab/gestionale/internal/db"
)

// maxBackupBytes caps uploads; the whole database fits comfortably in far
// less.
const maxBackupBytes = 64 << 20

// BackupExport downloads the full database as one JSON document.
func BackupExport(w http.ResponseWriter, r *http.Request) {
	snap, err := backup.Export(db.Conn())
	if err != nil {
		storeError(w, "export backup", err)
		return
	}
	name := "backup-" + time.Now().Format("2006-01-02") + ".json"
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	writeJSON(w, http.StatusOK, snap)
}

// BackupImport replaces every collection with a previously exported
// document. A file missing any collection is rejected before anything is
// touched.
func BackupImport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBackupBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "lettura del file non riuscita")
		return
	}
	if err := backup.Import(db.Conn(), raw); err != nil {
		if errors.Is(err, backup.ErrBadFile) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		storeError(w, "import backup", err)
		return
	}
	config.Logger().Info("backup restored")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
