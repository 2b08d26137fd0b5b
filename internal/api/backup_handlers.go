package api

import (
	"net/http"
	"strconv"

	"batchboard/b/internal/backup"
)

// backupSnapshot returns a full JSON snapshot of every collection.
// ?include_users=true adds user accounts (password hashes included, which
// is why the route is admin-only).
func (h *Handler) backupSnapshot(w http.ResponseWriter, r *http.Request) {
	includeUsers, _ := strconv.ParseBool(r.URL.Query().Get("include_users"))

	snap, err := backup.Dump(h.db, includeUsers)
	if err != nil {
		h.log.Error("backup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "unable to create backup")
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// restoreSnapshot replaces all collections from a posted snapshot.
func (h *Handler) restoreSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap backup.Snapshot
	if err := decodeJSON(r, &snap); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := backup.Restore(h.db, snap); err != nil {
		h.log.Error("restore failed", "snapshot", snap.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "unable to restore backup")
		return
	}

	h.invalidateReports(r.Context())
	h.log.Info("restored snapshot", "snapshot", snap.ID)
	respondJSON(w, http.StatusOK, map[string]string{"status": "restored", "snapshot": snap.ID})
}
