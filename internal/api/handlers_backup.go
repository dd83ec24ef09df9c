package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/chartlog/chartlog/internal/api/respond"
	"github.com/chartlog/chartlog/internal/backup"
	"github.com/chartlog/chartlog/internal/migrate"
	"github.com/chartlog/chartlog/internal/model"
	"github.com/chartlog/chartlog/internal/snapshot"
	"github.com/chartlog/chartlog/internal/store"
	"github.com/chartlog/chartlog/internal/workflow"
)

// maxImportBytes caps import/migrate payloads.
const maxImportBytes = 32 << 20

// BackupHandler serves export, import and legacy migration.
type BackupHandler struct {
	svc   *workflow.Service
	store store.Store
	cache *snapshot.Cache
	log   zerolog.Logger
}

func NewBackupHandler(svc *workflow.Service, st store.Store, cache *snapshot.Cache, log zerolog.Logger) *BackupHandler {
	return &BackupHandler{svc: svc, store: st, cache: cache, log: log}
}

// Export GET /api/backup
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context())
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	doc, err := backup.Serialize(records)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", backup.Filename(model.Today())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// Import POST /api/backup
//
// The whole document is decoded before anything is written; a malformed
// document aborts with no partial import.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	doc, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		respond.WriteBadRequest(w, "failed to read request body")
		return
	}
	records, err := backup.Deserialize(doc)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	imported, err := h.svc.Import(r.Context(), records)
	if err != nil {
		h.log.Error().Err(err).Int("imported", imported).Msg("backup import aborted")
		respond.WriteInternalError(w, err.Error())
		return
	}
	h.refreshSnapshot(r)
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"imported": imported})
}

// Migrate POST /api/migrate
//
// Legacy-blob migration uses a partial-success policy: a per-record store
// failure is counted as skipped instead of aborting the batch.
func (h *BackupHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	doc, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		respond.WriteBadRequest(w, "failed to read request body")
		return
	}
	sum, err := migrate.Run(r.Context(), h.store, doc, h.log)
	if err != nil {
		if errors.Is(err, model.ErrFormat) {
			respond.WriteBadRequest(w, err.Error())
			return
		}
		respond.WriteInternalError(w, err.Error())
		return
	}
	h.refreshSnapshot(r)
	respond.WriteJSON(w, http.StatusOK, sum)
}

// refreshSnapshot reloads the cache from the store after bulk writes that
// bypass the per-record event stream.
func (h *BackupHandler) refreshSnapshot(r *http.Request) {
	records, err := h.store.Records().List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("snapshot refresh failed after bulk write")
		return
	}
	h.cache.Reset(records)
}
