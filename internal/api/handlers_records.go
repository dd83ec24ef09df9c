package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chartlog/chartlog/internal/api/respond"
	"github.com/chartlog/chartlog/internal/model"
	"github.com/chartlog/chartlog/internal/search"
	"github.com/chartlog/chartlog/internal/snapshot"
	"github.com/chartlog/chartlog/internal/workflow"
)

// RecordHandler provides HTTP transport for the entry workflow.
type RecordHandler struct {
	svc   *workflow.Service
	cache *snapshot.Cache
}

func NewRecordHandler(svc *workflow.Service, cache *snapshot.Cache) *RecordHandler {
	return &RecordHandler{svc: svc, cache: cache}
}

// CreatePartOne POST /api/records/part1
func (h *RecordHandler) CreatePartOne(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.svc.SavePartOne)
}

// CreatePartTwo POST /api/records/part2
func (h *RecordHandler) CreatePartTwo(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.svc.SavePartTwo)
}

// CreateCommon POST /api/records/common
func (h *RecordHandler) CreateCommon(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, h.svc.SaveCommon)
}

func (h *RecordHandler) create(w http.ResponseWriter, r *http.Request, save func(ctx context.Context, req workflow.SaveRequest) (*model.Record, error)) {
	var req workflow.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	rec, err := save(r.Context(), req)
	if err != nil {
		writeWorkflowError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, rec)
}

// ListRecords GET /api/records
func (h *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	results := search.WithSerials(h.cache.List())
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"records": results, "count": len(results)})
}

// GetRecord GET /api/records/{recordId}
func (h *RecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["recordId"]
	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "record not found")
			return
		}
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, rec)
}

// UpdateRecord PUT /api/records/{recordId}
//
// When the target is a PartOne record and the body introduces Part-Two data,
// the response carries the newly forked Common record; the original is left
// untouched. A vanished target is a stale-reference no-op (204).
func (h *RecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["recordId"]
	var req workflow.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	rec, err := h.svc.Edit(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeWorkflowError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, rec)
}

// DeleteRecord DELETE /api/records/{recordId}
func (h *RecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["recordId"]
	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeWorkflowError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		respond.WriteValidationError(w, verr.Error(), verr.Missing)
		return
	}
	if errors.Is(err, model.ErrValidation) {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	respond.WriteInternalError(w, err.Error())
}
