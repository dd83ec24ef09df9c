package api

import (
	"encoding/json"
	"net/http"

	"github.com/chartlog/chartlog/internal/api/respond"
	"github.com/chartlog/chartlog/internal/dedup"
	"github.com/chartlog/chartlog/internal/model"
	"github.com/chartlog/chartlog/internal/search"
	"github.com/chartlog/chartlog/internal/snapshot"
)

// ReportHandler serves search and the duplicate listings. Both operate over
// the in-memory snapshot; the report is recomputed on every request.
type ReportHandler struct {
	cache *snapshot.Cache
}

func NewReportHandler(cache *snapshot.Cache) *ReportHandler {
	return &ReportHandler{cache: cache}
}

// Search POST /api/search
func (h *ReportHandler) Search(w http.ResponseWriter, r *http.Request) {
	var criteria search.Criteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	results := search.Run(h.cache.List(), criteria)
	if results == nil {
		results = []search.Result{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"results": results, "count": len(results)})
}

// ConflictingDuplicates GET /api/duplicates/conflicting
func (h *ReportHandler) ConflictingDuplicates(w http.ResponseWriter, r *http.Request) {
	rep := dedup.Build(h.cache.List())
	writeDuplicates(w, rep.Conflicting)
}

// ConsistentDuplicates GET /api/duplicates/consistent
func (h *ReportHandler) ConsistentDuplicates(w http.ResponseWriter, r *http.Request) {
	rep := dedup.Build(h.cache.List())
	writeDuplicates(w, rep.Consistent)
}

func writeDuplicates(w http.ResponseWriter, records []*model.Record) {
	if records == nil {
		records = []*model.Record{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"records": records, "count": len(records)})
}
