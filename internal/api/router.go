package api

import (
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/chartlog/chartlog/internal/api/recovery"
	"github.com/chartlog/chartlog/internal/snapshot"
	"github.com/chartlog/chartlog/internal/store"
	"github.com/chartlog/chartlog/internal/workflow"
)

// NewRouter wires all API routes onto a mux router.
func NewRouter(svc *workflow.Service, st store.Store, cache *snapshot.Cache, log zerolog.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	records := NewRecordHandler(svc, cache)
	router.HandleFunc("/api/records/part1", records.CreatePartOne).Methods("POST")
	router.HandleFunc("/api/records/part2", records.CreatePartTwo).Methods("POST")
	router.HandleFunc("/api/records/common", records.CreateCommon).Methods("POST")
	router.HandleFunc("/api/records", records.ListRecords).Methods("GET")
	router.HandleFunc("/api/records/{recordId}", records.GetRecord).Methods("GET")
	router.HandleFunc("/api/records/{recordId}", records.UpdateRecord).Methods("PUT")
	router.HandleFunc("/api/records/{recordId}", records.DeleteRecord).Methods("DELETE")

	reports := NewReportHandler(cache)
	router.HandleFunc("/api/search", reports.Search).Methods("POST")
	router.HandleFunc("/api/duplicates/conflicting", reports.ConflictingDuplicates).Methods("GET")
	router.HandleFunc("/api/duplicates/consistent", reports.ConsistentDuplicates).Methods("GET")

	backups := NewBackupHandler(svc, st, cache, log)
	router.HandleFunc("/api/backup", backups.Export).Methods("GET")
	router.HandleFunc("/api/backup", backups.Import).Methods("POST")
	router.HandleFunc("/api/migrate", backups.Migrate).Methods("POST")

	health := NewHealthHandler()
	router.HandleFunc("/api/health", health.CheckHealth).Methods("GET")

	return router
}
