// Package migrate imports record sets from the old local-only blob format
// into the store.
package migrate

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chartlog/chartlog/internal/backup"
	"github.com/chartlog/chartlog/internal/store"
)

// Summary reports the outcome of one migration batch.
type Summary struct {
	Migrated int `json:"migrated"`
	Skipped  int `json:"skipped"`
}

// Run decodes a legacy document and creates its records in the store. The
// pre-migration sequence key is preserved in LegacyTimestamp. A malformed
// document aborts the whole batch; a per-record store failure is logged and
// counted as skipped rather than aborting (partial-success policy).
func Run(ctx context.Context, s store.Store, doc []byte, log zerolog.Logger) (Summary, error) {
	records, err := backup.Deserialize(doc)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		if rec.LegacyTimestamp == nil {
			ts := rec.Seq
			rec.LegacyTimestamp = &ts
		}
		if _, err := s.Records().Create(ctx, rec); err != nil {
			log.Warn().Err(err).Str("record_id", rec.ID).Msg("record not migrated")
			sum.Skipped++
			continue
		}
		sum.Migrated++
	}
	log.Info().Int("migrated", sum.Migrated).Int("skipped", sum.Skipped).Msg("legacy migration finished")
	return sum, nil
}
