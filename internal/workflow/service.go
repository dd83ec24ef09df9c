// Package workflow implements the two-stage entry workflow: Part 1, Part 2
// and Common saves, full-replacement edits with the fork-on-completion rule,
// and permanent deletes.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chartlog/chartlog/internal/events"
	"github.com/chartlog/chartlog/internal/model"
	"github.com/chartlog/chartlog/internal/store"
)

// SaveRequest carries the user-entered values for a save or edit.
type SaveRequest struct {
	Fields         map[string]string      `json:"fields"`
	FieldDates     map[string]*model.Date `json:"fieldDates,omitempty"`
	Classification string                 `json:"classification"`
	Notes          string                 `json:"notes,omitempty"`
	Attachment     string                 `json:"attachment,omitempty"`
}

// Service orchestrates record mutations against the store and publishes a
// change event for every successful write.
type Service struct {
	store store.Store
	bus   *events.Bus
	log   zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewService wires a workflow service.
func NewService(s store.Store, bus *events.Bus, log zerolog.Logger) *Service {
	return &Service{
		store: s,
		bus:   bus,
		log:   log,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// SavePartOne records a Part 1 entry. Part-Two-only fields must be absent.
func (s *Service) SavePartOne(ctx context.Context, req SaveRequest) (*model.Record, error) {
	if err := rejectPartTwoFields(req); err != nil {
		return nil, err
	}
	return s.create(ctx, req, model.KindPartOne)
}

// SavePartTwo records a Part 2 entry.
func (s *Service) SavePartTwo(ctx context.Context, req SaveRequest) (*model.Record, error) {
	return s.create(ctx, req, model.KindPartTwo)
}

// SaveCommon records a single-step entry carrying both stages.
func (s *Service) SaveCommon(ctx context.Context, req SaveRequest) (*model.Record, error) {
	return s.create(ctx, req, model.KindCommon)
}

// Edit replaces the target's full field set while preserving its identity and
// sequence key, with one exception: when the target is a PartOne record and
// the request newly introduces Part-Two data, the original is left untouched
// and a fresh Common record is created from the merged fields. Losing the
// original on that path would silently destroy Part-1-only history.
//
// A vanished target returns model.ErrNotFound; callers treat it as a stale
// reference, not a failure.
func (s *Service) Edit(ctx context.Context, id string, req SaveRequest) (*model.Record, error) {
	current, err := s.store.Records().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rec, err := s.build(req)
	if err != nil {
		return nil, err
	}

	if current.Kind == model.KindPartOne && rec.HasPartTwoData() {
		return s.forkToCommon(ctx, current, rec)
	}

	rec.ID = current.ID
	rec.Seq = current.Seq
	rec.Kind = current.Kind
	rec.LegacyTimestamp = current.LegacyTimestamp
	if rec.Kind == model.KindPartOne {
		if err := rejectPartTwoFields(req); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.Records().Update(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.publish(events.Update, updated)
	return updated, nil
}

// Delete permanently removes a record. A stale target is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.Records().Delete(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		s.log.Debug().Str("record_id", id).Msg("delete target already gone")
		return nil
	}
	if err != nil {
		return err
	}
	s.publish(events.Delete, &model.Record{ID: id})
	return nil
}

// Get fetches one record by identity.
func (s *Service) Get(ctx context.Context, id string) (*model.Record, error) {
	return s.store.Records().Get(ctx, id)
}

// List returns the full record set newest first.
func (s *Service) List(ctx context.Context) ([]*model.Record, error) {
	return s.store.Records().List(ctx)
}

// Import restores records from a backup document's decoded form. Unlike the
// entry workflow it does not validate classifications, so old and new schema
// versions both restore. The first store failure aborts the batch and is
// surfaced to the caller.
func (s *Service) Import(ctx context.Context, records []*model.Record) (int, error) {
	imported := 0
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = s.newID()
		}
		if rec.Seq == 0 {
			rec.Seq = s.now().UnixMilli()
		}
		created, err := s.store.Records().Create(ctx, rec)
		if err != nil {
			return imported, fmt.Errorf("import record %s: %w", rec.ID, err)
		}
		s.publish(events.Insert, created)
		imported++
	}
	return imported, nil
}

func (s *Service) create(ctx context.Context, req SaveRequest, kind model.EntryKind) (*model.Record, error) {
	rec, err := s.build(req)
	if err != nil {
		return nil, err
	}
	rec.ID = s.newID()
	rec.Seq = s.now().UnixMilli()
	rec.Kind = kind

	created, err := s.store.Records().Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.publish(events.Insert, created)
	return created, nil
}

// forkToCommon synthesizes the Common record for a completed PartOne entry:
// the original's fields overlaid with the newly entered Part-Two values,
// under a fresh identity and sequence key.
func (s *Service) forkToCommon(ctx context.Context, original, edited *model.Record) (*model.Record, error) {
	merged := original.Clone()
	merged.ID = s.newID()
	merged.Seq = s.now().UnixMilli()
	merged.Kind = model.KindCommon
	merged.LegacyTimestamp = nil
	merged.Classification = edited.Classification
	merged.Notes = edited.Notes
	merged.Attachment = edited.Attachment
	for _, name := range model.PartTwoFieldNames() {
		if v := edited.Field(name); v != "" {
			merged.SetField(name, v)
		}
	}
	for name, d := range edited.FieldDates {
		if merged.FieldDates == nil {
			merged.FieldDates = make(map[string]*model.Date)
		}
		merged.FieldDates[name] = d
	}

	created, err := s.store.Records().Create(ctx, merged)
	if err != nil {
		return nil, err
	}
	s.publish(events.Insert, created)
	s.log.Info().
		Str("original_id", original.ID).
		Str("common_id", created.ID).
		Msg("part-one entry completed into a new common record")
	return created, nil
}

// build validates a request and assembles the record fields. Identity, seq
// and kind are left for the caller.
func (s *Service) build(req SaveRequest) (*model.Record, error) {
	if req.Classification == "" {
		return nil, &model.ValidationError{Missing: []string{"classification"}}
	}
	class, ok := model.ParseClassification(req.Classification)
	if !ok {
		return nil, fmt.Errorf("%w: unknown classification %q", model.ErrValidation, req.Classification)
	}

	rec := &model.Record{
		Classification: class,
		Notes:          strings.ToUpper(req.Notes),
		Attachment:     req.Attachment,
	}
	// Only canonical field names survive; unknown keys are dropped.
	for _, name := range model.FieldNames() {
		if v := req.Fields[name]; v != "" {
			rec.SetField(name, v)
		}
	}
	for _, name := range model.FieldNames() {
		if d, ok := req.FieldDates[name]; ok {
			if rec.FieldDates == nil {
				rec.FieldDates = make(map[string]*model.Date)
			}
			rec.FieldDates[name] = d
		}
	}
	return rec, nil
}

func rejectPartTwoFields(req SaveRequest) error {
	var present []string
	for _, name := range model.PartTwoFieldNames() {
		if req.Fields[name] != "" {
			present = append(present, name)
		}
	}
	if len(present) > 0 {
		return fmt.Errorf("%w: part-one entry cannot carry %s", model.ErrValidation, strings.Join(present, ", "))
	}
	return nil
}

func (s *Service) publish(t events.Type, rec *model.Record) {
	if s.bus == nil {
		return
	}
	if !s.bus.Publish(events.Event{Type: t, Record: rec}) {
		s.log.Warn().Str("type", string(t)).Str("record_id", rec.ID).Msg("event bus full, change dropped")
	}
}
