package migrate

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartlog/chartlog/internal/model"
	"github.com/chartlog/chartlog/internal/store"
	"github.com/chartlog/chartlog/internal/store/memstore"
)

func TestRun_PreservesLegacyTimestamps(t *testing.T) {
	s := memstore.New()
	doc := []byte(`[
		{"id":"old-1","seq":1600000000000,"classification":"Act","entryKind":"partOne"},
		{"seq":1600000100000,"classification":"Front Act","entryKind":"common"}
	]`)

	sum, err := Run(context.Background(), s, doc, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Summary{Migrated: 2}, sum)

	lst, err := s.Records().List(context.Background())
	require.NoError(t, err)
	require.Len(t, lst, 2)
	for _, rec := range lst {
		require.NotNil(t, rec.LegacyTimestamp)
		assert.Equal(t, rec.Seq, *rec.LegacyTimestamp)
		assert.NotEmpty(t, rec.ID, "records without an identity get a fresh one")
	}
}

func TestRun_MalformedDocumentAborts(t *testing.T) {
	_, err := Run(context.Background(), memstore.New(), []byte(`{"not":"an array"}`), zerolog.Nop())
	assert.True(t, errors.Is(err, model.ErrFormat))
}

type flakyStore struct {
	inner store.Store
	fail  map[string]bool
}

func (f *flakyStore) Records() store.Records { return &flakyRecords{f} }

type flakyRecords struct{ s *flakyStore }

func (r *flakyRecords) Create(ctx context.Context, rec *model.Record) (*model.Record, error) {
	if r.s.fail[rec.ID] {
		return nil, errors.New("constraint violation")
	}
	return r.s.inner.Records().Create(ctx, rec)
}
func (r *flakyRecords) Get(ctx context.Context, id string) (*model.Record, error) {
	return r.s.inner.Records().Get(ctx, id)
}
func (r *flakyRecords) List(ctx context.Context) ([]*model.Record, error) {
	return r.s.inner.Records().List(ctx)
}
func (r *flakyRecords) Update(ctx context.Context, rec *model.Record) (*model.Record, error) {
	return r.s.inner.Records().Update(ctx, rec)
}
func (r *flakyRecords) Delete(ctx context.Context, id string) error {
	return r.s.inner.Records().Delete(ctx, id)
}

// A failing record is counted as skipped; the rest of the batch proceeds.
func TestRun_PartialSuccess(t *testing.T) {
	s := &flakyStore{inner: memstore.New(), fail: map[string]bool{"old-2": true}}
	doc := []byte(`[
		{"id":"old-1","seq":1,"classification":"Act","entryKind":"partOne"},
		{"id":"old-2","seq":2,"classification":"Act","entryKind":"partOne"},
		{"id":"old-3","seq":3,"classification":"Act","entryKind":"partOne"}
	]`)

	sum, err := Run(context.Background(), s, doc, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Summary{Migrated: 2, Skipped: 1}, sum)
}
