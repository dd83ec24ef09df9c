// Package sqlite implements store.Store on a local SQLite file via the
// modernc driver. It backs the local build target and the store test suite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/chartlog/chartlog/internal/model"
	"github.com/chartlog/chartlog/internal/store"
)

// New opens the database file, applies the embedded schema, and returns a
// store scoped to ownerID.
func New(path, ownerID string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	s, err := NewWithDB(db, ownerID)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wires a store onto an existing connection and ensures the schema
// exists.
func NewWithDB(db *sql.DB, ownerID string) (store.Store, error) {
	for _, stmt := range store.DDLStatements() {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return &sqliteStore{db: db, owner: ownerID}, nil
}

type sqliteStore struct {
	db    *sql.DB
	owner string
}

func (s *sqliteStore) Records() store.Records { return &records{db: s.db, owner: s.owner} }

// HealthPing implements health probing for the SQLite-backed store.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type records struct {
	db    *sql.DB
	owner string
}

var (
	recordCols   = strings.Join(store.RecordColumns(), ", ")
	placeholders = "?" + strings.Repeat(",?", len(store.RecordColumns())-1)
)

func (r *records) Create(ctx context.Context, rec *model.Record) (*model.Record, error) {
	vals, err := store.RecordValues(r.owner, rec)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf("INSERT INTO records (%s) VALUES (%s)", recordCols, placeholders)
	if _, err := r.db.ExecContext(ctx, q, vals...); err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

func (r *records) Get(ctx context.Context, id string) (*model.Record, error) {
	q := fmt.Sprintf("SELECT %s FROM records WHERE owner_id = ? AND id = ?", recordCols)
	rec, err := store.ScanRecord(r.db.QueryRowContext(ctx, q, r.owner, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	return rec, err
}

func (r *records) List(ctx context.Context) ([]*model.Record, error) {
	q := fmt.Sprintf("SELECT %s FROM records WHERE owner_id = ? ORDER BY seq DESC, id", recordCols)
	rows, err := r.db.QueryContext(ctx, q, r.owner)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Record
	for rows.Next() {
		rec, err := store.ScanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *records) Update(ctx context.Context, rec *model.Record) (*model.Record, error) {
	cols := store.RecordColumns()
	// skip id, owner_id when building the SET clause; they key the row
	var sets []string
	for _, c := range cols[2:] {
		sets = append(sets, c+" = ?")
	}
	q := fmt.Sprintf("UPDATE records SET %s, updated_at = CURRENT_TIMESTAMP WHERE owner_id = ? AND id = ?",
		strings.Join(sets, ", "))

	vals, err := store.RecordValues(r.owner, rec)
	if err != nil {
		return nil, err
	}
	args := append(vals[2:], r.owner, rec.ID)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, model.ErrNotFound
	}
	return rec.Clone(), nil
}

func (r *records) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM records WHERE owner_id = ? AND id = ?", r.owner, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
