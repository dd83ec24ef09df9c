// Package postgres implements store.Store against the hosted relational
// backend using the pgx stdlib driver. Schema migration is handled outside
// the service; Bootstrap only verifies connectivity.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/chartlog/chartlog/internal/model"
	"github.com/chartlog/chartlog/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql,
// scoped to ownerID.
func NewWithDB(db *sql.DB, ownerID string) store.Store {
	return &pgStore{db: db, owner: ownerID}
}

// Bootstrap performs a connectivity check to ensure Postgres is reachable.
func Bootstrap(ctx context.Context, dsn string) error {
	if dsn == "" {
		return nil
	}
	db, err := Open(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return db.PingContext(ctx)
}

type pgStore struct {
	db    *sql.DB
	owner string
}

func (s *pgStore) Records() store.Records { return &records{db: s.db, owner: s.owner} }

// HealthPing implements health probing for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type records struct {
	db    *sql.DB
	owner string
}

var (
	recordCols   = strings.Join(store.RecordColumns(), ", ")
	placeholders = buildPlaceholders(len(store.RecordColumns()))
)

func buildPlaceholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ",")
}

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
	q := fmt.Sprintf("SELECT %s FROM records WHERE owner_id = $1 AND id = $2", recordCols)
	rec, err := store.ScanRecord(r.db.QueryRowContext(ctx, q, r.owner, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	return rec, err
}

func (r *records) List(ctx context.Context) ([]*model.Record, error) {
	q := fmt.Sprintf("SELECT %s FROM records WHERE owner_id = $1 ORDER BY seq DESC, id", recordCols)
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
	var sets []string
	for i, c := range cols[2:] {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+1))
	}
	n := len(cols[2:])
	q := fmt.Sprintf("UPDATE records SET %s, updated_at = now() WHERE owner_id = $%d AND id = $%d",
		strings.Join(sets, ", "), n+1, n+2)

	vals, err := store.RecordValues(r.owner, rec)
	if err != nil {
		return nil, err
	}
	args := append(vals[2:], r.owner, rec.ID)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, model.ErrNotFound
	}
	return rec.Clone(), nil
}

func (r *records) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM records WHERE owner_id = $1 AND id = $2", r.owner, id)
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
