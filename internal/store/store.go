// Package store defines the persistence boundary for records. Implementations
// live under internal/store/<driver>/ (postgres, sqlite, memstore); the
// matching, grouping and filter core never touches this package.
package store

import (
	"context"

	"github.com/chartlog/chartlog/internal/model"
)

// Store exposes persistence operations required by the workflow service.
type Store interface {
	Records() Records
}

// Records is the repository for stock-entry records. List returns the full
// set newest first; Get, Update and Delete report model.ErrNotFound for a
// missing identity. No operation retries on failure.
type Records interface {
	Create(ctx context.Context, r *model.Record) (*model.Record, error)
	Get(ctx context.Context, id string) (*model.Record, error)
	List(ctx context.Context) ([]*model.Record, error)
	Update(ctx context.Context, r *model.Record) (*model.Record, error)
	Delete(ctx context.Context, id string) error
}
