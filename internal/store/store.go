// Package store defines the storage capability shared by every todo medium.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/idilsaglam/todoprompt/internal/model"
)

// Store reads and writes the persisted todo list.
// Remove and MarkDone report how many records they touched; zero means the
// id was not found and is not an error.
type Store interface {
	List(ctx context.Context) (model.List, error)
	Add(ctx context.Context, todo model.Todo) error
	Remove(ctx context.Context, id uuid.UUID) (int64, error)
	MarkDone(ctx context.Context, id uuid.UUID) (int64, error)
	Clear(ctx context.Context) error
	Close() error
}
