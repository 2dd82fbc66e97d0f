package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("patient not found")

// Repository is the append-only patient registry.
type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	List(ctx context.Context, limit, offset int) ([]*Record, int, error)
}
