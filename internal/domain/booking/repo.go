package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("appointment not found")

// Repository is the append-only appointment registry.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	List(ctx context.Context, limit, offset int) ([]*Appointment, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
}
