package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemRepository is an in-memory Repository preserving insertion order.
type MemRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Appointment
	ordered []*Appointment
}

func NewMemRepository() *MemRepository {
	return &MemRepository{byID: make(map[uuid.UUID]*Appointment)}
}

func (m *MemRepository) Create(_ context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	m.byID[a.ID] = a
	m.ordered = append(m.ordered, a)
	return nil
}

func (m *MemRepository) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

func (m *MemRepository) List(_ context.Context, limit, offset int) ([]*Appointment, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return window(m.ordered, limit, offset)
}

func (m *MemRepository) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*Appointment
	for _, a := range m.ordered {
		if a.PatientID == patientID {
			matched = append(matched, a)
		}
	}
	return window(matched, limit, offset)
}

func window(items []*Appointment, limit, offset int) ([]*Appointment, int, error) {
	total := len(items)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}

	result := make([]*Appointment, end-offset)
	copy(result, items[offset:end])
	return result, total, nil
}
