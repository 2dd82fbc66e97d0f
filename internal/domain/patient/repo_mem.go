package patient

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemRepository is an in-memory Repository preserving insertion order.
type MemRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Record
	ordered []*Record
}

func NewMemRepository() *MemRepository {
	return &MemRepository{byID: make(map[uuid.UUID]*Record)}
}

func (m *MemRepository) Create(_ context.Context, r *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	m.byID[r.ID] = r
	m.ordered = append(m.ordered, r)
	return nil
}

func (m *MemRepository) GetByID(_ context.Context, id uuid.UUID) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (m *MemRepository) List(_ context.Context, limit, offset int) ([]*Record, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := len(m.ordered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}

	result := make([]*Record, end-offset)
	copy(result, m.ordered[offset:end])
	return result, total, nil
}
