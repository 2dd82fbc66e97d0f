package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

// Register creates a patient record at assessment completion. The score is
// the scaled triage score; answers are copied so later mutation of the
// walkthrough state cannot reach into the registry.
func (s *Service) Register(ctx context.Context, name string, score float64, answers map[string]int) (*Record, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	copied := make(map[string]int, len(answers))
	for k, v := range answers {
		copied[k] = v
	}

	r := &Record{
		Name:    name,
		Score:   score,
		Answers: copied,
	}
	if err := s.patients.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Record, int, error) {
	return s.patients.List(ctx, limit, offset)
}
