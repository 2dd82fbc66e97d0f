package patient

import (
	"time"

	"github.com/google/uuid"
)

// Record is a registered patient created at assessment completion.
// The registry is append-only: records are never updated or deleted.
type Record struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Score     float64        `json:"score"`
	Answers   map[string]int `json:"answers"`
	CreatedAt time.Time      `json:"created_at"`
}
