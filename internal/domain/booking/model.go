package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ProviderRole determines which provider profile and price apply.
type ProviderRole string

const (
	RolePsychologist ProviderRole = "Psychologist"
	RolePsychiatrist ProviderRole = "Psychiatrist"
)

var ErrUnknownRole = errors.New("unknown provider role")

// Provider is a static provider profile. There is no provider directory or
// search; adding a role is a data change here, not a code change.
type Provider struct {
	Name  string       `json:"name"`
	Role  ProviderRole `json:"role"`
	Focus string       `json:"focus"`
	Price int          `json:"price"`
	Icon  string       `json:"icon"`
}

var providers = map[ProviderRole]Provider{
	RolePsychologist: {
		Name:  "Dr. Sanky",
		Role:  RolePsychologist,
		Focus: "Foundation Therapy, CBT Skills, Weekly Support",
		Price: 1499,
		Icon:  "👩‍⚕️",
	},
	RolePsychiatrist: {
		Name:  "Dr. Mahantesh Totanagouda Patil",
		Role:  RolePsychiatrist,
		Focus: "Medication Management, Complex Review",
		Price: 2499,
		Icon:  "👨‍⚕️",
	},
}

// ProviderFor returns the static profile for a role.
func ProviderFor(role ProviderRole) (Provider, error) {
	p, ok := providers[role]
	if !ok {
		return Provider{}, ErrUnknownRole
	}
	return p, nil
}

// Appointment is a confirmed booking appended to the appointment registry.
// PatientID is a weak reference: lookup only, no ownership.
type Appointment struct {
	ID           uuid.UUID    `json:"id"`
	PatientID    uuid.UUID    `json:"patient_id"`
	ProviderName string       `json:"provider_name"`
	ProviderRole ProviderRole `json:"provider_role"`
	DateLabel    string       `json:"date_label"`
	Time         string       `json:"time"`
	Price        int          `json:"price"`
	ContactPhone string       `json:"contact_phone"`
	CreatedAt    time.Time    `json:"created_at"`
}
