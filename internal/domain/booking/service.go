package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrFlowNotFound    = errors.New("booking session not found")
	ErrPatientNotFound = errors.New("patient not found")
)

// PatientSummaryRoute is where the outer flow navigates after booking.
const PatientSummaryRoute = "/patient"

// PatientInfo is the slice of a patient record the booking flow needs.
type PatientInfo struct {
	ID   uuid.UUID
	Name string
}

// PatientDirectory looks up patients for contact pre-fill and the advisory
// referential check at confirmation. Implemented by the patient service via
// an adapter in main.
type PatientDirectory interface {
	FindPatient(ctx context.Context, id uuid.UUID) (*PatientInfo, error)
}

// Service holds active booking flows in memory and owns the appointment
// registry writes. An appointment exists if and only if Confirm completed.
type Service struct {
	mu           sync.RWMutex
	flows        map[uuid.UUID]*Flow
	appointments Repository
	patients     PatientDirectory
	now          func() time.Time
}

func NewService(appointments Repository, patients PatientDirectory) *Service {
	return &Service{
		flows:        make(map[uuid.UUID]*Flow),
		appointments: appointments,
		patients:     patients,
		now:          time.Now,
	}
}

// SetClock overrides the clock used for the date window and defaults.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// Open starts a booking flow at the provider card. The contact name is
// pre-filled from the patient record when it exists.
func (s *Service) Open(ctx context.Context, role ProviderRole, patientID uuid.UUID) (*Flow, error) {
	provider, err := ProviderFor(role)
	if err != nil {
		return nil, err
	}

	f := newFlow(patientID, provider, s.now())
	if p, err := s.patients.FindPatient(ctx, patientID); err == nil {
		f.contactName = p.Name
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.flows[f.ID] = f
	return f, nil
}

// Get returns the flow for a session ID.
func (s *Service) Get(id uuid.UUID) (*Flow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.flows[id]
	if !ok {
		return nil, ErrFlowNotFound
	}
	return f, nil
}

// apply runs a transition on a flow under the service lock.
func (s *Service) apply(id uuid.UUID, fn func(*Flow) error) (*Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flows[id]
	if !ok {
		return nil, ErrFlowNotFound
	}
	if err := fn(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) Begin(id uuid.UUID) (*Flow, error) {
	return s.apply(id, (*Flow).Begin)
}

func (s *Service) BackToCard(id uuid.UUID) (*Flow, error) {
	return s.apply(id, (*Flow).BackToCard)
}

func (s *Service) SelectDate(id uuid.UUID, d time.Time) (*Flow, error) {
	return s.apply(id, func(f *Flow) error { return f.SelectDate(d) })
}

func (s *Service) ChooseSlot(id uuid.UUID, label string) (*Flow, error) {
	return s.apply(id, func(f *Flow) error { return f.ChooseSlot(label) })
}

func (s *Service) SetManualTime(id uuid.UUID, hhmm string) (*Flow, error) {
	return s.apply(id, func(f *Flow) error { return f.SetManualTime(hhmm) })
}

func (s *Service) SetTimeMode(id uuid.UUID, manual bool) (*Flow, error) {
	return s.apply(id, func(f *Flow) error { return f.SetTimeMode(manual) })
}

func (s *Service) Proceed(id uuid.UUID) (*Flow, error) {
	return s.apply(id, (*Flow).Proceed)
}

// Confirm finishes a flow: the contact gate must pass and the referenced
// patient must exist in the registry at creation time. Exactly one
// appointment is appended per successful confirmation; the state machine
// prevents a second.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID, name, phone string) (*Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flows[id]
	if !ok {
		return nil, ErrFlowNotFound
	}
	if err := f.checkConfirm(name, phone); err != nil {
		return nil, err
	}
	if _, err := s.patients.FindPatient(ctx, f.PatientID); err != nil {
		return nil, ErrPatientNotFound
	}

	timeLabel := f.TimeLabel()
	if timeLabel == "" {
		timeLabel = DefaultTime
	}

	a := &Appointment{
		PatientID:    f.PatientID,
		ProviderName: f.Provider.Name,
		ProviderRole: f.Provider.Role,
		DateLabel:    DateLabel(f.Date()),
		Time:         timeLabel,
		Price:        f.Provider.Price,
		ContactPhone: phone,
		CreatedAt:    s.now(),
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, err
	}
	f.markBooked(name, phone, a.ID)

	return a, nil
}

// Appointments exposes the registry read side.
func (s *Service) Appointments(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.List(ctx, limit, offset)
}

func (s *Service) AppointmentsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByPatient(ctx, patientID, limit, offset)
}
