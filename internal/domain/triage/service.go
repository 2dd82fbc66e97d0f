package triage

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("assessment session not found")

// PatientRegistrar registers a patient record when an assessment finishes.
// Implemented by the patient service via an adapter in main.
type PatientRegistrar interface {
	RegisterPatient(ctx context.Context, name string, score float64, answers map[string]int) (uuid.UUID, error)
}

// Manager holds active assessment walkthroughs in memory, keyed by session
// ID. Abandoned sessions simply stay unfinished; nothing is persisted until
// an exit is chosen.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID]*Walkthrough
	registrar PatientRegistrar
}

func NewManager(registrar PatientRegistrar) *Manager {
	return &Manager{
		sessions:  make(map[uuid.UUID]*Walkthrough),
		registrar: registrar,
	}
}

// Start opens a new walkthrough at name entry.
func (m *Manager) Start() *Walkthrough {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := NewWalkthrough()
	m.sessions[w.ID] = w
	return w
}

// Get returns the walkthrough for a session ID.
func (m *Manager) Get(id uuid.UUID) (*Walkthrough, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return w, nil
}

// SubmitName advances a session past name entry.
func (m *Manager) SubmitName(id uuid.UUID, name string) (*Walkthrough, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := w.SubmitName(name); err != nil {
		return nil, err
	}
	return w, nil
}

// Answer records a response to the session's current question.
func (m *Manager) Answer(id uuid.UUID, value int) (*Walkthrough, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := w.Answer(value); err != nil {
		return nil, err
	}
	return w, nil
}

// Back returns a session to name entry, retaining answers.
func (m *Manager) Back(id uuid.UUID) (*Walkthrough, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := w.Back(); err != nil {
		return nil, err
	}
	return w, nil
}

// Finish resolves a completed session through the chosen exit: the patient
// record is created exactly once, carrying the scaled score, and the route
// for the outer flow is returned.
func (m *Manager) Finish(ctx context.Context, id uuid.UUID, exit Exit) (uuid.UUID, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.sessions[id]
	if !ok {
		return uuid.Nil, "", ErrSessionNotFound
	}

	res, err := w.checkExit(exit)
	if err != nil {
		return uuid.Nil, "", err
	}

	patientID, err := m.registrar.RegisterPatient(ctx, w.Name(), res.ScaledScore, w.Answers())
	if err != nil {
		return uuid.Nil, "", err
	}
	w.markFinished(patientID)

	return patientID, RouteFor(exit), nil
}
