package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockDirectory struct {
	patients map[uuid.UUID]*PatientInfo
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{patients: make(map[uuid.UUID]*PatientInfo)}
}

func (m *mockDirectory) add(name string) uuid.UUID {
	id := uuid.New()
	m.patients[id] = &PatientInfo{ID: id, Name: name}
	return id
}

func (m *mockDirectory) FindPatient(_ context.Context, id uuid.UUID) (*PatientInfo, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func newTestService(t *testing.T) (*Service, *mockDirectory) {
	t.Helper()
	dir := newMockDirectory()
	svc := NewService(NewMemRepository(), dir)
	svc.SetClock(func() time.Time {
		return time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	})
	return svc, dir
}

func TestServiceBooksAppointment(t *testing.T) {
	ctx := context.Background()
	svc, dir := newTestService(t)
	patientID := dir.add("Asha")

	f, err := svc.Open(ctx, RolePsychiatrist, patientID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ContactName() != "Asha" {
		t.Errorf("expected contact name pre-filled, got %q", f.ContactName())
	}

	if _, err := svc.Begin(f.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ChooseSlot(f.ID, "02:00 PM"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Proceed(f.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// nothing is persisted before confirmation
	if _, total, err := svc.Appointments(ctx, 10, 0); err != nil || total != 0 {
		t.Fatalf("expected empty registry before confirm, got total=%d err=%v", total, err)
	}

	a, err := svc.Confirm(ctx, f.ID, "Asha", "9999999999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ProviderName != "Dr. Mahantesh Totanagouda Patil" {
		t.Errorf("unexpected provider name %q", a.ProviderName)
	}
	if a.Price != 2499 {
		t.Errorf("expected price 2499, got %d", a.Price)
	}
	if a.Time != "02:00 PM" {
		t.Errorf("expected time %q, got %q", "02:00 PM", a.Time)
	}
	if a.DateLabel != "Mon, Mar 10" {
		t.Errorf("expected date label %q, got %q", "Mon, Mar 10", a.DateLabel)
	}
	if a.PatientID != patientID {
		t.Errorf("appointment references wrong patient")
	}

	items, total, err := svc.Appointments(ctx, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected exactly one appointment, got total=%d len=%d", total, len(items))
	}
	if f.State() != StateBooked {
		t.Errorf("expected flow state %q, got %q", StateBooked, f.State())
	}
}

func TestServiceConfirmOnlyOnce(t *testing.T) {
	ctx := context.Background()
	svc, dir := newTestService(t)
	patientID := dir.add("Asha")

	f, err := svc.Open(ctx, RolePsychologist, patientID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Begin(f.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ChooseSlot(f.ID, "09:00 AM"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Proceed(f.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Confirm(ctx, f.ID, "Asha", "9999999999"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Confirm(ctx, f.ID, "Asha", "9999999999"); !errors.Is(err, ErrWrongState) {
		t.Errorf("expected ErrWrongState on second confirm, got %v", err)
	}
	if _, total, err := svc.Appointments(ctx, 10, 0); err != nil || total != 1 {
		t.Errorf("expected registry to stay at one appointment, got total=%d err=%v", total, err)
	}
}

func TestServiceConfirmMissingPatient(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	f, err := svc.Open(ctx, RolePsychologist, uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ContactName() != "" {
		t.Errorf("expected no pre-fill for unknown patient, got %q", f.ContactName())
	}
	if _, err := svc.Begin(f.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ChooseSlot(f.ID, "09:00 AM"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Proceed(f.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Confirm(ctx, f.ID, "Asha", "9999999999"); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("expected ErrPatientNotFound, got %v", err)
	}
	if _, total, err := svc.Appointments(ctx, 10, 0); err != nil || total != 0 {
		t.Errorf("expected empty registry, got total=%d err=%v", total, err)
	}
}

func TestServiceOpenUnknownRole(t *testing.T) {
	svc, dir := newTestService(t)
	if _, err := svc.Open(context.Background(), ProviderRole("Therapist"), dir.add("Asha")); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("expected ErrUnknownRole, got %v", err)
	}
}

func TestServiceUnknownFlow(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Get(uuid.New()); !errors.Is(err, ErrFlowNotFound) {
		t.Errorf("expected ErrFlowNotFound, got %v", err)
	}
	if _, err := svc.Begin(uuid.New()); !errors.Is(err, ErrFlowNotFound) {
		t.Errorf("expected ErrFlowNotFound, got %v", err)
	}
	if _, err := svc.Confirm(context.Background(), uuid.New(), "Asha", "9999999999"); !errors.Is(err, ErrFlowNotFound) {
		t.Errorf("expected ErrFlowNotFound, got %v", err)
	}
}

func TestServiceCustomDateAndManualTime(t *testing.T) {
	ctx := context.Background()
	svc, dir := newTestService(t)
	patientID := dir.add("Asha")

	f, err := svc.Open(ctx, RolePsychologist, patientID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Begin(f.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	custom := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.SelectDate(f.ID, custom); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.SetTimeMode(f.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.SetManualTime(f.ID, "18:45"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Proceed(f.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := svc.Confirm(ctx, f.ID, "Asha", "9999999999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.DateLabel != "Tue, Apr 1" {
		t.Errorf("expected date label %q, got %q", "Tue, Apr 1", a.DateLabel)
	}
	if a.Time != "6:45 PM" {
		t.Errorf("expected time %q, got %q", "6:45 PM", a.Time)
	}
}

func TestServiceAppointmentsByPatient(t *testing.T) {
	ctx := context.Background()
	svc, dir := newTestService(t)
	first := dir.add("Asha")
	second := dir.add("Ravi")

	for _, id := range []uuid.UUID{first, second, first} {
		f, err := svc.Open(ctx, RolePsychologist, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Begin(f.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.ChooseSlot(f.ID, "10:00 AM"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Proceed(f.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Confirm(ctx, f.ID, "Contact", "9999999999"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	items, total, err := svc.AppointmentsByPatient(ctx, first, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 appointments for patient, got total=%d len=%d", total, len(items))
	}
	for _, a := range items {
		if a.PatientID != first {
			t.Errorf("appointment for wrong patient")
		}
	}
}
