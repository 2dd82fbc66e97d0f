package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors returned by the booking flow.
var (
	ErrWrongState      = errors.New("action not permitted in current state")
	ErrUnknownSlot     = errors.New("time is not one of the offered slots")
	ErrManualModeOff   = errors.New("manual time entry is not active")
	ErrNoTimeSelected  = errors.New("a time must be selected")
	ErrContactRequired = errors.New("contact name and phone are required")
)

// FlowState identifies where a booking flow currently is.
type FlowState string

const (
	StateProviderCard       FlowState = "provider-card"
	StateSlotSelection      FlowState = "slot-selection"
	StateDetailConfirmation FlowState = "detail-confirmation"
	StateBooked             FlowState = "booked"
)

// Flow is one patient's pass through provider card, slot selection, and
// contact confirmation. Nothing is persisted until Confirm succeeds;
// abandoning the flow simply drops it.
type Flow struct {
	ID        uuid.UUID
	PatientID uuid.UUID
	Provider  Provider
	CreatedAt time.Time

	state      FlowState
	date       time.Time
	timeLabel  string // empty until a time is chosen
	manualTime bool

	contactName  string // pre-filled from the patient record when available
	contactPhone string

	appointmentID uuid.UUID
}

func newFlow(patientID uuid.UUID, provider Provider, now time.Time) *Flow {
	return &Flow{
		ID:        uuid.New(),
		PatientID: patientID,
		Provider:  provider,
		CreatedAt: now,
		state:     StateProviderCard,
		date:      now, // date always defaults to today, so it never blocks
	}
}

func (f *Flow) State() FlowState     { return f.state }
func (f *Flow) Date() time.Time      { return f.date }
func (f *Flow) TimeLabel() string    { return f.timeLabel }
func (f *Flow) ManualTime() bool     { return f.manualTime }
func (f *Flow) ContactName() string  { return f.contactName }
func (f *Flow) ContactPhone() string { return f.contactPhone }

// AppointmentID returns the appointment created at confirmation, or uuid.Nil.
func (f *Flow) AppointmentID() uuid.UUID { return f.appointmentID }

// Begin moves from the provider card to slot selection. Unconditional.
func (f *Flow) Begin() error {
	if f.state != StateProviderCard {
		return ErrWrongState
	}
	f.state = StateSlotSelection
	return nil
}

// BackToCard returns from slot selection to the provider card.
func (f *Flow) BackToCard() error {
	if f.state != StateSlotSelection {
		return ErrWrongState
	}
	f.state = StateProviderCard
	return nil
}

// SelectDate picks a date, quick-pick or custom. Only one date is ever
// selected; choosing a custom date supersedes the quick-picks.
func (f *Flow) SelectDate(d time.Time) error {
	if f.state != StateSlotSelection {
		return ErrWrongState
	}
	f.date = d
	return nil
}

// ChooseSlot picks one of the canned times. Rejected while manual entry is
// active so canned and manual values never mix.
func (f *Flow) ChooseSlot(label string) error {
	if f.state != StateSlotSelection {
		return ErrWrongState
	}
	if f.manualTime {
		return ErrWrongState
	}
	if !IsSlotTime(label) {
		return ErrUnknownSlot
	}
	f.timeLabel = label
	return nil
}

// SetManualTime normalizes a 24-hour entry to the 12-hour label.
func (f *Flow) SetManualTime(hhmm string) error {
	if f.state != StateSlotSelection {
		return ErrWrongState
	}
	if !f.manualTime {
		return ErrManualModeOff
	}
	label, err := NormalizeManualTime(hhmm)
	if err != nil {
		return err
	}
	f.timeLabel = label
	return nil
}

// SetTimeMode toggles between canned slots and manual entry. Changing mode
// clears the selected time so no stale cross-mode value survives.
func (f *Flow) SetTimeMode(manual bool) error {
	if f.state != StateSlotSelection {
		return ErrWrongState
	}
	if f.manualTime != manual {
		f.manualTime = manual
		f.timeLabel = ""
	}
	return nil
}

// Proceed moves to detail confirmation. Guarded by a selected time; the
// date defaults to today so it never blocks.
func (f *Flow) Proceed() error {
	if f.state != StateSlotSelection {
		return ErrWrongState
	}
	if f.timeLabel == "" {
		return ErrNoTimeSelected
	}
	f.state = StateDetailConfirmation
	return nil
}

// checkConfirm validates the confirmation gate: both contact fields must be
// non-empty and the flow must be awaiting confirmation.
func (f *Flow) checkConfirm(name, phone string) error {
	if f.state != StateDetailConfirmation {
		return ErrWrongState
	}
	if name == "" || phone == "" {
		return ErrContactRequired
	}
	return nil
}

func (f *Flow) markBooked(name, phone string, appointmentID uuid.UUID) {
	f.contactName = name
	f.contactPhone = phone
	f.appointmentID = appointmentID
	f.state = StateBooked
}
