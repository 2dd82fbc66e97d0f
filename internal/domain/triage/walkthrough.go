package triage

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors returned by the assessment walkthrough.
var (
	ErrNameRequired     = errors.New("name is required")
	ErrAnswerOutOfRange = errors.New("answer value must be between 0 and 3")
	ErrWrongPhase       = errors.New("action not permitted in current phase")
	ErrNotComplete      = errors.New("assessment is not complete")
	ErrAlreadyFinished  = errors.New("assessment already finished")
	ErrExitNotAllowed   = errors.New("exit not offered for this pathway")
)

// Phase identifies where a walkthrough currently is.
type Phase string

const (
	PhaseNameEntry Phase = "name-entry"
	PhaseQuestion  Phase = "question"
	PhaseComplete  Phase = "complete"
)

// Exit is one of the completion hand-offs. Critical pathways offer crisis
// support or a psychiatrist; moderate pathways offer a psychologist.
type Exit string

const (
	ExitCrisisSupport Exit = "crisis-support"
	ExitPsychiatrist  Exit = "select-psychiatrist"
	ExitPsychologist  Exit = "select-psychologist"
)

var exitRoutes = map[Exit]string{
	ExitCrisisSupport: "/crisis-support",
	ExitPsychiatrist:  "/select-psychiatrist",
	ExitPsychologist:  "/select-psychologist",
}

// RouteFor returns the navigational route for a completion exit.
func RouteFor(e Exit) string {
	return exitRoutes[e]
}

// AllowedExits returns the exits offered for a pathway.
func AllowedExits(p Pathway) []Exit {
	if p == PathwayCritical {
		return []Exit{ExitCrisisSupport, ExitPsychiatrist}
	}
	return []Exit{ExitPsychologist}
}

// Walkthrough is a single patient's pass through the questionnaire:
// name entry, then each question in order, then the completion branch.
type Walkthrough struct {
	ID        uuid.UUID
	CreatedAt time.Time

	phase    Phase
	question int // index into Questions, valid while phase == PhaseQuestion
	name     string
	answers  Answers

	finished  bool
	patientID uuid.UUID
}

// NewWalkthrough starts a walkthrough at name entry.
func NewWalkthrough() *Walkthrough {
	return &Walkthrough{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		phase:     PhaseNameEntry,
		answers:   make(Answers),
	}
}

func (w *Walkthrough) Phase() Phase   { return w.phase }
func (w *Walkthrough) Name() string   { return w.name }
func (w *Walkthrough) Finished() bool { return w.finished }

// PatientID returns the patient record created at finish, or uuid.Nil.
func (w *Walkthrough) PatientID() uuid.UUID { return w.patientID }

// QuestionIndex returns the current question index; only meaningful while
// the walkthrough is in the question phase.
func (w *Walkthrough) QuestionIndex() int { return w.question }

// Answers returns a copy of the answers recorded so far.
func (w *Walkthrough) Answers() Answers {
	out := make(Answers, len(w.answers))
	for k, v := range w.answers {
		out[k] = v
	}
	return out
}

// SubmitName moves from name entry to the first question. The transition is
// guarded by a non-empty name.
func (w *Walkthrough) SubmitName(name string) error {
	if w.phase != PhaseNameEntry {
		return ErrWrongPhase
	}
	if name == "" {
		return ErrNameRequired
	}
	w.name = name
	w.phase = PhaseQuestion
	w.question = 0
	return nil
}

// Answer records a response to the current question and advances. Answering
// the last question completes the walkthrough.
func (w *Walkthrough) Answer(value int) error {
	if w.phase != PhaseQuestion {
		return ErrWrongPhase
	}
	if value < MinAnswerValue || value > MaxAnswerValue {
		return ErrAnswerOutOfRange
	}

	w.answers[Questions[w.question].ID] = value
	if w.question < len(Questions)-1 {
		w.question++
	} else {
		w.phase = PhaseComplete
	}
	return nil
}

// Back returns to name entry from any question. Recorded answers are
// deliberately retained so the patient can revise without losing progress.
func (w *Walkthrough) Back() error {
	if w.phase != PhaseQuestion {
		return ErrWrongPhase
	}
	w.phase = PhaseNameEntry
	return nil
}

// Result scores the completed walkthrough.
func (w *Walkthrough) Result() (Result, error) {
	if w.phase != PhaseComplete {
		return Result{}, ErrNotComplete
	}
	return Score(w.answers), nil
}

// checkExit validates that the chosen exit is offered for the walkthrough's
// pathway and that the walkthrough has not already been finished.
func (w *Walkthrough) checkExit(exit Exit) (Result, error) {
	res, err := w.Result()
	if err != nil {
		return Result{}, err
	}
	if w.finished {
		return Result{}, ErrAlreadyFinished
	}
	for _, e := range AllowedExits(res.Pathway) {
		if e == exit {
			return res, nil
		}
	}
	return Result{}, ErrExitNotAllowed
}

func (w *Walkthrough) markFinished(patientID uuid.UUID) {
	w.finished = true
	w.patientID = patientID
}
