package triage

import (
	"errors"
	"testing"
)

func completedWalkthrough(t *testing.T, values []int) *Walkthrough {
	t.Helper()
	w := NewWalkthrough()
	if err := w.SubmitName("Asha"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range values {
		if err := w.Answer(v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return w
}

func TestWalkthroughStartsAtNameEntry(t *testing.T) {
	w := NewWalkthrough()
	if w.Phase() != PhaseNameEntry {
		t.Errorf("expected name-entry phase, got %s", w.Phase())
	}
}

func TestSubmitNameAdvancesToFirstQuestion(t *testing.T) {
	w := NewWalkthrough()
	if err := w.SubmitName("Asha"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Phase() != PhaseQuestion || w.QuestionIndex() != 0 {
		t.Errorf("expected question 0, got phase %s index %d", w.Phase(), w.QuestionIndex())
	}
}

func TestSubmitName_EmptyBlocked(t *testing.T) {
	w := NewWalkthrough()
	if err := w.SubmitName(""); !errors.Is(err, ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}
	if w.Phase() != PhaseNameEntry {
		t.Error("expected walkthrough to stay at name entry")
	}
}

func TestAnswerAdvancesThroughQuestions(t *testing.T) {
	w := NewWalkthrough()
	w.SubmitName("Asha")
	for i := 0; i < len(Questions)-1; i++ {
		if err := w.Answer(1); err != nil {
			t.Fatalf("unexpected error at question %d: %v", i, err)
		}
		if w.QuestionIndex() != i+1 {
			t.Errorf("expected question %d, got %d", i+1, w.QuestionIndex())
		}
	}
	if err := w.Answer(1); err != nil {
		t.Fatalf("unexpected error on last question: %v", err)
	}
	if w.Phase() != PhaseComplete {
		t.Errorf("expected complete phase, got %s", w.Phase())
	}
}

func TestAnswer_OutOfRangeBlocked(t *testing.T) {
	w := NewWalkthrough()
	w.SubmitName("Asha")
	if err := w.Answer(4); !errors.Is(err, ErrAnswerOutOfRange) {
		t.Errorf("expected ErrAnswerOutOfRange, got %v", err)
	}
	if err := w.Answer(-1); !errors.Is(err, ErrAnswerOutOfRange) {
		t.Errorf("expected ErrAnswerOutOfRange, got %v", err)
	}
}

func TestAnswer_BeforeNameBlocked(t *testing.T) {
	w := NewWalkthrough()
	if err := w.Answer(1); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("expected ErrWrongPhase, got %v", err)
	}
}

func TestBackRetainsAnswers(t *testing.T) {
	// Back navigation deliberately keeps recorded answers so the patient
	// can revise without losing progress.
	w := NewWalkthrough()
	w.SubmitName("Asha")
	w.Answer(2)
	w.Answer(3)

	if err := w.Back(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Phase() != PhaseNameEntry {
		t.Errorf("expected name-entry after back, got %s", w.Phase())
	}

	answers := w.Answers()
	if answers["q1"] != 2 || answers["q2"] != 3 {
		t.Errorf("expected answers retained after back, got %v", answers)
	}
}

func TestBackThenResumeRestartsQuestions(t *testing.T) {
	w := NewWalkthrough()
	w.SubmitName("Asha")
	w.Answer(2)
	w.Back()

	if err := w.SubmitName("Asha Rao"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.QuestionIndex() != 0 {
		t.Errorf("expected to resume at question 0, got %d", w.QuestionIndex())
	}
	if w.Name() != "Asha Rao" {
		t.Errorf("expected revised name, got %s", w.Name())
	}
}

func TestBack_AtCompleteBlocked(t *testing.T) {
	w := completedWalkthrough(t, []int{0, 0, 0, 0, 0})
	if err := w.Back(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("expected ErrWrongPhase, got %v", err)
	}
}

func TestResult_BeforeCompleteBlocked(t *testing.T) {
	w := NewWalkthrough()
	w.SubmitName("Asha")
	if _, err := w.Result(); !errors.Is(err, ErrNotComplete) {
		t.Errorf("expected ErrNotComplete, got %v", err)
	}
}

func TestResultScoresAnswers(t *testing.T) {
	w := completedWalkthrough(t, []int{3, 3, 3, 3, 3})
	res, err := w.Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RawScore != 15 || res.Pathway != PathwayCritical {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestAllowedExits(t *testing.T) {
	crit := AllowedExits(PathwayCritical)
	if len(crit) != 2 || crit[0] != ExitCrisisSupport || crit[1] != ExitPsychiatrist {
		t.Errorf("unexpected critical exits: %v", crit)
	}
	mod := AllowedExits(PathwayModerate)
	if len(mod) != 1 || mod[0] != ExitPsychologist {
		t.Errorf("unexpected moderate exits: %v", mod)
	}
}

func TestRouteFor(t *testing.T) {
	cases := map[Exit]string{
		ExitCrisisSupport: "/crisis-support",
		ExitPsychiatrist:  "/select-psychiatrist",
		ExitPsychologist:  "/select-psychologist",
	}
	for exit, want := range cases {
		if got := RouteFor(exit); got != want {
			t.Errorf("RouteFor(%s) = %s, want %s", exit, got, want)
		}
	}
}
