package assessment

import (
	"context"
	"errors"
	"testing"

	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

// screeningSchema is a two-question schema: Q1 numeric 1..10 required, Q2
// long-text required but only visible when Q1 equals 10
func screeningSchema() *models.Assessment {
	return &models.Assessment{
		JobID: 1,
		Sections: []models.Section{{
			ID:    1,
			Title: "Screening",
			Questions: []models.Question{
				{
					ID:   1,
					Text: "Rate your Go experience 1-10",
					Type: models.TypeNumeric,
					Validation: models.Validation{
						Required: true,
						Min:      floatPtr(1),
						Max:      floatPtr(10),
					},
				},
				{
					ID:         2,
					Text:       "Tell us more",
					Type:       models.TypeLongText,
					Validation: models.Validation{Required: true},
					Condition: &models.Condition{
						TargetQID: 1,
						Operator:  models.OpEquals,
						Value:     models.NumberScalar(10),
					},
				},
			},
		}},
	}
}

func newScreeningForm(t *testing.T, store *fakeStore) *Form {
	t.Helper()
	store.assessments[1] = screeningSchema()
	f, err := NewForm(context.Background(), store, 1, 7)
	if err != nil {
		t.Fatalf("NewForm failed: %v", err)
	}
	return f
}

func TestFormMissingAssessmentIsEmptyForm(t *testing.T) {
	f, err := NewForm(context.Background(), newFakeStore(), 99, 7)
	if err != nil {
		t.Fatalf("a job without an assessment must not error: %v", err)
	}
	if f.State() != FormReady {
		t.Errorf("expected ready, got %s", f.State())
	}

	// Nothing to validate: submit goes straight through
	sub, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("empty form should submit, got %v", err)
	}
	if sub.JobID != 99 || sub.CandidateID != 7 {
		t.Errorf("unexpected submission %+v", sub)
	}
}

func TestFormSubmitBlockedByValidation(t *testing.T) {
	f := newScreeningForm(t, newFakeStore())

	_, err := f.Submit(context.Background())
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if f.State() != FormReady {
		t.Errorf("blocked submit must stay ready, got %s", f.State())
	}
	if f.FieldErrors()[1] != "This field is required." {
		t.Errorf("unexpected field errors %v", f.FieldErrors())
	}
}

func TestFormSetAnswerClearsFieldError(t *testing.T) {
	f := newScreeningForm(t, newFakeStore())

	f.Submit(context.Background())
	if len(f.FieldErrors()) == 0 {
		t.Fatal("expected field errors after blocked submit")
	}

	if err := f.SetAnswer(1, models.TextAnswer("5")); err != nil {
		t.Fatalf("SetAnswer failed: %v", err)
	}
	if _, ok := f.FieldErrors()[1]; ok {
		t.Error("editing an answer should clear its stored error")
	}
}

func TestFormConditionalVisibilityDuringFill(t *testing.T) {
	f := newScreeningForm(t, newFakeStore())

	// Q1 = 5: Q2 hidden, form is submittable once Q1 passes
	f.SetAnswer(1, models.TextAnswer("5"))
	sections := f.Render()
	if sections[0].Questions[1].Visible {
		t.Error("Q2 should be hidden while Q1 != 10")
	}

	// Q1 = 10: Q2 appears and blocks submit
	f.SetAnswer(1, models.TextAnswer("10"))
	sections = f.Render()
	if !sections[0].Questions[1].Visible {
		t.Error("Q2 should be visible when Q1 == 10")
	}
	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if f.FieldErrors()[2] != "This field is required." {
		t.Errorf("unexpected field errors %v", f.FieldErrors())
	}
}

func TestFormSubmitSuccess(t *testing.T) {
	store := newFakeStore()
	f := newScreeningForm(t, store)

	f.SetAnswer(1, models.TextAnswer("7"))
	sub, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if f.State() != FormSubmitted {
		t.Errorf("expected submitted, got %s", f.State())
	}
	if sub.ID != "sub-1" {
		t.Errorf("expected generated submission id, got %q", sub.ID)
	}
	if len(store.submissions) != 1 {
		t.Fatalf("expected one stored submission, got %d", len(store.submissions))
	}

	// Submitted is terminal
	if _, err := f.Submit(context.Background()); err == nil {
		t.Error("second submit must be rejected")
	}
	if err := f.SetAnswer(1, models.TextAnswer("8")); err == nil {
		t.Error("answers must be frozen after submit")
	}
}

func TestFormSubmitIncludesHiddenAnswers(t *testing.T) {
	store := newFakeStore()
	f := newScreeningForm(t, store)

	// Answer Q2 while visible, then hide it again by changing Q1
	f.SetAnswer(1, models.TextAnswer("10"))
	f.SetAnswer(2, models.TextAnswer("lots of detail"))
	f.SetAnswer(1, models.TextAnswer("5"))

	sub, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// The hidden answer travels with the snapshot; hiding skips
	// validation, not storage
	if got := sub.Responses[2].Text(); got != "lots of detail" {
		t.Errorf("hidden answer missing from submission, got %q", got)
	}
}

func TestFormTransientFailureAllowsRetry(t *testing.T) {
	store := newFakeStore()
	f := newScreeningForm(t, store)
	f.SetAnswer(1, models.TextAnswer("7"))

	store.failSubmit = ErrTransient
	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrTransient) {
		t.Fatalf("expected ErrTransient, got %v", err)
	}
	if f.State() != FormReady {
		t.Errorf("failed submit must return to ready, got %s", f.State())
	}
	if !errors.Is(f.SubmitError(), ErrTransient) {
		t.Errorf("submit error should be exposed, got %v", f.SubmitError())
	}
	if f.Answers()[1].Text() != "7" {
		t.Error("answers must survive a failed submit")
	}

	store.failSubmit = nil
	sub, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("retry should succeed, got %v", err)
	}
	if sub == nil || f.State() != FormSubmitted {
		t.Error("retry should complete the submission")
	}
	if f.SubmitError() != nil {
		t.Errorf("submit error should clear on success, got %v", f.SubmitError())
	}
}

func TestFormAnswersReturnsCopy(t *testing.T) {
	f := newScreeningForm(t, newFakeStore())
	f.SetAnswer(1, models.TextAnswer("7"))

	snapshot := f.Answers()
	snapshot[1] = models.TextAnswer("mutated")

	if f.Answers()[1].Text() != "7" {
		t.Error("Answers must return a copy, not internal state")
	}
}
