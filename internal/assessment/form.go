package assessment

import (
	"context"
	"fmt"
	"time"

	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

// FormState is the runtime form lifecycle
type FormState string

const (
	FormLoading    FormState = "loading"
	FormReady      FormState = "ready"
	FormSubmitting FormState = "submitting"
	FormSubmitted  FormState = "submitted"
)

// Form drives candidate-facing answer collection for one assessment
// session: it tracks answers, re-evaluates visibility on every change, and
// blocks submission until every visible required question passes
// validation. Submitted is terminal for the session.
type Form struct {
	store       Store
	jobID       int64
	candidateID int64

	state       FormState
	assessment  *models.Assessment
	answers     models.AnswerSet
	fieldErrors map[int]string
	submitErr   error
}

// NewForm fetches the assessment for a job and returns a form in the Ready
// state. A job with no saved assessment yields an empty, immediately
// submittable form — never an error.
func NewForm(ctx context.Context, store Store, jobID, candidateID int64) (*Form, error) {
	a, err := store.GetAssessment(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment for job %d: %w", jobID, err)
	}
	if a == nil {
		a = models.EmptyAssessment(jobID)
	}

	return &Form{
		store:       store,
		jobID:       jobID,
		candidateID: candidateID,
		state:       FormReady,
		assessment:  a,
		answers:     models.AnswerSet{},
		fieldErrors: map[int]string{},
	}, nil
}

// State returns the current lifecycle state
func (f *Form) State() FormState { return f.state }

// Assessment returns the loaded schema
func (f *Form) Assessment() *models.Assessment { return f.assessment }

// Answers returns a copy of the current answer set
func (f *Form) Answers() models.AnswerSet { return f.answers.Clone() }

// FieldErrors returns the per-question errors from the last blocked submit
func (f *Form) FieldErrors() map[int]string { return f.fieldErrors }

// SubmitError returns the top-level error from the last failed submit,
// distinct from per-field validation errors
func (f *Form) SubmitError() error { return f.submitErr }

// SetAnswer records an answer and eagerly clears any stored error for that
// question so stale messages are not displayed while the candidate edits.
// Errors are recomputed in full only at submit time.
func (f *Form) SetAnswer(questionID int, answer models.Answer) error {
	if f.state != FormReady {
		return fmt.Errorf("cannot edit answers while form is %s", f.state)
	}
	f.answers[questionID] = answer
	delete(f.fieldErrors, questionID)
	return nil
}

// Render produces the current display plan: visible questions with their
// answers and any errors from the last blocked submit
func (f *Form) Render() []RenderedSection {
	return Render(f.assessment, f.answers, f.fieldErrors, false)
}

// Submit validates every visible question and, when clean, packages the
// answers into a Submission and pushes it through the persistence boundary.
//
// A blocked submit attaches the field error map and returns
// ErrValidationFailed without leaving Ready. A boundary failure returns to
// Ready with the answers preserved for retry and the error available via
// SubmitError. Success transitions to Submitted, which is terminal.
//
// The submission snapshot includes answers for questions hidden at submit
// time: conditions are re-evaluated dynamically, so a hidden question could
// become visible again, and its typed answer must not be lost.
func (f *Form) Submit(ctx context.Context) (*models.Submission, error) {
	switch f.state {
	case FormSubmitting:
		return nil, fmt.Errorf("a submit is already in flight")
	case FormSubmitted:
		return nil, fmt.Errorf("form has already been submitted")
	}

	errs := ValidateAll(f.assessment, f.answers)
	if len(errs) > 0 {
		f.fieldErrors = errs
		return nil, ErrValidationFailed
	}

	f.state = FormSubmitting
	f.fieldErrors = map[int]string{}
	f.submitErr = nil

	sub := &models.Submission{
		JobID:          f.jobID,
		CandidateID:    f.candidateID,
		Responses:      f.answers.Clone(),
		SubmissionDate: time.Now().UTC(),
	}

	id, err := f.store.CreateSubmission(ctx, sub)
	if err != nil {
		// Back to Ready with answers intact; caller decides on retry
		f.state = FormReady
		f.submitErr = err
		return nil, err
	}
	if ctx.Err() != nil {
		// The session was abandoned mid-submit: discard the result
		// rather than applying it to stale state
		f.state = FormReady
		f.submitErr = ctx.Err()
		return nil, ctx.Err()
	}

	sub.ID = id
	f.state = FormSubmitted
	return sub, nil
}
