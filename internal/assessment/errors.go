package assessment

import "errors"

var (
	// ErrMalformedSchema indicates a schema missing its sections field.
	// Not retryable; the caller must fix the schema.
	ErrMalformedSchema = errors.New("assessment must contain sections")

	// ErrAssessmentNotFound is returned by delete when no assessment
	// exists for the job. Reads never return it; a missing assessment
	// reads back as an empty record.
	ErrAssessmentNotFound = errors.New("assessment not found")

	// ErrInvalidSubmission indicates a submission missing its candidate
	// id or responses
	ErrInvalidSubmission = errors.New("candidate id and responses are required")

	// ErrTransient is a simulated or real network failure. Always safe to
	// retry; the core never retries automatically.
	ErrTransient = errors.New("transient storage error")

	// ErrValidationFailed blocks a submit while one or more visible
	// questions fail validation. Field errors travel as data alongside
	// it, never as panics or wrapped messages.
	ErrValidationFailed = errors.New("one or more answers failed validation")
)
