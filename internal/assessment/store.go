package assessment

import (
	"context"

	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

// Store is the persistence boundary consumed by the builder and runtime
// engines. Any engine fulfilling this contract is interchangeable: the
// in-memory repository, the postgres repository, the redis cache decorator
// and the HTTP client all implement it.
type Store interface {
	// GetAssessment returns the assessment for a job, or an empty
	// {jobId, sections: []} record when none exists. Never returns
	// ErrAssessmentNotFound.
	GetAssessment(ctx context.Context, jobID int64) (*models.Assessment, error)

	// SaveAssessment upserts the schema and returns the persisted record
	// with a fresh UpdatedAt. Returns ErrMalformedSchema when the
	// sections field is nil.
	SaveAssessment(ctx context.Context, jobID int64, a *models.Assessment) (*models.Assessment, error)

	// DeleteAssessment removes the schema, returning
	// ErrAssessmentNotFound when none existed
	DeleteAssessment(ctx context.Context, jobID int64) error

	// CreateSubmission stores an immutable submission record and returns
	// its generated id. Returns ErrInvalidSubmission when the candidate
	// id or responses are missing.
	CreateSubmission(ctx context.Context, sub *models.Submission) (string, error)
}
