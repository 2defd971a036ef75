package storage

import (
	"context"
	"time"

	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

// Repository defines the interface for hiring-domain persistence. Its
// assessment methods satisfy the narrower assessment.Store contract the
// builder and runtime engines consume, so any Repository plugs in as a
// persistence boundary.
type Repository interface {
	// Assessments
	GetAssessment(ctx context.Context, jobID int64) (*models.Assessment, error)
	SaveAssessment(ctx context.Context, jobID int64, a *models.Assessment) (*models.Assessment, error)
	DeleteAssessment(ctx context.Context, jobID int64) error

	// Submissions
	CreateSubmission(ctx context.Context, sub *models.Submission) (string, error)
	ListSubmissions(ctx context.Context, jobID int64) ([]*models.Submission, error)
	DeleteSubmissionsBefore(ctx context.Context, cutoff time.Time) (int, error)

	// Jobs
	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	ListJobs(ctx context.Context) ([]*models.Job, error)

	// Candidates
	CreateCandidate(ctx context.Context, c *models.Candidate) error
	ListCandidates(ctx context.Context, filters models.CandidateFilters) ([]*models.Candidate, error)
	UpdateCandidateStage(ctx context.Context, id int64, stage models.CandidateStage, note string) (*models.Candidate, error)
	GetTimeline(ctx context.Context, candidateID int64) ([]*models.TimelineEvent, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}
