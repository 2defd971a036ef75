package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JitendraDubey2004/TalentFlow/internal/assessment"
	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

// MemoryRepository implements Repository with in-process maps. It is the
// analog of the original system's in-browser database: the whole backend
// held in memory, suitable for standalone demo mode and tests. All methods
// deep-copy on the way in and out so callers never share mutable state with
// the store.
type MemoryRepository struct {
	mu sync.RWMutex

	assessments map[int64]*models.Assessment
	submissions []*models.Submission
	jobs        map[int64]*models.Job
	candidates  map[int64]*models.Candidate
	timelines   map[int64][]*models.TimelineEvent

	nextJobID       int64
	nextCandidateID int64
	nextEventID     int64
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		assessments: make(map[int64]*models.Assessment),
		jobs:        make(map[int64]*models.Job),
		candidates:  make(map[int64]*models.Candidate),
		timelines:   make(map[int64][]*models.TimelineEvent),
	}
}

// GetAssessment returns a copy of the stored schema, or an empty record
// when none exists for the job
func (r *MemoryRepository) GetAssessment(ctx context.Context, jobID int64) (*models.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.assessments[jobID]
	if !ok {
		return models.EmptyAssessment(jobID), nil
	}
	return a.Clone(), nil
}

// SaveAssessment upserts the schema, stamping a fresh UpdatedAt
func (r *MemoryRepository) SaveAssessment(ctx context.Context, jobID int64, a *models.Assessment) (*models.Assessment, error) {
	if a == nil || a.Sections == nil {
		return nil, assessment.ErrMalformedSchema
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := a.Clone()
	stored.JobID = jobID
	stored.UpdatedAt = time.Now().UTC()
	r.assessments[jobID] = stored

	return stored.Clone(), nil
}

// DeleteAssessment removes the schema for a job
func (r *MemoryRepository) DeleteAssessment(ctx context.Context, jobID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.assessments[jobID]; !ok {
		return assessment.ErrAssessmentNotFound
	}
	delete(r.assessments, jobID)
	return nil
}

// CreateSubmission stores a submission record and returns its generated id
func (r *MemoryRepository) CreateSubmission(ctx context.Context, sub *models.Submission) (string, error) {
	if sub == nil || sub.CandidateID == 0 || sub.Responses == nil {
		return "", assessment.ErrInvalidSubmission
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *sub
	stored.ID = uuid.NewString()
	stored.Responses = sub.Responses.Clone()
	if stored.SubmissionDate.IsZero() {
		stored.SubmissionDate = time.Now().UTC()
	}
	r.submissions = append(r.submissions, &stored)

	return stored.ID, nil
}

// ListSubmissions returns all submissions for a job, newest first
func (r *MemoryRepository) ListSubmissions(ctx context.Context, jobID int64) ([]*models.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Submission
	for _, s := range r.submissions {
		if s.JobID == jobID {
			c := *s
			c.Responses = s.Responses.Clone()
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmissionDate.After(out[j].SubmissionDate)
	})
	return out, nil
}

// DeleteSubmissionsBefore prunes submissions older than the cutoff and
// returns how many were removed
func (r *MemoryRepository) DeleteSubmissionsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.submissions[:0]
	removed := 0
	for _, s := range r.submissions {
		if s.SubmissionDate.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	r.submissions = kept
	return removed, nil
}

// CreateJob stores a job, assigning an id when none is set
func (r *MemoryRepository) CreateJob(ctx context.Context, job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if job.ID == 0 {
		r.nextJobID++
		job.ID = r.nextJobID
	} else if job.ID > r.nextJobID {
		r.nextJobID = job.ID
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	c := *job
	r.jobs[job.ID] = &c
	return nil
}

// GetJob returns a job by id, or nil when absent
func (r *MemoryRepository) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	c := *j
	return &c, nil
}

// ListJobs returns all jobs in board order
func (r *MemoryRepository) ListJobs(ctx context.Context) ([]*models.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		c := *j
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

// CreateCandidate stores a candidate and records the initial timeline event
func (r *MemoryRepository) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == 0 {
		r.nextCandidateID++
		c.ID = r.nextCandidateID
	} else if c.ID > r.nextCandidateID {
		r.nextCandidateID = c.ID
	}
	if c.Stage == "" {
		c.Stage = models.StageApplied
	}
	if c.AppliedAt.IsZero() {
		c.AppliedAt = time.Now().UTC()
	}

	stored := *c
	r.candidates[c.ID] = &stored

	r.nextEventID++
	r.timelines[c.ID] = append(r.timelines[c.ID], &models.TimelineEvent{
		ID:          r.nextEventID,
		CandidateID: c.ID,
		ToStage:     stored.Stage,
		Timestamp:   stored.AppliedAt,
	})
	return nil
}

// ListCandidates returns candidates matching the filters, oldest first
func (r *MemoryRepository) ListCandidates(ctx context.Context, filters models.CandidateFilters) ([]*models.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Candidate
	for _, c := range r.candidates {
		if filters.JobID != 0 && c.JobID != filters.JobID {
			continue
		}
		if filters.Stage != "" && c.Stage != filters.Stage {
			continue
		}
		cc := *c
		out = append(out, &cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if filters.Offset > 0 {
		if filters.Offset >= len(out) {
			return nil, nil
		}
		out = out[filters.Offset:]
	}
	if filters.Limit > 0 && filters.Limit < len(out) {
		out = out[:filters.Limit]
	}
	return out, nil
}

// UpdateCandidateStage moves a candidate through the pipeline and appends a
// timeline event for the transition
func (r *MemoryRepository) UpdateCandidateStage(ctx context.Context, id int64, stage models.CandidateStage, note string) (*models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.candidates[id]
	if !ok {
		return nil, nil
	}

	from := c.Stage
	c.Stage = stage

	r.nextEventID++
	r.timelines[id] = append(r.timelines[id], &models.TimelineEvent{
		ID:          r.nextEventID,
		CandidateID: id,
		FromStage:   from,
		ToStage:     stage,
		Note:        note,
		Timestamp:   time.Now().UTC(),
	})

	cc := *c
	return &cc, nil
}

// GetTimeline returns a candidate's stage history in chronological order
func (r *MemoryRepository) GetTimeline(ctx context.Context, candidateID int64) ([]*models.TimelineEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := r.timelines[candidateID]
	out := make([]*models.TimelineEvent, len(events))
	for i, e := range events {
		c := *e
		out[i] = &c
	}
	return out, nil
}

// Ping always succeeds for the in-memory store
func (r *MemoryRepository) Ping(ctx context.Context) error { return nil }

// Close is a no-op for the in-memory store
func (r *MemoryRepository) Close() error { return nil }
