package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JitendraDubey2004/TalentFlow/internal/assessment"
	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL. Assessment
// sections and submission responses are stored as JSONB documents so the
// schema round-trips byte-for-byte: section order, question order, ids and
// option lists come back exactly as saved.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxIdleConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 25 // default
	}

	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	} else {
		poolConfig.MinConns = 5 // default
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// GetAssessment retrieves the schema for a job, returning an empty record
// when none exists
func (r *PostgresRepository) GetAssessment(ctx context.Context, jobID int64) (*models.Assessment, error) {
	query := `
		SELECT title, sections, updated_at
		FROM assessments
		WHERE job_id = $1
	`

	var title string
	var sectionsJSON []byte
	var updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, jobID).Scan(&title, &sectionsJSON, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.EmptyAssessment(jobID), nil
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	a := &models.Assessment{JobID: jobID, Title: title, UpdatedAt: updatedAt}
	if err := json.Unmarshal(sectionsJSON, &a.Sections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sections: %w", err)
	}
	if a.Sections == nil {
		a.Sections = []models.Section{}
	}

	return a, nil
}

// SaveAssessment upserts the schema and returns the persisted record with
// its fresh UpdatedAt
func (r *PostgresRepository) SaveAssessment(ctx context.Context, jobID int64, a *models.Assessment) (*models.Assessment, error) {
	if a == nil || a.Sections == nil {
		return nil, assessment.ErrMalformedSchema
	}

	sectionsJSON, err := json.Marshal(a.Sections)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sections: %w", err)
	}

	query := `
		INSERT INTO assessments (job_id, title, sections, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (job_id) DO UPDATE
		SET title = EXCLUDED.title, sections = EXCLUDED.sections, updated_at = NOW()
		RETURNING updated_at
	`

	var updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, jobID, a.Title, sectionsJSON).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}

	saved := a.Clone()
	saved.JobID = jobID
	saved.UpdatedAt = updatedAt
	return saved, nil
}

// DeleteAssessment removes the schema for a job
func (r *PostgresRepository) DeleteAssessment(ctx context.Context, jobID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM assessments WHERE job_id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return assessment.ErrAssessmentNotFound
	}
	return nil
}

// CreateSubmission stores a submission record and returns its generated id
func (r *PostgresRepository) CreateSubmission(ctx context.Context, sub *models.Submission) (string, error) {
	if sub == nil || sub.CandidateID == 0 || sub.Responses == nil {
		return "", assessment.ErrInvalidSubmission
	}

	responsesJSON, err := json.Marshal(sub.Responses)
	if err != nil {
		return "", fmt.Errorf("failed to marshal responses: %w", err)
	}

	id := uuid.NewString()
	submittedAt := sub.SubmissionDate
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO submissions (id, job_id, candidate_id, responses, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := r.pool.Exec(ctx, query, id, sub.JobID, sub.CandidateID, responsesJSON, submittedAt); err != nil {
		return "", fmt.Errorf("failed to create submission: %w", err)
	}

	return id, nil
}

// ListSubmissions returns all submissions for a job, newest first
func (r *PostgresRepository) ListSubmissions(ctx context.Context, jobID int64) ([]*models.Submission, error) {
	query := `
		SELECT id, job_id, candidate_id, responses, submitted_at
		FROM submissions
		WHERE job_id = $1
		ORDER BY submitted_at DESC
	`

	rows, err := r.pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var out []*models.Submission
	for rows.Next() {
		var sub models.Submission
		var responsesJSON []byte
		if err := rows.Scan(&sub.ID, &sub.JobID, &sub.CandidateID, &responsesJSON, &sub.SubmissionDate); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		if err := json.Unmarshal(responsesJSON, &sub.Responses); err != nil {
			return nil, fmt.Errorf("failed to unmarshal responses: %w", err)
		}
		out = append(out, &sub)
	}

	return out, rows.Err()
}

// DeleteSubmissionsBefore prunes submissions older than the cutoff
func (r *PostgresRepository) DeleteSubmissionsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM submissions WHERE submitted_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune submissions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// CreateJob stores a job posting
func (r *PostgresRepository) CreateJob(ctx context.Context, job *models.Job) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	if job.Status == "" {
		job.Status = models.JobActive
	}

	if job.ID == 0 {
		query := `
			INSERT INTO jobs (title, slug, status, tags, sort_order, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		return r.pool.QueryRow(ctx, query,
			job.Title, job.Slug, string(job.Status), job.Tags, job.Order, job.Description, job.CreatedAt,
		).Scan(&job.ID)
	}

	query := `
		INSERT INTO jobs (id, title, slug, status, tags, sort_order, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		job.ID, job.Title, job.Slug, string(job.Status), job.Tags, job.Order, job.Description, job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// GetJob retrieves a job by id, returning nil when absent
func (r *PostgresRepository) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	query := `
		SELECT id, title, slug, status, tags, sort_order, description, created_at
		FROM jobs
		WHERE id = $1
	`

	var job models.Job
	var status string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.Title, &job.Slug, &status, &job.Tags, &job.Order, &job.Description, &job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	job.Status = models.JobStatus(status)
	return &job, nil
}

// ListJobs returns all jobs in board order
func (r *PostgresRepository) ListJobs(ctx context.Context) ([]*models.Job, error) {
	query := `
		SELECT id, title, slug, status, tags, sort_order, description, created_at
		FROM jobs
		ORDER BY sort_order, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var out []*models.Job
	for rows.Next() {
		var job models.Job
		var status string
		if err := rows.Scan(&job.ID, &job.Title, &job.Slug, &status, &job.Tags, &job.Order, &job.Description, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		job.Status = models.JobStatus(status)
		out = append(out, &job)
	}

	return out, rows.Err()
}

// CreateCandidate stores a candidate and the initial timeline event in one
// transaction
func (r *PostgresRepository) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	if c.Stage == "" {
		c.Stage = models.StageApplied
	}
	if c.AppliedAt.IsZero() {
		c.AppliedAt = time.Now().UTC()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if c.ID == 0 {
		query := `
			INSERT INTO candidates (job_id, name, email, stage, phone, applied_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		if err := tx.QueryRow(ctx, query, c.JobID, c.Name, c.Email, string(c.Stage), c.Phone, c.AppliedAt).Scan(&c.ID); err != nil {
			return fmt.Errorf("failed to create candidate: %w", err)
		}
	} else {
		query := `
			INSERT INTO candidates (id, job_id, name, email, stage, phone, applied_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		if _, err := tx.Exec(ctx, query, c.ID, c.JobID, c.Name, c.Email, string(c.Stage), c.Phone, c.AppliedAt); err != nil {
			return fmt.Errorf("failed to create candidate: %w", err)
		}
	}

	eventQuery := `
		INSERT INTO candidate_timelines (candidate_id, from_stage, to_stage, note, created_at)
		VALUES ($1, '', $2, '', $3)
	`
	if _, err := tx.Exec(ctx, eventQuery, c.ID, string(c.Stage), c.AppliedAt); err != nil {
		return fmt.Errorf("failed to record timeline event: %w", err)
	}

	return tx.Commit(ctx)
}

// ListCandidates returns candidates matching the filters
func (r *PostgresRepository) ListCandidates(ctx context.Context, filters models.CandidateFilters) ([]*models.Candidate, error) {
	query := `
		SELECT id, job_id, name, email, stage, phone, applied_at
		FROM candidates
		WHERE ($1 = 0 OR job_id = $1)
		  AND ($2 = '' OR stage = $2)
		ORDER BY id
		LIMIT $3 OFFSET $4
	`

	limit := filters.Limit
	if limit <= 0 {
		limit = 50 // default
	}

	rows, err := r.pool.Query(ctx, query, filters.JobID, string(filters.Stage), limit, filters.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var out []*models.Candidate
	for rows.Next() {
		var c models.Candidate
		var stage string
		if err := rows.Scan(&c.ID, &c.JobID, &c.Name, &c.Email, &stage, &c.Phone, &c.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		c.Stage = models.CandidateStage(stage)
		out = append(out, &c)
	}

	return out, rows.Err()
}

// UpdateCandidateStage moves a candidate through the pipeline and records
// the transition
func (r *PostgresRepository) UpdateCandidateStage(ctx context.Context, id int64, stage models.CandidateStage, note string) (*models.Candidate, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var c models.Candidate
	var fromStage string
	selectQuery := `
		SELECT id, job_id, name, email, stage, phone, applied_at
		FROM candidates
		WHERE id = $1
		FOR UPDATE
	`
	err = tx.QueryRow(ctx, selectQuery, id).Scan(
		&c.ID, &c.JobID, &c.Name, &c.Email, &fromStage, &c.Phone, &c.AppliedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load candidate: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE candidates SET stage = $2 WHERE id = $1`, id, string(stage)); err != nil {
		return nil, fmt.Errorf("failed to update candidate stage: %w", err)
	}
	c.Stage = stage

	eventQuery := `
		INSERT INTO candidate_timelines (candidate_id, from_stage, to_stage, note, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	if _, err := tx.Exec(ctx, eventQuery, id, fromStage, string(stage), note); err != nil {
		return nil, fmt.Errorf("failed to record timeline event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetTimeline returns a candidate's stage history in chronological order
func (r *PostgresRepository) GetTimeline(ctx context.Context, candidateID int64) ([]*models.TimelineEvent, error) {
	query := `
		SELECT id, candidate_id, from_stage, to_stage, note, created_at
		FROM candidate_timelines
		WHERE candidate_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get timeline: %w", err)
	}
	defer rows.Close()

	var out []*models.TimelineEvent
	for rows.Next() {
		var e models.TimelineEvent
		var from, to string
		if err := rows.Scan(&e.ID, &e.CandidateID, &from, &to, &e.Note, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan timeline event: %w", err)
		}
		e.FromStage = models.CandidateStage(from)
		e.ToStage = models.CandidateStage(to)
		out = append(out, &e)
	}

	return out, rows.Err()
}
