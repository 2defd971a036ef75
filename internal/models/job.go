package models

import (
	"time"
)

// JobStatus represents the lifecycle state of a job posting
type JobStatus string

const (
	JobActive   JobStatus = "active"
	JobArchived JobStatus = "archived"
)

// Job is one job posting. Order is the display position on the jobs board.
type Job struct {
	ID          int64     `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Slug        string    `json:"slug" yaml:"slug"`
	Status      JobStatus `json:"status" yaml:"status"`
	Tags        []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Order       int       `json:"order" yaml:"order"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt" yaml:"-"`
}

// CandidateStage is a pipeline stage in the hiring kanban
type CandidateStage string

const (
	StageApplied  CandidateStage = "applied"
	StageScreen   CandidateStage = "screen"
	StageTech     CandidateStage = "tech"
	StageOffer    CandidateStage = "offer"
	StageHired    CandidateStage = "hired"
	StageRejected CandidateStage = "rejected"
)

// Stages lists all pipeline stages in board order
var Stages = []CandidateStage{StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected}

// IsValid reports whether s is a known pipeline stage
func (s CandidateStage) IsValid() bool {
	for _, st := range Stages {
		if s == st {
			return true
		}
	}
	return false
}

// IsTerminal returns true once a candidate has left the active pipeline
func (s CandidateStage) IsTerminal() bool {
	return s == StageHired || s == StageRejected
}

// Candidate is one applicant attached to a job
type Candidate struct {
	ID        int64          `json:"id"`
	JobID     int64          `json:"jobId"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Stage     CandidateStage `json:"stage"`
	Phone     string         `json:"phone,omitempty"`
	AppliedAt time.Time      `json:"appliedAt"`
}

// TimelineEvent records one stage transition in a candidate's history
type TimelineEvent struct {
	ID          int64          `json:"id"`
	CandidateID int64          `json:"candidateId"`
	FromStage   CandidateStage `json:"fromStage,omitempty"`
	ToStage     CandidateStage `json:"toStage"`
	Note        string         `json:"note,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// CandidateFilters narrows candidate listings
type CandidateFilters struct {
	JobID  int64
	Stage  CandidateStage
	Limit  int
	Offset int
}
