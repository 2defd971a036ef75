package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

// Job handlers

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.repo.ListJobs(r.Context())
	if err != nil {
		slog.Error("failed to list jobs", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list jobs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

type createJobRequest struct {
	Title       string   `json:"title"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "title is required")
		return
	}

	job := &models.Job{
		Title:       req.Title,
		Slug:        slugify(req.Title),
		Status:      models.JobActive,
		Tags:        req.Tags,
		Description: req.Description,
	}

	if err := s.repo.CreateJob(r.Context(), job); err != nil {
		slog.Error("failed to create job", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create job")
		return
	}

	respondJSON(w, http.StatusCreated, job)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "job id must be a positive integer")
		return
	}

	job, err := s.repo.GetJob(r.Context(), id)
	if err != nil {
		slog.Error("failed to get job", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get job")
		return
	}
	if job == nil {
		respondError(w, http.StatusNotFound, "not_found", "job not found")
		return
	}

	respondJSON(w, http.StatusOK, job)
}

// Candidate handlers

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	filters := models.CandidateFilters{
		Stage: models.CandidateStage(r.URL.Query().Get("stage")),
		Limit: 50, // default
	}

	if jobIDStr := r.URL.Query().Get("jobId"); jobIDStr != "" {
		if jobID, err := strconv.ParseInt(jobIDStr, 10, 64); err == nil && jobID > 0 {
			filters.JobID = jobID
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filters.Limit = limit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filters.Offset = offset
		}
	}

	candidates, err := s.repo.ListCandidates(r.Context(), filters)
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list candidates")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"candidates": candidates,
		"total":      len(candidates),
	})
}

type createCandidateRequest struct {
	JobID int64  `json:"jobId"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req createCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.JobID <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "jobId is required")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "name and email are required")
		return
	}

	c := &models.Candidate{
		JobID: req.JobID,
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Stage: models.StageApplied,
	}

	if err := s.repo.CreateCandidate(r.Context(), c); err != nil {
		slog.Error("failed to create candidate", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create candidate")
		return
	}

	respondJSON(w, http.StatusCreated, c)
}

type updateStageRequest struct {
	Stage models.CandidateStage `json:"stage"`
	Note  string                `json:"note"`
}

func (s *Server) handleUpdateCandidateStage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "candidate id must be a positive integer")
		return
	}

	var req updateStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if !req.Stage.IsValid() {
		respondError(w, http.StatusBadRequest, "validation_error", "unknown pipeline stage")
		return
	}

	c, err := s.repo.UpdateCandidateStage(r.Context(), id, req.Stage, req.Note)
	if err != nil {
		slog.Error("failed to update candidate stage", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update candidate stage")
		return
	}
	if c == nil {
		respondError(w, http.StatusNotFound, "not_found", "candidate not found")
		return
	}

	respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleGetTimeline(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "candidate id must be a positive integer")
		return
	}

	events, err := s.repo.GetTimeline(r.Context(), id)
	if err != nil {
		slog.Error("failed to get timeline", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get timeline")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"total":  len(events),
	})
}

// slugify turns a job title into a URL-safe slug
func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.ReplaceAll(slug, " ", "-")
	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
