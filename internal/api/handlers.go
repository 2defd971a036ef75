package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JitendraDubey2004/TalentFlow/internal/assessment"
	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code        string         `json:"code"`
	Message     string         `json:"message"`
	FieldErrors map[int]string `json:"fieldErrors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

func respondFieldErrors(w http.ResponseWriter, fieldErrors map[int]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:        "validation_error",
			Message:     "one or more answers failed validation",
			FieldErrors: fieldErrors,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

func jobIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "jobID"), 10, 64)
	return id, err == nil && id > 0
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "not_ready", "service not ready")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// Assessment handlers

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "job id must be a positive integer")
		return
	}

	a, err := s.repo.GetAssessment(r.Context(), jobID)
	if err != nil {
		slog.Error("failed to get assessment", "error", err, "job_id", jobID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get assessment")
		return
	}

	respondJSON(w, http.StatusOK, a)
}

// saveAssessmentRequest detects a structurally absent sections field, which
// is distinct from an empty list
type saveAssessmentRequest struct {
	Title    string            `json:"title"`
	Sections *[]models.Section `json:"sections"`
}

func (s *Server) handleSaveAssessment(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "job id must be a positive integer")
		return
	}

	var req saveAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Sections == nil {
		respondError(w, http.StatusBadRequest, "malformed_schema", "assessment must contain sections")
		return
	}

	saved, err := s.repo.SaveAssessment(r.Context(), jobID, &models.Assessment{
		JobID:    jobID,
		Title:    req.Title,
		Sections: *req.Sections,
	})
	if err != nil {
		if errors.Is(err, assessment.ErrMalformedSchema) {
			respondError(w, http.StatusBadRequest, "malformed_schema", "assessment must contain sections")
			return
		}
		slog.Error("failed to save assessment", "error", err, "job_id", jobID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save assessment")
		return
	}

	respondJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteAssessment(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "job id must be a positive integer")
		return
	}

	if err := s.repo.DeleteAssessment(r.Context(), jobID); err != nil {
		if errors.Is(err, assessment.ErrAssessmentNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "assessment not found")
			return
		}
		slog.Error("failed to delete assessment", "error", err, "job_id", jobID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete assessment")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "assessment deleted",
	})
}

type submitRequest struct {
	CandidateID int64            `json:"candidateId"`
	Responses   models.AnswerSet `json:"responses"`
}

func (s *Server) handleSubmitAssessment(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "job id must be a positive integer")
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.CandidateID == 0 || req.Responses == nil {
		respondError(w, http.StatusBadRequest, "invalid_submission", "candidate id and responses are required")
		return
	}

	// The client ran these rules already; the server re-runs them against
	// the stored schema so a bypassed client cannot submit invalid
	// answers. Hidden questions are skipped here exactly as they are in
	// the form, so stray answers for hidden questions pass through.
	schema, err := s.repo.GetAssessment(r.Context(), jobID)
	if err != nil {
		slog.Error("failed to load schema for submit", "error", err, "job_id", jobID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load assessment")
		return
	}

	if fieldErrors := assessment.ValidateAll(schema, req.Responses); len(fieldErrors) > 0 {
		respondFieldErrors(w, fieldErrors)
		return
	}

	id, err := s.repo.CreateSubmission(r.Context(), &models.Submission{
		JobID:          jobID,
		CandidateID:    req.CandidateID,
		Responses:      req.Responses,
		SubmissionDate: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, assessment.ErrInvalidSubmission) {
			respondError(w, http.StatusBadRequest, "invalid_submission", "candidate id and responses are required")
			return
		}
		slog.Error("failed to create submission", "error", err, "job_id", jobID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create submission")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"responseId": id,
	})
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "job id must be a positive integer")
		return
	}

	subs, err := s.repo.ListSubmissions(r.Context(), jobID)
	if err != nil {
		slog.Error("failed to list submissions", "error", err, "job_id", jobID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list submissions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"submissions": subs,
		"total":       len(subs),
	})
}
