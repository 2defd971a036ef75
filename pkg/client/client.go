package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/JitendraDubey2004/TalentFlow/internal/assessment"
	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

// Client is a Go SDK for the TalentFlow API. It implements
// assessment.Store, so builder and form engines can run against a remote
// server the same way they run against a local repository.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ assessment.Store = (*Client)(nil)

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new TalentFlow client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type apiErrorBody struct {
	Code        string         `json:"code"`
	Message     string         `json:"message"`
	FieldErrors map[int]string `json:"fieldErrors,omitempty"`
}

// sentinel maps a wire error code back onto the engine's error taxonomy so
// errors.Is works across the network boundary
func (e *apiErrorBody) sentinel() error {
	switch e.Code {
	case "malformed_schema":
		return assessment.ErrMalformedSchema
	case "not_found":
		return assessment.ErrAssessmentNotFound
	case "invalid_submission":
		return assessment.ErrInvalidSubmission
	case "transient_error":
		return assessment.ErrTransient
	case "validation_error":
		return assessment.ErrValidationFailed
	}
	return fmt.Errorf("API error: %s - %s", e.Code, e.Message)
}

// GetAssessment retrieves the assessment schema for a job. A job with no
// saved assessment returns an empty record, never an error.
func (c *Client) GetAssessment(ctx context.Context, jobID int64) (*models.Assessment, error) {
	resp, err := c.doRequest(ctx, "GET", fmt.Sprintf("/api/assessments/%d", jobID), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Success bool               `json:"success"`
		Data    *models.Assessment `json:"data"`
		Error   *apiErrorBody      `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		return nil, result.Error.sentinel()
	}

	return result.Data, nil
}

// SaveAssessment upserts the assessment schema for a job
func (c *Client) SaveAssessment(ctx context.Context, jobID int64, a *models.Assessment) (*models.Assessment, error) {
	if a == nil || a.Sections == nil {
		return nil, assessment.ErrMalformedSchema
	}

	body, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, "PUT", fmt.Sprintf("/api/assessments/%d", jobID), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var result struct {
		Success bool               `json:"success"`
		Data    *models.Assessment `json:"data"`
		Error   *apiErrorBody      `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		return nil, result.Error.sentinel()
	}

	return result.Data, nil
}

// DeleteAssessment removes the assessment schema for a job
func (c *Client) DeleteAssessment(ctx context.Context, jobID int64) error {
	resp, err := c.doRequest(ctx, "DELETE", fmt.Sprintf("/api/assessments/%d", jobID), nil)
	if err != nil {
		return err
	}

	var result struct {
		Success bool          `json:"success"`
		Error   *apiErrorBody `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		return result.Error.sentinel()
	}

	return nil
}

type submitRequest struct {
	CandidateID int64            `json:"candidateId"`
	Responses   models.AnswerSet `json:"responses"`
}

// CreateSubmission submits answers for a job's assessment and returns the
// generated response id. The server re-validates against the stored schema,
// so a validation failure surfaces as ErrValidationFailed here too.
func (c *Client) CreateSubmission(ctx context.Context, sub *models.Submission) (string, error) {
	if sub == nil || sub.CandidateID == 0 || sub.Responses == nil {
		return "", assessment.ErrInvalidSubmission
	}

	body, err := json.Marshal(submitRequest{
		CandidateID: sub.CandidateID,
		Responses:   sub.Responses,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, "POST", fmt.Sprintf("/api/assessments/%d/submit", sub.JobID), bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var result struct {
		Success bool `json:"success"`
		Data    struct {
			ResponseID string `json:"responseId"`
		} `json:"data"`
		Error *apiErrorBody `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		return "", result.Error.sentinel()
	}

	return result.Data.ResponseID, nil
}

// ListSubmissions retrieves all submissions for a job, newest first
func (c *Client) ListSubmissions(ctx context.Context, jobID int64) ([]*models.Submission, error) {
	resp, err := c.doRequest(ctx, "GET", fmt.Sprintf("/api/assessments/%d/submissions", jobID), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Success bool `json:"success"`
		Data    struct {
			Submissions []*models.Submission `json:"submissions"`
			Total       int                  `json:"total"`
		} `json:"data"`
		Error *apiErrorBody `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		return nil, result.Error.sentinel()
	}

	return result.Data.Submissions, nil
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doRequest(ctx, "GET", "/health", nil)
	return err
}

// doRequest performs an HTTP request. Error-status responses are returned
// as-is so callers can decode the envelope and map the error code.
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", assessment.ErrTransient, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return respBody, nil
}
