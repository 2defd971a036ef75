package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/JitendraDubey2004/TalentFlow/internal/api"
	"github.com/JitendraDubey2004/TalentFlow/internal/assessment"
	"github.com/JitendraDubey2004/TalentFlow/internal/config"
	"github.com/JitendraDubey2004/TalentFlow/internal/models"
	"github.com/JitendraDubey2004/TalentFlow/internal/storage"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	repo := storage.NewMemoryRepository()
	srv := api.NewServer(config.ServerConfig{}, repo, nil)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return NewClient(ts.URL)
}

func TestClientAssessmentRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	// Missing assessment reads back as an empty record
	a, err := c.GetAssessment(ctx, 1)
	if err != nil {
		t.Fatalf("GetAssessment failed: %v", err)
	}
	if a.JobID != 1 || len(a.Sections) != 0 {
		t.Errorf("expected empty record, got %+v", a)
	}

	schema := &models.Assessment{
		JobID: 1,
		Title: "Screen",
		Sections: []models.Section{{
			ID:    100,
			Title: "S1",
			Questions: []models.Question{{
				ID:         1,
				Text:       "Years of experience?",
				Type:       models.TypeNumeric,
				Validation: models.Validation{Required: true},
			}},
		}},
	}

	saved, err := c.SaveAssessment(ctx, 1, schema)
	if err != nil {
		t.Fatalf("SaveAssessment failed: %v", err)
	}
	if saved.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not stamped by server")
	}

	got, err := c.GetAssessment(ctx, 1)
	if err != nil {
		t.Fatalf("GetAssessment failed: %v", err)
	}
	if got.Title != "Screen" || len(got.Sections) != 1 {
		t.Errorf("schema did not round-trip: %+v", got)
	}

	if _, err := c.SaveAssessment(ctx, 1, &models.Assessment{JobID: 1}); !errors.Is(err, assessment.ErrMalformedSchema) {
		t.Errorf("expected ErrMalformedSchema, got %v", err)
	}
}

func TestClientDeleteMapsNotFound(t *testing.T) {
	c := newTestClient(t)

	err := c.DeleteAssessment(context.Background(), 42)
	if !errors.Is(err, assessment.ErrAssessmentNotFound) {
		t.Errorf("expected ErrAssessmentNotFound across the wire, got %v", err)
	}
}

func TestClientSubmissionErrors(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	min := 1.0
	_, err := c.SaveAssessment(ctx, 1, &models.Assessment{
		JobID: 1,
		Sections: []models.Section{{
			ID: 100,
			Questions: []models.Question{{
				ID:         1,
				Type:       models.TypeNumeric,
				Validation: models.Validation{Required: true, Min: &min},
			}},
		}},
	})
	if err != nil {
		t.Fatalf("SaveAssessment failed: %v", err)
	}

	// Server-side validation failure maps to ErrValidationFailed
	_, err = c.CreateSubmission(ctx, &models.Submission{
		JobID:       1,
		CandidateID: 7,
		Responses:   models.AnswerSet{1: models.TextAnswer("0")},
	})
	if !errors.Is(err, assessment.ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}

	// Local guard catches a missing candidate id before any request
	_, err = c.CreateSubmission(ctx, &models.Submission{JobID: 1, Responses: models.AnswerSet{}})
	if !errors.Is(err, assessment.ErrInvalidSubmission) {
		t.Errorf("expected ErrInvalidSubmission, got %v", err)
	}
}

// TestClientDrivesForm runs the runtime form engine against a remote server
// through the client, proving the Store boundary is interchangeable.
func TestClientDrivesForm(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	min, max := 1.0, 10.0
	_, err := c.SaveAssessment(ctx, 1, &models.Assessment{
		JobID: 1,
		Sections: []models.Section{{
			ID:    100,
			Title: "Screening",
			Questions: []models.Question{{
				ID:         1,
				Text:       "Rate your experience 1-10",
				Type:       models.TypeNumeric,
				Validation: models.Validation{Required: true, Min: &min, Max: &max},
			}},
		}},
	})
	if err != nil {
		t.Fatalf("SaveAssessment failed: %v", err)
	}

	form, err := assessment.NewForm(ctx, c, 1, 7)
	if err != nil {
		t.Fatalf("NewForm over HTTP failed: %v", err)
	}

	form.SetAnswer(1, models.TextAnswer("11"))
	if _, err := form.Submit(ctx); !errors.Is(err, assessment.ErrValidationFailed) {
		t.Fatalf("expected local validation failure, got %v", err)
	}

	form.SetAnswer(1, models.TextAnswer("7"))
	sub, err := form.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit over HTTP failed: %v", err)
	}
	if sub.ID == "" {
		t.Error("expected server-generated submission id")
	}

	subs, err := c.ListSubmissions(ctx, 1)
	if err != nil {
		t.Fatalf("ListSubmissions failed: %v", err)
	}
	if len(subs) != 1 || subs[0].CandidateID != 7 {
		t.Errorf("submission not listed: %+v", subs)
	}
	if subs[0].Responses[1].Text() != "7" {
		t.Errorf("responses did not round-trip: %+v", subs[0].Responses)
	}
}
