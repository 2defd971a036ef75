package assessment

import (
	"context"
	"time"

	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

// fakeStore is an in-memory Store for engine tests, with switchable
// failure injection
type fakeStore struct {
	assessments map[int64]*models.Assessment
	submissions []*models.Submission

	failSave   error
	failSubmit error
}

func newFakeStore() *fakeStore {
	return &fakeStore{assessments: map[int64]*models.Assessment{}}
}

func (s *fakeStore) GetAssessment(ctx context.Context, jobID int64) (*models.Assessment, error) {
	a, ok := s.assessments[jobID]
	if !ok {
		return models.EmptyAssessment(jobID), nil
	}
	return a.Clone(), nil
}

func (s *fakeStore) SaveAssessment(ctx context.Context, jobID int64, a *models.Assessment) (*models.Assessment, error) {
	if s.failSave != nil {
		return nil, s.failSave
	}
	if a == nil || a.Sections == nil {
		return nil, ErrMalformedSchema
	}
	stored := a.Clone()
	stored.JobID = jobID
	stored.UpdatedAt = time.Now().UTC()
	s.assessments[jobID] = stored
	return stored.Clone(), nil
}

func (s *fakeStore) DeleteAssessment(ctx context.Context, jobID int64) error {
	if _, ok := s.assessments[jobID]; !ok {
		return ErrAssessmentNotFound
	}
	delete(s.assessments, jobID)
	return nil
}

func (s *fakeStore) CreateSubmission(ctx context.Context, sub *models.Submission) (string, error) {
	if s.failSubmit != nil {
		return "", s.failSubmit
	}
	if sub == nil || sub.CandidateID == 0 || sub.Responses == nil {
		return "", ErrInvalidSubmission
	}
	stored := *sub
	stored.ID = "sub-1"
	s.submissions = append(s.submissions, &stored)
	return stored.ID, nil
}
