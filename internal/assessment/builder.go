package assessment

import (
	"context"
	"fmt"
	"time"

	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

// Builder edits one job's assessment schema in memory. It owns the
// monotonic question id counter: ids are handed out in increasing order and
// never reused, even across deletions, so condition targets stay stable for
// the whole editing session. Nothing touches the store until Save or
// DeleteAssessment is called explicitly.
type Builder struct {
	store          Store
	jobID          int64
	assessment     *models.Assessment
	nextQuestionID int
}

// NewBuilder loads the current schema for a job (an empty one when none is
// saved yet) and seeds the question id counter from max(existing ids)+1
func NewBuilder(ctx context.Context, store Store, jobID int64) (*Builder, error) {
	a, err := store.GetAssessment(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment for job %d: %w", jobID, err)
	}
	if a == nil {
		a = models.EmptyAssessment(jobID)
	}
	if a.Sections == nil {
		a.Sections = []models.Section{}
	}

	return &Builder{
		store:          store,
		jobID:          jobID,
		assessment:     a,
		nextQuestionID: a.MaxQuestionID() + 1,
	}, nil
}

// Assessment returns the schema being edited
func (b *Builder) Assessment() *models.Assessment {
	return b.assessment
}

// QuestionIDs returns every question id in display order, for condition
// target pickers
func (b *Builder) QuestionIDs() []int {
	return b.assessment.QuestionIDs()
}

// AddSection appends a section with a fresh time-based id and an
// auto-generated title
func (b *Builder) AddSection() *models.Section {
	id := time.Now().UnixMilli()
	// Guard against id collisions when sections are added within the
	// same millisecond
	for _, s := range b.assessment.Sections {
		if s.ID >= id {
			id = s.ID + 1
		}
	}

	b.assessment.Sections = append(b.assessment.Sections, models.Section{
		ID:        id,
		Title:     fmt.Sprintf("Section %d", len(b.assessment.Sections)+1),
		Questions: []models.Question{},
	})
	return &b.assessment.Sections[len(b.assessment.Sections)-1]
}

// DeleteSection removes a section. Remaining sections keep their ids and
// titles, and conditions elsewhere that targeted a now-deleted question are
// left alone; the evaluator handles dangling targets.
func (b *Builder) DeleteSection(id int64) bool {
	for i, s := range b.assessment.Sections {
		if s.ID == id {
			b.assessment.Sections = append(b.assessment.Sections[:i], b.assessment.Sections[i+1:]...)
			return true
		}
	}
	return false
}

// RenameSection sets a section's title
func (b *Builder) RenameSection(id int64, title string) bool {
	for i := range b.assessment.Sections {
		if b.assessment.Sections[i].ID == id {
			b.assessment.Sections[i].Title = title
			return true
		}
	}
	return false
}

// AddQuestion appends a short-text question with the next id to a section
// and advances the counter
func (b *Builder) AddQuestion(sectionID int64) *models.Question {
	for i := range b.assessment.Sections {
		if b.assessment.Sections[i].ID != sectionID {
			continue
		}
		q := models.Question{
			ID:      b.nextQuestionID,
			Text:    fmt.Sprintf("Question %d", b.nextQuestionID),
			Type:    models.TypeShortText,
			Options: []string{},
		}
		b.nextQuestionID++
		s := &b.assessment.Sections[i]
		s.Questions = append(s.Questions, q)
		return &s.Questions[len(s.Questions)-1]
	}
	return nil
}

// UpdateQuestion replaces a question wholesale by id within a section. The
// caller supplies the complete question: fields not echoed back are
// cleared, not preserved.
func (b *Builder) UpdateQuestion(sectionID int64, q models.Question) bool {
	for i := range b.assessment.Sections {
		if b.assessment.Sections[i].ID != sectionID {
			continue
		}
		s := &b.assessment.Sections[i]
		for j := range s.Questions {
			if s.Questions[j].ID == q.ID {
				s.Questions[j] = q
				return true
			}
		}
	}
	return false
}

// DeleteQuestion removes a question from a section. Its id is retired, not
// recycled.
func (b *Builder) DeleteQuestion(sectionID int64, id int) bool {
	for i := range b.assessment.Sections {
		if b.assessment.Sections[i].ID != sectionID {
			continue
		}
		s := &b.assessment.Sections[i]
		for j := range s.Questions {
			if s.Questions[j].ID == id {
				s.Questions = append(s.Questions[:j], s.Questions[j+1:]...)
				return true
			}
		}
	}
	return false
}

// Preview renders the current schema against an empty answer set in
// preview mode, exactly as the runtime form would display it
func (b *Builder) Preview() []RenderedSection {
	return Render(b.assessment, models.AnswerSet{}, nil, true)
}

// Save pushes the schema through the persistence boundary. On failure the
// in-memory state is left untouched so edits are never lost; the error is
// surfaced and the caller decides whether to retry.
func (b *Builder) Save(ctx context.Context) error {
	saved, err := b.store.SaveAssessment(ctx, b.jobID, b.assessment)
	if err != nil {
		return err
	}
	if saved != nil {
		b.assessment.UpdatedAt = saved.UpdatedAt
	}
	return nil
}

// DeleteAssessment removes the saved schema and resets the builder to an
// empty state with a fresh counter
func (b *Builder) DeleteAssessment(ctx context.Context) error {
	if err := b.store.DeleteAssessment(ctx, b.jobID); err != nil {
		return err
	}
	b.assessment = models.EmptyAssessment(b.jobID)
	b.nextQuestionID = 1
	return nil
}
