package assessment

import (
	"fmt"

	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

// RenderedQuestion is one question prepared for display: its visibility,
// current answer, validation error and placeholder text resolved against
// the current answer set.
type RenderedQuestion struct {
	ID          int                 `json:"id"`
	Text        string              `json:"text"`
	Type        models.QuestionType `json:"type"`
	Options     []string            `json:"options,omitempty"`
	Required    bool                `json:"required"`
	Visible     bool                `json:"visible"`
	Answer      models.Answer       `json:"answer"`
	Error       string              `json:"error,omitempty"`
	Placeholder string              `json:"placeholder,omitempty"`
}

// RenderedSection groups rendered questions in display order
type RenderedSection struct {
	ID        int64              `json:"id"`
	Title     string             `json:"title"`
	Questions []RenderedQuestion `json:"questions"`
}

// Render produces the display plan for a schema against the current
// answers. It is the single code path behind the builder's live preview,
// the websocket preview endpoint and the runtime form: in preview mode
// every question is shown with its placeholder and conditions are not
// evaluated; in runtime mode hidden questions are marked invisible and
// carry no error.
func Render(a *models.Assessment, answers models.AnswerSet, errs map[int]string, preview bool) []RenderedSection {
	if a == nil {
		return []RenderedSection{}
	}
	out := make([]RenderedSection, 0, len(a.Sections))
	for si := range a.Sections {
		s := &a.Sections[si]
		rs := RenderedSection{
			ID:        s.ID,
			Title:     s.Title,
			Questions: make([]RenderedQuestion, 0, len(s.Questions)),
		}
		for qi := range s.Questions {
			q := &s.Questions[qi]
			rq := RenderedQuestion{
				ID:       q.ID,
				Text:     q.Text,
				Type:     q.Type,
				Options:  q.Options,
				Required: q.Validation.Required,
				Visible:  preview || IsVisible(q, answers),
			}
			if rq.Visible {
				rq.Answer = answers[q.ID]
				rq.Error = errs[q.ID]
			}
			if preview {
				rq.Placeholder = placeholder(q)
			}
			rs.Questions = append(rs.Questions, rq)
		}
		out = append(out, rs)
	}
	return out
}

// placeholder returns the preview hint text for a question type
func placeholder(q *models.Question) string {
	switch q.Type {
	case models.TypeShortText:
		return "Short answer"
	case models.TypeLongText:
		return "Write a detailed answer..."
	case models.TypeNumeric:
		min, max := "0", "N/A"
		if q.Validation.Min != nil {
			min = formatBound(*q.Validation.Min)
		}
		if q.Validation.Max != nil {
			max = formatBound(*q.Validation.Max)
		}
		return fmt.Sprintf("Range: %s to %s", min, max)
	}
	return ""
}
