package assessment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

const requiredMessage = "This field is required."

// Validate checks one answer against a question's rules and returns an
// error message, or "" when the answer passes. Checks short-circuit: the
// first failing rule wins.
func Validate(q *models.Question, answer models.Answer) string {
	if q.Validation.Required && answer.IsEmpty() {
		return requiredMessage
	}

	// Optional and unanswered: nothing further to check
	if answer.IsEmpty() {
		return ""
	}

	switch {
	case q.Type == models.TypeNumeric:
		// Unparseable input carries no range information, so range
		// checks only apply to values that parse.
		value, err := strconv.ParseFloat(strings.TrimSpace(answer.Text()), 64)
		if err != nil {
			return ""
		}
		if q.Validation.Min != nil && value < *q.Validation.Min {
			return fmt.Sprintf("Value must be at least %s.", formatBound(*q.Validation.Min))
		}
		if q.Validation.Max != nil && value > *q.Validation.Max {
			return fmt.Sprintf("Value must be at most %s.", formatBound(*q.Validation.Max))
		}

	case q.Type.IsText():
		if q.Validation.MaxLength != nil && answer.Len() > *q.Validation.MaxLength {
			return fmt.Sprintf("Response must be under %d characters.", *q.Validation.MaxLength)
		}
	}

	return ""
}

// ValidateAll runs Validate over every visible question in the schema and
// collects the non-empty errors by question id. Hidden questions are
// skipped entirely: a hidden question is never required. A submission is
// allowed iff the returned map is empty.
func ValidateAll(a *models.Assessment, answers models.AnswerSet) map[int]string {
	errs := make(map[int]string)
	if a == nil {
		return errs
	}
	for si := range a.Sections {
		for qi := range a.Sections[si].Questions {
			q := &a.Sections[si].Questions[qi]
			if !IsVisible(q, answers) {
				continue
			}
			if msg := Validate(q, answers[q.ID]); msg != "" {
				errs[q.ID] = msg
			}
		}
	}
	return errs
}

// formatBound renders a numeric bound without a trailing ".0" for whole
// numbers
func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
