package assessment

import (
	"strings"
	"testing"

	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestValidateRequired(t *testing.T) {
	q := &models.Question{
		ID:         1,
		Type:       models.TypeShortText,
		Validation: models.Validation{Required: true},
	}

	if msg := Validate(q, models.Answer{}); msg != "This field is required." {
		t.Errorf("expected required message, got %q", msg)
	}
	if msg := Validate(q, models.TextAnswer("hi")); msg != "" {
		t.Errorf("expected no error for answered question, got %q", msg)
	}
}

func TestValidateRequiredMultiChoice(t *testing.T) {
	q := &models.Question{
		ID:         1,
		Type:       models.TypeMultiChoice,
		Options:    []string{"a", "b"},
		Validation: models.Validation{Required: true},
	}

	if msg := Validate(q, models.MultiAnswer()); msg != "This field is required." {
		t.Errorf("empty selection should fail required, got %q", msg)
	}
	if msg := Validate(q, models.MultiAnswer("a")); msg != "" {
		t.Errorf("non-empty selection should pass, got %q", msg)
	}
}

func TestValidateOptionalEmptySkipsAllChecks(t *testing.T) {
	q := &models.Question{
		ID:         1,
		Type:       models.TypeNumeric,
		Validation: models.Validation{Min: floatPtr(5)},
	}

	if msg := Validate(q, models.Answer{}); msg != "" {
		t.Errorf("optional empty answer should pass, got %q", msg)
	}
}

func TestValidateNumericRange(t *testing.T) {
	q := &models.Question{
		ID:   1,
		Type: models.TypeNumeric,
		Validation: models.Validation{
			Required: true,
			Min:      floatPtr(1),
			Max:      floatPtr(10),
		},
	}

	if msg := Validate(q, models.TextAnswer("0")); msg != "Value must be at least 1." {
		t.Errorf("expected min message, got %q", msg)
	}
	if msg := Validate(q, models.TextAnswer("11")); msg != "Value must be at most 10." {
		t.Errorf("expected max message, got %q", msg)
	}
	if msg := Validate(q, models.TextAnswer("5")); msg != "" {
		t.Errorf("in-range value should pass, got %q", msg)
	}
	if msg := Validate(q, models.TextAnswer("1")); msg != "" {
		t.Errorf("boundary values are inclusive, got %q", msg)
	}
	if msg := Validate(q, models.TextAnswer("10")); msg != "" {
		t.Errorf("boundary values are inclusive, got %q", msg)
	}
}

func TestValidateNumericUnparseableSkipsRange(t *testing.T) {
	q := &models.Question{
		ID:   1,
		Type: models.TypeNumeric,
		Validation: models.Validation{
			Required: true,
			Min:      floatPtr(1),
		},
	}

	// A value that does not parse carries no range information
	if msg := Validate(q, models.TextAnswer("abc")); msg != "" {
		t.Errorf("unparseable numeric should skip range checks, got %q", msg)
	}
}

func TestValidateNumericFractionalBound(t *testing.T) {
	q := &models.Question{
		ID:         1,
		Type:       models.TypeNumeric,
		Validation: models.Validation{Min: floatPtr(0.5)},
	}

	if msg := Validate(q, models.TextAnswer("0.25")); msg != "Value must be at least 0.5." {
		t.Errorf("expected fractional bound in message, got %q", msg)
	}
}

func TestValidateMaxLength(t *testing.T) {
	q := &models.Question{
		ID:         1,
		Type:       models.TypeLongText,
		Validation: models.Validation{MaxLength: intPtr(10)},
	}

	if msg := Validate(q, models.TextAnswer(strings.Repeat("x", 11))); msg != "Response must be under 10 characters." {
		t.Errorf("expected maxLength message, got %q", msg)
	}
	if msg := Validate(q, models.TextAnswer(strings.Repeat("x", 10))); msg != "" {
		t.Errorf("exact-length answer should pass, got %q", msg)
	}
}

func TestValidateMaxLengthIgnoredForNonText(t *testing.T) {
	q := &models.Question{
		ID:         1,
		Type:       models.TypeNumeric,
		Validation: models.Validation{MaxLength: intPtr(1)},
	}

	if msg := Validate(q, models.TextAnswer("100")); msg != "" {
		t.Errorf("maxLength should not apply to numeric questions, got %q", msg)
	}
}

func TestValidateAllSkipsHiddenQuestions(t *testing.T) {
	a := &models.Assessment{
		JobID: 1,
		Sections: []models.Section{{
			ID:    1,
			Title: "S1",
			Questions: []models.Question{
				{
					ID:         1,
					Type:       models.TypeSingleChoice,
					Options:    []string{"Yes", "No"},
					Validation: models.Validation{Required: true},
				},
				{
					ID:         2,
					Type:       models.TypeLongText,
					Validation: models.Validation{Required: true},
					Condition: &models.Condition{
						TargetQID: 1,
						Operator:  models.OpEquals,
						Value:     models.StringScalar("Yes"),
					},
				},
			},
		}},
	}

	// Q2 hidden: only Q1's required error should surface
	errs := ValidateAll(a, models.AnswerSet{})
	if len(errs) != 1 || errs[1] != "This field is required." {
		t.Errorf("expected only question 1 to fail, got %v", errs)
	}

	// Q1 answered "Yes": Q2 becomes visible and required
	errs = ValidateAll(a, models.AnswerSet{1: models.TextAnswer("Yes")})
	if len(errs) != 1 || errs[2] != "This field is required." {
		t.Errorf("expected only question 2 to fail, got %v", errs)
	}

	// Q1 answered "No": Q2 hidden again, nothing fails
	errs = ValidateAll(a, models.AnswerSet{1: models.TextAnswer("No")})
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateAllNilAssessment(t *testing.T) {
	if errs := ValidateAll(nil, models.AnswerSet{}); len(errs) != 0 {
		t.Errorf("nil assessment should validate clean, got %v", errs)
	}
}
