package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// QuestionType identifies the input widget and payload shape of a question
type QuestionType string

const (
	TypeShortText    QuestionType = "short-text"
	TypeLongText     QuestionType = "long-text"
	TypeNumeric      QuestionType = "numeric"
	TypeSingleChoice QuestionType = "single-choice"
	TypeMultiChoice  QuestionType = "multi-choice"
	TypeFileUpload   QuestionType = "file-upload"
)

// IsText returns true for free-text question types (maxLength applies)
func (t QuestionType) IsText() bool {
	return t == TypeShortText || t == TypeLongText
}

// IsChoice returns true for option-based question types (options apply)
func (t QuestionType) IsChoice() bool {
	return t == TypeSingleChoice || t == TypeMultiChoice
}

// IsValid reports whether t is one of the known question types
func (t QuestionType) IsValid() bool {
	switch t {
	case TypeShortText, TypeLongText, TypeNumeric, TypeSingleChoice, TypeMultiChoice, TypeFileUpload:
		return true
	}
	return false
}

// ConditionOperator is the comparison applied by a visibility condition
type ConditionOperator string

const (
	OpEquals    ConditionOperator = "equals"
	OpNotEquals ConditionOperator = "notEquals"
)

// Normalize maps the legacy wire aliases ("===", "!==") onto the canonical
// operators. Unknown operators are returned unchanged; the evaluator fails
// open on them.
func (op ConditionOperator) Normalize() ConditionOperator {
	switch op {
	case "===":
		return OpEquals
	case "!==":
		return OpNotEquals
	}
	return op
}

// Condition makes a question's visibility depend on another question's
// answer. TargetQID zero means the condition is unset and the question is
// always visible.
type Condition struct {
	TargetQID int               `json:"targetQId,omitempty" yaml:"targetQId,omitempty"`
	Operator  ConditionOperator `json:"operator" yaml:"operator"`
	Value     Scalar            `json:"value" yaml:"value"`
}

// Validation holds per-question answer constraints. Nil pointers mean the
// bound is absent. Min/Max apply to numeric questions only, MaxLength to
// text questions only.
type Validation struct {
	Required  bool     `json:"required" yaml:"required"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
}

// Question is one form field. IDs are unique within an assessment and are
// never reused, even after deletion, so condition targets stay stable.
type Question struct {
	ID         int          `json:"id" yaml:"id"`
	Text       string       `json:"text" yaml:"text"`
	Type       QuestionType `json:"type" yaml:"type"`
	Options    []string     `json:"options,omitempty" yaml:"options,omitempty"`
	Validation Validation   `json:"validation" yaml:"validation"`
	Condition  *Condition   `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// Section is an ordered grouping of questions. Order is display order.
type Section struct {
	ID        int64      `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Assessment is the question schema attached to one job. An assessment with
// zero sections is valid and renders as an empty form.
type Assessment struct {
	JobID     int64     `json:"jobId" yaml:"jobId"`
	Title     string    `json:"title,omitempty" yaml:"title,omitempty"`
	Sections  []Section `json:"sections" yaml:"sections"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" yaml:"-"`
}

// EmptyAssessment returns the valid empty record served when no assessment
// exists for a job. "No assessment" is an empty state, not an error.
func EmptyAssessment(jobID int64) *Assessment {
	return &Assessment{JobID: jobID, Sections: []Section{}}
}

// MaxQuestionID returns the highest question id across all sections, or 0
// when the assessment has no questions. Used to seed the builder's counter.
func (a *Assessment) MaxQuestionID() int {
	max := 0
	for _, s := range a.Sections {
		for _, q := range s.Questions {
			if q.ID > max {
				max = q.ID
			}
		}
	}
	return max
}

// FindQuestion returns the question with the given id, or nil
func (a *Assessment) FindQuestion(id int) *Question {
	for si := range a.Sections {
		for qi := range a.Sections[si].Questions {
			if a.Sections[si].Questions[qi].ID == id {
				return &a.Sections[si].Questions[qi]
			}
		}
	}
	return nil
}

// QuestionIDs returns every question id in display order
func (a *Assessment) QuestionIDs() []int {
	var ids []int
	for _, s := range a.Sections {
		for _, q := range s.Questions {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// Clone returns a deep copy of the assessment
func (a *Assessment) Clone() *Assessment {
	if a == nil {
		return nil
	}
	out := *a
	out.Sections = make([]Section, len(a.Sections))
	for i, s := range a.Sections {
		cs := s
		cs.Questions = make([]Question, len(s.Questions))
		for j, q := range s.Questions {
			cq := q
			if q.Options != nil {
				cq.Options = append([]string(nil), q.Options...)
			}
			if q.Validation.Min != nil {
				v := *q.Validation.Min
				cq.Validation.Min = &v
			}
			if q.Validation.Max != nil {
				v := *q.Validation.Max
				cq.Validation.Max = &v
			}
			if q.Validation.MaxLength != nil {
				v := *q.Validation.MaxLength
				cq.Validation.MaxLength = &v
			}
			if q.Condition != nil {
				c := *q.Condition
				cq.Condition = &c
			}
			cs.Questions[j] = cq
		}
		out.Sections[i] = cs
	}
	return &out
}

// Scalar is a condition comparison value that may arrive as either a JSON
// string or a JSON number. The original token is preserved so the value
// round-trips unchanged through save/load.
type Scalar struct {
	raw     string
	numeric bool
}

// StringScalar builds a Scalar from a string value
func StringScalar(s string) Scalar {
	return Scalar{raw: s}
}

// NumberScalar builds a Scalar from a numeric value
func NumberScalar(f float64) Scalar {
	return Scalar{raw: strconv.FormatFloat(f, 'f', -1, 64), numeric: true}
}

// String returns the value's textual form
func (s Scalar) String() string { return s.raw }

// Float parses the value as a float, succeeding for numbers and
// numeric-looking strings alike
func (s Scalar) Float() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s.raw), 64)
	return f, err == nil
}

// IsZero reports whether the scalar holds no value
func (s Scalar) IsZero() bool { return s.raw == "" && !s.numeric }

// MarshalJSON re-emits a number token when the value arrived as a number
func (s Scalar) MarshalJSON() ([]byte, error) {
	if s.numeric {
		return []byte(s.raw), nil
	}
	return json.Marshal(s.raw)
}

// UnmarshalJSON accepts a string, number, bool or null
func (s *Scalar) UnmarshalJSON(data []byte) error {
	token := strings.TrimSpace(string(data))
	switch {
	case token == "null":
		*s = Scalar{}
		return nil
	case strings.HasPrefix(token, `"`):
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar{raw: str}
		return nil
	case token == "true" || token == "false":
		*s = Scalar{raw: token}
		return nil
	default:
		if _, err := strconv.ParseFloat(token, 64); err != nil {
			return fmt.Errorf("invalid scalar value %q", token)
		}
		*s = Scalar{raw: token, numeric: true}
		return nil
	}
}

// MarshalYAML mirrors the JSON behavior for seed fixtures
func (s Scalar) MarshalYAML() (interface{}, error) {
	if s.numeric {
		if f, ok := s.Float(); ok {
			return f, nil
		}
	}
	return s.raw, nil
}

// UnmarshalYAML accepts scalar YAML nodes of any kind
func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("condition value must be a scalar, got %v", node.Kind)
	}
	raw := node.Value
	if node.Tag == "!!int" || node.Tag == "!!float" {
		*s = Scalar{raw: raw, numeric: true}
		return nil
	}
	*s = Scalar{raw: raw}
	return nil
}
