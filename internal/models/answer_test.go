package models

import (
	"encoding/json"
	"testing"
)

func TestAnswerJSONShapes(t *testing.T) {
	// Text answers travel as strings
	b, err := json.Marshal(TextAnswer("hello"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `"hello"` {
		t.Errorf("expected string form, got %s", b)
	}

	// Multi-choice answers travel as arrays, preserving selection order
	b, err = json.Marshal(MultiAnswer("b", "a"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `["b","a"]` {
		t.Errorf("expected array form, got %s", b)
	}

	// An empty selection is [] rather than null
	b, _ = json.Marshal(MultiAnswer())
	if string(b) != `[]` {
		t.Errorf("expected empty array, got %s", b)
	}
}

func TestAnswerUnmarshal(t *testing.T) {
	var a Answer
	if err := json.Unmarshal([]byte(`"yes"`), &a); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if a.Text() != "yes" || a.IsMulti() {
		t.Errorf("unexpected answer %+v", a)
	}

	// Numbers keep their literal token as text; coercion happens at
	// comparison time
	if err := json.Unmarshal([]byte(`5`), &a); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if a.Text() != "5" {
		t.Errorf("expected literal token, got %q", a.Text())
	}

	if err := json.Unmarshal([]byte(`["a","b"]`), &a); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !a.IsMulti() || len(a.Choices()) != 2 {
		t.Errorf("unexpected multi answer %+v", a)
	}

	if err := json.Unmarshal([]byte(`null`), &a); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !a.IsEmpty() {
		t.Error("null should decode to an empty answer")
	}
}

func TestAnswerLenCountsRunes(t *testing.T) {
	if got := TextAnswer("héllo").Len(); got != 5 {
		t.Errorf("length should count characters, got %d", got)
	}
}

func TestScalarJSONRoundTrip(t *testing.T) {
	// Number tokens survive a decode/encode cycle as numbers
	var s Scalar
	if err := json.Unmarshal([]byte(`5`), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	b, _ := json.Marshal(s)
	if string(b) != `5` {
		t.Errorf("number should round-trip as a number, got %s", b)
	}
	if f, ok := s.Float(); !ok || f != 5 {
		t.Errorf("expected float 5, got %v %v", f, ok)
	}

	// String tokens stay strings, even numeric-looking ones
	if err := json.Unmarshal([]byte(`"5"`), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	b, _ = json.Marshal(s)
	if string(b) != `"5"` {
		t.Errorf("string should round-trip as a string, got %s", b)
	}
}

func TestScalarRejectsNonScalarJSON(t *testing.T) {
	var s Scalar
	if err := json.Unmarshal([]byte(`{"a":1}`), &s); err == nil {
		t.Error("objects are not valid condition values")
	}
}

func TestConditionOperatorNormalize(t *testing.T) {
	if ConditionOperator("===").Normalize() != OpEquals {
		t.Error(`"===" should normalize to equals`)
	}
	if ConditionOperator("!==").Normalize() != OpNotEquals {
		t.Error(`"!==" should normalize to notEquals`)
	}
	if ConditionOperator("equals").Normalize() != OpEquals {
		t.Error("canonical operators pass through")
	}
	if ConditionOperator("weird").Normalize() != "weird" {
		t.Error("unknown operators pass through unchanged")
	}
}

func TestAssessmentMaxQuestionID(t *testing.T) {
	a := &Assessment{
		Sections: []Section{
			{ID: 1, Questions: []Question{{ID: 2}, {ID: 9}}},
			{ID: 2, Questions: []Question{{ID: 4}}},
		},
	}
	if got := a.MaxQuestionID(); got != 9 {
		t.Errorf("expected 9, got %d", got)
	}
	if got := EmptyAssessment(1).MaxQuestionID(); got != 0 {
		t.Errorf("empty assessment should report 0, got %d", got)
	}
}

func TestAssessmentClone(t *testing.T) {
	min := 1.0
	a := &Assessment{
		JobID: 1,
		Sections: []Section{{
			ID: 1,
			Questions: []Question{{
				ID:         1,
				Options:    []string{"a"},
				Validation: Validation{Min: &min},
				Condition:  &Condition{TargetQID: 2, Operator: OpEquals, Value: StringScalar("x")},
			}},
		}},
	}

	c := a.Clone()
	c.Sections[0].Questions[0].Options[0] = "mutated"
	*c.Sections[0].Questions[0].Validation.Min = 99
	c.Sections[0].Questions[0].Condition.TargetQID = 42

	q := a.Sections[0].Questions[0]
	if q.Options[0] != "a" || *q.Validation.Min != 1.0 || q.Condition.TargetQID != 2 {
		t.Error("Clone must deep-copy nested state")
	}
}
