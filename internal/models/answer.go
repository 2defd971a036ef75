package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Answer holds a candidate's response to one question. Text, numeric and
// single-choice answers are stored as strings; multi-choice answers as an
// ordered list of selected options. File-upload answers are stubbed and
// carry no content.
type Answer struct {
	text    string
	choices []string
	multi   bool
}

// TextAnswer builds an answer for text, numeric and single-choice questions
func TextAnswer(s string) Answer {
	return Answer{text: s}
}

// MultiAnswer builds an answer for multi-choice questions, preserving
// selection order
func MultiAnswer(options ...string) Answer {
	return Answer{choices: append([]string(nil), options...), multi: true}
}

// Text returns the string form of the answer
func (a Answer) Text() string { return a.text }

// Choices returns the selected options of a multi-choice answer
func (a Answer) Choices() []string { return a.choices }

// IsMulti reports whether the answer is a multi-choice selection
func (a Answer) IsMulti() bool { return a.multi }

// IsEmpty reports whether the answer counts as unanswered for the required
// check: an empty string, or an empty selection list
func (a Answer) IsEmpty() bool {
	if a.multi {
		return len(a.choices) == 0
	}
	return a.text == ""
}

// Len returns the answer length in characters for maxLength checks
func (a Answer) Len() int {
	return len([]rune(a.text))
}

// MarshalJSON emits a string for text answers and an array for multi-choice
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.multi {
		if a.choices == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.choices)
	}
	return json.Marshal(a.text)
}

// UnmarshalJSON accepts a string, number, array of strings, or null
func (a *Answer) UnmarshalJSON(data []byte) error {
	token := strings.TrimSpace(string(data))
	switch {
	case token == "null":
		*a = Answer{}
		return nil
	case strings.HasPrefix(token, "["):
		var opts []string
		if err := json.Unmarshal(data, &opts); err != nil {
			return err
		}
		*a = Answer{choices: opts, multi: true}
		return nil
	case strings.HasPrefix(token, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Answer{text: s}
		return nil
	default:
		// Numbers and booleans keep their literal token as text; numeric
		// coercion happens at comparison time, not at decode time.
		*a = Answer{text: token}
		return nil
	}
}

// AnswerSet maps question ids to answers. Answers for questions that became
// hidden after being answered stay in the set; conditions are re-evaluated
// dynamically and may show the question again.
type AnswerSet map[int]Answer

// Clone returns a shallow-safe copy of the set
func (s AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Submission is an immutable record of one candidate's answers to one
// assessment, created once per successful submit.
type Submission struct {
	ID             string    `json:"id,omitempty"`
	JobID          int64     `json:"jobId"`
	CandidateID    int64     `json:"candidateId"`
	Responses      AnswerSet `json:"responses"`
	SubmissionDate time.Time `json:"submissionDate"`
}
