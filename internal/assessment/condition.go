package assessment

import (
	"strconv"
	"strings"

	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

// coerced is one side of a condition comparison after coercion
type coerced struct {
	str   string
	num   float64
	isNum bool
}

// coerceForComparison turns a raw value into its comparison form: a float
// when the value is numeric-looking, otherwise the exact string. Used
// identically for the target answer and the condition value so both sides
// coerce by the same rule.
func coerceForComparison(raw string) coerced {
	if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && strings.TrimSpace(raw) != "" {
		return coerced{str: raw, num: f, isNum: true}
	}
	return coerced{str: raw}
}

// equal compares two coerced values: as floats when both sides are numeric,
// otherwise as case-sensitive strings
func (a coerced) equal(b coerced) bool {
	if a.isNum && b.isNum {
		return a.num == b.num
	}
	return a.str == b.str
}

// IsVisible decides whether a question should be rendered and validated
// given the current answers. Pure and O(1): it looks up only the condition's
// target answer and never traverses the schema. A condition whose target
// question was deleted therefore behaves exactly like an unanswered target.
func IsVisible(q *models.Question, answers models.AnswerSet) bool {
	if q.Condition == nil || q.Condition.TargetQID == 0 {
		return true
	}

	target := answers[q.Condition.TargetQID]
	lhs := coerceForComparison(target.Text())
	rhs := coerceForComparison(q.Condition.Value.String())

	switch q.Condition.Operator.Normalize() {
	case models.OpEquals:
		return lhs.equal(rhs)
	case models.OpNotEquals:
		return !lhs.equal(rhs)
	}

	// Unknown operator: fail open
	return true
}
