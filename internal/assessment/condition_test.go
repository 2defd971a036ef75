package assessment

import (
	"testing"

	"github.com/JitendraDubey2004/TalentFlow/internal/models"
)

func condQuestion(target int, op models.ConditionOperator, value models.Scalar) *models.Question {
	return &models.Question{
		ID:   99,
		Type: models.TypeShortText,
		Condition: &models.Condition{
			TargetQID: target,
			Operator:  op,
			Value:     value,
		},
	}
}

func TestIsVisibleNoCondition(t *testing.T) {
	q := &models.Question{ID: 1, Type: models.TypeShortText}
	if !IsVisible(q, models.AnswerSet{}) {
		t.Error("question without a condition should always be visible")
	}
}

func TestIsVisibleEquals(t *testing.T) {
	q := condQuestion(1, models.OpEquals, models.StringScalar("Yes"))

	if !IsVisible(q, models.AnswerSet{1: models.TextAnswer("Yes")}) {
		t.Error("expected visible when target answer matches")
	}
	if IsVisible(q, models.AnswerSet{1: models.TextAnswer("No")}) {
		t.Error("expected hidden when target answer differs")
	}
	if IsVisible(q, models.AnswerSet{}) {
		t.Error("expected hidden when target is unanswered")
	}
}

func TestIsVisibleNotEquals(t *testing.T) {
	q := condQuestion(1, models.OpNotEquals, models.StringScalar("Yes"))

	if IsVisible(q, models.AnswerSet{1: models.TextAnswer("Yes")}) {
		t.Error("expected hidden when target answer matches")
	}
	if !IsVisible(q, models.AnswerSet{1: models.TextAnswer("No")}) {
		t.Error("expected visible when target answer differs")
	}
	if !IsVisible(q, models.AnswerSet{}) {
		t.Error("notEquals with an unanswered target should be visible")
	}
}

func TestIsVisibleNumericCoercion(t *testing.T) {
	// String answer "5" against numeric condition value 5: both sides
	// coerce to floats and compare equal
	q := condQuestion(1, models.OpEquals, models.NumberScalar(5))

	if !IsVisible(q, models.AnswerSet{1: models.TextAnswer("5")}) {
		t.Error(`"5" should equal 5 after coercion`)
	}
	if !IsVisible(q, models.AnswerSet{1: models.TextAnswer("5.0")}) {
		t.Error(`"5.0" should equal 5 after coercion`)
	}
	if IsVisible(q, models.AnswerSet{1: models.TextAnswer("five")}) {
		t.Error(`"five" should not equal 5`)
	}
	if IsVisible(q, models.AnswerSet{1: models.TextAnswer("6")}) {
		t.Error(`"6" should not equal 5`)
	}
}

func TestIsVisibleStringComparisonCaseSensitive(t *testing.T) {
	q := condQuestion(1, models.OpEquals, models.StringScalar("Yes"))

	if IsVisible(q, models.AnswerSet{1: models.TextAnswer("yes")}) {
		t.Error("string comparison must be case-sensitive")
	}
}

func TestIsVisibleLegacyOperatorAliases(t *testing.T) {
	eq := condQuestion(1, "===", models.StringScalar("Yes"))
	if !IsVisible(eq, models.AnswerSet{1: models.TextAnswer("Yes")}) {
		t.Error(`"===" should behave as equals`)
	}

	ne := condQuestion(1, "!==", models.StringScalar("Yes"))
	if IsVisible(ne, models.AnswerSet{1: models.TextAnswer("Yes")}) {
		t.Error(`"!==" should behave as notEquals`)
	}
}

func TestIsVisibleUnknownOperatorFailsOpen(t *testing.T) {
	q := condQuestion(1, "contains", models.StringScalar("Yes"))
	if !IsVisible(q, models.AnswerSet{1: models.TextAnswer("No")}) {
		t.Error("unknown operators should fail open")
	}
}

func TestIsVisibleDanglingTarget(t *testing.T) {
	// Target question 42 does not exist in any schema; the evaluator only
	// sees the answer set, so this behaves like an unanswered target
	q := condQuestion(42, models.OpEquals, models.StringScalar("Yes"))
	if IsVisible(q, models.AnswerSet{1: models.TextAnswer("Yes")}) {
		t.Error("equals against a dangling target should hide the question")
	}

	q = condQuestion(42, models.OpNotEquals, models.StringScalar("Yes"))
	if !IsVisible(q, models.AnswerSet{}) {
		t.Error("notEquals against a dangling target should show the question")
	}
}

func TestCoerceForComparison(t *testing.T) {
	if c := coerceForComparison("  10 "); !c.isNum || c.num != 10 {
		t.Errorf("expected whitespace-padded number to coerce, got %+v", c)
	}
	if c := coerceForComparison("abc"); c.isNum {
		t.Errorf("expected non-numeric string to stay a string, got %+v", c)
	}
	if c := coerceForComparison(""); c.isNum {
		t.Errorf("empty string must not coerce to a number, got %+v", c)
	}
}
