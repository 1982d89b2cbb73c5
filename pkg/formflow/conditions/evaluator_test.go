package conditions

import (
	"testing"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

func fieldCond(op string, field string, value interface{}, cmp string) *types.SkipCondition {
	return &types.SkipCondition{
		Operator: op,
		Conditions: []types.SkipConditionItem{
			{Type: types.CONDITION_ITEM_FIELD_VALUE, Field: field, Value: value, Operator: cmp},
		},
	}
}

func TestShouldSkip(t *testing.T) {
	t.Run("without condition never skips", func(t *testing.T) {
		q := &types.QuestionDefinition{QuestionID: "q1"}
		skip, err := ShouldSkip(q, types.Answers{}, types.Facts{})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if skip {
			t.Error("question without condition should not be skipped")
		}
	})

	t.Run("field equals matching answer", func(t *testing.T) {
		q := &types.QuestionDefinition{
			QuestionID:    "partner_telegram_link",
			SkipCondition: fieldCond(types.CONDITION_OPERATOR_OR, "partner_or_single", "single", types.COMPARE_EQUALS),
		}
		skip, err := ShouldSkip(q, types.Answers{"partner_or_single": "single"}, types.Facts{})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if !skip {
			t.Error("expected skip when partner_or_single == single")
		}
	})

	t.Run("field equals non-matching answer", func(t *testing.T) {
		q := &types.QuestionDefinition{
			QuestionID:    "partner_telegram_link",
			SkipCondition: fieldCond(types.CONDITION_OPERATOR_OR, "partner_or_single", "single", types.COMPARE_EQUALS),
		}
		skip, err := ShouldSkip(q, types.Answers{"partner_or_single": "partner"}, types.Facts{})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if skip {
			t.Error("expected no skip when partner_or_single == partner")
		}
	})

	t.Run("missing field does not satisfy equals", func(t *testing.T) {
		q := &types.QuestionDefinition{
			QuestionID:    "q",
			SkipCondition: fieldCond(types.CONDITION_OPERATOR_OR, "partner_or_single", "single", types.COMPARE_EQUALS),
		}
		skip, err := ShouldSkip(q, types.Answers{}, types.Facts{})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if skip {
			t.Error("missing field must not satisfy equals")
		}
	})

	t.Run("missing field satisfies not_equals", func(t *testing.T) {
		q := &types.QuestionDefinition{
			QuestionID:    "q",
			SkipCondition: fieldCond(types.CONDITION_OPERATOR_OR, "contact_type", "other", types.COMPARE_NOT_EQUALS),
		}
		skip, err := ShouldSkip(q, types.Answers{}, types.Facts{})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if !skip {
			t.Error("missing field must satisfy not_equals")
		}
	})

	t.Run("in and not_in over value lists", func(t *testing.T) {
		q := &types.QuestionDefinition{
			QuestionID:    "q",
			SkipCondition: fieldCond(types.CONDITION_OPERATOR_OR, "contact_type", []interface{}{"telegram", "facebook"}, types.COMPARE_IN),
		}
		skip, _ := ShouldSkip(q, types.Answers{"contact_type": "telegram"}, types.Facts{})
		if !skip {
			t.Error("expected in to match")
		}
		skip, _ = ShouldSkip(q, types.Answers{"contact_type": "other"}, types.Facts{})
		if skip {
			t.Error("expected in not to match")
		}

		q.SkipCondition = fieldCond(types.CONDITION_OPERATOR_OR, "contact_type", []interface{}{"telegram", "facebook"}, types.COMPARE_NOT_IN)
		skip, _ = ShouldSkip(q, types.Answers{"contact_type": "other"}, types.Facts{})
		if !skip {
			t.Error("expected not_in to match")
		}
	})

	t.Run("multi select answer matches when any value matches", func(t *testing.T) {
		q := &types.QuestionDefinition{
			QuestionID:    "q",
			SkipCondition: fieldCond(types.CONDITION_OPERATOR_OR, "interested_in_event_types", "cuddle", types.COMPARE_EQUALS),
		}
		skip, _ := ShouldSkip(q, types.Answers{"interested_in_event_types": []string{"play", "cuddle"}}, types.Facts{})
		if !skip {
			t.Error("expected any selected value to satisfy equals")
		}
	})

	t.Run("user exists fact", func(t *testing.T) {
		q := &types.QuestionDefinition{
			QuestionID: "full_name",
			SkipCondition: &types.SkipCondition{
				Operator: types.CONDITION_OPERATOR_OR,
				Conditions: []types.SkipConditionItem{
					{Type: types.CONDITION_ITEM_USER_EXISTS},
				},
			},
		}
		skip, _ := ShouldSkip(q, types.Answers{}, types.Facts{UserExists: true})
		if !skip {
			t.Error("expected skip for returning user")
		}
		skip, _ = ShouldSkip(q, types.Answers{}, types.Facts{UserExists: false})
		if skip {
			t.Error("expected no skip for new user")
		}
	})

	t.Run("event type fact", func(t *testing.T) {
		q := &types.QuestionDefinition{
			QuestionID: "last_sti_test",
			SkipCondition: &types.SkipCondition{
				Operator: types.CONDITION_OPERATOR_OR,
				Conditions: []types.SkipConditionItem{
					{Type: types.CONDITION_ITEM_EVENT_TYPE, Value: "cuddle"},
				},
			},
		}
		skip, _ := ShouldSkip(q, types.Answers{}, types.Facts{EventType: "cuddle"})
		if !skip {
			t.Error("expected skip for cuddle events")
		}
		skip, _ = ShouldSkip(q, types.Answers{}, types.Facts{EventType: "play"})
		if skip {
			t.Error("expected no skip for play events")
		}
		// no event bound yet behaves like a missing field
		skip, _ = ShouldSkip(q, types.Answers{}, types.Facts{})
		if skip {
			t.Error("expected no skip while no event is bound")
		}
	})

	t.Run("AND requires all items", func(t *testing.T) {
		q := &types.QuestionDefinition{
			QuestionID: "q",
			SkipCondition: &types.SkipCondition{
				Operator: types.CONDITION_OPERATOR_AND,
				Conditions: []types.SkipConditionItem{
					{Type: types.CONDITION_ITEM_FIELD_VALUE, Field: "a", Value: "1"},
					{Type: types.CONDITION_ITEM_FIELD_VALUE, Field: "b", Value: "2"},
				},
			},
		}
		skip, _ := ShouldSkip(q, types.Answers{"a": "1", "b": "2"}, types.Facts{})
		if !skip {
			t.Error("expected AND to be satisfied")
		}
		skip, _ = ShouldSkip(q, types.Answers{"a": "1", "b": "3"}, types.Facts{})
		if skip {
			t.Error("expected AND to fail on one mismatch")
		}
	})

	t.Run("NOT negates single item", func(t *testing.T) {
		q := &types.QuestionDefinition{
			QuestionID: "q",
			SkipCondition: &types.SkipCondition{
				Operator: types.CONDITION_OPERATOR_NOT,
				Conditions: []types.SkipConditionItem{
					{Type: types.CONDITION_ITEM_FIELD_VALUE, Field: "a", Value: "1"},
				},
			},
		}
		skip, _ := ShouldSkip(q, types.Answers{"a": "2"}, types.Facts{})
		if !skip {
			t.Error("expected NOT to negate an unsatisfied item")
		}
	})

	t.Run("NOT with wrong item count errors", func(t *testing.T) {
		q := &types.QuestionDefinition{
			QuestionID: "q",
			SkipCondition: &types.SkipCondition{
				Operator:   types.CONDITION_OPERATOR_NOT,
				Conditions: []types.SkipConditionItem{},
			},
		}
		if _, err := ShouldSkip(q, types.Answers{}, types.Facts{}); err == nil {
			t.Error("expected error for NOT without items")
		}
	})

	t.Run("repeated calls are deterministic", func(t *testing.T) {
		q := &types.QuestionDefinition{
			QuestionID:    "q",
			SkipCondition: fieldCond(types.CONDITION_OPERATOR_OR, "partner_or_single", "single", types.COMPARE_EQUALS),
		}
		answers := types.Answers{"partner_or_single": "single"}
		facts := types.Facts{UserExists: true, EventType: "play"}
		first, err := ShouldSkip(q, answers, facts)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		for i := 0; i < 50; i++ {
			again, err := ShouldSkip(q, answers, facts)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if again != first {
				t.Errorf("result changed between calls: %t != %t", again, first)
			}
		}
	})
}
