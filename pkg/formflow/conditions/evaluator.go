package conditions

import (
	"fmt"
	"strings"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

// ShouldSkip decides whether a question is omitted from the user's flow.
// Evaluation is pure: for a fixed (question, answers, facts) triple the result
// never changes between calls. A question without a skip condition is never
// skipped.
//
// Missing-field policy: a field with no answer yet never satisfies
// equals/in and always satisfies not_equals/not_in. The same policy applies
// to the event-type item while no event is bound.
func ShouldSkip(question *types.QuestionDefinition, answers types.Answers, facts types.Facts) (bool, error) {
	if question.SkipCondition == nil {
		return false, nil
	}
	return evalCondition(question.SkipCondition, answers, facts)
}

func evalCondition(cond *types.SkipCondition, answers types.Answers, facts types.Facts) (bool, error) {
	switch cond.Operator {
	case types.CONDITION_OPERATOR_AND:
		for i := range cond.Conditions {
			ok, err := evalItem(&cond.Conditions[i], answers, facts)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return len(cond.Conditions) > 0, nil
	case types.CONDITION_OPERATOR_OR:
		for i := range cond.Conditions {
			ok, err := evalItem(&cond.Conditions[i], answers, facts)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case types.CONDITION_OPERATOR_NOT:
		if len(cond.Conditions) != 1 {
			return false, fmt.Errorf("NOT condition requires exactly one item, has %d", len(cond.Conditions))
		}
		ok, err := evalItem(&cond.Conditions[0], answers, facts)
		if err != nil {
			return false, err
		}
		return !ok, nil
	default:
		return false, fmt.Errorf("unknown condition operator %q", cond.Operator)
	}
}

func evalItem(item *types.SkipConditionItem, answers types.Answers, facts types.Facts) (bool, error) {
	switch item.Type {
	case types.CONDITION_ITEM_FIELD_VALUE:
		values, answered := answers.Values(item.Field)
		return compare(values, answered, item)
	case types.CONDITION_ITEM_USER_EXISTS:
		if item.Value == nil {
			return facts.UserExists, nil
		}
		return facts.UserExists == boolish(item.Value), nil
	case types.CONDITION_ITEM_EVENT_TYPE:
		answered := facts.EventType != ""
		return compare([]string{facts.EventType}, answered, item)
	default:
		return false, fmt.Errorf("unknown condition item type %q", item.Type)
	}
}

// compare applies the item's comparison operator to the answer values.
// Multi-select answers satisfy equals/in when any selected value matches.
func compare(values []string, answered bool, item *types.SkipConditionItem) (bool, error) {
	op := item.Operator
	if op == "" {
		op = types.COMPARE_EQUALS
	}

	if !answered {
		switch op {
		case types.COMPARE_EQUALS, types.COMPARE_IN:
			return false, nil
		case types.COMPARE_NOT_EQUALS, types.COMPARE_NOT_IN:
			return true, nil
		default:
			return false, fmt.Errorf("unknown comparison operator %q", op)
		}
	}

	targets := valueList(item.Value)
	switch op {
	case types.COMPARE_EQUALS, types.COMPARE_IN:
		return anyMatch(values, targets), nil
	case types.COMPARE_NOT_EQUALS, types.COMPARE_NOT_IN:
		return !anyMatch(values, targets), nil
	default:
		return false, fmt.Errorf("unknown comparison operator %q", op)
	}
}

func anyMatch(values []string, targets []string) bool {
	for _, v := range values {
		for _, t := range targets {
			if v == t {
				return true
			}
		}
	}
	return false
}

func valueList(v interface{}) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return []string{val}
	case []string:
		return val
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	default:
		return []string{fmt.Sprintf("%v", v)}
	}
}

func boolish(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		switch strings.ToLower(val) {
		case "true", "yes", "1":
			return true
		}
	}
	return false
}
