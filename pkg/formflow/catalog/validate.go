package catalog

import (
	"fmt"
	"regexp"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

var knownQuestionTypes = map[string]bool{
	types.QUESTION_TYPE_TEXT:          true,
	types.QUESTION_TYPE_SELECT:        true,
	types.QUESTION_TYPE_MULTI_SELECT:  true,
	types.QUESTION_TYPE_BOOLEAN:       true,
	types.QUESTION_TYPE_DATE:          true,
	types.QUESTION_TYPE_TELEGRAM_LINK: true,
	types.QUESTION_TYPE_FACEBOOK_LINK: true,
	types.QUESTION_TYPE_MATRIX:        true,
}

var knownRuleTypes = map[string]bool{
	types.RULE_TYPE_REQUIRED:      true,
	types.RULE_TYPE_MIN_LENGTH:    true,
	types.RULE_TYPE_MAX_LENGTH:    true,
	types.RULE_TYPE_DATE_RANGE:    true,
	types.RULE_TYPE_AGE_RANGE:     true,
	types.RULE_TYPE_TELEGRAM_LINK: true,
	types.RULE_TYPE_FACEBOOK_LINK: true,
	types.RULE_TYPE_REGEX:         true,
	types.RULE_TYPE_STI_TEST_DATE: true,
}

var optionTypes = map[string]bool{
	types.QUESTION_TYPE_SELECT:       true,
	types.QUESTION_TYPE_MULTI_SELECT: true,
	types.QUESTION_TYPE_BOOLEAN:      true,
}

// validateDefinitions runs the startup consistency pass over the full
// catalog. Every returned problem is a configuration defect that must fail
// process start; none of these may surface mid-conversation.
func validateDefinitions(defs []types.QuestionDefinition) []string {
	problems := []string{}
	ids := make(map[string]bool, len(defs))

	for _, q := range defs {
		if q.QuestionID == "" {
			problems = append(problems, "question with empty id")
			continue
		}
		if ids[q.QuestionID] {
			problems = append(problems, fmt.Sprintf("duplicate question id %q", q.QuestionID))
		}
		ids[q.QuestionID] = true
	}

	for _, q := range defs {
		if !knownQuestionTypes[q.QuestionType] {
			problems = append(problems, fmt.Sprintf("%s: unknown question type %q", q.QuestionID, q.QuestionType))
		}
		if q.SaveTo != types.SAVE_TO_USERS && q.SaveTo != types.SAVE_TO_REGISTRATIONS {
			problems = append(problems, fmt.Sprintf("%s: unknown save_to target %q", q.QuestionID, q.SaveTo))
		}
		if optionTypes[q.QuestionType] && len(q.Options) == 0 && !q.DynamicOptions {
			problems = append(problems, fmt.Sprintf("%s: %s question without options", q.QuestionID, q.QuestionType))
		}
		if len(q.Title) == 0 {
			problems = append(problems, fmt.Sprintf("%s: missing title", q.QuestionID))
		}

		for _, rule := range q.ValidationRules {
			problems = append(problems, validateRule(q.QuestionID, rule)...)
		}
		if q.SkipCondition != nil {
			problems = append(problems, validateCondition(q.QuestionID, q.SkipCondition, ids)...)
		}
	}
	return problems
}

func validateRule(questionID string, rule types.ValidationRule) []string {
	problems := []string{}
	if !knownRuleTypes[rule.RuleType] {
		return append(problems, fmt.Sprintf("%s: unknown validation rule type %q", questionID, rule.RuleType))
	}
	switch rule.RuleType {
	case types.RULE_TYPE_MIN_LENGTH:
		if _, ok := rule.ParamInt("min"); !ok {
			problems = append(problems, fmt.Sprintf("%s: min_length rule without min param", questionID))
		}
	case types.RULE_TYPE_MAX_LENGTH:
		if _, ok := rule.ParamInt("max"); !ok {
			problems = append(problems, fmt.Sprintf("%s: max_length rule without max param", questionID))
		}
	case types.RULE_TYPE_AGE_RANGE:
		if _, ok := rule.ParamInt("min_age"); !ok {
			problems = append(problems, fmt.Sprintf("%s: age_range rule without min_age param", questionID))
		}
		if _, ok := rule.ParamInt("max_age"); !ok {
			problems = append(problems, fmt.Sprintf("%s: age_range rule without max_age param", questionID))
		}
	case types.RULE_TYPE_REGEX:
		pattern, ok := rule.ParamString("regex")
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: regex rule without regex param", questionID))
			break
		}
		if _, err := regexp.Compile(pattern); err != nil {
			problems = append(problems, fmt.Sprintf("%s: regex rule does not compile: %v", questionID, err))
		}
	}
	return problems
}

func validateCondition(questionID string, cond *types.SkipCondition, ids map[string]bool) []string {
	problems := []string{}
	switch cond.Operator {
	case types.CONDITION_OPERATOR_AND, types.CONDITION_OPERATOR_OR:
		if len(cond.Conditions) == 0 {
			problems = append(problems, fmt.Sprintf("%s: skip condition without items", questionID))
		}
	case types.CONDITION_OPERATOR_NOT:
		if len(cond.Conditions) != 1 {
			problems = append(problems, fmt.Sprintf("%s: NOT skip condition needs exactly one item, has %d", questionID, len(cond.Conditions)))
		}
	default:
		problems = append(problems, fmt.Sprintf("%s: unknown skip condition operator %q", questionID, cond.Operator))
	}

	for _, item := range cond.Conditions {
		switch item.Type {
		case types.CONDITION_ITEM_FIELD_VALUE:
			if item.Field == "" {
				problems = append(problems, fmt.Sprintf("%s: field_value condition without field", questionID))
			} else if !ids[item.Field] {
				problems = append(problems, fmt.Sprintf("%s: skip condition references unknown question %q", questionID, item.Field))
			}
		case types.CONDITION_ITEM_USER_EXISTS, types.CONDITION_ITEM_EVENT_TYPE:
			// no referenced question to check
		default:
			problems = append(problems, fmt.Sprintf("%s: unknown skip condition item type %q", questionID, item.Type))
		}
		if item.Operator != "" && !knownComparison(item.Operator) {
			problems = append(problems, fmt.Sprintf("%s: unknown comparison operator %q", questionID, item.Operator))
		}
	}
	return problems
}

func knownComparison(op string) bool {
	switch op {
	case types.COMPARE_EQUALS, types.COMPARE_NOT_EQUALS, types.COMPARE_IN, types.COMPARE_NOT_IN:
		return true
	}
	return false
}
