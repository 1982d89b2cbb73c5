package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

const dateLayout = "02/01/2006"

var dateFormatPattern = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
var telegramHandlePattern = regexp.MustCompile(`^@[a-zA-Z0-9_]{5,32}$`)
var telegramLinkPattern = regexp.MustCompile(`^https://t\.me/[a-zA-Z0-9_]{5,32}$`)

// Result is the outcome of validating one answer. On failure RuleType names
// the first rule that rejected the answer and Message carries its localized
// error text.
type Result struct {
	Valid    bool
	RuleType string
	Message  string
}

// Validator applies a question's validation rules to a candidate answer in
// declared order, stopping at the first failing rule. Now is injectable so
// age computations are testable; the zero value uses the wall clock.
type Validator struct {
	Now func() time.Time
}

func New() *Validator {
	return &Validator{Now: time.Now}
}

// Validate checks rawAnswer (string or []string) against the question's
// rules. The returned message is in the requested language, falling back per
// the localisation rules.
func (v *Validator) Validate(question *types.QuestionDefinition, rawAnswer interface{}, language string) Result {
	answer, list := answerForms(rawAnswer)

	for _, rule := range question.ValidationRules {
		ok := v.applyRule(rule, answer, list)
		if !ok {
			return Result{
				Valid:    false,
				RuleType: rule.RuleType,
				Message:  errorMessage(rule, language),
			}
		}
	}
	return Result{Valid: true}
}

func (v *Validator) applyRule(rule types.ValidationRule, answer string, list []string) bool {
	switch rule.RuleType {
	case types.RULE_TYPE_REQUIRED:
		if len(list) > 0 {
			for _, item := range list {
				if strings.TrimSpace(item) != "" {
					return true
				}
			}
			return false
		}
		return strings.TrimSpace(answer) != ""
	case types.RULE_TYPE_MIN_LENGTH:
		min, ok := rule.ParamInt("min")
		return !ok || utf8.RuneCountInString(answer) >= min
	case types.RULE_TYPE_MAX_LENGTH:
		max, ok := rule.ParamInt("max")
		return !ok || utf8.RuneCountInString(answer) <= max
	case types.RULE_TYPE_DATE_RANGE:
		return dateFormatPattern.MatchString(answer)
	case types.RULE_TYPE_AGE_RANGE:
		return v.checkAgeRange(rule, answer)
	case types.RULE_TYPE_TELEGRAM_LINK:
		return telegramHandlePattern.MatchString(answer) || telegramLinkPattern.MatchString(answer)
	case types.RULE_TYPE_FACEBOOK_LINK:
		return ValidateSocialLink(answer).IsValid
	case types.RULE_TYPE_REGEX:
		pattern, ok := rule.ParamString("regex")
		if !ok {
			return true
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			// uncompilable patterns are rejected by the catalog startup pass
			return true
		}
		return re.MatchString(answer)
	case types.RULE_TYPE_STI_TEST_DATE:
		// Deliberately permissive: any parseable date passes, recency is
		// reviewed by the organizers during approval.
		_, err := time.Parse(dateLayout, answer)
		return err == nil
	default:
		return true
	}
}

func (v *Validator) checkAgeRange(rule types.ValidationRule, answer string) bool {
	birthDate, err := time.Parse(dateLayout, answer)
	if err != nil {
		return false
	}

	minAge, hasMin := rule.ParamInt("min_age")
	maxAge, hasMax := rule.ParamInt("max_age")

	age := wholeYearsSince(birthDate, v.now())
	if hasMin && age < minAge {
		return false
	}
	if hasMax && age > maxAge {
		return false
	}
	return true
}

func (v *Validator) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

// wholeYearsSince computes age in completed years: the year difference,
// minus one when the birthday has not yet occurred this year.
func wholeYearsSince(birthDate, today time.Time) int {
	years := today.Year() - birthDate.Year()
	anniversary := birthDate.AddDate(years, 0, 0)
	if anniversary.After(today) {
		years--
	}
	return years
}

func errorMessage(rule types.ValidationRule, language string) string {
	if msg := rule.ErrorMessage.Get(language); msg != "" {
		return msg
	}
	return defaultErrorMessage(rule.RuleType, language)
}

var defaultErrors = map[string]types.LocalisedText{
	types.RULE_TYPE_REQUIRED: {
		types.LANGUAGE_HE: "שדה חובה",
		types.LANGUAGE_EN: "This field is required",
	},
	types.RULE_TYPE_DATE_RANGE: {
		types.LANGUAGE_HE: "אנא הזן תאריך בפורמט DD/MM/YYYY",
		types.LANGUAGE_EN: "Please enter a date in DD/MM/YYYY format",
	},
	types.RULE_TYPE_TELEGRAM_LINK: {
		types.LANGUAGE_HE: "אנא הזן קישור טלגרם תקין (@username או https://t.me/username)",
		types.LANGUAGE_EN: "Please enter a valid Telegram link (@username or https://t.me/username)",
	},
	types.RULE_TYPE_FACEBOOK_LINK: {
		types.LANGUAGE_HE: "אנא הזן קישור פייסבוק תקין",
		types.LANGUAGE_EN: "Please enter a valid Facebook link",
	},
}

func defaultErrorMessage(ruleType string, language string) string {
	if msg, ok := defaultErrors[ruleType]; ok {
		return msg.Get(language)
	}
	if language == types.LANGUAGE_HE {
		return "הערך שהוזן אינו תקין"
	}
	return "The provided value is not valid"
}

// answerForms normalizes the raw answer into its string and list forms.
func answerForms(rawAnswer interface{}) (string, []string) {
	switch a := rawAnswer.(type) {
	case nil:
		return "", nil
	case string:
		return a, nil
	case []string:
		return strings.Join(a, ", "), a
	case []interface{}:
		list := make([]string, 0, len(a))
		for _, item := range a {
			if s, ok := item.(string); ok {
				list = append(list, s)
			}
		}
		return strings.Join(list, ", "), list
	default:
		return "", nil
	}
}
