package types

const (
	LANGUAGE_HE = "he"
	LANGUAGE_EN = "en"

	DEFAULT_LANGUAGE = LANGUAGE_HE
)

const (
	QUESTION_TYPE_TEXT          = "text"
	QUESTION_TYPE_SELECT        = "select"
	QUESTION_TYPE_MULTI_SELECT  = "multi_select"
	QUESTION_TYPE_BOOLEAN       = "boolean"
	QUESTION_TYPE_DATE          = "date"
	QUESTION_TYPE_TELEGRAM_LINK = "telegram_link"
	QUESTION_TYPE_FACEBOOK_LINK = "facebook_link"
	QUESTION_TYPE_MATRIX        = "matrix"
)

const (
	RULE_TYPE_REQUIRED      = "required"
	RULE_TYPE_MIN_LENGTH    = "min_length"
	RULE_TYPE_MAX_LENGTH    = "max_length"
	RULE_TYPE_DATE_RANGE    = "date_range"
	RULE_TYPE_AGE_RANGE     = "age_range"
	RULE_TYPE_TELEGRAM_LINK = "telegram_link"
	RULE_TYPE_FACEBOOK_LINK = "facebook_link"
	RULE_TYPE_REGEX         = "regex"
	RULE_TYPE_STI_TEST_DATE = "sti_test_date"
)

const (
	CONDITION_OPERATOR_AND = "AND"
	CONDITION_OPERATOR_OR  = "OR"
	CONDITION_OPERATOR_NOT = "NOT"
)

const (
	CONDITION_ITEM_FIELD_VALUE = "field_value"
	CONDITION_ITEM_USER_EXISTS = "user_exists"
	CONDITION_ITEM_EVENT_TYPE  = "event_type"
)

const (
	COMPARE_EQUALS     = "equals"
	COMPARE_NOT_EQUALS = "not_equals"
	COMPARE_IN         = "in"
	COMPARE_NOT_IN     = "not_in"
)

const (
	SAVE_TO_USERS         = "Users"
	SAVE_TO_REGISTRATIONS = "Registrations"
)

// LocalisedText holds translations keyed by language code ("he", "en").
type LocalisedText map[string]string

// Get returns the text for lang, falling back to English and then Hebrew
// when the requested language has no entry.
func (t LocalisedText) Get(lang string) string {
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	if v, ok := t[LANGUAGE_EN]; ok && v != "" {
		return v
	}
	return t[LANGUAGE_HE]
}

type QuestionOption struct {
	Value string        `bson:"value" json:"value"`
	Text  LocalisedText `bson:"text" json:"text"`
}

type ValidationRule struct {
	RuleType     string                 `bson:"ruleType" json:"rule_type"`
	Params       map[string]interface{} `bson:"params,omitempty" json:"params,omitempty"`
	ErrorMessage LocalisedText          `bson:"errorMessage,omitempty" json:"error_message,omitempty"`
}

// ParamInt reads an integer rule parameter. JSON decoding yields float64 for
// numbers, catalog literals may use int, so both are accepted.
func (r ValidationRule) ParamInt(key string) (int, bool) {
	v, ok := r.Params[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func (r ValidationRule) ParamString(key string) (string, bool) {
	v, ok := r.Params[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// SkipConditionItem is a single predicate inside a skip condition.
// Type selects the input: a previously given answer (field_value), the
// user-exists fact or the event-type fact. Operator defaults to "equals".
type SkipConditionItem struct {
	Type     string      `bson:"type" json:"type"`
	Operator string      `bson:"operator,omitempty" json:"operator,omitempty"`
	Field    string      `bson:"field,omitempty" json:"field,omitempty"`
	Value    interface{} `bson:"value,omitempty" json:"value,omitempty"`
}

// SkipCondition combines one or more items with AND, OR or NOT.
// NOT is defined for exactly one item.
type SkipCondition struct {
	Operator   string              `bson:"operator" json:"operator"`
	Conditions []SkipConditionItem `bson:"conditions" json:"conditions"`
}

// QuestionDefinition describes one step of the registration form. Definitions
// are loaded once at startup and never mutated afterwards.
type QuestionDefinition struct {
	QuestionID      string           `bson:"questionID" json:"question_id"`
	QuestionType    string           `bson:"questionType" json:"question_type"`
	Title           LocalisedText    `bson:"title" json:"title"`
	Placeholder     LocalisedText    `bson:"placeholder,omitempty" json:"placeholder,omitempty"`
	ExtraText       LocalisedText    `bson:"extraText,omitempty" json:"extra_text,omitempty"`
	Required        bool             `bson:"required" json:"required"`
	Order           int              `bson:"order" json:"order"`
	SaveTo          string           `bson:"saveTo" json:"save_to"`
	Options         []QuestionOption `bson:"options,omitempty" json:"options,omitempty"`
	DynamicOptions  bool             `bson:"dynamicOptions,omitempty" json:"dynamic_options,omitempty"` // options resolved at ask time (e.g. upcoming events)
	ValidationRules []ValidationRule `bson:"validationRules,omitempty" json:"validation_rules,omitempty"`
	SkipCondition   *SkipCondition   `bson:"skipCondition,omitempty" json:"skip_condition,omitempty"`
}

// OptionValues returns the values of all options in declared order.
func (q QuestionDefinition) OptionValues() []string {
	values := make([]string, len(q.Options))
	for i, opt := range q.Options {
		values[i] = opt.Value
	}
	return values
}
