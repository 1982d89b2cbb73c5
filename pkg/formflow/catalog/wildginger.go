package catalog

import (
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

// Texts appended to placeholders of optional questions: the user can move on
// by writing the continue keyword instead of answering.
const (
	skipHintHe = "ניתן לדלג על השאלה. רשמו 'המשך'"
	skipHintEn = "you can skip the question. write 'continue'"
)

// DefaultMetadata describes the built-in Wild Ginger registration form.
func DefaultMetadata() Metadata {
	return Metadata{
		FormName:           "Wild Ginger Event Registration",
		FormVersion:        "1.0.0",
		SupportedLanguages: []string{types.LANGUAGE_HE, types.LANGUAGE_EN},
		DefaultLanguage:    types.LANGUAGE_HE,
		Description: types.LocalisedText{
			types.LANGUAGE_HE: "טופס הרשמה לאירועי Wild Ginger",
			types.LANGUAGE_EN: "Wild Ginger Event Registration Form",
		},
	}
}

// Default builds the built-in Wild Ginger catalog.
func Default() (*Catalog, error) {
	return New(DefaultMetadata(), DefaultQuestions())
}

// DefaultQuestions returns the full Wild Ginger question set in ask order.
// Texts are the production he/en wording; event_selection and DM_shifts get
// their options resolved at ask time from the current event data.
func DefaultQuestions() []types.QuestionDefinition {
	required := func(he, en string) types.ValidationRule {
		return types.ValidationRule{
			RuleType:     types.RULE_TYPE_REQUIRED,
			ErrorMessage: types.LocalisedText{"he": he, "en": en},
		}
	}
	requiredOption := required("אנא בחר אופציה", "Please select an option")
	maxLength200 := types.ValidationRule{
		RuleType:     types.RULE_TYPE_MAX_LENGTH,
		Params:       map[string]interface{}{"max": 200},
		ErrorMessage: types.LocalisedText{"he": "הטקסט ארוך מדי. אנא קצר", "en": "Text is too long. Please shorten"},
	}
	invalidDate := types.ValidationRule{
		RuleType:     types.RULE_TYPE_DATE_RANGE,
		ErrorMessage: types.LocalisedText{"he": "התאריך אינו תקין. אנא הזן תאריך תקין", "en": "Invalid date. Please enter a valid date"},
	}
	yesNo := []types.QuestionOption{
		{Value: "yes", Text: types.LocalisedText{"he": "כן", "en": "Yes"}},
		{Value: "no", Text: types.LocalisedText{"he": "לא", "en": "No"}},
	}
	yesMaybeNo := []types.QuestionOption{
		{Value: "yes", Text: types.LocalisedText{"he": "כן", "en": "Yes"}},
		{Value: "maybe", Text: types.LocalisedText{"he": "אולי", "en": "Maybe"}},
		{Value: "no", Text: types.LocalisedText{"he": "לא", "en": "No"}},
	}
	skipWhenUserKnown := &types.SkipCondition{
		Operator: types.CONDITION_OPERATOR_OR,
		Conditions: []types.SkipConditionItem{
			{Type: types.CONDITION_ITEM_USER_EXISTS, Field: "telegram_id"},
		},
	}
	skipWhenSingle := &types.SkipCondition{
		Operator: types.CONDITION_OPERATOR_OR,
		Conditions: []types.SkipConditionItem{
			{Type: types.CONDITION_ITEM_FIELD_VALUE, Field: "partner_or_single", Value: "single", Operator: types.COMPARE_EQUALS},
		},
	}
	skipWhenPartnerOnly := &types.SkipCondition{
		Operator: types.CONDITION_OPERATOR_OR,
		Conditions: []types.SkipConditionItem{
			{Type: types.CONDITION_ITEM_FIELD_VALUE, Field: "is_play_with_partner_only", Value: "partner_only", Operator: types.COMPARE_EQUALS},
		},
	}
	skipWhenNotSharing := &types.SkipCondition{
		Operator: types.CONDITION_OPERATOR_OR,
		Conditions: []types.SkipConditionItem{
			{Type: types.CONDITION_ITEM_FIELD_VALUE, Field: "share_bdsm_interests", Value: "no", Operator: types.COMPARE_EQUALS},
		},
	}

	return []types.QuestionDefinition{
		{
			QuestionID:   "language",
			QuestionType: types.QUESTION_TYPE_SELECT,
			Title: types.LocalisedText{
				"he": "באיזו שפה תרצה למלא את הטופס?",
				"en": "In which language would you like to fill the form?",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_USERS,
			Order:    1,
			Options: []types.QuestionOption{
				{Value: "he", Text: types.LocalisedText{"he": "עברית", "en": "Hebrew"}},
				{Value: "en", Text: types.LocalisedText{"he": "English", "en": "English"}},
			},
			ValidationRules: []types.ValidationRule{required("אנא בחר שפה", "Please select a language")},
		},
		{
			QuestionID:   "interested_in_event_types",
			QuestionType: types.QUESTION_TYPE_MULTI_SELECT,
			Title: types.LocalisedText{
				"he": "מה סוגי האירועים שתרצה להשתתף בהם?",
				"en": "What type of events would you like to participate in?",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_USERS,
			Order:    2,
			Options: []types.QuestionOption{
				{Value: "play", Text: types.LocalisedText{"he": "משחק", "en": "Play"}},
				{Value: "cuddle", Text: types.LocalisedText{"he": "כירבולייה", "en": "Cuddle"}},
			},
			ValidationRules: []types.ValidationRule{required("אנא בחר אירוע", "Please select an event")},
		},
		{
			QuestionID:   "event_selection",
			QuestionType: types.QUESTION_TYPE_SELECT,
			Title: types.LocalisedText{
				"he": "לאיזה אירוע תרצה להירשם?",
				"en": "To which event would you like to register?",
			},
			Required:        true,
			SaveTo:          types.SAVE_TO_REGISTRATIONS,
			Order:           3,
			DynamicOptions:  true,
			ValidationRules: []types.ValidationRule{required("אנא בחר אירוע", "Please select an event")},
		},
		{
			QuestionID:   "would_you_like_to_register",
			QuestionType: types.QUESTION_TYPE_BOOLEAN,
			Title: types.LocalisedText{
				"he": "האם תרצה להירשם לאירוע?",
				"en": "Would you like to register to this event?",
			},
			Required:        true,
			SaveTo:          types.SAVE_TO_REGISTRATIONS,
			Order:           4,
			Options:         yesNo,
			ValidationRules: []types.ValidationRule{required("אנא בחר אירוע", "Please select an event")},
		},
		{
			QuestionID:   "full_name",
			QuestionType: types.QUESTION_TYPE_TEXT,
			Title: types.LocalisedText{
				"he": "מה השם המלא שלך?",
				"en": "What is your full name?",
			},
			ExtraText: types.LocalisedText{
				"he": "*פרטים אישיים*\nאיזה כיף שאתה מתעניין באירוע! נעבור על כמה שאלות כל מנת להכיר אותך טוב יותר.",
				"en": "*Personal details*\nIt's great that you're interested in the event! We'll go through a few questions to get to know you better.",
			},
			Required:      true,
			SaveTo:        types.SAVE_TO_USERS,
			Order:         5,
			Placeholder:   types.LocalisedText{"he": "הזן שם מלא", "en": "Enter full name"},
			SkipCondition: skipWhenUserKnown,
			ValidationRules: []types.ValidationRule{
				required("אנא הזן את שמך המלא", "Please enter your full name"),
				{
					RuleType:     types.RULE_TYPE_MIN_LENGTH,
					Params:       map[string]interface{}{"min": 2},
					ErrorMessage: types.LocalisedText{"he": "השם חייב להכיל לפחות 2 תווים", "en": "Name must contain at least 2 characters"},
				},
			},
		},
		{
			QuestionID:   "relevent_experience",
			QuestionType: types.QUESTION_TYPE_TEXT,
			Title: types.LocalisedText{
				"he": "מה רמת הניסיון שלך באירועים דומים?",
				"en": "What is your experience with similar events?",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_USERS,
			Order:    6,
			Placeholder: types.LocalisedText{
				"he": "למשל: משחק בכירבולייה, משחק במשחקים בודדים, משחק במשחקים בצניחה, משחק במשחקים במשחקים בכירבולייה",
				"en": "e.g., Play in cuddle, Play in solo, Play in cuddle, Play in bdsm, Play in bdsm in cuddle, Play in bdsm in solo",
			},
			ValidationRules: []types.ValidationRule{required("אנא הזן רמת ניסיון", "Please enter experience")},
		},
		{
			QuestionID:   "partner_or_single",
			QuestionType: types.QUESTION_TYPE_SELECT,
			Title: types.LocalisedText{
				"he": "האם אתה/את מגיע/ה לבד או עם פרטנר?",
				"en": "Are you coming alone or with a partner?",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_REGISTRATIONS,
			Order:    7,
			Options: []types.QuestionOption{
				{Value: "single", Text: types.LocalisedText{"he": "לבד", "en": "Alone"}},
				{Value: "partner", Text: types.LocalisedText{"he": "עם פרטנר", "en": "With partner"}},
			},
			ValidationRules: []types.ValidationRule{requiredOption},
		},
		{
			QuestionID:   "partner_telegram_link",
			QuestionType: types.QUESTION_TYPE_TELEGRAM_LINK,
			Title: types.LocalisedText{
				"he": "אנא שתף לינק לטלגרם של הפרטנר שלך",
				"en": "Please share your partner's Telegram link",
			},
			Required:      true,
			SaveTo:        types.SAVE_TO_REGISTRATIONS,
			Order:         8,
			Placeholder:   types.LocalisedText{"he": "https://t.me/username Or @username", "en": "https://t.me/username Or @username"},
			SkipCondition: skipWhenSingle,
			ValidationRules: []types.ValidationRule{
				required("אנא הזן לינק לטלגרם", "Please enter Telegram link"),
				{
					RuleType: types.RULE_TYPE_TELEGRAM_LINK,
					ErrorMessage: types.LocalisedText{
						"he": "הלינק אינו תקין. אנא הזן לינק תקין לטלגרם\nhttps://t.me/username Or @username",
						"en": "Invalid link. Please enter a valid Telegram link\nhttps://t.me/username Or @username",
					},
				},
			},
		},
		{
			QuestionID:   "last_sti_test",
			QuestionType: types.QUESTION_TYPE_DATE,
			Title: types.LocalisedText{
				"he": "מה התאריך של בדיקת המין האחרונה שלך?",
				"en": "What is the date of your last STI test?",
			},
			Required:    true,
			SaveTo:      types.SAVE_TO_REGISTRATIONS,
			Order:       9,
			Placeholder: types.LocalisedText{"he": "DD/MM/YYYY", "en": "DD/MM/YYYY"},
			SkipCondition: &types.SkipCondition{
				Operator: types.CONDITION_OPERATOR_OR,
				Conditions: []types.SkipConditionItem{
					{Type: types.CONDITION_ITEM_EVENT_TYPE, Value: "cuddle", Operator: types.COMPARE_EQUALS},
				},
			},
			ValidationRules: []types.ValidationRule{
				required("אנא הזן תאריך בדיקה", "Please enter test date"),
				invalidDate,
			},
		},
		{
			QuestionID:   "facebook_profile",
			QuestionType: types.QUESTION_TYPE_FACEBOOK_LINK,
			Title: types.LocalisedText{
				"he": "אנא שתף לינק לפרופיל הפייסבוק או האינסטגרם שלך",
				"en": "Please share a link to your Facebook OR Instagram profile",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_USERS,
			Order:    10,
			Placeholder: types.LocalisedText{
				"he": "https://facebook.com/username Or https://instagram.com/username",
				"en": "https://facebook.com/username Or https://instagram.com/username",
			},
			SkipCondition: skipWhenUserKnown,
			ValidationRules: []types.ValidationRule{
				required("אנא הזן לינק לפייסבוק או לאינסטגרם", "Please enter Facebook or Instagram link"),
				{
					RuleType: types.RULE_TYPE_FACEBOOK_LINK,
					ErrorMessage: types.LocalisedText{
						"he": "הלינק אינו תקין. אנא הזן לינק תקין לפייסבוק או לאינסטגרם",
						"en": "Invalid link. Please enter a valid Facebook or Instagram link",
					},
				},
			},
		},
		{
			QuestionID:   "birth_date",
			QuestionType: types.QUESTION_TYPE_DATE,
			Title: types.LocalisedText{
				"he": "מה תאריך הלידה שלך?",
				"en": "What is your birth date?",
			},
			Required:      true,
			SaveTo:        types.SAVE_TO_USERS,
			Order:         11,
			Placeholder:   types.LocalisedText{"he": "DD/MM/YYYY", "en": "DD/MM/YYYY"},
			SkipCondition: skipWhenUserKnown,
			ValidationRules: []types.ValidationRule{
				required("אנא הזן תאריך לידה", "Please enter birth date"),
				invalidDate,
				{
					RuleType:     types.RULE_TYPE_AGE_RANGE,
					Params:       map[string]interface{}{"min_age": 18, "max_age": 100},
					ErrorMessage: types.LocalisedText{"he": "הגיל חייב להיות בין 18 ל-100", "en": "Age must be between 18 and 100"},
				},
			},
		},
		{
			QuestionID:   "sexual_orientation_and_gender",
			QuestionType: types.QUESTION_TYPE_TEXT,
			Title: types.LocalisedText{
				"he": "נטייה מינית ומגדר",
				"en": "Sexual orientation and gender",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_USERS,
			Order:    12,
			Placeholder: types.LocalisedText{
				"he": "למשל: זכר סטרייט, אישה לסבית, אחר",
				"en": "for example: male straight, female bi, other",
			},
			ValidationRules: []types.ValidationRule{requiredOption},
		},
		{
			QuestionID:   "pronouns",
			QuestionType: types.QUESTION_TYPE_TEXT,
			Title: types.LocalisedText{
				"he": "מה לשון הפניה שלך?",
				"en": "What are your pronouns?",
			},
			Required: false,
			SaveTo:   types.SAVE_TO_USERS,
			Order:    13,
			Placeholder: types.LocalisedText{
				"he": "למשל: את / אתה / הם\n" + skipHintHe,
				"en": "for example: she/he/they\n" + skipHintEn,
			},
			ValidationRules: []types.ValidationRule{maxLength200},
		},
		{
			QuestionID:   "bdsm_experience",
			QuestionType: types.QUESTION_TYPE_MULTI_SELECT,
			Title: types.LocalisedText{
				"he": "מה רמת הניסיון שלך ב-BDSM?",
				"en": "What is your BDSM experience level?",
			},
			ExtraText: types.LocalisedText{
				"he": "*בואו נדבר בדס\"מ*\nנעים מהכיר! היות ומדובר על אירוע בדסמי נעבור כעת על כמה שאלות בנושא.",
				"en": "*Let's talk BDSM*\nNice to meet you! Since this is a BDSM event, we'll go through a few questions on the subject.",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_USERS,
			Order:    14,
			Options: []types.QuestionOption{
				{Value: "none_not_interested", Text: types.LocalisedText{"he": "אין לי נסיון וגם לא מתעניין.ת בבדס\"מ", "en": "No experience and not interested in BDSM"}},
				{Value: "none_interested_top", Text: types.LocalisedText{"he": "אין לי נסיון אבל מעניין אותי לנסות לשלוט", "en": "No experience but interested in trying to top"}},
				{Value: "none_interested_bottom", Text: types.LocalisedText{"he": "אין לי נסיון אבל מעניין אותי לנסות להישלט", "en": "No experience but interested in trying to bottom"}},
				{Value: "experienced_top", Text: types.LocalisedText{"he": "יש לי נסיון בתור טופ/שולט.ת", "en": "I have experience as a top/dominant"}},
				{Value: "experienced_bottom", Text: types.LocalisedText{"he": "יש לי נסיון בתור בוטום/נשלט.ת", "en": "I have experience as a bottom/submissive"}},
				{Value: "other", Text: types.LocalisedText{"he": "אחר", "en": "Other"}},
			},
			ValidationRules: []types.ValidationRule{required("אנא בחר רמת ניסיון", "Please select experience level")},
		},
		{
			QuestionID:   "bdsm_declaration",
			QuestionType: types.QUESTION_TYPE_SELECT,
			Title: types.LocalisedText{
				"he": "האירוע הינו בדסמ פרנדלי, ויכלול אקטים בדס\"מים / מיניים שונים על פי רצון המשתתפים. איני מחוייב.ת להשתתף באף אקט ואסרב בנימוס אם יציעו לי אקט שאיני מעוניין.ת בו",
				"en": "The event is BDSM friendly, and will include various BDSM / sexual acts according to the wishes of the participants. I am not obliged to participate in any act and will politely refuse an offer for an act that I am not interested in.",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_REGISTRATIONS,
			Order:    15,
			Options: []types.QuestionOption{
				{Value: "yes", Text: types.LocalisedText{"he": "כמובן", "en": "of course"}},
				{Value: "no", Text: types.LocalisedText{"he": "לא ברור לי הסעיף, אשמח להבהרה", "en": "I don't understand, please clarify"}},
			},
			ValidationRules: []types.ValidationRule{requiredOption},
		},
		{
			QuestionID:   "is_play_with_partner_only",
			QuestionType: types.QUESTION_TYPE_SELECT,
			Title: types.LocalisedText{
				"he": "האם תהיה מעוניין לשחק אך ורק עם הפרטנר שתגיעו איתו או גם עם אנשים נוספים?",
				"en": "would you like to play only with the partner you will come with or also with other people?",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_REGISTRATIONS,
			Order:    16,
			Options: []types.QuestionOption{
				{Value: "partner_only", Text: types.LocalisedText{"he": "רק עם פרטנר", "en": "Only with my partner"}},
				{Value: "other_people", Text: types.LocalisedText{"he": "גם עם אחרים", "en": "Also with other people"}},
			},
			ValidationRules: []types.ValidationRule{requiredOption},
			SkipCondition:   skipWhenSingle,
		},
		{
			QuestionID:   "desired_play_partners",
			QuestionType: types.QUESTION_TYPE_MULTI_SELECT,
			Title: types.LocalisedText{
				"he": "מי תרצה להשתתף באירוע?",
				"en": "Who would you like to participate with?",
			},
			Required:    true,
			SaveTo:      types.SAVE_TO_REGISTRATIONS,
			Order:       17,
			Placeholder: types.LocalisedText{"he": "למשל: זכר, נקבה, אחר", "en": "e.g., male, female, other"},
			Options: []types.QuestionOption{
				{Value: "all_genders", Text: types.LocalisedText{"he": "יש לי עניין עם כל המגדרים", "en": "I am interested in all genders"}},
				{Value: "women_only", Text: types.LocalisedText{"he": "יש לי עניין עם נשים* בלבד", "en": "I am interested in women* only"}},
				{Value: "men_only", Text: types.LocalisedText{"he": "יש לי עניין עם גברים* בלבד", "en": "I am interested in men* only"}},
				{Value: "couples", Text: types.LocalisedText{"he": "יש לי עניין עם זוג", "en": "I am interested in couples"}},
				{Value: "partner_dependent", Text: types.LocalisedText{"he": "יש לי עניין אך זה תלוי בהסכמות של בן/בת הזוג", "en": "I am interested but it depends on my partner's consent"}},
			},
			ValidationRules: []types.ValidationRule{requiredOption},
			SkipCondition:   skipWhenPartnerOnly,
		},
		{
			QuestionID:   "contact_type",
			QuestionType: types.QUESTION_TYPE_SELECT,
			Title: types.LocalisedText{
				"he": "באיזה סוג מגע תהיה מעוניינ.ת?",
				"en": "What type of contact would you like?",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_REGISTRATIONS,
			Order:    18,
			Options: []types.QuestionOption{
				{Value: "bdsm_only", Text: types.LocalisedText{"he": "בדס״מ בלבד", "en": "BDSM only"}},
				{Value: "bdsm_and_sexual", Text: types.LocalisedText{"he": "בדס״מ ומיניות", "en": "BDSM and sexual"}},
				{Value: "other", Text: types.LocalisedText{"he": "אחר", "en": "Other"}},
			},
			ValidationRules: []types.ValidationRule{requiredOption},
			SkipCondition:   skipWhenPartnerOnly,
		},
		{
			QuestionID:   "contact_type_other",
			QuestionType: types.QUESTION_TYPE_TEXT,
			Title: types.LocalisedText{
				"he": "אנא פרט לגבי סוג המגע הרצוי",
				"en": "Please elaborate on the type of contact you would like",
			},
			Required:    true,
			SaveTo:      types.SAVE_TO_REGISTRATIONS,
			Order:       19,
			Placeholder: types.LocalisedText{"he": "למשל: בדס״מ בלבד, בדס״מ ומיניות, אחר", "en": "e.g., BDSM only, BDSM and sexual, Other"},
			// Asked only when contact_type was answered with "other".
			SkipCondition: &types.SkipCondition{
				Operator: types.CONDITION_OPERATOR_OR,
				Conditions: []types.SkipConditionItem{
					{Type: types.CONDITION_ITEM_FIELD_VALUE, Field: "contact_type", Value: "other", Operator: types.COMPARE_NOT_EQUALS},
				},
			},
			ValidationRules: []types.ValidationRule{maxLength200},
		},
		{
			QuestionID:   "share_bdsm_interests",
			QuestionType: types.QUESTION_TYPE_BOOLEAN,
			Title: types.LocalisedText{
				"he": "אשמח לשמוע על הגבולות והעדפות שלכם",
				"en": "We would love to hear about your limits and preferences",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_REGISTRATIONS,
			Order:    20,
			Options: []types.QuestionOption{
				{Value: "yes", Text: types.LocalisedText{"he": "יאאלה", "en": "Sure"}},
				{Value: "no", Text: types.LocalisedText{"he": "לא מעוניין לשתף", "en": "Don't want to share"}},
			},
			ValidationRules: []types.ValidationRule{requiredOption},
		},
		{
			QuestionID:   "limits_preferences_matrix",
			QuestionType: types.QUESTION_TYPE_MULTI_SELECT,
			Title: types.LocalisedText{
				"he": "גבולות והעדפות?",
				"en": "limits and preferences?",
			},
			Required:        true,
			SaveTo:          types.SAVE_TO_USERS,
			Order:           21,
			Options:         yesNo,
			ValidationRules: []types.ValidationRule{requiredOption},
		},
		{
			QuestionID:   "boundaries_text",
			QuestionType: types.QUESTION_TYPE_TEXT,
			Title: types.LocalisedText{
				"he": "גבולות - טקסט חופשי",
				"en": "Boundaries - free text",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_USERS,
			Order:    22,
			Placeholder: types.LocalisedText{
				"he": "תרשמו במילים שלכם\n" + skipHintHe,
				"en": "Write in your own words\n" + skipHintEn,
			},
			ValidationRules: []types.ValidationRule{maxLength200},
			SkipCondition:   skipWhenNotSharing,
		},
		{
			QuestionID:   "preferences_text",
			QuestionType: types.QUESTION_TYPE_TEXT,
			Title: types.LocalisedText{
				"he": "העדפות - טקסט חופשי",
				"en": "Preferences - free text",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_USERS,
			Order:    23,
			Placeholder: types.LocalisedText{
				"he": "תרשמו במילים שלכם\n" + skipHintHe,
				"en": "Write in your own words\n" + skipHintEn,
			},
			ValidationRules: []types.ValidationRule{maxLength200},
			SkipCondition:   skipWhenNotSharing,
		},
		{
			QuestionID:   "bdsm_comments",
			QuestionType: types.QUESTION_TYPE_TEXT,
			Title: types.LocalisedText{
				"he": "הערות חופשיות בנושא BDSM",
				"en": "Anything else you'd like to share?",
			},
			Required:    false,
			SaveTo:      types.SAVE_TO_USERS,
			Order:       24,
			Placeholder: types.LocalisedText{"he": skipHintHe, "en": skipHintEn},
		},
		{
			QuestionID:   "food_restrictions",
			QuestionType: types.QUESTION_TYPE_MULTI_SELECT,
			Title: types.LocalisedText{
				"he": "האם יש מגבלות אוכל?",
				"en": "Are there any food restrictions?",
			},
			ExtraText: types.LocalisedText{
				"he": "*אוכל ושאר ירקות*",
				"en": "*Food, truffles, and trifles*",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_USERS,
			Order:    25,
			Options: []types.QuestionOption{
				{Value: "no", Text: types.LocalisedText{"he": "לא", "en": "No"}},
				{Value: "vegetarian", Text: types.LocalisedText{"he": "צמחוני", "en": "Vegetarian"}},
				{Value: "vegan", Text: types.LocalisedText{"he": "טבעוני", "en": "Vegan"}},
				{Value: "kosher", Text: types.LocalisedText{"he": "כשרות", "en": "Kosher"}},
				{Value: "allergies", Text: types.LocalisedText{"he": "אלרגיות", "en": "Allergies"}},
				{Value: "gluten_free", Text: types.LocalisedText{"he": "ללא גלוט", "en": "Gluten free"}},
				{Value: "lactose_free", Text: types.LocalisedText{"he": "ללא לקטוס", "en": "Lactose free"}},
				{Value: "other", Text: types.LocalisedText{"he": "אחר", "en": "Other"}},
			},
			ValidationRules: []types.ValidationRule{required("אנא בחר לפחות אופציה אחת", "Please select at least one option")},
		},
		{
			QuestionID:   "food_comments",
			QuestionType: types.QUESTION_TYPE_TEXT,
			Title: types.LocalisedText{
				"he": "אנא פרטו בנושא הגבלות אוכל",
				"en": "Please elaborate on the food restrictions",
			},
			Required:        false,
			SaveTo:          types.SAVE_TO_USERS,
			Order:           26,
			Placeholder:     types.LocalisedText{"he": skipHintHe, "en": skipHintEn},
			ValidationRules: []types.ValidationRule{maxLength200},
		},
		{
			QuestionID:   "alcohol_in_event",
			QuestionType: types.QUESTION_TYPE_SELECT,
			Title: types.LocalisedText{
				"he": "האם תרצה אלכוהול באירוע (בתוספת תשלום)?",
				"en": "Would you like alcohol at the event (with additional payment)?",
			},
			Required:        true,
			SaveTo:          types.SAVE_TO_REGISTRATIONS,
			Order:           27,
			Options:         yesMaybeNo,
			ValidationRules: []types.ValidationRule{requiredOption},
		},
		{
			QuestionID:   "alcohol_preference",
			QuestionType: types.QUESTION_TYPE_TEXT,
			Title: types.LocalisedText{
				"he": "מה האלכוהול שלך?",
				"en": "What is your alcohol preference?",
			},
			Required:    false,
			SaveTo:      types.SAVE_TO_USERS,
			Order:       28,
			Placeholder: types.LocalisedText{"he": skipHintHe, "en": skipHintEn},
			SkipCondition: &types.SkipCondition{
				Operator: types.CONDITION_OPERATOR_OR,
				Conditions: []types.SkipConditionItem{
					{Type: types.CONDITION_ITEM_FIELD_VALUE, Field: "alcohol_in_event", Value: "no", Operator: types.COMPARE_EQUALS},
				},
			},
		},
		{
			QuestionID:   "agree_participant_commitment",
			QuestionType: types.QUESTION_TYPE_SELECT,
			Title: types.LocalisedText{
				"he": "האם זה מובן?",
				"en": "Do you agree to the terms?",
			},
			ExtraText: types.LocalisedText{
				"he": "*חוקים*\n כמעט סוף. בואו נעבור על חוקי הליין, המקום וכו'.",
				"en": "*Rules*\n Almost done. Let's go through the line rules, the place, and so on.",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_REGISTRATIONS,
			Order:    29,
			Options: []types.QuestionOption{
				{Value: "yes", Text: types.LocalisedText{"he": "הבנתי את הכתוב ומה שמצופה ממני כמשתתפ/ת. אני מסכימ/ה ומאשר/ת", "en": "Yes"}},
				{Value: "no", Text: types.LocalisedText{"he": "לא הבנתי או אני לא בטוח/ה שהבנתי מה מצופה ממני כמשתתפ/ת באירוע", "en": "No"}},
				{Value: "else", Text: types.LocalisedText{"he": "אחר - נחזור אליך כדי לברר", "en": "No"}},
			},
			ValidationRules: []types.ValidationRule{requiredOption},
		},
		{
			QuestionID:   "enthusiastic_verbal_consent_commitment",
			QuestionType: types.QUESTION_TYPE_BOOLEAN,
			Title: types.LocalisedText{
				"he": "האם זה ברור שיש לקבל הסכמה מפורשת לכל מגע ואינטראקציה עם אדם אחר?",
				"en": "Do you agree to the terms?",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_REGISTRATIONS,
			Order:    30,
			Options: []types.QuestionOption{
				{Value: "yes", Text: types.LocalisedText{"he": "ברור בהחלט", "en": "Yes"}},
				{Value: "no", Text: types.LocalisedText{"he": "לא ברור לי, אשמח להבהרה", "en": "No"}},
			},
			ValidationRules: []types.ValidationRule{requiredOption},
		},
		{
			QuestionID:   "agree_line_rules",
			QuestionType: types.QUESTION_TYPE_TEXT,
			Title: types.LocalisedText{
				"he": "האם קראת את חוקי הליין ואתה מאשר אותם?",
				"en": "Do you agree to the line rules?",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_REGISTRATIONS,
			Order:    31,
			ValidationRules: []types.ValidationRule{
				required("אנא קרא את חוקי הליין היטב ואשר אותם", "Please read the line rules carefully and agree to them"),
				{
					RuleType: types.RULE_TYPE_REGEX,
					Params:   map[string]interface{}{"regex": "זנגביל|ginger"},
					ErrorMessage: types.LocalisedText{
						"he": "אנא קרא את חוקי הליין היטב ואשר אותם",
						"en": "Please read the line rules carefully and agree to them",
					},
				},
			},
		},
		{
			QuestionID:   "agree_place_rules",
			QuestionType: types.QUESTION_TYPE_SELECT,
			Title: types.LocalisedText{
				"he": "האם קראת את חוקי המקום ואתה מאשר אותם?",
				"en": "Do you agree to the place rules?",
			},
			Required:        false,
			SaveTo:          types.SAVE_TO_REGISTRATIONS,
			Order:           32,
			Options:         yesNo,
			ValidationRules: []types.ValidationRule{requiredOption},
		},
		{
			QuestionID:   "wants_to_helper",
			QuestionType: types.QUESTION_TYPE_BOOLEAN,
			Title: types.LocalisedText{
				"he": "האם אתה/את מעוניין/ת לעזור באירוע?",
				"en": "Do you want to help at the event?",
			},
			ExtraText: types.LocalisedText{
				"he": "*הלפרים ו DM-ים*\nזהו! סיימנו, אך לפני שאני משחרר אתכם, אשמח לדעת האם תרצו לעזור באירוע (בתמורה להנחה בעלות האירוע)",
				"en": "*Helpers and DMs*\nThat's it! We're done, but before I let you go, I'd like to know if you'd like to help at the event (in exchange for a discount on the event's cost)",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_REGISTRATIONS,
			Order:    33,
			Placeholder: types.LocalisedText{
				"he": "על מנת להרים כזאת הפקה אנו זקוקות לעזרה. אם תוכל ותרצי נשמח שתבואו מוקדם / תשארו לעזור לנו לנקות אחרי בתמורה להנחה בעלות האירוע. הלפרים מקבלים 25% הנחה. ניתן לצבור ע\"י בחירת שניהם. ",
				"en": skipHintEn,
			},
			Options:         yesMaybeNo,
			ValidationRules: []types.ValidationRule{requiredOption},
		},
		{
			QuestionID:   "helper_shifts",
			QuestionType: types.QUESTION_TYPE_SELECT,
			Title: types.LocalisedText{
				"he": "מתי אתה/את מעוניין/ת לעזור באירוע?",
				"en": "When do you want to help at the event?",
			},
			Required:        true,
			SaveTo:          types.SAVE_TO_REGISTRATIONS,
			Order:           34,
			Options:         yesNo,
			ValidationRules: []types.ValidationRule{requiredOption},
			SkipCondition: &types.SkipCondition{
				Operator: types.CONDITION_OPERATOR_OR,
				Conditions: []types.SkipConditionItem{
					{Type: types.CONDITION_ITEM_FIELD_VALUE, Field: "wants_to_helper", Value: "no", Operator: types.COMPARE_EQUALS},
				},
			},
		},
		{
			QuestionID:   "is_surtified_DM",
			QuestionType: types.QUESTION_TYPE_BOOLEAN,
			Title: types.LocalisedText{
				"he": "האם את/ה DM מוסמך?",
				"en": "Are you certified to be a DM?",
			},
			Required:        true,
			SaveTo:          types.SAVE_TO_USERS,
			Order:           35,
			Options:         yesNo,
			ValidationRules: []types.ValidationRule{requiredOption},
		},
		{
			QuestionID:   "wants_to_DM",
			QuestionType: types.QUESTION_TYPE_BOOLEAN,
			Title: types.LocalisedText{
				"he": "לטובת שמירה מיטבית על המרחב ועל מנת שכולנו נוכל גם להנות, נהיה צוות של דיאמים. DM מקבל כניסה זוגית חינם",
				"en": "We will have a team of DMs to preserve the safety of the space and everyone in it so that we can all enjoy ourselves. DM gets a free pair entry",
			},
			Required:        true,
			SaveTo:          types.SAVE_TO_REGISTRATIONS,
			Order:           36,
			Options:         yesMaybeNo,
			ValidationRules: []types.ValidationRule{requiredOption},
			SkipCondition: &types.SkipCondition{
				Operator: types.CONDITION_OPERATOR_OR,
				Conditions: []types.SkipConditionItem{
					{Type: types.CONDITION_ITEM_FIELD_VALUE, Field: "is_surtified_DM", Value: "no", Operator: types.COMPARE_EQUALS},
				},
			},
		},
		{
			QuestionID:   "DM_shifts",
			QuestionType: types.QUESTION_TYPE_MULTI_SELECT,
			Title: types.LocalisedText{
				"he": "איזה משמרות יכולות להתאים לך?",
				"en": "When do you want to be a DM?",
			},
			Required: true,
			SaveTo:   types.SAVE_TO_REGISTRATIONS,
			Order:    37,
			Placeholder: types.LocalisedText{
				"he": "אשתדל לאפשר לכל אחד את הבחירות שלו.",
				"en": skipHintEn,
			},
			DynamicOptions:  true,
			ValidationRules: []types.ValidationRule{requiredOption},
		},
	}
}

// CompletionText is sent when the form finishes.
func CompletionText() types.LocalisedText {
	return types.LocalisedText{
		"he": "תודה שנרשמת לאירוע! ניתן להתחיל מחדש בכל עת עם הפקודה /start",
		"en": "Thank you for filling out the form! You can start over at any time with the /start command",
	}
}
