package texts

import (
	"fmt"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

// Bot message keys.
const (
	MSG_WELCOME              = "welcome"
	MSG_WELCOME_BACK         = "welcome_back"
	MSG_NO_ACTIVE_FORM       = "no_active_form"
	MSG_NO_UPCOMING_EVENTS   = "no_upcoming_events"
	MSG_FORM_CANCELLED       = "form_cancelled"
	MSG_CANCEL_REASON_PROMPT = "cancel_reason_prompt"
	MSG_CANCEL_LAST_MINUTE   = "cancel_last_minute"
	MSG_REG_APPROVED         = "registration_approved"
	MSG_REG_REJECTED         = "registration_rejected"
	MSG_FORM_COMPLETED       = "form_completed"
	MSG_PROGRESS             = "progress"
	MSG_STATUS               = "status"
	MSG_STATUS_NO_REG        = "status_no_registration"
	MSG_LANGUAGE_CHANGED     = "language_changed"
	MSG_SKIP_HINT            = "skip_hint"
	MSG_UNKNOWN_COMMAND      = "unknown_command"
	MSG_HELP                 = "help"
	MSG_ADMIN_ONLY           = "admin_only"
	MSG_PARTNER_REMINDER     = "partner_reminder"
	MSG_PAYMENT_REMINDER     = "payment_reminder"
	MSG_SOMETHING_WENT_WRONG = "something_went_wrong"
)

var messages = map[string]types.LocalisedText{
	MSG_WELCOME: {
		types.LANGUAGE_HE: "ברוכים הבאים ל-Wild Ginger! 🌶️ כדי להירשם לאירוע, שלחו /register.",
		types.LANGUAGE_EN: "Welcome to Wild Ginger! 🌶️ To register for an event, send /register.",
	},
	MSG_WELCOME_BACK: {
		types.LANGUAGE_HE: "טוב לראות אתכם שוב! יש לכם טופס פתוח, ממשיכים מאיפה שעצרנו.",
		types.LANGUAGE_EN: "Good to see you again! You have an open form, continuing where we left off.",
	},
	MSG_NO_ACTIVE_FORM: {
		types.LANGUAGE_HE: "אין טופס פתוח. שלחו /register כדי להתחיל הרשמה חדשה.",
		types.LANGUAGE_EN: "No open form. Send /register to start a new registration.",
	},
	MSG_NO_UPCOMING_EVENTS: {
		types.LANGUAGE_HE: "אין כרגע אירועים פתוחים להרשמה. ננסה שוב בקרוב!",
		types.LANGUAGE_EN: "There are no events open for registration right now. Check back soon!",
	},
	MSG_FORM_CANCELLED: {
		types.LANGUAGE_HE: "הטופס בוטל. אפשר להתחיל מחדש עם /register בכל רגע.",
		types.LANGUAGE_EN: "The form was cancelled. You can start over with /register anytime.",
	},
	MSG_CANCEL_REASON_PROMPT: {
		types.LANGUAGE_HE: "חבל שאתם מבטלים 💔 נשמח לדעת למה — כתבו סיבה קצרה ונבטל את ההרשמה.",
		types.LANGUAGE_EN: "Sorry to see you cancel 💔 We'd love to know why — send a short reason and we'll cancel the registration.",
	},
	MSG_CANCEL_LAST_MINUTE: {
		types.LANGUAGE_HE: "שימו לב: האירוע בעוד פחות משבוע, ביטול עכשיו נחשב ביטול של הרגע האחרון. כתבו סיבה קצרה ונבטל את ההרשמה.",
		types.LANGUAGE_EN: "Heads up: the event is less than a week away, so this counts as a last-minute cancellation. Send a short reason and we'll cancel the registration.",
	},
	MSG_REG_APPROVED: {
		types.LANGUAGE_HE: "ההרשמה שלך אושרה! 🎉 נשלח פרטי תשלום בקרוב.",
		types.LANGUAGE_EN: "Your registration was approved! 🎉 Payment details are on the way.",
	},
	MSG_REG_REJECTED: {
		types.LANGUAGE_HE: "מצטערים, ההרשמה שלך לא אושרה הפעם.",
		types.LANGUAGE_EN: "We're sorry, your registration was not approved this time.",
	},
	MSG_FORM_COMPLETED: {
		types.LANGUAGE_HE: "הטופס הושלם! 🎉 נחזור אליכם אחרי בדיקת הפרטים.",
		types.LANGUAGE_EN: "The form is complete! 🎉 We'll get back to you after reviewing the details.",
	},
	MSG_PROGRESS: {
		types.LANGUAGE_HE: "ענית על %d מתוך %d שאלות (%d%%).",
		types.LANGUAGE_EN: "You answered %d of %d questions (%d%%).",
	},
	MSG_STATUS: {
		types.LANGUAGE_HE: "סטטוס ההרשמה שלך: %s",
		types.LANGUAGE_EN: "Your registration status: %s",
	},
	MSG_STATUS_NO_REG: {
		types.LANGUAGE_HE: "לא נמצאה הרשמה פעילה. שלחו /register כדי להירשם לאירוע.",
		types.LANGUAGE_EN: "No active registration found. Send /register to sign up for an event.",
	},
	MSG_LANGUAGE_CHANGED: {
		types.LANGUAGE_HE: "השפה הוחלפה לעברית.",
		types.LANGUAGE_EN: "Language switched to English.",
	},
	MSG_SKIP_HINT: {
		types.LANGUAGE_HE: "(אפשר לכתוב \"המשך\" כדי לדלג על שאלה לא חובה)",
		types.LANGUAGE_EN: "(you can type \"continue\" to skip an optional question)",
	},
	MSG_UNKNOWN_COMMAND: {
		types.LANGUAGE_HE: "לא הכרתי את הפקודה הזו. שלחו /help לרשימת הפקודות.",
		types.LANGUAGE_EN: "I didn't recognize that command. Send /help for the list of commands.",
	},
	MSG_HELP: {
		types.LANGUAGE_HE: "פקודות:\n/register — הרשמה לאירוע\n/continue — המשך טופס פתוח\n/status — סטטוס ההרשמה\n/progress — התקדמות בטופס\n/cancel — ביטול הטופס\n/language — החלפת שפה",
		types.LANGUAGE_EN: "Commands:\n/register — register for an event\n/continue — resume an open form\n/status — registration status\n/progress — form progress\n/cancel — cancel the form\n/language — switch language",
	},
	MSG_ADMIN_ONLY: {
		types.LANGUAGE_HE: "הפקודה הזו זמינה למנהלים בלבד.",
		types.LANGUAGE_EN: "This command is available to admins only.",
	},
	MSG_PARTNER_REMINDER: {
		types.LANGUAGE_HE: "תזכורת: ההרשמה שלך ל-%s ממתינה לפרטנר/ית. כדאי לוודא שגם הם נרשמו 💜",
		types.LANGUAGE_EN: "Reminder: your registration for %s is waiting for your partner. Make sure they registered too 💜",
	},
	MSG_PAYMENT_REMINDER: {
		types.LANGUAGE_HE: "תזכורת: ההרשמה שלך ל-%s אושרה וממתינה לתשלום.",
		types.LANGUAGE_EN: "Reminder: your registration for %s was approved and is waiting for payment.",
	},
	MSG_SOMETHING_WENT_WRONG: {
		types.LANGUAGE_HE: "משהו השתבש, נסו שוב בעוד רגע.",
		types.LANGUAGE_EN: "Something went wrong, please try again in a moment.",
	},
}

// Get returns the bot message for key in the given language, with the usual
// English-then-Hebrew fallback. Unknown keys return the key itself so a
// missing entry is visible instead of silent.
func Get(key string, language string) string {
	text, ok := messages[key]
	if !ok {
		return key
	}
	return text.Get(language)
}

// Getf interpolates printf arguments into the localized message.
func Getf(key string, language string, args ...interface{}) string {
	return fmt.Sprintf(Get(key, language), args...)
}
