package bothandlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/events"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/catalog"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/engine"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/registrations"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/telegram"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/texts"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/users"
)

// Continue keywords let users skip optional questions.
var continueKeywords = map[string]bool{
	"continue": true,
	"המשך":     true,
}

// Handler processes one Telegram update at a time per user (the router
// guarantees the sequencing).
type Handler struct {
	engine        *engine.Engine
	transport     *telegram.Transport
	catalog       *catalog.Catalog
	events        *events.Service
	users         *users.Service
	registrations *registrations.Service
	adminUserIDs  []int64

	// users who were asked for a cancellation reason and owe us an answer
	mu            sync.Mutex
	pendingCancel map[int64]bool
}

func NewHandler(
	formEngine *engine.Engine,
	transport *telegram.Transport,
	questionCatalog *catalog.Catalog,
	eventService *events.Service,
	userService *users.Service,
	registrationService *registrations.Service,
	adminUserIDs []int64,
) *Handler {
	return &Handler{
		engine:        formEngine,
		transport:     transport,
		catalog:       questionCatalog,
		events:        eventService,
		users:         userService,
		registrations: registrationService,
		adminUserIDs:  adminUserIDs,
		pendingCancel: map[int64]bool{},
	}
}

// HandleUpdate is the router's per-user entry point.
func (h *Handler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	if strings.HasPrefix(text, "/") {
		h.handleCommand(ctx, chatID, userID, text)
		return
	}
	h.handleAnswer(ctx, chatID, userID, text)
}

func (h *Handler) handleCommand(ctx context.Context, chatID int64, userID int64, text string) {
	command, args, _ := strings.Cut(text, " ")
	command = strings.ToLower(command)
	// strip the bot mention in group chats (/status@WildGingerBot)
	if at := strings.Index(command, "@"); at > 0 {
		command = command[:at]
	}
	language := h.userLanguage(ctx, userID)

	// any command abandons a pending cancellation-reason prompt
	h.popPendingCancel(userID)

	switch command {
	case "/start":
		h.transport.SendText(ctx, chatID, texts.Get(texts.MSG_WELCOME, language))
	case "/register":
		h.startForm(ctx, chatID, userID, language)
	case "/continue":
		h.resumeForm(ctx, chatID, userID, language)
	case "/status":
		h.sendStatus(ctx, chatID, userID, language)
	case "/progress":
		h.sendProgress(ctx, chatID, userID, language)
	case "/cancel":
		h.cancelForm(ctx, chatID, userID, language)
	case "/language":
		h.switchLanguage(ctx, chatID, userID, language)
	case "/help":
		h.transport.SendText(ctx, chatID, texts.Get(texts.MSG_HELP, language))
	case "/admin_dashboard", "/admin_approve", "/admin_reject", "/admin_status", "/admin_digest":
		h.handleAdminCommand(ctx, chatID, userID, command, args, language)
	default:
		h.transport.SendText(ctx, chatID, texts.Get(texts.MSG_UNKNOWN_COMMAND, language))
	}
}

func (h *Handler) startForm(ctx context.Context, chatID int64, userID int64, language string) {
	state, err := h.engine.GetState(ctx, userID)
	if err == nil && state != nil && !state.Completed {
		h.transport.SendText(ctx, chatID, texts.Get(texts.MSG_WELCOME_BACK, state.Language))
	}

	result, err := h.engine.StartForm(ctx, userID, "", language)
	if err != nil {
		h.reportError(ctx, chatID, language, "start form", err)
		return
	}
	h.sendStepResult(ctx, chatID, result)
}

func (h *Handler) resumeForm(ctx context.Context, chatID int64, userID int64, language string) {
	question, stateLanguage, err := h.engine.GetCurrentQuestion(ctx, userID)
	if err != nil {
		if types.IsNotFound(err) {
			h.transport.SendText(ctx, chatID, texts.Get(texts.MSG_NO_ACTIVE_FORM, language))
			return
		}
		h.reportError(ctx, chatID, language, "resume form", err)
		return
	}
	h.sendQuestion(ctx, chatID, question, stateLanguage)
}

func (h *Handler) handleAnswer(ctx context.Context, chatID int64, userID int64, text string) {
	if h.popPendingCancel(userID) {
		h.finishCancel(ctx, chatID, userID, text)
		return
	}

	question, language, err := h.engine.GetCurrentQuestion(ctx, userID)
	if err != nil {
		if types.IsNotFound(err) {
			h.transport.SendText(ctx, chatID, texts.Get(texts.MSG_NO_ACTIVE_FORM, h.userLanguage(ctx, userID)))
			return
		}
		h.reportError(ctx, chatID, h.userLanguage(ctx, userID), "current question", err)
		return
	}

	answer := h.prepareAnswer(ctx, question, language, text)

	result, err := h.engine.SubmitAnswer(ctx, userID, answer)
	if err != nil {
		h.reportError(ctx, chatID, language, "submit answer", err)
		return
	}
	h.sendStepResult(ctx, chatID, result)
}

// prepareAnswer maps keyboard labels back to option values, splits
// multi-select input and turns the continue keyword on optional questions
// into an empty answer.
func (h *Handler) prepareAnswer(ctx context.Context, question *types.QuestionDefinition, language string, text string) interface{} {
	if continueKeywords[strings.ToLower(text)] && !question.Required {
		return ""
	}

	options := question.Options
	if question.DynamicOptions {
		options = h.dynamicOptions(ctx, question)
	}

	if question.QuestionType == types.QUESTION_TYPE_MULTI_SELECT {
		parts := strings.Split(text, ",")
		values := make([]string, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			values = append(values, telegram.OptionValueForLabel(options, language, part))
		}
		return values
	}

	if len(options) > 0 {
		return telegram.OptionValueForLabel(options, language, text)
	}
	return text
}

func (h *Handler) sendStepResult(ctx context.Context, chatID int64, result *engine.StepResult) {
	if result.IsValidationError() {
		h.transport.SendText(ctx, chatID, result.ValidationMessage)
		h.sendQuestion(ctx, chatID, result.Question, result.Language)
		return
	}
	if result.Completed {
		completion := catalog.CompletionText().Get(result.Language)
		if completion == "" {
			completion = texts.Get(texts.MSG_FORM_COMPLETED, result.Language)
		}
		h.transport.SendText(ctx, chatID, completion)
		return
	}
	h.sendQuestion(ctx, chatID, result.Question, result.Language)
}

func (h *Handler) sendQuestion(ctx context.Context, chatID int64, question *types.QuestionDefinition, language string) {
	var dynamicOptions []types.QuestionOption
	if question.DynamicOptions {
		dynamicOptions = h.dynamicOptions(ctx, question)
		if question.QuestionID == engine.QUESTION_ID_EVENT_SELECTION && len(dynamicOptions) == 0 {
			h.transport.SendText(ctx, chatID, texts.Get(texts.MSG_NO_UPCOMING_EVENTS, language))
			return
		}
	}
	h.transport.SendQuestion(ctx, chatID, question, language, dynamicOptions)
}

func (h *Handler) dynamicOptions(ctx context.Context, question *types.QuestionDefinition) []types.QuestionOption {
	if question.QuestionID != engine.QUESTION_ID_EVENT_SELECTION {
		return nil
	}
	upcoming, err := h.events.UpcomingEvents(ctx)
	if err != nil {
		slog.Error("failed to list upcoming events", slog.String("error", err.Error()))
		return nil
	}
	options := make([]types.QuestionOption, 0, len(upcoming))
	for _, event := range upcoming {
		label := event.Name
		if !event.StartDate.IsZero() {
			label = fmt.Sprintf("%s (%s)", event.Name, event.StartDate.Format("02/01"))
		}
		options = append(options, types.QuestionOption{
			Value: event.ID,
			Text:  types.LocalisedText{types.LANGUAGE_HE: label, types.LANGUAGE_EN: label},
		})
	}
	return options
}

func (h *Handler) sendStatus(ctx context.Context, chatID int64, userID int64, language string) {
	registration, err := h.registrations.FindActiveByUser(ctx, userID)
	if err != nil {
		h.reportError(ctx, chatID, language, "registration status", err)
		return
	}
	if registration == nil {
		h.transport.SendText(ctx, chatID, texts.Get(texts.MSG_STATUS_NO_REG, language))
		return
	}
	h.transport.SendText(ctx, chatID, texts.Getf(texts.MSG_STATUS, language, registration.Status))
}

func (h *Handler) sendProgress(ctx context.Context, chatID int64, userID int64, language string) {
	progress, err := h.engine.GetProgress(ctx, userID)
	if err != nil {
		if types.IsNotFound(err) {
			h.transport.SendText(ctx, chatID, texts.Get(texts.MSG_NO_ACTIVE_FORM, language))
			return
		}
		h.reportError(ctx, chatID, language, "progress", err)
		return
	}
	h.transport.SendText(ctx, chatID, texts.Getf(texts.MSG_PROGRESS, language,
		progress.Answered, progress.TotalApplicable, progress.Percent))
}

// cancelForm starts the two-step cancellation: ask for a reason, and warn
// when the event is close enough that the cancellation is last-minute. The
// next plain-text message finishes the cancellation.
func (h *Handler) cancelForm(ctx context.Context, chatID int64, userID int64, language string) {
	registration, err := h.registrations.FindActiveByUser(ctx, userID)
	if err != nil {
		h.reportError(ctx, chatID, language, "cancel form", err)
		return
	}
	state, stateErr := h.engine.GetState(ctx, userID)
	hasForm := stateErr == nil && state != nil && !state.Completed
	if registration == nil && !hasForm {
		h.transport.SendText(ctx, chatID, texts.Get(texts.MSG_NO_ACTIVE_FORM, language))
		return
	}

	prompt := texts.MSG_CANCEL_REASON_PROMPT
	if registration != nil && h.isLastMinuteCancel(ctx, registration.EventID) {
		prompt = texts.MSG_CANCEL_LAST_MINUTE
	}
	h.setPendingCancel(userID)
	h.transport.SendText(ctx, chatID, texts.Get(prompt, language))
}

// finishCancel consumes the reason message, drops the form state and closes
// the registration with the reason on record.
func (h *Handler) finishCancel(ctx context.Context, chatID int64, userID int64, reason string) {
	language := h.userLanguage(ctx, userID)

	if err := h.engine.CancelForm(ctx, userID); err != nil && !types.IsNotFound(err) {
		h.reportError(ctx, chatID, language, "cancel form", err)
		return
	}

	registration, err := h.registrations.FindActiveByUser(ctx, userID)
	if err == nil && registration != nil {
		if err := h.registrations.SetStatus(ctx, registration.SubmissionID, registrations.STATUS_CANCELLED, reason); err != nil {
			h.reportError(ctx, chatID, language, "cancel registration", err)
			return
		}
	}
	h.transport.SendText(ctx, chatID, texts.Get(texts.MSG_FORM_CANCELLED, language))
}

func (h *Handler) isLastMinuteCancel(ctx context.Context, eventID string) bool {
	if eventID == "" {
		return false
	}
	event, err := h.events.GetByID(ctx, eventID)
	if err != nil {
		return false
	}
	return isLastMinute(event.StartDate, time.Now())
}

// lastMinuteWindow is how close to the event a cancellation counts as
// last-minute.
const lastMinuteWindow = 7 * 24 * time.Hour

func isLastMinute(eventStart time.Time, now time.Time) bool {
	if eventStart.IsZero() || eventStart.Before(now) {
		return false
	}
	return eventStart.Sub(now) < lastMinuteWindow
}

func (h *Handler) setPendingCancel(userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pendingCancel[userID] = true
}

// popPendingCancel reports whether the user owed a cancellation reason and
// clears the flag.
func (h *Handler) popPendingCancel(userID int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	pending := h.pendingCancel[userID]
	delete(h.pendingCancel, userID)
	return pending
}

func (h *Handler) switchLanguage(ctx context.Context, chatID int64, userID int64, language string) {
	next := types.LANGUAGE_EN
	if language == types.LANGUAGE_EN {
		next = types.LANGUAGE_HE
	}
	if err := h.users.UpsertProfile(ctx, userID, map[string]string{users.COL_LANGUAGE: next}); err != nil {
		h.reportError(ctx, chatID, language, "switch language", err)
		return
	}
	h.transport.SendText(ctx, chatID, texts.Get(texts.MSG_LANGUAGE_CHANGED, next))
}

// userLanguage resolves the language to talk in when no form is active:
// the active form's language first, then the stored profile, then default.
func (h *Handler) userLanguage(ctx context.Context, userID int64) string {
	if state, err := h.engine.GetState(ctx, userID); err == nil && state != nil {
		return state.Language
	}
	if user, err := h.users.GetByTelegramID(ctx, userID); err == nil && user.Language != "" {
		return user.Language
	}
	return types.DEFAULT_LANGUAGE
}

func (h *Handler) reportError(ctx context.Context, chatID int64, language string, op string, err error) {
	slog.Error("bot operation failed", slog.String("op", op), slog.String("error", err.Error()))
	h.transport.SendText(ctx, chatID, texts.Get(texts.MSG_SOMETHING_WENT_WRONG, language))
}
