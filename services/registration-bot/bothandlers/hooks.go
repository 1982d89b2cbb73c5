package bothandlers

import (
	"context"
	"log/slog"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/catalog"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/engine"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/registrations"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/users"
)

// FlowHooks routes the engine's side effects into the sheet-backed records:
// event selection opens a registration row, the first rules-keyword miss
// clears the first-try flag, and completion distributes answers into the
// Users and Registrations tabs.
type FlowHooks struct {
	catalog       *catalog.Catalog
	users         *users.Service
	registrations *registrations.Service
}

func NewFlowHooks(questionCatalog *catalog.Catalog, userService *users.Service, registrationService *registrations.Service) *FlowHooks {
	return &FlowHooks{
		catalog:       questionCatalog,
		users:         userService,
		registrations: registrationService,
	}
}

func (h *FlowHooks) OnEventSelected(ctx context.Context, state *types.FormState, eventID string) (string, error) {
	return h.registrations.CreateForEvent(ctx, eventID, state.UserID)
}

func (h *FlowHooks) OnRegexFirstFailure(ctx context.Context, state *types.FormState) {
	if state.RegistrationID == "" {
		return
	}
	if err := h.registrations.ClearGingerFirstTry(ctx, state.RegistrationID); err != nil {
		slog.Error("failed to clear first-try flag",
			slog.String("registrationID", state.RegistrationID),
			slog.String("error", err.Error()))
	}
}

func (h *FlowHooks) OnCompleted(ctx context.Context, state *types.FormState) error {
	userFields := map[string]string{}
	registrationFields := map[string]string{}

	for _, question := range h.catalog.Ordered() {
		answer, ok := state.Answers.String(question.QuestionID)
		if !ok {
			continue
		}
		switch question.SaveTo {
		case types.SAVE_TO_USERS:
			userFields[question.QuestionID] = answer
		case types.SAVE_TO_REGISTRATIONS:
			registrationFields[question.QuestionID] = answer
		}
	}

	if len(userFields) > 0 {
		userFields[users.COL_LANGUAGE] = state.Language
		if err := h.users.UpsertProfile(ctx, state.UserID, userFields); err != nil {
			return err
		}
	}

	if state.RegistrationID == "" {
		return nil
	}
	if len(registrationFields) > 0 {
		if err := h.registrations.SetAnswerFields(ctx, state.RegistrationID, registrationFields); err != nil {
			return err
		}
	}

	return h.registrations.SetStatus(ctx, state.RegistrationID, h.completionStatus(state), "")
}

// completionStatus derives the registration's post-form status from the
// answers: declining up front ends the flow, couples wait for their partner,
// everyone else goes to review.
func (h *FlowHooks) completionStatus(state *types.FormState) string {
	if answer, ok := state.Answers.String(engine.QUESTION_ID_WOULD_REGISTER); ok && answer == engine.ANSWER_NO {
		return registrations.STATUS_UNINTERESTED
	}
	if answer, ok := state.Answers.String("partner_or_single"); ok && answer == "partner" {
		return registrations.STATUS_WAITING_FOR_PARTNER
	}
	return registrations.STATUS_WAITING_FOR_REVIEW
}
