package bothandlers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/events"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/registrations"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/texts"
)

func (h *Handler) isAdmin(userID int64) bool {
	for _, id := range h.adminUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (h *Handler) handleAdminCommand(ctx context.Context, chatID int64, userID int64, command string, args string, language string) {
	if !h.isAdmin(userID) {
		h.transport.SendText(ctx, chatID, texts.Get(texts.MSG_ADMIN_ONLY, language))
		return
	}

	switch command {
	case "/admin_approve":
		h.setRegistrationStatus(ctx, chatID, language, strings.TrimSpace(args), registrations.STATUS_APPROVED, "")
	case "/admin_reject":
		submissionID, reason, _ := strings.Cut(strings.TrimSpace(args), " ")
		h.setRegistrationStatus(ctx, chatID, language, submissionID, registrations.STATUS_REJECTED, reason)
	case "/admin_status":
		h.sendRegistrationDetails(ctx, chatID, language, strings.TrimSpace(args))
	case "/admin_dashboard":
		h.sendDashboard(ctx, chatID, language)
	case "/admin_digest":
		h.sendDigest(ctx, chatID, language)
	}
}

func (h *Handler) setRegistrationStatus(ctx context.Context, chatID int64, language string, submissionID string, status string, reason string) {
	if submissionID == "" {
		h.transport.SendText(ctx, chatID, "usage: /admin_approve <submission_id> | /admin_reject <submission_id> [reason]")
		return
	}
	if err := h.registrations.SetStatus(ctx, submissionID, status, reason); err != nil {
		if types.IsNotFound(err) {
			h.transport.SendText(ctx, chatID, fmt.Sprintf("registration %s not found", submissionID))
			return
		}
		h.reportError(ctx, chatID, language, "set status", err)
		return
	}
	h.transport.SendText(ctx, chatID, fmt.Sprintf("registration %s -> %s", submissionID, status))

	h.notifyRegistrant(ctx, submissionID, status)
}

// notifyRegistrant tells the user their registration was decided, in their
// own language. Best effort; the admin already got the confirmation.
func (h *Handler) notifyRegistrant(ctx context.Context, submissionID string, status string) {
	registration, err := h.registrations.Get(ctx, submissionID)
	if err != nil || registration.TelegramUserID == 0 {
		return
	}

	var key string
	switch status {
	case registrations.STATUS_APPROVED:
		key = texts.MSG_REG_APPROVED
	case registrations.STATUS_REJECTED:
		key = texts.MSG_REG_REJECTED
	default:
		return
	}
	h.transport.SendText(ctx, registration.TelegramUserID,
		texts.Get(key, h.userLanguage(ctx, registration.TelegramUserID)))
}

func (h *Handler) sendRegistrationDetails(ctx context.Context, chatID int64, language string, submissionID string) {
	if submissionID == "" {
		h.transport.SendText(ctx, chatID, "usage: /admin_status <submission_id>")
		return
	}
	registration, err := h.registrations.Get(ctx, submissionID)
	if err != nil {
		if types.IsNotFound(err) {
			h.transport.SendText(ctx, chatID, fmt.Sprintf("registration %s not found", submissionID))
			return
		}
		h.reportError(ctx, chatID, language, "registration details", err)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "registration %s\n", registration.SubmissionID)
	fmt.Fprintf(&b, "status: %s\n", registration.Status)
	if registration.StatusReason != "" {
		fmt.Fprintf(&b, "reason: %s\n", registration.StatusReason)
	}
	fmt.Fprintf(&b, "event: %s\n", registration.EventID)
	fmt.Fprintf(&b, "user: %d\n", registration.TelegramUserID)
	if registration.PartnerName != "" {
		fmt.Fprintf(&b, "partner: %s\n", registration.PartnerName)
	}
	fmt.Fprintf(&b, "registered: %s", registration.RegistrationDate)
	h.transport.SendText(ctx, chatID, b.String())
}

func (h *Handler) sendDashboard(ctx context.Context, chatID int64, language string) {
	all, err := h.registrations.ListByStatus(ctx, "")
	if err != nil {
		h.reportError(ctx, chatID, language, "dashboard", err)
		return
	}
	states, err := h.engine.ListActiveForms(ctx)
	if err != nil {
		h.reportError(ctx, chatID, language, "dashboard", err)
		return
	}
	h.transport.SendText(ctx, chatID, dashboardText(all, states))
}

func (h *Handler) sendDigest(ctx context.Context, chatID int64, language string) {
	all, err := h.registrations.ListByStatus(ctx, "")
	if err != nil {
		h.reportError(ctx, chatID, language, "digest", err)
		return
	}
	upcoming, err := h.events.UpcomingEvents(ctx)
	if err != nil {
		h.reportError(ctx, chatID, language, "digest", err)
		return
	}
	h.transport.SendText(ctx, chatID, digestText(all, upcoming))
}

// dashboardText summarizes the registration pipeline and the open forms.
func dashboardText(all []*registrations.Registration, states []*types.FormState) string {
	byStatus := map[string]int{}
	for _, registration := range all {
		byStatus[registration.Status]++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 %d registrations\n", len(all))
	statuses := make([]string, 0, len(byStatus))
	for status := range byStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		fmt.Fprintf(&b, "- %s: %d\n", status, byStatus[status])
	}

	if len(states) == 0 {
		b.WriteString("no open forms")
		return b.String()
	}
	fmt.Fprintf(&b, "%d open forms:\n", len(states))
	for _, state := range states {
		fmt.Fprintf(&b, "- user %d at %s (%d answers, updated %s)\n",
			state.UserID, state.CurrentQuestionID, len(state.Answers),
			state.UpdatedAt.Format("02/01 15:04"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// digestText is the plain-text counterpart of the weekly digest mail.
func digestText(all []*registrations.Registration, upcoming []*events.Event) string {
	byStatus := map[string]int{}
	for _, registration := range all {
		byStatus[registration.Status]++
	}

	var b strings.Builder
	b.WriteString("🌶️ Wild Ginger digest\n")
	fmt.Fprintf(&b, "%d registrations\n", len(all))
	for _, status := range []string{
		registrations.STATUS_FORM_INCOMPLETE,
		registrations.STATUS_WAITING_FOR_PARTNER,
		registrations.STATUS_WAITING_FOR_REVIEW,
		registrations.STATUS_APPROVED,
		registrations.STATUS_PAID,
		registrations.STATUS_GROUP_OPENED,
		registrations.STATUS_REJECTED,
		registrations.STATUS_CANCELLED,
	} {
		if count := byStatus[status]; count > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", status, count)
		}
	}

	if len(upcoming) == 0 {
		b.WriteString("no upcoming events")
		return b.String()
	}
	b.WriteString("upcoming events:\n")
	for _, event := range upcoming {
		fmt.Fprintf(&b, "- %s (%s, %s)\n", event.Name, event.EventType, event.StartDate.Format("02/01/2006"))
	}
	return strings.TrimRight(b.String(), "\n")
}
