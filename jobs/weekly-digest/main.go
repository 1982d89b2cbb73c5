package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/events"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/registrations"
)

// digestStatusOrder fixes the order statuses appear in the digest.
var digestStatusOrder = []string{
	registrations.STATUS_FORM_INCOMPLETE,
	registrations.STATUS_WAITING_FOR_PARTNER,
	registrations.STATUS_WAITING_FOR_REVIEW,
	registrations.STATUS_APPROVED,
	registrations.STATUS_PAID,
	registrations.STATUS_GROUP_OPENED,
	registrations.STATUS_REJECTED,
	registrations.STATUS_CANCELLED,
}

func main() {
	slog.Info("Starting weekly digest job")
	start := time.Now()

	ctx := context.Background()

	all, err := registrationService.ListByStatus(ctx, "")
	if err != nil {
		slog.Error("Failed to list registrations", slog.String("error", err.Error()))
		panic(err)
	}
	upcoming, err := eventService.UpcomingEvents(ctx)
	if err != nil {
		slog.Error("Failed to list upcoming events", slog.String("error", err.Error()))
		panic(err)
	}

	subject := fmt.Sprintf("Wild Ginger weekly digest - %s", time.Now().Format("02/01/2006"))
	if err := smtpClients.SendMail(conf.DigestConfig.Recipients, subject, buildDigestHTML(all, upcoming), nil); err != nil {
		slog.Error("Failed to send digest mail", slog.String("error", err.Error()))
		panic(err)
	}

	sendTelegramDigest(ctx, all, upcoming)

	slog.Info("Weekly digest job completed", slog.String("duration", time.Since(start).String()))
}

// sendTelegramDigest posts the plain-text digest to the admin chat. Mail
// already went out, so a Telegram failure only logs.
func sendTelegramDigest(ctx context.Context, all []*registrations.Registration, upcoming []*events.Event) {
	if conf.Telegram.BotToken == "" || conf.Telegram.AdminChatID == 0 {
		return
	}

	b, err := bot.New(conf.Telegram.BotToken)
	if err != nil {
		slog.Error("Error creating bot", slog.String("error", err.Error()))
		return
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: conf.Telegram.AdminChatID,
		Text:   buildDigestText(all, upcoming),
	})
	if err != nil {
		slog.Error("Failed to send digest to admin chat", slog.String("error", err.Error()))
	}
}

func countByStatus(all []*registrations.Registration) map[string]int {
	byStatus := map[string]int{}
	for _, registration := range all {
		byStatus[registration.Status]++
	}
	return byStatus
}

func buildDigestHTML(all []*registrations.Registration, upcoming []*events.Event) string {
	byStatus := countByStatus(all)

	var b strings.Builder
	b.WriteString("<h2>Wild Ginger weekly digest</h2>")

	b.WriteString("<h3>Registrations</h3><ul>")
	for _, status := range digestStatusOrder {
		if count := byStatus[status]; count > 0 {
			fmt.Fprintf(&b, "<li>%s: %d</li>", status, count)
		}
	}
	fmt.Fprintf(&b, "</ul><p>%d registrations in total.</p>", len(all))

	b.WriteString("<h3>Upcoming events</h3>")
	if len(upcoming) == 0 {
		b.WriteString("<p>No upcoming events.</p>")
	} else {
		b.WriteString("<ul>")
		for _, event := range upcoming {
			fmt.Fprintf(&b, "<li>%s (%s, %s)</li>", event.Name, event.EventType, event.StartDate.Format("02/01/2006"))
		}
		b.WriteString("</ul>")
	}

	return b.String()
}

func buildDigestText(all []*registrations.Registration, upcoming []*events.Event) string {
	byStatus := countByStatus(all)

	var b strings.Builder
	b.WriteString("🌶️ Wild Ginger weekly digest\n")
	fmt.Fprintf(&b, "%d registrations\n", len(all))
	for _, status := range digestStatusOrder {
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
