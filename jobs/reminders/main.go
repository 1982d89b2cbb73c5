package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/registrations"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/texts"
)

func main() {
	slog.Info("Starting reminders job")
	start := time.Now()

	ctx := context.Background()

	b, err := bot.New(conf.Telegram.BotToken)
	if err != nil {
		slog.Error("Error creating bot", slog.String("error", err.Error()))
		panic(err)
	}

	partnerSent := sendPartnerReminders(ctx, b)
	paymentSent := sendPaymentReminders(ctx, b)

	slog.Info("Reminders job completed",
		slog.Int("partnerReminders", partnerSent),
		slog.Int("paymentReminders", paymentSent),
		slog.String("duration", time.Since(start).String()))
}

// sendPartnerReminders nudges registrations that have waited for the
// partner's own registration past the configured threshold, once per
// registration.
func sendPartnerReminders(ctx context.Context, b *bot.Bot) int {
	waiting, err := registrationService.ListByStatus(ctx, registrations.STATUS_WAITING_FOR_PARTNER)
	if err != nil {
		slog.Error("Failed to list waiting registrations", slog.String("error", err.Error()))
		return 0
	}

	now := time.Now()
	sent := 0
	for _, registration := range waiting {
		if registration.PartnerAlertSent || registration.TelegramUserID == 0 {
			continue
		}
		if !registrations.DueForReminder(registration.RegistrationDate, conf.ReminderConfig.partnerPendingForDur, now) {
			continue
		}

		eventName := eventNameFor(ctx, registration.EventID)
		language := languageFor(ctx, registration.TelegramUserID)

		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: registration.TelegramUserID,
			Text:   texts.Getf(texts.MSG_PARTNER_REMINDER, language, eventName),
		})
		if err != nil {
			slog.Error("Failed to send partner reminder",
				slog.String("submissionID", registration.SubmissionID),
				slog.String("error", err.Error()))
			continue
		}

		if err := registrationService.SetPartnerAlert(ctx, registration.SubmissionID); err != nil {
			slog.Error("Failed to mark partner alert",
				slog.String("submissionID", registration.SubmissionID),
				slog.String("error", err.Error()))
			continue
		}
		sent++
	}
	return sent
}

// sendPaymentReminders nudges registrations approved for longer than the
// configured threshold that have not paid yet.
func sendPaymentReminders(ctx context.Context, b *bot.Bot) int {
	rows, err := registrationService.ReminderRows(ctx, registrations.STATUS_APPROVED)
	if err != nil {
		slog.Error("Failed to list approved registrations", slog.String("error", err.Error()))
		return 0
	}

	now := time.Now()
	sent := 0
	for _, row := range rows {
		registration := row.Registration
		if row.PaymentReminderSent || registration.TelegramUserID == 0 {
			continue
		}
		// approval bumps updated_at, so the age is measured from approval
		if !registrations.DueForReminder(registration.UpdatedAt, conf.ReminderConfig.paymentPendingForDur, now) {
			continue
		}

		eventName := eventNameFor(ctx, registration.EventID)
		language := languageFor(ctx, registration.TelegramUserID)

		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: registration.TelegramUserID,
			Text:   texts.Getf(texts.MSG_PAYMENT_REMINDER, language, eventName),
		})
		if err != nil {
			slog.Error("Failed to send payment reminder",
				slog.String("submissionID", registration.SubmissionID),
				slog.String("error", err.Error()))
			continue
		}

		if err := registrationService.SetPaymentReminder(ctx, registration.SubmissionID); err != nil {
			slog.Error("Failed to mark payment reminder",
				slog.String("submissionID", registration.SubmissionID),
				slog.String("error", err.Error()))
			continue
		}
		sent++
	}
	return sent
}

func eventNameFor(ctx context.Context, eventID string) string {
	event, err := eventService.GetByID(ctx, eventID)
	if err != nil {
		return eventID
	}
	return event.Name
}

func languageFor(ctx context.Context, userID int64) string {
	user, err := userService.GetByTelegramID(ctx, userID)
	if err != nil || user.Language == "" {
		return types.DEFAULT_LANGUAGE
	}
	return user.Language
}
