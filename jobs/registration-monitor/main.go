package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/registrations"
)

var nudgeText = types.LocalisedText{
	types.LANGUAGE_HE: "יש לך טופס הרשמה פתוח שלא הושלם. שלחו /continue כדי להמשיך מאיפה שעצרת 💜",
	types.LANGUAGE_EN: "You have an unfinished registration form. Send /continue to pick up where you left off 💜",
}

func main() {
	slog.Info("Starting registration monitor job")
	start := time.Now()

	ctx := context.Background()

	b, err := bot.New(conf.Telegram.BotToken)
	if err != nil {
		slog.Error("Error creating bot", slog.String("error", err.Error()))
		panic(err)
	}

	imported := syncIntake(ctx, b)
	nudged := nudgeStaleForms(ctx, b)

	slog.Info("Registration monitor job completed",
		slog.Int("imported", imported),
		slog.Int("nudged", nudged),
		slog.String("duration", time.Since(start).String()))
}

// syncIntake copies form responses that landed on the intake tab since the
// last run onto the managed registrations tab, keyed on the submission id,
// and notifies the admin chat about each new one.
func syncIntake(ctx context.Context, b *bot.Bot) int {
	intake, err := intakeRows.ListRows(ctx)
	if err != nil {
		slog.Error("Failed to list intake rows", slog.String("error", err.Error()))
		return 0
	}

	known, err := registrationService.KnownSubmissionIDs(ctx)
	if err != nil {
		slog.Error("Failed to list managed registrations", slog.String("error", err.Error()))
		return 0
	}

	imported := 0
	for _, row := range intake {
		submissionID := row[conf.MonitorConfig.IntakeKeyColumn]
		if submissionID == "" || known[submissionID] {
			continue
		}

		fields := registrations.MapIntakeRow(row, conf.MonitorConfig.ColumnMapping)
		if err := registrationService.Import(ctx, submissionID, fields); err != nil {
			slog.Error("Failed to import intake row",
				slog.String("submissionID", submissionID),
				slog.String("error", err.Error()))
			continue
		}
		known[submissionID] = true
		imported++

		notifyAdmins(ctx, b, submissionID, fields)
	}
	return imported
}

func notifyAdmins(ctx context.Context, b *bot.Bot, submissionID string, fields map[string]string) {
	if conf.Telegram.AdminChatID == 0 {
		return
	}

	text := fmt.Sprintf("📥 New registration %s", submissionID)
	if name := fields["full_name"]; name != "" {
		text = fmt.Sprintf("📥 New registration %s (%s)", submissionID, name)
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: conf.Telegram.AdminChatID,
		Text:   text,
	})
	if err != nil {
		slog.Error("Failed to notify admins about new registration",
			slog.String("submissionID", submissionID),
			slog.String("error", err.Error()))
	}
}

// nudgeStaleForms pings users whose open form sat untouched past the
// configured staleness window.
func nudgeStaleForms(ctx context.Context, b *bot.Bot) int {
	states, err := formStateStore.ListActive(ctx)
	if err != nil {
		slog.Error("Failed to list active forms", slog.String("error", err.Error()))
		return 0
	}

	cutoff := time.Now().Add(-conf.MonitorConfig.StaleAfter)
	nudged := 0
	for _, state := range states {
		if state.UpdatedAt.After(cutoff) {
			continue
		}

		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: state.UserID,
			Text:   nudgeText.Get(userLanguage(ctx, state)),
		})
		if err != nil {
			slog.Error("Failed to send nudge",
				slog.Int64("userID", state.UserID),
				slog.String("error", err.Error()))
			continue
		}
		nudged++
	}

	slog.Info("Active form inventory",
		slog.Int("active", len(states)),
		slog.Int("nudged", nudged))
	return nudged
}

func userLanguage(ctx context.Context, state *types.FormState) string {
	if state.Language != "" {
		return state.Language
	}
	if user, err := userService.GetByTelegramID(ctx, state.UserID); err == nil && user.Language != "" {
		return user.Language
	}
	return types.DEFAULT_LANGUAGE
}
