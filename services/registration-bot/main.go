package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/engine"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/telegram"
	"github.com/inbal0012/wild-ginger-bot-sub001/services/registration-bot/bothandlers"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	hooks := bothandlers.NewFlowHooks(questionCatalog, userService, registrationService)
	formEngine := engine.New(
		questionCatalog,
		formStateStore,
		nil,
		userService,
		eventService,
		hooks,
	)

	// the handler needs the bot for sending and the bot needs the update
	// handler, so the router resolves the handler at dispatch time
	var handler *bothandlers.Handler
	router := telegram.NewRouter(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		handler.HandleUpdate(ctx, b, update)
	})

	opts := []bot.Option{
		bot.WithDefaultHandler(router.Dispatch),
	}

	b, err := bot.New(conf.Telegram.BotToken, opts...)
	if err != nil {
		slog.Error("Error creating bot", slog.String("error", err.Error()))
		panic(err)
	}

	transport := telegram.NewTransport(b)
	handler = bothandlers.NewHandler(
		formEngine,
		transport,
		questionCatalog,
		eventService,
		userService,
		registrationService,
		conf.Telegram.AdminUserIDs,
	)

	slog.Info("Starting registration bot")
	b.Start(ctx)
	slog.Info("Registration bot stopped")
}
