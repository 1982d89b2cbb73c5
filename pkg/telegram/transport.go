package telegram

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

// Sender is the outgoing side of the bot, small enough to fake in tests.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Transport renders questions and messages into Telegram sends.
type Transport struct {
	sender Sender
}

func NewTransport(sender Sender) *Transport {
	return &Transport{sender: sender}
}

// SendText sends a plain text message to the chat.
func (t *Transport) SendText(ctx context.Context, chatID int64, text string) {
	if text == "" {
		return
	}
	_, err := t.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		slog.Error("failed to send message", slog.Int64("chatID", chatID), slog.String("error", err.Error()))
	}
}

// SendQuestion renders one form question: title, optional extra text and
// placeholder, and a reply keyboard when the question has options. Dynamic
// options (e.g. upcoming events) are resolved by the caller and passed in;
// for static questions pass nil to use the catalog options.
func (t *Transport) SendQuestion(ctx context.Context, chatID int64, question *types.QuestionDefinition, language string, dynamicOptions []types.QuestionOption) {
	text := RenderQuestionText(question, language)

	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}

	options := question.Options
	if question.DynamicOptions && dynamicOptions != nil {
		options = dynamicOptions
	}
	if len(options) > 0 {
		params.ReplyMarkup = optionsKeyboard(options, language)
	} else {
		params.ReplyMarkup = &models.ReplyKeyboardRemove{RemoveKeyboard: true}
	}

	if _, err := t.sender.SendMessage(ctx, params); err != nil {
		slog.Error("failed to send question",
			slog.Int64("chatID", chatID),
			slog.String("questionID", question.QuestionID),
			slog.String("error", err.Error()))
	}
}

// RenderQuestionText builds the message body for a question in the given
// language.
func RenderQuestionText(question *types.QuestionDefinition, language string) string {
	var b strings.Builder
	b.WriteString(question.Title.Get(language))
	if extra := question.ExtraText.Get(language); extra != "" {
		b.WriteString("\n\n")
		b.WriteString(extra)
	}
	if placeholder := question.Placeholder.Get(language); placeholder != "" {
		b.WriteString("\n\n")
		b.WriteString(placeholder)
	}
	return b.String()
}

// optionsKeyboard lays option labels out two per row. The answer value is the
// option value, so labels double as buttons only when value and label match;
// for localized labels the handler maps the pressed label back to its value.
func optionsKeyboard(options []types.QuestionOption, language string) *models.ReplyKeyboardMarkup {
	rows := [][]models.KeyboardButton{}
	row := []models.KeyboardButton{}
	for _, opt := range options {
		label := opt.Text.Get(language)
		if label == "" {
			label = opt.Value
		}
		row = append(row, models.KeyboardButton{Text: label})
		if len(row) == 2 {
			rows = append(rows, row)
			row = []models.KeyboardButton{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return &models.ReplyKeyboardMarkup{
		Keyboard:        rows,
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

// OptionValueForLabel maps a pressed keyboard label back to the option value.
// Falls back to the raw input so typed values keep working.
func OptionValueForLabel(options []types.QuestionOption, language string, input string) string {
	trimmed := strings.TrimSpace(input)
	for _, opt := range options {
		if opt.Value == trimmed {
			return opt.Value
		}
	}
	for _, opt := range options {
		if opt.Text.Get(language) == trimmed {
			return opt.Value
		}
		for _, text := range opt.Text {
			if text == trimmed {
				return opt.Value
			}
		}
	}
	return trimmed
}
