package telegram

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []*bot.SendMessageParams
}

func (f *fakeSender) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, params)
	return &models.Message{}, nil
}

func (f *fakeSender) last() *bot.SendMessageParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return nil
	}
	return f.sent[len(f.sent)-1]
}

func TestSendQuestion(t *testing.T) {
	question := &types.QuestionDefinition{
		QuestionID:   "partner_or_single",
		QuestionType: types.QUESTION_TYPE_SELECT,
		Title:        types.LocalisedText{"en": "Coming alone or with a partner?", "he": "מגיעים לבד או עם פרטנר?"},
		ExtraText:    types.LocalisedText{"en": "Couples register separately."},
		Options: []types.QuestionOption{
			{Value: "single", Text: types.LocalisedText{"en": "Single"}},
			{Value: "partner", Text: types.LocalisedText{"en": "With a partner"}},
			{Value: "other", Text: types.LocalisedText{"en": "Other"}},
		},
	}

	t.Run("renders title and extra text", func(t *testing.T) {
		sender := &fakeSender{}
		NewTransport(sender).SendQuestion(context.Background(), 42, question, "en", nil)

		sent := sender.last()
		if sent == nil {
			t.Fatal("no message sent")
		}
		if !strings.Contains(sent.Text, "Coming alone or with a partner?") ||
			!strings.Contains(sent.Text, "Couples register separately.") {
			t.Errorf("unexpected text: %q", sent.Text)
		}
	})

	t.Run("options become a reply keyboard", func(t *testing.T) {
		sender := &fakeSender{}
		NewTransport(sender).SendQuestion(context.Background(), 42, question, "en", nil)

		kb, ok := sender.last().ReplyMarkup.(*models.ReplyKeyboardMarkup)
		if !ok {
			t.Fatalf("unexpected reply markup: %T", sender.last().ReplyMarkup)
		}
		if len(kb.Keyboard) != 2 || len(kb.Keyboard[0]) != 2 || len(kb.Keyboard[1]) != 1 {
			t.Errorf("unexpected keyboard layout: %v", kb.Keyboard)
		}
		if kb.Keyboard[0][0].Text != "Single" {
			t.Errorf("unexpected first button: %q", kb.Keyboard[0][0].Text)
		}
	})

	t.Run("free text questions remove the keyboard", func(t *testing.T) {
		sender := &fakeSender{}
		free := &types.QuestionDefinition{
			QuestionID: "full_name",
			Title:      types.LocalisedText{"en": "What is your full name?"},
		}
		NewTransport(sender).SendQuestion(context.Background(), 42, free, "en", nil)

		if _, ok := sender.last().ReplyMarkup.(*models.ReplyKeyboardRemove); !ok {
			t.Errorf("unexpected reply markup: %T", sender.last().ReplyMarkup)
		}
	})

	t.Run("dynamic options override catalog options", func(t *testing.T) {
		sender := &fakeSender{}
		dynamic := &types.QuestionDefinition{
			QuestionID:     "event_selection",
			DynamicOptions: true,
			Title:          types.LocalisedText{"en": "Which event?"},
		}
		NewTransport(sender).SendQuestion(context.Background(), 42, dynamic, "en", []types.QuestionOption{
			{Value: "event-1", Text: types.LocalisedText{"en": "Play Party 12/09"}},
		})

		kb, ok := sender.last().ReplyMarkup.(*models.ReplyKeyboardMarkup)
		if !ok {
			t.Fatalf("unexpected reply markup: %T", sender.last().ReplyMarkup)
		}
		if kb.Keyboard[0][0].Text != "Play Party 12/09" {
			t.Errorf("unexpected button: %q", kb.Keyboard[0][0].Text)
		}
	})
}

func TestOptionValueForLabel(t *testing.T) {
	options := []types.QuestionOption{
		{Value: "single", Text: types.LocalisedText{"en": "Single", "he": "לבד"}},
		{Value: "partner", Text: types.LocalisedText{"en": "With a partner", "he": "עם פרטנר"}},
	}

	cases := []struct {
		input string
		want  string
	}{
		{"single", "single"},
		{"Single", "single"},
		{"לבד", "single"},
		{"With a partner", "partner"},
		{" partner ", "partner"},
		{"free text", "free text"},
	}
	for _, c := range cases {
		if got := OptionValueForLabel(options, "en", c.input); got != c.want {
			t.Errorf("unexpected value for %q: got %q want %q", c.input, got, c.want)
		}
	}
}

func TestRouterSerializesPerUser(t *testing.T) {
	var mu sync.Mutex
	order := []string{}
	inFlight := map[int64]bool{}

	router := NewRouter(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		userID := update.Message.From.ID
		mu.Lock()
		if inFlight[userID] {
			t.Error("unexpected concurrent handling for same user")
		}
		inFlight[userID] = true
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		inFlight[userID] = false
		order = append(order, update.Message.Text)
		mu.Unlock()
	})

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		router.Dispatch(ctx, nil, &models.Update{
			Message: &models.Message{
				From: &models.User{ID: 7},
				Text: string(rune('a' + i)),
			},
		})
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		done := len(order) == 5
		mu.Unlock()
		if done {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("updates not processed in time")
		}
		time.Sleep(5 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	for i, text := range []string{"a", "b", "c", "d", "e"} {
		if order[i] != text {
			t.Errorf("unexpected processing order: %v", order)
			break
		}
	}
}

func TestRouterFullLaneDropsInsteadOfBlocking(t *testing.T) {
	started := make(chan struct{}, 32)
	release := make(chan struct{})
	var processed int32
	var mu sync.Mutex

	router := NewRouter(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		mu.Lock()
		processed++
		mu.Unlock()
		started <- struct{}{}
		<-release
	})

	ctx := context.Background()
	send := func() {
		router.Dispatch(ctx, nil, &models.Update{
			Message: &models.Message{From: &models.User{ID: 9}, Text: "x"},
		})
	}

	// occupy the worker, then fill the lane and overflow it
	send()
	<-started
	for i := 0; i < 20; i++ {
		send()
	}
	close(release)

	// the in-flight update plus a full lane of 16; the overflow was dropped
	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		count := processed
		mu.Unlock()
		if count == 17 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected 17 processed updates, got %d", count)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
