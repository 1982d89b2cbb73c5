package texts

import (
	"strings"
	"testing"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

func TestGet(t *testing.T) {
	t.Run("hebrew and english variants differ", func(t *testing.T) {
		he := Get(MSG_WELCOME, types.LANGUAGE_HE)
		en := Get(MSG_WELCOME, types.LANGUAGE_EN)
		if he == "" || en == "" || he == en {
			t.Errorf("unexpected variants: he=%q en=%q", he, en)
		}
	})

	t.Run("unknown language falls back", func(t *testing.T) {
		if got := Get(MSG_HELP, "fr"); got == "" || got == MSG_HELP {
			t.Errorf("unexpected fallback result: %q", got)
		}
	})

	t.Run("unknown key returns the key", func(t *testing.T) {
		if got := Get("no_such_message", types.LANGUAGE_EN); got != "no_such_message" {
			t.Errorf("unexpected result for unknown key: %q", got)
		}
	})

	t.Run("every message has both languages", func(t *testing.T) {
		for key, text := range messages {
			if text[types.LANGUAGE_HE] == "" || text[types.LANGUAGE_EN] == "" {
				t.Errorf("message %s missing a translation", key)
			}
		}
	})
}

func TestGetf(t *testing.T) {
	got := Getf(MSG_PROGRESS, types.LANGUAGE_EN, 4, 6, 66)
	if !strings.Contains(got, "4 of 6") || !strings.Contains(got, "66%") {
		t.Errorf("unexpected interpolation: %q", got)
	}
}
