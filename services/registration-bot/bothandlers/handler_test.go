package bothandlers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/events"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/registrations"
)

func TestIsLastMinute(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{"three days away", now.Add(3 * 24 * time.Hour), true},
		{"ten days away", now.Add(10 * 24 * time.Hour), false},
		{"exactly a week away", now.Add(7 * 24 * time.Hour), false},
		{"already started", now.Add(-time.Hour), false},
		{"no start date", time.Time{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isLastMinute(tc.start, now); got != tc.want {
				t.Errorf("unexpected result for start %v: got %v, want %v", tc.start, got, tc.want)
			}
		})
	}
}

func TestPrepareAnswerContinueKeyword(t *testing.T) {
	h := &Handler{}
	ctx := context.Background()

	optional := &types.QuestionDefinition{QuestionID: "alcohol", QuestionType: types.QUESTION_TYPE_TEXT}
	required := &types.QuestionDefinition{QuestionID: "full_name", QuestionType: types.QUESTION_TYPE_TEXT, Required: true}

	t.Run("skips optional question", func(t *testing.T) {
		for _, keyword := range []string{"continue", "Continue", "המשך"} {
			if got := h.prepareAnswer(ctx, optional, types.LANGUAGE_EN, keyword); got != "" {
				t.Errorf("unexpected answer for %q: got %v, want empty", keyword, got)
			}
		}
	})

	t.Run("keyword stays an answer on required question", func(t *testing.T) {
		if got := h.prepareAnswer(ctx, required, types.LANGUAGE_EN, "continue"); got != "continue" {
			t.Errorf("unexpected answer: got %v, want %q", got, "continue")
		}
	})
}

func TestDashboardText(t *testing.T) {
	all := []*registrations.Registration{
		{SubmissionID: "a", Status: registrations.STATUS_APPROVED},
		{SubmissionID: "b", Status: registrations.STATUS_APPROVED},
		{SubmissionID: "c", Status: registrations.STATUS_WAITING_FOR_REVIEW},
	}
	states := []*types.FormState{
		{UserID: 7, CurrentQuestionID: "full_name", Answers: types.Answers{"language": "en"}},
	}

	text := dashboardText(all, states)
	for _, want := range []string{"3 registrations", "approved: 2", "waiting_for_review: 1", "1 open forms", "user 7 at full_name"} {
		if !strings.Contains(text, want) {
			t.Errorf("unexpected dashboard text, missing %q:\n%s", want, text)
		}
	}

	t.Run("no open forms", func(t *testing.T) {
		if text := dashboardText(nil, nil); !strings.Contains(text, "no open forms") {
			t.Errorf("unexpected dashboard text:\n%s", text)
		}
	})
}

func TestDigestText(t *testing.T) {
	all := []*registrations.Registration{
		{SubmissionID: "a", Status: registrations.STATUS_PAID},
		{SubmissionID: "b", Status: registrations.STATUS_CANCELLED},
	}
	upcoming := []*events.Event{
		{ID: "evt1", Name: "Play Party", EventType: "play", StartDate: time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)},
	}

	text := digestText(all, upcoming)
	for _, want := range []string{"2 registrations", "paid: 1", "cancelled: 1", "Play Party (play, 05/09/2026)"} {
		if !strings.Contains(text, want) {
			t.Errorf("unexpected digest text, missing %q:\n%s", want, text)
		}
	}

	t.Run("no upcoming events", func(t *testing.T) {
		if text := digestText(all, nil); !strings.Contains(text, "no upcoming events") {
			t.Errorf("unexpected digest text:\n%s", text)
		}
	})
}
