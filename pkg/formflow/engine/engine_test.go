package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/catalog"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/store"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/validation"
)

type fakeUsers struct {
	exists bool
	err    error
}

func (f *fakeUsers) Exists(ctx context.Context, userID int64) (bool, error) {
	return f.exists, f.err
}

type fakeEvents struct {
	eventTypes map[string]string
	err        error
}

func (f *fakeEvents) EventType(ctx context.Context, eventID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.eventTypes[eventID], nil
}

type recordingHooks struct {
	registrationID    string
	eventSelections   []string
	regexFailures     int
	completedSummary  types.Answers
	completedRegID    string
	onCompletedCalled int
	completeErr       error
}

func (h *recordingHooks) OnEventSelected(ctx context.Context, state *types.FormState, eventID string) (string, error) {
	h.eventSelections = append(h.eventSelections, eventID)
	return h.registrationID, nil
}

func (h *recordingHooks) OnRegexFirstFailure(ctx context.Context, state *types.FormState) {
	h.regexFailures++
}

func (h *recordingHooks) OnCompleted(ctx context.Context, state *types.FormState) error {
	h.onCompletedCalled++
	if h.completeErr != nil {
		return h.completeErr
	}
	h.completedSummary = state.Answers
	h.completedRegID = state.RegistrationID
	return nil
}

// failingStore passes reads through and fails writes on demand.
type failingStore struct {
	store.FormStateStore
	failPuts bool
}

func (s *failingStore) Put(ctx context.Context, state *types.FormState) error {
	if s.failPuts {
		return errors.New("sheet unavailable")
	}
	return s.FormStateStore.Put(ctx, state)
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	required := types.ValidationRule{RuleType: types.RULE_TYPE_REQUIRED, ErrorMessage: types.LocalisedText{"en": "required"}}
	title := types.LocalisedText{"en": "q"}
	yesNo := []types.QuestionOption{
		{Value: "yes", Text: types.LocalisedText{"en": "Yes"}},
		{Value: "no", Text: types.LocalisedText{"en": "No"}},
	}

	defs := []types.QuestionDefinition{
		{
			QuestionID: QUESTION_ID_EVENT_SELECTION, QuestionType: types.QUESTION_TYPE_SELECT,
			Title: title, Order: 1, SaveTo: types.SAVE_TO_REGISTRATIONS, DynamicOptions: true,
			ValidationRules: []types.ValidationRule{required},
		},
		{
			QuestionID: QUESTION_ID_WOULD_REGISTER, QuestionType: types.QUESTION_TYPE_BOOLEAN,
			Title: title, Order: 2, SaveTo: types.SAVE_TO_REGISTRATIONS, Options: yesNo,
			ValidationRules: []types.ValidationRule{required},
		},
		{
			QuestionID: "full_name", QuestionType: types.QUESTION_TYPE_TEXT,
			Title: title, Order: 3, SaveTo: types.SAVE_TO_USERS,
			ValidationRules: []types.ValidationRule{required},
			SkipCondition: &types.SkipCondition{
				Operator: types.CONDITION_OPERATOR_OR,
				Conditions: []types.SkipConditionItem{
					{Type: types.CONDITION_ITEM_USER_EXISTS},
				},
			},
		},
		{
			QuestionID: "partner_or_single", QuestionType: types.QUESTION_TYPE_SELECT,
			Title: title, Order: 4, SaveTo: types.SAVE_TO_REGISTRATIONS,
			Options: []types.QuestionOption{
				{Value: "partner", Text: types.LocalisedText{"en": "Partner"}},
				{Value: "single", Text: types.LocalisedText{"en": "Single"}},
			},
			ValidationRules: []types.ValidationRule{required},
		},
		{
			QuestionID: "partner_telegram_link", QuestionType: types.QUESTION_TYPE_TELEGRAM_LINK,
			Title: title, Order: 5, SaveTo: types.SAVE_TO_REGISTRATIONS,
			ValidationRules: []types.ValidationRule{required, {RuleType: types.RULE_TYPE_TELEGRAM_LINK, ErrorMessage: types.LocalisedText{"en": "bad link"}}},
			SkipCondition: &types.SkipCondition{
				Operator: types.CONDITION_OPERATOR_OR,
				Conditions: []types.SkipConditionItem{
					{Type: types.CONDITION_ITEM_FIELD_VALUE, Field: "partner_or_single", Value: "single", Operator: types.COMPARE_EQUALS},
				},
			},
		},
		{
			QuestionID: "last_sti_test", QuestionType: types.QUESTION_TYPE_DATE,
			Title: title, Order: 6, SaveTo: types.SAVE_TO_REGISTRATIONS,
			ValidationRules: []types.ValidationRule{required, {RuleType: types.RULE_TYPE_DATE_RANGE, ErrorMessage: types.LocalisedText{"en": "bad date"}}},
			SkipCondition: &types.SkipCondition{
				Operator: types.CONDITION_OPERATOR_OR,
				Conditions: []types.SkipConditionItem{
					{Type: types.CONDITION_ITEM_EVENT_TYPE, Value: "cuddle"},
				},
			},
		},
		{
			QuestionID: "agree_line_rules", QuestionType: types.QUESTION_TYPE_TEXT,
			Title: title, Order: 7, SaveTo: types.SAVE_TO_REGISTRATIONS,
			ValidationRules: []types.ValidationRule{
				required,
				{RuleType: types.RULE_TYPE_REGEX, Params: map[string]interface{}{"regex": "ginger"}, ErrorMessage: types.LocalisedText{"en": "read the rules"}},
			},
		},
	}

	c, err := catalog.New(catalog.Metadata{FormName: "test", DefaultLanguage: types.LANGUAGE_EN}, defs)
	if err != nil {
		t.Fatalf("building test catalog: %v", err)
	}
	return c
}

func newTestEngine(t *testing.T) (*Engine, *store.MemoryStore, *recordingHooks, *fakeUsers, *fakeEvents) {
	t.Helper()
	memStore := store.NewMemoryStore()
	hooks := &recordingHooks{registrationID: "reg-1"}
	users := &fakeUsers{}
	events := &fakeEvents{eventTypes: map[string]string{"event-play": "play", "event-cuddle": "cuddle"}}
	eng := New(testCatalog(t), memStore, validation.New(), users, events, hooks)
	return eng, memStore, hooks, users, events
}

func TestStartFormResumesExistingForm(t *testing.T) {
	ctx := context.Background()
	eng, memStore, _, _, _ := newTestEngine(t)

	first, err := eng.StartForm(ctx, 1, "", types.LANGUAGE_EN)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Question == nil || first.Question.QuestionID != QUESTION_ID_EVENT_SELECTION {
		t.Fatalf("unexpected first question: %+v", first)
	}

	// P4: second start resumes, no duplicate state
	second, err := eng.StartForm(ctx, 1, "", types.LANGUAGE_EN)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Question.QuestionID != first.Question.QuestionID {
		t.Errorf("resume returned a different question: %s", second.Question.QuestionID)
	}

	active, _ := memStore.ListActive(ctx)
	if len(active) != 1 {
		t.Errorf("expected exactly one stored form state, got %d", len(active))
	}
}

func TestStartFormSkipsProfileQuestionsForReturningUser(t *testing.T) {
	ctx := context.Background()
	eng, _, _, users, _ := newTestEngine(t)
	users.exists = true

	result, err := eng.StartForm(ctx, 2, "event-play", types.LANGUAGE_EN)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := eng.SubmitAnswer(ctx, 2, "event-play"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	next, err := eng.SubmitAnswer(ctx, 2, "yes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// full_name is skipped for known users
	if next.Question.QuestionID != "partner_or_single" {
		t.Errorf("expected full_name to be skipped, got %s", next.Question.QuestionID)
	}
	if result.Question.QuestionID != QUESTION_ID_EVENT_SELECTION {
		t.Errorf("unexpected first question: %s", result.Question.QuestionID)
	}
}

func TestSubmitAnswerValidationGating(t *testing.T) {
	ctx := context.Background()
	eng, memStore, _, _, _ := newTestEngine(t)

	if _, err := eng.StartForm(ctx, 3, "", types.LANGUAGE_EN); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// P3: failing answer mutates nothing
	result, err := eng.SubmitAnswer(ctx, 3, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValidationError() {
		t.Fatal("expected a validation error result")
	}
	if result.Question.QuestionID != QUESTION_ID_EVENT_SELECTION {
		t.Error("validation failure must re-present the same question")
	}

	stored, _ := memStore.Get(ctx, 3)
	if len(stored.Answers) != 0 {
		t.Error("rejected answer must not be recorded")
	}
	if stored.CurrentQuestionID != QUESTION_ID_EVENT_SELECTION {
		t.Error("rejected answer must not advance the form")
	}
}

func TestSubmitAnswerAdvancesInOrder(t *testing.T) {
	ctx := context.Background()
	eng, _, hooks, _, _ := newTestEngine(t)

	if _, err := eng.StartForm(ctx, 4, "", types.LANGUAGE_EN); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	answers := []interface{}{"event-play", "yes", "Dana Levi", "partner", "@partner_handle", "01/01/2024", "ginger"}
	lastOrder := 0
	for i, answer := range answers {
		result, err := eng.SubmitAnswer(ctx, 4, answer)
		if err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
		if result.IsValidationError() {
			t.Fatalf("step %d: unexpected validation error: %s", i, result.ValidationMessage)
		}
		if result.Completed {
			if i != len(answers)-1 {
				t.Fatalf("completed early at step %d", i)
			}
			break
		}
		// P2: strictly increasing order
		if result.Question.Order <= lastOrder {
			t.Errorf("question order went backwards: %d after %d", result.Question.Order, lastOrder)
		}
		lastOrder = result.Question.Order
	}

	if hooks.onCompletedCalled != 1 {
		t.Errorf("expected one completion callback, got %d", hooks.onCompletedCalled)
	}
	if v, _ := hooks.completedSummary.String("full_name"); v != "Dana Levi" {
		t.Errorf("completion summary missing answers: %v", hooks.completedSummary)
	}
	if hooks.completedRegID != "reg-1" {
		t.Errorf("registration id not carried to completion: %q", hooks.completedRegID)
	}
	if len(hooks.eventSelections) != 1 || hooks.eventSelections[0] != "event-play" {
		t.Errorf("event selection hook not fired: %v", hooks.eventSelections)
	}
}

func TestScenarioSinglePartnerLinkSkipped(t *testing.T) {
	ctx := context.Background()
	eng, _, _, _, _ := newTestEngine(t)

	if _, err := eng.StartForm(ctx, 5, "", types.LANGUAGE_EN); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, answer := range []string{"event-play", "yes", "Dana"} {
		if _, err := eng.SubmitAnswer(ctx, 5, answer); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	result, err := eng.SubmitAnswer(ctx, 5, "single")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Question.QuestionID == "partner_telegram_link" {
		t.Error("partner_telegram_link must be skipped for singles")
	}
	if result.Question.QuestionID != "last_sti_test" {
		t.Errorf("unexpected next question: %s", result.Question.QuestionID)
	}
}

func TestScenarioCuddleEventSkipsSTITest(t *testing.T) {
	ctx := context.Background()
	eng, _, _, _, _ := newTestEngine(t)

	if _, err := eng.StartForm(ctx, 6, "", types.LANGUAGE_EN); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, answer := range []string{"event-cuddle", "yes", "Dana", "partner", "@partner_handle"} {
		result, err := eng.SubmitAnswer(ctx, 6, answer)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Completed && result.Question.QuestionID == "last_sti_test" {
			t.Error("last_sti_test must be skipped for cuddle events")
		}
	}
}

func TestScenarioDeclineCompletesImmediately(t *testing.T) {
	ctx := context.Background()
	eng, _, _, _, _ := newTestEngine(t)

	if _, err := eng.StartForm(ctx, 7, "", types.LANGUAGE_EN); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := eng.SubmitAnswer(ctx, 7, "event-play"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := eng.SubmitAnswer(ctx, 7, "no")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Completed {
		t.Error("declining registration must complete the form immediately")
	}
}

func TestCompletedFormRejectsFurtherAnswers(t *testing.T) {
	ctx := context.Background()
	eng, _, _, _, _ := newTestEngine(t)

	if _, err := eng.StartForm(ctx, 8, "", types.LANGUAGE_EN); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := eng.SubmitAnswer(ctx, 8, "event-play"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := eng.SubmitAnswer(ctx, 8, "no"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// P5
	_, err := eng.SubmitAnswer(ctx, 8, "anything")
	if !types.IsNotFound(err) {
		t.Errorf("expected NotFoundError after completion, got %v", err)
	}
}

func TestSubmitAnswerWithoutFormFails(t *testing.T) {
	eng, _, _, _, _ := newTestEngine(t)
	_, err := eng.SubmitAnswer(context.Background(), 999, "hello")
	if !types.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestStoreFailureDoesNotAdvanceState(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	failing := &failingStore{FormStateStore: memStore}
	eng := New(testCatalog(t), failing, validation.New(), &fakeUsers{}, &fakeEvents{eventTypes: map[string]string{"event-play": "play"}}, &recordingHooks{})

	if _, err := eng.StartForm(ctx, 9, "", types.LANGUAGE_EN); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	failing.failPuts = true
	_, err := eng.SubmitAnswer(ctx, 9, "event-play")
	if !types.IsExternalStoreError(err) {
		t.Fatalf("expected ExternalStoreError, got %v", err)
	}

	// write-then-advance: the failed write left the old state in place
	failing.failPuts = false
	question, _, err := eng.GetCurrentQuestion(ctx, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if question.QuestionID != QUESTION_ID_EVENT_SELECTION {
		t.Errorf("state advanced despite failed write: %s", question.QuestionID)
	}
}

func TestRegexFailureSignalsFirstTryOnce(t *testing.T) {
	ctx := context.Background()
	eng, _, hooks, _, _ := newTestEngine(t)

	if _, err := eng.StartForm(ctx, 10, "", types.LANGUAGE_EN); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, answer := range []string{"event-play", "yes", "Dana", "single", "01/01/2024"} {
		if _, err := eng.SubmitAnswer(ctx, 10, answer); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	result, err := eng.SubmitAnswer(ctx, 10, "I did not read anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValidationError() || result.ValidationRule != types.RULE_TYPE_REGEX {
		t.Fatalf("expected regex validation failure, got %+v", result)
	}
	if hooks.regexFailures != 1 {
		t.Errorf("expected first-try signal, got %d calls", hooks.regexFailures)
	}

	final, err := eng.SubmitAnswer(ctx, 10, "ok, ginger")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !final.Completed {
		t.Errorf("expected completion, got %+v", final)
	}
}

func TestCompletionHookFailureLeavesFormRetryable(t *testing.T) {
	ctx := context.Background()
	eng, _, hooks, _, _ := newTestEngine(t)

	if _, err := eng.StartForm(ctx, 14, "", types.LANGUAGE_EN); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := eng.SubmitAnswer(ctx, 14, "event-play"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the summary routing fails on the decline answer
	hooks.completeErr = errors.New("sheet unavailable")
	if _, err := eng.SubmitAnswer(ctx, 14, "no"); err == nil {
		t.Fatal("expected the completion hook failure to surface")
	}

	// the form is still active, resubmitting the final answer completes it
	hooks.completeErr = nil
	result, err := eng.SubmitAnswer(ctx, 14, "no")
	if err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if !result.Completed {
		t.Errorf("expected completion on retry, got %+v", result)
	}
	if hooks.onCompletedCalled != 2 {
		t.Errorf("expected two completion attempts, got %d", hooks.onCompletedCalled)
	}
}

func TestCancelFormIsIdempotent(t *testing.T) {
	ctx := context.Background()
	eng, _, _, _, _ := newTestEngine(t)

	if _, err := eng.StartForm(ctx, 11, "", types.LANGUAGE_EN); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := eng.CancelForm(ctx, 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := eng.CancelForm(ctx, 11); err != nil {
		t.Errorf("second cancel should be a no-op, got %v", err)
	}
	if _, err := eng.SubmitAnswer(ctx, 11, "event-play"); !types.IsNotFound(err) {
		t.Errorf("expected NotFoundError after cancel, got %v", err)
	}
}

func TestGetProgress(t *testing.T) {
	ctx := context.Background()
	eng, _, _, _, _ := newTestEngine(t)

	if _, err := eng.StartForm(ctx, 12, "", types.LANGUAGE_EN); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	progress, err := eng.GetProgress(ctx, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progress.Answered != 0 || progress.TotalApplicable != 7 {
		t.Errorf("unexpected initial progress: %+v", progress)
	}

	for _, answer := range []string{"event-play", "yes", "Dana", "single"} {
		if _, err := eng.SubmitAnswer(ctx, 12, answer); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	progress, err = eng.GetProgress(ctx, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// answering single removed partner_telegram_link from the applicable set
	if progress.TotalApplicable != 6 {
		t.Errorf("expected applicable set to shrink to 6, got %d", progress.TotalApplicable)
	}
	if progress.Answered != 4 {
		t.Errorf("expected 4 answered, got %d", progress.Answered)
	}
	if progress.Percent != 66 {
		t.Errorf("expected 66 percent, got %d", progress.Percent)
	}
}

func TestLanguageAnswerSwitchesFormLanguage(t *testing.T) {
	ctx := context.Background()

	required := types.ValidationRule{RuleType: types.RULE_TYPE_REQUIRED, ErrorMessage: types.LocalisedText{"en": "required", "he": "חובה"}}
	defs := []types.QuestionDefinition{
		{
			QuestionID: QUESTION_ID_LANGUAGE, QuestionType: types.QUESTION_TYPE_SELECT,
			Title: types.LocalisedText{"en": "language?"}, Order: 1, SaveTo: types.SAVE_TO_USERS,
			Options: []types.QuestionOption{
				{Value: "he", Text: types.LocalisedText{"he": "עברית"}},
				{Value: "en", Text: types.LocalisedText{"en": "English"}},
			},
			ValidationRules: []types.ValidationRule{required},
		},
		{
			QuestionID: "full_name", QuestionType: types.QUESTION_TYPE_TEXT,
			Title: types.LocalisedText{"en": "name?"}, Order: 2, SaveTo: types.SAVE_TO_USERS,
			ValidationRules: []types.ValidationRule{required},
		},
	}
	c, err := catalog.New(catalog.Metadata{FormName: "test"}, defs)
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	eng := New(c, store.NewMemoryStore(), validation.New(), &fakeUsers{}, &fakeEvents{}, &recordingHooks{})

	if _, err := eng.StartForm(ctx, 13, "", types.LANGUAGE_HE); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := eng.SubmitAnswer(ctx, 13, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Language != types.LANGUAGE_EN {
		t.Errorf("expected language switch to en, got %s", result.Language)
	}
}
