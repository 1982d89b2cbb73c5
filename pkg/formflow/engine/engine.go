package engine

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/catalog"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/conditions"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/store"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/validation"
)

// Question ids the engine attaches side effects to.
const (
	QUESTION_ID_LANGUAGE        = "language"
	QUESTION_ID_EVENT_SELECTION = "event_selection"
	QUESTION_ID_WOULD_REGISTER  = "would_you_like_to_register"

	ANSWER_NO = "no"
)

// UserDirectory provides the user-exists fact.
type UserDirectory interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

// EventDirectory provides the event-type fact.
type EventDirectory interface {
	EventType(ctx context.Context, eventID string) (string, error)
}

// StepResult is the outcome of a start or submit operation. Exactly one of
// the three shapes is populated: a next question, a completion, or a
// validation failure re-presenting the current question.
type StepResult struct {
	Question *types.QuestionDefinition
	Language string

	Completed bool
	Summary   types.Answers

	ValidationMessage string
	ValidationRule    string
}

func (r *StepResult) IsValidationError() bool {
	return r.ValidationMessage != ""
}

// Progress is a best-effort completion estimate: the applicable set depends
// on answers not yet given, so it is recomputed on every call.
type Progress struct {
	Answered        int
	TotalApplicable int
	Percent         int
}

// Engine drives the registration form: it owns form-state mutation,
// validates answers, evaluates skip conditions and persists every accepted
// step before reporting it. One engine instance serves all users; per-user
// operations are mutually exclusive, different users proceed in parallel.
type Engine struct {
	catalog   *catalog.Catalog
	store     store.FormStateStore
	validator *validation.Validator
	users     UserDirectory
	events    EventDirectory
	hooks     Hooks

	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex

	// write-through cache over the store, seeded lazily per user
	cacheMu sync.RWMutex
	cache   map[int64]*types.FormState
}

func New(
	questionCatalog *catalog.Catalog,
	formStateStore store.FormStateStore,
	validator *validation.Validator,
	users UserDirectory,
	events EventDirectory,
	hooks Hooks,
) *Engine {
	if validator == nil {
		validator = validation.New()
	}
	if hooks == nil {
		hooks = NoopHooks{}
	}
	return &Engine{
		catalog:   questionCatalog,
		store:     formStateStore,
		validator: validator,
		users:     users,
		events:    events,
		hooks:     hooks,
		locks:     map[int64]*sync.Mutex{},
		cache:     map[int64]*types.FormState{},
	}
}

// StartForm begins the registration flow for a user, or resumes an existing
// incomplete form (never creates a duplicate). The returned question has
// skip evaluation already applied.
func (e *Engine) StartForm(ctx context.Context, userID int64, eventID string, language string) (*StepResult, error) {
	unlock := e.lockUser(userID)
	defer unlock()

	state, err := e.loadState(ctx, userID)
	if err != nil && !types.IsNotFound(err) {
		return nil, err
	}

	if state != nil && !state.Completed {
		question, err := e.mustGetQuestion(state.CurrentQuestionID)
		if err != nil {
			return nil, err
		}
		return &StepResult{Question: question, Language: state.Language}, nil
	}

	state = types.NewFormState(userID, language)
	if eventID != "" {
		state.EventID = eventID
		registrationID, err := e.hooks.OnEventSelected(ctx, state, eventID)
		if err != nil {
			return nil, err
		}
		state.RegistrationID = registrationID
	}

	facts, err := e.resolveFacts(ctx, state)
	if err != nil {
		return nil, err
	}

	question, err := e.firstApplicable(e.catalog.Ordered(), state.Answers, facts)
	if err != nil {
		return nil, err
	}
	if question == nil {
		state.Completed = true
		if err := e.hooks.OnCompleted(ctx, state); err != nil {
			return nil, err
		}
		if err := e.persist(ctx, state); err != nil {
			return nil, err
		}
		return &StepResult{Completed: true, Summary: state.Answers, Language: state.Language}, nil
	}

	state.CurrentQuestionID = question.QuestionID
	if err := e.persist(ctx, state); err != nil {
		return nil, err
	}
	return &StepResult{Question: question, Language: state.Language}, nil
}

// SubmitAnswer validates the answer for the user's current question and
// advances the form. The updated state is persisted before the result is
// returned; a failed write never advances the in-memory state.
func (e *Engine) SubmitAnswer(ctx context.Context, userID int64, rawAnswer interface{}) (*StepResult, error) {
	unlock := e.lockUser(userID)
	defer unlock()

	state, err := e.activeState(ctx, userID)
	if err != nil {
		return nil, err
	}

	question, err := e.mustGetQuestion(state.CurrentQuestionID)
	if err != nil {
		return nil, err
	}

	result := e.validator.Validate(question, rawAnswer, state.Language)
	if !result.Valid {
		if result.RuleType == types.RULE_TYPE_REGEX {
			e.hooks.OnRegexFirstFailure(ctx, state)
		}
		e.touch(userID)
		return &StepResult{
			Question:          question,
			Language:          state.Language,
			ValidationMessage: result.Message,
			ValidationRule:    result.RuleType,
		}, nil
	}

	next := state.Clone()
	next.Answers[question.QuestionID] = normalizeAnswer(rawAnswer)
	next.UpdatedAt = time.Now()

	earlyExit, err := e.applyAnswerSideEffects(ctx, next, question.QuestionID)
	if err != nil {
		return nil, err
	}

	var nextQuestion *types.QuestionDefinition
	if !earlyExit {
		facts, err := e.resolveFacts(ctx, next)
		if err != nil {
			return nil, err
		}
		candidates, err := e.catalog.After(question.QuestionID)
		if err != nil {
			return nil, &types.ConfigurationError{Problems: []string{err.Error()}}
		}
		nextQuestion, err = e.firstApplicable(candidates, next.Answers, facts)
		if err != nil {
			return nil, err
		}
	}

	if nextQuestion == nil {
		next.Completed = true
		// hook first: when summary routing fails the completed state is
		// not persisted, so the user can resubmit the final answer
		if err := e.hooks.OnCompleted(ctx, next); err != nil {
			return nil, err
		}
		if err := e.persist(ctx, next); err != nil {
			return nil, err
		}
		return &StepResult{Completed: true, Summary: next.Answers, Language: next.Language}, nil
	}

	next.CurrentQuestionID = nextQuestion.QuestionID
	if err := e.persist(ctx, next); err != nil {
		return nil, err
	}
	return &StepResult{Question: nextQuestion, Language: next.Language}, nil
}

// GetCurrentQuestion returns the question an active form is waiting on.
func (e *Engine) GetCurrentQuestion(ctx context.Context, userID int64) (*types.QuestionDefinition, string, error) {
	unlock := e.lockUser(userID)
	defer unlock()

	state, err := e.activeState(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	question, err := e.mustGetQuestion(state.CurrentQuestionID)
	if err != nil {
		return nil, "", err
	}
	return question, state.Language, nil
}

// GetState returns a copy of the user's form state.
func (e *Engine) GetState(ctx context.Context, userID int64) (*types.FormState, error) {
	unlock := e.lockUser(userID)
	defer unlock()

	return e.loadState(ctx, userID)
}

// CancelForm removes the user's form state. Idempotent: cancelling an
// already cancelled form is a no-op.
func (e *Engine) CancelForm(ctx context.Context, userID int64) error {
	unlock := e.lockUser(userID)
	defer unlock()

	if err := e.store.Remove(ctx, userID); err != nil {
		return wrapStoreErr("remove form state", err)
	}
	e.cacheMu.Lock()
	delete(e.cache, userID)
	e.cacheMu.Unlock()
	return nil
}

// GetProgress estimates completion by filtering the whole catalog through
// the skip evaluator with the answers given so far.
func (e *Engine) GetProgress(ctx context.Context, userID int64) (*Progress, error) {
	unlock := e.lockUser(userID)
	defer unlock()

	state, err := e.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}

	facts, err := e.resolveFacts(ctx, state)
	if err != nil {
		return nil, err
	}

	progress := &Progress{}
	for _, question := range e.catalog.Ordered() {
		skip, err := conditions.ShouldSkip(question, state.Answers, facts)
		if err != nil {
			return nil, &types.ConfigurationError{Problems: []string{err.Error()}}
		}
		if skip {
			continue
		}
		progress.TotalApplicable++
		if _, answered := state.Answers[question.QuestionID]; answered {
			progress.Answered++
		}
	}
	if progress.TotalApplicable > 0 {
		progress.Percent = progress.Answered * 100 / progress.TotalApplicable
	}
	return progress, nil
}

// ListActiveForms exposes the store's active set (admin monitoring view).
func (e *Engine) ListActiveForms(ctx context.Context) ([]*types.FormState, error) {
	states, err := e.store.ListActive(ctx)
	if err != nil {
		return nil, wrapStoreErr("list active forms", err)
	}
	return states, nil
}

func (e *Engine) applyAnswerSideEffects(ctx context.Context, state *types.FormState, questionID string) (earlyExit bool, err error) {
	answer, _ := state.Answers.String(questionID)

	switch questionID {
	case QUESTION_ID_LANGUAGE:
		if answer != "" {
			state.Language = answer
		}
	case QUESTION_ID_EVENT_SELECTION:
		state.EventID = answer
		registrationID, err := e.hooks.OnEventSelected(ctx, state, answer)
		if err != nil {
			return false, err
		}
		state.RegistrationID = registrationID
	case QUESTION_ID_WOULD_REGISTER:
		if answer == ANSWER_NO {
			return true, nil
		}
	}
	return false, nil
}

// firstApplicable walks candidates in catalog order and returns the first
// question the evaluator does not skip.
func (e *Engine) firstApplicable(candidates []*types.QuestionDefinition, answers types.Answers, facts types.Facts) (*types.QuestionDefinition, error) {
	for _, question := range candidates {
		skip, err := conditions.ShouldSkip(question, answers, facts)
		if err != nil {
			return nil, &types.ConfigurationError{Problems: []string{fmt.Sprintf("%s: %v", question.QuestionID, err)}}
		}
		if !skip {
			return question, nil
		}
	}
	return nil, nil
}

func (e *Engine) resolveFacts(ctx context.Context, state *types.FormState) (types.Facts, error) {
	facts := types.Facts{}

	if e.users != nil {
		exists, err := e.users.Exists(ctx, state.UserID)
		if err != nil {
			return facts, wrapStoreErr("user lookup", err)
		}
		facts.UserExists = exists
	}

	if e.events != nil && state.EventID != "" {
		eventType, err := e.events.EventType(ctx, state.EventID)
		if err != nil {
			return facts, wrapStoreErr("event lookup", err)
		}
		facts.EventType = eventType
	}
	return facts, nil
}

// persist writes the state and only then swaps it into the cache
// (write-then-advance).
func (e *Engine) persist(ctx context.Context, state *types.FormState) error {
	if err := e.store.Put(ctx, state); err != nil {
		return wrapStoreErr("put form state", err)
	}
	e.cacheMu.Lock()
	e.cache[state.UserID] = state.Clone()
	e.cacheMu.Unlock()
	return nil
}

// touch bumps UpdatedAt on the cached state after a validation failure; the
// rejected answer itself is never recorded or persisted.
func (e *Engine) touch(userID int64) {
	e.cacheMu.Lock()
	if state, ok := e.cache[userID]; ok {
		state.UpdatedAt = time.Now()
	}
	e.cacheMu.Unlock()
}

func (e *Engine) activeState(ctx context.Context, userID int64) (*types.FormState, error) {
	state, err := e.loadState(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.Completed {
		return nil, &types.NotFoundError{Kind: "active form", Key: strconv.FormatInt(userID, 10)}
	}
	return state, nil
}

func (e *Engine) loadState(ctx context.Context, userID int64) (*types.FormState, error) {
	e.cacheMu.RLock()
	cached, ok := e.cache[userID]
	e.cacheMu.RUnlock()
	if ok {
		return cached.Clone(), nil
	}

	state, err := e.store.Get(ctx, userID)
	if err != nil {
		if types.IsNotFound(err) {
			return nil, err
		}
		return nil, wrapStoreErr("get form state", err)
	}
	state.Answers.Normalize()

	e.cacheMu.Lock()
	e.cache[userID] = state.Clone()
	e.cacheMu.Unlock()
	return state, nil
}

func (e *Engine) mustGetQuestion(questionID string) (*types.QuestionDefinition, error) {
	question, err := e.catalog.Get(questionID)
	if err != nil {
		// a stored question id missing from the catalog is a config defect
		return nil, &types.ConfigurationError{Problems: []string{err.Error()}}
	}
	return question, nil
}

func (e *Engine) lockUser(userID int64) func() {
	e.locksMu.Lock()
	lock, ok := e.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[userID] = lock
	}
	e.locksMu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func normalizeAnswer(rawAnswer interface{}) interface{} {
	switch answer := rawAnswer.(type) {
	case []interface{}:
		list := make([]string, 0, len(answer))
		for _, item := range answer {
			list = append(list, fmt.Sprintf("%v", item))
		}
		return list
	default:
		return rawAnswer
	}
}

func wrapStoreErr(op string, err error) error {
	if types.IsExternalStoreError(err) || types.IsNotFound(err) || types.IsConfigurationError(err) {
		return err
	}
	return &types.ExternalStoreError{Op: op, Err: err}
}
