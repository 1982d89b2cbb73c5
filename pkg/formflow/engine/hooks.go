package engine

import (
	"context"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

// Hooks receive the side effects the engine triggers on specific answers.
// The engine never writes to the domain tables itself; the bot layer
// implements these against the registrations and users services.
type Hooks interface {
	// OnEventSelected is called when the user picks an event. The returned
	// registration id is stored on the form state. A retried step can call
	// it again for the same user and event; implementations reuse the open
	// registration instead of creating a second row.
	OnEventSelected(ctx context.Context, state *types.FormState, eventID string) (registrationID string, err error)

	// OnRegexFirstFailure is called the first time a regex-validated answer
	// fails, so the registration's first-try flag can be cleared.
	OnRegexFirstFailure(ctx context.Context, state *types.FormState)

	// OnCompleted receives the finished form with the full answers map for
	// routing into the persistent user and registration records. It runs
	// before the completed state is persisted; an error keeps the form
	// active so the final answer can be resubmitted. Implementations must
	// tolerate being called again for the same form.
	OnCompleted(ctx context.Context, state *types.FormState) error
}

// NoopHooks is the default when no side effects are wired (tests, dry runs).
type NoopHooks struct{}

func (NoopHooks) OnEventSelected(ctx context.Context, state *types.FormState, eventID string) (string, error) {
	return "", nil
}

func (NoopHooks) OnRegexFirstFailure(ctx context.Context, state *types.FormState) {}

func (NoopHooks) OnCompleted(ctx context.Context, state *types.FormState) error {
	return nil
}
