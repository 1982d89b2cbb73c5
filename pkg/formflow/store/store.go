package store

import (
	"context"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

// FormStateStore is the keyed persistence contract for per-user form
// progress. Writes overwrite the whole state; there are no partial patches
// at the store boundary.
//
// Get returns a NotFoundError when no state exists for the user. Backend
// failures surface as ExternalStoreError so callers can retry.
type FormStateStore interface {
	Get(ctx context.Context, userID int64) (*types.FormState, error)
	Put(ctx context.Context, state *types.FormState) error
	Remove(ctx context.Context, userID int64) error
	ListActive(ctx context.Context) ([]*types.FormState, error)
}
