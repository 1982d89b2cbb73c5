package filestore

import (
	"context"
	"os"
	"strconv"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

const formStateKeyPrefix = "form_state_"

// FormStateStore keeps one envelope file per user. Implements the engine's
// store contract for deployments without a spreadsheet or MongoDB.
type FormStateStore struct {
	files *Store
}

func NewFormStateStore(dir string) (*FormStateStore, error) {
	files, err := New(dir)
	if err != nil {
		return nil, err
	}
	return &FormStateStore{files: files}, nil
}

func formStateKey(userID int64) string {
	return formStateKeyPrefix + strconv.FormatInt(userID, 10)
}

func (s *FormStateStore) Get(ctx context.Context, userID int64) (*types.FormState, error) {
	var state types.FormState
	if err := s.files.Load(formStateKey(userID), &state); err != nil {
		if os.IsNotExist(err) {
			return nil, &types.NotFoundError{Kind: "form state", Key: strconv.FormatInt(userID, 10)}
		}
		return nil, &types.ExternalStoreError{Op: "get form state", Err: err}
	}
	state.Answers.Normalize()
	return &state, nil
}

func (s *FormStateStore) Put(ctx context.Context, state *types.FormState) error {
	if err := s.files.Save(formStateKey(state.UserID), state); err != nil {
		return &types.ExternalStoreError{Op: "put form state", Err: err}
	}
	return nil
}

func (s *FormStateStore) Remove(ctx context.Context, userID int64) error {
	if err := s.files.Delete(formStateKey(userID)); err != nil {
		return &types.ExternalStoreError{Op: "remove form state", Err: err}
	}
	return nil
}

func (s *FormStateStore) ListActive(ctx context.Context) ([]*types.FormState, error) {
	keys, err := s.files.ListKeys()
	if err != nil {
		return nil, &types.ExternalStoreError{Op: "list form states", Err: err}
	}

	active := []*types.FormState{}
	for _, key := range keys {
		var state types.FormState
		if err := s.files.Load(key, &state); err != nil {
			continue
		}
		if state.Completed {
			continue
		}
		state.Answers.Normalize()
		active = append(active, &state)
	}
	return active, nil
}
