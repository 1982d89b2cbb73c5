package store

import (
	"context"
	"strconv"
	"sync"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

// MemoryStore keeps form states for the current process lifetime. Used in
// tests and as the storage backend when no durable store is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[int64]*types.FormState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: map[int64]*types.FormState{}}
}

func (s *MemoryStore) Get(ctx context.Context, userID int64) (*types.FormState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[userID]
	if !ok {
		return nil, &types.NotFoundError{Kind: "form state", Key: strconv.FormatInt(userID, 10)}
	}
	return state.Clone(), nil
}

func (s *MemoryStore) Put(ctx context.Context, state *types.FormState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[state.UserID] = state.Clone()
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, userID)
	return nil
}

func (s *MemoryStore) ListActive(ctx context.Context) ([]*types.FormState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := []*types.FormState{}
	for _, state := range s.states {
		if !state.Completed {
			active = append(active, state.Clone())
		}
	}
	return active, nil
}
