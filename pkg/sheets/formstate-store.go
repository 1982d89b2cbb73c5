package sheets

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

// FormStates tab columns.
const (
	COL_TELEGRAM_USER_ID = "telegram_user_id"
	COL_STATE_JSON       = "state_json"
	COL_COMPLETED        = "completed"
	COL_UPDATED_AT       = "updated_at"
)

// FormStateStore persists form states one row per user, the whole state
// serialized as JSON in a single cell. Implements the engine's store
// contract over the spreadsheet.
type FormStateStore struct {
	rows *RowStore
}

func NewFormStateStore(client *Client, tab string) *FormStateStore {
	return &FormStateStore{
		rows: NewRowStore(client, tab, COL_TELEGRAM_USER_ID),
	}
}

func (s *FormStateStore) Get(ctx context.Context, userID int64) (*types.FormState, error) {
	key := strconv.FormatInt(userID, 10)
	row, err := s.rows.GetRow(ctx, key)
	if err != nil {
		return nil, &types.ExternalStoreError{Op: "get form state", Err: err}
	}
	if row == nil || row[COL_STATE_JSON] == "" {
		return nil, &types.NotFoundError{Kind: "form state", Key: key}
	}

	var state types.FormState
	if err := json.Unmarshal([]byte(row[COL_STATE_JSON]), &state); err != nil {
		return nil, &types.ExternalStoreError{Op: "decode form state", Err: err}
	}
	return &state, nil
}

func (s *FormStateStore) Put(ctx context.Context, state *types.FormState) error {
	content, err := json.Marshal(state)
	if err != nil {
		return &types.ExternalStoreError{Op: "encode form state", Err: err}
	}

	completed := "FALSE"
	if state.Completed {
		completed = "TRUE"
	}
	row := map[string]string{
		COL_STATE_JSON: string(content),
		COL_COMPLETED:  completed,
		COL_UPDATED_AT: state.UpdatedAt.Format(time.RFC3339),
	}
	if err := s.rows.PutRow(ctx, strconv.FormatInt(state.UserID, 10), row); err != nil {
		return &types.ExternalStoreError{Op: "put form state", Err: err}
	}
	return nil
}

func (s *FormStateStore) Remove(ctx context.Context, userID int64) error {
	if err := s.rows.DeleteRow(ctx, strconv.FormatInt(userID, 10)); err != nil {
		return &types.ExternalStoreError{Op: "remove form state", Err: err}
	}
	return nil
}

func (s *FormStateStore) ListActive(ctx context.Context) ([]*types.FormState, error) {
	rows, err := s.rows.ListRows(ctx)
	if err != nil {
		return nil, &types.ExternalStoreError{Op: "list form states", Err: err}
	}

	active := []*types.FormState{}
	for _, row := range rows {
		if row[COL_STATE_JSON] == "" || ParseCellBool(row[COL_COMPLETED]) {
			continue
		}
		var state types.FormState
		if err := json.Unmarshal([]byte(row[COL_STATE_JSON]), &state); err != nil {
			continue
		}
		active = append(active, &state)
	}
	return active, nil
}
