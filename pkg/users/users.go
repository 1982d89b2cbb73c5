package users

import (
	"context"
	"strconv"
	"time"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/sheets"
)

// Users tab columns.
const (
	COL_TELEGRAM_USER_ID    = "telegram_user_id"
	COL_FULL_NAME           = "full_name"
	COL_TELEGRAM_USERNAME   = "telegram_username"
	COL_LANGUAGE            = "language"
	// the sheet header keeps the intake form's historical spelling, which
	// is also the question id completion answers are routed under
	COL_RELEVANT_EXPERIENCE = "relevent_experience"
	COL_CREATED_AT          = "created_at"
	COL_UPDATED_AT          = "updated_at"
)

// User is a community member's persisted profile.
type User struct {
	TelegramUserID     int64
	FullName           string
	TelegramUsername   string
	Language           string
	RelevantExperience string
}

// Service reads and writes the Users tab. Exists serves as the user-exists
// fact for skip evaluation, so returning members are not asked for their
// profile again.
type Service struct {
	rows *sheets.RowStore
}

func NewService(client *sheets.Client, tab string) *Service {
	return &Service{rows: sheets.NewRowStore(client, tab, COL_TELEGRAM_USER_ID)}
}

// Exists reports whether the user already has a profile row.
func (s *Service) Exists(ctx context.Context, userID int64) (bool, error) {
	row, err := s.rows.GetRow(ctx, strconv.FormatInt(userID, 10))
	if err != nil {
		return false, &types.ExternalStoreError{Op: "user lookup", Err: err}
	}
	return row != nil, nil
}

// GetByTelegramID returns the user's profile, or a NotFoundError.
func (s *Service) GetByTelegramID(ctx context.Context, userID int64) (*User, error) {
	key := strconv.FormatInt(userID, 10)
	row, err := s.rows.GetRow(ctx, key)
	if err != nil {
		return nil, &types.ExternalStoreError{Op: "user lookup", Err: err}
	}
	if row == nil {
		return nil, &types.NotFoundError{Kind: "user", Key: key}
	}
	return &User{
		TelegramUserID:     userID,
		FullName:           row[COL_FULL_NAME],
		TelegramUsername:   row[COL_TELEGRAM_USERNAME],
		Language:           row[COL_LANGUAGE],
		RelevantExperience: row[COL_RELEVANT_EXPERIENCE],
	}, nil
}

// UpsertProfile writes profile fields for the user, creating the row when
// missing. Fields are sheet column names; unknown columns are ignored by the
// row store. The routing target for answers saved to "Users".
func (s *Service) UpsertProfile(ctx context.Context, userID int64, fields map[string]string) error {
	key := strconv.FormatInt(userID, 10)

	row := make(map[string]string, len(fields)+2)
	for column, value := range fields {
		row[column] = value
	}
	now := time.Now().Format(time.RFC3339)
	row[COL_UPDATED_AT] = now

	existing, err := s.rows.GetRow(ctx, key)
	if err != nil {
		return &types.ExternalStoreError{Op: "user lookup", Err: err}
	}
	if existing == nil {
		row[COL_CREATED_AT] = now
	}

	if err := s.rows.PutRow(ctx, key, row); err != nil {
		return &types.ExternalStoreError{Op: "upsert user profile", Err: err}
	}
	return nil
}
