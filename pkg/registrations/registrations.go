package registrations

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/sheets"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/utils"
)

// Registrations ("managed") tab columns.
const (
	COL_SUBMISSION_ID     = "submission_id"
	COL_EVENT_ID          = "event_id"
	COL_TELEGRAM_USER_ID  = "telegram_user_id"
	COL_STATUS            = "status"
	COL_PARTNER_NAME      = "partner_name"
	COL_PARTNER_ALERT     = "partner_alert_sent"
	COL_PAYMENT_REMINDER  = "payment_reminder_sent"
	COL_GINGER_FIRST_TRY  = "ginger_first_try"
	COL_REGISTRATION_DATE = "registration_date"
	COL_STATUS_REASON     = "status_reason"
	COL_UPDATED_AT        = "updated_at"
)

// Registration lifecycle statuses.
const (
	STATUS_FORM_INCOMPLETE     = "form_incomplete"
	STATUS_WAITING_FOR_PARTNER = "waiting_for_partner"
	STATUS_PARTNER_DECLINED    = "partner_declined"
	STATUS_WAITING_FOR_REVIEW  = "waiting_for_review"
	STATUS_APPROVED            = "approved"
	STATUS_REJECTED            = "rejected"
	STATUS_PAID                = "paid"
	STATUS_GROUP_OPENED        = "group_opened"
	STATUS_CANCELLED           = "cancelled"
	STATUS_UNINTERESTED        = "uninterested"
)

var knownStatuses = []string{
	STATUS_FORM_INCOMPLETE,
	STATUS_WAITING_FOR_PARTNER,
	STATUS_PARTNER_DECLINED,
	STATUS_WAITING_FOR_REVIEW,
	STATUS_APPROVED,
	STATUS_REJECTED,
	STATUS_PAID,
	STATUS_GROUP_OPENED,
	STATUS_CANCELLED,
	STATUS_UNINTERESTED,
}

var terminalStatuses = []string{
	STATUS_REJECTED,
	STATUS_CANCELLED,
	STATUS_UNINTERESTED,
	STATUS_GROUP_OPENED,
}

// IsValidStatus reports whether a status string belongs to the lifecycle.
func IsValidStatus(status string) bool {
	return utils.ContainsString(knownStatuses, status)
}

// IsTerminalStatus reports whether no further transitions are expected.
func IsTerminalStatus(status string) bool {
	return utils.ContainsString(terminalStatuses, status)
}

// Registration is one row of the managed registrations tab. Answers holds
// the per-answer columns not covered by the named fields.
type Registration struct {
	SubmissionID     string
	EventID          string
	TelegramUserID   int64
	Status           string
	PartnerName      string
	PartnerAlertSent bool
	GingerFirstTry   bool
	RegistrationDate string
	StatusReason     string
	UpdatedAt        string
	Answers          map[string]string
}

var namedColumns = map[string]bool{
	COL_SUBMISSION_ID:     true,
	COL_EVENT_ID:          true,
	COL_TELEGRAM_USER_ID:  true,
	COL_STATUS:            true,
	COL_PARTNER_NAME:      true,
	COL_PARTNER_ALERT:     true,
	COL_PAYMENT_REMINDER:  true,
	COL_GINGER_FIRST_TRY:  true,
	COL_REGISTRATION_DATE: true,
	COL_STATUS_REASON:     true,
	COL_UPDATED_AT:        true,
}

// rowStore is the slice of sheets.RowStore the service needs.
type rowStore interface {
	GetRow(ctx context.Context, key string) (map[string]string, error)
	PutRow(ctx context.Context, key string, row map[string]string) error
	UpdateCell(ctx context.Context, key string, column string, value string) error
	AppendRow(ctx context.Context, row map[string]string) error
	ListRows(ctx context.Context) ([]map[string]string, error)
}

// Service owns the registration lifecycle on the managed tab. The bot's
// engine hooks route their side effects here.
type Service struct {
	rows rowStore
}

func NewService(client *sheets.Client, tab string) *Service {
	return &Service{rows: sheets.NewRowStore(client, tab, COL_SUBMISSION_ID)}
}

func registrationFromRow(row map[string]string) *Registration {
	reg := &Registration{
		SubmissionID:     row[COL_SUBMISSION_ID],
		EventID:          row[COL_EVENT_ID],
		Status:           row[COL_STATUS],
		PartnerName:      row[COL_PARTNER_NAME],
		PartnerAlertSent: sheets.ParseCellBool(row[COL_PARTNER_ALERT]),
		GingerFirstTry:   sheets.ParseCellBool(row[COL_GINGER_FIRST_TRY]),
		RegistrationDate: row[COL_REGISTRATION_DATE],
		StatusReason:     row[COL_STATUS_REASON],
		UpdatedAt:        row[COL_UPDATED_AT],
		Answers:          map[string]string{},
	}
	if userID, err := strconv.ParseInt(row[COL_TELEGRAM_USER_ID], 10, 64); err == nil {
		reg.TelegramUserID = userID
	}
	for column, value := range row {
		if !namedColumns[column] && value != "" {
			reg.Answers[column] = value
		}
	}
	return reg
}

// CreateForEvent opens a new registration in form_incomplete state and
// returns its submission id. Idempotent per user and event: an existing
// form_incomplete registration for the same event is reused, so a retried
// form step cannot orphan a half-created row. Ginger first-try starts TRUE
// and is cleared when the rules-keyword answer fails on the first attempt.
func (s *Service) CreateForEvent(ctx context.Context, eventID string, userID int64) (string, error) {
	existing, err := s.FindActiveByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.EventID == eventID && existing.Status == STATUS_FORM_INCOMPLETE {
		return existing.SubmissionID, nil
	}

	submissionID := uuid.New().String()
	now := time.Now().Format(time.RFC3339)

	row := map[string]string{
		COL_SUBMISSION_ID:     submissionID,
		COL_EVENT_ID:          eventID,
		COL_TELEGRAM_USER_ID:  strconv.FormatInt(userID, 10),
		COL_STATUS:            STATUS_FORM_INCOMPLETE,
		COL_GINGER_FIRST_TRY:  "TRUE",
		COL_REGISTRATION_DATE: now,
		COL_UPDATED_AT:        now,
	}
	if err := s.rows.AppendRow(ctx, row); err != nil {
		return "", &types.ExternalStoreError{Op: "create registration", Err: err}
	}
	return submissionID, nil
}

// Get returns the registration for a submission id, or a NotFoundError.
func (s *Service) Get(ctx context.Context, submissionID string) (*Registration, error) {
	row, err := s.rows.GetRow(ctx, submissionID)
	if err != nil {
		return nil, &types.ExternalStoreError{Op: "registration lookup", Err: err}
	}
	if row == nil {
		return nil, &types.NotFoundError{Kind: "registration", Key: submissionID}
	}
	return registrationFromRow(row), nil
}

// SetStatus moves the registration through its lifecycle. Unknown statuses
// and unknown submission ids are rejected before touching the row, so a
// typoed id can never materialize a phantom row.
func (s *Service) SetStatus(ctx context.Context, submissionID string, status string, reason string) error {
	if !IsValidStatus(status) {
		return &types.NotFoundError{Kind: "registration status", Key: status}
	}
	existing, err := s.rows.GetRow(ctx, submissionID)
	if err != nil {
		return &types.ExternalStoreError{Op: "registration lookup", Err: err}
	}
	if existing == nil {
		return &types.NotFoundError{Kind: "registration", Key: submissionID}
	}

	row := map[string]string{
		COL_STATUS:     status,
		COL_UPDATED_AT: time.Now().Format(time.RFC3339),
	}
	if reason != "" {
		row[COL_STATUS_REASON] = reason
	}
	if err := s.rows.PutRow(ctx, submissionID, row); err != nil {
		return &types.ExternalStoreError{Op: "set registration status", Err: err}
	}
	return nil
}

// SetAnswerField writes one answer column. The routing target for answers
// saved to "Registrations".
func (s *Service) SetAnswerField(ctx context.Context, submissionID string, column string, value string) error {
	if err := s.rows.UpdateCell(ctx, submissionID, column, value); err != nil {
		return &types.ExternalStoreError{Op: "set registration field", Err: err}
	}
	return nil
}

// SetAnswerFields writes several answer columns in one row update. The row
// must already exist; answers are only ever routed to registrations the
// event-selection hook created.
func (s *Service) SetAnswerFields(ctx context.Context, submissionID string, fields map[string]string) error {
	existing, err := s.rows.GetRow(ctx, submissionID)
	if err != nil {
		return &types.ExternalStoreError{Op: "registration lookup", Err: err}
	}
	if existing == nil {
		return &types.NotFoundError{Kind: "registration", Key: submissionID}
	}

	row := make(map[string]string, len(fields)+1)
	for column, value := range fields {
		row[column] = value
	}
	row[COL_UPDATED_AT] = time.Now().Format(time.RFC3339)
	if err := s.rows.PutRow(ctx, submissionID, row); err != nil {
		return &types.ExternalStoreError{Op: "set registration fields", Err: err}
	}
	return nil
}

// ClearGingerFirstTry records that the rules keyword was missed on the
// first attempt.
func (s *Service) ClearGingerFirstTry(ctx context.Context, submissionID string) error {
	if err := s.rows.UpdateCell(ctx, submissionID, COL_GINGER_FIRST_TRY, "FALSE"); err != nil {
		return &types.ExternalStoreError{Op: "clear ginger first try", Err: err}
	}
	return nil
}

// SetPartnerAlert marks that the partner reminder went out.
func (s *Service) SetPartnerAlert(ctx context.Context, submissionID string) error {
	if err := s.rows.UpdateCell(ctx, submissionID, COL_PARTNER_ALERT, "TRUE"); err != nil {
		return &types.ExternalStoreError{Op: "set partner alert", Err: err}
	}
	return nil
}

// SetPaymentReminder marks that the payment reminder went out.
func (s *Service) SetPaymentReminder(ctx context.Context, submissionID string) error {
	if err := s.rows.UpdateCell(ctx, submissionID, COL_PAYMENT_REMINDER, "TRUE"); err != nil {
		return &types.ExternalStoreError{Op: "set payment reminder", Err: err}
	}
	return nil
}

// ListByStatus returns registrations in the given status; with an empty
// status, all registrations.
func (s *Service) ListByStatus(ctx context.Context, status string) ([]*Registration, error) {
	rows, err := s.rows.ListRows(ctx)
	if err != nil {
		return nil, &types.ExternalStoreError{Op: "list registrations", Err: err}
	}

	registrations := []*Registration{}
	for _, row := range rows {
		if row[COL_SUBMISSION_ID] == "" {
			continue
		}
		if status != "" && row[COL_STATUS] != status {
			continue
		}
		registrations = append(registrations, registrationFromRow(row))
	}
	return registrations, nil
}

// FindActiveByUser returns the user's newest non-terminal registration, or
// nil when none exists.
func (s *Service) FindActiveByUser(ctx context.Context, userID int64) (*Registration, error) {
	rows, err := s.rows.ListRows(ctx)
	if err != nil {
		return nil, &types.ExternalStoreError{Op: "list registrations", Err: err}
	}

	key := strconv.FormatInt(userID, 10)
	var found *Registration
	for _, row := range rows {
		if row[COL_TELEGRAM_USER_ID] != key || IsTerminalStatus(row[COL_STATUS]) {
			continue
		}
		found = registrationFromRow(row)
	}
	return found, nil
}

// KnownSubmissionIDs returns the set of submission ids already present on
// the managed tab. The intake sync uses it to spot new form responses.
func (s *Service) KnownSubmissionIDs(ctx context.Context) (map[string]bool, error) {
	rows, err := s.rows.ListRows(ctx)
	if err != nil {
		return nil, &types.ExternalStoreError{Op: "list registrations", Err: err}
	}
	known := make(map[string]bool, len(rows))
	for _, row := range rows {
		if id := row[COL_SUBMISSION_ID]; id != "" {
			known[id] = true
		}
	}
	return known, nil
}

// Import copies an intake-form response onto the managed tab as a new
// form_incomplete registration. Fields are managed-tab column names, already
// mapped from the intake headers.
func (s *Service) Import(ctx context.Context, submissionID string, fields map[string]string) error {
	now := time.Now().Format(time.RFC3339)
	row := make(map[string]string, len(fields)+4)
	for column, value := range fields {
		row[column] = value
	}
	row[COL_SUBMISSION_ID] = submissionID
	if row[COL_STATUS] == "" {
		row[COL_STATUS] = STATUS_FORM_INCOMPLETE
	}
	row[COL_REGISTRATION_DATE] = now
	row[COL_UPDATED_AT] = now
	if err := s.rows.AppendRow(ctx, row); err != nil {
		return &types.ExternalStoreError{Op: "import registration", Err: err}
	}
	return nil
}

// MapIntakeRow translates an intake row into managed-tab columns using the
// configured header mapping. Intake headers without a mapping are dropped,
// empty intake cells keep the managed column untouched.
func MapIntakeRow(intakeRow map[string]string, mapping map[string]string) map[string]string {
	mapped := make(map[string]string, len(mapping))
	for intakeHeader, managedColumn := range mapping {
		if value := intakeRow[intakeHeader]; value != "" {
			mapped[managedColumn] = value
		}
	}
	return mapped
}

// ReminderRows lists registrations paired with reminder bookkeeping for the
// reminder sweep.
type ReminderRow struct {
	Registration        *Registration
	PaymentReminderSent bool
}

func (s *Service) ReminderRows(ctx context.Context, status string) ([]ReminderRow, error) {
	rows, err := s.rows.ListRows(ctx)
	if err != nil {
		return nil, &types.ExternalStoreError{Op: "list registrations", Err: err}
	}

	out := []ReminderRow{}
	for _, row := range rows {
		if row[COL_SUBMISSION_ID] == "" || row[COL_STATUS] != status {
			continue
		}
		out = append(out, ReminderRow{
			Registration:        registrationFromRow(row),
			PaymentReminderSent: sheets.ParseCellBool(row[COL_PAYMENT_REMINDER]),
		})
	}
	return out, nil
}

// DueForReminder reports whether a registration timestamp (RFC3339) lies at
// least pendingFor in the past. Missing or unparseable timestamps are never
// due, so rows edited by hand do not trigger reminder spam.
func DueForReminder(timestamp string, pendingFor time.Duration, now time.Time) bool {
	if timestamp == "" {
		return false
	}
	at, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return false
	}
	return now.Sub(at) >= pendingFor
}
