package registrations

import (
	"context"
	"testing"
	"time"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

// fakeRows backs the service with an in-memory tab.
type fakeRows struct {
	rows    []map[string]string
	appends int
	puts    int
}

func (f *fakeRows) find(key string) map[string]string {
	for _, row := range f.rows {
		if row[COL_SUBMISSION_ID] == key {
			return row
		}
	}
	return nil
}

func (f *fakeRows) GetRow(ctx context.Context, key string) (map[string]string, error) {
	return f.find(key), nil
}

func (f *fakeRows) PutRow(ctx context.Context, key string, row map[string]string) error {
	f.puts++
	existing := f.find(key)
	if existing == nil {
		appended := map[string]string{COL_SUBMISSION_ID: key}
		for column, value := range row {
			appended[column] = value
		}
		f.rows = append(f.rows, appended)
		f.appends++
		return nil
	}
	for column, value := range row {
		existing[column] = value
	}
	return nil
}

func (f *fakeRows) UpdateCell(ctx context.Context, key string, column string, value string) error {
	existing := f.find(key)
	if existing == nil {
		return &types.NotFoundError{Kind: "registration", Key: key}
	}
	existing[column] = value
	return nil
}

func (f *fakeRows) AppendRow(ctx context.Context, row map[string]string) error {
	copied := make(map[string]string, len(row))
	for column, value := range row {
		copied[column] = value
	}
	f.rows = append(f.rows, copied)
	f.appends++
	return nil
}

func (f *fakeRows) ListRows(ctx context.Context) ([]map[string]string, error) {
	return f.rows, nil
}

func TestStatusLifecycle(t *testing.T) {
	t.Run("all lifecycle statuses are valid", func(t *testing.T) {
		for _, status := range knownStatuses {
			if !IsValidStatus(status) {
				t.Errorf("unexpected invalid status: %s", status)
			}
		}
	})

	t.Run("unknown statuses are rejected", func(t *testing.T) {
		for _, status := range []string{"", "done", "FORM_INCOMPLETE", "approved "} {
			if IsValidStatus(status) {
				t.Errorf("unexpected valid status: %q", status)
			}
		}
	})

	t.Run("terminal statuses", func(t *testing.T) {
		terminal := map[string]bool{
			STATUS_REJECTED:     true,
			STATUS_CANCELLED:    true,
			STATUS_UNINTERESTED: true,
			STATUS_GROUP_OPENED: true,
		}
		for _, status := range knownStatuses {
			if got := IsTerminalStatus(status); got != terminal[status] {
				t.Errorf("unexpected terminal result for %s: %t", status, got)
			}
		}
	})
}

func TestRegistrationFromRow(t *testing.T) {
	row := map[string]string{
		COL_SUBMISSION_ID:    "sub-1",
		COL_EVENT_ID:         "event-1",
		COL_TELEGRAM_USER_ID: "123456",
		COL_STATUS:           STATUS_WAITING_FOR_REVIEW,
		COL_PARTNER_ALERT:    "TRUE",
		COL_GINGER_FIRST_TRY: "FALSE",
		COL_UPDATED_AT:       "2026-08-01T10:00:00Z",
		"food_restrictions":  "vegan",
		"last_sti_test":      "01/02/2026",
	}

	reg := registrationFromRow(row)

	if reg.SubmissionID != "sub-1" || reg.EventID != "event-1" {
		t.Errorf("unexpected identity fields: %+v", reg)
	}
	if reg.TelegramUserID != 123456 {
		t.Errorf("unexpected user id: %d", reg.TelegramUserID)
	}
	if !reg.PartnerAlertSent || reg.GingerFirstTry {
		t.Errorf("unexpected flags: alert=%t firstTry=%t", reg.PartnerAlertSent, reg.GingerFirstTry)
	}
	if reg.UpdatedAt != "2026-08-01T10:00:00Z" {
		t.Errorf("unexpected updated_at: %q", reg.UpdatedAt)
	}
	if len(reg.Answers) != 2 || reg.Answers["food_restrictions"] != "vegan" {
		t.Errorf("unexpected answer columns: %v", reg.Answers)
	}
	if _, ok := reg.Answers[COL_STATUS]; ok {
		t.Error("named column leaked into answers")
	}
}

func TestSetStatusUnknownSubmissionID(t *testing.T) {
	ctx := context.Background()
	rows := &fakeRows{}
	service := &Service{rows: rows}

	err := service.SetStatus(ctx, "no-such-id", STATUS_APPROVED, "")
	if !types.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if rows.appends != 0 || len(rows.rows) != 0 {
		t.Errorf("unknown submission id must not create a row, got %d rows", len(rows.rows))
	}
}

func TestSetStatusUpdatesExistingRow(t *testing.T) {
	ctx := context.Background()
	rows := &fakeRows{rows: []map[string]string{{
		COL_SUBMISSION_ID: "sub-1",
		COL_STATUS:        STATUS_WAITING_FOR_REVIEW,
	}}}
	service := &Service{rows: rows}

	if err := service.SetStatus(ctx, "sub-1", STATUS_APPROVED, "looks good"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows.appends != 0 {
		t.Error("status update must not append a new row")
	}
	updated := rows.find("sub-1")
	if updated[COL_STATUS] != STATUS_APPROVED || updated[COL_STATUS_REASON] != "looks good" {
		t.Errorf("unexpected row after update: %v", updated)
	}
}

func TestSetAnswerFieldsUnknownSubmissionID(t *testing.T) {
	ctx := context.Background()
	rows := &fakeRows{}
	service := &Service{rows: rows}

	err := service.SetAnswerFields(ctx, "no-such-id", map[string]string{"food_restrictions": "vegan"})
	if !types.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(rows.rows) != 0 {
		t.Error("unknown submission id must not create a row")
	}
}

func TestCreateForEventReusesOpenRegistration(t *testing.T) {
	ctx := context.Background()
	rows := &fakeRows{}
	service := &Service{rows: rows}

	first, err := service.CreateForEvent(ctx, "event-1", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.CreateForEvent(ctx, "event-1", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first {
		t.Errorf("expected the open registration to be reused, got %s and %s", first, second)
	}
	if rows.appends != 1 {
		t.Errorf("expected exactly one appended row, got %d", rows.appends)
	}

	// a different event still opens a fresh registration
	third, err := service.CreateForEvent(ctx, "event-2", 43)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third == first {
		t.Error("different event must not reuse the registration")
	}
}

func TestMapIntakeRow(t *testing.T) {
	mapping := map[string]string{
		"Submission ID": COL_SUBMISSION_ID,
		"שם מלא":        "full_name",
		"שם הפרטנר":     COL_PARTNER_NAME,
	}
	intake := map[string]string{
		"Submission ID": "sub-9",
		"שם מלא":        "דנה לוי",
		"שם הפרטנר":     "",
		"Timestamp":     "ignored",
	}

	mapped := MapIntakeRow(intake, mapping)
	if mapped[COL_SUBMISSION_ID] != "sub-9" || mapped["full_name"] != "דנה לוי" {
		t.Errorf("unexpected mapped row: %v", mapped)
	}
	if _, ok := mapped[COL_PARTNER_NAME]; ok {
		t.Error("empty intake cell must not be mapped")
	}
	if _, ok := mapped["Timestamp"]; ok {
		t.Error("unmapped intake header leaked through")
	}
}

func TestImportNewSubmission(t *testing.T) {
	ctx := context.Background()
	rows := &fakeRows{rows: []map[string]string{{
		COL_SUBMISSION_ID: "sub-1",
		COL_STATUS:        STATUS_APPROVED,
	}}}
	service := &Service{rows: rows}

	known, err := service.KnownSubmissionIDs(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !known["sub-1"] || len(known) != 1 {
		t.Errorf("unexpected known ids: %v", known)
	}

	if err := service.Import(ctx, "sub-2", map[string]string{"full_name": "Dana"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	imported := rows.find("sub-2")
	if imported == nil {
		t.Fatal("imported submission missing from the tab")
	}
	if imported[COL_STATUS] != STATUS_FORM_INCOMPLETE {
		t.Errorf("unexpected imported status: %q", imported[COL_STATUS])
	}
	if imported["full_name"] != "Dana" || imported[COL_REGISTRATION_DATE] == "" {
		t.Errorf("unexpected imported row: %v", imported)
	}
}

func TestDueForReminder(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		timestamp  string
		pendingFor time.Duration
		want       bool
	}{
		{"older than threshold", now.Add(-25 * time.Hour).Format(time.RFC3339), 24 * time.Hour, true},
		{"exactly at threshold", now.Add(-24 * time.Hour).Format(time.RFC3339), 24 * time.Hour, true},
		{"younger than threshold", now.Add(-23 * time.Hour).Format(time.RFC3339), 24 * time.Hour, false},
		{"empty timestamp", "", 24 * time.Hour, false},
		{"unparseable timestamp", "yesterday", 24 * time.Hour, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DueForReminder(c.timestamp, c.pendingFor, now); got != c.want {
				t.Errorf("unexpected result: got %t, want %t", got, c.want)
			}
		})
	}
}
