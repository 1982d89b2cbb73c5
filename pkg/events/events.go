package events

import (
	"context"
	"sort"
	"time"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/sheets"
)

// Events tab columns.
const (
	COL_ID               = "id"
	COL_NAME             = "name"
	COL_EVENT_TYPE       = "event_type"
	COL_START_DATE       = "start_date"
	COL_START_TIME       = "start_time"
	COL_LOCATION         = "location"
	COL_STATUS           = "status"
	COL_PRICE_SINGLE     = "price_single"
	COL_PRICE_COUPLE     = "price_couple"
	COL_MAX_PARTICIPANTS = "max_participants"
	COL_MAIN_GROUP_ID    = "main_group_id"
)

const (
	EVENT_STATUS_ACTIVE = "active"

	EVENT_TYPE_PLAY   = "play"
	EVENT_TYPE_CUDDLE = "cuddle"
)

const startDateLayout = "02/01/2006"

// Event is one row of the Events tab.
type Event struct {
	ID              string
	Name            string
	EventType       string
	StartDate       time.Time
	StartTime       string
	Location        string
	Status          string
	PriceSingle     string
	PriceCouple     string
	MaxParticipants string
	MainGroupID     string
}

// Service reads the Events tab. EventType serves as the event-type fact for
// skip evaluation (e.g. the STI question is dropped for cuddle events).
type Service struct {
	rows *sheets.RowStore
}

func NewService(client *sheets.Client, tab string) *Service {
	return &Service{rows: sheets.NewRowStore(client, tab, COL_ID)}
}

func eventFromRow(row map[string]string) *Event {
	event := &Event{
		ID:              row[COL_ID],
		Name:            row[COL_NAME],
		EventType:       row[COL_EVENT_TYPE],
		StartTime:       row[COL_START_TIME],
		Location:        row[COL_LOCATION],
		Status:          row[COL_STATUS],
		PriceSingle:     row[COL_PRICE_SINGLE],
		PriceCouple:     row[COL_PRICE_COUPLE],
		MaxParticipants: row[COL_MAX_PARTICIPANTS],
		MainGroupID:     row[COL_MAIN_GROUP_ID],
	}
	if startDate, err := time.Parse(startDateLayout, row[COL_START_DATE]); err == nil {
		event.StartDate = startDate
	}
	return event
}

// GetByID returns the event, or a NotFoundError.
func (s *Service) GetByID(ctx context.Context, eventID string) (*Event, error) {
	row, err := s.rows.GetRow(ctx, eventID)
	if err != nil {
		return nil, &types.ExternalStoreError{Op: "event lookup", Err: err}
	}
	if row == nil {
		return nil, &types.NotFoundError{Kind: "event", Key: eventID}
	}
	return eventFromRow(row), nil
}

// EventType returns the type of the event, the fact provider contract.
func (s *Service) EventType(ctx context.Context, eventID string) (string, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return "", err
	}
	return event.EventType, nil
}

// UpcomingEvents lists active events that have not started yet, soonest
// first. Feeds the dynamic options of the event-selection question.
func (s *Service) UpcomingEvents(ctx context.Context) ([]*Event, error) {
	rows, err := s.rows.ListRows(ctx)
	if err != nil {
		return nil, &types.ExternalStoreError{Op: "list events", Err: err}
	}

	today := time.Now().Truncate(24 * time.Hour)
	upcoming := []*Event{}
	for _, row := range rows {
		if row[COL_ID] == "" || row[COL_STATUS] != EVENT_STATUS_ACTIVE {
			continue
		}
		event := eventFromRow(row)
		if !event.StartDate.IsZero() && event.StartDate.Before(today) {
			continue
		}
		upcoming = append(upcoming, event)
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartDate.Before(upcoming[j].StartDate)
	})
	return upcoming, nil
}
