package sheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client wraps the Google Sheets API for one spreadsheet. All writes use RAW
// value input so cell contents round-trip unchanged.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	timeout       time.Duration
}

func NewClient(ctx context.Context, credentialsFile string, spreadsheetID string, timeout time.Duration) (*Client, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		service:       service,
		spreadsheetID: spreadsheetID,
		timeout:       timeout,
	}, nil
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// ReadRange returns the values of an A1 range, e.g. "Users!A1:Z".
func (c *Client) ReadRange(ctx context.Context, a1Range string) ([][]interface{}, error) {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, a1Range).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading range %s: %w", a1Range, err)
	}
	return resp.Values, nil
}

// UpdateRange overwrites the cells of an A1 range.
func (c *Client) UpdateRange(ctx context.Context, a1Range string, values [][]interface{}) error {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	_, err := c.service.Spreadsheets.Values.Update(c.spreadsheetID, a1Range, &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("updating range %s: %w", a1Range, err)
	}
	return nil
}

// UpdateCell writes a single value.
func (c *Client) UpdateCell(ctx context.Context, a1Cell string, value interface{}) error {
	return c.UpdateRange(ctx, a1Cell, [][]interface{}{{value}})
}

// AppendRow appends a row after the last non-empty row of the tab.
func (c *Client) AppendRow(ctx context.Context, tab string, row []interface{}) error {
	ctx, cancel := c.callContext(ctx)
	defer cancel()

	_, err := c.service.Spreadsheets.Values.Append(c.spreadsheetID, tab+"!A1", &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("appending row to %s: %w", tab, err)
	}
	return nil
}
