package sheets

import (
	"context"
	"fmt"
	"sync"
)

// RowStore is the keyed row store over one sheet tab: rows are addressed by
// the value of a key column, cells by header name. Headers are cached per
// store instance and refreshed when a lookup misses.
//
// The sheet offers no transactions; concurrent writers follow last write
// wins, matching the persistence contract of the form flow.
type RowStore struct {
	client    *Client
	tab       string
	keyColumn string

	mu      sync.Mutex
	headers []string
	index   map[string]int
}

func NewRowStore(client *Client, tab string, keyColumn string) *RowStore {
	return &RowStore{
		client:    client,
		tab:       tab,
		keyColumn: keyColumn,
	}
}

func (s *RowStore) Tab() string {
	return s.tab
}

// Headers returns the first row of the tab, loading it on first use.
func (s *RowStore) Headers(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headersLocked(ctx, false)
}

func (s *RowStore) headersLocked(ctx context.Context, refresh bool) ([]string, error) {
	if s.headers != nil && !refresh {
		return s.headers, nil
	}

	rows, err := s.client.ReadRange(ctx, s.tab+"!1:1")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("tab %s has no header row", s.tab)
	}

	headers := make([]string, len(rows[0]))
	index := make(map[string]int, len(rows[0]))
	for i, cell := range rows[0] {
		name := cellString(cell)
		headers[i] = name
		index[name] = i
	}
	s.headers = headers
	s.index = index
	return headers, nil
}

// columnIndex resolves a header name, refreshing the cached header row once
// when the name is unknown (a new column may have been added to the sheet).
func (s *RowStore) columnIndex(ctx context.Context, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.headersLocked(ctx, false); err != nil {
		return 0, err
	}
	if i, ok := s.index[name]; ok {
		return i, nil
	}
	if _, err := s.headersLocked(ctx, true); err != nil {
		return 0, err
	}
	if i, ok := s.index[name]; ok {
		return i, nil
	}
	return 0, fmt.Errorf("tab %s has no column %q", s.tab, name)
}

// findRowNumber returns the 1-based sheet row whose key column equals key,
// or 0 when no row matches.
func (s *RowStore) findRowNumber(ctx context.Context, key string) (int, error) {
	keyCol, err := s.columnIndex(ctx, s.keyColumn)
	if err != nil {
		return 0, err
	}

	column := fmt.Sprintf("%s!%s:%s", s.tab, columnLetter(keyCol), columnLetter(keyCol))
	values, err := s.client.ReadRange(ctx, column)
	if err != nil {
		return 0, err
	}
	for i := 1; i < len(values); i++ {
		if len(values[i]) > 0 && cellString(values[i][0]) == key {
			return i + 1, nil
		}
	}
	return 0, nil
}

// GetRow returns the row for key as a header-name map, or nil when absent.
func (s *RowStore) GetRow(ctx context.Context, key string) (map[string]string, error) {
	headers, err := s.Headers(ctx)
	if err != nil {
		return nil, err
	}

	rowNumber, err := s.findRowNumber(ctx, key)
	if err != nil {
		return nil, err
	}
	if rowNumber == 0 {
		return nil, nil
	}

	values, err := s.client.ReadRange(ctx, rowRange(s.tab, rowNumber, len(headers)))
	if err != nil {
		return nil, err
	}

	row := make(map[string]string, len(headers))
	for i, name := range headers {
		if len(values) > 0 && i < len(values[0]) {
			row[name] = cellString(values[0][i])
		} else {
			row[name] = ""
		}
	}
	return row, nil
}

// PutRow writes the given cells for key: the matching row is overwritten
// column by column, or a new row is appended when the key is absent. Columns
// not present in row keep their current value.
func (s *RowStore) PutRow(ctx context.Context, key string, row map[string]string) error {
	headers, err := s.Headers(ctx)
	if err != nil {
		return err
	}

	rowNumber, err := s.findRowNumber(ctx, key)
	if err != nil {
		return err
	}

	if rowNumber == 0 {
		appended := make([]interface{}, len(headers))
		for i, name := range headers {
			if name == s.keyColumn {
				appended[i] = key
				continue
			}
			appended[i] = row[name]
		}
		return s.client.AppendRow(ctx, s.tab, appended)
	}

	current, err := s.client.ReadRange(ctx, rowRange(s.tab, rowNumber, len(headers)))
	if err != nil {
		return err
	}
	updated := make([]interface{}, len(headers))
	for i, name := range headers {
		if len(current) > 0 && i < len(current[0]) {
			updated[i] = current[0][i]
		} else {
			updated[i] = ""
		}
		if value, ok := row[name]; ok {
			updated[i] = value
		}
	}
	return s.client.UpdateRange(ctx, rowRange(s.tab, rowNumber, len(headers)), [][]interface{}{updated})
}

// UpdateCell writes one cell of the row matching key.
func (s *RowStore) UpdateCell(ctx context.Context, key string, column string, value string) error {
	rowNumber, err := s.findRowNumber(ctx, key)
	if err != nil {
		return err
	}
	if rowNumber == 0 {
		return fmt.Errorf("tab %s has no row with %s=%s", s.tab, s.keyColumn, key)
	}
	columnIdx, err := s.columnIndex(ctx, column)
	if err != nil {
		return err
	}
	return s.client.UpdateCell(ctx, cellRange(s.tab, rowNumber, columnIdx), value)
}

// AppendRow adds a new row from a header-name map.
func (s *RowStore) AppendRow(ctx context.Context, row map[string]string) error {
	headers, err := s.Headers(ctx)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(headers))
	for i, name := range headers {
		values[i] = row[name]
	}
	return s.client.AppendRow(ctx, s.tab, values)
}

// ListRows returns all data rows as header-name maps.
func (s *RowStore) ListRows(ctx context.Context) ([]map[string]string, error) {
	headers, err := s.Headers(ctx)
	if err != nil {
		return nil, err
	}

	values, err := s.client.ReadRange(ctx, s.tab+"!A2:"+columnLetter(len(headers)-1))
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(values))
	for _, rawRow := range values {
		row := make(map[string]string, len(headers))
		for i, name := range headers {
			if i < len(rawRow) {
				row[name] = cellString(rawRow[i])
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DeleteRow blanks the row matching key. The sheet keeps the empty row; key
// lookups no longer match it.
func (s *RowStore) DeleteRow(ctx context.Context, key string) error {
	headers, err := s.Headers(ctx)
	if err != nil {
		return err
	}
	rowNumber, err := s.findRowNumber(ctx, key)
	if err != nil {
		return err
	}
	if rowNumber == 0 {
		return nil
	}
	blank := make([]interface{}, len(headers))
	for i := range blank {
		blank[i] = ""
	}
	return s.client.UpdateRange(ctx, rowRange(s.tab, rowNumber, len(headers)), [][]interface{}{blank})
}
