package store

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/quillworks/controlsheet/pkg/errors"
	"github.com/quillworks/controlsheet/pkg/tables"
)

// defaultSheetsBaseURL is the spreadsheet REST API root.
const defaultSheetsBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// Sheets talks to the spreadsheet REST API directly with a bearer token.
// It is the fallback path when no gateway endpoint is configured.
type Sheets struct {
	spreadsheetID string
	token         string
	baseURL       string
	http          *http.Client
}

// NewSheets validates credentials and returns a direct REST client.
func NewSheets(spreadsheetID, token string, timeout time.Duration) (*Sheets, error) {
	if spreadsheetID == "" {
		return nil, errors.NewConfigError("CONTROL_SHEET_ID", "not set", nil)
	}
	if token == "" {
		return nil, errors.NewConfigError("SHEETS_TOKEN", "not set", nil)
	}
	return &Sheets{
		spreadsheetID: spreadsheetID,
		token:         token,
		baseURL:       defaultSheetsBaseURL,
		http:          &http.Client{Timeout: timeout},
	}, nil
}

// SetBaseURL overrides the API root. Intended for tests against a local server.
func (s *Sheets) SetBaseURL(base string) {
	s.baseURL = base
}

// Get implements Client.
func (s *Sheets) Get(ctx context.Context, table tables.Table) (*tables.Snapshot, error) {
	var payload struct {
		Values [][]any `json:"values"`
	}
	path := s.valuesURL(table, table.String())
	if err := s.call(ctx, http.MethodGet, "get", table, path, nil, &payload); err != nil {
		return nil, err
	}

	snap := &tables.Snapshot{Table: table}
	if len(payload.Values) == 0 {
		return snap, nil
	}

	for _, h := range payload.Values[0] {
		snap.Headers = append(snap.Headers, cellString(h))
	}
	matrix := make([][]string, 0, len(payload.Values)-1)
	for _, raw := range payload.Values[1:] {
		cells := make([]string, len(raw))
		for i, v := range raw {
			cells[i] = cellString(v)
		}
		matrix = append(matrix, cells)
	}
	snap.Rows = tables.RowsFromMatrix(snap.Headers, matrix)
	return snap, nil
}

// Append implements Client.
func (s *Sheets) Append(ctx context.Context, table tables.Table, values [][]string) error {
	path := s.valuesURL(table, table.String()+"!A1") + ":append?valueInputOption=RAW"
	body := map[string]any{"values": values}
	return s.call(ctx, http.MethodPost, "append", table, path, body, nil)
}

// UpdateRange implements Client.
func (s *Sheets) UpdateRange(ctx context.Context, table tables.Table, a1 string, values [][]string) error {
	path := s.valuesURL(table, table.String()+"!"+a1) + "?valueInputOption=RAW"
	body := map[string]any{"values": values}
	return s.call(ctx, http.MethodPut, "updateRange", table, path, body, nil)
}

// UpdateCell implements Client.
func (s *Sheets) UpdateCell(ctx context.Context, table tables.Table, a1 string, value string) error {
	path := s.valuesURL(table, table.String()+"!"+a1) + "?valueInputOption=RAW"
	body := map[string]any{"values": [][]string{{value}}}
	return s.call(ctx, http.MethodPut, "updateCell", table, path, body, nil)
}

// EnsureTable implements Client. The add-sheet request fails with a 400 when
// the sheet already exists; that case falls through to the header check, and
// a mismatched header row is overwritten.
func (s *Sheets) EnsureTable(ctx context.Context, table tables.Table, headers []string) error {
	body := map[string]any{
		"requests": []any{
			map[string]any{
				"addSheet": map[string]any{
					"properties": map[string]any{"title": table.String()},
				},
			},
		},
	}
	err := s.call(ctx, http.MethodPost, "ensureTable", table,
		s.baseURL+"/"+url.PathEscape(s.spreadsheetID)+":batchUpdate", body, nil)
	if err != nil {
		var storeErr *errors.StoreError
		if !stderrors.As(err, &storeErr) || storeErr.StatusCode != http.StatusBadRequest {
			return err
		}
		// Sheet already exists; verify its header row.
	}

	var payload struct {
		Values [][]any `json:"values"`
	}
	headerPath := s.valuesURL(table, table.String()+"!1:1")
	if err := s.call(ctx, http.MethodGet, "ensureTable", table, headerPath, nil, &payload); err != nil {
		return err
	}

	var got []string
	if len(payload.Values) > 0 {
		for _, v := range payload.Values[0] {
			got = append(got, cellString(v))
		}
	}
	if headersMatch(got, headers) {
		return nil
	}
	return s.UpdateRange(ctx, table, "A1", [][]string{headers})
}

// valuesURL builds a values endpoint URL for the given range reference.
func (s *Sheets) valuesURL(_ tables.Table, ref string) string {
	return s.baseURL + "/" + url.PathEscape(s.spreadsheetID) + "/values/" + url.PathEscape(ref)
}

// call performs one authenticated API request and decodes the response into
// out when non-nil.
func (s *Sheets) call(ctx context.Context, method, op string, table tables.Table, rawURL string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.WrapStore(op, table.String(), err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return errors.WrapStore(op, table.String(), err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return errors.WrapStore(op, table.String(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := resp.Status
		if b, readErr := io.ReadAll(io.LimitReader(resp.Body, 512)); readErr == nil && len(b) > 0 {
			msg = string(b)
		}
		return errors.NewStoreError(op, table.String(), resp.StatusCode, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.WrapParse("json", table.String(), err)
		}
	}
	return nil
}
