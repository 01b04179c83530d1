package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/quillworks/controlsheet/pkg/errors"
	"github.com/quillworks/controlsheet/pkg/tables"
)

// Gateway talks to an Apps-Script style web endpoint fronting the control
// sheet. Reads are GET requests with op/sheet query parameters; writes are
// POSTed JSON payloads. The shared token authenticates every call and is
// never logged.
type Gateway struct {
	endpoint string
	token    string
	http     *http.Client
}

// NewGateway validates the endpoint and token and returns a gateway client.
func NewGateway(endpoint, token string, timeout time.Duration) (*Gateway, error) {
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return nil, errors.NewConfigError("APPS_URL", "must be an http(s) URL", nil)
	}
	if token == "" {
		return nil, errors.NewConfigError("APPS_TOKEN", "not set", nil)
	}
	return &Gateway{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: timeout},
	}, nil
}

// Get implements Client.
func (g *Gateway) Get(ctx context.Context, table tables.Table) (*tables.Snapshot, error) {
	q := url.Values{}
	q.Set("op", "get")
	q.Set("sheet", table.String())
	q.Set("token", g.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.WrapStore("get", table.String(), err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, errors.WrapStore("get", table.String(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewStoreError("get", table.String(), resp.StatusCode, resp.Status)
	}

	var payload struct {
		Headers []any            `json:"headers"`
		Rows    []map[string]any `json:"rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.WrapParse("json", table.String(), err)
	}

	headers := make([]string, len(payload.Headers))
	for i, h := range payload.Headers {
		headers[i] = cellString(h)
	}
	rows := make([]tables.Row, len(payload.Rows))
	for i, raw := range payload.Rows {
		r := make(tables.Row, len(raw))
		for k, v := range raw {
			r[k] = cellString(v)
		}
		rows[i] = r
	}

	return &tables.Snapshot{Table: table, Headers: headers, Rows: rows}, nil
}

// Append implements Client.
func (g *Gateway) Append(ctx context.Context, table tables.Table, values [][]string) error {
	return g.post(ctx, "appendRows", table, map[string]any{"rows": values})
}

// UpdateRange implements Client.
func (g *Gateway) UpdateRange(ctx context.Context, table tables.Table, a1 string, values [][]string) error {
	return g.post(ctx, "updateRange", table, map[string]any{"a1": a1, "values": values})
}

// UpdateCell implements Client.
func (g *Gateway) UpdateCell(ctx context.Context, table tables.Table, a1 string, value string) error {
	return g.post(ctx, "updateCell", table, map[string]any{"a1": a1, "value": value})
}

// EnsureTable implements Client.
func (g *Gateway) EnsureTable(ctx context.Context, table tables.Table, headers []string) error {
	return g.post(ctx, "ensureSheet", table, map[string]any{"headers": headers})
}

// post sends one write operation to the gateway.
func (g *Gateway) post(ctx context.Context, op string, table tables.Table, fields map[string]any) error {
	payload := map[string]any{
		"op":    op,
		"sheet": table.String(),
		"token": g.token,
	}
	for k, v := range fields {
		payload[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.WrapStore(op, table.String(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WrapStore(op, table.String(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.http.Do(req)
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
	return nil
}

// cellString flattens a decoded JSON cell value into the string form the
// engine works on. Whole numbers drop their trailing ".0" so serial dates
// and counts survive the round-trip unchanged.
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
