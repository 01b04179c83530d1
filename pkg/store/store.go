// Package store provides access to the remote tabular store holding the
// control sheet. Two access paths exist behind one interface: an Apps-Script
// style gateway endpoint and the spreadsheet REST API directly. Configuration
// selects the path; the reconciliation engine never knows which one it got.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/quillworks/controlsheet/pkg/constants"
	"github.com/quillworks/controlsheet/pkg/errors"
	"github.com/quillworks/controlsheet/pkg/tables"
)

// Client is the collaborator contract for the remote tabular store. All calls
// are synchronous and carry a per-call timeout via the client's HTTP stack;
// failures are surfaced as StoreError and never retried here.
type Client interface {
	// Get fetches a full table snapshot: header row plus all data rows.
	Get(ctx context.Context, table tables.Table) (*tables.Snapshot, error)

	// Append adds rows after the current last data row.
	Append(ctx context.Context, table tables.Table, values [][]string) error

	// UpdateRange overwrites the given A1 range with positional values.
	UpdateRange(ctx context.Context, table tables.Table, a1 string, values [][]string) error

	// UpdateCell overwrites a single cell.
	UpdateCell(ctx context.Context, table tables.Table, a1 string, value string) error

	// EnsureTable creates the table with a header row if absent. When the
	// table exists with mismatched headers, the header row is overwritten.
	EnsureTable(ctx context.Context, table tables.Table, headers []string) error
}

// Config selects and parameterizes a store access path.
type Config struct {
	// GatewayURL and GatewayToken select the gateway path.
	GatewayURL   string
	GatewayToken string

	// SpreadsheetID and AccessToken select the direct REST path.
	SpreadsheetID string
	AccessToken   string

	// Timeout applies to every store call. Zero means the default.
	Timeout time.Duration
}

// New builds the store client selected by configuration, preferring the
// gateway path when both are configured. Returns a ConfigError before any
// network access when neither path is usable.
func New(cfg Config) (Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultStoreTimeout
	}

	if cfg.GatewayURL != "" {
		return NewGateway(cfg.GatewayURL, cfg.GatewayToken, timeout)
	}
	if cfg.SpreadsheetID != "" {
		return NewSheets(cfg.SpreadsheetID, cfg.AccessToken, timeout)
	}

	return nil, errors.NewConfigError("store",
		"no store access configured: set APPS_URL/APPS_TOKEN or CONTROL_SHEET_ID/SHEETS_TOKEN", nil)
}

// headersMatch compares header rows case-insensitively, ignoring surrounding
// whitespace, the way the original sheet bootstrap did.
func headersMatch(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !strings.EqualFold(strings.TrimSpace(got[i]), strings.TrimSpace(want[i])) {
			return false
		}
	}
	return true
}
