// Package config loads pipeline configuration from environment
// variables and .env files.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/quillworks/controlsheet/pkg/constants"
	"github.com/quillworks/controlsheet/pkg/errors"
	"github.com/quillworks/controlsheet/pkg/store"
	"github.com/quillworks/controlsheet/pkg/tables"
)

// Environment variable names recognized by Load.
const (
	EnvGatewayURL    = "APPS_URL"
	EnvGatewayToken  = "APPS_TOKEN"
	EnvSpreadsheetID = "CONTROL_SHEET_ID"
	EnvSheetsToken   = "SHEETS_TOKEN"
	EnvFixSheet      = "FIX_SHEET"
	EnvReviewSheet   = "REVIEW_FROM_SHEET"
	EnvSourceURL     = "SOURCE_TEXT_URL"
	EnvSourcePath    = "SOURCE_TEXT_PATH"
	EnvStoreTimeout  = "STORE_TIMEOUT_SECONDS"
)

// Config carries everything the pipeline needs to reach the control
// sheet and locate its quote source.
type Config struct {
	// GatewayURL is the Apps Script web app endpoint. When set, it is
	// the preferred access path.
	GatewayURL string

	// GatewayToken authenticates gateway requests. Never logged.
	GatewayToken string

	// SpreadsheetID selects the spreadsheet for direct Sheets API
	// access when no gateway is configured.
	SpreadsheetID string

	// SheetsToken is the OAuth bearer token for direct access.
	SheetsToken string

	// FixSheet is the table the fix operation reconciles.
	FixSheet tables.Table

	// ReviewSheet is the table the review operation scans.
	ReviewSheet tables.Table

	// SourceTextURL, when set, takes precedence over SourceTextPath
	// as the quote mining source.
	SourceTextURL string

	// SourceTextPath is the local fallback source file.
	SourceTextPath string

	// Timeout bounds every store round trip.
	Timeout time.Duration
}

// Load reads configuration from viper and the process environment.
// Callers are expected to have loaded any .env file beforehand.
func Load() *Config {
	cfg := &Config{
		GatewayURL:     getString(EnvGatewayURL),
		GatewayToken:   getString(EnvGatewayToken),
		SpreadsheetID:  getString(EnvSpreadsheetID),
		SheetsToken:    getString(EnvSheetsToken),
		FixSheet:       tables.Table(getDefault(EnvFixSheet, string(tables.Calendar))),
		ReviewSheet:    tables.Table(getDefault(EnvReviewSheet, string(tables.Experiments))),
		SourceTextURL:  getString(EnvSourceURL),
		SourceTextPath: getDefault(EnvSourcePath, "sources/book.txt"),
		Timeout:        constants.DefaultStoreTimeout,
	}
	if raw := getString(EnvStoreTimeout); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	return cfg
}

// Validate checks that at least one store access path is fully
// configured. It fails fast so a misconfigured run never reaches the
// sheet.
func (c *Config) Validate() error {
	if c.GatewayURL == "" && c.SpreadsheetID == "" {
		return &errors.ConfigError{
			Setting: EnvGatewayURL,
			Message: "no store configured: set " + EnvGatewayURL + " or " + EnvSpreadsheetID,
		}
	}
	if c.GatewayURL != "" {
		if !strings.HasPrefix(c.GatewayURL, "http://") && !strings.HasPrefix(c.GatewayURL, "https://") {
			return &errors.ConfigError{
				Setting: EnvGatewayURL,
				Message: "must be an http or https URL",
			}
		}
		if c.GatewayToken == "" {
			return &errors.ConfigError{
				Setting: EnvGatewayToken,
				Message: "required when " + EnvGatewayURL + " is set",
			}
		}
	}
	if c.GatewayURL == "" && c.SpreadsheetID != "" && c.SheetsToken == "" {
		return &errors.ConfigError{
			Setting: EnvSheetsToken,
			Message: "required when " + EnvSpreadsheetID + " is set",
		}
	}
	if c.FixSheet == "" {
		return &errors.ConfigError{Setting: EnvFixSheet, Message: "must not be empty"}
	}
	if c.Timeout <= 0 {
		return &errors.ConfigError{Setting: EnvStoreTimeout, Message: "must be positive"}
	}
	return nil
}

// StoreConfig maps the loaded settings onto the store layer's
// configuration.
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		GatewayURL:    c.GatewayURL,
		GatewayToken:  c.GatewayToken,
		SpreadsheetID: c.SpreadsheetID,
		AccessToken:   c.SheetsToken,
		Timeout:       c.Timeout,
	}
}

// getString reads key from viper, falling back to the raw
// environment so direct exports work without viper bindings.
func getString(key string) string {
	if v := strings.TrimSpace(viper.GetString(key)); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv(key))
}

func getDefault(key, def string) string {
	if v := getString(key); v != "" {
		return v
	}
	return def
}
