package report

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/quillworks/controlsheet/pkg/constants"
	"github.com/quillworks/controlsheet/pkg/tables"
)

// Severity grades a finding.
type Severity string

// Finding severities.
const (
	SeverityInfo Severity = "info"
	SeverityWarn Severity = "warn"
)

// Finding is one structured record-quality issue. Findings are pure output:
// the scanner never mutates the store.
type Finding struct {
	TS        int64    `json:"ts"`
	Tag       string   `json:"tag"`
	RowNum    int      `json:"row"`
	Field     string   `json:"field"`
	Value     string   `json:"value"`
	Problem   string   `json:"problem"`
	Suggested string   `json:"suggested"`
	Severity  Severity `json:"severity"`
}

// IssueReport is the JSON payload the review run emits.
type IssueReport struct {
	Sheet    string    `json:"sheet"`
	Findings []Finding `json:"findings"`
}

// requiredFields must be non-empty on every scanned row.
var requiredFields = []string{"idea", "hypothesis", "metric", "owner"}

// knownPlatforms is the fixed platform taxonomy, compared case-insensitively.
var knownPlatforms = map[string]bool{
	"instagram": true,
	"tiktok":    true,
	"x":         true,
	"linkedin":  true,
	"youtube":   true,
	"shorts":    true,
}

var titleCaser = cases.Title(language.English)

// ScanRow applies every heuristic rule to one row. Rules are independent and
// order-insensitive; each may yield zero or more findings.
func ScanRow(rowNum int, r tables.Row, now time.Time) []Finding {
	ts := now.Unix()
	var findings []Finding

	for _, field := range requiredFields {
		if r.Empty(field) {
			findings = append(findings, Finding{
				TS:        ts,
				Tag:       "missing",
				RowNum:    rowNum,
				Field:     field,
				Value:     r[field],
				Problem:   "required field is empty",
				Suggested: "fill in " + titleCaser.String(field),
				Severity:  SeverityWarn,
			})
		}
	}

	if hook := r["hook"]; len(hook) > constants.MaxHookLength {
		findings = append(findings, Finding{
			TS:        ts,
			Tag:       "length",
			RowNum:    rowNum,
			Field:     "hook",
			Value:     hook,
			Problem:   "hook too long",
			Suggested: fmt.Sprintf("shorten to <=%d", constants.MaxHookLength),
			Severity:  SeverityInfo,
		})
	}

	if platform := strings.ToLower(r.Get("platform")); platform != "" && !knownPlatforms[platform] {
		findings = append(findings, Finding{
			TS:        ts,
			Tag:       "platform",
			RowNum:    rowNum,
			Field:     "platform",
			Value:     r["platform"],
			Problem:   "unknown platform",
			Suggested: "pick from IG/TikTok/X/LI/YouTube",
			Severity:  SeverityWarn,
		})
	}

	return findings
}

// Scan runs the scanner over every data row of a snapshot. Row numbers in
// findings are 1-based sheet rows, so data starts at row 2.
func Scan(snap *tables.Snapshot, now time.Time) []Finding {
	var findings []Finding
	for i, row := range snap.Rows {
		findings = append(findings, ScanRow(snap.SheetRow(i), row, now)...)
	}
	return findings
}
