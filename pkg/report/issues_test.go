package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks/controlsheet/pkg/report"
	"github.com/quillworks/controlsheet/pkg/tables"
)

func completeRow() tables.Row {
	return tables.Row{
		"idea":       "weekly reels",
		"hypothesis": "reels beat statics",
		"metric":     "saves",
		"owner":      "Architect",
		"platform":   "Instagram",
		"hook":       "short hook",
	}
}

func TestScanRowCleanRow(t *testing.T) {
	assert.Empty(t, report.ScanRow(2, completeRow(), wednesday))
}

func TestScanRowMissingRequiredFields(t *testing.T) {
	row := completeRow()
	row["owner"] = "  "
	delete(row, "metric")

	findings := report.ScanRow(4, row, wednesday)
	require.Len(t, findings, 2)

	byField := map[string]report.Finding{}
	for _, f := range findings {
		byField[f.Field] = f
	}
	require.Contains(t, byField, "owner")
	require.Contains(t, byField, "metric")

	f := byField["owner"]
	assert.Equal(t, "missing", f.Tag)
	assert.Equal(t, 4, f.RowNum)
	assert.Equal(t, "required field is empty", f.Problem)
	assert.Equal(t, "fill in Owner", f.Suggested)
	assert.Equal(t, report.SeverityWarn, f.Severity)
	assert.Equal(t, wednesday.Unix(), f.TS)
}

func TestScanRowHookLength(t *testing.T) {
	row := completeRow()
	row["hook"] = strings.Repeat("x", 141)

	findings := report.ScanRow(2, row, wednesday)
	require.Len(t, findings, 1)
	assert.Equal(t, "length", findings[0].Tag)
	assert.Equal(t, report.SeverityInfo, findings[0].Severity)
	assert.Equal(t, "shorten to <=140", findings[0].Suggested)

	// exactly 140 is fine
	row["hook"] = strings.Repeat("x", 140)
	assert.Empty(t, report.ScanRow(2, row, wednesday))
}

func TestScanRowUnknownPlatform(t *testing.T) {
	row := completeRow()
	row["platform"] = "Friendster"

	findings := report.ScanRow(2, row, wednesday)
	require.Len(t, findings, 1)
	assert.Equal(t, "platform", findings[0].Tag)
	assert.Equal(t, "Friendster", findings[0].Value)
	assert.Equal(t, report.SeverityWarn, findings[0].Severity)
}

func TestScanRowPlatformCaseInsensitive(t *testing.T) {
	row := completeRow()
	row["platform"] = "TIKTOK"
	assert.Empty(t, report.ScanRow(2, row, wednesday))

	// empty platform is not flagged
	row["platform"] = ""
	assert.Empty(t, report.ScanRow(2, row, wednesday))
}

func TestScanNumbersRowsFromTwo(t *testing.T) {
	snap := &tables.Snapshot{
		Table:   tables.Experiments,
		Headers: tables.MustHeaders(tables.Experiments),
		Rows:    []tables.Row{completeRow(), {"idea": "x"}},
	}

	findings := report.Scan(snap, wednesday)
	require.NotEmpty(t, findings)
	for _, f := range findings {
		assert.Equal(t, 3, f.RowNum, "only the second data row has findings")
	}
}
