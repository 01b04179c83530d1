package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks/controlsheet/pkg/report"
	"github.com/quillworks/controlsheet/pkg/tables"
)

func TestBuildWeekly(t *testing.T) {
	quotes := []tables.Row{
		{"status": "proposed"},
		{"status": "Proposed"},
		{"status": "collected"},
		{"status": "approved"},
		{"status": "rejected"},
		{"status": ""},
	}
	calendar := []tables.Row{
		{"status": "needs_review"},
		{"status": "scheduled"},
		{"status": "posted"},
		{"status": "draft"},
	}

	w := report.BuildWeekly(calendar, quotes, wednesday)
	assert.Equal(t, 2, w.QuotesProposed)
	assert.Equal(t, 1, w.QuotesCollected)
	assert.Equal(t, 1, w.QuotesApproved)
	assert.Equal(t, 1, w.QuotesRejected)
	assert.Equal(t, 1, w.CalNeedsReview)
	assert.Equal(t, 2, w.CalApproved)
	assert.Equal(t, 4, w.CalTotal)
}

func TestWeeklyRow(t *testing.T) {
	w := report.BuildWeekly(nil, nil, wednesday)
	row := w.Row()

	require.Len(t, row, len(tables.MustHeaders(tables.Reports)))
	assert.Equal(t, "2025-03-05T12:30:00Z", row[0])
	assert.Equal(t, "2025-03-03", row[1], "week starts on Monday")
	assert.Equal(t, "2025-03-09", row[2], "week ends on Sunday")
	assert.Equal(t, "0", row[3])
	assert.Equal(t, "0", row[9])
}
