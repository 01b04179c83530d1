package reconcile_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillworks/controlsheet/pkg/store/memory"
	"github.com/quillworks/controlsheet/pkg/tables"
)

func backlogRow(values map[string]string) []string {
	headers := tables.MustHeaders(tables.QuotesBacklog)
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = values[h]
	}
	return cells
}

func backlogRows(t *testing.T, s *memory.Store) []tables.Row {
	t.Helper()
	return tables.RowsFromMatrix(tables.MustHeaders(tables.QuotesBacklog), s.Rows(tables.QuotesBacklog))
}

func TestClassifyBacklogFillsDerivedFields(t *testing.T) {
	s := memory.New()
	s.Seed(tables.QuotesBacklog, tables.MustHeaders(tables.QuotesBacklog), [][]string{
		backlogRow(map[string]string{
			"quote_id":   "Q-0001",
			"quote_text": "Short and sweet.",
			"status":     "proposed",
		}),
	})

	r := newReconciler(s)
	res, err := r.ClassifyBacklog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Changed)
	assert.True(t, res.Wrote)

	got := backlogRows(t, s)[0]
	assert.Equal(t, "ultra_short", got["length_category"])
	assert.Equal(t, "IG,TikTok,Shorts,X", got["platform_fit"])
	assert.Equal(t, "Architect", got["owner"])
	assert.Equal(t, "not_needed", got["consent_status"])
	assert.Equal(t, "collected", got["status"])
}

func TestClassifyBacklogPreservesExistingDerivations(t *testing.T) {
	s := memory.New()
	s.Seed(tables.QuotesBacklog, tables.MustHeaders(tables.QuotesBacklog), [][]string{
		backlogRow(map[string]string{
			"quote_id":        "Q-0001",
			"quote_text":      strings.Repeat("long text ", 20),
			"length_category": "short", // pre-set, must not be recomputed
			"owner":           "Editor",
			"status":          "proposed",
		}),
	})

	r := newReconciler(s)
	_, err := r.ClassifyBacklog(context.Background())
	require.NoError(t, err)

	got := backlogRows(t, s)[0]
	assert.Equal(t, "short", got["length_category"])
	assert.Equal(t, "IG,LI,X", got["platform_fit"], "fit derives from the stored category")
	assert.Equal(t, "Editor", got["owner"])
}

func TestClassifyBacklogSkipsGatedStatuses(t *testing.T) {
	seed := [][]string{
		backlogRow(map[string]string{"quote_id": "Q-0001", "quote_text": "a quote", "status": "collected"}),
		backlogRow(map[string]string{"quote_id": "Q-0002", "quote_text": "a quote", "status": "approved"}),
		backlogRow(map[string]string{"quote_id": "Q-0003", "quote_text": "a quote", "status": "rejected"}),
		backlogRow(map[string]string{"quote_id": "Q-0004", "quote_text": "", "status": "proposed"}),
	}
	s := memory.New()
	s.Seed(tables.QuotesBacklog, tables.MustHeaders(tables.QuotesBacklog), seed)

	r := newReconciler(s)
	res, err := r.ClassifyBacklog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Changed)
	assert.False(t, res.Wrote)

	// gated and empty rows are untouched
	assert.Equal(t, seed, s.Rows(tables.QuotesBacklog))
}

func TestClassifyBacklogLeavesScheduledQuotesAlone(t *testing.T) {
	// A fully derived row flips back to proposed when it is scheduled onto
	// the calendar. Re-collecting it would make it schedulable again.
	s := memory.New()
	s.Seed(tables.QuotesBacklog, tables.MustHeaders(tables.QuotesBacklog), [][]string{
		backlogRow(map[string]string{
			"quote_id":        "Q-0001",
			"quote_text":      "Already scheduled once.",
			"length_category": "ultra_short",
			"platform_fit":    "IG,TikTok,Shorts,X",
			"owner":           "Architect",
			"consent_status":  "not_needed",
			"status":          "proposed",
		}),
	})

	r := newReconciler(s)
	res, err := r.ClassifyBacklog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Changed)
	assert.False(t, res.Wrote)

	got := backlogRows(t, s)[0]
	assert.Equal(t, "proposed", got["status"])
}

func TestClassifyBacklogSecondRunIsNoOp(t *testing.T) {
	s := memory.New()
	s.Seed(tables.QuotesBacklog, tables.MustHeaders(tables.QuotesBacklog), [][]string{
		backlogRow(map[string]string{"quote_id": "Q-0001", "quote_text": "a quote", "status": "proposed"}),
	})

	ctx := context.Background()
	r := newReconciler(s)

	first, err := r.ClassifyBacklog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Changed)
	writes := s.Writes()

	second, err := r.ClassifyBacklog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Changed)
	assert.Equal(t, writes, s.Writes(), "classified rows must not be reprocessed")
}
