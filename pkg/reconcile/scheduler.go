package reconcile

import (
	"context"
	"strings"

	"github.com/quillworks/controlsheet/pkg/constants"
	"github.com/quillworks/controlsheet/pkg/dates"
	"github.com/quillworks/controlsheet/pkg/tables"
)

// ScheduleQuotes places collected quotes onto the Calendar. Only rows whose
// status is exactly collected (and whose quote text is non-empty) are
// eligible; each scheduled quote's backlog status flips to proposed so a
// repeated run cannot schedule it again. At most MaxScheduledPerRun quotes
// are placed per run, on consecutive days starting tomorrow.
func (r *Reconciler) ScheduleQuotes(ctx context.Context) (*ScheduleResult, error) {
	backlog, err := r.store.Get(ctx, tables.QuotesBacklog)
	if err != nil {
		return nil, err
	}
	backlog.EnsureColumns(tables.MustHeaders(tables.QuotesBacklog))

	type candidate struct {
		row      tables.Row
		sheetRow int
	}
	var picked []candidate
	for i, row := range backlog.Rows {
		if len(picked) == constants.MaxScheduledPerRun {
			break
		}
		if strings.ToLower(row.Get("status")) != QuoteCollected || row.Empty("quote_text") {
			continue
		}
		picked = append(picked, candidate{row: row, sheetRow: backlog.SheetRow(i)})
	}

	result := &ScheduleResult{}
	if len(picked) == 0 {
		r.logger.Info().Msg("nothing to schedule")
		return result, nil
	}

	calHeaders := tables.MustHeaders(tables.Calendar)
	if err := r.store.EnsureTable(ctx, tables.Calendar, calHeaders); err != nil {
		return nil, err
	}

	today := r.now()
	var calRows [][]string
	for i, c := range picked {
		item := tables.Row{
			"date":      today.AddDate(0, 0, i+1).Format(dates.ISO),
			"platform":  "Instagram",
			"post_type": "Reel/Carousel/Story",
			"theme":     c.row.Get("theme"),
			"hook":      c.row.Get("quote_text"),
			"cta":       "Read the book",
			"status":    StatusNeedsReview,
			"notes":     "auto from " + c.row.Get("quote_id"),
		}
		cells := make([]string, len(calHeaders))
		for j, h := range calHeaders {
			cells[j] = item[h]
		}
		calRows = append(calRows, cells)
	}

	if err := r.store.Append(ctx, tables.Calendar, calRows); err != nil {
		return nil, err
	}
	result.Scheduled = len(calRows)

	statusCol := columnOf(backlog.Headers, "status")
	for _, c := range picked {
		if err := r.store.UpdateCell(ctx, tables.QuotesBacklog,
			cellAt(statusCol, c.sheetRow), QuoteProposed); err != nil {
			return nil, err
		}
		result.Marked++
	}

	r.logger.Info().
		Int("scheduled", result.Scheduled).
		Int("marked", result.Marked).
		Msg("scheduled quotes")
	return result, nil
}
