package reconcile

import (
	"context"
	"strings"

	"github.com/quillworks/controlsheet/pkg/derive"
	"github.com/quillworks/controlsheet/pkg/tables"
)

// ClassifyBacklog advances freshly mined backlog rows to collected: it fills
// in length_category, platform_fit, owner, and consent_status where absent
// and sets the status. Rows already collected, approved, or rejected are
// never touched, and a proposed row with no field left to derive is left as
// is. Derived fields stay stable once a record has been classified or
// reviewed, and scheduled quotes never loop back into the collected pool.
func (r *Reconciler) ClassifyBacklog(ctx context.Context) (*Result, error) {
	headers := tables.MustHeaders(tables.QuotesBacklog)
	if err := r.store.EnsureTable(ctx, tables.QuotesBacklog, headers); err != nil {
		return nil, err
	}

	snap, err := r.store.Get(ctx, tables.QuotesBacklog)
	if err != nil {
		return nil, err
	}
	snap.EnsureColumns(headers)

	// Classified fields occupy a contiguous column block; the status column
	// stands alone. Positions come from the schema, not hardcoded letters.
	lengthCol := columnOf(headers, "length_category")
	consentCol := columnOf(headers, "consent_status")
	statusCol := columnOf(headers, "status")

	result := &Result{Table: tables.QuotesBacklog, Rows: len(snap.Rows)}
	for i, row := range snap.Rows {
		if row.Empty("quote_text") {
			continue
		}
		switch strings.ToLower(row.Get("status")) {
		case QuoteCollected, QuoteApproved, QuoteRejected:
			continue
		}

		derived := false
		length := row.Get("length_category")
		if length == "" {
			length = derive.ClassifyLength(row.Get("quote_text"))
			derived = true
		}
		fit := row.Get("platform_fit")
		if fit == "" {
			fit = derive.PlatformFitFor(length)
			derived = true
		}
		owner := row.Get("owner")
		if owner == "" {
			owner = "Architect"
			derived = true
		}
		consent := row.Get("consent_status")
		if consent == "" {
			consent = "not_needed"
			derived = true
		}

		// A proposed row with every derived field already present has been
		// through classification before, usually because scheduling flipped
		// it back to proposed. Advancement is one-way; leave it alone.
		if !derived {
			continue
		}

		sheetRow := snap.SheetRow(i)
		a1 := cellRange(lengthCol, consentCol, sheetRow)
		if err := r.store.UpdateRange(ctx, tables.QuotesBacklog, a1,
			[][]string{{length, fit, owner, consent}}); err != nil {
			return nil, err
		}
		if err := r.store.UpdateCell(ctx, tables.QuotesBacklog,
			cellAt(statusCol, sheetRow), QuoteCollected); err != nil {
			return nil, err
		}
		result.Changed++
		result.Wrote = true
	}

	r.logger.Info().
		Int("rows", result.Rows).
		Int("classified", result.Changed).
		Msg("classified backlog")
	return result, nil
}
