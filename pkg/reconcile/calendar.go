package reconcile

import (
	"context"
	"strings"

	"github.com/quillworks/controlsheet/pkg/dates"
	"github.com/quillworks/controlsheet/pkg/derive"
	"github.com/quillworks/controlsheet/pkg/tables"
)

// ReconcileCalendar runs the normalization pass over the Calendar table.
// It canonicalizes dates, corrects stray statuses, and derives UTM links.
// Corrections are computed in memory over a single fetched snapshot and,
// when anything changed at all, written back as one batched range update
// covering the full data region, so a row can never be left half-updated.
// When nothing changed, no write is issued.
func (r *Reconciler) ReconcileCalendar(ctx context.Context) (*Result, error) {
	snap, err := r.store.Get(ctx, r.calendarTable)
	if err != nil {
		return nil, err
	}
	snap.EnsureColumns(tables.MustHeaders(tables.Calendar))

	result := &Result{Table: r.calendarTable, Rows: len(snap.Rows)}
	for _, row := range snap.Rows {
		if normalizeCalendarRow(row) {
			result.Changed++
		}
	}

	if result.Changed == 0 {
		r.logger.Info().
			Str("table", r.calendarTable.String()).
			Int("rows", result.Rows).
			Msg("nothing to change")
		return result, nil
	}

	if err := r.store.UpdateRange(ctx, r.calendarTable, snap.DataRange(), snap.Matrix()); err != nil {
		return nil, err
	}
	result.Wrote = true

	r.logger.Info().
		Str("table", r.calendarTable.String()).
		Int("rows", result.Rows).
		Int("changed", result.Changed).
		Msg("reconciled calendar")
	return result, nil
}

// normalizeCalendarRow applies the per-field corrections in their fixed
// order: date, then status, then utm_link. It reports whether any field
// changed.
func normalizeCalendarRow(row tables.Row) bool {
	changed := false

	// Date: a successful parse rewrites the field canonically; a failed
	// parse marks the row for attention instead of crashing the run.
	if iso, ok := dates.Normalize(row["date"]); ok {
		if row["date"] != iso {
			row["date"] = iso
			changed = true
		}
	} else if !strings.EqualFold(row.Get("status"), StatusNeedsDate) {
		row["status"] = StatusNeedsDate
		changed = true
	}

	// Status: anything outside the canonical set becomes draft. Values
	// already in the set are left byte-for-byte unchanged.
	if st := strings.ToLower(row.Get("status")); st != "" && !calendarStatuses[st] {
		row["status"] = StatusDraft
		changed = true
	}

	// UTM link: derived when empty, preserved when present.
	if utm := derive.BuildUTMLink(row); utm != row.Get("utm_link") {
		row["utm_link"] = utm
		changed = true
	}

	return changed
}
