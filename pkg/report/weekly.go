package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/quillworks/controlsheet/pkg/dates"
	"github.com/quillworks/controlsheet/pkg/reconcile"
	"github.com/quillworks/controlsheet/pkg/tables"
)

// Weekly is one run's snapshot of pipeline health, appended to the Reports
// table as a single row per run.
type Weekly struct {
	RunAt           time.Time
	WeekStart       time.Time
	WeekEnd         time.Time
	QuotesProposed  int
	QuotesCollected int
	QuotesApproved  int
	QuotesRejected  int
	CalNeedsReview  int
	CalApproved     int
	CalTotal        int
}

// BuildWeekly counts backlog and Calendar rows by status for the current
// week window. It reads the snapshots it is given and nothing else.
func BuildWeekly(calendar, quotes []tables.Row, now time.Time) *Weekly {
	ws := WeekStart(now)
	w := &Weekly{
		RunAt:     now.UTC(),
		WeekStart: ws,
		WeekEnd:   ws.AddDate(0, 0, 6),
		CalTotal:  len(calendar),
	}

	for _, r := range quotes {
		switch strings.ToLower(r.Get("status")) {
		case reconcile.QuoteProposed:
			w.QuotesProposed++
		case reconcile.QuoteCollected:
			w.QuotesCollected++
		case reconcile.QuoteApproved:
			w.QuotesApproved++
		case reconcile.QuoteRejected:
			w.QuotesRejected++
		}
	}

	for _, r := range calendar {
		switch strings.ToLower(r.Get("status")) {
		case reconcile.StatusNeedsReview:
			w.CalNeedsReview++
		case reconcile.StatusScheduled, reconcile.StatusPosted:
			// past review: scheduled or already out the door
			w.CalApproved++
		}
	}

	return w
}

// Row renders the weekly snapshot in Reports column order.
func (w *Weekly) Row() []string {
	return []string{
		w.RunAt.Format(time.RFC3339),
		w.WeekStart.Format(dates.ISO),
		w.WeekEnd.Format(dates.ISO),
		strconv.Itoa(w.QuotesProposed),
		strconv.Itoa(w.QuotesCollected),
		strconv.Itoa(w.QuotesApproved),
		strconv.Itoa(w.QuotesRejected),
		strconv.Itoa(w.CalNeedsReview),
		strconv.Itoa(w.CalApproved),
		strconv.Itoa(w.CalTotal),
	}
}
