// Package reconcile implements the reconciliation and normalization engine:
// the tolerant per-row normalization pass over the Calendar and the
// status-gated state machines that move quotes from the backlog onto the
// Calendar. Every pass is a pure function of the fetched snapshot, so
// re-running an agent over an already-normalized table is a no-op.
package reconcile

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/quillworks/controlsheet/pkg/logging"
	"github.com/quillworks/controlsheet/pkg/store"
	"github.com/quillworks/controlsheet/pkg/tables"
)

// Canonical Calendar statuses. Any stored status outside this set is
// corrected to draft on the next reconciliation pass.
const (
	StatusBacklog   = "backlog"
	StatusDraft     = "draft"
	StatusReady     = "ready"
	StatusScheduled = "scheduled"
	StatusPosted    = "posted"
	StatusNeedsDate = "needs_date"
)

// Quotes_Backlog statuses. Approved and rejected are terminal; the engine
// never transitions a record backward and never touches a terminal record.
const (
	QuoteProposed  = "proposed"
	QuoteCollected = "collected"
	QuoteApproved  = "approved"
	QuoteRejected  = "rejected"
)

// StatusNeedsReview marks scheduler-created Calendar rows awaiting a human
// pass before they enter the canonical Calendar lifecycle.
const StatusNeedsReview = "needs_review"

// calendarStatuses is the canonical Calendar status set.
var calendarStatuses = map[string]bool{
	StatusBacklog:   true,
	StatusDraft:     true,
	StatusReady:     true,
	StatusScheduled: true,
	StatusPosted:    true,
	StatusNeedsDate: true,
}

// Reconciler drives the normalization pass and the backlog state machines
// against a single store client. It holds no state between runs; correctness
// across repeated or overlapping invocations comes from idempotent
// computation, not from coordination.
type Reconciler struct {
	store         store.Client
	logger        *zerolog.Logger
	now           func() time.Time
	calendarTable tables.Table
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger used for run events.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock sets the time source. Tests inject a fixed clock here.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) {
		if now != nil {
			r.now = now
		}
	}
}

// WithCalendarTable overrides the table the normalization pass runs against.
func WithCalendarTable(table tables.Table) Option {
	return func(r *Reconciler) {
		if table != "" {
			r.calendarTable = table
		}
	}
}

// New creates a Reconciler over the given store.
func New(st store.Client, opts ...Option) *Reconciler {
	r := &Reconciler{
		store:         st,
		logger:        logging.Default(),
		now:           time.Now,
		calendarTable: tables.Calendar,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result summarizes one normalization or classification run.
type Result struct {
	Table   tables.Table
	Rows    int  // data rows examined
	Changed int  // rows that needed at least one correction
	Wrote   bool // whether any write was issued
}

// ScheduleResult summarizes one scheduling run.
type ScheduleResult struct {
	Scheduled int // Calendar rows appended
	Marked    int // backlog rows flipped to proposed
}
