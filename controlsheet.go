// Package controlsheet orchestrates a small content pipeline over a
// shared spreadsheet-backed control sheet. Each operation fetches a
// snapshot of one or more tables, computes corrections or derived
// rows, and writes back only when something actually changed, so
// every operation is safe to rerun.
package controlsheet

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/quillworks/controlsheet/internal/config"
	"github.com/quillworks/controlsheet/pkg/backlog"
	"github.com/quillworks/controlsheet/pkg/errors"
	"github.com/quillworks/controlsheet/pkg/logging"
	"github.com/quillworks/controlsheet/pkg/reconcile"
	"github.com/quillworks/controlsheet/pkg/report"
	"github.com/quillworks/controlsheet/pkg/store"
	"github.com/quillworks/controlsheet/pkg/tables"
)

// Pipeline exposes the content production operations. All methods are
// idempotent: running one twice against an unchanged sheet issues no
// second write.
type Pipeline struct {
	cfg    *config.Config
	store  store.Client
	logger *zerolog.Logger
	now    func() time.Time

	fixSheet    tables.Table
	reviewSheet tables.Table

	reconciler *reconcile.Reconciler
	miner      *backlog.Miner
}

// New builds a Pipeline. A store client may be injected directly with
// WithStore; otherwise one is constructed from the configuration,
// which must then validate.
func New(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		logger:      logging.Default(),
		now:         time.Now,
		fixSheet:    tables.Calendar,
		reviewSheet: tables.Experiments,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.cfg != nil {
		if err := p.cfg.Validate(); err != nil {
			return nil, err
		}
		p.fixSheet = p.cfg.FixSheet
		p.reviewSheet = p.cfg.ReviewSheet
	}

	if p.store == nil {
		if p.cfg == nil {
			return nil, &errors.ConfigError{
				Setting: "store",
				Message: "no store client and no configuration to build one from",
			}
		}
		st, err := store.New(p.cfg.StoreConfig())
		if err != nil {
			return nil, err
		}
		p.store = st
	}

	p.reconciler = reconcile.New(p.store,
		reconcile.WithLogger(p.logger),
		reconcile.WithClock(p.now),
		reconcile.WithCalendarTable(p.fixSheet),
	)

	minerOpts := []backlog.MinerOption{
		backlog.WithLogger(p.logger),
	}
	if p.cfg != nil {
		if p.cfg.SourceTextURL != "" {
			minerOpts = append(minerOpts, backlog.WithSourceURL(p.cfg.SourceTextURL))
		}
		if p.cfg.SourceTextPath != "" {
			minerOpts = append(minerOpts, backlog.WithSourcePath(p.cfg.SourceTextPath))
		}
	}
	p.miner = backlog.NewMiner(p.store, minerOpts...)

	return p, nil
}

// Fix normalizes the calendar table: dates to ISO form, statuses to
// the canonical set, and UTM links filled from row content.
func (p *Pipeline) Fix(ctx context.Context) (*reconcile.Result, error) {
	return p.reconciler.ReconcileCalendar(ctx)
}

// Classify advances unprocessed backlog quotes to collected, filling
// in length category, platform fit, owner, and consent status.
func (p *Pipeline) Classify(ctx context.Context) (*reconcile.Result, error) {
	return p.reconciler.ClassifyBacklog(ctx)
}

// Schedule drafts calendar rows from collected quotes and marks the
// source quotes proposed.
func (p *Pipeline) Schedule(ctx context.Context) (*reconcile.ScheduleResult, error) {
	return p.reconciler.ScheduleQuotes(ctx)
}

// Mine extracts quote candidates from the configured source text and
// appends them to the backlog. A missing source is a no-op.
func (p *Pipeline) Mine(ctx context.Context) (*backlog.Result, error) {
	return p.miner.Run(ctx)
}

// Analyze summarizes this week's calendar and rewrites the Analytics
// table with the result.
func (p *Pipeline) Analyze(ctx context.Context) (*report.Summary, error) {
	if err := p.store.EnsureTable(ctx, tables.Calendar, tables.MustHeaders(tables.Calendar)); err != nil {
		return nil, err
	}
	if err := p.store.EnsureTable(ctx, tables.Analytics, tables.MustHeaders(tables.Analytics)); err != nil {
		return nil, err
	}

	snap, err := p.store.Get(ctx, tables.Calendar)
	if err != nil {
		return nil, err
	}

	summary := report.Summarize(snap.Rows, p.now())
	if err := p.store.UpdateRange(ctx, tables.Analytics, "A1", summary.Grid()); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Str("table", string(tables.Analytics)).
		Int("week_posts", summary.WeekPosts).
		Msg("analytics refreshed")
	return summary, nil
}

// Review scans the configured review table for incomplete or
// inconsistent rows. It never writes; findings go to the caller.
func (p *Pipeline) Review(ctx context.Context) (*report.IssueReport, error) {
	snap, err := p.store.Get(ctx, p.reviewSheet)
	if err != nil {
		return nil, err
	}
	return &report.IssueReport{
		Sheet:    string(p.reviewSheet),
		Findings: report.Scan(snap, p.now()),
	}, nil
}

// Report appends a weekly status row to the Reports table, built from
// the current calendar and backlog state.
func (p *Pipeline) Report(ctx context.Context) (*report.Weekly, error) {
	calendar, err := p.store.Get(ctx, tables.Calendar)
	if err != nil {
		return nil, err
	}
	quotes, err := p.store.Get(ctx, tables.QuotesBacklog)
	if err != nil {
		return nil, err
	}

	weekly := report.BuildWeekly(calendar.Rows, quotes.Rows, p.now())

	if err := p.store.EnsureTable(ctx, tables.Reports, tables.MustHeaders(tables.Reports)); err != nil {
		return nil, err
	}
	if err := p.store.Append(ctx, tables.Reports, [][]string{weekly.Row()}); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Str("week_start", weekly.WeekStart.Format("2006-01-02")).
		Msg("weekly report appended")
	return weekly, nil
}
