package backlog

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/quillworks/controlsheet/pkg/constants"
	"github.com/quillworks/controlsheet/pkg/derive"
	"github.com/quillworks/controlsheet/pkg/errors"
	"github.com/quillworks/controlsheet/pkg/logging"
	"github.com/quillworks/controlsheet/pkg/reconcile"
	"github.com/quillworks/controlsheet/pkg/store"
	"github.com/quillworks/controlsheet/pkg/tables"
)

// SourceMeta describes where mined quotes come from; it fills the source
// columns of every appended row.
type SourceMeta struct {
	SourceType string
	Reference  string
	Theme      string
	Tone       string
	Owner      string
}

// DefaultSourceMeta matches the pipeline's primary source text.
func DefaultSourceMeta() SourceMeta {
	return SourceMeta{
		SourceType: "book_internal",
		Reference:  "The New World: The Key",
		Theme:      "Awakening",
		Tone:       "uplifting",
		Owner:      "Architect",
	}
}

// Miner extracts quotable sentences from a source text and appends them to
// the Quotes_Backlog as proposed candidates, one batched append per run.
type Miner struct {
	store      store.Client
	logger     *zerolog.Logger
	http       *http.Client
	sourceURL  string
	sourcePath string
	meta       SourceMeta
}

// MinerOption configures a Miner.
type MinerOption func(*Miner)

// WithSourceURL sets the URL the source text is fetched from. It takes
// precedence over the local path.
func WithSourceURL(url string) MinerOption {
	return func(m *Miner) { m.sourceURL = url }
}

// WithSourcePath sets the local file the source text is read from.
func WithSourcePath(path string) MinerOption {
	return func(m *Miner) { m.sourcePath = path }
}

// WithSourceMeta overrides the source metadata stamped onto mined rows.
func WithSourceMeta(meta SourceMeta) MinerOption {
	return func(m *Miner) { m.meta = meta }
}

// WithLogger sets the logger used for run events.
func WithLogger(logger *zerolog.Logger) MinerOption {
	return func(m *Miner) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithHTTPClient overrides the HTTP client used to fetch the source text.
func WithHTTPClient(client *http.Client) MinerOption {
	return func(m *Miner) {
		if client != nil {
			m.http = client
		}
	}
}

// NewMiner creates a Miner over the given store.
func NewMiner(st store.Client, opts ...MinerOption) *Miner {
	m := &Miner{
		store:      st,
		logger:     logging.Default(),
		http:       &http.Client{Timeout: constants.DefaultFetchTimeout},
		sourcePath: "sources/book.txt",
		meta:       DefaultSourceMeta(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Result summarizes one mining run.
type Result struct {
	Appended int
	Skipped  bool   // no source text configured or found
	Reason   string // why the run was skipped, when it was
}

// Run mines the source text and appends candidates. A missing source is a
// skip, not an error; the other agents keep operating on whatever is already
// in the backlog.
func (m *Miner) Run(ctx context.Context) (*Result, error) {
	headers := tables.MustHeaders(tables.QuotesBacklog)
	if err := m.store.EnsureTable(ctx, tables.QuotesBacklog, headers); err != nil {
		return nil, err
	}

	text, err := m.loadText(ctx)
	if err != nil {
		return nil, err
	}
	if text == "" {
		m.logger.Info().Msg("no source text; skipping mining run")
		return &Result{Skipped: true, Reason: "no source text configured"}, nil
	}

	candidates := Candidates(text, constants.MaxMinedCandidates)
	if len(candidates) == 0 {
		m.logger.Info().Msg("no quotable sentences found")
		return &Result{Skipped: true, Reason: "no quotable sentences"}, nil
	}

	existing, err := m.store.Get(ctx, tables.QuotesBacklog)
	if err != nil {
		return nil, err
	}
	ids := AllocateIDs(len(candidates), len(existing.Rows))

	rows := make([][]string, 0, len(candidates))
	for i, quote := range candidates {
		length := derive.ClassifyLength(quote)
		row := tables.Row{
			"quote_id":         ids[i],
			"source_type":      m.meta.SourceType,
			"quote_text":       quote,
			"source_reference": m.meta.Reference,
			"theme":            m.meta.Theme,
			"tone_tag":         m.meta.Tone,
			"length_category":  length,
			"platform_fit":     derive.PlatformFitFor(length),
			"owner":            m.meta.Owner,
			"consent_status":   "not_needed",
			"paraphrase_ok":    "yes",
			"status":           reconcile.QuoteProposed,
		}
		cells := make([]string, len(headers))
		for j, h := range headers {
			cells[j] = row[h]
		}
		rows = append(rows, cells)
	}

	if err := m.store.Append(ctx, tables.QuotesBacklog, rows); err != nil {
		return nil, err
	}

	m.logger.Info().Int("appended", len(rows)).Msg("mined quote candidates")
	return &Result{Appended: len(rows)}, nil
}

// loadText fetches the source text from the URL when set, otherwise reads the
// local path. A missing local file yields empty text, not an error.
func (m *Miner) loadText(ctx context.Context) (string, error) {
	if m.sourceURL != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.sourceURL, nil)
		if err != nil {
			return "", errors.WrapIO("fetch", m.sourceURL, err)
		}
		resp, err := m.http.Do(req)
		if err != nil {
			return "", errors.WrapIO("fetch", m.sourceURL, err)
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", errors.NewIOError("fetch", m.sourceURL,
				errors.New(resp.Status))
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", errors.WrapIO("fetch", m.sourceURL, err)
		}
		return string(body), nil
	}

	if m.sourcePath == "" {
		return "", nil
	}
	data, err := os.ReadFile(m.sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.WrapIO("read", m.sourcePath, err)
	}
	return string(data), nil
}

// Candidates extracts up to max quotable sentences from raw text, in order,
// with case-insensitive de-duplication.
func Candidates(text string, max int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range sentences(text) {
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
		if len(out) == max {
			break
		}
	}
	return out
}

// sentences collapses whitespace and splits the text after terminal
// punctuation, keeping sentences within the quotable length bounds.
func sentences(text string) []string {
	collapsed := strings.Join(strings.Fields(text), " ")
	var out []string
	start := 0
	for i := 0; i < len(collapsed); i++ {
		c := collapsed[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		if i+1 < len(collapsed) && collapsed[i+1] != ' ' {
			continue
		}
		if s := quotable(collapsed[start : i+1]); s != "" {
			out = append(out, s)
		}
		start = i + 2
	}
	if start < len(collapsed) {
		if s := quotable(collapsed[start:]); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// quotable trims surrounding quotes and space and applies the length bounds.
func quotable(s string) string {
	s = strings.Trim(strings.TrimSpace(s), `"“”`)
	if len(s) < constants.MinSentenceLength || len(s) > constants.MaxSentenceLength {
		return ""
	}
	return s
}
