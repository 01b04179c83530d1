package controlsheet

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/quillworks/controlsheet/internal/config"
	"github.com/quillworks/controlsheet/pkg/store"
)

// Option configures a Pipeline during New.
type Option func(*Pipeline)

// WithConfig supplies loaded configuration. The pipeline validates it
// and, unless WithStore was also given, builds a store client from it.
func WithConfig(cfg *config.Config) Option {
	return func(p *Pipeline) {
		p.cfg = cfg
	}
}

// WithStore injects a store client directly, bypassing configuration
// based construction. Used by tests and embedders.
func WithStore(st store.Client) Option {
	return func(p *Pipeline) {
		p.store = st
	}
}

// WithLogger replaces the default logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock overrides the time source. Tests use this to pin the week
// window and scheduled dates.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}
