// Package constants provides shared constants used throughout the controlsheet codebase.
// This includes timeouts, limits, and other configuration values that should be
// consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultStoreTimeout is the standard timeout for calls to the remote tabular store
	DefaultStoreTimeout = 60 * time.Second

	// DefaultFetchTimeout is the timeout for fetching source text over HTTP
	DefaultFetchTimeout = 60 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// Limit constants define various limits and capacities
const (
	// MaxMinedCandidates is the maximum number of quote candidates appended per mining run
	MaxMinedCandidates = 50

	// MaxScheduledPerRun is the maximum number of collected quotes placed onto the
	// Calendar per scheduling run
	MaxScheduledPerRun = 3

	// MaxHookLength is the longest hook accepted before the issue scanner flags it
	MaxHookLength = 140
)

// Mining constants bound the sentence extraction heuristics
const (
	// MinSentenceLength is the shortest sentence considered quotable
	MinSentenceLength = 8

	// MaxSentenceLength is the longest sentence considered quotable
	MaxSentenceLength = 180
)
