// Package derive computes the derived content fields: length classification,
// platform fit, slugs, and UTM links. Every function here is a pure function
// of its inputs; re-deriving an already-derived value is a no-op, which is
// what makes repeated reconciliation runs safe.
package derive

import (
	"regexp"
	"strings"

	"github.com/quillworks/controlsheet/pkg/tables"
)

// Length categories for quote text.
const (
	UltraShort = "ultra_short"
	Short      = "short"
	Long       = "long"
)

// Classification boundaries (bytes of trimmed text).
const (
	ultraShortMax = 40
	shortMax      = 140
)

// utmHookLimit is how much of the hook feeds the utm_content slug.
const utmHookLimit = 40

// ClassifyLength buckets quote text by trimmed byte length.
func ClassifyLength(text string) string {
	n := len(strings.TrimSpace(text))
	switch {
	case n <= ultraShortMax:
		return UltraShort
	case n <= shortMax:
		return Short
	default:
		return Long
	}
}

// platformFit maps a length category to the comma-joined platform tags that
// suit it.
var platformFit = map[string]string{
	UltraShort: "IG,TikTok,Shorts,X",
	Short:      "IG,LI,X",
	Long:       "LI,X",
}

// PlatformFitFor returns the platform tags for a length category. Unknown
// categories fall back to the short-form fit.
func PlatformFitFor(lengthCategory string) string {
	if fit, ok := platformFit[lengthCategory]; ok {
		return fit
	}
	return "IG,LI,X"
}

var nonSlugRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases text and collapses every run outside [a-z0-9] to a single
// hyphen. Empty input yields "na" so slugs are always usable in a UTM link.
func Slug(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = nonSlugRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "na"
	}
	return s
}

// BuildUTMLink composes the utm_link for a Calendar row. An existing
// non-empty link is preserved unchanged regardless of the other fields, so
// re-deriving an already-correct link never rewrites it.
func BuildUTMLink(r tables.Row) string {
	if link := r.Get("utm_link"); link != "" {
		return link
	}
	hook := r.Get("hook")
	if len(hook) > utmHookLimit {
		hook = hook[:utmHookLimit]
	}
	return "utm_source=" + Slug(r.Get("platform")) +
		"&utm_medium=" + Slug(r.Get("post_type")) +
		"&utm_campaign=" + Slug(r.Get("theme")) +
		"&utm_content=" + Slug(hook)
}
