// Package report builds the read-only aggregates: the Analytics summary grid,
// the weekly Reports row, and the issue scanner findings. Everything here is
// recomputed in full from a snapshot on every run; nothing is incremental and
// nothing writes back to the store.
package report

import (
	"sort"
	"strconv"
	"time"

	"github.com/quillworks/controlsheet/pkg/dates"
	"github.com/quillworks/controlsheet/pkg/tables"
)

// PlatformCount is one row of the platform histogram.
type PlatformCount struct {
	Platform string
	Count    int
}

// Summary aggregates a Calendar snapshot into the Analytics metrics.
type Summary struct {
	AsOf       time.Time
	TotalPosts int
	WeekPosts  int
	ByPlatform []PlatformCount
}

// WeekStart returns the most recent Monday at or before t.
func WeekStart(t time.Time) time.Time {
	day := t
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -offset)
}

// Summarize computes the Analytics aggregate from Calendar rows. Rows whose
// dates cannot be normalized are excluded from the weekly count, never
// counted, and never raise. An empty snapshot yields zero metrics and an
// empty platform section.
func Summarize(rows []tables.Row, now time.Time) *Summary {
	s := &Summary{
		AsOf:       now.UTC(),
		TotalPosts: len(rows),
	}

	weekStart := WeekStart(now).Format(dates.ISO)
	counts := make(map[string]int)
	for _, r := range rows {
		if iso, ok := dates.Normalize(r["date"]); ok && iso >= weekStart {
			s.WeekPosts++
		}
		platform := r.Get("platform")
		if platform == "" {
			platform = "Unknown"
		}
		counts[platform]++
	}

	for platform, count := range counts {
		s.ByPlatform = append(s.ByPlatform, PlatformCount{Platform: platform, Count: count})
	}
	sort.Slice(s.ByPlatform, func(i, j int) bool {
		if s.ByPlatform[i].Count != s.ByPlatform[j].Count {
			return s.ByPlatform[i].Count > s.ByPlatform[j].Count
		}
		return s.ByPlatform[i].Platform < s.ByPlatform[j].Platform
	})

	return s
}

// Grid renders the two-section Analytics table: metric/value pairs, a blank
// separator row, then platform/count pairs. The blank row is a section
// delimiter, not a data row; consumers must skip it.
func (s *Summary) Grid() [][]string {
	out := [][]string{
		{"metric", "value"},
		{"as_of", s.AsOf.Format(time.RFC3339)},
		{"total_posts", strconv.Itoa(s.TotalPosts)},
		{"week_posts", strconv.Itoa(s.WeekPosts)},
		{},
		{"platform", "count"},
	}
	for _, pc := range s.ByPlatform {
		out = append(out, []string{pc.Platform, strconv.Itoa(pc.Count)})
	}
	return out
}
