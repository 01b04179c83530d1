// Package dates normalizes the heterogeneous date values found in the control
// sheet into canonical ISO (YYYY-MM-DD) form. Parsing is deliberately tolerant:
// a value that cannot be understood is reported as not-a-date, never as an
// error, so a bad cell marks a row for attention instead of aborting a run.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISO is the canonical storage layout for dates.
const ISO = "2006-01-02"

// serialEpoch is the spreadsheet serial-date epoch: serial 1 is 1899-12-31.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// placeholders normalize to not-a-date without being treated as malformed.
var placeholders = map[string]bool{
	"tbd":  true,
	"na":   true,
	"n/a":  true,
	"none": true,
	"-":    true,
}

// layouts is the fixed ordered list of accepted string forms. The first
// successful parse wins, which makes the mapping deterministic but means
// ambiguous inputs like 03/04/2025 always resolve month-first. This is an
// explicit policy, not locale inference.
var layouts = []string{
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"2/1/2006",
	"1-2-2006",
	"2-1-2006",
	"1/2/06",
	"2/1/06",
	"Jan 2, 2006",
	"2 Jan 2006",
	"Jan 2 06",
	"2 Jan 06",
}

// numericPattern matches values that arrived as bare numbers; those are
// treated as spreadsheet date serials.
var numericPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// loosePattern is the final fallback: loosely-delimited year-first forms such
// as 2025.11.7 or 2025-1-07.
var loosePattern = regexp.MustCompile(`^\s*(\d{4})[./-](\d{1,2})[./-](\d{1,2})\s*$`)

// Normalize converts a raw cell value into canonical ISO form. The second
// return value is false when the value is empty, a placeholder, or not a
// recognizable date; callers must treat that as "needs attention", never as
// a failure.
func Normalize(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || placeholders[strings.ToLower(s)] {
		return "", false
	}

	// Bare numbers are date serials: days since the 1899-12-30 epoch,
	// truncated to whole days.
	if numericPattern.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return "", false
		}
		return FromSerial(int(f)), true
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISO), true
		}
	}

	if m := loosePattern.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if valid(year, month, day) {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(ISO), true
		}
	}

	return "", false
}

// FromSerial converts a spreadsheet date serial into ISO form.
func FromSerial(n int) string {
	return serialEpoch.AddDate(0, 0, n).Format(ISO)
}

// valid reports whether the components name a real calendar date.
// time.Date normalizes overflow (month 13 becomes January), so a round-trip
// comparison is the reliable check.
func valid(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}
