package tables

import (
	"strconv"
	"strings"
)

// Row is one table row keyed by column name. Values are always strings; the
// store clients stringify whatever the backend returns.
type Row map[string]string

// Get returns the trimmed value for a column, or "" when absent.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// Empty reports whether the trimmed value for a column is empty.
func (r Row) Empty(column string) bool {
	return r.Get(column) == ""
}

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// dataRowOffset is the 1-based sheet row of the first data row; row 1 holds
// the header.
const dataRowOffset = 2

// Snapshot is one fetched table: the header row plus all data rows, in source
// order. The engine never caches snapshots across runs; every invocation
// re-fetches and re-derives, which is what keeps repeated runs safe.
type Snapshot struct {
	Table   Table
	Headers []string
	Rows    []Row
}

// SheetRow converts a zero-based data row index to its 1-based sheet row.
func (s *Snapshot) SheetRow(index int) int {
	return index + dataRowOffset
}

// EnsureColumns recovers from schema drift: any expected column absent from
// the snapshot headers is appended and synthesized empty in every row, so
// downstream logic never indexes out of range. Existing headers keep their
// positions.
func (s *Snapshot) EnsureColumns(expected []string) {
	have := make(map[string]bool, len(s.Headers))
	for _, h := range s.Headers {
		have[h] = true
	}
	for _, h := range expected {
		if have[h] {
			continue
		}
		s.Headers = append(s.Headers, h)
		have[h] = true
		for _, r := range s.Rows {
			if _, ok := r[h]; !ok {
				r[h] = ""
			}
		}
	}
}

// Matrix renders all data rows positionally in header order, ready for a
// batched range write.
func (s *Snapshot) Matrix() [][]string {
	out := make([][]string, len(s.Rows))
	for i, r := range s.Rows {
		cells := make([]string, len(s.Headers))
		for j, h := range s.Headers {
			cells[j] = r[h]
		}
		out[i] = cells
	}
	return out
}

// DataRange returns the A1 range covering the full data region (excluding the
// header row), or "" when the snapshot holds no data rows.
func (s *Snapshot) DataRange() string {
	if len(s.Rows) == 0 || len(s.Headers) == 0 {
		return ""
	}
	last := ColumnLetter(len(s.Headers))
	return "A2:" + last + strconv.Itoa(len(s.Rows)+1)
}

// RowsFromMatrix builds rows from positional cell values using the given
// headers. Short rows are padded with empty values.
func RowsFromMatrix(headers []string, values [][]string) []Row {
	rows := make([]Row, 0, len(values))
	for _, cells := range values {
		r := make(Row, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				r[h] = cells[i]
			} else {
				r[h] = ""
			}
		}
		rows = append(rows, r)
	}
	return rows
}
