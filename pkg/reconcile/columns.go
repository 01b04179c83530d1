package reconcile

import (
	"strconv"

	"github.com/quillworks/controlsheet/pkg/tables"
)

// columnOf returns the 1-based column index of a header, or 0 when absent.
func columnOf(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i + 1
		}
	}
	return 0
}

// cellAt renders a single-cell A1 reference.
func cellAt(col, row int) string {
	return tables.ColumnLetter(col) + strconv.Itoa(row)
}

// cellRange renders a single-row A1 range spanning startCol..endCol.
func cellRange(startCol, endCol, row int) string {
	return cellAt(startCol, row) + ":" + cellAt(endCol, row)
}
