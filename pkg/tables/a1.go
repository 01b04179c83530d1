package tables

import (
	"strconv"
	"strings"

	"github.com/quillworks/controlsheet/pkg/errors"
)

// ColumnLetter converts a 1-based column index to its A1 letter form
// (1 -> A, 26 -> Z, 27 -> AA).
func ColumnLetter(n int) string {
	var sb []byte
	for n > 0 {
		n--
		sb = append([]byte{byte('A' + n%26)}, sb...)
		n /= 26
	}
	return string(sb)
}

// ColumnIndex converts an A1 column letter to its 1-based index.
func ColumnIndex(letters string) int {
	n := 0
	for _, c := range letters {
		n = n*26 + int(c-'A') + 1
	}
	return n
}

// CellRef is a parsed A1 cell reference with 1-based column and row.
type CellRef struct {
	Col int
	Row int
}

// RangeRef is a parsed A1 range. A single-cell reference parses as a range
// whose Start and End are equal.
type RangeRef struct {
	Start CellRef
	End   CellRef
}

// ParseCell parses a single A1 cell reference such as "M7".
func ParseCell(a1 string) (CellRef, error) {
	s := strings.ToUpper(strings.TrimSpace(a1))
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(s) {
		return CellRef{}, errors.NewParseError("a1", a1, "not a cell reference", nil)
	}
	row, err := strconv.Atoi(s[i:])
	if err != nil || row < 1 {
		return CellRef{}, errors.NewParseError("a1", a1, "invalid row number", err)
	}
	return CellRef{Col: ColumnIndex(s[:i]), Row: row}, nil
}

// ParseRange parses an A1 range such as "A2:L13" or a single cell such as "A1".
func ParseRange(a1 string) (RangeRef, error) {
	parts := strings.SplitN(strings.TrimSpace(a1), ":", 2)
	start, err := ParseCell(parts[0])
	if err != nil {
		return RangeRef{}, err
	}
	if len(parts) == 1 {
		return RangeRef{Start: start, End: start}, nil
	}
	end, err := ParseCell(parts[1])
	if err != nil {
		return RangeRef{}, err
	}
	return RangeRef{Start: start, End: end}, nil
}
