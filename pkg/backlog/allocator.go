// Package backlog mines candidate quotes out of source text and assigns them
// stable backlog identifiers.
package backlog

import "fmt"

// AllocateIDs returns n new quote IDs of the form Q-0001, derived from the
// table's current data row count at the moment of allocation. IDs are
// strictly increasing and zero-padded, starting at currentRowCount+1.
//
// There is no reservation step: two concurrent mining runs that read the same
// row count would mint colliding IDs. At-most-one concurrent writer per table
// is a documented precondition of the pipeline, not an enforced guarantee.
func AllocateIDs(n, currentRowCount int) []string {
	ids := make([]string, 0, n)
	base := currentRowCount + 1
	for i := 0; i < n; i++ {
		ids = append(ids, fmt.Sprintf("Q-%04d", base+i))
	}
	return ids
}
