// Package memory provides an in-process tabular store. It implements the same
// contract as the remote store clients and exists so the reconciliation engine
// can be exercised without a network.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/quillworks/controlsheet/pkg/errors"
	"github.com/quillworks/controlsheet/pkg/tables"
)

// Store is a mutex-guarded in-memory tabular store. It records every
// operation so tests can assert on write counts and idempotence.
type Store struct {
	mu   sync.Mutex
	data map[tables.Table]*tableData
	ops  []string
}

type tableData struct {
	headers []string
	rows    [][]string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{data: make(map[tables.Table]*tableData)}
}

// Seed replaces a table's contents wholesale. Intended for test setup.
func (s *Store) Seed(table tables.Table, headers []string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	td := &tableData{headers: append([]string(nil), headers...)}
	for _, r := range rows {
		td.rows = append(td.rows, append([]string(nil), r...))
	}
	s.data[table] = td
}

// Ops returns the operations performed so far, in order, as "op:Table" strings.
func (s *Store) Ops() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ops...)
}

// Writes counts the mutating operations performed so far.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, op := range s.ops {
		switch op[:strings.IndexByte(op, ':')] {
		case "append", "updateRange", "updateCell":
			n++
		}
	}
	return n
}

// Rows returns a copy of a table's data rows. Intended for test assertions.
func (s *Store) Rows(table tables.Table) [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	td, ok := s.data[table]
	if !ok {
		return nil
	}
	out := make([][]string, len(td.rows))
	for i, r := range td.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

// Get implements store.Client.
func (s *Store) Get(_ context.Context, table tables.Table) (*tables.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("get", table)

	td, ok := s.data[table]
	if !ok {
		return nil, errors.NewStoreError("get", table.String(), 404, "table not found")
	}
	headers := append([]string(nil), td.headers...)
	matrix := make([][]string, len(td.rows))
	for i, r := range td.rows {
		matrix[i] = append([]string(nil), r...)
	}
	return &tables.Snapshot{
		Table:   table,
		Headers: headers,
		Rows:    tables.RowsFromMatrix(headers, matrix),
	}, nil
}

// Append implements store.Client.
func (s *Store) Append(_ context.Context, table tables.Table, values [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("append", table)

	td, ok := s.data[table]
	if !ok {
		return errors.NewStoreError("append", table.String(), 404, "table not found")
	}
	for _, r := range values {
		td.rows = append(td.rows, append([]string(nil), r...))
	}
	return nil
}

// UpdateRange implements store.Client.
func (s *Store) UpdateRange(_ context.Context, table tables.Table, a1 string, values [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("updateRange", table)

	td, ok := s.data[table]
	if !ok {
		return errors.NewStoreError("updateRange", table.String(), 404, "table not found")
	}
	rng, err := tables.ParseRange(a1)
	if err != nil {
		return err
	}
	for i, cells := range values {
		sheetRow := rng.Start.Row + i
		for j, value := range cells {
			td.set(sheetRow, rng.Start.Col+j, value)
		}
	}
	return nil
}

// UpdateCell implements store.Client.
func (s *Store) UpdateCell(_ context.Context, table tables.Table, a1 string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("updateCell", table)

	td, ok := s.data[table]
	if !ok {
		return errors.NewStoreError("updateCell", table.String(), 404, "table not found")
	}
	ref, err := tables.ParseCell(a1)
	if err != nil {
		return err
	}
	td.set(ref.Row, ref.Col, value)
	return nil
}

// EnsureTable implements store.Client.
func (s *Store) EnsureTable(_ context.Context, table tables.Table, headers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("ensureTable", table)

	td, ok := s.data[table]
	if !ok {
		s.data[table] = &tableData{headers: append([]string(nil), headers...)}
		return nil
	}
	if !equalFold(td.headers, headers) {
		td.headers = append([]string(nil), headers...)
	}
	return nil
}

// set writes one cell, growing the matrix as needed. Sheet row 1 is the
// header row; data rows start at sheet row 2.
func (td *tableData) set(sheetRow, col int, value string) {
	if sheetRow == 1 {
		for len(td.headers) < col {
			td.headers = append(td.headers, "")
		}
		td.headers[col-1] = value
		return
	}
	idx := sheetRow - 2
	for len(td.rows) <= idx {
		td.rows = append(td.rows, nil)
	}
	for len(td.rows[idx]) < col {
		td.rows[idx] = append(td.rows[idx], "")
	}
	td.rows[idx][col-1] = value
}

func (s *Store) record(op string, table tables.Table) {
	s.ops = append(s.ops, fmt.Sprintf("%s:%s", op, table))
}

func equalFold(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}
