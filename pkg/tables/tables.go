// Package tables defines the control sheet table contract: table names, their
// fixed column schemas, and the row/snapshot types the reconciliation engine
// works on. Schemas are embedded so every access path writes the same columns
// in the same order.
package tables

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/quillworks/controlsheet/pkg/errors"
)

// Table identifies a named table in the control sheet.
type Table string

// Known tables in the control sheet.
const (
	Calendar      Table = "Calendar"
	QuotesBacklog Table = "Quotes_Backlog"
	Analytics     Table = "Analytics"
	Reports       Table = "Reports"
	Experiments   Table = "Experiments"
)

// String returns the table name as stored in the control sheet.
func (t Table) String() string {
	return string(t)
}

//go:embed schemas.yaml
var schemasYAML []byte

// schemaFile mirrors the embedded schemas.yaml document.
type schemaFile struct {
	Tables map[string][]string `yaml:"tables"`
}

var schemas = mustLoadSchemas()

func mustLoadSchemas() map[Table][]string {
	var file schemaFile
	if err := yaml.Unmarshal(schemasYAML, &file); err != nil {
		panic(fmt.Sprintf("tables: embedded schemas.yaml is corrupt: %v", err))
	}
	out := make(map[Table][]string, len(file.Tables))
	for name, headers := range file.Tables {
		out[Table(name)] = headers
	}
	return out
}

// Headers returns the fixed column schema for a known table.
// The returned slice is a copy; callers may append to it freely.
func Headers(t Table) ([]string, error) {
	headers, ok := schemas[t]
	if !ok {
		return nil, &errors.ValidationError{
			Field:   "table",
			Value:   string(t),
			Message: "no schema defined",
		}
	}
	out := make([]string, len(headers))
	copy(out, headers)
	return out, nil
}

// MustHeaders is Headers for known-constant tables; it panics on unknown tables.
func MustHeaders(t Table) []string {
	headers, err := Headers(t)
	if err != nil {
		panic(err)
	}
	return headers
}
