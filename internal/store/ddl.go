package store

import (
	_ "embed"
	"strings"
)

//go:embed schema.sql
var ddlFile string

// DDLStatements returns the CREATE TABLE / INDEX statements from schema.sql
// for bootstrap and test setup. It splits on semicolons and trims whitespace.
func DDLStatements() []string {
	parts := strings.Split(ddlFile, ";")
	var out []string
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
