package models

import "strings"

// Table is a parsed tabular file: one header row plus the data rows in file
// order. Headers are canonical (trimmed, lowercased); rows are positional and
// may be shorter or longer than the header row.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable builds a Table, canonicalizing every header exactly once.
// Duplicate canonical headers keep their positions; consumers scanning for a
// header bind the leftmost match.
func NewTable(headers []string, rows [][]string) *Table {
	canonical := make([]string, len(headers))
	for i, h := range headers {
		canonical[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return &Table{Headers: canonical, Rows: rows}
}

// Cell returns the value of a row at the given column index, or "" when the
// row is too short to have one.
func (t *Table) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
