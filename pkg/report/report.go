// Package report classifies cleaned rows against a match predicate and
// renders a line-per-row preview of what counted toward the total. It is
// isolated from the CLI so any caller can reuse the same breakdown.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"csvspend/pkg/models"
)

// Status indicates the filter outcome for a given row.
//
//   - Excluded: the category missed every keyword, the amount is not counted.
//   - Included: the row counts toward the total.
type Status int

const (
	Excluded Status = iota
	Included
)

// Entry pairs one cleaned row with its filter outcome.
type Entry struct {
	Row    models.CleanedRow
	Status Status
}

// Report holds every row's outcome in source order plus the included subset.
type Report struct {
	Items    []Entry
	included []models.CleanedRow
}

// Build classifies rows with the given predicate. A nil predicate excludes
// everything.
func Build(rows []models.CleanedRow, match func(models.CleanedRow) bool) *Report {
	items := make([]Entry, 0, len(rows))
	included := make([]models.CleanedRow, 0)

	for _, row := range rows {
		status := Excluded
		if match != nil && match(row) {
			status = Included
		}
		items = append(items, Entry{Row: row, Status: status})
		if status == Included {
			included = append(included, row)
		}
	}

	return &Report{Items: items, included: included}
}

// IncludedCount returns how many rows count toward the total.
func (r *Report) IncludedCount() int {
	return len(r.included)
}

// ExcludedCount returns how many rows were filtered out.
func (r *Report) ExcludedCount() int {
	return len(r.Items) - len(r.included)
}

// IncludedRows returns the subset of rows that count toward the total.
func (r *Report) IncludedRows() []models.CleanedRow {
	return r.included
}

// Print writes one line per row, "+" (green) for included and "=" (gray) for
// excluded, followed by a summary line. Rows without a date render a blank
// date field.
func (r *Report) Print(w io.Writer) {
	includedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	excludedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray

	for _, e := range r.Items {
		date := "          "
		if e.Row.HasDate {
			date = e.Row.Date.Format("2006-01-02")
		}
		line := fmt.Sprintf("%s | %-30s | %10.2f", date, e.Row.Category, e.Row.Amount)
		if e.Status == Included {
			fmt.Fprintln(w, includedStyle.Render("+ "+line))
			continue
		}
		fmt.Fprintln(w, excludedStyle.Render("= "+line))
	}

	if r.IncludedCount() == 0 {
		fmt.Fprintf(w, "\nNo rows count toward the total\n")
		return
	}
	fmt.Fprintf(w, "\n%d of %d row(s) count toward the total\n", r.IncludedCount(), len(r.Items))
}
