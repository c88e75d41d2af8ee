// Package analyzer infers which columns of a table hold the amount, the
// category and the date, cleans every row, and sums the rows whose category
// names food spending.
package analyzer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/montanaflynn/stats"

	"csvspend/pkg/models"
	"csvspend/pkg/normalize"
)

// ErrNoCategoryColumn means no column could serve as the category, which
// only happens for a table with no columns at all. The HTTP boundary maps it
// to a client error.
var ErrNoCategoryColumn = errors.New("could not identify category column")

// Analyzer runs the infer, clean, filter and sum pipeline over a table.
type Analyzer struct {
	logger   *log.Logger
	keywords Keywords
}

// New creates an Analyzer with the given keyword tables.
func New(logger *log.Logger, keywords Keywords) *Analyzer {
	return &Analyzer{
		logger:   logger,
		keywords: keywords,
	}
}

// InferColumns picks the amount, category and date columns from canonical
// headers. The leftmost header containing a keyword wins. Without a keyword
// hit the amount falls back to the second column (first when there is only
// one), the category to the first, and the date to none.
func (a *Analyzer) InferColumns(headers []string) (models.Columns, error) {
	if len(headers) == 0 {
		return models.Columns{}, ErrNoCategoryColumn
	}

	cols := models.Columns{Amount: -1, Category: -1, Date: -1}
	for i, h := range headers {
		if cols.Amount == -1 && containsAny(h, a.keywords.Amount) {
			cols.Amount = i
		}
		if cols.Category == -1 && containsAny(h, a.keywords.Category) {
			cols.Category = i
		}
		if cols.Date == -1 && containsAny(h, a.keywords.Date) {
			cols.Date = i
		}
	}

	if cols.Amount == -1 {
		if len(headers) > 1 {
			cols.Amount = 1
		} else {
			cols.Amount = 0
		}
	}
	if cols.Category == -1 {
		cols.Category = 0
	}
	return cols, nil
}

// FoodFilter returns the predicate that selects food rows: the cleaned
// category must contain one of the food keywords. The same predicate picks
// the rows Analyze sums.
func (a *Analyzer) FoodFilter() func(models.CleanedRow) bool {
	return func(row models.CleanedRow) bool {
		return containsAny(row.Category, a.keywords.Food)
	}
}

// Analyze cleans every row of the table and sums the food rows' amounts,
// rounded to two decimals (half away from zero). Per-field normalization
// failures never abort the run; they fall back to 0, "" or an absent date.
func (a *Analyzer) Analyze(table *models.Table) (*models.Summary, error) {
	cols, err := a.InferColumns(table.Headers)
	if err != nil {
		return nil, err
	}

	dateHeader := ""
	if cols.HasDate() {
		dateHeader = table.Headers[cols.Date]
	}
	a.logger.Debug("inferred columns",
		"amount", table.Headers[cols.Amount],
		"category", table.Headers[cols.Category],
		"date", dateHeader)

	rows := make([]models.CleanedRow, 0, len(table.Rows))
	for _, raw := range table.Rows {
		row := models.CleanedRow{
			Amount:   normalize.Amount(table.Cell(raw, cols.Amount)),
			Category: normalize.Category(table.Cell(raw, cols.Category)),
		}
		if cols.HasDate() {
			row.Date, row.HasDate = normalize.Date(table.Cell(raw, cols.Date))
		}
		rows = append(rows, row)
	}

	isFood := a.FoodFilter()
	amounts := make([]float64, 0, len(rows))
	for _, row := range rows {
		if isFood(row) {
			amounts = append(amounts, row.Amount)
		}
	}

	total := 0.0
	if len(amounts) > 0 {
		total, err = stats.Sum(amounts)
		if err != nil {
			return nil, fmt.Errorf("failed to sum amounts: %w", err)
		}
	}
	rounded, err := stats.Round(total, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to round total: %w", err)
	}

	a.logger.Debug("analysis complete",
		"rows", len(rows), "matched", len(amounts), "total", rounded)

	return &models.Summary{
		Columns:  cols,
		RowCount: len(rows),
		Matched:  len(amounts),
		Rows:     rows,
		Total:    rounded,
	}, nil
}

// Classification labels one header with the roles its name matches.
type Classification struct {
	Header string
	Roles  []string
}

// Classify explains inference: for every header, which role keywords it
// contains. Headers matching nothing get an empty role list.
func (a *Analyzer) Classify(headers []string) []Classification {
	out := make([]Classification, 0, len(headers))
	for _, h := range headers {
		c := Classification{Header: h, Roles: []string{}}
		if containsAny(h, a.keywords.Amount) {
			c.Roles = append(c.Roles, "amount")
		}
		if containsAny(h, a.keywords.Category) {
			c.Roles = append(c.Roles, "category")
		}
		if containsAny(h, a.keywords.Date) {
			c.Roles = append(c.Roles, "date")
		}
		out = append(out, c)
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
