package csv

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"csvspend/pkg/models"
)

type FilterFunc func(models.CleanedRow) bool

// Create renders the rows passing the filter as a date,category,amount csv
// document. A nil filter keeps every row; absent dates render empty.
func Create(rows []models.CleanedRow, filter FilterFunc) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"date", "category", "amount"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if filter != nil && !filter(r) {
			continue
		}
		date := ""
		if r.HasDate {
			date = r.Date.Format("2006-01-02")
		}
		if err := w.Write([]string{date, r.Category, strconv.FormatFloat(r.Amount, 'f', 2, 64)}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
