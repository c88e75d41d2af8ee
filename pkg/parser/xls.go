package parser

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"

	"csvspend/pkg/models"
)

// parseXLS reads the first sheet of a legacy Excel workbook, first row as
// header. Only the CLI takes this path; uploads are CSV-only.
func (p *Parser) parseXLS(data []byte) (*models.Table, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("error creating workbook: %w", err)
	}

	rows := workbook.ReadAllCells(10000)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in sheet")
	}

	p.logger.Debug("parsed xls", "total_rows", len(rows), "header", rows[0])

	return models.NewTable(rows[0], rows[1:]), nil
}
