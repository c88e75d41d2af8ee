package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"unicode/utf8"

	"csvspend/pkg/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// parseCSV decodes a UTF-8 CSV document whose first record is the header
// row.
func (p *Parser) parseCSV(data []byte) (*models.Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("csv is not valid utf-8")
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // allow ragged rows; absent cells are handled downstream

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv is empty")
	}

	p.logger.Debug("parsed csv", "total_records", len(records), "header", records[0])

	return models.NewTable(records[0], records[1:]), nil
}
