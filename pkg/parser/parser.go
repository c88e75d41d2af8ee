// Package parser turns raw file bytes into a models.Table. The format is
// picked from the filename extension; what the columns mean is the
// analyzer's job, not the parser's.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"csvspend/pkg/models"
)

type FileType string

const (
	TypeCSV FileType = "csv"
	TypeXLS FileType = "xls"
)

type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

// ProcessBytes parses file bytes into a table with canonical headers.
func (p *Parser) ProcessBytes(data []byte, filename string) (*models.Table, error) {
	fileType := detectType(filename)
	p.logger.Debug("detected file type", "type", fileType, "filename", filename)

	switch fileType {
	case TypeCSV:
		return p.parseCSV(data)
	case TypeXLS:
		return p.parseXLS(data)
	default:
		p.logger.Debug("unknown file type", "filename", filename)
		return nil, fmt.Errorf("unknown file type")
	}
}

// Supported reports whether the filename maps to a parseable format.
func Supported(filename string) bool {
	return detectType(filename) != ""
}

func detectType(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return TypeCSV
	case ".xls":
		return TypeXLS
	}
	return ""
}
