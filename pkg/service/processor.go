// Package service runs the analysis pipeline over local files for the CLI.
package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"csvspend/pkg/analyzer"
	"csvspend/pkg/config"
	"csvspend/pkg/csv"
	"csvspend/pkg/models"
	"csvspend/pkg/parser"
)

// Processor parses and analyzes files, writing one answer per file to out.
type Processor struct {
	config   *config.Config
	logger   *log.Logger
	parser   *parser.Parser
	analyzer *analyzer.Analyzer
	out      io.Writer

	// JSON prints the full result envelope instead of "path: answer" lines.
	JSON bool
	// OutFile, when set, receives the matched cleaned rows as csv. It needs
	// a single input file; directories are rejected.
	OutFile string
}

func NewProcessor(config *config.Config, logger *log.Logger, keywords analyzer.Keywords, out io.Writer) *Processor {
	return &Processor{
		config:   config,
		logger:   logger,
		parser:   parser.New(logger),
		analyzer: analyzer.New(logger, keywords),
		out:      out,
	}
}

// ProcessPath analyzes a single file, or every supported file in a directory.
func (p *Processor) ProcessPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		if p.OutFile != "" {
			return fmt.Errorf("matched-row export needs a single input file, got directory %s", path)
		}
		return p.ProcessDirectory(path)
	}
	if !parser.Supported(path) {
		return fmt.Errorf("unsupported file type: %s", path)
	}
	return p.ProcessFile(path)
}

// ProcessDirectory analyzes every supported file in dir. Unsupported entries
// are skipped; per-file failures are logged and do not stop the walk.
func (p *Processor) ProcessDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("error reading directory: %w", err)
	}

	for _, entry := range entries {
		if err := p.processEntry(dir, entry); err != nil {
			p.logger.Error("failed to process entry", "file", entry.Name(), "error", err)
		}
	}

	return nil
}

func (p *Processor) processEntry(dir string, entry os.DirEntry) error {
	if entry.IsDir() {
		return nil
	}
	if !parser.Supported(entry.Name()) {
		p.logger.Debug("skipping unsupported file", "file", entry.Name())
		return nil
	}
	return p.ProcessFile(filepath.Join(dir, entry.Name()))
}

// ProcessFile runs the pipeline over one file and writes its answer.
func (p *Processor) ProcessFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	table, err := p.parser.ProcessBytes(data, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to process %s: %w", path, err)
	}

	summary, err := p.analyzer.Analyze(table)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", path, err)
	}

	p.logger.Info("analyzed file", "file", path,
		"rows", summary.RowCount, "matched", summary.Matched, "answer", summary.Total)

	if p.OutFile != "" {
		matched, err := csv.Create(summary.Rows, p.analyzer.FoodFilter())
		if err != nil {
			return fmt.Errorf("failed to render matched rows: %w", err)
		}
		if err := os.WriteFile(p.OutFile, matched, 0644); err != nil {
			return fmt.Errorf("failed to write matched rows: %w", err)
		}
		p.logger.Info("wrote matched rows", "file", p.OutFile, "rows", summary.Matched)
	}

	if p.JSON {
		return json.NewEncoder(p.out).Encode(models.NewResult(summary.Total, p.config.Email))
	}
	_, err = fmt.Fprintf(p.out, "%s: %.2f\n", path, summary.Total)
	return err
}
