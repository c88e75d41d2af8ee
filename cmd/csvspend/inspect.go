package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"csvspend/pkg/analyzer"
	"csvspend/pkg/parser"
	"csvspend/pkg/report"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Explain which columns were picked and which rows counted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, keywords, err := buildConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		table, err := parser.New(logger).ProcessBytes(data, filepath.Base(args[0]))
		if err != nil {
			return err
		}

		a := analyzer.New(logger, keywords)
		summary, err := a.Analyze(table)
		if err != nil {
			return err
		}

		printer := pp.New()
		if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice == 0 {
			printer.SetColoringEnabled(false)
		}
		printer.Println(a.Classify(table.Headers))
		printer.Println(summary.Columns)

		fmt.Println()
		report.Build(summary.Rows, a.FoodFilter()).Print(os.Stdout)
		fmt.Printf("\nTotal: %.2f\n", summary.Total)
		return nil
	},
}
