package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"csvspend/pkg/analyzer"
	"csvspend/pkg/config"
	"csvspend/pkg/service"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "csvspend",
	Short: "Food-spending analyzer for csv and xls expense files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <path>...",
	Short: "Sum food-related spending in files or directories",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, keywords, err := buildConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		processor := service.NewProcessor(cfg, logger, keywords, os.Stdout)
		processor.JSON, _ = cmd.Flags().GetBool("json")
		processor.OutFile, _ = cmd.Flags().GetString("out")

		var paths []string
		for _, arg := range args {
			matches, err := filepath.Glob(arg)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				return fmt.Errorf("no files found matching pattern %s", arg)
			}
			paths = append(paths, matches...)
		}
		if processor.OutFile != "" && len(paths) > 1 {
			return fmt.Errorf("--out takes a single input file, got %d", len(paths))
		}

		for _, path := range paths {
			if err := processor.ProcessPath(path); err != nil {
				logger.Warn("failed to process path", "error", err, "path", path)
			}
		}
		return nil
	},
}

// buildConfig resolves the configuration and the keyword tables for a command.
func buildConfig(cmd *cobra.Command) (*config.Config, analyzer.Keywords, error) {
	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, analyzer.Keywords{}, err
	}

	keywords := analyzer.DefaultKeywords()
	if cfg.KeywordsFile != "" {
		if keywords, err = analyzer.LoadKeywords(cfg.KeywordsFile); err != nil {
			return nil, analyzer.Keywords{}, err
		}
	}
	return cfg, keywords, nil
}

func newLogger(cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "csvspend",
	})
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().String("keywords", "", "Keyword overrides file (yaml)")

	// Flags specific to the analyze subcommand
	analyzeCmd.Flags().Bool("json", false, "Print the full result envelope as JSON")
	analyzeCmd.Flags().String("out", "", "Write the matched rows to a csv file")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
