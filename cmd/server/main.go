package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"csvspend/pkg/config"
	"csvspend/pkg/server"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "csvspend",
	})

	pflag.Int("port", 8000, "Server port")
	cfgFile := pflag.StringP("config", "c", "", "Config file (default is config.yaml)")
	pflag.Parse()

	cfg, err := config.Build(*cfgFile, pflag.CommandLine)
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err != nil {
		logger.Warn("unknown log level, keeping info", "log_level", cfg.LogLevel)
	} else {
		logger.SetLevel(level)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to set up server", "error", err)
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	logger.Info("starting server", "addr", addr)
	if err := srv.Start(addr); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
