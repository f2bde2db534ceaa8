// Package main provides the CLI entry point for sheetbatch.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/logs"
)

var (
	logLevel string
	logFile  string
	journal  bool

	logger    *slog.Logger
	logCloser io.Closer
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetbatch",
		Short: "Compile styled sheet layouts into spreadsheet batch updates",
		Long: `sheetbatch compiles a CUE layout of styled cells, rows and sheets into
one ordered batch update, and applies it to Google Sheets or a local
xlsx workbook.`,
		SilenceUsage:       true,
		PersistentPreRunE:  setupLogger,
		PersistentPostRunE: closeLogger,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also append JSON logs to this file")
	rootCmd.PersistentFlags().BoolVar(&journal, "journal", false, "Also send logs to the systemd journal")

	rootCmd.AddCommand(
		newCompileCmd(),
		newRenderCmd(),
		newPushCmd(),
		newReadCmd(),
		newLookupCmd(),
	)
	return rootCmd
}

func setupLogger(cmd *cobra.Command, args []string) error {
	cfg := logs.Config{
		Level:    logLevel,
		Terminal: cmd.ErrOrStderr(),
		Journal:  journal,
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		cfg.File = f
		logCloser = f
	}

	var err error
	logger, err = logs.New(cfg)
	return err
}

func closeLogger(cmd *cobra.Command, args []string) error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}
