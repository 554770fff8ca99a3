package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/softaudit/softaudit/internal/collector"
	"github.com/softaudit/softaudit/internal/config"
	"github.com/softaudit/softaudit/internal/database"
	"github.com/softaudit/softaudit/internal/log"
	"github.com/softaudit/softaudit/internal/model"
	"github.com/softaudit/softaudit/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Collect the installed-software inventory and export a report",
		Long: `Scan enumerates the software installed on the local host, normalizes
each entry (name, version, install date, publisher, install location),
and exports the inventory in the requested format.

Reports are written to a timestamped file (SoftAudit_<date>_<time>.<ext>)
in the output directory. Each run is also recorded in a local history
database unless --no-history is given.

Examples:
  # Text report in the default reports directory
  softaudit scan

  # CSV report in a custom directory
  softaudit scan --format csv --output-dir ./reports

  # HTML report as a table
  softaudit scan --format html --html-style table

  # XML report using streaming serialization
  softaudit scan --format xml --xml-mode stream

  # Print the report to stdout instead of writing a file
  softaudit scan --format json --no-file

Configuration file (.softaudit) example:
  format: csv
  output_dir: ./reports
  save_history: true`,
		Args: cobra.NoArgs,
		RunE: runScanCmd,
	}

	// Report flags
	cmd.Flags().StringP("format", "f", string(model.FormatTXT),
		"Report format: txt, csv, html, xml, json, or markdown")
	cmd.Flags().String("html-style", "",
		"HTML sub-format: table or list (required with --format html)")
	cmd.Flags().String("xml-mode", "",
		"XML sub-format: string or stream (required with --format xml)")
	cmd.Flags().StringP("output-dir", "o", "",
		"Report destination directory (default: XDG data dir, created if needed)")
	cmd.Flags().Bool("no-file", false,
		"Write the report to stdout instead of a file")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .softaudit in current or home directory)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, _ []string) error {
	// Build config from file and flags
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with home directory masking
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cmd, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the configuration file and cobra
// command flags. File values apply first, then flags, so an explicit
// flag always wins over the file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error if not
	// found. If no path was specified, a missing file is not an error.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cf.Apply(cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if cmd.Flags().Changed("format") {
		raw, err := cmd.Flags().GetString("format")
		if err != nil {
			return nil, err
		}
		cfg.Format, err = model.ParseFormat(raw)
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("html-style") {
		raw, err := cmd.Flags().GetString("html-style")
		if err != nil {
			return nil, err
		}
		cfg.HTMLStyle, err = model.ParseHTMLStyle(raw)
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("xml-mode") {
		raw, err := cmd.Flags().GetString("xml-mode")
		if err != nil {
			return nil, err
		}
		cfg.XMLMode, err = model.ParseXMLStyle(raw)
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir, err = cmd.Flags().GetString("output-dir")
		if err != nil {
			return nil, err
		}
	}

	cfg.NoFile, err = cmd.Flags().GetBool("no-file")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	if noHistory {
		cfg.SaveHistory = false
	}

	return cfg, nil
}

// runScan executes the inventory collection and report export.
func runScan(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting scan",
		"format", cfg.Format,
		"outputDir", cfg.OutputDir,
		"noFile", cfg.NoFile,
		"saveHistory", cfg.SaveHistory,
	)

	sources := collector.DefaultSources()
	for _, sc := range cfg.ExtraSources {
		sources = append(sources, collector.NewStatusFileSource(sc.Name, sc.Path, sc.InfoDir))
	}

	c := collector.New(sources,
		collector.WithLogger(logger),
		collector.WithProgress(func(source string, percent int) {
			logger.Debug("collection progress", "source", source, "percent", percent)
		}),
	)

	fmt.Fprintln(cmd.OutOrStdout(), "Collecting installed software...")
	startTime := time.Now()

	records, err := c.Collect(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		// A failing source still yields the records of the others.
		logger.Warn("some sources were unavailable", "error", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: some sources were unavailable: %v\n", err)
	}

	elapsed := time.Since(startTime)
	fmt.Fprintf(cmd.OutOrStdout(), "Collected %d records in %s\n\n",
		len(records), elapsed.Round(time.Millisecond))

	if err := outputReport(cmd, cfg, records); err != nil {
		return err
	}

	return saveRun(ctx, cfg, records, logger)
}

// outputReport exports the records in the configured format, either to
// stdout or to a timestamped file in the output directory.
func outputReport(cmd *cobra.Command, cfg *config.Config, records []model.SoftwareRecord) error {
	if cfg.NoFile {
		w, err := report.New(cfg.Format, cfg.Style(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if _, err := w.Write(records); err != nil {
			return fmt.Errorf("failed to render %s report: %w", cfg.Format, err)
		}
		return nil
	}

	path, err := report.WriteFile(records, cfg.Format, cfg.Style(), cfg.OutputDir)
	if err != nil {
		return err
	}

	size := "unknown size"
	if fi, err := os.Stat(path); err == nil {
		size = humanize.Bytes(uint64(fi.Size()))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written: %s (%s)\n", path, size)
	return nil
}

// saveRun records the run in the history database if enabled.
func saveRun(ctx context.Context, cfg *config.Config, records []model.SoftwareRecord, logger *slog.Logger) error {
	if !cfg.SaveHistory {
		return nil
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, model.NewInventory(records))
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	logger.Info("run saved to history", "runID", id, "records", len(records))
	return nil
}
