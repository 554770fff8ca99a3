package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for softaudit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "softaudit",
		Short: "Installed-software inventory and report exporter",
		Long: `softaudit enumerates the software installed on the local host and
exports the inventory as a TXT, CSV, HTML, XML, JSON, or Markdown report.

Each run can also be recorded in a local history database, which the
compare subcommand uses to show what was installed, removed, or upgraded
between runs.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
