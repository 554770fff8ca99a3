package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/softaudit/softaudit/internal/config"
	"github.com/softaudit/softaudit/internal/database"
	"github.com/softaudit/softaudit/internal/model"
)

// sinceDateLayout is the accepted format for the --since flag.
const sinceDateLayout = "2006-01-02"

// NewCompareCmd creates the compare command.
// This command compares inventory runs stored in the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare inventory runs from the history database",
		Long: `Compare displays differences between two recorded inventory runs.

This command retrieves runs from the history database and shows:
- Software installed since the previous run
- Software removed since the previous run
- Version changes between the runs

The comparison requires at least two recorded runs. Use 'softaudit scan'
to collect inventories and record runs.

Examples:
  # Compare the latest two runs
  softaudit compare

  # List all recorded runs
  softaudit compare --list

  # Compare the latest run with a specific run by ID
  softaudit compare --with-run-id 5

  # Compare the latest run with the first run after a date
  softaudit compare --since 2026-01-01

  # Output comparison in JSON format
  softaudit compare --json`,
		Args: cobra.NoArgs,
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List recorded runs in the history database")

	// Comparison target flags
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare the latest run with a specific run by ID (use --list to see IDs)")
	cmd.Flags().StringP("since", "s", "",
		"Compare the latest run with the first run after this date (format: YYYY-MM-DD)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, _ []string) error {
	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Handle --list flag
	listRuns, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listRuns {
		return listRunHistory(ctx, cmd.OutOrStdout(), db)
	}

	// Get output format flags
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	// Get comparison target flags
	withRunID, err := cmd.Flags().GetInt64("with-run-id")
	if err != nil {
		return err
	}
	sinceDate, err := cmd.Flags().GetString("since")
	if err != nil {
		return err
	}

	previous, current, err := selectRuns(ctx, db, withRunID, sinceDate)
	if err != nil {
		return err
	}

	result := compareInventories(previous, current)

	out := cmd.OutOrStdout()
	switch {
	case jsonOutput:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case markdownOutput:
		return outputComparisonMarkdown(out, result)
	default:
		return outputComparisonText(out, result)
	}
}

// selectRuns picks the previous and current inventories to compare.
// The current run is always the latest; the previous run is chosen by
// the --with-run-id or --since flag, or defaults to the second latest.
func selectRuns(ctx context.Context, db *database.AuditDB, withRunID int64, sinceDate string) (previous, current *model.Inventory, err error) {
	latest, err := db.GetLatestRuns(ctx, 2)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load runs: %w", err)
	}
	if len(latest) == 0 {
		return nil, nil, errors.New("no recorded runs found (use 'softaudit scan' to record one)")
	}
	current = latest[0]

	switch {
	case withRunID > 0:
		previous, err = db.GetRunByID(ctx, withRunID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load run %d: %w", withRunID, err)
		}
		if previous == nil {
			return nil, nil, fmt.Errorf("run %d not found (use --list to see available IDs)", withRunID)
		}
	case sinceDate != "":
		since, parseErr := time.Parse(sinceDateLayout, sinceDate)
		if parseErr != nil {
			return nil, nil, fmt.Errorf("invalid --since date %q (expected YYYY-MM-DD): %w", sinceDate, parseErr)
		}
		previous, _, err = db.GetFirstRunSince(ctx, since)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load runs since %s: %w", sinceDate, err)
		}
		if previous == nil {
			return nil, nil, fmt.Errorf("no run recorded after %s", sinceDate)
		}
	default:
		if len(latest) < 2 {
			return nil, nil, errors.New("comparison requires at least two recorded runs")
		}
		previous = latest[1]
	}

	return previous, current, nil
}

// listRunHistory prints the stored run metadata, newest first.
func listRunHistory(ctx context.Context, out io.Writer, db *database.AuditDB) error {
	runs, err := db.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No recorded runs found in the history database.")
		fmt.Fprintln(out, "\nUse 'softaudit scan' to collect and record an inventory.")
		return nil
	}

	fmt.Fprintf(out, "%-6s  %-20s  %-20s  %s\n", "ID", "Hostname", "Collected", "Records")
	fmt.Fprintln(out, strings.Repeat("-", 60))
	for _, run := range runs {
		fmt.Fprintf(out, "%-6d  %-20s  %-20s  %d\n",
			run.ID, run.Hostname,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.RecordCount)
	}
	return nil
}

// VersionChange describes one package whose version differs between runs.
type VersionChange struct {
	// Name is the software display name.
	Name string `json:"name"`

	// PreviousVersion is the version in the previous run.
	PreviousVersion string `json:"previous_version"`

	// CurrentVersion is the version in the current run.
	CurrentVersion string `json:"current_version"`
}

// RunSummary describes one side of a comparison.
type RunSummary struct {
	// Hostname is the machine the run was collected from.
	Hostname string `json:"hostname"`

	// CollectedAt is when the run was collected.
	CollectedAt time.Time `json:"collected_at"`

	// RecordCount is the number of records in the run.
	RecordCount int `json:"record_count"`
}

// ComparisonResult holds the differences between two inventory runs.
type ComparisonResult struct {
	// PreviousRun summarizes the older run.
	PreviousRun RunSummary `json:"previous_run"`

	// CurrentRun summarizes the newer run.
	CurrentRun RunSummary `json:"current_run"`

	// Added lists records present only in the current run.
	Added []model.SoftwareRecord `json:"added"`

	// Removed lists records present only in the previous run.
	Removed []model.SoftwareRecord `json:"removed"`

	// Changed lists packages whose version differs between the runs.
	Changed []VersionChange `json:"changed"`

	// UnchangedCount is the number of packages identical in both runs.
	UnchangedCount int `json:"unchanged_count"`
}

// compareInventories diffs two runs keyed by software name.
//
// Design decision: The display name is the identity key. Install dates
// and locations routinely change on upgrade, so matching on the full
// record would report every upgrade as a remove plus an add.
func compareInventories(previous, current *model.Inventory) *ComparisonResult {
	result := &ComparisonResult{
		PreviousRun: RunSummary{
			Hostname:    previous.Hostname,
			CollectedAt: previous.CollectedAt,
			RecordCount: previous.Len(),
		},
		CurrentRun: RunSummary{
			Hostname:    current.Hostname,
			CollectedAt: current.CollectedAt,
			RecordCount: current.Len(),
		},
	}

	prevByName := make(map[string]model.SoftwareRecord, previous.Len())
	for _, r := range previous.Records {
		prevByName[r.Name] = r
	}
	currByName := make(map[string]model.SoftwareRecord, current.Len())
	for _, r := range current.Records {
		currByName[r.Name] = r
	}

	for _, r := range current.Records {
		prev, ok := prevByName[r.Name]
		switch {
		case !ok:
			result.Added = append(result.Added, r)
		case prev.Version != r.Version:
			result.Changed = append(result.Changed, VersionChange{
				Name:            r.Name,
				PreviousVersion: prev.Version,
				CurrentVersion:  r.Version,
			})
		default:
			result.UnchangedCount++
		}
	}

	for _, r := range previous.Records {
		if _, ok := currByName[r.Name]; !ok {
			result.Removed = append(result.Removed, r)
		}
	}

	// Record order follows source enumeration; sort the diff for stable,
	// readable output.
	sort.Slice(result.Added, func(i, j int) bool { return result.Added[i].Name < result.Added[j].Name })
	sort.Slice(result.Removed, func(i, j int) bool { return result.Removed[i].Name < result.Removed[j].Name })
	sort.Slice(result.Changed, func(i, j int) bool { return result.Changed[i].Name < result.Changed[j].Name })

	return result
}

// outputComparisonMarkdown writes the comparison result as Markdown.
func outputComparisonMarkdown(out io.Writer, result *ComparisonResult) error {
	fmt.Fprintf(out, "# Inventory Comparison: %s\n\n", result.CurrentRun.Hostname)

	fmt.Fprintln(out, "| | Previous | Current |")
	fmt.Fprintln(out, "|---|---|---|")
	fmt.Fprintf(out, "| Collected | %s | %s |\n",
		result.PreviousRun.CollectedAt.Format("2006-01-02 15:04"),
		result.CurrentRun.CollectedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "| Records | %d | %d |\n",
		result.PreviousRun.RecordCount, result.CurrentRun.RecordCount)

	if len(result.Added) > 0 {
		fmt.Fprintf(out, "\n## Installed (%d)\n\n", len(result.Added))
		for _, r := range result.Added {
			fmt.Fprintf(out, "- **%s** %s (%s)\n", r.Name, r.Version, r.Publisher)
		}
	}

	if len(result.Removed) > 0 {
		fmt.Fprintf(out, "\n## Removed (%d)\n\n", len(result.Removed))
		for _, r := range result.Removed {
			fmt.Fprintf(out, "- ~~**%s** %s~~\n", r.Name, r.Version)
		}
	}

	if len(result.Changed) > 0 {
		fmt.Fprintf(out, "\n## Version Changes (%d)\n\n", len(result.Changed))
		for _, c := range result.Changed {
			fmt.Fprintf(out, "- **%s**: %s -> %s\n", c.Name, c.PreviousVersion, c.CurrentVersion)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Fprintf(out, "\n---\n\n*%d packages unchanged*\n", result.UnchangedCount)
	}

	return nil
}

// outputComparisonText writes the comparison result in human-readable form.
func outputComparisonText(out io.Writer, result *ComparisonResult) error {
	fmt.Fprintf(out, "Inventory Comparison: %s\n", result.CurrentRun.Hostname)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "\nPrevious run: %s (%d records)\n",
		result.PreviousRun.CollectedAt.Format("2006-01-02 15:04:05"),
		result.PreviousRun.RecordCount)
	fmt.Fprintf(out, "Current run:  %s (%d records)\n",
		result.CurrentRun.CollectedAt.Format("2006-01-02 15:04:05"),
		result.CurrentRun.RecordCount)

	if len(result.Added) > 0 {
		fmt.Fprintf(out, "\nInstalled (%d):\n", len(result.Added))
		for _, r := range result.Added {
			fmt.Fprintf(out, "  [+] %s %s (%s)\n", r.Name, r.Version, r.Publisher)
		}
	}

	if len(result.Removed) > 0 {
		fmt.Fprintf(out, "\nRemoved (%d):\n", len(result.Removed))
		for _, r := range result.Removed {
			fmt.Fprintf(out, "  [-] %s %s\n", r.Name, r.Version)
		}
	}

	if len(result.Changed) > 0 {
		fmt.Fprintf(out, "\nVersion Changes (%d):\n", len(result.Changed))
		for _, c := range result.Changed {
			fmt.Fprintf(out, "  [~] %s: %s -> %s\n", c.Name, c.PreviousVersion, c.CurrentVersion)
		}
	}

	if len(result.Added) == 0 && len(result.Removed) == 0 && len(result.Changed) == 0 {
		fmt.Fprintln(out, "\nNo differences found.")
	}

	if result.UnchangedCount > 0 {
		fmt.Fprintf(out, "\nUnchanged: %d packages\n", result.UnchangedCount)
	}

	return nil
}
