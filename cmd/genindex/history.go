package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jamesainslie/genindex/pkg/genindex/config"
	"github.com/jamesainslie/genindex/pkg/genindex/manifest"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recorded runs",
	Long: `View the history of generation runs.

A run is recorded when history.enabled is set in the configuration or
--record is passed. Each record lists the pages written and the errors
met along the way.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show details of a recorded run",
	Long:  `Display detailed information about a run by its ID or a unique ID prefix.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean up old history entries",
	Long:  `Remove history entries older than the retention period.`,
	Args:  cobra.NoArgs,
	RunE:  runHistoryClean,
}

var historyLimit int

// maxListedPages bounds the pages printed by history show.
const maxListedPages = 50

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum number of entries to show")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyCleanCmd)
	rootCmd.AddCommand(historyCmd)
}

// getHistory returns the configured run history.
func getHistory() (*manifest.Manifest, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	m, err := openHistory(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize history: %w", err)
	}
	return m, cfg, nil
}

// runHistory lists recent runs.
func runHistory(cmd *cobra.Command, _ []string) error {
	m, _, err := getHistory()
	if err != nil {
		return err
	}

	entries, err := m.List(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No history entries found.")
		fmt.Fprintln(out, "Run 'genindex --record [top_dir]' to record a run.")
		return nil
	}

	fmt.Fprintf(out, "\n%-38s  %-14s  %-7s  %-7s  %s\n", "ID", "WHEN", "PAGES", "ERRORS", "ROOT")
	fmt.Fprintln(out, strings.Repeat("-", 90))

	for _, entry := range entries {
		fmt.Fprintf(out, "%-38s  %-14s  %-7d  %-7d  %s\n",
			truncateString(entry.ID, 38),
			humanize.Time(entry.Timestamp),
			entry.Summary.PagesWritten,
			entry.Summary.Errors,
			entry.Root,
		)
	}

	fmt.Fprintln(out, strings.Repeat("-", 90))
	fmt.Fprintf(out, "\nShowing %d entries. Use --limit to see more.\n", len(entries))
	fmt.Fprintln(out, "Use 'genindex history show <id>' for details on a specific run.")

	return nil
}

// runHistoryShow displays details of a specific run.
func runHistoryShow(cmd *cobra.Command, args []string) error {
	m, _, err := getHistory()
	if err != nil {
		return err
	}

	entry, err := m.Get(args[0])
	if err != nil {
		return fmt.Errorf("failed to get entry: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nRun Details")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintf(out, "ID:          %s\n", entry.ID)
	fmt.Fprintf(out, "Timestamp:   %s\n", entry.Timestamp.Local().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(out, "Root:        %s\n", entry.Root)
	fmt.Fprintf(out, "Options:     %s\n", describeSettings(entry.Settings))
	fmt.Fprintf(out, "Directories: %d\n", entry.Summary.DirsIndexed)
	fmt.Fprintf(out, "Entries:     %d\n", entry.Summary.EntriesListed)
	fmt.Fprintf(out, "Written:     %d\n", entry.Summary.PagesWritten)
	fmt.Fprintf(out, "Unchanged:   %d\n", len(entry.Unchanged))
	fmt.Fprintf(out, "Elapsed:     %s\n", entry.Summary.Elapsed)
	if entry.Summary.Interrupted {
		fmt.Fprintln(out, "Interrupted: yes")
	}

	if len(entry.Written) > 0 {
		fmt.Fprintln(out, "\nPages:")
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for i, p := range entry.Written {
			if i == maxListedPages {
				fmt.Fprintf(out, "\n... and %d more pages\n", len(entry.Written)-maxListedPages)
				break
			}
			fmt.Fprintln(out, p)
		}
	}

	if len(entry.Errors) > 0 {
		fmt.Fprintln(out, "\nErrors:")
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for _, e := range entry.Errors {
			fmt.Fprintf(out, "%-8s %s: %s\n", e.Op, e.Path, e.Error)
		}
	}

	return nil
}

// runHistoryClean removes old history entries.
func runHistoryClean(cmd *cobra.Command, _ []string) error {
	m, cfg, err := getHistory()
	if err != nil {
		return err
	}

	retentionDays := cfg.History.RetentionDays
	if retentionDays <= 0 {
		retentionDays = config.DefaultRetentionDays
	}

	printInfo(cmd, "Cleaning history entries older than %d days...", retentionDays)

	removed, err := m.Cleanup(retentionDays)
	if err != nil {
		return fmt.Errorf("failed to clean history: %w", err)
	}

	printInfo(cmd, "Removed %d entries.", removed)
	return nil
}

// describeSettings renders run settings as CLI flags.
func describeSettings(s manifest.Settings) string {
	var parts []string
	if s.Recursive {
		parts = append(parts, "-r")
	}
	if s.IncludeHidden {
		parts = append(parts, "-i")
	}
	if s.Filter != "" {
		parts = append(parts, fmt.Sprintf("-f %q", s.Filter))
	}
	if s.ExcludeRegex != "" {
		parts = append(parts, fmt.Sprintf("-x %q", s.ExcludeRegex))
	}
	if s.OutputFile != "" && s.OutputFile != config.DefaultOutputFile {
		parts = append(parts, "-o "+s.OutputFile)
	}
	if s.Sort != "" && s.Sort != config.DefaultSort {
		parts = append(parts, "--sort "+s.Sort)
	}
	if s.Reverse {
		parts = append(parts, "--reverse")
	}
	if s.DryRun {
		parts = append(parts, "-n")
	}
	if len(parts) == 0 {
		return "(defaults)"
	}
	return strings.Join(parts, " ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
