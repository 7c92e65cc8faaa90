package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jamesainslie/genindex/pkg/genindex/indexer"
)

// maxSummaryErrors bounds the errors listed after a run.
const maxSummaryErrors = 10

var (
	primaryColor = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#28A745")
	warningColor = lipgloss.Color("#FFC107")
	dangerColor  = lipgloss.Color("#DC3545")
	mutedColor   = lipgloss.Color("#6C757D")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	labelStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	countStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(successColor)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor)
	errorStyle   = lipgloss.NewStyle().Foreground(dangerColor)
)

// printSummary writes a short report of res to w.
func printSummary(w io.Writer, res *indexer.Result) {
	title := "Indexed"
	if res.DryRun {
		title = "Dry run"
	}
	fmt.Fprintf(w, "%s %s\n", titleStyle.Render(title), res.Root)

	fmt.Fprintf(w, "  %s %s   %s %s   %s %s\n",
		labelStyle.Render("directories:"), countStyle.Render(fmt.Sprint(res.DirsIndexed)),
		labelStyle.Render("entries:"), countStyle.Render(fmt.Sprint(res.EntriesListed)),
		labelStyle.Render("elapsed:"), res.Elapsed.Round(time.Millisecond))

	written := "written:"
	if res.DryRun {
		written = "would write:"
	}
	fmt.Fprintf(w, "  %s %s   %s %s",
		labelStyle.Render(written), successStyle.Render(fmt.Sprint(len(res.Written))),
		labelStyle.Render("unchanged:"), countStyle.Render(fmt.Sprint(len(res.Unchanged))))
	if len(res.Skipped) > 0 {
		fmt.Fprintf(w, "   %s %s", labelStyle.Render("already visited:"), countStyle.Render(fmt.Sprint(len(res.Skipped))))
	}
	fmt.Fprintln(w)

	if res.Interrupted {
		fmt.Fprintf(w, "  %s\n", warningStyle.Render("interrupted before the tree was complete"))
	}

	if len(res.Errors) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s\n", errorStyle.Render(fmt.Sprintf("%d errors", len(res.Errors))))
	for i, e := range res.Errors {
		if i == maxSummaryErrors {
			fmt.Fprintf(w, "    ... and %d more\n", len(res.Errors)-maxSummaryErrors)
			break
		}
		fmt.Fprintf(w, "    %s %s: %s\n", labelStyle.Render(e.Op), e.Path, e.Error)
	}
}
