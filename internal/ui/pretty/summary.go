package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/cxxtidy/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 issues (8 errors, 4 warnings) in 3 files, 6 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.DiagnosticsTotal == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))))
	} else {
		var severityParts []string
		if n := stats.DiagnosticsBySeverity["error"]; n > 0 {
			severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error", "errors"))))
		}
		if n := stats.DiagnosticsBySeverity["warning"]; n > 0 {
			severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning", "warnings"))))
		}
		if n := stats.DiagnosticsBySeverity["info"]; n > 0 {
			severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", n)))
		}

		issues := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
		if len(severityParts) > 0 {
			issues += " (" + strings.Join(severityParts, ", ") + ")"
		}
		parts = append(parts,
			issues,
			fmt.Sprintf("in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles)))

		if stats.DiagnosticsFixable > 0 {
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
		}
	}

	if stats.EditsApplied > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s applied in %d %s",
			stats.EditsApplied, plural(stats.EditsApplied, "edit", "edits"),
			stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles))))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed to process",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles))))
	}
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d internal %s",
			stats.FilesFailed, plural(stats.FilesFailed, "error", "errors"))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, style func(...string) string, value int) {
		builder.WriteString(fmt.Sprintf("  %-19s", label+":") + style(strconv.Itoa(value)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files checked", s.SummaryValue.Render, stats.FilesProcessed)
	if stats.FilesWithIssues > 0 {
		row("Files with issues", s.Failure.Render, stats.FilesWithIssues)
	}
	if stats.FilesModified > 0 {
		row("Files modified", s.Success.Render, stats.FilesModified)
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Warning.Render, stats.FilesSkipped)
	}

	builder.WriteString("\n")

	row("Total issues", s.SummaryValue.Render, stats.DiagnosticsTotal)
	if n := stats.DiagnosticsBySeverity["error"]; n > 0 {
		row("  Errors", s.Error.Render, n)
	}
	if n := stats.DiagnosticsBySeverity["warning"]; n > 0 {
		row("  Warnings", s.Warning.Render, n)
	}
	if n := stats.DiagnosticsBySeverity["info"]; n > 0 {
		row("  Info", s.Info.Render, n)
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesFailed > 0:
		builder.WriteString(s.Failure.Render("Internal errors; fixes were discarded"))
	case stats.DiagnosticsBySeverity["error"] > 0:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case stats.DiagnosticsBySeverity["warning"] > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
