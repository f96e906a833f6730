package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/cxxtidy/internal/ui/pretty"
	"github.com/yaklabco/cxxtidy/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 4},
			want:  "No issues found (4 files checked)\n",
		},
		{
			name:  "clean single file",
			stats: runner.Stats{FilesProcessed: 1},
			want:  "No issues found (1 file checked)\n",
		},
		{
			name: "issues",
			stats: runner.Stats{
				FilesProcessed:        5,
				FilesWithIssues:       2,
				DiagnosticsTotal:      3,
				DiagnosticsFixable:    2,
				DiagnosticsBySeverity: map[string]int{"error": 1, "warning": 2},
			},
			want: "3 issues (1 error, 2 warnings), in 2 files, 2 fixable\n",
		},
		{
			name: "fixed",
			stats: runner.Stats{
				FilesProcessed: 3,
				FilesModified:  1,
				EditsApplied:   4,
			},
			want: "No issues found (3 files checked), 4 edits applied in 1 file\n",
		},
		{
			name: "problems",
			stats: runner.Stats{
				FilesProcessed: 3,
				FilesSkipped:   1,
				FilesErrored:   1,
				FilesFailed:    2,
			},
			want: "No issues found (3 files checked), 1 skipped, 1 file failed to process, 2 internal errors\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{
		FilesProcessed:        10,
		FilesWithIssues:       3,
		FilesModified:         2,
		DiagnosticsTotal:      15,
		DiagnosticsBySeverity: map[string]int{"error": 5, "warning": 10},
	})

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "  Files checked:     10\n")
	assert.Contains(t, result, "  Files with issues: 3\n")
	assert.Contains(t, result, "  Files modified:    2\n")
	assert.Contains(t, result, "  Total issues:      15\n")
	assert.Contains(t, result, "    Errors:          5\n")
	assert.Contains(t, result, "    Warnings:        10\n")
	assert.Contains(t, result, "Lint failed with errors")
	assert.NotContains(t, result, "Files skipped")
}

func TestFormatSummary_Status(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Contains(t, styles.FormatSummary(runner.Stats{FilesProcessed: 1}), "Lint passed")
	assert.Contains(t, styles.FormatSummary(runner.Stats{
		DiagnosticsTotal:      1,
		DiagnosticsBySeverity: map[string]int{"warning": 1},
	}), "Lint completed with warnings")
	assert.Contains(t, styles.FormatSummary(runner.Stats{FilesFailed: 1}), "Internal errors; fixes were discarded")
}
