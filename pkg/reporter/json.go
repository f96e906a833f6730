package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/cxxtidy/pkg/lint"
	"github.com/yaklabco/cxxtidy/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path         string           `json:"path"`
	Diagnostics  []JSONDiagnostic `json:"diagnostics"`
	Modified     bool             `json:"modified,omitempty"`
	FixPasses    int              `json:"fixPasses,omitempty"`
	EditsApplied int              `json:"editsApplied,omitempty"`
	Skipped      string           `json:"skipped,omitempty"`
	Diff         string           `json:"diff,omitempty"`
	Fatal        string           `json:"fatal,omitempty"`
	Error        string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single diagnostic.
type JSONDiagnostic struct {
	RuleID   string    `json:"ruleId"`
	RuleName string    `json:"ruleName"`
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	Line     int       `json:"line"`
	Column   int       `json:"column"`
	Fixable  bool      `json:"fixable"`
	Fixes    []JSONFix `json:"fixes,omitempty"`
}

// JSONFix represents one text edit of a proposed fix.
type JSONFix struct {
	Kind        string `json:"kind"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesModified   int            `json:"filesModified"`
	FilesSkipped    int            `json:"filesSkipped"`
	FilesErrored    int            `json:"filesErrored"`
	FilesFailed     int            `json:"filesFailed"`
	TotalIssues     int            `json:"totalIssues"`
	Fixable         int            `json:"fixable"`
	EditsApplied    int            `json:"editsApplied"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	version := r.opts.Version
	if version == "" {
		version = "dev"
	}

	output := &JSONOutput{
		Version: version,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{BySeverity: make(map[string]int)},
	}
	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:    stats.FilesProcessed,
		FilesWithIssues: stats.FilesWithIssues,
		FilesModified:   stats.FilesModified,
		FilesSkipped:    stats.FilesSkipped,
		FilesErrored:    stats.FilesErrored,
		FilesFailed:     stats.FilesFailed,
		TotalIssues:     stats.DiagnosticsTotal,
		Fixable:         stats.DiagnosticsFixable,
		EditsApplied:    stats.EditsApplied,
		BySeverity:      make(map[string]int, len(stats.DiagnosticsBySeverity)),
	}
	for sev, n := range stats.DiagnosticsBySeverity {
		output.Summary.BySeverity[sev] = n
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		output.Files = append(output.Files, r.fileResult(file))
	}

	return output
}

func (r *JSONReporter) fileResult(file runner.FileOutcome) JSONFileResult {
	out := JSONFileResult{
		Path:        displayPath(r.opts.WorkingDir, file.Path),
		Diagnostics: make([]JSONDiagnostic, 0),
	}

	if file.Error != nil {
		out.Error = file.Error.Error()
		return out
	}

	pr := file.Result
	if pr == nil {
		return out
	}

	out.Modified = pr.Written
	out.FixPasses = pr.FixPasses
	out.EditsApplied = pr.TotalEditsApplied
	out.Skipped = pr.SkipReason
	if pr.Diff.HasChanges() {
		out.Diff = pr.Diff.String()
	}
	if pr.FileResult == nil {
		return out
	}
	if pr.Fatal != nil {
		out.Fatal = pr.Fatal.Error()
	}

	for i := range pr.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, jsonDiagnostic(&pr.Diagnostics[i]))
	}
	return out
}

func jsonDiagnostic(diag *lint.Diagnostic) JSONDiagnostic {
	severity := string(diag.Severity)
	if severity == "" {
		severity = "warning"
	}

	out := JSONDiagnostic{
		RuleID:   diag.RuleID,
		RuleName: diag.RuleName,
		Severity: severity,
		Message:  diag.Message,
		Line:     diag.Line,
		Column:   diag.Column,
		Fixable:  diag.HasFix(),
	}
	for _, edit := range diag.FixEdits {
		out.Fixes = append(out.Fixes, JSONFix{
			Kind:        edit.Kind().String(),
			StartOffset: edit.StartOffset,
			EndOffset:   edit.EndOffset,
			NewText:     edit.NewText,
		})
	}
	return out
}
