package runner

import "github.com/yaklabco/cxxtidy/pkg/lint"

// FileOutcome wraps PipelineResult with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the pipeline result for this file.
	// Nil if the file encountered an error during processing.
	Result *lint.PipelineResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int

	// FilesSkipped counts files left untouched, for example because they
	// changed on disk while being processed.
	FilesSkipped int

	FilesErrored int

	// FilesFailed counts files where a rule broke the edit invariants.
	// Their fixes were discarded.
	FilesFailed int

	DiagnosticsTotal   int
	DiagnosticsFixable int

	// DiagnosticsBySeverity maps severity levels to counts.
	DiagnosticsBySeverity map[string]int

	FilesWithIssues int
	FilesModified   int

	// EditsApplied is the total number of edits applied across all files
	// and passes.
	EditsApplied int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any diagnostics with error severity occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity["error"] > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// HasInternalErrors reports whether any file hit an edit invariant
// violation.
func (r *Result) HasInternalErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	pr := outcome.Result
	if pr == nil {
		return
	}

	r.Stats.FilesProcessed++
	if pr.Skipped {
		r.Stats.FilesSkipped++
	}
	if pr.Written {
		r.Stats.FilesModified++
	}
	r.Stats.EditsApplied += pr.TotalEditsApplied

	if pr.FileResult == nil {
		return
	}
	if pr.Fatal != nil {
		r.Stats.FilesFailed++
	}

	diagCount := len(pr.Diagnostics)
	r.Stats.DiagnosticsTotal += diagCount
	r.Stats.DiagnosticsFixable += pr.FixableCount()
	if diagCount > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, diag := range pr.Diagnostics {
		severity := string(diag.Severity)
		if severity == "" {
			severity = "warning"
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}
}
