package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/cxxtidy/internal/ui/pretty"
	"github.com/yaklabco/cxxtidy/pkg/lint"
	"github.com/yaklabco/cxxtidy/pkg/runner"
)

// TextReporter formats results as styled terminal output grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
	width  int
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	width := opts.TermWidth
	if width <= 0 {
		width = pretty.TermWidth(opts.Writer)
	}
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
		width:  width,
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes one file's diagnostics, notes and pending diff, and
// returns the number of diagnostics written.
func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := displayPath(r.opts.WorkingDir, file.Path)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	pr := file.Result
	if pr == nil || pr.FileResult == nil {
		return 0
	}

	diagnostics := pr.Diagnostics
	notes := r.notes(pr)
	if len(diagnostics) == 0 && len(notes) == 0 && !pr.Diff.HasChanges() {
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(diagnostics)))

	for i := range diagnostics {
		diag := diagnostics[i]
		diag.FilePath = path

		var sourceLine string
		if r.opts.ShowContext && pr.Tree != nil && pr.Tree.Buffer != nil {
			sourceLine = string(pr.Tree.Buffer.LineContent(diag.Line))
		}

		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&diag, sourceLine, r.opts.RuleFormat, r.width))
	}

	for _, note := range notes {
		fmt.Fprintln(r.bw, "  "+note)
	}

	fmt.Fprintln(r.bw)
	if pr.Diff.HasChanges() {
		writeDiff(r.bw, r.styles, pr.Diff, path)
	}

	return len(diagnostics)
}

// notes returns the styled outcome lines shown under a file's diagnostics.
func (r *TextReporter) notes(pr *lint.PipelineResult) []string {
	var notes []string
	switch {
	case pr.Fatal != nil:
		notes = append(notes, r.styles.Failure.Render("internal error: "+pr.Fatal.Error()+"; no fixes applied"))
	case pr.Skipped:
		notes = append(notes, r.styles.Warning.Render("skipped: "+pr.SkipReason))
	case pr.Written:
		notes = append(notes, r.styles.Success.Render(pr.Summary()+
			fmt.Sprintf(": %d %s in %d %s", pr.TotalEditsApplied, plural(pr.TotalEditsApplied, "edit", "edits"),
				pr.FixPasses, plural(pr.FixPasses, "pass", "passes"))))
	}
	return notes
}
