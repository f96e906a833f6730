package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/cxxtidy/internal/ui/pretty"
	"github.com/yaklabco/cxxtidy/pkg/fix"
	"github.com/yaklabco/cxxtidy/pkg/runner"
)

// DiffReporter formats pending fixes as git-style unified diffs. Only
// files with a diff appear, so it pairs with dry-run mode.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. The count returned is the number of files
// with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var filesWithDiffs, additions, deletions int

	for _, file := range result.Files {
		path := displayPath(r.opts.WorkingDir, file.Path)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		additions += file.Result.Diff.Additions
		deletions += file.Result.Diff.Deletions
		writeDiff(r.bw, r.styles, file.Result.Diff, path)
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(filesWithDiffs, additions, deletions)
	}

	return filesWithDiffs, nil
}

// writeDiff writes one file's diff under a git header naming path.
func writeDiff(w io.Writer, styles *pretty.Styles, diff *fix.Diff, path string) {
	path = strings.TrimPrefix(path, "/")

	fmt.Fprintln(w, styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(w, styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(w, styles.DiffAdd.Render("+++ b/"+path))

	for _, h := range diff.Hunks {
		fmt.Fprintln(w, styles.DiffHunk.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)))
		for _, line := range h.Lines {
			switch line.Kind {
			case fix.DiffLineAdd:
				fmt.Fprintln(w, styles.DiffAdd.Render("+"+line.Content))
			case fix.DiffLineRemove:
				fmt.Fprintln(w, styles.DiffRemove.Render("-"+line.Content))
			default:
				fmt.Fprintln(w, styles.DiffContext.Render(" "+line.Content))
			}
		}
	}

	fmt.Fprintln(w)
}

// writeSummary writes a git-style stat line.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, plural(files, "file", "files"))}

	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, plural(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, plural(deletions, "deletion", "deletions"))))
	}

	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
