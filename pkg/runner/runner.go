package runner

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/cxxtidy/internal/logging"
	"github.com/yaklabco/cxxtidy/pkg/lint"
)

// Runner orchestrates multi-file linting using a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently,
// at most opts.Jobs at a time. A file that fails does not stop the others;
// its error is kept in its FileOutcome. Outcomes are ordered by path.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)
	logger.Debug("processing files",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs,
		logging.FieldFix, pipelineOpts.Fix,
		logging.FieldDryRun, pipelineOpts.DryRun,
	)

	// Each goroutine owns one slot, so no locking is needed.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			outcomes[i] = r.processFile(gctx, path, opts, pipelineOpts)
			done[i] = true
			return nil
		})
	}
	_ = group.Wait()

	for i := range files {
		if done[i] {
			result.accumulate(outcomes[i])
		}
	}
	sort.SliceStable(result.Files, func(a, b int) bool {
		return result.Files[a].Path < result.Files[b].Path
	})

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)

	return result, nil
}

func (r *Runner) processFile(ctx context.Context, path string, opts Options, pipelineOpts lint.PipelineOptions) FileOutcome {
	logger := logging.ForFile(ctx, path)
	outcome := FileOutcome{Path: path}

	pr, err := r.Pipeline.ProcessFile(ctx, path, opts.Config, pipelineOpts)
	if err != nil {
		logger.Debug("file failed", logging.FieldError, err)
		outcome.Error = err
		return outcome
	}
	outcome.Result = pr

	if pr.FileResult != nil {
		for _, id := range sortedKeys(pr.RuleErrors) {
			logger.Debug("rule error", logging.FieldRule, id, logging.FieldError, pr.RuleErrors[id])
		}
	}
	if pr.Skipped {
		logger.Debug("file skipped", logging.FieldSkipReason, pr.SkipReason)
	}
	if pr.FixPasses > 0 {
		logger.Debug("fixes applied",
			logging.FieldPasses, pr.FixPasses,
			logging.FieldEdits, pr.TotalEditsApplied,
		)
	}

	return outcome
}

func sortedKeys(m map[string]error) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
