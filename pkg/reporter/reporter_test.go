package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cxxtidy/pkg/config"
	"github.com/yaklabco/cxxtidy/pkg/lint"
	"github.com/yaklabco/cxxtidy/pkg/lint/rules"
	"github.com/yaklabco/cxxtidy/pkg/parser/cfront"
	"github.com/yaklabco/cxxtidy/pkg/reporter"
	"github.com/yaklabco/cxxtidy/pkg/runner"
)

const (
	workDir       = "/work"
	nullptrSource = "void f(int* p) {\n  if (p != nullptr) { }\n}\n"
)

// process runs the real pipeline over content as if it were workDir/name.
func process(t *testing.T, name, content string, dryRun bool) runner.FileOutcome {
	t.Helper()

	registry := lint.NewRegistry()
	registry.Register(rules.NewNullptrComparisonRule())
	pipeline := lint.NewPipeline(lint.NewEngine(cfront.New(), registry))

	opts := lint.DefaultPipelineOptions()
	opts.Fix = dryRun
	opts.DryRun = dryRun

	path := workDir + "/" + name
	pr, err := pipeline.ProcessContent(context.Background(), path, []byte(content), config.NewConfig(), opts)
	require.NoError(t, err)
	return runner.FileOutcome{Path: path, Result: pr}
}

func resultOf(files ...runner.FileOutcome) *runner.Result {
	res := &runner.Result{Stats: runner.Stats{DiagnosticsBySeverity: map[string]int{}}}
	for _, f := range files {
		res.Files = append(res.Files, f)
		if f.Error != nil {
			res.Stats.FilesErrored++
			continue
		}
		res.Stats.FilesProcessed++
		n := len(f.Result.Diagnostics)
		res.Stats.DiagnosticsTotal += n
		res.Stats.DiagnosticsFixable += f.Result.FixableCount()
		if n > 0 {
			res.Stats.FilesWithIssues++
		}
		for _, d := range f.Result.Diagnostics {
			res.Stats.DiagnosticsBySeverity[string(d.Severity)]++
		}
	}
	return res
}

func newReporter(t *testing.T, format reporter.Format, buf *bytes.Buffer) reporter.Reporter {
	t.Helper()

	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Format = format
	opts.Color = "never"
	opts.WorkingDir = workDir
	opts.TermWidth = 80
	opts.RuleFormat = config.RuleFormatID

	rep, err := reporter.New(opts)
	require.NoError(t, err)
	return rep
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatText},
		{input: "text", want: reporter.FormatText},
		{input: "json", want: reporter.FormatJSON},
		{input: "diff", want: reporter.FormatDiff},
		{input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range []reporter.Format{reporter.FormatText, reporter.FormatJSON, reporter.FormatDiff, ""} {
		rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: format})
		require.NoError(t, err, "format %q", format)
		assert.NotNil(t, rep)
	}

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := newReporter(t, reporter.FormatText, &buf).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "No files to check.\n", buf.String())
}

func TestTextReporter_Diagnostics(t *testing.T) {
	t.Parallel()

	result := resultOf(
		process(t, "src/a.cpp", nullptrSource, false),
		process(t, "src/clean.cpp", "int x;\n", false),
		runner.FileOutcome{Path: workDir + "/src/bad.cpp", Error: errors.New("parse failure: boom")},
	)

	var buf bytes.Buffer
	n, err := newReporter(t, reporter.FormatText, &buf).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	out := buf.String()
	assert.Contains(t, out, "src/a.cpp (1 issue)\n")
	assert.Contains(t, out, "  src/a.cpp:2:9  warning  redundant '!=' comparison with nullptr  (CT002) [fixable]\n")
	assert.Contains(t, out, "          if (p != nullptr) { }\n")
	assert.Contains(t, out, "                ^\n")
	assert.Contains(t, out, "src/bad.cpp: error: parse failure: boom\n")
	assert.NotContains(t, out, "clean.cpp")
	assert.True(t, strings.HasSuffix(out, "1 issue (1 warning), in 1 file, 1 fixable, 1 file failed to process\n"), out)
}

func TestTextReporter_DryRunShowsDiff(t *testing.T) {
	t.Parallel()

	result := resultOf(process(t, "a.cpp", nullptrSource, true))

	var buf bytes.Buffer
	_, err := newReporter(t, reporter.FormatText, &buf).Report(context.Background(), result)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "diff --git a/a.cpp b/a.cpp\n")
	assert.Contains(t, out, "-  if (p != nullptr) { }\n")
	assert.Contains(t, out, "+  if (p) { }\n")
}

func TestTextReporter_RuleFormat(t *testing.T) {
	t.Parallel()

	result := resultOf(process(t, "a.cpp", nullptrSource, false))

	var buf bytes.Buffer
	opts := reporter.Options{
		Writer:     &buf,
		Color:      "never",
		RuleFormat: config.RuleFormatCombined,
	}
	_, err := reporter.NewTextReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "(CT002/redundant-nullptr-comparison)")
	// No summary or context unless asked for.
	assert.NotContains(t, buf.String(), "^")
	assert.NotContains(t, buf.String(), "fixable,")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	result := resultOf(
		process(t, "a.cpp", nullptrSource, false),
		runner.FileOutcome{Path: workDir + "/b.cpp", Error: errors.New("permission denied")},
	)

	var buf bytes.Buffer
	n, err := newReporter(t, reporter.FormatJSON, &buf).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "dev", out.Version)
	require.Len(t, out.Files, 2)
	assert.Equal(t, "a.cpp", out.Files[0].Path)
	require.Len(t, out.Files[0].Diagnostics, 1)

	diag := out.Files[0].Diagnostics[0]
	assert.Equal(t, "CT002", diag.RuleID)
	assert.Equal(t, "redundant-nullptr-comparison", diag.RuleName)
	assert.Equal(t, "warning", diag.Severity)
	assert.Equal(t, 2, diag.Line)
	assert.Equal(t, 9, diag.Column)
	assert.True(t, diag.Fixable)
	require.Len(t, diag.Fixes, 1)
	assert.Equal(t, "remove", diag.Fixes[0].Kind)

	assert.Equal(t, "permission denied", out.Files[1].Error)
	assert.Empty(t, out.Files[1].Diagnostics)

	assert.Equal(t, 1, out.Summary.TotalIssues)
	assert.Equal(t, 1, out.Summary.FilesErrored)
	assert.Equal(t, 1, out.Summary.BySeverity["warning"])
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true, Version: "1.2.3"})
	_, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), `"version":"1.2.3"`)
	assert.Contains(t, buf.String(), `"files":[]`)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	result := resultOf(
		process(t, "a.cpp", nullptrSource, true),
		process(t, "b.cpp", "int x;\n", true),
	)

	var buf bytes.Buffer
	n, err := newReporter(t, reporter.FormatDiff, &buf).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	want := "diff --git a/a.cpp b/a.cpp\n" +
		"--- a/a.cpp\n" +
		"+++ b/a.cpp\n" +
		"@@ -1,3 +1,3 @@\n" +
		" void f(int* p) {\n" +
		"-  if (p != nullptr) { }\n" +
		"+  if (p) { }\n" +
		" }\n" +
		"\n" +
		"1 file changed, 1 insertion(+), 1 deletion(-)\n"
	assert.Equal(t, want, buf.String())
}

func TestDiffReporter_NoDiffs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := newReporter(t, reporter.FormatDiff, &buf).Report(context.Background(), resultOf(process(t, "a.cpp", nullptrSource, false)))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, buf.String())
}
