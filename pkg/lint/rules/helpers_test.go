package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cxxtidy/pkg/config"
	"github.com/yaklabco/cxxtidy/pkg/fix"
	"github.com/yaklabco/cxxtidy/pkg/lint"
	"github.com/yaklabco/cxxtidy/pkg/parser/cfront"
)

// lintWith runs a single rule over input with fixing enabled and returns
// the file result together with the content after applying its edits.
func lintWith(t *testing.T, rule lint.Rule, input string, options map[string]any) (*lint.FileResult, string) {
	t.Helper()

	registry := lint.NewRegistry()
	registry.Register(rule)

	cfg := config.NewConfig()
	cfg.Fix = true
	if options != nil {
		cfg.Rules[rule.ID()] = config.RuleConfig{Options: options}
	}

	engine := lint.NewEngine(cfront.New(), registry)
	result, err := engine.LintFile(context.Background(), "test.cpp", []byte(input), cfg)
	require.NoError(t, err)
	require.NoError(t, result.Fatal)

	return result, string(fix.ApplyEdits([]byte(input), result.Edits))
}

// assertFix checks the diagnostic count and fixed output of one rule run,
// then that a second run over the output changes nothing.
func assertFix(t *testing.T, rule lint.Rule, input string, options map[string]any, wantDiags int, wantFix string) {
	t.Helper()

	result, fixed := lintWith(t, rule, input, options)
	require.Empty(t, result.RuleErrors)
	require.Len(t, result.Diagnostics, wantDiags, "diagnostics: %+v", result.Diagnostics)
	require.Equal(t, wantFix, fixed)

	again, refixed := lintWith(t, rule, fixed, options)
	require.Empty(t, again.Diagnostics, "fix is not idempotent: %+v", again.Diagnostics)
	require.Equal(t, fixed, refixed)
}
