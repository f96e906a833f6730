package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cxxtidy/internal/cli"
)

func TestRulesCommand_Text(t *testing.T) {
	t.Parallel()

	output, code := runCLI(t, "rules", "--color", "never")
	require.Equal(t, cli.ExitSuccess, code, output)

	for _, want := range []string{
		"CT001/braces-around-statements",
		"CT002/redundant-nullptr-comparison",
		"CT003/redundant-parentheses",
		"CT004/declaration-inline-comment",
		"[fixable]",
	} {
		assert.Contains(t, output, want)
	}
}

func TestRulesCommand_RuleFormatFlag(t *testing.T) {
	t.Parallel()

	output, _ := runCLI(t, "rules", "--color", "never", "--rule-format", "id")
	assert.Contains(t, output, "CT001")
	assert.NotContains(t, output, "CT001/")

	_, code := runCLI(t, "rules", "--rule-format", "bogus")
	assert.Equal(t, cli.ExitInvalidUsage, code)
}

func TestRulesCommand_JSON(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"rules", "--format", "json"})
	require.NoError(t, cmd.Execute())

	var rules []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Severity string `json:"severity"`
		Fixable  bool   `json:"fixable"`
		Enabled  bool   `json:"enabled"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &rules))
	require.Len(t, rules, 4)

	byID := make(map[string]string, len(rules))
	for _, r := range rules {
		byID[r.ID] = r.Name
		assert.True(t, r.Fixable, "%s should be fixable", r.ID)
		assert.Equal(t, "warning", r.Severity)
	}
	assert.Equal(t, "braces-around-statements", byID["CT001"])
	assert.Equal(t, "declaration-inline-comment", byID["CT004"])
}

func TestRulesCommand_Packs(t *testing.T) {
	t.Parallel()

	output, code := runCLI(t, "rules", "--packs", "--color", "never")
	require.Equal(t, cli.ExitSuccess, code)

	for _, name := range []string{"default", "strict", "compact"} {
		assert.Contains(t, output, name)
	}
}
