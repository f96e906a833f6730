package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cxxtidy/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.NotNil(t, cfg.Rules)
	assert.True(t, cfg.Backups.Enabled)
	assert.Equal(t, "sidecar", cfg.Backups.Mode)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.RuleFormatName, cfg.RuleFormat)
	assert.Empty(t, cfg.SeverityDefault)
}

func TestIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.SeverityInfo.IsValid())
	assert.False(t, config.Severity("fatal").IsValid())

	for _, f := range config.OutputFormats() {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, config.OutputFormat("sarif").IsValid())

	assert.True(t, config.RuleFormatCombined.IsValid())
	assert.False(t, config.RuleFormat("").IsValid())
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	on := true
	sev := "error"
	cfg := config.NewConfig()
	cfg.Ignore = []string{"build/**"}
	cfg.Extensions = []string{".ipp"}
	cfg.EnableRules = []string{"CT001"}
	cfg.Fix = true
	cfg.Jobs = 4
	cfg.Rules["CT001"] = config.RuleConfig{
		Enabled:  &on,
		Severity: &sev,
		Options:  map[string]any{"short_statement_lines": 2},
	}

	clone := cfg.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, cfg, clone)

	*clone.Rules["CT001"].Enabled = false
	clone.Rules["CT001"].Options["short_statement_lines"] = 5
	clone.Ignore[0] = "out/**"
	clone.Extensions[0] = ".tpp"
	clone.EnableRules[0] = "CT002"

	assert.True(t, *cfg.Rules["CT001"].Enabled)
	assert.Equal(t, 2, cfg.Rules["CT001"].Options["short_statement_lines"])
	assert.Equal(t, "build/**", cfg.Ignore[0])
	assert.Equal(t, ".ipp", cfg.Extensions[0])
	assert.Equal(t, "CT001", cfg.EnableRules[0])

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())
}

func TestFormatRuleID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   config.RuleFormat
		ruleName string
		want     string
	}{
		{"name format", config.RuleFormatName, "redundant-parentheses", "redundant-parentheses"},
		{"id format", config.RuleFormatID, "redundant-parentheses", "CT003"},
		{"combined format", config.RuleFormatCombined, "redundant-parentheses", "CT003/redundant-parentheses"},
		{"empty name", config.RuleFormatName, "", "CT003"},
		{"default to name", config.RuleFormat(""), "redundant-parentheses", "redundant-parentheses"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, config.FormatRuleID(tt.format, "CT003", tt.ruleName))
		})
	}
}
