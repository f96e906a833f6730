package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cxxtidy/pkg/config"
)

func TestFileFormatFromPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, config.FileFormatTOML, config.FileFormatFromPath(".cxxtidy.toml"))
	assert.Equal(t, config.FileFormatTOML, config.FileFormatFromPath("/etc/cxxtidy/CONFIG.TOML"))
	assert.Equal(t, config.FileFormatYAML, config.FileFormatFromPath(".cxxtidy.yml"))
	assert.Equal(t, config.FileFormatYAML, config.FileFormatFromPath("config"))
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte(`
severity_default: error
ignore:
  - "third_party/**"
backups:
  enabled: false
  mode: none
rules:
  CT001:
    options:
      short_statement_lines: 3
      add_braces: true
  readability-redundant-parentheses:
    enabled: false
`))
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.SeverityDefault)
	assert.Equal(t, []string{"third_party/**"}, cfg.Ignore)
	assert.False(t, cfg.Backups.Enabled)
	assert.Equal(t, "none", cfg.Backups.Mode)
	assert.Equal(t, 3, cfg.Rules["CT001"].Options["short_statement_lines"])
	assert.Equal(t, true, cfg.Rules["CT001"].Options["add_braces"])
	require.NotNil(t, cfg.Rules["readability-redundant-parentheses"].Enabled)
	assert.False(t, *cfg.Rules["readability-redundant-parentheses"].Enabled)
}

func TestFromTOML(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromTOML([]byte(`
severity_default = "info"
extensions = [".ipp"]

[backups]
enabled = true
mode = "sidecar"

[rules.CT001.options]
short_statement_lines = 2

[rules."readability-declaration-inline-comment"]
severity = "error"
`))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.SeverityDefault)
	assert.Equal(t, []string{".ipp"}, cfg.Extensions)
	assert.True(t, cfg.Backups.Enabled)
	assert.Equal(t, int64(2), cfg.Rules["CT001"].Options["short_statement_lines"])
	require.NotNil(t, cfg.Rules["readability-declaration-inline-comment"].Severity)
	assert.Equal(t, "error", *cfg.Rules["readability-declaration-inline-comment"].Severity)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format config.FileFormat
		input  string
	}{
		{"yaml unknown key", config.FileFormatYAML, "flavor: gfm\n"},
		{"yaml syntax", config.FileFormatYAML, "rules: [\n"},
		{"toml unknown key", config.FileFormatTOML, "flavor = \"gfm\"\n"},
		{"toml syntax", config.FileFormatTOML, "rules = \n"},
		{"unknown format", config.FileFormat("ini"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Unmarshal([]byte(tt.input), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestEmptyDocuments(t *testing.T) {
	t.Parallel()

	for _, format := range []config.FileFormat{config.FileFormatYAML, config.FileFormatTOML} {
		cfg, err := config.Unmarshal(nil, format)
		require.NoError(t, err, format)
		assert.NotNil(t, cfg.Rules, format)
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	off := false
	sev := "error"
	cfg := config.NewConfig()
	cfg.SeverityDefault = "warning"
	cfg.Ignore = []string{"build/**"}
	cfg.Fix = true
	cfg.Rules["CT002"] = config.RuleConfig{Enabled: &off}
	cfg.Rules["CT004"] = config.RuleConfig{Severity: &sev}

	for _, format := range []config.FileFormat{config.FileFormatYAML, config.FileFormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			data, err := cfg.Marshal(format)
			require.NoError(t, err)
			assert.NotContains(t, string(data), "fix")

			got, err := config.Unmarshal(data, format)
			require.NoError(t, err)

			assert.Equal(t, cfg.SeverityDefault, got.SeverityDefault)
			assert.Equal(t, cfg.Ignore, got.Ignore)
			assert.Equal(t, cfg.Backups, got.Backups)
			assert.False(t, got.Fix)
			require.NotNil(t, got.Rules["CT002"].Enabled)
			assert.False(t, *got.Rules["CT002"].Enabled)
			assert.Nil(t, got.Rules["CT002"].Severity)
			require.NotNil(t, got.Rules["CT004"].Severity)
			assert.Equal(t, "error", *got.Rules["CT004"].Severity)
		})
	}
}
