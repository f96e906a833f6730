package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cxxtidy/pkg/config"
	"github.com/yaklabco/cxxtidy/pkg/lint/rules"
)

// isolated returns options that only see files under dir.
func isolated(dir string, env map[string]string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		Getenv:             func(k string) string { return env[k] },
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// projectDir returns a temp dir marked as a VCS root so the upward search
// never leaves it.
func projectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(projectDir(t), nil))
	require.NoError(t, err)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", ".cxxtidy.yml", `
severity_default: error
backups:
  enabled: false
rules:
  redundant-parentheses:
    enabled: false
  CT001:
    options:
      short_statement_lines: 2
`},
		{"toml", ".cxxtidy.toml", `
severity_default = "error"

[backups]
enabled = false

[rules.redundant-parentheses]
enabled = false

[rules.CT001.options]
short_statement_lines = 2
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := projectDir(t)
			writeFile(t, filepath.Join(root, tt.file), tt.content)
			sub := filepath.Join(root, "src", "core")
			require.NoError(t, os.MkdirAll(sub, 0o755))

			result, err := Load(context.Background(), isolated(sub, nil))
			require.NoError(t, err)

			cfg := result.Config
			assert.Equal(t, []string{filepath.Join(root, tt.file)}, result.LoadedFrom)
			assert.Equal(t, "error", cfg.SeverityDefault)
			assert.False(t, cfg.Backups.Enabled)
			assert.Equal(t, "sidecar", cfg.Backups.Mode, "unmentioned keys keep their defaults")

			require.Contains(t, cfg.Rules, "CT003", "names resolve to IDs")
			assert.False(t, *cfg.Rules["CT003"].Enabled)
			assert.EqualValues(t, 2, cfg.Rules["CT001"].Options["short_statement_lines"])
		})
	}
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	root := projectDir(t)
	writeFile(t, filepath.Join(root, ".cxxtidy.yaml"), `
severity_default: info
ignore: ["build/**"]
rules:
  CT001:
    severity: error
    options:
      add_braces: true
`)
	explicit := filepath.Join(root, "ci", "strict.toml")
	writeFile(t, explicit, `
[rules.readability-braces-around-statements.options]
short_statement_lines = 3
`)

	opts := isolated(root, map[string]string{
		"CXXTIDY_SEVERITY_DEFAULT": "warning",
		"CXXTIDY_JOBS":             "2",
		"CXXTIDY_FIX":              "true",
	})
	opts.ExplicitPath = explicit
	opts.CLIConfig = &config.Config{Jobs: 8, DryRun: true}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	cfg := result.Config

	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, "warning", cfg.SeverityDefault, "env beats files")
	assert.Equal(t, 8, cfg.Jobs, "flags beat env")
	assert.True(t, cfg.Fix)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, []string{"build/**"}, cfg.Ignore)

	ct001 := cfg.Rules["CT001"]
	require.NotNil(t, ct001.Severity)
	assert.Equal(t, "error", *ct001.Severity)
	assert.Equal(t, true, ct001.Options["add_braces"], "options merge key by key")
	assert.EqualValues(t, 3, ct001.Options["short_statement_lines"])
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{"bad severity", "severity_default: fatal\n", nil, "invalid severity"},
		{"unknown key", "flavor: gfm\n", nil, "flavor"},
		{"bad option type", "rules:\n  CT001:\n    options:\n      add_braces: 3\n", nil, "rules.CT001.options"},
		{"unknown option", "rules:\n  CT002:\n    options:\n      strict: true\n", nil, "rules.CT002.options"},
		{"bad env bool", "", map[string]string{"CXXTIDY_FIX": "maybe"}, "CXXTIDY_FIX"},
		{"bad env format", "", map[string]string{"CXXTIDY_FORMAT": "sarif"}, "invalid format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := projectDir(t)
			if tt.content != "" {
				writeFile(t, filepath.Join(root, ".cxxtidy.yml"), tt.content)
			}

			_, err := Load(context.Background(), isolated(root, tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ValidationErrorType(t *testing.T) {
	t.Parallel()

	root := projectDir(t)
	writeFile(t, filepath.Join(root, ".cxxtidy.yml"), "backups:\n  mode: xdg\n")

	_, err := Load(context.Background(), isolated(root, nil))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "backups.mode", verr.Field)
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	root := projectDir(t)
	writeFile(t, filepath.Join(root, ".cxxtidy.yml"), `
rules:
  CT001:
    severity: error
  readability-braces-around-statements:
    enabled: false
  no-such-rule:
    enabled: true
`)

	result, err := Load(context.Background(), isolated(root, nil))
	require.NoError(t, err)

	ct001 := result.Config.Rules["CT001"]
	require.NotNil(t, ct001.Severity)
	require.NotNil(t, ct001.Enabled)
	assert.Equal(t, "error", *ct001.Severity)
	assert.False(t, *ct001.Enabled)

	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "duplicate rule configuration")
	assert.Contains(t, result.Warnings[1], `unknown rule "no-such-rule"`)
}

func TestLoad_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(projectDir(t), nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_PackTemplateRoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range rules.PackNames() {
		for _, format := range []config.FileFormat{config.FileFormatYAML, config.FileFormatTOML} {
			t.Run(name+"/"+string(format), func(t *testing.T) {
				t.Parallel()

				pack := rules.PackByName(name)
				require.NotNil(t, pack)

				out, err := config.GenerateTemplate(config.TemplateOptions{
					Full:     true,
					Format:   format,
					PackName: pack.Name,
					Pack:     pack.Rules,
				})
				require.NoError(t, err)

				root := projectDir(t)
				writeFile(t, filepath.Join(root, ".cxxtidy."+string(format)), string(out))

				result, err := Load(context.Background(), isolated(root, nil))
				require.NoError(t, err, string(out))
				assert.Len(t, result.Config.Rules, 4)
				assert.Empty(t, result.Warnings)
			})
		}
	}
}
