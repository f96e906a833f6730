package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/cxxtidy/pkg/config"
)

// EnvPrefix is the prefix of every environment variable cxxtidy reads.
const EnvPrefix = "CXXTIDY_"

// envVar binds one environment variable to a config field.
type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"SEVERITY_DEFAULT", "Default severity: error, warning, or info", func(cfg *config.Config, v string) error {
		cfg.SeverityDefault = v
		return nil
	}},
	{"FIX", "Enable auto-fix: true or false", boolField(func(cfg *config.Config) *bool { return &cfg.Fix })},
	{"DRY_RUN", "Dry-run mode: true or false", boolField(func(cfg *config.Config) *bool { return &cfg.DryRun })},
	{"JOBS", "Number of parallel workers (0 = auto)", func(cfg *config.Config, v string) error {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("expected an integer, got %q", v)
		}
		cfg.Jobs = jobs
		return nil
	}},
	{"FORMAT", "Output format: text, json, or diff", func(cfg *config.Config, v string) error {
		cfg.Format = config.OutputFormat(v)
		return nil
	}},
	{"RULE_FORMAT", "Rule identifiers in output: name, id, or combined", func(cfg *config.Config, v string) error {
		cfg.RuleFormat = config.RuleFormat(v)
		return nil
	}},
	{"BACKUPS_ENABLED", "Enable backups when fixing: true or false",
		boolField(func(cfg *config.Config) *bool { return &cfg.Backups.Enabled })},
	{"BACKUPS_MODE", "Backup mode: sidecar or none", func(cfg *config.Config, v string) error {
		cfg.Backups.Mode = v
		return nil
	}},
	{"NO_BACKUPS", "Disable backups: true or false", boolField(func(cfg *config.Config) *bool { return &cfg.NoBackups })},
	{"IGNORE", "Comma-separated ignore patterns", listField(func(cfg *config.Config) *[]string { return &cfg.Ignore })},
	{"EXTENSIONS", "Comma-separated extra source extensions",
		listField(func(cfg *config.Config) *[]string { return &cfg.Extensions })},
	{"ENABLE_RULES", "Comma-separated rules to enable",
		listField(func(cfg *config.Config) *[]string { return &cfg.EnableRules })},
	{"DISABLE_RULES", "Comma-separated rules to disable",
		listField(func(cfg *config.Config) *[]string { return &cfg.DisableRules })},
}

func boolField(field func(*config.Config) *bool) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("expected true/false/1/0, got %q", v)
		}
		*field(cfg) = b
		return nil
	}
}

func listField(field func(*config.Config) *[]string) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		*field(cfg) = splitList(v)
		return nil
	}
}

// splitList splits a comma-separated value, dropping empty elements.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// LoadFromEnv applies CXXTIDY_* variables to cfg. getenv defaults to
// os.Getenv; unset and empty variables are ignored.
func LoadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}
	if getenv == nil {
		getenv = os.Getenv
	}

	for _, ev := range envVars {
		name := EnvPrefix + ev.suffix
		value := getenv(name)
		if value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return fmt.Errorf("invalid value for %s: %w", name, err)
		}
	}
	return nil
}

// ListEnvVars returns every supported variable with its description,
// sorted by name.
func ListEnvVars() [][2]string {
	out := make([][2]string, 0, len(envVars))
	for _, ev := range envVars {
		out = append(out, [2]string{EnvPrefix + ev.suffix, ev.description})
	}
	slices.SortFunc(out, func(a, b [2]string) int { return strings.Compare(a[0], b[0]) })
	return out
}
