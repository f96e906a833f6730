// Package config defines the configuration types shared by the loader, the
// rule engine and the CLI. The types are plain data with yaml and toml tags
// and no knowledge of where a value came from.
package config

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid reports whether s is one of the known severities.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration. Nil fields leave the rule's
// default in place.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty"  toml:"enabled,omitempty"`
	Severity *string        `yaml:"severity,omitempty" toml:"severity,omitempty"`
	AutoFix  *bool          `yaml:"auto_fix,omitempty" toml:"auto_fix,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"  toml:"options,omitempty"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode"    toml:"mode"` // "sidecar" or "none"
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff:
		return true
	default:
		return false
	}
}

// OutputFormats lists the supported output formats.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatDiff}
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "braces-around-statements"
	RuleFormatID       RuleFormat = "id"       // "CT001"
	RuleFormatCombined RuleFormat = "combined" // "CT001/braces-around-statements"
)

// IsValid reports whether f is a known rule format.
func (f RuleFormat) IsValid() bool {
	switch f {
	case RuleFormatName, RuleFormatID, RuleFormatCombined:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure.
type Config struct {
	// SeverityDefault overrides the default severity of every rule.
	SeverityDefault string `yaml:"severity_default,omitempty" toml:"severity_default,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID, name or alias.
	Rules map[string]RuleConfig `yaml:"rules,omitempty" toml:"rules,omitempty"`

	// Ignore contains glob patterns for paths to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Extensions adds file extensions (with the dot) that are treated as
	// C or C++ sources on top of the built-in list.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// CLI-level options (not persisted to config files).

	Fix          bool         `yaml:"-" toml:"-"`
	DryRun       bool         `yaml:"-" toml:"-"`
	Format       OutputFormat `yaml:"-" toml:"-"`
	RuleFormat   RuleFormat   `yaml:"-" toml:"-"`
	Jobs         int          `yaml:"-" toml:"-"` // 0 means GOMAXPROCS
	EnableRules  []string     `yaml:"-" toml:"-"`
	DisableRules []string     `yaml:"-" toml:"-"`

	// FixRules limits auto-fixing to the listed rules.
	FixRules  []string `yaml:"-" toml:"-"`
	NoBackups bool     `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Rules: make(map[string]RuleConfig),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format:     FormatText,
		RuleFormat: RuleFormatName,
	}
}

// Clone returns a deep copy of c. Nested values inside rule options are
// shared.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Ignore = cloneStrings(c.Ignore)
	clone.Extensions = cloneStrings(c.Extensions)
	clone.EnableRules = cloneStrings(c.EnableRules)
	clone.DisableRules = cloneStrings(c.DisableRules)
	clone.FixRules = cloneStrings(c.FixRules)

	if c.Rules != nil {
		clone.Rules = make(map[string]RuleConfig, len(c.Rules))
		for k, v := range c.Rules {
			clone.Rules[k] = v.Clone()
		}
	}
	return &clone
}

// Clone returns a copy of rc that shares no pointers with it.
func (rc RuleConfig) Clone() RuleConfig {
	out := RuleConfig{
		Enabled:  clonePtr(rc.Enabled),
		Severity: clonePtr(rc.Severity),
		AutoFix:  clonePtr(rc.AutoFix),
	}
	if rc.Options != nil {
		out.Options = make(map[string]any, len(rc.Options))
		for k, v := range rc.Options {
			out.Options[k] = v
		}
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
