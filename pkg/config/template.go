package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// OptionDoc documents one rule option.
type OptionDoc struct {
	Name        string
	Default     any
	Description string
}

// RuleInfo contains rule metadata for templates and listings.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	CanFix      bool
	Aliases     []string
	Options     []OptionDoc
}

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every rule and option. Otherwise only the rules the
	// pack configures are written.
	Full bool

	// Format selects YAML or TOML output.
	Format FileFormat

	// Rules describes the available rules. When empty, the built-in list
	// is used.
	Rules []RuleInfo

	// PackName and Pack seed the rules section with a pack's settings.
	PackName string
	Pack     map[string]RuleConfig
}

// GenerateTemplate creates a commented configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var w templateWriter
	switch opts.Format {
	case FileFormatYAML, "":
		w = yamlTemplate{}
	case FileFormatTOML:
		w = tomlTemplate{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFileFormat, opts.Format)
	}

	rules := opts.Rules
	if len(rules) == 0 {
		rules = builtinRuleInfos()
	}
	rules = slices.Clone(rules)
	slices.SortFunc(rules, func(a, b RuleInfo) int { return strings.Compare(a.ID, b.ID) })

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n")
	if opts.PackName != "" {
		fmt.Fprintf(&buf, "# Generated from the %q rule pack.\n", opts.PackName)
	}
	buf.WriteString("\n")
	w.preamble(&buf, opts.Full)

	wroteRule := false
	for _, r := range rules {
		rc, inPack := opts.Pack[r.ID]
		if !opts.Full && !inPack {
			continue
		}
		if !inPack {
			on := r.Enabled
			sev := string(r.Severity)
			rc = RuleConfig{Enabled: &on, Severity: &sev}
		}
		if !wroteRule {
			w.rulesHeader(&buf)
			wroteRule = true
		}
		if opts.Full {
			writeRuleDoc(&buf, w.commentIndent(), r)
		}
		w.rule(&buf, r, rc, opts.Full)
	}

	if !wroteRule {
		w.exampleRules(&buf)
	}
	return buf.Bytes(), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# cxxtidy configuration
# See: https://github.com/yaklabco/cxxtidy`
}

type templateWriter interface {
	preamble(buf *bytes.Buffer, full bool)
	rulesHeader(buf *bytes.Buffer)
	rule(buf *bytes.Buffer, r RuleInfo, rc RuleConfig, full bool)
	exampleRules(buf *bytes.Buffer)
	commentIndent() string
}

func writeRuleDoc(buf *bytes.Buffer, indent string, r RuleInfo) {
	fmt.Fprintf(buf, "\n%s# %s: %s\n", indent, r.ID, r.Name)
	fmt.Fprintf(buf, "%s# %s\n", indent, wrapComment(r.Description, commentWrapWidth, indent))
	if len(r.Aliases) > 0 {
		fmt.Fprintf(buf, "%s# Aliases: %s\n", indent, strings.Join(r.Aliases, ", "))
	}
	if len(r.Tags) > 0 {
		fmt.Fprintf(buf, "%s# Tags: %s\n", indent, strings.Join(r.Tags, ", "))
	}
	if r.CanFix {
		fmt.Fprintf(buf, "%s# Auto-fix: yes\n", indent)
	}
}

// ruleOptions merges configured options over documented defaults. The
// second result marks keys that are explicitly configured.
func ruleOptions(r RuleInfo, rc RuleConfig, full bool) ([]string, map[string]any, map[string]bool) {
	values := make(map[string]any)
	set := make(map[string]bool)
	if full {
		for _, o := range r.Options {
			values[o.Name] = o.Default
		}
	}
	for k, v := range rc.Options {
		values[k] = v
		set[k] = true
	}
	return slices.Sorted(maps.Keys(values)), values, set
}

type yamlTemplate struct{}

func (yamlTemplate) commentIndent() string { return "  " }

func (yamlTemplate) preamble(buf *bytes.Buffer, full bool) {
	buf.WriteString(`# Default severity for all rules: error, warning, or info
# severity_default: warning

# Extra file extensions to treat as C or C++ sources
# extensions:
#   - ".ipp"

# File patterns to ignore (glob patterns)
# ignore:
#   - "third_party/**"
#   - "build/**"
`)
	if full {
		buf.WriteString(`
# Backup configuration for auto-fix
backups:
  enabled: true
  mode: sidecar
`)
	}
}

func (yamlTemplate) rulesHeader(buf *bytes.Buffer) {
	buf.WriteString("\n# Rule-specific configuration, keyed by ID, name or alias\nrules:\n")
}

func (yamlTemplate) rule(buf *bytes.Buffer, r RuleInfo, rc RuleConfig, full bool) {
	fmt.Fprintf(buf, "  %s:\n", r.ID)
	if rc.Enabled != nil {
		fmt.Fprintf(buf, "    enabled: %t\n", *rc.Enabled)
	}
	if rc.Severity != nil {
		fmt.Fprintf(buf, "    severity: %s\n", *rc.Severity)
	}
	if rc.AutoFix != nil {
		fmt.Fprintf(buf, "    auto_fix: %t\n", *rc.AutoFix)
	}

	keys, values, set := ruleOptions(r, rc, full)
	if len(keys) == 0 {
		return
	}
	prefix := "    "
	if len(set) == 0 {
		prefix = "    # "
	}
	fmt.Fprintf(buf, "%soptions:\n", prefix)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s  %s: %s\n", prefix, k, formatScalar(values[k], false))
	}
}

func (yamlTemplate) exampleRules(buf *bytes.Buffer) {
	buf.WriteString(`
# Rule-specific configuration, keyed by ID, name or alias
# rules:
#   CT001:
#     options:
#       short_statement_lines: 2
#   readability-redundant-parentheses:
#     enabled: false
`)
}

type tomlTemplate struct{}

func (tomlTemplate) commentIndent() string { return "" }

func (tomlTemplate) preamble(buf *bytes.Buffer, full bool) {
	buf.WriteString(`# Default severity for all rules: error, warning, or info
# severity_default = "warning"

# Extra file extensions to treat as C or C++ sources
# extensions = [".ipp"]

# File patterns to ignore (glob patterns)
# ignore = ["third_party/**", "build/**"]
`)
	if full {
		buf.WriteString(`
# Backup configuration for auto-fix
[backups]
enabled = true
mode = "sidecar"
`)
	}
}

func (tomlTemplate) rulesHeader(buf *bytes.Buffer) {
	buf.WriteString("\n# Rule-specific configuration, keyed by ID, name or alias\n")
}

func (tomlTemplate) rule(buf *bytes.Buffer, r RuleInfo, rc RuleConfig, full bool) {
	fmt.Fprintf(buf, "[rules.%s]\n", r.ID)
	if rc.Enabled != nil {
		fmt.Fprintf(buf, "enabled = %t\n", *rc.Enabled)
	}
	if rc.Severity != nil {
		fmt.Fprintf(buf, "severity = %q\n", *rc.Severity)
	}
	if rc.AutoFix != nil {
		fmt.Fprintf(buf, "auto_fix = %t\n", *rc.AutoFix)
	}

	keys, values, set := ruleOptions(r, rc, full)
	if len(keys) == 0 {
		buf.WriteString("\n")
		return
	}
	prefix := ""
	if len(set) == 0 {
		prefix = "# "
	}
	fmt.Fprintf(buf, "\n%s[rules.%s.options]\n", prefix, r.ID)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s%s = %s\n", prefix, k, formatScalar(values[k], true))
	}
	buf.WriteString("\n")
}

func (tomlTemplate) exampleRules(buf *bytes.Buffer) {
	buf.WriteString(`
# Rule-specific configuration, keyed by ID, name or alias
# [rules.CT001.options]
# short_statement_lines = 2
#
# [rules."readability-redundant-parentheses"]
# enabled = false
`)
}

// formatScalar renders an option value. Strings are quoted for TOML and
// left bare for YAML unless they need quoting.
func formatScalar(v any, toml bool) string {
	switch x := v.(type) {
	case string:
		if toml || x == "" || strings.ContainsAny(x, ":#{}[],&*!|>'\"%@`") {
			return strconv.Quote(x)
		}
		return x
	default:
		return fmt.Sprint(x)
	}
}

// wrapComment wraps text to fit within maxWidth characters, continuing
// each wrapped line as a comment at indent.
func wrapComment(text string, maxWidth int, indent string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= maxWidth:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return strings.Join(lines, "\n"+indent+"# ")
}

// builtinRuleInfos lists the built-in rules for callers that have no
// registry at hand.
func builtinRuleInfos() []RuleInfo {
	return []RuleInfo{
		{
			ID: "CT001", Name: "braces-around-statements", Enabled: true, Severity: SeverityWarning,
			Description: "Bodies of if, else, while, do and for statements should be enclosed in braces",
			Tags:        []string{"readability", "braces"}, CanFix: true,
			Aliases:     []string{"readability-braces-around-statements"},
			Options:     []OptionDoc{
				{Name: "short_statement_lines", Default: 0},
				{Name: "add_braces", Default: true},
				{Name: "remove_unnecessary_braces", Default: false},
			},
		},
		{
			ID: "CT002", Name: "redundant-nullptr-comparison", Enabled: true, Severity: SeverityWarning,
			Description: "Pointers should be tested directly instead of compared with nullptr",
			Tags:        []string{"readability", "expressions"}, CanFix: true,
			Aliases:     []string{"readability-redundant-nullptr-comparison"},
		},
		{
			ID: "CT003", Name: "redundant-parentheses", Enabled: true, Severity: SeverityWarning,
			Description: "Parentheses that do not change how an expression groups should be removed",
			Tags:        []string{"readability", "expressions"}, CanFix: true,
			Aliases:     []string{"readability-redundant-parentheses"},
		},
		{
			ID: "CT004", Name: "declaration-inline-comment", Enabled: true, Severity: SeverityWarning,
			Description: "Comments trailing parameters, variables and fields should precede the declaration",
			Tags:        []string{"readability", "comments"}, CanFix: true,
			Aliases:     []string{"readability-declaration-inline-comment"},
			Options: []OptionDoc{
				{Name: "param_command", Default: "@param"},
				{Name: "param_block_separator", Default: false},
			},
		},
	}
}
