package configloader

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/cxxtidy/pkg/config"
	"github.com/yaklabco/cxxtidy/pkg/lint"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.CT001.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors prevent the configuration from being used.
	Errors []ValidationError

	// Warnings are non-fatal issues such as unknown rules.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks cfg against reg, which defaults to lint.DefaultRegistry.
// Rule options are checked by building each configured rule's checker, so
// a bad option is reported here rather than once per file.
func Validate(cfg *config.Config, reg *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}
	if reg == nil {
		reg = lint.DefaultRegistry
	}

	if cfg.SeverityDefault != "" && !config.Severity(cfg.SeverityDefault).IsValid() {
		result.fail("severity_default", cfg.SeverityDefault,
			"invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, diff", cfg.Format)
	}
	if cfg.RuleFormat != "" && !cfg.RuleFormat.IsValid() {
		result.fail("rule_format", cfg.RuleFormat,
			"invalid rule format %q; must be one of: name, id, combined", cfg.RuleFormat)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if mode := cfg.Backups.Mode; mode != "" && mode != "sidecar" && mode != "none" {
		result.fail("backups.mode", mode, "invalid backup mode %q; must be one of: sidecar, none", mode)
	}

	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.fail(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}

	for _, list := range []struct {
		field string
		keys  []string
	}{
		{"enable_rules", cfg.EnableRules},
		{"disable_rules", cfg.DisableRules},
		{"fix_rules", cfg.FixRules},
	} {
		for _, key := range list.keys {
			if _, _, ok := reg.Resolve(key); !ok {
				result.warn(list.field, key, "unknown rule %q; it will be ignored", key)
			}
		}
	}

	validateRules(cfg, reg, result)
	return result
}

func validateRules(cfg *config.Config, reg *lint.Registry, result *ValidationResult) {
	keys := make([]string, 0, len(cfg.Rules))
	for key := range cfg.Rules {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		ruleCfg := cfg.Rules[key]
		field := "rules." + key

		if ruleCfg.Severity != nil && !config.Severity(*ruleCfg.Severity).IsValid() {
			result.fail(field+".severity", *ruleCfg.Severity,
				"invalid severity %q; must be one of: error, warning, info", *ruleCfg.Severity)
		}

		_, rule, ok := reg.Resolve(key)
		if !ok {
			result.warn(field, key, "unknown rule %q; it will be ignored", key)
			continue
		}

		rc := ruleCfg
		if _, err := rule.NewChecker(lint.NewRuleContext(context.Background(), nil, cfg, &rc)); err != nil {
			result.fail(field+".options", ruleCfg.Options, "%v", err)
		}
	}
}
