package configloader

import (
	"maps"

	"github.com/yaklabco/cxxtidy/pkg/config"
)

// merge lays override on top of base for values set from the command line.
//   - Scalars: override wins when non-zero.
//   - Booleans: override can only switch a flag on.
//   - Rules: deep merge, see mergeRuleConfig.
//   - Slices: override replaces base when non-nil.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.SeverityDefault != "" {
		result.SeverityDefault = override.SeverityDefault
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.RuleFormat != "" {
		result.RuleFormat = override.RuleFormat
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	result.Fix = base.Fix || override.Fix
	result.DryRun = base.DryRun || override.DryRun
	result.NoBackups = base.NoBackups || override.NoBackups

	result.Rules = mergeRules(base.Rules, override.Rules)

	for _, s := range []struct{ dst, src *[]string }{
		{&result.Ignore, &override.Ignore},
		{&result.Extensions, &override.Extensions},
		{&result.EnableRules, &override.EnableRules},
		{&result.DisableRules, &override.DisableRules},
		{&result.FixRules, &override.FixRules},
	} {
		if *s.src != nil {
			*s.dst = *s.src
		}
	}

	return &result
}

// mergeRules deep-merges rule configurations into a new map.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	result := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(result, base)
	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeRuleConfig(existing, val)
		} else {
			result[key] = val
		}
	}
	return result
}

// mergeRuleConfig lets every field set in override win. Options merge key
// by key.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base.Clone()

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}
	if override.AutoFix != nil {
		result.AutoFix = override.AutoFix
	}
	if override.Options != nil {
		if result.Options == nil {
			result.Options = make(map[string]any, len(override.Options))
		}
		maps.Copy(result.Options, override.Options)
	}
	return result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}
