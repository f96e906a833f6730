package lint

import (
	"slices"

	"github.com/yaklabco/cxxtidy/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity

	// AutoFix indicates whether auto-fix is enabled for this rule.
	AutoFix bool

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines which rules to run. Rule keys in the config and in
// the CLI lists may be IDs, names or aliases. Returns only enabled rules, in
// ID order.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(registry, rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule applies, in increasing precedence: rule defaults, the config
// default severity, the rules section, then CLI enable/disable and fix lists.
func resolveRule(registry *Registry, rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}

	if cfg == nil {
		return rr
	}

	if cfg.SeverityDefault != "" {
		rr.Severity = config.Severity(cfg.SeverityDefault)
	}

	matches := func(key string) bool {
		id, _, ok := registry.Resolve(key)
		return ok && id == rule.ID()
	}

	for key, ruleCfg := range cfg.Rules {
		if !matches(key) {
			continue
		}
		rc := ruleCfg
		rr.Config = &rc

		if rc.Enabled != nil {
			rr.Enabled = *rc.Enabled
		}
		if rc.Severity != nil {
			rr.Severity = config.Severity(*rc.Severity)
		}
		if rc.AutoFix != nil {
			rr.AutoFix = *rc.AutoFix && rule.CanFix()
		}
		break
	}

	if slices.ContainsFunc(cfg.EnableRules, matches) {
		rr.Enabled = true
	}
	if slices.ContainsFunc(cfg.DisableRules, matches) {
		rr.Enabled = false
	}

	if len(cfg.FixRules) > 0 {
		rr.AutoFix = rule.CanFix() && slices.ContainsFunc(cfg.FixRules, matches)
	}

	if !cfg.Fix {
		rr.AutoFix = false
	}

	return rr
}
