package lint_test

import (
	"testing"

	"github.com/yaklabco/cxxtidy/pkg/config"
	"github.com/yaklabco/cxxtidy/pkg/lint"
)

const (
	testRuleID1 = "CT001"
	testRuleID2 = "CT002"
)

func newResolveRule(id string, canFix bool) *testRule {
	return &testRule{
		BaseRule: lint.NewBaseRule(id, id+"-name", "", nil, canFix),
		newChecker: func(_ *lint.RuleContext) (lint.Checker, error) {
			return &testChecker{}, nil
		},
	}
}

func newResolveRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	registry.Register(newResolveRule(testRuleID1, true))
	registry.Register(newResolveRule(testRuleID2, false))
	registry.RegisterAlias("readability-first", testRuleID1)
	return registry
}

func findResolved(resolved []lint.ResolvedRule, id string) *lint.ResolvedRule {
	for i := range resolved {
		if resolved[i].Rule.ID() == id {
			return &resolved[i]
		}
	}
	return nil
}

func TestResolveRules_Empty(t *testing.T) {
	t.Parallel()

	resolved := lint.ResolveRules(lint.NewRegistry(), config.NewConfig())

	if len(resolved) != 0 {
		t.Errorf("expected 0 rules, got %d", len(resolved))
	}
}

func TestResolveRules_DefaultEnabled(t *testing.T) {
	t.Parallel()

	resolved := lint.ResolveRules(newResolveRegistry(), config.NewConfig())

	// Both rules should be enabled by default (BaseRule.DefaultEnabled returns true).
	if len(resolved) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(resolved))
	}
	if resolved[0].Rule.ID() != testRuleID1 || resolved[1].Rule.ID() != testRuleID2 {
		t.Errorf("rules should be in ID order, got %s, %s", resolved[0].Rule.ID(), resolved[1].Rule.ID())
	}
}

func TestResolveRules_NilConfig(t *testing.T) {
	t.Parallel()

	resolved := lint.ResolveRules(newResolveRegistry(), nil)

	rr := findResolved(resolved, testRuleID1)
	if rr == nil {
		t.Fatal("expected CT001 to be enabled")
	}
	if rr.Severity != config.SeverityWarning {
		t.Errorf("Severity = %q, want warning", rr.Severity)
	}
	if !rr.AutoFix {
		t.Error("fixable rule should auto-fix without a config")
	}
}

func TestResolveRules_ConfigKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
	}{
		{"by id", testRuleID1},
		{"by name", testRuleID1 + "-name"},
		{"by alias", "readability-first"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			cfg.Rules[tt.key] = config.RuleConfig{
				Severity: ptr("error"),
				Options:  map[string]any{"k": 1},
			}

			rr := findResolved(lint.ResolveRules(newResolveRegistry(), cfg), testRuleID1)
			if rr == nil {
				t.Fatal("expected CT001 to be enabled")
			}
			if rr.Severity != config.SeverityError {
				t.Errorf("Severity = %q, want error", rr.Severity)
			}
			if rr.Config == nil || rr.Config.Options["k"] != 1 {
				t.Errorf("rule config not attached: %+v", rr.Config)
			}
		})
	}
}

func TestResolveRules_DisableViaConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules[testRuleID1] = config.RuleConfig{Enabled: ptr(false)}

	resolved := lint.ResolveRules(newResolveRegistry(), cfg)

	if len(resolved) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(resolved))
	}
	if resolved[0].Rule.ID() != testRuleID2 {
		t.Errorf("expected %s, got %s", testRuleID2, resolved[0].Rule.ID())
	}
}

func TestResolveRules_EnableDisableLists(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules[testRuleID1] = config.RuleConfig{Enabled: ptr(false)}
	cfg.EnableRules = []string{"readability-first"}
	cfg.DisableRules = []string{testRuleID2 + "-name"}

	resolved := lint.ResolveRules(newResolveRegistry(), cfg)

	if len(resolved) != 1 || resolved[0].Rule.ID() != testRuleID1 {
		t.Fatalf("expected only %s, got %d rules", testRuleID1, len(resolved))
	}
}

func TestResolveRules_SeverityPrecedence(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.SeverityDefault = string(config.SeverityInfo)
	cfg.Rules[testRuleID2] = config.RuleConfig{Severity: ptr("error")}

	resolved := lint.ResolveRules(newResolveRegistry(), cfg)

	if got := findResolved(resolved, testRuleID1).Severity; got != config.SeverityInfo {
		t.Errorf("CT001 severity = %q, want info from the default", got)
	}
	if got := findResolved(resolved, testRuleID2).Severity; got != config.SeverityError {
		t.Errorf("CT002 severity = %q, want error from the rule", got)
	}
}

func TestResolveRules_AutoFix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		configure func(cfg *config.Config)
		want1     bool
		want2     bool
	}{
		{
			name:      "fix mode off",
			configure: func(cfg *config.Config) { cfg.Fix = false },
		},
		{
			name:      "fix mode on",
			configure: func(cfg *config.Config) { cfg.Fix = true },
			want1:     true,
		},
		{
			name: "rule opts out",
			configure: func(cfg *config.Config) {
				cfg.Fix = true
				cfg.Rules[testRuleID1] = config.RuleConfig{AutoFix: ptr(false)}
			},
		},
		{
			name: "non fixable rule cannot opt in",
			configure: func(cfg *config.Config) {
				cfg.Fix = true
				cfg.Rules[testRuleID2] = config.RuleConfig{AutoFix: ptr(true)}
			},
			want1: true,
		},
		{
			name: "fix list",
			configure: func(cfg *config.Config) {
				cfg.Fix = true
				cfg.FixRules = []string{testRuleID2}
			},
		},
		{
			name: "fix list by alias",
			configure: func(cfg *config.Config) {
				cfg.Fix = true
				cfg.FixRules = []string{"readability-first"}
			},
			want1: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.configure(cfg)
			resolved := lint.ResolveRules(newResolveRegistry(), cfg)

			if got := findResolved(resolved, testRuleID1).AutoFix; got != tt.want1 {
				t.Errorf("CT001 AutoFix = %v, want %v", got, tt.want1)
			}
			if got := findResolved(resolved, testRuleID2).AutoFix; got != tt.want2 {
				t.Errorf("CT002 AutoFix = %v, want %v", got, tt.want2)
			}
		})
	}
}
