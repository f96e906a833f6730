package rules

import (
	"context"
	"testing"

	"github.com/yaklabco/cxxtidy/pkg/config"
	"github.com/yaklabco/cxxtidy/pkg/lint"
)

func TestPacks(t *testing.T) {
	packs := Packs()

	// Verify we have the expected number of packs.
	expectedCount := 3
	if len(packs) != expectedCount {
		t.Errorf("got %d packs, want %d", len(packs), expectedCount)
	}

	// Verify each pack has required fields.
	for _, pack := range packs {
		if pack.Name == "" {
			t.Error("pack has empty name")
		}
		if pack.Description == "" {
			t.Errorf("pack %q has empty description", pack.Name)
		}
		if len(pack.Rules) == 0 {
			t.Errorf("pack %q has no rules", pack.Name)
		}

		// Verify each rule config is valid and names a registered rule.
		for ruleID, cfg := range pack.Rules {
			if cfg.Enabled == nil {
				t.Errorf("pack %q rule %q has nil Enabled", pack.Name, ruleID)
			}
			if cfg.Severity == nil {
				t.Errorf("pack %q rule %q has nil Severity", pack.Name, ruleID)
			}
			if _, ok := lint.DefaultRegistry.GetByID(ruleID); !ok {
				t.Errorf("pack %q names unknown rule %q", pack.Name, ruleID)
			}
		}
	}
}

func TestPackByName(t *testing.T) {
	tests := []struct {
		name  string
		want  bool
		rules int
	}{
		{"default", true, 4},
		{"strict", true, 4},
		{"compact", true, 3},
		{"nonexistent", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pack := PackByName(tt.name)
			if tt.want {
				if pack == nil {
					t.Errorf("PackByName(%q) returned nil, want pack", tt.name)
					return
				}
				if pack.Name != tt.name {
					t.Errorf("pack.Name = %q, want %q", pack.Name, tt.name)
				}
				if len(pack.Rules) != tt.rules {
					t.Errorf("pack %q has %d rules, want %d", tt.name, len(pack.Rules), tt.rules)
				}
			} else if pack != nil {
				t.Errorf("PackByName(%q) returned pack, want nil", tt.name)
			}
		})
	}
}

func TestPackNames(t *testing.T) {
	names := PackNames()

	expected := []string{"default", "strict", "compact"}
	if len(names) != len(expected) {
		t.Fatalf("got %d names, want %d", len(names), len(expected))
	}

	for i, name := range expected {
		if names[i] != name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestStrictPack(t *testing.T) {
	pack := StrictPack()

	for ruleID, cfg := range pack.Rules {
		if cfg.Severity == nil || *cfg.Severity != "error" {
			t.Errorf("strict pack rule %q should be an error", ruleID)
		}
	}
}

func TestCompactPackOptionsDecode(t *testing.T) {
	pack := CompactPack()

	ruleCfg := pack.Rules["CT001"]
	ctx := lint.NewRuleContext(context.Background(), nil, config.NewConfig(), &ruleCfg)

	opts, err := NewBracesRule().DecodeOptions(ctx)
	if err != nil {
		t.Fatalf("compact pack options do not decode: %v", err)
	}
	if opts.ShortStatementLines != 2 || !opts.RemoveUnnecessaryBraces {
		t.Errorf("unexpected options %+v", opts)
	}
}
