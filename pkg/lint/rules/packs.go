package rules

import "github.com/yaklabco/cxxtidy/pkg/config"

// Pack describes a named group of rule defaults for a particular use case.
// Packs are configuration fragments used as starting points for
// .cxxtidy.yml files.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "default", "strict").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// Rules contains rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// DefaultPack enables every rule as a warning with braces on every body.
func DefaultPack() Pack {
	return Pack{
		Name:        "default",
		Description: "All rules as warnings; every controlled statement is braced",
		Rules: map[string]config.RuleConfig{
			"CT001": enabled("warning", nil), // braces-around-statements
			"CT002": enabled("warning", nil), // redundant-nullptr-comparison
			"CT003": enabled("warning", nil), // redundant-parentheses
			"CT004": enabled("warning", nil), // declaration-inline-comment
		},
	}
}

// StrictPack reports everything as an error.
func StrictPack() Pack {
	return Pack{
		Name:        "strict",
		Description: "Strict pack: all rules as errors",
		Rules: map[string]config.RuleConfig{
			"CT001": enabled("error", nil),
			"CT002": enabled("error", nil),
			"CT003": enabled("error", nil),
			"CT004": enabled("error", nil),
		},
	}
}

// CompactPack leaves one-line bodies unbraced and strips braces around
// them, for code bases that prefer dense control flow.
func CompactPack() Pack {
	return Pack{
		Name:        "compact",
		Description: "Compact pack: short bodies stay unbraced and redundant braces are removed",
		Rules: map[string]config.RuleConfig{
			"CT001": enabled("warning", map[string]any{
				optShortStatementLines:     2,
				optAddBraces:               true,
				optRemoveUnnecessaryBraces: true,
			}),
			"CT002": enabled("info", nil),
			"CT003": enabled("info", nil),
		},
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		DefaultPack(),
		StrictPack(),
		CompactPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// enabled creates a RuleConfig with the rule enabled at the given severity.
func enabled(sev string, options map[string]any) config.RuleConfig {
	on := true
	return config.RuleConfig{
		Enabled:  &on,
		Severity: &sev,
		Options:  options,
	}
}
