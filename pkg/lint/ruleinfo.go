package lint

import "github.com/yaklabco/cxxtidy/pkg/config"

// RuleInfo describes r for templates and listings.
func RuleInfo(r Rule) config.RuleInfo {
	info := config.RuleInfo{
		ID:          r.ID(),
		Name:        r.Name(),
		Description: r.Description(),
		Enabled:     r.DefaultEnabled(),
		Severity:    r.DefaultSeverity(),
		Tags:        r.Tags(),
		CanFix:      r.CanFix(),
	}
	if d, ok := r.(OptionDocumenter); ok {
		info.Options = d.OptionDocs()
	}
	return info
}

// RuleInfos describes every rule in reg, sorted by ID. Aliases registered
// for a rule are included.
func RuleInfos(reg *Registry) []config.RuleInfo {
	if reg == nil {
		reg = DefaultRegistry
	}

	rules := reg.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, r := range rules {
		info := RuleInfo(r)
		info.Aliases = reg.Aliases(r.ID())
		infos = append(infos, info)
	}
	return infos
}
