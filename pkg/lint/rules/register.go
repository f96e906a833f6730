package rules

import "github.com/yaklabco/cxxtidy/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewBracesRule())            // CT001
	registry.Register(NewNullptrComparisonRule()) // CT002
	registry.Register(NewRedundantParensRule())   // CT003
	registry.Register(NewInlineCommentRule())     // CT004
}

// RegisterCheckAliases registers the clang-tidy check names each rule
// corresponds to, so existing configurations keep working.
func RegisterCheckAliases(registry *lint.Registry) {
	registry.RegisterAlias("readability-braces-around-statements", "CT001")
	registry.RegisterAlias("readability-redundant-nullptr-comparison", "CT002")
	registry.RegisterAlias("readability-redundant-parentheses", "CT003")
	registry.RegisterAlias("readability-declaration-inline-comment", "CT004")
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // rules register automatically
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterCheckAliases(lint.DefaultRegistry)
}
