// Package lint provides the rule engine, diagnostics, and registry for cxxtidy.
package lint

import (
	"github.com/yaklabco/cxxtidy/pkg/config"
	"github.com/yaklabco/cxxtidy/pkg/fix"
	"github.com/yaklabco/cxxtidy/pkg/source"
	"github.com/yaklabco/cxxtidy/pkg/syntax"
)

// Diagnostic represents a single issue found in a file.
type Diagnostic struct {
	// RuleID is the identifier of the rule that produced this diagnostic.
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "braces-around-statements").
	RuleName string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// Anchor is the location the diagnostic is reported at. It has no
	// bearing on how the edits are applied.
	Anchor source.Location

	// Line and Column are the 1-based presumed position of Anchor.
	Line   int
	Column int

	// FixEdits contains the text edits to fix this issue (may be empty).
	FixEdits []fix.TextEdit
}

// HasFix returns true if this diagnostic has associated fix edits.
func (d *Diagnostic) HasFix() bool {
	return len(d.FixEdits) > 0
}

// Position returns the diagnostic's 1-based line and column.
func (d *Diagnostic) Position() source.Position {
	return source.Position{Line: d.Line, Column: d.Column}
}

// Rule defines the interface that all rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "CT001").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule.
	Tags() []string

	// CanFix returns whether this rule can auto-fix issues.
	CanFix() bool

	// NewChecker decodes the rule's options and returns a checker for one
	// file. Checkers are never shared between files, so any state a rule
	// keeps while scanning lives in the checker and dies with it.
	NewChecker(ctx *RuleContext) (Checker, error)
}

// Checker matches and handles nodes during the engine's single traversal.
type Checker interface {
	// Match reports whether the checker is interested in n.
	Match(n *syntax.Node) bool

	// Check handles a matched node, reporting through e.
	Check(n *syntax.Node, e *Emitter)
}

// PostOrder is implemented by checkers that want matched nodes after their
// children have been visited rather than before.
type PostOrder interface {
	PostOrder() bool
}

// OptionDocumenter is implemented by rules that accept options, so the CLI
// and config templates can describe them.
type OptionDocumenter interface {
	OptionDocs() []config.OptionDoc
}
