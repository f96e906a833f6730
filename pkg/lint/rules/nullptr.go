package rules

import (
	"github.com/yaklabco/cxxtidy/pkg/fix"
	"github.com/yaklabco/cxxtidy/pkg/lint"
	"github.com/yaklabco/cxxtidy/pkg/source"
	"github.com/yaklabco/cxxtidy/pkg/syntax"
)

// NullptrComparisonRule rewrites explicit comparisons against nullptr:
// "p == nullptr" becomes "!p" and "p != nullptr" becomes "p".
type NullptrComparisonRule struct {
	lint.BaseRule
}

// NewNullptrComparisonRule creates a new nullptr comparison rule.
func NewNullptrComparisonRule() *NullptrComparisonRule {
	return &NullptrComparisonRule{
		BaseRule: lint.NewBaseRule(
			"CT002",
			"redundant-nullptr-comparison",
			"Pointers should be tested directly instead of compared with nullptr",
			[]string{"readability", "expressions"},
			true,
		),
	}
}

// NewChecker returns a checker for one file. The rule takes no options.
func (r *NullptrComparisonRule) NewChecker(ctx *lint.RuleContext) (lint.Checker, error) {
	if err := ctx.CheckOptions(); err != nil {
		return nil, err
	}
	return &nullptrChecker{buf: ctx.Buffer}, nil
}

type nullptrChecker struct {
	buf *source.Buffer
}

func (c *nullptrChecker) Match(n *syntax.Node) bool {
	if n.Kind != syntax.KindBinary || (n.Expr.Op != "==" && n.Expr.Op != "!=") {
		return false
	}
	rhs := syntax.IgnoreImplicit(n.Expr.RHS)
	return n.Expr.LHS != nil && rhs != nil && rhs.Kind == syntax.KindNullLiteral
}

func (c *nullptrChecker) Check(n *syntax.Node, e *lint.Emitter) {
	lhs, rhs := n.Expr.LHS, n.Expr.RHS
	if n.InMacro() || lhs.InMacro() || rhs.InMacro() || !n.Expr.OpLoc.IsFile() {
		return
	}

	// The removed span starts right after the left operand so that no
	// whitespace is left dangling before a closing parenthesis.
	start := c.buf.EndOfToken(lhs.Range.End)
	end := c.buf.EndOfToken(rhs.Range.End)
	if !start.IsFile() || !end.IsFile() || !start.Before(end) {
		return
	}

	if n.Expr.Op == "!=" {
		e.Report(n.Expr.OpLoc, "redundant '!=' comparison with nullptr",
			fix.Remove(start.Offset(), end.Offset()))
		return
	}

	begin := lhs.Range.Begin.Offset()
	if needsParens(lhs) {
		e.Report(n.Expr.OpLoc, "redundant '==' comparison with nullptr; use '!'",
			fix.Insert(begin, "!("),
			fix.Replace(start.Offset(), end.Offset(), ")"))
		return
	}
	e.Report(n.Expr.OpLoc, "redundant '==' comparison with nullptr; use '!'",
		fix.Insert(begin, "!"),
		fix.Remove(start.Offset(), end.Offset()))
}

// needsParens reports whether negating e requires wrapping it.
func needsParens(e *syntax.Node) bool {
	e = syntax.IgnoreImplicit(e)
	return e.Kind == syntax.KindBinary || e.Kind == syntax.KindConditional
}
