package rules

import (
	"github.com/yaklabco/cxxtidy/pkg/fix"
	"github.com/yaklabco/cxxtidy/pkg/lint"
	"github.com/yaklabco/cxxtidy/pkg/source"
	"github.com/yaklabco/cxxtidy/pkg/syntax"
)

// RedundantParensRule removes parentheses that precedence already implies
// in four contexts: operands of && and ||, the right side of an assignment,
// the operands of ?:, and a returned value.
//
// The rule is deliberately conservative. Parentheses around a conditional,
// around a logical expression inside another logical expression, and around
// any other binary operator are kept.
type RedundantParensRule struct {
	lint.BaseRule
}

// NewRedundantParensRule creates a new redundant parentheses rule.
func NewRedundantParensRule() *RedundantParensRule {
	return &RedundantParensRule{
		BaseRule: lint.NewBaseRule(
			"CT003",
			"redundant-parentheses",
			"Parentheses that do not change how an expression groups should be removed",
			[]string{"readability", "expressions"},
			true,
		),
	}
}

// NewChecker returns a checker for one file. The rule takes no options.
func (r *RedundantParensRule) NewChecker(ctx *lint.RuleContext) (lint.Checker, error) {
	if err := ctx.CheckOptions(); err != nil {
		return nil, err
	}
	return &parensChecker{buf: ctx.Buffer}, nil
}

type parensChecker struct {
	buf *source.Buffer
}

// operand is an expression position and whether it sits directly inside a
// logical expression.
type operand struct {
	expr   *syntax.Node
	inExpr bool
}

func (c *parensChecker) Match(n *syntax.Node) bool {
	switch n.Kind {
	case syntax.KindBinary:
		return syntax.IsLogicalOp(n.Expr.Op) || n.Expr.Op == "="
	case syntax.KindConditional:
		return true
	case syntax.KindReturn:
		return n.Stmt.Value != nil
	default:
		return false
	}
}

func (c *parensChecker) Check(n *syntax.Node, e *lint.Emitter) {
	var operands []operand
	switch n.Kind {
	case syntax.KindBinary:
		if n.Expr.Op == "=" {
			operands = []operand{{n.Expr.RHS, false}}
		} else {
			operands = []operand{{n.Expr.LHS, true}, {n.Expr.RHS, true}}
		}
	case syntax.KindConditional:
		operands = []operand{{n.Expr.Cond, false}, {n.Expr.True, false}, {n.Expr.False, false}}
	case syntax.KindReturn:
		operands = []operand{{n.Stmt.Value, false}}
	}

	for _, op := range operands {
		c.checkParens(op, e)
	}
}

func (c *parensChecker) checkParens(op operand, e *lint.Emitter) {
	paren := syntax.IgnoreImplicit(op.expr)
	if paren == nil || paren.Kind != syntax.KindParen || paren.InMacro() {
		return
	}
	inner := syntax.IgnoreImplicit(paren.Expr.Inner)
	if inner == nil || !redundant(inner, op.inExpr) {
		return
	}

	open, closing := paren.Range.Begin.Offset(), paren.Range.End.Offset()
	e.Report(paren.Range.Begin, "redundant parentheses",
		c.parenRemoval(open),
		c.parenRemoval(closing),
	)
}

// redundant decides whether parentheses around inner can go.
func redundant(inner *syntax.Node, inExpr bool) bool {
	switch inner.Kind {
	case syntax.KindBinary:
		op := inner.Expr.Op
		if syntax.IsComparisonOp(op) {
			return true
		}
		return syntax.IsLogicalOp(op) && !inExpr
	case syntax.KindConditional:
		return false
	case syntax.KindUnary:
		return inner.Expr.Op != "throw"
	default:
		return true
	}
}

// parenRemoval deletes the parenthesis at off, or turns it into a space
// when deleting it would fuse the neighbouring tokens, as in "return(x)".
func (c *parensChecker) parenRemoval(off int) fix.TextEdit {
	content := c.buf.Content
	if off > 0 && off+1 < len(content) &&
		source.IsIdentChar(content[off-1]) && source.IsIdentChar(content[off+1]) {
		return fix.Replace(off, off+1, " ")
	}
	return fix.Remove(off, off+1)
}
