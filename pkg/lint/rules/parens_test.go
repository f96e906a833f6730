package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cxxtidy/pkg/syntax"
)

func TestRedundantParensRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantDiags int
		wantFix   string
	}{
		{
			name:      "assignment of a plain operand",
			input:     "void f(int x, int y) {\n  x = (y);\n}\n",
			wantDiags: 1,
			wantFix:   "void f(int x, int y) {\n  x = y;\n}\n",
		},
		{
			name:      "returned comparison",
			input:     "bool f(int a, int b) {\n  return (a == b);\n}\n",
			wantDiags: 1,
			wantFix:   "bool f(int a, int b) {\n  return a == b;\n}\n",
		},
		{
			name:      "return without a space",
			input:     "int f(int x) {\n  return(x);\n}\n",
			wantDiags: 1,
			wantFix:   "int f(int x) {\n  return x;\n}\n",
		},
		{
			name:      "returned call",
			input:     "int f(int x) {\n  return (g(x));\n}\n",
			wantDiags: 1,
			wantFix:   "int f(int x) {\n  return g(x);\n}\n",
		},
		{
			name:      "comparison inside logical operand",
			input:     "void f(int a, int b, bool c) {\n  if ((a == b) && c) { }\n}\n",
			wantDiags: 1,
			wantFix:   "void f(int a, int b, bool c) {\n  if (a == b && c) { }\n}\n",
		},
		{
			name:      "logical assigned",
			input:     "void f(bool x, bool a, bool b) {\n  x = (a && b);\n}\n",
			wantDiags: 1,
			wantFix:   "void f(bool x, bool a, bool b) {\n  x = a && b;\n}\n",
		},
		{
			name:      "conditional branches",
			input:     "void f(int x, int a) {\n  x = a > 0 ? (a) : (-a);\n}\n",
			wantDiags: 2,
			wantFix:   "void f(int x, int a) {\n  x = a > 0 ? a : -a;\n}\n",
		},
		{
			name:      "logical inside logical is kept",
			input:     "void f(bool a, bool b, bool c) {\n  if ((a && b) || c) { }\n}\n",
			wantDiags: 0,
			wantFix:   "void f(bool a, bool b, bool c) {\n  if ((a && b) || c) { }\n}\n",
		},
		{
			name:      "conditional is kept",
			input:     "int f(bool c, int a, int b) {\n  return (c ? a : b);\n}\n",
			wantDiags: 0,
			wantFix:   "int f(bool c, int a, int b) {\n  return (c ? a : b);\n}\n",
		},
		{
			name:      "arithmetic is kept",
			input:     "int f(int a, int b) {\n  return (a + b);\n}\n",
			wantDiags: 0,
			wantFix:   "int f(int a, int b) {\n  return (a + b);\n}\n",
		},
		{
			name:      "nested assignment is kept",
			input:     "void f(int x, int y) {\n  x = (y = 2);\n}\n",
			wantDiags: 0,
			wantFix:   "void f(int x, int y) {\n  x = (y = 2);\n}\n",
		},
		{
			name:      "if condition is not a context",
			input:     "void f(int a) {\n  if ((a)) { }\n}\n",
			wantDiags: 0,
			wantFix:   "void f(int a) {\n  if ((a)) { }\n}\n",
		},
		{
			name:      "parentheses from a macro",
			input:     "#define WRAP(x) (x)\nint f(int a) {\n  return WRAP(a);\n}\n",
			wantDiags: 0,
			wantFix:   "#define WRAP(x) (x)\nint f(int a) {\n  return WRAP(a);\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertFix(t, NewRedundantParensRule(), tt.input, nil, tt.wantDiags, tt.wantFix)
		})
	}
}

func TestRedundantParensRule_NestedNeedsTwoPasses(t *testing.T) {
	t.Parallel()

	input := "int f(int x) {\n  return ((x));\n}\n"

	result, fixed := lintWith(t, NewRedundantParensRule(), input, nil)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "int f(int x) {\n  return (x);\n}\n", fixed)

	result, fixed = lintWith(t, NewRedundantParensRule(), fixed, nil)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "int f(int x) {\n  return x;\n}\n", fixed)
}

func TestRedundantParensRule_Diagnostic(t *testing.T) {
	t.Parallel()

	result, _ := lintWith(t, NewRedundantParensRule(), "void f(int x, int y) {\n  x = (y);\n}\n", nil)
	require.Len(t, result.Diagnostics, 1)

	diag := result.Diagnostics[0]
	assert.Equal(t, "CT003", diag.RuleID)
	assert.Equal(t, "redundant parentheses", diag.Message)
	assert.Equal(t, 2, diag.Line)
	assert.Equal(t, 7, diag.Column)
}

func TestRedundant(t *testing.T) {
	t.Parallel()

	binary := func(op string) *syntax.Node {
		return &syntax.Node{Kind: syntax.KindBinary, Expr: &syntax.ExprAttrs{Op: op}}
	}

	tests := []struct {
		name   string
		inner  *syntax.Node
		inExpr bool
		want   bool
	}{
		{"comparison", binary("<="), false, true},
		{"comparison in logical", binary("!="), true, true},
		{"logical", binary("||"), false, true},
		{"logical in logical", binary("&&"), true, false},
		{"arithmetic", binary("*"), false, false},
		{"conditional", &syntax.Node{Kind: syntax.KindConditional, Expr: &syntax.ExprAttrs{}}, false, false},
		{"negation", &syntax.Node{Kind: syntax.KindUnary, Expr: &syntax.ExprAttrs{Op: "!"}}, true, true},
		{"throw", &syntax.Node{Kind: syntax.KindUnary, Expr: &syntax.ExprAttrs{Op: "throw"}}, false, false},
		{"leaf", &syntax.Node{Kind: syntax.KindOtherExpr, Expr: &syntax.ExprAttrs{}}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, redundant(tt.inner, tt.inExpr))
		})
	}
}
