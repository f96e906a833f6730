package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cxxtidy/pkg/syntax"
)

func TestNullptrComparisonRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantDiags int
		wantFix   string
	}{
		{
			name:      "equality becomes negation",
			input:     "void f(int* p) {\n  if (p == nullptr) { }\n}\n",
			wantDiags: 1,
			wantFix:   "void f(int* p) {\n  if (!p) { }\n}\n",
		},
		{
			name:      "inequality is dropped",
			input:     "void f(int* p) {\n  if (p != nullptr) { }\n}\n",
			wantDiags: 1,
			wantFix:   "void f(int* p) {\n  if (p) { }\n}\n",
		},
		{
			name:      "parenthesized operand",
			input:     "void f(int* a, int* b) {\n  if ((a && b) == nullptr) { }\n}\n",
			wantDiags: 1,
			wantFix:   "void f(int* a, int* b) {\n  if (!(a && b)) { }\n}\n",
		},
		{
			name:      "binary operand gains parentheses",
			input:     "bool f(char* p) {\n  return p + 1 == nullptr;\n}\n",
			wantDiags: 1,
			wantFix:   "bool f(char* p) {\n  return !(p + 1);\n}\n",
		},
		{
			name:      "binary operand of inequality stays bare",
			input:     "bool f(char* p) {\n  return p + 1 != nullptr;\n}\n",
			wantDiags: 1,
			wantFix:   "bool f(char* p) {\n  return p + 1;\n}\n",
		},
		{
			name:      "parenthesized conditional operand",
			input:     "bool f(bool c, int* p, int* q) {\n  return (c ? p : q) == nullptr;\n}\n",
			wantDiags: 1,
			wantFix:   "bool f(bool c, int* p, int* q) {\n  return !(c ? p : q);\n}\n",
		},
		{
			name:      "conditional binds looser than the comparison",
			input:     "bool f(bool c, int* p, int* q) {\n  return c ? p != nullptr : q == nullptr;\n}\n",
			wantDiags: 2,
			wantFix:   "bool f(bool c, int* p, int* q) {\n  return c ? p : !q;\n}\n",
		},
		{
			name:      "member access",
			input:     "void f(Node* node) {\n  while (node->next != nullptr) node = node->next;\n}\n",
			wantDiags: 1,
			wantFix:   "void f(Node* node) {\n  while (node->next) node = node->next;\n}\n",
		},
		{
			name:      "no space around operator",
			input:     "bool f(int* p) {\n  return p==nullptr;\n}\n",
			wantDiags: 1,
			wantFix:   "bool f(int* p) {\n  return !p;\n}\n",
		},
		{
			name:      "both comparisons in one condition",
			input:     "void f(int* p, int* q) {\n  if (p != nullptr && q == nullptr) { }\n}\n",
			wantDiags: 2,
			wantFix:   "void f(int* p, int* q) {\n  if (p && !q) { }\n}\n",
		},
		{
			name:      "nullptr on the left is not matched",
			input:     "void f(int* p) {\n  if (nullptr == p) { }\n}\n",
			wantDiags: 0,
			wantFix:   "void f(int* p) {\n  if (nullptr == p) { }\n}\n",
		},
		{
			name:      "other comparisons are not matched",
			input:     "void f(int* p, int* q) {\n  if (p == q) { }\n}\n",
			wantDiags: 0,
			wantFix:   "void f(int* p, int* q) {\n  if (p == q) { }\n}\n",
		},
		{
			name:      "operand from a macro",
			input:     "#define PTR p\nvoid f(int* p) {\n  if (PTR == nullptr) { }\n}\n",
			wantDiags: 0,
			wantFix:   "#define PTR p\nvoid f(int* p) {\n  if (PTR == nullptr) { }\n}\n",
		},
		{
			name:      "null from a macro",
			input:     "#define NIL nullptr\nvoid f(int* p) {\n  if (p == NIL) { }\n}\n",
			wantDiags: 0,
			wantFix:   "#define NIL nullptr\nvoid f(int* p) {\n  if (p == NIL) { }\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertFix(t, NewNullptrComparisonRule(), tt.input, nil, tt.wantDiags, tt.wantFix)
		})
	}
}

// A conditional can only be the direct left operand of == after parsing
// drops its parentheses, so needsParens is checked on built nodes.
func TestNeedsParens(t *testing.T) {
	t.Parallel()

	leaf := &syntax.Node{Kind: syntax.KindOtherExpr, Expr: &syntax.ExprAttrs{}}
	binary := &syntax.Node{Kind: syntax.KindBinary, Expr: &syntax.ExprAttrs{Op: "+", LHS: leaf, RHS: leaf}}
	conditional := &syntax.Node{Kind: syntax.KindConditional, Expr: &syntax.ExprAttrs{Cond: leaf, True: leaf, False: leaf}}
	implicit := func(inner *syntax.Node) *syntax.Node {
		return &syntax.Node{Kind: syntax.KindImplicitCast, Expr: &syntax.ExprAttrs{Inner: inner}}
	}

	tests := []struct {
		name string
		node *syntax.Node
		want bool
	}{
		{"binary", binary, true},
		{"conditional", conditional, true},
		{"binary under implicit cast", implicit(binary), true},
		{"conditional under implicit cast", implicit(conditional), true},
		{"parenthesized", &syntax.Node{Kind: syntax.KindParen, Expr: &syntax.ExprAttrs{Inner: binary}}, false},
		{"unary", &syntax.Node{Kind: syntax.KindUnary, Expr: &syntax.ExprAttrs{Op: "*", Inner: leaf}}, false},
		{"leaf", leaf, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, needsParens(tt.node))
		})
	}
}

func TestNullptrComparisonRule_Messages(t *testing.T) {
	t.Parallel()

	input := "void f(int* p, int* q) {\n  if (p != nullptr && q == nullptr) { }\n}\n"
	result, _ := lintWith(t, NewNullptrComparisonRule(), input, nil)
	require.Len(t, result.Diagnostics, 2)

	ne, eq := result.Diagnostics[0], result.Diagnostics[1]
	assert.Equal(t, "redundant '!=' comparison with nullptr", ne.Message)
	assert.Equal(t, 9, ne.Column)
	assert.Equal(t, "redundant '==' comparison with nullptr; use '!'", eq.Message)
	assert.Equal(t, 25, eq.Column)
	assert.Equal(t, "CT002", eq.RuleID)
}

func TestNullptrComparisonRule_Options(t *testing.T) {
	t.Parallel()

	result, _ := lintWith(t, NewNullptrComparisonRule(), "int x;\n", map[string]any{"strict": true})
	require.Contains(t, result.RuleErrors, "CT002")
}
