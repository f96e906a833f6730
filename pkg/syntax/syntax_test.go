package syntax_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cxxtidy/pkg/source"
	"github.com/yaklabco/cxxtidy/pkg/syntax"
)

// buildComparison builds `p == nullptr` inside an if statement.
func buildComparison(t *testing.T) (*syntax.Tree, *syntax.Node) {
	t.Helper()

	buf := source.NewBuffer("t.cpp", []byte("if (p == nullptr) f();"))
	tree := syntax.NewTree(buf)
	at := func(off int) source.Location { return source.FileLocation(off) }

	lhs := tree.NewNode(syntax.KindOtherExpr, source.Range{Begin: at(4), End: at(4)})
	cast := tree.NewNode(syntax.KindImplicitCast, lhs.Range)
	cast.Expr.Inner = lhs
	rhs := tree.NewNode(syntax.KindNullLiteral, source.Range{Begin: at(9), End: at(9)})
	cmp := tree.NewNode(syntax.KindBinary, source.Range{Begin: at(4), End: at(9)})
	cmp.Expr.Op = "=="
	cmp.Expr.OpLoc = at(6)
	cmp.Expr.LHS = cast
	cmp.Expr.RHS = rhs

	call := tree.NewNode(syntax.KindOtherExpr, source.Range{Begin: at(18), End: at(20)})
	stmt := tree.NewNode(syntax.KindExprStmt, source.Range{Begin: at(18), End: at(21)})
	stmt.Stmt.Value = call

	ifStmt := tree.NewNode(syntax.KindIf, source.Range{Begin: at(0), End: at(21)})
	ifStmt.Stmt.Keyword = at(0)
	ifStmt.Stmt.Cond = cmp
	ifStmt.Stmt.Then = stmt

	root := tree.NewNode(syntax.KindTranslationUnit, source.Range{Begin: at(0), End: at(21)})
	root.Decl.Members = []*syntax.Node{ifStmt}
	tree.Root = root
	tree.Link()

	return tree, cmp
}

func TestNewNodeAttrs(t *testing.T) {
	t.Parallel()

	tree := syntax.NewTree(source.NewBuffer("x.c", nil))

	decl := tree.NewNode(syntax.KindVariable, source.Range{})
	stmt := tree.NewNode(syntax.KindIf, source.Range{})
	expr := tree.NewNode(syntax.KindParen, source.Range{})

	assert.NotNil(t, decl.Decl)
	assert.Nil(t, decl.Stmt)
	assert.NotNil(t, stmt.Stmt)
	assert.NotNil(t, expr.Expr)

	assert.Equal(t, syntax.NodeID(1), decl.ID)
	assert.Equal(t, syntax.NodeID(3), expr.ID)
	assert.Same(t, stmt, tree.Node(2))
	assert.Nil(t, tree.Node(0))
	assert.Nil(t, tree.Node(4))
	assert.Equal(t, 3, tree.Len())
}

func TestKindFamilies(t *testing.T) {
	t.Parallel()

	assert.True(t, syntax.KindField.IsDecl())
	assert.True(t, syntax.KindCompound.IsStmt())
	assert.True(t, syntax.KindOtherStmt.IsStmt())
	assert.True(t, syntax.KindBinary.IsExpr())
	assert.False(t, syntax.KindBinary.IsStmt())
	assert.True(t, syntax.KindRangeFor.IsLoop())
	assert.False(t, syntax.KindIf.IsLoop())
	assert.Equal(t, "Conditional", syntax.KindConditional.String())
}

func TestWalkOrder(t *testing.T) {
	t.Parallel()

	tree, _ := buildComparison(t)

	var entered, left []string
	err := syntax.WalkWithContext(tree.Root,
		func(n *syntax.Node) error {
			entered = append(entered, n.Kind.String())
			return nil
		},
		func(n *syntax.Node) error {
			left = append(left, n.Kind.String())
			return nil
		})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"TranslationUnit", "If", "Binary", "ImplicitCast", "OtherExpr", "NullLiteral", "ExprStmt", "OtherExpr",
	}, entered)
	assert.Equal(t, []string{
		"OtherExpr", "ImplicitCast", "NullLiteral", "Binary", "OtherExpr", "ExprStmt", "If", "TranslationUnit",
	}, left)
}

func TestWalkStops(t *testing.T) {
	t.Parallel()

	tree, _ := buildComparison(t)
	stop := errors.New("stop")

	count := 0
	err := syntax.Walk(tree.Root, func(n *syntax.Node) error {
		count++
		if n.Kind == syntax.KindBinary {
			return stop
		}
		return nil
	})

	require.ErrorIs(t, err, stop)
	assert.Equal(t, 3, count)
}

func TestLinkAndHelpers(t *testing.T) {
	t.Parallel()

	tree, cmp := buildComparison(t)

	assert.Nil(t, tree.Root.Parent)
	assert.Equal(t, syntax.KindIf, cmp.Parent.Kind)
	assert.Equal(t, syntax.KindOtherExpr, syntax.IgnoreImplicit(cmp.Expr.LHS).Kind)
	assert.True(t, cmp.IsBinaryOp("=="))
	assert.False(t, cmp.IsBinaryOp("!="))
	assert.False(t, cmp.InMacro())

	assert.Len(t, syntax.FindAll(tree.Root, syntax.KindOtherExpr), 2)
	assert.Equal(t,
		"(TranslationUnit (If (Binary == (ImplicitCast (OtherExpr)) (NullLiteral)) (ExprStmt (OtherExpr))))",
		syntax.Dump(tree.Root))
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"If", "if", "NULLLITERAL"} {
		k, ok := syntax.ParseKind(name)
		assert.True(t, ok, name)
		assert.Equal(t, strings.ToLower(name), strings.ToLower(k.String()))
	}

	for _, name := range []string{"", "Invalid", "Lambda"} {
		_, ok := syntax.ParseKind(name)
		assert.False(t, ok, name)
	}
}

func TestOperatorClasses(t *testing.T) {
	t.Parallel()

	for _, op := range []string{"==", "!=", "<", "<=", ">", ">="} {
		assert.True(t, syntax.IsComparisonOp(op), op)
	}
	assert.False(t, syntax.IsComparisonOp("<=>"))
	assert.False(t, syntax.IsComparisonOp("&&"))
	assert.True(t, syntax.IsLogicalOp("&&"))
	assert.True(t, syntax.IsLogicalOp("||"))
	assert.False(t, syntax.IsLogicalOp("&"))
}
