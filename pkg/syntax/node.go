// Package syntax defines the typed C/C++ syntax tree consumed by the rules.
package syntax

import (
	"strings"

	"github.com/yaklabco/cxxtidy/pkg/source"
)

// NodeID identifies a node within its Tree. IDs are dense and start at 1.
type NodeID uint32

// Kind identifies the syntactic category of a node.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Declarations.
	KindTranslationUnit
	KindFunction
	KindParam
	KindVariable
	KindField
	KindEnumConstant
	KindRecord

	// Statements.
	KindCompound
	KindIf
	KindWhile
	KindDoWhile
	KindFor
	KindRangeFor
	KindReturn
	KindDeclStmt
	KindExprStmt
	KindNullStmt
	KindOtherStmt

	// Expressions.
	KindBinary
	KindConditional
	KindParen
	KindNullLiteral
	KindImplicitCast
	KindUnary
	KindOtherExpr
)

var kindNames = [...]string{
	KindInvalid:         "Invalid",
	KindTranslationUnit: "TranslationUnit",
	KindFunction:        "Function",
	KindParam:           "Param",
	KindVariable:        "Variable",
	KindField:           "Field",
	KindEnumConstant:    "EnumConstant",
	KindRecord:          "Record",
	KindCompound:        "Compound",
	KindIf:              "If",
	KindWhile:           "While",
	KindDoWhile:         "DoWhile",
	KindFor:             "For",
	KindRangeFor:        "RangeFor",
	KindReturn:          "Return",
	KindDeclStmt:        "DeclStmt",
	KindExprStmt:        "ExprStmt",
	KindNullStmt:        "NullStmt",
	KindOtherStmt:       "OtherStmt",
	KindBinary:          "Binary",
	KindConditional:     "Conditional",
	KindParen:           "Paren",
	KindNullLiteral:     "NullLiteral",
	KindImplicitCast:    "ImplicitCast",
	KindUnary:           "Unary",
	KindOtherExpr:       "OtherExpr",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// ParseKind returns the kind named s, ignoring case.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if k != int(KindInvalid) && strings.EqualFold(name, s) {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}

// IsDecl reports whether k is a declaration kind.
func (k Kind) IsDecl() bool {
	return k >= KindTranslationUnit && k <= KindRecord
}

// IsStmt reports whether k is a statement kind.
func (k Kind) IsStmt() bool {
	return k >= KindCompound && k <= KindOtherStmt
}

// IsExpr reports whether k is an expression kind.
func (k Kind) IsExpr() bool {
	return k >= KindBinary && k <= KindOtherExpr
}

// IsLoop reports whether k is one of the loop statements.
func (k Kind) IsLoop() bool {
	switch k {
	case KindWhile, KindDoWhile, KindFor, KindRangeFor:
		return true
	default:
		return false
	}
}

// Node is one element of the syntax tree. Exactly one of Decl, Stmt or Expr
// is set, according to Kind.
type Node struct {
	ID     NodeID
	Kind   Kind
	Range  source.Range
	Parent *Node

	Decl *DeclAttrs
	Stmt *StmtAttrs
	Expr *ExprAttrs
}

// DeclAttrs holds declaration-specific fields.
type DeclAttrs struct {
	// Name is the declared name; empty for unnamed entities.
	Name string

	// NameLoc is the location of the name token.
	NameLoc source.Location

	// Params lists function parameters in order.
	Params []*Node

	// Body is a function definition's compound statement.
	Body *Node

	// Init is a variable or enumerator initializer.
	Init *Node

	// Members lists the children of a translation unit or record.
	Members []*Node

	// FileScope marks variables declared at namespace scope.
	FileScope bool

	// Implicit marks compiler-generated declarations.
	Implicit bool
}

// StmtAttrs holds statement-specific fields.
type StmtAttrs struct {
	// Keyword is the location of the leading keyword (if, while, do, for, return).
	Keyword source.Location

	// ElseLoc is the location of the else keyword of an if statement.
	ElseLoc source.Location

	// WhileLoc is the location of the while keyword of a do statement.
	WhileLoc source.Location

	Init *Node
	Cond *Node
	Inc  *Node

	Then *Node
	Else *Node
	Body *Node

	// Value is a returned expression or an expression statement's expression.
	Value *Node

	// Items lists compound statement children, declared variables of a
	// declaration statement, or the children of an OtherStmt.
	Items []*Node
}

// ExprAttrs holds expression-specific fields.
type ExprAttrs struct {
	// Op is the operator spelling for Binary and Unary nodes.
	Op string

	// OpLoc is the location of the operator token.
	OpLoc source.Location

	LHS *Node
	RHS *Node

	Cond  *Node
	True  *Node
	False *Node

	// Inner is the operand of Paren, ImplicitCast and Unary nodes.
	Inner *Node

	// Overloaded marks an operator call resolved to a user overload.
	Overloaded bool

	// Operands lists the children of an OtherExpr.
	Operands []*Node
}

// IgnoreImplicit strips implicit conversion layers.
func IgnoreImplicit(n *Node) *Node {
	for n != nil && n.Kind == KindImplicitCast && n.Expr != nil {
		n = n.Expr.Inner
	}
	return n
}

// IsComparisonOp reports whether op is a relational or equality operator.
func IsComparisonOp(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	default:
		return false
	}
}

// IsLogicalOp reports whether op is && or ||.
func IsLogicalOp(op string) bool {
	return op == "&&" || op == "||"
}

// IsBinaryOp reports whether n is a binary operator node, built-in or
// overloaded, with the given operator.
func (n *Node) IsBinaryOp(op string) bool {
	return n != nil && n.Kind == KindBinary && n.Expr.Op == op
}

// InMacro reports whether either end of the node's range is a macro location.
func (n *Node) InMacro() bool {
	return n.Range.Begin.IsMacro() || n.Range.End.IsMacro()
}
