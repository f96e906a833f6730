package syntax

import "strings"

// Dump renders the subtree at n as a compact s-expression. Binary and unary
// nodes include their operator and declarations their name.
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n)
	return sb.String()
}

func dump(sb *strings.Builder, n *Node) {
	if n == nil {
		sb.WriteString("()")
		return
	}

	sb.WriteByte('(')
	sb.WriteString(n.Kind.String())

	switch {
	case n.Expr != nil && n.Expr.Op != "":
		sb.WriteByte(' ')
		sb.WriteString(n.Expr.Op)
	case n.Decl != nil && n.Decl.Name != "":
		sb.WriteByte(' ')
		sb.WriteString(n.Decl.Name)
	}

	for _, child := range n.Children() {
		sb.WriteByte(' ')
		dump(sb, child)
	}

	sb.WriteByte(')')
}
