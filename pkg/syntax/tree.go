package syntax

import (
	"fortio.org/safecast"

	"github.com/yaklabco/cxxtidy/pkg/source"
)

// Tree owns every node of one parsed file.
type Tree struct {
	Buffer *source.Buffer
	Root   *Node

	nodes []*Node
}

// NewTree creates an empty tree over buf.
func NewTree(buf *source.Buffer) *Tree {
	return &Tree{Buffer: buf}
}

// NewNode allocates a node of kind k spanning r and attaches the attribute
// struct matching its family.
func (t *Tree) NewNode(k Kind, r source.Range) *Node {
	id, err := safecast.Conv[uint32](len(t.nodes) + 1)
	if err != nil {
		id = 0
	}

	n := &Node{ID: NodeID(id), Kind: k, Range: r}
	switch {
	case k.IsDecl():
		n.Decl = &DeclAttrs{}
	case k.IsStmt():
		n.Stmt = &StmtAttrs{}
	case k.IsExpr():
		n.Expr = &ExprAttrs{}
	}

	t.nodes = append(t.nodes, n)
	return n
}

// Node returns the node with the given ID, or nil.
func (t *Tree) Node(id NodeID) *Node {
	if id == 0 || int(id) > len(t.nodes) {
		return nil
	}
	return t.nodes[id-1]
}

// Len returns the number of nodes allocated.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Link sets every node's Parent pointer from the structure below Root.
func (t *Tree) Link() {
	if t.Root == nil {
		return
	}
	t.Root.Parent = nil
	_ = Walk(t.Root, func(n *Node) error {
		for _, child := range n.Children() {
			child.Parent = n
		}
		return nil
	})
}
