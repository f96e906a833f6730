package syntax

// Children returns the direct children of n in source order. Nil slots are
// omitted.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}

	var out []*Node
	add := func(nodes ...*Node) {
		for _, c := range nodes {
			if c != nil {
				out = append(out, c)
			}
		}
	}

	switch {
	case n.Decl != nil:
		d := n.Decl
		add(d.Params...)
		add(d.Init, d.Body)
		add(d.Members...)
	case n.Stmt != nil:
		s := n.Stmt
		switch n.Kind {
		case KindDoWhile:
			add(s.Body, s.Cond)
		default:
			add(s.Init, s.Cond, s.Inc, s.Then, s.Else, s.Body, s.Value)
		}
		add(s.Items...)
	case n.Expr != nil:
		e := n.Expr
		add(e.LHS, e.RHS, e.Cond, e.True, e.False, e.Inner)
		add(e.Operands...)
	}

	return out
}

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal starting at root.
func Walk(root *Node, fn WalkFunc) error {
	return WalkWithContext(root, fn, nil)
}

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave is called after.
// Either callback may be nil.
func WalkWithContext(root *Node, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}

	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}

	for _, child := range root.Children() {
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		if err := leave(root); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns every node under root, root included, of the given kind.
func FindAll(root *Node, kind Kind) []*Node {
	var out []*Node
	_ = Walk(root, func(n *Node) error {
		if n.Kind == kind {
			out = append(out, n)
		}
		return nil
	})
	return out
}
