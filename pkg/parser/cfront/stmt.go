package cfront

import (
	"github.com/yaklabco/cxxtidy/pkg/source"
	"github.com/yaklabco/cxxtidy/pkg/syntax"
)

func (st *state) parseStatement() *syntax.Node {
	if !st.enter() {
		st.leave()
		return st.nullStmt(st.skipToSemi())
	}
	defer st.leave()

	t := st.peek()
	switch {
	case t.is("{"):
		return st.parseCompound()
	case t.is(";"):
		return st.nullStmt(st.next())
	case t.is("if"):
		return st.parseIf()
	case t.is("while"):
		return st.parseWhile()
	case t.is("do"):
		return st.parseDo()
	case t.is("for"):
		return st.parseFor()
	case t.is("return"), t.is("co_return"):
		return st.parseReturn()
	case t.is("switch"):
		return st.parseSwitch()
	case t.is("case"), t.is("default") && st.peekN(1).is(":"):
		return st.parseCaseLabel()
	case t.isIdent() && st.peekN(1).is(":") && !isNameKeyword(t.text) && !st.isMacro(t):
		st.next()
		st.next()
		return st.labeled(t, st.parseStatement())
	case t.is("break"), t.is("continue"), t.is("goto"), t.is("asm"), t.is("__asm__"), t.is("__asm"):
		st.next()
		return st.otherStmt(t, st.skipToSemi())
	case t.is("try"):
		return st.parseTry()
	case t.is("[") && st.peekN(1).is("["):
		st.skipBalanced()
		return st.parseStatement()
	case t.is("using"), t.is("typedef"), t.is("static_assert"), t.is("_Static_assert"), t.is("namespace"):
		st.next()
		last := st.skipToSemi()
		return st.tree.NewNode(syntax.KindDeclStmt, st.span(t, last))
	case st.isDeclarationStart():
		return st.parseDeclStmt()
	}

	return st.parseExprStmt()
}

func (st *state) nullStmt(semi tok) *syntax.Node {
	return st.tree.NewNode(syntax.KindNullStmt, st.span(semi, semi))
}

func (st *state) otherStmt(first, last tok, items ...*syntax.Node) *syntax.Node {
	n := st.tree.NewNode(syntax.KindOtherStmt, st.span(first, last))
	n.Stmt.Items = items
	return n
}

func (st *state) labeled(label tok, sub *syntax.Node) *syntax.Node {
	n := st.tree.NewNode(syntax.KindOtherStmt, source.Range{Begin: loc(label), End: sub.Range.End})
	n.Stmt.Keyword = loc(label)
	n.Stmt.Items = []*syntax.Node{sub}
	return n
}

// skipToSemi consumes input through the next ';' at nesting depth zero and
// returns it. It stops in front of a '}' that closes an enclosing block.
func (st *state) skipToSemi() tok {
	last := st.prev()
	for !st.atEOF() {
		switch t := st.peek(); {
		case t.is(";"):
			return st.next()
		case t.is("}"):
			return last
		case t.is("(") || t.is("[") || t.is("{"):
			last = st.skipBalanced()
		default:
			last = st.next()
		}
	}
	return last
}

func (st *state) parseCompound() *syntax.Node {
	open := st.next()
	var items []*syntax.Node

	for !st.at("}") {
		if st.atEOF() {
			st.fail(open, "unterminated block")
			break
		}
		if st.err != nil {
			break
		}
		start := st.pos
		if s := st.parseStatement(); s != nil {
			items = append(items, s)
		}
		if st.pos == start {
			st.next()
		}
	}

	closing := st.peek()
	if closing.is("}") {
		st.next()
	}

	n := st.tree.NewNode(syntax.KindCompound, st.span(open, closing))
	n.Stmt.Items = items
	return n
}

func (st *state) parseIf() *syntax.Node {
	kw := st.next()
	n := st.tree.NewNode(syntax.KindIf, source.Range{})
	n.Stmt.Keyword = loc(kw)

	st.accept("constexpr")
	st.accept("!")
	st.accept("consteval")
	if st.at("(") {
		n.Stmt.Init, n.Stmt.Cond = st.parseCondition(true)
	}

	n.Stmt.Then = st.parseStatement()
	end := n.Stmt.Then.Range.End
	if elseTok, ok := st.accept("else"); ok {
		n.Stmt.ElseLoc = loc(elseTok)
		n.Stmt.Else = st.parseStatement()
		end = n.Stmt.Else.Range.End
	}

	n.Range = source.Range{Begin: loc(kw), End: end}
	return n
}

// parseCondition parses a parenthesized controlling clause, with an optional
// init-statement when allowInit is set. An unparseable clause is skipped as
// a balanced group and yields an opaque condition.
func (st *state) parseCondition(allowInit bool) (*syntax.Node, *syntax.Node) {
	open := st.pos
	lparen := st.next()

	var init, cond *syntax.Node
	if allowInit && st.hasTopLevelSemi(open) {
		init = st.parseStatement()
	}
	if st.isDeclarationStart() {
		cond = st.parseConditionDecl()
	} else {
		cond = st.parseExpr(precComma)
	}

	if _, ok := st.accept(")"); ok {
		return init, cond
	}

	st.pos = open
	rparen := st.skipBalanced()
	return nil, st.other("group", st.span(lparen, rparen))
}

// hasTopLevelSemi reports whether the group opened at idx contains a ';' at
// its own nesting level.
func (st *state) hasTopLevelSemi(idx int) bool {
	depth := 0
	for i := idx; i < len(st.toks)-1; i++ {
		t := st.toks[i]
		switch {
		case t.is("(") || t.is("[") || t.is("{"):
			depth++
		case t.is(")") || t.is("]") || t.is("}"):
			depth--
			if depth == 0 {
				return false
			}
		case t.is(";") && depth == 1:
			return true
		}
	}
	return false
}

func (st *state) parseWhile() *syntax.Node {
	kw := st.next()
	n := st.tree.NewNode(syntax.KindWhile, source.Range{})
	n.Stmt.Keyword = loc(kw)

	if st.at("(") {
		_, n.Stmt.Cond = st.parseCondition(false)
	}
	n.Stmt.Body = st.parseStatement()

	n.Range = source.Range{Begin: loc(kw), End: n.Stmt.Body.Range.End}
	return n
}

func (st *state) parseDo() *syntax.Node {
	kw := st.next()
	n := st.tree.NewNode(syntax.KindDoWhile, source.Range{})
	n.Stmt.Keyword = loc(kw)
	n.Stmt.Body = st.parseStatement()

	whileTok, ok := st.accept("while")
	if !ok {
		st.fail(st.peek(), "expected 'while' after do body")
		n.Range = source.Range{Begin: loc(kw), End: n.Stmt.Body.Range.End}
		return n
	}
	n.Stmt.WhileLoc = loc(whileTok)

	last := whileTok
	if st.at("(") {
		_, n.Stmt.Cond = st.parseCondition(false)
		last = st.prev()
	}
	if semi, ok := st.accept(";"); ok {
		last = semi
	}

	n.Range = st.span(kw, last)
	return n
}

func (st *state) parseFor() *syntax.Node {
	kw := st.next()
	st.accept("co_await")
	if !st.at("(") {
		st.fail(st.peek(), "expected '(' after for")
		return st.otherStmt(kw, kw)
	}

	open := st.pos
	kind := syntax.KindFor
	if st.isRangeFor(open) {
		kind = syntax.KindRangeFor
	}
	n := st.tree.NewNode(kind, source.Range{})
	n.Stmt.Keyword = loc(kw)

	if !st.parseForHeader(n) {
		st.pos = open
		st.skipBalanced()
		n.Stmt.Init, n.Stmt.Cond, n.Stmt.Inc = nil, nil, nil
	}

	n.Stmt.Body = st.parseStatement()
	n.Range = source.Range{Begin: loc(kw), End: n.Stmt.Body.Range.End}
	return n
}

// parseForHeader fills the clauses of n and reports whether the header
// parsed cleanly through its closing parenthesis.
func (st *state) parseForHeader(n *syntax.Node) bool {
	st.next()

	if n.Kind == syntax.KindRangeFor {
		for !st.atEOF() && !st.at(":") {
			if st.at("(") || st.at("[") || st.at("{") || (st.at("<") && st.templateArgsFollowLoose()) {
				st.skipBalanced()
				continue
			}
			if st.at(")") || st.at(";") {
				return false
			}
			st.next()
		}
		st.next()
		n.Stmt.Cond = st.parseExpr(precComma)
		_, ok := st.accept(")")
		return ok
	}

	switch {
	case st.at(";"):
		st.next()
	case st.isDeclarationStart():
		n.Stmt.Init = st.parseDeclStmt()
	default:
		n.Stmt.Init = st.parseExprStmt()
	}
	if !st.prev().is(";") {
		return false
	}

	if !st.at(";") {
		if st.isDeclarationStart() {
			n.Stmt.Cond = st.parseConditionDecl()
		} else {
			n.Stmt.Cond = st.parseExpr(precComma)
		}
	}
	if _, ok := st.accept(";"); !ok {
		return false
	}

	if !st.at(")") {
		n.Stmt.Inc = st.parseExpr(precComma)
	}
	_, ok := st.accept(")")
	return ok
}

// isRangeFor reports whether the for header opened at idx has a top-level
// ':' and no top-level ';'.
func (st *state) isRangeFor(idx int) bool {
	depth := 0
	colon := false
	for i := idx; i < len(st.toks)-1; i++ {
		t := st.toks[i]
		switch {
		case t.is("(") || t.is("[") || t.is("{"):
			depth++
		case t.is(")") || t.is("]") || t.is("}"):
			depth--
			if depth == 0 {
				return colon
			}
		case depth == 1 && t.is(";"):
			return false
		case depth == 1 && t.is(":"):
			colon = true
		}
	}
	return false
}

func (st *state) parseReturn() *syntax.Node {
	kw := st.next()
	n := st.tree.NewNode(syntax.KindReturn, source.Range{})
	n.Stmt.Keyword = loc(kw)

	if !st.at(";") {
		n.Stmt.Value = st.parseExpr(precComma)
	}

	last, ok := st.accept(";")
	if !ok {
		last = st.skipToSemi()
	}
	n.Range = st.span(kw, last)
	return n
}

func (st *state) parseSwitch() *syntax.Node {
	kw := st.next()
	var items []*syntax.Node
	if st.at("(") {
		init, cond := st.parseCondition(true)
		if init != nil {
			items = append(items, init)
		}
		items = append(items, cond)
	}
	body := st.parseStatement()
	items = append(items, body)

	n := st.tree.NewNode(syntax.KindOtherStmt, source.Range{Begin: loc(kw), End: body.Range.End})
	n.Stmt.Keyword = loc(kw)
	n.Stmt.Items = items
	return n
}

func (st *state) parseCaseLabel() *syntax.Node {
	kw := st.next()
	for !st.atEOF() && !st.at(":") && !st.at(";") && !st.at("}") {
		if st.at("(") || st.at("[") {
			st.skipBalanced()
			continue
		}
		st.next()
	}
	st.accept(":")
	if st.at("}") {
		return st.otherStmt(kw, st.prev())
	}
	return st.labeled(kw, st.parseStatement())
}

func (st *state) parseTry() *syntax.Node {
	kw := st.next()
	var items []*syntax.Node
	if st.at("{") {
		items = append(items, st.parseCompound())
	}
	for st.at("catch") {
		st.next()
		if st.at("(") {
			st.skipBalanced()
		}
		if !st.at("{") {
			break
		}
		items = append(items, st.parseCompound())
	}
	return st.otherStmt(kw, st.prev(), items...)
}

func (st *state) parseDeclStmt() *syntax.Node {
	first := st.peek()
	nodes, last := st.parseSimpleDeclaration(scopeBlock)

	n := st.tree.NewNode(syntax.KindDeclStmt, st.span(first, last))
	n.Stmt.Items = nodes
	return n
}

// parseConditionDecl parses a declaration used as a condition, as in
// if (auto* p = get()).
func (st *state) parseConditionDecl() *syntax.Node {
	first := st.peek()
	h := st.parseHead()
	v := st.parseVariable(h, scopeBlock)

	n := st.tree.NewNode(syntax.KindDeclStmt, source.Range{Begin: loc(first), End: v.Range.End})
	n.Stmt.Items = []*syntax.Node{v}
	return n
}

func (st *state) parseExprStmt() *syntax.Node {
	first := st.peek()
	expr := st.parseExpr(precComma)

	if semi, ok := st.accept(";"); ok {
		n := st.tree.NewNode(syntax.KindExprStmt, source.Range{Begin: expr.Range.Begin, End: loc(semi)})
		n.Stmt.Value = expr
		return n
	}

	// A macro that expands to a statement prefix, such as a loop header,
	// governs the statement that follows it.
	if st.isMacro(first) && (st.at("{") || st.peek().isIdent()) {
		sub := st.parseStatement()
		n := st.tree.NewNode(syntax.KindOtherStmt, source.Range{Begin: expr.Range.Begin, End: sub.Range.End})
		n.Stmt.Items = []*syntax.Node{expr, sub}
		return n
	}

	last := st.skipToSemi()
	n := st.tree.NewNode(syntax.KindExprStmt, source.Range{Begin: expr.Range.Begin, End: loc(last)})
	n.Stmt.Value = expr
	return n
}
