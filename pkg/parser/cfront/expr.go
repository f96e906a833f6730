package cfront

import (
	"github.com/yaklabco/cxxtidy/pkg/source"
	"github.com/yaklabco/cxxtidy/pkg/syntax"
)

// Binding strengths, loosest first.
const (
	precComma  = 1
	precAssign = 2
	precCond   = 3
)

var binaryPrec = map[string]int{
	",": precComma,

	"=": precAssign, "+=": precAssign, "-=": precAssign, "*=": precAssign, "/=": precAssign,
	"%=": precAssign, "&=": precAssign, "|=": precAssign, "^=": precAssign,
	"<<=": precAssign, ">>=": precAssign,

	"||": 4,
	"&&": 5,
	"|":  6,
	"^":  7,
	"&":  8,
	"==": 9, "!=": 9,
	"<": 10, "<=": 10, ">": 10, ">=": 10,
	"<=>": 11,
	"<<":  12, ">>": 12,
	"+": 13, "-": 13,
	"*": 14, "/": 14, "%": 14,
	".*": 15, "->*": 15,
}

var prefixOps = map[string]bool{
	"!": true, "~": true, "-": true, "+": true, "*": true, "&": true,
	"++": true, "--": true, "&&": true,
}

var castKeywords = map[string]bool{
	"static_cast": true, "dynamic_cast": true, "const_cast": true, "reinterpret_cast": true,
}

// Alternative operator spellings, which never start an operand.
var wordOps = map[string]bool{
	"and": true, "or": true, "bitand": true, "bitor": true, "xor": true,
	"not_eq": true, "and_eq": true, "or_eq": true, "xor_eq": true,
}

var wordOpSpelling = map[string]string{
	"and": "&&", "or": "||", "bitand": "&", "bitor": "|", "xor": "^", "not_eq": "!=",
}

func (st *state) parseExpr(minPrec int) *syntax.Node {
	if !st.enter() {
		st.leave()
		return st.emptyExpr()
	}
	defer st.leave()

	lhs := st.parseUnary()
	for {
		t := st.peek()

		if t.is("?") && minPrec <= precCond {
			st.next()
			then := st.parseExpr(precComma)
			if _, ok := st.accept(":"); !ok {
				return st.conditional(lhs, then, st.emptyExpr())
			}
			lhs = st.conditional(lhs, then, st.parseExpr(precAssign))
			continue
		}

		op := t.text
		if t.kind == source.TokenIdent {
			op = wordOpSpelling[t.text]
		} else if t.kind != source.TokenPunct {
			return lhs
		}

		prec, ok := binaryPrec[op]
		if !ok || prec < minPrec {
			return lhs
		}
		st.next()

		var rhs *syntax.Node
		if prec == precAssign {
			rhs = st.parseExpr(precAssign)
		} else {
			rhs = st.parseExpr(prec + 1)
		}

		n := st.tree.NewNode(syntax.KindBinary, source.Range{Begin: lhs.Range.Begin, End: rhs.Range.End})
		n.Expr.Op = op
		n.Expr.OpLoc = loc(t)
		n.Expr.LHS = lhs
		n.Expr.RHS = rhs
		lhs = n
	}
}

func (st *state) conditional(cond, then, els *syntax.Node) *syntax.Node {
	n := st.tree.NewNode(syntax.KindConditional, source.Range{Begin: cond.Range.Begin, End: els.Range.End})
	n.Expr.Cond = cond
	n.Expr.True = then
	n.Expr.False = els
	return n
}

// emptyExpr stands in for a missing operand without consuming input.
func (st *state) emptyExpr() *syntax.Node {
	t := st.peek()
	return st.tree.NewNode(syntax.KindOtherExpr, st.span(t, t))
}

func (st *state) leaf(first, last tok) *syntax.Node {
	return st.tree.NewNode(syntax.KindOtherExpr, st.span(first, last))
}

func (st *state) other(op string, r source.Range, operands ...*syntax.Node) *syntax.Node {
	n := st.tree.NewNode(syntax.KindOtherExpr, r)
	n.Expr.Op = op
	n.Expr.Operands = operands
	return n
}

func (st *state) unary(op string, opTok tok, inner *syntax.Node, r source.Range) *syntax.Node {
	n := st.tree.NewNode(syntax.KindUnary, r)
	n.Expr.Op = op
	n.Expr.OpLoc = loc(opTok)
	n.Expr.Inner = inner
	return n
}

func (st *state) parseUnary() *syntax.Node {
	t := st.peek()

	switch {
	case t.kind == source.TokenPunct && prefixOps[t.text]:
		st.next()
		operand := st.parseUnary()
		return st.unary(t.text, t, operand, source.Range{Begin: loc(t), End: operand.Range.End})

	case t.is("not") || t.is("compl"):
		st.next()
		operand := st.parseUnary()
		return st.unary(t.text, t, operand, source.Range{Begin: loc(t), End: operand.Range.End})

	case t.is("sizeof") || t.is("alignof") || t.is("_Alignof") || t.is("__alignof__"):
		st.next()
		st.accept("...")
		if st.at("(") && st.looksLikeTypeInParens() {
			closing := st.skipBalanced()
			return st.leaf(t, closing)
		}
		operand := st.parseUnary()
		return st.unary(t.text, t, operand, source.Range{Begin: loc(t), End: operand.Range.End})

	case t.is("new") || (t.is("::") && st.peekN(1).is("new")):
		return st.parseNew()

	case t.is("delete") || (t.is("::") && st.peekN(1).is("delete")):
		st.accept("::")
		st.next()
		if st.at("[") {
			st.skipBalanced()
		}
		operand := st.parseUnary()
		return st.unary("delete", t, operand, source.Range{Begin: loc(t), End: operand.Range.End})

	case t.is("throw") || t.is("co_yield") || t.is("co_await"):
		st.next()
		if !st.startsOperand(st.peek()) && !st.at("-") && !st.at("*") && !st.at("&") {
			return st.unary(t.text, t, nil, st.span(t, t))
		}
		operand := st.parseExpr(precAssign)
		return st.unary(t.text, t, operand, source.Range{Begin: loc(t), End: operand.Range.End})

	case t.is("(") && st.looksLikeCast():
		st.skipBalanced()
		operand := st.parseUnary()
		return st.other("cast", source.Range{Begin: loc(t), End: operand.Range.End}, operand)
	}

	return st.parsePostfix()
}

func (st *state) parsePostfix() *syntax.Node {
	n, isName := st.parsePrimary()

	for {
		t := st.peek()
		switch {
		case t.is("("):
			args, closing := st.parseCallArgs()
			n = st.other("call", source.Range{Begin: n.Range.Begin, End: loc(closing)}, append([]*syntax.Node{n}, args...)...)

		case t.is("["):
			open := st.pos
			st.next()
			index := st.parseExpr(precComma)
			closing, ok := st.accept("]")
			if !ok {
				st.pos = open
				closing = st.skipBalanced()
				index = nil
			}
			n = st.other("subscript", source.Range{Begin: n.Range.Begin, End: loc(closing)}, n, index)

		case t.is(".") || t.is("->"):
			st.next()
			st.accept("template")
			st.accept("~")
			member := st.peek()
			if member.isIdent() {
				st.next()
				if member.is("operator") {
					member = st.parseOperatorName(member)
				}
				if st.at("<") && st.templateArgsFollow() {
					member = st.skipBalanced()
				}
			}
			n = st.other("member", source.Range{Begin: n.Range.Begin, End: loc(member)}, n)

		case t.is("++") || t.is("--"):
			st.next()
			n = st.unary("post"+t.text, t, n, source.Range{Begin: n.Range.Begin, End: loc(t)})

		case t.is("{") && isName:
			init := st.skipBalanced()
			n = st.other("construct", source.Range{Begin: n.Range.Begin, End: loc(init)}, n)

		default:
			return n
		}
		isName = false
	}
}

// parseCallArgs parses a parenthesized argument list. Unparseable lists are
// skipped as a balanced group.
func (st *state) parseCallArgs() ([]*syntax.Node, tok) {
	open := st.pos
	st.next()

	var args []*syntax.Node
	if closing, ok := st.accept(")"); ok {
		return nil, closing
	}

	for {
		args = append(args, st.parseExpr(precAssign))
		st.accept("...")
		if _, ok := st.accept(","); !ok {
			break
		}
	}

	if closing, ok := st.accept(")"); ok {
		return args, closing
	}

	st.pos = open
	return nil, st.skipBalanced()
}

// parsePrimary returns the operand and whether it is a plain (possibly
// qualified or templated) name.
func (st *state) parsePrimary() (*syntax.Node, bool) {
	t := st.peek()

	switch {
	case t.kind == source.TokenNumber || t.kind == source.TokenChar:
		st.next()
		return st.leaf(t, t), false

	case t.kind == source.TokenString:
		last := st.next()
		for st.peek().kind == source.TokenString {
			last = st.next()
		}
		return st.leaf(t, last), false

	case t.is("nullptr"):
		st.next()
		return st.tree.NewNode(syntax.KindNullLiteral, st.span(t, t)), false

	case t.is("("):
		return st.parseParen(), false

	case t.is("{"):
		closing := st.skipBalanced()
		return st.other("init-list", st.span(t, closing)), false

	case t.is("["):
		return st.parseLambda(), false

	case st.isMacro(t):
		at := st.macroExpansion()
		return st.tree.NewNode(syntax.KindOtherExpr, source.Range{Begin: at, End: at}), false

	case t.isIdent() || t.is("::"):
		if t.is("typename") {
			st.next()
		}
		first, last := st.parseName()
		return st.leaf(first, last), true
	}

	switch {
	case t.kind == source.TokenEOF, t.is(")"), t.is("]"), t.is("}"), t.is(";"), t.is(","), t.is(":"):
		return st.emptyExpr(), false
	default:
		st.next()
		return st.leaf(t, t), false
	}
}

func (st *state) parseParen() *syntax.Node {
	open := st.pos
	lparen := st.next()

	var inner *syntax.Node
	if st.at("{") {
		// GNU statement expression.
		inner = st.parseCompound()
	} else {
		inner = st.parseExpr(precComma)
	}

	rparen, ok := st.accept(")")
	if !ok {
		st.pos = open
		rparen = st.skipBalanced()
		return st.other("group", st.span(lparen, rparen))
	}

	n := st.tree.NewNode(syntax.KindParen, st.span(lparen, rparen))
	n.Expr.Inner = inner
	return n
}

// parseName consumes an optionally qualified, optionally templated name.
func (st *state) parseName() (tok, tok) {
	first := st.peek()
	st.accept("::")

	last := first
	for {
		t := st.peek()
		if t.is("~") {
			st.next()
			t = st.peek()
		}
		if !t.isIdent() {
			break
		}
		last = st.next()
		if t.is("operator") {
			last = st.parseOperatorName(t)
			break
		}
		if st.at("<") && (castKeywords[t.text] || st.templateArgsFollow()) {
			last = st.skipBalanced()
		}
		if !st.at("::") {
			break
		}
		last = st.next()
		st.accept("template")
	}

	return first, last
}

// parseOperatorName consumes the operator spelling after the operator
// keyword and returns a token covering the whole name.
func (st *state) parseOperatorName(kw tok) tok {
	last := kw
	switch {
	case st.at("(") && st.peekN(1).is(")"):
		st.next()
		last = st.next()
	case st.at("[") && st.peekN(1).is("]"):
		st.next()
		last = st.next()
	case st.at("new") || st.at("delete"):
		last = st.next()
		if st.at("[") && st.peekN(1).is("]") {
			st.next()
			last = st.next()
		}
	case st.peek().kind == source.TokenString && st.peek().text == `""`:
		st.next()
		last = st.next()
	default:
		for !st.atEOF() && !st.at("(") && !st.at(";") {
			last = st.next()
		}
	}
	return tok{
		kind:  source.TokenIdent,
		text:  string(st.buf.Content[kw.start:last.end]),
		start: kw.start,
		end:   last.end,
	}
}

func (st *state) parseLambda() *syntax.Node {
	first := st.peek()
	last := st.skipBalanced()

	if st.at("<") {
		last = st.skipBalanced()
	}
	if st.at("(") {
		last = st.skipBalanced()
	}
	for !st.atEOF() && !st.at("{") && !st.at(";") && !st.at(")") && !st.at(",") {
		if st.at("(") || st.at("[") || st.at("<") {
			last = st.skipBalanced()
			continue
		}
		last = st.next()
	}
	if !st.at("{") {
		return st.leaf(first, last)
	}

	body := st.parseCompound()
	return st.other("lambda", source.Range{Begin: loc(first), End: body.Range.End}, body)
}

func (st *state) parseNew() *syntax.Node {
	first := st.peek()
	st.accept("::")
	last := st.next()

	if st.at("(") {
		last = st.skipBalanced()
	}
	for {
		t := st.peek()
		switch {
		case t.isIdent() && !wordOps[t.text], t.is("::"), t.is("*"), t.is("&"):
			last = st.next()
			if st.at("<") && st.templateArgsFollowLoose() {
				last = st.skipBalanced()
			}
			continue
		case t.is("["):
			last = st.skipBalanced()
			continue
		case t.is("(") || t.is("{"):
			last = st.skipBalanced()
		}
		break
	}

	return st.other("new", st.span(first, last))
}

// templateArgsFollow reports whether the '<' at the current position opens
// a template argument list in an expression.
func (st *state) templateArgsFollow() bool {
	end := st.matchAngle(st.pos)
	if end < 0 {
		return false
	}
	after := st.toks[end+1]
	return after.is("(") || after.is("::") || after.is("{")
}

// templateArgsFollowLoose accepts any balanced angle group, for contexts
// such as new-expressions where only a type can appear.
func (st *state) templateArgsFollowLoose() bool {
	return st.matchAngle(st.pos) >= 0
}

// matchAngle returns the index of the token closing the angle group opened
// at idx, or -1.
func (st *state) matchAngle(idx int) int {
	depth, paren := 0, 0
	for i := idx; i < len(st.toks)-1 && i < idx+128; i++ {
		t := st.toks[i]
		switch {
		case t.is("(") || t.is("["):
			paren++
		case t.is(")") || t.is("]"):
			if paren == 0 {
				return -1
			}
			paren--
		case paren > 0:
		case t.is("<"):
			depth++
		case t.is(">"):
			depth--
			if depth == 0 {
				return i
			}
		case t.is(">>"):
			depth -= 2
			if depth == 0 {
				return i
			}
			if depth < 0 {
				return -1
			}
		case t.is(";") || t.is("{") || t.is("}") || t.is("&&") || t.is("||"):
			return -1
		}
	}
	return -1
}

// looksLikeCast decides whether the '(' at the current position begins a
// C-style cast.
func (st *state) looksLikeCast() bool {
	closing, ok := st.typeGroupEnd(st.pos)
	if !ok {
		return false
	}

	first := st.toks[st.pos+1]
	last := st.toks[closing-1]
	switch {
	case typeKeywords[first.text] || isTypedefName(first.text):
		return true
	case !first.isIdent() && !first.is("::"):
		return false
	case last.is("*") || last.is("&") || last.is("&&") || last.is(">"):
		return true
	}

	return st.startsOperand(st.toks[closing+1])
}

// looksLikeTypeInParens reports whether the parenthesized group at the
// current position holds a type, as in sizeof(T).
func (st *state) looksLikeTypeInParens() bool {
	closing, ok := st.typeGroupEnd(st.pos)
	if !ok {
		return false
	}
	first := st.toks[st.pos+1]
	last := st.toks[closing-1]
	return typeKeywords[first.text] || isTypedefName(first.text) ||
		last.is("*") || last.is("&") || last.is(">")
}

// typeGroupEnd returns the index of the ')' closing the group at open when
// every token inside could belong to a type-id.
func (st *state) typeGroupEnd(open int) (int, bool) {
	depth := 0
	for i := open + 1; i < len(st.toks)-1; i++ {
		t := st.toks[i]
		switch {
		case t.is(")"):
			if i == open+1 || depth != 0 {
				return 0, false
			}
			return i, true
		case t.isIdent():
			if st.isMacro(t) || exprKeywords[t.text] || wordOps[t.text] {
				return 0, false
			}
		case t.is("::"), t.is("*"), t.is("&"), t.is("&&"), t.is("["), t.is("]"):
		case t.is(","):
			if depth == 0 {
				return 0, false
			}
		case t.is("<"):
			depth++
		case t.is(">"):
			depth--
		case t.is(">>"):
			depth -= 2
		case t.kind == source.TokenNumber:
			if depth == 0 {
				return 0, false
			}
		default:
			return 0, false
		}
		if depth < 0 {
			return 0, false
		}
	}
	return 0, false
}

func (st *state) startsOperand(t tok) bool {
	switch {
	case t.kind == source.TokenNumber, t.kind == source.TokenString, t.kind == source.TokenChar:
		return true
	case t.isIdent():
		return !wordOps[t.text]
	case t.is("("), t.is("!"), t.is("~"), t.is("::"), t.is("["), t.is("{"):
		return true
	}
	return false
}
