package cfront

import (
	"github.com/yaklabco/cxxtidy/pkg/source"
	"github.com/yaklabco/cxxtidy/pkg/syntax"
)

// scope says where a declaration appears.
type scope uint8

const (
	scopeFile scope = iota
	scopeRecord
	scopeBlock
)

func (st *state) parseTranslationUnit() *syntax.Node {
	first := st.peek()
	members := st.parseDeclList(scopeFile, nil)

	tu := st.tree.NewNode(syntax.KindTranslationUnit, st.span(first, st.peek()))
	tu.Decl.Members = members
	return tu
}

// parseDeclList parses declarations until the '}' closing open, or until
// end of input when open is nil.
func (st *state) parseDeclList(sc scope, open *tok) []*syntax.Node {
	var members []*syntax.Node
	for st.err == nil {
		switch {
		case st.atEOF():
			if open != nil {
				st.fail(*open, "unterminated block")
			}
			return members
		case st.at("}"):
			if open == nil {
				st.fail(st.peek(), "unmatched '}'")
			}
			return members
		}

		start := st.pos
		members = append(members, st.parseDeclaration(sc)...)
		if st.pos == start {
			st.next()
		}
	}
	return members
}

func (st *state) parseDeclaration(sc scope) []*syntax.Node {
	t := st.peek()
	switch {
	case t.is(";"):
		st.next()
		return nil

	case t.is("namespace"), t.is("inline") && st.peekN(1).is("namespace"):
		return st.parseNamespace()

	case t.is("extern") && st.peekN(1).kind == source.TokenString:
		st.next()
		st.next()
		if open, ok := st.accept("{"); ok {
			members := st.parseDeclList(sc, &open)
			st.accept("}")
			return members
		}
		return st.parseDeclaration(sc)

	case t.is("template"):
		st.next()
		if st.at("<") {
			st.skipBalanced()
		}
		decls := st.parseDeclaration(sc)
		if len(decls) > 0 {
			decls[0].Range.Begin = loc(t)
		}
		return decls

	case t.is("typedef"):
		st.next()
		nodes, _ := st.parseSimpleDeclaration(sc)
		var records []*syntax.Node
		for _, n := range nodes {
			if n.Kind == syntax.KindRecord {
				records = append(records, n)
			}
		}
		return records

	case t.is("using"), t.is("static_assert"), t.is("_Static_assert"), t.is("asm"), t.is("__asm__"):
		st.next()
		st.skipToSemi()
		return nil

	case sc == scopeRecord && (t.is("public") || t.is("private") || t.is("protected")):
		st.next()
		st.accept(":")
		return nil

	case st.isMacro(t) && st.standaloneMacro():
		return nil
	}

	nodes, _ := st.parseSimpleDeclaration(sc)
	return nodes
}

func (st *state) parseNamespace() []*syntax.Node {
	first := st.peek()
	st.accept("inline")
	st.next()

	var name tok
	for st.peek().isIdent() || st.at("::") {
		t := st.next()
		if t.isIdent() && !t.is("inline") {
			name = t
		}
	}
	for st.at("[") || st.at("__attribute__") {
		if st.at("__attribute__") {
			st.next()
		}
		st.skipBalanced()
	}

	open, ok := st.accept("{")
	if !ok {
		st.skipToSemi()
		return nil
	}

	members := st.parseDeclList(scopeFile, &open)
	closing := st.peek()
	st.accept("}")

	ns := st.tree.NewNode(syntax.KindRecord, st.span(first, closing))
	ns.Decl.Name = name.text
	if name.text != "" {
		ns.Decl.NameLoc = loc(name)
	}
	ns.Decl.Members = members
	return []*syntax.Node{ns}
}

// standaloneMacro consumes a macro invocation that forms a declaration on
// its own, such as a registration macro with no trailing semicolon. The
// position is unchanged when the macro begins an ordinary declaration.
func (st *state) standaloneMacro() bool {
	save := st.pos
	name := st.peek()
	st.macroExpansion()
	last := st.prev()

	switch {
	case st.at(";"):
		st.next()
		return true
	case st.at("}"), st.atEOF():
		return true
	case st.at("public") || st.at("private") || st.at("protected"):
		return true
	case st.macros[name.text] && last.is(")") && st.line(st.peek()) > st.line(last):
		return true
	}

	st.pos = save
	return false
}

func (st *state) line(t tok) int {
	return st.buf.Line(source.FileLocation(t.start))
}

// head is the part of a declaration up to and including its declarator
// name.
type head struct {
	begin     source.Location
	record    *syntax.Node
	name      tok
	named     bool
	funcParen bool // positioned at the parameter list
}

// parseSimpleDeclaration parses a declaration with one or more declarators
// and returns the declared entities together with the last consumed token.
func (st *state) parseSimpleDeclaration(sc scope) ([]*syntax.Node, tok) {
	h := st.parseHead()
	begin := h.begin

	var nodes []*syntax.Node
	if h.record != nil {
		nodes = append(nodes, h.record)
	}

	for st.err == nil {
		switch {
		case h.funcParen && (sc != scopeBlock || st.looksLikeParams()):
			fn, done := st.parseFunction(h)
			nodes = append(nodes, fn)
			if done {
				return nodes, st.prev()
			}
		case h.named:
			nodes = append(nodes, st.parseVariable(h, sc))
		}

		if _, ok := st.accept(","); !ok {
			break
		}
		h = st.parseHead()
		h.begin = begin
	}

	if semi, ok := st.accept(";"); ok {
		return nodes, semi
	}
	return nodes, st.skipToSemi()
}

// parseHead consumes declaration specifiers and a declarator name.
func (st *state) parseHead() head {
	first := st.peek()
	h := head{begin: loc(first)}

	for i := 0; !st.atEOF(); i++ {
		t := st.peek()
		switch {
		case t.is("[") && st.peekN(1).is("["):
			st.skipBalanced()

		case groupSpecifiers[t.text] && t.isIdent():
			st.next()
			if st.at("(") {
				st.skipBalanced()
			}

		case t.is("struct") || t.is("class") || t.is("union") || t.is("enum"):
			if rec := st.parseRecordSpecifier(); rec != nil {
				if h.record == nil && !h.named {
					rec.Range.Begin = h.begin
				}
				h.record = rec
			}

		case t.isIdent() && (typeKeywords[t.text] || specifierKeywords[t.text]):
			st.next()

		case st.isMacro(t):
			at := st.macroExpansion()
			if i == 0 {
				h.begin = at
			}

		case t.is("*") || t.is("&") || t.is("&&") || t.is("...") || t.is("~"):
			st.next()

		case t.is("operator"):
			st.next()
			h.name = st.parseOperatorName(t)
			h.named = true
			h.funcParen = st.at("(")
			return h

		case t.isIdent() || t.is("::"):
			h.name = st.parseDeclName()
			h.named = true

		case t.is("("):
			if name, ok := st.parenDeclarator(); ok {
				h.name = name
				h.named = name.text != ""
				return h
			}
			h.funcParen = h.named
			return h

		default:
			return h
		}
	}
	return h
}

// parseDeclName consumes a qualified, possibly templated name and returns
// its final identifier.
func (st *state) parseDeclName() tok {
	st.accept("::")
	var last tok
	for {
		st.accept("~")
		t := st.peek()
		if !t.isIdent() {
			return last
		}
		last = st.next()
		if t.is("operator") {
			return st.parseOperatorName(t)
		}
		if st.at("<") && st.templateArgsFollowLoose() {
			st.skipBalanced()
		}
		if !st.at("::") {
			return last
		}
		st.next()
		st.accept("template")
	}
}

// parenDeclarator consumes a parenthesized declarator such as (*fp) or
// (&arr) together with any parameter or array suffix that follows, and
// returns the declared name.
func (st *state) parenDeclarator() (tok, bool) {
	next := st.peekN(1)
	if !next.is("*") && !next.is("&") && !next.is("^") {
		return tok{}, false
	}

	st.next()
	var name tok
	for !st.atEOF() && !st.at(")") {
		t := st.peek()
		switch {
		case t.is("("), t.is("["):
			st.skipBalanced()
		case t.isIdent() && !typeKeywords[t.text]:
			name = st.next()
		default:
			st.next()
		}
	}
	st.accept(")")
	for st.at("(") || st.at("[") {
		st.skipBalanced()
	}
	return name, true
}

// looksLikeParams decides, at block scope, whether the '(' after a
// declarator name opens a parameter list rather than a direct initializer.
func (st *state) looksLikeParams() bool {
	t := st.peekN(1)
	switch {
	case t.is(")"):
		return true
	case t.isIdent() && (typeKeywords[t.text] || specifierKeywords[t.text]):
		return true
	case t.isIdent() && !isNameKeyword(t.text) && !st.isMacro(t):
		after := st.peekN(2)
		return after.isIdent() || after.is("*") || after.is("&") || after.is("&&")
	}
	return false
}

// parseRecordSpecifier consumes a class-key, its name and body, returning
// the record node when a body was present.
func (st *state) parseRecordSpecifier() *syntax.Node {
	kw := st.next()
	isEnum := kw.is("enum")
	if isEnum {
		if _, ok := st.accept("class"); !ok {
			st.accept("struct")
		}
	}

	var name tok
	for !st.atEOF() {
		t := st.peek()
		if t.is("[") && st.peekN(1).is("[") {
			st.skipBalanced()
			continue
		}
		if t.is("__attribute__") || t.is("__declspec") || t.is("alignas") {
			st.next()
			if st.at("(") {
				st.skipBalanced()
			}
			continue
		}
		if st.isMacro(t) && (st.peekN(1).isIdent() || st.peekN(1).is("(")) {
			st.macroExpansion()
			continue
		}
		if t.is("final") && name.text != "" {
			st.next()
			continue
		}
		if name.text == "" && ((t.isIdent() && !isNameKeyword(t.text)) || t.is("::")) {
			name = st.parseDeclName()
			continue
		}
		break
	}

	if st.at(":") {
		for !st.atEOF() && !st.at("{") && !st.at(";") {
			if (st.at("<") && st.templateArgsFollowLoose()) || st.at("(") {
				st.skipBalanced()
				continue
			}
			st.next()
		}
	}

	open, ok := st.accept("{")
	if !ok {
		return nil
	}

	rec := st.tree.NewNode(syntax.KindRecord, source.Range{})
	rec.Decl.Name = name.text
	if name.text != "" {
		rec.Decl.NameLoc = loc(name)
	}
	if isEnum {
		rec.Decl.Members = st.parseEnumerators()
	} else {
		rec.Decl.Members = st.parseDeclList(scopeRecord, &open)
	}

	closing := st.peek()
	st.accept("}")
	rec.Range = st.span(kw, closing)
	return rec
}

func (st *state) parseEnumerators() []*syntax.Node {
	var out []*syntax.Node
	for !st.atEOF() && !st.at("}") && st.err == nil {
		t := st.peek()
		if !t.isIdent() {
			st.next()
			continue
		}
		st.next()

		ec := st.tree.NewNode(syntax.KindEnumConstant, st.span(t, t))
		ec.Decl.Name = t.text
		ec.Decl.NameLoc = loc(t)
		for st.at("[") && st.peekN(1).is("[") || st.at("__attribute__") {
			if st.at("__attribute__") {
				st.next()
			}
			st.skipBalanced()
		}
		if _, ok := st.accept("="); ok {
			ec.Decl.Init = st.parseExpr(precAssign)
			ec.Range.End = ec.Decl.Init.Range.End
		}
		out = append(out, ec)

		if _, ok := st.accept(","); !ok && !st.at("}") {
			st.skipTo(",", "}")
			st.accept(",")
		}
	}
	return out
}

// skipTo advances to the first of stops at nesting depth zero without
// consuming it.
func (st *state) skipTo(stops ...string) {
	for !st.atEOF() {
		for _, s := range stops {
			if st.at(s) {
				return
			}
		}
		if st.at("(") || st.at("[") || st.at("{") {
			st.skipBalanced()
			continue
		}
		st.next()
	}
}

// parseFunction parses the parameter list and the rest of a function
// declarator. It reports done when a body ended the declaration.
func (st *state) parseFunction(h head) (*syntax.Node, bool) {
	fn := st.tree.NewNode(syntax.KindFunction, source.Range{})
	fn.Decl.Name = h.name.text
	fn.Decl.NameLoc = loc(h.name)

	params, last := st.parseParams()
	fn.Decl.Params = params

	for st.err == nil {
		t := st.peek()
		switch {
		case t.is(";"), t.is(","), t.is("}"), t.kind == source.TokenEOF:
			fn.Range = source.Range{Begin: h.begin, End: loc(last)}
			return fn, false

		case t.is("="):
			st.next()
			last = st.next()

		case t.is(":"):
			st.skipCtorInitializers()

		case t.is("{"):
			fn.Decl.Body = st.parseCompound()
			fn.Range = source.Range{Begin: h.begin, End: fn.Decl.Body.Range.End}
			return fn, true

		case t.is("try"):
			st.next()
			if st.at(":") {
				st.skipCtorInitializers()
			}
			if !st.at("{") {
				continue
			}
			fn.Decl.Body = st.parseCompound()
			end := fn.Decl.Body.Range.End
			for st.at("catch") {
				st.next()
				if st.at("(") {
					st.skipBalanced()
				}
				if st.at("{") {
					end = st.parseCompound().Range.End
				}
			}
			fn.Range = source.Range{Begin: h.begin, End: end}
			return fn, true

		case t.is("->"):
			st.next()
			for !st.atEOF() && !st.at(";") && !st.at("{") && !st.at("=") && !st.at(",") {
				if st.at("(") || st.at("[") || (st.at("<") && st.templateArgsFollowLoose()) {
					last = st.skipBalanced()
					continue
				}
				last = st.next()
			}

		case t.is("(") || t.is("["):
			last = st.skipBalanced()

		case st.isMacro(t):
			st.macroExpansion()

		default:
			last = st.next()
			if (t.is("noexcept") || t.is("throw") || t.is("__attribute__") || t.is("requires")) && st.at("(") {
				last = st.skipBalanced()
			}
		}
	}

	fn.Range = source.Range{Begin: h.begin, End: loc(last)}
	return fn, true
}

// skipCtorInitializers consumes a member initializer list up to the body.
func (st *state) skipCtorInitializers() {
	st.next()
	for !st.atEOF() && !st.at(";") && !st.at("}") {
		switch {
		case st.at("("):
			st.skipBalanced()
		case st.at("{"):
			prev := st.prev()
			if !prev.isIdent() && !prev.is(">") {
				return
			}
			st.skipBalanced()
		case st.at("<") && st.templateArgsFollowLoose():
			st.skipBalanced()
		default:
			st.next()
		}
	}
}

func (st *state) parseParams() ([]*syntax.Node, tok) {
	open := st.next()
	if closing, ok := st.accept(")"); ok {
		return nil, closing
	}

	var params []*syntax.Node
	for !st.atEOF() && st.err == nil {
		if p := st.parseParam(); p != nil {
			params = append(params, p)
		}
		if _, ok := st.accept(","); ok {
			continue
		}
		if closing, ok := st.accept(")"); ok {
			return params, closing
		}
		st.skipTo(",", ")", ";", "{", "}")
		if !st.at(",") {
			break
		}
		st.next()
	}

	if closing, ok := st.accept(")"); ok {
		return params, closing
	}
	st.fail(open, "unterminated parameter list")
	return params, st.prev()
}

// parseParam parses one parameter declaration. A C-style variadic marker
// yields nil.
func (st *state) parseParam() *syntax.Node {
	first := st.peek()
	if first.is("...") {
		st.next()
		return nil
	}

	var (
		name    tok
		sawType bool
		last    = first
		init    *syntax.Node
	)

loop:
	for !st.atEOF() {
		t := st.peek()
		switch {
		case t.is(",") || t.is(")") || t.is(";") || t.is("{") || t.is("}"):
			break loop

		case t.is("[") && st.peekN(1).is("["):
			last = st.skipBalanced()

		case groupSpecifiers[t.text] && t.isIdent():
			last = st.next()
			if st.at("(") {
				last = st.skipBalanced()
			}
			sawType = sawType || t.is("decltype")

		case t.is("const") || t.is("volatile") || t.is("restrict") || t.is("__restrict") ||
			t.is("typename") || t.is("register") || t.is("mutable"):
			last = st.next()

		case t.is("struct") || t.is("class") || t.is("union") || t.is("enum"):
			st.next()
			last = st.parseDeclNameTok(last)
			sawType = true

		case t.isIdent() && typeKeywords[t.text]:
			last = st.next()
			sawType = true

		case st.isMacro(t):
			st.macroExpansion()
			last = st.prev()

		case t.isIdent() || t.is("::"):
			if sawType && t.isIdent() && !st.peekN(1).is("::") {
				name = st.next()
				last = name
				continue
			}
			last = st.parseDeclNameTok(last)
			sawType = true

		case t.is("(") && (st.peekN(1).is("*") || st.peekN(1).is("&") || st.peekN(1).is("^")):
			st.next()
			for !st.atEOF() && !st.at(")") && !st.at(",") {
				if st.peek().isIdent() && !typeKeywords[st.peek().text] {
					name = st.peek()
				}
				if st.at("[") || st.at("(") {
					st.skipBalanced()
					continue
				}
				st.next()
			}
			last, _ = st.accept(")")
			for st.at("(") || st.at("[") {
				last = st.skipBalanced()
			}

		case t.is("(") || t.is("[") || (t.is("<") && st.templateArgsFollowLoose()):
			last = st.skipBalanced()

		case t.is("="):
			st.next()
			init = st.parseExpr(precAssign)
			break loop

		default:
			last = st.next()
		}
	}

	p := st.tree.NewNode(syntax.KindParam, st.span(first, last))
	if name.text != "" {
		p.Decl.Name = name.text
		p.Decl.NameLoc = loc(name)
	}
	if init != nil {
		p.Decl.Init = init
		p.Range.End = init.Range.End
	}
	return p
}

// parseDeclNameTok consumes a type name and returns the token it ended on,
// or fallback when nothing was consumed.
func (st *state) parseDeclNameTok(fallback tok) tok {
	start := st.pos
	st.parseDeclName()
	if st.pos == start {
		return fallback
	}
	return st.prev()
}

// parseVariable parses the remainder of a variable or field declarator.
func (st *state) parseVariable(h head, sc scope) *syntax.Node {
	kind := syntax.KindVariable
	if sc == scopeRecord {
		kind = syntax.KindField
	}

	v := st.tree.NewNode(kind, source.Range{})
	v.Decl.FileScope = sc == scopeFile
	last := st.prev()
	if h.named {
		v.Decl.Name = h.name.text
		v.Decl.NameLoc = loc(h.name)
	}

	end := loc(last)
loop:
	for !st.atEOF() {
		t := st.peek()
		switch {
		case t.is("["):
			end = loc(st.skipBalanced())

		case t.is(":") && sc == scopeRecord:
			st.next()
			width := st.parseExpr(precCond)
			end = width.Range.End

		case groupSpecifiers[t.text] && t.isIdent():
			end = loc(st.next())
			if st.at("(") {
				end = loc(st.skipBalanced())
			}

		case st.isMacro(t):
			st.macroExpansion()
			end = loc(st.prev())

		case t.is("="):
			st.next()
			v.Decl.Init = st.parseExpr(precAssign)
			end = v.Decl.Init.Range.End
			break loop

		case t.is("{"), t.is("("):
			closing := st.skipBalanced()
			v.Decl.Init = st.other("init-list", st.span(t, closing))
			end = loc(closing)
			break loop

		default:
			break loop
		}
	}

	v.Range = source.Range{Begin: h.begin, End: end}
	return v
}

// isDeclarationStart decides whether a block-scope statement at the current
// position is a declaration.
func (st *state) isDeclarationStart() bool {
	i := st.pos
	if st.toks[i].is("[") && st.toks[i+1].is("[") {
		for i < len(st.toks)-1 && !st.toks[i].is("]") {
			i++
		}
		i += 2
	}
	if i >= len(st.toks) {
		return false
	}

	t := st.toks[i]
	switch {
	case !t.isIdent() && !t.is("::"):
		return false
	case t.is("typename") || typeKeywords[t.text] || specifierKeywords[t.text]:
		return true
	case t.is("decltype") || t.is("alignas") || t.is("__attribute__"):
		return true
	case st.isMacro(t) || isNameKeyword(t.text) || wordOps[t.text]:
		return false
	}

	// type-name [<...>] {:: name [<...>]} {* & && const} name (; = ( { [ , :)
	for {
		if st.toks[i].is("::") {
			i++
		}
		if !st.toks[i].isIdent() {
			return false
		}
		i++
		if st.toks[i].is("<") {
			end := st.matchAngle(i)
			if end < 0 {
				return false
			}
			i = end + 1
		}
		if !st.toks[i].is("::") {
			break
		}
	}

	for st.toks[i].is("*") || st.toks[i].is("&") || st.toks[i].is("&&") ||
		st.toks[i].is("const") || st.toks[i].is("volatile") {
		i++
	}

	name := st.toks[i]
	if !name.isIdent() || isNameKeyword(name.text) || wordOps[name.text] {
		return false
	}
	switch after := st.toks[i+1]; {
	case after.is(";"), after.is("="), after.is("("), after.is("{"), after.is("["), after.is(","), after.is(":"):
		return true
	}
	return false
}
