// Package cfront provides a lint.Parser for C and C++ sources.
//
// The front end is a tolerant recursive-descent parser over raw tokens. It
// does not preprocess, resolve names or instantiate templates; it recovers
// the statement, expression and declaration structure the rules inspect.
// Identifiers defined by a #define in the same file are treated as macro
// invocations and receive macro locations.
package cfront

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/cxxtidy/pkg/source"
	"github.com/yaklabco/cxxtidy/pkg/syntax"
)

// ErrSyntax reports input the front end could not structure, such as
// unbalanced braces.
var ErrSyntax = errors.New("syntax error")

// maxDepth bounds statement and expression nesting.
const maxDepth = 400

// Parser implements lint.Parser for C and C++.
// A Parser holds no state between calls and is safe for concurrent use.
type Parser struct{}

// New creates a parser.
func New() *Parser {
	return &Parser{}
}

// Parse builds the syntax tree for content. The content is not copied and
// must not be mutated while the tree is in use.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*syntax.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	buf := source.NewBuffer(path, content)
	tree := syntax.NewTree(buf)

	st := newState(buf, tree)
	root := st.parseTranslationUnit()
	if st.err != nil {
		return nil, st.err
	}

	tree.Root = root
	tree.Link()

	return tree, nil
}

// tok is one significant token with its spelling.
type tok struct {
	kind  source.TokenKind
	text  string
	start int
	end   int
}

func (t tok) is(s string) bool {
	return t.text == s && t.kind != source.TokenString && t.kind != source.TokenChar
}

func (t tok) isIdent() bool {
	return t.kind == source.TokenIdent
}

type state struct {
	buf    *source.Buffer
	tree   *syntax.Tree
	toks   []tok
	pos    int
	depth  int
	macros map[string]bool // name -> function-like
	err    error
}

func newState(buf *source.Buffer, tree *syntax.Tree) *state {
	st := &state{
		buf:    buf,
		tree:   tree,
		macros: make(map[string]bool),
	}

	for _, raw := range source.Tokenize(buf.Content) {
		switch {
		case raw.Kind == source.TokenWhitespace || raw.Kind.IsComment():
			continue
		case raw.Kind == source.TokenDirective:
			st.recordDirective(raw.Text(buf.Content))
			continue
		}
		st.toks = append(st.toks, tok{
			kind:  raw.Kind,
			text:  string(raw.Text(buf.Content)),
			start: raw.Start,
			end:   raw.End,
		})
	}
	st.toks = append(st.toks, tok{kind: source.TokenEOF, start: len(buf.Content), end: len(buf.Content)})

	return st
}

// recordDirective notes the name of a #define.
func (st *state) recordDirective(text []byte) {
	toks := source.Tokenize(text[1:])
	if len(toks) < 2 || string(toks[0].Text(text[1:])) != "define" || toks[1].Kind != source.TokenIdent {
		return
	}
	name := toks[1]
	rest := text[1:]
	funcLike := name.End < len(rest) && rest[name.End] == '('
	st.macros[string(name.Text(rest))] = funcLike
}

func (st *state) fail(at tok, format string, args ...any) {
	if st.err != nil {
		return
	}
	pos := st.buf.PresumedLoc(source.FileLocation(at.start))
	st.err = fmt.Errorf("%w: %s:%d:%d: %s", ErrSyntax, st.buf.Path, pos.Line, pos.Column, fmt.Sprintf(format, args...))
}

func (st *state) peek() tok {
	return st.toks[st.pos]
}

func (st *state) peekN(n int) tok {
	idx := st.pos + n
	if idx >= len(st.toks) {
		return st.toks[len(st.toks)-1]
	}
	return st.toks[idx]
}

func (st *state) prev() tok {
	if st.pos == 0 {
		return st.toks[0]
	}
	return st.toks[st.pos-1]
}

func (st *state) at(s string) bool {
	return st.peek().is(s)
}

func (st *state) atEOF() bool {
	return st.peek().kind == source.TokenEOF
}

func (st *state) next() tok {
	t := st.toks[st.pos]
	if st.pos < len(st.toks)-1 {
		st.pos++
	}
	return t
}

func (st *state) accept(s string) (tok, bool) {
	if st.at(s) {
		return st.next(), true
	}
	return tok{}, false
}

func loc(t tok) source.Location {
	return source.FileLocation(t.start)
}

func (st *state) span(first, last tok) source.Range {
	return source.Range{Begin: loc(first), End: loc(last)}
}

func (st *state) isMacro(t tok) bool {
	if !t.isIdent() {
		return false
	}
	_, ok := st.macros[t.text]
	return ok
}

// skipBalanced consumes a bracketed group starting at the current opening
// token and returns its closing token.
func (st *state) skipBalanced() tok {
	open := st.next()
	closer := map[string]string{"(": ")", "[": "]", "{": "}", "<": ">"}[open.text]
	if closer == "" {
		return open
	}

	depth := 1
	for !st.atEOF() {
		t := st.next()
		switch {
		case t.is(open.text):
			depth++
		case t.is(closer):
			depth--
			if depth == 0 {
				return t
			}
		case open.text == "<" && t.is(">>"):
			depth -= 2
			if depth <= 0 {
				return t
			}
		case open.text != "<" && (t.is("(") || t.is("[") || t.is("{")):
			st.pos--
			st.skipBalanced()
		}
	}

	st.fail(open, "unbalanced %q", open.text)
	return st.prev()
}

// macroExpansion consumes a macro invocation, including the argument list of
// a function-like macro, and returns its macro location.
func (st *state) macroExpansion() source.Location {
	name := st.next()
	last := name
	if st.macros[name.text] && st.at("(") {
		last = st.skipBalanced()
	}
	return st.buf.AddExpansion(name.text, source.CharRange{Start: name.start, End: last.end})
}

func (st *state) enter() bool {
	st.depth++
	if st.depth > maxDepth {
		st.fail(st.peek(), "nesting exceeds %d levels", maxDepth)
		return false
	}
	return true
}

func (st *state) leave() {
	st.depth--
}
