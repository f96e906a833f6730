package rules

import (
	"fmt"

	"github.com/yaklabco/cxxtidy/pkg/config"
	"github.com/yaklabco/cxxtidy/pkg/fix"
	"github.com/yaklabco/cxxtidy/pkg/lint"
	"github.com/yaklabco/cxxtidy/pkg/source"
	"github.com/yaklabco/cxxtidy/pkg/syntax"
)

// Option keys for BracesRule.
const (
	optShortStatementLines     = "short_statement_lines"
	optAddBraces               = "add_braces"
	optRemoveUnnecessaryBraces = "remove_unnecessary_braces"
)

// BracesOptions configures BracesRule.
type BracesOptions struct {
	// ShortStatementLines is the minimum line span a body needs before
	// braces are added. 0 braces every body.
	ShortStatementLines int

	// AddBraces enables wrapping unbraced bodies.
	AddBraces bool

	// RemoveUnnecessaryBraces enables unwrapping single-statement bodies
	// that would not be braced again.
	RemoveUnnecessaryBraces bool
}

// DefaultBracesOptions returns the options used when none are configured.
func DefaultBracesOptions() BracesOptions {
	return BracesOptions{AddBraces: true}
}

// BracesRule ensures the bodies of if, else, while, do and for statements
// are compound statements, and optionally strips braces that carry nothing.
type BracesRule struct {
	lint.BaseRule
}

// NewBracesRule creates a new braces rule.
func NewBracesRule() *BracesRule {
	return &BracesRule{
		BaseRule: lint.NewBaseRule(
			"CT001",
			"braces-around-statements",
			"Bodies of if, else, while, do and for statements should be enclosed in braces",
			[]string{"readability", "braces"},
			true,
		),
	}
}

// DecodeOptions reads the rule's options from ctx.
func (r *BracesRule) DecodeOptions(ctx *lint.RuleContext) (BracesOptions, error) {
	opts := DefaultBracesOptions()
	if err := ctx.CheckOptions(optShortStatementLines, optAddBraces, optRemoveUnnecessaryBraces); err != nil {
		return opts, err
	}

	var err error
	if opts.ShortStatementLines, err = ctx.OptionInt(optShortStatementLines, 0); err != nil {
		return opts, err
	}
	if opts.ShortStatementLines < 0 {
		return opts, fmt.Errorf("%w: %s must not be negative, got %d",
			lint.ErrInvalidOption, optShortStatementLines, opts.ShortStatementLines)
	}
	if opts.AddBraces, err = ctx.OptionBool(optAddBraces, true); err != nil {
		return opts, err
	}
	if opts.RemoveUnnecessaryBraces, err = ctx.OptionBool(optRemoveUnnecessaryBraces, false); err != nil {
		return opts, err
	}
	return opts, nil
}

// NewChecker returns a checker holding the per-file chain state.
func (r *BracesRule) NewChecker(ctx *lint.RuleContext) (lint.Checker, error) {
	opts, err := r.DecodeOptions(ctx)
	if err != nil {
		return nil, err
	}
	return &bracesChecker{
		opts:   opts,
		buf:    ctx.Buffer,
		chains: make(map[syntax.NodeID]bool),
	}, nil
}

type bracesChecker struct {
	opts BracesOptions
	buf  *source.Buffer

	// chains records, per if/else chain head, whether every branch of the
	// chain must be braced.
	chains map[syntax.NodeID]bool
}

// body is one controlled statement together with where its braces go.
type body struct {
	stmt *syntax.Node

	// anchor is the token the opening brace follows: the closing
	// parenthesis of the condition or the do/else keyword.
	anchor source.Location

	// indentAt is a location on the line whose indentation a closing brace
	// on its own line receives.
	indentAt source.Location

	// closeBefore, when valid, is the else or while keyword the closing
	// brace is placed in front of.
	closeBefore source.Location
}

func (c *bracesChecker) Match(n *syntax.Node) bool {
	switch n.Kind {
	case syntax.KindIf, syntax.KindWhile, syntax.KindDoWhile, syntax.KindFor, syntax.KindRangeFor:
		return true
	default:
		return false
	}
}

// PostOrder makes nested statements report first, so that closing braces
// inserted at the same offset nest correctly.
func (c *bracesChecker) PostOrder() bool {
	return true
}

func (c *bracesChecker) Check(n *syntax.Node, e *lint.Emitter) {
	if n.Range.Begin.IsMacro() || !n.Stmt.Keyword.IsFile() {
		return
	}

	forced := false
	if n.Kind == syntax.KindIf {
		forced = c.chainForced(chainHead(n))
	}

	for _, b := range c.bodies(n) {
		c.checkBody(b, forced, e)
	}
}

// bodies returns the statements n controls. An else branch that is itself
// an if is left to that if.
func (c *bracesChecker) bodies(n *syntax.Node) []body {
	s := n.Stmt
	switch n.Kind {
	case syntax.KindIf:
		rparen, ok := c.conditionEnd(s.Keyword)
		if !ok {
			return nil
		}
		out := []body{{stmt: s.Then, anchor: rparen, indentAt: s.Keyword}}
		if s.Else != nil {
			out[0].closeBefore = s.ElseLoc
			if s.Else.Kind != syntax.KindIf && s.ElseLoc.IsFile() {
				out = append(out, body{stmt: s.Else, anchor: s.ElseLoc, indentAt: s.ElseLoc})
			}
		}
		return out

	case syntax.KindDoWhile:
		return []body{{stmt: s.Body, anchor: s.Keyword, indentAt: s.Keyword, closeBefore: s.WhileLoc}}

	default:
		rparen, ok := c.conditionEnd(s.Keyword)
		if !ok {
			return nil
		}
		return []body{{stmt: s.Body, anchor: rparen, indentAt: s.Keyword}}
	}
}

// conditionEnd finds the ')' closing the parenthesized clause after a
// statement keyword.
func (c *bracesChecker) conditionEnd(keyword source.Location) (source.Location, bool) {
	loc := c.buf.EndOfToken(keyword)
	for {
		tok, ok := c.buf.NextToken(loc)
		if !ok {
			return source.NoLocation, false
		}
		switch string(tok.Text(c.buf.Content)) {
		case "constexpr", "consteval", "!", "co_await":
			loc = source.FileLocation(tok.End)
			continue
		case "(":
			return c.buf.FindMatchingParen(source.FileLocation(tok.Start))
		default:
			return source.NoLocation, false
		}
	}
}

func (c *bracesChecker) checkBody(b body, forced bool, e *lint.Emitter) {
	if b.stmt == nil || b.stmt.InMacro() || !b.anchor.IsFile() {
		return
	}

	if b.stmt.Kind == syntax.KindCompound {
		if !forced && c.removable(b) {
			c.removeBraces(b, e)
		}
		return
	}

	if c.wantsBraces(b, forced) {
		c.addBraces(b, e)
	}
}

// lineSpan is the number of lines between the anchor and the end of stmt.
func (c *bracesChecker) lineSpan(anchor source.Location, stmt *syntax.Node) int {
	return c.buf.Line(stmt.Range.End) - c.buf.Line(anchor)
}

// wantsBraces reports whether an unbraced body gets braces.
func (c *bracesChecker) wantsBraces(b body, forced bool) bool {
	if !c.opts.AddBraces || b.stmt.Kind == syntax.KindNullStmt {
		return false
	}
	if forced {
		return true
	}
	t := c.opts.ShortStatementLines
	return t == 0 || c.lineSpan(b.anchor, b.stmt) >= t
}

// removable reports whether a braced body may lose its braces without the
// add side wanting them back or the meaning changing.
func (c *bracesChecker) removable(b body) bool {
	if !c.opts.RemoveUnnecessaryBraces {
		return false
	}

	items := b.stmt.Stmt.Items
	if len(items) != 1 {
		return false
	}
	inner := items[0]
	switch inner.Kind {
	case syntax.KindDeclStmt, syntax.KindCompound, syntax.KindNullStmt:
		return false
	}
	if inner.InMacro() || !b.stmt.Range.IsFile() {
		return false
	}
	if rng, ok := c.buf.CharRange(b.stmt.Range); !ok || c.crossesDirective(rng.Start, rng.End) {
		return false
	}
	if parent := b.stmt.Parent; parent != nil && parent.Kind == syntax.KindIf &&
		parent.Stmt.Then == b.stmt && parent.Stmt.Else != nil && endsWithOpenIf(inner) {
		return false
	}

	if !c.opts.AddBraces {
		return true
	}
	t := c.opts.ShortStatementLines
	return t > 0 && c.lineSpan(b.anchor, inner) < t
}

// endsWithOpenIf reports whether an else following s would attach to an if
// nested inside s.
func endsWithOpenIf(s *syntax.Node) bool {
	for s != nil {
		switch s.Kind {
		case syntax.KindIf:
			if s.Stmt.Else == nil {
				return true
			}
			s = s.Stmt.Else
		case syntax.KindWhile, syntax.KindFor, syntax.KindRangeFor:
			s = s.Stmt.Body
		default:
			return false
		}
	}
	return false
}

// chainHead returns the first if of the else-if chain n belongs to.
func chainHead(n *syntax.Node) *syntax.Node {
	for n.Parent != nil && n.Parent.Kind == syntax.KindIf && n.Parent.Stmt.Else == n {
		n = n.Parent
	}
	return n
}

// chainForced reports whether any branch of the chain starting at head ends
// up braced, in which case every branch must be.
func (c *bracesChecker) chainForced(head *syntax.Node) bool {
	if forced, ok := c.chains[head.ID]; ok {
		return forced
	}

	forced := false
	for n := head; n != nil && !forced; {
		for _, b := range c.bodies(n) {
			if b.stmt == nil || b.stmt.InMacro() {
				continue
			}
			if b.stmt.Kind == syntax.KindCompound {
				forced = !c.removable(b)
			} else {
				forced = c.wantsBraces(b, false)
			}
			if forced {
				break
			}
		}
		if n.Stmt.Else != nil && n.Stmt.Else.Kind == syntax.KindIf {
			n = n.Stmt.Else
		} else {
			n = nil
		}
	}

	c.chains[head.ID] = forced
	return forced
}

func (c *bracesChecker) addBraces(b body, e *lint.Emitter) {
	open := c.buf.EndOfToken(b.anchor)
	closing, ok := c.closingInsert(b)
	if !open.IsFile() || !ok || c.crossesDirective(open.Offset(), closing.StartOffset) {
		return
	}

	e.Report(b.stmt.Range.Begin, "statement should be inside braces",
		fix.Insert(open.Offset(), " {"),
		closing,
	)
}

// crossesDirective reports whether a preprocessor line lies in [start, end).
// Braces placed across one could end up in only some configurations.
func (c *bracesChecker) crossesDirective(start, end int) bool {
	content := c.buf.Content
	for off := start; off >= 0 && off < end && off < len(content); {
		tok := source.LexAt(content, off)
		if tok.Kind == source.TokenDirective {
			return true
		}
		if tok.End <= off {
			return false
		}
		off = tok.End
	}
	return false
}

// closingInsert places the closing brace: in front of a following else or
// while, after the statement when more code shares its line, or on a new
// line after any trailing comments.
func (c *bracesChecker) closingInsert(b body) (fix.TextEdit, bool) {
	if b.closeBefore.IsFile() {
		return fix.Insert(b.closeBefore.Offset(), "} "), true
	}

	end := c.buf.EndOfToken(b.stmt.Range.End)
	if !end.IsFile() {
		return fix.TextEdit{}, false
	}

	content := c.buf.Content
	off := end.Offset()
	for {
		off = c.buf.SkipHorizontalSpace(source.FileLocation(off)).Offset()
		if off < 0 || off >= len(content) || source.IsNewline(content[off]) {
			indent := c.buf.LineIndent(b.indentAt)
			return fix.Insert(off, "\n"+indent+"}"), off >= 0
		}

		tok := source.LexAt(content, off)
		if !tok.Kind.IsComment() || spansLines(content, tok) {
			return fix.Insert(end.Offset(), " }"), true
		}
		off = tok.End
	}
}

func (c *bracesChecker) removeBraces(b body, e *lint.Emitter) {
	rng, ok := c.buf.CharRange(b.stmt.Range)
	if !ok || rng.Len() < 2 {
		return
	}

	e.Report(b.stmt.Range.Begin, "redundant braces around statement",
		c.braceRemoval(rng.Start),
		c.braceRemoval(rng.End-1),
	)
}

// braceRemoval removes the brace at off: its whole line when the brace is
// alone on it, the brace and following blanks when it starts the line, and
// otherwise the brace with the blanks before it.
//
// A brace starting its line keeps the blanks after it when another '}'
// follows, since removing that brace takes the blanks before it. Where the
// removal would fuse two words, as in "else{return;}", a space is left.
func (c *bracesChecker) braceRemoval(off int) fix.TextEdit {
	content := c.buf.Content
	loc := source.FileLocation(off)
	lineStart, lineEnd := c.buf.LineBounds(loc)

	before := c.buf.IsBlankBetween(lineStart, off)
	after := c.buf.IsBlankBetween(off+1, lineEnd)

	start, end := off, off+1
	switch {
	case before && after:
		line := c.buf.Lines[c.buf.Line(loc)-1]
		return fix.Remove(line.StartOffset, line.EndOffset)
	case before:
		next := c.buf.SkipHorizontalSpace(source.FileLocation(off + 1)).Offset()
		if next < len(content) && content[next] != '}' {
			end = next
		}
	default:
		for start > lineStart && source.IsHorizontalSpace(content[start-1]) {
			start--
		}
	}

	if start > 0 && end < len(content) &&
		source.IsIdentChar(content[start-1]) && source.IsIdentChar(content[end]) {
		return fix.Replace(start, end, " ")
	}
	return fix.Remove(start, end)
}

// spansLines reports whether tok contains a line break.
func spansLines(content []byte, tok source.Token) bool {
	for _, ch := range tok.Text(content) {
		if source.IsNewline(ch) {
			return true
		}
	}
	return false
}

// OptionDocs describes the rule's options.
func (r *BracesRule) OptionDocs() []config.OptionDoc {
	def := DefaultBracesOptions()
	return []config.OptionDoc{
		{
			Name:        optShortStatementLines,
			Default:     def.ShortStatementLines,
			Description: "Minimum number of lines a body must span before braces are added; 0 braces every body",
		},
		{
			Name:        optAddBraces,
			Default:     def.AddBraces,
			Description: "Wrap unbraced bodies in braces",
		},
		{
			Name:        optRemoveUnnecessaryBraces,
			Default:     def.RemoveUnnecessaryBraces,
			Description: "Remove braces around single short statements that would not be braced again",
		},
	}
}
