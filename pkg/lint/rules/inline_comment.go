package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/cxxtidy/pkg/config"
	"github.com/yaklabco/cxxtidy/pkg/fix"
	"github.com/yaklabco/cxxtidy/pkg/lint"
	"github.com/yaklabco/cxxtidy/pkg/source"
	"github.com/yaklabco/cxxtidy/pkg/syntax"
)

// InlineCommentRule moves comments trailing a declaration onto their own
// line in front of it. Parameter comments are collected into "// @param"
// lines above the function.
type InlineCommentRule struct {
	lint.BaseRule
}

// NewInlineCommentRule creates a new inline comment rule.
func NewInlineCommentRule() *InlineCommentRule {
	return &InlineCommentRule{
		BaseRule: lint.NewBaseRule(
			"CT004",
			"declaration-inline-comment",
			"Comments trailing parameters, variables and fields should precede the declaration",
			[]string{"readability", "comments"},
			true,
		),
	}
}

const (
	optParamCommand        = "param_command"
	optParamBlockSeparator = "param_block_separator"
)

// InlineCommentOptions configures InlineCommentRule.
type InlineCommentOptions struct {
	// ParamCommand starts each parameter line, "@param" or "\param".
	ParamCommand string

	// ParamBlockSeparator opens the parameter block with an empty "//" line.
	ParamBlockSeparator bool
}

// DefaultInlineCommentOptions returns the options used when none are configured.
func DefaultInlineCommentOptions() InlineCommentOptions {
	return InlineCommentOptions{ParamCommand: "@param"}
}

// DecodeOptions reads the rule's options from ctx.
func (r *InlineCommentRule) DecodeOptions(ctx *lint.RuleContext) (InlineCommentOptions, error) {
	opts := DefaultInlineCommentOptions()
	if err := ctx.CheckOptions(optParamCommand, optParamBlockSeparator); err != nil {
		return opts, err
	}

	var err error
	if opts.ParamCommand, err = ctx.OptionString(optParamCommand, opts.ParamCommand); err != nil {
		return opts, err
	}
	if opts.ParamCommand != "@param" && opts.ParamCommand != `\param` {
		return opts, fmt.Errorf("%w: %s must be \"@param\" or \"\\param\", got %q",
			lint.ErrInvalidOption, optParamCommand, opts.ParamCommand)
	}
	if opts.ParamBlockSeparator, err = ctx.OptionBool(optParamBlockSeparator, false); err != nil {
		return opts, err
	}
	return opts, nil
}

// NewChecker returns a checker for one file.
func (r *InlineCommentRule) NewChecker(ctx *lint.RuleContext) (lint.Checker, error) {
	opts, err := r.DecodeOptions(ctx)
	if err != nil {
		return nil, err
	}
	return &inlineCommentChecker{
		buf:     ctx.Buffer,
		opts:    opts,
		claimed: make(map[int]bool),
	}, nil
}

// OptionDocs describes the rule's options.
func (r *InlineCommentRule) OptionDocs() []config.OptionDoc {
	def := DefaultInlineCommentOptions()
	return []config.OptionDoc{
		{
			Name:        optParamCommand,
			Default:     def.ParamCommand,
			Description: `Command starting each parameter line, "@param" or "\param"`,
		},
		{
			Name:        optParamBlockSeparator,
			Default:     def.ParamBlockSeparator,
			Description: `Open the parameter block with an empty "//" line`,
		},
	}
}

type inlineCommentChecker struct {
	buf  *source.Buffer
	opts InlineCommentOptions

	// claimed holds the start offsets of comments already attributed to a
	// declaration.
	claimed map[int]bool
}

// inlineComment is a captured trailing comment.
type inlineComment struct {
	// remove covers the comment, its continuation lines, and the blanks
	// before it.
	remove source.CharRange

	// start is the offset of the first comment token.
	start int

	// text is the comment body with markers stripped and continuation
	// lines folded into single spaces.
	text string
}

// scanMode controls which tokens a comment scan may step over.
type scanMode int

const (
	// scanParam skips any token except braces and semicolons, so a
	// comment after ") const" still belongs to the last parameter.
	scanParam scanMode = iota

	// scanDecl skips punctuation only.
	scanDecl
)

func (c *inlineCommentChecker) Match(n *syntax.Node) bool {
	switch n.Kind {
	case syntax.KindFunction:
		return !n.Decl.Implicit && len(n.Decl.Params) > 0
	case syntax.KindVariable:
		return n.Decl.FileScope
	case syntax.KindField, syntax.KindEnumConstant:
		return true
	default:
		return false
	}
}

func (c *inlineCommentChecker) Check(n *syntax.Node, e *lint.Emitter) {
	if !n.Range.Begin.IsFile() {
		return
	}
	if n.Kind == syntax.KindFunction {
		c.checkFunction(n, e)
		return
	}
	c.checkDecl(n, e)
}

func (c *inlineCommentChecker) checkFunction(fn *syntax.Node, e *lint.Emitter) {
	indent := c.indent(fn.Range.Begin)

	var block strings.Builder
	var edits []fix.TextEdit

	if c.opts.ParamBlockSeparator {
		block.WriteString("//\n")
		block.WriteString(indent)
	}

	params := fn.Decl.Params
	for i, p := range params {
		if p.Decl.Name == "" || !p.Range.End.IsFile() || !p.Decl.NameLoc.IsFile() {
			continue
		}

		limit := len(c.buf.Content)
		if i+1 < len(params) && params[i+1].Range.Begin.IsFile() {
			limit = params[i+1].Range.Begin.Offset()
		}

		comment, ok := c.capture(p.Range.End, limit, scanParam)
		if !ok {
			continue
		}
		edits = append(edits, fix.Remove(comment.remove.Start, comment.remove.End))

		tag, text := splitTag(comment.text)
		block.WriteString("// ")
		block.WriteString(c.opts.ParamCommand)
		block.WriteByte(' ')
		if tag != "" && tag != "[in]" {
			block.WriteString(tag)
			block.WriteByte(' ')
		}
		block.WriteString(c.buf.TokenText(p.Decl.NameLoc))
		block.WriteString(strings.TrimRight(" : "+text, " "))
		block.WriteByte('\n')
		block.WriteString(indent)
	}

	if len(edits) == 0 {
		return
	}

	edits = append(edits, fix.Insert(fn.Range.Begin.Offset(), block.String()))
	e.Report(fn.Range.Begin, "function or method with parameter inline comments", edits...)
}

func (c *inlineCommentChecker) checkDecl(n *syntax.Node, e *lint.Emitter) {
	if !n.Decl.NameLoc.IsFile() || !n.Range.End.IsFile() {
		return
	}

	comment, ok := c.capture(n.Range.End, len(c.buf.Content), scanDecl)
	if !ok {
		return
	}

	text := strings.TrimRight("// "+comment.text, " ")
	e.Report(source.FileLocation(comment.start), "variable or field inline comment",
		fix.Remove(comment.remove.Start, comment.remove.End),
		fix.Insert(n.Range.Begin.Offset(), text+"\n"+c.indent(n.Range.Begin)),
	)
}

// indent returns the column of loc, less one, as spaces.
func (c *inlineCommentChecker) indent(loc source.Location) string {
	col := c.buf.PresumedLoc(loc).Column
	return strings.Repeat(" ", max(col, 1)-1)
}

// capture looks for a comment on the same line after the token at from,
// stopping at limit, at a brace or semicolon, or at the end of the line.
// A line comment absorbs following lines that hold nothing but another
// line comment.
func (c *inlineCommentChecker) capture(from source.Location, limit int, mode scanMode) (inlineComment, bool) {
	content := c.buf.Content
	off := c.buf.EndOfToken(from).Offset()
	if off < 0 {
		return inlineComment{}, false
	}
	blankStart := off

	for off < len(content) && off < limit {
		tok := source.LexAt(content, off)
		if tok.End <= off {
			return inlineComment{}, false
		}

		switch tok.Kind {
		case source.TokenWhitespace:
			if spansLines(content, tok) {
				return inlineComment{}, false
			}
			off = tok.End
			continue

		case source.TokenLineComment:
			return c.claim(blankStart, tok, c.continuation(tok))

		case source.TokenBlockComment:
			if spansLines(content, tok) {
				return inlineComment{}, false
			}
			return c.claim(blankStart, tok, []source.Token{tok})

		case source.TokenPunct:
			switch content[tok.Start] {
			case '{', '}', ';':
				if mode == scanParam || content[tok.Start] != ';' {
					return inlineComment{}, false
				}
			}

		case source.TokenEOF, source.TokenDirective:
			return inlineComment{}, false

		default:
			if mode == scanDecl {
				return inlineComment{}, false
			}
		}

		off = tok.End
		blankStart = off
	}

	return inlineComment{}, false
}

// continuation returns first followed by every immediately following line
// comment that is alone on its line.
func (c *inlineCommentChecker) continuation(first source.Token) []source.Token {
	content := c.buf.Content
	toks := []source.Token{first}

	off := first.End
	for {
		next := off
		if next < len(content) && content[next] == '\r' {
			next++
		}
		if next >= len(content) || content[next] != '\n' {
			return toks
		}
		next = c.buf.SkipHorizontalSpace(source.FileLocation(next + 1)).Offset()
		if next < 0 || next+1 >= len(content) || content[next] != '/' || content[next+1] != '/' {
			return toks
		}
		tok := source.LexAt(content, next)
		toks = append(toks, tok)
		off = tok.End
	}
}

// claim attributes the comment made of toks to the current declaration
// unless an earlier one already owns it.
func (c *inlineCommentChecker) claim(blankStart int, first source.Token, toks []source.Token) (inlineComment, bool) {
	if c.claimed[first.Start] {
		return inlineComment{}, false
	}
	c.claimed[first.Start] = true

	parts := make([]string, 0, len(toks))
	for _, tok := range toks {
		if body := commentBody(string(tok.Text(c.buf.Content))); body != "" {
			parts = append(parts, body)
		}
	}

	return inlineComment{
		remove: source.CharRange{Start: blankStart, End: toks[len(toks)-1].End},
		start:  first.Start,
		text:   strings.Join(parts, " "),
	}, true
}

// commentBody strips comment markers, including the doc forms "///<",
// "//!<" and "/**<", and surrounding blanks.
func commentBody(raw string) string {
	if strings.HasPrefix(raw, "/*") {
		raw = strings.TrimSuffix(raw[2:], "*/")
		raw = strings.TrimLeft(raw, "*!")
	} else {
		raw = strings.TrimLeft(raw, "/!")
	}
	raw = strings.TrimPrefix(raw, "<")
	return strings.TrimSpace(raw)
}

// splitTag separates a leading "[dir]" tag from the comment text.
func splitTag(text string) (string, string) {
	if !strings.HasPrefix(text, "[") {
		return "", text
	}
	end := strings.IndexByte(text, ']')
	if end < 0 {
		return "", text
	}
	return text[:end+1], strings.TrimLeft(text[end+1:], " \t")
}
