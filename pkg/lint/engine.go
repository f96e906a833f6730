package lint

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/yaklabco/cxxtidy/pkg/config"
	"github.com/yaklabco/cxxtidy/pkg/fix"
	"github.com/yaklabco/cxxtidy/pkg/syntax"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Tree is the parsed file.
	Tree *syntax.Tree

	// Diagnostics contains all issues found, in traversal order. Diagnostics
	// reported for the same node follow rule order.
	Diagnostics []Diagnostic

	// Edits contains validated, sorted edits for auto-fix.
	// Empty if no fixes are available or fixing was not requested.
	Edits []fix.TextEdit

	// SkippedEdits contains edits of diagnostics that collided with edits of
	// an earlier rule. They are retried on the next pass.
	SkippedEdits []fix.TextEdit

	// EditConflicts is true if any diagnostic's edits were skipped.
	EditConflicts bool

	// RuleErrors contains errors from rule setup or execution, by rule ID.
	RuleErrors map[string]error

	// Fatal is set when a rule broke the edit invariants for this file.
	// No edits are produced for the file when it is set.
	Fatal error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// FixableCount returns the number of diagnostics with fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.HasFix() {
			count++
		}
	}
	return count
}

// Engine coordinates parsing and rule execution.
type Engine struct {
	// Parser parses source files into syntax trees.
	Parser Parser

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// activeRule is one rule's checker and emitter for the file being linted.
type activeRule struct {
	resolved ResolvedRule
	checker  Checker
	emitter  *Emitter
	post     bool

	// steps holds, for each diagnostic of emitter, the traversal step that
	// reported it.
	steps []int
}

// LintFile parses and lints a single file.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	tree, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	result := &FileResult{
		Tree:       tree,
		RuleErrors: make(map[string]error),
	}

	active := e.prepare(ctx, tree, cfg, result)

	if err := runCheckers(ctx, tree.Root, active); err != nil {
		return result, fmt.Errorf("linting cancelled: %w", err)
	}

	var fixable []Diagnostic
	var steps []int
	for _, ar := range active {
		id := ar.resolved.Rule.ID()
		if err := ar.emitter.Err(); err != nil {
			result.RuleErrors[id] = err
			if result.Fatal == nil {
				result.Fatal = err
			}
		}

		for i, diag := range ar.emitter.Diagnostics() {
			diag.Severity = ar.resolved.Severity
			if diag.FilePath == "" {
				diag.FilePath = path
			}
			result.Diagnostics = append(result.Diagnostics, diag)
			steps = append(steps, ar.steps[i])
			if ar.resolved.AutoFix && diag.HasFix() {
				fixable = append(fixable, diag)
			}
		}
	}

	sortByStep(result.Diagnostics, steps)

	if result.Fatal != nil || len(fixable) == 0 {
		return result, nil
	}

	e.mergeEdits(result, fixable, len(content))
	return result, nil
}

// prepare builds a checker for every enabled rule. Rules whose options do
// not decode are recorded in result and left out.
func (e *Engine) prepare(ctx context.Context, tree *syntax.Tree, cfg *config.Config, result *FileResult) []*activeRule {
	var active []*activeRule
	for _, rr := range ResolveRules(e.Registry, cfg) {
		ruleCtx := NewRuleContext(ctx, tree, cfg, rr.Config)
		ruleCtx.Registry = e.Registry

		checker, err := rr.Rule.NewChecker(ruleCtx)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		ar := &activeRule{
			resolved: rr,
			checker:  checker,
			emitter:  NewEmitter(rr.Rule, tree.Buffer, e.Registry),
		}
		if po, ok := checker.(PostOrder); ok {
			ar.post = po.PostOrder()
		}
		active = append(active, ar)
	}
	return active
}

// runCheckers walks the tree once, offering each node to every checker on
// the way in or on the way out.
func runCheckers(ctx context.Context, root *syntax.Node, active []*activeRule) error {
	step := 0
	dispatch := func(post bool) syntax.WalkFunc {
		return func(n *syntax.Node) error {
			step++
			for _, ar := range active {
				if ar.post == post && ar.checker.Match(n) {
					ar.checker.Check(n, ar.emitter)
					for len(ar.steps) < len(ar.emitter.Diagnostics()) {
						ar.steps = append(ar.steps, step)
					}
				}
			}
			return nil
		}
	}
	enter := dispatch(false)
	leave := dispatch(true)

	return syntax.WalkWithContext(root, func(n *syntax.Node) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return enter(n)
	}, leave)
}

// sortByStep orders diags by the traversal step that reported them. The sort
// is stable, so rule order holds within a step.
func sortByStep(diags []Diagnostic, steps []int) {
	idx := make([]int, len(diags))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return steps[idx[a]] < steps[idx[b]] })

	sorted := make([]Diagnostic, len(diags))
	for i, j := range idx {
		sorted[i] = diags[j]
	}
	copy(diags, sorted)
}

// mergeEdits combines the fixable diagnostics of all rules. A diagnostic's
// edits are taken together or not at all; diagnostics colliding with an
// earlier rule's edits are deferred to the next pass.
func (e *Engine) mergeEdits(result *FileResult, fixable []Diagnostic, contentLen int) {
	merged := fix.NewEditSet()
	for _, diag := range fixable {
		if err := merged.Add(diag.FixEdits...); err != nil {
			var conflict *fix.ConflictError
			if !errors.As(err, &conflict) {
				result.Fatal = err
				return
			}
			result.SkippedEdits = append(result.SkippedEdits, diag.FixEdits...)
			result.EditConflicts = true
		}
	}

	edits, err := fix.PrepareEdits(merged.Edits(), contentLen)
	if err != nil {
		result.Fatal = fmt.Errorf("invalid edits: %w", err)
		result.SkippedEdits = nil
		return
	}
	result.Edits = edits
}
