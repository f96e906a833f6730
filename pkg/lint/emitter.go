package lint

import (
	"errors"
	"fmt"

	"github.com/yaklabco/cxxtidy/pkg/fix"
	"github.com/yaklabco/cxxtidy/pkg/source"
)

// ErrOverlappingEdits reports a rule that produced overlapping edits for one
// file. It always indicates a defect in the rule.
var ErrOverlappingEdits = errors.New("rule produced overlapping edits")

// Emitter collects the diagnostics one rule reports for one file. Every
// edit the rule proposes goes through the rule's EditSet, so overlap
// within a rule pass is caught at the point it is reported.
type Emitter struct {
	rule  Rule
	buf   *source.Buffer
	reg   *Registry
	edits *fix.EditSet
	diags []Diagnostic
	err   error
}

// NewEmitter creates an emitter for rule over buf.
func NewEmitter(rule Rule, buf *source.Buffer, reg *Registry) *Emitter {
	return &Emitter{
		rule:  rule,
		buf:   buf,
		reg:   reg,
		edits: fix.NewEditSet(),
	}
}

// Report records a diagnostic at anchor with the given edits. After the
// first overlap the emitter is poisoned and ignores further reports.
func (e *Emitter) Report(anchor source.Location, message string, edits ...fix.TextEdit) {
	if e.err != nil {
		return
	}

	if len(edits) > 0 {
		if err := e.edits.Add(edits...); err != nil {
			e.err = fmt.Errorf("%w: %s at %s: %w", ErrOverlappingEdits, e.rule.ID(), e.describe(anchor), err)
			return
		}
	}

	diag := NewDiagnostic(e.rule.ID(), e.buf, anchor, message).
		WithRegistry(e.reg).
		WithEdits(edits...).
		Build()
	if diag.RuleName == "" {
		diag.RuleName = e.rule.Name()
	}
	e.diags = append(e.diags, diag)
}

// Buffer returns the source being checked.
func (e *Emitter) Buffer() *source.Buffer {
	return e.buf
}

// Diagnostics returns what has been reported so far.
func (e *Emitter) Diagnostics() []Diagnostic {
	return e.diags
}

// Err returns the overlap error, if any.
func (e *Emitter) Err() error {
	return e.err
}

func (e *Emitter) describe(anchor source.Location) string {
	if e.buf == nil {
		return "unknown location"
	}
	pos := e.buf.PresumedLoc(anchor)
	return fmt.Sprintf("%s:%d:%d", e.buf.Path, pos.Line, pos.Column)
}
