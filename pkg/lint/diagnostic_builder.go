package lint

import (
	"github.com/yaklabco/cxxtidy/pkg/fix"
	"github.com/yaklabco/cxxtidy/pkg/source"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic anchored at a location in buf.
// Macro anchors are reported at their invocation site.
func NewDiagnostic(ruleID string, buf *source.Buffer, anchor source.Location, message string) *DiagnosticBuilder {
	b := &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:  ruleID,
			Message: message,
			Anchor:  anchor,
		},
	}
	if buf != nil {
		pos := buf.PresumedLoc(anchor)
		b.diag.FilePath = buf.Path
		b.diag.Line = pos.Line
		b.diag.Column = pos.Column
	}
	return b
}

// NewDiagnosticAt starts building a diagnostic at a specific position.
func NewDiagnosticAt(ruleID, filePath string, pos source.Position, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:   ruleID,
			Message:  message,
			FilePath: filePath,
			Line:     pos.Line,
			Column:   pos.Column,
		},
	}
}

// WithRegistry fills in the rule name from reg.
func (b *DiagnosticBuilder) WithRegistry(reg *Registry) *DiagnosticBuilder {
	if reg != nil {
		if rule, ok := reg.GetByID(b.diag.RuleID); ok {
			b.diag.RuleName = rule.Name()
		}
	}
	return b
}

// WithEdit adds a single fix edit.
func (b *DiagnosticBuilder) WithEdit(edit fix.TextEdit) *DiagnosticBuilder {
	b.diag.FixEdits = append(b.diag.FixEdits, edit)
	return b
}

// WithEdits adds fix edits in order.
func (b *DiagnosticBuilder) WithEdits(edits ...fix.TextEdit) *DiagnosticBuilder {
	b.diag.FixEdits = append(b.diag.FixEdits, edits...)
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
