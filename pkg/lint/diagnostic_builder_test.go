package lint_test

import (
	"testing"

	"github.com/yaklabco/cxxtidy/pkg/fix"
	"github.com/yaklabco/cxxtidy/pkg/lint"
	"github.com/yaklabco/cxxtidy/pkg/source"
)

const testRuleIDDiag = "CT001"

func TestNewDiagnostic(t *testing.T) {
	t.Parallel()

	buf := source.NewBuffer("test.cpp", []byte("int x;\nif (x) y();\n"))

	// "y" sits at line 2, column 8.
	diag := lint.NewDiagnostic(testRuleIDDiag, buf, source.FileLocation(14), "test message").Build()

	if diag.RuleID != testRuleIDDiag {
		t.Errorf("RuleID = %q, want %s", diag.RuleID, testRuleIDDiag)
	}
	if diag.Message != "test message" {
		t.Errorf("Message = %q, want test message", diag.Message)
	}
	if diag.FilePath != "test.cpp" {
		t.Errorf("FilePath = %q, want test.cpp", diag.FilePath)
	}
	if diag.Line != 2 || diag.Column != 8 {
		t.Errorf("position = %d:%d, want 2:8", diag.Line, diag.Column)
	}
	if diag.Anchor != source.FileLocation(14) {
		t.Errorf("Anchor = %v, want offset 14", diag.Anchor)
	}
}

func TestNewDiagnostic_MacroAnchor(t *testing.T) {
	t.Parallel()

	buf := source.NewBuffer("test.cpp", []byte("#define N 1\nint x = N;\n"))
	loc := buf.AddExpansion("N", source.CharRange{Start: 20, End: 21})

	diag := lint.NewDiagnostic(testRuleIDDiag, buf, loc, "in macro").Build()

	if diag.Line != 2 || diag.Column != 9 {
		t.Errorf("position = %d:%d, want the invocation at 2:9", diag.Line, diag.Column)
	}
}

func TestNewDiagnostic_NilBuffer(t *testing.T) {
	t.Parallel()

	diag := lint.NewDiagnostic(testRuleIDDiag, nil, source.FileLocation(0), "no buffer").Build()

	if diag.FilePath != "" || diag.Line != 0 {
		t.Errorf("expected no position, got %s:%d", diag.FilePath, diag.Line)
	}
}

func TestNewDiagnosticAt(t *testing.T) {
	t.Parallel()

	pos := source.Position{Line: 5, Column: 10}
	diag := lint.NewDiagnosticAt(testRuleIDDiag, "test.cpp", pos, "test message").Build()

	if diag.FilePath != "test.cpp" {
		t.Errorf("FilePath = %q, want test.cpp", diag.FilePath)
	}
	if diag.Position() != pos {
		t.Errorf("Position = %+v, want %+v", diag.Position(), pos)
	}
}

func TestDiagnosticBuilder_Chain(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newResolveRule(testRuleIDDiag, true))

	pos := source.Position{Line: 1, Column: 1}
	diag := lint.NewDiagnosticAt(testRuleIDDiag, "test.cpp", pos, "msg").
		WithRegistry(registry).
		WithEdit(fix.Insert(0, "{")).
		WithEdits(fix.Insert(4, "}"), fix.Remove(6, 7)).
		Build()

	if diag.RuleName != testRuleIDDiag+"-name" {
		t.Errorf("RuleName = %q", diag.RuleName)
	}
	if len(diag.FixEdits) != 3 {
		t.Fatalf("got %d edits, want 3", len(diag.FixEdits))
	}
	if diag.FixEdits[0].NewText != "{" || diag.FixEdits[2].Kind() != fix.KindRemove {
		t.Errorf("edits out of order: %+v", diag.FixEdits)
	}
}

func TestDiagnosticBuilder_WithRegistryUnknownRule(t *testing.T) {
	t.Parallel()

	diag := lint.NewDiagnosticAt("CT999", "a.cpp", source.Position{Line: 1, Column: 1}, "msg").
		WithRegistry(lint.NewRegistry()).
		WithRegistry(nil).
		Build()

	if diag.RuleName != "" {
		t.Errorf("RuleName = %q, want empty", diag.RuleName)
	}
}
