package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/cxxtidy/pkg/config"
	"github.com/yaklabco/cxxtidy/pkg/lint"
)

// contextIndent aligns source context under the diagnostic line.
const contextIndent = "        "

// FormatDiagnostic formats a diagnostic with the rule identifier in the
// given format. When sourceLine is non-empty it is shown below, clipped to
// width columns, with a caret under the diagnostic column.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, sourceLine string, ruleFormat config.RuleFormat, width int) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.Line,
		diag.Column,
	)

	ruleIdentifier := config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)
	ruleDisplay := s.RuleID.Render("(" + ruleIdentifier + ")")

	fmt.Fprintf(&builder, "  %s  %s  %s  %s",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		ruleDisplay,
	)
	if diag.HasFix() {
		builder.WriteString(" " + s.Fixable.Render("[fixable]"))
	}
	builder.WriteByte('\n')

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Column, width))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret marker. column
// is a 1-based byte column. Tabs before it are kept in the caret padding
// so the caret lines up however the terminal expands them, and wide
// characters count for their display width.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	var builder strings.Builder

	avail := width - len(contextIndent)
	if avail > 0 && runewidth.StringWidth(line) > avail {
		line = runewidth.Truncate(line, avail, "…")
	}
	builder.WriteString(contextIndent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		prefix := line
		if column-1 < len(prefix) {
			prefix = prefix[:column-1]
		}
		builder.WriteString(contextIndent + caretPadding(prefix) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

func caretPadding(prefix string) string {
	var pad strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return pad.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
