package fix

import (
	"fmt"
	"strings"
)

// Diff represents a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the diff hunks.
	Hunks []DiffHunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// DiffHunk represents a single hunk in a unified diff.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// DiffLine represents a single line in a diff hunk.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged context line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line added in the modified version.
	DiffLineAdd

	// DiffLineRemove is a line removed from the original version.
	DiffLineRemove
)

var diffPrefix = [...]byte{DiffLineContext: ' ', DiffLineAdd: '+', DiffLineRemove: '-'}

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// GenerateDiff creates a unified diff between original and modified content.
// Returns nil if there are no changes.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if string(original) == string(modified) {
		return nil
	}

	script := lineScript(splitLines(original), splitLines(modified))
	hunks := groupHunks(script)
	if len(hunks) == 0 {
		return nil
	}

	diff := &Diff{Path: path, Hunks: hunks}
	for _, step := range script {
		switch step.kind {
		case DiffLineAdd:
			diff.Additions++
		case DiffLineRemove:
			diff.Deletions++
		}
	}
	return diff
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified diff format (without the git header).
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
		for _, line := range h.Lines {
			sb.WriteByte(diffPrefix[line.Kind])
			sb.WriteString(line.Content)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// splitLines splits content into lines, dropping the empty string a trailing
// newline would produce.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type scriptStep struct {
	kind    DiffLineKind
	text    string
	origPos int // 1-based line in the original before or at this step
	modPos  int // 1-based line in the modified before or at this step
}

// lineScript computes an edit script over lines from a longest common
// subsequence table. Common prefix and suffix are trimmed first.
func lineScript(orig, mod []string) []scriptStep {
	prefix := 0
	for prefix < len(orig) && prefix < len(mod) && orig[prefix] == mod[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(orig)-prefix && suffix < len(mod)-prefix &&
		orig[len(orig)-1-suffix] == mod[len(mod)-1-suffix] {
		suffix++
	}

	a := orig[prefix : len(orig)-suffix]
	b := mod[prefix : len(mod)-suffix]

	// table[i][j] is the LCS length of a[i:] and b[j:].
	table := make([][]int, len(a)+1)
	for i := range table {
		table[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else {
				table[i][j] = max(table[i+1][j], table[i][j+1])
			}
		}
	}

	script := make([]scriptStep, 0, len(orig)+len(b))
	oi, mi := 0, 0
	emit := func(kind DiffLineKind, text string) {
		script = append(script, scriptStep{kind: kind, text: text, origPos: oi + 1, modPos: mi + 1})
		if kind != DiffLineAdd {
			oi++
		}
		if kind != DiffLineRemove {
			mi++
		}
	}

	for _, line := range orig[:prefix] {
		emit(DiffLineContext, line)
	}
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			emit(DiffLineContext, a[i])
			i++
			j++
		case i < len(a) && (j == len(b) || table[i+1][j] >= table[i][j+1]):
			emit(DiffLineRemove, a[i])
			i++
		default:
			emit(DiffLineAdd, b[j])
			j++
		}
	}
	for _, line := range orig[len(orig)-suffix:] {
		emit(DiffLineContext, line)
	}

	return script
}

// groupHunks cuts a script into hunks with contextLines of surrounding
// context, merging changes separated by at most twice that.
func groupHunks(script []scriptStep) []DiffHunk {
	var hunks []DiffHunk

	for pos := 0; pos < len(script); {
		if script[pos].kind == DiffLineContext {
			pos++
			continue
		}

		start := max(pos-contextLines, 0)
		end := pos
		for end < len(script) {
			if script[end].kind != DiffLineContext {
				end++
				continue
			}
			run := end
			for run < len(script) && script[run].kind == DiffLineContext {
				run++
			}
			if run == len(script) || run-end > 2*contextLines {
				break
			}
			end = run
		}
		stop := min(end+contextLines, len(script))

		hunk := DiffHunk{OriginalStart: script[start].origPos, ModifiedStart: script[start].modPos}
		for _, step := range script[start:stop] {
			hunk.Lines = append(hunk.Lines, DiffLine{Kind: step.kind, Content: step.text})
			if step.kind != DiffLineAdd {
				hunk.OriginalCount++
			}
			if step.kind != DiffLineRemove {
				hunk.ModifiedCount++
			}
		}
		if hunk.OriginalCount == 0 {
			hunk.OriginalStart--
		}
		if hunk.ModifiedCount == 0 {
			hunk.ModifiedStart--
		}
		hunks = append(hunks, hunk)
		pos = stop
	}

	return hunks
}
