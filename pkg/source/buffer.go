package source

import "sort"

// LineInfo describes one line in a buffer.
type LineInfo struct {
	// StartOffset is the byte index where the line begins.
	StartOffset int

	// NewlineStart is the byte index of the line terminator ("\n" or "\r\n"),
	// or the end of content for an unterminated last line.
	NewlineStart int

	// EndOffset is the byte index just past the terminator.
	EndOffset int
}

// Expansion records one macro invocation site.
type Expansion struct {
	// Name is the macro name as spelled at the invocation.
	Name string

	// Site covers the invocation text including any argument list.
	Site CharRange
}

// Buffer is the immutable text of one file plus its location tables.
type Buffer struct {
	Path    string
	Content []byte
	Lines   []LineInfo

	expansions []Expansion
}

// NewBuffer creates a buffer for content. The content is not copied.
func NewBuffer(path string, content []byte) *Buffer {
	return &Buffer{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// BuildLines constructs line metadata for content.
// Both LF and CRLF line endings are recognised.
func BuildLines(content []byte) []LineInfo {
	lines := make([]LineInfo, 0, len(content)/32+1)
	lineStart := 0

	for idx, ch := range content {
		if ch != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// Len returns the content length in bytes.
func (b *Buffer) Len() int {
	return len(b.Content)
}

// AddExpansion registers a macro invocation and returns the macro location
// that stands for it.
func (b *Buffer) AddExpansion(name string, site CharRange) Location {
	loc := macroLocation(len(b.expansions))
	if !loc.IsValid() {
		return NoLocation
	}
	b.expansions = append(b.expansions, Expansion{Name: name, Site: site})
	return loc
}

// Expansion returns the invocation record behind a macro location.
func (b *Buffer) Expansion(loc Location) (Expansion, bool) {
	if !loc.IsMacro() {
		return Expansion{}, false
	}
	idx := loc.expansionIndex()
	if idx >= len(b.expansions) {
		return Expansion{}, false
	}
	return b.expansions[idx], true
}

// ExpansionLoc maps any location to a file location: macro locations map to
// the start of their invocation.
func (b *Buffer) ExpansionLoc(loc Location) Location {
	if loc.IsFile() {
		return loc
	}
	exp, ok := b.Expansion(loc)
	if !ok {
		return NoLocation
	}
	return FileLocation(exp.Site.Start)
}

// CharAt returns the byte at a file location.
func (b *Buffer) CharAt(loc Location) (byte, bool) {
	off := loc.Offset()
	if off < 0 || off >= len(b.Content) {
		return 0, false
	}
	return b.Content[off], true
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Returns (0, 0) if the offset is out of range.
func (b *Buffer) LineAt(offset int) (int, int) {
	if offset < 0 || offset > len(b.Content) || len(b.Lines) == 0 {
		return 0, 0
	}

	idx := sort.Search(len(b.Lines), func(i int) bool {
		return b.Lines[i].EndOffset > offset
	})
	if idx >= len(b.Lines) {
		idx = len(b.Lines) - 1
	}

	return idx + 1, offset - b.Lines[idx].StartOffset + 1
}

// PresumedLoc resolves a location to the line and column a user would be
// shown. Macro locations resolve to their invocation site.
func (b *Buffer) PresumedLoc(loc Location) Position {
	line, col := b.LineAt(b.ExpansionLoc(loc).Offset())
	return Position{Line: line, Column: col}
}

// Line returns the 1-based line number of a location, or 0.
func (b *Buffer) Line(loc Location) int {
	return b.PresumedLoc(loc).Line
}

// LineContent returns a 1-based line without its terminator.
func (b *Buffer) LineContent(line int) []byte {
	if line < 1 || line > len(b.Lines) {
		return nil
	}
	info := b.Lines[line-1]
	return b.Content[info.StartOffset:info.NewlineStart]
}

// LineIndent returns the leading horizontal whitespace of loc's line.
func (b *Buffer) LineIndent(loc Location) string {
	content := b.LineContent(b.Line(loc))
	end := 0
	for end < len(content) && IsHorizontalSpace(content[end]) {
		end++
	}
	return string(content[:end])
}

// Text returns the bytes of a char range, or nil when out of bounds.
func (b *Buffer) Text(r CharRange) []byte {
	if r.Start < 0 || r.End > len(b.Content) || r.Start > r.End {
		return nil
	}
	return b.Content[r.Start:r.End]
}

// CharRange converts a token range to a byte range. Both ends must be file
// locations.
func (b *Buffer) CharRange(r Range) (CharRange, bool) {
	if !r.IsFile() {
		return CharRange{}, false
	}
	end := b.EndOfToken(r.End)
	if !end.IsValid() || end.Offset() < r.Begin.Offset() {
		return CharRange{}, false
	}
	return CharRange{Start: r.Begin.Offset(), End: end.Offset()}, true
}
