// Package source provides source buffers, opaque locations, and a raw
// C/C++ lexer used to resolve token boundaries.
package source

import "fortio.org/safecast"

// Location is an opaque position inside a Buffer.
//
// The zero value is invalid. File locations encode a byte offset; macro
// locations refer to an entry in the owning Buffer's expansion table and
// carry no byte offset of their own.
type Location uint32

const macroBit Location = 1 << 31

// NoLocation is the invalid location.
const NoLocation Location = 0

// FileLocation returns the location of the byte at offset.
// Offsets that cannot be represented yield NoLocation.
func FileLocation(offset int) Location {
	if offset < 0 {
		return NoLocation
	}

	v, err := safecast.Conv[uint32](offset + 1)
	if err != nil || Location(v)&macroBit != 0 {
		return NoLocation
	}

	return Location(v)
}

func macroLocation(index int) Location {
	v, err := safecast.Conv[uint32](index)
	if err != nil || Location(v)&macroBit != 0 {
		return NoLocation
	}
	return macroBit | Location(v)
}

// IsValid reports whether l refers to anything at all.
func (l Location) IsValid() bool {
	return l != NoLocation
}

// IsMacro reports whether l originates from a macro expansion.
func (l Location) IsMacro() bool {
	return l&macroBit != 0
}

// IsFile reports whether l is a plain file location.
func (l Location) IsFile() bool {
	return l.IsValid() && !l.IsMacro()
}

// Offset returns the byte offset of a file location, or -1.
func (l Location) Offset() int {
	if !l.IsFile() {
		return -1
	}
	return int(l) - 1
}

// AddOffset returns the file location n bytes after l.
func (l Location) AddOffset(n int) Location {
	if !l.IsFile() {
		return NoLocation
	}
	return FileLocation(l.Offset() + n)
}

// Before reports whether l precedes other. Both must be file locations.
func (l Location) Before(other Location) bool {
	return l.IsFile() && other.IsFile() && l < other
}

func (l Location) expansionIndex() int {
	return int(l &^ macroBit)
}

// Range is a token range: End is the start of the last token, not the
// position after it. Use Buffer.CharRange to obtain byte boundaries.
type Range struct {
	Begin Location
	End   Location
}

// IsValid reports whether both ends are valid.
func (r Range) IsValid() bool {
	return r.Begin.IsValid() && r.End.IsValid()
}

// IsFile reports whether both ends are file locations.
func (r Range) IsFile() bool {
	return r.Begin.IsFile() && r.End.IsFile()
}

// CharRange is a half-open byte range [Start, End).
type CharRange struct {
	Start int
	End   int
}

// Len returns the length of the range in bytes.
func (r CharRange) Len() int {
	return r.End - r.Start
}

// Contains reports whether offset lies within the range.
func (r CharRange) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Position is a 1-based line and column. Columns count bytes.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}
