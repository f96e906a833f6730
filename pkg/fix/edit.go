// Package fix provides text edits, per-rule edit sets, and the logic that
// applies them to file content.
package fix

// Kind classifies a TextEdit.
type Kind uint8

const (
	// KindInsert adds text without removing anything.
	KindInsert Kind = iota

	// KindRemove deletes a non-empty range.
	KindRemove

	// KindReplace deletes a non-empty range and inserts text in its place.
	KindReplace
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindRemove:
		return "remove"
	case KindReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// TextEdit represents a single text replacement in a file.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Insert returns an edit that inserts text at offset.
func Insert(offset int, text string) TextEdit {
	return TextEdit{StartOffset: offset, EndOffset: offset, NewText: text}
}

// Remove returns an edit that deletes bytes [start, end).
func Remove(start, end int) TextEdit {
	return TextEdit{StartOffset: start, EndOffset: end}
}

// Replace returns an edit that replaces bytes [start, end) with text.
func Replace(start, end int, text string) TextEdit {
	return TextEdit{StartOffset: start, EndOffset: end, NewText: text}
}

// Kind reports whether e inserts, removes or replaces.
func (e TextEdit) Kind() Kind {
	switch {
	case e.StartOffset == e.EndOffset:
		return KindInsert
	case e.NewText == "":
		return KindRemove
	default:
		return KindReplace
	}
}

// IsInsertion reports whether e covers no existing bytes.
func (e TextEdit) IsInsertion() bool {
	return e.StartOffset == e.EndOffset
}

// Len returns the number of original bytes e covers.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// Overlaps reports whether a and b cannot both be applied.
//
// Two non-empty ranges overlap when they share a byte. An insertion overlaps
// a range only when it falls strictly inside it. Insertions never overlap
// each other, and edits that merely touch at a boundary do not overlap.
func Overlaps(a, b TextEdit) bool {
	switch {
	case a.IsInsertion() && b.IsInsertion():
		return false
	case a.IsInsertion():
		return b.StartOffset < a.StartOffset && a.StartOffset < b.EndOffset
	case b.IsInsertion():
		return a.StartOffset < b.StartOffset && b.StartOffset < a.EndOffset
	default:
		return a.StartOffset < b.EndOffset && b.StartOffset < a.EndOffset
	}
}
