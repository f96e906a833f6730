package fix

// EditSet accumulates the edits one rule produces for one file.
//
// Edits in a set never overlap. Insertions at the same offset are kept in
// the order they were added and applied in that order.
type EditSet struct {
	edits []TextEdit
}

// NewEditSet creates an empty set.
func NewEditSet() *EditSet {
	return &EditSet{}
}

// Add inserts edits into the set. Either every edit is added or, when any of
// them overlaps another new or existing edit, none is and a *ConflictError
// is returned.
func (s *EditSet) Add(edits ...TextEdit) error {
	for i, edit := range edits {
		for _, prev := range edits[:i] {
			if Overlaps(prev, edit) {
				return &ConflictError{Edit1: prev, Edit2: edit}
			}
		}
		for _, existing := range s.edits {
			if Overlaps(existing, edit) {
				return &ConflictError{Edit1: existing, Edit2: edit}
			}
		}
	}

	s.edits = append(s.edits, edits...)
	return nil
}

// Len returns the number of edits in the set.
func (s *EditSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.edits)
}

// Edits returns the edits sorted for application.
func (s *EditSet) Edits() []TextEdit {
	if s == nil || len(s.edits) == 0 {
		return nil
	}
	out := make([]TextEdit, len(s.edits))
	copy(out, s.edits)
	SortEdits(out)
	return out
}

// Apply validates the set against content and returns the edited result.
func (s *EditSet) Apply(content []byte) ([]byte, error) {
	edits, err := PrepareEdits(s.Edits(), len(content))
	if err != nil {
		return nil, err
	}
	return ApplyEdits(content, edits), nil
}
