// Package model defines the core domain models used throughout the application.
package model

// ClassificationIndex maps section names to sections for a single run.
// It is built fresh each run and passed to whatever needs it.
type ClassificationIndex struct {
	sections map[string]*Section
}

// NewClassificationIndex returns an index with one empty section per known name.
func NewClassificationIndex() *ClassificationIndex {
	idx := &ClassificationIndex{sections: make(map[string]*Section, len(SectionNames))}
	for _, name := range SectionNames {
		idx.sections[name] = &Section{Name: name}
	}
	return idx
}

// BuildClassificationIndex walks a classification listing top to bottom.
// A line equal to a section name switches the current section; any other
// line is a label of the current section, which starts as DefaultSection.
func BuildClassificationIndex(lines []string) *ClassificationIndex {
	idx := NewClassificationIndex()
	current := idx.sections[DefaultSection]

	for _, line := range lines {
		if s, ok := idx.sections[line]; ok {
			current = s
			continue
		}
		current.KnownLabels = append(current.KnownLabels, line)
	}

	return idx
}

// Section returns the section with the given name, or nil.
func (idx *ClassificationIndex) Section(name string) *Section {
	return idx.sections[name]
}

// IsSection reports whether name is one of the known section names.
func (idx *ClassificationIndex) IsSection(name string) bool {
	_, ok := idx.sections[name]
	return ok
}

// SetLedgerBlock records where a section lives on the ledger page.
func (idx *ClassificationIndex) SetLedgerBlock(name, blockID string) bool {
	s, ok := idx.sections[name]
	if !ok {
		return false
	}
	s.LedgerBlockID = blockID
	return true
}

// Owner returns the first section, in display order, that knows label.
func (idx *ClassificationIndex) Owner(label string) *Section {
	for _, name := range SectionNames {
		if s := idx.sections[name]; s.Knows(label) {
			return s
		}
	}
	return nil
}

// Sections returns all sections in display order.
func (idx *ClassificationIndex) Sections() []*Section {
	out := make([]*Section, 0, len(SectionNames))
	for _, name := range SectionNames {
		out = append(out, idx.sections[name])
	}
	return out
}
