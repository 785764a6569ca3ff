package model

// Ledger section names. The set is closed; the ledger page and the
// classification listing use these exact strings as headings.
const (
	SectionElsecaller        = "Elsecaller"
	SectionVainDeath         = "A Vain Death"
	SectionPremonitionOfWar  = "Premonition of War"
	SectionMindAndBody       = "Mind and Body"
	SectionInnerPeace        = "Inner Peace"
	SectionMasteryOfGames    = "Mastery of Games"
	SectionExpressionsOfSelf = "Expressions of Self"
	SectionWaysOfTheWorld    = "Ways of the World"
	SectionIzzetScholarship  = "Izzet Scholarship"
	SectionUniteThem         = "Unite Them"
	DefaultSection           = SectionElsecaller
)

// SectionNames lists every section in display order.
var SectionNames = []string{
	SectionElsecaller,
	SectionVainDeath,
	SectionPremonitionOfWar,
	SectionMindAndBody,
	SectionInnerPeace,
	SectionMasteryOfGames,
	SectionExpressionsOfSelf,
	SectionWaysOfTheWorld,
	SectionIzzetScholarship,
	SectionUniteThem,
}

// Section is one ledger category.
type Section struct {
	Name string
	// LedgerBlockID is the ledger paragraph heading this section; empty until discovered.
	LedgerBlockID string
	KnownLabels   []string
}

// Knows reports whether label was filed under this section in the classification listing.
func (s *Section) Knows(label string) bool {
	for _, l := range s.KnownLabels {
		if l == label {
			return true
		}
	}
	return false
}
