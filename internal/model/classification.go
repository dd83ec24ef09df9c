package model

import "strings"

// Classification is the hand-assigned tag for a record. The set is closed; no
// other value is valid at entry time. Backup import deliberately does not
// enforce this so that documents written by older or newer schema versions
// still round-trip (see backup package).
type Classification string

const (
	Act                   Classification = "Act"
	FrontAct              Classification = "Front Act"
	ConsolidationAct      Classification = "Consolidation Act"
	ConsolidationFrontAct Classification = "Consolidation Front Act"
	ConsolidationClose    Classification = "Consolidation Close"
	ActDoubt              Classification = "Act Doubt"
	ThirdAct              Classification = "Third Act"
	FourthAct             Classification = "Fourth Act"
	FifthAct              Classification = "Fifth Act"
	Nill                  Classification = "Nill"
)

// Classifications returns every valid classification in display order.
func Classifications() []Classification {
	return []Classification{
		Act,
		FrontAct,
		ConsolidationAct,
		ConsolidationFrontAct,
		ConsolidationClose,
		ActDoubt,
		ThirdAct,
		FourthAct,
		FifthAct,
		Nill,
	}
}

// Valid reports whether c is a member of the closed enumeration.
func (c Classification) Valid() bool {
	for _, k := range Classifications() {
		if c == k {
			return true
		}
	}
	return false
}

// ParseClassification resolves s case-insensitively to a canonical
// classification value. The second return is false when s matches nothing.
func ParseClassification(s string) (Classification, bool) {
	for _, k := range Classifications() {
		if strings.EqualFold(s, string(k)) {
			return k, true
		}
	}
	return "", false
}
