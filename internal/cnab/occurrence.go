package cnab

import "strings"

// OccurrenceType is the closed set of outcomes a detail record can report.
type OccurrenceType int

const (
	// OccurrenceOther is the fallback for codes outside every rule.
	OccurrenceOther OccurrenceType = iota
	OccurrenceLiquidated
	OccurrenceDropped
	OccurrenceEntry
	OccurrenceChange
	OccurrenceProtested
	OccurrenceUnprotested
	OccurrenceCreditBlocked
	OccurrenceCreditUnblocked
	OccurrenceAbatement
	OccurrenceUnabatement
	OccurrenceTariff
	OccurrenceError
)

var occurrenceTypeNames = map[OccurrenceType]string{
	OccurrenceOther:           "OTHER",
	OccurrenceLiquidated:      "LIQUIDATED",
	OccurrenceDropped:         "DROPPED",
	OccurrenceEntry:           "ENTRY",
	OccurrenceChange:          "CHANGE",
	OccurrenceProtested:       "PROTESTED",
	OccurrenceUnprotested:     "UNPROTESTED",
	OccurrenceCreditBlocked:   "CREDIT_BLOCKED",
	OccurrenceCreditUnblocked: "CREDIT_UNBLOCKED",
	OccurrenceAbatement:       "ABATEMENT",
	OccurrenceUnabatement:     "UNABATEMENT",
	OccurrenceTariff:          "TARIFF",
	OccurrenceError:           "ERROR",
}

// String returns the upper-case name used in serialized output.
func (t OccurrenceType) String() string {
	if name, ok := occurrenceTypeNames[t]; ok {
		return name
	}
	return occurrenceTypeNames[OccurrenceOther]
}

// ParseOccurrenceType is the inverse of String. Unknown names map to OccurrenceOther.
func ParseOccurrenceType(name string) OccurrenceType {
	name = strings.ToUpper(strings.TrimSpace(name))
	for t, n := range occurrenceTypeNames {
		if n == name {
			return t
		}
	}
	return OccurrenceOther
}

// OccurrenceTable describes a bank's occurrence and reason codes.
// Lookups for unknown codes return "".
type OccurrenceTable interface {
	Description(code string) string
	ReasonDescription(code, sub string) string
}

// MapTable is an OccurrenceTable backed by static maps.
type MapTable struct {
	Occurrences map[string]string
	// Reasons is keyed by occurrence code, then by reason sub-code.
	Reasons map[string]map[string]string
}

// Description implements OccurrenceTable.
func (t MapTable) Description(code string) string {
	return t.Occurrences[code]
}

// ReasonDescription implements OccurrenceTable.
func (t MapTable) ReasonDescription(code, sub string) string {
	return t.Reasons[code][sub]
}

// Codes returns every occurrence code with a description.
func (t MapTable) Codes() []string {
	codes := make([]string, 0, len(t.Occurrences))
	for code := range t.Occurrences {
		codes = append(codes, code)
	}
	return codes
}
