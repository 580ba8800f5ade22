package dictionary

import (
	"fmt"
	"strings"
)

// EntryType tags a dictionary entry with its category.
type EntryType int

// Entry categories, in display order.
const (
	Word EntryType = iota
	Abbreviation
	QCode
	Number
	Year
	USName
	USStateAbbreviation
	Country
)

var typeNames = []string{
	Word:                "word",
	Abbreviation:        "abbreviation",
	QCode:               "qcode",
	Number:              "number",
	Year:                "year",
	USName:              "us-name",
	USStateAbbreviation: "us-state",
	Country:             "country",
}

// AllTypes lists every entry category.
func AllTypes() []EntryType {
	types := make([]EntryType, len(typeNames))
	for i := range typeNames {
		types[i] = EntryType(i)
	}
	return types
}

func (t EntryType) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType resolves a category name as printed by String.
func ParseType(name string) (EntryType, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	for i, n := range typeNames {
		if n == name {
			return EntryType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown word type %q (available: %s)", name, strings.Join(typeNames, ", "))
}

// Entry is a single dictionary word. Lower Rank means more frequent.
type Entry struct {
	Word string
	Type EntryType
	Rank int
}
