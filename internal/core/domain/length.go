package domain

// LengthPreference is the user-selected verbosity tier for a summary.
type LengthPreference string

// Length preferences.
const (
	LengthShort  LengthPreference = "short"
	LengthMedium LengthPreference = "medium"
	LengthLong   LengthPreference = "long"
)

// DefaultLength is used until the user chooses otherwise.
const DefaultLength = LengthMedium

// ParseLength maps a raw value onto the accepted vocabulary.
// Anything other than "short" or "long" becomes medium; it is never an error.
func ParseLength(s string) LengthPreference {
	switch LengthPreference(s) {
	case LengthShort:
		return LengthShort
	case LengthLong:
		return LengthLong
	default:
		return LengthMedium
	}
}

// Normalize returns the canonical form of l.
func (l LengthPreference) Normalize() LengthPreference {
	return ParseLength(string(l))
}

// Next cycles short -> medium -> long -> short.
func (l LengthPreference) Next() LengthPreference {
	switch l.Normalize() {
	case LengthShort:
		return LengthMedium
	case LengthMedium:
		return LengthLong
	default:
		return LengthShort
	}
}

// String returns the string representation.
func (l LengthPreference) String() string {
	return string(l)
}

// Description returns a human-readable description of the preference.
func (l LengthPreference) Description() string {
	switch l.Normalize() {
	case LengthShort:
		return "Short (a few key points)"
	case LengthLong:
		return "Long (detailed coverage)"
	default:
		return "Medium (balanced)"
	}
}

// AllLengths returns every length preference in display order.
func AllLengths() []LengthPreference {
	return []LengthPreference{LengthShort, LengthMedium, LengthLong}
}
