package model

import "fmt"

// Strength represents the coarse strength label of a password.
// Values are ordered: Weak < Medium < Strong.
type Strength int

const (
	// StrengthWeak is assigned to short, common or low-entropy passwords.
	StrengthWeak Strength = iota

	// StrengthMedium is assigned to passwords that pass the weak checks but
	// stay below the strong entropy threshold.
	StrengthMedium

	// StrengthStrong is assigned to everything else.
	StrengthStrong
)

// String returns a human-readable representation of the strength level.
func (s Strength) String() string {
	switch s {
	case StrengthWeak:
		return "Weak"
	case StrengthMedium:
		return "Medium"
	case StrengthStrong:
		return "Strong"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the strength as its label.
func (s Strength) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a strength label produced by MarshalText.
func (s *Strength) UnmarshalText(text []byte) error {
	strength, err := ParseStrength(string(text))
	if err != nil {
		return err
	}
	*s = strength
	return nil
}

// ParseStrength converts a label back into a Strength.
func ParseStrength(label string) (Strength, error) {
	switch label {
	case "Weak":
		return StrengthWeak, nil
	case "Medium":
		return StrengthMedium, nil
	case "Strong":
		return StrengthStrong, nil
	default:
		return StrengthWeak, fmt.Errorf("unknown strength label %q", label)
	}
}
