package model

// Summary aggregates strength counts over a batch of results.
// It feeds the report headers and the audit history.
type Summary struct {
	Total  int `json:"total"`
	Weak   int `json:"weak"`
	Medium int `json:"medium"`
	Strong int `json:"strong"`

	// Common is the number of passwords found in the wordlist.
	Common int `json:"common"`
}

// NewSummary counts the strength labels of the given results.
func NewSummary(results []AnalysisResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		s.Add(r.Strength)
		if r.Flags.IsCommon {
			s.Common++
		}
	}
	return s
}

// Add increments the counter for one strength label.
func (s *Summary) Add(strength Strength) {
	switch strength {
	case StrengthWeak:
		s.Weak++
	case StrengthMedium:
		s.Medium++
	case StrengthStrong:
		s.Strong++
	}
}

// Count returns the number of results with the given strength.
func (s Summary) Count(strength Strength) int {
	switch strength {
	case StrengthWeak:
		return s.Weak
	case StrengthMedium:
		return s.Medium
	case StrengthStrong:
		return s.Strong
	default:
		return 0
	}
}

// HasWeak reports whether any result was classified Weak.
func (s Summary) HasWeak() bool {
	return s.Weak > 0
}
