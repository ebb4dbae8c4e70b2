package analyzer

import "github.com/nao1215/pwaudit/internal/model"

// Classification thresholds.
const (
	// MinLength is the length below which a password is always Weak.
	MinLength = 8

	// RecommendedLength is the length below which a longer password is advised.
	RecommendedLength = 12

	// WeakEntropyBits is the entropy below which a password is Weak.
	WeakEntropyBits = 28.0

	// StrongEntropyBits is the entropy at or above which a non-weak
	// password is Strong.
	StrongEntropyBits = 50.0

	// DiversityEntropyBits is the entropy below which more character
	// diversity is advised.
	DiversityEntropyBits = 40.0
)

// Recommendation texts, in the order they are emitted.
const (
	RecommendLength    = "increase length to at least 12"
	RecommendDiversity = "increase character diversity"
	RecommendCommon    = "avoid common passwords"
	RecommendKeyboard  = "avoid keyboard patterns"
	RecommendSequence  = "avoid sequential characters"
	RecommendSymbol    = "consider adding a symbol"
)

// Classify derives the strength label from length, entropy and wordlist membership.
func Classify(length int, entropyBits float64, isCommon bool) model.Strength {
	switch {
	case length < MinLength || isCommon || entropyBits < WeakEntropyBits:
		return model.StrengthWeak
	case entropyBits < StrongEntropyBits:
		return model.StrengthMedium
	default:
		return model.StrengthStrong
	}
}

// Recommend returns the advice that applies to a password, in fixed check order.
// Each recommendation fires at most once. The result is never nil.
func Recommend(length int, entropyBits float64, flags model.Flags) []string {
	recs := make([]string, 0, 6)
	if length < RecommendedLength {
		recs = append(recs, RecommendLength)
	}
	if entropyBits < DiversityEntropyBits {
		recs = append(recs, RecommendDiversity)
	}
	if flags.IsCommon {
		recs = append(recs, RecommendCommon)
	}
	if flags.KeyboardPattern {
		recs = append(recs, RecommendKeyboard)
	}
	if flags.Sequential {
		recs = append(recs, RecommendSequence)
	}
	if !flags.HasSymbol {
		recs = append(recs, RecommendSymbol)
	}
	return recs
}
