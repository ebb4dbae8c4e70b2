package analyzer

import (
	"unicode/utf8"

	"github.com/nao1215/pwaudit/internal/model"
	"github.com/nao1215/pwaudit/internal/wordlist"
)

// Analyzer scores passwords against a fixed wordlist.
// It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	// wordlist is the read-only set of known-weak passwords.
	wordlist wordlist.Set

	// advisory enables the pattern-aware second-opinion score.
	advisory bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithAdvisory attaches a zxcvbn second-opinion score to every result.
// The advisory score is informational only and never changes the strength label.
func WithAdvisory(enabled bool) Option {
	return func(a *Analyzer) {
		a.advisory = enabled
	}
}

// New creates an Analyzer that checks passwords against wl.
// An empty wordlist disables the dictionary check.
func New(wl wordlist.Set, opts ...Option) *Analyzer {
	a := &Analyzer{wordlist: wl}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WordlistSize returns the number of wordlist entries in use.
func (a *Analyzer) WordlistSize() int {
	return a.wordlist.Len()
}

// Analyze scores a single password.
// It is deterministic: the same password and wordlist always give the same result.
func (a *Analyzer) Analyze(password string) model.AnalysisResult {
	length := utf8.RuneCountInString(password)
	entropy := EstimateEntropy(password)

	upper, lower, digit, symbol := CharacterClasses(password)
	flags := model.Flags{
		IsCommon:        IsCommon(password, a.wordlist),
		CommonPattern:   ContainsCommonPattern(password),
		KeyboardPattern: HasKeyboardPattern(password),
		Sequential:      IsSequential(password),
		HasUpper:        upper,
		HasLower:        lower,
		HasDigit:        digit,
		HasSymbol:       symbol,
	}

	result := model.AnalysisResult{
		Password:        password,
		Length:          length,
		EntropyBits:     entropy,
		Flags:           flags,
		Strength:        Classify(length, entropy, flags.IsCommon),
		Recommendations: Recommend(length, entropy, flags),
		CrackTimes:      EstimateCrackTimes(entropy),
	}

	if a.advisory {
		result.Advisory = advise(password)
	}

	return result
}

// AnalyzeAll scores passwords sequentially, preserving input order.
func (a *Analyzer) AnalyzeAll(passwords []string) []model.AnalysisResult {
	results := make([]model.AnalysisResult, len(passwords))
	for i, pw := range passwords {
		results[i] = a.Analyze(pw)
	}
	return results
}
