package model

import (
	"encoding/json"
	"math"
	"unicode/utf8"
)

// Flags holds the boolean findings for a single password.
type Flags struct {
	// IsCommon is true when the lower-cased password is in the wordlist.
	IsCommon bool `json:"is_common"`

	// CommonPattern is true when one of the common-pattern regexes matches.
	CommonPattern bool `json:"common_pattern"`

	// KeyboardPattern is true when a known keyboard or default-credential
	// substring is present.
	KeyboardPattern bool `json:"keyboard_pattern"`

	// Sequential is true when an ascending or descending letter/digit run
	// of length 3 or more is present.
	Sequential bool `json:"sequential"`

	HasUpper  bool `json:"has_upper"`
	HasLower  bool `json:"has_lower"`
	HasDigit  bool `json:"has_digit"`
	HasSymbol bool `json:"has_symbol"`
}

// CrackTime is the projected time to exhaust the estimated search space
// for one attacker profile.
type CrackTime struct {
	// Profile is the attacker profile name.
	Profile string `json:"profile"`

	// Rate is the profile's guess rate in guesses per second.
	Rate float64 `json:"rate"`

	// Seconds is the projected exhaustion time. It is +Inf when the
	// search space is too large to represent.
	Seconds float64 `json:"seconds"`

	// Display is the human-readable form of Seconds.
	Display string `json:"display"`
}

// IsInfinite reports whether the projected time is unbounded.
func (c CrackTime) IsInfinite() bool {
	return math.IsInf(c.Seconds, 1)
}

// crackTimeJSON mirrors CrackTime with a nullable seconds field,
// since encoding/json rejects infinite floats.
type crackTimeJSON struct {
	Profile string   `json:"profile"`
	Rate    float64  `json:"rate"`
	Seconds *float64 `json:"seconds"`
	Display string   `json:"display"`
}

// MarshalJSON encodes infinite seconds as null.
func (c CrackTime) MarshalJSON() ([]byte, error) {
	out := crackTimeJSON{
		Profile: c.Profile,
		Rate:    c.Rate,
		Display: c.Display,
	}
	if !math.IsInf(c.Seconds, 0) && !math.IsNaN(c.Seconds) {
		seconds := c.Seconds
		out.Seconds = &seconds
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes null seconds back into +Inf.
func (c *CrackTime) UnmarshalJSON(data []byte) error {
	var in crackTimeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	c.Profile = in.Profile
	c.Rate = in.Rate
	c.Display = in.Display
	if in.Seconds == nil {
		c.Seconds = math.Inf(1)
	} else {
		c.Seconds = *in.Seconds
	}
	return nil
}

// Advisory is an optional second-opinion score from a pattern-aware
// estimator. It never influences Strength.
type Advisory struct {
	// Score ranges from 0 (weakest) to 4 (strongest).
	Score int `json:"score"`

	// Entropy is the estimator's own entropy figure in bits.
	Entropy float64 `json:"entropy"`
}

// AnalysisResult is the scoring result for a single password.
//
// An AnalysisResult is a value object: it is created once by the analyzer
// and must not be modified afterwards. Slices are never shared between
// results, so copies handed to reporting cannot affect each other.
type AnalysisResult struct {
	// Password is the original input. It is kept in memory only and is
	// never serialized or logged.
	Password string `json:"-"`

	// Length is the number of characters (runes) in Password.
	Length int `json:"length"`

	// EntropyBits is the character-class entropy estimate. Never negative.
	EntropyBits float64 `json:"entropy_bits"`

	// Flags holds the pattern and character-class findings.
	Flags Flags `json:"flags"`

	// Strength is derived from Length, EntropyBits and Flags.IsCommon.
	Strength Strength `json:"strength"`

	// Recommendations lists advice in check order, without duplicates.
	Recommendations []string `json:"recommendations"`

	// CrackTimes has exactly one entry per attacker profile, in profile
	// declaration order.
	CrackTimes []CrackTime `json:"crack_times"`

	// Advisory is set only when the analyzer runs with the advisory
	// estimator enabled.
	Advisory *Advisory `json:"advisory,omitempty"`
}

// CrackTime returns the projection for the named attacker profile.
func (r AnalysisResult) CrackTime(profile string) (CrackTime, bool) {
	for _, ct := range r.CrackTimes {
		if ct.Profile == profile {
			return ct, true
		}
	}
	return CrackTime{}, false
}

// Masked returns the masked form of the password for display.
func (r AnalysisResult) Masked() string {
	return MaskPassword(r.Password)
}

// RoundedEntropy returns EntropyBits rounded to two decimals for display.
func (r AnalysisResult) RoundedEntropy() float64 {
	return math.Round(r.EntropyBits*100) / 100
}

// MaskPassword hides the middle of a password for reports.
// Passwords longer than four characters keep two characters on each side,
// three or four characters keep one on each side, anything shorter is fully hidden.
func MaskPassword(password string) string {
	n := utf8.RuneCountInString(password)
	runes := []rune(password)
	switch {
	case n > 4:
		return string(runes[:2]) + "***" + string(runes[n-2:])
	case n > 2:
		return string(runes[0]) + "***" + string(runes[n-1])
	default:
		return "***"
	}
}
