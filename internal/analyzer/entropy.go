package analyzer

import (
	"math"
	"unicode"
	"unicode/utf8"
)

// Alphabet sizes contributed by each character class present in a password.
const (
	lowerAlphabet  = 26
	upperAlphabet  = 26
	digitAlphabet  = 10
	symbolAlphabet = 32 // approximation, not a count of printable symbols
)

// EstimateEntropy returns length * log2(pool) where pool is the sum of the
// alphabet sizes of the ASCII classes seen in password. Anything outside
// [a-zA-Z0-9] counts as a symbol. The empty string scores 0.
func EstimateEntropy(password string) float64 {
	if password == "" {
		return 0
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	pool := 0
	if hasLower {
		pool += lowerAlphabet
	}
	if hasUpper {
		pool += upperAlphabet
	}
	if hasDigit {
		pool += digitAlphabet
	}
	if hasSymbol {
		pool += symbolAlphabet
	}
	if pool == 0 {
		return 0
	}

	return float64(utf8.RuneCountInString(password)) * math.Log2(float64(pool))
}

// CharacterClasses reports which Unicode character classes appear in password.
// Unlike EstimateEntropy it is Unicode-aware: "É" is upper case and "٣" is a digit.
// A symbol is any rune that is neither a letter nor a number.
func CharacterClasses(password string) (upper, lower, digit, symbol bool) {
	for _, r := range password {
		if unicode.IsUpper(r) {
			upper = true
		}
		if unicode.IsLower(r) {
			lower = true
		}
		if unicode.IsDigit(r) {
			digit = true
		}
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			symbol = true
		}
	}
	return upper, lower, digit, symbol
}
