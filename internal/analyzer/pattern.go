package analyzer

import (
	"regexp"
	"strings"

	"github.com/nao1215/pwaudit/internal/wordlist"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// commonPatterns are matched independently; any match flags the password.
// The digit pattern accepts any Unicode decimal digits and one trailing
// newline.
var commonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\p{Nd}+\n?$`),
	regexp.MustCompile(`(?i)password`),
	regexp.MustCompile(`(?i)qwerty`),
}

// keyboardSubstrings are keyboard walks and default credentials checked
// by substring containment on the lower-cased password.
var keyboardSubstrings = []string{
	"qwerty",
	"asdf",
	"zxcv",
	"12345",
	"password",
	"admin",
	"letmein",
}

// Reference runs for the sequential check.
const (
	alphabetRun = "abcdefghijklmnopqrstuvwxyz"
	digitRun    = "0123456789"
)

// sequenceWindows are tried in order; a hit at any size qualifies.
var sequenceWindows = []int{4, 3}

// lowerCase applies Unicode full lower-case mapping.
// A Caser is stateful, so each call gets its own.
func lowerCase(s string) string {
	return cases.Lower(language.Und).String(s)
}

// IsCommon reports whether the lower-cased password is in the wordlist.
// Only exact matches count.
func IsCommon(password string, wl wordlist.Set) bool {
	return wl.Contains(lowerCase(password))
}

// ContainsCommonPattern reports whether password is all decimal digits or contains
// "password" or "qwerty" in any case.
func ContainsCommonPattern(password string) bool {
	for _, p := range commonPatterns {
		if p.MatchString(password) {
			return true
		}
	}
	return false
}

// HasKeyboardPattern reports whether the lower-cased password contains a
// known keyboard walk or default credential.
func HasKeyboardPattern(password string) bool {
	lowered := lowerCase(password)
	for _, s := range keyboardSubstrings {
		if strings.Contains(lowered, s) {
			return true
		}
	}
	return false
}

// IsSequential reports whether the password contains an ascending or
// descending run of at least three letters or digits, such as "abc" or "987".
// Passwords shorter than three characters never qualify.
func IsSequential(password string) bool {
	runes := []rune(lowerCase(password))

	for _, size := range sequenceWindows {
		for i := 0; i+size <= len(runes); i++ {
			window := runes[i : i+size]
			if isRun(string(window)) || isRun(reverseRunes(window)) {
				return true
			}
		}
	}
	return false
}

// isRun reports whether s is a contiguous part of a reference run.
func isRun(s string) bool {
	return strings.Contains(alphabetRun, s) || strings.Contains(digitRun, s)
}

// reverseRunes returns the runes in reverse order as a string.
func reverseRunes(runes []rune) string {
	reversed := make([]rune, len(runes))
	for i, r := range runes {
		reversed[len(runes)-1-i] = r
	}
	return string(reversed)
}
