package analyzer

import (
	"math"
	"testing"
)

// floatEquals compares floats with a small tolerance.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEstimateEntropy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		want     float64
	}{
		{name: "empty", password: "", want: 0},
		{name: "lowercase short", password: "abc", want: 3 * math.Log2(26)},
		{name: "lowercase word", password: "password", want: 8 * math.Log2(26)},
		{name: "uppercase only", password: "ABCD", want: 4 * math.Log2(26)},
		{name: "digits only", password: "123456", want: 6 * math.Log2(10)},
		{name: "all ascii classes", password: "aB3!", want: 4 * math.Log2(94)},
		{name: "non-ascii letter is symbol", password: "É", want: math.Log2(32)},
		{name: "length counts runes", password: "éé", want: 2 * math.Log2(32)},
		{name: "space is symbol", password: "a b", want: 3 * math.Log2(58)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := EstimateEntropy(tt.password)
			if !floatEquals(got, tt.want) {
				t.Errorf("EstimateEntropy(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestEstimateEntropyNonNegative(t *testing.T) {
	t.Parallel()

	inputs := []string{"", " ", "\x00", "a", "Z9", "🔑🔑", "correct horse battery staple", "١٢٣", "\n\t"}
	for _, in := range inputs {
		if got := EstimateEntropy(in); got < 0 || math.IsNaN(got) {
			t.Errorf("EstimateEntropy(%q) = %v, want a non-negative number", in, got)
		}
	}
}

func TestEstimateEntropyGrowsWithLength(t *testing.T) {
	t.Parallel()

	prev := EstimateEntropy("a")
	for _, pw := range []string{"ab", "abc", "abcd", "abcde"} {
		got := EstimateEntropy(pw)
		if got <= prev {
			t.Errorf("EstimateEntropy(%q) = %v, want more than %v", pw, got, prev)
		}
		prev = got
	}
}

func TestCharacterClasses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                        string
		password                    string
		upper, lower, digit, symbol bool
	}{
		{name: "empty", password: ""},
		{name: "ascii mix", password: "aB3!", upper: true, lower: true, digit: true, symbol: true},
		{name: "lowercase only", password: "abc", lower: true},
		{name: "unicode upper and digit", password: "É٣", upper: true, digit: true},
		{name: "space is symbol", password: "a b", lower: true, symbol: true},
		{name: "emoji is symbol", password: "🔑", symbol: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			upper, lower, digit, symbol := CharacterClasses(tt.password)
			if upper != tt.upper || lower != tt.lower || digit != tt.digit || symbol != tt.symbol {
				t.Errorf("CharacterClasses(%q) = (%v, %v, %v, %v), want (%v, %v, %v, %v)",
					tt.password, upper, lower, digit, symbol,
					tt.upper, tt.lower, tt.digit, tt.symbol)
			}
		})
	}
}
