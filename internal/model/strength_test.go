package model

import (
	"encoding/json"
	"testing"
)

// TestStrengthString tests the String method of Strength.
func TestStrengthString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		strength Strength
		expected string
	}{
		{StrengthWeak, "Weak"},
		{StrengthMedium, "Medium"},
		{StrengthStrong, "Strong"},
		{Strength(42), "Unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.strength.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.strength.String(), tc.expected)
			}
		})
	}
}

// TestStrengthOrdering tests that strength levels are ordered correctly.
func TestStrengthOrdering(t *testing.T) {
	t.Parallel()

	if StrengthWeak >= StrengthMedium {
		t.Error("expected StrengthWeak < StrengthMedium")
	}
	if StrengthMedium >= StrengthStrong {
		t.Error("expected StrengthMedium < StrengthStrong")
	}
}

// TestParseStrength tests label parsing.
func TestParseStrength(t *testing.T) {
	t.Parallel()

	t.Run("parses known labels", func(t *testing.T) {
		t.Parallel()
		for _, s := range []Strength{StrengthWeak, StrengthMedium, StrengthStrong} {
			got, err := ParseStrength(s.String())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != s {
				t.Errorf("ParseStrength(%q) = %v, expected %v", s.String(), got, s)
			}
		}
	})

	t.Run("rejects unknown label", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseStrength("Excellent"); err == nil {
			t.Error("expected error for unknown label")
		}
	})
}

// TestStrengthJSON tests that strength is encoded as its label.
func TestStrengthJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(StrengthMedium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `"Medium"` {
		t.Errorf("expected %q, got %s", `"Medium"`, data)
	}

	var s Strength
	if err := json.Unmarshal([]byte(`"Strong"`), &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != StrengthStrong {
		t.Errorf("expected StrengthStrong, got %v", s)
	}
}
