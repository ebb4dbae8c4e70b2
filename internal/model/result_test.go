package model

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestMaskPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		want     string
	}{
		{name: "empty", password: "", want: "***"},
		{name: "two characters", password: "ab", want: "***"},
		{name: "three characters", password: "abc", want: "a***c"},
		{name: "four characters", password: "abcd", want: "a***d"},
		{name: "long password", password: "password123", want: "pa***23"},
		{name: "multibyte runes", password: "pässwörd", want: "pä***rd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MaskPassword(tt.password); got != tt.want {
				t.Errorf("MaskPassword(%q) = %q, want %q", tt.password, got, tt.want)
			}
		})
	}
}

func TestAnalysisResultJSON(t *testing.T) {
	t.Parallel()

	result := AnalysisResult{
		Password:    "hunter2hunter2",
		Length:      14,
		EntropyBits: 72.37,
		Strength:    StrengthStrong,
		CrackTimes: []CrackTime{
			{Profile: "online_low", Rate: 10, Seconds: 1.5, Display: "1s"},
			{Profile: "asic_farm", Rate: 1e10, Seconds: math.Inf(1), Display: "∞"},
		},
		Recommendations: []string{},
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("password is never serialized", func(t *testing.T) {
		t.Parallel()
		if strings.Contains(string(data), "hunter2") {
			t.Errorf("serialized result contains the clear-text password: %s", data)
		}
	})

	t.Run("infinite seconds encode as null", func(t *testing.T) {
		t.Parallel()
		if !strings.Contains(string(data), `"seconds":null`) {
			t.Errorf("expected null seconds in %s", data)
		}
	})

	t.Run("round trip restores infinity", func(t *testing.T) {
		t.Parallel()

		var decoded AnalysisResult
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ct, ok := decoded.CrackTime("asic_farm")
		if !ok {
			t.Fatal("expected asic_farm crack time")
		}
		if !ct.IsInfinite() {
			t.Errorf("expected infinite seconds, got %v", ct.Seconds)
		}
		if decoded.Strength != StrengthStrong {
			t.Errorf("expected Strong, got %v", decoded.Strength)
		}
	})
}

func TestAnalysisResultHelpers(t *testing.T) {
	t.Parallel()

	result := AnalysisResult{
		Password:    "correcthorse",
		EntropyBits: 56.40684,
		CrackTimes: []CrackTime{
			{Profile: "online_low", Rate: 10, Seconds: 42, Display: "42s"},
		},
	}

	if got := result.Masked(); got != "co***se" {
		t.Errorf("expected masked %q, got %q", "co***se", got)
	}
	if got := result.RoundedEntropy(); got != 56.41 {
		t.Errorf("expected rounded entropy 56.41, got %v", got)
	}
	if _, ok := result.CrackTime("gpu_rig"); ok {
		t.Error("expected missing profile lookup to fail")
	}
}

func TestNewSummary(t *testing.T) {
	t.Parallel()

	results := []AnalysisResult{
		{Strength: StrengthWeak, Flags: Flags{IsCommon: true}},
		{Strength: StrengthWeak},
		{Strength: StrengthMedium},
		{Strength: StrengthStrong},
	}

	s := NewSummary(results)
	if s.Total != 4 {
		t.Errorf("expected total 4, got %d", s.Total)
	}
	if s.Weak != 2 || s.Medium != 1 || s.Strong != 1 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.Common != 1 {
		t.Errorf("expected 1 common password, got %d", s.Common)
	}
	if !s.HasWeak() {
		t.Error("expected HasWeak to be true")
	}
	if s.Count(StrengthMedium) != 1 {
		t.Errorf("expected Count(Medium)=1, got %d", s.Count(StrengthMedium))
	}
}
