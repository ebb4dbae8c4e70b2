package analyzer

import (
	"reflect"
	"testing"

	"github.com/nao1215/pwaudit/internal/model"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		length   int
		entropy  float64
		isCommon bool
		want     model.Strength
	}{
		{name: "short is weak regardless of entropy", length: 4, entropy: 500, want: model.StrengthWeak},
		{name: "common is weak", length: 20, entropy: 120, isCommon: true, want: model.StrengthWeak},
		{name: "low entropy is weak", length: 10, entropy: 27.9, want: model.StrengthWeak},
		{name: "entropy at weak threshold is medium", length: 8, entropy: 28, want: model.StrengthMedium},
		{name: "below strong threshold is medium", length: 12, entropy: 49.99, want: model.StrengthMedium},
		{name: "strong threshold", length: 12, entropy: 50, want: model.StrengthStrong},
		{name: "long diverse password", length: 20, entropy: 131, want: model.StrengthStrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.length, tt.entropy, tt.isCommon); got != tt.want {
				t.Errorf("Classify(%d, %v, %v) = %v, want %v",
					tt.length, tt.entropy, tt.isCommon, got, tt.want)
			}
		})
	}
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	t.Run("all recommendations in fixed order", func(t *testing.T) {
		t.Parallel()

		got := Recommend(4, 10, model.Flags{
			IsCommon:        true,
			KeyboardPattern: true,
			Sequential:      true,
		})
		want := []string{
			RecommendLength,
			RecommendDiversity,
			RecommendCommon,
			RecommendKeyboard,
			RecommendSequence,
			RecommendSymbol,
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Recommend() = %v, want %v", got, want)
		}
	})

	t.Run("no recommendations for a good password", func(t *testing.T) {
		t.Parallel()

		got := Recommend(20, 131, model.Flags{HasSymbol: true})
		if got == nil {
			t.Fatal("expected empty, non-nil slice")
		}
		if len(got) != 0 {
			t.Errorf("expected no recommendations, got %v", got)
		}
	})

	t.Run("boundaries", func(t *testing.T) {
		t.Parallel()

		got := Recommend(12, 40, model.Flags{HasSymbol: true})
		if len(got) != 0 {
			t.Errorf("expected no recommendations at thresholds, got %v", got)
		}

		got = Recommend(11, 39.9, model.Flags{HasSymbol: true})
		want := []string{RecommendLength, RecommendDiversity}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Recommend() = %v, want %v", got, want)
		}
	})
}
