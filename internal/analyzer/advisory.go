package analyzer

import (
	zxcvbn "github.com/ccojocar/zxcvbn-go"
	"github.com/nao1215/pwaudit/internal/model"
)

// advise runs the zxcvbn estimator. Only the score and entropy are kept;
// zxcvbn's calculation time would make results non-reproducible.
func advise(password string) *model.Advisory {
	if password == "" {
		return &model.Advisory{}
	}
	m := zxcvbn.PasswordStrength(password, nil)
	return &model.Advisory{
		Score:   m.Score,
		Entropy: m.Entropy,
	}
}
