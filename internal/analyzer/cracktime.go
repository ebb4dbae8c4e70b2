package analyzer

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/nao1215/pwaudit/internal/model"
)

// maxPossibilities is the largest search space treated as finite.
// It sits just below the edge of float64 range.
const maxPossibilities = 1e308

// Infinity is the display string for an unbounded crack time.
const Infinity = "∞"

// timeUnits decomposes whole seconds, largest unit first.
// Years are fixed 365-day years with no calendar correction.
var timeUnits = []struct {
	seconds int64
	suffix  string
}{
	{seconds: 365 * 24 * 60 * 60, suffix: "y"},
	{seconds: 24 * 60 * 60, suffix: "d"},
	{seconds: 60 * 60, suffix: "h"},
	{seconds: 60, suffix: "m"},
	{seconds: 1, suffix: "s"},
}

// EstimateCrackTimeSeconds returns the time in seconds needed to try all
// 2^entropyBits candidates at rate guesses per second.
//
// The result is +Inf when the search space overflows float64 (or exceeds
// maxPossibilities), when rate is not positive, or when the arithmetic
// produces NaN. It never panics.
func EstimateCrackTimeSeconds(entropyBits, rate float64) float64 {
	if !(rate > 0) {
		return math.Inf(1)
	}

	possibilities := math.Pow(2, entropyBits)
	if math.IsInf(possibilities, 0) || math.IsNaN(possibilities) || possibilities > maxPossibilities {
		return math.Inf(1)
	}

	seconds := possibilities / rate
	if math.IsInf(seconds, 0) || math.IsNaN(seconds) {
		return math.Inf(1)
	}
	return seconds
}

// SecondsToReadable renders a duration such as "3y 12d 4h 1m 9s".
//
// Infinite durations render as "∞", durations strictly between zero and one
// second as fractional seconds ("0.003 s"). Otherwise only the non-zero units
// of the truncated duration are listed; a zero duration renders as "0s".
func SecondsToReadable(seconds float64) string {
	if math.IsInf(seconds, 0) || math.IsNaN(seconds) {
		return Infinity
	}
	if seconds > 0 && seconds < 1 {
		return fmt.Sprintf("%.3f s", seconds)
	}
	if seconds <= 0 {
		return "0s"
	}

	// Durations near 1e300 do not fit in int64; big.Int keeps every digit.
	remaining, _ := new(big.Float).SetFloat64(math.Trunc(seconds)).Int(nil)

	parts := make([]string, 0, len(timeUnits))
	for _, unit := range timeUnits {
		quotient, remainder := new(big.Int).QuoRem(remaining, big.NewInt(unit.seconds), new(big.Int))
		if quotient.Sign() != 0 {
			parts = append(parts, quotient.String()+unit.suffix)
		}
		remaining = remainder
	}

	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}

// EstimateCrackTimes projects crack times for every attacker profile,
// in profile declaration order.
func EstimateCrackTimes(entropyBits float64) []model.CrackTime {
	profiles := model.AttackerProfiles()
	times := make([]model.CrackTime, 0, len(profiles))
	for _, p := range profiles {
		seconds := EstimateCrackTimeSeconds(entropyBits, p.Rate)
		times = append(times, model.CrackTime{
			Profile: p.Name,
			Rate:    p.Rate,
			Seconds: seconds,
			Display: SecondsToReadable(seconds),
		})
	}
	return times
}
