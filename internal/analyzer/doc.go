// Package analyzer implements the password scoring core.
//
// Scoring runs four stages in a fixed order for every password:
//
//  1. Entropy estimation from character-class membership
//  2. Pattern detection (wordlist, common regexes, keyboard runs, sequences)
//  3. Strength classification and recommendations
//  4. Crack-time projection for each attacker profile
//
// Every stage is a total function over arbitrary strings: empty input,
// unicode and single characters never fail. The only recoverable condition
// is numeric overflow while projecting crack times, which is normalized to
// an infinite duration.
//
// An Analyzer holds only read-only data (the wordlist and the profile table),
// so a single instance can be shared across goroutines.
//
// The entropy model is a per-character-slot upper bound, not a guessing model.
// Its constants (including the symbol alphabet of 32) are heuristics kept for
// compatibility and are not validated security guidance.
package analyzer
