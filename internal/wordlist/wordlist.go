package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxLineSize bounds a single wordlist line. Real-world lists
// (rockyou and friends) occasionally contain very long garbage lines.
const maxLineSize = 1024 * 1024

// Set is an immutable set of lower-cased passwords.
// The zero value is an empty set and is ready to use.
type Set struct {
	entries map[string]struct{}
}

// NewSet builds a Set from the given entries, lower-casing and trimming them.
// Blank entries are skipped.
func NewSet(entries ...string) Set {
	m := make(map[string]struct{}, len(entries))
	lower := cases.Lower(language.Und)
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		m[lower.String(e)] = struct{}{}
	}
	return Set{entries: m}
}

// Contains reports whether the already lower-cased value is in the set.
func (s Set) Contains(lowered string) bool {
	_, ok := s.entries[lowered]
	return ok
}

// Len returns the number of entries.
func (s Set) Len() int {
	return len(s.entries)
}

// Union returns a new Set containing the entries of both sets.
func (s Set) Union(other Set) Set {
	m := make(map[string]struct{}, len(s.entries)+len(other.entries))
	for e := range s.entries {
		m[e] = struct{}{}
	}
	for e := range other.entries {
		m[e] = struct{}{}
	}
	return Set{entries: m}
}

// Parse reads one password per line from r.
func Parse(r io.Reader) (Set, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Set{}, fmt.Errorf("failed to read wordlist: %w", err)
	}
	return NewSet(lines...), nil
}

// Load reads the wordlist at path.
// A missing file yields an empty Set and a nil error.
func Load(path string) (Set, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided wordlist path is intentional
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Set{}, nil
		}
		return Set{}, fmt.Errorf("failed to open wordlist %s: %w", path, err)
	}
	defer f.Close()

	set, err := Parse(f)
	if err != nil {
		return Set{}, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// LoadAll loads and merges several wordlists.
// Missing files are skipped. Other failures are collected and returned
// together with the union of every list that did load.
func LoadAll(paths ...string) (Set, error) {
	var (
		merged Set
		errs   *multierror.Error
	)
	for _, path := range paths {
		set, err := Load(path)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		merged = merged.Union(set)
	}
	return merged, errs.ErrorOrNil()
}
