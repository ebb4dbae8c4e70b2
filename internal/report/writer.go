package report

import (
	"io"

	"github.com/nao1215/pwaudit/internal/model"
)

// Writer defines the interface for report output.
// Implementations never write clear-text passwords, only masked forms.
type Writer interface {
	// Write outputs the audit report for results.
	// Returns the number of bytes written and any error encountered.
	Write(results []model.AnalysisResult) (int, error)

	// WriteRuns outputs saved audit runs. Runs with records are shown in
	// full; runs without are listed as a summary line.
	WriteRuns(runs []model.AuditRun) (int, error)
}

// MultiWriter writes to multiple Writers in turn.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all Writers, stopping at the first error.
func (m *MultiWriter) Write(results []model.AnalysisResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(results)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteRuns outputs runs to all Writers, stopping at the first error.
func (m *MultiWriter) WriteRuns(runs []model.AuditRun) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteRuns(runs)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter holds the output destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// orderedCrackTimes returns the crack times of r in attacker profile order.
// Profiles missing from r are skipped.
func orderedCrackTimes(r model.AnalysisResult) []model.CrackTime {
	out := make([]model.CrackTime, 0, len(r.CrackTimes))
	for _, p := range model.AttackerProfiles() {
		if ct, ok := r.CrackTime(p.Name); ok {
			out = append(out, ct)
		}
	}
	return out
}
