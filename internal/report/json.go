package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/pwaudit/internal/model"
)

// JSONWriter outputs reports in JSON format for tool integration.
// Passwords appear only in masked form.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// version is recorded in the report envelope when set.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion records the pwaudit version in the report.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONReport is the envelope written by JSONWriter.Write.
type JSONReport struct {
	Version string        `json:"version,omitempty"`
	Summary model.Summary `json:"summary"`
	Results []JSONEntry   `json:"results"`
}

// JSONEntry is one result with its masked password. The embedded
// AnalysisResult never serialises the clear-text password.
type JSONEntry struct {
	Masked string `json:"masked"`
	model.AnalysisResult
}

// JSONHistory is the envelope written by JSONWriter.WriteRuns.
type JSONHistory struct {
	Version string           `json:"version,omitempty"`
	Runs    []model.AuditRun `json:"runs"`
}

// NewJSONReport builds the report envelope for results.
func NewJSONReport(results []model.AnalysisResult, version string) *JSONReport {
	entries := make([]JSONEntry, len(results))
	for i, r := range results {
		entries[i] = JSONEntry{Masked: r.Masked(), AnalysisResult: r}
	}
	return &JSONReport{
		Version: version,
		Summary: model.NewSummary(results),
		Results: entries,
	}
}

// Write outputs the audit report in JSON format.
func (w *JSONWriter) Write(results []model.AnalysisResult) (int, error) {
	return w.writeJSON(NewJSONReport(results, w.version))
}

// WriteRuns outputs saved audit runs in JSON format.
func (w *JSONWriter) WriteRuns(runs []model.AuditRun) (int, error) {
	if runs == nil {
		runs = []model.AuditRun{}
	}
	return w.writeJSON(&JSONHistory{Version: w.version, Runs: runs})
}

// writeJSON marshals v and writes it with a trailing newline.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	data = append(data, '\n')

	return w.output.Write(data)
}
