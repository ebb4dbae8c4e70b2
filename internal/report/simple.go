package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/nao1215/pwaudit/internal/model"
)

// ColorMode controls ANSI colouring of the text report.
type ColorMode int

const (
	// ColorAuto follows fatih/color's terminal detection and NO_COLOR.
	ColorAuto ColorMode = iota
	// ColorAlways forces colour even when output is not a terminal.
	ColorAlways
	// ColorNever disables colour.
	ColorNever
)

// ruleWidth is the width of the horizontal rules in the text report.
const ruleWidth = 70

// SimpleWriter outputs human-readable text reports for the terminal.
// Strength labels are coloured: red for Weak, yellow for Medium and
// green for Strong.
type SimpleWriter struct {
	baseWriter

	// colorMode selects whether strength labels are coloured.
	colorMode ColorMode

	// verbose adds the character class breakdown to each entry.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithColorMode sets the colour mode.
func WithColorMode(mode ColorMode) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.colorMode = mode
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		colorMode:  ColorAuto,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the audit report in human-readable format.
func (w *SimpleWriter) Write(results []model.AnalysisResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, "PASSWORD AUDIT REPORT")
	w.writeSummary(&sb, model.NewSummary(results))

	for i, r := range results {
		w.writeEntry(&sb, i+1, r)
	}

	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteRuns outputs saved audit runs in human-readable format.
func (w *SimpleWriter) WriteRuns(runs []model.AuditRun) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, "AUDIT HISTORY")

	if len(runs) == 0 {
		sb.WriteString("No saved runs.\n\n")
	}

	for _, run := range runs {
		sb.WriteString(fmt.Sprintf("Run %s  %s (%s)\n",
			run.ID,
			run.CreatedAt.Format("2006-01-02 15:04:05 MST"),
			humanize.Time(run.CreatedAt),
		))
		sb.WriteString(fmt.Sprintf("  total: %d  %s: %d  %s: %d  %s: %d  common: %d\n",
			run.Summary.Total,
			w.strengthLabel(model.StrengthWeak), run.Summary.Weak,
			w.strengthLabel(model.StrengthMedium), run.Summary.Medium,
			w.strengthLabel(model.StrengthStrong), run.Summary.Strong,
			run.Summary.Common,
		))

		for i, rec := range run.Records {
			sb.WriteString(fmt.Sprintf("  [%d] %-12s len=%-3d entropy=%-7s %s",
				i+1,
				rec.Masked,
				rec.Length,
				formatEntropy(rec.EntropyBits),
				w.strengthLabel(rec.Strength),
			))
			if rec.SeenBefore > 0 {
				sb.WriteString(fmt.Sprintf("  (seen in %d earlier run(s))", rec.SeenBefore))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	pad := (ruleWidth - len(title)) / 2
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeSummary(sb *strings.Builder, s model.Summary) {
	sb.WriteString(fmt.Sprintf("Passwords audited:  %d\n\n", s.Total))
	sb.WriteString(fmt.Sprintf("  %s %d\n", padLabel(w.strengthLabel(model.StrengthWeak), "Weak"), s.Weak))
	sb.WriteString(fmt.Sprintf("  %s %d\n", padLabel(w.strengthLabel(model.StrengthMedium), "Medium"), s.Medium))
	sb.WriteString(fmt.Sprintf("  %s %d\n", padLabel(w.strengthLabel(model.StrengthStrong), "Strong"), s.Strong))
	sb.WriteString(fmt.Sprintf("  In wordlist: %d\n\n", s.Common))
}

func (w *SimpleWriter) writeEntry(sb *strings.Builder, index int, r model.AnalysisResult) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("ENTRY %d\n", index))
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Password (masked):   %s\n", r.Masked()))
	sb.WriteString(fmt.Sprintf("  Length:              %d\n", r.Length))
	sb.WriteString(fmt.Sprintf("  Entropy (bits):      %s\n", formatEntropy(r.RoundedEntropy())))
	sb.WriteString(fmt.Sprintf("  Strength:            %s\n", w.strengthLabel(r.Strength)))
	sb.WriteString(fmt.Sprintf("  In common wordlist:  %t\n", r.Flags.IsCommon))
	if r.Flags.CommonPattern {
		sb.WriteString("  Contains common pattern\n")
	}
	if r.Flags.KeyboardPattern {
		sb.WriteString("  Contains keyboard pattern\n")
	}
	if r.Flags.Sequential {
		sb.WriteString("  Contains sequential characters\n")
	}
	if w.verbose {
		sb.WriteString(fmt.Sprintf("  Classes:             upper=%t lower=%t digit=%t symbol=%t\n",
			r.Flags.HasUpper, r.Flags.HasLower, r.Flags.HasDigit, r.Flags.HasSymbol))
	}
	if r.Advisory != nil {
		sb.WriteString(fmt.Sprintf("  zxcvbn score:        %d/4\n", r.Advisory.Score))
	}
	sb.WriteString("\n")

	if len(r.Recommendations) > 0 {
		sb.WriteString("  Recommendations:\n")
		for _, rec := range r.Recommendations {
			sb.WriteString(fmt.Sprintf("    * %s\n", rec))
		}
		sb.WriteString("\n")
	}

	times := orderedCrackTimes(r)
	if len(times) > 0 {
		sb.WriteString("  Estimated time to crack:\n")
		for _, ct := range times {
			sb.WriteString(fmt.Sprintf("    %-12s %-10s %s\n", ct.Profile, formatRate(ct.Rate), ct.Display))
		}
		sb.WriteString("\n")
	}
}

func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("Report generated by pwaudit. Estimates are heuristic.\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}

// strengthLabel returns the strength name, coloured per colorMode.
func (w *SimpleWriter) strengthLabel(s model.Strength) string {
	var c *color.Color
	switch s {
	case model.StrengthWeak:
		c = color.New(color.FgRed, color.Bold)
	case model.StrengthMedium:
		c = color.New(color.FgYellow)
	case model.StrengthStrong:
		c = color.New(color.FgGreen)
	default:
		return s.String()
	}

	switch w.colorMode {
	case ColorAlways:
		c.EnableColor()
	case ColorNever:
		c.DisableColor()
	case ColorAuto:
	}

	return c.Sprint(s.String())
}

// padLabel pads a possibly coloured label to the width of its plain text
// plus a colon, so escape sequences do not break alignment.
func padLabel(label, plain string) string {
	const width = len("Medium:")
	return label + ":" + strings.Repeat(" ", width-len(plain))
}

// formatRate renders guesses per second with an SI prefix, e.g. "10 MH/s".
func formatRate(rate float64) string {
	return humanize.SI(rate, "H/s")
}

// formatEntropy renders already rounded entropy without trailing zeros.
func formatEntropy(bits float64) string {
	return strconv.FormatFloat(bits, 'f', -1, 64)
}
