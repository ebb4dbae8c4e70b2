package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/pwaudit/internal/model"
)

// MarkdownWriter outputs reports as GitHub Flavored Markdown, with a
// summary table, a mermaid pie chart of the strength distribution and
// an alert summarising the worst result.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the audit report in Markdown format.
func (w *MarkdownWriter) Write(results []model.AnalysisResult) (int, error) {
	md := markdown.NewMarkdown(w.output)
	summary := model.NewSummary(results)

	md.H1("Password Audit Report")
	md.PlainText("")

	w.writeSummary(md, summary)

	for i, r := range results {
		w.writeEntry(md, i+1, r)
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteRuns outputs saved audit runs in Markdown format.
func (w *MarkdownWriter) WriteRuns(runs []model.AuditRun) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Password Audit History")
	md.PlainText("")

	if len(runs) == 0 {
		md.Note("No saved runs.")
		md.PlainText("")
		w.writeFooter(md)
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(runs))
	for i, run := range runs {
		rows[i] = []string{
			codeCell(run.ID),
			run.CreatedAt.Format("2006-01-02 15:04:05 MST"),
			strconv.Itoa(run.Summary.Total),
			strconv.Itoa(run.Summary.Weak),
			strconv.Itoa(run.Summary.Medium),
			strconv.Itoa(run.Summary.Strong),
			strconv.Itoa(run.Summary.Common),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Run", "Date", "Total", "Weak", "Medium", "Strong", "In wordlist"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, run := range runs {
		if len(run.Records) == 0 {
			continue
		}
		md.H2("Run " + run.ID)
		md.PlainText("")

		recRows := make([][]string, len(run.Records))
		for i, rec := range run.Records {
			recRows[i] = []string{
				strconv.Itoa(i + 1),
				codeCell(rec.Masked),
				strconv.Itoa(rec.Length),
				formatEntropy(rec.EntropyBits),
				rec.Strength.String(),
				strconv.FormatBool(rec.Flags.IsCommon),
				strconv.Itoa(rec.SeenBefore),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"#", "Password (masked)", "Length", "Entropy (bits)", "Strength", "In wordlist", "Earlier runs"},
			Rows:   recRows,
		})
		md.PlainText("")
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, s model.Summary) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Strength", "Count"},
		Rows: [][]string{
			{"🔴 Weak", strconv.Itoa(s.Weak)},
			{"🟡 Medium", strconv.Itoa(s.Medium)},
			{"🟢 Strong", strconv.Itoa(s.Strong)},
			{"**Total**", "**" + strconv.Itoa(s.Total) + "**"},
		},
	})
	md.PlainText("")

	if s.Total > 0 {
		w.writePieChart(md, s)
	}

	w.writeAlert(md, s)
}

// writePieChart writes a mermaid pie chart of the strength distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Password Strength Distribution"),
		piechart.WithShowData(true),
	)

	for _, strength := range []model.Strength{model.StrengthWeak, model.StrengthMedium, model.StrengthStrong} {
		if n := s.Count(strength); n > 0 {
			chart.LabelAndIntValue(strength.String(), uint64(n)) //nolint:gosec // counts are non-negative
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, s model.Summary) {
	switch {
	case s.Common > 0:
		md.Cautionf("%d password(s) appear in a common password list and must be replaced.", s.Common)
	case s.Weak > 0:
		md.Warningf("%d weak password(s) found.", s.Weak)
	case s.Medium > 0:
		md.Importantf("%d password(s) are only of medium strength.", s.Medium)
	case s.Total > 0:
		md.Tip("All audited passwords are strong.")
	default:
		md.Note("No passwords were audited.")
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeEntry(md *markdown.Markdown, index int, r model.AnalysisResult) {
	md.H2("Entry " + strconv.Itoa(index))
	md.PlainText("")

	rows := [][]string{
		{"Password (masked)", codeCell(r.Masked())},
		{"Length", strconv.Itoa(r.Length)},
		{"Entropy (bits)", formatEntropy(r.RoundedEntropy())},
		{"Strength", r.Strength.String()},
		{"In common wordlist", strconv.FormatBool(r.Flags.IsCommon)},
		{"Contains common pattern", strconv.FormatBool(r.Flags.CommonPattern)},
		{"Keyboard pattern", strconv.FormatBool(r.Flags.KeyboardPattern)},
		{"Sequential characters", strconv.FormatBool(r.Flags.Sequential)},
		{"Character classes", classSummary(r.Flags)},
	}
	if r.Advisory != nil {
		rows = append(rows, []string{"zxcvbn score", strconv.Itoa(r.Advisory.Score) + "/4"})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	md.H3("Recommendations")
	md.PlainText("")
	if len(r.Recommendations) == 0 {
		md.PlainText("None.")
	} else {
		md.BulletList(r.Recommendations...)
	}
	md.PlainText("")

	times := orderedCrackTimes(r)
	if len(times) == 0 {
		return
	}

	md.H3("Estimated Time to Crack")
	md.PlainText("")
	ctRows := make([][]string, len(times))
	for i, ct := range times {
		ctRows[i] = []string{ct.Profile, formatRate(ct.Rate), ct.Display}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Attacker", "Guesses/s", "Time"},
		Rows:   ctRows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by pwaudit. Strength and crack-time figures are heuristic estimates.*")
}

// classSummary lists the character classes present, e.g. "lower, digit".
func classSummary(f model.Flags) string {
	var classes []string
	if f.HasUpper {
		classes = append(classes, "upper")
	}
	if f.HasLower {
		classes = append(classes, "lower")
	}
	if f.HasDigit {
		classes = append(classes, "digit")
	}
	if f.HasSymbol {
		classes = append(classes, "symbol")
	}
	if len(classes) == 0 {
		return "-"
	}
	return strings.Join(classes, ", ")
}

// cellEscaper keeps a value inside a single GFM table cell. Pipes split
// cells even inside code spans, and line breaks end the row.
var cellEscaper = strings.NewReplacer("|", `\|`, "\n", `\n`, "\r", `\r`)

// codeCell renders s as a code span that is safe inside a table cell.
// The backtick fence is one longer than the longest backtick run in s.
func codeCell(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	fence := strings.Repeat("`", longest+1)

	body := cellEscaper.Replace(s)
	if longest > 0 && (strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`")) {
		body = " " + body + " "
	}
	return fence + body + fence
}
