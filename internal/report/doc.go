// Package report renders audit results and saved audit history.
//
// Writers for three formats share the Writer interface:
//   - SimpleWriter: text for the terminal, strength labels coloured with fatih/color
//   - MarkdownWriter: GitHub Flavored Markdown with tables, alerts and a mermaid pie chart
//   - JSONWriter: structured output for tooling
//
// No writer ever emits a clear-text password; entries are identified by
// their masked form (first and last characters only).
package report
