package export

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/contentaudit/contentaudit/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation, pull requests, and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writePhases(md, report)
	w.writeFindings(md, report)
	w.writeDerived(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with audit information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Content Audit Report")
	md.PlainText("")

	url := report.URL
	if url == "" {
		url = "-"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Project", report.ProjectID},
			{"URL", url},
			{"Audit Type", string(report.AuditType)},
			{"Language", report.Language},
			{"Audit Date", report.CreatedAt.Format("2006-01-02 15:04:05 MST")},
			{"Overall Score", "**" + formatScore(report.OverallScore) + "/100**"},
		},
	})
	md.PlainText("")
}

// writeSummary writes the severity summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.Report) {
	counts := report.SeverityCounts()

	md.H2("Severity Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 Critical", strconv.Itoa(counts.Critical)},
			{"🟠 High", strconv.Itoa(counts.High)},
			{"🟡 Medium", strconv.Itoa(counts.Medium)},
			{"🔵 Low", strconv.Itoa(counts.Low)},
			{"**Total**", "**" + strconv.Itoa(counts.Total()) + "**"},
		},
	})
	md.PlainText("")

	if counts.Total() > 0 {
		w.writePieChart(md, counts)
	}
	w.writeAlert(md, counts)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, counts model.SeverityCounts) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Finding Severity Distribution"),
		piechart.WithShowData(true),
	)

	if counts.Critical > 0 {
		chart.LabelAndIntValue("Critical", uint64(counts.Critical))
	}
	if counts.High > 0 {
		chart.LabelAndIntValue("High", uint64(counts.High))
	}
	if counts.Medium > 0 {
		chart.LabelAndIntValue("Medium", uint64(counts.Medium))
	}
	if counts.Low > 0 {
		chart.LabelAndIntValue("Low", uint64(counts.Low))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on severity counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, counts model.SeverityCounts) {
	switch {
	case counts.Critical > 0:
		md.Cautionf(
			"Critical content issues detected! %d critical finding(s) require immediate attention.",
			counts.Critical,
		)
	case counts.High > 0:
		md.Warningf(
			"High severity issues detected. %d high severity finding(s) should be fixed before publishing.",
			counts.High,
		)
	case counts.Medium > 0:
		md.Importantf(
			"Medium severity issues found. %d finding(s) may hold the page back.",
			counts.Medium,
		)
	case counts.Total() > 0:
		md.Note("Only low severity findings detected.")
	default:
		md.Tip("No content issues detected.")
	}
	md.PlainText("")
}

// writePhases writes the per-phase score breakdown.
func (w *MarkdownWriter) writePhases(md *markdown.Markdown, report *model.Report) {
	md.H2("Phase Scores")
	md.PlainText("")

	rows := make([][]string, len(report.PhaseResults))
	for i, pr := range report.PhaseResults {
		weight := strconv.FormatFloat(pr.Weight, 'g', -1, 64)
		if pr.Weight == 0 {
			weight = "bonus"
		}
		rows[i] = []string{
			pr.Phase,
			formatScore(pr.Score),
			weight,
			strconv.Itoa(pr.PassedChecks) + "/" + strconv.Itoa(pr.TotalChecks),
			strconv.Itoa(len(pr.Findings)),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Phase", "Score", "Weight", "Checks", "Findings"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFindings writes all findings grouped by severity.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, report *model.Report) {
	md.H2("Findings")
	md.PlainText("")

	all := report.AllFindings()
	if len(all) == 0 {
		md.PlainText("No findings.")
		md.PlainText("")
		return
	}

	severities := []struct {
		level  model.Severity
		header string
	}{
		{model.SeverityCritical, "### 🔴 Critical"},
		{model.SeverityHigh, "### 🟠 High"},
		{model.SeverityMedium, "### 🟡 Medium"},
		{model.SeverityLow, "### 🔵 Low"},
	}

	for _, sev := range severities {
		var findings []model.Finding
		for _, f := range all {
			if f.Severity == sev.level {
				findings = append(findings, f)
			}
		}
		if len(findings) == 0 {
			continue
		}

		md.PlainText(sev.header)
		md.PlainText("")
		w.writeFindingsTable(md, findings)
	}
}

// writeFindingsTable writes a table of findings with details.
func (w *MarkdownWriter) writeFindingsTable(md *markdown.Markdown, findings []model.Finding) {
	rows := make([][]string, len(findings))
	for i, f := range findings {
		suggestion := f.Suggestion
		if suggestion == "" {
			suggestion = "-"
		}
		rows[i] = []string{
			f.Phase,
			f.Title,
			truncateString(f.Description, 60),
			truncateString(suggestion, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Phase", "Title", "Description", "Suggestion"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDerived writes merge suggestions, cannibalization risks, and missing
// topics, skipping empty sections.
func (w *MarkdownWriter) writeDerived(md *markdown.Markdown, report *model.Report) {
	if len(report.MergeSuggestions) > 0 {
		md.H2("Merge Suggestions")
		md.PlainText("")

		rows := make([][]string, len(report.MergeSuggestions))
		for i, s := range report.MergeSuggestions {
			rows[i] = []string{
				s.SourceURL,
				s.TargetURL,
				formatScore(s.Overlap) + "%",
				truncateString(s.Reason, 60),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Source", "Target", "Overlap", "Reason"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if len(report.CannibalizationRisks) > 0 {
		md.H2("Cannibalization Risks")
		md.PlainText("")

		rows := make([][]string, len(report.CannibalizationRisks))
		for i, r := range report.CannibalizationRisks {
			rows[i] = []string{
				r.Entity,
				r.Severity.String(),
				strconv.Itoa(len(r.URLs)),
				truncateString(r.Recommendation, 60),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Entity", "Severity", "Pages", "Recommendation"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if len(report.MissingTopics) > 0 {
		md.H2("Missing Topics")
		md.PlainText("")
		md.BulletList(report.MissingTopics...)
		md.PlainText("")
	}
}

// formatScore renders a score with one decimal.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// truncateString shortens a string to max characters with an ellipsis.
func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
