package export

import (
	"fmt"
	"html/template"
	"io"

	"github.com/contentaudit/contentaudit/internal/model"
)

// HTMLWriter outputs a self-contained HTML document for a report.
// The document embeds its own styles so it can be opened or mailed as a
// single file without external assets.
type HTMLWriter struct {
	baseWriter
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer) *HTMLWriter {
	return &HTMLWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report as a standalone HTML document.
func (w *HTMLWriter) Write(report *model.Report) (int, error) {
	counter := &countingWriter{inner: w.output}
	if err := htmlTemplate.Execute(counter, htmlData{
		Report: report,
		Counts: report.SeverityCounts(),
	}); err != nil {
		return counter.n, fmt.Errorf("failed to render html report: %w", err)
	}
	return counter.n, nil
}

// htmlData is the template context for the HTML export.
type htmlData struct {
	Report *model.Report
	Counts model.SeverityCounts
}

// severityColor maps a severity to its badge color.
func severityColor(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return "#c62828"
	case model.SeverityHigh:
		return "#ef6c00"
	case model.SeverityMedium:
		return "#f9a825"
	case model.SeverityLow:
		return "#1565c0"
	default:
		return "#616161"
	}
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"severityColor": severityColor,
	"score1":        func(v float64) string { return fmt.Sprintf("%.1f", v) },
}).Parse(`<!DOCTYPE html>
<html lang="{{.Report.Language}}">
<head>
<meta charset="utf-8">
<title>Content Audit Report {{.Report.ID}}</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 60rem; color: #212121; }
h1, h2 { border-bottom: 1px solid #e0e0e0; padding-bottom: .3rem; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border: 1px solid #e0e0e0; padding: .4rem .6rem; text-align: left; }
th { background: #fafafa; }
.score { font-size: 2rem; font-weight: bold; }
.badge { color: #fff; border-radius: 3px; padding: .1rem .4rem; font-size: .8rem; }
.meta { color: #757575; font-size: .9rem; }
</style>
</head>
<body>
<h1>Content Audit Report</h1>
<p class="meta">Report {{.Report.ID}} &middot; project {{.Report.ProjectID}}{{if .Report.URL}} &middot; <a href="{{.Report.URL}}">{{.Report.URL}}</a>{{end}} &middot; {{.Report.CreatedAt.Format "2006-01-02 15:04:05 MST"}}</p>
<p class="score">{{score1 .Report.OverallScore}}/100</p>
<p>Findings: {{.Counts.Critical}} critical, {{.Counts.High}} high, {{.Counts.Medium}} medium, {{.Counts.Low}} low.</p>

<h2>Phases</h2>
<table>
<tr><th>Phase</th><th>Score</th><th>Weight</th><th>Checks</th><th>Findings</th></tr>
{{range .Report.PhaseResults}}
<tr><td>{{.Phase}}</td><td>{{score1 .Score}}</td><td>{{.Weight}}</td><td>{{.PassedChecks}}/{{.TotalChecks}}</td><td>{{len .Findings}}</td></tr>
{{end}}
</table>

<h2>Findings</h2>
{{range .Report.PhaseResults}}{{range .Findings}}
<h3><span class="badge" style="background:{{severityColor .Severity}}">{{.Severity}}</span> {{.Title}}</h3>
<p>{{.Description}}</p>
{{if .Rationale}}<p class="meta">{{.Rationale}}</p>{{end}}
{{if .Suggestion}}<p><em>Suggestion:</em> {{.Suggestion}}</p>{{end}}
{{end}}{{end}}

{{if .Report.MergeSuggestions}}
<h2>Merge Suggestions</h2>
<table>
<tr><th>Source</th><th>Target</th><th>Overlap</th><th>Reason</th></tr>
{{range .Report.MergeSuggestions}}
<tr><td>{{.SourceURL}}</td><td>{{.TargetURL}}</td><td>{{score1 .Overlap}}%</td><td>{{.Reason}}</td></tr>
{{end}}
</table>
{{end}}

{{if .Report.CannibalizationRisks}}
<h2>Cannibalization Risks</h2>
<table>
<tr><th>Entity</th><th>Severity</th><th>Pages</th><th>Recommendation</th></tr>
{{range .Report.CannibalizationRisks}}
<tr><td>{{.Entity}}</td><td><span class="badge" style="background:{{severityColor .Severity}}">{{.Severity}}</span></td><td>{{range .URLs}}{{.}}<br>{{end}}</td><td>{{.Recommendation}}</td></tr>
{{end}}
</table>
{{end}}

{{if .Report.MissingTopics}}
<h2>Missing Topics</h2>
<ul>
{{range .Report.MissingTopics}}<li>{{.}}</li>{{end}}
</ul>
{{end}}

<p class="meta">Generated by contentaudit {{.Report.Version}} in {{.Report.Duration}}.</p>
</body>
</html>
`))
