// Package export serializes completed audit reports into interchange
// formats: CSV, HTML, JSON, Markdown, an XLSX workbook, and a batch ZIP
// archive. Exports are pure projections of an immutable report; they can
// run at any time, any number of times, without touching the report.
package export
