package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/contentaudit/contentaudit/internal/model"
)

// csvHeader is the fixed header row of the findings export. One data row
// follows per finding across all phases, in phase order.
var csvHeader = []string{
	"Phase", "Severity", "Rule", "Title", "Description", "Category", "Auto Fix", "Impact",
}

// CSVWriter outputs the findings of a report as CSV, one row per finding.
// This format is designed for spreadsheet triage and diffing between runs.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report's findings in CSV format.
// The row count is always 1 (header) + the total finding count.
func (w *CSVWriter) Write(report *model.Report) (int, error) {
	counter := &countingWriter{inner: w.output}
	cw := csv.NewWriter(counter)

	if err := cw.Write(csvHeader); err != nil {
		return counter.n, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, pr := range report.PhaseResults {
		for _, f := range pr.Findings {
			autoFix := "no"
			if f.AutoFixable {
				autoFix = "yes"
			}

			row := []string{
				f.Phase,
				f.Severity.String(),
				f.Rule,
				f.Title,
				f.Description,
				f.Category,
				autoFix,
				f.EstimatedImpact,
			}
			if err := cw.Write(row); err != nil {
				return counter.n, fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return counter.n, fmt.Errorf("failed to flush csv: %w", err)
	}
	return counter.n, nil
}

// countingWriter tracks bytes written so Write can report them; the csv
// package itself only exposes errors.
type countingWriter struct {
	inner io.Writer
	n     int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.inner.Write(p)
	c.n += n
	return n, err
}
