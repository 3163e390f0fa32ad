package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/contentaudit/contentaudit/internal/model"
)

// Workbook sheet names, in tab order.
const (
	sheetSummary         = "Summary"
	sheetPhases          = "Phases"
	sheetFindings        = "Findings"
	sheetMerge           = "Merge Suggestions"
	sheetCannibalization = "Cannibalization"
)

// severityFill maps severities to the cell fill used on finding rows.
var severityFill = map[model.Severity]string{
	model.SeverityCritical: "F4CCCC",
	model.SeverityHigh:     "FCE5CD",
	model.SeverityMedium:   "FFF2CC",
	model.SeverityLow:      "D9E2F3",
}

// Workbook renders a report as a five-sheet XLSX workbook and returns the
// file bytes. The buffer begins with the standard ZIP signature ("PK"), as
// XLSX is a ZIP container.
func Workbook(report *model.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // in-memory file

	if err := writeSummarySheet(f, report); err != nil {
		return nil, err
	}
	if err := writePhasesSheet(f, report); err != nil {
		return nil, err
	}
	if err := writeFindingsSheet(f, report); err != nil {
		return nil, err
	}
	if err := writeMergeSheet(f, report); err != nil {
		return nil, err
	}
	if err := writeCannibalizationSheet(f, report); err != nil {
		return nil, err
	}

	// The default sheet is replaced by our five.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(sheetSummary)
	if err != nil {
		return nil, fmt.Errorf("failed to locate summary sheet: %w", err)
	}
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSummarySheet writes report identity, the overall score, and the
// severity distribution.
func writeSummarySheet(f *excelize.File, report *model.Report) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheetSummary, err)
	}

	counts := report.SeverityCounts()
	rows := [][]any{
		{"Report ID", report.ID},
		{"Project", report.ProjectID},
		{"URL", report.URL},
		{"Audit Type", string(report.AuditType)},
		{"Language", report.Language},
		{"Version", report.Version},
		{"Audit Date", report.CreatedAt.Format("2006-01-02 15:04:05")},
		{"Duration", report.Duration.String()},
		{"Overall Score", report.OverallScore},
		{},
		{"Critical Findings", counts.Critical},
		{"High Findings", counts.High},
		{"Medium Findings", counts.Medium},
		{"Low Findings", counts.Low},
		{"Total Findings", counts.Total()},
	}
	if err := writeRows(f, sheetSummary, 1, rows); err != nil {
		return err
	}

	return boldCells(f, sheetSummary, "A1", fmt.Sprintf("A%d", len(rows)))
}

// writePhasesSheet writes the per-phase score breakdown.
func writePhasesSheet(f *excelize.File, report *model.Report) error {
	if _, err := f.NewSheet(sheetPhases); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheetPhases, err)
	}

	rows := [][]any{
		{"Phase", "Score", "Weight", "Passed Checks", "Total Checks", "Findings", "Summary"},
	}
	for _, pr := range report.PhaseResults {
		rows = append(rows, []any{
			pr.Phase, pr.Score, pr.Weight, pr.PassedChecks, pr.TotalChecks, len(pr.Findings), pr.Summary,
		})
	}
	if err := writeRows(f, sheetPhases, 1, rows); err != nil {
		return err
	}

	return boldCells(f, sheetPhases, "A1", "G1")
}

// writeFindingsSheet writes every finding with severity-colored rows.
func writeFindingsSheet(f *excelize.File, report *model.Report) error {
	if _, err := f.NewSheet(sheetFindings); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheetFindings, err)
	}

	header := []any{"Phase", "Severity", "Rule", "Title", "Description", "Category", "Auto Fix", "Impact"}
	if err := writeRows(f, sheetFindings, 1, [][]any{header}); err != nil {
		return err
	}
	if err := boldCells(f, sheetFindings, "A1", "H1"); err != nil {
		return err
	}

	row := 2
	for _, f2 := range report.AllFindings() {
		autoFix := "no"
		if f2.AutoFixable {
			autoFix = "yes"
		}
		values := []any{
			f2.Phase, f2.Severity.String(), f2.Rule, f2.Title, f2.Description,
			f2.Category, autoFix, f2.EstimatedImpact,
		}
		if err := writeRows(f, sheetFindings, row, [][]any{values}); err != nil {
			return err
		}
		if err := fillRow(f, sheetFindings, row, len(values), severityFill[f2.Severity]); err != nil {
			return err
		}
		row++
	}
	return nil
}

// writeMergeSheet writes derived merge suggestions.
func writeMergeSheet(f *excelize.File, report *model.Report) error {
	if _, err := f.NewSheet(sheetMerge); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheetMerge, err)
	}

	rows := [][]any{{"Source URL", "Target URL", "Overlap %", "Reason", "Action"}}
	for _, s := range report.MergeSuggestions {
		rows = append(rows, []any{s.SourceURL, s.TargetURL, s.Overlap, s.Reason, s.Action})
	}
	if err := writeRows(f, sheetMerge, 1, rows); err != nil {
		return err
	}

	return boldCells(f, sheetMerge, "A1", "E1")
}

// writeCannibalizationSheet writes derived cannibalization risks.
func writeCannibalizationSheet(f *excelize.File, report *model.Report) error {
	if _, err := f.NewSheet(sheetCannibalization); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheetCannibalization, err)
	}

	rows := [][]any{{"Entity", "Severity", "URLs", "Shared Keywords", "Recommendation"}}
	for _, r := range report.CannibalizationRisks {
		rows = append(rows, []any{
			r.Entity,
			r.Severity.String(),
			strings.Join(r.URLs, "\n"),
			strings.Join(r.Keywords, ", "),
			r.Recommendation,
		})
	}
	if err := writeRows(f, sheetCannibalization, 1, rows); err != nil {
		return err
	}

	return boldCells(f, sheetCannibalization, "A1", "E1")
}

// writeRows writes consecutive rows starting at startRow.
func writeRows(f *excelize.File, sheet string, startRow int, rows [][]any) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, startRow+i)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

// boldCells applies a bold style to a cell range.
func boldCells(f *excelize.File, sheet, from, to string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, from, to, style); err != nil {
		return fmt.Errorf("failed to style %s!%s:%s: %w", sheet, from, to, err)
	}
	return nil
}

// fillRow applies a severity fill color across a finding row.
func fillRow(f *excelize.File, sheet string, row, cols int, color string) error {
	if color == "" {
		return nil
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create severity style: %w", err)
	}

	from, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address cell: %w", err)
	}
	to, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return fmt.Errorf("failed to address cell: %w", err)
	}
	if err := f.SetCellStyle(sheet, from, to, style); err != nil {
		return fmt.Errorf("failed to style %s row %d: %w", sheet, row, err)
	}
	return nil
}
