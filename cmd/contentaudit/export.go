package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/contentaudit/contentaudit/internal/config"
	"github.com/contentaudit/contentaudit/internal/database"
	"github.com/contentaudit/contentaudit/internal/export"
	"github.com/contentaudit/contentaudit/internal/model"
)

// Supported export formats.
const (
	formatCSV      = "csv"
	formatHTML     = "html"
	formatJSON     = "json"
	formatMarkdown = "markdown"
	formatXLSX     = "xlsx"
)

// defaultExportLimit bounds --zip and --list when no limit is given.
const defaultExportLimit = 20

// NewExportCmd creates the export command.
// This command exports saved audit reports from the database.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved audit reports",
		Long: `Export retrieves audit reports saved in the snapshot database and
writes them in the requested format.

By default the latest report of the project is exported. A specific
snapshot can be selected by id (use --list to see available ids).

Formats:
  csv       Findings as comma-separated rows
  html      Self-contained HTML report
  json      Lossless JSON report
  markdown  Markdown report with summary charts
  xlsx      Excel workbook with one sheet per report section

Examples:
  # Export the latest report as an Excel workbook
  contentaudit export --project my-blog --format xlsx -o report.xlsx

  # Export a specific snapshot by ID as HTML
  contentaudit export --id 5 --format html -o report.html

  # List saved snapshots for a project
  contentaudit export --project my-blog --list

  # Bundle the last 10 reports into a ZIP archive
  contentaudit export --project my-blog --zip --limit 10 -o reports.zip`,
		RunE: runExportCmd,
	}

	// Snapshot selection flags
	cmd.Flags().StringP("project", "p", "",
		"Project id (exports the project's latest report)")
	cmd.Flags().Int64P("id", "i", 0,
		"Export a specific snapshot by ID (use --list to see available IDs)")

	// Listing and bundling flags
	cmd.Flags().BoolP("list", "l", false,
		"List saved snapshots for the project")
	cmd.Flags().BoolP("zip", "z", false,
		"Bundle the project's recent reports into a ZIP archive")
	cmd.Flags().IntP("limit", "n", defaultExportLimit,
		"Maximum number of snapshots to list or bundle")

	// Output flags
	cmd.Flags().StringP("format", "f", formatJSON,
		"Export format: csv, html, json, markdown, or xlsx")
	cmd.Flags().StringP("output", "o", "",
		"Write export to specified file path (default: stdout; required for xlsx and zip)")

	// Database flag
	cmd.Flags().String("db-dir", "",
		"Directory holding the snapshot database (default: XDG data directory)")

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, _ []string) error {
	projectID, err := cmd.Flags().GetString("project")
	if err != nil {
		return err
	}

	snapshotID, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}

	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}

	bundle, err := cmd.Flags().GetBool("zip")
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format = strings.ToLower(format)

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	// Validate selection before touching the database
	if snapshotID == 0 && projectID == "" {
		return errors.New("either --project or --id is required")
	}
	if !isValidFormat(format) {
		return fmt.Errorf("unknown format %q (supported: csv, html, json, markdown, xlsx)", format)
	}

	// The binary formats cannot go to a terminal
	if outputPath == "" && (format == formatXLSX || bundle) {
		return errors.New("--output is required for xlsx and zip exports")
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if list {
		return listSnapshots(ctx, cmd, db, projectID, limit)
	}

	if bundle {
		return exportArchive(ctx, db, projectID, limit, outputPath)
	}

	report, err := loadReport(ctx, db, projectID, snapshotID)
	if err != nil {
		return err
	}

	return exportReport(report, format, outputPath)
}

// isValidFormat reports whether format names a supported export format.
func isValidFormat(format string) bool {
	switch format {
	case formatCSV, formatHTML, formatJSON, formatMarkdown, formatXLSX:
		return true
	}
	return false
}

// loadReport retrieves the report to export: by snapshot id when given,
// otherwise the project's latest.
func loadReport(ctx context.Context, db *database.AuditDB, projectID string, snapshotID int64) (*model.Report, error) {
	if snapshotID > 0 {
		report, err := db.GetReport(ctx, snapshotID)
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot %d: %w", snapshotID, err)
		}
		if report == nil {
			return nil, fmt.Errorf("snapshot %d not found", snapshotID)
		}
		return report, nil
	}

	report, err := db.LatestReport(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest report: %w", err)
	}
	if report == nil {
		return nil, fmt.Errorf("no saved reports for project %q (run 'contentaudit audit' first)", projectID)
	}
	return report, nil
}

// exportReport writes a single report in the requested format.
func exportReport(report *model.Report, format, outputPath string) error {
	// XLSX is built in memory and written as raw bytes
	if format == formatXLSX {
		data, err := export.Workbook(report)
		if err != nil {
			return fmt.Errorf("failed to build workbook: %w", err)
		}
		return writeExportFile(outputPath, data)
	}

	var output *os.File
	if outputPath != "" {
		f, err := createOutputFile(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer export.Writer
	switch format {
	case formatCSV:
		writer = export.NewCSVWriter(output)
	case formatHTML:
		writer = export.NewHTMLWriter(output)
	case formatMarkdown:
		writer = export.NewMarkdownWriter(output)
	default:
		writer = export.NewJSONWriter(output, export.WithPrettyPrint())
	}

	_, err := writer.Write(report)
	return err
}

// exportArchive bundles the project's recent reports into a ZIP file.
func exportArchive(ctx context.Context, db *database.AuditDB, projectID string, limit int, outputPath string) error {
	if projectID == "" {
		return errors.New("--project is required for zip exports")
	}

	rows, err := db.ListSnapshots(ctx, projectID, limit)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no saved reports for project %q (run 'contentaudit audit' first)", projectID)
	}

	reports := make([]*model.Report, 0, len(rows))
	for _, row := range rows {
		report, err := db.GetReport(ctx, row.ID)
		if err != nil {
			return fmt.Errorf("failed to load snapshot %d: %w", row.ID, err)
		}
		if report != nil {
			reports = append(reports, report)
		}
	}

	data, err := export.Archive(reports)
	if err != nil {
		return fmt.Errorf("failed to build archive: %w", err)
	}

	if err := writeExportFile(outputPath, data); err != nil {
		return err
	}

	fmt.Printf("Exported %d reports to %s\n", len(reports), outputPath)
	return nil
}

// listSnapshots prints the project's saved snapshots in a table.
func listSnapshots(ctx context.Context, cmd *cobra.Command, db *database.AuditDB, projectID string, limit int) error {
	if projectID == "" {
		return errors.New("--project is required for --list")
	}

	rows, err := db.ListSnapshots(ctx, projectID, limit)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(rows) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No saved snapshots for project %q\n", projectID)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSCORE\tURL\tFINDINGS")
	for _, row := range rows {
		url := ""
		if row.URL != nil {
			url = *row.URL
		}
		findings := row.CriticalCount + row.HighCount + row.MediumCount + row.LowCount
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%s\t%d\n",
			row.ID,
			row.CreatedAt.Format("2006-01-02 15:04"),
			row.OverallScore,
			url,
			findings,
		)
	}
	return w.Flush()
}

// writeExportFile writes raw export bytes to path, creating directories as
// needed.
func writeExportFile(path string, data []byte) error {
	f, err := createOutputFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
