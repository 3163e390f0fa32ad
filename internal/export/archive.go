package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/contentaudit/contentaudit/internal/model"
)

// Archive bundles the exports of multiple reports into one ZIP buffer.
// Each report contributes a folder named after its id containing
// report.json, findings.csv, report.html, and report.xlsx. The returned
// bytes begin with the standard ZIP signature ("PK").
func Archive(reports []*model.Report) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, report := range reports {
		if err := addReportEntries(zw, report); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// addReportEntries writes one report's four export files into the archive.
func addReportEntries(zw *zip.Writer, report *model.Report) error {
	entries := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"report.json", func(w io.Writer) error {
			_, err := NewJSONWriter(w, WithPrettyPrint()).Write(report)
			return err
		}},
		{"findings.csv", func(w io.Writer) error {
			_, err := NewCSVWriter(w).Write(report)
			return err
		}},
		{"report.html", func(w io.Writer) error {
			_, err := NewHTMLWriter(w).Write(report)
			return err
		}},
		{"report.xlsx", func(w io.Writer) error {
			data, err := Workbook(report)
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		}},
	}

	for _, entry := range entries {
		path := report.ID + "/" + entry.name
		fw, err := zw.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create archive entry %s: %w", path, err)
		}
		if err := entry.write(fw); err != nil {
			return fmt.Errorf("failed to write archive entry %s: %w", path, err)
		}
	}
	return nil
}
