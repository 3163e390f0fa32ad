package trend

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ReadMetricsCSV parses a date-keyed metrics export into click and
// impression series. The expected format is a header row followed by
// "date,clicks,impressions" rows with dates in YYYY-MM-DD form. Rows are
// returned in file order.
func ReadMetricsCSV(r io.Reader) (clicks, impressions []Point, err error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read metrics csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("metrics csv is empty")
	}

	// Tolerate files exported without a header row.
	rows := records
	if isMetricsHeader(records[0]) {
		rows = records[1:]
	}

	for i, row := range rows {
		if len(row) < 3 {
			return nil, nil, fmt.Errorf("metrics csv row %d: expected 3 columns, got %d", i+1, len(row))
		}

		date, err := time.Parse(dateKey, strings.TrimSpace(row[0]))
		if err != nil {
			return nil, nil, fmt.Errorf("metrics csv row %d: invalid date %q: %w", i+1, row[0], err)
		}

		clickValue, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("metrics csv row %d: invalid clicks %q: %w", i+1, row[1], err)
		}

		impressionValue, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("metrics csv row %d: invalid impressions %q: %w", i+1, row[2], err)
		}

		clicks = append(clicks, Point{Date: date, Value: clickValue})
		impressions = append(impressions, Point{Date: date, Value: impressionValue})
	}

	return clicks, impressions, nil
}

// isMetricsHeader reports whether a csv record looks like the header row
// rather than data.
func isMetricsHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	_, err := time.Parse(dateKey, strings.TrimSpace(record[0]))
	return err != nil
}
