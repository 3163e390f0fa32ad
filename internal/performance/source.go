package performance

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/contentaudit/contentaudit/internal/model"
)

// ErrNoMetrics is returned when a source has no metrics for the URL.
var ErrNoMetrics = errors.New("no performance metrics for url")

// metricsColumns is the expected column count of a metrics export:
// url, clicks, impressions, ctr, position, page_views, bounce_rate.
const metricsColumns = 7

// FileSource serves performance snapshots from a metrics CSV export.
// The file is parsed once at construction; lookups are in-memory.
type FileSource struct {
	snapshots map[string]model.PerformanceSnapshot
}

// NewFileSource parses a metrics CSV at path. The expected format is a
// header row followed by one row per URL:
//
//	url,clicks,impressions,ctr,position,page_views,bounce_rate
func NewFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided metrics path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open metrics file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	return ReadSource(f)
}

// ReadSource parses a metrics CSV from a reader.
func ReadSource(r io.Reader) (*FileSource, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read metrics csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("metrics csv is empty")
	}

	snapshots := make(map[string]model.PerformanceSnapshot, len(records)-1)
	for i, row := range records[1:] {
		if len(row) < metricsColumns {
			return nil, fmt.Errorf("metrics csv row %d: expected %d columns, got %d", i+1, metricsColumns, len(row))
		}

		snap, err := parseSnapshot(row)
		if err != nil {
			return nil, fmt.Errorf("metrics csv row %d: %w", i+1, err)
		}
		snapshots[strings.TrimSpace(row[0])] = snap
	}

	return &FileSource{snapshots: snapshots}, nil
}

// Snapshot returns the metrics for a URL, or ErrNoMetrics when absent.
func (s *FileSource) Snapshot(_ context.Context, url string) (*model.PerformanceSnapshot, error) {
	snap, ok := s.snapshots[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoMetrics, url)
	}
	return &snap, nil
}

// parseSnapshot converts one csv row into a snapshot.
func parseSnapshot(row []string) (model.PerformanceSnapshot, error) {
	clicks, err := parseInt(row[1], "clicks")
	if err != nil {
		return model.PerformanceSnapshot{}, err
	}
	impressions, err := parseInt(row[2], "impressions")
	if err != nil {
		return model.PerformanceSnapshot{}, err
	}
	ctr, err := parseFloat(row[3], "ctr")
	if err != nil {
		return model.PerformanceSnapshot{}, err
	}
	position, err := parseFloat(row[4], "position")
	if err != nil {
		return model.PerformanceSnapshot{}, err
	}
	pageViews, err := parseInt(row[5], "page_views")
	if err != nil {
		return model.PerformanceSnapshot{}, err
	}
	bounceRate, err := parseFloat(row[6], "bounce_rate")
	if err != nil {
		return model.PerformanceSnapshot{}, err
	}

	return model.PerformanceSnapshot{
		Clicks:      clicks,
		Impressions: impressions,
		CTR:         ctr,
		Position:    position,
		PageViews:   pageViews,
		BounceRate:  bounceRate,
	}, nil
}

func parseInt(s, field string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return v, nil
}

func parseFloat(s, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return v, nil
}

// Static is a map-backed source for tests and programmatic use.
type Static map[string]model.PerformanceSnapshot

// Snapshot returns the metrics for a URL, or ErrNoMetrics when absent.
func (s Static) Snapshot(_ context.Context, url string) (*model.PerformanceSnapshot, error) {
	snap, ok := s[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoMetrics, url)
	}
	return &snap, nil
}
