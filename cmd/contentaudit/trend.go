package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/contentaudit/contentaudit/internal/config"
	"github.com/contentaudit/contentaudit/internal/database"
	"github.com/contentaudit/contentaudit/internal/trend"
)

// NewTrendCmd creates the trend command.
// This command correlates saved audit scores with search performance metrics.
func NewTrendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Correlate audit scores with search performance",
		Long: `Trend correlates a project's audit score history with daily search
performance metrics (clicks and impressions).

Audit scores come from the snapshot database; metrics come from a CSV
export with one row per day:

  date,clicks,impressions
  2026-01-01,120,3400
  2026-01-02,135,3600

The command reports the Pearson correlation coefficient for each metric
and searches for the lag (in days) at which content changes show up
most strongly in the metrics. At least three days of overlapping data
are required for a meaningful coefficient.

Examples:
  # Correlate scores with metrics
  contentaudit trend --project my-blog --metrics daily.csv

  # Search lags up to 60 days in 7-day steps
  contentaudit trend --project my-blog --metrics daily.csv --max-lag 60 --step 7`,
		RunE: runTrendCmd,
	}

	cmd.Flags().StringP("project", "p", "",
		"Project id whose score history to correlate (required)")
	cmd.Flags().StringP("metrics", "m", "",
		"Daily metrics CSV file (date,clicks,impressions) (required)")
	cmd.Flags().Int("max-lag", config.DefaultMaxLagDays,
		"Maximum lag in days to search")
	cmd.Flags().Int("step", config.DefaultLagStepDays,
		"Lag search step in days")
	cmd.Flags().String("db-dir", "",
		"Directory holding the snapshot database (default: XDG data directory)")

	return cmd
}

// runTrendCmd executes the trend command.
func runTrendCmd(cmd *cobra.Command, _ []string) error {
	projectID, err := cmd.Flags().GetString("project")
	if err != nil {
		return err
	}
	if projectID == "" {
		return errors.New("--project is required")
	}

	metricsPath, err := cmd.Flags().GetString("metrics")
	if err != nil {
		return err
	}
	if metricsPath == "" {
		return errors.New("--metrics is required")
	}

	maxLag, err := cmd.Flags().GetInt("max-lag")
	if err != nil {
		return err
	}

	step, err := cmd.Flags().GetInt("step")
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

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return runTrend(ctx, cmd, db, projectID, metricsPath, maxLag, step)
}

// runTrend loads the score history and metrics, then prints correlation
// results.
func runTrend(ctx context.Context, cmd *cobra.Command, db *database.AuditDB, projectID, metricsPath string, maxLag, step int) error {
	scores, err := db.ScoreHistory(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to load score history: %w", err)
	}
	if len(scores) == 0 {
		return fmt.Errorf("no audit history for project %q (run 'contentaudit audit' first)", projectID)
	}

	clicks, impressions, err := readMetricsFile(metricsPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Trend analysis for project %q\n", projectID)
	fmt.Fprintf(out, "  audit days:   %d\n", len(scores))
	fmt.Fprintf(out, "  metric days:  %d\n\n", len(clicks))

	result := trend.Correlate(scores, clicks, impressions)
	fmt.Fprintf(out, "Correlation (no lag)\n")
	fmt.Fprintf(out, "  clicks:      %+.3f\n", trend.Correlation(scores, clicks))
	fmt.Fprintf(out, "  impressions: %+.3f\n", trend.Correlation(scores, impressions))
	fmt.Fprintf(out, "  strongest:   %s (%+.3f)\n", result.Metric, result.Coefficient)
	fmt.Fprintf(out, "  %s\n\n", result.Insight)

	clickLag, clickR := trend.OptimalLag(scores, clicks, maxLag, step)
	imprLag, imprR := trend.OptimalLag(scores, impressions, maxLag, step)
	fmt.Fprintf(out, "Optimal lag (0-%d days, step %d)\n", maxLag, step)
	fmt.Fprintf(out, "  clicks:      %d days (%+.3f)\n", clickLag, clickR)
	fmt.Fprintf(out, "  impressions: %d days (%+.3f)\n", imprLag, imprR)

	return nil
}

// readMetricsFile reads the daily metrics CSV from path.
func readMetricsFile(path string) (clicks, impressions []trend.Point, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open metrics file: %w", err)
	}
	defer f.Close()

	clicks, impressions, err = trend.ReadMetricsCSV(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read metrics file %s: %w", path, err)
	}
	return clicks, impressions, nil
}
