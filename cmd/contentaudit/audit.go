package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/contentaudit/contentaudit/internal/audit"
	"github.com/contentaudit/contentaudit/internal/config"
	"github.com/contentaudit/contentaudit/internal/content"
	"github.com/contentaudit/contentaudit/internal/database"
	"github.com/contentaudit/contentaudit/internal/export"
	"github.com/contentaudit/contentaudit/internal/log"
	"github.com/contentaudit/contentaudit/internal/model"
	"github.com/contentaudit/contentaudit/internal/performance"
	"github.com/contentaudit/contentaudit/internal/phase"
	"github.com/contentaudit/contentaudit/internal/snapshot"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [url...]",
		Short: "Audit web pages for content quality",
		Long: `Audit fetches one or more pages and scores them across weighted
evaluation phases:

- Metadata (title, meta description)
- Headings (H1 presence, hierarchy)
- Content depth (word count, readability, term balance)
- Links (internal and external linking)
- Images (presence, alt text)
- Structured data (JSON-LD, canonical, Open Graph)
- Semantic distance (overlap with related topic profiles)
- Fact validation (bonus phase checking root facts)

Each audit is saved to the project's snapshot database so score history
can be tracked and correlated with search performance.

Examples:
  # Audit a single page
  contentaudit audit --project my-blog https://example.com/article

  # Audit several pages concurrently
  contentaudit audit --project my-blog https://example.com/a https://example.com/b

  # Run only selected phases
  contentaudit audit --project my-blog --phases metadata,headings https://example.com/a

  # Attach search performance metrics from a CSV export
  contentaudit audit --project my-blog --performance metrics.csv https://example.com/a

  # Write a JSON report to a file without saving a snapshot
  contentaudit audit --project my-blog --json -o report.json --no-save https://example.com/a

Project file (.contentaudit.yaml) example:
  project: my-blog
  weights:
    metadata: 1.5
    images: 0.5
  facts:
    - entity: "Model S"
      attribute: "600 km range"
  topics:
    - url: https://example.com/other-article
      entity: "electric cars"
      keywords: [range, battery, charging]`,
		Args: cobra.ArbitraryArgs,
		RunE: runAuditCmd,
	}

	// Audit behavior flags
	cmd.Flags().StringP("project", "p", "",
		"Project id grouping the audits (overrides the project file)")
	cmd.Flags().StringSliceP("phases", "P", nil,
		"Comma-separated phase names to run (default: all phases)")
	cmd.Flags().StringP("language", "l", "",
		"Preferred content language hint (ISO 639-1, e.g. en, de)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each content fetch")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header sent with content fetches")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum response body size to read per fetch, in bytes")
	cmd.Flags().IntP("concurrency", "b", config.DefaultConcurrency,
		"Number of concurrent audits")

	// Input flags
	cmd.Flags().StringP("config", "c", "",
		"Project file path (default: .contentaudit.yaml in current or XDG config directory)")
	cmd.Flags().String("facts", "",
		"YAML fact sheet (list of entity/attribute entries; overrides the project file)")
	cmd.Flags().String("topics", "",
		"YAML topic profile list (overrides the project file)")
	cmd.Flags().String("performance", "",
		"Metrics CSV providing per-URL search performance (url,clicks,impressions,...)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().String("xlsx", "",
		"Additionally write an XLSX workbook to this path")

	// Persistence flags
	cmd.Flags().Bool("no-save", false,
		"Do not save audit snapshots to the database")
	cmd.Flags().String("db-dir", "",
		"Directory holding the snapshot database (default: XDG data directory)")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with secret sanitization
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAudit(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ProjectID, err = cmd.Flags().GetString("project")
	if err != nil {
		return nil, err
	}

	cfg.Phases, err = cmd.Flags().GetStringSlice("phases")
	if err != nil {
		return nil, err
	}

	cfg.Language, err = cmd.Flags().GetString("language")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.ProjectFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load project settings from the project file.
	// If user explicitly specified a path, error if not found.
	// If no path specified, silently use empty settings if no file found.
	explicitProjectPath := cfg.ProjectFilePath != ""
	projectPath := config.FindProjectFile(cfg.ProjectFilePath)

	if projectPath != "" {
		cfg.Project, err = config.LoadProjectFile(projectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load project file %s: %w", projectPath, err)
		}
	} else if explicitProjectPath {
		// User explicitly specified a project file that doesn't exist
		return nil, fmt.Errorf("project file not found: %s", cfg.ProjectFilePath)
	} else {
		cfg.Project = &config.ProjectFile{}
	}

	// The --project flag overrides the project file's id.
	if cfg.ProjectID == "" {
		cfg.ProjectID = cfg.Project.Project
	}

	// Standalone fact sheet and topic profile files override the project
	// file's sections.
	factsPath, err := cmd.Flags().GetString("facts")
	if err != nil {
		return nil, err
	}
	if factsPath != "" {
		cfg.Project.Facts, err = config.LoadFacts(factsPath)
		if err != nil {
			return nil, err
		}
	}

	topicsPath, err := cmd.Flags().GetString("topics")
	if err != nil {
		return nil, err
	}
	if topicsPath != "" {
		cfg.Project.Topics, err = config.LoadTopics(topicsPath)
		if err != nil {
			return nil, err
		}
	}

	cfg.PerformanceFile, err = cmd.Flags().GetString("performance")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.XLSXFile, err = cmd.Flags().GetString("xlsx")
	if err != nil {
		return nil, err
	}

	cfg.NoSave, err = cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments are the URLs to audit
	cfg.Targets = args

	return cfg, nil
}

// runAudit executes the audit for all configured targets.
func runAudit(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting audit",
		"project", cfg.ProjectID,
		"targets", cfg.Targets,
		"concurrency", cfg.Concurrency,
		"save", !cfg.NoSave,
	)

	// Open database connection unless saving is disabled
	var db *database.AuditDB
	if !cfg.NoSave {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	orchestrator, err := buildOrchestrator(cfg, logger)
	if err != nil {
		return err
	}

	requests := make([]*model.AuditRequest, 0, len(cfg.Targets))
	for _, target := range cfg.Targets {
		requests = append(requests, buildRequest(cfg, target))
	}

	if len(requests) > 1 && cfg.Concurrency > 1 {
		return runBatchAudit(ctx, cfg, orchestrator, requests, db, logger)
	}
	return runSequentialAudit(ctx, cfg, orchestrator, requests, db, logger)
}

// buildOrchestrator wires the content client, evaluators, and optional
// performance source into an audit orchestrator.
func buildOrchestrator(cfg *config.Config, logger *slog.Logger) (*audit.Orchestrator, error) {
	clientOpts := []content.ClientOption{
		content.WithTimeout(cfg.Timeout),
		content.WithUserAgent(cfg.UserAgent),
	}
	if cfg.MaxBodySize > 0 {
		clientOpts = append(clientOpts, content.WithMaxBodySize(cfg.MaxBodySize))
	}
	client := content.NewClient(clientOpts...)

	var phaseOpts []phase.Option
	if len(cfg.Project.Weights) > 0 {
		phaseOpts = append(phaseOpts, phase.WithWeights(cfg.Project.Weights))
	}
	evaluators := phase.DefaultEvaluators(phaseOpts...)

	orchestratorOpts := []audit.Option{
		audit.WithLogger(logger),
		audit.WithVersion(getVersion()),
	}

	if cfg.PerformanceFile != "" {
		source, err := performance.NewFileSource(cfg.PerformanceFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load performance metrics: %w", err)
		}
		orchestratorOpts = append(orchestratorOpts, audit.WithPerformanceSource(source))
	}

	return audit.New(client, evaluators, orchestratorOpts...)
}

// buildRequest creates the audit request for a single target URL.
func buildRequest(cfg *config.Config, target string) *model.AuditRequest {
	return &model.AuditRequest{
		ProjectID:             cfg.ProjectID,
		AuditType:             model.AuditTypeInternal,
		URL:                   target,
		Phases:                cfg.Phases,
		Language:              cfg.Language,
		IncludeFactValidation: len(cfg.Project.Facts) > 0,
		IncludePerformance:    cfg.PerformanceFile != "",
		RelatedURLs:           cfg.Project.RelatedURLs(),
		Related:               cfg.Project.Topics,
		Facts:                 cfg.Project.Facts,
	}
}

// runSequentialAudit audits targets one at a time.
func runSequentialAudit(ctx context.Context, cfg *config.Config, orchestrator *audit.Orchestrator, requests []*model.AuditRequest, db *database.AuditDB, logger *slog.Logger) error {
	for _, req := range requests {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Printf("Auditing %s...\n", req.URL)
		startTime := time.Now()

		report, err := orchestrator.Run(ctx, req)
		if err != nil {
			logger.Error("audit failed", "url", req.URL, "error", err)
			fmt.Fprintf(os.Stderr, "Audit error for %s: %v\n", req.URL, err)
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Audit completed in %s (score: %.1f/100)\n\n",
			elapsed.Round(time.Millisecond), report.OverallScore)

		// Generate and output report
		if err := outputAuditReport(cfg, report); err != nil {
			logger.Error("report failed", "url", req.URL, "error", err)
		}

		// Save to database if enabled
		if err := saveAuditReport(ctx, db, report, req.Scope, logger); err != nil {
			logger.Error("failed to save audit report", "url", req.URL, "error", err)
		}
	}

	return nil
}

// runBatchAudit audits multiple targets concurrently.
func runBatchAudit(ctx context.Context, cfg *config.Config, orchestrator *audit.Orchestrator, requests []*model.AuditRequest, db *database.AuditDB, logger *slog.Logger) error {
	fmt.Printf("Starting batch audit of %d targets (concurrency: %d)...\n\n",
		len(requests), cfg.Concurrency)

	startTime := time.Now()

	results := orchestrator.RunBatch(ctx, requests, cfg.Concurrency)

	var failed int
	for i, result := range results {
		if result.Err != nil {
			failed++
			logger.Error("audit failed", "url", result.Request.URL, "error", result.Err)
			fmt.Fprintf(os.Stderr, "[%d/%d] Audit error for %s: %v\n",
				i+1, len(results), result.Request.URL, result.Err)
			continue
		}

		fmt.Printf("[%d/%d] Audit completed: %s (score: %.1f/100)\n",
			i+1, len(results), result.Request.URL, result.Report.OverallScore)

		if err := outputAuditReport(cfg, result.Report); err != nil {
			logger.Error("report failed", "url", result.Request.URL, "error", err)
		}

		if err := saveAuditReport(ctx, db, result.Report, result.Request.Scope, logger); err != nil {
			logger.Error("failed to save audit report", "url", result.Request.URL, "error", err)
		}
	}

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch audit completed in %s (%d/%d succeeded)\n",
		elapsed.Round(time.Millisecond), len(results)-failed, len(results))

	return nil
}

// outputAuditReport outputs the audit report in the requested format.
func outputAuditReport(cfg *config.Config, report *model.Report) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		f, err := createOutputFile(cfg.ReportFile)
		if err != nil {
			return err
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// Additionally write the XLSX workbook when requested
	if cfg.XLSXFile != "" {
		if err := writeWorkbook(cfg.XLSXFile, report); err != nil {
			return err
		}
	}

	// JSON output (lossless report with all data)
	if cfg.JSONReport {
		writer := export.NewJSONWriter(output, export.WithPrettyPrint())
		_, err := writer.Write(report)
		return err
	}

	// Markdown output (default)
	writer := export.NewMarkdownWriter(output)
	_, err := writer.Write(report)
	return err
}

// createOutputFile creates the report output file, creating parent
// directories as needed. Reports may name internal URLs and drafts, so the
// file is owner-readable only.
func createOutputFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// writeWorkbook writes the XLSX workbook export of a report to path.
func writeWorkbook(path string, report *model.Report) error {
	data, err := export.Workbook(report)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}

	f, err := createOutputFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// saveAuditReport saves the audit report snapshot to the database.
// If db is nil, this function is a no-op.
func saveAuditReport(ctx context.Context, db *database.AuditDB, report *model.Report, topicID string, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	id, err := snapshot.SaveSnapshot(ctx, db, report, topicID)
	if err != nil {
		return err
	}

	logger.Info("audit snapshot saved", "url", report.URL, "snapshotID", id)
	return nil
}
