package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values are chosen for auditing ordinary clearnet pages; every one of
// them can be overridden via CLI flags or the project file.
const (
	// DefaultTimeout is the per-request timeout for the single content
	// fetch. 30 seconds is generous for one HTML page while still failing
	// fast enough for interactive use.
	DefaultTimeout = 30 * time.Second

	// DefaultConcurrency is the number of concurrent audits when several
	// URLs are passed. Audits are one fetch plus CPU-bound evaluation, so
	// a small pool keeps throughput high without hammering one host.
	DefaultConcurrency = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "contentaudit"

	// DefaultUserAgent identifies contentaudit in HTTP requests.
	// Using a descriptive User-Agent is good practice and allows operators
	// to identify audit traffic in their logs.
	DefaultUserAgent = "contentaudit/1.0 (+https://github.com/contentaudit/contentaudit)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 5MB is sufficient for most HTML pages while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultMaxLagDays bounds the trend command's lag grid search.
	// Content changes rarely take longer than a month to show up in
	// search metrics.
	DefaultMaxLagDays = 30

	// DefaultLagStepDays is the trend command's lag search step.
	DefaultLagStepDays = 1
)

// Config holds all configuration options for contentaudit.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., FetchConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
// If the configuration grows significantly, consider refactoring into sub-structs.
type Config struct {
	// ProjectID groups audits belonging to the same content project.
	// Required for auditing; reports and snapshots are keyed by it.
	ProjectID string

	// Targets is the list of URLs to audit. Must contain at least one
	// entry for the audit command.
	Targets []string

	// Phases lists the phase names to run. Empty means all registered
	// phases.
	Phases []string

	// Language is the preferred content language hint (ISO 639-1).
	// The resolved language of the fetched content wins when they disagree.
	Language string

	// Timeout is the per-request timeout for the content fetch.
	Timeout time.Duration

	// UserAgent is sent with the content fetch.
	UserAgent string

	// MaxBodySize limits the response body size read per fetch.
	// A value of 0 means use the default (DefaultMaxBodySize).
	MaxBodySize int64

	// Concurrency is the number of concurrent audits when several targets
	// are passed.
	Concurrency int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of the Markdown
	// summary. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport forces Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// XLSXFile, when set, additionally writes the workbook export here.
	XLSXFile string

	// NoSave disables snapshot persistence for this run.
	NoSave bool

	// DBDir is the directory holding the snapshot database.
	// Defaults to the XDG data directory.
	DBDir string

	// PerformanceFile is an optional metrics CSV
	// (url,clicks,impressions,ctr,position,page_views,bounce_rate)
	// used to resolve performance snapshots.
	PerformanceFile string

	// ProjectFilePath is the path to the project file.
	// If empty, the tool searches for .contentaudit.yaml in the current
	// directory and then in the XDG config directory.
	ProjectFilePath string

	// Project holds per-project settings loaded from the project file:
	// phase weight overrides, fact sheets, and related topic profiles.
	Project *ProjectFile
}

// NewConfig returns a Config populated with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		Concurrency: DefaultConcurrency,
		DBDir:       XDGDataDir(),
		Project:     &ProjectFile{},
	}
}

// XDGDataDir returns the XDG data directory for contentaudit.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/contentaudit
// On macOS: ~/Library/Application Support/contentaudit
// On Windows: %LOCALAPPDATA%\contentaudit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for contentaudit.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/contentaudit
// On macOS: ~/Library/Application Support/contentaudit
// On Windows: %APPDATA%\contentaudit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid for an audit run.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any auditing begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return ErrNoProject
	}

	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// Concurrency must be positive; zero would mean no audits run
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// MaxBodySize must be non-negative; 0 means use the default
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
