package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/contentaudit/contentaudit/internal/model"
	"github.com/contentaudit/contentaudit/internal/snapshot"
	"github.com/contentaudit/contentaudit/internal/trend"
)

// dbFileName is the SQLite database file created inside the data directory.
const dbFileName = "contentaudit.db"

// AuditDB provides SQLite-based storage for audit snapshots.
// It manages connection pooling and provides methods for CRUD operations.
//
// Design decision: We store the full report JSON beside the denormalized
// snapshot columns. The columns answer history and trend queries without
// deserializing anything; the JSON lets the export command rebuild any
// format later. The in-memory Report stays the source of truth - rows are
// projections, never edited in place.
type AuditDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures AuditDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an AuditDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*AuditDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to refuse creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer; a single connection avoids lock
	// contention between inserts and history queries.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &AuditDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := adb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return adb, nil
}

// Close closes the database connection.
func (adb *AuditDB) Close() error {
	return adb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (adb *AuditDB) createTables() error {
	schema := `
	-- Unified audit snapshots: one row per completed audit run.
	CREATE TABLE IF NOT EXISTS audit_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id TEXT NOT NULL,
		url TEXT,
		topic_id TEXT,
		audit_type TEXT NOT NULL,
		overall_score REAL NOT NULL,
		language TEXT,
		version TEXT,
		report_json TEXT NOT NULL,
		phase_scores TEXT NOT NULL,
		phase_weights TEXT,
		critical_count INTEGER NOT NULL DEFAULT 0,
		high_count INTEGER NOT NULL DEFAULT 0,
		medium_count INTEGER NOT NULL DEFAULT 0,
		low_count INTEGER NOT NULL DEFAULT 0,
		clicks INTEGER,
		impressions INTEGER,
		ctr REAL,
		position REAL,
		page_views INTEGER,
		bounce_rate REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_project ON audit_snapshots(project_id);
	CREATE INDEX IF NOT EXISTS idx_snapshots_url ON audit_snapshots(url);
	CREATE INDEX IF NOT EXISTS idx_snapshots_created ON audit_snapshots(created_at);
	`

	_, err := adb.db.ExecContext(context.Background(), schema)
	return err
}

// InsertSnapshot stores one snapshot row and returns its generated id.
// Implements snapshot.Store.
func (adb *AuditDB) InsertSnapshot(ctx context.Context, row *snapshot.Row) (int64, error) {
	scoresJSON, err := json.Marshal(row.PhaseScores)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize phase scores: %w", err)
	}

	// A nil weights map stores NULL; the column distinguishes "no phases"
	// from "phases without weight".
	var weightsJSON any
	if row.PhaseWeights != nil {
		data, err := json.Marshal(row.PhaseWeights)
		if err != nil {
			return 0, fmt.Errorf("failed to serialize phase weights: %w", err)
		}
		weightsJSON = string(data)
	}

	query := `
	INSERT INTO audit_snapshots (
		project_id, url, topic_id, audit_type, overall_score, language, version,
		report_json, phase_scores, phase_weights,
		critical_count, high_count, medium_count, low_count,
		clicks, impressions, ctr, position, page_views, bounce_rate,
		created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := adb.db.ExecContext(ctx, query,
		row.ProjectID,
		row.URL,
		row.TopicID,
		row.AuditType,
		row.OverallScore,
		row.Language,
		row.Version,
		row.ReportJSON,
		string(scoresJSON),
		weightsJSON,
		row.CriticalCount,
		row.HighCount,
		row.MediumCount,
		row.LowCount,
		row.Clicks,
		row.Impressions,
		row.CTR,
		row.Position,
		row.PageViews,
		row.BounceRate,
		row.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert audit snapshot: %w", err)
	}

	return result.LastInsertId()
}

// GetSnapshot retrieves a snapshot row by id. Returns nil when absent.
func (adb *AuditDB) GetSnapshot(ctx context.Context, id int64) (*snapshot.Row, error) {
	query := selectColumns + ` WHERE id = ?`
	row, err := scanRow(adb.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit snapshot: %w", err)
	}
	return row, nil
}

// LatestSnapshot retrieves the most recent snapshot for a project.
// Returns nil when the project has none.
func (adb *AuditDB) LatestSnapshot(ctx context.Context, projectID string) (*snapshot.Row, error) {
	query := selectColumns + ` WHERE project_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`
	row, err := scanRow(adb.db.QueryRowContext(ctx, query, projectID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest audit snapshot: %w", err)
	}
	return row, nil
}

// ListSnapshots retrieves a project's snapshots, newest first. A limit of 0
// returns all of them.
func (adb *AuditDB) ListSnapshots(ctx context.Context, projectID string, limit int) ([]*snapshot.Row, error) {
	query := selectColumns + ` WHERE project_id = ? ORDER BY created_at DESC, id DESC`
	args := []any{projectID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := adb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit snapshots: %w", err)
	}
	defer rows.Close()

	var results []*snapshot.Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit snapshot: %w", err)
		}
		results = append(results, row)
	}

	return results, rows.Err()
}

// GetReport rebuilds the full report stored with a snapshot.
// Returns nil when the snapshot is absent.
func (adb *AuditDB) GetReport(ctx context.Context, id int64) (*model.Report, error) {
	row, err := adb.GetSnapshot(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	return decodeReport(row.ReportJSON)
}

// LatestReport rebuilds the most recent report of a project.
// Returns nil when the project has none.
func (adb *AuditDB) LatestReport(ctx context.Context, projectID string) (*model.Report, error) {
	row, err := adb.LatestSnapshot(ctx, projectID)
	if err != nil || row == nil {
		return nil, err
	}
	return decodeReport(row.ReportJSON)
}

// ScoreHistory returns a project's per-day overall scores in date order,
// ready to feed the trend correlator. Days with several audits average.
func (adb *AuditDB) ScoreHistory(ctx context.Context, projectID string) ([]trend.Point, error) {
	query := `
	SELECT date(created_at), AVG(overall_score)
	FROM audit_snapshots
	WHERE project_id = ?
	GROUP BY date(created_at)
	ORDER BY date(created_at)
	`

	rows, err := adb.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query score history: %w", err)
	}
	defer rows.Close()

	var points []trend.Point
	for rows.Next() {
		var day string
		var score float64
		if err := rows.Scan(&day, &score); err != nil {
			return nil, fmt.Errorf("failed to scan score history: %w", err)
		}

		date, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, fmt.Errorf("failed to parse history date %q: %w", day, err)
		}
		points = append(points, trend.Point{Date: date, Value: score})
	}

	return points, rows.Err()
}

// selectColumns is the shared column list of snapshot queries, matching the
// scan order in scanRow.
const selectColumns = `
	SELECT id, project_id, url, topic_id, audit_type, overall_score, language, version,
		report_json, phase_scores, phase_weights,
		critical_count, high_count, medium_count, low_count,
		clicks, impressions, ctr, position, page_views, bounce_rate,
		created_at
	FROM audit_snapshots`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRow reads one snapshot row from a query result.
func scanRow(scanner rowScanner) (*snapshot.Row, error) {
	var row snapshot.Row
	var scoresJSON string
	var weightsJSON sql.NullString
	var createdAt string

	err := scanner.Scan(
		&row.ID,
		&row.ProjectID,
		&row.URL,
		&row.TopicID,
		&row.AuditType,
		&row.OverallScore,
		&row.Language,
		&row.Version,
		&row.ReportJSON,
		&scoresJSON,
		&weightsJSON,
		&row.CriticalCount,
		&row.HighCount,
		&row.MediumCount,
		&row.LowCount,
		&row.Clicks,
		&row.Impressions,
		&row.CTR,
		&row.Position,
		&row.PageViews,
		&row.BounceRate,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(scoresJSON), &row.PhaseScores); err != nil {
		return nil, fmt.Errorf("failed to parse phase scores: %w", err)
	}
	if weightsJSON.Valid {
		if err := json.Unmarshal([]byte(weightsJSON.String), &row.PhaseWeights); err != nil {
			return nil, fmt.Errorf("failed to parse phase weights: %w", err)
		}
	}

	row.CreatedAt = parseTimestamp(createdAt)
	return &row, nil
}

// decodeReport parses a stored report payload.
func decodeReport(reportJSON string) (*model.Report, error) {
	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse stored report: %w", err)
	}
	return &report, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Return zero time if no format matches
	// This is a fallback to avoid breaking functionality for edge cases
	return time.Time{}
}
