package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/contentaudit/contentaudit/internal/model"
)

// Row is one audit_snapshots record: the flattened, queryable projection of
// a report plus the full report payload for lossless rebuilds.
//
// Nullable columns are pointers. URL and TopicID are nil when the audit had
// none; the six performance mirrors are nil together when the report
// carries no performance snapshot.
type Row struct {
	// ID is the store-assigned identifier. Zero until inserted.
	ID int64

	// ProjectID groups snapshots of the same content project.
	ProjectID string

	// URL is the audited page. Nil for audits of inline content.
	URL *string

	// TopicID links the snapshot to a topic map entry. Nil when the caller
	// supplied none.
	TopicID *string

	// AuditType is internal or external.
	AuditType string

	// OverallScore is the report's aggregated score.
	OverallScore float64

	// Language is the resolved content language.
	Language string

	// Version is the engine version that produced the report.
	Version string

	// ReportJSON is the full serialized report.
	ReportJSON string

	// PhaseScores maps phase name to score. Always non-nil; empty when no
	// phases ran.
	PhaseScores map[string]float64

	// PhaseWeights maps phase name to weight. Nil when no phases ran, so
	// the stored column is null rather than an empty object.
	PhaseWeights map[string]float64

	// Per-severity finding counts across all phases.
	CriticalCount int
	HighCount     int
	MediumCount   int
	LowCount      int

	// Performance mirrors. All nil when the report has no snapshot.
	Clicks      *int64
	Impressions *int64
	CTR         *float64
	Position    *float64
	PageViews   *int64
	BounceRate  *float64

	// CreatedAt is when the audit ran.
	CreatedAt time.Time
}

// BuildRow flattens a report into its snapshot row. Pure: no I/O, no store.
// An empty topicID leaves the topic column null.
func BuildRow(r *model.Report, topicID string) (*Row, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report: %w", err)
	}

	counts := r.SeverityCounts()
	row := &Row{
		ProjectID:     r.ProjectID,
		AuditType:     string(r.AuditType),
		OverallScore:  r.OverallScore,
		Language:      r.Language,
		Version:       r.Version,
		ReportJSON:    string(payload),
		PhaseScores:   ExtractPhaseScores(r),
		PhaseWeights:  ExtractPhaseWeights(r),
		CriticalCount: counts.Critical,
		HighCount:     counts.High,
		MediumCount:   counts.Medium,
		LowCount:      counts.Low,
		CreatedAt:     r.CreatedAt,
	}

	if r.URL != "" {
		row.URL = ptr(r.URL)
	}
	if topicID != "" {
		row.TopicID = ptr(topicID)
	}

	if p := r.Performance; p != nil {
		row.Clicks = ptr(p.Clicks)
		row.Impressions = ptr(p.Impressions)
		row.CTR = ptr(p.CTR)
		row.Position = ptr(p.Position)
		row.PageViews = ptr(p.PageViews)
		row.BounceRate = ptr(p.BounceRate)
	}

	return row, nil
}

// ExtractPhaseScores maps phase name to score, one entry per phase result.
// Returns an empty, non-nil map when no phases ran.
func ExtractPhaseScores(r *model.Report) map[string]float64 {
	scores := make(map[string]float64, len(r.PhaseResults))
	for _, pr := range r.PhaseResults {
		scores[pr.Phase] = pr.Score
	}
	return scores
}

// ExtractPhaseWeights maps phase name to weight. Returns nil when no phases
// ran; the distinction between "no phases" and "phases without weight"
// matters to consumers of the stored column.
func ExtractPhaseWeights(r *model.Report) map[string]float64 {
	if len(r.PhaseResults) == 0 {
		return nil
	}

	weights := make(map[string]float64, len(r.PhaseResults))
	for _, pr := range r.PhaseResults {
		weights[pr.Phase] = pr.Weight
	}
	return weights
}

// ptr returns a pointer to a copy of v, so rows never alias report memory.
func ptr[T any](v T) *T {
	return &v
}
