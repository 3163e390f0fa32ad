package model

import "time"

// AuditType distinguishes audits of our own content from audits of
// competitor or reference content.
type AuditType string

const (
	// AuditTypeInternal marks an audit of content we own and can edit.
	AuditTypeInternal AuditType = "internal"

	// AuditTypeExternal marks an audit of third-party content used for
	// comparison. External reports are never the target of fix workflows.
	AuditTypeExternal AuditType = "external"
)

// PhaseResult is the scored outcome of a single audit phase.
//
// Invariants: Score is always within [0, 100], and TotalChecks is greater
// than zero for any phase that actually ran. A phase that failed still
// produces a PhaseResult (zero score, one critical finding) so consumers can
// rely on every requested phase being present.
type PhaseResult struct {
	// Phase is the name of the phase that produced this result.
	Phase string `json:"phase"`

	// Score is the bounded phase score in [0, 100].
	Score float64 `json:"score"`

	// Weight is the phase's share in the overall score. Zero marks a bonus
	// phase whose findings count but whose score does not.
	Weight float64 `json:"weight"`

	// PassedChecks is the number of checks that produced no finding.
	PassedChecks int `json:"passed_checks"`

	// TotalChecks is the number of checks the phase performed. Always > 0
	// for a phase that ran.
	TotalChecks int `json:"total_checks"`

	// Findings lists the issues the phase discovered, worst first is NOT
	// guaranteed; order follows check order within the phase.
	Findings []Finding `json:"findings"`

	// Summary is a one-line human-readable outcome of the phase.
	Summary string `json:"summary,omitempty"`
}

// MergeSuggestion recommends consolidating two pages whose term profiles
// overlap almost completely.
type MergeSuggestion struct {
	// SourceURL is the audited page.
	SourceURL string `json:"source_url"`

	// TargetURL is the related page it should be merged with.
	TargetURL string `json:"target_url"`

	// Overlap is the percentage overlap between the two pages, in [0, 100].
	Overlap float64 `json:"overlap"`

	// Reason explains the suggestion in one sentence.
	Reason string `json:"reason"`

	// Action is the suggested action; currently always "merge".
	Action string `json:"action"`
}

// CannibalizationRisk flags a group of pages competing for the same entity
// and keywords, splitting clicks and ranking signals between them.
type CannibalizationRisk struct {
	// Entity is the shared topic entity the pages compete on.
	Entity string `json:"entity"`

	// URLs lists the affected pages, deduplicated and sorted.
	URLs []string `json:"urls"`

	// Keywords is the union of shared keywords across the group, sorted.
	Keywords []string `json:"keywords,omitempty"`

	// Severity is the worst severity among the findings in the group.
	Severity Severity `json:"severity"`

	// Recommendation explains how to resolve the competition.
	Recommendation string `json:"recommendation"`
}

// Prerequisites records which optional inputs were available to the audit.
// Consumers use these flags to distinguish "checked and fine" from "could
// not be checked".
type Prerequisites struct {
	// ContentFetched is true when the page was fetched and parsed.
	// A report always has this set; a failed fetch produces no report.
	ContentFetched bool `json:"content_fetched"`

	// FactsProvided is true when the request carried root facts for
	// knowledge-gap detection.
	FactsProvided bool `json:"facts_provided"`

	// PerformanceLinked is true when a performance snapshot was resolved.
	PerformanceLinked bool `json:"performance_linked"`
}

// PerformanceSnapshot mirrors the external performance metrics of the
// audited URL at audit time. All values are point-in-time copies; trend
// analysis uses the full time series instead.
type PerformanceSnapshot struct {
	// Clicks is the search click count over the reporting window.
	Clicks int64 `json:"clicks"`

	// Impressions is the search impression count over the window.
	Impressions int64 `json:"impressions"`

	// CTR is the click-through rate as a fraction (0.042 = 4.2%).
	CTR float64 `json:"ctr"`

	// Position is the average search result position.
	Position float64 `json:"position"`

	// PageViews is the analytics page-view count over the window.
	PageViews int64 `json:"page_views"`

	// BounceRate is the analytics bounce rate as a fraction.
	BounceRate float64 `json:"bounce_rate"`
}

// Report is the main audit result structure. It contains everything a single
// audit run produced: per-phase results, the aggregated score, cross-phase
// derivations, and run metadata.
//
// Design decision: We use a single large struct rather than many small ones
// to simplify serialization and database storage. Cross-phase derivations
// (merge suggestions, cannibalization risks, missing topics) live beside the
// phase results because they are computed from them and share their
// lifecycle.
type Report struct {
	// === Identity ===

	// ID uniquely identifies this audit run.
	ID string `json:"id"`

	// ProjectID groups reports belonging to the same content project.
	ProjectID string `json:"project_id"`

	// AuditType is internal or external.
	AuditType AuditType `json:"audit_type"`

	// URL is the audited page. Empty for audits of inline content.
	URL string `json:"url,omitempty"`

	// === Scores ===

	// OverallScore is the weight-proportional average of phase scores,
	// in [0, 100]. Bonus phases (weight 0) are excluded from the average.
	OverallScore float64 `json:"overall_score"`

	// PhaseResults holds one entry per requested phase, in request order.
	// Failed phases appear with a zero score, never silently missing.
	PhaseResults []PhaseResult `json:"phase_results"`

	// === Cross-phase derivations ===

	// MergeSuggestions lists near-duplicate related pages worth merging.
	MergeSuggestions []MergeSuggestion `json:"merge_suggestions,omitempty"`

	// CannibalizationRisks lists entity/keyword competition groups.
	CannibalizationRisks []CannibalizationRisk `json:"cannibalization_risks,omitempty"`

	// MissingTopics lists root facts absent from the content, formatted
	// "Entity — Attribute", in fact order.
	MissingTopics []string `json:"missing_topics,omitempty"`

	// === Run metadata ===

	// Language is the resolved content language (ISO 639-1 base code).
	Language string `json:"language"`

	// Version is the engine version tag that produced the report.
	Version string `json:"version"`

	// Prerequisites records which optional inputs were available.
	Prerequisites Prerequisites `json:"prerequisites"`

	// Performance is the metrics snapshot at audit time. Nil when
	// performance data was not requested or not available.
	Performance *PerformanceSnapshot `json:"performance,omitempty"`

	// CreatedAt is when the audit ran.
	CreatedAt time.Time `json:"created_at"`

	// Duration is the total audit wall time, fetch included.
	Duration time.Duration `json:"duration"`
}

// AllFindings flattens the findings of every phase in phase order.
func (r *Report) AllFindings() []Finding {
	var all []Finding
	for _, pr := range r.PhaseResults {
		all = append(all, pr.Findings...)
	}
	return all
}

// SeverityCounts tallies findings across all phases.
func (r *Report) SeverityCounts() SeverityCounts {
	return CountBySeverity(r.AllFindings())
}
