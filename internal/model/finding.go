package model

import "github.com/google/uuid"

// OverlapSignal is the structured payload attached to semantic-distance
// findings. Downstream derivation (cannibalization risks, merge suggestions)
// consumes this payload directly instead of re-parsing prose descriptions.
type OverlapSignal struct {
	// Entity is the shared topic entity both pages center on.
	Entity string `json:"entity"`

	// Distance is the semantic distance to the related page in [0, 1].
	// 0 means identical term profiles, 1 means no overlap at all.
	Distance float64 `json:"distance"`

	// URL is the related page the overlap was measured against.
	URL string `json:"url"`

	// SharedKeywords lists the terms both pages rank-worthy, sorted.
	SharedKeywords []string `json:"shared_keywords,omitempty"`
}

// Finding represents a single issue discovered by an audit phase.
// Findings carry everything an editor needs to understand and fix the issue
// without consulting the engine.
type Finding struct {
	// ID is a unique identifier for this finding occurrence.
	ID string `json:"id"`

	// Phase is the name of the phase that produced the finding.
	Phase string `json:"phase"`

	// Rule is the stable rule identifier (e.g. "title_missing").
	// Looked up in the rule catalog for severity and remediation metadata.
	Rule string `json:"rule"`

	// Severity is how badly this finding hurts the page.
	Severity Severity `json:"severity"`

	// Title is a short human-readable label for the finding.
	Title string `json:"title"`

	// Description explains what was observed on this specific page.
	Description string `json:"description"`

	// Rationale explains why the observation matters.
	Rationale string `json:"rationale,omitempty"`

	// Category groups findings for reporting (metadata, structure, ...).
	Category string `json:"category,omitempty"`

	// EstimatedImpact is the expected effect of fixing this finding
	// (high, medium, or low).
	EstimatedImpact string `json:"estimated_impact,omitempty"`

	// AutoFixable is true when the fix is mechanical enough to automate.
	AutoFixable bool `json:"auto_fixable"`

	// Element optionally references the affected element, e.g. a selector
	// or tag name.
	Element string `json:"element,omitempty"`

	// Suggestion optionally holds an example fix, e.g. a rewritten title.
	Suggestion string `json:"suggestion,omitempty"`

	// Overlap carries the structured payload for semantic-distance findings.
	// Nil for all other rules.
	Overlap *OverlapSignal `json:"overlap,omitempty"`
}

// NewFinding builds a Finding for a rule, filling severity, category,
// rationale, impact, auto-fix flag, and recommendation-derived fields from
// the rule catalog. Callers override occurrence specifics (Element,
// Suggestion, Severity, Overlap) on the returned value as needed.
func NewFinding(phase, rule, title, description string) Finding {
	info := GetRuleInfo(rule)
	return Finding{
		ID:              uuid.NewString(),
		Phase:           phase,
		Rule:            rule,
		Severity:        info.Severity,
		Title:           title,
		Description:     description,
		Rationale:       info.Rationale,
		Category:        info.Category,
		EstimatedImpact: info.EstimatedImpact,
		AutoFixable:     info.AutoFixable,
		Suggestion:      info.Recommendation,
	}
}

// SeverityCounts holds per-severity finding totals for a report.
type SeverityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// Add accumulates another set of counts into this one.
func (c *SeverityCounts) Add(other SeverityCounts) {
	c.Critical += other.Critical
	c.High += other.High
	c.Medium += other.Medium
	c.Low += other.Low
}

// Total returns the sum across all severities.
func (c SeverityCounts) Total() int {
	return c.Critical + c.High + c.Medium + c.Low
}

// CountBySeverity tallies findings per severity level.
// An empty or nil slice yields all-zero counts, never an error.
func CountBySeverity(findings []Finding) SeverityCounts {
	var counts SeverityCounts
	for _, f := range findings {
		switch f.Severity {
		case SeverityCritical:
			counts.Critical++
		case SeverityHigh:
			counts.High++
		case SeverityMedium:
			counts.Medium++
		case SeverityLow:
			counts.Low++
		}
	}
	return counts
}
