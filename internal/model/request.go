package model

// Fact is a root-level entity/attribute statement expected to appear in
// compliant content, e.g. {Entity: "Model S", Attribute: "600 km range"}.
type Fact struct {
	// Entity is the subject the fact is about.
	Entity string `json:"entity" yaml:"entity"`

	// Attribute is the property or value expected to be stated. May be
	// empty, in which case mentioning the entity alone satisfies the fact.
	Attribute string `json:"attribute,omitempty" yaml:"attribute,omitempty"`
}

// TopicProfile summarizes a related content item for semantic comparison.
// Profiles come from the caller (project file or previous audit snapshots);
// the engine never fetches related pages itself.
type TopicProfile struct {
	// URL identifies the related page.
	URL string `json:"url" yaml:"url"`

	// Entity is the topic entity the related page centers on.
	Entity string `json:"entity" yaml:"entity"`

	// Keywords are the terms that characterize the related page.
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// AuditRequest describes a single audit: what to fetch, which phases to run,
// and which optional inputs to use.
//
// Design decision: The request carries related-content profiles and facts
// as data rather than having the engine look them up, because:
// 1. It keeps the engine free of storage dependencies
// 2. It preserves the one-fetch-per-audit rule
// 3. Callers control exactly what the audit may compare against
type AuditRequest struct {
	// ProjectID groups audits belonging to the same content project.
	// Required.
	ProjectID string `json:"project_id"`

	// AuditType is internal or external. Empty defaults to internal.
	AuditType AuditType `json:"audit_type,omitempty"`

	// Scope optionally narrows the audit to a site section or topic id.
	Scope string `json:"scope,omitempty"`

	// URL is the page to fetch and audit.
	URL string `json:"url,omitempty"`

	// Phases lists the phase names to run. Empty means all registered
	// phases in registration order.
	Phases []string `json:"phases,omitempty"`

	// Depth is reserved for future section-level audits. The engine
	// currently audits exactly one page regardless of depth.
	Depth int `json:"depth,omitempty"`

	// Language is the preferred content language hint. The resolved
	// language of the fetched content wins when they disagree.
	Language string `json:"language,omitempty"`

	// IncludeFactValidation enables the fact-validation bonus phase.
	IncludeFactValidation bool `json:"include_fact_validation,omitempty"`

	// IncludePerformance asks the orchestrator to resolve a performance
	// snapshot for the audited URL.
	IncludePerformance bool `json:"include_performance,omitempty"`

	// RelatedURLs lists pages known to be topically adjacent.
	RelatedURLs []string `json:"related_urls,omitempty"`

	// Related holds the semantic profiles of related pages. Usually one
	// per entry of RelatedURLs, but callers may supply any set.
	Related []TopicProfile `json:"related,omitempty"`

	// Facts are the root entity/attribute facts for knowledge-gap
	// detection and the fact-validation phase.
	Facts []Fact `json:"facts,omitempty"`
}
