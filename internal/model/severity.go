package model

import (
	"encoding/json"
	"strings"
)

// Severity represents how badly a finding hurts content quality or search
// visibility. It drives score deductions, report ordering, and export colors.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output, and custom JSON marshaling keeps serialized reports
// readable while preserving the ordering semantics of the integer form.
type Severity int

const (
	// SeverityLow indicates minor issues with limited impact.
	// Examples: a slightly short meta description, a missing external link.
	// Fixing these is worthwhile but rarely moves rankings on its own.
	SeverityLow Severity = iota

	// SeverityMedium indicates moderate issues that warrant attention.
	// Examples: thin paragraphs, images without alt text, keyword stuffing.
	// These accumulate and noticeably drag a page down.
	SeverityMedium

	// SeverityHigh indicates serious issues that significantly hurt the page.
	// Examples: missing meta description, duplicate H1s, heavy topic overlap
	// with another page. These should be fixed before publishing.
	SeverityHigh

	// SeverityCritical indicates severe issues that undermine the whole audit
	// target. Examples: missing title, unparseable structured data, a phase
	// that could not run at all. These require immediate attention.
	SeverityCritical
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a severity name to its Severity value.
// Matching is case-insensitive. Unknown names return SeverityLow and false.
func ParseSeverity(name string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "low":
		return SeverityLow, true
	case "medium":
		return SeverityMedium, true
	case "high":
		return SeverityHigh, true
	case "critical":
		return SeverityCritical, true
	default:
		return SeverityLow, false
	}
}

// MarshalJSON serializes the severity as its lower-case name so reports stay
// readable without a legend.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses the lower-case name form written by MarshalJSON.
// This keeps Report JSON round-trippable.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, ok := ParseSeverity(name)
	if !ok {
		parsed = SeverityLow
	}
	*s = parsed
	return nil
}
