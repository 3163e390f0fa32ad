package model

import (
	"encoding/json"
	"testing"
)

// TestSeverityString tests the String method of Severity.
func TestSeverityString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		severity Severity
		expected string
	}{
		{SeverityLow, "low"},
		{SeverityMedium, "medium"},
		{SeverityHigh, "high"},
		{SeverityCritical, "critical"},
		{Severity(999), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.severity.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.severity.String(), tc.expected)
			}
		})
	}
}

// TestSeverityOrdering tests that severity levels compare in escalation order.
func TestSeverityOrdering(t *testing.T) {
	t.Parallel()

	if !(SeverityLow < SeverityMedium) {
		t.Error("expected low < medium")
	}
	if !(SeverityMedium < SeverityHigh) {
		t.Error("expected medium < high")
	}
	if !(SeverityHigh < SeverityCritical) {
		t.Error("expected high < critical")
	}
}

// TestParseSeverity tests name-to-severity parsing.
func TestParseSeverity(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected Severity
		ok       bool
	}{
		{"lower case", "high", SeverityHigh, true},
		{"upper case", "CRITICAL", SeverityCritical, true},
		{"mixed case", "Medium", SeverityMedium, true},
		{"surrounding space", " low ", SeverityLow, true},
		{"unknown name", "fatal", SeverityLow, false},
		{"empty", "", SeverityLow, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseSeverity(tc.input)
			if got != tc.expected || ok != tc.ok {
				t.Errorf("ParseSeverity(%q) = (%v, %v), expected (%v, %v)", tc.input, got, ok, tc.expected, tc.ok)
			}
		})
	}
}

// TestSeverityJSONRoundTrip tests that severities survive JSON encoding.
func TestSeverityJSONRoundTrip(t *testing.T) {
	t.Parallel()

	for _, sev := range []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical} {
		t.Run(sev.String(), func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(sev)
			if err != nil {
				t.Fatalf("failed to marshal: %v", err)
			}
			if string(data) != `"`+sev.String()+`"` {
				t.Errorf("got %s, expected %q", data, sev.String())
			}

			var decoded Severity
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("failed to unmarshal: %v", err)
			}
			if decoded != sev {
				t.Errorf("round trip changed severity: got %v, expected %v", decoded, sev)
			}
		})
	}
}

// TestGetRuleInfo tests rule catalog lookups.
func TestGetRuleInfo(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		rule     string
		expected Severity
	}{
		// Critical rules
		{"title_missing", SeverityCritical},
		{"structured_data_invalid", SeverityCritical},
		{"phase_failed", SeverityCritical},
		{"phase_unknown", SeverityCritical},

		// High rules
		{"meta_description_missing", SeverityHigh},
		{"h1_missing", SeverityHigh},
		{"thin_content", SeverityHigh},
		{"semantic_overlap", SeverityHigh},
		{"canonical_missing", SeverityHigh},

		// Medium rules
		{"title_too_long", SeverityMedium},
		{"image_alt_missing", SeverityMedium},
		{"fact_not_covered", SeverityMedium},

		// Low rules
		{"internal_links_missing", SeverityLow},
		{"images_missing", SeverityLow},

		// Unknown rule defaults to medium
		{"unknown_rule", SeverityMedium},
	}

	for _, tc := range testCases {
		t.Run(tc.rule, func(t *testing.T) {
			t.Parallel()
			info := GetRuleInfo(tc.rule)
			if info.Severity != tc.expected {
				t.Errorf("GetRuleInfo(%q).Severity = %v, expected %v", tc.rule, info.Severity, tc.expected)
			}
			if info.Rationale == "" {
				t.Errorf("GetRuleInfo(%q) has empty rationale", tc.rule)
			}
			if info.Recommendation == "" {
				t.Errorf("GetRuleInfo(%q) has empty recommendation", tc.rule)
			}
		})
	}
}

// TestRuleCatalogComplete tests that every catalog entry carries full metadata.
func TestRuleCatalogComplete(t *testing.T) {
	t.Parallel()

	for rule, info := range ruleCatalog {
		if info.Category == "" {
			t.Errorf("rule %q has no category", rule)
		}
		if info.EstimatedImpact == "" {
			t.Errorf("rule %q has no estimated impact", rule)
		}
		if info.Rationale == "" {
			t.Errorf("rule %q has no rationale", rule)
		}
		if info.Recommendation == "" {
			t.Errorf("rule %q has no recommendation", rule)
		}
	}
}
