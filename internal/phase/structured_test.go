package phase

import (
	"context"
	"strings"
	"testing"

	"github.com/contentaudit/contentaudit/internal/model"
)

// TestStructuredDataEvaluator tests JSON-LD, canonical, and Open Graph checks.
func TestStructuredDataEvaluator(t *testing.T) {
	t.Parallel()

	validJSONLD := `{"@context":"https://schema.org","@type":"Article","headline":"Winter Bike Maintenance"}`

	t.Run("complete machine layer passes", func(t *testing.T) {
		t.Parallel()

		content := &model.FetchedContent{
			StructuredData: []string{validJSONLD},
			CanonicalURL:   "https://example.com/guides/winter",
			MetaTags: map[string]string{
				"og:title":       "Winter Bike Maintenance",
				"og:description": "Keep your bike alive through the salt season.",
			},
		}
		result, err := NewStructuredDataEvaluator().Evaluate(context.Background(), content, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Findings) != 0 {
			t.Errorf("expected no findings, got %v", ruleNames(result.Findings))
		}
		if result.Score != 100 {
			t.Errorf("score: got %v, expected 100", result.Score)
		}
	})

	t.Run("missing canonical produces a canonical finding", func(t *testing.T) {
		t.Parallel()

		content := &model.FetchedContent{
			StructuredData: []string{validJSONLD},
			MetaTags: map[string]string{
				"og:title":       "Winter Bike Maintenance",
				"og:description": "Keep your bike alive through the salt season.",
			},
		}
		result, err := NewStructuredDataEvaluator().Evaluate(context.Background(), content, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !hasRule(result.Findings, "canonical_missing") {
			t.Fatalf("expected canonical_missing, got %v", ruleNames(result.Findings))
		}
		for _, f := range result.Findings {
			if f.Rule == "canonical_missing" && !strings.Contains(strings.ToLower(f.Description+f.Title), "canonical") {
				t.Errorf("canonical finding should mention canonical, got %q", f.Description)
			}
		}
		if result.Score >= 100 {
			t.Errorf("score should drop below 100, got %v", result.Score)
		}
	})

	t.Run("invalid json-ld flagged once", func(t *testing.T) {
		t.Parallel()

		content := &model.FetchedContent{
			StructuredData: []string{`{"broken":`, `also broken`},
			CanonicalURL:   "https://example.com/x",
		}
		result, err := NewStructuredDataEvaluator().Evaluate(context.Background(), content, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		count := 0
		for _, f := range result.Findings {
			if f.Rule == "structured_data_invalid" {
				count++
			}
		}
		if count != 1 {
			t.Errorf("expected exactly 1 structured_data_invalid finding, got %d", count)
		}
	})

	t.Run("no structured data flagged", func(t *testing.T) {
		t.Parallel()

		content := &model.FetchedContent{CanonicalURL: "https://example.com/x"}
		result, err := NewStructuredDataEvaluator().Evaluate(context.Background(), content, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !hasRule(result.Findings, "structured_data_missing") {
			t.Errorf("expected structured_data_missing, got %v", ruleNames(result.Findings))
		}
	})

	t.Run("incomplete open graph flagged", func(t *testing.T) {
		t.Parallel()

		content := &model.FetchedContent{
			StructuredData: []string{validJSONLD},
			CanonicalURL:   "https://example.com/x",
			MetaTags:       map[string]string{"og:title": "Winter Bike Maintenance"},
		}
		result, err := NewStructuredDataEvaluator().Evaluate(context.Background(), content, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !hasRule(result.Findings, "open_graph_incomplete") {
			t.Errorf("expected open_graph_incomplete, got %v", ruleNames(result.Findings))
		}
	})
}
