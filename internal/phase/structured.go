package phase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/contentaudit/contentaudit/internal/model"
)

// defaultStructuredDataWeight is the structured-data phase's share in the
// overall score.
const defaultStructuredDataWeight = 1.5

// StructuredDataEvaluator checks the machine-readable layer of the page:
// JSON-LD blocks, the canonical link, and Open Graph tags.
type StructuredDataEvaluator struct {
	baseEvaluator
}

// NewStructuredDataEvaluator creates a new StructuredDataEvaluator.
func NewStructuredDataEvaluator() *StructuredDataEvaluator {
	return &StructuredDataEvaluator{
		baseEvaluator: baseEvaluator{name: PhaseStructuredData, weight: defaultStructuredDataWeight},
	}
}

// Evaluate runs four checks: JSON-LD present, all JSON-LD blocks parse,
// canonical link present, Open Graph title and description present.
func (e *StructuredDataEvaluator) Evaluate(_ context.Context, content *model.FetchedContent, _ *Context) (*model.PhaseResult, error) {
	const totalChecks = 4
	findings := make([]model.Finding, 0)

	if len(content.StructuredData) == 0 {
		f := model.NewFinding(PhaseStructuredData, "structured_data_missing",
			"No structured data",
			"The page carries no JSON-LD block.")
		f.Element = `script[type="application/ld+json"]`
		findings = append(findings, f)
	}

	for i, block := range content.StructuredData {
		if json.Valid([]byte(block)) {
			continue
		}
		f := model.NewFinding(PhaseStructuredData, "structured_data_invalid",
			"Structured data does not parse",
			fmt.Sprintf("JSON-LD block %d is not valid JSON; search engines drop all structured data on parse errors.", i+1))
		f.Element = `script[type="application/ld+json"]`
		findings = append(findings, f)
		break // one finding covers the check
	}

	if content.CanonicalURL == "" {
		f := model.NewFinding(PhaseStructuredData, "canonical_missing",
			"Canonical link missing",
			"The page declares no canonical URL.")
		f.Element = `link[rel="canonical"]`
		findings = append(findings, f)
	}

	if content.MetaTags["og:title"] == "" || content.MetaTags["og:description"] == "" {
		f := model.NewFinding(PhaseStructuredData, "open_graph_incomplete",
			"Open Graph tags incomplete",
			"og:title or og:description is missing, so shared links render a bare preview.")
		f.Element = `meta[property^="og:"]`
		findings = append(findings, f)
	}

	return BuildResult(e.Name(), e.Weight(), totalChecks, findings, "")
}
