package phase

import (
	"context"
	"fmt"
	"strings"

	"github.com/contentaudit/contentaudit/internal/model"
)

// defaultFactValidationWeight marks fact validation as a bonus phase: its
// findings appear in the report but its score never moves the overall score.
const defaultFactValidationWeight = 0.0

// FactValidationEvaluator verifies that every root fact of the topic appears
// in the content. A fact counts as covered when its entity and attribute
// both match case-insensitively in the plain text; an empty attribute makes
// the entity alone sufficient.
type FactValidationEvaluator struct {
	baseEvaluator
}

// NewFactValidationEvaluator creates a new FactValidationEvaluator.
func NewFactValidationEvaluator() *FactValidationEvaluator {
	return &FactValidationEvaluator{
		baseEvaluator: baseEvaluator{name: PhaseFactValidation, weight: defaultFactValidationWeight},
	}
}

// Evaluate counts one fact-sheet check plus one coverage check per fact.
func (e *FactValidationEvaluator) Evaluate(ctx context.Context, content *model.FetchedContent, audit *Context) (*model.PhaseResult, error) {
	var facts []model.Fact
	if audit != nil {
		facts = audit.Facts
	}

	totalChecks := 1 + len(facts)
	findings := make([]model.Finding, 0)

	if len(facts) == 0 {
		findings = append(findings, model.NewFinding(PhaseFactValidation, "fact_sheet_missing",
			"No fact sheet",
			"Fact validation ran without a fact sheet, so nothing could be verified."))
		return BuildResult(e.Name(), e.Weight(), totalChecks, findings, "")
	}

	text := strings.ToLower(content.PlainText)
	for _, fact := range facts {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if FactCovered(text, fact) {
			continue
		}
		findings = append(findings, model.NewFinding(PhaseFactValidation, "fact_not_covered",
			"Fact not covered",
			fmt.Sprintf("The content does not state: %s", FactLabel(fact))))
	}

	return BuildResult(e.Name(), e.Weight(), totalChecks, findings, "")
}

// FactLabel renders a fact for missing-topic lists: the entity and
// attribute joined by an em dash, or the entity alone when the attribute is
// empty.
func FactLabel(fact model.Fact) string {
	if strings.TrimSpace(fact.Attribute) == "" {
		return fact.Entity
	}
	return fact.Entity + " — " + fact.Attribute
}

// FactCovered reports whether a fact appears in the lower-cased text.
// The entity must match; a non-empty attribute must match as well.
func FactCovered(lowerText string, fact model.Fact) bool {
	entity := strings.ToLower(strings.TrimSpace(fact.Entity))
	if entity == "" || !strings.Contains(lowerText, entity) {
		return false
	}
	attribute := strings.ToLower(strings.TrimSpace(fact.Attribute))
	if attribute == "" {
		return true
	}
	return strings.Contains(lowerText, attribute)
}
