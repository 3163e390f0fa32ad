package phase

import (
	"context"
	"fmt"

	"github.com/contentaudit/contentaudit/internal/model"
)

// minWordsPerLink is the words-per-link ratio above which long content is
// considered under-linked.
const minWordsPerLink = 300

// defaultLinksWeight is the links phase's share in the overall score.
const defaultLinksWeight = 1.0

// LinksEvaluator checks internal and external linking. Links spread
// authority through the site and anchor the page in its topic neighborhood.
type LinksEvaluator struct {
	baseEvaluator
}

// NewLinksEvaluator creates a new LinksEvaluator.
func NewLinksEvaluator() *LinksEvaluator {
	return &LinksEvaluator{
		baseEvaluator: baseEvaluator{name: PhaseLinks, weight: defaultLinksWeight},
	}
}

// Evaluate runs three checks: internal links present, external links
// present, and link density on long content.
func (e *LinksEvaluator) Evaluate(_ context.Context, content *model.FetchedContent, _ *Context) (*model.PhaseResult, error) {
	const totalChecks = 3
	findings := make([]model.Finding, 0)

	if len(content.InternalLinks) == 0 {
		findings = append(findings, model.NewFinding(PhaseLinks, "internal_links_missing",
			"No internal links",
			"The page links to no other page on the same site."))
	}

	if len(content.ExternalLinks) == 0 {
		findings = append(findings, model.NewFinding(PhaseLinks, "external_links_missing",
			"No external links",
			"The page cites no external sources."))
	}

	words := content.WordCount()
	totalLinks := len(content.InternalLinks) + len(content.ExternalLinks)
	if words >= LongContentWords && totalLinks < words/minWordsPerLink {
		findings = append(findings, model.NewFinding(PhaseLinks, "anchor_density_low",
			"Few links for the length",
			fmt.Sprintf("%d words carry only %d links; aim for one every ~%d words.", words, totalLinks, minWordsPerLink)))
	}

	return BuildResult(e.Name(), e.Weight(), totalChecks, findings, "")
}
