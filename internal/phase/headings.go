package phase

import (
	"context"
	"fmt"
	"strings"

	"github.com/contentaudit/contentaudit/internal/model"
)

// LongContentWords is the word count above which content is considered long
// form. Long content is expected to carry sub-headings, images, and in-text
// links; short content is not penalized for their absence.
const LongContentWords = 600

// defaultHeadingsWeight is the headings phase's share in the overall score.
const defaultHeadingsWeight = 1.5

// HeadingsEvaluator checks the heading structure: a single non-empty H1,
// no skipped levels, and sub-headings on long content.
type HeadingsEvaluator struct {
	baseEvaluator
}

// NewHeadingsEvaluator creates a new HeadingsEvaluator.
func NewHeadingsEvaluator() *HeadingsEvaluator {
	return &HeadingsEvaluator{
		baseEvaluator: baseEvaluator{name: PhaseHeadings, weight: defaultHeadingsWeight},
	}
}

// Evaluate runs four checks: exactly one H1, H1 non-empty, no skipped
// heading levels, sub-headings present on long content.
func (e *HeadingsEvaluator) Evaluate(_ context.Context, content *model.FetchedContent, _ *Context) (*model.PhaseResult, error) {
	const totalChecks = 4
	findings := make([]model.Finding, 0)

	var h1s []model.Heading
	subheadings := 0
	for _, h := range content.Headings {
		if h.Level == 1 {
			h1s = append(h1s, h)
		}
		if h.Level == 2 || h.Level == 3 {
			subheadings++
		}
	}

	switch {
	case len(h1s) == 0:
		f := model.NewFinding(PhaseHeadings, "h1_missing",
			"H1 missing",
			"The page has no H1 element.")
		f.Element = "h1"
		findings = append(findings, f)
	case len(h1s) > 1:
		f := model.NewFinding(PhaseHeadings, "h1_multiple",
			"Multiple H1 elements",
			fmt.Sprintf("The page has %d H1 elements; keep exactly one.", len(h1s)))
		f.Element = "h1"
		findings = append(findings, f)
	}

	if len(h1s) == 1 && strings.TrimSpace(h1s[0].Text) == "" {
		f := model.NewFinding(PhaseHeadings, "h1_empty",
			"Empty H1",
			"The H1 element contains no text.")
		f.Element = "h1"
		findings = append(findings, f)
	}

	if skip := findLevelSkip(content.Headings); skip != "" {
		f := model.NewFinding(PhaseHeadings, "heading_level_skipped",
			"Heading level skipped",
			fmt.Sprintf("The heading outline jumps %s.", skip))
		f.Element = skip
		findings = append(findings, f)
	}

	if content.WordCount() >= LongContentWords && subheadings == 0 {
		findings = append(findings, model.NewFinding(PhaseHeadings, "subheadings_missing",
			"No sub-headings on long content",
			fmt.Sprintf("The page has %d words but no H2 or H3 to segment them.", content.WordCount())))
	}

	return BuildResult(e.Name(), e.Weight(), totalChecks, findings, "")
}

// findLevelSkip returns a "h2 to h4" style description of the first skipped
// heading level, or "" when the outline descends one step at a time.
func findLevelSkip(headings []model.Heading) string {
	prev := 0
	for _, h := range headings {
		if prev > 0 && h.Level > prev+1 {
			return fmt.Sprintf("h%d to h%d", prev, h.Level)
		}
		prev = h.Level
	}
	return ""
}
