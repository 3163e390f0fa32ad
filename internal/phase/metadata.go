package phase

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/contentaudit/contentaudit/internal/model"
)

// Title and description length bounds, in characters. Search engines truncate
// beyond the upper bounds; below the lower bounds the snippet wastes space.
const (
	// MinTitleLength is the shortest title that still carries a qualifier.
	MinTitleLength = 30

	// MaxTitleLength is where search results start truncating titles.
	MaxTitleLength = 60

	// MinDescriptionLength is the shortest useful meta description.
	MinDescriptionLength = 50

	// MaxDescriptionLength is where search results truncate descriptions.
	MaxDescriptionLength = 160
)

// defaultMetadataWeight is the metadata phase's share in the overall score.
const defaultMetadataWeight = 2.0

// MetadataEvaluator checks the title and meta description: presence and
// length bounds. Metadata is weighted heavily because it is the first thing
// both crawlers and searchers see.
type MetadataEvaluator struct {
	baseEvaluator
}

// NewMetadataEvaluator creates a new MetadataEvaluator.
func NewMetadataEvaluator() *MetadataEvaluator {
	return &MetadataEvaluator{
		baseEvaluator: baseEvaluator{name: PhaseMetadata, weight: defaultMetadataWeight},
	}
}

// Evaluate runs four checks: title present, title length in bounds,
// description present, description length in bounds.
func (e *MetadataEvaluator) Evaluate(_ context.Context, content *model.FetchedContent, _ *Context) (*model.PhaseResult, error) {
	const totalChecks = 4
	findings := make([]model.Finding, 0)

	titleLen := utf8.RuneCountInString(content.Title)
	switch {
	case titleLen == 0:
		f := model.NewFinding(PhaseMetadata, "title_missing",
			"Title missing",
			"The page has no title element.")
		f.Element = "title"
		findings = append(findings, f)
	case titleLen < MinTitleLength:
		f := model.NewFinding(PhaseMetadata, "title_too_short",
			"Title too short",
			fmt.Sprintf("The title is %d characters; aim for %d-%d.", titleLen, MinTitleLength, MaxTitleLength))
		f.Element = "title"
		findings = append(findings, f)
	case titleLen > MaxTitleLength:
		f := model.NewFinding(PhaseMetadata, "title_too_long",
			"Title too long",
			fmt.Sprintf("The title is %d characters; search results truncate after %d.", titleLen, MaxTitleLength))
		f.Element = "title"
		findings = append(findings, f)
	}

	descLen := utf8.RuneCountInString(content.Description)
	switch {
	case descLen == 0:
		f := model.NewFinding(PhaseMetadata, "meta_description_missing",
			"Meta description missing",
			"The page has no meta description.")
		f.Element = `meta[name="description"]`
		findings = append(findings, f)
	case descLen < MinDescriptionLength:
		f := model.NewFinding(PhaseMetadata, "meta_description_too_short",
			"Meta description too short",
			fmt.Sprintf("The description is %d characters; aim for %d-%d.", descLen, MinDescriptionLength, MaxDescriptionLength))
		f.Element = `meta[name="description"]`
		findings = append(findings, f)
	case descLen > MaxDescriptionLength:
		f := model.NewFinding(PhaseMetadata, "meta_description_too_long",
			"Meta description too long",
			fmt.Sprintf("The description is %d characters; search results truncate after %d.", descLen, MaxDescriptionLength))
		f.Element = `meta[name="description"]`
		findings = append(findings, f)
	}

	return BuildResult(e.Name(), e.Weight(), totalChecks, findings, "")
}
