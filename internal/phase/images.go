package phase

import (
	"context"
	"fmt"
	"strings"

	"github.com/contentaudit/contentaudit/internal/model"
)

// defaultImagesWeight is the images phase's share in the overall score.
const defaultImagesWeight = 1.0

// ImagesEvaluator checks image usage: presence on long content and alt text
// on every image. One alt check is counted per image so the passed/total
// ratio reflects how much of the page's imagery is accessible.
type ImagesEvaluator struct {
	baseEvaluator
}

// NewImagesEvaluator creates a new ImagesEvaluator.
func NewImagesEvaluator() *ImagesEvaluator {
	return &ImagesEvaluator{
		baseEvaluator: baseEvaluator{name: PhaseImages, weight: defaultImagesWeight},
	}
}

// Evaluate counts one presence check plus one alt-text check per image.
func (e *ImagesEvaluator) Evaluate(_ context.Context, content *model.FetchedContent, _ *Context) (*model.PhaseResult, error) {
	totalChecks := 1 + len(content.Images)
	findings := make([]model.Finding, 0)

	if len(content.Images) == 0 && content.WordCount() >= LongContentWords {
		findings = append(findings, model.NewFinding(PhaseImages, "images_missing",
			"No images on long content",
			fmt.Sprintf("The page has %d words and no images.", content.WordCount())))
	}

	for _, img := range content.Images {
		if strings.TrimSpace(img.Alt) != "" {
			continue
		}
		f := model.NewFinding(PhaseImages, "image_alt_missing",
			"Image without alt text",
			fmt.Sprintf("The image %s has no alt text.", img.Source))
		f.Element = img.Source
		findings = append(findings, f)
	}

	return BuildResult(e.Name(), e.Weight(), totalChecks, findings, "")
}
