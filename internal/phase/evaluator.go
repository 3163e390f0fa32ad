package phase

import (
	"context"

	"github.com/contentaudit/contentaudit/internal/model"
)

// Evaluator names of the built-in phases.
const (
	// PhaseMetadata checks the title and meta description.
	PhaseMetadata = "metadata"
	// PhaseHeadings checks the H1 and heading hierarchy.
	PhaseHeadings = "headings"
	// PhaseContent checks text depth, readability, and term balance.
	PhaseContent = "content"
	// PhaseLinks checks internal and external linking.
	PhaseLinks = "links"
	// PhaseImages checks image presence and alt text.
	PhaseImages = "images"
	// PhaseStructuredData checks JSON-LD, canonical, and Open Graph tags.
	PhaseStructuredData = "structured_data"
	// PhaseSemanticDistance compares the page against related topic profiles.
	PhaseSemanticDistance = "semantic_distance"
	// PhaseFactValidation verifies root facts appear in the content.
	// Bonus phase: weight zero, findings only.
	PhaseFactValidation = "fact_validation"
)

// Context carries the audit-level inputs an evaluator may consult beyond the
// fetched content itself.
//
// Design decision: We pass request, profiles, and facts in a single struct
// rather than multiple parameters because:
//  1. Not all evaluators need all inputs
//  2. Adding new inputs doesn't change evaluator signatures
//  3. Easier to build in tests
type Context struct {
	// Request is the originating audit request.
	Request *model.AuditRequest

	// Related holds the semantic profiles of related content items.
	Related []model.TopicProfile

	// Facts are the root entity/attribute facts for the topic.
	Facts []model.Fact
}

// Evaluator is the contract every audit phase implements.
// Evaluators are pure over their inputs: they never fetch, never mutate the
// content, and never see each other's results.
//
// Design decision: We use an interface rather than concrete types because:
//  1. The orchestrator treats all phases uniformly
//  2. Enables testing with mock evaluators
//  3. Weight and name stay with the implementation that owns them
type Evaluator interface {
	// Name returns the stable phase name used in requests and reports.
	Name() string

	// Weight returns the phase's share in the overall score.
	// Zero marks a bonus phase.
	Weight() float64

	// Evaluate runs the phase against one content snapshot.
	// The returned result always has TotalChecks > 0.
	Evaluate(ctx context.Context, content *model.FetchedContent, audit *Context) (*model.PhaseResult, error)
}

// Options configures the built-in evaluator set.
type Options struct {
	// Weights overrides the default weight of phases by name.
	// Unknown names are ignored.
	Weights map[string]float64
}

// Option mutates Options.
type Option func(*Options)

// WithWeights overrides phase weights by name.
func WithWeights(weights map[string]float64) Option {
	return func(o *Options) {
		if o.Weights == nil {
			o.Weights = make(map[string]float64, len(weights))
		}
		for name, w := range weights {
			o.Weights[name] = w
		}
	}
}

// weightSetter is implemented by evaluators whose weight can be tuned.
type weightSetter interface {
	setWeight(weight float64)
}

// DefaultEvaluators returns the full built-in evaluator set in its canonical
// order. The order doubles as the default phase order when a request names no
// phases.
func DefaultEvaluators(opts ...Option) []Evaluator {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	evaluators := []Evaluator{
		NewMetadataEvaluator(),
		NewHeadingsEvaluator(),
		NewContentEvaluator(),
		NewLinksEvaluator(),
		NewImagesEvaluator(),
		NewStructuredDataEvaluator(),
		NewSemanticDistanceEvaluator(),
		NewFactValidationEvaluator(),
	}

	for _, ev := range evaluators {
		if w, ok := options.Weights[ev.Name()]; ok && w >= 0 {
			if setter, ok := ev.(weightSetter); ok {
				setter.setWeight(w)
			}
		}
	}

	return evaluators
}

// baseEvaluator provides the Name/Weight plumbing shared by all built-in
// evaluators.
type baseEvaluator struct {
	name   string
	weight float64
}

// Name returns the stable phase name.
func (b *baseEvaluator) Name() string { return b.name }

// Weight returns the phase weight.
func (b *baseEvaluator) Weight() float64 { return b.weight }

func (b *baseEvaluator) setWeight(weight float64) { b.weight = weight }
